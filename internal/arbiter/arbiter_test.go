package arbiter

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"auction-engine/internal/auctionerrors"
	model "auction-engine/internal/models"
	"auction-engine/internal/repository"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func liveAuction(auctionID string, increment int64) model.Auction {
	now := time.Now().UTC()
	return model.Auction{
		AuctionID: auctionID,
		Title:     "test auction",
		StartTime: now.Add(-time.Hour),
		EndTime:   now.Add(time.Hour),
		Status:    model.StatusLive,
		Settings: model.AuctionSettings{
			MinBidIncrement: decimal.NewFromInt(increment),
		},
	}
}

func request(amount int64) BidRequest {
	return BidRequest{
		AuctionID: "auction1",
		PlayerID:  "player1",
		TeamID:    "team1",
		Amount:    decimal.NewFromInt(amount),
		Channel:   model.ChannelWeb,
		CallerID:  "caller1",
	}
}

// Tests the validation chain reason by reason against mocked stores.
func TestArbiter_EvaluateBid_Rejections(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := repository.NewMockStore(ctrl)
	arb := NewArbiter(mockStore, mockStore, mockStore)
	ctx := context.Background()

	auction := liveAuction("auction1", 100)
	player := model.Player{PlayerID: "player1", AuctionID: "auction1", BasePrice: decimal.NewFromInt(1000)}
	team := model.Team{TeamID: "team1", AuctionID: "auction1", Budget: decimal.NewFromInt(5000)}

	tests := []struct {
		name       string
		amount     int64
		mockSetup  func()
		wantReason RejectionReason
	}{
		{
			name:   "auction_missing",
			amount: 1000,
			mockSetup: func() {
				mockStore.EXPECT().GetAuction(gomock.Any(), "auction1").Return(model.Auction{}, auctionerrors.ErrAuctionNotFound)
			},
			wantReason: ReasonAuctionNotLive,
		},
		{
			name:   "auction_not_live",
			amount: 1000,
			mockSetup: func() {
				closed := auction
				closed.Status = model.StatusClosed
				mockStore.EXPECT().GetAuction(gomock.Any(), "auction1").Return(closed, nil)
			},
			wantReason: ReasonAuctionNotLive,
		},
		{
			name:   "player_missing",
			amount: 1000,
			mockSetup: func() {
				mockStore.EXPECT().GetAuction(gomock.Any(), "auction1").Return(auction, nil)
				mockStore.EXPECT().GetPlayer(gomock.Any(), "auction1", "player1").Return(model.Player{}, auctionerrors.ErrPlayerNotFound)
			},
			wantReason: ReasonPlayerUnavailable,
		},
		{
			name:   "player_already_sold",
			amount: 1000,
			mockSetup: func() {
				sold := player
				sold.SoldToTeamID = "team2"
				mockStore.EXPECT().GetAuction(gomock.Any(), "auction1").Return(auction, nil)
				mockStore.EXPECT().GetPlayer(gomock.Any(), "auction1", "player1").Return(sold, nil)
			},
			wantReason: ReasonPlayerUnavailable,
		},
		{
			name:   "team_missing",
			amount: 1000,
			mockSetup: func() {
				mockStore.EXPECT().GetAuction(gomock.Any(), "auction1").Return(auction, nil)
				mockStore.EXPECT().GetPlayer(gomock.Any(), "auction1", "player1").Return(player, nil)
				mockStore.EXPECT().GetTeam(gomock.Any(), "auction1", "team1").Return(model.Team{}, auctionerrors.ErrTeamNotFound)
			},
			wantReason: ReasonTeamNotFound,
		},
		{
			name:   "below_base_price",
			amount: 900,
			mockSetup: func() {
				mockStore.EXPECT().GetAuction(gomock.Any(), "auction1").Return(auction, nil)
				mockStore.EXPECT().GetPlayer(gomock.Any(), "auction1", "player1").Return(player, nil)
				mockStore.EXPECT().GetTeam(gomock.Any(), "auction1", "team1").Return(team, nil)
				mockStore.EXPECT().HighestAcceptedBid(gomock.Any(), "player1").Return(model.Bid{}, auctionerrors.ErrNoBids)
			},
			wantReason: ReasonBidTooLow,
		},
		{
			name:   "below_floor_with_prior_bid",
			amount: 1050,
			mockSetup: func() {
				prior := model.Bid{BidID: "bid1", PlayerID: "player1", Amount: decimal.NewFromInt(1000), Accepted: true}
				mockStore.EXPECT().GetAuction(gomock.Any(), "auction1").Return(auction, nil)
				mockStore.EXPECT().GetPlayer(gomock.Any(), "auction1", "player1").Return(player, nil)
				mockStore.EXPECT().GetTeam(gomock.Any(), "auction1", "team1").Return(team, nil)
				mockStore.EXPECT().HighestAcceptedBid(gomock.Any(), "player1").Return(prior, nil)
			},
			wantReason: ReasonBidTooLow,
		},
		{
			name:   "insufficient_budget",
			amount: 6000,
			mockSetup: func() {
				mockStore.EXPECT().GetAuction(gomock.Any(), "auction1").Return(auction, nil)
				mockStore.EXPECT().GetPlayer(gomock.Any(), "auction1", "player1").Return(player, nil)
				mockStore.EXPECT().GetTeam(gomock.Any(), "auction1", "team1").Return(team, nil)
				mockStore.EXPECT().HighestAcceptedBid(gomock.Any(), "player1").Return(model.Bid{}, auctionerrors.ErrNoBids)
			},
			wantReason: ReasonInsufficientBudget,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.mockSetup()

			outcome, err := arb.EvaluateBid(ctx, request(tc.amount))
			require.NoError(t, err)
			require.False(t, outcome.Accepted)
			require.Equal(t, tc.wantReason, outcome.Reason)
		})
	}
}

// A floor rejection carries the minimum acceptable amount.
func TestArbiter_EvaluateBid_FloorInRejection(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := repository.NewMockStore(ctrl)
	arb := NewArbiter(mockStore, mockStore, mockStore)

	auction := liveAuction("auction1", 100)
	player := model.Player{PlayerID: "player1", AuctionID: "auction1", BasePrice: decimal.NewFromInt(1000)}
	team := model.Team{TeamID: "team1", AuctionID: "auction1", Budget: decimal.NewFromInt(5000)}
	prior := model.Bid{BidID: "bid1", PlayerID: "player1", Amount: decimal.NewFromInt(1000), Accepted: true}

	mockStore.EXPECT().GetAuction(gomock.Any(), "auction1").Return(auction, nil)
	mockStore.EXPECT().GetPlayer(gomock.Any(), "auction1", "player1").Return(player, nil)
	mockStore.EXPECT().GetTeam(gomock.Any(), "auction1", "team1").Return(team, nil)
	mockStore.EXPECT().HighestAcceptedBid(gomock.Any(), "player1").Return(prior, nil)

	outcome, err := arb.EvaluateBid(context.Background(), request(1050))
	require.NoError(t, err)
	require.Equal(t, ReasonBidTooLow, outcome.Reason)
	require.True(t, outcome.Floor.Equal(decimal.NewFromInt(1100)))
}

// Store outages surface as errors, never as rejections.
func TestArbiter_EvaluateBid_InfrastructureError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := repository.NewMockStore(ctrl)
	arb := NewArbiter(mockStore, mockStore, mockStore)

	storeDown := errors.New("store unreachable")
	mockStore.EXPECT().GetAuction(gomock.Any(), "auction1").Return(model.Auction{}, storeDown)

	_, err := arb.EvaluateBid(context.Background(), request(1000))
	require.Error(t, err)
	require.ErrorIs(t, err, storeDown)
}

// After maxCommitAttempts conflicts the arbiter gives up with
// CONTENTION_EXCEEDED instead of spinning.
func TestArbiter_EvaluateBid_ContentionExceeded(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := repository.NewMockStore(ctrl)
	arb := NewArbiter(mockStore, mockStore, mockStore)

	auction := liveAuction("auction1", 100)
	player := model.Player{PlayerID: "player1", AuctionID: "auction1", BasePrice: decimal.NewFromInt(1000)}
	team := model.Team{TeamID: "team1", AuctionID: "auction1", Budget: decimal.NewFromInt(5000)}

	mockStore.EXPECT().GetAuction(gomock.Any(), "auction1").Return(auction, nil).Times(3)
	mockStore.EXPECT().GetPlayer(gomock.Any(), "auction1", "player1").Return(player, nil).Times(3)
	mockStore.EXPECT().GetTeam(gomock.Any(), "auction1", "team1").Return(team, nil).Times(3)
	mockStore.EXPECT().HighestAcceptedBid(gomock.Any(), "player1").Return(model.Bid{}, auctionerrors.ErrNoBids).Times(3)
	mockStore.EXPECT().InsertAcceptedBid(gomock.Any(), gomock.Any(), gomock.Nil()).Return(auctionerrors.ErrBidConflict).Times(3)

	outcome, err := arb.EvaluateBid(context.Background(), request(1000))
	require.NoError(t, err)
	require.False(t, outcome.Accepted)
	require.Equal(t, ReasonContentionExceeded, outcome.Reason)
}

// Floor progression scenario: base 1000, increment 100. 1000 is accepted,
// 1050 is too low, 1100 is accepted.
func TestArbiter_FloorProgression(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := seededStore(t, 5000, 5000)
	arb := NewArbiter(store, store, store)

	first := request(1000)
	outcome, err := arb.EvaluateBid(ctx, first)
	require.NoError(t, err)
	require.True(t, outcome.Accepted)

	tooLow := request(1050)
	tooLow.TeamID = "team2"
	outcome, err = arb.EvaluateBid(ctx, tooLow)
	require.NoError(t, err)
	require.False(t, outcome.Accepted)
	require.Equal(t, ReasonBidTooLow, outcome.Reason)
	require.True(t, outcome.Floor.Equal(decimal.NewFromInt(1100)))

	atFloor := request(1100)
	atFloor.TeamID = "team2"
	outcome, err = arb.EvaluateBid(ctx, atFloor)
	require.NoError(t, err)
	require.True(t, outcome.Accepted)
}

// Budget scenario: a team with 1000 total cannot bid 1500.
func TestArbiter_InsufficientBudget(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := seededStore(t, 1000, 5000)
	arb := NewArbiter(store, store, store)

	outcome, err := arb.EvaluateBid(ctx, request(1500))
	require.NoError(t, err)
	require.False(t, outcome.Accepted)
	require.Equal(t, ReasonInsufficientBudget, outcome.Reason)
}

// Two concurrent bids of 1200 and 1300 over a floor of 1100: exactly one
// round of serialization happens, the accepted amounts stay strictly
// increasing, and 1300 always lands.
func TestArbiter_ConcurrentBids(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := seededStore(t, 5000, 5000)
	arb := NewArbiter(store, store, store)

	seed := request(1000)
	outcome, err := arb.EvaluateBid(ctx, seed)
	require.NoError(t, err)
	require.True(t, outcome.Accepted)

	var wg sync.WaitGroup
	outcomes := make([]BidOutcome, 2)
	amounts := []int64{1200, 1300}
	teams := []string{"team1", "team2"}

	for i := range amounts {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := request(amounts[i])
			req.TeamID = teams[i]
			out, evalErr := arb.EvaluateBid(ctx, req)
			require.NoError(t, evalErr)
			outcomes[i] = out
		}()
	}
	wg.Wait()

	// 1300 clears any floor the 1200 can produce, so it must be accepted.
	require.True(t, outcomes[1].Accepted)

	bids, err := store.BidsByPlayer(ctx, "player1")
	require.NoError(t, err)

	// accepted amounts strictly increase over acceptance time (history is
	// newest first)
	prev := decimal.Decimal{}
	for i := len(bids) - 1; i >= 0; i-- {
		require.True(t, bids[i].Accepted)
		require.True(t, bids[i].Amount.GreaterThan(prev),
			"accepted amounts must strictly increase, got %s after %s", bids[i].Amount, prev)
		prev = bids[i].Amount
	}
}

// seededStore builds a live auction with one player (base 1000) and two
// teams with the given budgets.
func seededStore(t *testing.T, budget1, budget2 int64) *repository.MemoryStore {
	t.Helper()
	ctx := context.Background()
	store := repository.NewMemoryStore()

	require.NoError(t, store.CreateAuction(ctx, liveAuction("auction1", 100)))
	require.NoError(t, store.AddPlayer(ctx, model.Player{
		PlayerID:  "player1",
		AuctionID: "auction1",
		Name:      "player one",
		BasePrice: decimal.NewFromInt(1000),
	}))
	require.NoError(t, store.AddTeam(ctx, model.Team{
		TeamID:    "team1",
		AuctionID: "auction1",
		Name:      "team one",
		Budget:    decimal.NewFromInt(budget1),
	}))
	require.NoError(t, store.AddTeam(ctx, model.Team{
		TeamID:    "team2",
		AuctionID: "auction1",
		Name:      "team two",
		Budget:    decimal.NewFromInt(budget2),
	}))
	return store
}
