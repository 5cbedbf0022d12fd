package hub

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"auction-engine/internal/arbiter"
	"auction-engine/internal/auctionerrors"
	model "auction-engine/internal/models"
	"auction-engine/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// evaluatorFunc adapts a function to the BidEvaluator interface.
type evaluatorFunc func(ctx context.Context, req arbiter.BidRequest) (arbiter.BidOutcome, error)

func (f evaluatorFunc) EvaluateBid(ctx context.Context, req arbiter.BidRequest) (arbiter.BidOutcome, error) {
	return f(ctx, req)
}

func liveHub(t *testing.T) (*Hub, *repository.MemoryStore) {
	t.Helper()
	ctx := context.Background()
	store := repository.NewMemoryStore()

	now := time.Now().UTC()
	require.NoError(t, store.CreateAuction(ctx, model.Auction{
		AuctionID: "auction1",
		StartTime: now.Add(-time.Hour),
		EndTime:   now.Add(time.Hour),
		Status:    model.StatusLive,
		Settings:  model.AuctionSettings{MinBidIncrement: decimal.NewFromInt(100)},
	}))
	for _, id := range []string{"player1", "player2"} {
		require.NoError(t, store.AddPlayer(ctx, model.Player{
			PlayerID:  id,
			AuctionID: "auction1",
			BasePrice: decimal.NewFromInt(1000),
		}))
	}
	require.NoError(t, store.AddTeam(ctx, model.Team{
		TeamID:    "team1",
		AuctionID: "auction1",
		Budget:    decimal.NewFromInt(100000),
	}))

	arb := arbiter.NewArbiter(store, store, store)
	return NewHub(arb), store
}

func bidRequest(playerID string, amount int64) arbiter.BidRequest {
	return arbiter.BidRequest{
		AuctionID: "auction1",
		PlayerID:  playerID,
		TeamID:    "team1",
		Amount:    decimal.NewFromInt(amount),
		Channel:   model.ChannelWeb,
		CallerID:  "caller1",
	}
}

func receiveEvent(t *testing.T, sub *Subscriber) Event {
	t.Helper()
	select {
	case evt := <-sub.Events():
		return evt
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func requireNoEvent(t *testing.T, sub *Subscriber) {
	t.Helper()
	select {
	case evt := <-sub.Events():
		t.Fatalf("unexpected event: %+v", evt)
	case <-time.After(50 * time.Millisecond):
	}
}

// An accepted bid reaches every room member, submitter included. A repeated
// join does not cause duplicate delivery.
func TestHub_AcceptedBidBroadcast(t *testing.T) {
	t.Parallel()

	h, _ := liveHub(t)
	submitter := NewSubscriber()
	watcher := NewSubscriber()
	h.Join("auction1", submitter)
	h.Join("auction1", submitter) // idempotent
	h.Join("auction1", watcher)

	outcome, err := h.SubmitBid(context.Background(), bidRequest("player1", 1000))
	require.NoError(t, err)
	require.True(t, outcome.Accepted)

	for _, sub := range []*Subscriber{submitter, watcher} {
		evt := receiveEvent(t, sub)
		require.Equal(t, EventName("auction1"), evt.Name)
		require.Equal(t, outcome.Bid.BidID, evt.Bid.BidID)
		require.True(t, evt.Bid.Amount.Equal(decimal.NewFromInt(1000)))
		requireNoEvent(t, sub)
	}
}

// Rejections go back to the submitter only, nothing is broadcast.
func TestHub_RejectionNotBroadcast(t *testing.T) {
	t.Parallel()

	h, _ := liveHub(t)
	watcher := NewSubscriber()
	h.Join("auction1", watcher)

	outcome, err := h.SubmitBid(context.Background(), bidRequest("player1", 1000))
	require.NoError(t, err)
	require.True(t, outcome.Accepted)
	receiveEvent(t, watcher)

	outcome, err = h.SubmitBid(context.Background(), bidRequest("player1", 1050))
	require.NoError(t, err)
	require.False(t, outcome.Accepted)
	require.Equal(t, arbiter.ReasonBidTooLow, outcome.Reason)

	requireNoEvent(t, watcher)
}

// Structurally invalid submissions never reach the arbiter.
func TestHub_MalformedRequest(t *testing.T) {
	t.Parallel()

	called := false
	h := NewHub(evaluatorFunc(func(context.Context, arbiter.BidRequest) (arbiter.BidOutcome, error) {
		called = true
		return arbiter.BidOutcome{}, nil
	}))

	tests := []struct {
		name string
		req  arbiter.BidRequest
	}{
		{name: "missing_auction", req: arbiter.BidRequest{PlayerID: "p", TeamID: "t", Amount: decimal.NewFromInt(1)}},
		{name: "missing_player", req: arbiter.BidRequest{AuctionID: "a", TeamID: "t", Amount: decimal.NewFromInt(1)}},
		{name: "missing_team", req: arbiter.BidRequest{AuctionID: "a", PlayerID: "p", Amount: decimal.NewFromInt(1)}},
		{name: "zero_amount", req: arbiter.BidRequest{AuctionID: "a", PlayerID: "p", TeamID: "t"}},
		{name: "negative_amount", req: arbiter.BidRequest{AuctionID: "a", PlayerID: "p", TeamID: "t", Amount: decimal.NewFromInt(-5)}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			_, err := h.SubmitBid(context.Background(), tc.req)
			require.ErrorIs(t, err, auctionerrors.ErrMalformedRequest)
		})
	}
	require.False(t, called)
}

// An arbiter infrastructure failure is reported to the submitter only and
// never broadcast as if a commit happened.
func TestHub_ArbiterUnavailable(t *testing.T) {
	t.Parallel()

	h := NewHub(evaluatorFunc(func(context.Context, arbiter.BidRequest) (arbiter.BidOutcome, error) {
		return arbiter.BidOutcome{}, errors.New("store unreachable")
	}))
	watcher := NewSubscriber()
	h.Join("auction1", watcher)

	_, err := h.SubmitBid(context.Background(), bidRequest("player1", 1000))
	require.ErrorIs(t, err, auctionerrors.ErrArbiterUnavailable)

	requireNoEvent(t, watcher)
}

// A submission that exceeds its deadline surfaces as a timeout.
func TestHub_SubmitTimeout(t *testing.T) {
	t.Parallel()

	h := NewHub(evaluatorFunc(func(ctx context.Context, _ arbiter.BidRequest) (arbiter.BidOutcome, error) {
		<-ctx.Done()
		return arbiter.BidOutcome{}, ctx.Err()
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := h.SubmitBid(ctx, bidRequest("player1", 1000))
	require.ErrorIs(t, err, auctionerrors.ErrSubmitTimeout)
}

// Broadcast order matches commit order across players of the same room.
func TestHub_BroadcastOrderMatchesCommitOrder(t *testing.T) {
	t.Parallel()

	h, _ := liveHub(t)
	watcher := NewSubscriber()
	h.Join("auction1", watcher)

	var wantOrder []string
	amounts := map[string][]int64{
		"player1": {1000, 1100, 1200},
		"player2": {1000, 1100},
	}
	sequence := []string{"player1", "player2", "player1", "player2", "player1"}
	next := map[string]int{}

	for _, playerID := range sequence {
		amount := amounts[playerID][next[playerID]]
		next[playerID]++

		outcome, err := h.SubmitBid(context.Background(), bidRequest(playerID, amount))
		require.NoError(t, err)
		require.True(t, outcome.Accepted, "bid %d on %s should be accepted", amount, playerID)
		wantOrder = append(wantOrder, outcome.Bid.BidID)
	}

	for i, wantID := range wantOrder {
		evt := receiveEvent(t, watcher)
		require.Equal(t, wantID, evt.Bid.BidID, "event %d out of order", i)
	}
	requireNoEvent(t, watcher)
}

// Leaving a room stops delivery; unsubscribe removes the subscriber from
// every room.
func TestHub_LeaveAndUnsubscribe(t *testing.T) {
	t.Parallel()

	h, _ := liveHub(t)
	sub := NewSubscriber()
	h.Join("auction1", sub)

	h.Leave("auction1", sub)
	outcome, err := h.SubmitBid(context.Background(), bidRequest("player1", 1000))
	require.NoError(t, err)
	require.True(t, outcome.Accepted)
	requireNoEvent(t, sub)

	h.Join("auction1", sub)
	h.Unsubscribe(sub)

	outcome, err = h.SubmitBid(context.Background(), bidRequest("player1", 1100))
	require.NoError(t, err)
	require.True(t, outcome.Accepted)

	select {
	case <-sub.Done():
	default:
		t.Fatal("unsubscribe should close the subscriber")
	}
}

// Submissions to different auctions do not serialize against each other;
// smoke check that rooms are independent.
func TestHub_RoomsAreIndependent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := repository.NewMemoryStore()
	now := time.Now().UTC()
	for i := 1; i <= 2; i++ {
		auctionID := fmt.Sprintf("auction%d", i)
		require.NoError(t, store.CreateAuction(ctx, model.Auction{
			AuctionID: auctionID,
			StartTime: now.Add(-time.Hour),
			EndTime:   now.Add(time.Hour),
			Status:    model.StatusLive,
		}))
		require.NoError(t, store.AddPlayer(ctx, model.Player{
			PlayerID:  fmt.Sprintf("player%d", i),
			AuctionID: auctionID,
			BasePrice: decimal.NewFromInt(1000),
		}))
		require.NoError(t, store.AddTeam(ctx, model.Team{
			TeamID:    fmt.Sprintf("team%d", i),
			AuctionID: auctionID,
			Budget:    decimal.NewFromInt(10000),
		}))
	}

	h := NewHub(arbiter.NewArbiter(store, store, store))
	subA := NewSubscriber()
	subB := NewSubscriber()
	h.Join("auction1", subA)
	h.Join("auction2", subB)

	outcome, err := h.SubmitBid(ctx, arbiter.BidRequest{
		AuctionID: "auction1", PlayerID: "player1", TeamID: "team1",
		Amount: decimal.NewFromInt(1000), Channel: model.ChannelWeb,
	})
	require.NoError(t, err)
	require.True(t, outcome.Accepted)

	outcome, err = h.SubmitBid(ctx, arbiter.BidRequest{
		AuctionID: "auction2", PlayerID: "player2", TeamID: "team2",
		Amount: decimal.NewFromInt(1000), Channel: model.ChannelWeb,
	})
	require.NoError(t, err)
	require.True(t, outcome.Accepted)

	evtA := receiveEvent(t, subA)
	require.Equal(t, EventName("auction1"), evtA.Name)
	requireNoEvent(t, subA)

	evtB := receiveEvent(t, subB)
	require.Equal(t, EventName("auction2"), evtB.Name)
	requireNoEvent(t, subB)
}
