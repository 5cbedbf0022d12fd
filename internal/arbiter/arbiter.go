package arbiter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"auction-engine/internal/auctionerrors"
	model "auction-engine/internal/models"
	"auction-engine/internal/repository"
	"auction-engine/utils"

	"github.com/shopspring/decimal"
)

// maxCommitAttempts bounds the read-validate-commit retry loop when
// concurrent bids for the same player keep invalidating the floor.
const maxCommitAttempts = 3

// RejectionReason classifies why a structurally valid bid was not accepted.
type RejectionReason string

const (
	ReasonAuctionNotLive     RejectionReason = "AUCTION_NOT_LIVE"
	ReasonPlayerUnavailable  RejectionReason = "PLAYER_UNAVAILABLE"
	ReasonTeamNotFound       RejectionReason = "TEAM_NOT_FOUND"
	ReasonBidTooLow          RejectionReason = "BID_TOO_LOW"
	ReasonInsufficientBudget RejectionReason = "INSUFFICIENT_BUDGET"
	ReasonContentionExceeded RejectionReason = "CONTENTION_EXCEEDED"
)

// BidRequest is a single bid attempt by a team on a player.
type BidRequest struct {
	AuctionID string
	PlayerID  string
	TeamID    string
	Amount    decimal.Decimal
	Channel   model.BidChannel
	CallerID  string
}

// BidOutcome is the arbiter's verdict. Accepted carries the committed bid;
// a rejection carries the reason and, for BID_TOO_LOW, the floor the bid
// failed to clear. Rejections are outcomes, not errors — errors mean the
// store could not be consulted.
type BidOutcome struct {
	Accepted bool            `json:"accepted"`
	Bid      model.Bid       `json:"bid,omitempty"`
	Reason   RejectionReason `json:"reason,omitempty"`
	Floor    decimal.Decimal `json:"floor,omitempty"`
}

// Arbiter validates bid attempts against the auction directory, roster and
// ledger, and commits winning bids. All commits go through the ledger's
// conditional insert, which keeps the accepted-bid sequence of every player
// strictly increasing even under concurrent submissions.
type Arbiter struct {
	directory repository.AuctionDirectory
	roster    repository.RosterStore
	ledger    repository.BidLedger
}

// NewArbiter creates an Arbiter over the given stores.
func NewArbiter(directory repository.AuctionDirectory, roster repository.RosterStore, ledger repository.BidLedger) *Arbiter {
	return &Arbiter{
		directory: directory,
		roster:    roster,
		ledger:    ledger,
	}
}

// EvaluateBid runs the full validation chain and, if every check passes,
// atomically commits the bid as the player's new accepted high. On a commit
// conflict the whole read-validate-commit cycle is retried against fresh
// state, up to maxCommitAttempts, after which the bid is rejected with
// CONTENTION_EXCEEDED.
func (a *Arbiter) EvaluateBid(ctx context.Context, req BidRequest) (BidOutcome, error) {
	for attempt := 1; attempt <= maxCommitAttempts; attempt++ {
		outcome, err := a.tryCommit(ctx, req)
		if err != nil {
			if errors.Is(err, auctionerrors.ErrBidConflict) {
				utils.Warn("bid commit conflict, retrying", map[string]any{
					"auction_id": req.AuctionID,
					"player_id":  req.PlayerID,
					"team_id":    req.TeamID,
					"attempt":    attempt,
				})
				continue
			}
			return BidOutcome{}, fmt.Errorf("arbiter: evaluate bid for player %s: %w", req.PlayerID, err)
		}
		return outcome, nil
	}

	return BidOutcome{Accepted: false, Reason: ReasonContentionExceeded}, nil
}

// tryCommit performs one read-validate-commit cycle. It returns
// ErrBidConflict when another bid was accepted between the floor read and
// the insert.
func (a *Arbiter) tryCommit(ctx context.Context, req BidRequest) (BidOutcome, error) {
	auction, err := a.directory.GetAuction(ctx, req.AuctionID)
	if errors.Is(err, auctionerrors.ErrAuctionNotFound) {
		return reject(ReasonAuctionNotLive), nil
	}
	if err != nil {
		return BidOutcome{}, err
	}
	if auction.Status != model.StatusLive {
		return reject(ReasonAuctionNotLive), nil
	}

	player, err := a.roster.GetPlayer(ctx, req.AuctionID, req.PlayerID)
	if errors.Is(err, auctionerrors.ErrPlayerNotFound) {
		return reject(ReasonPlayerUnavailable), nil
	}
	if err != nil {
		return BidOutcome{}, err
	}
	if player.Sold() {
		return reject(ReasonPlayerUnavailable), nil
	}

	team, err := a.roster.GetTeam(ctx, req.AuctionID, req.TeamID)
	if errors.Is(err, auctionerrors.ErrTeamNotFound) {
		return reject(ReasonTeamNotFound), nil
	}
	if err != nil {
		return BidOutcome{}, err
	}

	floor, priorHigh, err := a.currentFloor(ctx, auction, player)
	if err != nil {
		return BidOutcome{}, err
	}
	if req.Amount.LessThan(floor) {
		out := reject(ReasonBidTooLow)
		out.Floor = floor
		return out, nil
	}

	// Advisory only: the budget is debited at settlement, not here, so the
	// value read can go stale before the sale converges. Tolerated.
	if req.Amount.GreaterThan(team.Remaining()) {
		return reject(ReasonInsufficientBudget), nil
	}

	bid := model.Bid{
		BidID:     utils.GenerateID(),
		AuctionID: req.AuctionID,
		PlayerID:  req.PlayerID,
		TeamID:    req.TeamID,
		Amount:    req.Amount,
		Channel:   req.Channel,
		Accepted:  true,
		CreatedAt: time.Now().UTC(),
	}

	if err := a.ledger.InsertAcceptedBid(ctx, bid, priorHigh); err != nil {
		return BidOutcome{}, err
	}

	return BidOutcome{Accepted: true, Bid: bid}, nil
}

// currentFloor computes the minimum acceptable amount for the player: the
// base price when no bid has been accepted yet, otherwise the current high
// plus the auction's minimum increment. The prior high is returned so the
// commit can be guarded on it.
func (a *Arbiter) currentFloor(ctx context.Context, auction model.Auction, player model.Player) (decimal.Decimal, *model.Bid, error) {
	high, err := a.ledger.HighestAcceptedBid(ctx, player.PlayerID)
	if errors.Is(err, auctionerrors.ErrNoBids) {
		return player.BasePrice, nil, nil
	}
	if err != nil {
		return decimal.Decimal{}, nil, err
	}
	return high.Amount.Add(auction.MinIncrement()), &high, nil
}

func reject(reason RejectionReason) BidOutcome {
	return BidOutcome{Accepted: false, Reason: reason}
}
