package repository

import (
	"context"

	model "auction-engine/internal/models"

	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=repository

// AuctionDirectory holds auction metadata and lifecycle state.
type AuctionDirectory interface {
	CreateAuction(ctx context.Context, auction model.Auction) error
	GetAuction(ctx context.Context, auctionID string) (model.Auction, error)
	ListAuctionsByStatus(ctx context.Context, status model.AuctionStatus) ([]model.Auction, error)
	// TransitionAuctionStatus moves an auction from one status to another as a
	// compare-and-set: it returns false (and no error) when the current status
	// no longer matches from, so lifecycle sweeps are safe to re-run.
	TransitionAuctionStatus(ctx context.Context, auctionID string, from, to model.AuctionStatus) (bool, error)
}

// RosterStore holds the players and teams of an auction. ApplySale is the only
// path that mutates Player.SoldToTeamID and Team.SpentAmount.
type RosterStore interface {
	AddPlayer(ctx context.Context, player model.Player) error
	AddTeam(ctx context.Context, team model.Team) error
	GetPlayer(ctx context.Context, auctionID, playerID string) (model.Player, error)
	GetTeam(ctx context.Context, auctionID, teamID string) (model.Team, error)
	ListPlayers(ctx context.Context, auctionID string) ([]model.Player, error)
	// ApplySale atomically assigns the player to the team at the given amount
	// and debits the team's budget. Re-applying the same sale is a no-op;
	// applying a different sale to an already-sold player fails with
	// ErrPlayerSoldToOther.
	ApplySale(ctx context.Context, auctionID, playerID, teamID string, amount decimal.Decimal) error
	// MarkUnsold flags a player as gone unsold. Idempotent; fails with
	// ErrPlayerSoldToOther if the player was sold in the meantime.
	MarkUnsold(ctx context.Context, auctionID, playerID string) error
}

// BidLedger is the append-only record of bid attempts. The current high bid
// for a player is a read, not cached state: it is the most recent accepted
// entry for that player.
type BidLedger interface {
	// InsertAcceptedBid appends bid as the new accepted high bid for its
	// player. The insert is conditional on the ledger's current accepted high
	// still being priorHigh (nil when the caller observed no accepted bid):
	// if another bid was accepted in between, or bid.Amount does not exceed
	// the current high, the insert fails with ErrBidConflict and nothing is
	// written. This conditional write is what serializes concurrent bids on
	// the same player.
	InsertAcceptedBid(ctx context.Context, bid model.Bid, priorHigh *model.Bid) error
	// HighestAcceptedBid returns the most recent accepted bid for the player,
	// or ErrNoBids. Accepted amounts are strictly increasing, so most recent
	// and highest coincide.
	HighestAcceptedBid(ctx context.Context, playerID string) (model.Bid, error)
	BidsByAuction(ctx context.Context, auctionID string) ([]model.Bid, error)
	BidsByPlayer(ctx context.Context, playerID string) ([]model.Bid, error)
	// LatestAcceptedInAuction returns the most recently accepted bid across
	// the whole auction, or ErrNoBids. Used by the live reconciliation
	// snapshot for reconnecting clients.
	LatestAcceptedInAuction(ctx context.Context, auctionID string) (model.Bid, error)
}

// Store is the full persistence surface of the bidding engine.
type Store interface {
	AuctionDirectory
	RosterStore
	BidLedger
}
