package repository

import (
	"context"
	"fmt"
	"sync"

	"auction-engine/internal/auctionerrors"
	model "auction-engine/internal/models"

	"github.com/shopspring/decimal"
)

// MemoryStore is a concurrency-safe in-memory implementation of Store. It is
// the default backend when no DATABASE_URL is configured and the backbone of
// the test suites. Every mutating method is atomic under a single lock, which
// gives it the same single-document atomicity the contracts assume of an
// external document store.
type MemoryStore struct {
	mu       sync.RWMutex
	auctions map[string]model.Auction
	players  map[string]model.Player // key: playerID
	teams    map[string]model.Team   // key: teamID
	bids     map[string][]model.Bid  // key: playerID -> bids in insertion order
	bidLog   map[string][]model.Bid  // key: auctionID -> bids in insertion order
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		auctions: make(map[string]model.Auction),
		players:  make(map[string]model.Player),
		teams:    make(map[string]model.Team),
		bids:     make(map[string][]model.Bid),
		bidLog:   make(map[string][]model.Bid),
	}
}

// CreateAuction registers an auction document.
func (s *MemoryStore) CreateAuction(_ context.Context, auction model.Auction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auctions[auction.AuctionID] = auction
	return nil
}

// GetAuction returns the auction document by id.
func (s *MemoryStore) GetAuction(_ context.Context, auctionID string) (model.Auction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	auction, ok := s.auctions[auctionID]
	if !ok {
		return model.Auction{}, fmt.Errorf("get auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	return auction, nil
}

// ListAuctionsByStatus returns all auctions currently in the given status.
func (s *MemoryStore) ListAuctionsByStatus(_ context.Context, status model.AuctionStatus) ([]model.Auction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.Auction
	for _, a := range s.auctions {
		if a.Status == status {
			out = append(out, a)
		}
	}
	return out, nil
}

// TransitionAuctionStatus compare-and-sets the auction status.
func (s *MemoryStore) TransitionAuctionStatus(_ context.Context, auctionID string, from, to model.AuctionStatus) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	auction, ok := s.auctions[auctionID]
	if !ok {
		return false, fmt.Errorf("transition auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	if auction.Status != from {
		return false, nil
	}
	auction.Status = to
	s.auctions[auctionID] = auction
	return true, nil
}

// AddPlayer registers a roster player.
func (s *MemoryStore) AddPlayer(_ context.Context, player model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players[player.PlayerID] = player
	return nil
}

// AddTeam registers a bidding team.
func (s *MemoryStore) AddTeam(_ context.Context, team model.Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.teams[team.TeamID] = team
	return nil
}

// GetPlayer returns a player scoped to an auction.
func (s *MemoryStore) GetPlayer(_ context.Context, auctionID, playerID string) (model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	player, ok := s.players[playerID]
	if !ok || player.AuctionID != auctionID {
		return model.Player{}, fmt.Errorf("get player %s in auction %s: %w", playerID, auctionID, auctionerrors.ErrPlayerNotFound)
	}
	return player, nil
}

// GetTeam returns a team scoped to an auction.
func (s *MemoryStore) GetTeam(_ context.Context, auctionID, teamID string) (model.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	team, ok := s.teams[teamID]
	if !ok || team.AuctionID != auctionID {
		return model.Team{}, fmt.Errorf("get team %s in auction %s: %w", teamID, auctionID, auctionerrors.ErrTeamNotFound)
	}
	return team, nil
}

// ListPlayers returns every player registered for the auction.
func (s *MemoryStore) ListPlayers(_ context.Context, auctionID string) ([]model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.Player
	for _, p := range s.players {
		if p.AuctionID == auctionID {
			out = append(out, p)
		}
	}
	return out, nil
}

// ApplySale assigns the player to the team and debits the budget, atomically
// and idempotently.
func (s *MemoryStore) ApplySale(_ context.Context, auctionID, playerID, teamID string, amount decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	player, ok := s.players[playerID]
	if !ok || player.AuctionID != auctionID {
		return fmt.Errorf("apply sale for player %s: %w", playerID, auctionerrors.ErrPlayerNotFound)
	}
	team, ok := s.teams[teamID]
	if !ok || team.AuctionID != auctionID {
		return fmt.Errorf("apply sale for player %s: %w", playerID, auctionerrors.ErrTeamNotFound)
	}

	if player.Sold() {
		if player.SoldToTeamID == teamID && player.SoldPrice.Equal(amount) {
			return nil // already applied
		}
		return fmt.Errorf("apply sale for player %s: %w", playerID, auctionerrors.ErrPlayerSoldToOther)
	}

	player.SoldToTeamID = teamID
	player.SoldPrice = amount
	player.IsUnsold = false
	team.SpentAmount = team.SpentAmount.Add(amount)

	s.players[playerID] = player
	s.teams[teamID] = team
	return nil
}

// MarkUnsold flags the player as gone unsold.
func (s *MemoryStore) MarkUnsold(_ context.Context, auctionID, playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	player, ok := s.players[playerID]
	if !ok || player.AuctionID != auctionID {
		return fmt.Errorf("mark unsold player %s: %w", playerID, auctionerrors.ErrPlayerNotFound)
	}
	if player.Sold() {
		return fmt.Errorf("mark unsold player %s: %w", playerID, auctionerrors.ErrPlayerSoldToOther)
	}

	player.IsUnsold = true
	s.players[playerID] = player
	return nil
}

// InsertAcceptedBid appends the bid if and only if the player's current
// accepted high still matches priorHigh and the new amount strictly exceeds
// it. The check and append happen under one lock, so two racing inserts for
// the same player cannot both pass.
func (s *MemoryStore) InsertAcceptedBid(_ context.Context, bid model.Bid, priorHigh *model.Bid) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.highestAcceptedLocked(bid.PlayerID)

	switch {
	case current == nil && priorHigh != nil:
		return fmt.Errorf("insert bid %s: %w", bid.BidID, auctionerrors.ErrBidConflict)
	case current != nil && priorHigh == nil:
		return fmt.Errorf("insert bid %s: %w", bid.BidID, auctionerrors.ErrBidConflict)
	case current != nil && current.BidID != priorHigh.BidID:
		return fmt.Errorf("insert bid %s: %w", bid.BidID, auctionerrors.ErrBidConflict)
	case current != nil && bid.Amount.LessThanOrEqual(current.Amount):
		return fmt.Errorf("insert bid %s: %w", bid.BidID, auctionerrors.ErrBidConflict)
	}

	bid.Accepted = true
	s.bids[bid.PlayerID] = append(s.bids[bid.PlayerID], bid)
	s.bidLog[bid.AuctionID] = append(s.bidLog[bid.AuctionID], bid)
	return nil
}

// highestAcceptedLocked returns the most recent accepted bid for the player.
// Caller must hold at least a read lock.
func (s *MemoryStore) highestAcceptedLocked(playerID string) *model.Bid {
	bids := s.bids[playerID]
	for i := len(bids) - 1; i >= 0; i-- {
		if bids[i].Accepted {
			b := bids[i]
			return &b
		}
	}
	return nil
}

// HighestAcceptedBid returns the current high bid for the player.
func (s *MemoryStore) HighestAcceptedBid(_ context.Context, playerID string) (model.Bid, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if high := s.highestAcceptedLocked(playerID); high != nil {
		return *high, nil
	}
	return model.Bid{}, fmt.Errorf("highest accepted bid for player %s: %w", playerID, auctionerrors.ErrNoBids)
}

// BidsByAuction returns all bids placed in the auction, newest first.
func (s *MemoryStore) BidsByAuction(_ context.Context, auctionID string) ([]model.Bid, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return newestFirst(s.bidLog[auctionID]), nil
}

// BidsByPlayer returns the bid history of a player, newest first.
func (s *MemoryStore) BidsByPlayer(_ context.Context, playerID string) ([]model.Bid, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return newestFirst(s.bids[playerID]), nil
}

// LatestAcceptedInAuction returns the most recently accepted bid in the
// auction, or ErrNoBids.
func (s *MemoryStore) LatestAcceptedInAuction(_ context.Context, auctionID string) (model.Bid, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	log := s.bidLog[auctionID]
	for i := len(log) - 1; i >= 0; i-- {
		if log[i].Accepted {
			return log[i], nil
		}
	}
	return model.Bid{}, fmt.Errorf("latest accepted bid in auction %s: %w", auctionID, auctionerrors.ErrNoBids)
}

// newestFirst returns a reversed copy of a chronologically appended bid slice.
func newestFirst(bids []model.Bid) []model.Bid {
	out := make([]model.Bid, 0, len(bids))
	for i := len(bids) - 1; i >= 0; i-- {
		out = append(out, bids[i])
	}
	return out
}
