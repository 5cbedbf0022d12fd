package settlement

import (
	"context"
	"errors"
	"fmt"

	"auction-engine/internal/auctionerrors"
	model "auction-engine/internal/models"
	"auction-engine/internal/repository"
	"auction-engine/utils"

	"github.com/shopspring/decimal"
)

// SaleExpectation is the optional defensive check an external caller can
// attach to a finalize: the sale must match this team and amount or the call
// fails with ErrPlayerSoldToOther.
type SaleExpectation struct {
	TeamID string
	Amount decimal.Decimal
}

// Settler finalizes player sales: it reads the winning bid from the ledger
// and applies it to the roster. Finalize is idempotent so the triggering
// event may be delivered more than once.
type Settler struct {
	roster repository.RosterStore
	ledger repository.BidLedger
}

// NewSettler creates a Settler over the given stores.
func NewSettler(roster repository.RosterStore, ledger repository.BidLedger) *Settler {
	return &Settler{roster: roster, ledger: ledger}
}

// Finalize settles a player. With no accepted bid the player is marked
// unsold; otherwise the most recent accepted bid (the high bid, by the
// ledger invariant) becomes the sale: the player is assigned to the team and
// the team's spent amount is debited, atomically. Finalizing an already-sold
// player returns the existing sale unchanged.
func (s *Settler) Finalize(ctx context.Context, auctionID, playerID string, expect *SaleExpectation) (model.SaleRecord, error) {
	player, err := s.roster.GetPlayer(ctx, auctionID, playerID)
	if err != nil {
		return model.SaleRecord{}, fmt.Errorf("settlement: finalize player %s: %w", playerID, err)
	}

	if player.Sold() {
		record := saleOf(player)
		if expect != nil && !matches(record, *expect) {
			return model.SaleRecord{}, fmt.Errorf("settlement: finalize player %s: %w", playerID, auctionerrors.ErrPlayerSoldToOther)
		}
		return record, nil
	}

	high, err := s.ledger.HighestAcceptedBid(ctx, playerID)
	if errors.Is(err, auctionerrors.ErrNoBids) {
		return s.markUnsold(ctx, auctionID, playerID)
	}
	if err != nil {
		return model.SaleRecord{}, fmt.Errorf("settlement: finalize player %s: %w", playerID, err)
	}

	record := model.SaleRecord{
		AuctionID: auctionID,
		PlayerID:  playerID,
		TeamID:    high.TeamID,
		Amount:    high.Amount,
	}
	if expect != nil && !matches(record, *expect) {
		return model.SaleRecord{}, fmt.Errorf("settlement: finalize player %s: %w", playerID, auctionerrors.ErrPlayerSoldToOther)
	}

	if err := s.roster.ApplySale(ctx, auctionID, playerID, high.TeamID, high.Amount); err != nil {
		return model.SaleRecord{}, fmt.Errorf("settlement: finalize player %s: %w", playerID, err)
	}

	utils.Info("player sold", map[string]any{
		"auction_id": auctionID,
		"player_id":  playerID,
		"team_id":    high.TeamID,
		"amount":     high.Amount.String(),
	})
	return record, nil
}

// markUnsold flags the player as unsold. If a concurrent finalize sold the
// player in the meantime, the stored sale wins and is returned instead.
func (s *Settler) markUnsold(ctx context.Context, auctionID, playerID string) (model.SaleRecord, error) {
	err := s.roster.MarkUnsold(ctx, auctionID, playerID)
	if errors.Is(err, auctionerrors.ErrPlayerSoldToOther) {
		player, getErr := s.roster.GetPlayer(ctx, auctionID, playerID)
		if getErr != nil {
			return model.SaleRecord{}, fmt.Errorf("settlement: finalize player %s: %w", playerID, getErr)
		}
		return saleOf(player), nil
	}
	if err != nil {
		return model.SaleRecord{}, fmt.Errorf("settlement: finalize player %s: %w", playerID, err)
	}
	return model.SaleRecord{AuctionID: auctionID, PlayerID: playerID, Unsold: true}, nil
}

func saleOf(player model.Player) model.SaleRecord {
	return model.SaleRecord{
		AuctionID: player.AuctionID,
		PlayerID:  player.PlayerID,
		TeamID:    player.SoldToTeamID,
		Amount:    player.SoldPrice,
		Unsold:    false,
	}
}

func matches(record model.SaleRecord, expect SaleExpectation) bool {
	if expect.TeamID != "" && expect.TeamID != record.TeamID {
		return false
	}
	if expect.Amount.IsPositive() && !expect.Amount.Equal(record.Amount) {
		return false
	}
	return true
}
