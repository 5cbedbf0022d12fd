package repository

import (
	"context"
	"errors"
	"fmt"

	"auction-engine/internal/auctionerrors"
	model "auction-engine/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore is the Postgres-backed implementation of Store. Per-player
// serialization of bid commits and sales is done by taking a row lock on the
// player inside a transaction, so two racing commits for the same player are
// ordered by the database.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore wraps an open gorm connection and migrates the schema.
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&model.Auction{}, &model.Player{}, &model.Team{}, &model.Bid{}); err != nil {
		return nil, fmt.Errorf("migrate auction schema: %w", err)
	}
	return &GormStore{db: db}, nil
}

func (s *GormStore) CreateAuction(ctx context.Context, auction model.Auction) error {
	if err := s.db.WithContext(ctx).Create(&auction).Error; err != nil {
		return fmt.Errorf("create auction %s: %w", auction.AuctionID, err)
	}
	return nil
}

func (s *GormStore) GetAuction(ctx context.Context, auctionID string) (model.Auction, error) {
	var auction model.Auction
	err := s.db.WithContext(ctx).First(&auction, "auction_id = ?", auctionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Auction{}, fmt.Errorf("get auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	if err != nil {
		return model.Auction{}, fmt.Errorf("get auction %s: %w", auctionID, err)
	}
	return auction, nil
}

func (s *GormStore) ListAuctionsByStatus(ctx context.Context, status model.AuctionStatus) ([]model.Auction, error) {
	var auctions []model.Auction
	if err := s.db.WithContext(ctx).Where("status = ?", status).Find(&auctions).Error; err != nil {
		return nil, fmt.Errorf("list auctions by status %s: %w", status, err)
	}
	return auctions, nil
}

func (s *GormStore) TransitionAuctionStatus(ctx context.Context, auctionID string, from, to model.AuctionStatus) (bool, error) {
	res := s.db.WithContext(ctx).Model(&model.Auction{}).
		Where("auction_id = ? AND status = ?", auctionID, from).
		Update("status", to)
	if res.Error != nil {
		return false, fmt.Errorf("transition auction %s: %w", auctionID, res.Error)
	}
	if res.RowsAffected > 0 {
		return true, nil
	}

	// Either the auction is gone or it is no longer in the from status.
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.Auction{}).Where("auction_id = ?", auctionID).Count(&count).Error; err != nil {
		return false, fmt.Errorf("transition auction %s: %w", auctionID, err)
	}
	if count == 0 {
		return false, fmt.Errorf("transition auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	return false, nil
}

func (s *GormStore) AddPlayer(ctx context.Context, player model.Player) error {
	if err := s.db.WithContext(ctx).Create(&player).Error; err != nil {
		return fmt.Errorf("add player %s: %w", player.PlayerID, err)
	}
	return nil
}

func (s *GormStore) AddTeam(ctx context.Context, team model.Team) error {
	if err := s.db.WithContext(ctx).Create(&team).Error; err != nil {
		return fmt.Errorf("add team %s: %w", team.TeamID, err)
	}
	return nil
}

func (s *GormStore) GetPlayer(ctx context.Context, auctionID, playerID string) (model.Player, error) {
	var player model.Player
	err := s.db.WithContext(ctx).First(&player, "player_id = ? AND auction_id = ?", playerID, auctionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Player{}, fmt.Errorf("get player %s in auction %s: %w", playerID, auctionID, auctionerrors.ErrPlayerNotFound)
	}
	if err != nil {
		return model.Player{}, fmt.Errorf("get player %s: %w", playerID, err)
	}
	return player, nil
}

func (s *GormStore) GetTeam(ctx context.Context, auctionID, teamID string) (model.Team, error) {
	var team model.Team
	err := s.db.WithContext(ctx).First(&team, "team_id = ? AND auction_id = ?", teamID, auctionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Team{}, fmt.Errorf("get team %s in auction %s: %w", teamID, auctionID, auctionerrors.ErrTeamNotFound)
	}
	if err != nil {
		return model.Team{}, fmt.Errorf("get team %s: %w", teamID, err)
	}
	return team, nil
}

func (s *GormStore) ListPlayers(ctx context.Context, auctionID string) ([]model.Player, error) {
	var players []model.Player
	if err := s.db.WithContext(ctx).Where("auction_id = ?", auctionID).Find(&players).Error; err != nil {
		return nil, fmt.Errorf("list players for auction %s: %w", auctionID, err)
	}
	return players, nil
}

func (s *GormStore) ApplySale(ctx context.Context, auctionID, playerID, teamID string, amount decimal.Decimal) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var player model.Player
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&player, "player_id = ? AND auction_id = ?", playerID, auctionID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("apply sale for player %s: %w", playerID, auctionerrors.ErrPlayerNotFound)
		}
		if err != nil {
			return fmt.Errorf("apply sale for player %s: %w", playerID, err)
		}

		if player.Sold() {
			if player.SoldToTeamID == teamID && player.SoldPrice.Equal(amount) {
				return nil // already applied
			}
			return fmt.Errorf("apply sale for player %s: %w", playerID, auctionerrors.ErrPlayerSoldToOther)
		}

		res := tx.Model(&model.Team{}).
			Where("team_id = ? AND auction_id = ?", teamID, auctionID).
			Update("spent_amount", gorm.Expr("spent_amount + ?", amount))
		if res.Error != nil {
			return fmt.Errorf("apply sale for player %s: %w", playerID, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("apply sale for player %s: %w", playerID, auctionerrors.ErrTeamNotFound)
		}

		updates := map[string]any{
			"sold_to_team_id": teamID,
			"sold_price":      amount,
			"is_unsold":       false,
		}
		if err := tx.Model(&model.Player{}).Where("player_id = ?", playerID).Updates(updates).Error; err != nil {
			return fmt.Errorf("apply sale for player %s: %w", playerID, err)
		}
		return nil
	})
}

func (s *GormStore) MarkUnsold(ctx context.Context, auctionID, playerID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var player model.Player
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&player, "player_id = ? AND auction_id = ?", playerID, auctionID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("mark unsold player %s: %w", playerID, auctionerrors.ErrPlayerNotFound)
		}
		if err != nil {
			return fmt.Errorf("mark unsold player %s: %w", playerID, err)
		}
		if player.Sold() {
			return fmt.Errorf("mark unsold player %s: %w", playerID, auctionerrors.ErrPlayerSoldToOther)
		}
		if err := tx.Model(&model.Player{}).Where("player_id = ?", playerID).Update("is_unsold", true).Error; err != nil {
			return fmt.Errorf("mark unsold player %s: %w", playerID, err)
		}
		return nil
	})
}

func (s *GormStore) InsertAcceptedBid(ctx context.Context, bid model.Bid, priorHigh *model.Bid) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The player row is the serialization point: locking it orders all
		// concurrent commits for the same player.
		var player model.Player
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&player, "player_id = ?", bid.PlayerID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("insert bid %s: %w", bid.BidID, auctionerrors.ErrPlayerNotFound)
		}
		if err != nil {
			return fmt.Errorf("insert bid %s: %w", bid.BidID, err)
		}

		var current model.Bid
		err = tx.Where("player_id = ? AND accepted = ?", bid.PlayerID, true).
			Order("created_at DESC").
			First(&current).Error
		hasCurrent := err == nil
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("insert bid %s: %w", bid.BidID, err)
		}

		switch {
		case hasCurrent != (priorHigh != nil):
			return fmt.Errorf("insert bid %s: %w", bid.BidID, auctionerrors.ErrBidConflict)
		case hasCurrent && current.BidID != priorHigh.BidID:
			return fmt.Errorf("insert bid %s: %w", bid.BidID, auctionerrors.ErrBidConflict)
		case hasCurrent && bid.Amount.LessThanOrEqual(current.Amount):
			return fmt.Errorf("insert bid %s: %w", bid.BidID, auctionerrors.ErrBidConflict)
		}

		bid.Accepted = true
		if err := tx.Create(&bid).Error; err != nil {
			return fmt.Errorf("insert bid %s: %w", bid.BidID, err)
		}
		return nil
	})
}

func (s *GormStore) HighestAcceptedBid(ctx context.Context, playerID string) (model.Bid, error) {
	var bid model.Bid
	err := s.db.WithContext(ctx).
		Where("player_id = ? AND accepted = ?", playerID, true).
		Order("created_at DESC").
		First(&bid).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Bid{}, fmt.Errorf("highest accepted bid for player %s: %w", playerID, auctionerrors.ErrNoBids)
	}
	if err != nil {
		return model.Bid{}, fmt.Errorf("highest accepted bid for player %s: %w", playerID, err)
	}
	return bid, nil
}

func (s *GormStore) BidsByAuction(ctx context.Context, auctionID string) ([]model.Bid, error) {
	var bids []model.Bid
	err := s.db.WithContext(ctx).
		Where("auction_id = ?", auctionID).
		Order("created_at DESC").
		Find(&bids).Error
	if err != nil {
		return nil, fmt.Errorf("bids for auction %s: %w", auctionID, err)
	}
	return bids, nil
}

func (s *GormStore) BidsByPlayer(ctx context.Context, playerID string) ([]model.Bid, error) {
	var bids []model.Bid
	err := s.db.WithContext(ctx).
		Where("player_id = ?", playerID).
		Order("created_at DESC").
		Find(&bids).Error
	if err != nil {
		return nil, fmt.Errorf("bids for player %s: %w", playerID, err)
	}
	return bids, nil
}

func (s *GormStore) LatestAcceptedInAuction(ctx context.Context, auctionID string) (model.Bid, error) {
	var bid model.Bid
	err := s.db.WithContext(ctx).
		Where("auction_id = ? AND accepted = ?", auctionID, true).
		Order("created_at DESC").
		First(&bid).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Bid{}, fmt.Errorf("latest accepted bid in auction %s: %w", auctionID, auctionerrors.ErrNoBids)
	}
	if err != nil {
		return model.Bid{}, fmt.Errorf("latest accepted bid in auction %s: %w", auctionID, err)
	}
	return bid, nil
}
