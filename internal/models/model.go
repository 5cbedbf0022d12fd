package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuctionStatus is the lifecycle state of an auction. Transitions are
// monotonic: draft -> scheduled -> live -> closed -> archived.
type AuctionStatus string

const (
	StatusDraft     AuctionStatus = "draft"
	StatusScheduled AuctionStatus = "scheduled"
	StatusLive      AuctionStatus = "live"
	StatusClosed    AuctionStatus = "closed"
	StatusArchived  AuctionStatus = "archived"
)

// BidChannel identifies where a bid was submitted from.
type BidChannel string

const (
	ChannelWeb    BidChannel = "web"
	ChannelMobile BidChannel = "mobile"
)

// DefaultMinBidIncrement applies when an auction's settings leave the
// increment unset.
var DefaultMinBidIncrement = decimal.NewFromInt(100)

// AuctionSettings holds the per-auction bidding rules set by the organiser.
type AuctionSettings struct {
	MinBidIncrement   decimal.Decimal `json:"minBidIncrement" gorm:"type:numeric"`
	MaxTeams          int             `json:"maxTeams"`
	MaxPlayersPerTeam int             `json:"maxPlayersPerTeam"`
	TeamBudget        decimal.Decimal `json:"teamBudget" gorm:"type:numeric"`
}

// Auction is the directory record for a single auction event.
// Bids are accepted only while Status is live.
type Auction struct {
	AuctionID   string          `json:"id" gorm:"column:auction_id;primaryKey"`
	OrganiserID string          `json:"organiserId"`
	Title       string          `json:"title"`
	StartTime   time.Time       `json:"startTime"`
	EndTime     time.Time       `json:"endTime"`
	Timezone    string          `json:"timezone"`
	Status      AuctionStatus   `json:"status" gorm:"index"`
	Settings    AuctionSettings `json:"settings" gorm:"embedded;embeddedPrefix:settings_"`
}

// MinIncrement returns the configured minimum bid increment, falling back
// to the default when unset.
func (a Auction) MinIncrement() decimal.Decimal {
	if a.Settings.MinBidIncrement.IsPositive() {
		return a.Settings.MinBidIncrement
	}
	return DefaultMinBidIncrement
}

// PlayerDetails carries display attributes shown on the auction board.
type PlayerDetails struct {
	Age         int    `json:"age,omitempty"`
	Position    string `json:"position,omitempty"`
	Nationality string `json:"nationality,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

// Player is a roster entry up for sale within an auction. SoldToTeamID is
// empty until the Settlement Trigger finalizes a sale; after that the player
// accepts no further bids.
type Player struct {
	PlayerID     string          `json:"id" gorm:"column:player_id;primaryKey"`
	AuctionID    string          `json:"auctionId" gorm:"index"`
	Name         string          `json:"name"`
	Details      PlayerDetails   `json:"details" gorm:"embedded;embeddedPrefix:detail_"`
	BasePrice    decimal.Decimal `json:"basePrice" gorm:"type:numeric"`
	SoldToTeamID string          `json:"soldToTeamId,omitempty" gorm:"index"`
	SoldPrice    decimal.Decimal `json:"soldPrice" gorm:"type:numeric"`
	IsUnsold     bool            `json:"isUnsold"`
}

// Sold reports whether the player has been assigned to a team.
func (p Player) Sold() bool {
	return p.SoldToTeamID != ""
}

// Team is a bidding party within an auction. Budget is fixed at creation;
// SpentAmount only ever grows, and only through settlement.
type Team struct {
	TeamID      string          `json:"id" gorm:"column:team_id;primaryKey"`
	AuctionID   string          `json:"auctionId" gorm:"index"`
	Name        string          `json:"name"`
	ManagerID   string          `json:"managerId,omitempty"`
	LogoURL     string          `json:"logoUrl,omitempty"`
	Budget      decimal.Decimal `json:"budget" gorm:"type:numeric"`
	SpentAmount decimal.Decimal `json:"spentAmount" gorm:"type:numeric"`
}

// Remaining returns the budget still available to the team.
func (t Team) Remaining() decimal.Decimal {
	return t.Budget.Sub(t.SpentAmount)
}

// Bid is a single ledger entry: one team's attempt on one player. Bids are
// immutable once created; Accepted is set as part of the atomic insert, never
// afterwards.
type Bid struct {
	BidID     string          `json:"id" gorm:"column:bid_id;primaryKey"`
	AuctionID string          `json:"auctionId" gorm:"index:idx_bids_auction_player"`
	PlayerID  string          `json:"playerId" gorm:"index:idx_bids_auction_player"`
	TeamID    string          `json:"teamId" gorm:"index"`
	Amount    decimal.Decimal `json:"amount" gorm:"type:numeric"`
	Channel   BidChannel      `json:"channel"`
	Accepted  bool            `json:"accepted" gorm:"index"`
	CreatedAt time.Time       `json:"createdAt" gorm:"index"`
}

// SaleRecord is the result of settling a player: either a sale to a team or
// an explicit unsold marker.
type SaleRecord struct {
	AuctionID string          `json:"auctionId"`
	PlayerID  string          `json:"playerId"`
	TeamID    string          `json:"teamId,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
	Unsold    bool            `json:"unsold"`
}
