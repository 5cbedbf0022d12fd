package helpers

import (
	"github.com/shopspring/decimal"
)

// Request DTOs
type PlaceBidRequest struct {
	AuctionID string          `json:"auctionId" binding:"required"`
	PlayerID  string          `json:"playerId" binding:"required"`
	TeamID    string          `json:"teamId" binding:"required"`
	Amount    decimal.Decimal `json:"amount"`
	Channel   string          `json:"channel"`
}

// FinalizeRequest carries the optional defensive expectation an organiser
// client can attach when marking a player sold.
type FinalizeRequest struct {
	ExpectedTeamID string          `json:"expectedTeamId"`
	ExpectedAmount decimal.Decimal `json:"expectedAmount"`
}

// LiveStateResponse is the reconciliation snapshot reconnecting clients pull.
type LiveStateResponse struct {
	Auction        any `json:"auction"`
	CurrentHighest any `json:"currentHighest"`
}
