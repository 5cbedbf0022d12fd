package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"auction-engine/internal/arbiter"
	"auction-engine/internal/auctionerrors"
	model "auction-engine/internal/models"
	"auction-engine/internal/settlement"
	"auction-engine/services/auction/helpers"
	"auction-engine/utils"

	"github.com/gin-gonic/gin"
)

//go:generate mockgen -source=auction_handler.go -destination=mock_auction_handler.go -package=handler

// BidSubmitter is the hub's submit path: validate, arbitrate, broadcast.
type BidSubmitter interface {
	SubmitBid(ctx context.Context, req arbiter.BidRequest) (arbiter.BidOutcome, error)
}

// LedgerReader is the read-only bid history surface.
type LedgerReader interface {
	BidsByAuction(ctx context.Context, auctionID string) ([]model.Bid, error)
	BidsByPlayer(ctx context.Context, playerID string) ([]model.Bid, error)
	LatestAcceptedInAuction(ctx context.Context, auctionID string) (model.Bid, error)
}

// DirectoryReader resolves auction documents for the live snapshot.
type DirectoryReader interface {
	GetAuction(ctx context.Context, auctionID string) (model.Auction, error)
}

// Finalizer is the settlement path organisers trigger.
type Finalizer interface {
	Finalize(ctx context.Context, auctionID, playerID string, expect *settlement.SaleExpectation) (model.SaleRecord, error)
}

// AuctionHandler serves the REST surface of the bidding engine.
type AuctionHandler struct {
	submitter BidSubmitter
	ledger    LedgerReader
	directory DirectoryReader
	finalizer Finalizer
}

// NewAuctionHandler wires the handler to its collaborators.
func NewAuctionHandler(submitter BidSubmitter, ledger LedgerReader, directory DirectoryReader, finalizer Finalizer) *AuctionHandler {
	return &AuctionHandler{
		submitter: submitter,
		ledger:    ledger,
		directory: directory,
		finalizer: finalizer,
	}
}

// PlaceBidHandler handles POST /bids/place. It delegates to the same hub
// submit path the realtime connections use, so REST acceptances broadcast
// to the auction room as well.
func (h *AuctionHandler) PlaceBidHandler(c *gin.Context) {
	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PlaceBidHandler", err)
		return
	}

	bidReq := arbiter.BidRequest{
		AuctionID: req.AuctionID,
		PlayerID:  req.PlayerID,
		TeamID:    req.TeamID,
		Amount:    req.Amount,
		Channel:   parseChannel(req.Channel),
		CallerID:  c.GetString("callerID"),
	}

	outcome, err := h.submitter.SubmitBid(c.Request.Context(), bidReq)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("PlaceBidHandler: bid submission failed", map[string]any{
			"auction_id": req.AuctionID,
			"player_id":  req.PlayerID,
			"team_id":    req.TeamID,
			"error":      err.Error(),
		})
		return
	}

	if !outcome.Accepted {
		status, code, message := helpers.MapRejectionToHTTP(outcome)
		utils.JSONError(c, status, errors.New(code), message)
		utils.Info("PlaceBidHandler: bid rejected", map[string]any{
			"auction_id": req.AuctionID,
			"player_id":  req.PlayerID,
			"team_id":    req.TeamID,
			"reason":     code,
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, outcome.Bid, "bid accepted")
	helpers.LogSuccess("PlaceBidHandler", "bid accepted", map[string]any{
		"bid_id":     outcome.Bid.BidID,
		"auction_id": outcome.Bid.AuctionID,
		"player_id":  outcome.Bid.PlayerID,
		"team_id":    outcome.Bid.TeamID,
		"amount":     outcome.Bid.Amount.String(),
	})
}

// GetAuctionBidsHandler handles GET /bids/auction/:auction_id, newest first.
func (h *AuctionHandler) GetAuctionBidsHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	bids, err := h.ledger.BidsByAuction(c.Request.Context(), auctionID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetAuctionBidsHandler: error retrieving bids", map[string]any{"auction_id": auctionID, "error": err.Error()})
		return
	}

	if bids == nil {
		bids = []model.Bid{}
	}

	utils.JSONResponse(c, http.StatusOK, bids, "bids retrieved successfully")
	helpers.LogSuccess("GetAuctionBidsHandler", "bids retrieved successfully", map[string]any{
		"auction_id": auctionID,
		"count":      len(bids),
	})
}

// GetPlayerBidsHandler handles GET /bids/player/:player_id, newest first.
func (h *AuctionHandler) GetPlayerBidsHandler(c *gin.Context) {
	playerID := c.Param("player_id")
	bids, err := h.ledger.BidsByPlayer(c.Request.Context(), playerID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetPlayerBidsHandler: error retrieving bids", map[string]any{"player_id": playerID, "error": err.Error()})
		return
	}

	if bids == nil {
		bids = []model.Bid{}
	}

	utils.JSONResponse(c, http.StatusOK, bids, "bids retrieved successfully")
	helpers.LogSuccess("GetPlayerBidsHandler", "bids retrieved successfully", map[string]any{
		"player_id": playerID,
		"count":     len(bids),
	})
}

// LiveStateHandler handles GET /auctions/:auction_id/live, the pull-based
// reconciliation snapshot for clients that reconnect and may have missed
// broadcasts.
func (h *AuctionHandler) LiveStateHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")

	auction, err := h.directory.GetAuction(c.Request.Context(), auctionID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("LiveStateHandler: auction lookup failed", map[string]any{"auction_id": auctionID, "error": err.Error()})
		return
	}

	resp := helpers.LiveStateResponse{Auction: auction}
	latest, err := h.ledger.LatestAcceptedInAuction(c.Request.Context(), auctionID)
	switch {
	case err == nil:
		resp.CurrentHighest = latest
	case errors.Is(err, auctionerrors.ErrNoBids):
		// no accepted bid yet, currentHighest stays null
	default:
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("LiveStateHandler: latest bid lookup failed", map[string]any{"auction_id": auctionID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, resp, "live state retrieved successfully")
}

// FinalizePlayerHandler handles POST /auctions/:auction_id/players/:player_id/finalize,
// the organiser's "sold" hammer. Safe to call repeatedly.
func (h *AuctionHandler) FinalizePlayerHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	playerID := c.Param("player_id")

	var req helpers.FinalizeRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			helpers.HandleBindError(c, "FinalizePlayerHandler", err)
			return
		}
	}

	var expect *settlement.SaleExpectation
	if req.ExpectedTeamID != "" || req.ExpectedAmount.IsPositive() {
		expect = &settlement.SaleExpectation{
			TeamID: req.ExpectedTeamID,
			Amount: req.ExpectedAmount,
		}
	}

	record, err := h.finalizer.Finalize(c.Request.Context(), auctionID, playerID, expect)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("FinalizePlayerHandler: settlement failed", map[string]any{
			"auction_id": auctionID,
			"player_id":  playerID,
			"error":      err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, record, "player finalized")
	helpers.LogSuccess("FinalizePlayerHandler", "player finalized", map[string]any{
		"auction_id": auctionID,
		"player_id":  playerID,
		"unsold":     record.Unsold,
	})
}

func parseChannel(raw string) model.BidChannel {
	if raw == string(model.ChannelMobile) {
		return model.ChannelMobile
	}
	return model.ChannelWeb
}
