package helpers

import (
	"errors"
	"fmt"
	"net/http"

	"auction-engine/internal/arbiter"
	"auction-engine/internal/auctionerrors"
	"auction-engine/utils"

	"github.com/gin-gonic/gin"
)

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps domain/service errors to HTTP status code and message
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, auctionerrors.ErrAuctionNotFound):
		return http.StatusNotFound, "auction not found"
	case errors.Is(err, auctionerrors.ErrPlayerNotFound):
		return http.StatusNotFound, "player not found"
	case errors.Is(err, auctionerrors.ErrTeamNotFound):
		return http.StatusNotFound, "team not found"
	case errors.Is(err, auctionerrors.ErrMalformedRequest), errors.Is(err, auctionerrors.ErrInvalidRequest):
		return http.StatusBadRequest, "malformed bid request"
	case errors.Is(err, auctionerrors.ErrPlayerSoldToOther):
		return http.StatusConflict, "player already sold with a different outcome"
	case errors.Is(err, auctionerrors.ErrArbiterUnavailable):
		return http.StatusServiceUnavailable, "bid arbiter unavailable"
	case errors.Is(err, auctionerrors.ErrSubmitTimeout):
		return http.StatusGatewayTimeout, "bid submission timed out"
	case errors.Is(err, auctionerrors.ErrNoBids):
		return http.StatusNotFound, "no bids found"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// MapRejectionToHTTP maps an arbiter rejection to HTTP status code, error
// code and human message. Rejections are 409s except for an unknown team,
// which is a plain not-found.
func MapRejectionToHTTP(outcome arbiter.BidOutcome) (int, string, string) {
	switch outcome.Reason {
	case arbiter.ReasonAuctionNotLive:
		return http.StatusConflict, string(outcome.Reason), "auction is not live"
	case arbiter.ReasonPlayerUnavailable:
		return http.StatusConflict, string(outcome.Reason), "player is not available for bidding"
	case arbiter.ReasonTeamNotFound:
		return http.StatusNotFound, string(outcome.Reason), "team not found"
	case arbiter.ReasonBidTooLow:
		return http.StatusConflict, string(outcome.Reason), fmt.Sprintf("minimum bid amount is %s", outcome.Floor.String())
	case arbiter.ReasonInsufficientBudget:
		return http.StatusConflict, string(outcome.Reason), "insufficient team budget"
	case arbiter.ReasonContentionExceeded:
		return http.StatusConflict, string(outcome.Reason), "too many concurrent bids, try again"
	default:
		return http.StatusConflict, string(outcome.Reason), "bid rejected"
	}
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
