package auctionerrors

import "errors"

// Repository-level errors
var (
	ErrAuctionNotFound = errors.New("auction not found")
	ErrPlayerNotFound  = errors.New("player not found")
	ErrTeamNotFound    = errors.New("team not found")
	ErrNoBids          = errors.New("no bids found for player")
	ErrBidConflict     = errors.New("conflicting bid committed concurrently")
)

// Business-rule errors
var (
	ErrPlayerSoldToOther = errors.New("player already sold with a different outcome")
	ErrMalformedRequest  = errors.New("malformed bid request")
	ErrInvalidRequest    = errors.New("invalid request")
)

// Infrastructure errors
var (
	ErrArbiterUnavailable = errors.New("bid arbiter unavailable")
	ErrSubmitTimeout      = errors.New("bid submission timed out")
)
