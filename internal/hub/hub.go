package hub

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"auction-engine/internal/arbiter"
	"auction-engine/internal/auctionerrors"
	"auction-engine/utils"
)

const (
	// subscriberBuffer is the per-subscriber event queue depth. A subscriber
	// that falls this far behind is disconnected and must reconcile through
	// the live-state endpoint after reconnecting.
	subscriberBuffer = 64

	// submitTimeout bounds a single bid submission end to end.
	submitTimeout = 5 * time.Second
)

// EventName returns the room-scoped event name bids are published under.
func EventName(auctionID string) string {
	return fmt.Sprintf("auction:%s:bid", auctionID)
}

// BidEvaluator is the arbiter surface the hub forwards submissions to.
type BidEvaluator interface {
	EvaluateBid(ctx context.Context, req arbiter.BidRequest) (arbiter.BidOutcome, error)
}

// Hub maintains room membership per auction and fans accepted bids out to
// every member. Submissions for the same auction are serialized, so the
// publish order every subscriber observes equals the commit order.
// Different auctions share nothing and run fully in parallel.
type Hub struct {
	evaluator BidEvaluator

	mu    sync.RWMutex
	rooms map[string]*room
}

type room struct {
	// submitMu serializes evaluate+publish for one auction. Holding it
	// across both steps is what makes broadcast order match commit order.
	submitMu sync.Mutex

	mu      sync.RWMutex
	members map[*Subscriber]struct{}
}

// NewHub creates a hub that forwards submissions to the given evaluator.
func NewHub(evaluator BidEvaluator) *Hub {
	return &Hub{
		evaluator: evaluator,
		rooms:     make(map[string]*room),
	}
}

// Join adds the subscriber to the auction's room. Joining twice is a no-op;
// a subscriber may belong to any number of rooms.
func (h *Hub) Join(auctionID string, sub *Subscriber) {
	r := h.room(auctionID)
	r.mu.Lock()
	r.members[sub] = struct{}{}
	r.mu.Unlock()
}

// Leave removes the subscriber from the auction's room. Leaving a room the
// subscriber is not in is a no-op.
func (h *Hub) Leave(auctionID string, sub *Subscriber) {
	h.mu.RLock()
	r, ok := h.rooms[auctionID]
	h.mu.RUnlock()
	if !ok {
		return
	}
	r.mu.Lock()
	delete(r.members, sub)
	r.mu.Unlock()
}

// Unsubscribe removes the subscriber from every room and closes it. Called
// when the underlying connection goes away.
func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.RLock()
	rooms := make([]*room, 0, len(h.rooms))
	for _, r := range h.rooms {
		rooms = append(rooms, r)
	}
	h.mu.RUnlock()

	for _, r := range rooms {
		r.mu.Lock()
		delete(r.members, sub)
		r.mu.Unlock()
	}
	sub.Close()
}

// SubmitBid forwards a bid to the arbiter and, when it is accepted,
// publishes exactly one event to the auction's room, submitter included.
// Rejections and failures go back to the submitter only:
//   - structurally invalid submissions fail with ErrMalformedRequest
//     without reaching the arbiter,
//   - an arbiter infrastructure failure surfaces as ErrArbiterUnavailable
//     and is never broadcast,
//   - a submission that cannot finish within the timeout fails with
//     ErrSubmitTimeout; retrying is the client's call and counts as a new
//     submission.
func (h *Hub) SubmitBid(ctx context.Context, req arbiter.BidRequest) (arbiter.BidOutcome, error) {
	if req.AuctionID == "" || req.PlayerID == "" || req.TeamID == "" || !req.Amount.IsPositive() {
		return arbiter.BidOutcome{}, fmt.Errorf("hub: submit bid: %w", auctionerrors.ErrMalformedRequest)
	}

	ctx, cancel := context.WithTimeout(ctx, submitTimeout)
	defer cancel()

	r := h.room(req.AuctionID)
	r.submitMu.Lock()
	defer r.submitMu.Unlock()

	if err := ctx.Err(); err != nil {
		return arbiter.BidOutcome{}, fmt.Errorf("hub: submit bid: %w", auctionerrors.ErrSubmitTimeout)
	}

	outcome, err := h.evaluator.EvaluateBid(ctx, req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return arbiter.BidOutcome{}, fmt.Errorf("hub: submit bid: %w", auctionerrors.ErrSubmitTimeout)
		}
		utils.Error("arbiter call failed", map[string]any{
			"auction_id": req.AuctionID,
			"player_id":  req.PlayerID,
			"team_id":    req.TeamID,
			"error":      err.Error(),
		})
		return arbiter.BidOutcome{}, fmt.Errorf("hub: submit bid: %w", auctionerrors.ErrArbiterUnavailable)
	}

	if outcome.Accepted {
		h.publish(r, Event{Name: EventName(req.AuctionID), Bid: outcome.Bid})
	}
	return outcome, nil
}

// publish delivers the event to every member of the room. Delivery is
// at-least-once while the subscriber stays connected; a subscriber whose
// queue is full is cut off rather than allowed to stall the room.
func (h *Hub) publish(r *room, evt Event) {
	r.mu.RLock()
	members := make([]*Subscriber, 0, len(r.members))
	for sub := range r.members {
		members = append(members, sub)
	}
	r.mu.RUnlock()

	for _, sub := range members {
		if !sub.deliver(evt) {
			utils.Warn("subscriber too slow, dropping connection", map[string]any{
				"subscriber_id": sub.ID(),
				"event":         evt.Name,
			})
			h.Unsubscribe(sub)
		}
	}
}

// room returns the auction's room, creating it on first use.
func (h *Hub) room(auctionID string) *room {
	h.mu.RLock()
	r, ok := h.rooms[auctionID]
	h.mu.RUnlock()
	if ok {
		return r
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if r, ok = h.rooms[auctionID]; ok {
		return r
	}
	r = &room{members: make(map[*Subscriber]struct{})}
	h.rooms[auctionID] = r
	return r
}
