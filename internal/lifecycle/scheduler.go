package lifecycle

import (
	"context"
	"time"

	model "auction-engine/internal/models"
	"auction-engine/internal/repository"
	"auction-engine/internal/settlement"
	"auction-engine/utils"

	"github.com/go-co-op/gocron/v2"
)

// DefaultSweepInterval is how often auction statuses are reconciled with the
// clock when no interval is configured.
const DefaultSweepInterval = 15 * time.Second

// Scheduler drives auction status transitions on a timer: scheduled auctions
// go live at their start time, live auctions close at their end time, and a
// closing auction has every remaining player settled (sold to the high
// bidder or marked unsold). Transitions are compare-and-set in the
// directory, so an overlapping or repeated sweep cannot double-fire.
type Scheduler struct {
	directory repository.AuctionDirectory
	roster    repository.RosterStore
	settler   *settlement.Settler
	interval  time.Duration

	sched gocron.Scheduler
}

// NewScheduler creates a lifecycle scheduler. A non-positive interval falls
// back to DefaultSweepInterval.
func NewScheduler(directory repository.AuctionDirectory, roster repository.RosterStore, settler *settlement.Settler, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	return &Scheduler{
		directory: directory,
		roster:    roster,
		settler:   settler,
		interval:  interval,
	}
}

// Start begins the periodic sweep.
func (s *Scheduler) Start(ctx context.Context) error {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return err
	}
	s.sched = sched

	_, err = sched.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(func() {
			s.Sweep(ctx)
		}),
	)
	if err != nil {
		return err
	}

	sched.Start()
	return nil
}

// Stop shuts the scheduler down.
func (s *Scheduler) Stop() error {
	if s.sched == nil {
		return nil
	}
	return s.sched.Shutdown()
}

// Sweep runs one reconciliation pass. Exported so tests and operators can
// trigger it without waiting for the timer.
func (s *Scheduler) Sweep(ctx context.Context) {
	now := time.Now().UTC()
	s.openDueAuctions(ctx, now)
	s.closeExpiredAuctions(ctx, now)
}

func (s *Scheduler) openDueAuctions(ctx context.Context, now time.Time) {
	scheduled, err := s.directory.ListAuctionsByStatus(ctx, model.StatusScheduled)
	if err != nil {
		utils.Error("lifecycle: listing scheduled auctions failed", map[string]any{"error": err.Error()})
		return
	}

	for _, auction := range scheduled {
		if auction.StartTime.After(now) {
			continue
		}
		moved, err := s.directory.TransitionAuctionStatus(ctx, auction.AuctionID, model.StatusScheduled, model.StatusLive)
		if err != nil {
			utils.Error("lifecycle: opening auction failed", map[string]any{
				"auction_id": auction.AuctionID,
				"error":      err.Error(),
			})
			continue
		}
		if moved {
			utils.Info("auction is live", map[string]any{"auction_id": auction.AuctionID})
		}
	}
}

func (s *Scheduler) closeExpiredAuctions(ctx context.Context, now time.Time) {
	live, err := s.directory.ListAuctionsByStatus(ctx, model.StatusLive)
	if err != nil {
		utils.Error("lifecycle: listing live auctions failed", map[string]any{"error": err.Error()})
		return
	}

	for _, auction := range live {
		if auction.EndTime.After(now) {
			continue
		}
		moved, err := s.directory.TransitionAuctionStatus(ctx, auction.AuctionID, model.StatusLive, model.StatusClosed)
		if err != nil {
			utils.Error("lifecycle: closing auction failed", map[string]any{
				"auction_id": auction.AuctionID,
				"error":      err.Error(),
			})
			continue
		}
		if !moved {
			continue // somebody else closed it
		}

		utils.Info("auction closed", map[string]any{"auction_id": auction.AuctionID})
		s.settleRemaining(ctx, auction.AuctionID)
	}
}

// settleRemaining finalizes every player of a freshly closed auction that
// has not been sold yet. Finalize is idempotent, so re-running after a
// partial sweep is harmless.
func (s *Scheduler) settleRemaining(ctx context.Context, auctionID string) {
	players, err := s.roster.ListPlayers(ctx, auctionID)
	if err != nil {
		utils.Error("lifecycle: listing players for settlement failed", map[string]any{
			"auction_id": auctionID,
			"error":      err.Error(),
		})
		return
	}

	for _, player := range players {
		if player.Sold() {
			continue
		}
		if _, err := s.settler.Finalize(ctx, auctionID, player.PlayerID, nil); err != nil {
			utils.Error("lifecycle: settling player failed", map[string]any{
				"auction_id": auctionID,
				"player_id":  player.PlayerID,
				"error":      err.Error(),
			})
		}
	}
}
