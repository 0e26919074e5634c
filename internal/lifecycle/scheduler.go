package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"auction-engine/internal/biddingerrors"
	"auction-engine/internal/events"
	"auction-engine/internal/metrics"
	"auction-engine/internal/models"
	"auction-engine/internal/realtime"
	"auction-engine/internal/repository"
	"auction-engine/utils"
)

// WinNotifier queues the won notification for an auction's winner
type WinNotifier interface {
	HasWon(ctx context.Context, userID, auctionID int64) (bool, error)
	NotifyWon(ctx context.Context, a models.Auction) error
}

// AuctionBroadcaster pushes events to an auction's realtime channel
type AuctionBroadcaster interface {
	PublishAuction(e realtime.Event)
}

// SweepResult counts what one sweep changed
type SweepResult struct {
	Completed       int `json:"completed_count"`
	WinnersNotified int `json:"winners_notified"`
}

// Scheduler closes expired auctions and tells their winners
type Scheduler struct {
	repo        repository.AuctionDB
	notifier    WinNotifier
	broadcaster AuctionBroadcaster
	publisher   events.Publisher
	metrics     *metrics.Registry
	interval    time.Duration
	now         func() time.Time

	mu sync.Mutex // one sweep at a time
}

// NewScheduler creates a Scheduler that sweeps every interval
func NewScheduler(
	repo repository.AuctionDB,
	notifier WinNotifier,
	broadcaster AuctionBroadcaster,
	publisher events.Publisher,
	reg *metrics.Registry,
	interval time.Duration,
) *Scheduler {
	if interval <= 0 {
		interval = time.Minute
	}
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &Scheduler{
		repo:        repo,
		notifier:    notifier,
		broadcaster: broadcaster,
		publisher:   publisher,
		metrics:     reg,
		interval:    interval,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Run sweeps once immediately and then on every tick until ctx is done
func (s *Scheduler) Run(ctx context.Context) error {
	utils.Info("Scheduler: running initial sweep", nil)
	s.sweepAndLog(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	utils.Info("Scheduler: started", map[string]any{"interval": s.interval.String()})
	for {
		select {
		case <-ticker.C:
			s.sweepAndLog(ctx)
		case <-ctx.Done():
			utils.Info("Scheduler: received shutdown signal, stopping", nil)
			return nil
		}
	}
}

func (s *Scheduler) sweepAndLog(ctx context.Context) {
	res, err := s.Sweep(ctx)
	if err != nil {
		utils.Error("Scheduler: sweep failed, retrying on next tick", map[string]any{
			"completed": res.Completed,
			"notified":  res.WinnersNotified,
			"error":     err.Error(),
		})
		return
	}
	if res.Completed > 0 || res.WinnersNotified > 0 {
		utils.Info("Scheduler: sweep finished", map[string]any{
			"completed": res.Completed,
			"notified":  res.WinnersNotified,
		})
	}
}

// Sweep completes every ACTIVE auction past its end time and sends each
// unnotified winner exactly one won notification. Running it again without
// new expirations changes nothing.
func (s *Scheduler) Sweep(ctx context.Context) (res SweepResult, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { s.metrics.TrackSweep(err, res.Completed, res.WinnersNotified) }()

	closedAt := s.now()
	ids, err := s.repo.CompleteExpired(ctx, closedAt)
	if err != nil {
		return res, fmt.Errorf("lifecycle: failed to complete expired auctions: %w: %w", biddingerrors.ErrPersistence, err)
	}
	res.Completed = len(ids)

	for _, id := range ids {
		s.announceCompleted(ctx, id, closedAt)
	}

	winners, err := s.repo.ListUnnotifiedWinners(ctx)
	if err != nil {
		return res, fmt.Errorf("lifecycle: failed to list unnotified winners: %w: %w", biddingerrors.ErrPersistence, err)
	}

	var errs []error
	for _, a := range winners {
		sent, err := s.notifyWinner(ctx, a)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if sent {
			res.WinnersNotified++
		}
	}
	return res, errors.Join(errs...)
}

func (s *Scheduler) notifyWinner(ctx context.Context, a models.Auction) (bool, error) {
	winner := *a.HighestBidderID
	won, err := s.notifier.HasWon(ctx, winner, a.AuctionID)
	if err != nil {
		return false, fmt.Errorf("lifecycle: auction %d: %w", a.AuctionID, err)
	}
	if won {
		return false, nil
	}

	err = s.notifier.NotifyWon(ctx, a)
	switch {
	case errors.Is(err, biddingerrors.ErrDuplicateNotification):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("lifecycle: failed to notify winner of auction %d: %w", a.AuctionID, err)
	}

	utils.Info("Scheduler: winner notified", map[string]any{
		"auction_id":  a.AuctionID,
		"user_id":     winner,
		"final_price": a.CurrentPrice.StringFixed(2),
	})
	return true, nil
}

// announceCompleted publishes the completion of auctionID. Failures are logged only.
func (s *Scheduler) announceCompleted(ctx context.Context, auctionID int64, closedAt time.Time) {
	a, err := s.repo.GetAuction(ctx, auctionID)
	if err != nil {
		utils.Warn("Scheduler: failed to load completed auction", map[string]any{
			"auction_id": auctionID,
			"error":      err.Error(),
		})
		return
	}

	if s.broadcaster != nil {
		s.broadcaster.PublishAuction(realtime.Event{
			Type:      realtime.EventAuctionStatus,
			AuctionID: auctionID,
			Data: events.AuctionStatusChanged{
				AuctionID: auctionID,
				Status:    a.Status,
				ChangedAt: closedAt,
			},
		})
	}

	payload := events.AuctionCompleted{
		AuctionID:  auctionID,
		WinnerID:   a.HighestBidderID,
		FinalPrice: a.CurrentPrice,
		TotalBids:  a.TotalBids,
		ClosedAt:   closedAt,
	}
	if err := s.publisher.Publish(context.WithoutCancel(ctx), events.KeyAuctionCompleted, payload); err != nil {
		utils.Warn("Scheduler: failed to publish completion event", map[string]any{
			"auction_id": auctionID,
			"error":      err.Error(),
		})
	}
}
