package bidding

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"auction-engine/internal/biddingerrors"
	"auction-engine/internal/events"
	"auction-engine/internal/lock"
	"auction-engine/internal/metrics"
	"auction-engine/internal/models"
	"auction-engine/internal/realtime"
	"auction-engine/internal/repository"
	"auction-engine/utils"

	"github.com/shopspring/decimal"
)

// Notifier queues the outbid notification for a displaced bidder
type Notifier interface {
	NotifyOutbid(ctx context.Context, userID, auctionID int64, amount decimal.Decimal) error
}

// AuctionBroadcaster pushes events to an auction's realtime channel
type AuctionBroadcaster interface {
	PublishAuction(e realtime.Event)
}

// Options tunes a BiddingService. Zero values fall back to the defaults.
type Options struct {
	Policy        IncrementPolicy // a zero MaxPercent selects DefaultIncrementPolicy
	LockTimeout   time.Duration
	CommitRetries int
	Metrics       *metrics.Registry
	Now           func() time.Time
}

// BidResult is the outcome of an accepted bid
type BidResult struct {
	Bid        models.Bid      `json:"bid"`
	Auction    models.Auction  `json:"auction"`
	MinNextBid decimal.Decimal `json:"min_next_bid"`
	MaxNextBid decimal.Decimal `json:"max_next_bid"`
}

// BiddingService defines the business logic for auction bidding
type BiddingService struct {
	repo        repository.AuctionDB
	locker      lock.Locker
	notifier    Notifier
	broadcaster AuctionBroadcaster
	publisher   events.Publisher

	policy      IncrementPolicy
	lockTimeout time.Duration
	retries     int
	metrics     *metrics.Registry
	now         func() time.Time
}

// NewBiddingService creates a new BiddingService instance
func NewBiddingService(
	repo repository.AuctionDB,
	locker lock.Locker,
	notifier Notifier,
	broadcaster AuctionBroadcaster,
	publisher events.Publisher,
	opts Options,
) *BiddingService {
	s := &BiddingService{
		repo:        repo,
		locker:      locker,
		notifier:    notifier,
		broadcaster: broadcaster,
		publisher:   publisher,
		policy:      opts.Policy,
		lockTimeout: opts.LockTimeout,
		retries:     opts.CommitRetries,
		metrics:     opts.Metrics,
		now:         opts.Now,
	}
	if s.policy.MaxPercent.IsZero() {
		s.policy = DefaultIncrementPolicy()
	}
	if s.lockTimeout <= 0 {
		s.lockTimeout = 5 * time.Second
	}
	if s.retries < 1 {
		s.retries = 3
	}
	if s.now == nil {
		s.now = func() time.Time { return time.Now().UTC() }
	}
	if s.publisher == nil {
		s.publisher = events.NopPublisher{}
	}
	return s
}

// Policy returns the increment policy enforced by the service
func (s *BiddingService) Policy() IncrementPolicy {
	return s.policy
}

// SubmitBid validates and commits a bid inside the auction's critical section.
// Rejections come back as *biddingerrors.Rejection; a lock timeout as
// ErrAuctionBusy; repeated write conflicts as ErrConcurrentUpdate.
func (s *BiddingService) SubmitBid(ctx context.Context, auctionID, bidderID int64, amount decimal.Decimal) (BidResult, error) {
	if err := validateInput(auctionID, bidderID, amount); err != nil {
		s.metrics.TrackBid("invalid")
		return BidResult{}, err
	}

	submittedAt := s.now()
	var (
		result   BidResult
		previous *int64
		err      error
	)
	for attempt := 1; attempt <= s.retries; attempt++ {
		result, previous, err = s.attempt(ctx, auctionID, bidderID, amount, submittedAt)
		if !errors.Is(err, biddingerrors.ErrConcurrentUpdate) {
			break
		}
		utils.Warn("Bid commit conflicted, retrying with a fresh snapshot", map[string]any{
			"auction_id": auctionID,
			"bidder_id":  bidderID,
			"attempt":    attempt,
		})
	}

	if err != nil {
		s.trackFailure(err)
		return BidResult{}, err
	}

	s.metrics.TrackBid("accepted")
	s.fanOut(context.WithoutCancel(ctx), result, previous)
	return result, nil
}

func validateInput(auctionID, bidderID int64, amount decimal.Decimal) error {
	if auctionID <= 0 || bidderID <= 0 {
		return fmt.Errorf("service: %w - missing auctionID or bidderID", biddingerrors.ErrInvalidBid)
	}
	if !amount.IsPositive() {
		return fmt.Errorf("service: %w - non-positive bid amount", biddingerrors.ErrInvalidBid)
	}
	if !amount.Equal(amount.Round(2)) {
		return fmt.Errorf("service: %w - bid amount has more than two decimal places", biddingerrors.ErrInvalidBid)
	}
	return nil
}

// attempt runs one validate-then-commit cycle under the auction's lock
func (s *BiddingService) attempt(ctx context.Context, auctionID, bidderID int64, amount decimal.Decimal, submittedAt time.Time) (BidResult, *int64, error) {
	lockCtx, cancel := context.WithTimeout(ctx, s.lockTimeout)
	defer cancel()

	waitStart := time.Now()
	release, err := s.locker.Acquire(lockCtx, auctionID)
	if err != nil {
		return BidResult{}, nil, fmt.Errorf("service: failed to enter auction %d: %w", auctionID, err)
	}
	defer release()
	s.metrics.ObserveLockWait(time.Since(waitStart))

	held := time.Now()
	defer func() { s.metrics.ObserveCommit(time.Since(held)) }()

	auction, err := s.repo.GetAuction(ctx, auctionID)
	if err != nil {
		return BidResult{}, nil, storeError("load auction", auctionID, err)
	}

	proposal := Proposal{BidderID: bidderID, Amount: amount, SubmittedAt: submittedAt}
	if err := ValidateBid(auction, proposal, s.policy); err != nil {
		return BidResult{}, nil, err
	}

	bid := &models.Bid{
		AuctionID: auctionID,
		BidderID:  bidderID,
		Amount:    amount,
		BidTime:   submittedAt,
	}
	if err := s.repo.CommitBid(ctx, bid, auction); err != nil {
		return BidResult{}, nil, storeError("commit bid on", auctionID, err)
	}

	previous := auction.HighestBidderID
	bidder := bidderID
	auction.CurrentPrice = amount
	auction.HighestBidderID = &bidder
	auction.TotalBids++

	minNext, maxNext := s.policy.Bounds(auction)
	return BidResult{Bid: *bid, Auction: auction, MinNextBid: minNext, MaxNextBid: maxNext}, previous, nil
}

// storeError keeps domain errors visible and marks everything else as a persistence failure
func storeError(op string, auctionID int64, err error) error {
	switch {
	case errors.Is(err, biddingerrors.ErrAuctionNotFound),
		errors.Is(err, biddingerrors.ErrUserNotFound),
		errors.Is(err, biddingerrors.ErrConcurrentUpdate):
		return fmt.Errorf("service: failed to %s auction %d: %w", op, auctionID, err)
	default:
		return fmt.Errorf("service: failed to %s auction %d: %w: %w", op, auctionID, biddingerrors.ErrPersistence, err)
	}
}

func (s *BiddingService) trackFailure(err error) {
	if rej, ok := biddingerrors.AsRejection(err); ok {
		s.metrics.TrackRejection(string(rej.Reason))
		return
	}
	switch {
	case errors.Is(err, biddingerrors.ErrAuctionBusy):
		s.metrics.TrackBid("busy")
	case errors.Is(err, biddingerrors.ErrConcurrentUpdate):
		s.metrics.TrackBid("conflict")
	case errors.Is(err, biddingerrors.ErrAuctionNotFound):
		s.metrics.TrackBid("not_found")
	default:
		s.metrics.TrackBid("error")
	}
}

// fanOut runs the post-commit side effects. Failures are logged and never
// reach the caller because the bid is already committed.
func (s *BiddingService) fanOut(ctx context.Context, result BidResult, previous *int64) {
	bid := result.Bid

	if previous != nil && *previous != bid.BidderID && s.notifier != nil {
		if err := s.notifier.NotifyOutbid(ctx, *previous, bid.AuctionID, bid.Amount); err != nil {
			utils.Warn("Failed to queue outbid notification", map[string]any{
				"auction_id": bid.AuctionID,
				"user_id":    *previous,
				"error":      err.Error(),
			})
		}
	}

	payload := events.BidAccepted{
		AuctionID:        bid.AuctionID,
		BidID:            bid.BidID,
		BidderID:         bid.BidderID,
		Amount:           bid.Amount,
		PreviousBidderID: previous,
		TotalBids:        result.Auction.TotalBids,
		BidTime:          bid.BidTime,
	}

	if s.broadcaster != nil {
		s.broadcaster.PublishAuction(realtime.Event{
			Type:      realtime.EventBidAccepted,
			AuctionID: bid.AuctionID,
			Seq:       result.Auction.TotalBids,
			Data:      payload,
		})
	}

	if err := s.publisher.Publish(ctx, events.KeyBidAccepted, payload); err != nil {
		utils.Warn("Failed to publish bid event", map[string]any{
			"auction_id": bid.AuctionID,
			"bid_id":     bid.BidID,
			"error":      err.Error(),
		})
	}
}

// GetBidsForAuction returns each bidder's highest bid, ordered by amount
// descending and then by bid time
func (s *BiddingService) GetBidsForAuction(ctx context.Context, auctionID int64) ([]models.Bid, error) {
	if auctionID <= 0 {
		return nil, fmt.Errorf("service: %w - invalid auction ID", biddingerrors.ErrInvalidBid)
	}

	bids, err := s.repo.GetBidsByAuction(ctx, auctionID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get bids for auction %d: %w", auctionID, err)
	}
	return bestPerBidder(bids), nil
}

func bestPerBidder(bids []models.Bid) []models.Bid {
	best := make(map[int64]models.Bid, len(bids))
	for _, b := range bids {
		if !b.IsValid {
			continue
		}
		cur, ok := best[b.BidderID]
		if !ok || b.Amount.GreaterThan(cur.Amount) {
			best[b.BidderID] = b
		}
	}

	out := make([]models.Bid, 0, len(best))
	for _, b := range best {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Amount.Equal(out[j].Amount) {
			return out[i].Amount.GreaterThan(out[j].Amount)
		}
		if !out[i].BidTime.Equal(out[j].BidTime) {
			return out[i].BidTime.Before(out[j].BidTime)
		}
		return out[i].BidID < out[j].BidID
	})
	return out
}

// GetBidsByUser returns the user's bid history, newest first
func (s *BiddingService) GetBidsByUser(ctx context.Context, userID int64) ([]models.UserBid, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("service: %w - invalid user ID", biddingerrors.ErrInvalidBid)
	}

	bids, err := s.repo.GetBidsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get bids for user %d: %w", userID, err)
	}
	if bids == nil {
		bids = []models.UserBid{}
	}
	return bids, nil
}
