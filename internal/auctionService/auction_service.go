package auction

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"auction-engine/internal/biddingerrors"
	"auction-engine/internal/events"
	"auction-engine/internal/models"
	"auction-engine/internal/realtime"
	"auction-engine/internal/repository"
	"auction-engine/utils"

	"github.com/shopspring/decimal"
)

// StatusBroadcaster pushes status changes to an auction's realtime channel
type StatusBroadcaster interface {
	PublishAuction(e realtime.Event)
}

// Listing is the seller-supplied part of an auction
type Listing struct {
	Title           string
	Description     string
	ImageURL        string
	CategoryID      *int64
	StartingPrice   decimal.Decimal
	MinBidIncrement decimal.Decimal
	StartTime       time.Time
	EndTime         time.Time
}

// Winner is the settled outcome of a COMPLETED auction
type Winner struct {
	AuctionID            int64           `json:"auction_id"`
	UserID               int64           `json:"user_id"`
	FinalPrice           decimal.Decimal `json:"final_price"`
	TotalBids            int64           `json:"total_bids"`
	TransactionCompleted bool            `json:"transaction_completed"`
}

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// ListQuery selects a page of auctions. Page counts from 1; zero values take
// the defaults.
type ListQuery struct {
	Status     models.AuctionStatus
	CategoryID *int64
	Page       int
	Limit      int
}

// AuctionService owns listing maintenance, moderation and the watchlist.
// It never writes current_price, highest_bidder_id or total_bids.
type AuctionService struct {
	repo        repository.AuctionDB
	watchlist   repository.WatchlistDB
	broadcaster StatusBroadcaster
	publisher   events.Publisher
	now         func() time.Time
}

// NewAuctionService creates an AuctionService. broadcaster and publisher may be nil.
func NewAuctionService(
	repo repository.AuctionDB,
	watchlist repository.WatchlistDB,
	broadcaster StatusBroadcaster,
	publisher events.Publisher,
) *AuctionService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &AuctionService{
		repo:        repo,
		watchlist:   watchlist,
		broadcaster: broadcaster,
		publisher:   publisher,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// GetAuctionSnapshot returns the current state of an auction
func (s *AuctionService) GetAuctionSnapshot(ctx context.Context, auctionID int64) (models.Auction, error) {
	if auctionID <= 0 {
		return models.Auction{}, fmt.Errorf("service: %w - invalid auction ID", biddingerrors.ErrInvalidInput)
	}
	a, err := s.repo.GetAuction(ctx, auctionID)
	if err != nil {
		return models.Auction{}, fmt.Errorf("service: failed to get auction %d: %w", auctionID, err)
	}
	return a, nil
}

// ViewAuction counts a detail view and returns the snapshot
func (s *AuctionService) ViewAuction(ctx context.Context, auctionID int64) (models.Auction, error) {
	if auctionID <= 0 {
		return models.Auction{}, fmt.Errorf("service: %w - invalid auction ID", biddingerrors.ErrInvalidInput)
	}
	if err := s.repo.IncrementViewCount(ctx, auctionID); err != nil {
		return models.Auction{}, fmt.Errorf("service: failed to count view of auction %d: %w", auctionID, err)
	}
	return s.GetAuctionSnapshot(ctx, auctionID)
}

// List returns one page of auctions, latest start time first
func (s *AuctionService) List(ctx context.Context, q ListQuery) ([]models.Auction, error) {
	if q.Status != "" && !q.Status.Valid() {
		return nil, fmt.Errorf("service: %w - unknown status %q", biddingerrors.ErrInvalidInput, q.Status)
	}
	if q.CategoryID != nil && *q.CategoryID <= 0 {
		return nil, fmt.Errorf("service: %w - invalid category ID", biddingerrors.ErrInvalidInput)
	}
	if q.Page < 0 || q.Limit < 0 {
		return nil, fmt.Errorf("service: %w - page and limit must not be negative", biddingerrors.ErrInvalidInput)
	}
	if q.Page == 0 {
		q.Page = 1
	}
	switch {
	case q.Limit == 0:
		q.Limit = defaultPageSize
	case q.Limit > maxPageSize:
		q.Limit = maxPageSize
	}

	list, err := s.repo.ListAuctions(ctx, repository.AuctionFilter{
		Status:     q.Status,
		CategoryID: q.CategoryID,
		Limit:      q.Limit,
		Offset:     (q.Page - 1) * q.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("service: failed to list auctions: %w", err)
	}
	return list, nil
}

func (s *AuctionService) validateListing(l Listing) error {
	switch {
	case strings.TrimSpace(l.Title) == "":
		return fmt.Errorf("service: %w - title is required", biddingerrors.ErrInvalidAuction)
	case !l.StartingPrice.IsPositive():
		return fmt.Errorf("service: %w - starting price must be positive", biddingerrors.ErrInvalidAuction)
	case !l.StartingPrice.Equal(l.StartingPrice.Round(2)):
		return fmt.Errorf("service: %w - starting price has more than two decimal places", biddingerrors.ErrInvalidAuction)
	case l.MinBidIncrement.IsNegative():
		return fmt.Errorf("service: %w - negative minimum increment", biddingerrors.ErrInvalidAuction)
	case l.StartTime.IsZero() || l.EndTime.IsZero():
		return fmt.Errorf("service: %w - start and end time are required", biddingerrors.ErrInvalidAuction)
	case !l.EndTime.After(l.StartTime):
		return fmt.Errorf("service: %w - end time must be after start time", biddingerrors.ErrInvalidAuction)
	case !l.EndTime.After(s.now()):
		return fmt.Errorf("service: %w - end time is in the past", biddingerrors.ErrInvalidAuction)
	}
	return nil
}

// CreateListing stores a new PENDING auction whose price starts at the starting price
func (s *AuctionService) CreateListing(ctx context.Context, sellerID int64, l Listing) (models.Auction, error) {
	if sellerID <= 0 {
		return models.Auction{}, fmt.Errorf("service: %w - invalid seller ID", biddingerrors.ErrInvalidInput)
	}
	if err := s.validateListing(l); err != nil {
		return models.Auction{}, err
	}

	a := &models.Auction{
		CreatedBy:       sellerID,
		Status:          models.StatusPending,
		StartTime:       l.StartTime.UTC(),
		EndTime:         l.EndTime.UTC(),
		CurrentPrice:    l.StartingPrice,
		MinBidIncrement: l.MinBidIncrement,
		Product: models.Product{
			SellerID:      sellerID,
			CategoryID:    l.CategoryID,
			Title:         strings.TrimSpace(l.Title),
			Description:   l.Description,
			StartingPrice: l.StartingPrice,
			ImageURL:      l.ImageURL,
		},
	}
	if err := s.repo.CreateAuction(ctx, a); err != nil {
		return models.Auction{}, fmt.Errorf("service: failed to create auction: %w", err)
	}

	utils.Info("Auction listed", map[string]any{
		"auction_id": a.AuctionID,
		"seller_id":  sellerID,
	})
	return *a, nil
}

// ownedAuction loads auctionID and checks that sellerID listed it
func (s *AuctionService) ownedAuction(ctx context.Context, auctionID, sellerID int64) (models.Auction, error) {
	a, err := s.GetAuctionSnapshot(ctx, auctionID)
	if err != nil {
		return models.Auction{}, err
	}
	if a.CreatedBy != sellerID {
		return models.Auction{}, fmt.Errorf("service: auction %d: %w", auctionID, biddingerrors.ErrNotSeller)
	}
	return a, nil
}

// UpdateListing edits a listing that has no bids. The starting price only
// changes while the auction is PENDING.
func (s *AuctionService) UpdateListing(ctx context.Context, auctionID, sellerID int64, l Listing) (models.Auction, error) {
	a, err := s.ownedAuction(ctx, auctionID, sellerID)
	if err != nil {
		return models.Auction{}, err
	}
	if a.TotalBids > 0 {
		return models.Auction{}, fmt.Errorf("service: auction %d: %w", auctionID, biddingerrors.ErrAuctionHasBids)
	}
	if a.Status != models.StatusPending {
		l.StartingPrice = a.Product.StartingPrice
	}
	if err := s.validateListing(l); err != nil {
		return models.Auction{}, err
	}

	a.StartTime = l.StartTime.UTC()
	a.EndTime = l.EndTime.UTC()
	a.MinBidIncrement = l.MinBidIncrement
	a.Product.Title = strings.TrimSpace(l.Title)
	a.Product.Description = l.Description
	a.Product.ImageURL = l.ImageURL
	a.Product.CategoryID = l.CategoryID
	a.Product.StartingPrice = l.StartingPrice

	if err := s.repo.UpdateListing(ctx, a); err != nil {
		return models.Auction{}, fmt.Errorf("service: failed to update auction %d: %w", auctionID, err)
	}
	return s.GetAuctionSnapshot(ctx, auctionID)
}

// DeleteListing removes a listing together with its product. ACTIVE auctions cannot be deleted.
func (s *AuctionService) DeleteListing(ctx context.Context, auctionID, sellerID int64) error {
	if _, err := s.ownedAuction(ctx, auctionID, sellerID); err != nil {
		return err
	}
	if err := s.repo.DeleteAuction(ctx, auctionID); err != nil {
		return fmt.Errorf("service: failed to delete auction %d: %w", auctionID, err)
	}
	utils.Info("Auction deleted", map[string]any{"auction_id": auctionID, "seller_id": sellerID})
	return nil
}

// Approve moves a PENDING auction to ACTIVE
func (s *AuctionService) Approve(ctx context.Context, auctionID, adminID int64) (models.Auction, error) {
	return s.transition(ctx, auctionID, adminID, repository.StatusChange{
		From: []models.AuctionStatus{models.StatusPending},
		To:   models.StatusActive,
	})
}

// Reject moves a PENDING auction to CANCELLED
func (s *AuctionService) Reject(ctx context.Context, auctionID, adminID int64) (models.Auction, error) {
	return s.transition(ctx, auctionID, adminID, repository.StatusChange{
		From: []models.AuctionStatus{models.StatusPending},
		To:   models.StatusCancelled,
	})
}

// Cancel lets the seller withdraw a PENDING auction or an ACTIVE one nobody has bid on
func (s *AuctionService) Cancel(ctx context.Context, auctionID, sellerID int64) (models.Auction, error) {
	if _, err := s.ownedAuction(ctx, auctionID, sellerID); err != nil {
		return models.Auction{}, err
	}
	return s.transition(ctx, auctionID, sellerID, repository.StatusChange{
		From:          []models.AuctionStatus{models.StatusPending, models.StatusActive},
		To:            models.StatusCancelled,
		RequireNoBids: true,
	})
}

func (s *AuctionService) transition(ctx context.Context, auctionID, actorID int64, change repository.StatusChange) (models.Auction, error) {
	if auctionID <= 0 {
		return models.Auction{}, fmt.Errorf("service: %w - invalid auction ID", biddingerrors.ErrInvalidInput)
	}
	a, err := s.repo.TransitionStatus(ctx, auctionID, change)
	if err != nil {
		return models.Auction{}, fmt.Errorf("service: failed to move auction %d to %s: %w", auctionID, change.To, err)
	}

	payload := events.AuctionStatusChanged{
		AuctionID: auctionID,
		Status:    a.Status,
		ChangedBy: actorID,
		ChangedAt: s.now(),
	}
	if s.broadcaster != nil {
		s.broadcaster.PublishAuction(realtime.Event{
			Type:      realtime.EventAuctionStatus,
			AuctionID: auctionID,
			Data:      payload,
		})
	}
	if err := s.publisher.Publish(context.WithoutCancel(ctx), events.KeyAuctionStatus, payload); err != nil {
		utils.Warn("Failed to publish status event", map[string]any{
			"auction_id": auctionID,
			"status":     a.Status,
			"error":      err.Error(),
		})
	}

	utils.Info("Auction status changed", map[string]any{
		"auction_id": auctionID,
		"status":     a.Status,
		"actor_id":   actorID,
	})
	return a, nil
}

// GetWinner returns the highest bidder of a COMPLETED auction
func (s *AuctionService) GetWinner(ctx context.Context, auctionID int64) (Winner, error) {
	a, err := s.GetAuctionSnapshot(ctx, auctionID)
	if err != nil {
		return Winner{}, err
	}
	if a.Status != models.StatusCompleted {
		return Winner{}, fmt.Errorf("service: auction %d: %w", auctionID, biddingerrors.ErrNotCompleted)
	}
	if a.HighestBidderID == nil {
		return Winner{}, fmt.Errorf("service: auction %d: %w", auctionID, biddingerrors.ErrNoBids)
	}
	return Winner{
		AuctionID:            a.AuctionID,
		UserID:               *a.HighestBidderID,
		FinalPrice:           a.CurrentPrice,
		TotalBids:            a.TotalBids,
		TransactionCompleted: a.TransactionCompleted,
	}, nil
}

// CompleteTransaction marks the sale of a COMPLETED auction as settled
func (s *AuctionService) CompleteTransaction(ctx context.Context, auctionID, sellerID int64) (models.Auction, error) {
	a, err := s.ownedAuction(ctx, auctionID, sellerID)
	if err != nil {
		return models.Auction{}, err
	}
	if a.HighestBidderID == nil && a.Status == models.StatusCompleted {
		return models.Auction{}, fmt.Errorf("service: auction %d: %w", auctionID, biddingerrors.ErrNoBids)
	}
	if err := s.repo.MarkTransactionCompleted(ctx, auctionID, s.now()); err != nil {
		return models.Auction{}, fmt.Errorf("service: failed to complete transaction for auction %d: %w", auctionID, err)
	}
	return s.GetAuctionSnapshot(ctx, auctionID)
}

// Watch adds auctionID to the user's watchlist
func (s *AuctionService) Watch(ctx context.Context, userID, auctionID int64) (models.WatchlistEntry, error) {
	if userID <= 0 || auctionID <= 0 {
		return models.WatchlistEntry{}, fmt.Errorf("service: %w - invalid user or auction ID", biddingerrors.ErrInvalidInput)
	}
	entry, err := s.watchlist.AddToWatchlist(ctx, userID, auctionID)
	if err != nil {
		return models.WatchlistEntry{}, fmt.Errorf("service: failed to watch auction %d: %w", auctionID, err)
	}
	return entry, nil
}

// Unwatch removes auctionID from the user's watchlist
func (s *AuctionService) Unwatch(ctx context.Context, userID, auctionID int64) error {
	if userID <= 0 || auctionID <= 0 {
		return fmt.Errorf("service: %w - invalid user or auction ID", biddingerrors.ErrInvalidInput)
	}
	if err := s.watchlist.RemoveFromWatchlist(ctx, userID, auctionID); err != nil {
		return fmt.Errorf("service: failed to unwatch auction %d: %w", auctionID, err)
	}
	return nil
}

// Watchlist returns the auctions a user follows, newest first
func (s *AuctionService) Watchlist(ctx context.Context, userID int64) ([]models.WatchlistEntry, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("service: %w - invalid user ID", biddingerrors.ErrInvalidInput)
	}
	list, err := s.watchlist.GetWatchlist(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get watchlist for user %d: %w", userID, err)
	}
	if list == nil {
		list = []models.WatchlistEntry{}
	}
	return list, nil
}

// IsWatching reports whether the user follows auctionID
func (s *AuctionService) IsWatching(ctx context.Context, userID, auctionID int64) (bool, error) {
	ok, err := s.watchlist.IsWatching(ctx, userID, auctionID)
	if err != nil && !errors.Is(err, biddingerrors.ErrNotWatching) {
		return false, fmt.Errorf("service: failed to check watchlist: %w", err)
	}
	return ok, nil
}
