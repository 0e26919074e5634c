package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"auction-engine/internal/biddingerrors"
	"auction-engine/internal/models"
)

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=repository

// StatusChange describes a guarded status transition
type StatusChange struct {
	From          []models.AuctionStatus
	To            models.AuctionStatus
	RequireNoBids bool
}

func (c StatusChange) allows(a *models.Auction) error {
	allowed := false
	for _, s := range c.From {
		if a.Status == s {
			allowed = true
			break
		}
	}
	if !allowed {
		return fmt.Errorf("%w: %s -> %s", biddingerrors.ErrInvalidTransition, a.Status, c.To)
	}
	if c.RequireNoBids && a.TotalBids > 0 {
		return fmt.Errorf("%w: %d bids", biddingerrors.ErrAuctionHasBids, a.TotalBids)
	}
	return nil
}

// AuctionFilter narrows ListAuctions. Zero fields match every auction; a zero
// Limit returns every match after Offset.
type AuctionFilter struct {
	Status     models.AuctionStatus
	CategoryID *int64
	Limit      int
	Offset     int
}

func (f AuctionFilter) matches(a *models.Auction) bool {
	if f.Status != "" && a.Status != f.Status {
		return false
	}
	if f.CategoryID != nil && (a.Product.CategoryID == nil || *a.Product.CategoryID != *f.CategoryID) {
		return false
	}
	return true
}

// AuctionDB defines the auction and bid storage interface for the auction system
type AuctionDB interface {
	GetAuction(ctx context.Context, auctionID int64) (models.Auction, error)
	// ListAuctions returns a page of auctions, latest start time first
	ListAuctions(ctx context.Context, filter AuctionFilter) ([]models.Auction, error)
	// CommitBid appends bid and moves the auction aggregates to it in one atomic
	// step. It fails with ErrConcurrentUpdate when the stored auction no longer
	// matches expected in status, current price or bid count.
	CommitBid(ctx context.Context, bid *models.Bid, expected models.Auction) error
	GetBidsByAuction(ctx context.Context, auctionID int64) ([]models.Bid, error)
	GetBidsByUser(ctx context.Context, userID int64) ([]models.UserBid, error)

	CreateAuction(ctx context.Context, auction *models.Auction) error
	UpdateListing(ctx context.Context, auction models.Auction) error
	DeleteAuction(ctx context.Context, auctionID int64) error
	TransitionStatus(ctx context.Context, auctionID int64, change StatusChange) (models.Auction, error)
	IncrementViewCount(ctx context.Context, auctionID int64) error
	MarkTransactionCompleted(ctx context.Context, auctionID int64, at time.Time) error

	// CompleteExpired moves every ACTIVE auction whose end time is before now to
	// COMPLETED and returns their ids
	CompleteExpired(ctx context.Context, now time.Time) ([]int64, error)
	// ListUnnotifiedWinners returns COMPLETED auctions with a highest bidder who
	// has no won notification for that auction yet
	ListUnnotifiedWinners(ctx context.Context) ([]models.Auction, error)
}

// NotificationDB is the append-only notification sink storage
type NotificationDB interface {
	AppendNotification(ctx context.Context, n *models.Notification) error
	ListNotifications(ctx context.Context, userID int64, limit int) ([]models.Notification, error)
	MarkNotificationRead(ctx context.Context, notificationID int64) error
	MarkAllNotificationsRead(ctx context.Context, userID int64) (int64, error)
	HasNotification(ctx context.Context, userID, auctionID int64, kind models.NotificationType) (bool, error)
}

// WatchlistDB stores the auctions each user follows
type WatchlistDB interface {
	AddToWatchlist(ctx context.Context, userID, auctionID int64) (models.WatchlistEntry, error)
	RemoveFromWatchlist(ctx context.Context, userID, auctionID int64) error
	GetWatchlist(ctx context.Context, userID int64) ([]models.WatchlistEntry, error)
	IsWatching(ctx context.Context, userID, auctionID int64) (bool, error)
}

// Store is everything the engine persists
type Store interface {
	AuctionDB
	NotificationDB
	WatchlistDB
}

var (
	_ Store = (*MemoryRepo)(nil)
	_ Store = (*PostgresRepo)(nil)
)

// MemoryRepo is a concurrency-safe in-memory implementation of AuctionDB,
// NotificationDB and WatchlistDB
type MemoryRepo struct {
	mu            sync.RWMutex
	auctions      map[int64]*models.Auction      // key: auctionID
	bids          map[int64][]models.Bid         // key: auctionID -> bids in commit order
	userAuctions  map[int64][]int64              // key: userID -> auctions the user has bid on
	notifications map[int64][]*models.Notification // key: userID
	notifByID     map[int64]*models.Notification
	watchlist     map[int64][]models.WatchlistEntry // key: userID

	nextAuctionID      int64
	nextProductID      int64
	nextBidID          int64
	nextNotificationID int64
}

// NewMemoryRepo creates a new in-memory repository instance
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		auctions:      make(map[int64]*models.Auction),
		bids:          make(map[int64][]models.Bid),
		userAuctions:  make(map[int64][]int64),
		notifications: make(map[int64][]*models.Notification),
		notifByID:     make(map[int64]*models.Notification),
		watchlist:     make(map[int64][]models.WatchlistEntry),
	}
}

func cloneAuction(a *models.Auction) models.Auction {
	out := *a
	if a.HighestBidderID != nil {
		id := *a.HighestBidderID
		out.HighestBidderID = &id
	}
	if a.CompletedAt != nil {
		at := *a.CompletedAt
		out.CompletedAt = &at
	}
	if a.Product.CategoryID != nil {
		c := *a.Product.CategoryID
		out.Product.CategoryID = &c
	}
	return out
}

// GetAuction returns a copy of the stored auction
func (r *MemoryRepo) GetAuction(_ context.Context, auctionID int64) (models.Auction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.auctions[auctionID]
	if !ok {
		return models.Auction{}, fmt.Errorf("get auction %d: %w", auctionID, biddingerrors.ErrAuctionNotFound)
	}
	return cloneAuction(a), nil
}

// ListAuctions returns the auctions matching filter, latest start time first
func (r *MemoryRepo) ListAuctions(_ context.Context, filter AuctionFilter) ([]models.Auction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Auction, 0)
	for _, a := range r.auctions {
		if filter.matches(a) {
			out = append(out, cloneAuction(a))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartTime.Equal(out[j].StartTime) {
			return out[i].StartTime.After(out[j].StartTime)
		}
		return out[i].AuctionID > out[j].AuctionID
	})

	if filter.Offset >= len(out) {
		return []models.Auction{}, nil
	}
	out = out[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(out) {
		out = out[:filter.Limit]
	}
	return out, nil
}

// CommitBid records bid and updates the auction aggregates atomically
func (r *MemoryRepo) CommitBid(_ context.Context, bid *models.Bid, expected models.Auction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.auctions[bid.AuctionID]
	if !ok {
		return fmt.Errorf("commit bid for auction %d: %w", bid.AuctionID, biddingerrors.ErrAuctionNotFound)
	}
	if a.Status != models.StatusActive || a.TotalBids != expected.TotalBids || !a.CurrentPrice.Equal(expected.CurrentPrice) {
		return fmt.Errorf("commit bid for auction %d: %w", bid.AuctionID, biddingerrors.ErrConcurrentUpdate)
	}

	r.nextBidID++
	bid.BidID = r.nextBidID
	bid.IsValid = true
	r.bids[bid.AuctionID] = append(r.bids[bid.AuctionID], *bid)

	bidder := bid.BidderID
	a.CurrentPrice = bid.Amount
	a.HighestBidderID = &bidder
	a.TotalBids++

	for _, id := range r.userAuctions[bid.BidderID] {
		if id == bid.AuctionID {
			return nil
		}
	}
	r.userAuctions[bid.BidderID] = append(r.userAuctions[bid.BidderID], bid.AuctionID)
	return nil
}

// GetBidsByAuction returns all bids for an auction in commit order
func (r *MemoryRepo) GetBidsByAuction(_ context.Context, auctionID int64) ([]models.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.auctions[auctionID]; !ok {
		return nil, fmt.Errorf("get bids for auction %d: %w", auctionID, biddingerrors.ErrAuctionNotFound)
	}
	return append([]models.Bid{}, r.bids[auctionID]...), nil
}

// GetBidsByUser returns every bid the user placed, newest first
func (r *MemoryRepo) GetBidsByUser(_ context.Context, userID int64) ([]models.UserBid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.UserBid
	for _, auctionID := range r.userAuctions[userID] {
		a, ok := r.auctions[auctionID]
		if !ok {
			continue
		}
		for _, b := range r.bids[auctionID] {
			if b.BidderID != userID {
				continue
			}
			out = append(out, models.UserBid{
				Bid:             b,
				ProductTitle:    a.Product.Title,
				CurrentPrice:    a.CurrentPrice,
				Status:          a.Status,
				EndTime:         a.EndTime,
				IsHighestBidder: a.IsHighestBidder(userID),
			})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].BidTime.After(out[j].BidTime)
	})
	return out, nil
}

// CreateAuction stores a new auction together with its product
func (r *MemoryRepo) CreateAuction(_ context.Context, auction *models.Auction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.insertLocked(auction)
	return nil
}

func (r *MemoryRepo) insertLocked(auction *models.Auction) {
	if auction.AuctionID == 0 {
		r.nextAuctionID++
		auction.AuctionID = r.nextAuctionID
	} else if auction.AuctionID > r.nextAuctionID {
		r.nextAuctionID = auction.AuctionID
	}
	if auction.Product.ProductID == 0 {
		r.nextProductID++
		auction.Product.ProductID = r.nextProductID
	} else if auction.Product.ProductID > r.nextProductID {
		r.nextProductID = auction.Product.ProductID
	}
	auction.ProductID = auction.Product.ProductID
	now := time.Now().UTC()
	if auction.CreatedAt.IsZero() {
		auction.CreatedAt = now
	}
	if auction.Product.CreatedAt.IsZero() {
		auction.Product.CreatedAt = now
	}
	stored := cloneAuction(auction)
	r.auctions[auction.AuctionID] = &stored
}

// UpdateListing rewrites the seller-editable fields of an auction with no bids
func (r *MemoryRepo) UpdateListing(_ context.Context, auction models.Auction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.auctions[auction.AuctionID]
	if !ok {
		return fmt.Errorf("update auction %d: %w", auction.AuctionID, biddingerrors.ErrAuctionNotFound)
	}
	if a.TotalBids > 0 {
		return fmt.Errorf("update auction %d: %w", auction.AuctionID, biddingerrors.ErrAuctionHasBids)
	}
	if a.Status.IsTerminal() {
		return fmt.Errorf("update auction %d: %w: status %s", auction.AuctionID, biddingerrors.ErrInvalidTransition, a.Status)
	}
	a.Product.Title = auction.Product.Title
	a.Product.Description = auction.Product.Description
	a.Product.ImageURL = auction.Product.ImageURL
	a.Product.CategoryID = auction.Product.CategoryID
	a.StartTime = auction.StartTime
	a.EndTime = auction.EndTime
	a.MinBidIncrement = auction.MinBidIncrement
	if a.Status == models.StatusPending {
		a.Product.StartingPrice = auction.Product.StartingPrice
		a.CurrentPrice = auction.Product.StartingPrice
	}
	return nil
}

// DeleteAuction removes an auction, its product, its bids and the watchlist
// entries on it. Notifications about it stay but lose their auction reference.
func (r *MemoryRepo) DeleteAuction(_ context.Context, auctionID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.auctions[auctionID]
	if !ok {
		return fmt.Errorf("delete auction %d: %w", auctionID, biddingerrors.ErrAuctionNotFound)
	}
	if a.Status == models.StatusActive {
		return fmt.Errorf("delete auction %d: %w", auctionID, biddingerrors.ErrAuctionActive)
	}
	for _, b := range r.bids[auctionID] {
		ids := r.userAuctions[b.BidderID]
		for i, id := range ids {
			if id == auctionID {
				r.userAuctions[b.BidderID] = append(ids[:i], ids[i+1:]...)
				break
			}
		}
	}
	delete(r.bids, auctionID)
	delete(r.auctions, auctionID)

	for userID, entries := range r.watchlist {
		kept := entries[:0]
		for _, e := range entries {
			if e.AuctionID != auctionID {
				kept = append(kept, e)
			}
		}
		r.watchlist[userID] = kept
	}
	for _, n := range r.notifByID {
		if n.AuctionID != nil && *n.AuctionID == auctionID {
			n.AuctionID = nil
		}
	}
	return nil
}

// TransitionStatus applies change if the auction currently satisfies it
func (r *MemoryRepo) TransitionStatus(_ context.Context, auctionID int64, change StatusChange) (models.Auction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.auctions[auctionID]
	if !ok {
		return models.Auction{}, fmt.Errorf("transition auction %d: %w", auctionID, biddingerrors.ErrAuctionNotFound)
	}
	if err := change.allows(a); err != nil {
		return models.Auction{}, fmt.Errorf("transition auction %d: %w", auctionID, err)
	}
	a.Status = change.To
	return cloneAuction(a), nil
}

// IncrementViewCount bumps the view counter of an auction
func (r *MemoryRepo) IncrementViewCount(_ context.Context, auctionID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.auctions[auctionID]
	if !ok {
		return fmt.Errorf("count view for auction %d: %w", auctionID, biddingerrors.ErrAuctionNotFound)
	}
	a.ViewCount++
	return nil
}

// MarkTransactionCompleted flags the sale of a COMPLETED auction as settled
func (r *MemoryRepo) MarkTransactionCompleted(_ context.Context, auctionID int64, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.auctions[auctionID]
	if !ok {
		return fmt.Errorf("complete transaction for auction %d: %w", auctionID, biddingerrors.ErrAuctionNotFound)
	}
	if a.Status != models.StatusCompleted {
		return fmt.Errorf("complete transaction for auction %d: %w", auctionID, biddingerrors.ErrNotCompleted)
	}
	at = at.UTC()
	a.TransactionCompleted = true
	a.CompletedAt = &at
	return nil
}

// CompleteExpired closes every ACTIVE auction that ended before now
func (r *MemoryRepo) CompleteExpired(_ context.Context, now time.Time) ([]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var completed []int64
	for id, a := range r.auctions {
		if a.Status == models.StatusActive && a.EndTime.Before(now) {
			a.Status = models.StatusCompleted
			completed = append(completed, id)
		}
	}
	sort.Slice(completed, func(i, j int) bool { return completed[i] < completed[j] })
	return completed, nil
}

// ListUnnotifiedWinners returns completed auctions whose winner has not been told
func (r *MemoryRepo) ListUnnotifiedWinners(_ context.Context) ([]models.Auction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Auction
	for _, a := range r.auctions {
		if a.Status != models.StatusCompleted || a.HighestBidderID == nil {
			continue
		}
		if r.hasNotificationLocked(*a.HighestBidderID, a.AuctionID, models.NotificationWon) {
			continue
		}
		out = append(out, cloneAuction(a))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AuctionID < out[j].AuctionID })
	return out, nil
}

// AddAuction seeds an auction directly, bypassing the PENDING workflow. It is
// intended for tests and demo data.
func (r *MemoryRepo) AddAuction(auction models.Auction) models.Auction {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.insertLocked(&auction)
	return cloneAuction(r.auctions[auction.AuctionID])
}
