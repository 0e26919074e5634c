package repository

import (
	"context"
	"fmt"
	"sort"
	"time"

	"auction-engine/internal/biddingerrors"
	"auction-engine/internal/models"
)

// AppendNotification stores n and assigns its id and creation time
func (r *MemoryRepo) AppendNotification(_ context.Context, n *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextNotificationID++
	n.NotificationID = r.nextNotificationID
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	stored := *n
	r.notifications[n.UserID] = append(r.notifications[n.UserID], &stored)
	r.notifByID[n.NotificationID] = &stored
	return nil
}

// ListNotifications returns up to limit notifications for a user, newest first
func (r *MemoryRepo) ListNotifications(_ context.Context, userID int64, limit int) ([]models.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.notifications[userID]
	out := make([]models.Notification, 0, len(stored))
	for _, n := range stored {
		out = append(out, *n)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].NotificationID > out[j].NotificationID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// MarkNotificationRead flips a single notification to read
func (r *MemoryRepo) MarkNotificationRead(_ context.Context, notificationID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, ok := r.notifByID[notificationID]
	if !ok {
		return fmt.Errorf("mark notification %d read: %w", notificationID, biddingerrors.ErrNotificationNotFound)
	}
	n.IsRead = true
	return nil
}

// MarkAllNotificationsRead flips every unread notification of a user and returns
// how many changed
func (r *MemoryRepo) MarkAllNotificationsRead(_ context.Context, userID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var changed int64
	for _, n := range r.notifications[userID] {
		if !n.IsRead {
			n.IsRead = true
			changed++
		}
	}
	return changed, nil
}

// HasNotification reports whether userID already has a notification of kind for auctionID
func (r *MemoryRepo) HasNotification(_ context.Context, userID, auctionID int64, kind models.NotificationType) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.hasNotificationLocked(userID, auctionID, kind), nil
}

func (r *MemoryRepo) hasNotificationLocked(userID, auctionID int64, kind models.NotificationType) bool {
	for _, n := range r.notifications[userID] {
		if n.Type == kind && n.AuctionID != nil && *n.AuctionID == auctionID {
			return true
		}
	}
	return false
}

// AddToWatchlist records that userID follows auctionID
func (r *MemoryRepo) AddToWatchlist(_ context.Context, userID, auctionID int64) (models.WatchlistEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.auctions[auctionID]; !ok {
		return models.WatchlistEntry{}, fmt.Errorf("watch auction %d: %w", auctionID, biddingerrors.ErrAuctionNotFound)
	}
	for _, e := range r.watchlist[userID] {
		if e.AuctionID == auctionID {
			return models.WatchlistEntry{}, fmt.Errorf("watch auction %d: %w", auctionID, biddingerrors.ErrAlreadyWatching)
		}
	}
	entry := models.WatchlistEntry{UserID: userID, AuctionID: auctionID, AddedAt: time.Now().UTC()}
	r.watchlist[userID] = append(r.watchlist[userID], entry)
	return entry, nil
}

// RemoveFromWatchlist deletes the (userID, auctionID) pair
func (r *MemoryRepo) RemoveFromWatchlist(_ context.Context, userID, auctionID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries := r.watchlist[userID]
	for i, e := range entries {
		if e.AuctionID == auctionID {
			r.watchlist[userID] = append(entries[:i], entries[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("unwatch auction %d: %w", auctionID, biddingerrors.ErrNotWatching)
}

// GetWatchlist returns the user's watchlist, most recently added first
func (r *MemoryRepo) GetWatchlist(_ context.Context, userID int64) ([]models.WatchlistEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := append([]models.WatchlistEntry{}, r.watchlist[userID]...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].AddedAt.After(out[j].AddedAt) })
	return out, nil
}

// IsWatching reports whether the pair exists
func (r *MemoryRepo) IsWatching(_ context.Context, userID, auctionID int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.watchlist[userID] {
		if e.AuctionID == auctionID {
			return true, nil
		}
	}
	return false, nil
}
