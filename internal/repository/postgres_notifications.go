package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"auction-engine/internal/biddingerrors"
	"auction-engine/internal/models"
)

const (
	insertNotificationSQL = `INSERT INTO notifications (user_id, notification_type, title, message, auction_id)
VALUES ($1, $2, $3, $4, $5) RETURNING notification_id, created_at`

	listNotificationsSQL = `SELECT notification_id, user_id, notification_type, title, message, auction_id, is_read, created_at
FROM notifications WHERE user_id = $1
ORDER BY created_at DESC, notification_id DESC
LIMIT $2`

	markNotificationReadSQL = `UPDATE notifications SET is_read = TRUE WHERE notification_id = $1`

	markAllNotificationsReadSQL = `UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND NOT is_read`

	hasNotificationSQL = `SELECT EXISTS (
    SELECT 1 FROM notifications WHERE user_id = $1 AND auction_id = $2 AND notification_type = $3
)`

	insertWatchlistSQL = `INSERT INTO watchlist (user_id, auction_id) VALUES ($1, $2) RETURNING added_at`

	deleteWatchlistSQL = `DELETE FROM watchlist WHERE user_id = $1 AND auction_id = $2`

	listWatchlistSQL = `SELECT user_id, auction_id, added_at FROM watchlist WHERE user_id = $1 ORDER BY added_at DESC`

	isWatchingSQL = `SELECT EXISTS (SELECT 1 FROM watchlist WHERE user_id = $1 AND auction_id = $2)`
)

// AppendNotification inserts n and fills in its id and creation time
func (r *PostgresRepo) AppendNotification(ctx context.Context, n *models.Notification) error {
	err := r.db.QueryRowContext(ctx, insertNotificationSQL,
		n.UserID, string(n.Type), n.Title, n.Message, nullableInt(n.AuctionID),
	).Scan(&n.NotificationID, &n.CreatedAt)
	if err != nil {
		switch pqCode(err) {
		case pqUniqueViolation:
			return fmt.Errorf("append notification for user %d: %w", n.UserID, biddingerrors.ErrDuplicateNotification)
		case pqForeignKeyViolation:
			return fmt.Errorf("append notification for user %d: %w", n.UserID, biddingerrors.ErrUserNotFound)
		}
		return fmt.Errorf("append notification for user %d: %w", n.UserID, err)
	}
	return nil
}

// ListNotifications returns up to limit notifications for a user, newest first
func (r *PostgresRepo) ListNotifications(ctx context.Context, userID int64, limit int) ([]models.Notification, error) {
	rows, err := r.db.QueryContext(ctx, listNotificationsSQL, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list notifications for user %d: %w", userID, err)
	}
	defer rows.Close()

	out := []models.Notification{}
	for rows.Next() {
		var (
			n         models.Notification
			kind      string
			auctionID sql.NullInt64
		)
		if err := rows.Scan(&n.NotificationID, &n.UserID, &kind, &n.Title, &n.Message, &auctionID, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("list notifications for user %d: scan: %w", userID, err)
		}
		n.Type = models.NotificationType(kind)
		if auctionID.Valid {
			id := auctionID.Int64
			n.AuctionID = &id
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list notifications for user %d: %w", userID, err)
	}
	return out, nil
}

// MarkNotificationRead flips a single notification to read
func (r *PostgresRepo) MarkNotificationRead(ctx context.Context, notificationID int64) error {
	res, err := r.db.ExecContext(ctx, markNotificationReadSQL, notificationID)
	if err != nil {
		return fmt.Errorf("mark notification %d read: %w", notificationID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("mark notification %d read: %w", notificationID, biddingerrors.ErrNotificationNotFound)
	}
	return nil
}

// MarkAllNotificationsRead flips every unread notification of a user
func (r *PostgresRepo) MarkAllNotificationsRead(ctx context.Context, userID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, markAllNotificationsReadSQL, userID)
	if err != nil {
		return 0, fmt.Errorf("mark notifications read for user %d: %w", userID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("mark notifications read for user %d: %w", userID, err)
	}
	return n, nil
}

// HasNotification reports whether userID already has a notification of kind for auctionID
func (r *PostgresRepo) HasNotification(ctx context.Context, userID, auctionID int64, kind models.NotificationType) (bool, error) {
	var exists bool
	if err := r.db.QueryRowContext(ctx, hasNotificationSQL, userID, auctionID, string(kind)).Scan(&exists); err != nil {
		return false, fmt.Errorf("check notification for user %d: %w", userID, err)
	}
	return exists, nil
}

// AddToWatchlist records that userID follows auctionID
func (r *PostgresRepo) AddToWatchlist(ctx context.Context, userID, auctionID int64) (models.WatchlistEntry, error) {
	entry := models.WatchlistEntry{UserID: userID, AuctionID: auctionID}
	err := r.db.QueryRowContext(ctx, insertWatchlistSQL, userID, auctionID).Scan(&entry.AddedAt)
	if err != nil {
		switch pqCode(err) {
		case pqUniqueViolation:
			return models.WatchlistEntry{}, fmt.Errorf("watch auction %d: %w", auctionID, biddingerrors.ErrAlreadyWatching)
		case pqForeignKeyViolation:
			return models.WatchlistEntry{}, fmt.Errorf("watch auction %d: %w", auctionID, biddingerrors.ErrAuctionNotFound)
		}
		return models.WatchlistEntry{}, fmt.Errorf("watch auction %d: %w", auctionID, err)
	}
	return entry, nil
}

// RemoveFromWatchlist deletes the (userID, auctionID) pair
func (r *PostgresRepo) RemoveFromWatchlist(ctx context.Context, userID, auctionID int64) error {
	res, err := r.db.ExecContext(ctx, deleteWatchlistSQL, userID, auctionID)
	if err != nil {
		return fmt.Errorf("unwatch auction %d: %w", auctionID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("unwatch auction %d: %w", auctionID, biddingerrors.ErrNotWatching)
	}
	return nil
}

// GetWatchlist returns the user's watchlist, most recently added first
func (r *PostgresRepo) GetWatchlist(ctx context.Context, userID int64) ([]models.WatchlistEntry, error) {
	rows, err := r.db.QueryContext(ctx, listWatchlistSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("get watchlist for user %d: %w", userID, err)
	}
	defer rows.Close()

	out := []models.WatchlistEntry{}
	for rows.Next() {
		var e models.WatchlistEntry
		if err := rows.Scan(&e.UserID, &e.AuctionID, &e.AddedAt); err != nil {
			return nil, fmt.Errorf("get watchlist for user %d: scan: %w", userID, err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get watchlist for user %d: %w", userID, err)
	}
	return out, nil
}

// IsWatching reports whether the pair exists
func (r *PostgresRepo) IsWatching(ctx context.Context, userID, auctionID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, isWatchingSQL, userID, auctionID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check watchlist for user %d: %w", userID, err)
	}
	return exists, nil
}
