package notification

import (
	"context"
	"fmt"

	"auction-engine/internal/biddingerrors"
	"auction-engine/internal/models"
	"auction-engine/internal/realtime"
	"auction-engine/internal/repository"
	"auction-engine/utils"

	"github.com/shopspring/decimal"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100

	outbidTitle = "You have been outbid!"
	wonTitle    = "Congratulations! You won the auction"
)

// UserBroadcaster pushes events to a user's realtime channel
type UserBroadcaster interface {
	PublishUser(userID int64, e realtime.Event)
}

// NotificationService is the durable per-user notification sink. Realtime
// pushes are a convenience on top of the store and never fail an append.
type NotificationService struct {
	repo        repository.NotificationDB
	broadcaster UserBroadcaster
}

// NewNotificationService creates a NotificationService. broadcaster may be nil.
func NewNotificationService(repo repository.NotificationDB, broadcaster UserBroadcaster) *NotificationService {
	return &NotificationService{repo: repo, broadcaster: broadcaster}
}

// Append persists n and then pushes it to the user's sessions
func (s *NotificationService) Append(ctx context.Context, n *models.Notification) error {
	if n.UserID <= 0 || n.Message == "" {
		return fmt.Errorf("service: %w - notification needs a user and a message", biddingerrors.ErrInvalidInput)
	}
	if n.Type == "" {
		n.Type = models.NotificationGeneric
	}
	if err := s.repo.AppendNotification(ctx, n); err != nil {
		return fmt.Errorf("service: failed to append notification for user %d: %w", n.UserID, err)
	}

	if s.broadcaster != nil {
		s.broadcaster.PublishUser(n.UserID, realtime.Event{
			Type: realtime.EventNotificationCreated,
			Data: *n,
		})
	}
	return nil
}

// NotifyOutbid tells a displaced bidder that amount now leads auctionID
func (s *NotificationService) NotifyOutbid(ctx context.Context, userID, auctionID int64, amount decimal.Decimal) error {
	return s.Append(ctx, &models.Notification{
		UserID:    userID,
		Type:      models.NotificationOutbid,
		Title:     outbidTitle,
		Message:   fmt.Sprintf("Someone bid %s above you on auction #%d", amount.StringFixed(2), auctionID),
		AuctionID: &auctionID,
	})
}

// NotifyWon tells the highest bidder of a completed auction that they won
func (s *NotificationService) NotifyWon(ctx context.Context, a models.Auction) error {
	if a.HighestBidderID == nil {
		return fmt.Errorf("service: %w - auction %d has no winner", biddingerrors.ErrNoBids, a.AuctionID)
	}
	auctionID := a.AuctionID
	return s.Append(ctx, &models.Notification{
		UserID:    *a.HighestBidderID,
		Type:      models.NotificationWon,
		Title:     wonTitle,
		Message:   fmt.Sprintf("You won the auction %q for %s", a.Product.Title, a.CurrentPrice.StringFixed(2)),
		AuctionID: &auctionID,
	})
}

// HasWon reports whether userID was already told they won auctionID
func (s *NotificationService) HasWon(ctx context.Context, userID, auctionID int64) (bool, error) {
	ok, err := s.repo.HasNotification(ctx, userID, auctionID, models.NotificationWon)
	if err != nil {
		return false, fmt.Errorf("service: failed to check won notification: %w", err)
	}
	return ok, nil
}

// List returns the newest notifications of a user. limit defaults to 20 and is capped at 100.
func (s *NotificationService) List(ctx context.Context, userID int64, limit int) ([]models.Notification, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("service: %w - invalid user ID", biddingerrors.ErrInvalidInput)
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	list, err := s.repo.ListNotifications(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list notifications for user %d: %w", userID, err)
	}
	return list, nil
}

// MarkRead flips one notification to read
func (s *NotificationService) MarkRead(ctx context.Context, notificationID int64) error {
	if err := s.repo.MarkNotificationRead(ctx, notificationID); err != nil {
		return fmt.Errorf("service: failed to mark notification %d read: %w", notificationID, err)
	}
	return nil
}

// MarkAllRead flips every unread notification of a user and returns how many changed
func (s *NotificationService) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	n, err := s.repo.MarkAllNotificationsRead(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("service: failed to mark notifications read for user %d: %w", userID, err)
	}
	utils.Debug("Notifications marked read", map[string]any{"user_id": userID, "count": n})
	return n, nil
}
