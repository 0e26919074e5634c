package handler

import (
	"context"
	"net/http"
	"strconv"

	"auction-engine/internal/biddingerrors"
	model "auction-engine/internal/models"
	"auction-engine/services/bidding/helpers"
	"auction-engine/utils"

	"github.com/gin-gonic/gin"
)

//go:generate mockgen -source=notification_handler.go -destination=mock_notification_service.go -package=handler

type NotificationServiceInterface interface {
	List(ctx context.Context, userID int64, limit int) ([]model.Notification, error)
	MarkRead(ctx context.Context, notificationID int64) error
	MarkAllRead(ctx context.Context, userID int64) (int64, error)
}

type NotificationHandler struct {
	service NotificationServiceInterface
}

func NewNotificationHandler(service NotificationServiceInterface) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// ListNotificationsHandler handles GET /users/:user_id/notifications?limit=
func (h *NotificationHandler) ListNotificationsHandler(c *gin.Context) {
	userID, err := helpers.ParseIDParam(c, "user_id")
	if err != nil {
		helpers.WriteError(c, "ListNotificationsHandler", err, nil)
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			helpers.WriteError(c, "ListNotificationsHandler", biddingerrors.ErrInvalidInput, map[string]any{"limit": raw})
			return
		}
	}

	list, err := h.service.List(c.Request.Context(), userID, limit)
	if err != nil {
		helpers.WriteError(c, "ListNotificationsHandler", err, map[string]any{"user_id": userID})
		return
	}
	if list == nil {
		list = []model.Notification{}
	}

	utils.JSONResponse(c, http.StatusOK, list, "notifications retrieved successfully")
}

// MarkReadHandler handles PUT /notifications/:notification_id/read
func (h *NotificationHandler) MarkReadHandler(c *gin.Context) {
	notificationID, err := helpers.ParseIDParam(c, "notification_id")
	if err != nil {
		helpers.WriteError(c, "MarkReadHandler", err, nil)
		return
	}

	if err := h.service.MarkRead(c.Request.Context(), notificationID); err != nil {
		helpers.WriteError(c, "MarkReadHandler", err, map[string]any{"notification_id": notificationID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, gin.H{"notification_id": notificationID}, "notification marked as read")
}

// MarkAllReadHandler handles PUT /users/:user_id/notifications/read-all
func (h *NotificationHandler) MarkAllReadHandler(c *gin.Context) {
	userID, err := helpers.ParseIDParam(c, "user_id")
	if err != nil {
		helpers.WriteError(c, "MarkAllReadHandler", err, nil)
		return
	}

	n, err := h.service.MarkAllRead(c.Request.Context(), userID)
	if err != nil {
		helpers.WriteError(c, "MarkAllReadHandler", err, map[string]any{"user_id": userID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.MarkAllReadResponse{UserID: userID, Updated: n}, "notifications marked as read")
	helpers.LogSuccess("MarkAllReadHandler", "notifications marked as read", map[string]any{
		"user_id": userID,
		"updated": n,
	})
}
