package helpers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"auction-engine/internal/biddingerrors"
	"auction-engine/utils"

	"github.com/gin-gonic/gin"
)

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// ParseIDParam reads a positive int64 path parameter
func ParseIDParam(c *gin.Context, name string) (int64, error) {
	return parseID(name, c.Param(name))
}

// ParseIDQuery reads a positive int64 query parameter. Missing values are an error
// unless optional is set, in which case they read as zero.
func ParseIDQuery(c *gin.Context, name string, optional bool) (int64, error) {
	raw, ok := c.GetQuery(name)
	if !ok && optional {
		return 0, nil
	}
	return parseID(name, raw)
}

func parseID(name, raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w - %s must be a positive integer, got %q", biddingerrors.ErrInvalidInput, name, raw)
	}
	return id, nil
}

// MapErrorToHTTP maps domain/service errors to HTTP status code and message
func MapErrorToHTTP(err error) (int, string) {
	if _, ok := biddingerrors.AsRejection(err); ok {
		return http.StatusConflict, "bid rejected"
	}

	switch {
	case errors.Is(err, biddingerrors.ErrAuctionNotFound):
		return http.StatusNotFound, "auction not found"
	case errors.Is(err, biddingerrors.ErrNotificationNotFound):
		return http.StatusNotFound, "notification not found"
	case errors.Is(err, biddingerrors.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, biddingerrors.ErrNoBids):
		return http.StatusNotFound, "no bids found for auction"
	case errors.Is(err, biddingerrors.ErrNotWatching):
		return http.StatusNotFound, "auction not in watchlist"
	case errors.Is(err, biddingerrors.ErrInvalidBid):
		return http.StatusBadRequest, "invalid bid details"
	case errors.Is(err, biddingerrors.ErrInvalidAuction):
		return http.StatusBadRequest, "invalid auction details"
	case errors.Is(err, biddingerrors.ErrInvalidInput):
		return http.StatusBadRequest, "invalid request"
	case errors.Is(err, biddingerrors.ErrNotSeller):
		return http.StatusForbidden, "only the seller can change this auction"
	case errors.Is(err, biddingerrors.ErrInvalidTransition):
		return http.StatusConflict, "auction status does not allow this change"
	case errors.Is(err, biddingerrors.ErrAuctionHasBids):
		return http.StatusConflict, "auction already has bids"
	case errors.Is(err, biddingerrors.ErrAuctionActive):
		return http.StatusConflict, "auction is active"
	case errors.Is(err, biddingerrors.ErrNotCompleted):
		return http.StatusConflict, "auction is not completed"
	case errors.Is(err, biddingerrors.ErrAlreadyWatching):
		return http.StatusConflict, "auction already in watchlist"
	case errors.Is(err, biddingerrors.ErrConcurrentUpdate):
		return http.StatusConflict, "auction changed, try again"
	case errors.Is(err, biddingerrors.ErrAuctionBusy):
		return http.StatusServiceUnavailable, "auction is busy, try again"
	case errors.Is(err, biddingerrors.ErrPersistence):
		return http.StatusServiceUnavailable, "temporary storage failure, try again"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// WriteError maps err, writes the error envelope and logs it. Rejected bids carry
// their reason and acceptable range as details and are logged at info.
func WriteError(c *gin.Context, handlerName string, err error, fields map[string]any) {
	status, message := MapErrorToHTTP(err)
	if fields == nil {
		fields = map[string]any{}
	}
	fields["handler"] = handlerName
	fields["status"] = status
	fields["error"] = err.Error()

	if rej, ok := biddingerrors.AsRejection(err); ok {
		utils.JSONErrorWithDetails(c, status, err, message, RejectionDetails{
			Reason:    string(rej.Reason),
			MinAmount: rej.MinAmount,
			MaxAmount: rej.MaxAmount,
		})
		utils.Info(handlerName+": bid rejected", fields)
		return
	}

	utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
	if status >= http.StatusInternalServerError {
		utils.Error(handlerName+": request failed", fields)
		return
	}
	utils.Warn(handlerName+": request failed", fields)
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
