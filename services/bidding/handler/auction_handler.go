package handler

import (
	"context"
	"net/http"

	auction "auction-engine/internal/auctionService"
	model "auction-engine/internal/models"
	"auction-engine/services/bidding/helpers"
	"auction-engine/utils"

	"github.com/gin-gonic/gin"
)

//go:generate mockgen -source=auction_handler.go -destination=mock_auction_service.go -package=handler

type AuctionServiceInterface interface {
	List(ctx context.Context, q auction.ListQuery) ([]model.Auction, error)
	ViewAuction(ctx context.Context, auctionID int64) (model.Auction, error)
	GetWinner(ctx context.Context, auctionID int64) (auction.Winner, error)
	CreateListing(ctx context.Context, sellerID int64, l auction.Listing) (model.Auction, error)
	UpdateListing(ctx context.Context, auctionID, sellerID int64, l auction.Listing) (model.Auction, error)
	DeleteListing(ctx context.Context, auctionID, sellerID int64) error
	Cancel(ctx context.Context, auctionID, sellerID int64) (model.Auction, error)
	CompleteTransaction(ctx context.Context, auctionID, sellerID int64) (model.Auction, error)
	Approve(ctx context.Context, auctionID, adminID int64) (model.Auction, error)
	Reject(ctx context.Context, auctionID, adminID int64) (model.Auction, error)
	Watch(ctx context.Context, userID, auctionID int64) (model.WatchlistEntry, error)
	Unwatch(ctx context.Context, userID, auctionID int64) error
	Watchlist(ctx context.Context, userID int64) ([]model.WatchlistEntry, error)
	IsWatching(ctx context.Context, userID, auctionID int64) (bool, error)
}

type AuctionHandler struct {
	service AuctionServiceInterface
}

func NewAuctionHandler(service AuctionServiceInterface) *AuctionHandler {
	return &AuctionHandler{service: service}
}

// ListAuctionsHandler handles GET /auctions?status=&category_id=&page=&limit=
func (h *AuctionHandler) ListAuctionsHandler(c *gin.Context) {
	var req helpers.ListAuctionsQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		helpers.HandleBindError(c, "ListAuctionsHandler", err)
		return
	}
	q, err := req.ListQuery()
	if err != nil {
		helpers.WriteError(c, "ListAuctionsHandler", err, map[string]any{"category_id": req.Category})
		return
	}

	list, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		helpers.WriteError(c, "ListAuctionsHandler", err, map[string]any{"status": req.Status})
		return
	}
	if list == nil {
		list = []model.Auction{}
	}

	utils.JSONResponse(c, http.StatusOK, list, "auctions retrieved successfully")
}

// GetAuctionHandler handles GET /auctions/:auction_id
func (h *AuctionHandler) GetAuctionHandler(c *gin.Context) {
	auctionID, err := helpers.ParseIDParam(c, "auction_id")
	if err != nil {
		helpers.WriteError(c, "GetAuctionHandler", err, nil)
		return
	}

	a, err := h.service.ViewAuction(c.Request.Context(), auctionID)
	if err != nil {
		helpers.WriteError(c, "GetAuctionHandler", err, map[string]any{"auction_id": auctionID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, a, "auction retrieved successfully")
}

// GetWinnerHandler handles GET /auctions/:auction_id/winner
func (h *AuctionHandler) GetWinnerHandler(c *gin.Context) {
	auctionID, err := helpers.ParseIDParam(c, "auction_id")
	if err != nil {
		helpers.WriteError(c, "GetWinnerHandler", err, nil)
		return
	}

	winner, err := h.service.GetWinner(c.Request.Context(), auctionID)
	if err != nil {
		helpers.WriteError(c, "GetWinnerHandler", err, map[string]any{"auction_id": auctionID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, winner, "winner retrieved successfully")
	helpers.LogSuccess("GetWinnerHandler", "winner retrieved successfully", map[string]any{
		"auction_id": auctionID,
		"user_id":    winner.UserID,
	})
}

// CreateAuctionHandler handles POST /auctions
func (h *AuctionHandler) CreateAuctionHandler(c *gin.Context) {
	var req helpers.ListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateAuctionHandler", err)
		return
	}

	a, err := h.service.CreateListing(c.Request.Context(), req.SellerID, req.Listing())
	if err != nil {
		helpers.WriteError(c, "CreateAuctionHandler", err, map[string]any{"seller_id": req.SellerID})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, a, "auction created successfully")
	helpers.LogSuccess("CreateAuctionHandler", "auction created successfully", map[string]any{
		"auction_id": a.AuctionID,
		"seller_id":  req.SellerID,
	})
}

// UpdateAuctionHandler handles PUT /auctions/:auction_id
func (h *AuctionHandler) UpdateAuctionHandler(c *gin.Context) {
	auctionID, err := helpers.ParseIDParam(c, "auction_id")
	if err != nil {
		helpers.WriteError(c, "UpdateAuctionHandler", err, nil)
		return
	}
	var req helpers.ListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "UpdateAuctionHandler", err)
		return
	}

	a, err := h.service.UpdateListing(c.Request.Context(), auctionID, req.SellerID, req.Listing())
	if err != nil {
		helpers.WriteError(c, "UpdateAuctionHandler", err, map[string]any{
			"auction_id": auctionID,
			"seller_id":  req.SellerID,
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, a, "auction updated successfully")
	helpers.LogSuccess("UpdateAuctionHandler", "auction updated successfully", map[string]any{"auction_id": auctionID})
}

// DeleteAuctionHandler handles DELETE /auctions/:auction_id?seller_id=
func (h *AuctionHandler) DeleteAuctionHandler(c *gin.Context) {
	auctionID, sellerID, ok := h.auctionAndActor(c, "DeleteAuctionHandler", "seller_id", false)
	if !ok {
		return
	}

	if err := h.service.DeleteListing(c.Request.Context(), auctionID, sellerID); err != nil {
		helpers.WriteError(c, "DeleteAuctionHandler", err, map[string]any{
			"auction_id": auctionID,
			"seller_id":  sellerID,
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, gin.H{"auction_id": auctionID}, "auction deleted successfully")
	helpers.LogSuccess("DeleteAuctionHandler", "auction deleted successfully", map[string]any{"auction_id": auctionID})
}

// CancelAuctionHandler handles PUT /auctions/:auction_id/cancel?seller_id=
func (h *AuctionHandler) CancelAuctionHandler(c *gin.Context) {
	h.changeStatus(c, "CancelAuctionHandler", "seller_id", false, h.service.Cancel, "auction cancelled successfully")
}

// CompleteTransactionHandler handles PUT /auctions/:auction_id/complete-transaction?seller_id=
func (h *AuctionHandler) CompleteTransactionHandler(c *gin.Context) {
	h.changeStatus(c, "CompleteTransactionHandler", "seller_id", false, h.service.CompleteTransaction, "transaction completed successfully")
}

// ApproveAuctionHandler handles PUT /admin/auctions/:auction_id/approve
func (h *AuctionHandler) ApproveAuctionHandler(c *gin.Context) {
	h.changeStatus(c, "ApproveAuctionHandler", "admin_id", true, h.service.Approve, "auction approved successfully")
}

// RejectAuctionHandler handles PUT /admin/auctions/:auction_id/reject
func (h *AuctionHandler) RejectAuctionHandler(c *gin.Context) {
	h.changeStatus(c, "RejectAuctionHandler", "admin_id", true, h.service.Reject, "auction rejected successfully")
}

type auctionChange func(ctx context.Context, auctionID, actorID int64) (model.Auction, error)

func (h *AuctionHandler) changeStatus(c *gin.Context, handlerName, actorParam string, optional bool, change auctionChange, message string) {
	auctionID, actorID, ok := h.auctionAndActor(c, handlerName, actorParam, optional)
	if !ok {
		return
	}

	a, err := change(c.Request.Context(), auctionID, actorID)
	if err != nil {
		helpers.WriteError(c, handlerName, err, map[string]any{
			"auction_id": auctionID,
			actorParam:   actorID,
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, a, message)
	helpers.LogSuccess(handlerName, message, map[string]any{
		"auction_id": auctionID,
		"status":     a.Status,
		actorParam:   actorID,
	})
}

func (h *AuctionHandler) auctionAndActor(c *gin.Context, handlerName, actorParam string, optional bool) (int64, int64, bool) {
	auctionID, err := helpers.ParseIDParam(c, "auction_id")
	if err != nil {
		helpers.WriteError(c, handlerName, err, nil)
		return 0, 0, false
	}
	actorID, err := helpers.ParseIDQuery(c, actorParam, optional)
	if err != nil {
		helpers.WriteError(c, handlerName, err, map[string]any{"auction_id": auctionID})
		return 0, 0, false
	}
	return auctionID, actorID, true
}

// GetWatchlistHandler handles GET /users/:user_id/watchlist
func (h *AuctionHandler) GetWatchlistHandler(c *gin.Context) {
	userID, err := helpers.ParseIDParam(c, "user_id")
	if err != nil {
		helpers.WriteError(c, "GetWatchlistHandler", err, nil)
		return
	}

	list, err := h.service.Watchlist(c.Request.Context(), userID)
	if err != nil {
		helpers.WriteError(c, "GetWatchlistHandler", err, map[string]any{"user_id": userID})
		return
	}
	if list == nil {
		list = []model.WatchlistEntry{}
	}

	utils.JSONResponse(c, http.StatusOK, list, "watchlist retrieved successfully")
}

// IsWatchingHandler handles GET /users/:user_id/watchlist/:auction_id
func (h *AuctionHandler) IsWatchingHandler(c *gin.Context) {
	userID, auctionID, ok := watchPair(c, "IsWatchingHandler")
	if !ok {
		return
	}

	watching, err := h.service.IsWatching(c.Request.Context(), userID, auctionID)
	if err != nil {
		helpers.WriteError(c, "IsWatchingHandler", err, map[string]any{"user_id": userID, "auction_id": auctionID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.WatchingResponse{
		UserID:    userID,
		AuctionID: auctionID,
		Watching:  watching,
	}, "watchlist checked successfully")
}

// AddToWatchlistHandler handles POST /users/:user_id/watchlist
func (h *AuctionHandler) AddToWatchlistHandler(c *gin.Context) {
	userID, err := helpers.ParseIDParam(c, "user_id")
	if err != nil {
		helpers.WriteError(c, "AddToWatchlistHandler", err, nil)
		return
	}
	var req helpers.WatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "AddToWatchlistHandler", err)
		return
	}

	entry, err := h.service.Watch(c.Request.Context(), userID, req.AuctionID)
	if err != nil {
		helpers.WriteError(c, "AddToWatchlistHandler", err, map[string]any{"user_id": userID, "auction_id": req.AuctionID})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, entry, "auction added to watchlist")
	helpers.LogSuccess("AddToWatchlistHandler", "auction added to watchlist", map[string]any{
		"user_id":    userID,
		"auction_id": req.AuctionID,
	})
}

// RemoveFromWatchlistHandler handles DELETE /users/:user_id/watchlist/:auction_id
func (h *AuctionHandler) RemoveFromWatchlistHandler(c *gin.Context) {
	userID, auctionID, ok := watchPair(c, "RemoveFromWatchlistHandler")
	if !ok {
		return
	}

	if err := h.service.Unwatch(c.Request.Context(), userID, auctionID); err != nil {
		helpers.WriteError(c, "RemoveFromWatchlistHandler", err, map[string]any{"user_id": userID, "auction_id": auctionID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.WatchingResponse{
		UserID:    userID,
		AuctionID: auctionID,
		Watching:  false,
	}, "auction removed from watchlist")
}

func watchPair(c *gin.Context, handlerName string) (int64, int64, bool) {
	userID, err := helpers.ParseIDParam(c, "user_id")
	if err != nil {
		helpers.WriteError(c, handlerName, err, nil)
		return 0, 0, false
	}
	auctionID, err := helpers.ParseIDParam(c, "auction_id")
	if err != nil {
		helpers.WriteError(c, handlerName, err, nil)
		return 0, 0, false
	}
	return userID, auctionID, true
}
