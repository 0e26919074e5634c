package handler

import (
	"context"
	"net/http"

	bidding "auction-engine/internal/biddingService"
	model "auction-engine/internal/models"
	"auction-engine/services/bidding/helpers"
	"auction-engine/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=bidding_handler.go -destination=mock_bidding_service.go -package=handler

type BiddingServiceInterface interface {
	SubmitBid(ctx context.Context, auctionID, bidderID int64, amount decimal.Decimal) (bidding.BidResult, error)
	GetBidsForAuction(ctx context.Context, auctionID int64) ([]model.Bid, error)
	GetBidsByUser(ctx context.Context, userID int64) ([]model.UserBid, error)
}

type BiddingHandler struct {
	service BiddingServiceInterface
}

func NewBiddingHandler(service BiddingServiceInterface) *BiddingHandler {
	return &BiddingHandler{service: service}
}

// RecordBidHandler handles POST /bids
func (h *BiddingHandler) RecordBidHandler(c *gin.Context) {
	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "RecordBidHandler", err)
		return
	}

	res, err := h.service.SubmitBid(c.Request.Context(), req.AuctionID, req.BidderID, req.Amount)
	if err != nil {
		helpers.WriteError(c, "RecordBidHandler", err, map[string]any{
			"auction_id": req.AuctionID,
			"bidder_id":  req.BidderID,
			"amount":     req.Amount.String(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.NewBidResponse(res), "bid recorded successfully")
	helpers.LogSuccess("RecordBidHandler", "bid recorded successfully", map[string]any{
		"bid_id":     res.Bid.BidID,
		"auction_id": res.Bid.AuctionID,
		"bidder_id":  res.Bid.BidderID,
		"amount":     res.Bid.Amount.String(),
	})
}

// GetBidsByAuctionHandler handles GET /auctions/:auction_id/bids
func (h *BiddingHandler) GetBidsByAuctionHandler(c *gin.Context) {
	auctionID, err := helpers.ParseIDParam(c, "auction_id")
	if err != nil {
		helpers.WriteError(c, "GetBidsByAuctionHandler", err, nil)
		return
	}

	bids, err := h.service.GetBidsForAuction(c.Request.Context(), auctionID)
	if err != nil {
		helpers.WriteError(c, "GetBidsByAuctionHandler", err, map[string]any{"auction_id": auctionID})
		return
	}
	if bids == nil {
		bids = []model.Bid{}
	}

	utils.JSONResponse(c, http.StatusOK, bids, "bids retrieved successfully")
	helpers.LogSuccess("GetBidsByAuctionHandler", "bids retrieved successfully", map[string]any{
		"auction_id": auctionID,
		"count":      len(bids),
	})
}

// GetBidsByUserHandler handles GET /users/:user_id/bids
func (h *BiddingHandler) GetBidsByUserHandler(c *gin.Context) {
	userID, err := helpers.ParseIDParam(c, "user_id")
	if err != nil {
		helpers.WriteError(c, "GetBidsByUserHandler", err, nil)
		return
	}

	bids, err := h.service.GetBidsByUser(c.Request.Context(), userID)
	if err != nil {
		helpers.WriteError(c, "GetBidsByUserHandler", err, map[string]any{"user_id": userID})
		return
	}
	if bids == nil {
		bids = []model.UserBid{}
	}

	utils.JSONResponse(c, http.StatusOK, bids, "bid history retrieved successfully")
	helpers.LogSuccess("GetBidsByUserHandler", "bid history retrieved successfully", map[string]any{
		"user_id":    userID,
		"bids_count": len(bids),
	})
}
