package helpers

import (
	"strings"
	"time"

	auction "auction-engine/internal/auctionService"
	bidding "auction-engine/internal/biddingService"
	model "auction-engine/internal/models"

	"github.com/shopspring/decimal"
)

// Request/Response DTOs
type PlaceBidRequest struct {
	AuctionID int64           `json:"auction_id" binding:"required,gt=0"`
	BidderID  int64           `json:"bidder_id" binding:"required,gt=0"`
	Amount    decimal.Decimal `json:"amount"`
}

type BidResponse struct {
	BidID        int64           `json:"bid_id"`
	AuctionID    int64           `json:"auction_id"`
	BidderID     int64           `json:"bidder_id"`
	Amount       decimal.Decimal `json:"bid_amount"`
	BidTime      string          `json:"bid_time"`
	CurrentPrice decimal.Decimal `json:"current_price"`
	TotalBids    int64           `json:"total_bids"`
	MinNextBid   decimal.Decimal `json:"min_next_bid"`
	MaxNextBid   decimal.Decimal `json:"max_next_bid"`
}

// NewBidResponse flattens an accepted bid for the API
func NewBidResponse(res bidding.BidResult) BidResponse {
	return BidResponse{
		BidID:        res.Bid.BidID,
		AuctionID:    res.Bid.AuctionID,
		BidderID:     res.Bid.BidderID,
		Amount:       res.Bid.Amount,
		BidTime:      res.Bid.BidTime.UTC().Format(time.RFC3339),
		CurrentPrice: res.Auction.CurrentPrice,
		TotalBids:    res.Auction.TotalBids,
		MinNextBid:   res.MinNextBid,
		MaxNextBid:   res.MaxNextBid,
	}
}

// RejectionDetails is the machine-readable part of a rejected bid
type RejectionDetails struct {
	Reason    string          `json:"reason"`
	MinAmount decimal.Decimal `json:"min_amount"`
	MaxAmount decimal.Decimal `json:"max_amount"`
}

type ListingRequest struct {
	SellerID        int64           `json:"seller_id" binding:"required,gt=0"`
	Title           string          `json:"title" binding:"required"`
	Description     string          `json:"description"`
	ImageURL        string          `json:"image_url"`
	CategoryID      *int64          `json:"category_id"`
	StartingPrice   decimal.Decimal `json:"starting_price"`
	MinBidIncrement decimal.Decimal `json:"min_bid_increment"`
	StartTime       time.Time       `json:"start_time" binding:"required"`
	EndTime         time.Time       `json:"end_time" binding:"required"`
}

// Listing converts the request into the service input
func (r ListingRequest) Listing() auction.Listing {
	return auction.Listing{
		Title:           r.Title,
		Description:     r.Description,
		ImageURL:        r.ImageURL,
		CategoryID:      r.CategoryID,
		StartingPrice:   r.StartingPrice,
		MinBidIncrement: r.MinBidIncrement,
		StartTime:       r.StartTime,
		EndTime:         r.EndTime,
	}
}

// ListAuctionsQuery is the query string of GET /auctions. A category of "all"
// or an empty one matches every category.
type ListAuctionsQuery struct {
	Status   string `form:"status"`
	Category string `form:"category_id"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	Limit    int    `form:"limit" binding:"omitempty,min=1"`
}

// ListQuery converts the query string into the service input
func (q ListAuctionsQuery) ListQuery() (auction.ListQuery, error) {
	out := auction.ListQuery{
		Status: model.AuctionStatus(strings.ToUpper(strings.TrimSpace(q.Status))),
		Page:   q.Page,
		Limit:  q.Limit,
	}
	if category := strings.TrimSpace(q.Category); category != "" && !strings.EqualFold(category, "all") {
		id, err := parseID("category_id", category)
		if err != nil {
			return auction.ListQuery{}, err
		}
		out.CategoryID = &id
	}
	return out, nil
}

type WatchRequest struct {
	AuctionID int64 `json:"auction_id" binding:"required,gt=0"`
}

type MarkAllReadResponse struct {
	UserID  int64 `json:"user_id"`
	Updated int64 `json:"updated"`
}

type WatchingResponse struct {
	UserID    int64 `json:"user_id"`
	AuctionID int64 `json:"auction_id"`
	Watching  bool  `json:"watching"`
}
