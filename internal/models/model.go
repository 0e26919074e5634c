package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuctionStatus is the lifecycle state of an auction
type AuctionStatus string

const (
	StatusPending   AuctionStatus = "PENDING"
	StatusActive    AuctionStatus = "ACTIVE"
	StatusCompleted AuctionStatus = "COMPLETED"
	StatusCancelled AuctionStatus = "CANCELLED"
)

// IsTerminal reports whether no further transition is allowed from s
func (s AuctionStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Valid reports whether s is one of the known statuses
func (s AuctionStatus) Valid() bool {
	switch s {
	case StatusPending, StatusActive, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Product is the seller-owned description of the item under auction
type Product struct {
	ProductID     int64           `json:"product_id"`
	SellerID      int64           `json:"seller_id"`
	CategoryID    *int64          `json:"category_id,omitempty"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	StartingPrice decimal.Decimal `json:"starting_price"`
	ImageURL      string          `json:"image_url,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Auction is a timed sale of one product.
// CurrentPrice, HighestBidderID and TotalBids are written only by bid ingestion.
type Auction struct {
	AuctionID            int64           `json:"auction_id"`
	ProductID            int64           `json:"product_id"`
	CreatedBy            int64           `json:"created_by"`
	Status               AuctionStatus   `json:"status"`
	StartTime            time.Time       `json:"start_time"`
	EndTime              time.Time       `json:"end_time"`
	CurrentPrice         decimal.Decimal `json:"current_price"`
	HighestBidderID      *int64          `json:"highest_bidder_id"`
	TotalBids            int64           `json:"total_bids"`
	ViewCount            int64           `json:"view_count"`
	MinBidIncrement      decimal.Decimal `json:"min_bid_increment"`
	TransactionCompleted bool            `json:"transaction_completed"`
	CompletedAt          *time.Time      `json:"completed_at"`
	CreatedAt            time.Time       `json:"created_at"`
	Product              Product         `json:"product"`
}

// IsHighestBidder reports whether userID currently leads the auction
func (a Auction) IsHighestBidder(userID int64) bool {
	return a.HighestBidderID != nil && *a.HighestBidderID == userID
}

// Bid represents a user's bid on an auction
type Bid struct {
	BidID     int64           `json:"bid_id"`
	AuctionID int64           `json:"auction_id"`
	BidderID  int64           `json:"bidder_id"`
	Amount    decimal.Decimal `json:"bid_amount"`
	BidTime   time.Time       `json:"bid_time"`
	IsValid   bool            `json:"is_valid"`
}

// UserBid is a bid joined with the state of its auction, used for bid history
type UserBid struct {
	Bid
	ProductTitle    string          `json:"product_title"`
	CurrentPrice    decimal.Decimal `json:"current_price"`
	Status          AuctionStatus   `json:"status"`
	EndTime         time.Time       `json:"end_time"`
	IsHighestBidder bool            `json:"is_highest_bidder"`
}

// NotificationType classifies a notification
type NotificationType string

const (
	NotificationOutbid  NotificationType = "outbid"
	NotificationWon     NotificationType = "won"
	NotificationMessage NotificationType = "message"
	NotificationGeneric NotificationType = "generic"
)

// Notification is a durable per-user system message
type Notification struct {
	NotificationID int64            `json:"notification_id"`
	UserID         int64            `json:"user_id"`
	Type           NotificationType `json:"notification_type"`
	Title          string           `json:"title"`
	Message        string           `json:"message"`
	AuctionID      *int64           `json:"auction_id,omitempty"`
	IsRead         bool             `json:"is_read"`
	CreatedAt      time.Time        `json:"created_at"`
}

// WatchlistEntry is a (user, auction) pair the user follows
type WatchlistEntry struct {
	UserID    int64     `json:"user_id"`
	AuctionID int64     `json:"auction_id"`
	AddedAt   time.Time `json:"added_at"`
}
