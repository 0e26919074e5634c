package events

import (
	"time"

	"auction-engine/internal/models"

	"github.com/shopspring/decimal"
)

// BidAccepted is emitted after a bid is committed
type BidAccepted struct {
	AuctionID        int64           `json:"auction_id"`
	BidID            int64           `json:"bid_id"`
	BidderID         int64           `json:"bidder_id"`
	Amount           decimal.Decimal `json:"bid_amount"`
	PreviousBidderID *int64          `json:"previous_bidder_id,omitempty"`
	TotalBids        int64           `json:"total_bids"`
	BidTime          time.Time       `json:"bid_time"`
}

// AuctionCompleted is emitted by the lifecycle sweep for each closed auction
type AuctionCompleted struct {
	AuctionID  int64           `json:"auction_id"`
	WinnerID   *int64          `json:"winner_id,omitempty"`
	FinalPrice decimal.Decimal `json:"final_price"`
	TotalBids  int64           `json:"total_bids"`
	ClosedAt   time.Time       `json:"closed_at"`
}

// AuctionStatusChanged is emitted on approve, reject and cancel
type AuctionStatusChanged struct {
	AuctionID int64                `json:"auction_id"`
	Status    models.AuctionStatus `json:"status"`
	ChangedBy int64                `json:"changed_by,omitempty"`
	ChangedAt time.Time            `json:"changed_at"`
}
