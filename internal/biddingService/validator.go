package bidding

import (
	"time"

	"auction-engine/internal/biddingerrors"
	"auction-engine/internal/models"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// IncrementPolicy bounds the step of each new bid as a percentage of the
// product's starting price
type IncrementPolicy struct {
	MinPercent decimal.Decimal
	MaxPercent decimal.Decimal
}

// DefaultIncrementPolicy requires each bid to move the price by 1% to 10% of the
// starting price
func DefaultIncrementPolicy() IncrementPolicy {
	return IncrementPolicy{
		MinPercent: decimal.NewFromInt(1),
		MaxPercent: decimal.NewFromInt(10),
	}
}

// Bounds returns the inclusive range of acceptable amounts for the next bid,
// snapped to whole cents so both ends can be submitted as they are.
func (p IncrementPolicy) Bounds(a models.Auction) (minAmount, maxAmount decimal.Decimal) {
	start := a.Product.StartingPrice
	minAmount = a.CurrentPrice.Add(start.Mul(p.MinPercent).Div(hundred)).RoundCeil(2)
	maxAmount = a.CurrentPrice.Add(start.Mul(p.MaxPercent).Div(hundred)).RoundFloor(2)
	if maxAmount.LessThan(minAmount) {
		maxAmount = minAmount
	}
	return minAmount, maxAmount
}

// Proposal is a bid as submitted, before validation
type Proposal struct {
	BidderID    int64
	Amount      decimal.Decimal
	SubmittedAt time.Time
}

// ValidateBid decides whether proposal may become the new highest bid on a.
// The first failing rule wins. It has no side effects and must be called on a
// snapshot read inside the auction's critical section.
func ValidateBid(a models.Auction, p Proposal, policy IncrementPolicy) error {
	minAmount, maxAmount := policy.Bounds(a)
	reject := func(reason biddingerrors.RejectionReason) error {
		return biddingerrors.NewRejection(reason, minAmount, maxAmount)
	}

	if a.IsHighestBidder(p.BidderID) {
		return reject(biddingerrors.ReasonSelfBid)
	}
	if a.Status != models.StatusActive {
		return reject(biddingerrors.ReasonNotActive)
	}
	if !p.SubmittedAt.Before(a.EndTime) {
		return reject(biddingerrors.ReasonExpired)
	}
	if !a.StartTime.IsZero() && p.SubmittedAt.Before(a.StartTime) {
		return reject(biddingerrors.ReasonNotStarted)
	}
	if p.Amount.LessThanOrEqual(a.CurrentPrice) {
		return reject(biddingerrors.ReasonTooLow)
	}
	if p.Amount.LessThan(minAmount) {
		return reject(biddingerrors.ReasonBelowMinIncrement)
	}
	if p.Amount.GreaterThan(maxAmount) {
		return reject(biddingerrors.ReasonAboveMaxIncrement)
	}
	return nil
}
