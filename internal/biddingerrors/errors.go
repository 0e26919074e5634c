package biddingerrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Repository-level errors
var (
	ErrAuctionNotFound       = errors.New("auction not found")
	ErrNotificationNotFound  = errors.New("notification not found")
	ErrUserNotFound          = errors.New("user not found")
	ErrNoBids                = errors.New("no bids found for auction")
	ErrDuplicateNotification = errors.New("notification already exists")
	ErrAlreadyWatching       = errors.New("auction already in watchlist")
	ErrNotWatching           = errors.New("auction not in watchlist")
)

// Concurrency and persistence errors. Both are transient: the caller may resubmit
// against a fresh snapshot.
var (
	ErrAuctionBusy      = errors.New("auction is busy, try again")
	ErrConcurrentUpdate = errors.New("auction changed during commit")
	ErrPersistence      = errors.New("persistence failure")
)

// business logic errors
var (
	ErrInvalidBid        = errors.New("invalid bid")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidAuction    = errors.New("invalid auction")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrAuctionHasBids    = errors.New("auction already has bids")
	ErrAuctionActive     = errors.New("auction is active")
	ErrNotCompleted      = errors.New("auction is not completed")
	ErrNotSeller         = errors.New("user is not the seller of this auction")
)

// Bid rejection sentinels, one per validator rule
var (
	ErrSelfBid           = errors.New("bidder already holds the highest bid")
	ErrAuctionNotActive  = errors.New("auction is not active")
	ErrAuctionExpired    = errors.New("auction has ended")
	ErrAuctionNotStarted = errors.New("auction has not started")
	ErrBidTooLow         = errors.New("bid amount too low")
	ErrBelowMinIncrement = errors.New("bid increment below minimum")
	ErrAboveMaxIncrement = errors.New("bid increment above maximum")
)

// RejectionReason is the stable code surfaced to clients for a rejected bid
type RejectionReason string

const (
	ReasonSelfBid           RejectionReason = "SELF_BID"
	ReasonNotActive         RejectionReason = "NOT_ACTIVE"
	ReasonExpired           RejectionReason = "EXPIRED"
	ReasonNotStarted        RejectionReason = "NOT_STARTED"
	ReasonTooLow            RejectionReason = "TOO_LOW"
	ReasonBelowMinIncrement RejectionReason = "BELOW_MIN_INCREMENT"
	ReasonAboveMaxIncrement RejectionReason = "ABOVE_MAX_INCREMENT"
)

var reasonSentinels = map[RejectionReason]error{
	ReasonSelfBid:           ErrSelfBid,
	ReasonNotActive:         ErrAuctionNotActive,
	ReasonExpired:           ErrAuctionExpired,
	ReasonNotStarted:        ErrAuctionNotStarted,
	ReasonTooLow:            ErrBidTooLow,
	ReasonBelowMinIncrement: ErrBelowMinIncrement,
	ReasonAboveMaxIncrement: ErrAboveMaxIncrement,
}

// Rejection is returned when the validator refuses a bid. MinAmount and MaxAmount
// describe the currently acceptable range so the client can resubmit.
type Rejection struct {
	Reason    RejectionReason
	MinAmount decimal.Decimal
	MaxAmount decimal.Decimal
}

// NewRejection builds a Rejection for reason with the acceptable range
func NewRejection(reason RejectionReason, minAmount, maxAmount decimal.Decimal) *Rejection {
	return &Rejection{Reason: reason, MinAmount: minAmount, MaxAmount: maxAmount}
}

func (r *Rejection) Error() string {
	switch r.Reason {
	case ReasonTooLow, ReasonBelowMinIncrement:
		return fmt.Sprintf("%s: %v - minimum next bid is %s", r.Reason, r.Unwrap(), r.MinAmount.StringFixed(2))
	case ReasonAboveMaxIncrement:
		return fmt.Sprintf("%s: %v - maximum next bid is %s", r.Reason, r.Unwrap(), r.MaxAmount.StringFixed(2))
	default:
		return fmt.Sprintf("%s: %v", r.Reason, r.Unwrap())
	}
}

// Unwrap exposes the per-reason sentinel so callers can use errors.Is
func (r *Rejection) Unwrap() error {
	if err, ok := reasonSentinels[r.Reason]; ok {
		return err
	}
	return ErrInvalidBid
}

// AsRejection extracts a Rejection from err
func AsRejection(err error) (*Rejection, bool) {
	var rej *Rejection
	if errors.As(err, &rej) {
		return rej, true
	}
	return nil, false
}
