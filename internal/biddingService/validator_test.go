package bidding

import (
	"testing"
	"time"

	"auction-engine/internal/biddingerrors"
	model "auction-engine/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func activeAuction(now time.Time, starting, current string, leader *int64) model.Auction {
	total := int64(0)
	if leader != nil {
		total = 1
	}
	return model.Auction{
		AuctionID:       1,
		Status:          model.StatusActive,
		StartTime:       now.Add(-time.Hour),
		EndTime:         now.Add(time.Hour),
		CurrentPrice:    d(current),
		HighestBidderID: leader,
		TotalBids:       total,
		Product:         model.Product{StartingPrice: d(starting)},
	}
}

func TestValidateBid(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	leader := int64(7)
	policy := DefaultIncrementPolicy()

	tests := []struct {
		name     string
		starting string
		current  string
		leader   *int64
		status   model.AuctionStatus
		bidder   int64
		amount   string
		at       time.Time
		reason   biddingerrors.RejectionReason
	}{
		{name: "one_percent_step_accepted", starting: "1000000", current: "1000000", bidder: 9, amount: "1010000", at: now},
		{name: "ten_percent_step_accepted", starting: "1000000", current: "1000000", bidder: 9, amount: "1100000", at: now},
		{name: "half_percent_step_below_min", starting: "1000000", current: "1000000", bidder: 9, amount: "1005000", at: now, reason: biddingerrors.ReasonBelowMinIncrement},
		{name: "twenty_percent_step_above_max", starting: "1000000", current: "1000000", bidder: 9, amount: "1200000", at: now, reason: biddingerrors.ReasonAboveMaxIncrement},
		{name: "equal_to_current_too_low", starting: "1000000", current: "1050000", leader: &leader, bidder: 9, amount: "1050000", at: now, reason: biddingerrors.ReasonTooLow},
		{name: "below_current_too_low", starting: "100", current: "150", leader: &leader, bidder: 9, amount: "120", at: now, reason: biddingerrors.ReasonTooLow},
		{name: "leader_cannot_raise", starting: "1000000", current: "1050000", leader: &leader, bidder: 7, amount: "1060000", at: now, reason: biddingerrors.ReasonSelfBid},
		{name: "self_bid_checked_before_status", starting: "1000000", current: "1050000", leader: &leader, status: model.StatusCompleted, bidder: 7, amount: "1060000", at: now, reason: biddingerrors.ReasonSelfBid},
		{name: "pending_not_active", starting: "100", current: "100", status: model.StatusPending, bidder: 9, amount: "101", at: now, reason: biddingerrors.ReasonNotActive},
		{name: "cancelled_not_active", starting: "100", current: "100", status: model.StatusCancelled, bidder: 9, amount: "101", at: now, reason: biddingerrors.ReasonNotActive},
		{name: "submitted_at_end_time_expired", starting: "100", current: "100", bidder: 9, amount: "101", at: now.Add(time.Hour), reason: biddingerrors.ReasonExpired},
		{name: "fractional_start_min_rounds_up", starting: "100.01", current: "100.50", bidder: 9, amount: "101.51", at: now},
		{name: "fractional_start_below_rounded_min", starting: "100.01", current: "100.50", bidder: 9, amount: "101.50", at: now, reason: biddingerrors.ReasonBelowMinIncrement},
		{name: "fractional_start_max_rounds_down", starting: "100.05", current: "100.05", bidder: 9, amount: "110.05", at: now},
		{name: "fractional_start_above_rounded_max", starting: "100.05", current: "100.05", bidder: 9, amount: "110.06", at: now, reason: biddingerrors.ReasonAboveMaxIncrement},
		{name: "submitted_before_start", starting: "100", current: "100", bidder: 9, amount: "101", at: now.Add(-2 * time.Hour), reason: biddingerrors.ReasonNotStarted},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			a := activeAuction(now, tc.starting, tc.current, tc.leader)
			if tc.status != "" {
				a.Status = tc.status
			}
			err := ValidateBid(a, Proposal{BidderID: tc.bidder, Amount: d(tc.amount), SubmittedAt: tc.at}, policy)
			if tc.reason == "" {
				require.NoError(t, err)
				return
			}
			rej, ok := biddingerrors.AsRejection(err)
			require.True(t, ok, "expected a rejection, got %v", err)
			require.Equal(t, tc.reason, rej.Reason)
		})
	}
}

func TestValidateBid_RejectionCarriesBounds(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	leader := int64(7)
	a := activeAuction(now, "1000000", "1050000", &leader)

	err := ValidateBid(a, Proposal{BidderID: 9, Amount: d("1055000"), SubmittedAt: now}, DefaultIncrementPolicy())
	require.ErrorIs(t, err, biddingerrors.ErrBelowMinIncrement)

	rej, ok := biddingerrors.AsRejection(err)
	require.True(t, ok)
	require.True(t, rej.MinAmount.Equal(d("1060000")))
	require.True(t, rej.MaxAmount.Equal(d("1150000")))
	require.Contains(t, err.Error(), "minimum next bid is 1060000.00")
}

func TestIncrementPolicy_BoundsAreWholeCents(t *testing.T) {
	t.Parallel()

	policy := DefaultIncrementPolicy()

	tests := []struct {
		name     string
		starting string
		current  string
		min      string
		max      string
	}{
		{name: "whole_units", starting: "100", current: "100", min: "101", max: "110"},
		{name: "min_rounds_up", starting: "100.01", current: "100.01", min: "101.03", max: "110.01"},
		{name: "max_rounds_down", starting: "100.05", current: "100.05", min: "101.06", max: "110.05"},
		{name: "tiny_price_keeps_range_open", starting: "0.01", current: "0.01", min: "0.02", max: "0.02"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			a := activeAuction(time.Now(), tc.starting, tc.current, nil)
			minAmount, maxAmount := policy.Bounds(a)
			require.True(t, minAmount.Equal(d(tc.min)), "min = %s", minAmount)
			require.True(t, maxAmount.Equal(d(tc.max)), "max = %s", maxAmount)
			require.True(t, minAmount.Equal(minAmount.Round(2)))
			require.True(t, maxAmount.Equal(maxAmount.Round(2)))
		})
	}
}

func TestValidateBid_AdvertisedMinimumIsAccepted(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	a := activeAuction(now, "100.01", "100.01", nil)
	policy := DefaultIncrementPolicy()

	err := ValidateBid(a, Proposal{BidderID: 9, Amount: d("100.50"), SubmittedAt: now}, policy)
	rej, ok := biddingerrors.AsRejection(err)
	require.True(t, ok)
	require.Equal(t, biddingerrors.ReasonBelowMinIncrement, rej.Reason)

	require.NoError(t, ValidateBid(a, Proposal{BidderID: 9, Amount: rej.MinAmount, SubmittedAt: now}, policy))
	require.NoError(t, ValidateBid(a, Proposal{BidderID: 9, Amount: rej.MaxAmount, SubmittedAt: now}, policy))
}

func TestIncrementPolicy_Custom(t *testing.T) {
	t.Parallel()

	policy := IncrementPolicy{MinPercent: d("5"), MaxPercent: d("50")}
	a := model.Auction{CurrentPrice: d("200"), Product: model.Product{StartingPrice: d("100")}}

	minAmount, maxAmount := policy.Bounds(a)
	require.True(t, minAmount.Equal(d("205")))
	require.True(t, maxAmount.Equal(d("250")))
}
