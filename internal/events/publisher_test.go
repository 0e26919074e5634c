package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"auction-engine/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestNopPublisher_Publish(t *testing.T) {
	t.Parallel()

	var p Publisher = NopPublisher{}
	require.NoError(t, p.Publish(context.Background(), KeyBidAccepted, BidAccepted{AuctionID: 1}))
}

func TestPayloads_JSONShape(t *testing.T) {
	t.Parallel()

	prev := int64(4)
	raw, err := json.Marshal(BidAccepted{
		AuctionID:        1,
		BidID:            2,
		BidderID:         3,
		Amount:           decimal.RequireFromString("105.50"),
		PreviousBidderID: &prev,
		TotalBids:        6,
		BidTime:          time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Equal(t, "105.5", decoded["bid_amount"])
	require.Equal(t, float64(4), decoded["previous_bidder_id"])

	raw, err = json.Marshal(AuctionStatusChanged{AuctionID: 1, Status: models.StatusCancelled})
	require.NoError(t, err)
	require.Contains(t, string(raw), `"status":"CANCELLED"`)
	require.NotContains(t, string(raw), "changed_by")
}
