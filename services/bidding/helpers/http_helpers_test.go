package helpers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"auction-engine/internal/biddingerrors"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestMapErrorToHTTP(t *testing.T) {
	t.Parallel()

	rejection := biddingerrors.NewRejection(biddingerrors.ReasonTooLow, decimal.NewFromInt(101), decimal.NewFromInt(110))

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "rejection", err: fmt.Errorf("service: %w", rejection), status: http.StatusConflict},
		{name: "not_found", err: fmt.Errorf("get auction 4: %w", biddingerrors.ErrAuctionNotFound), status: http.StatusNotFound},
		{name: "no_bids", err: biddingerrors.ErrNoBids, status: http.StatusNotFound},
		{name: "invalid_bid", err: biddingerrors.ErrInvalidBid, status: http.StatusBadRequest},
		{name: "invalid_input", err: biddingerrors.ErrInvalidInput, status: http.StatusBadRequest},
		{name: "not_seller", err: biddingerrors.ErrNotSeller, status: http.StatusForbidden},
		{name: "has_bids", err: biddingerrors.ErrAuctionHasBids, status: http.StatusConflict},
		{name: "conflict", err: biddingerrors.ErrConcurrentUpdate, status: http.StatusConflict},
		{name: "busy", err: biddingerrors.ErrAuctionBusy, status: http.StatusServiceUnavailable},
		{name: "persistence", err: fmt.Errorf("service: %w: connection reset", biddingerrors.ErrPersistence), status: http.StatusServiceUnavailable},
		{name: "unknown", err: errors.New("boom"), status: http.StatusInternalServerError},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			status, message := MapErrorToHTTP(tc.err)
			require.Equal(t, tc.status, status)
			require.NotEmpty(t, message)
		})
	}
}

func TestParseIDQuery(t *testing.T) {
	t.Parallel()

	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		query    string
		optional bool
		want     int64
		wantErr  bool
	}{
		{name: "present", query: "?seller_id=12", want: 12},
		{name: "missing_required", query: "", wantErr: true},
		{name: "missing_optional", query: "", optional: true, want: 0},
		{name: "zero", query: "?seller_id=0", wantErr: true},
		{name: "garbage", query: "?seller_id=x1", optional: true, wantErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/auctions/1"+tc.query, nil)

			id, err := ParseIDQuery(c, "seller_id", tc.optional)
			if tc.wantErr {
				require.ErrorIs(t, err, biddingerrors.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, id)
		})
	}
}
