package integrationtests

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	auction "auction-engine/internal/auctionService"
	bidding "auction-engine/internal/biddingService"
	"auction-engine/internal/lifecycle"
	"auction-engine/internal/lock"
	"auction-engine/internal/metrics"
	model "auction-engine/internal/models"
	notification "auction-engine/internal/notificationService"
	"auction-engine/internal/realtime"
	"auction-engine/internal/repository"
	"auction-engine/internal/server"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// TestEnv is a fully wired application backed by the in-memory store.
type TestEnv struct {
	Router *gin.Engine
	Repo   *repository.MemoryRepo
}

// SetupTestEnv wires every service the way main does, without external backends.
func SetupTestEnv(auctions ...model.Auction) *TestEnv {
	gin.SetMode(gin.TestMode)
	repo := repository.NewMemoryRepo()
	for _, a := range auctions {
		repo.AddAuction(a)
	}

	reg := metrics.NewRegistry()
	hub := realtime.NewHub(reg)
	notifications := notification.NewNotificationService(repo, hub)
	bids := bidding.NewBiddingService(repo, lock.NewMemoryLocker(), notifications, hub, nil, bidding.Options{Metrics: reg})
	auctionSvc := auction.NewAuctionService(repo, repo, hub, nil)
	scheduler := lifecycle.NewScheduler(repo, notifications, hub, nil, reg, time.Minute)

	router := server.SetupRouter(server.Dependencies{
		Bidding:       bids,
		Auctions:      auctionSvc,
		Notifications: notifications,
		Sweeper:       scheduler,
		Hub:           hub,
		Metrics:       reg,
	})
	return &TestEnv{Router: router, Repo: repo}
}

// ActiveAuction builds a running auction owned by seller with the given starting price.
func ActiveAuction(id, seller int64, starting string, ends time.Duration) model.Auction {
	price := decimal.RequireFromString(starting)
	now := time.Now().UTC()
	return model.Auction{
		AuctionID:    id,
		CreatedBy:    seller,
		Status:       model.StatusActive,
		StartTime:    now.Add(-time.Hour),
		EndTime:      now.Add(ends),
		CurrentPrice: price,
		Product: model.Product{
			SellerID:      seller,
			Title:         "Lot",
			Description:   "integration lot",
			StartingPrice: price,
		},
	}
}

// ExecuteRequestAndParse executes an HTTP request on the given router and parses the response
func ExecuteRequestAndParse(t *testing.T, router *gin.Engine, method, url string, body any) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	var reqBody []byte
	var err error

	switch v := body.(type) {
	case nil:
	case []byte:
		reqBody = v
	case string:
		reqBody = []byte(v)
	default:
		reqBody, err = json.Marshal(v)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
	}
	return resp, w
}

// Bid posts a bid and returns the response envelope.
func Bid(t *testing.T, router *gin.Engine, auctionID, bidderID int64, amount string) (map[string]any, int) {
	t.Helper()
	resp, w := ExecuteRequestAndParse(t, router, "POST", "/bids", map[string]any{
		"auction_id": auctionID,
		"bidder_id":  bidderID,
		"amount":     amount,
	})
	return resp, w.Code
}

func requireAmount(t *testing.T, want string, got any) {
	t.Helper()
	var d decimal.Decimal
	switch v := got.(type) {
	case string:
		d = decimal.RequireFromString(v)
	case float64:
		d = decimal.NewFromFloat(v)
	default:
		t.Fatalf("unexpected amount %#v", got)
	}
	if !d.Equal(decimal.RequireFromString(want)) {
		t.Fatalf("amount = %s, want %s", d, want)
	}
}
