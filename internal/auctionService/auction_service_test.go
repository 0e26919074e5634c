package auction

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"auction-engine/internal/biddingerrors"
	"auction-engine/internal/events"
	model "auction-engine/internal/models"
	"auction-engine/internal/realtime"
	"auction-engine/internal/repository"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type statusRecorder struct {
	mu     sync.Mutex
	events []realtime.Event
}

func (s *statusRecorder) PublishAuction(e realtime.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func validListing() Listing {
	now := time.Now().UTC()
	return Listing{
		Title:           "Mechanical keyboard",
		Description:     "Barely used",
		StartingPrice:   d("120.00"),
		MinBidIncrement: d("1.20"),
		StartTime:       now,
		EndTime:         now.Add(24 * time.Hour),
	}
}

func newService() (*AuctionService, *repository.MemoryRepo, *statusRecorder) {
	repo := repository.NewMemoryRepo()
	rec := &statusRecorder{}
	return NewAuctionService(repo, repo, rec, nil), repo, rec
}

func commitBid(t *testing.T, repo *repository.MemoryRepo, auctionID, bidderID int64, amount string) {
	t.Helper()
	ctx := context.Background()
	a, err := repo.GetAuction(ctx, auctionID)
	require.NoError(t, err)
	require.NoError(t, repo.CommitBid(ctx, &model.Bid{
		AuctionID: auctionID,
		BidderID:  bidderID,
		Amount:    d(amount),
		BidTime:   time.Now().UTC(),
	}, a))
}

func TestAuctionService_CreateListing(t *testing.T) {
	t.Parallel()

	service, _, _ := newService()
	ctx := context.Background()

	a, err := service.CreateListing(ctx, 3, validListing())
	require.NoError(t, err)
	require.NotZero(t, a.AuctionID)
	require.Equal(t, model.StatusPending, a.Status)
	require.True(t, a.CurrentPrice.Equal(d("120")))
	require.Equal(t, int64(3), a.Product.SellerID)
	require.Nil(t, a.HighestBidderID)

	tests := []struct {
		name   string
		seller int64
		mutate func(l *Listing)
		want   error
	}{
		{name: "missing_seller", seller: 0, mutate: func(*Listing) {}, want: biddingerrors.ErrInvalidInput},
		{name: "blank_title", seller: 3, mutate: func(l *Listing) { l.Title = "  " }, want: biddingerrors.ErrInvalidAuction},
		{name: "zero_price", seller: 3, mutate: func(l *Listing) { l.StartingPrice = decimal.Zero }, want: biddingerrors.ErrInvalidAuction},
		{name: "sub_cent_price", seller: 3, mutate: func(l *Listing) { l.StartingPrice = d("10.001") }, want: biddingerrors.ErrInvalidAuction},
		{name: "end_before_start", seller: 3, mutate: func(l *Listing) { l.EndTime = l.StartTime.Add(-time.Minute) }, want: biddingerrors.ErrInvalidAuction},
		{name: "end_in_past", seller: 3, mutate: func(l *Listing) {
			l.StartTime = time.Now().Add(-2 * time.Hour)
			l.EndTime = time.Now().Add(-time.Hour)
		}, want: biddingerrors.ErrInvalidAuction},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			l := validListing()
			tc.mutate(&l)
			_, err := service.CreateListing(ctx, tc.seller, l)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestAuctionService_Moderation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, _, rec := newService()

	a, err := service.CreateListing(ctx, 3, validListing())
	require.NoError(t, err)

	approved, err := service.Approve(ctx, a.AuctionID, 1)
	require.NoError(t, err)
	require.Equal(t, model.StatusActive, approved.Status)

	_, err = service.Approve(ctx, a.AuctionID, 1)
	require.ErrorIs(t, err, biddingerrors.ErrInvalidTransition)
	_, err = service.Reject(ctx, a.AuctionID, 1)
	require.ErrorIs(t, err, biddingerrors.ErrInvalidTransition)

	b, err := service.CreateListing(ctx, 3, validListing())
	require.NoError(t, err)
	rejected, err := service.Reject(ctx, b.AuctionID, 1)
	require.NoError(t, err)
	require.Equal(t, model.StatusCancelled, rejected.Status)

	_, err = service.Approve(ctx, 999, 1)
	require.ErrorIs(t, err, biddingerrors.ErrAuctionNotFound)

	require.Len(t, rec.events, 2)
	require.Equal(t, realtime.EventAuctionStatus, rec.events[0].Type)
	require.Zero(t, rec.events[0].Seq)
	payload, ok := rec.events[1].Data.(events.AuctionStatusChanged)
	require.True(t, ok)
	require.Equal(t, model.StatusCancelled, payload.Status)
}

func TestAuctionService_Cancel(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, repo, _ := newService()

	quiet, err := service.CreateListing(ctx, 3, validListing())
	require.NoError(t, err)
	_, err = service.Approve(ctx, quiet.AuctionID, 1)
	require.NoError(t, err)

	busy, err := service.CreateListing(ctx, 3, validListing())
	require.NoError(t, err)
	_, err = service.Approve(ctx, busy.AuctionID, 1)
	require.NoError(t, err)
	commitBid(t, repo, busy.AuctionID, 8, "125")

	_, err = service.Cancel(ctx, quiet.AuctionID, 4)
	require.ErrorIs(t, err, biddingerrors.ErrNotSeller)

	cancelled, err := service.Cancel(ctx, quiet.AuctionID, 3)
	require.NoError(t, err)
	require.Equal(t, model.StatusCancelled, cancelled.Status)

	_, err = service.Cancel(ctx, busy.AuctionID, 3)
	require.ErrorIs(t, err, biddingerrors.ErrAuctionHasBids)

	_, err = service.Cancel(ctx, quiet.AuctionID, 3)
	require.ErrorIs(t, err, biddingerrors.ErrInvalidTransition)
}

func TestAuctionService_UpdateListing(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, repo, _ := newService()

	a, err := service.CreateListing(ctx, 3, validListing())
	require.NoError(t, err)

	l := validListing()
	l.Title = "Mechanical keyboard (blue switches)"
	l.StartingPrice = d("150")
	updated, err := service.UpdateListing(ctx, a.AuctionID, 3, l)
	require.NoError(t, err)
	require.Equal(t, l.Title, updated.Product.Title)
	require.True(t, updated.CurrentPrice.Equal(d("150")))

	_, err = service.UpdateListing(ctx, a.AuctionID, 4, l)
	require.ErrorIs(t, err, biddingerrors.ErrNotSeller)

	_, err = service.Approve(ctx, a.AuctionID, 1)
	require.NoError(t, err)

	l.StartingPrice = d("1")
	updated, err = service.UpdateListing(ctx, a.AuctionID, 3, l)
	require.NoError(t, err)
	require.True(t, updated.Product.StartingPrice.Equal(d("150")), "starting price is frozen once active")

	commitBid(t, repo, a.AuctionID, 8, "155")
	_, err = service.UpdateListing(ctx, a.AuctionID, 3, l)
	require.ErrorIs(t, err, biddingerrors.ErrAuctionHasBids)
}

func TestAuctionService_DeleteListing(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, _, _ := newService()

	a, err := service.CreateListing(ctx, 3, validListing())
	require.NoError(t, err)
	_, err = service.Approve(ctx, a.AuctionID, 1)
	require.NoError(t, err)

	require.ErrorIs(t, service.DeleteListing(ctx, a.AuctionID, 3), biddingerrors.ErrAuctionActive)

	pending, err := service.CreateListing(ctx, 3, validListing())
	require.NoError(t, err)
	require.ErrorIs(t, service.DeleteListing(ctx, pending.AuctionID, 5), biddingerrors.ErrNotSeller)
	require.NoError(t, service.DeleteListing(ctx, pending.AuctionID, 3))

	_, err = service.GetAuctionSnapshot(ctx, pending.AuctionID)
	require.ErrorIs(t, err, biddingerrors.ErrAuctionNotFound)
}

func TestAuctionService_WinnerAndTransaction(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, repo, _ := newService()

	now := time.Now().UTC()
	a := repo.AddAuction(model.Auction{
		CreatedBy:    3,
		Status:       model.StatusActive,
		StartTime:    now.Add(-2 * time.Hour),
		EndTime:      now.Add(-time.Minute),
		CurrentPrice: d("100"),
		Product:      model.Product{SellerID: 3, Title: "Lamp", StartingPrice: d("100")},
	})
	commitBid(t, repo, a.AuctionID, 9, "105")

	_, err := service.GetWinner(ctx, a.AuctionID)
	require.ErrorIs(t, err, biddingerrors.ErrNotCompleted)
	_, err = service.CompleteTransaction(ctx, a.AuctionID, 3)
	require.ErrorIs(t, err, biddingerrors.ErrNotCompleted)

	_, err = repo.CompleteExpired(ctx, now)
	require.NoError(t, err)

	winner, err := service.GetWinner(ctx, a.AuctionID)
	require.NoError(t, err)
	require.Equal(t, int64(9), winner.UserID)
	require.True(t, winner.FinalPrice.Equal(d("105")))
	require.False(t, winner.TransactionCompleted)

	settled, err := service.CompleteTransaction(ctx, a.AuctionID, 3)
	require.NoError(t, err)
	require.True(t, settled.TransactionCompleted)
	require.NotNil(t, settled.CompletedAt)
}

func TestAuctionService_ViewAuction(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, _, _ := newService()

	a, err := service.CreateListing(ctx, 3, validListing())
	require.NoError(t, err)

	for i := 1; i <= 3; i++ {
		viewed, err := service.ViewAuction(ctx, a.AuctionID)
		require.NoError(t, err)
		require.Equal(t, int64(i), viewed.ViewCount)
	}

	_, err = service.ViewAuction(ctx, 404)
	require.ErrorIs(t, err, biddingerrors.ErrAuctionNotFound)
	_, err = service.ViewAuction(ctx, 0)
	require.ErrorIs(t, err, biddingerrors.ErrInvalidInput)
}

func TestAuctionService_List(t *testing.T) {
	t.Parallel()

	books := int64(2)
	zero := int64(0)

	tests := []struct {
		name       string
		query      ListQuery
		wantFilter *repository.AuctionFilter
		wantErr    error
	}{
		{
			name:       "defaults",
			wantFilter: &repository.AuctionFilter{Limit: 10},
		},
		{
			name:       "third_page",
			query:      ListQuery{Status: model.StatusActive, CategoryID: &books, Page: 3, Limit: 5},
			wantFilter: &repository.AuctionFilter{Status: model.StatusActive, CategoryID: &books, Limit: 5, Offset: 10},
		},
		{
			name:       "limit_capped",
			query:      ListQuery{Page: 2, Limit: 1000},
			wantFilter: &repository.AuctionFilter{Limit: 100, Offset: 100},
		},
		{
			name:    "unknown_status",
			query:   ListQuery{Status: "SOLD"},
			wantErr: biddingerrors.ErrInvalidInput,
		},
		{
			name:    "bad_category",
			query:   ListQuery{CategoryID: &zero},
			wantErr: biddingerrors.ErrInvalidInput,
		},
		{
			name:    "negative_page",
			query:   ListQuery{Page: -1},
			wantErr: biddingerrors.ErrInvalidInput,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			repo := repository.NewMockAuctionDB(ctrl)
			if tc.wantFilter != nil {
				repo.EXPECT().ListAuctions(gomock.Any(), *tc.wantFilter).Return([]model.Auction{{AuctionID: 1}}, nil)
			}
			service := NewAuctionService(repo, nil, nil, nil)

			list, err := service.List(context.Background(), tc.query)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			require.Len(t, list, 1)
		})
	}
}

func TestAuctionService_List_Paging(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, _, _ := newService()

	base := validListing()
	var created []int64
	for i := 0; i < 3; i++ {
		l := base
		l.StartTime = base.StartTime.Add(time.Duration(i) * time.Minute)
		a, err := service.CreateListing(ctx, 3, l)
		require.NoError(t, err)
		created = append(created, a.AuctionID)
	}
	_, err := service.Approve(ctx, created[0], 1)
	require.NoError(t, err)

	first, err := service.List(ctx, ListQuery{Limit: 2})
	require.NoError(t, err)
	require.Len(t, first, 2)
	require.Equal(t, created[2], first[0].AuctionID)
	require.Equal(t, created[1], first[1].AuctionID)

	second, err := service.List(ctx, ListQuery{Page: 2, Limit: 2})
	require.NoError(t, err)
	require.Len(t, second, 1)
	require.Equal(t, created[0], second[0].AuctionID)

	active, err := service.List(ctx, ListQuery{Status: model.StatusActive})
	require.NoError(t, err)
	require.Len(t, active, 1)
	require.Equal(t, created[0], active[0].AuctionID)
}

func TestAuctionService_Watchlist(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, _, _ := newService()

	a, err := service.CreateListing(ctx, 3, validListing())
	require.NoError(t, err)

	entry, err := service.Watch(ctx, 7, a.AuctionID)
	require.NoError(t, err)
	require.Equal(t, a.AuctionID, entry.AuctionID)

	_, err = service.Watch(ctx, 7, a.AuctionID)
	require.ErrorIs(t, err, biddingerrors.ErrAlreadyWatching)
	_, err = service.Watch(ctx, 7, 404)
	require.ErrorIs(t, err, biddingerrors.ErrAuctionNotFound)

	watching, err := service.IsWatching(ctx, 7, a.AuctionID)
	require.NoError(t, err)
	require.True(t, watching)

	list, err := service.Watchlist(ctx, 7)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, service.Unwatch(ctx, 7, a.AuctionID))
	require.ErrorIs(t, service.Unwatch(ctx, 7, a.AuctionID), biddingerrors.ErrNotWatching)

	list, err = service.Watchlist(ctx, 7)
	require.NoError(t, err)
	require.NotNil(t, list)
	require.Empty(t, list)
}

func TestAuctionService_StatusEventPublishFailure(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := repository.NewMockAuctionDB(ctrl)
	mockPublisher := events.NewMockPublisher(ctrl)
	service := NewAuctionService(mockRepo, nil, nil, mockPublisher)

	mockRepo.EXPECT().TransitionStatus(gomock.Any(), int64(5), gomock.Any()).
		Return(model.Auction{AuctionID: 5, Status: model.StatusActive}, nil)
	mockPublisher.EXPECT().Publish(gomock.Any(), events.KeyAuctionStatus, gomock.Any()).
		Return(errors.New("channel closed"))

	a, err := service.Approve(context.Background(), 5, 1)
	require.NoError(t, err)
	require.Equal(t, model.StatusActive, a.Status)
}
