package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"auction-engine/internal/biddingerrors"
	model "auction-engine/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var auctionColumns = []string{
	"auction_id", "product_id", "created_by", "status", "start_time", "end_time",
	"current_price", "highest_bidder_id", "total_bids", "view_count", "min_bid_increment",
	"transaction_completed", "completed_at", "created_at",
	"seller_id", "category_id", "product_name", "description", "starting_price", "image_url", "created_at",
}

func newSQLMock(t *testing.T) (*PostgresRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepo(db), mock
}

func TestPostgresRepo_GetAuction(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("found", func(t *testing.T) {
		repo, mock := newSQLMock(t)
		rows := sqlmock.NewRows(auctionColumns).AddRow(
			int64(7), int64(3), int64(1), "ACTIVE", now.Add(-time.Hour), now.Add(time.Hour),
			"120.50", int64(4), int64(2), int64(10), "0.00",
			false, nil, now,
			int64(1), nil, "Camera", "Mirrorless body", "100.00", "", now,
		)
		mock.ExpectQuery(regexp.QuoteMeta(getAuctionSQL)).WithArgs(int64(7)).WillReturnRows(rows)

		a, err := repo.GetAuction(ctx, 7)
		require.NoError(t, err)
		require.Equal(t, model.StatusActive, a.Status)
		require.True(t, a.CurrentPrice.Equal(decimal.RequireFromString("120.50")))
		require.True(t, a.IsHighestBidder(4))
		require.Equal(t, "Camera", a.Product.Title)
		require.Equal(t, int64(3), a.Product.ProductID)
		require.Nil(t, a.Product.CategoryID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not_found", func(t *testing.T) {
		repo, mock := newSQLMock(t)
		mock.ExpectQuery(regexp.QuoteMeta(getAuctionSQL)).WithArgs(int64(8)).WillReturnError(sql.ErrNoRows)

		_, err := repo.GetAuction(ctx, 8)
		require.ErrorIs(t, err, biddingerrors.ErrAuctionNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresRepo_CommitBid(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	expected := model.Auction{AuctionID: 7, Status: model.StatusActive, CurrentPrice: decimal.RequireFromString("100.00"), TotalBids: 2}
	lockColumns := []string{"status", "current_price", "total_bids"}

	t.Run("commits", func(t *testing.T) {
		repo, mock := newSQLMock(t)
		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(lockAuctionSQL)).WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows(lockColumns).AddRow("ACTIVE", "100.00", int64(2)))
		mock.ExpectQuery(regexp.QuoteMeta(insertBidSQL)).
			WithArgs(int64(7), int64(5), sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"bid_id"}).AddRow(int64(31)))
		mock.ExpectExec(regexp.QuoteMeta(updateAggregatesSQL)).
			WithArgs(sqlmock.AnyArg(), int64(5), int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		bid := &model.Bid{AuctionID: 7, BidderID: 5, Amount: decimal.RequireFromString("105.00"), BidTime: time.Now()}
		require.NoError(t, repo.CommitBid(ctx, bid, expected))
		require.Equal(t, int64(31), bid.BidID)
		require.True(t, bid.IsValid)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("stale_snapshot", func(t *testing.T) {
		repo, mock := newSQLMock(t)
		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(lockAuctionSQL)).WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows(lockColumns).AddRow("ACTIVE", "104.00", int64(3)))
		mock.ExpectRollback()

		bid := &model.Bid{AuctionID: 7, BidderID: 5, Amount: decimal.RequireFromString("105.00"), BidTime: time.Now()}
		require.ErrorIs(t, repo.CommitBid(ctx, bid, expected), biddingerrors.ErrConcurrentUpdate)
		require.Zero(t, bid.BidID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown_bidder", func(t *testing.T) {
		repo, mock := newSQLMock(t)
		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(lockAuctionSQL)).WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows(lockColumns).AddRow("ACTIVE", "100.00", int64(2)))
		mock.ExpectQuery(regexp.QuoteMeta(insertBidSQL)).
			WillReturnError(&pq.Error{Code: pqForeignKeyViolation})
		mock.ExpectRollback()

		bid := &model.Bid{AuctionID: 7, BidderID: 99, Amount: decimal.RequireFromString("105.00"), BidTime: time.Now()}
		require.ErrorIs(t, repo.CommitBid(ctx, bid, expected), biddingerrors.ErrUserNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresRepo_ListAuctions(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Now().UTC()
	books := int64(2)

	t.Run("filtered_page", func(t *testing.T) {
		repo, mock := newSQLMock(t)
		want := selectAuctionSQL + ` WHERE a.status = $1 AND p.category_id = $2` + listAuctionsOrderSQL + ` LIMIT $3 OFFSET $4`
		rows := sqlmock.NewRows(auctionColumns).
			AddRow(
				int64(9), int64(5), int64(1), "ACTIVE", now.Add(-time.Hour), now.Add(time.Hour),
				"15.00", nil, int64(0), int64(0), "0.00",
				false, nil, now,
				int64(1), books, "Atlas", "", "15.00", "", now,
			).
			AddRow(
				int64(4), int64(2), int64(1), "ACTIVE", now.Add(-2*time.Hour), now.Add(time.Hour),
				"22.00", int64(6), int64(3), int64(1), "0.00",
				false, nil, now,
				int64(1), books, "Novel", "", "20.00", "", now,
			)
		mock.ExpectQuery(regexp.QuoteMeta(want)).WithArgs("ACTIVE", books, 10, 20).WillReturnRows(rows)

		list, err := repo.ListAuctions(ctx, AuctionFilter{Status: model.StatusActive, CategoryID: &books, Limit: 10, Offset: 20})
		require.NoError(t, err)
		require.Len(t, list, 2)
		require.Equal(t, int64(9), list[0].AuctionID)
		require.Equal(t, books, *list[1].Product.CategoryID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unfiltered_empty", func(t *testing.T) {
		repo, mock := newSQLMock(t)
		want := selectAuctionSQL + listAuctionsOrderSQL + ` LIMIT $1`
		mock.ExpectQuery(regexp.QuoteMeta(want)).WithArgs(10).WillReturnRows(sqlmock.NewRows(auctionColumns))

		list, err := repo.ListAuctions(ctx, AuctionFilter{Limit: 10})
		require.NoError(t, err)
		require.NotNil(t, list)
		require.Empty(t, list)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresRepo_CompleteExpired(t *testing.T) {
	t.Parallel()

	repo, mock := newSQLMock(t)
	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta(completeExpiredSQL)).WithArgs(now).
		WillReturnRows(sqlmock.NewRows([]string{"auction_id"}).AddRow(int64(3)).AddRow(int64(9)))

	ids, err := repo.CompleteExpired(context.Background(), now)
	require.NoError(t, err)
	require.Equal(t, []int64{3, 9}, ids)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepo_TransitionStatus_Rejected(t *testing.T) {
	t.Parallel()

	repo, mock := newSQLMock(t)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(lockAuctionSQL)).WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"status", "current_price", "total_bids"}).AddRow("COMPLETED", "10.00", int64(1)))
	mock.ExpectRollback()

	_, err := repo.TransitionStatus(context.Background(), 4, StatusChange{
		From: []model.AuctionStatus{model.StatusPending},
		To:   model.StatusActive,
	})
	require.ErrorIs(t, err, biddingerrors.ErrInvalidTransition)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepo_Notifications(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	auctionID := int64(7)

	t.Run("duplicate_won", func(t *testing.T) {
		repo, mock := newSQLMock(t)
		mock.ExpectQuery(regexp.QuoteMeta(insertNotificationSQL)).
			WithArgs(int64(5), "won", "Auction won", "you won", sqlmock.AnyArg()).
			WillReturnError(&pq.Error{Code: pqUniqueViolation})

		err := repo.AppendNotification(ctx, &model.Notification{
			UserID: 5, Type: model.NotificationWon, Title: "Auction won", Message: "you won", AuctionID: &auctionID,
		})
		require.ErrorIs(t, err, biddingerrors.ErrDuplicateNotification)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("mark_missing_read", func(t *testing.T) {
		repo, mock := newSQLMock(t)
		mock.ExpectExec(regexp.QuoteMeta(markNotificationReadSQL)).WithArgs(int64(40)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		require.ErrorIs(t, repo.MarkNotificationRead(ctx, 40), biddingerrors.ErrNotificationNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("list", func(t *testing.T) {
		repo, mock := newSQLMock(t)
		now := time.Now().UTC()
		rows := sqlmock.NewRows([]string{"notification_id", "user_id", "notification_type", "title", "message", "auction_id", "is_read", "created_at"}).
			AddRow(int64(2), int64(5), "outbid", "Outbid", "outbid on 7", int64(7), false, now).
			AddRow(int64(1), int64(5), "generic", "Hello", "welcome", nil, true, now.Add(-time.Minute))
		mock.ExpectQuery(regexp.QuoteMeta(listNotificationsSQL)).WithArgs(int64(5), 20).WillReturnRows(rows)

		list, err := repo.ListNotifications(ctx, 5, 20)
		require.NoError(t, err)
		require.Len(t, list, 2)
		require.Equal(t, model.NotificationOutbid, list[0].Type)
		require.NotNil(t, list[0].AuctionID)
		require.Nil(t, list[1].AuctionID)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresRepo_Watchlist(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("already_watching", func(t *testing.T) {
		repo, mock := newSQLMock(t)
		mock.ExpectQuery(regexp.QuoteMeta(insertWatchlistSQL)).WithArgs(int64(5), int64(7)).
			WillReturnError(&pq.Error{Code: pqUniqueViolation})

		_, err := repo.AddToWatchlist(ctx, 5, 7)
		require.ErrorIs(t, err, biddingerrors.ErrAlreadyWatching)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown_auction", func(t *testing.T) {
		repo, mock := newSQLMock(t)
		mock.ExpectQuery(regexp.QuoteMeta(insertWatchlistSQL)).WithArgs(int64(5), int64(8)).
			WillReturnError(&pq.Error{Code: pqForeignKeyViolation})

		_, err := repo.AddToWatchlist(ctx, 5, 8)
		require.ErrorIs(t, err, biddingerrors.ErrAuctionNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("remove_missing", func(t *testing.T) {
		repo, mock := newSQLMock(t)
		mock.ExpectExec(regexp.QuoteMeta(deleteWatchlistSQL)).WithArgs(int64(5), int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		require.ErrorIs(t, repo.RemoveFromWatchlist(ctx, 5, 7), biddingerrors.ErrNotWatching)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
