package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"auction-engine/internal/biddingerrors"
	"auction-engine/internal/models"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

const (
	pqForeignKeyViolation = "23503"
	pqUniqueViolation     = "23505"
)

const selectAuctionSQL = `SELECT a.auction_id, a.product_id, a.created_by, a.status, a.start_time, a.end_time,
       a.current_price, a.highest_bidder_id, a.total_bids, a.view_count, a.min_bid_increment,
       a.transaction_completed, a.completed_at, a.created_at,
       p.seller_id, p.category_id, p.product_name, p.description, p.starting_price, p.image_url, p.created_at
FROM auctions a
INNER JOIN products p ON p.product_id = a.product_id`

const (
	getAuctionSQL = selectAuctionSQL + ` WHERE a.auction_id = $1`

	listAuctionsOrderSQL = ` ORDER BY a.start_time DESC, a.auction_id DESC`

	lockAuctionSQL = `SELECT status, current_price, total_bids FROM auctions WHERE auction_id = $1 FOR UPDATE`

	insertBidSQL = `INSERT INTO bids (auction_id, bidder_id, bid_amount, bid_time, is_valid)
VALUES ($1, $2, $3, $4, TRUE) RETURNING bid_id`

	updateAggregatesSQL = `UPDATE auctions SET current_price = $1, highest_bidder_id = $2, total_bids = total_bids + 1
WHERE auction_id = $3`

	auctionExistsSQL = `SELECT EXISTS (SELECT 1 FROM auctions WHERE auction_id = $1)`

	bidsByAuctionSQL = `SELECT bid_id, auction_id, bidder_id, bid_amount, bid_time, is_valid
FROM bids WHERE auction_id = $1 AND is_valid ORDER BY bid_id`

	bidsByUserSQL = `SELECT b.bid_id, b.auction_id, b.bidder_id, b.bid_amount, b.bid_time, b.is_valid,
       p.product_name, a.current_price, a.status, a.end_time,
       COALESCE(a.highest_bidder_id = b.bidder_id, FALSE) AS is_highest_bidder
FROM bids b
INNER JOIN auctions a ON a.auction_id = b.auction_id
INNER JOIN products p ON p.product_id = a.product_id
WHERE b.bidder_id = $1
ORDER BY b.bid_time DESC, b.bid_id DESC`

	insertProductSQL = `INSERT INTO products (seller_id, category_id, product_name, description, starting_price, image_url)
VALUES ($1, $2, $3, $4, $5, $6) RETURNING product_id, created_at`

	insertAuctionSQL = `INSERT INTO auctions (product_id, created_by, status, start_time, end_time, current_price, min_bid_increment)
VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING auction_id, created_at`

	lockListingSQL = `SELECT status, total_bids, product_id FROM auctions WHERE auction_id = $1 FOR UPDATE`

	updateProductSQL = `UPDATE products SET product_name = $1, description = $2, image_url = $3, category_id = $4
WHERE product_id = $5`

	updateProductPriceSQL = `UPDATE products SET starting_price = $1 WHERE product_id = $2`

	updateScheduleSQL = `UPDATE auctions SET start_time = $1, end_time = $2, min_bid_increment = $3 WHERE auction_id = $4`

	resetPendingPriceSQL = `UPDATE auctions SET current_price = $1 WHERE auction_id = $2 AND status = 'PENDING'`

	deleteAuctionSQL = `DELETE FROM auctions WHERE auction_id = $1`

	deleteProductSQL = `DELETE FROM products WHERE product_id = $1`

	updateStatusSQL = `UPDATE auctions SET status = $1 WHERE auction_id = $2`

	incrementViewSQL = `UPDATE auctions SET view_count = view_count + 1 WHERE auction_id = $1`

	completeTransactionSQL = `UPDATE auctions SET transaction_completed = TRUE, completed_at = $1
WHERE auction_id = $2 AND status = 'COMPLETED'`

	completeExpiredSQL = `UPDATE auctions SET status = 'COMPLETED'
WHERE status = 'ACTIVE' AND end_time < $1
RETURNING auction_id`

	unnotifiedWinnersSQL = selectAuctionSQL + `
WHERE a.status = 'COMPLETED'
  AND a.highest_bidder_id IS NOT NULL
  AND NOT EXISTS (
      SELECT 1 FROM notifications n
      WHERE n.auction_id = a.auction_id
        AND n.user_id = a.highest_bidder_id
        AND n.notification_type = 'won'
  )
ORDER BY a.auction_id`
)

// PostgresRepo implements AuctionDB, NotificationDB and WatchlistDB on PostgreSQL
type PostgresRepo struct {
	db *sql.DB
}

// NewPostgresRepo returns a repository bound to db
func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{db: db}
}

// ConnectPostgres opens a pooled connection and verifies it with a ping
func ConnectPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAuction(row rowScanner) (models.Auction, error) {
	var (
		a           models.Auction
		status      string
		highest     sql.NullInt64
		completedAt sql.NullTime
		category    sql.NullInt64
	)
	err := row.Scan(
		&a.AuctionID, &a.ProductID, &a.CreatedBy, &status, &a.StartTime, &a.EndTime,
		&a.CurrentPrice, &highest, &a.TotalBids, &a.ViewCount, &a.MinBidIncrement,
		&a.TransactionCompleted, &completedAt, &a.CreatedAt,
		&a.Product.SellerID, &category, &a.Product.Title, &a.Product.Description,
		&a.Product.StartingPrice, &a.Product.ImageURL, &a.Product.CreatedAt,
	)
	if err != nil {
		return models.Auction{}, err
	}
	a.Status = models.AuctionStatus(status)
	a.Product.ProductID = a.ProductID
	if highest.Valid {
		id := highest.Int64
		a.HighestBidderID = &id
	}
	if completedAt.Valid {
		at := completedAt.Time
		a.CompletedAt = &at
	}
	if category.Valid {
		c := category.Int64
		a.Product.CategoryID = &c
	}
	return a, nil
}

func pqCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

// GetAuction loads the auction and its product
func (r *PostgresRepo) GetAuction(ctx context.Context, auctionID int64) (models.Auction, error) {
	a, err := scanAuction(r.db.QueryRowContext(ctx, getAuctionSQL, auctionID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Auction{}, fmt.Errorf("get auction %d: %w", auctionID, biddingerrors.ErrAuctionNotFound)
	}
	if err != nil {
		return models.Auction{}, fmt.Errorf("get auction %d: %w", auctionID, err)
	}
	return a, nil
}

// ListAuctions returns a page of auctions matching filter, latest start time first
func (r *PostgresRepo) ListAuctions(ctx context.Context, filter AuctionFilter) ([]models.Auction, error) {
	query, args := listAuctionsQuery(filter)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list auctions: %w", err)
	}
	defer rows.Close()

	out := make([]models.Auction, 0)
	for rows.Next() {
		a, err := scanAuction(rows)
		if err != nil {
			return nil, fmt.Errorf("list auctions: scan: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list auctions: %w", err)
	}
	return out, nil
}

func listAuctionsQuery(filter AuctionFilter) (string, []any) {
	var (
		where []string
		args  []any
	)
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		where = append(where, fmt.Sprintf("a.status = $%d", len(args)))
	}
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		where = append(where, fmt.Sprintf("p.category_id = $%d", len(args)))
	}

	var b strings.Builder
	b.WriteString(selectAuctionSQL)
	if len(where) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(where, " AND "))
	}
	b.WriteString(listAuctionsOrderSQL)
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		fmt.Fprintf(&b, " LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		fmt.Fprintf(&b, " OFFSET $%d", len(args))
	}
	return b.String(), args
}

// CommitBid locks the auction row, checks it still matches expected, inserts the
// bid and updates the aggregates in a single transaction
func (r *PostgresRepo) CommitBid(ctx context.Context, bid *models.Bid, expected models.Auction) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("commit bid: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var (
		status string
		price  decimal.Decimal
		total  int64
	)
	err = tx.QueryRowContext(ctx, lockAuctionSQL, bid.AuctionID).Scan(&status, &price, &total)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("commit bid for auction %d: %w", bid.AuctionID, biddingerrors.ErrAuctionNotFound)
	}
	if err != nil {
		return fmt.Errorf("commit bid for auction %d: lock: %w", bid.AuctionID, err)
	}
	if models.AuctionStatus(status) != models.StatusActive || total != expected.TotalBids || !price.Equal(expected.CurrentPrice) {
		return fmt.Errorf("commit bid for auction %d: %w", bid.AuctionID, biddingerrors.ErrConcurrentUpdate)
	}

	err = tx.QueryRowContext(ctx, insertBidSQL, bid.AuctionID, bid.BidderID, bid.Amount, bid.BidTime).Scan(&bid.BidID)
	if err != nil {
		if pqCode(err) == pqForeignKeyViolation {
			return fmt.Errorf("commit bid by user %d: %w", bid.BidderID, biddingerrors.ErrUserNotFound)
		}
		return fmt.Errorf("commit bid for auction %d: insert: %w", bid.AuctionID, err)
	}
	if _, err := tx.ExecContext(ctx, updateAggregatesSQL, bid.Amount, bid.BidderID, bid.AuctionID); err != nil {
		return fmt.Errorf("commit bid for auction %d: update aggregates: %w", bid.AuctionID, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit bid for auction %d: commit: %w", bid.AuctionID, err)
	}
	bid.IsValid = true
	return nil
}

func (r *PostgresRepo) auctionExists(ctx context.Context, auctionID int64) (bool, error) {
	var exists bool
	if err := r.db.QueryRowContext(ctx, auctionExistsSQL, auctionID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// GetBidsByAuction returns the valid bids of an auction in commit order
func (r *PostgresRepo) GetBidsByAuction(ctx context.Context, auctionID int64) ([]models.Bid, error) {
	exists, err := r.auctionExists(ctx, auctionID)
	if err != nil {
		return nil, fmt.Errorf("get bids for auction %d: %w", auctionID, err)
	}
	if !exists {
		return nil, fmt.Errorf("get bids for auction %d: %w", auctionID, biddingerrors.ErrAuctionNotFound)
	}

	rows, err := r.db.QueryContext(ctx, bidsByAuctionSQL, auctionID)
	if err != nil {
		return nil, fmt.Errorf("get bids for auction %d: %w", auctionID, err)
	}
	defer rows.Close()

	bids := []models.Bid{}
	for rows.Next() {
		var b models.Bid
		if err := rows.Scan(&b.BidID, &b.AuctionID, &b.BidderID, &b.Amount, &b.BidTime, &b.IsValid); err != nil {
			return nil, fmt.Errorf("get bids for auction %d: scan: %w", auctionID, err)
		}
		bids = append(bids, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get bids for auction %d: %w", auctionID, err)
	}
	return bids, nil
}

// GetBidsByUser returns the user's bid history joined with auction state
func (r *PostgresRepo) GetBidsByUser(ctx context.Context, userID int64) ([]models.UserBid, error) {
	rows, err := r.db.QueryContext(ctx, bidsByUserSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("get bids for user %d: %w", userID, err)
	}
	defer rows.Close()

	var out []models.UserBid
	for rows.Next() {
		var (
			ub     models.UserBid
			status string
		)
		err := rows.Scan(&ub.BidID, &ub.AuctionID, &ub.BidderID, &ub.Amount, &ub.BidTime, &ub.IsValid,
			&ub.ProductTitle, &ub.CurrentPrice, &status, &ub.EndTime, &ub.IsHighestBidder)
		if err != nil {
			return nil, fmt.Errorf("get bids for user %d: scan: %w", userID, err)
		}
		ub.Status = models.AuctionStatus(status)
		out = append(out, ub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get bids for user %d: %w", userID, err)
	}
	return out, nil
}

// CreateAuction inserts the product and its auction in one transaction
func (r *PostgresRepo) CreateAuction(ctx context.Context, auction *models.Auction) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("create auction: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	p := &auction.Product
	err = tx.QueryRowContext(ctx, insertProductSQL,
		p.SellerID, nullableInt(p.CategoryID), p.Title, p.Description, p.StartingPrice, p.ImageURL,
	).Scan(&p.ProductID, &p.CreatedAt)
	if err != nil {
		if pqCode(err) == pqForeignKeyViolation {
			return fmt.Errorf("create auction for seller %d: %w", p.SellerID, biddingerrors.ErrUserNotFound)
		}
		return fmt.Errorf("create auction: insert product: %w", err)
	}
	auction.ProductID = p.ProductID

	err = tx.QueryRowContext(ctx, insertAuctionSQL,
		auction.ProductID, auction.CreatedBy, string(auction.Status), auction.StartTime, auction.EndTime,
		auction.CurrentPrice, auction.MinBidIncrement,
	).Scan(&auction.AuctionID, &auction.CreatedAt)
	if err != nil {
		return fmt.Errorf("create auction: insert auction: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("create auction: commit: %w", err)
	}
	return nil
}

func nullableInt(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

// UpdateListing rewrites the seller-editable fields of an auction with no bids
func (r *PostgresRepo) UpdateListing(ctx context.Context, auction models.Auction) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("update auction %d: begin: %w", auction.AuctionID, err)
	}
	defer func() { _ = tx.Rollback() }()

	var (
		status    string
		total     int64
		productID int64
	)
	err = tx.QueryRowContext(ctx, lockListingSQL, auction.AuctionID).Scan(&status, &total, &productID)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update auction %d: %w", auction.AuctionID, biddingerrors.ErrAuctionNotFound)
	}
	if err != nil {
		return fmt.Errorf("update auction %d: lock: %w", auction.AuctionID, err)
	}
	if total > 0 {
		return fmt.Errorf("update auction %d: %w", auction.AuctionID, biddingerrors.ErrAuctionHasBids)
	}
	if models.AuctionStatus(status).IsTerminal() {
		return fmt.Errorf("update auction %d: %w: status %s", auction.AuctionID, biddingerrors.ErrInvalidTransition, status)
	}

	p := auction.Product
	if _, err := tx.ExecContext(ctx, updateProductSQL, p.Title, p.Description, p.ImageURL, nullableInt(p.CategoryID), productID); err != nil {
		return fmt.Errorf("update auction %d: product: %w", auction.AuctionID, err)
	}
	if _, err := tx.ExecContext(ctx, updateScheduleSQL, auction.StartTime, auction.EndTime, auction.MinBidIncrement, auction.AuctionID); err != nil {
		return fmt.Errorf("update auction %d: schedule: %w", auction.AuctionID, err)
	}
	if models.AuctionStatus(status) == models.StatusPending {
		if _, err := tx.ExecContext(ctx, updateProductPriceSQL, p.StartingPrice, productID); err != nil {
			return fmt.Errorf("update auction %d: starting price: %w", auction.AuctionID, err)
		}
		if _, err := tx.ExecContext(ctx, resetPendingPriceSQL, p.StartingPrice, auction.AuctionID); err != nil {
			return fmt.Errorf("update auction %d: current price: %w", auction.AuctionID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("update auction %d: commit: %w", auction.AuctionID, err)
	}
	return nil
}

// DeleteAuction removes a non-active auction together with its product
func (r *PostgresRepo) DeleteAuction(ctx context.Context, auctionID int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("delete auction %d: begin: %w", auctionID, err)
	}
	defer func() { _ = tx.Rollback() }()

	var (
		status    string
		total     int64
		productID int64
	)
	err = tx.QueryRowContext(ctx, lockListingSQL, auctionID).Scan(&status, &total, &productID)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("delete auction %d: %w", auctionID, biddingerrors.ErrAuctionNotFound)
	}
	if err != nil {
		return fmt.Errorf("delete auction %d: lock: %w", auctionID, err)
	}
	if models.AuctionStatus(status) == models.StatusActive {
		return fmt.Errorf("delete auction %d: %w", auctionID, biddingerrors.ErrAuctionActive)
	}
	if _, err := tx.ExecContext(ctx, deleteAuctionSQL, auctionID); err != nil {
		return fmt.Errorf("delete auction %d: %w", auctionID, err)
	}
	if _, err := tx.ExecContext(ctx, deleteProductSQL, productID); err != nil {
		return fmt.Errorf("delete auction %d: product: %w", auctionID, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("delete auction %d: commit: %w", auctionID, err)
	}
	return nil
}

// TransitionStatus applies change under a row lock
func (r *PostgresRepo) TransitionStatus(ctx context.Context, auctionID int64, change StatusChange) (models.Auction, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Auction{}, fmt.Errorf("transition auction %d: begin: %w", auctionID, err)
	}
	defer func() { _ = tx.Rollback() }()

	var (
		status string
		price  decimal.Decimal
		total  int64
	)
	err = tx.QueryRowContext(ctx, lockAuctionSQL, auctionID).Scan(&status, &price, &total)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Auction{}, fmt.Errorf("transition auction %d: %w", auctionID, biddingerrors.ErrAuctionNotFound)
	}
	if err != nil {
		return models.Auction{}, fmt.Errorf("transition auction %d: lock: %w", auctionID, err)
	}
	current := &models.Auction{AuctionID: auctionID, Status: models.AuctionStatus(status), TotalBids: total}
	if err := change.allows(current); err != nil {
		return models.Auction{}, fmt.Errorf("transition auction %d: %w", auctionID, err)
	}
	if _, err := tx.ExecContext(ctx, updateStatusSQL, string(change.To), auctionID); err != nil {
		return models.Auction{}, fmt.Errorf("transition auction %d: update: %w", auctionID, err)
	}
	a, err := scanAuction(tx.QueryRowContext(ctx, getAuctionSQL, auctionID))
	if err != nil {
		return models.Auction{}, fmt.Errorf("transition auction %d: reload: %w", auctionID, err)
	}
	if err := tx.Commit(); err != nil {
		return models.Auction{}, fmt.Errorf("transition auction %d: commit: %w", auctionID, err)
	}
	return a, nil
}

// IncrementViewCount bumps the view counter of an auction
func (r *PostgresRepo) IncrementViewCount(ctx context.Context, auctionID int64) error {
	res, err := r.db.ExecContext(ctx, incrementViewSQL, auctionID)
	if err != nil {
		return fmt.Errorf("count view for auction %d: %w", auctionID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("count view for auction %d: %w", auctionID, biddingerrors.ErrAuctionNotFound)
	}
	return nil
}

// MarkTransactionCompleted flags the sale of a COMPLETED auction as settled
func (r *PostgresRepo) MarkTransactionCompleted(ctx context.Context, auctionID int64, at time.Time) error {
	res, err := r.db.ExecContext(ctx, completeTransactionSQL, at.UTC(), auctionID)
	if err != nil {
		return fmt.Errorf("complete transaction for auction %d: %w", auctionID, err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	exists, err := r.auctionExists(ctx, auctionID)
	if err != nil {
		return fmt.Errorf("complete transaction for auction %d: %w", auctionID, err)
	}
	if !exists {
		return fmt.Errorf("complete transaction for auction %d: %w", auctionID, biddingerrors.ErrAuctionNotFound)
	}
	return fmt.Errorf("complete transaction for auction %d: %w", auctionID, biddingerrors.ErrNotCompleted)
}

// CompleteExpired closes every ACTIVE auction that ended before now in one statement
func (r *PostgresRepo) CompleteExpired(ctx context.Context, now time.Time) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, completeExpiredSQL, now.UTC())
	if err != nil {
		return nil, fmt.Errorf("complete expired auctions: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("complete expired auctions: scan: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("complete expired auctions: %w", err)
	}
	return ids, nil
}

// ListUnnotifiedWinners returns completed auctions whose winner has no won notification
func (r *PostgresRepo) ListUnnotifiedWinners(ctx context.Context) ([]models.Auction, error) {
	rows, err := r.db.QueryContext(ctx, unnotifiedWinnersSQL)
	if err != nil {
		return nil, fmt.Errorf("list unnotified winners: %w", err)
	}
	defer rows.Close()

	var out []models.Auction
	for rows.Next() {
		a, err := scanAuction(rows)
		if err != nil {
			return nil, fmt.Errorf("list unnotified winners: scan: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list unnotified winners: %w", err)
	}
	return out, nil
}
