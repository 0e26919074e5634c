package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	auction "auction-engine/internal/auctionService"
	bidding "auction-engine/internal/biddingService"
	"auction-engine/internal/config"
	"auction-engine/internal/events"
	"auction-engine/internal/lifecycle"
	"auction-engine/internal/lock"
	"auction-engine/internal/metrics"
	model "auction-engine/internal/models"
	notification "auction-engine/internal/notificationService"
	"auction-engine/internal/realtime"
	"auction-engine/internal/repository"
	"auction-engine/internal/server"
	"auction-engine/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.Fatal("Failed to load configuration", map[string]any{"error": err.Error()})
	}
	utils.SetLevel(cfg.LogLevel)
	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		utils.Fatal("Auction engine stopped with error", map[string]any{"error": err.Error()})
	}
	utils.Info("Application shut down complete", nil)
}

func run(ctx context.Context, cfg *config.Config) error {
	var cleanups []func()
	defer func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	cleanups = append(cleanups, closeStore)

	locker, closeLocker, err := openLocker(ctx, cfg)
	if err != nil {
		return err
	}
	cleanups = append(cleanups, closeLocker)

	publisher, closePublisher, err := openPublisher(cfg)
	if err != nil {
		return err
	}
	cleanups = append(cleanups, closePublisher)

	reg := metrics.NewRegistry()
	hub := realtime.NewHub(reg)

	notificationSvc := notification.NewNotificationService(store, hub)
	auctionSvc := auction.NewAuctionService(store, store, hub, publisher)
	biddingSvc := bidding.NewBiddingService(store, locker, notificationSvc, hub, publisher, bidding.Options{
		Policy:        bidding.IncrementPolicy{MinPercent: cfg.MinIncrementPct, MaxPercent: cfg.MaxIncrementPct},
		LockTimeout:   cfg.BidLockTimeout,
		CommitRetries: cfg.BidCommitRetries,
		Metrics:       reg,
	})
	scheduler := lifecycle.NewScheduler(store, notificationSvc, hub, publisher, reg, cfg.SweepInterval)

	if cfg.SeedDemoData {
		seedDemoData(ctx, store, auctionSvc)
	}

	router := server.SetupRouter(server.Dependencies{
		Bidding:        biddingSvc,
		Auctions:       auctionSvc,
		Notifications:  notificationSvc,
		Sweeper:        scheduler,
		Hub:            hub,
		Metrics:        reg,
		AllowedOrigins: cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           router,
		IdleTimeout:       time.Minute,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		utils.Info("Starting auction server", map[string]any{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return scheduler.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		utils.Info("Shutting down server", nil)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful server shutdown failed: %w", err)
		}
		return nil
	})
	return g.Wait()
}

func openStore(ctx context.Context, cfg *config.Config) (repository.Store, func(), error) {
	if cfg.DatabaseURL == "" {
		utils.Warn("DATABASE_URL not set, using the in-memory store", nil)
		return repository.NewMemoryRepo(), func() {}, nil
	}

	db, err := repository.ConnectPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	if cfg.DBMigrate {
		if err := repository.Migrate(db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		utils.Info("Database migrations applied", nil)
	}
	return repository.NewPostgresRepo(db), func() {
		if err := db.Close(); err != nil {
			utils.Warn("Error closing database", map[string]any{"error": err.Error()})
		}
	}, nil
}

func openLocker(ctx context.Context, cfg *config.Config) (lock.Locker, func(), error) {
	if cfg.RedisAddr == "" {
		return lock.NewMemoryLocker(), func() {}, nil
	}

	client, err := lock.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return nil, nil, err
	}
	utils.Info("Using Redis auction locks", map[string]any{"addr": cfg.RedisAddr, "ttl": cfg.BidLockTTL.String()})
	return lock.NewRedisLocker(client, cfg.BidLockTTL), func() {
		if err := client.Close(); err != nil {
			utils.Warn("Error closing Redis client", map[string]any{"error": err.Error()})
		}
	}, nil
}

func openPublisher(cfg *config.Config) (events.Publisher, func(), error) {
	if cfg.AMQPURL == "" {
		return events.NopPublisher{}, func() {}, nil
	}

	p, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
	if err != nil {
		return nil, nil, err
	}
	utils.Info("Publishing domain events", map[string]any{"exchange": cfg.AMQPExchange})
	return p, func() {
		if err := p.Close(); err != nil {
			utils.Warn("Error closing AMQP publisher", map[string]any{"error": err.Error()})
		}
	}, nil
}

// seedDemoData lists and approves a few auctions so the API has something to bid on
func seedDemoData(ctx context.Context, store repository.Store, svc *auction.AuctionService) {
	if _, ok := store.(*repository.MemoryRepo); !ok {
		utils.Warn("SEED_DEMO_DATA only applies to the in-memory store, skipping", nil)
		return
	}

	now := time.Now().UTC()
	listings := []struct {
		title string
		price string
		runs  time.Duration
	}{
		{"Vintage film camera", "1000000", 2 * time.Hour},
		{"Mechanical keyboard", "120", 30 * time.Minute},
		{"Signed first edition", "450", 24 * time.Hour},
	}

	for _, l := range listings {
		price := decimal.RequireFromString(l.price)
		a, err := svc.CreateListing(ctx, 1, auction.Listing{
			Title:           l.title,
			StartingPrice:   price,
			MinBidIncrement: price.Div(decimal.NewFromInt(100)).Round(2),
			StartTime:       now,
			EndTime:         now.Add(l.runs),
		})
		if err != nil {
			utils.Warn("Failed to seed auction", map[string]any{"title": l.title, "error": err.Error()})
			continue
		}
		if _, err := svc.Approve(ctx, a.AuctionID, 0); err != nil {
			utils.Warn("Failed to approve seeded auction", map[string]any{"auction_id": a.AuctionID, "error": err.Error()})
			continue
		}
		utils.Info("Seeded demo auction", map[string]any{"auction_id": a.AuctionID, "status": model.StatusActive})
	}
}
