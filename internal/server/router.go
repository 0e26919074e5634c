package server

import (
	"net/http"

	"auction-engine/internal/metrics"
	"auction-engine/internal/realtime"
	handler "auction-engine/services/bidding/handler"
	"auction-engine/utils"

	"github.com/gin-gonic/gin"
)

// Dependencies are the services the HTTP surface is built on
type Dependencies struct {
	Bidding        handler.BiddingServiceInterface
	Auctions       handler.AuctionServiceInterface
	Notifications  handler.NotificationServiceInterface
	Sweeper        handler.SweepRunner
	Hub            *realtime.Hub
	Metrics        *metrics.Registry
	AllowedOrigins []string
}

// SetupRouter configures all Gin routes for the application
func SetupRouter(deps Dependencies) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery()) // recover from panics
	router.Use(RequestIDMiddleware)
	router.Use(RequestLoggerMiddleware) // custom request logging
	router.Use(CORSMiddleware(deps.AllowedOrigins))
	router.Use(metrics.GinMiddleware(deps.Metrics))

	router.GET("/healthz", func(c *gin.Context) {
		utils.JSONResponse(c, http.StatusOK, gin.H{"status": "ok"}, "healthy")
	})
	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}
	if deps.Hub != nil {
		router.GET("/ws", gin.WrapF(deps.Hub.ServeWs))
	}

	biddingHandler := handler.NewBiddingHandler(deps.Bidding)
	auctionHandler := handler.NewAuctionHandler(deps.Auctions)
	notificationHandler := handler.NewNotificationHandler(deps.Notifications)
	adminHandler := handler.NewAdminHandler(deps.Sweeper)

	bids := router.Group("/bids")
	{
		bids.POST("", biddingHandler.RecordBidHandler)
	}

	auctions := router.Group("/auctions")
	{
		auctions.GET("", auctionHandler.ListAuctionsHandler)
		auctions.POST("", auctionHandler.CreateAuctionHandler)
		auctions.GET("/:auction_id", auctionHandler.GetAuctionHandler)
		auctions.PUT("/:auction_id", auctionHandler.UpdateAuctionHandler)
		auctions.DELETE("/:auction_id", auctionHandler.DeleteAuctionHandler)
		auctions.GET("/:auction_id/bids", biddingHandler.GetBidsByAuctionHandler)
		auctions.GET("/:auction_id/winner", auctionHandler.GetWinnerHandler)
		auctions.PUT("/:auction_id/cancel", auctionHandler.CancelAuctionHandler)
		auctions.PUT("/:auction_id/complete-transaction", auctionHandler.CompleteTransactionHandler)
	}

	admin := router.Group("/admin")
	{
		admin.PUT("/auctions/:auction_id/approve", auctionHandler.ApproveAuctionHandler)
		admin.PUT("/auctions/:auction_id/reject", auctionHandler.RejectAuctionHandler)
		admin.POST("/sweep", adminHandler.SweepHandler)
	}

	users := router.Group("/users")
	{
		users.GET("/:user_id/bids", biddingHandler.GetBidsByUserHandler)
		users.GET("/:user_id/notifications", notificationHandler.ListNotificationsHandler)
		users.PUT("/:user_id/notifications/read-all", notificationHandler.MarkAllReadHandler)
		users.GET("/:user_id/watchlist", auctionHandler.GetWatchlistHandler)
		users.POST("/:user_id/watchlist", auctionHandler.AddToWatchlistHandler)
		users.GET("/:user_id/watchlist/:auction_id", auctionHandler.IsWatchingHandler)
		users.DELETE("/:user_id/watchlist/:auction_id", auctionHandler.RemoveFromWatchlistHandler)
	}

	notifications := router.Group("/notifications")
	{
		notifications.PUT("/:notification_id/read", notificationHandler.MarkReadHandler)
	}

	return router
}
