package server

import (
	"auction-engine/internal/hub"
	"auction-engine/internal/repository"
	"auction-engine/internal/settlement"
	handler "auction-engine/services/auction/handler"

	"github.com/gin-gonic/gin"
)

// SetupRouter configures all Gin routes for the bidding engine.
func SetupRouter(fanout *hub.Hub, store repository.Store, settler *settlement.Settler) *gin.Engine {
	router := gin.New() // no default middleware, logging and recovery are explicit

	router.Use(gin.Recovery())
	router.Use(RequestLoggerMiddleware)

	auctionHandler := handler.NewAuctionHandler(fanout, store, store, settler)

	bids := router.Group("/bids")
	{
		bids.POST("/place", CallerIdentityMiddleware, auctionHandler.PlaceBidHandler)
		bids.GET("/auction/:auction_id", auctionHandler.GetAuctionBidsHandler)
		bids.GET("/player/:player_id", auctionHandler.GetPlayerBidsHandler)
	}

	auctions := router.Group("/auctions")
	{
		auctions.GET("/:auction_id/live", auctionHandler.LiveStateHandler)
		auctions.POST("/:auction_id/players/:player_id/finalize", CallerIdentityMiddleware, auctionHandler.FinalizePlayerHandler)
	}

	router.GET("/ws", ServeWS(fanout))

	return router
}
