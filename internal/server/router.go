package server

import (
	"crop-auction/internal/identity"
	"crop-auction/internal/metrics"
	handler "crop-auction/services/auction/handler"

	"github.com/gin-gonic/gin"
)

// SetupRouter configures all Gin routes for the application. m may be nil, in which case
// /metrics is not served.
func SetupRouter(ledger handler.LedgerInterface, auth identity.Provider, store Pinger, m *metrics.Metrics) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging

	router.GET("/health", healthHandler(store))
	if m != nil {
		router.GET("/metrics", gin.WrapH(m.Handler()))
	}

	listingHandler := handler.NewListingHandler(ledger)

	listings := router.Group("/api/listings", AuthMiddleware(auth))
	{
		listings.POST("", listingHandler.CreateListingHandler)
		listings.GET("", listingHandler.ListLiveListingsHandler)
		listings.GET("/mine", listingHandler.ListOwnListingsHandler)
		listings.GET("/my-listings", listingHandler.ListOwnListingsHandler)
		listings.GET("/:id", listingHandler.GetListingHandler)
		listings.POST("/:id/bid", listingHandler.PlaceBidHandler)
		listings.POST("/:id/accept", listingHandler.AcceptBidHandler)
	}

	return router
}
