package handler

import (
	"context"
	"errors"
	"net/http"

	auction "crop-auction/internal/auctionService"
	"crop-auction/internal/models"
	"crop-auction/services/auction/helpers"
	"crop-auction/utils"

	"github.com/gin-gonic/gin"
)

//go:generate mockgen -source=listing_handler.go -destination=mock_ledger.go -package=handler

var errNoCaller = errors.New("no authenticated caller on request")

type LedgerInterface interface {
	CreateListing(ctx context.Context, caller models.Caller, in auction.CreateListingInput) (models.Listing, error)
	ListLiveListings(ctx context.Context, caller models.Caller, filter models.ListingFilter) ([]models.Listing, error)
	ListOwnListings(ctx context.Context, caller models.Caller) ([]models.Listing, error)
	GetListing(ctx context.Context, caller models.Caller, listingID string) (models.Listing, error)
	PlaceBid(ctx context.Context, caller models.Caller, listingID string, amount float64) (models.Listing, error)
	AcceptHighestBid(ctx context.Context, caller models.Caller, listingID string) (models.Listing, error)
}

type ListingHandler struct {
	ledger LedgerInterface
}

func NewListingHandler(ledger LedgerInterface) *ListingHandler {
	return &ListingHandler{ledger: ledger}
}

// caller returns the authenticated caller, or writes 401 when the auth middleware did not run
func caller(c *gin.Context, handlerName string) (models.Caller, bool) {
	who, ok := helpers.CallerFrom(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, errNoCaller, "no credential, authorization denied")
		utils.Warn(handlerName+": request without caller", map[string]any{"path": c.Request.URL.Path})
	}
	return who, ok
}

// CreateListingHandler handles POST /api/listings
func (h *ListingHandler) CreateListingHandler(c *gin.Context) {
	who, ok := caller(c, "CreateListingHandler")
	if !ok {
		return
	}

	var req helpers.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateListingHandler", err)
		return
	}

	listing, err := h.ledger.CreateListing(c.Request.Context(), who, req.ToInput())
	if err != nil {
		helpers.RespondError(c, "CreateListingHandler", err, map[string]any{"farmer_id": who.ID})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, listing, "listing created successfully")
	helpers.LogSuccess("CreateListingHandler", "listing created successfully", map[string]any{
		"listing_id":   listing.ID,
		"farmer_id":    who.ID,
		"auction_type": listing.AuctionType,
	})
}

// ListLiveListingsHandler handles GET /api/listings
func (h *ListingHandler) ListLiveListingsHandler(c *gin.Context) {
	who, ok := caller(c, "ListLiveListingsHandler")
	if !ok {
		return
	}

	var q helpers.ListingQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		helpers.HandleBindError(c, "ListLiveListingsHandler", err)
		return
	}

	listings, err := h.ledger.ListLiveListings(c.Request.Context(), who, q.ToFilter())
	if err != nil {
		helpers.RespondError(c, "ListLiveListingsHandler", err, map[string]any{"trader_id": who.ID})
		return
	}
	if listings == nil {
		listings = []models.Listing{}
	}

	utils.JSONResponse(c, http.StatusOK, listings, "listings retrieved successfully")
	helpers.LogSuccess("ListLiveListingsHandler", "listings retrieved successfully", map[string]any{
		"trader_id": who.ID,
		"count":     len(listings),
	})
}

// ListOwnListingsHandler handles GET /api/listings/mine
func (h *ListingHandler) ListOwnListingsHandler(c *gin.Context) {
	who, ok := caller(c, "ListOwnListingsHandler")
	if !ok {
		return
	}

	listings, err := h.ledger.ListOwnListings(c.Request.Context(), who)
	if err != nil {
		helpers.RespondError(c, "ListOwnListingsHandler", err, map[string]any{"farmer_id": who.ID})
		return
	}
	if listings == nil {
		listings = []models.Listing{}
	}

	utils.JSONResponse(c, http.StatusOK, listings, "listings retrieved successfully")
	helpers.LogSuccess("ListOwnListingsHandler", "listings retrieved successfully", map[string]any{
		"farmer_id": who.ID,
		"count":     len(listings),
	})
}

// GetListingHandler handles GET /api/listings/:id
func (h *ListingHandler) GetListingHandler(c *gin.Context) {
	who, ok := caller(c, "GetListingHandler")
	if !ok {
		return
	}

	listingID := c.Param("id")
	listing, err := h.ledger.GetListing(c.Request.Context(), who, listingID)
	if err != nil {
		helpers.RespondError(c, "GetListingHandler", err, map[string]any{"listing_id": listingID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, listing, "listing retrieved successfully")
}

// PlaceBidHandler handles POST /api/listings/:id/bid
func (h *ListingHandler) PlaceBidHandler(c *gin.Context) {
	who, ok := caller(c, "PlaceBidHandler")
	if !ok {
		return
	}

	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PlaceBidHandler", err)
		return
	}

	listingID := c.Param("id")
	amount := *req.Amount
	listing, err := h.ledger.PlaceBid(c.Request.Context(), who, listingID, amount)
	if err != nil {
		helpers.RespondError(c, "PlaceBidHandler", err, map[string]any{
			"listing_id": listingID,
			"trader_id":  who.ID,
			"amount":     amount,
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, listing, "bid placed successfully")
	helpers.LogSuccess("PlaceBidHandler", "bid placed successfully", map[string]any{
		"listing_id": listing.ID,
		"trader_id":  who.ID,
		"amount":     amount,
	})
}

// AcceptBidHandler handles POST /api/listings/:id/accept
func (h *ListingHandler) AcceptBidHandler(c *gin.Context) {
	who, ok := caller(c, "AcceptBidHandler")
	if !ok {
		return
	}

	listingID := c.Param("id")
	listing, err := h.ledger.AcceptHighestBid(c.Request.Context(), who, listingID)
	if err != nil {
		helpers.RespondError(c, "AcceptBidHandler", err, map[string]any{
			"listing_id": listingID,
			"farmer_id":  who.ID,
		})
		return
	}

	resp := helpers.AcceptResponse{Listing: listing}
	fields := map[string]any{"listing_id": listing.ID, "farmer_id": who.ID}
	if winner, ok := listing.Winner(); ok {
		resp.Winner = &winner
		fields["winner_id"] = winner.Bidder
		fields["amount"] = winner.Amount
	}

	utils.JSONResponse(c, http.StatusOK, resp, "bid accepted, auction closed")
	helpers.LogSuccess("AcceptBidHandler", "bid accepted, auction closed", fields)
}
