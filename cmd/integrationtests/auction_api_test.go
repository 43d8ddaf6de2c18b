package integrationtests

import (
	"net/http"
	"testing"
	"time"

	model "crop-auction/internal/models"

	"github.com/stretchr/testify/require"
)

// A bid at or below the current highest is rejected with the value to beat
func TestBidMustBeatCurrentHighest(t *testing.T) {
	forEachStore(t, func(t *testing.T, app *TestApp) {
		farmer := app.Login(t, "farmer-a", model.RoleFarmer)
		trader := app.Login(t, "trader-a", model.RoleTrader)
		id := app.CreateListing(t, farmer, listingBody("Wheat", 1000))

		resp, w := app.ExecuteRequestAndParse(t, http.MethodPost, "/api/listings/"+id+"/bid", trader, map[string]any{"amount": 500})
		require.Equal(t, http.StatusBadRequest, w.Code)
		require.Equal(t, 1000.0, resp["data"].(map[string]any)["currentHighestBid"])

		resp, w = app.ExecuteRequestAndParse(t, http.MethodPost, "/api/listings/"+id+"/bid", trader, map[string]any{"amount": 1500})
		require.Equal(t, http.StatusOK, w.Code)
		data := resp["data"].(map[string]any)
		require.Equal(t, 1500.0, data["currentHighestBid"])
		require.Len(t, data["bids"].([]any), 1)
	})
}

// daily_rush listings end duration hours after they start
func TestDailyRushEndTime(t *testing.T) {
	forEachStore(t, func(t *testing.T, app *TestApp) {
		farmer := app.Login(t, "farmer-a", model.RoleFarmer)
		body := listingBody("Tomato", 400)
		body["auctionType"] = "daily_rush"
		body["duration"] = "4"
		delete(body, "endTime")

		before := time.Now().UTC()
		resp, w := app.ExecuteRequestAndParse(t, http.MethodPost, "/api/listings", farmer, body)
		after := time.Now().UTC()
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		data := resp["data"].(map[string]any)
		start, err := time.Parse(time.RFC3339Nano, data["startTime"].(string))
		require.NoError(t, err)
		end, err := time.Parse(time.RFC3339Nano, data["endTime"].(string))
		require.NoError(t, err)

		require.False(t, start.Before(before.Truncate(time.Second)))
		require.False(t, start.After(after))
		require.Equal(t, 4*time.Hour, end.Sub(start))
	})
}

// Only the owning farmer may accept
func TestNonOwnerCannotAccept(t *testing.T) {
	forEachStore(t, func(t *testing.T, app *TestApp) {
		farmerA := app.Login(t, "farmer-a", model.RoleFarmer)
		farmerB := app.Login(t, "farmer-b", model.RoleFarmer)
		trader := app.Login(t, "trader-a", model.RoleTrader)
		id := app.CreateListing(t, farmerA, listingBody("Onion", 800))

		_, w := app.ExecuteRequestAndParse(t, http.MethodPost, "/api/listings/"+id+"/bid", trader, map[string]any{"amount": 900})
		require.Equal(t, http.StatusOK, w.Code)

		_, w = app.ExecuteRequestAndParse(t, http.MethodPost, "/api/listings/"+id+"/accept", farmerB, nil)
		require.Equal(t, http.StatusUnauthorized, w.Code)

		_, w = app.ExecuteRequestAndParse(t, http.MethodPost, "/api/listings/"+id+"/accept", trader, nil)
		require.Equal(t, http.StatusForbidden, w.Code)

		resp, w := app.ExecuteRequestAndParse(t, http.MethodGet, "/api/listings/"+id, farmerA, nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "live", resp["data"].(map[string]any)["status"])
	})
}

// Bids on a sold listing are refused and leave it unchanged
func TestBidOnSoldListing(t *testing.T) {
	forEachStore(t, func(t *testing.T, app *TestApp) {
		farmer := app.Login(t, "farmer-a", model.RoleFarmer)
		trader := app.Login(t, "trader-a", model.RoleTrader)
		id := app.CreateListing(t, farmer, listingBody("Soybean", 1000))

		_, w := app.ExecuteRequestAndParse(t, http.MethodPost, "/api/listings/"+id+"/bid", trader, map[string]any{"amount": 1200})
		require.Equal(t, http.StatusOK, w.Code)
		_, w = app.ExecuteRequestAndParse(t, http.MethodPost, "/api/listings/"+id+"/accept", farmer, nil)
		require.Equal(t, http.StatusOK, w.Code)

		_, w = app.ExecuteRequestAndParse(t, http.MethodPost, "/api/listings/"+id+"/bid", trader, map[string]any{"amount": 2000})
		require.Equal(t, http.StatusBadRequest, w.Code)

		resp, _ := app.ExecuteRequestAndParse(t, http.MethodGet, "/api/listings/"+id, trader, nil)
		data := resp["data"].(map[string]any)
		require.Equal(t, "sold", data["status"])
		require.Equal(t, 1200.0, data["currentHighestBid"])
		require.Len(t, data["bids"].([]any), 1)
	})
}

// maxPrice excludes listings whose base price is above it
func TestBrowseMaxPrice(t *testing.T) {
	forEachStore(t, func(t *testing.T, app *TestApp) {
		farmer := app.Login(t, "farmer-a", model.RoleFarmer)
		trader := app.Login(t, "trader-a", model.RoleTrader)
		cheap := app.CreateListing(t, farmer, listingBody("Maize", 9000))
		app.CreateListing(t, farmer, listingBody("Cardamom", 25000))
		edge := app.CreateListing(t, farmer, listingBody("Turmeric", 10000))

		resp, w := app.ExecuteRequestAndParse(t, http.MethodGet, "/api/listings?maxPrice=10000", trader, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var got []string
		for _, l := range resp["data"].([]any) {
			listing := l.(map[string]any)
			require.LessOrEqual(t, listing["basePrice"].(float64), 10000.0)
			got = append(got, listing["id"].(string))
		}
		require.ElementsMatch(t, []string{cheap, edge}, got)
	})
}

func TestFullAuctionLifecycle(t *testing.T) {
	forEachStore(t, func(t *testing.T, app *TestApp) {
		farmer := app.Login(t, "farmer-a", model.RoleFarmer)
		traderA := app.Login(t, "trader-a", model.RoleTrader)
		traderB := app.Login(t, "trader-b", model.RoleTrader)

		body := listingBody("Basmati Rice", 2000)
		body["location"] = "Karnal"
		body["farmerId"] = "someone-else"
		id := app.CreateListing(t, farmer, body)

		// farmers do not browse the live market
		_, w := app.ExecuteRequestAndParse(t, http.MethodGet, "/api/listings", farmer, nil)
		require.Equal(t, http.StatusForbidden, w.Code)

		resp, w := app.ExecuteRequestAndParse(t, http.MethodGet, "/api/listings?cropName=RICE&location=karnal", traderA, nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.Len(t, resp["data"].([]any), 1)

		// accepting with no bids is refused
		_, w = app.ExecuteRequestAndParse(t, http.MethodPost, "/api/listings/"+id+"/accept", farmer, nil)
		require.Equal(t, http.StatusBadRequest, w.Code)

		_, w = app.ExecuteRequestAndParse(t, http.MethodPost, "/api/listings/"+id+"/bid", traderA, map[string]any{"amount": 2100})
		require.Equal(t, http.StatusOK, w.Code)
		_, w = app.ExecuteRequestAndParse(t, http.MethodPost, "/api/listings/"+id+"/bid", traderB, map[string]any{"amount": 2150})
		require.Equal(t, http.StatusOK, w.Code)

		resp, w = app.ExecuteRequestAndParse(t, http.MethodPost, "/api/listings/"+id+"/accept", farmer, nil)
		require.Equal(t, http.StatusOK, w.Code)
		data := resp["data"].(map[string]any)
		require.Equal(t, "trader-b", data["winner"].(map[string]any)["bidder"])
		listing := data["listing"].(map[string]any)
		require.Equal(t, "sold", listing["status"])
		require.Equal(t, "farmer-a", listing["farmerId"])
		bids := listing["bids"].([]any)
		require.Len(t, bids, 2)
		require.Equal(t, "trader-b", bids[0].(map[string]any)["bidder"])
		require.Equal(t, "trader-a", bids[1].(map[string]any)["bidder"])

		resp, w = app.ExecuteRequestAndParse(t, http.MethodGet, "/api/listings", traderA, nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.Empty(t, resp["data"].([]any))

		resp, w = app.ExecuteRequestAndParse(t, http.MethodGet, "/api/listings/my-listings", farmer, nil)
		require.Equal(t, http.StatusOK, w.Code)
		own := resp["data"].([]any)
		require.Len(t, own, 1)
		require.Equal(t, "sold", own[0].(map[string]any)["status"])
	})
}

func TestAuthenticationRequired(t *testing.T) {
	app := SetupTestApp(t, "memory")

	resp, w := app.ExecuteRequestAndParse(t, http.MethodGet, "/api/listings", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "no credential, authorization denied", resp["message"])

	resp, w = app.ExecuteRequestAndParse(t, http.MethodGet, "/api/listings", "expired-token", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "invalid credential", resp["message"])

	_, w = app.ExecuteRequestAndParse(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
}
