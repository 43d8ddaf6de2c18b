package policy

import (
	"errors"
	"testing"

	"crop-auction/internal/auctionerrors"
	"crop-auction/internal/models"

	"github.com/stretchr/testify/require"
)

func TestAuthorize_Roles(t *testing.T) {
	farmer := models.Caller{ID: "f1", Role: models.RoleFarmer}
	trader := models.Caller{ID: "t1", Role: models.RoleTrader}

	tests := []struct {
		name    string
		op      Operation
		caller  models.Caller
		allowed bool
	}{
		{name: "farmer_creates", op: CreateListing, caller: farmer, allowed: true},
		{name: "trader_cannot_create", op: CreateListing, caller: trader, allowed: false},
		{name: "trader_browses", op: ListLiveListings, caller: trader, allowed: true},
		{name: "farmer_cannot_browse", op: ListLiveListings, caller: farmer, allowed: false},
		{name: "farmer_lists_own", op: ListOwnListings, caller: farmer, allowed: true},
		{name: "trader_cannot_list_own", op: ListOwnListings, caller: trader, allowed: false},
		{name: "farmer_views", op: ViewListing, caller: farmer, allowed: true},
		{name: "trader_views", op: ViewListing, caller: trader, allowed: true},
		{name: "trader_bids", op: PlaceBid, caller: trader, allowed: true},
		{name: "farmer_cannot_bid", op: PlaceBid, caller: farmer, allowed: false},
		{name: "farmer_accepts", op: AcceptBid, caller: farmer, allowed: true},
		{name: "trader_cannot_accept", op: AcceptBid, caller: trader, allowed: false},
		{name: "unknown_role", op: ViewListing, caller: models.Caller{ID: "x", Role: "admin"}, allowed: false},
		{name: "anonymous", op: ViewListing, caller: models.Caller{Role: models.RoleTrader}, allowed: false},
		{name: "unknown_operation", op: Operation("delete_listing"), caller: farmer, allowed: false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := Authorize(tc.op, tc.caller, nil)
			if tc.allowed {
				require.NoError(t, err)
				return
			}
			require.True(t, errors.Is(err, auctionerrors.ErrPermissionDenied), "got %v", err)
		})
	}
}

func TestAuthorize_Ownership(t *testing.T) {
	listing := &models.Listing{ID: "l1", FarmerID: "farmerA"}

	require.NoError(t, Authorize(AcceptBid, models.Caller{ID: "farmerA", Role: models.RoleFarmer}, listing))

	err := Authorize(AcceptBid, models.Caller{ID: "farmerB", Role: models.RoleFarmer}, listing)
	require.True(t, errors.Is(err, auctionerrors.ErrNotOwner))
	require.True(t, errors.Is(err, auctionerrors.ErrPermissionDenied))

	// viewing is not owner-restricted
	require.NoError(t, Authorize(ViewListing, models.Caller{ID: "farmerB", Role: models.RoleFarmer}, listing))
}
