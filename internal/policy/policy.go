// Package policy decides whether a caller may perform a ledger operation.
package policy

import (
	"fmt"

	"crop-auction/internal/auctionerrors"
	"crop-auction/internal/models"
)

// Operation names a ledger action subject to authorization.
type Operation string

const (
	CreateListing    Operation = "create_listing"
	ListLiveListings Operation = "list_live_listings"
	ListOwnListings  Operation = "list_own_listings"
	ViewListing      Operation = "view_listing"
	PlaceBid         Operation = "place_bid"
	AcceptBid        Operation = "accept_bid"
)

// OperationRoles maps each operation to the roles allowed to perform it.
// Browsing live listings is trader-only; farmers browse their own.
var OperationRoles = map[Operation][]models.Role{
	CreateListing:    {models.RoleFarmer},
	ListLiveListings: {models.RoleTrader},
	ListOwnListings:  {models.RoleFarmer},
	ViewListing:      {models.RoleFarmer, models.RoleTrader},
	PlaceBid:         {models.RoleTrader},
	AcceptBid:        {models.RoleFarmer},
}

// ownerOnly lists operations that additionally require the caller to own the listing.
var ownerOnly = map[Operation]bool{
	AcceptBid: true,
}

// AllowedRole returns true if role is in the list of allowed roles for the operation.
func AllowedRole(op Operation, role models.Role) bool {
	roles, ok := OperationRoles[op]
	if !ok {
		return false
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// Authorize returns nil when caller may perform op on listing. listing may be nil for
// operations that do not target a single listing; ownership is then checked by the
// caller once the listing is loaded.
func Authorize(op Operation, caller models.Caller, listing *models.Listing) error {
	if caller.ID == "" {
		return fmt.Errorf("policy: %w - anonymous caller", auctionerrors.ErrPermissionDenied)
	}
	if !AllowedRole(op, caller.Role) {
		return fmt.Errorf("policy: %w - role %q may not %s", auctionerrors.ErrPermissionDenied, caller.Role, op)
	}
	if listing != nil && ownerOnly[op] && listing.FarmerID != caller.ID {
		return fmt.Errorf("policy: %w - listing %s", auctionerrors.ErrNotOwner, listing.ID)
	}
	return nil
}
