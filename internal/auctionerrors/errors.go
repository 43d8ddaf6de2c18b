package auctionerrors

import (
	"errors"
	"fmt"
	"strconv"
)

// Repository-level errors
var (
	ErrListingNotFound = errors.New("listing not found")
	ErrConflict        = errors.New("listing was modified concurrently")
)

// business logic errors
var (
	ErrValidation       = errors.New("validation failed")
	ErrPermissionDenied = errors.New("permission denied")
	ErrNotOwner         = fmt.Errorf("%w: caller does not own the listing", ErrPermissionDenied)
	ErrInvalidBid       = errors.New("invalid bid")
	ErrInvalidState     = errors.New("invalid listing state")
)

// InvalidBidError reports a rejected bid together with the highest bid it had to beat,
// so the client can correct its amount and retry.
type InvalidBidError struct {
	Amount            float64
	CurrentHighestBid float64
}

func (e *InvalidBidError) Error() string {
	return fmt.Sprintf("bid must be greater than %s (got %s)", formatAmount(e.CurrentHighestBid), formatAmount(e.Amount))
}

func (e *InvalidBidError) Unwrap() error {
	return ErrInvalidBid
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
