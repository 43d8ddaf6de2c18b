package auctionerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNotOwnerIsPermissionDenied(t *testing.T) {
	require.True(t, errors.Is(ErrNotOwner, ErrPermissionDenied))
	require.False(t, errors.Is(ErrPermissionDenied, ErrNotOwner))
}

func TestInvalidBidError(t *testing.T) {
	err := fmt.Errorf("service: %w", &InvalidBidError{Amount: 500, CurrentHighestBid: 1000})

	require.True(t, errors.Is(err, ErrInvalidBid))

	var bidErr *InvalidBidError
	require.True(t, errors.As(err, &bidErr))
	require.Equal(t, 1000.0, bidErr.CurrentHighestBid)
	require.Contains(t, err.Error(), "greater than 1000 (got 500)")
}

func TestInvalidBidError_KeepsSubCentAmounts(t *testing.T) {
	err := &InvalidBidError{Amount: 1000.004, CurrentHighestBid: 1000.005}
	require.Equal(t, "bid must be greater than 1000.005 (got 1000.004)", err.Error())
}
