package helpers

import (
	"errors"
	"fmt"
	"net/http"

	"crop-auction/internal/auctionerrors"
	"crop-auction/internal/models"
	"crop-auction/utils"

	"github.com/gin-gonic/gin"
)

// callerKey is the gin context key holding the authenticated models.Caller.
const callerKey = "auction.caller"

// SetCaller stores the authenticated caller on the request context
func SetCaller(c *gin.Context, caller models.Caller) {
	c.Set(callerKey, caller)
}

// CallerFrom returns the caller stored by SetCaller
func CallerFrom(c *gin.Context) (models.Caller, bool) {
	v, ok := c.Get(callerKey)
	if !ok {
		return models.Caller{}, false
	}
	caller, ok := v.(models.Caller)
	return caller, ok
}

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps domain/service errors to HTTP status code and message
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, auctionerrors.ErrValidation):
		return http.StatusBadRequest, "invalid request"
	case errors.Is(err, auctionerrors.ErrNotOwner):
		return http.StatusUnauthorized, "not authorized to accept bids on this listing"
	case errors.Is(err, auctionerrors.ErrPermissionDenied):
		return http.StatusForbidden, "access denied"
	case errors.Is(err, auctionerrors.ErrListingNotFound):
		return http.StatusNotFound, "listing not found"
	case errors.Is(err, auctionerrors.ErrInvalidBid):
		return http.StatusBadRequest, "bid must be higher than current highest bid"
	case errors.Is(err, auctionerrors.ErrInvalidState):
		return http.StatusBadRequest, "auction is not open for this action"
	case errors.Is(err, auctionerrors.ErrConflict):
		return http.StatusConflict, "listing was modified concurrently, retry"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// RespondError writes the mapped error response and logs it. Internal details are logged
// but never sent to the client.
func RespondError(c *gin.Context, handlerName string, err error, fields map[string]any) {
	status, message := MapErrorToHTTP(err)

	logFields := map[string]any{"handler": handlerName, "status": status, "error": err.Error()}
	for k, v := range fields {
		logFields[k] = v
	}

	var invalidBid *auctionerrors.InvalidBidError
	switch {
	case status == http.StatusInternalServerError:
		utils.JSONError(c, status, errors.New(message), message)
		utils.Error(handlerName+": request failed", logFields)
	case errors.As(err, &invalidBid):
		utils.JSONErrorWithData(c, status, fmt.Errorf("%s: %w", message, err), message, InvalidBidData{
			CurrentHighestBid: invalidBid.CurrentHighestBid,
		})
		utils.Info(handlerName+": bid rejected", logFields)
	default:
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn(handlerName+": request rejected", logFields)
	}
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
