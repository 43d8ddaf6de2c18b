package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"crop-auction/internal/identity"
	"crop-auction/services/auction/helpers"
	"crop-auction/utils"

	"github.com/gin-gonic/gin"
)

// AuthTokenHeader carries the session token issued by the auth service.
const AuthTokenHeader = "x-auth-token"

// RequestLoggerMiddleware logs incoming requests with timing
func RequestLoggerMiddleware(c *gin.Context) {
	start := time.Now()

	c.Next() // process request

	fields := map[string]any{
		"method":  c.Request.Method,
		"path":    c.Request.URL.Path,
		"status":  c.Writer.Status(),
		"latency": time.Since(start).String(),
	}
	if caller, ok := helpers.CallerFrom(c); ok {
		fields["caller_id"] = caller.ID
		fields["role"] = caller.Role
	}
	utils.Info("HTTP Request", fields)
}

// AuthMiddleware resolves the request credential to a caller and stores it on the context.
// Requests without a resolvable credential stop here with 401.
func AuthMiddleware(provider identity.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := credential(c.Request)
		if token == "" {
			utils.JSONError(c, http.StatusUnauthorized, identity.ErrNoCredential, identity.ErrNoCredential.Error())
			c.Abort()
			return
		}

		caller, err := provider.Resolve(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, identity.ErrInvalidCredential) {
				utils.JSONError(c, http.StatusUnauthorized, identity.ErrInvalidCredential, identity.ErrInvalidCredential.Error())
				utils.Warn("AuthMiddleware: rejected credential", map[string]any{"path": c.Request.URL.Path, "error": err.Error()})
			} else {
				utils.JSONError(c, http.StatusInternalServerError, errors.New("internal server error"), "internal server error")
				utils.Error("AuthMiddleware: identity lookup failed", map[string]any{"path": c.Request.URL.Path, "error": err.Error()})
			}
			c.Abort()
			return
		}

		helpers.SetCaller(c, caller)
		c.Next()
	}
}

// credential reads the x-auth-token header, falling back to an Authorization bearer token
func credential(r *http.Request) string {
	if token := strings.TrimSpace(r.Header.Get(AuthTokenHeader)); token != "" {
		return token
	}
	auth := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(auth) > len("Bearer ") && strings.EqualFold(auth[:len("Bearer ")], "Bearer ") {
		return strings.TrimSpace(auth[len("Bearer "):])
	}
	return ""
}
