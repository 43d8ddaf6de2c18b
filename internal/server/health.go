package server

import (
	"context"
	"net/http"
	"time"

	"crop-auction/utils"

	"github.com/gin-gonic/gin"
)

const healthTimeout = 2 * time.Second

// Pinger reports whether the listing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// healthHandler handles GET /health
func healthHandler(store Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			utils.JSONError(c, http.StatusServiceUnavailable, err, "store unavailable")
			utils.Error("healthHandler: store ping failed", map[string]any{"error": err.Error()})
			return
		}
		utils.JSONResponse(c, http.StatusOK, gin.H{"store": "ok"}, "healthy")
	}
}
