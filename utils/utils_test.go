package utils

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestGenerateID(t *testing.T) {
	a, b := GenerateID(), GenerateID()
	require.NotEqual(t, a, b)
	require.True(t, IsID(a))
	require.False(t, IsID("listing-1"))
}

func TestSetLogLevel(t *testing.T) {
	require.NoError(t, SetLogLevel("debug"))
	require.NoError(t, SetLogLevel("info"))
	require.Error(t, SetLogLevel("loud"))
}

func TestLoggerWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	SetLogOutput(&buf)
	defer SetLogOutput(os.Stdout)

	Info("listing created", map[string]any{"listing_id": "l1"})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "listing created", entry["msg"])
	require.Equal(t, "l1", entry["listing_id"])
}

func TestJSONErrorWithData(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	JSONErrorWithData(c, http.StatusBadRequest, errors.New("bid too low"), "invalid bid", gin.H{"currentHighestBid": 1000.0})

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "invalid bid", body["message"])
	require.Equal(t, "bid too low", body["error"])
	require.Equal(t, 1000.0, body["data"].(map[string]any)["currentHighestBid"])
}
