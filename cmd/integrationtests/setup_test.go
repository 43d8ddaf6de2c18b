package integrationtests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	auction "crop-auction/internal/auctionService"
	"crop-auction/internal/identity"
	"crop-auction/internal/metrics"
	model "crop-auction/internal/models"
	"crop-auction/internal/repository"
	"crop-auction/internal/server"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

// TestApp is a fully wired router backed by a real store and a miniredis session store.
type TestApp struct {
	Router *gin.Engine
	Repo   repository.AuctionDB
	rdb    *redis.Client
}

// stores lists the store drivers every scenario runs against.
var stores = []string{repository.DriverSQLite, "memory"}

// SetupTestApp initializes the router with the given store for integration testing.
func SetupTestApp(t *testing.T, store string) *TestApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var repo repository.AuctionDB
	switch store {
	case repository.DriverSQLite:
		db, err := repository.OpenDatabase(repository.DriverSQLite, ":memory:")
		require.NoError(t, err)
		gormRepo, err := repository.NewGormRepo(db)
		require.NoError(t, err)
		repo = gormRepo
	default:
		repo = repository.NewMemoryRepo()
	}
	t.Cleanup(func() { _ = repo.Close() })

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	m := metrics.New()
	ledger := auction.NewLedger(repo, auction.WithMetrics(m))
	router := server.SetupRouter(ledger, identity.NewRedisSessionProvider(rdb, ""), repo, m)

	return &TestApp{Router: router, Repo: repo, rdb: rdb}
}

// forEachStore runs fn against a fresh app per store driver.
func forEachStore(t *testing.T, fn func(t *testing.T, app *TestApp)) {
	for _, store := range stores {
		store := store
		t.Run(store, func(t *testing.T) {
			fn(t, SetupTestApp(t, store))
		})
	}
}

// Login stores a session for a new user with role and returns its token.
func (a *TestApp) Login(t *testing.T, id string, role model.Role) string {
	t.Helper()
	token := uuid.NewString()
	caller := model.Caller{ID: id, Role: role}
	require.NoError(t, identity.StoreSession(context.Background(), a.rdb, identity.DefaultSessionPrefix, token, caller, time.Hour))
	return token
}

// ExecuteRequestAndParse executes an HTTP request on the app router as the holder of token
// and parses the response envelope.
func (a *TestApp) ExecuteRequestAndParse(t *testing.T, method, url, token string, body any) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	var reqBody []byte
	var err error
	switch v := body.(type) {
	case nil:
	case string:
		reqBody = []byte(v)
	default:
		reqBody, err = json.Marshal(v)
		require.NoError(t, err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(server.AuthTokenHeader, token)
	}
	a.Router.ServeHTTP(w, req)

	var resp map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	}
	return resp, w
}

// CreateListing posts body as the farmer holding token and returns the created listing id.
func (a *TestApp) CreateListing(t *testing.T, token string, body map[string]any) string {
	t.Helper()
	resp, w := a.ExecuteRequestAndParse(t, "POST", "/api/listings", token, body)
	require.Equal(t, 201, w.Code, w.Body.String())
	return resp["data"].(map[string]any)["id"].(string)
}

func listingBody(cropName string, basePrice float64) map[string]any {
	return map[string]any{
		"cropName":     cropName,
		"quantity":     10,
		"basePrice":    basePrice,
		"location":     "Indore",
		"variety":      "Lokwan",
		"minIncrement": 50,
		"qualityGrade": "A",
		"moisture":     "12%",
		"auctionType":  "normal",
		"endTime":      time.Now().UTC().Add(48 * time.Hour).Format(time.RFC3339),
	}
}
