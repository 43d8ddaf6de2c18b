package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()

	m.ListingCreated()
	m.ListingCreated()
	m.BidPlaced()
	m.BidRejected(ReasonTooLow)
	m.BidRejected(ReasonTooLow)
	m.BidRejected(ReasonNotLive)
	m.ListingSold()

	require.Equal(t, 2.0, testutil.ToFloat64(m.listingsCreated))
	require.Equal(t, 1.0, testutil.ToFloat64(m.bidsPlaced))
	require.Equal(t, 2.0, testutil.ToFloat64(m.bidsRejected.WithLabelValues(ReasonTooLow)))
	require.Equal(t, 1.0, testutil.ToFloat64(m.bidsRejected.WithLabelValues(ReasonNotLive)))
	require.Equal(t, 1.0, testutil.ToFloat64(m.listingsSold))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	require.NotPanics(t, func() {
		m.ListingCreated()
		m.ListingSold()
		m.BidPlaced()
		m.BidRejected(ReasonConflict)
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.BidPlaced()

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "auction_bids_placed_total 1")
}
