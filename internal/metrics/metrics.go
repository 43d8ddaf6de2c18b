// Package metrics exposes auction outcome counters to Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Bid rejection reasons.
const (
	ReasonTooLow       = "too_low"
	ReasonNotLive      = "not_live"
	ReasonInvalid      = "invalid"
	ReasonConflict     = "conflict"
	ReasonUnauthorized = "unauthorized"
)

// Metrics holds the ledger counters. A nil *Metrics records nothing.
type Metrics struct {
	listingsCreated prometheus.Counter
	listingsSold    prometheus.Counter
	bidsPlaced      prometheus.Counter
	bidsRejected    *prometheus.CounterVec
	gatherer        prometheus.Gatherer
}

// New registers the auction counters on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		listingsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "auction_listings_created_total",
			Help: "Listings created by farmers.",
		}),
		listingsSold: factory.NewCounter(prometheus.CounterOpts{
			Name: "auction_listings_sold_total",
			Help: "Listings whose highest bid was accepted.",
		}),
		bidsPlaced: factory.NewCounter(prometheus.CounterOpts{
			Name: "auction_bids_placed_total",
			Help: "Bids accepted onto a listing.",
		}),
		bidsRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "auction_bids_rejected_total",
			Help: "Bids refused, by reason.",
		}, []string{"reason"}),
		gatherer: reg,
	}
}

func (m *Metrics) ListingCreated() {
	if m == nil {
		return
	}
	m.listingsCreated.Inc()
}

func (m *Metrics) ListingSold() {
	if m == nil {
		return
	}
	m.listingsSold.Inc()
}

func (m *Metrics) BidPlaced() {
	if m == nil {
		return
	}
	m.bidsPlaced.Inc()
}

func (m *Metrics) BidRejected(reason string) {
	if m == nil {
		return
	}
	m.bidsRejected.WithLabelValues(reason).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
