package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"crop-auction/internal/auctionerrors"
	"crop-auction/internal/models"
)

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=repository

// AuctionDB defines the listing storage interface for the auction system.
// Each listing, its bids included, is the unit of mutation.
type AuctionDB interface {
	// CreateListing stores a new listing and returns it with its initial version.
	CreateListing(ctx context.Context, listing models.Listing) (models.Listing, error)
	GetListing(ctx context.Context, id string) (models.Listing, error)
	// ListLiveListings returns live listings matching filter, newest first.
	ListLiveListings(ctx context.Context, filter models.ListingFilter) ([]models.Listing, error)
	// ListListingsByFarmer returns every listing owned by farmerID, newest first.
	ListListingsByFarmer(ctx context.Context, farmerID string) ([]models.Listing, error)
	// UpdateListing replaces the stored listing only if its version still equals
	// listing.Version, returning ErrConflict otherwise. The returned listing carries
	// the bumped version.
	UpdateListing(ctx context.Context, listing models.Listing) (models.Listing, error)
	Ping(ctx context.Context) error
	Close() error
}

// MemoryRepo is a concurrency-safe in-memory implementation of AuctionDB
type MemoryRepo struct {
	mu       sync.RWMutex
	listings map[string]models.Listing // key: listingID -> value: listing
	byFarmer map[string][]string       // key: farmerID -> value: listingIDs in insertion order
	order    []string                  // listingIDs in insertion order
}

// NewMemoryRepo creates a new in-memory repository instance
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		listings: make(map[string]models.Listing),
		byFarmer: make(map[string][]string),
	}
}

// CreateListing stores a new listing
func (r *MemoryRepo) CreateListing(_ context.Context, listing models.Listing) (models.Listing, error) {
	if listing.ID == "" {
		return models.Listing{}, fmt.Errorf("create listing: %w - empty listing ID", auctionerrors.ErrValidation)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.listings[listing.ID]; exists {
		return models.Listing{}, fmt.Errorf("create listing %s: duplicate id", listing.ID)
	}

	stored := listing.Clone()
	stored.Version = 1
	r.listings[stored.ID] = stored
	r.order = append(r.order, stored.ID)
	r.byFarmer[stored.FarmerID] = append(r.byFarmer[stored.FarmerID], stored.ID)

	return stored.Clone(), nil
}

// GetListing returns a copy of the listing with the given id
func (r *MemoryRepo) GetListing(_ context.Context, id string) (models.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	listing, ok := r.listings[id]
	if !ok {
		return models.Listing{}, fmt.Errorf("get listing %s: %w", id, auctionerrors.ErrListingNotFound)
	}
	return listing.Clone(), nil
}

// ListLiveListings returns all live listings matching the filter
func (r *MemoryRepo) ListLiveListings(_ context.Context, filter models.ListingFilter) ([]models.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	listings := make([]models.Listing, 0)
	for i := len(r.order) - 1; i >= 0; i-- {
		l := r.listings[r.order[i]]
		if l.Status == models.StatusLive && filter.Matches(l) {
			listings = append(listings, l.Clone())
		}
	}
	sortNewestFirst(listings)
	return listings, nil
}

// ListListingsByFarmer returns all listings created by the farmer
func (r *MemoryRepo) ListListingsByFarmer(_ context.Context, farmerID string) ([]models.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.byFarmer[farmerID]
	listings := make([]models.Listing, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		listings = append(listings, r.listings[ids[i]].Clone())
	}
	sortNewestFirst(listings)
	return listings, nil
}

// UpdateListing replaces a listing if nobody changed it since it was read
func (r *MemoryRepo) UpdateListing(_ context.Context, listing models.Listing) (models.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.listings[listing.ID]
	if !ok {
		return models.Listing{}, fmt.Errorf("update listing %s: %w", listing.ID, auctionerrors.ErrListingNotFound)
	}
	if current.Version != listing.Version {
		return models.Listing{}, fmt.Errorf("update listing %s (version %d, stored %d): %w",
			listing.ID, listing.Version, current.Version, auctionerrors.ErrConflict)
	}

	stored := listing.Clone()
	stored.FarmerID = current.FarmerID
	stored.CreatedAt = current.CreatedAt
	stored.Version = current.Version + 1
	r.listings[stored.ID] = stored

	return stored.Clone(), nil
}

func (r *MemoryRepo) Ping(context.Context) error { return nil }

func (r *MemoryRepo) Close() error { return nil }

// AddListing adds a listing to the repository as-is. This method is intended for tests only.
func (r *MemoryRepo) AddListing(listing models.Listing) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.listings[listing.ID]; !exists {
		r.order = append(r.order, listing.ID)
		r.byFarmer[listing.FarmerID] = append(r.byFarmer[listing.FarmerID], listing.ID)
	}
	r.listings[listing.ID] = listing.Clone()
}

func sortNewestFirst(listings []models.Listing) {
	sort.SliceStable(listings, func(i, j int) bool {
		return listings[i].CreatedAt.After(listings[j].CreatedAt)
	})
}
