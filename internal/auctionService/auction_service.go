package auction

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"crop-auction/internal/auctionerrors"
	"crop-auction/internal/metrics"
	"crop-auction/internal/models"
	"crop-auction/internal/money"
	"crop-auction/internal/policy"
	"crop-auction/internal/repository"
	"crop-auction/utils"
)

// defaultMaxAttempts bounds read-validate-write retries after a concurrent modification.
const defaultMaxAttempts = 3

// maxDurationHours caps daily_rush durations at one year.
const maxDurationHours = 24 * 365

// CreateListingInput carries the farmer-supplied listing fields.
// EndTime is used unless AuctionType is daily_rush, in which case DurationHours is.
type CreateListingInput struct {
	CropName      string
	Quantity      float64
	BasePrice     float64
	ImageURL      string
	Location      string
	Variety       string
	MinIncrement  float64
	QualityGrade  string
	Moisture      string
	AuctionType   models.AuctionType
	DurationHours int
	EndTime       time.Time
}

// Ledger owns listings and their bids and drives the auction state machine
type Ledger struct {
	repo        repository.AuctionDB
	metrics     *metrics.Metrics
	now         func() time.Time
	maxAttempts int
}

type Option func(*Ledger)

// WithMetrics records ledger outcomes on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(l *Ledger) {
		l.metrics = m
	}
}

// WithClock replaces the wall clock used for start times and bid timestamps.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		l.now = now
	}
}

// NewLedger creates a new Ledger instance
func NewLedger(repo repository.AuctionDB, opts ...Option) *Ledger {
	l := &Ledger{
		repo:        repo,
		now:         time.Now,
		maxAttempts: defaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// CreateListing validates the input and stores a new live listing owned by the caller
func (l *Ledger) CreateListing(ctx context.Context, caller models.Caller, in CreateListingInput) (models.Listing, error) {
	if err := policy.Authorize(policy.CreateListing, caller, nil); err != nil {
		return models.Listing{}, fmt.Errorf("service: %w", err)
	}
	if err := validateListingInput(in); err != nil {
		return models.Listing{}, err
	}

	start := l.now().UTC()
	end := in.EndTime.UTC()
	if in.AuctionType == models.AuctionDailyRush {
		end = start.Add(time.Duration(in.DurationHours) * time.Hour)
	} else if !end.After(start) {
		return models.Listing{}, fmt.Errorf("service: %w - endTime must be in the future", auctionerrors.ErrValidation)
	}

	listing := models.Listing{
		ID:                utils.GenerateID(),
		CropName:          strings.TrimSpace(in.CropName),
		Quantity:          in.Quantity,
		BasePrice:         in.BasePrice,
		ImageURL:          in.ImageURL,
		Location:          strings.TrimSpace(in.Location),
		Variety:           in.Variety,
		MinIncrement:      in.MinIncrement,
		QualityGrade:      in.QualityGrade,
		Moisture:          in.Moisture,
		FarmerID:          caller.ID,
		AuctionType:       in.AuctionType,
		Status:            models.StatusLive,
		StartTime:         start,
		EndTime:           end,
		CurrentHighestBid: in.BasePrice,
		Bids:              []models.Bid{},
		CreatedAt:         start,
		UpdatedAt:         start,
	}

	created, err := l.repo.CreateListing(ctx, listing)
	if err != nil {
		return models.Listing{}, fmt.Errorf("service: failed to create listing for farmer %s: %w", caller.ID, err)
	}

	l.metrics.ListingCreated()
	return created, nil
}

// validateListingInput checks required fields and the auction-type-specific timing input
func validateListingInput(in CreateListingInput) error {
	var missing []string
	if strings.TrimSpace(in.CropName) == "" {
		missing = append(missing, "cropName")
	}
	if strings.TrimSpace(in.Location) == "" {
		missing = append(missing, "location")
	}
	if in.Quantity <= 0 {
		missing = append(missing, "quantity")
	}
	if !money.Positive(in.BasePrice) {
		missing = append(missing, "basePrice")
	}
	if !money.Positive(in.MinIncrement) {
		missing = append(missing, "minIncrement")
	}
	if !models.ValidAuctionType(in.AuctionType) {
		missing = append(missing, "auctionType")
	}
	if len(missing) > 0 {
		return fmt.Errorf("service: %w - missing or invalid fields: %s", auctionerrors.ErrValidation, strings.Join(missing, ", "))
	}

	if in.AuctionType == models.AuctionDailyRush {
		if in.DurationHours <= 0 {
			return fmt.Errorf("service: %w - daily_rush auctions need a positive duration in hours", auctionerrors.ErrValidation)
		}
		if in.DurationHours > maxDurationHours {
			return fmt.Errorf("service: %w - duration may not exceed %d hours", auctionerrors.ErrValidation, maxDurationHours)
		}
		return nil
	}
	if in.EndTime.IsZero() {
		return fmt.Errorf("service: %w - endTime is required for %s auctions", auctionerrors.ErrValidation, in.AuctionType)
	}
	return nil
}

// ListLiveListings returns the live listings matching filter, newest first
func (l *Ledger) ListLiveListings(ctx context.Context, caller models.Caller, filter models.ListingFilter) ([]models.Listing, error) {
	if err := policy.Authorize(policy.ListLiveListings, caller, nil); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if filter.AuctionType != "" && !models.ValidAuctionType(filter.AuctionType) {
		return nil, fmt.Errorf("service: %w - unknown auctionType %q", auctionerrors.ErrValidation, filter.AuctionType)
	}
	filter.CropName = strings.TrimSpace(filter.CropName)
	filter.Location = strings.TrimSpace(filter.Location)

	listings, err := l.repo.ListLiveListings(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list live listings: %w", err)
	}
	return listings, nil
}

// ListOwnListings returns every listing created by the calling farmer, newest first
func (l *Ledger) ListOwnListings(ctx context.Context, caller models.Caller) ([]models.Listing, error) {
	if err := policy.Authorize(policy.ListOwnListings, caller, nil); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}

	listings, err := l.repo.ListListingsByFarmer(ctx, caller.ID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list listings for farmer %s: %w", caller.ID, err)
	}
	return listings, nil
}

// GetListing returns a single listing
func (l *Ledger) GetListing(ctx context.Context, caller models.Caller, listingID string) (models.Listing, error) {
	if err := policy.Authorize(policy.ViewListing, caller, nil); err != nil {
		return models.Listing{}, fmt.Errorf("service: %w", err)
	}
	if listingID == "" {
		return models.Listing{}, fmt.Errorf("service: %w - empty listing ID", auctionerrors.ErrValidation)
	}

	listing, err := l.repo.GetListing(ctx, listingID)
	if err != nil {
		return models.Listing{}, fmt.Errorf("service: failed to get listing %s: %w", listingID, err)
	}
	return listing, nil
}

// PlaceBid records a trader's bid if it beats the current highest bid of a live listing
func (l *Ledger) PlaceBid(ctx context.Context, caller models.Caller, listingID string, amount float64) (models.Listing, error) {
	if err := policy.Authorize(policy.PlaceBid, caller, nil); err != nil {
		l.metrics.BidRejected(metrics.ReasonUnauthorized)
		return models.Listing{}, fmt.Errorf("service: %w", err)
	}
	if listingID == "" {
		l.metrics.BidRejected(metrics.ReasonInvalid)
		return models.Listing{}, fmt.Errorf("service: %w - empty listing ID", auctionerrors.ErrValidation)
	}
	updated, err := l.mutate(ctx, listingID, func(listing *models.Listing) error {
		if listing.Status != models.StatusLive {
			l.metrics.BidRejected(metrics.ReasonNotLive)
			return fmt.Errorf("service: %w - listing %s is %s", auctionerrors.ErrInvalidState, listing.ID, listing.Status)
		}
		if !money.Exceeds(amount, listing.CurrentHighestBid) {
			l.metrics.BidRejected(metrics.ReasonTooLow)
			return fmt.Errorf("service: %w", &auctionerrors.InvalidBidError{
				Amount:            amount,
				CurrentHighestBid: listing.CurrentHighestBid,
			})
		}

		bid := models.Bid{
			Amount:    amount,
			Bidder:    caller.ID,
			Timestamp: l.now().UTC(),
		}
		listing.Bids = append([]models.Bid{bid}, listing.Bids...)
		listing.CurrentHighestBid = amount
		return nil
	})
	if err != nil {
		if errors.Is(err, auctionerrors.ErrConflict) {
			l.metrics.BidRejected(metrics.ReasonConflict)
		}
		return models.Listing{}, fmt.Errorf("service: failed to place bid on listing %s by trader %s: %w", listingID, caller.ID, err)
	}

	l.metrics.BidPlaced()
	return updated, nil
}

// AcceptHighestBid closes a live listing as sold to its current highest bidder
func (l *Ledger) AcceptHighestBid(ctx context.Context, caller models.Caller, listingID string) (models.Listing, error) {
	if err := policy.Authorize(policy.AcceptBid, caller, nil); err != nil {
		return models.Listing{}, fmt.Errorf("service: %w", err)
	}
	if listingID == "" {
		return models.Listing{}, fmt.Errorf("service: %w - empty listing ID", auctionerrors.ErrValidation)
	}

	updated, err := l.mutate(ctx, listingID, func(listing *models.Listing) error {
		if err := policy.Authorize(policy.AcceptBid, caller, listing); err != nil {
			return err
		}
		if !listing.Status.CanTransitionTo(models.StatusSold) {
			return fmt.Errorf("service: %w - auction not live (status %s)", auctionerrors.ErrInvalidState, listing.Status)
		}
		if len(listing.Bids) == 0 {
			return fmt.Errorf("service: %w - no bids to accept", auctionerrors.ErrInvalidState)
		}
		listing.Status = models.StatusSold
		return nil
	})
	if err != nil {
		return models.Listing{}, fmt.Errorf("service: failed to accept bid on listing %s: %w", listingID, err)
	}

	l.metrics.ListingSold()
	return updated, nil
}

// mutate reads a listing, applies change and writes it back conditionally on the version
// it read. A concurrent write causes a fresh read and re-validation, up to maxAttempts.
func (l *Ledger) mutate(ctx context.Context, listingID string, change func(*models.Listing) error) (models.Listing, error) {
	var lastErr error
	for attempt := 0; attempt < l.maxAttempts; attempt++ {
		listing, err := l.repo.GetListing(ctx, listingID)
		if err != nil {
			return models.Listing{}, err
		}
		if err := change(&listing); err != nil {
			return models.Listing{}, err
		}
		listing.UpdatedAt = l.now().UTC()

		updated, err := l.repo.UpdateListing(ctx, listing)
		if err == nil {
			return updated, nil
		}
		if !errors.Is(err, auctionerrors.ErrConflict) {
			return models.Listing{}, err
		}
		lastErr = err
		utils.Debug("ledger: concurrent update, retrying", map[string]any{
			"listing_id": listingID,
			"attempt":    attempt + 1,
		})
	}
	return models.Listing{}, lastErr
}
