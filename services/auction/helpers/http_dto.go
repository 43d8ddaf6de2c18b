package helpers

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	auction "crop-auction/internal/auctionService"
	"crop-auction/internal/models"
)

// Hours is a whole number of hours that accepts a JSON number or a numeric string.
// Fractions are truncated.
type Hours int

func (h *Hours) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(strings.Trim(string(b), `"`))
	if s == "" || s == "null" {
		*h = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("duration must be a number of hours, got %s", string(b))
	}
	if math.IsNaN(f) || math.Abs(f) > math.MaxInt32 {
		return fmt.Errorf("duration out of range, got %s", string(b))
	}
	*h = Hours(int(f))
	return nil
}

// Request/Response DTOs
type CreateListingRequest struct {
	CropName     string     `json:"cropName" binding:"required"`
	Quantity     float64    `json:"quantity" binding:"required,gt=0"`
	BasePrice    float64    `json:"basePrice" binding:"required,gt=0"`
	ImageURL     string     `json:"imageUrl"`
	Location     string     `json:"location" binding:"required"`
	Variety      string     `json:"variety"`
	MinIncrement float64    `json:"minIncrement" binding:"required,gt=0"`
	QualityGrade string     `json:"qualityGrade"`
	Moisture     string     `json:"moisture"`
	AuctionType  string     `json:"auctionType" binding:"required,oneof=normal real-time daily_rush"`
	Duration     Hours      `json:"duration"`
	EndTime      *time.Time `json:"endTime"`
}

// ToInput converts the request body into ledger input. Ownership comes from the caller,
// never from the body.
func (r CreateListingRequest) ToInput() auction.CreateListingInput {
	in := auction.CreateListingInput{
		CropName:      r.CropName,
		Quantity:      r.Quantity,
		BasePrice:     r.BasePrice,
		ImageURL:      r.ImageURL,
		Location:      r.Location,
		Variety:       r.Variety,
		MinIncrement:  r.MinIncrement,
		QualityGrade:  r.QualityGrade,
		Moisture:      r.Moisture,
		AuctionType:   models.AuctionType(r.AuctionType),
		DurationHours: int(r.Duration),
	}
	if r.EndTime != nil {
		in.EndTime = *r.EndTime
	}
	return in
}

type ListingQuery struct {
	CropName    string  `form:"cropName"`
	Location    string  `form:"location"`
	MaxPrice    float64 `form:"maxPrice" binding:"omitempty,gte=0"`
	AuctionType string  `form:"auctionType"`
}

func (q ListingQuery) ToFilter() models.ListingFilter {
	return models.ListingFilter{
		CropName:    q.CropName,
		Location:    q.Location,
		MaxPrice:    q.MaxPrice,
		AuctionType: models.AuctionType(q.AuctionType),
	}
}

// PlaceBidRequest only requires the amount to be present. How it compares to the
// current highest bid is decided by the ledger.
type PlaceBidRequest struct {
	Amount *float64 `json:"amount" binding:"required"`
}

type AcceptResponse struct {
	Listing models.Listing `json:"listing"`
	Winner  *models.Bid    `json:"winner"`
}

// InvalidBidData tells a rejected bidder what they have to beat.
type InvalidBidData struct {
	CurrentHighestBid float64 `json:"currentHighestBid"`
}
