package models

import (
	"strings"
	"time"
)

// Role is the marketplace side a user acts on.
type Role string

const (
	RoleFarmer Role = "farmer"
	RoleTrader Role = "trader"
)

func ValidRole(r Role) bool {
	switch r {
	case RoleFarmer, RoleTrader:
		return true
	default:
		return false
	}
}

// AuctionType controls how a listing's end time is derived.
type AuctionType string

const (
	AuctionNormal    AuctionType = "normal"
	AuctionRealTime  AuctionType = "real-time"
	AuctionDailyRush AuctionType = "daily_rush"
)

func ValidAuctionType(t AuctionType) bool {
	switch t {
	case AuctionNormal, AuctionRealTime, AuctionDailyRush:
		return true
	default:
		return false
	}
}

// ListingStatus is the auction state of a listing.
type ListingStatus string

const (
	StatusPending   ListingStatus = "pending"
	StatusLive      ListingStatus = "live"
	StatusSold      ListingStatus = "sold"
	StatusExpired   ListingStatus = "expired"
	StatusCancelled ListingStatus = "cancelled"
)

func ValidListingStatus(s ListingStatus) bool {
	switch s {
	case StatusPending, StatusLive, StatusSold, StatusExpired, StatusCancelled:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether the auction state machine allows moving from s to next.
// sold, expired and cancelled are terminal.
func (s ListingStatus) CanTransitionTo(next ListingStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusLive
	case StatusLive:
		return next == StatusSold || next == StatusExpired || next == StatusCancelled
	default:
		return false
	}
}

// User represents a marketplace participant. Owned by the identity provider.
type User struct {
	UserID   string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"-"`
	Role     Role   `json:"role"`
}

// Caller is the authenticated identity behind a request.
type Caller struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
}

// Bid represents a trader's accepted offer on a listing
type Bid struct {
	Amount    float64   `json:"amount"`
	Bidder    string    `json:"bidder"`
	Timestamp time.Time `json:"timestamp"`
}

// Listing represents a crop offered for auction. Bids are ordered newest first.
type Listing struct {
	ID                string        `json:"id"`
	CropName          string        `json:"cropName"`
	Quantity          float64       `json:"quantity"`
	BasePrice         float64       `json:"basePrice"`
	ImageURL          string        `json:"imageUrl,omitempty"`
	Location          string        `json:"location"`
	Variety           string        `json:"variety,omitempty"`
	MinIncrement      float64       `json:"minIncrement"`
	QualityGrade      string        `json:"qualityGrade,omitempty"`
	Moisture          string        `json:"moisture,omitempty"`
	FarmerID          string        `json:"farmerId"`
	AuctionType       AuctionType   `json:"auctionType"`
	Status            ListingStatus `json:"status"`
	StartTime         time.Time     `json:"startTime"`
	EndTime           time.Time     `json:"endTime"`
	CurrentHighestBid float64       `json:"currentHighestBid"`
	Bids              []Bid         `json:"bids"`
	CreatedAt         time.Time     `json:"createdAt"`
	UpdatedAt         time.Time     `json:"updatedAt"`
	Version           int64         `json:"-"`
}

// Winner returns the head of the bid list, which is the winning bid once the listing is sold.
func (l Listing) Winner() (Bid, bool) {
	if len(l.Bids) == 0 {
		return Bid{}, false
	}
	return l.Bids[0], true
}

// Clone returns a copy that shares no bid storage with l.
func (l Listing) Clone() Listing {
	c := l
	c.Bids = append(make([]Bid, 0, len(l.Bids)), l.Bids...)
	return c
}

// ListingFilter narrows ListLiveListings. Zero values impose no constraint.
type ListingFilter struct {
	CropName    string
	Location    string
	MaxPrice    float64
	AuctionType AuctionType
}

// Matches reports whether l satisfies every set field of f. Status is not considered.
func (f ListingFilter) Matches(l Listing) bool {
	if f.CropName != "" && !containsFold(l.CropName, f.CropName) {
		return false
	}
	if f.Location != "" && !containsFold(l.Location, f.Location) {
		return false
	}
	if f.MaxPrice > 0 && l.BasePrice > f.MaxPrice {
		return false
	}
	if f.AuctionType != "" && l.AuctionType != f.AuctionType {
		return false
	}
	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
