package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"crop-auction/internal/auctionerrors"
	"crop-auction/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Supported database drivers for OpenDatabase.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// listingRecord is the table shape of a listing. Bids are embedded as a JSON array.
type listingRecord struct {
	ID                string                          `gorm:"column:id;type:varchar(36);primaryKey"`
	CropName          string                          `gorm:"column:crop_name;not null"`
	Quantity          float64                         `gorm:"column:quantity;not null"`
	BasePrice         float64                         `gorm:"column:base_price;not null"`
	ImageURL          string                          `gorm:"column:image_url"`
	Location          string                          `gorm:"column:location;not null"`
	Variety           string                          `gorm:"column:variety"`
	MinIncrement      float64                         `gorm:"column:min_increment;not null"`
	QualityGrade      string                          `gorm:"column:quality_grade"`
	Moisture          string                          `gorm:"column:moisture"`
	FarmerID          string                          `gorm:"column:farmer_id;not null;index"`
	AuctionType       string                          `gorm:"column:auction_type;type:varchar(20);not null"`
	Status            string                          `gorm:"column:status;type:varchar(20);not null;index"`
	StartTime         time.Time                       `gorm:"column:start_time;not null"`
	EndTime           time.Time                       `gorm:"column:end_time;not null"`
	CurrentHighestBid float64                         `gorm:"column:current_highest_bid;not null"`
	Bids              datatypes.JSONSlice[models.Bid] `gorm:"column:bids"`
	Version           int64                           `gorm:"column:version;not null"`
	CreatedAt         time.Time                       `gorm:"column:created_at;index"`
	UpdatedAt         time.Time                       `gorm:"column:updated_at;autoUpdateTime:false"`
}

func (listingRecord) TableName() string {
	return "listings"
}

func toRecord(l models.Listing) listingRecord {
	bids := make([]models.Bid, len(l.Bids))
	copy(bids, l.Bids)
	return listingRecord{
		ID:                l.ID,
		CropName:          l.CropName,
		Quantity:          l.Quantity,
		BasePrice:         l.BasePrice,
		ImageURL:          l.ImageURL,
		Location:          l.Location,
		Variety:           l.Variety,
		MinIncrement:      l.MinIncrement,
		QualityGrade:      l.QualityGrade,
		Moisture:          l.Moisture,
		FarmerID:          l.FarmerID,
		AuctionType:       string(l.AuctionType),
		Status:            string(l.Status),
		StartTime:         l.StartTime,
		EndTime:           l.EndTime,
		CurrentHighestBid: l.CurrentHighestBid,
		Bids:              datatypes.JSONSlice[models.Bid](bids),
		Version:           l.Version,
		CreatedAt:         l.CreatedAt,
		UpdatedAt:         l.UpdatedAt,
	}
}

func (rec listingRecord) toListing() models.Listing {
	bids := make([]models.Bid, len(rec.Bids))
	copy(bids, rec.Bids)
	return models.Listing{
		ID:                rec.ID,
		CropName:          rec.CropName,
		Quantity:          rec.Quantity,
		BasePrice:         rec.BasePrice,
		ImageURL:          rec.ImageURL,
		Location:          rec.Location,
		Variety:           rec.Variety,
		MinIncrement:      rec.MinIncrement,
		QualityGrade:      rec.QualityGrade,
		Moisture:          rec.Moisture,
		FarmerID:          rec.FarmerID,
		AuctionType:       models.AuctionType(rec.AuctionType),
		Status:            models.ListingStatus(rec.Status),
		StartTime:         rec.StartTime.UTC(),
		EndTime:           rec.EndTime.UTC(),
		CurrentHighestBid: rec.CurrentHighestBid,
		Bids:              bids,
		Version:           rec.Version,
		CreatedAt:         rec.CreatedAt.UTC(),
		UpdatedAt:         rec.UpdatedAt.UTC(),
	}
}

// OpenDatabase opens a GORM DB for the given driver. For sqlite, dsn is a file path or
// ":memory:"; the pool is pinned to one connection so every caller sees the same database.
func OpenDatabase(driver, dsn string) (*gorm.DB, error) {
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)}

	switch driver {
	case DriverSQLite:
		db, err := gorm.Open(sqlite.Open(dsn), cfg)
		if err != nil {
			return nil, fmt.Errorf("open sqlite %s: %w", dsn, err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("open sqlite %s: %w", dsn, err)
		}
		sqlDB.SetMaxOpenConns(1)
		return db, nil
	case DriverPostgres:
		// PreferSimpleProtocol avoids prepared statement clashes behind poolers such as PgBouncer.
		db, err := gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), cfg)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		return db, nil
	default:
		return nil, fmt.Errorf("open database: unsupported driver %q", driver)
	}
}

// GormRepo is the SQL implementation of AuctionDB
type GormRepo struct {
	db *gorm.DB
}

// NewGormRepo migrates the listings table and returns a repository over db
func NewGormRepo(db *gorm.DB) (*GormRepo, error) {
	if err := db.AutoMigrate(&listingRecord{}); err != nil {
		return nil, fmt.Errorf("migrate listings: %w", err)
	}
	return &GormRepo{db: db}, nil
}

func (r *GormRepo) CreateListing(ctx context.Context, listing models.Listing) (models.Listing, error) {
	if listing.ID == "" {
		return models.Listing{}, fmt.Errorf("create listing: %w - empty listing ID", auctionerrors.ErrValidation)
	}

	rec := toRecord(listing)
	rec.Version = 1
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return models.Listing{}, fmt.Errorf("create listing %s: %w", listing.ID, err)
	}
	return rec.toListing(), nil
}

func (r *GormRepo) GetListing(ctx context.Context, id string) (models.Listing, error) {
	var rec listingRecord
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Listing{}, fmt.Errorf("get listing %s: %w", id, auctionerrors.ErrListingNotFound)
		}
		return models.Listing{}, fmt.Errorf("get listing %s: %w", id, err)
	}
	return rec.toListing(), nil
}

func (r *GormRepo) ListLiveListings(ctx context.Context, filter models.ListingFilter) ([]models.Listing, error) {
	q := r.db.WithContext(ctx).Where("status = ?", string(models.StatusLive))
	if filter.CropName != "" {
		q = q.Where(`LOWER(crop_name) LIKE ? ESCAPE '\'`, likePattern(filter.CropName))
	}
	if filter.Location != "" {
		q = q.Where(`LOWER(location) LIKE ? ESCAPE '\'`, likePattern(filter.Location))
	}
	if filter.MaxPrice > 0 {
		q = q.Where("base_price <= ?", filter.MaxPrice)
	}
	if filter.AuctionType != "" {
		q = q.Where("auction_type = ?", string(filter.AuctionType))
	}

	var recs []listingRecord
	if err := q.Order("created_at DESC").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list live listings: %w", err)
	}
	return toListings(recs), nil
}

func (r *GormRepo) ListListingsByFarmer(ctx context.Context, farmerID string) ([]models.Listing, error) {
	var recs []listingRecord
	if err := r.db.WithContext(ctx).Where("farmer_id = ?", farmerID).Order("created_at DESC").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list listings for farmer %s: %w", farmerID, err)
	}
	return toListings(recs), nil
}

func (r *GormRepo) UpdateListing(ctx context.Context, listing models.Listing) (models.Listing, error) {
	rec := toRecord(listing)
	rec.Version = listing.Version + 1

	res := r.db.WithContext(ctx).
		Model(&listingRecord{ID: listing.ID}).
		Where("version = ?", listing.Version).
		Select("*").
		Omit("id", "farmer_id", "created_at").
		Updates(rec)
	if res.Error != nil {
		return models.Listing{}, fmt.Errorf("update listing %s: %w", listing.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&listingRecord{}).Where("id = ?", listing.ID).Count(&count).Error; err != nil {
			return models.Listing{}, fmt.Errorf("update listing %s: %w", listing.ID, err)
		}
		if count == 0 {
			return models.Listing{}, fmt.Errorf("update listing %s: %w", listing.ID, auctionerrors.ErrListingNotFound)
		}
		return models.Listing{}, fmt.Errorf("update listing %s (version %d): %w", listing.ID, listing.Version, auctionerrors.ErrConflict)
	}

	return rec.toListing(), nil
}

func (r *GormRepo) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (r *GormRepo) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func toListings(recs []listingRecord) []models.Listing {
	listings := make([]models.Listing, 0, len(recs))
	for _, rec := range recs {
		listings = append(listings, rec.toListing())
	}
	return listings
}

// likePattern lower-cases s, escapes LIKE wildcards and wraps it for a substring match.
func likePattern(s string) string {
	s = strings.ToLower(s)
	s = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
	return "%" + s + "%"
}
