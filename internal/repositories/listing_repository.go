package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"h2grid/internal/apperr"
	"h2grid/internal/models"
)

var errListingNotFound = apperr.NotFound("Marketplace item not found")

type ListingRepository struct {
	db *gorm.DB
}

func NewListingRepository(db *gorm.DB) *ListingRepository {
	return &ListingRepository{db: db}
}

func (r *ListingRepository) Create(ctx context.Context, listing *models.Listing) error {
	if err := r.db.WithContext(ctx).Create(listing).Error; err != nil {
		return fmt.Errorf("failed to create listing: %w", err)
	}
	return nil
}

// List returns every listing, newest first.
func (r *ListingRepository) List(ctx context.Context) ([]models.Listing, error) {
	listings := []models.Listing{}
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&listings).Error; err != nil {
		return nil, fmt.Errorf("failed to list listings: %w", err)
	}
	return listings, nil
}

func (r *ListingRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Listing, error) {
	var listing models.Listing
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&listing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errListingNotFound
		}
		return nil, fmt.Errorf("failed to find listing: %w", err)
	}
	return &listing, nil
}

// Update applies the column map to one listing and returns the stored row.
func (r *ListingRepository) Update(ctx context.Context, id uuid.UUID, changes map[string]any) (*models.Listing, error) {
	res := r.db.WithContext(ctx).Model(&models.Listing{}).Where("id = ?", id).Updates(changes)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update listing: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, errListingNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *ListingRepository) Analytics(ctx context.Context) (*models.MarketplaceAnalytics, error) {
	db := r.db.WithContext(ctx).Model(&models.Listing{})
	out := &models.MarketplaceAnalytics{CategoryBreakdown: []models.CategoryCount{}}

	if err := db.Count(&out.TotalItems).Error; err != nil {
		return nil, fmt.Errorf("failed to count listings: %w", err)
	}

	if err := r.db.WithContext(ctx).Model(&models.Listing{}).
		Select("COALESCE(SUM(price * quantity), 0)").
		Scan(&out.TotalValue).Error; err != nil {
		return nil, fmt.Errorf("failed to sum listing value: %w", err)
	}

	if err := r.db.WithContext(ctx).Model(&models.Listing{}).
		Select("category, COUNT(*) AS count").
		Group("category").
		Order("category").
		Scan(&out.CategoryBreakdown).Error; err != nil {
		return nil, fmt.Errorf("failed to group listings: %w", err)
	}

	return out, nil
}
