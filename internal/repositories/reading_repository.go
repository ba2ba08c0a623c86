package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"h2grid/internal/models"
)

type ReadingRepository struct {
	db *gorm.DB
}

func NewReadingRepository(db *gorm.DB) *ReadingRepository {
	return &ReadingRepository{db: db}
}

func (r *ReadingRepository) CreateWind(ctx context.Context, reading *models.WindReading) error {
	if err := r.db.WithContext(ctx).Create(reading).Error; err != nil {
		return fmt.Errorf("failed to save wind reading: %w", err)
	}
	return nil
}

func (r *ReadingRepository) CreateSolar(ctx context.Context, reading *models.SolarReading) error {
	if err := r.db.WithContext(ctx).Create(reading).Error; err != nil {
		return fmt.Errorf("failed to save solar reading: %w", err)
	}
	return nil
}

func (r *ReadingRepository) ListWind(ctx context.Context) ([]models.WindReading, error) {
	readings := []models.WindReading{}
	if err := r.db.WithContext(ctx).Order("created_at").Find(&readings).Error; err != nil {
		return nil, fmt.Errorf("failed to list wind readings: %w", err)
	}
	return readings, nil
}

func (r *ReadingRepository) ListSolar(ctx context.Context) ([]models.SolarReading, error) {
	readings := []models.SolarReading{}
	if err := r.db.WithContext(ctx).Order("created_at").Find(&readings).Error; err != nil {
		return nil, fmt.Errorf("failed to list solar readings: %w", err)
	}
	return readings, nil
}

// ImportBatch inserts both sets in one transaction so a failed import leaves
// nothing behind.
func (r *ReadingRepository) ImportBatch(ctx context.Context, wind []models.WindReading, solar []models.SolarReading) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(wind) > 0 {
			if err := tx.CreateInBatches(wind, 500).Error; err != nil {
				return fmt.Errorf("failed to import wind readings: %w", err)
			}
		}
		if len(solar) > 0 {
			if err := tx.CreateInBatches(solar, 500).Error; err != nil {
				return fmt.Errorf("failed to import solar readings: %w", err)
			}
		}
		return nil
	})
}
