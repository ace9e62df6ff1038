package db

import (
	"context"
	"time"

	"github.com/terraincognita07/cyclecal/internal/models"
	"gorm.io/gorm"
)

type CycleRepository struct {
	database *gorm.DB
}

func NewCycleRepository(database *gorm.DB) *CycleRepository {
	return &CycleRepository{database: database}
}

func (repo *CycleRepository) ListByUser(ctx context.Context, userID uint) ([]models.CycleRecord, error) {
	records := make([]models.CycleRecord, 0)
	if err := repo.database.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("start_date ASC, id ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (repo *CycleRepository) Create(ctx context.Context, record *models.CycleRecord) error {
	return repo.database.WithContext(ctx).Create(record).Error
}

func (repo *CycleRepository) DeleteByUserAndRange(ctx context.Context, userID uint, from time.Time, to time.Time) (int64, error) {
	result := repo.database.WithContext(ctx).
		Where("user_id = ? AND start_date >= ? AND start_date < ?", userID, from, to).
		Delete(&models.CycleRecord{})
	return result.RowsAffected, result.Error
}

func (repo *CycleRepository) DeleteByUserAndID(ctx context.Context, userID uint, id uint) (int64, error) {
	result := repo.database.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		Delete(&models.CycleRecord{})
	return result.RowsAffected, result.Error
}

func (repo *CycleRepository) DeleteByUser(ctx context.Context, userID uint) (int64, error) {
	result := repo.database.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.CycleRecord{})
	return result.RowsAffected, result.Error
}
