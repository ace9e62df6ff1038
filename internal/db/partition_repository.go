package db

import (
	"context"

	"github.com/terraincognita07/cyclecal/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PartitionRepository struct {
	database *gorm.DB
}

func NewPartitionRepository(database *gorm.DB) *PartitionRepository {
	return &PartitionRepository{database: database}
}

func (repo *PartitionRepository) LoadPartition(ctx context.Context, key string) (string, bool, error) {
	partition := models.AnnotationPartition{}
	result := repo.database.WithContext(ctx).
		Where("partition_key = ?", key).
		Limit(1).
		Find(&partition)
	if result.Error != nil {
		return "", false, result.Error
	}
	if result.RowsAffected == 0 {
		return "", false, nil
	}
	return partition.Payload, true, nil
}

func (repo *PartitionRepository) SavePartition(ctx context.Context, key string, userID uint, payload string) error {
	partition := models.AnnotationPartition{
		Key:     key,
		UserID:  userID,
		Payload: payload,
	}
	return repo.database.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "partition_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).
		Create(&partition).Error
}

func (repo *PartitionRepository) DeleteByUser(ctx context.Context, userID uint) error {
	return repo.database.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.AnnotationPartition{}).Error
}
