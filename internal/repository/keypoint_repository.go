package repository

import (
	"github.com/yukikurage/study-planner-api/internal/database"
	"github.com/yukikurage/study-planner-api/internal/models"
	"gorm.io/gorm"
)

// GormKeyPointRepository is a GORM implementation of KeyPointRepository
type GormKeyPointRepository struct {
	db *gorm.DB
}

// NewKeyPointRepository creates a new KeyPointRepository
func NewKeyPointRepository(db *gorm.DB) KeyPointRepository {
	return &GormKeyPointRepository{db: db}
}

func (r *GormKeyPointRepository) Create(keyPoint *models.KeyPoint) error {
	return translateError(r.db.Create(keyPoint).Error)
}

func (r *GormKeyPointRepository) FindByIDForOwner(id, ownerID uint64) (*models.KeyPoint, error) {
	var keyPoint models.KeyPoint
	if err := r.db.Scopes(database.OwnedBy(ownerID)).First(&keyPoint, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &keyPoint, nil
}

func (r *GormKeyPointRepository) ListByOwner(ownerID uint64) ([]models.KeyPoint, error) {
	keyPoints := []models.KeyPoint{}
	if err := r.db.Scopes(database.OwnedBy(ownerID)).Order("id ASC").Find(&keyPoints).Error; err != nil {
		return nil, translateError(err)
	}
	return keyPoints, nil
}

func (r *GormKeyPointRepository) Delete(id, ownerID uint64) error {
	result := r.db.Scopes(database.OwnedBy(ownerID)).Delete(&models.KeyPoint{}, id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
