package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/greenstamp/greenstamp/internal/domain"
	"github.com/greenstamp/greenstamp/internal/infra/database/models"
)

type NGORepository struct {
	db *gorm.DB
}

func NewNGORepository(db *gorm.DB) *NGORepository {
	return &NGORepository{db: db}
}

func (r *NGORepository) List(ctx context.Context, verified *bool, limit, offset int) ([]models.NGO, int64, error) {

	query := r.db.WithContext(ctx).Model(&models.NGO{})
	if verified != nil {
		query = query.Where("is_verified = ?", *verified)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ngos []models.NGO
	err := query.
		Order("total_proofs DESC").
		Limit(limit).
		Offset(offset).
		Find(&ngos).Error
	if err != nil {
		return nil, 0, err
	}

	return ngos, total, nil
}

// Get loads an NGO with its members and latest 10 proofs.
func (r *NGORepository) Get(ctx context.Context, id string) (models.NGO, error) {
	var ngo models.NGO
	err := r.db.WithContext(ctx).
		Preload("Members", func(db *gorm.DB) *gorm.DB {
			return db.Order("joined_at DESC")
		}).
		Preload("Members.User").
		Preload("Proofs", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC").Limit(10)
		}).
		Where("id = ?", id).
		Take(&ngo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NGO{}, domain.NotFoundError{Resource: "ngo"}
	}
	return ngo, err
}

func (r *NGORepository) Create(ctx context.Context, ngo *models.NGO) error {
	return r.db.WithContext(ctx).Create(ngo).Error
}

func (r *NGORepository) Update(ctx context.Context, id string, fields map[string]any) (models.NGO, error) {
	result := r.db.WithContext(ctx).Model(&models.NGO{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return models.NGO{}, result.Error
	}
	if result.RowsAffected == 0 {
		return models.NGO{}, domain.NotFoundError{Resource: "ngo"}
	}

	var ngo models.NGO
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&ngo).Error
	return ngo, err
}

func (r *NGORepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.NGO{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundError{Resource: "ngo"}
	}
	return nil
}
