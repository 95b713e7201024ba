package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/greenstamp/greenstamp/internal/domain"
	"github.com/greenstamp/greenstamp/internal/infra/database/models"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.WithContext(ctx).Order("total_proofs DESC").Find(&categories).Error
	return categories, err
}

// ListNames returns the distinct category names in stable order, for the
// reconciliation pass.
func (r *CategoryRepository) ListNames(ctx context.Context) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).Model(&models.Category{}).
		Order("name ASC").
		Pluck("name", &names).Error
	return names, err
}

func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	err := r.db.WithContext(ctx).Create(category).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ConflictError{Resource: "category"}
	}
	return err
}
