package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/greenstamp/greenstamp/internal/domain"
	"github.com/greenstamp/greenstamp/internal/infra/database/models"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Get(ctx context.Context, id string) (models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, domain.NotFoundError{Resource: "user"}
	}
	return user, err
}

// ListByImpact returns every user ordered by proof count, for the
// eco-actors view.
func (r *UserRepository) ListByImpact(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).Order("total_proofs DESC").Find(&users).Error
	return users, err
}

func (r *UserRepository) ListProofs(ctx context.Context, userID string, limit int) ([]models.Proof, error) {
	var proofs []models.Proof
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&proofs).Error
	return proofs, err
}
