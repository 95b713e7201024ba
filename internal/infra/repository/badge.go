package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/greenstamp/greenstamp/internal/domain"
	"github.com/greenstamp/greenstamp/internal/infra/database/models"
)

type BadgeRepository struct {
	db *gorm.DB
}

func NewBadgeRepository(db *gorm.DB) *BadgeRepository {
	return &BadgeRepository{db: db}
}

func (r *BadgeRepository) Create(ctx context.Context, badge *models.Badge) error {
	return r.db.WithContext(ctx).Create(badge).Error
}

func (r *BadgeRepository) List(ctx context.Context) ([]models.Badge, error) {
	var badges []models.Badge
	err := r.db.WithContext(ctx).Order("name ASC").Find(&badges).Error
	return badges, err
}

func (r *BadgeRepository) Get(ctx context.Context, id string) (models.Badge, error) {
	var badge models.Badge
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&badge).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Badge{}, domain.NotFoundError{Resource: "badge"}
	}
	return badge, err
}

// Award records a badge for a user. The unique pair index rejects a
// second award of the same badge.
func (r *BadgeRepository) Award(ctx context.Context, award *models.UserBadge) error {
	err := r.db.WithContext(ctx).Create(award).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ConflictError{Resource: "badge award"}
	}
	return err
}

func (r *BadgeRepository) ListByUser(ctx context.Context, userID string) ([]models.UserBadge, error) {
	var awards []models.UserBadge
	err := r.db.WithContext(ctx).
		Preload("Badge").
		Where("user_id = ?", userID).
		Order("awarded_at DESC").
		Find(&awards).Error
	return awards, err
}

// ListByUsers fetches the awards of many users at once so the eco-actors
// view avoids a query per user.
func (r *BadgeRepository) ListByUsers(ctx context.Context, userIDs []string) (map[string][]models.UserBadge, error) {
	if len(userIDs) == 0 {
		return map[string][]models.UserBadge{}, nil
	}

	var awards []models.UserBadge
	err := r.db.WithContext(ctx).
		Preload("Badge").
		Where("user_id IN ?", userIDs).
		Order("awarded_at DESC").
		Find(&awards).Error
	if err != nil {
		return nil, err
	}

	byUser := make(map[string][]models.UserBadge)
	for _, award := range awards {
		byUser[award.UserID] = append(byUser[award.UserID], award)
	}
	return byUser, nil
}
