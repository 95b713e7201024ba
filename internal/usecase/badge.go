package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/greenstamp/greenstamp/internal/domain"
	"github.com/greenstamp/greenstamp/internal/infra/database/models"
)

type BadgeCreateInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
}

type BadgeAwardInput struct {
	UserID    string `json:"userId"`
	BadgeID   string `json:"badgeId"`
	AwardedBy string `json:"awardedBy"`
}

type BadgeUsecase struct {
	badges BadgeRepository
	users  UserRepository
}

func NewBadgeUsecase(badges BadgeRepository, users UserRepository) *BadgeUsecase {
	return &BadgeUsecase{badges: badges, users: users}
}

func (uc *BadgeUsecase) Create(ctx context.Context, input BadgeCreateInput) (models.Badge, error) {
	if input.Name == "" {
		return models.Badge{}, domain.ValidationError{Message: "name is required"}
	}

	badge := models.Badge{
		ID:          uuid.New().String(),
		Name:        input.Name,
		Description: input.Description,
		Icon:        input.Icon,
		Color:       input.Color,
	}
	if err := uc.badges.Create(ctx, &badge); err != nil {
		return models.Badge{}, err
	}
	return badge, nil
}

func (uc *BadgeUsecase) List(ctx context.Context) ([]models.Badge, error) {
	return uc.badges.List(ctx)
}

// Award grants a badge to a user. Both sides must exist, and a user can
// hold each badge at most once.
func (uc *BadgeUsecase) Award(ctx context.Context, input BadgeAwardInput) (models.UserBadge, error) {
	if input.UserID == "" || input.BadgeID == "" {
		return models.UserBadge{}, domain.ValidationError{Message: "userId and badgeId are required"}
	}

	if input.AwardedBy == "" {
		input.AwardedBy = "Sponsor Dashboard"
	}

	if _, err := uc.users.Get(ctx, input.UserID); err != nil {
		return models.UserBadge{}, err
	}
	badge, err := uc.badges.Get(ctx, input.BadgeID)
	if err != nil {
		return models.UserBadge{}, err
	}

	award := models.UserBadge{
		ID:        uuid.New().String(),
		UserID:    input.UserID,
		BadgeID:   input.BadgeID,
		AwardedAt: time.Now(),
		AwardedBy: input.AwardedBy,
	}
	if err := uc.badges.Award(ctx, &award); err != nil {
		return models.UserBadge{}, err
	}
	award.Badge = badge
	return award, nil
}

func (uc *BadgeUsecase) ListForUser(ctx context.Context, userID string) ([]models.UserBadge, error) {
	if _, err := uc.users.Get(ctx, userID); err != nil {
		return nil, err
	}
	return uc.badges.ListByUser(ctx, userID)
}
