package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/greenstamp/greenstamp/internal/domain"
	"github.com/greenstamp/greenstamp/internal/infra/database/models"
)

type CategoryCreateInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
}

type CategoryUsecase struct {
	categories CategoryRepository
}

func NewCategoryUsecase(categories CategoryRepository) *CategoryUsecase {
	return &CategoryUsecase{categories: categories}
}

func (uc *CategoryUsecase) List(ctx context.Context) ([]models.Category, error) {
	return uc.categories.List(ctx)
}

func (uc *CategoryUsecase) ListNames(ctx context.Context) ([]string, error) {
	return uc.categories.ListNames(ctx)
}

func (uc *CategoryUsecase) Create(ctx context.Context, input CategoryCreateInput) (models.Category, error) {
	if input.Name == "" {
		return models.Category{}, domain.ValidationError{Message: "name is required"}
	}

	category := models.Category{
		ID:          uuid.New().String(),
		Name:        input.Name,
		Description: input.Description,
		Icon:        input.Icon,
		Color:       input.Color,
	}
	if err := uc.categories.Create(ctx, &category); err != nil {
		return models.Category{}, err
	}
	return category, nil
}
