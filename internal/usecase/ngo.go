package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/greenstamp/greenstamp/internal/domain"
	"github.com/greenstamp/greenstamp/internal/infra/database/models"
)

const defaultNGOPageSize = 50

type NGOCreateInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Logo        string `json:"logo"`
	Website     string `json:"website"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
}

type NGOUsecase struct {
	ngos NGORepository
}

func NewNGOUsecase(ngos NGORepository) *NGOUsecase {
	return &NGOUsecase{ngos: ngos}
}

func (uc *NGOUsecase) List(ctx context.Context, verified *bool, limit, offset int) ([]models.NGO, int64, error) {
	if limit <= 0 {
		limit = defaultNGOPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return uc.ngos.List(ctx, verified, limit, offset)
}

func (uc *NGOUsecase) Get(ctx context.Context, id string) (models.NGO, error) {
	return uc.ngos.Get(ctx, id)
}

func (uc *NGOUsecase) Create(ctx context.Context, input NGOCreateInput) (models.NGO, error) {
	if input.Name == "" {
		return models.NGO{}, domain.ValidationError{Message: "name is required"}
	}

	ngo := models.NGO{
		ID:          uuid.New().String(),
		Name:        input.Name,
		Description: input.Description,
		Logo:        input.Logo,
		Website:     input.Website,
		Email:       input.Email,
		Phone:       input.Phone,
		Address:     input.Address,
	}
	if err := uc.ngos.Create(ctx, &ngo); err != nil {
		return models.NGO{}, err
	}
	return ngo, nil
}

// ngoUpdatableColumns maps request field names to their columns.
// Aggregate counters are maintained by the pipeline and cannot be
// written through here.
var ngoUpdatableColumns = map[string]string{
	"name":        "name",
	"description": "description",
	"logo":        "logo",
	"website":     "website",
	"email":       "email",
	"phone":       "phone",
	"address":     "address",
	"isVerified":  "is_verified",
}

func (uc *NGOUsecase) Update(ctx context.Context, id string, fields map[string]any) (models.NGO, error) {
	updates := make(map[string]any)
	for key, value := range fields {
		if column, ok := ngoUpdatableColumns[key]; ok {
			updates[column] = value
		}
	}
	if len(updates) == 0 {
		return models.NGO{}, domain.ValidationError{Message: "no updatable fields provided"}
	}
	return uc.ngos.Update(ctx, id, updates)
}

func (uc *NGOUsecase) Delete(ctx context.Context, id string) error {
	return uc.ngos.Delete(ctx, id)
}
