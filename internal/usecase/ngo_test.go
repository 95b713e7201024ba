package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/greenstamp/greenstamp/internal/domain"
	"github.com/greenstamp/greenstamp/internal/infra/database/models"
)

type mockNGORepo struct {
	updates map[string]any
}

func (m *mockNGORepo) List(ctx context.Context, verified *bool, limit, offset int) ([]models.NGO, int64, error) {
	return nil, 0, nil
}

func (m *mockNGORepo) Get(ctx context.Context, id string) (models.NGO, error) {
	return models.NGO{ID: id}, nil
}

func (m *mockNGORepo) Create(ctx context.Context, ngo *models.NGO) error { return nil }

func (m *mockNGORepo) Update(ctx context.Context, id string, fields map[string]any) (models.NGO, error) {
	m.updates = fields
	return models.NGO{ID: id}, nil
}

func (m *mockNGORepo) Delete(ctx context.Context, id string) error { return nil }

func TestNGOCreateRequiresName(t *testing.T) {
	uc := NewNGOUsecase(&mockNGORepo{})

	if _, err := uc.Create(context.Background(), NGOCreateInput{}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestNGOUpdateFiltersFields(t *testing.T) {
	repo := &mockNGORepo{}
	uc := NewNGOUsecase(repo)

	_, err := uc.Update(context.Background(), "ngo-1", map[string]any{
		"name":        "New Name",
		"isVerified":  true,
		"totalProofs": 9999,
		"id":          "hijack",
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if repo.updates["name"] != "New Name" {
		t.Fatalf("expected name to pass through: %+v", repo.updates)
	}
	if repo.updates["is_verified"] != true {
		t.Fatalf("expected isVerified to map to is_verified: %+v", repo.updates)
	}
	if _, ok := repo.updates["totalProofs"]; ok {
		t.Fatalf("counters must not be writable: %+v", repo.updates)
	}
	if _, ok := repo.updates["id"]; ok {
		t.Fatalf("id must not be writable: %+v", repo.updates)
	}
}

func TestNGOUpdateRejectsEmptyPatch(t *testing.T) {
	uc := NewNGOUsecase(&mockNGORepo{})

	_, err := uc.Update(context.Background(), "ngo-1", map[string]any{"totalImpact": 1})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
