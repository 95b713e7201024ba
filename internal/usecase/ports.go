package usecase

import (
	"context"

	"github.com/greenstamp/greenstamp/internal/domain"
	"github.com/greenstamp/greenstamp/internal/infra/database/models"
	"github.com/greenstamp/greenstamp/internal/infra/repository"
	"github.com/greenstamp/greenstamp/internal/service"
)

// ContentStore pins uploaded blobs and yields their public location.
type ContentStore interface {
	Store(ctx context.Context, data []byte, filename string, mimeType string) (domain.StoredContent, error)
}

// Notary submits proof records to the append-only ledger topic.
type Notary interface {
	Notarize(ctx context.Context, record domain.ProofRecord) (domain.LedgerReceipt, error)
}

// Classifier scores image content. Failures surface inside the returned
// Classification, never as an error.
type Classifier interface {
	Classify(ctx context.Context, data []byte) domain.Classification
}

// DriftQueue tracks entities whose aggregate counters need repair.
type DriftQueue interface {
	Enqueue(ctx context.Context, ref service.DriftRef) error
	Drain(ctx context.Context) ([]service.DriftRef, error)
}

// ProofRepository defines persistence for proofs and their derived
// aggregate counters.
type ProofRepository interface {
	Create(ctx context.Context, proof *models.Proof) error
	List(ctx context.Context, filter repository.ProofFilter) ([]models.Proof, int64, error)
	BumpUserStats(ctx context.Context, userID string, impact float64) error
	BumpNGOStats(ctx context.Context, ngoID string, impact float64) error
	BumpOrCreateCategory(ctx context.Context, name string, impact float64) error
	RecomputeUser(ctx context.Context, userID string) error
	RecomputeNGO(ctx context.Context, ngoID string) error
	RecomputeCategory(ctx context.Context, name string) error
	RecomputeAll(ctx context.Context) error
}

// NGORepository defines persistence/lookup for NGOs.
type NGORepository interface {
	List(ctx context.Context, verified *bool, limit, offset int) ([]models.NGO, int64, error)
	Get(ctx context.Context, id string) (models.NGO, error)
	Create(ctx context.Context, ngo *models.NGO) error
	Update(ctx context.Context, id string, fields map[string]any) (models.NGO, error)
	Delete(ctx context.Context, id string) error
}

// UserRepository defines lookup for users and their proofs.
type UserRepository interface {
	Get(ctx context.Context, id string) (models.User, error)
	ListByImpact(ctx context.Context) ([]models.User, error)
	ListProofs(ctx context.Context, userID string, limit int) ([]models.Proof, error)
}

// BadgeRepository defines persistence for badges and awards.
type BadgeRepository interface {
	Create(ctx context.Context, badge *models.Badge) error
	List(ctx context.Context) ([]models.Badge, error)
	Get(ctx context.Context, id string) (models.Badge, error)
	Award(ctx context.Context, award *models.UserBadge) error
	ListByUser(ctx context.Context, userID string) ([]models.UserBadge, error)
	ListByUsers(ctx context.Context, userIDs []string) (map[string][]models.UserBadge, error)
}

// CategoryRepository defines persistence/lookup for categories.
type CategoryRepository interface {
	List(ctx context.Context) ([]models.Category, error)
	ListNames(ctx context.Context) ([]string, error)
	Create(ctx context.Context, category *models.Category) error
}
