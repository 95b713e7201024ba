package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/greenstamp/greenstamp/internal/domain"
	"github.com/greenstamp/greenstamp/internal/infra/database/models"
)

type ProofRepository struct {
	db *gorm.DB
}

func NewProofRepository(db *gorm.DB) *ProofRepository {
	return &ProofRepository{db: db}
}

// ProofFilter narrows the proof listing. Category matching is exact and
// case-sensitive.
type ProofFilter struct {
	Category string
	NGOID    string
	UserID   string
	Limit    int
	Offset   int
}

func (r *ProofRepository) Create(ctx context.Context, proof *models.Proof) error {
	return r.db.WithContext(ctx).Create(proof).Error
}

func (r *ProofRepository) List(ctx context.Context, filter ProofFilter) ([]models.Proof, int64, error) {

	query := r.db.WithContext(ctx).Model(&models.Proof{})
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.NGOID != "" {
		query = query.Where("ngo_id = ?", filter.NGOID)
	}
	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var proofs []models.Proof
	err := query.
		Preload("User").
		Preload("NGO").
		Order("created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&proofs).Error
	if err != nil {
		return nil, 0, err
	}

	return proofs, total, nil
}

// BumpUserStats increments the user's denormalized counters with a single
// atomic UPDATE, so concurrent submissions never lose increments.
func (r *ProofRepository) BumpUserStats(ctx context.Context, userID string, impact float64) error {
	result := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"total_proofs": gorm.Expr("total_proofs + 1"),
			"total_impact": gorm.Expr("total_impact + ?", impact),
			"updated_at":   time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundError{Resource: "user"}
	}
	return nil
}

func (r *ProofRepository) BumpNGOStats(ctx context.Context, ngoID string, impact float64) error {
	result := r.db.WithContext(ctx).Model(&models.NGO{}).
		Where("id = ?", ngoID).
		Updates(map[string]any{
			"total_proofs": gorm.Expr("total_proofs + 1"),
			"total_impact": gorm.Expr("total_impact + ?", impact),
			"updated_at":   time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundError{Resource: "ngo"}
	}
	return nil
}

// BumpOrCreateCategory upserts the category row: the unique name index
// resolves the create race and the conflict branch increments atomically.
func (r *ProofRepository) BumpOrCreateCategory(ctx context.Context, name string, impact float64) error {
	category := models.Category{
		ID:          uuid.New().String(),
		Name:        name,
		Description: "Environmental category: " + name,
		TotalProofs: 1,
		TotalImpact: impact,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "name"}},
		DoUpdates: clause.Assignments(map[string]any{
			"total_proofs": gorm.Expr("categories.total_proofs + 1"),
			"total_impact": gorm.Expr("categories.total_impact + ?", impact),
			"updated_at":   time.Now(),
		}),
	}).Create(&category).Error
}

// Reconciliation: counters are derived caches over Proof rows, so drift
// is repaired by recomputing them from source of truth. A proof without a
// stored environmental score, or with a zero score, counts the default
// impact, mirroring what the pipeline credits at upload time.

const userRecomputeSQL = `
UPDATE users SET
  total_proofs = (SELECT COUNT(*) FROM proofs WHERE proofs.user_id = users.id),
  total_impact = (SELECT COALESCE(SUM(COALESCE(NULLIF(proofs.ai_environmental_score, 0), ?)), 0) FROM proofs WHERE proofs.user_id = users.id)`

const ngoRecomputeSQL = `
UPDATE ngos SET
  total_proofs = (SELECT COUNT(*) FROM proofs WHERE proofs.ngo_id = ngos.id),
  total_impact = (SELECT COALESCE(SUM(COALESCE(NULLIF(proofs.ai_environmental_score, 0), ?)), 0) FROM proofs WHERE proofs.ngo_id = ngos.id)`

const categoryRecomputeSQL = `
UPDATE categories SET
  total_proofs = (SELECT COUNT(*) FROM proofs WHERE proofs.category = categories.name),
  total_impact = (SELECT COALESCE(SUM(COALESCE(NULLIF(proofs.ai_environmental_score, 0), ?)), 0) FROM proofs WHERE proofs.category = categories.name)`

func (r *ProofRepository) RecomputeUser(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Exec(userRecomputeSQL+" WHERE users.id = ?", domain.DefaultImpact, userID).Error
}

func (r *ProofRepository) RecomputeNGO(ctx context.Context, ngoID string) error {
	return r.db.WithContext(ctx).
		Exec(ngoRecomputeSQL+" WHERE ngos.id = ?", domain.DefaultImpact, ngoID).Error
}

func (r *ProofRepository) RecomputeCategory(ctx context.Context, name string) error {
	return r.db.WithContext(ctx).
		Exec(categoryRecomputeSQL+" WHERE categories.name = ?", domain.DefaultImpact, name).Error
}

func (r *ProofRepository) RecomputeAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(userRecomputeSQL, domain.DefaultImpact).Error; err != nil {
			return err
		}
		if err := tx.Exec(ngoRecomputeSQL, domain.DefaultImpact).Error; err != nil {
			return err
		}
		return tx.Exec(categoryRecomputeSQL, domain.DefaultImpact).Error
	})
}
