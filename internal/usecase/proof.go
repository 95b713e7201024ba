package usecase

import (
	"context"

	"github.com/greenstamp/greenstamp/internal/infra/database/models"
	"github.com/greenstamp/greenstamp/internal/infra/repository"
)

const (
	defaultProofPageSize = 50
	maxProofPageSize     = 100
)

type ProofUsecase struct {
	proofs ProofRepository
}

func NewProofUsecase(proofs ProofRepository) *ProofUsecase {
	return &ProofUsecase{proofs: proofs}
}

// List returns a filtered page of proofs plus the total matching count.
func (uc *ProofUsecase) List(ctx context.Context, filter repository.ProofFilter) ([]models.Proof, int64, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultProofPageSize
	}
	if filter.Limit > maxProofPageSize {
		filter.Limit = maxProofPageSize
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return uc.proofs.List(ctx, filter)
}
