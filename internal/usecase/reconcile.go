package usecase

import (
	"context"
	"log/slog"
)

// ReconcileReport summarizes one reconciliation run.
type ReconcileReport struct {
	Full     bool `json:"full"`
	Drained  int  `json:"drained"`
	Repaired int  `json:"repaired"`
	Failed   int  `json:"failed"`
}

// ReconcileUsecase repairs aggregate counters from the proof rows. A
// targeted run recomputes only the entities named by queued drift
// markers; a full run recomputes every counter.
type ReconcileUsecase struct {
	proofs ProofRepository
	drift  DriftQueue
}

func NewReconcileUsecase(proofs ProofRepository, drift DriftQueue) *ReconcileUsecase {
	return &ReconcileUsecase{proofs: proofs, drift: drift}
}

func (uc *ReconcileUsecase) Run(ctx context.Context, full bool) (ReconcileReport, error) {
	ctx, span := tracer.Start(ctx, "Reconcile.Run")
	defer span.End()

	refs, err := uc.drift.Drain(ctx)
	if err != nil {
		span.RecordError(err)
		return ReconcileReport{}, err
	}

	report := ReconcileReport{Full: full, Drained: len(refs)}

	if full {
		// A full recompute covers every queued marker, so the drained
		// refs are simply discarded.
		if err := uc.proofs.RecomputeAll(ctx); err != nil {
			span.RecordError(err)
			return report, err
		}
		return report, nil
	}

	type target struct{ kind, id string }
	seen := make(map[target]bool)
	for _, ref := range refs {
		key := target{ref.Kind, ref.ID}
		if seen[key] {
			continue
		}
		seen[key] = true

		var err error
		switch ref.Kind {
		case "user":
			err = uc.proofs.RecomputeUser(ctx, ref.ID)
		case "ngo":
			err = uc.proofs.RecomputeNGO(ctx, ref.ID)
		case "category":
			err = uc.proofs.RecomputeCategory(ctx, ref.ID)
		default:
			slog.WarnContext(ctx, "unknown drift marker kind",
				slog.String("kind", ref.Kind),
				slog.String("module", "reconcile"),
			)
			continue
		}

		if err != nil {
			span.RecordError(err)
			slog.ErrorContext(ctx, "recompute failed",
				slog.String("kind", ref.Kind),
				slog.String("id", ref.ID),
				slog.String("error", err.Error()),
				slog.String("module", "reconcile"),
			)
			report.Failed++
			continue
		}
		report.Repaired++
	}

	return report, nil
}
