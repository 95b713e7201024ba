package usecase

import (
	"context"
	"testing"

	"github.com/greenstamp/greenstamp/internal/service"
)

func TestReconcileTargetedDedupes(t *testing.T) {
	repo := &mockProofRepo{}
	drift := &mockDrift{drainRefs: []service.DriftRef{
		{Kind: "user", ID: "user-1"},
		{Kind: "user", ID: "user-1"},
		{Kind: "ngo", ID: "ngo-1"},
		{Kind: "category", ID: "recycling"},
		{Kind: "mystery", ID: "x"},
	}}
	uc := NewReconcileUsecase(repo, drift)

	report, err := uc.Run(context.Background(), false)
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}

	if report.Drained != 5 {
		t.Fatalf("expected 5 drained got %d", report.Drained)
	}
	if report.Repaired != 3 {
		t.Fatalf("expected 3 repaired got %d", report.Repaired)
	}
	if len(repo.recomputed) != 3 {
		t.Fatalf("expected 3 recomputes got %v", repo.recomputed)
	}
	if repo.recomputeAll {
		t.Fatalf("targeted run must not recompute everything")
	}
}

func TestReconcileFullRecomputesEverything(t *testing.T) {
	repo := &mockProofRepo{}
	drift := &mockDrift{drainRefs: []service.DriftRef{
		{Kind: "user", ID: "user-1"},
	}}
	uc := NewReconcileUsecase(repo, drift)

	report, err := uc.Run(context.Background(), true)
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}

	if !repo.recomputeAll {
		t.Fatalf("expected a full recompute")
	}
	if len(repo.recomputed) != 0 {
		t.Fatalf("full run must not recompute individual targets: %v", repo.recomputed)
	}
	if report.Drained != 1 {
		t.Fatalf("expected queued markers to be drained, got %d", report.Drained)
	}
}
