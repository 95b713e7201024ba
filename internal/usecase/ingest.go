package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"gorm.io/datatypes"

	"github.com/greenstamp/greenstamp/internal/classify"
	"github.com/greenstamp/greenstamp/internal/domain"
	"github.com/greenstamp/greenstamp/internal/infra/database/models"
	"github.com/greenstamp/greenstamp/internal/service"
)

var tracer = otel.Tracer("usecase")

const maxUploadSize = 50 << 20

type IngestInput struct {
	Data     []byte
	Filename string
	MimeType string
	Title    *string
	Category *string
	Location *string
	Tags     []string
	UserID   *string
	NGOID    *string
}

// IngestUsecase runs the proof pipeline: store, classify, notarize,
// persist, then bump the aggregate counters. Storage and persistence
// failures abort the upload; classification and notarization failures
// are recorded on the proof and the upload proceeds.
type IngestUsecase struct {
	proofs     ProofRepository
	store      ContentStore
	notary     Notary
	classifier Classifier
	drift      DriftQueue
}

// NewIngestUsecase wires the pipeline. notary and classifier may be nil
// when the corresponding credentials are absent.
func NewIngestUsecase(
	proofs ProofRepository,
	store ContentStore,
	notary Notary,
	classifier Classifier,
	drift DriftQueue,
) *IngestUsecase {
	return &IngestUsecase{
		proofs:     proofs,
		store:      store,
		notary:     notary,
		classifier: classifier,
		drift:      drift,
	}
}

func (uc *IngestUsecase) Ingest(ctx context.Context, input IngestInput) (models.Proof, error) {
	ctx, span := tracer.Start(ctx, "Ingest.Ingest")
	defer span.End()

	if err := validateIngest(input); err != nil {
		return models.Proof{}, err
	}

	content, err := uc.store.Store(ctx, input.Data, input.Filename, input.MimeType)
	if err != nil {
		span.RecordError(err)
		return models.Proof{}, err
	}

	timestamp := time.Now().UnixMilli()
	proofHash := domain.Fingerprint(content.CID, timestamp, input.Filename)

	// Tags default to an empty array, not JSON null.
	tags := input.Tags
	if tags == nil {
		tags = []string{}
	}

	proof := models.Proof{
		ID:                 uuid.New().String(),
		CID:                content.CID,
		OriginalName:       input.Filename,
		Size:               int64(len(input.Data)),
		MimeType:           input.MimeType,
		URL:                content.URL,
		ProofHash:          proofHash,
		BlockchainStatus:   string(domain.LedgerStatusNotConfigured),
		AIValidationStatus: domain.AIStatusNotApplicable,
		Title:              input.Title,
		Category:           input.Category,
		Location:           input.Location,
		Tags:               datatypes.NewJSONSlice(tags),
		UserID:             input.UserID,
		NGOID:              input.NGOID,
	}

	// A zero environmental score still credits the default impact, the
	// same as a failed or skipped classification.
	impact := float64(domain.DefaultImpact)
	if uc.classifier != nil && strings.HasPrefix(input.MimeType, "image/") {
		classification := uc.classifier.Classify(ctx, input.Data)
		applyClassification(&proof, classification)
		if classification.Success && classification.EnvironmentalScore > 0 {
			impact = classification.EnvironmentalScore
		}
	}

	if uc.notary != nil {
		record := domain.ProofRecord{
			CID:          content.CID,
			OriginalName: input.Filename,
			Size:         proof.Size,
			Type:         input.MimeType,
			Timestamp:    timestamp,
			ProofHash:    proofHash,
			Action:       domain.LedgerAction,
		}
		receipt, err := uc.notary.Notarize(ctx, record)
		if err != nil {
			span.RecordError(err)
			slog.ErrorContext(ctx, "notarization failed",
				slog.String("error", err.Error()),
				slog.String("module", "ingest"),
			)
			proof.BlockchainStatus = string(domain.LedgerStatusFailed)
		} else {
			topicID := receipt.TopicID
			sequence := receipt.SequenceNumber
			proof.TopicID = &topicID
			proof.SequenceNumber = &sequence
			proof.BlockchainStatus = string(domain.LedgerStatusSuccess)
		}
	}

	if err := uc.proofs.Create(ctx, &proof); err != nil {
		span.RecordError(err)
		return models.Proof{}, err
	}

	uc.bumpAggregates(ctx, proof, impact)

	return proof, nil
}

func validateIngest(input IngestInput) error {
	if len(input.Data) == 0 {
		return domain.ValidationError{Message: "no file uploaded"}
	}
	if len(input.Data) > maxUploadSize {
		return domain.ValidationError{Message: "file exceeds the 50MB limit"}
	}
	if !strings.HasPrefix(input.MimeType, "image/") && !strings.HasPrefix(input.MimeType, "video/") {
		return domain.ValidationError{Message: "only image and video files are accepted"}
	}
	return nil
}

// applyClassification records the analysis outcome on the proof row.
// Scores are stored only for successful runs so that recomputation from
// the rows reproduces the impact credited at upload time.
func applyClassification(proof *models.Proof, classification domain.Classification) {
	if !classification.Success {
		proof.AIValidationStatus = domain.AIStatusFailed
		return
	}

	proof.AIValidationStatus = domain.AIStatusCompleted
	confidence := classification.Confidence
	environmental := classification.EnvironmentalScore
	safety := classification.SafetyScore
	proof.AIConfidenceScore = &confidence
	proof.AIEnvironmentalScore = &environmental
	proof.AISafetyScore = &safety
	proof.AIDetectedObjects = datatypes.NewJSONSlice(classification.DetectedObjects)
	proof.AIDetectedLabels = datatypes.NewJSONSlice(classification.Labels)
	proof.AITextContent = datatypes.NewJSONSlice(classification.TextContent)

	if suggested := classify.SuggestCategory(classification.Labels, classification.DetectedObjects); suggested != "" {
		proof.AISuggestedCategory = &suggested
	}
}

// bumpAggregates updates the denormalized counters after the proof row
// committed. A missing target is a client error and only logged; any
// other failure queues a drift marker for reconciliation.
func (uc *IngestUsecase) bumpAggregates(ctx context.Context, proof models.Proof, impact float64) {
	if proof.UserID != nil {
		uc.bump(ctx, "user", *proof.UserID, uc.proofs.BumpUserStats, impact)
	}
	if proof.NGOID != nil {
		uc.bump(ctx, "ngo", *proof.NGOID, uc.proofs.BumpNGOStats, impact)
	}
	if proof.Category != nil && *proof.Category != "" {
		uc.bump(ctx, "category", *proof.Category, uc.proofs.BumpOrCreateCategory, impact)
	}
}

func (uc *IngestUsecase) bump(
	ctx context.Context,
	kind string,
	id string,
	fn func(ctx context.Context, id string, impact float64) error,
	impact float64,
) {
	err := fn(ctx, id, impact)
	if err == nil {
		return
	}

	if errors.Is(err, domain.ErrNotFound) {
		slog.WarnContext(ctx, "aggregate bump skipped: target missing",
			slog.String("kind", kind),
			slog.String("id", id),
			slog.String("module", "ingest"),
		)
		return
	}

	slog.ErrorContext(ctx, "aggregate bump failed",
		slog.String("kind", kind),
		slog.String("id", id),
		slog.String("error", err.Error()),
		slog.String("module", "ingest"),
	)
	if uc.drift != nil {
		if qerr := uc.drift.Enqueue(ctx, service.DriftRef{Kind: kind, ID: id}); qerr != nil {
			slog.ErrorContext(ctx, "failed to queue drift marker",
				slog.String("kind", kind),
				slog.String("id", id),
				slog.String("error", qerr.Error()),
				slog.String("module", "ingest"),
			)
		}
	}
}
