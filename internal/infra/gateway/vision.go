package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	vision "cloud.google.com/go/vision/v2/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"github.com/patrickmn/go-cache"
	"github.com/zeebo/xxh3"
	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/option"

	"github.com/greenstamp/greenstamp/internal/classify"
	"github.com/greenstamp/greenstamp/internal/config"
	"github.com/greenstamp/greenstamp/internal/domain"
)

var visionTracer = otel.Tracer("gateway.vision")

// VisionClassifier analyzes uploaded images with the Cloud Vision API and
// scores the detections with the classify tables. Results are memoized by
// content hash so re-uploads of the same bytes skip the API.
type VisionClassifier struct {
	client *vision.ImageAnnotatorClient
	memo   *cache.Cache
}

func NewVisionClassifier(ctx context.Context, conf config.Vision) (*VisionClassifier, error) {
	client, err := vision.NewImageAnnotatorClient(ctx, option.WithCredentialsJSON([]byte(conf.CredentialsJSON)))
	if err != nil {
		return nil, err
	}
	return &VisionClassifier{
		client: client,
		memo:   cache.New(10*time.Minute, 15*time.Minute),
	}, nil
}

func (v *VisionClassifier) Classify(ctx context.Context, data []byte) domain.Classification {
	ctx, span := visionTracer.Start(ctx, "Vision.Classify")
	defer span.End()

	key := fmt.Sprintf("%x", xxh3.Hash(data))
	if hit, found := v.memo.Get(key); found {
		return hit.(domain.Classification)
	}

	result := v.analyze(ctx, data)
	if !result.Success {
		span.RecordError(fmt.Errorf("classification failed: %s", result.Error))
		slog.WarnContext(ctx, "vision analysis failed",
			slog.String("error", result.Error),
			slog.String("module", "vision"),
		)
	}

	v.memo.Set(key, result, cache.DefaultExpiration)
	return result
}

func (v *VisionClassifier) analyze(ctx context.Context, data []byte) domain.Classification {
	img := &visionpb.Image{Content: data}

	var (
		labelAnnotations []*visionpb.EntityAnnotation
		objects          []*visionpb.LocalizedObjectAnnotation
		textAnnotations  []*visionpb.EntityAnnotation
		safeSearch       *visionpb.SafeSearchAnnotation
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		labelAnnotations, err = v.client.DetectLabels(egCtx, img, nil, 20)
		return err
	})
	eg.Go(func() error {
		var err error
		objects, err = v.client.LocalizeObjects(egCtx, img, nil)
		return err
	})
	eg.Go(func() error {
		var err error
		textAnnotations, err = v.client.DetectTexts(egCtx, img, nil, 20)
		return err
	})
	eg.Go(func() error {
		var err error
		safeSearch, err = v.client.DetectSafeSearch(egCtx, img, nil)
		return err
	})

	if err := eg.Wait(); err != nil {
		return domain.Classification{
			DetectedObjects: []string{},
			Labels:          []string{},
			TextContent:     []string{},
			Error:           err.Error(),
		}
	}

	labels := make([]string, 0, len(labelAnnotations))
	for _, annotation := range labelAnnotations {
		labels = append(labels, annotation.GetDescription())
	}

	detectedObjects := make([]string, 0, len(objects))
	for _, object := range objects {
		detectedObjects = append(detectedObjects, object.GetName())
	}

	// The first text annotation is the full-page block; the rest are the
	// individual snippets.
	textContent := []string{}
	if len(textAnnotations) > 1 {
		for _, annotation := range textAnnotations[1:] {
			textContent = append(textContent, annotation.GetDescription())
		}
	}

	safetyScore := classify.SafetyScore(map[string]string{
		"adult":    safeSearch.GetAdult().String(),
		"racy":     safeSearch.GetRacy().String(),
		"violence": safeSearch.GetViolence().String(),
		"medical":  safeSearch.GetMedical().String(),
	})

	return domain.Classification{
		Success:            true,
		Confidence:         classify.Confidence(labels, detectedObjects, textContent),
		EnvironmentalScore: classify.EnvironmentalScore(labels, detectedObjects),
		SafetyScore:        safetyScore,
		DetectedObjects:    detectedObjects,
		Labels:             labels,
		TextContent:        textContent,
	}
}
