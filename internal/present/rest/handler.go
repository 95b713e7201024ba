package rest

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/greenstamp/greenstamp/internal/classify"
	"github.com/greenstamp/greenstamp/internal/domain"
	"github.com/greenstamp/greenstamp/internal/infra/database/models"
	"github.com/greenstamp/greenstamp/internal/infra/repository"
	"github.com/greenstamp/greenstamp/internal/present/rest/presenter"
	"github.com/greenstamp/greenstamp/internal/service"
	"github.com/greenstamp/greenstamp/internal/usecase"
)

const previewDetectionLimit = 5

type Handler struct {
	ingest     *usecase.IngestUsecase
	proofs     *usecase.ProofUsecase
	ngos       *usecase.NGOUsecase
	badges     *usecase.BadgeUsecase
	categories *usecase.CategoryUsecase
	actors     *usecase.ActorUsecase
	reconcile  *usecase.ReconcileUsecase
	status     *service.StatusService
}

func NewHandler(
	ingest *usecase.IngestUsecase,
	proofs *usecase.ProofUsecase,
	ngos *usecase.NGOUsecase,
	badges *usecase.BadgeUsecase,
	categories *usecase.CategoryUsecase,
	actors *usecase.ActorUsecase,
	reconcile *usecase.ReconcileUsecase,
	status *service.StatusService,
) *Handler {
	return &Handler{
		ingest:     ingest,
		proofs:     proofs,
		ngos:       ngos,
		badges:     badges,
		categories: categories,
		actors:     actors,
		reconcile:  reconcile,
		status:     status,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/upload", h.handleUpload)
	e.GET("/api/proofs", h.handleListProofs)

	e.GET("/api/ngos", h.handleListNGOs)
	e.POST("/api/ngos", h.handleCreateNGO)
	e.GET("/api/ngos/:id", h.handleGetNGO)
	e.PUT("/api/ngos/:id", h.handleUpdateNGO)
	e.DELETE("/api/ngos/:id", h.handleDeleteNGO)

	e.GET("/api/categories", h.handleListCategories)
	e.POST("/api/categories", h.handleCreateCategory)
	e.GET("/api/categories/list", h.handleListCategoryNames)

	e.POST("/api/badges/create", h.handleCreateBadge)
	e.GET("/api/badges/list", h.handleListBadges)
	e.POST("/api/badges/award", h.handleAwardBadge)
	e.GET("/api/users/:id/badges", h.handleListUserBadges)

	e.GET("/api/eco-actors", h.handleEcoActors)
	e.GET("/api/users/:id/profile", h.handleProfile)

	e.POST("/api/admin/reconcile", h.handleReconcile)
	e.GET("/api/debug", h.handleDebug)
}

type uploadAIValidation struct {
	Status                    string   `json:"status"`
	EnvironmentalScore        *float64 `json:"environmentalScore,omitempty"`
	SafetyScore               *float64 `json:"safetyScore,omitempty"`
	Confidence                *float64 `json:"confidence,omitempty"`
	SuggestedCategory         *string  `json:"suggestedCategory,omitempty"`
	DetectedObjects           []string `json:"detectedObjects,omitempty"`
	DetectedLabels            []string `json:"detectedLabels,omitempty"`
	IsSafe                    *bool    `json:"isSafe,omitempty"`
	IsEnvironmentallyRelevant *bool    `json:"isEnvironmentallyRelevant,omitempty"`
}

type uploadResponse struct {
	Success          bool               `json:"success"`
	ProofID          string             `json:"proofId"`
	CID              string             `json:"cid"`
	OriginalName     string             `json:"originalName"`
	Size             int64              `json:"size"`
	Type             string             `json:"type"`
	URL              string             `json:"url"`
	ProofHash        string             `json:"proofHash"`
	TopicID          *string            `json:"topicId"`
	SequenceNumber   *uint64            `json:"sequenceNumber"`
	BlockchainStatus string             `json:"blockchainStatus"`
	AIValidation     uploadAIValidation `json:"aiValidation"`
}

func (h *Handler) handleUpload(c echo.Context) error {
	ctx := c.Request().Context()

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return presenter.BadRequestMessage(c, "no file uploaded")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return presenter.BadRequest(c, err)
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return presenter.InternalError(c, err)
	}

	// Parts without an explicit content type arrive as octet-stream;
	// sniff the real type before validating.
	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = http.DetectContentType(data)
	}

	proof, err := h.ingest.Ingest(ctx, usecase.IngestInput{
		Data:     data,
		Filename: fileHeader.Filename,
		MimeType: mimeType,
		Title:    optionalForm(c, "title"),
		Category: optionalForm(c, "category"),
		Location: optionalForm(c, "location"),
		Tags:     splitTags(c.FormValue("tags")),
		UserID:   optionalForm(c, "userId"),
		NGOID:    optionalForm(c, "ngoId"),
	})
	if err != nil {
		return presenter.FromError(c, err)
	}

	return presenter.OK(c, buildUploadResponse(proof))
}

func buildUploadResponse(proof models.Proof) uploadResponse {
	response := uploadResponse{
		Success:          true,
		ProofID:          proof.ID,
		CID:              proof.CID,
		OriginalName:     proof.OriginalName,
		Size:             proof.Size,
		Type:             proof.MimeType,
		URL:              proof.URL,
		ProofHash:        proof.ProofHash,
		TopicID:          proof.TopicID,
		SequenceNumber:   proof.SequenceNumber,
		BlockchainStatus: proof.BlockchainStatus,
		AIValidation:     uploadAIValidation{Status: proof.AIValidationStatus},
	}

	if proof.AIValidationStatus == domain.AIStatusCompleted {
		response.AIValidation.EnvironmentalScore = proof.AIEnvironmentalScore
		response.AIValidation.SafetyScore = proof.AISafetyScore
		response.AIValidation.Confidence = proof.AIConfidenceScore
		response.AIValidation.SuggestedCategory = proof.AISuggestedCategory
		response.AIValidation.DetectedObjects = preview(proof.AIDetectedObjects)
		response.AIValidation.DetectedLabels = preview(proof.AIDetectedLabels)
		if proof.AISafetyScore != nil {
			safe := classify.IsSafe(*proof.AISafetyScore)
			response.AIValidation.IsSafe = &safe
		}
		if proof.AIEnvironmentalScore != nil {
			relevant := classify.IsRelevant(*proof.AIEnvironmentalScore)
			response.AIValidation.IsEnvironmentallyRelevant = &relevant
		}
	}

	return response
}

func (h *Handler) handleListProofs(c echo.Context) error {
	ctx := c.Request().Context()

	filter := repository.ProofFilter{
		Category: c.QueryParam("category"),
		NGOID:    c.QueryParam("ngoId"),
		UserID:   c.QueryParam("userId"),
	}
	var err error
	filter.Limit, err = intParam(c, "limit", 50)
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid limit parameter")
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	filter.Offset, err = intParam(c, "offset", 0)
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid offset parameter")
	}

	proofs, total, err := h.proofs.List(ctx, filter)
	if err != nil {
		return presenter.FromError(c, err)
	}

	return presenter.OK(c, echo.Map{
		"proofs": proofs,
		"pagination": echo.Map{
			"total":   total,
			"limit":   filter.Limit,
			"offset":  filter.Offset,
			"hasMore": int64(filter.Offset+len(proofs)) < total,
		},
	})
}

func (h *Handler) handleListNGOs(c echo.Context) error {
	ctx := c.Request().Context()

	var verified *bool
	if raw := c.QueryParam("verified"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return presenter.BadRequestMessage(c, "invalid verified parameter")
		}
		verified = &parsed
	}
	limit, err := intParam(c, "limit", 0)
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid limit parameter")
	}
	offset, err := intParam(c, "offset", 0)
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid offset parameter")
	}

	ngos, total, err := h.ngos.List(ctx, verified, limit, offset)
	if err != nil {
		return presenter.FromError(c, err)
	}

	return presenter.OK(c, echo.Map{
		"ngos":  ngos,
		"total": total,
	})
}

func (h *Handler) handleGetNGO(c echo.Context) error {
	ngo, err := h.ngos.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.OK(c, ngo)
}

func (h *Handler) handleCreateNGO(c echo.Context) error {
	var input usecase.NGOCreateInput
	if err := c.Bind(&input); err != nil {
		return presenter.BadRequest(c, err)
	}

	ngo, err := h.ngos.Create(c.Request().Context(), input)
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.Created(c, ngo)
}

func (h *Handler) handleUpdateNGO(c echo.Context) error {
	var fields map[string]any
	if err := c.Bind(&fields); err != nil {
		return presenter.BadRequest(c, err)
	}

	ngo, err := h.ngos.Update(c.Request().Context(), c.Param("id"), fields)
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.OK(c, ngo)
}

func (h *Handler) handleDeleteNGO(c echo.Context) error {
	if err := h.ngos.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.OK(c, echo.Map{"status": "ok"})
}

func (h *Handler) handleListCategories(c echo.Context) error {
	categories, err := h.categories.List(c.Request().Context())
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.OK(c, categories)
}

func (h *Handler) handleCreateCategory(c echo.Context) error {
	var input usecase.CategoryCreateInput
	if err := c.Bind(&input); err != nil {
		return presenter.BadRequest(c, err)
	}

	category, err := h.categories.Create(c.Request().Context(), input)
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.Created(c, category)
}

func (h *Handler) handleListCategoryNames(c echo.Context) error {
	names, err := h.categories.ListNames(c.Request().Context())
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.OK(c, echo.Map{"categories": names})
}

func (h *Handler) handleCreateBadge(c echo.Context) error {
	var input usecase.BadgeCreateInput
	if err := c.Bind(&input); err != nil {
		return presenter.BadRequest(c, err)
	}

	badge, err := h.badges.Create(c.Request().Context(), input)
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.Created(c, badge)
}

func (h *Handler) handleListBadges(c echo.Context) error {
	badges, err := h.badges.List(c.Request().Context())
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.OK(c, badges)
}

func (h *Handler) handleAwardBadge(c echo.Context) error {
	var input usecase.BadgeAwardInput
	if err := c.Bind(&input); err != nil {
		return presenter.BadRequest(c, err)
	}

	award, err := h.badges.Award(c.Request().Context(), input)
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.Created(c, award)
}

func (h *Handler) handleListUserBadges(c echo.Context) error {
	awards, err := h.badges.ListForUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.OK(c, awards)
}

func (h *Handler) handleEcoActors(c echo.Context) error {
	actors, err := h.actors.EcoActors(c.Request().Context())
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.OK(c, echo.Map{"ecoActors": actors})
}

func (h *Handler) handleProfile(c echo.Context) error {
	profile, err := h.actors.Profile(c.Request().Context(), c.Param("id"))
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.OK(c, profile)
}

func (h *Handler) handleReconcile(c echo.Context) error {
	full := c.QueryParam("full") == "true"

	report, err := h.reconcile.Run(c.Request().Context(), full)
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.OK(c, report)
}

func (h *Handler) handleDebug(c echo.Context) error {
	return presenter.OK(c, h.status.Check(c.Request().Context()))
}

func optionalForm(c echo.Context, name string) *string {
	value := c.FormValue(name)
	if value == "" {
		return nil
	}
	return &value
}

// splitTags never returns nil so a tagless proof stores [] rather than
// JSON null.
func splitTags(raw string) []string {
	tags := []string{}
	for _, tag := range strings.Split(raw, ",") {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

func intParam(c echo.Context, name string, fallback int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

func preview(items []string) []string {
	if len(items) > previewDetectionLimit {
		return items[:previewDetectionLimit]
	}
	return items
}
