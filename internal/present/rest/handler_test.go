package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/greenstamp/greenstamp/internal/domain"
	"github.com/greenstamp/greenstamp/internal/infra/database/models"
	"github.com/greenstamp/greenstamp/internal/infra/repository"
	"github.com/greenstamp/greenstamp/internal/usecase"
)

type fakeProofRepo struct {
	created *models.Proof
}

func (f *fakeProofRepo) Create(ctx context.Context, proof *models.Proof) error {
	f.created = proof
	return nil
}

func (f *fakeProofRepo) List(ctx context.Context, filter repository.ProofFilter) ([]models.Proof, int64, error) {
	return []models.Proof{}, 0, nil
}

func (f *fakeProofRepo) BumpUserStats(ctx context.Context, userID string, impact float64) error {
	return nil
}

func (f *fakeProofRepo) BumpNGOStats(ctx context.Context, ngoID string, impact float64) error {
	return nil
}

func (f *fakeProofRepo) BumpOrCreateCategory(ctx context.Context, name string, impact float64) error {
	return nil
}

func (f *fakeProofRepo) RecomputeUser(ctx context.Context, userID string) error   { return nil }
func (f *fakeProofRepo) RecomputeNGO(ctx context.Context, ngoID string) error     { return nil }
func (f *fakeProofRepo) RecomputeCategory(ctx context.Context, name string) error { return nil }
func (f *fakeProofRepo) RecomputeAll(ctx context.Context) error                   { return nil }

type fakeStore struct{}

func (f *fakeStore) Store(ctx context.Context, data []byte, filename string, mimeType string) (domain.StoredContent, error) {
	return domain.StoredContent{CID: "QmFake", URL: "https://gateway.example/ipfs/QmFake"}, nil
}

type fakeUserRepo struct {
	users map[string]models.User
}

func (f *fakeUserRepo) Get(ctx context.Context, id string) (models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return models.User{}, domain.NotFoundError{Resource: "user"}
	}
	return user, nil
}

func (f *fakeUserRepo) ListByImpact(ctx context.Context) ([]models.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) ListProofs(ctx context.Context, userID string, limit int) ([]models.Proof, error) {
	return nil, nil
}

type fakeBadgeRepo struct {
	badges   map[string]models.Badge
	conflict bool
}

func (f *fakeBadgeRepo) Create(ctx context.Context, badge *models.Badge) error { return nil }
func (f *fakeBadgeRepo) List(ctx context.Context) ([]models.Badge, error)      { return nil, nil }

func (f *fakeBadgeRepo) Get(ctx context.Context, id string) (models.Badge, error) {
	badge, ok := f.badges[id]
	if !ok {
		return models.Badge{}, domain.NotFoundError{Resource: "badge"}
	}
	return badge, nil
}

func (f *fakeBadgeRepo) Award(ctx context.Context, award *models.UserBadge) error {
	if f.conflict {
		return domain.ConflictError{Resource: "badge award"}
	}
	return nil
}

func (f *fakeBadgeRepo) ListByUser(ctx context.Context, userID string) ([]models.UserBadge, error) {
	return nil, nil
}

func (f *fakeBadgeRepo) ListByUsers(ctx context.Context, userIDs []string) (map[string][]models.UserBadge, error) {
	return map[string][]models.UserBadge{}, nil
}

type fakeCategoryRepo struct {
	names []string
}

func (f *fakeCategoryRepo) List(ctx context.Context) ([]models.Category, error) { return nil, nil }

func (f *fakeCategoryRepo) ListNames(ctx context.Context) ([]string, error) {
	return f.names, nil
}

func (f *fakeCategoryRepo) Create(ctx context.Context, category *models.Category) error { return nil }

func newTestHandler(proofRepo *fakeProofRepo, userRepo *fakeUserRepo, badgeRepo *fakeBadgeRepo) *Handler {
	ingest := usecase.NewIngestUsecase(proofRepo, &fakeStore{}, nil, nil, nil)
	proofs := usecase.NewProofUsecase(proofRepo)
	badges := usecase.NewBadgeUsecase(badgeRepo, userRepo)
	categories := usecase.NewCategoryUsecase(&fakeCategoryRepo{names: []string{"beach_cleanup", "recycling"}})
	actors := usecase.NewActorUsecase(userRepo, badgeRepo, nil)
	return NewHandler(ingest, proofs, nil, badges, categories, actors, nil, nil)
}

// jpegUpload builds a multipart body whose file part carries no explicit
// content type, the way browsers commonly send it.
func jpegUpload(t *testing.T, filename string) (*bytes.Buffer, *multipart.Writer) {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("failed to build form: %v", err)
	}
	part.Write(append([]byte{0xff, 0xd8, 0xff, 0xe0}, []byte("fake jpeg body")...))
	return &body, writer
}

func performRequest(h *Handler, req *http.Request) *httptest.ResponseRecorder {
	e := echo.New()
	h.RegisterRoutes(e)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHandleUpload(t *testing.T) {
	proofRepo := &fakeProofRepo{}
	h := newTestHandler(proofRepo, &fakeUserRepo{}, &fakeBadgeRepo{})

	body, writer := jpegUpload(t, "cleanup.jpg")
	writer.WriteField("title", "Beach day")
	writer.WriteField("category", "beach_cleanup")
	writer.WriteField("tags", "beach, cleanup")
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	rec := performRequest(h, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}

	var response struct {
		Success          bool   `json:"success"`
		CID              string `json:"cid"`
		ProofHash        string `json:"proofHash"`
		BlockchainStatus string `json:"blockchainStatus"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !response.Success {
		t.Fatalf("expected success=true")
	}
	if response.CID != "QmFake" {
		t.Fatalf("expected cid QmFake got %s", response.CID)
	}
	if !strings.HasPrefix(response.ProofHash, "proof-") {
		t.Fatalf("expected a proof- fingerprint, got %s", response.ProofHash)
	}
	if response.BlockchainStatus != string(domain.LedgerStatusNotConfigured) {
		t.Fatalf("expected not_configured got %s", response.BlockchainStatus)
	}
	if proofRepo.created == nil {
		t.Fatalf("expected a proof row to be written")
	}

	// The multipart part carried application/octet-stream, so the type
	// must come from sniffing the content.
	if proofRepo.created.MimeType != "image/jpeg" {
		t.Fatalf("expected sniffed mime image/jpeg got %s", proofRepo.created.MimeType)
	}
}

func TestHandleUploadRejectsNonMediaBytes(t *testing.T) {
	h := newTestHandler(&fakeProofRepo{}, &fakeUserRepo{}, &fakeBadgeRepo{})

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "notes.txt")
	if err != nil {
		t.Fatalf("failed to build form: %v", err)
	}
	part.Write([]byte("just some text"))
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &body)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	rec := performRequest(h, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleUploadHonorsExplicitContentType(t *testing.T) {
	proofRepo := &fakeProofRepo{}
	h := newTestHandler(proofRepo, &fakeUserRepo{}, &fakeBadgeRepo{})

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="walk.mp4"`)
	header.Set("Content-Type", "video/mp4")
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("failed to build form: %v", err)
	}
	part.Write([]byte("opaque video bytes"))
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &body)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	rec := performRequest(h, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	if proofRepo.created == nil || proofRepo.created.MimeType != "video/mp4" {
		t.Fatalf("expected declared mime video/mp4 to be kept")
	}
}

func TestHandleUploadWithoutTagsStoresEmptyArray(t *testing.T) {
	proofRepo := &fakeProofRepo{}
	h := newTestHandler(proofRepo, &fakeUserRepo{}, &fakeBadgeRepo{})

	body, writer := jpegUpload(t, "cleanup.jpg")
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	rec := performRequest(h, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	if proofRepo.created == nil {
		t.Fatalf("expected a proof row to be written")
	}
	encoded, err := json.Marshal(proofRepo.created.Tags)
	if err != nil {
		t.Fatalf("failed to encode tags: %v", err)
	}
	if string(encoded) != "[]" {
		t.Fatalf("expected tags to store [] got %s", encoded)
	}
}

func TestHandleUploadWithoutFile(t *testing.T) {
	h := newTestHandler(&fakeProofRepo{}, &fakeUserRepo{}, &fakeBadgeRepo{})

	req := httptest.NewRequest(http.MethodPost, "/api/upload", strings.NewReader(""))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := performRequest(h, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestHandleListProofsInvalidLimit(t *testing.T) {
	h := newTestHandler(&fakeProofRepo{}, &fakeUserRepo{}, &fakeBadgeRepo{})

	req := httptest.NewRequest(http.MethodGet, "/api/proofs?limit=abc", nil)
	rec := performRequest(h, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestHandleAwardBadge(t *testing.T) {
	userRepo := &fakeUserRepo{users: map[string]models.User{"user-1": {ID: "user-1"}}}
	badgeRepo := &fakeBadgeRepo{badges: map[string]models.Badge{"badge-1": {ID: "badge-1"}}}
	h := newTestHandler(&fakeProofRepo{}, userRepo, badgeRepo)

	payload := `{"userId":"user-1","badgeId":"badge-1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/badges/award", strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := performRequest(h, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleAwardBadgeMissingUser(t *testing.T) {
	badgeRepo := &fakeBadgeRepo{badges: map[string]models.Badge{"badge-1": {ID: "badge-1"}}}
	h := newTestHandler(&fakeProofRepo{}, &fakeUserRepo{}, badgeRepo)

	payload := `{"userId":"ghost","badgeId":"badge-1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/badges/award", strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := performRequest(h, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
}

func TestHandleAwardBadgeDuplicate(t *testing.T) {
	userRepo := &fakeUserRepo{users: map[string]models.User{"user-1": {ID: "user-1"}}}
	badgeRepo := &fakeBadgeRepo{
		badges:   map[string]models.Badge{"badge-1": {ID: "badge-1"}},
		conflict: true,
	}
	h := newTestHandler(&fakeProofRepo{}, userRepo, badgeRepo)

	payload := `{"userId":"user-1","badgeId":"badge-1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/badges/award", strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := performRequest(h, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", rec.Code)
	}
}

func TestHandleListCategoryNames(t *testing.T) {
	h := newTestHandler(&fakeProofRepo{}, &fakeUserRepo{}, &fakeBadgeRepo{})

	req := httptest.NewRequest(http.MethodGet, "/api/categories/list", nil)
	rec := performRequest(h, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}

	var response struct {
		Categories []string `json:"categories"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(response.Categories) != 2 || response.Categories[0] != "beach_cleanup" {
		t.Fatalf("unexpected categories: %+v", response.Categories)
	}
}

func TestHandleEcoActorsShape(t *testing.T) {
	h := newTestHandler(&fakeProofRepo{}, &fakeUserRepo{}, &fakeBadgeRepo{})

	req := httptest.NewRequest(http.MethodGet, "/api/eco-actors", nil)
	rec := performRequest(h, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}

	var response map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if _, ok := response["ecoActors"]; !ok {
		t.Fatalf("expected an ecoActors envelope, got %s", rec.Body.String())
	}
}

func TestHandleProfileNotFound(t *testing.T) {
	h := newTestHandler(&fakeProofRepo{}, &fakeUserRepo{}, &fakeBadgeRepo{})

	req := httptest.NewRequest(http.MethodGet, "/api/users/ghost/profile", nil)
	rec := performRequest(h, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
}
