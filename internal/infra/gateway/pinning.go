package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"

	"github.com/greenstamp/greenstamp/internal/config"
	"github.com/greenstamp/greenstamp/internal/domain"
)

var pinningTracer = otel.Tracer("gateway.pinning")

const (
	defaultPinEndpoint = "https://api.pinata.cloud/pinning/pinFileToIPFS"
	defaultGatewayURL  = "https://gateway.pinata.cloud"
	pinningTimeout     = 30 * time.Second
)

// PinningClient stores blobs on a content-addressed pinning provider,
// falling back to the local media directory when the provider is
// unavailable or not configured. A single attempt per upload, no retries.
type PinningClient struct {
	endpoint   string
	gatewayURL string
	jwtToken   string
	mediaDir   string
	client     *http.Client
}

func NewPinningClient(conf config.Pinning, mediaDir string) *PinningClient {
	endpoint := conf.Endpoint
	if endpoint == "" {
		endpoint = defaultPinEndpoint
	}
	gatewayURL := conf.GatewayURL
	if gatewayURL == "" {
		gatewayURL = defaultGatewayURL
	}
	return &PinningClient{
		endpoint:   endpoint,
		gatewayURL: gatewayURL,
		jwtToken:   conf.JWTToken,
		mediaDir:   mediaDir,
		client:     &http.Client{Timeout: pinningTimeout},
	}
}

func (p *PinningClient) Store(ctx context.Context, data []byte, filename string, mimeType string) (domain.StoredContent, error) {
	ctx, span := pinningTracer.Start(ctx, "Pinning.Store")
	defer span.End()

	if p.jwtToken != "" {
		content, err := p.pin(ctx, data, filename, mimeType)
		if err == nil {
			slog.InfoContext(ctx, "pinned content",
				slog.String("cid", content.CID),
				slog.String("module", "pinning"),
			)
			return content, nil
		}
		span.RecordError(err)
		slog.WarnContext(ctx, "pinning provider failed, using local fallback",
			slog.String("error", err.Error()),
			slog.String("module", "pinning"),
		)
	}

	return p.storeLocal(filename, data)
}

func (p *PinningClient) pin(ctx context.Context, data []byte, filename string, mimeType string) (domain.StoredContent, error) {

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return domain.StoredContent{}, errors.Wrap(err, "failed to build multipart body")
	}
	if _, err := part.Write(data); err != nil {
		return domain.StoredContent{}, errors.Wrap(err, "failed to write multipart body")
	}
	if err := writer.Close(); err != nil {
		return domain.StoredContent{}, errors.Wrap(err, "failed to finalize multipart body")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, &body)
	if err != nil {
		return domain.StoredContent{}, errors.Wrap(err, "failed to create pin request")
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+p.jwtToken)

	resp, err := p.client.Do(req)
	if err != nil {
		return domain.StoredContent{}, errors.Wrap(err, "pin request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return domain.StoredContent{}, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var pinResponse struct {
		IpfsHash string `json:"IpfsHash"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&pinResponse); err != nil {
		return domain.StoredContent{}, errors.Wrap(err, "failed to decode pin response")
	}
	if pinResponse.IpfsHash == "" {
		return domain.StoredContent{}, fmt.Errorf("pin response missing content id")
	}

	return domain.StoredContent{
		CID: pinResponse.IpfsHash,
		URL: p.gatewayURL + "/ipfs/" + pinResponse.IpfsHash,
	}, nil
}

func (p *PinningClient) storeLocal(filename string, data []byte) (domain.StoredContent, error) {
	if err := os.MkdirAll(p.mediaDir, 0o755); err != nil {
		return domain.StoredContent{}, errors.Wrap(err, "failed to create media dir")
	}

	stored := uuid.New().String() + "-" + filepath.Base(filename)
	if err := os.WriteFile(filepath.Join(p.mediaDir, stored), data, 0o644); err != nil {
		return domain.StoredContent{}, errors.Wrap(err, "failed to write local fallback")
	}

	return domain.StoredContent{
		CID: "local-" + filepath.Base(filename),
		URL: "/media/" + stored,
	}, nil
}
