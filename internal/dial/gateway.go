package dial

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/arianafaustini/dial-tester/internal/models"
)

// Gateway is the persistence collaborator the recording client talks to.
// Every operation is a single network round trip; there is no retry policy,
// so a failed write is simply lost.
type Gateway interface {
	CreateSession(ctx context.Context, email string) (*models.Session, error)
	InsertDataPoint(ctx context.Context, sessionID string, value int, timestamp time.Time) (*models.DataPoint, error)
	CompleteSession(ctx context.Context, sessionID string) (*models.Session, error)
	GetSession(ctx context.Context, sessionID string) (*models.Session, error)
	ListSessions(ctx context.Context) ([]models.Session, error)
}

// HTTPGateway implements Gateway against the dial-tester HTTP API.
type HTTPGateway struct {
	baseURL string
	client  *http.Client
}

func NewHTTPGateway(baseURL string) *HTTPGateway {
	return &HTTPGateway{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (g *HTTPGateway) CreateSession(ctx context.Context, email string) (*models.Session, error) {
	var out struct {
		Session *models.Session `json:"session"`
	}
	err := g.do(ctx, http.MethodPost, "/sessions", map[string]string{"email": email}, &out)
	if err != nil {
		return nil, err
	}
	return out.Session, nil
}

func (g *HTTPGateway) InsertDataPoint(ctx context.Context, sessionID string, value int, timestamp time.Time) (*models.DataPoint, error) {
	body := map[string]interface{}{
		"session_id": sessionID,
		"value":      value,
		"timestamp":  timestamp.UTC().Format(time.RFC3339Nano),
	}
	var out struct {
		DataPoint *models.DataPoint `json:"dataPoint"`
	}
	if err := g.do(ctx, http.MethodPost, "/data-points", body, &out); err != nil {
		return nil, err
	}
	return out.DataPoint, nil
}

func (g *HTTPGateway) CompleteSession(ctx context.Context, sessionID string) (*models.Session, error) {
	var out struct {
		Session *models.Session `json:"session"`
	}
	err := g.do(ctx, http.MethodPatch, "/sessions/"+sessionID, map[string]string{"action": "complete"}, &out)
	if err != nil {
		return nil, err
	}
	return out.Session, nil
}

func (g *HTTPGateway) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	var out struct {
		Session *models.Session `json:"session"`
	}
	if err := g.do(ctx, http.MethodGet, "/sessions/"+sessionID, nil, &out); err != nil {
		return nil, err
	}
	return out.Session, nil
}

func (g *HTTPGateway) ListSessions(ctx context.Context) ([]models.Session, error) {
	var out struct {
		Sessions []models.Session `json:"sessions"`
	}
	if err := g.do(ctx, http.MethodGet, "/admin/sessions", nil, &out); err != nil {
		return nil, err
	}
	return out.Sessions, nil
}

func (g *HTTPGateway) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error   string `json:"error"`
			Details string `json:"details"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr == nil && apiErr.Error != "" {
			if apiErr.Details != "" {
				return fmt.Errorf("%s %s: %s (%s)", method, path, apiErr.Error, apiErr.Details)
			}
			return fmt.Errorf("%s %s: %s", method, path, apiErr.Error)
		}
		return fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
