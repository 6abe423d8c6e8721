// Package emotion talks to the face-emotion collaborator and decodes
// captured camera frames.
package emotion

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/moodlens/moodlens/internal/models"
	"github.com/moodlens/moodlens/internal/mood"
)

const (
	maxRetries     = 3
	initialBackoff = 1 * time.Second
	userAgent      = "moodlens-client/1.0"

	defaultRequestTimeout = 30 * time.Second
)

// Client posts frames to an emotion-inference service and returns the
// per-emotion weight distribution it reports.
type Client struct {
	httpClient *http.Client
	endpoint   string
}

func NewClient(endpoint string) *Client {
	slog.Info("[EmotionClient] Initializing client",
		slog.String("endpoint", endpoint),
		slog.Duration("timeout", defaultRequestTimeout))

	return &Client{
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
		endpoint:   endpoint,
	}
}

type analyzeRequest struct {
	Image string `json:"image"`
}

type analyzeResponse struct {
	Emotions map[string]float64 `json:"emotions"`
}

// Analyze sends the encoded frame to the collaborator and returns the
// emotion distribution in deterministic order. Collaborator failures are
// wrapped in models.ErrFaceAnalysisFailed.
func (c *Client) Analyze(ctx context.Context, frame []byte) ([]models.EmotionScore, error) {
	body, err := json.Marshal(analyzeRequest{Image: base64.StdEncoding.EncodeToString(frame)})
	if err != nil {
		return nil, fmt.Errorf("marshalling frame request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building frame request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.doWithRetry(req, body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrFaceAnalysisFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: collaborator returned status %d", models.ErrFaceAnalysisFailed, resp.StatusCode)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", models.ErrFaceAnalysisFailed, err)
	}

	var result analyzeResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("%w: unmarshalling response: %v", models.ErrFaceAnalysisFailed, err)
	}
	if len(result.Emotions) == 0 {
		return nil, fmt.Errorf("%w: collaborator reported no emotions", models.ErrFaceAnalysisFailed)
	}

	return mood.OrderDistribution(result.Emotions), nil
}

// Healthy reports whether the collaborator answers its health endpoint.
func (c *Client) Healthy(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func (c *Client) doWithRetry(req *http.Request, body []byte) (*http.Response, error) {
	var resp *http.Response
	var err error
	backoff := initialBackoff

	for attempt := 0; attempt < maxRetries; attempt++ {
		req.Body = io.NopCloser(bytes.NewReader(body))
		resp, err = c.httpClient.Do(req)
		if err == nil && resp.StatusCode < 500 {
			return resp, nil
		}

		if resp != nil {
			resp.Body.Close()
		}

		slog.Warn("[EmotionClient] Request failed, will retry",
			slog.Int("attempt", attempt+1),
			slog.String("error", errMsg(err, resp)))

		time.Sleep(backoff)
		backoff *= 2
	}

	if err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("status code %d after %d attempts", resp.StatusCode, maxRetries)
}

func errMsg(err error, resp *http.Response) string {
	if err != nil {
		return err.Error()
	}
	if resp != nil {
		return fmt.Sprintf("status code %d", resp.StatusCode)
	}
	return "unknown error"
}
