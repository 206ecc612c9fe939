package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"time"

	"github.com/vytor/killstats/internal/logger"
)

// ErrTooLarge is returned when a remote dump exceeds the configured size cap.
var ErrTooLarge = errors.New("dump exceeds size limit")

// Client downloads dumps from a remote URL. Plain text bodies are returned as is;
// JSON bodies are expected in the {"data": "..."} shape served by /api/boss-data.
type Client struct {
	httpClient *http.Client
	url        string
	maxBytes   int64
}

type Option func(*Client)

// WithHTTPClient replaces the default client (15s timeout).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func New(url string, maxBytes int64, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		url:        url,
		maxBytes:   maxBytes,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type bossDataResp struct {
	Data string `json:"data"`
}

func (c *Client) Fetch(ctx context.Context) (string, error) {
	log := logger.FromContext(ctx).WithPrefix("source").WithField("url", c.url)

	log.Debug("fetching dump")
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		log.Error("failed to create request: %v", err)
		return "", err
	}
	req.Header.Set("Accept", "text/plain, application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("failed to fetch dump: %v", err)
		return "", err
	}
	defer resp.Body.Close()

	log.Debug("dump response received in %v, status=%d", time.Since(start), resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Error("dump request failed: status=%d, body=%s", resp.StatusCode, string(body))
		return "", fmt.Errorf("dump status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes+1))
	if err != nil {
		log.Error("failed to read dump body: %v", err)
		return "", err
	}
	if int64(len(body)) > c.maxBytes {
		log.Warn("dump larger than %d bytes, discarding", c.maxBytes)
		return "", ErrTooLarge
	}

	if mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type")); mediaType == "application/json" {
		var out bossDataResp
		if err := json.Unmarshal(body, &out); err != nil {
			log.Error("failed to decode dump response: %v", err)
			return "", err
		}
		body = []byte(out.Data)
	}

	log.Info("fetched dump: bytes=%d", len(body))
	return string(body), nil
}
