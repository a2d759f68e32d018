package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/hakwonhub/dashboard-gateway/internal/api/metrics"
	"github.com/hakwonhub/dashboard-gateway/internal/core/domain"
)

const defaultTimeout = 10 * time.Second

// Client talks to the school platform's REST API. One instance serves every
// session; per-call credentials arrive as bearer tokens.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

func New(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

type tokenResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
	Role    string `json:"role,omitempty"`
}

// Login exchanges credentials at POST /api/token/. Depending on the platform
// version the role arrives in the response body, only in the token claims, or
// both; the body value is returned verbatim ("" when absent) and the caller
// falls back to the claim.
func (c *Client) Login(ctx context.Context, email, password string) (domain.TokenPair, string, error) {
	body, err := c.do(ctx, http.MethodPost, "/api/token/", "", map[string]any{
		"email":    email,
		"password": password,
	}, "token")
	if err != nil {
		return domain.TokenPair{}, "", err
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return domain.TokenPair{}, "", fmt.Errorf("%w: decode token response: %v", domain.ErrUpstream, err)
	}
	return domain.TokenPair{Access: tr.Access, Refresh: tr.Refresh}, tr.Role, nil
}

// ListRaw fetches a collection and returns the body verbatim. The platform
// answers with either a bare array or a paginated envelope; normalization is
// the caller's concern.
func (c *Client) ListRaw(ctx context.Context, accessToken string, resource domain.Resource) ([]byte, error) {
	return c.do(ctx, http.MethodGet, c.collectionPath(resource), accessToken, nil, string(resource))
}

func (c *Client) Create(ctx context.Context, accessToken string, resource domain.Resource, payload map[string]any) ([]byte, error) {
	return c.do(ctx, http.MethodPost, c.collectionPath(resource), accessToken, payload, string(resource))
}

func (c *Client) Update(ctx context.Context, accessToken string, resource domain.Resource, id int64, payload map[string]any) ([]byte, error) {
	return c.do(ctx, http.MethodPatch, c.itemPath(resource, id), accessToken, payload, string(resource))
}

func (c *Client) Delete(ctx context.Context, accessToken string, resource domain.Resource, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, c.itemPath(resource, id), accessToken, nil, string(resource))
	return err
}

func (c *Client) collectionPath(resource domain.Resource) string {
	return "/api/" + string(resource) + "/"
}

func (c *Client) itemPath(resource domain.Resource, id int64) string {
	return fmt.Sprintf("/api/%s/%d/", resource, id)
}

func (c *Client) do(ctx context.Context, method, path, accessToken string, payload any, metricLabel string) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(metricLabel, method, "transport_error").Inc()
		return nil, fmt.Errorf("%w: %s %s: %v", domain.ErrUpstream, method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	metrics.UpstreamRequestsTotal.WithLabelValues(metricLabel, method, strconv.Itoa(resp.StatusCode)).Inc()
	metrics.UpstreamRequestDuration.WithLabelValues(metricLabel).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", domain.ErrUpstream, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		c.log.Warn().
			Str("method", method).
			Str("path", path).
			Int("status", resp.StatusCode).
			Msg("upstream request failed")
		return nil, fmt.Errorf("%w: %s %s returned %d", domain.ErrUpstream, method, path, resp.StatusCode)
	}

	return body, nil
}
