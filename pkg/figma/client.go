package figma

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Version is the current release of the figma-components module.
const Version = "0.2.0"

const (
	figmaAPIBase = "https://api.figma.com/v1"
	maxRetries   = 3
)

// ErrNotFound is returned when the Figma API answers 404 for a file or node.
var ErrNotFound = errors.New("figma: not found")

// APIError is a non-2xx answer from the Figma API.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API request failed with status %d: %s", e.Status, e.Body)
}

// Unwrap maps a 404 to ErrNotFound so callers can use errors.Is.
func (e *APIError) Unwrap() error {
	if e.Status == http.StatusNotFound {
		return ErrNotFound
	}
	return nil
}

// Client represents a Figma API client with configured HTTP settings for reliable communication
// with the Figma API. It includes retry logic and optimized transport settings for handling large files.
type Client struct {
	accessToken string
	baseURL     string
	httpClient  *http.Client
	backoff     time.Duration
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL points the client at a different API root, e.g. an httptest server.
func WithBaseURL(base string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(base, "/")
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBackoff sets the base delay between retries. Attempt n waits n*backoff.
func WithBackoff(d time.Duration) ClientOption {
	return func(c *Client) {
		c.backoff = d
	}
}

// NewClient creates a new Figma API client with the provided personal access token.
// The client is configured with connection pooling, disabled HTTP/2 (for large file stability),
// and a 10-minute timeout for very large files. Per-call deadlines come from the request context.
func NewClient(accessToken string, opts ...ClientOption) *Client {
	// Configure transport for better handling of large files
	transport := &http.Transport{
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		MaxIdleConnsPerHost: 10,
		// Disable HTTP/2 to avoid stream errors with large files
		ForceAttemptHTTP2: false,
	}

	c := &Client{
		accessToken: accessToken,
		baseURL:     figmaAPIBase,
		httpClient: &http.Client{
			Timeout:   10 * time.Minute,
			Transport: transport,
		},
		backoff: 2 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FileOptions are the query parameters of the file endpoint.
type FileOptions struct {
	Depth      int    // 0 = full tree
	Geometry   string // "paths" includes vector path data
	PluginData string // e.g. "shared"
}

// DefaultFileOptions mirrors what component extraction needs: deep nesting and vector paths.
func DefaultFileOptions() FileOptions {
	return FileOptions{Depth: 10, Geometry: "paths", PluginData: "shared"}
}

func (o FileOptions) query() url.Values {
	q := url.Values{}
	if o.Depth > 0 {
		q.Set("depth", strconv.Itoa(o.Depth))
	}
	if o.Geometry != "" {
		q.Set("geometry", o.Geometry)
	}
	if o.PluginData != "" {
		q.Set("plugin_data", o.PluginData)
	}
	return q
}

// ExtractFileKey extracts the unique file identifier from a Figma URL.
// Supports both /file/ and /design/ URL patterns (e.g., figma.com/file/ABC123/Design-Name).
// Returns an error if the URL format is invalid or if the URL doesn't match the expected Figma domain pattern.
func ExtractFileKey(figmaURL string) (string, error) {
	// Anchored to ensure the entire URL matches the expected pattern and prevent bypass attacks.
	re := regexp.MustCompile(`^https?://(?:www\.)?figma\.com/(?:file|design)/([A-Za-z0-9]+)(?:/|$|\?|#)`)
	matches := re.FindStringSubmatch(figmaURL)

	if len(matches) < 2 {
		return "", fmt.Errorf("invalid Figma URL format: must be a valid figma.com URL with /file/ or /design/ path")
	}

	return matches[1], nil
}

var (
	nodeIDQueryRe    = regexp.MustCompile(`[?&]node-id=([^&#]*)`)
	nodeIDFragmentRe = regexp.MustCompile(`#([0-9]+[:-][0-9]+(?:,\s*[0-9]+[:-][0-9]+)*)$`)
	nodeIDPathRe     = regexp.MustCompile(`/nodes/([^?#]+)`)
)

// ExtractNodeIDs returns the node ids referenced by a Figma URL, if any.
// It understands the node-id query parameter, a #id fragment and a /nodes/ path segment.
// URL-encoded ids (123-456) are converted to API ids (123:456) and duplicates are dropped.
func ExtractNodeIDs(figmaURL string) ([]string, error) {
	var raw string
	switch {
	case nodeIDQueryRe.MatchString(figmaURL):
		raw = nodeIDQueryRe.FindStringSubmatch(figmaURL)[1]
	case nodeIDPathRe.MatchString(figmaURL):
		raw = nodeIDPathRe.FindStringSubmatch(figmaURL)[1]
	case nodeIDFragmentRe.MatchString(figmaURL):
		raw = nodeIDFragmentRe.FindStringSubmatch(figmaURL)[1]
	default:
		return []string{}, nil
	}

	decoded, err := url.QueryUnescape(raw)
	if err != nil {
		return nil, fmt.Errorf("decode node ids %q: %w", raw, err)
	}

	ids := []string{}
	for _, part := range strings.Split(decoded, ",") {
		id := strings.TrimSpace(part)
		if id == "" {
			continue
		}
		ids = append(ids, strings.Replace(id, "-", ":", 1))
	}

	return deduplicateNodeIDs(ids), nil
}

// deduplicateNodeIDs removes repeated ids, keeping the first occurrence order.
func deduplicateNodeIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	result := make([]string, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		result = append(result, id)
	}
	return result
}

// GetFile retrieves complete file data from the Figma API including document structure, components and styles.
// The request automatically retries (up to 3 attempts) on transport errors, 429 (rate limit) and 5xx responses.
func (c *Client) GetFile(ctx context.Context, fileKey string, opts FileOptions) (*FileResponse, error) {
	endpoint := fmt.Sprintf("%s/files/%s", c.baseURL, url.PathEscape(fileKey))
	if q := opts.query().Encode(); q != "" {
		endpoint += "?" + q
	}

	var fileResp FileResponse
	if err := c.getJSON(ctx, endpoint, &fileResp); err != nil {
		return nil, err
	}
	return &fileResp, nil
}

// GetFileNodes retrieves only the requested node subtrees of a file.
func (c *Client) GetFileNodes(ctx context.Context, fileKey string, nodeIDs []string, opts FileOptions) (*NodesResponse, error) {
	if len(nodeIDs) == 0 {
		return nil, fmt.Errorf("at least one node id is required")
	}
	q := opts.query()
	q.Set("ids", strings.Join(nodeIDs, ","))
	endpoint := fmt.Sprintf("%s/files/%s/nodes?%s", c.baseURL, url.PathEscape(fileKey), q.Encode())

	var nodesResp NodesResponse
	if err := c.getJSON(ctx, endpoint, &nodesResp); err != nil {
		return nil, err
	}
	return &nodesResp, nil
}

// GetImages asks the render API for image URLs of the given nodes.
func (c *Client) GetImages(ctx context.Context, fileKey string, nodeIDs []string, format string, scale float64) (*ImagesResponse, error) {
	q := url.Values{}
	q.Set("ids", strings.Join(nodeIDs, ","))
	q.Set("format", format)
	if scale > 0 && format != "svg" && format != "pdf" {
		q.Set("scale", strconv.FormatFloat(scale, 'g', -1, 64))
	}
	endpoint := fmt.Sprintf("%s/images/%s?%s", c.baseURL, url.PathEscape(fileKey), q.Encode())

	var imgResp ImagesResponse
	if err := c.getJSON(ctx, endpoint, &imgResp); err != nil {
		return nil, err
	}
	if imgResp.Err != nil && *imgResp.Err != "" {
		return nil, fmt.Errorf("render API error: %s", *imgResp.Err)
	}
	return &imgResp, nil
}

// Download fetches a rendered image from the (pre-signed) URL returned by GetImages.
// The token is not sent: image URLs point at a storage host, not the API.
func (c *Client) Download(ctx context.Context, imageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP GET failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d downloading image", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image body: %w", err)
	}
	return body, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	body, err := c.get(ctx, endpoint)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// get performs an authenticated GET with retries on transport errors, 429 and 5xx.
func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	var lastErr error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		body, retry, err := c.do(ctx, endpoint)
		if err == nil {
			return body, nil
		}
		lastErr = fmt.Errorf("attempt %d: %w", attempt, err)
		if !retry || attempt == maxRetries {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(attempt) * c.backoff):
		}
	}

	return nil, lastErr
}

func (c *Client) do(ctx context.Context, endpoint string) (body []byte, retry bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Figma-Token", c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, ctx.Err() == nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		retry = resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
		return nil, retry, &APIError{Status: resp.StatusCode, Body: string(body)}
	}

	return body, false, nil
}
