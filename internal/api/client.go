// Package api is the HTTP client for the Desktop Index backend REST API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	apperrors "dxview/internal/errors"
	"dxview/internal/fileinfo"
)

// Config holds client configuration
type Config struct {
	BaseURL  string
	Timeout  time.Duration
	APIToken string // optional; sent as a bearer token when set
}

// Client talks to the indexing backend. Safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	apiToken   string
	debugPrint func(format string, args ...interface{})
}

// New creates a new backend client
func New(cfg Config, debugPrint func(format string, args ...interface{})) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		apiToken:   cfg.APIToken,
		debugPrint: debugPrint,
	}
}

// Message is the backend's generic success/message response body
type Message struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// SearchResult is the response of the full-text search endpoint
type SearchResult struct {
	Hits             []fileinfo.FileInfo `json:"hits"`
	TotalHits        int                 `json:"total_hits"`
	ProcessingTimeMs int                 `json:"processing_time_ms"`
	Query            string              `json:"query"`
}

// SearchOptions narrows a search request
type SearchOptions struct {
	Limit     int
	Offset    int
	Extension string // leading-dot form, e.g. ".pdf"
	Sort      string // e.g. "modified_at:desc"
}

// Stats is the index statistics response
type Stats struct {
	TotalDocuments    int            `json:"total_documents"`
	IsIndexing        bool           `json:"is_indexing"`
	FieldDistribution map[string]int `json:"field_distribution"`
}

// CrawlStatus is the crawl scheduler status response
type CrawlStatus struct {
	IsRunning      bool   `json:"is_running"`
	LastRun        string `json:"last_run"`
	NextRun        string `json:"next_run"`
	FilesProcessed int    `json:"files_processed"`
	CurrentPath    string `json:"current_path"`
}

// Health is the service health response
type Health struct {
	Status      string `json:"status"`
	Meilisearch string `json:"meilisearch"`
}

type recentResponse struct {
	Hits      []fileinfo.FileInfo `json:"hits"`
	TotalHits int                 `json:"total_hits"`
	Days      int                 `json:"days"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func (c *Client) dbg(format string, args ...interface{}) {
	if c.debugPrint != nil {
		c.debugPrint(format, args...)
	}
}

// do issues one request and returns status plus the raw body.
// Transport-level failures surface as network errors with status 0.
func (c *Client) do(ctx context.Context, operation, method, path string, query url.Values, body interface{}) (int, []byte, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, nil, apperrors.NewParseError(operation, "encoding request body", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return 0, nil, apperrors.NewNetworkError(operation, 0, err.Error())
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}

	c.dbg("API %s %s", method, u)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, apperrors.NewNetworkError(operation, 0, err.Error())
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, apperrors.NewNetworkError(operation, resp.StatusCode, err.Error())
	}
	return resp.StatusCode, data, nil
}

// detailMessage extracts the backend's {detail} error field, falling back to
// the given generic message when the body carries none
func detailMessage(body []byte, fallback string) string {
	var er errorResponse
	if err := json.Unmarshal(body, &er); err == nil && er.Detail != "" {
		return er.Detail
	}
	return fallback
}

// FetchRecent retrieves files modified within the last days days.
// Exactly one request per call; no retries. A well-formed response without a
// hits field yields an empty slice.
func (c *Client) FetchRecent(ctx context.Context, days int) ([]fileinfo.FileInfo, error) {
	const op = "fetch_recent"
	query := url.Values{}
	query.Set("days", strconv.Itoa(days))

	status, body, err := c.do(ctx, op, http.MethodGet, "/api/recent", query, nil)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, apperrors.NewNetworkError(op, status, detailMessage(body, http.StatusText(status)))
	}

	var out recentResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, apperrors.NewParseError(op, "malformed response body", err)
	}
	if out.Hits == nil {
		return []fileinfo.FileInfo{}, nil
	}
	return out.Hits, nil
}

// OpenFolder asks the backend to reveal the file's parent folder in the OS
// file explorer. Failure messages come from the backend's detail field when
// present.
func (c *Client) OpenFolder(ctx context.Context, path string) (*Message, error) {
	const op = "open_folder"
	status, body, err := c.do(ctx, op, http.MethodPost, "/api/open-folder", nil, map[string]string{"path": path})
	if err != nil {
		return nil, apperrors.NewOpenFolderError(path, err.Error(), err)
	}
	if status < 200 || status >= 300 {
		return nil, apperrors.NewOpenFolderError(path, detailMessage(body, "could not open the folder"), nil)
	}

	var msg Message
	if err := json.Unmarshal(body, &msg); err != nil {
		return nil, apperrors.NewParseError(op, "malformed response body", err)
	}
	return &msg, nil
}

// Search runs a full-text query against the index
func (c *Client) Search(ctx context.Context, q string, opts SearchOptions) (*SearchResult, error) {
	const op = "search"
	query := url.Values{}
	query.Set("q", q)
	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Offset > 0 {
		query.Set("offset", strconv.Itoa(opts.Offset))
	}
	if opts.Extension != "" {
		query.Set("extension", opts.Extension)
	}
	if opts.Sort != "" {
		query.Set("sort", opts.Sort)
	}

	var out SearchResult
	if err := c.getJSON(ctx, op, "/api/search", query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Stats retrieves index statistics
func (c *Client) Stats(ctx context.Context) (*Stats, error) {
	var out Stats
	if err := c.getJSON(ctx, "stats", "/api/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CrawlStatus retrieves the crawl scheduler state
func (c *Client) CrawlStatus(ctx context.Context) (*CrawlStatus, error) {
	var out CrawlStatus
	if err := c.getJSON(ctx, "crawl_status", "/api/crawl/status", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// StartCrawl requests an immediate crawl run
func (c *Client) StartCrawl(ctx context.Context) (*Message, error) {
	return c.postMessage(ctx, "start_crawl", "/api/crawl/start")
}

// StopCrawl interrupts a running crawl
func (c *Client) StopCrawl(ctx context.Context) (*Message, error) {
	return c.postMessage(ctx, "stop_crawl", "/api/crawl/stop")
}

// ClearIndex deletes every indexed document. Irreversible; callers should
// confirm with the user first.
func (c *Client) ClearIndex(ctx context.Context) (*Message, error) {
	return c.postMessage(ctx, "clear_index", "/api/index/clear")
}

// Health checks backend and search-engine connectivity
func (c *Client) Health(ctx context.Context) (*Health, error) {
	var out Health
	if err := c.getJSON(ctx, "health", "/api/health", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) getJSON(ctx context.Context, operation, path string, query url.Values, out interface{}) error {
	status, body, err := c.do(ctx, operation, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	if status < 200 || status >= 300 {
		return apperrors.NewNetworkError(operation, status, detailMessage(body, http.StatusText(status)))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return apperrors.NewParseError(operation, "malformed response body", err)
	}
	return nil
}

func (c *Client) postMessage(ctx context.Context, operation, path string) (*Message, error) {
	status, body, err := c.do(ctx, operation, http.MethodPost, path, nil, nil)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, apperrors.NewNetworkError(operation, status, detailMessage(body, http.StatusText(status)))
	}
	var msg Message
	if err := json.Unmarshal(body, &msg); err != nil {
		return nil, apperrors.NewParseError(operation, "malformed response body", err)
	}
	return &msg, nil
}

// String renders the crawl status for logs and the stats panel
func (s *CrawlStatus) String() string {
	if s.IsRunning {
		return fmt.Sprintf("running (%d files, at %s)", s.FilesProcessed, s.CurrentPath)
	}
	return fmt.Sprintf("idle (last run %s)", s.LastRun)
}
