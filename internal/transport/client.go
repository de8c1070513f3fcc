package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"sportseek/internal/domain"
	"sportseek/internal/logging"
)

// Backend paths
const (
	PathSearch         = "/search"
	PathTriggerIndexer = "/trigger-indexer"
	PathClearIndexer   = "/clear-indexer"
)

// Operation names used in errors and logs
const (
	OpSearch       = "search"
	OpTriggerIndex = "trigger-index"
	OpClearIndex   = "clear-index"
)

const (
	headerRequestID = "X-Request-ID"
	maxBodyBytes    = 8 << 20
	defaultAgent    = "sportseek"
)

// Config configures a Client
type Config struct {
	BaseURL           string
	Timeout           time.Duration // per call; 0 disables
	RequestsPerSecond float64       // 0 disables pacing
	UserAgent         string
}

// Option customises a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger used for request logging
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// Client talks to the search backend. It never retries; a retry policy
// belongs to the caller. Safe for concurrent use.
type Client struct {
	base      *url.URL
	http      *http.Client
	limiter   *rate.Limiter
	timeout   time.Duration
	userAgent string
	log       zerolog.Logger
}

// New creates a client for the backend at cfg.BaseURL
func New(cfg Config, opts ...Option) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", cfg.BaseURL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" || base.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: want an absolute http(s) URL", cfg.BaseURL)
	}
	if cfg.RequestsPerSecond < 0 {
		return nil, fmt.Errorf("requests per second must not be negative, got %v", cfg.RequestsPerSecond)
	}

	c := &Client{
		base:      base,
		http:      &http.Client{},
		timeout:   cfg.Timeout,
		userAgent: cfg.UserAgent,
		log:       logging.Component("transport"),
	}
	if c.userAgent == "" {
		c.userAgent = defaultAgent
	}
	if cfg.RequestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the backend base URL
func (c *Client) BaseURL() string {
	return c.base.String()
}

// Search runs a query against the backend
func (c *Client) Search(ctx context.Context, req domain.SearchRequest) (*domain.SearchResponse, error) {
	var resp domain.SearchResponse
	if err := c.do(ctx, OpSearch, http.MethodGet, PathSearch, EncodeSearchParams(req), &resp); err != nil {
		return nil, err
	}
	if err := checkStatus(OpSearch, resp.Status, resp.Message); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		resp.Data = []domain.SearchResultItem{}
	}
	return &resp, nil
}

// TriggerIndex asks the backend to (re)build its index
func (c *Client) TriggerIndex(ctx context.Context) (*domain.ApiResponse, error) {
	return c.ack(ctx, OpTriggerIndex, http.MethodGet, PathTriggerIndexer)
}

// ClearIndex asks the backend to drop its index
func (c *Client) ClearIndex(ctx context.Context) (*domain.ApiResponse, error) {
	return c.ack(ctx, OpClearIndex, http.MethodDelete, PathClearIndexer)
}

func (c *Client) ack(ctx context.Context, op, method, path string) (*domain.ApiResponse, error) {
	var resp domain.ApiResponse
	if err := c.do(ctx, op, method, path, nil, &resp); err != nil {
		return nil, err
	}
	if err := checkStatus(op, resp.Status, resp.Message); err != nil {
		return nil, err
	}
	return &resp, nil
}

// EncodeSearchParams turns req into query parameters, leaving out unset fields
func EncodeSearchParams(req domain.SearchRequest) url.Values {
	v := url.Values{}
	v.Set("query", req.Query)
	if req.Count != nil {
		v.Set("count", strconv.Itoa(*req.Count))
	}
	if req.SortMethod != nil && *req.SortMethod != "" {
		v.Set("sort_method", strings.ToLower(string(*req.SortMethod)))
	}
	if req.WeightRelevance != nil {
		v.Set("weight_relevance", formatFloat(*req.WeightRelevance))
	}
	if req.WeightScore != nil {
		v.Set("weight_score", formatFloat(*req.WeightScore))
	}
	if req.WeightTime != nil {
		v.Set("weight_time", formatFloat(*req.WeightTime))
	}
	if req.UsePageRank != nil {
		v.Set("use_pagerank", strconv.FormatBool(*req.UsePageRank))
	}
	return v
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return &TransportError{Kind: NetworkFailure, Op: op, Detail: "rate limiter: " + err.Error(), Err: err}
		}
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	u := c.base.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), nil)
	if err != nil {
		return &TransportError{Kind: NetworkFailure, Op: op, Detail: err.Error(), Err: err}
	}
	reqID := uuid.New().String()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(headerRequestID, reqID)

	log := c.log.With().
		Str(logging.FieldRequestID, reqID).
		Str(logging.FieldMethod, method).
		Str(logging.FieldPath, path).
		Logger()

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn().Err(err).Msg("request failed")
		return &TransportError{Kind: NetworkFailure, Op: op, Detail: networkDetail(err), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		log.Warn().Err(err).Int(logging.FieldStatus, resp.StatusCode).Msg("reading response failed")
		return &TransportError{Kind: NetworkFailure, Op: op, StatusCode: resp.StatusCode, Detail: networkDetail(err), Err: err}
	}

	log.Debug().
		Int(logging.FieldStatus, resp.StatusCode).
		Int64(logging.FieldLatency, time.Since(start).Milliseconds()).
		Int("bytes", len(body)).
		Msg("request completed")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &TransportError{Kind: ServerError, Op: op, StatusCode: resp.StatusCode, Detail: errorDetail(resp.StatusCode, body)}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &TransportError{Kind: DecodeFailure, Op: op, StatusCode: resp.StatusCode, Detail: err.Error(), Err: err}
	}
	return nil
}

// checkStatus turns an in-band {"status":"error"} body into a ServerError.
// The backend reports its own failures that way with HTTP 200.
func checkStatus(op, status, message string) error {
	if !strings.EqualFold(status, domain.StatusError) {
		return nil
	}
	if message == "" {
		message = "backend reported an error"
	}
	return &TransportError{Kind: ServerError, Op: op, StatusCode: http.StatusOK, Detail: message}
}

func networkDetail(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "request timed out"
	case errors.Is(err, context.Canceled):
		return "request cancelled"
	}
	return err.Error()
}

func errorDetail(status int, body []byte) string {
	var ack domain.ApiResponse
	if err := json.Unmarshal(body, &ack); err == nil && ack.Message != "" {
		return ack.Message
	}
	// FastAPI style {"detail": "..."}
	var fastapi struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &fastapi); err == nil && fastapi.Detail != "" {
		return fastapi.Detail
	}
	text := strings.TrimSpace(string(body))
	if text == "" {
		return http.StatusText(status)
	}
	if len(text) > 200 {
		text = text[:200] + "..."
	}
	return text
}
