package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// HTTPDoer abstracts the HTTP client used by Client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client calls an OpenAI-compatible streaming chat-completions endpoint.
type Client struct {
	cfg     Config
	http    HTTPDoer
	limiter *rate.Limiter
	logger  *zap.Logger
	now     func() time.Time
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(doer HTTPDoer) Option {
	return func(c *Client) {
		if doer != nil {
			c.http = doer
		}
	}
}

// WithLogger sets the client logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithClock overrides the time source used for latency measurement.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// NewClient validates cfg and builds a client.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	resolved, err := cfg.withDefaults()
	if err != nil {
		return nil, err
	}
	client := &Client{
		cfg:    resolved,
		http:   http.DefaultClient,
		logger: zap.NewNop(),
		now:    time.Now,
	}
	if resolved.RequestsPerSecond > 0 {
		burst := int(resolved.RequestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		client.limiter = rate.NewLimiter(rate.Limit(resolved.RequestsPerSecond), burst)
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.cfg.Model
}

// Call sends req and streams the completion. Latency is measured from
// dispatch, after any rate limiter wait.
func (c *Client) Call(ctx context.Context, req Request) (Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return Response{}, fmt.Errorf("rate limit: %w", err)
		}
	}
	payload, err := c.buildPayload(req)
	if err != nil {
		return Response{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	endpoint := c.cfg.BaseURL + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return Response{}, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")

	start := c.now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return Response{}, fmt.Errorf("oracle request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return Response{}, fmt.Errorf("oracle error (%d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var (
		ttft     time.Duration
		gotFirst bool
	)
	text, sawChoices, err := readStream(resp.Body, func() {
		ttft = c.now().Sub(start)
		gotFirst = true
	})
	endToEnd := c.now().Sub(start)
	if err != nil {
		return Response{}, err
	}
	if !sawChoices {
		return Response{}, ErrEmptyResponse
	}
	if !gotFirst {
		ttft = endToEnd
	}
	c.logger.Debug("oracle call completed",
		zap.String("model", c.cfg.Model),
		zap.Int("media", len(req.Media)),
		zap.Duration("ttft", ttft),
		zap.Duration("end_to_end", endToEnd),
		zap.Int("chars", len(text)),
	)
	return Response{Text: text, TTFT: ttft, EndToEnd: endToEnd}, nil
}

func (c *Client) buildPayload(req Request) ([]byte, error) {
	content, err := buildContent(req)
	if err != nil {
		return nil, err
	}
	body := chatRequest{
		Model:       c.cfg.Model,
		Stream:      true,
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
		Messages:    []chatMessage{{Role: "user", Content: content}},
	}
	if req.MaxTokens > 0 {
		body.MaxTokens = req.MaxTokens
	}
	if req.Temperature != nil {
		body.Temperature = *req.Temperature
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	return payload, nil
}
