// Package suggestion is a client for an OpenAI-compatible chat-completions
// endpoint that proposes alternatives for a contended screen booking.
package suggestion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"syscall"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/screentime/screentime-api/internal/pkg/errorhandler"
	"github.com/screentime/screentime-api/internal/pkg/metrics"
)

const (
	defaultTimeout   = 10 * time.Second
	maxResponseBytes = 1 << 20
	breakerName      = "suggestion"
)

// ErrCircuitOpen is returned while the breaker rejects calls
var ErrCircuitOpen = errors.New("suggestion service unavailable: circuit open")

// Input describes the user's selection
type Input struct {
	SelectedScreen     string
	SelectedDate       string // YYYY-MM-DD
	SelectedTimePeriod string
	NearbyScreens      []string
	DemandLevel        string
	AllowedTimePeriods []string
}

// Output is the structured answer expected from the model
type Output struct {
	AlternativeTimeSlots        []string `json:"alternativeTimeSlots"`
	NearbyScreenRecommendations []string `json:"nearbyScreenRecommendations"`
	Reasoning                   string   `json:"reasoning"`
}

// Config holds client settings
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration

	// Breaker settings; zero values use defaults.
	FailureThreshold uint32
	OpenTimeout      time.Duration
}

// Client represents the suggestion HTTP client.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[*Output]
}

// NewClient creates a new suggestion client.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	threshold := cfg.FailureThreshold
	if threshold == 0 {
		threshold = 5
	}
	openTimeout := cfg.OpenTimeout
	if openTimeout <= 0 {
		openTimeout = 30 * time.Second
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          20,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		http: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		breaker: gobreaker.NewCircuitBreaker[*Output](gobreaker.Settings{
			Name:        breakerName,
			MaxRequests: 1,
			Interval:    time.Minute,
			Timeout:     openTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= threshold
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
				metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
			},
		}),
	}
}

// Suggest asks the model for alternatives to the given selection.
func (c *Client) Suggest(ctx context.Context, in Input) (*Output, error) {
	if c == nil || c.http == nil {
		return nil, fmt.Errorf("suggestion request error: client is nil")
	}
	if strings.TrimSpace(c.baseURL) == "" {
		return nil, fmt.Errorf("suggestion config error: base_url is empty")
	}
	if strings.TrimSpace(c.apiKey) == "" {
		return nil, fmt.Errorf("suggestion config error: api key is empty")
	}

	out, err := c.breaker.Execute(func() (*Output, error) {
		return c.do(ctx, in)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %w", ErrCircuitOpen, err)
	}
	return out, err
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	ResponseFormat responseFormat `json:"response_format"`
	Temperature    float64        `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (c *Client) do(ctx context.Context, in Input) (*Output, error) {
	payload, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildPrompt(in)},
		},
		ResponseFormat: responseFormat{Type: "json_object"},
		Temperature:    0.2,
	})
	if err != nil {
		return nil, fmt.Errorf("suggestion request error: %w", err)
	}

	endpoint := c.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(payload))
	if err != nil {
		return nil, fmt.Errorf("suggestion request error: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, classifyRequestError(ctx, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("suggestion read error: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("suggestion http error: status=%d", resp.StatusCode)
		errorhandler.LogExternalServiceError(ctx, "suggestion", endpoint, resp.StatusCode, err, string(body))
		return nil, err
	}

	return decodeOutput(body)
}

func decodeOutput(body []byte) (*Output, error) {
	var chat chatResponse
	if err := json.Unmarshal(body, &chat); err != nil {
		return nil, fmt.Errorf("suggestion decode error: %w", err)
	}
	if len(chat.Choices) == 0 {
		return nil, fmt.Errorf("suggestion decode error: no choices in response")
	}

	content := strings.TrimSpace(chat.Choices[0].Message.Content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var out Output
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &out); err != nil {
		return nil, fmt.Errorf("suggestion decode error: content is not the expected JSON object: %w", err)
	}
	return &out, nil
}

func classifyRequestError(ctx context.Context, err error) error {
	if isTimeoutError(ctx, err) {
		return fmt.Errorf("suggestion timeout: %w", err)
	}
	if isNetworkError(err) {
		return fmt.Errorf("suggestion network error: %w", err)
	}
	return fmt.Errorf("suggestion request error: %w", err)
}

func isTimeoutError(ctx context.Context, err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return false
}

func isNetworkError(err error) bool {
	if err == nil {
		return false
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		err = urlErr.Err
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	return errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET)
}

func stateToFloat(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// State returns the breaker state, for health reporting
func (c *Client) State() string {
	return c.breaker.State().String()
}
