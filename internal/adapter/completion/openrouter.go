package completion

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"quizflow/internal/config"
	"quizflow/internal/domain"
)

// OpenRouterClient implements domain.CompletionClient against an
// OpenRouter-style chat-completion endpoint.
type OpenRouterClient struct {
	cfg    config.OpenRouterConfig
	http   *http.Client
	logger *zap.Logger
	flight singleflight.Group

	// sleep is replaceable in tests so the backoff schedule can be observed
	// without waiting for it.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewOpenRouterClient creates a new OpenRouterClient. A missing API key is
// not an error here: Complete reports MISSING_CREDENTIAL per call, which is
// the pipeline's only hard failure.
func NewOpenRouterClient(cfg config.OpenRouterConfig, logger *zap.Logger) *OpenRouterClient {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 3
	}
	if cfg.BackoffBase <= 0 {
		cfg.BackoffBase = time.Second
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 20 * time.Second
	}
	return &OpenRouterClient{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.RequestTimeout},
		logger: logger,
		sleep:  sleepContext,
	}
}

type chatRequest struct {
	Model       string               `json:"model"`
	Messages    []domain.ChatMessage `json:"messages"`
	MaxTokens   int                  `json:"max_tokens"`
	Temperature float64              `json:"temperature"`
	Stream      bool                 `json:"stream"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Complete sends the request with bounded retry. Identical concurrent
// requests are collapsed into a single in-flight call.
func (c *OpenRouterClient) Complete(ctx context.Context, req domain.CompletionRequest) (string, error) {
	if c.cfg.APIKey == "" {
		return "", domain.NewMissingCredentialError()
	}

	content, err, _ := c.flight.Do(requestKey(req), func() (interface{}, error) {
		return c.complete(ctx, req)
	})
	if err != nil {
		return "", err
	}
	return content.(string), nil
}

// complete runs the retry loop: up to MaxAttempts attempts, with the backoff
// delay doubling before each retry. Non-retryable failures (4xx other than
// 429) surface immediately; a context past its deadline skips any remaining
// retries.
func (c *OpenRouterClient) complete(ctx context.Context, req domain.CompletionRequest) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:       req.Model,
		Messages:    req.Messages,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
		Stream:      false,
	})
	if err != nil {
		return "", domain.NewInternalError("failed to encode completion request", err)
	}

	var lastErr error
	for attempt := 0; attempt < c.cfg.MaxAttempts; attempt++ {
		if attempt > 0 {
			delay := c.cfg.BackoffBase << (attempt - 1)
			c.logger.Info("retrying completion request",
				zap.Int("attempt", attempt+1),
				zap.Duration("backoff", delay),
			)
			if err := c.sleep(ctx, delay); err != nil {
				lastErr = err
				break
			}
		}

		content, retryable, err := c.attempt(ctx, body)
		if err == nil {
			return content, nil
		}
		lastErr = err
		if !retryable {
			break
		}
		c.logger.Warn("completion attempt failed",
			zap.Int("attempt", attempt+1),
			zap.Error(err),
		)
	}
	return "", domain.NewCompletionUnavailableError(lastErr)
}

// attempt performs one HTTP round trip. The second return value reports
// whether the failure is worth retrying.
func (c *OpenRouterClient) attempt(ctx context.Context, body []byte) (string, bool, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", false, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	httpReq.Header.Set("HTTP-Referer", c.cfg.Referer)
	httpReq.Header.Set("X-Title", c.cfg.AppTitle)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", true, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
		return "", true, fmt.Errorf("completion service returned %d", resp.StatusCode)
	}
	if resp.StatusCode >= 400 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", false, fmt.Errorf("completion service returned %d: %s", resp.StatusCode, detail)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", false, fmt.Errorf("completion service returned unparseable body: %w", err)
	}
	if parsed.Error != nil {
		return "", false, fmt.Errorf("completion service error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", false, fmt.Errorf("completion service returned no choices")
	}
	return parsed.Choices[0].Message.Content, false, nil
}

// requestKey digests a request so identical concurrent calls share one
// network round trip.
func requestKey(req domain.CompletionRequest) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%d|%g|", req.Model, req.MaxTokens, req.Temperature)
	for _, m := range req.Messages {
		fmt.Fprintf(h, "%s:%s|", m.Role, m.Content)
	}
	return hex.EncodeToString(h.Sum(nil))
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

var _ domain.CompletionClient = (*OpenRouterClient)(nil)
