// Package aigateway wraps an OpenAI-compatible completion endpoint behind
// tiered model lists, per-tier timeouts and deterministic fallbacks. Every
// public operation resolves with a usable value; transport, timeout and
// parse failures are recovered internally and only show up in logs.
package aigateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"ai-task-manager/internal/cache"
	"ai-task-manager/internal/models"
)

// Config holds the endpoint settings and the model tiers. Lightning models
// answer foreground enhancement, speed models back it up after a failure,
// and quality models serve detached background refinement.
type Config struct {
	BaseURL string
	APIKey  string

	LightningModels []string
	SpeedModels     []string
	QualityModels   []string

	LightningTimeout time.Duration
	SpeedTimeout     time.Duration
	QualityTimeout   time.Duration
	ParseTimeout     time.Duration
	PlanTimeout      time.Duration
	CoachTimeout     time.Duration

	// CacheTTL bounds how long responses stay reusable within a session.
	CacheTTL time.Duration
}

// DefaultConfig returns the standard tier setup, reading the endpoint and
// key from OPENAI_BASE_URL / OPENAI_API_KEY.
func DefaultConfig() Config {
	return Config{
		BaseURL: getEnv("OPENAI_BASE_URL", "https://openrouter.ai/api/v1"),
		APIKey:  os.Getenv("OPENAI_API_KEY"),

		LightningModels: []string{"google/gemini-flash-1.5-8b"},
		SpeedModels:     []string{"openai/gpt-4o-mini", "meta-llama/llama-3.1-8b-instruct"},
		QualityModels:   []string{"openai/gpt-4o"},

		LightningTimeout: 700 * time.Millisecond,
		SpeedTimeout:     2 * time.Second,
		QualityTimeout:   12 * time.Second,
		ParseTimeout:     800 * time.Millisecond,
		PlanTimeout:      2 * time.Second,
		CoachTimeout:     1500 * time.Millisecond,

		CacheTTL: 30 * time.Minute,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Client is the AI gateway. It owns the response caches; no other component
// reads or writes them.
type Client struct {
	cfg        Config
	httpClient *http.Client

	enhancements *cache.SimpleCache[string, models.TaskEnhancement]
	insights     *cache.SimpleCache[string, []models.AIInsight]

	now func() time.Time
	wg  sync.WaitGroup
}

// New constructs a gateway client from cfg.
func New(cfg Config) *Client {
	return &Client{
		cfg:          cfg,
		httpClient:   &http.Client{},
		enhancements: cache.NewSimpleCache[string, models.TaskEnhancement](),
		insights:     cache.NewSimpleCache[string, []models.AIInsight](),
		now:          time.Now,
	}
}

// Wait blocks until all detached background refinement calls have settled.
// Used by tests and shutdown draining; normal callers never wait.
func (c *Client) Wait() {
	c.wg.Wait()
}

func (c *Client) spawn(f func()) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		f()
	}()
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
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

// errTimeout marks a completion call that lost its race against the tier
// timeout. Indistinguishable from transport failure to callers.
var errTimeout = errors.New("aigateway: completion timed out")

// complete issues one chat-completion request and returns the raw text.
func (c *Client) complete(ctx context.Context, model, system, user string, temperature float64, maxTokens int) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return "", err
	}
	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("completion status %d: %s", res.StatusCode, truncate(string(raw), 200))
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", err
	}
	if parsed.Error != nil {
		return "", errors.New(parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New("completion returned no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}

// completeRaced races complete against timeout. The network call is not
// cancelled when it loses; its eventual result lands in a buffered channel
// nobody reads, so a late resolution can never supersede the fallback.
func (c *Client) completeRaced(ctx context.Context, model, system, user string, temperature float64, maxTokens int, timeout time.Duration) (string, error) {
	type outcome struct {
		text string
		err  error
	}
	ch := make(chan outcome, 1)
	go func() {
		text, err := c.complete(ctx, model, system, user, temperature, maxTokens)
		ch <- outcome{text: text, err: err}
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case out := <-ch:
		return out.text, out.err
	case <-timer.C:
		return "", errTimeout
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
