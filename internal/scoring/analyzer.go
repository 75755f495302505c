package scoring

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/ddanilov/hhscreen/internal/llm"
	"github.com/ddanilov/hhscreen/internal/logger"
)

// Analyzer scores (vacancy, resume) pairs through an injected LLM provider.
type Analyzer struct {
	provider llm.Provider
	validate *validator.Validate
	config   Config
}

// Config holds analyzer settings.
type Config struct {
	MaxRetries  int           // attempts against a rate-limited backend
	BaseDelay   time.Duration // backoff base, doubled per attempt
	Temperature float64
	MaxTokens   int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxRetries: 5,
		BaseDelay:  5 * time.Second,
		MaxTokens:  8192,
	}
}

// Option configures the analyzer.
type Option func(*Config)

// WithMaxRetries sets the number of attempts against a rate-limited backend.
func WithMaxRetries(n int) Option {
	return func(c *Config) {
		c.MaxRetries = n
	}
}

// WithBaseDelay sets the backoff base delay.
func WithBaseDelay(d time.Duration) Option {
	return func(c *Config) {
		c.BaseDelay = d
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) Option {
	return func(c *Config) {
		c.Temperature = t
	}
}

// WithMaxTokens sets the response token cap.
func WithMaxTokens(n int) Option {
	return func(c *Config) {
		c.MaxTokens = n
	}
}

// New creates an Analyzer.
func New(provider llm.Provider, opts ...Option) *Analyzer {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Analyzer{
		provider: provider,
		validate: validator.New(),
		config:   cfg,
	}
}

// Analyze submits a rendered prompt and returns the validated analysis.
// Only rate limiting is retried, with exponential backoff; a malformed or
// schema-invalid response fails the pair immediately.
func (a *Analyzer) Analyze(ctx context.Context, prompt string) (*Analysis, error) {
	for attempt := 0; attempt < a.config.MaxRetries; attempt++ {
		resp, err := a.provider.Complete(ctx, llm.Request{
			Messages: []llm.Message{
				{Role: llm.RoleSystem, Content: systemPrompt},
				{Role: llm.RoleUser, Content: prompt},
			},
			MaxTokens:   a.config.MaxTokens,
			Temperature: a.config.Temperature,
			JSONOnly:    true,
		})
		if err != nil {
			if errors.Is(err, llm.ErrRateLimited) {
				wait := a.config.BaseDelay << attempt
				logger.Warn("rate limited, backing off", "wait", wait, "attempt", attempt+1)
				select {
				case <-ctx.Done():
					return nil, ctx.Err()
				case <-time.After(wait):
				}
				continue
			}
			return nil, err
		}

		if resp.Content == "" {
			return nil, errors.New("empty response from model")
		}

		var analysis Analysis
		cleaned := stripFences(resp.Content)
		if err := json.Unmarshal([]byte(cleaned), &analysis); err != nil {
			return nil, fmt.Errorf("decode analysis: %w (response: %s)", err, truncate(cleaned, 100))
		}
		if err := a.validate.Struct(&analysis); err != nil {
			return nil, fmt.Errorf("analysis failed schema validation: %w", err)
		}

		logger.Debug("analysis complete",
			"provider", a.provider.Name(),
			"score", analysis.Scoring.TotalScore,
			"input_tokens", resp.Usage.InputTokens,
			"output_tokens", resp.Usage.OutputTokens)
		return &analysis, nil
	}

	return nil, fmt.Errorf("rate limited after %d attempts: %w", a.config.MaxRetries, llm.ErrRateLimited)
}

// stripFences removes a markdown code fence wrapper from a JSON reply.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.Trim(s, "`")
		s = strings.TrimPrefix(s, "json")
	}
	return strings.TrimSpace(s)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
