// Package ai wraps the optional Gemini collaborator that produces cryptic
// name clues and short player bios. It is fully decoupled from the core
// clue/guess path: every call has a bounded timeout and failures degrade
// to an error the HTTP layer reports as "feature unavailable".
package ai

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/albionarcade/gully/internal/domain/model"
	"github.com/albionarcade/gully/pkg/metrics"
)

// Default client configuration constants.
const (
	defaultModel         = "gemini-2.5-flash-lite"
	defaultTimeout       = 10 * time.Second
	defaultRatePerMinute = 10
	millisecondsPerSec   = 1000
)

// Client calls Gemini with rate limiting and bounded timeouts.
type Client struct {
	model   string
	timeout time.Duration
	limiter *rate.Limiter
	genai   *genai.Client
}

// New constructs a Client. An empty API key yields a disabled client whose
// calls return ErrDisabled; the game runs fine without it.
func New(ctx context.Context, apiKey string, opts ...Option) (*Client, error) {
	c := &Client{
		model:   defaultModel,
		timeout: defaultTimeout,
		limiter: rate.NewLimiter(rate.Every(time.Minute/defaultRatePerMinute), 1),
	}
	for _, opt := range opts {
		opt(c)
	}

	if apiKey == "" {
		return c, nil
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrClientInit, err)
	}
	c.genai = gc
	return c, nil
}

// Enabled reports whether the collaborator is configured.
func (c *Client) Enabled() bool {
	return c.genai != nil
}

// CrypticClue generates a wordplay clue based only on the player's name.
func (c *Client) CrypticClue(ctx context.Context, p model.Player) (string, error) {
	prompt := fmt.Sprintf(crypticCluePrompt, p.FullName(), p.FullName())
	return c.generate(ctx, "cryptic_clue", prompt)
}

// Bio generates a short biography from the provided facts only.
func (c *Client) Bio(ctx context.Context, p model.Player) (string, error) {
	next := p.NextTeam
	if next == "" {
		next = "n/a"
	}
	prev := p.PreviousTeam
	if prev == "" {
		prev = "youth academy"
	}
	prompt := fmt.Sprintf(bioPrompt,
		p.Years, p.FullName(), p.Position, p.Appearances, p.Goals, prev, next)
	return c.generate(ctx, "bio", prompt)
}

func (c *Client) generate(ctx context.Context, kind, prompt string) (string, error) {
	if !c.Enabled() {
		metrics.RecordAIRequest(kind, "disabled")
		return "", ErrDisabled
	}
	// Never queue behind the limiter; shedding keeps the request cheap.
	if !c.limiter.Allow() {
		metrics.RecordAIRequest(kind, "throttled")
		return "", ErrThrottled
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.genai.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	elapsed := float64(time.Since(start).Microseconds()) / millisecondsPerSec
	metrics.RecordAILatency(kind, elapsed)
	if err != nil {
		metrics.RecordAIRequest(kind, "error")
		return "", fmt.Errorf("%w: %v", ErrGenerate, err)
	}

	text := resp.Text()
	if text == "" {
		metrics.RecordAIRequest(kind, "empty")
		return "", ErrGenerate
	}
	metrics.RecordAIRequest(kind, "ok")
	return text, nil
}
