package message

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/pacerdev/pacer/internal/platform/logger"
)

// GenerativeClient abstracts the Gemini generative AI client for testability.
type GenerativeClient interface {
	// GenerateContent sends a prompt and returns a response.
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// ClientFactory creates a GenerativeClient. Production code uses
// DefaultClientFactory; tests inject a factory that returns a mock.
type ClientFactory func(ctx context.Context, apiKey string) (GenerativeClient, error)

// genaiClient wraps the real genai.Client to satisfy GenerativeClient.
type genaiClient struct {
	inner *genai.Client
}

func (g *genaiClient) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	return g.inner.Models.GenerateContent(ctx, model, contents, config)
}

// DefaultClientFactory creates a real Gemini API client.
func DefaultClientFactory(ctx context.Context, apiKey string) (GenerativeClient, error) {
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &genaiClient{inner: c}, nil
}

// GeminiGenerator implements Generator using the Google Gemini API.
type GeminiGenerator struct {
	apiKey  string
	model   string
	factory ClientFactory
}

// NewGeminiGenerator creates a new GeminiGenerator.
// The apiKey must be non-empty; callers should validate before construction.
func NewGeminiGenerator(apiKey, model string, factory ClientFactory) *GeminiGenerator {
	if model == "" {
		model = "gemini-3-pro"
	}
	if factory == nil {
		factory = DefaultClientFactory
	}
	return &GeminiGenerator{
		apiKey:  apiKey,
		model:   model,
		factory: factory,
	}
}

const (
	maxRetries     = 3
	requestTimeout = 30 * time.Second
	initialBackoff = 1 * time.Second
	maxDiffBytes   = 8 * 1024
)

const promptHeader = `Write a one-line git commit message in the imperative mood
for the following change. Respond with the subject line only, no quotes,
no trailing period, at most 72 characters.

`

// Message asks Gemini for a subject line describing the diff.
// Retries up to 3 times with exponential backoff (1s → 2s → 4s).
func (g *GeminiGenerator) Message(ctx context.Context, diff string) (string, error) {
	log := logger.FromContext(ctx)
	log.Debug("generating commit message", "model", g.model)

	client, err := g.factory(ctx, g.apiKey)
	if err != nil {
		return "", fmt.Errorf("creating Gemini client: %w", err)
	}

	if len(diff) > maxDiffBytes {
		diff = diff[:maxDiffBytes]
	}
	prompt := promptHeader + diff

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(0.3)),
	}

	var lastErr error
	backoff := initialBackoff

	for attempt := range maxRetries {
		reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
		resp, err := client.GenerateContent(reqCtx, g.model, genai.Text(prompt), config)
		cancel()

		if err != nil {
			lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
			log.Warn("Gemini request failed, retrying",
				"attempt", attempt+1,
				"error", err,
				"backoff", backoff,
			)

			select {
			case <-ctx.Done():
				return "", fmt.Errorf("message generation cancelled: %w", ctx.Err())
			case <-time.After(backoff):
			}
			backoff *= 2
			continue
		}

		return subjectLine(resp)
	}

	return "", fmt.Errorf("message generation failed after %d attempts: %w", maxRetries, lastErr)
}

// subjectLine pulls the first non-empty line out of a Gemini response.
func subjectLine(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("empty response from Gemini")
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content parts in response")
	}

	for _, line := range strings.Split(candidate.Content.Parts[0].Text, "\n") {
		line = strings.Trim(strings.TrimSpace(line), "`\"'")
		if line != "" {
			return line, nil
		}
	}
	return "", fmt.Errorf("empty text in response part")
}
