// Package gemini implements the generation.Describer interface using
// Google's Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/assetdesk/metagen/internal/config"
	"github.com/assetdesk/metagen/internal/generation"
	"google.golang.org/genai"
)

// maxOutputTokens bounds the response length. The two-line name/tags contract
// fits comfortably, but bilingual tag lists can run long.
const maxOutputTokens = 2000

// Describer implements generation.Describer using the Gemini API.
type Describer struct {
	logger *slog.Logger
	client *genai.Client
	model  string
}

// NewDescriber creates a Gemini-backed Describer with the provided
// dependencies.
//
// Returns a properly initialized Describer or an error if the configuration
// is invalid or the client cannot be constructed.
func NewDescriber(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Describer, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, err)
	}

	return &Describer{
		logger: logger,
		client: client,
		model:  cfg.ModelName,
	}, nil
}

// Describe sends one image plus the instruction text to the Gemini API and
// returns the raw text response. Errors are mapped onto the generation
// package's taxonomy; no retrying happens at this level.
func (d *Describer) Describe(ctx context.Context, img generation.Image, instructions string) (string, error) {
	if len(img.Data) == 0 {
		return "", fmt.Errorf("%w: image payload is empty", generation.ErrInvalidConfig)
	}
	if instructions == "" {
		return "", fmt.Errorf("%w: instructions are empty", generation.ErrInvalidConfig)
	}

	mimeType := img.MIMEType
	if mimeType == "" {
		mimeType = "image/png"
	}

	parts := []*genai.Part{
		genai.NewPartFromText(instructions),
		genai.NewPartFromBytes(img.Data, mimeType),
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	d.logger.DebugContext(ctx, "calling Gemini API",
		"model", d.model,
		"payload_bytes", len(img.Data),
		"mime_type", mimeType)

	resp, err := d.client.Models.GenerateContent(ctx, d.model, contents, &genai.GenerateContentConfig{
		MaxOutputTokens: maxOutputTokens,
	})
	if err != nil {
		classified := classifyError(err)
		d.logger.WarnContext(ctx, "Gemini API call failed", "error", err)
		return "", classified
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("%w: model %s produced an empty candidate",
			generation.ErrEmptyResponse, d.model)
	}

	return text, nil
}

// classifyError maps a genai call error onto the generation error taxonomy.
// HTTP 429 becomes a rate-limit signal; any other API status is a service
// failure; everything else is treated as a transport problem.
func classifyError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Code == 429 {
			return fmt.Errorf("%w: %s", generation.ErrRateLimited, apiErr.Message)
		}
		return fmt.Errorf("%w: status %d: %s", generation.ErrServiceFailure, apiErr.Code, apiErr.Message)
	}

	return fmt.Errorf("%w: %v", generation.ErrTransport, err)
}
