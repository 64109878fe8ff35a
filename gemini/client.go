// Package gemini connects the advisor to the Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

var ErrMissingAPIKey = errors.New("missing Gemini API key")

type geminiClient struct {
	logger *zap.Logger
	client *genai.Client
}

// NewClient creates a Gemini API client. baseURL is optional and only set for tests and proxies.
func NewClient(c context.Context, logger *zap.Logger, apiKey, baseURL string) (ContentGenerator, func(), error) {
	if apiKey == "" {
		return nil, nil, ErrMissingAPIKey
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}

	client, err := genai.NewClient(c, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("Error creating gemini-client: %w", err)
	}

	return &geminiClient{
			logger: logger,
			client: client,
		}, func() {
			// the genai client holds no resources that need releasing
		}, nil
}

func (g *geminiClient) GenerateContent(c context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	resp, err := g.client.Models.GenerateContent(c, model, contents, config)
	if err != nil {
		g.logger.Debug("Gemini call failed", zap.String("model", model), zap.Error(err))
		return nil, err
	}
	return resp, nil
}
