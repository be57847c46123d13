package ai

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"
)

// OllamaClient runs completions against a local Ollama server.
type OllamaClient struct {
	client *api.Client
}

// NewOllamaClient creates an Ollama-backed completion client. Environment
// configuration wins; the base URL is the fallback.
func NewOllamaClient(baseURL string) (*OllamaClient, error) {
	client, err := api.ClientFromEnvironment()
	if err != nil {
		parsedURL, parseErr := url.Parse(baseURL)
		if parseErr != nil {
			return nil, fmt.Errorf("invalid base URL: %w", parseErr)
		}
		client = api.NewClient(parsedURL, nil)
	}
	return &OllamaClient{client: client}, nil
}

func (c *OllamaClient) Complete(ctx context.Context, model, prompt string) (string, error) {
	req := &api.GenerateRequest{
		Model:  model,
		Prompt: prompt,
		Stream: new(bool), // false
		Options: map[string]interface{}{
			"temperature": 0.3,
		},
	}

	var fullResponse strings.Builder
	err := c.client.Generate(ctx, req, func(resp api.GenerateResponse) error {
		fullResponse.WriteString(resp.Response)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ollama completion failed: %w", err)
	}
	return fullResponse.String(), nil
}
