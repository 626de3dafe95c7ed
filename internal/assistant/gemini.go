package assistant

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"eq/internal/store"
)

// GeminiClient implements Provider on the Google GenAI SDK.
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient creates a Gemini-backed provider.
func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("create GenAI client: %w", err)
	}
	return &GeminiClient{client: client, model: model}, nil
}

func geminiRole(r string) genai.Role {
	if r == store.RoleAssistant {
		return genai.RoleModel
	}
	return genai.RoleUser
}

// Converse sends the conversation and returns the reply text.
func (c *GeminiClient) Converse(ctx context.Context, turns []Turn, taskContext string) (string, error) {
	contents := make([]*genai.Content, 0, len(turns))
	for _, t := range turns {
		contents = append(contents, genai.NewContentFromText(t.Content, geminiRole(t.Role)))
	}

	temperature := float32(0.5)
	maxTokens := int32(600)
	if isQuoteRequest(turns) {
		temperature = 0.3
		maxTokens = 150
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(BuildSystemPrompt(taskContext), genai.RoleUser),
		Temperature:       genai.Ptr(temperature),
		MaxOutputTokens:   maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from API")
	}
	return text, nil
}
