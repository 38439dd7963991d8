package gemini

import (
	"context"
	"fmt"
	"log"
	"strings"

	genai "google.golang.org/genai"

	"dealdesk-backend/internal/llm"
)

// Client implements llm.Client using the official genai SDK. The API key is
// read from the environment by the SDK (GEMINI_API_KEY).
type Client struct {
	cli   *genai.Client
	model string
}

// NewClient constructs a Gemini-backed client.
func NewClient(ctx context.Context, model string) (*Client, error) {
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("LLM_MODEL is required for Gemini")
	}
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{Backend: genai.BackendGeminiAPI})
	if err != nil {
		return nil, err
	}
	return &Client{cli: cli, model: model}, nil
}

// Complete sends the prompt pair and returns the model's text output.
func (c *Client) Complete(ctx context.Context, req llm.Request) (string, error) {
	full := req.System + "\n\n" + req.User

	resp, err := c.cli.Models.GenerateContent(ctx, c.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: full}}}},
		&genai.GenerateContentConfig{ResponseMIMEType: "application/json"},
	)
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini response empty content")
	}

	text := strings.TrimSpace(resp.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return "", fmt.Errorf("gemini response empty content")
	}
	log.Printf("llm response model=%s stage=%s bytes=%d", c.model, req.Stage, len(text))
	return text, nil
}

var _ llm.Client = (*Client)(nil)
