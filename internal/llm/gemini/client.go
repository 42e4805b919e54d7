package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/invtrack/receipt-scan/internal/common"
)

// Client implements llm.Completer using Google Gemini.
type Client struct {
	client *genai.Client
	model  *genai.GenerativeModel
	log    *slog.Logger
}

func NewClient(ctx context.Context, apiKey, modelName string, logger *slog.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, common.ConfigError("gemini api key is required", common.ErrInvalidInput)
	}
	if modelName == "" {
		modelName = "gemini-2.5-pro"
	}
	if logger == nil {
		logger = slog.Default()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	return &Client{
		client: client,
		model:  client.GenerativeModel(modelName),
		log:    logger,
	}, nil
}

// Complete sends the prompt and returns the concatenated text parts of the
// first candidate.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	start := time.Now()

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		c.log.Error("llm.gemini.request_failed", "error", err)
		return "", fmt.Errorf("generating content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from gemini")
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}

	content := strings.TrimSpace(b.String())
	c.log.Info("llm.gemini.ok",
		"content_len", len(content),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return content, nil
}

// Close closes the underlying Gemini client.
func (c *Client) Close() error {
	return c.client.Close()
}
