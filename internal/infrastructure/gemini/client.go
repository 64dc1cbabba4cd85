package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/zawajapp/zawaj-backend/internal/agent"
	"go.uber.org/zap"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// Client is the text-completion oracle backed by Gemini. It implements
// agent.Completer and maps every transport failure into the shared taxonomy.
type Client struct {
	client  *genai.Client
	model   *genai.GenerativeModel
	timeout time.Duration
	log     *zap.Logger
}

func NewClient(ctx context.Context, apiKey, modelName string, timeout time.Duration, log *zap.Logger) (*Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.4)

	return &Client{
		client:  client,
		model:   model,
		timeout: timeout,
		log:     log,
	}, nil
}

func (c *Client) Close() {
	c.client.Close()
}

// Complete submits a prompt and returns the raw response text.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", c.mapError(err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != genai.BlockReasonUnspecified {
			return "", agent.NewError(agent.KindContentPolicyViolation,
				fmt.Sprintf("prompt blocked: %s", resp.PromptFeedback.BlockReason))
		}
		return "", agent.NewError(agent.KindInvalidResponse, "oracle returned no content")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}

	return strings.TrimSpace(sb.String()), nil
}

func (c *Client) mapError(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return agent.WrapError(agent.KindAuthenticationError, "oracle rejected credentials", err)
		case http.StatusTooManyRequests:
			return agent.WrapError(agent.KindRateLimitExceeded, "oracle rate limit exceeded", err)
		}
	}
	c.log.Warn("oracle call failed", zap.Error(err))
	return agent.WrapError(agent.KindNetworkError, "oracle unreachable", err)
}
