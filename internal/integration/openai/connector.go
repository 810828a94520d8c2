package openai

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/avast/retry-go/v4"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/myebookchess-cloud/jyro-demo/internal/config"
	"github.com/myebookchess-cloud/jyro-demo/internal/entity"
	pkghttp "github.com/myebookchess-cloud/jyro-demo/pkg/http"
)

const chatCompletionsEndpoint = "/v1/chat/completions"

// Connector calls the OpenAI chat-completions endpoint. The model and
// temperature are fixed by configuration; the temperature stays low so the
// assistant answers deterministically rather than creatively.
type Connector struct {
	config    config.OpenAIConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(cfg config.OpenAIConfig, logger *zap.Logger) *Connector {
	connCfg := &pkghttp.ConnectorConfig{
		BaseURL: strings.TrimRight(cfg.BaseURL, "/"),
		Logger:  logger,
	}

	return &Connector{
		config: cfg,
		connector: pkghttp.NewConnector(
			connCfg,
			pkghttp.WithRequestTimeout(cfg.Timeout),
			pkghttp.WithConnClientTimeout(cfg.ConnTimeout),
			pkghttp.WithRequestLogging(),
			pkghttp.WithAuthToken(cfg.APIKey),
		),
		logger: logger,
	}
}

// Complete sends the assembled message list and returns the assistant's
// reply text. Attempts are bounded by the retry configuration (a single
// attempt unless the operator opts in to more).
func (c *Connector) Complete(ctx context.Context, messages []entity.ChatMessage) (string, error) {
	ctxzap.Info(ctx, "requesting chat completion",
		zap.String("model", c.config.Model),
		zap.Int("message_count", len(messages)),
	)

	req := &entity.ChatCompletionRequest{
		Model:       c.config.Model,
		Messages:    messages,
		Temperature: c.config.Temperature,
	}

	var resp entity.ChatCompletionResponse
	err := retry.Do(func() error {
		resp = entity.ChatCompletionResponse{}
		return c.connector.DoRequest(ctx, http.MethodPost, chatCompletionsEndpoint, req, &resp)
	}, append(c.config.Retry.ToRetryOptions(), retry.Context(ctx))...)
	if err != nil {
		return "", fmt.Errorf("chat completion request: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", entity.ErrEmptyCompletion
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", entity.ErrEmptyCompletion
	}

	ctxzap.Info(ctx, "chat completion received", zap.Int("content_length", len(content)))

	return content, nil
}
