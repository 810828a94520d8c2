package openai

import (
	"context"
	"fmt"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/myebookchess-cloud/jyro-demo/internal/entity"
)

// MockConnector is an offline stand-in for the completion endpoint, used for
// demos and local development without an API key.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{logger: logger}
}

func (m *MockConnector) Complete(ctx context.Context, messages []entity.ChatMessage) (string, error) {
	ctxzap.Info(ctx, "[MOCK] generating chat completion", zap.Int("message_count", len(messages)))

	question := ""
	for _, msg := range messages {
		if msg.Role == entity.ChatRoleUser {
			question = msg.Content
		}
	}

	answer := fmt.Sprintf(
		"This is a mock answer (no completion service configured). You asked: %q. "+
			"In a live deployment the assistant would answer from the loaded site or document content.",
		question,
	)

	ctxzap.Info(ctx, "[MOCK] chat completion generated", zap.Int("content_length", len(answer)))

	return answer, nil
}
