package chat

import (
	"context"

	"github.com/myebookchess-cloud/jyro-demo/internal/entity"
)

type ChatUsecase interface {
	StartSession(ctx context.Context) entity.ChatSession
	GetSession(ctx context.Context, sessionID string) (entity.ChatSession, error)
	LoadSite(ctx context.Context, sessionID, url string) (entity.ChatSession, error)
	LoadDocument(ctx context.Context, sessionID, filename string, content []byte) (entity.ChatSession, error)
	SendMessage(ctx context.Context, sessionID, message string) (entity.ChatSession, error)
	ResetSession(ctx context.Context, sessionID string) (entity.ChatSession, error)
	EndSession(ctx context.Context, sessionID string) error
}
