package chat

import (
	"context"

	"github.com/myebookchess-cloud/jyro-demo/internal/entity"
)

type SiteFetcher interface {
	FetchSite(ctx context.Context, url string) (string, error)
}

type DocumentExtractor interface {
	Extract(filename string, content []byte) (string, error)
}

type CompletionGateway interface {
	Complete(ctx context.Context, messages []entity.ChatMessage) (string, error)
}

type SessionStore interface {
	Create() entity.ChatSession
	Get(id string) (entity.ChatSession, error)
	SetSource(id string, source entity.Source, context entity.BoundedContext) (entity.ChatSession, error)
	Append(id string, turns ...entity.ConversationTurn) (entity.ChatSession, error)
	Reset(id string) (entity.ChatSession, error)
	Delete(id string)
}
