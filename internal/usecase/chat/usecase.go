package chat

import (
	"context"
	"time"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/myebookchess-cloud/jyro-demo/internal/entity"
	"github.com/myebookchess-cloud/jyro-demo/internal/ingest"
	"github.com/myebookchess-cloud/jyro-demo/internal/prompt"
)

// completionErrorPrefix is the user-visible text substituted for the
// assistant's answer when the completion call fails. The conversation
// continues; the user can simply ask again.
const completionErrorPrefix = "An error occurred while calling the completion service: "

// Usecase implements the chat flow: load a source once, then answer
// questions against its cached bounded context.
type Usecase struct {
	sessions     SessionStore
	fetcher      SiteFetcher
	extractor    DocumentExtractor
	gateway      CompletionGateway
	siteMaxChars int
	docMaxChars  int
	logger       *zap.Logger
}

func NewUsecase(
	sessions SessionStore,
	fetcher SiteFetcher,
	extractor DocumentExtractor,
	gateway CompletionGateway,
	siteMaxChars int,
	docMaxChars int,
	logger *zap.Logger,
) *Usecase {
	return &Usecase{
		sessions:     sessions,
		fetcher:      fetcher,
		extractor:    extractor,
		gateway:      gateway,
		siteMaxChars: siteMaxChars,
		docMaxChars:  docMaxChars,
		logger:       logger,
	}
}

// StartSession creates an empty chat session.
func (uc *Usecase) StartSession(ctx context.Context) entity.ChatSession {
	return uc.sessions.Create()
}

// GetSession returns the current session state including the transcript.
func (uc *Usecase) GetSession(ctx context.Context, sessionID string) (entity.ChatSession, error) {
	return uc.sessions.Get(sessionID)
}

// LoadSite makes url the session's active source. The fetched context is
// cached under the source identity: resubmitting the same URL reuses it
// without another fetch, while a different URL refetches, replaces the
// context and clears the transcript.
func (uc *Usecase) LoadSite(ctx context.Context, sessionID, url string) (entity.ChatSession, error) {
	sess, err := uc.sessions.Get(sessionID)
	if err != nil {
		return entity.ChatSession{}, err
	}

	if cached(sess, entity.SourceKindSite, url) {
		ctxzap.Info(ctx, "reusing cached site context", zap.String("url", url))
		return sess, nil
	}

	text, err := uc.fetcher.FetchSite(ctx, url)
	if err != nil {
		return entity.ChatSession{}, err
	}

	bounded, err := ingest.Bound(text, url, uc.siteMaxChars)
	if err != nil {
		return entity.ChatSession{}, err
	}

	ctxzap.Info(ctx, "site context loaded",
		zap.String("url", url),
		zap.Int("context_chars", len(bounded.Text)),
	)

	return uc.sessions.SetSource(sessionID, entity.Source{Kind: entity.SourceKindSite, ID: url}, bounded)
}

// LoadDocument makes an uploaded document the session's active source.
// Identity is tracked by filename: re-uploading the same filename reuses the
// cached context, a new filename re-extracts and resets the conversation.
func (uc *Usecase) LoadDocument(ctx context.Context, sessionID, filename string, content []byte) (entity.ChatSession, error) {
	sess, err := uc.sessions.Get(sessionID)
	if err != nil {
		return entity.ChatSession{}, err
	}

	if cached(sess, entity.SourceKindDocument, filename) {
		ctxzap.Info(ctx, "reusing cached document context", zap.String("filename", filename))
		return sess, nil
	}

	text, err := uc.extractor.Extract(filename, content)
	if err != nil {
		return entity.ChatSession{}, err
	}

	bounded, err := ingest.Bound(text, filename, uc.docMaxChars)
	if err != nil {
		return entity.ChatSession{}, err
	}

	ctxzap.Info(ctx, "document context loaded",
		zap.String("filename", filename),
		zap.Int("context_chars", len(bounded.Text)),
	)

	return uc.sessions.SetSource(sessionID, entity.Source{Kind: entity.SourceKindDocument, ID: filename}, bounded)
}

// SendMessage appends the user's question, asks the completion gateway and
// appends the answer. A gateway failure is recovered into an explanatory
// assistant turn so the session survives and the user turn stays in the
// transcript.
func (uc *Usecase) SendMessage(ctx context.Context, sessionID, message string) (entity.ChatSession, error) {
	sess, err := uc.sessions.Get(sessionID)
	if err != nil {
		return entity.ChatSession{}, err
	}

	if sess.Source == nil || sess.Context == nil {
		return entity.ChatSession{}, entity.ErrNoSourceLoaded
	}

	userTurn := entity.ConversationTurn{
		Role:      entity.TurnRoleUser,
		Content:   message,
		CreatedAt: time.Now(),
	}

	messages := prompt.Assemble(*sess.Source, *sess.Context, message)

	answer, err := uc.gateway.Complete(ctx, messages)
	if err != nil {
		ctxzap.Error(ctx, "completion call failed", zap.Error(err))
		answer = completionErrorPrefix + err.Error()
	}

	assistantTurn := entity.ConversationTurn{
		Role:      entity.TurnRoleAssistant,
		Content:   answer,
		CreatedAt: time.Now(),
	}

	return uc.sessions.Append(sessionID, userTurn, assistantTurn)
}

// ResetSession clears the transcript and drops the loaded source.
func (uc *Usecase) ResetSession(ctx context.Context, sessionID string) (entity.ChatSession, error) {
	return uc.sessions.Reset(sessionID)
}

// EndSession removes the session entirely.
func (uc *Usecase) EndSession(ctx context.Context, sessionID string) error {
	if _, err := uc.sessions.Get(sessionID); err != nil {
		return err
	}

	uc.sessions.Delete(sessionID)
	return nil
}

// cached reports whether the session already holds a bounded context for
// this exact source identity.
func cached(sess entity.ChatSession, kind entity.SourceKind, id string) bool {
	return sess.Source != nil &&
		sess.Context != nil &&
		sess.Source.Kind == kind &&
		sess.Source.ID == id
}
