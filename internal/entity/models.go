package entity

import (
	"fmt"
	"time"
)

type TurnRole string

const (
	TurnRoleUser      TurnRole = "user"
	TurnRoleAssistant TurnRole = "assistant"
)

// ConversationTurn is one role-tagged message in a session transcript.
// Turns are immutable once appended.
type ConversationTurn struct {
	Role      TurnRole  `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type SourceKind string

const (
	SourceKindSite     SourceKind = "site"
	SourceKindDocument SourceKind = "document"
)

// Source identifies the content a session is chatting about. ID is the site
// URL in site mode and the uploaded filename in document mode; it doubles as
// the cache/reset key for the bounded context.
type Source struct {
	Kind SourceKind `json:"kind"`
	ID   string     `json:"id"`
}

func (s Source) String() string {
	return fmt.Sprintf("%s:%s", s.Kind, s.ID)
}

// BoundedContext is sanitized source text truncated to a fixed character
// budget for inclusion in a model prompt. Invariant: len(Text) <= MaxChars.
type BoundedContext struct {
	Text     string
	SourceID string
	MaxChars int
}

// ChatSession is the state owned by one browsing session: the active source,
// its cached bounded context and the append-only transcript. It lives in
// memory only and dies with the session.
type ChatSession struct {
	ID        string
	Source    *Source
	Context   *BoundedContext
	Turns     []ConversationTurn
	CreatedAt time.Time
	UpdatedAt time.Time
}
