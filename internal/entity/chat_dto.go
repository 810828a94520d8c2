package entity

import "time"

type LoadSiteRequest struct {
	URL string `json:"url"`
}

type SendMessageRequest struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type ChatSessionDTO struct {
	ID        string             `json:"session_id"`
	Source    *Source            `json:"source,omitempty"`
	Turns     []ConversationTurn `json:"turns"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

type SourceLoadedDTO struct {
	SessionID    string `json:"session_id"`
	Source       Source `json:"source"`
	ContextChars int    `json:"context_chars"`
}

type MessageExchangeDTO struct {
	SessionID     string           `json:"session_id"`
	UserTurn      ConversationTurn `json:"user_turn"`
	AssistantTurn ConversationTurn `json:"assistant_turn"`
}
