package chat

import "github.com/myebookchess-cloud/jyro-demo/internal/entity"

// toSessionDTO converts a ChatSession to its transport representation.
func toSessionDTO(sess entity.ChatSession) *entity.ChatSessionDTO {
	turns := sess.Turns
	if turns == nil {
		turns = []entity.ConversationTurn{}
	}

	return &entity.ChatSessionDTO{
		ID:        sess.ID,
		Source:    sess.Source,
		Turns:     turns,
		CreatedAt: sess.CreatedAt,
		UpdatedAt: sess.UpdatedAt,
	}
}

func toSourceLoadedDTO(sess entity.ChatSession) *entity.SourceLoadedDTO {
	dto := &entity.SourceLoadedDTO{SessionID: sess.ID}
	if sess.Source != nil {
		dto.Source = *sess.Source
	}
	if sess.Context != nil {
		dto.ContextChars = len(sess.Context.Text)
	}
	return dto
}

// toExchangeDTO picks the latest (user, assistant) pair off the transcript.
func toExchangeDTO(sess entity.ChatSession) *entity.MessageExchangeDTO {
	dto := &entity.MessageExchangeDTO{SessionID: sess.ID}
	if n := len(sess.Turns); n >= 2 {
		dto.UserTurn = sess.Turns[n-2]
		dto.AssistantTurn = sess.Turns[n-1]
	}
	return dto
}
