package prompt

import "github.com/myebookchess-cloud/jyro-demo/internal/entity"

// Assemble builds the ordered message list for one completion call. Site
// mode produces a single system message (persona with embedded context);
// document mode produces a persona system message plus a second system
// message carrying the content block. The current user message always comes
// last. Earlier transcript turns are never replayed: each call is stateless
// with respect to conversation history, and only the UI transcript keeps it.
func Assemble(source entity.Source, context entity.BoundedContext, userMessage string) []entity.ChatMessage {
	var messages []entity.ChatMessage

	switch source.Kind {
	case entity.SourceKindDocument:
		messages = append(messages,
			entity.ChatMessage{Role: entity.ChatRoleSystem, Content: DocumentPersona()},
			entity.ChatMessage{Role: entity.ChatRoleSystem, Content: DocumentContent(source.ID, context.Text)},
		)
	default:
		messages = append(messages,
			entity.ChatMessage{Role: entity.ChatRoleSystem, Content: SitePersona(source.ID, context.Text)},
		)
	}

	return append(messages, entity.ChatMessage{Role: entity.ChatRoleUser, Content: userMessage})
}
