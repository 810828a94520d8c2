package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myebookchess-cloud/jyro-demo/internal/entity"
)

func siteSource() entity.Source {
	return entity.Source{Kind: entity.SourceKindSite, ID: "https://example.com"}
}

func docSource() entity.Source {
	return entity.Source{Kind: entity.SourceKindDocument, ID: "report.pdf"}
}

func boundedContext(text string) entity.BoundedContext {
	return entity.BoundedContext{Text: text, SourceID: "x", MaxChars: 12000}
}

func TestAssemble_SiteMode(t *testing.T) {
	messages := Assemble(siteSource(), boundedContext("SITE TEXT HERE"), "Do you sell villas?")

	require.Len(t, messages, 2)

	assert.Equal(t, entity.ChatRoleSystem, messages[0].Role)
	assert.Contains(t, messages[0].Content, "https://example.com")
	assert.Contains(t, messages[0].Content, "SITE TEXT HERE")

	assert.Equal(t, entity.ChatRoleUser, messages[1].Role)
	assert.Equal(t, "Do you sell villas?", messages[1].Content)
}

func TestAssemble_DocumentMode(t *testing.T) {
	messages := Assemble(docSource(), boundedContext("DOC TEXT HERE"), "What is the total?")

	require.Len(t, messages, 3)

	// Persona instructions stay stable and free of content so they remain
	// auditable regardless of document size.
	assert.Equal(t, entity.ChatRoleSystem, messages[0].Role)
	assert.Equal(t, DocumentPersona(), messages[0].Content)
	assert.NotContains(t, messages[0].Content, "DOC TEXT HERE")

	assert.Equal(t, entity.ChatRoleSystem, messages[1].Role)
	assert.Contains(t, messages[1].Content, "DOC TEXT HERE")
	assert.Contains(t, messages[1].Content, "report.pdf")

	assert.Equal(t, entity.ChatRoleUser, messages[2].Role)
	assert.Equal(t, "What is the total?", messages[2].Content)
}

func TestAssemble_ExactlyOneUserMessage(t *testing.T) {
	// Prior transcript turns are never replayed: the model only ever sees
	// the current question.
	for _, source := range []entity.Source{siteSource(), docSource()} {
		messages := Assemble(source, boundedContext("ctx"), "current question")

		var userMessages []entity.ChatMessage
		for _, m := range messages {
			if m.Role == entity.ChatRoleUser {
				userMessages = append(userMessages, m)
			}
		}

		require.Len(t, userMessages, 1)
		assert.Equal(t, "current question", userMessages[0].Content)
		assert.Equal(t, entity.ChatRoleUser, messages[len(messages)-1].Role, "user message comes last")
	}
}

func TestSitePersona_EncodesFallbackAndTone(t *testing.T) {
	persona := SitePersona("https://example.com", "ctx")

	assert.Contains(t, persona, "contact")
	assert.Contains(t, persona, "professional")
	assert.Contains(t, persona, "---")
}

func TestDocumentPersona_FlagsMissingAnswers(t *testing.T) {
	persona := DocumentPersona()

	assert.Contains(t, persona, "not in")
	assert.Contains(t, persona, "document")
}
