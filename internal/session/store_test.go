package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/myebookchess-cloud/jyro-demo/internal/config"
	"github.com/myebookchess-cloud/jyro-demo/internal/entity"
)

func newTestStore() *Store {
	return NewStore(config.SessionConfig{
		TTL:             time.Minute,
		CleanupInterval: time.Minute,
	}, zap.NewNop())
}

func turn(role entity.TurnRole, content string) entity.ConversationTurn {
	return entity.ConversationTurn{Role: role, Content: content, CreatedAt: time.Now()}
}

func siteContext() (entity.Source, entity.BoundedContext) {
	source := entity.Source{Kind: entity.SourceKindSite, ID: "https://example.com"}
	return source, entity.BoundedContext{Text: "site text", SourceID: source.ID, MaxChars: 100}
}

func TestStore_CreateAndGet(t *testing.T) {
	store := newTestStore()

	created := store.Create()
	require.NotEmpty(t, created.ID)
	assert.Nil(t, created.Source)
	assert.Empty(t, created.Turns)

	got, err := store.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestStore_GetUnknownSession(t *testing.T) {
	store := newTestStore()

	_, err := store.Get("nope")
	assert.ErrorIs(t, err, entity.ErrSessionNotFound)
}

func TestStore_AppendPreservesInsertionOrder(t *testing.T) {
	store := newTestStore()
	sess := store.Create()

	contents := []string{"first", "second", "third", "fourth"}
	for i, c := range contents {
		role := entity.TurnRoleUser
		if i%2 == 1 {
			role = entity.TurnRoleAssistant
		}
		_, err := store.Append(sess.ID, turn(role, c))
		require.NoError(t, err)
	}

	got, err := store.Get(sess.ID)
	require.NoError(t, err)
	require.Len(t, got.Turns, len(contents))
	for i, c := range contents {
		assert.Equal(t, c, got.Turns[i].Content)
	}
}

func TestStore_SetSourceClearsTranscript(t *testing.T) {
	store := newTestStore()
	sess := store.Create()
	source, bounded := siteContext()

	_, err := store.SetSource(sess.ID, source, bounded)
	require.NoError(t, err)

	_, err = store.Append(sess.ID, turn(entity.TurnRoleUser, "q"), turn(entity.TurnRoleAssistant, "a"))
	require.NoError(t, err)

	other := entity.Source{Kind: entity.SourceKindSite, ID: "https://other.example"}
	updated, err := store.SetSource(sess.ID, other, entity.BoundedContext{Text: "other", SourceID: other.ID, MaxChars: 100})
	require.NoError(t, err)

	assert.Empty(t, updated.Turns, "switching source must start a fresh conversation")
	require.NotNil(t, updated.Source)
	assert.Equal(t, other.ID, updated.Source.ID)
	require.NotNil(t, updated.Context)
	assert.Equal(t, "other", updated.Context.Text)
}

func TestStore_ResetClearsEverything(t *testing.T) {
	store := newTestStore()
	sess := store.Create()
	source, bounded := siteContext()

	_, err := store.SetSource(sess.ID, source, bounded)
	require.NoError(t, err)
	_, err = store.Append(sess.ID, turn(entity.TurnRoleUser, "q"))
	require.NoError(t, err)

	reset, err := store.Reset(sess.ID)
	require.NoError(t, err)

	assert.Nil(t, reset.Source)
	assert.Nil(t, reset.Context)
	assert.Empty(t, reset.Turns)
}

func TestStore_Delete(t *testing.T) {
	store := newTestStore()
	sess := store.Create()

	store.Delete(sess.ID)

	_, err := store.Get(sess.ID)
	assert.ErrorIs(t, err, entity.ErrSessionNotFound)
}

func TestStore_SessionsAreIsolated(t *testing.T) {
	store := newTestStore()
	a := store.Create()
	b := store.Create()

	source, bounded := siteContext()
	_, err := store.SetSource(a.ID, source, bounded)
	require.NoError(t, err)
	_, err = store.Append(a.ID, turn(entity.TurnRoleUser, "only in a"))
	require.NoError(t, err)

	gotB, err := store.Get(b.ID)
	require.NoError(t, err)
	assert.Nil(t, gotB.Source, "one session's source must not leak into another")
	assert.Empty(t, gotB.Turns)
}

func TestStore_SnapshotsAreCopies(t *testing.T) {
	store := newTestStore()
	sess := store.Create()

	_, err := store.Append(sess.ID, turn(entity.TurnRoleUser, "original"))
	require.NoError(t, err)

	got, err := store.Get(sess.ID)
	require.NoError(t, err)
	got.Turns[0].Content = "mutated"

	again, err := store.Get(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", again.Turns[0].Content)
}
