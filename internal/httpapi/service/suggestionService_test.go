package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"showhub/internal/httpapi/models"
	"showhub/internal/httpapi/repository"
)

func newSuggestionFixture(t *testing.T) SuggestionService {
	t.Helper()
	db := setupServiceDB(t, &models.User{}, &models.Suggestion{})
	return NewSuggestionService(repository.NewSuggestionRepository(db))
}

func TestSuggestionInboxIsAdminOnly(t *testing.T) {
	svc := newSuggestionFixture(t)
	ctx := context.Background()

	author := &models.User{ID: "user-1", Username: "alice"}
	suggestion, err := svc.Submit(ctx, author, "add a dark mode")
	require.NoError(t, err)
	require.NotEmpty(t, suggestion.ID)
	assert.Equal(t, "alice", suggestion.Username)

	_, err = svc.List(ctx, "user")
	assert.ErrorIs(t, err, ErrForbidden)
	assert.ErrorIs(t, svc.Delete(ctx, "user", suggestion.ID), ErrForbidden)

	inbox, err := svc.List(ctx, "admin")
	require.NoError(t, err)
	require.Len(t, inbox, 1)
	assert.Equal(t, "add a dark mode", inbox[0].Content)
}

func TestSuggestionDeleteEmptiesInbox(t *testing.T) {
	svc := newSuggestionFixture(t)
	ctx := context.Background()

	author := &models.User{ID: "user-1", Username: "alice"}
	suggestion, err := svc.Submit(ctx, author, "more genres please")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "admin", suggestion.ID))
	// deleting an already removed suggestion stays quiet
	require.NoError(t, svc.Delete(ctx, "admin", suggestion.ID))

	inbox, err := svc.List(ctx, "admin")
	require.NoError(t, err)
	assert.Empty(t, inbox)
}
