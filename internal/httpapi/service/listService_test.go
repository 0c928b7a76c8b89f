package service

import (
	"context"
	"testing"
	"time"

	"showhub/internal/httpapi/dto"
	"showhub/internal/httpapi/models"
	"showhub/internal/httpapi/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupServiceDB(t *testing.T, tables ...interface{}) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.AutoMigrate(tables...); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func newListFixture(t *testing.T) ListService {
	t.Helper()
	db := setupServiceDB(t, &models.User{}, &models.List{}, &models.ListItem{}, &models.ListLike{}, &models.ListComment{})
	return NewListService(repository.NewListRepository(db))
}

func mustCreateList(t *testing.T, svc ListService, ownerID string, private bool) *dto.ListResponse {
	t.Helper()
	list, err := svc.CreateList(context.Background(), ownerID, "owner", &dto.CreateListDTO{
		Name:      "favorites",
		IsPrivate: private,
	})
	require.NoError(t, err)
	return list
}

func TestPrivateListHiddenFromOthers(t *testing.T) {
	ctx := context.Background()
	svc := newListFixture(t)
	list := mustCreateList(t, svc, "owner-1", true)

	// owner sees it
	got, err := svc.GetList(ctx, "owner-1", list.ID)
	require.NoError(t, err)
	assert.Equal(t, list.ID, got.ID)

	// everyone else gets NotFound, not Forbidden
	_, err = svc.GetList(ctx, "stranger", list.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetListsByUserFiltersPrivate(t *testing.T) {
	ctx := context.Background()
	svc := newListFixture(t)
	mustCreateList(t, svc, "owner-1", false)
	mustCreateList(t, svc, "owner-1", true)

	own, err := svc.GetListsByUser(ctx, "owner-1", "owner-1")
	require.NoError(t, err)
	assert.Len(t, own, 2)

	visible, err := svc.GetListsByUser(ctx, "stranger", "owner-1")
	require.NoError(t, err)
	assert.Len(t, visible, 1)
	assert.False(t, visible[0].IsPrivate)
}

func TestAddItemOwnerOnly(t *testing.T) {
	ctx := context.Background()
	svc := newListFixture(t)
	list := mustCreateList(t, svc, "owner-1", false)

	item := &dto.AddListItemDTO{ShowID: 100, ShowName: "Show A"}
	assert.NoError(t, svc.AddItem(ctx, "owner-1", list.ID, item))
	assert.ErrorIs(t, svc.AddItem(ctx, "stranger", list.ID, item), ErrForbidden)

	got, err := svc.GetList(ctx, "owner-1", list.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Show A", got.Items[0].ShowName)
}

func TestAddItemPositionsAccumulate(t *testing.T) {
	ctx := context.Background()
	svc := newListFixture(t)
	list := mustCreateList(t, svc, "owner-1", false)

	require.NoError(t, svc.AddItem(ctx, "owner-1", list.ID, &dto.AddListItemDTO{ShowID: 100, ShowName: "A"}))
	require.NoError(t, svc.AddItem(ctx, "owner-1", list.ID, &dto.AddListItemDTO{ShowID: 200, ShowName: "B"}))

	got, err := svc.GetList(ctx, "owner-1", list.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	assert.Equal(t, int64(100), got.Items[0].ShowID)
	assert.Equal(t, int64(200), got.Items[1].ShowID)
}

func TestListToggleLikeCount(t *testing.T) {
	ctx := context.Background()
	svc := newListFixture(t)
	list := mustCreateList(t, svc, "owner-1", false)

	result, err := svc.ToggleLike(ctx, list.ID, "user-2")
	require.NoError(t, err)
	assert.True(t, result.Liked)
	assert.Equal(t, 1, result.LikeCount)

	result, err = svc.ToggleLike(ctx, list.ID, "user-2")
	require.NoError(t, err)
	assert.False(t, result.Liked)
	assert.Equal(t, 0, result.LikeCount)
}

func TestDeleteCommentAuthorOrListOwner(t *testing.T) {
	ctx := context.Background()
	svc := newListFixture(t)
	list := mustCreateList(t, svc, "owner-1", false)

	commenter := &models.User{ID: "user-2", Username: "commenter"}
	comment, err := svc.AppendComment(ctx, list.ID, commenter, "nice list")
	require.NoError(t, err)

	// a third party may not delete
	assert.ErrorIs(t, svc.DeleteComment(ctx, "user-3", list.ID, comment.ID), ErrForbidden)

	// the list owner may
	assert.NoError(t, svc.DeleteComment(ctx, "owner-1", list.ID, comment.ID))

	// and the author may delete their own
	comment, err = svc.AppendComment(ctx, list.ID, commenter, "again")
	require.NoError(t, err)
	assert.NoError(t, svc.DeleteComment(ctx, "user-2", list.ID, comment.ID))

	// absent comment ids are a no-op
	assert.NoError(t, svc.DeleteComment(ctx, "user-2", list.ID, comment.ID))
}

func TestDeleteListOwnerOnly(t *testing.T) {
	ctx := context.Background()
	svc := newListFixture(t)
	list := mustCreateList(t, svc, "owner-1", false)

	assert.ErrorIs(t, svc.DeleteList(ctx, "stranger", list.ID), ErrForbidden)
	assert.NoError(t, svc.DeleteList(ctx, "owner-1", list.ID))
	// deleting again is a no-op
	assert.NoError(t, svc.DeleteList(ctx, "owner-1", list.ID))
}
