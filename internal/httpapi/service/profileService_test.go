package service

import (
	"context"
	"testing"

	"showhub/internal/httpapi/dto"
	"showhub/internal/httpapi/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type userRepoStub struct {
	users     map[string]*models.User
	favorites map[string][]models.TopFavorite
}

func newUserRepoStub() *userRepoStub {
	return &userRepoStub{
		users:     make(map[string]*models.User),
		favorites: make(map[string][]models.TopFavorite),
	}
}

func (r *userRepoStub) Create(ctx context.Context, user *models.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *userRepoStub) Update(ctx context.Context, user *models.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *userRepoStub) FindByID(ctx context.Context, id string) (*models.User, error) {
	if user, ok := r.users[id]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *userRepoStub) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *userRepoStub) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *userRepoStub) ListMembers(ctx context.Context, limit int) ([]models.User, error) {
	members := make([]models.User, 0, len(r.users))
	for _, user := range r.users {
		if len(members) == limit {
			break
		}
		members = append(members, *user)
	}
	return members, nil
}

func (r *userRepoStub) ReplaceTopFavorites(ctx context.Context, userID string, favorites []models.TopFavorite) error {
	r.favorites[userID] = favorites
	return nil
}

func (r *userRepoStub) ListTopFavorites(ctx context.Context, userID string) ([]models.TopFavorite, error) {
	return r.favorites[userID], nil
}

func newProfileFixture() (ProfileService, *userRepoStub) {
	users := newUserRepoStub()
	svc := NewProfileService(users, ratingRepoStub{}, watchlistRepoStub{}, nil)
	return svc, users
}

func TestSetTopFavoritesTruncatesToThree(t *testing.T) {
	svc, users := newProfileFixture()

	favorites, err := svc.SetTopFavorites(context.Background(), "u1", []dto.TopFavoriteDTO{
		{ShowID: 1, ShowName: "A"},
		{ShowID: 2, ShowName: "B"},
		{ShowID: 3, ShowName: "C"},
		{ShowID: 4, ShowName: "D"},
	})
	require.NoError(t, err)
	require.Len(t, favorites, 3)
	assert.Equal(t, int64(1), favorites[0].ShowID)
	assert.Equal(t, int64(3), favorites[2].ShowID)
	assert.Len(t, users.favorites["u1"], 3)
}

func TestSetTopFavoritesDedupesKeepingFirst(t *testing.T) {
	svc, _ := newProfileFixture()

	favorites, err := svc.SetTopFavorites(context.Background(), "u1", []dto.TopFavoriteDTO{
		{ShowID: 1, ShowName: "A"},
		{ShowID: 1, ShowName: "A again"},
		{ShowID: 2, ShowName: "B"},
	})
	require.NoError(t, err)
	require.Len(t, favorites, 2)
	assert.Equal(t, "A", favorites[0].ShowName)
	assert.Equal(t, 1, favorites[0].Position)
	assert.Equal(t, 2, favorites[1].Position)
}

func TestSetTopFavoritesEmptyClears(t *testing.T) {
	svc, users := newProfileFixture()

	_, err := svc.SetTopFavorites(context.Background(), "u1", []dto.TopFavoriteDTO{{ShowID: 1}})
	require.NoError(t, err)

	favorites, err := svc.SetTopFavorites(context.Background(), "u1", nil)
	require.NoError(t, err)
	assert.Empty(t, favorites)
	assert.Empty(t, users.favorites["u1"])
}

func TestUpdateProfilePatchesOnlyProvidedFields(t *testing.T) {
	svc, users := newProfileFixture()
	bio := "original bio"
	users.users["u1"] = &models.User{ID: "u1", Username: "alice", Bio: &bio}

	newAvatar := "https://example.com/avatar.png"
	user, err := svc.UpdateProfile(context.Background(), "u1", &dto.UpdateProfileDTO{AvatarURL: &newAvatar})
	require.NoError(t, err)

	assert.Equal(t, &newAvatar, user.AvatarURL)
	require.NotNil(t, user.Bio)
	assert.Equal(t, "original bio", *user.Bio)
}

func TestUpdateProfileUnknownUser(t *testing.T) {
	svc, _ := newProfileFixture()

	_, err := svc.UpdateProfile(context.Background(), "missing", &dto.UpdateProfileDTO{})
	assert.ErrorIs(t, err, ErrNotFound)
}
