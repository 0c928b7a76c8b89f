package service

import (
	"context"
	"errors"

	"showhub/internal/httpapi/dto"
	"showhub/internal/httpapi/models"
	"showhub/internal/httpapi/repository"

	"gorm.io/gorm"
)

const (
	maxTopFavorites = 3
	memberLimit     = 50
)

type ProfileService interface {
	// GetProfile assembles the full profile page for a user. Lists are
	// filtered through the usual visibility rules for the viewer.
	GetProfile(ctx context.Context, viewerID, userID string) (*dto.ProfileResponse, error)
	GetProfileByUsername(ctx context.Context, viewerID, username string) (*dto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileDTO) (*models.User, error)

	// SetTopFavorites replaces the user's curated favorites. Input beyond
	// three entries is truncated; duplicate show ids keep their first
	// occurrence.
	SetTopFavorites(ctx context.Context, userID string, favorites []dto.TopFavoriteDTO) ([]dto.TopFavoriteResponse, error)

	// ListMembers returns the member directory with tracking counts.
	ListMembers(ctx context.Context) ([]dto.MemberResponse, error)
}

type profileService struct {
	userRepo      repository.UserRepository
	ratingRepo    repository.RatingRepository
	watchlistRepo repository.WatchlistRepository
	listService   ListService
}

func NewProfileService(
	userRepo repository.UserRepository,
	ratingRepo repository.RatingRepository,
	watchlistRepo repository.WatchlistRepository,
	listService ListService,
) ProfileService {
	return &profileService{
		userRepo:      userRepo,
		ratingRepo:    ratingRepo,
		watchlistRepo: watchlistRepo,
		listService:   listService,
	}
}

func (s *profileService) GetProfile(ctx context.Context, viewerID, userID string) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.assembleProfile(ctx, viewerID, user)
}

func (s *profileService) GetProfileByUsername(ctx context.Context, viewerID, username string) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.assembleProfile(ctx, viewerID, user)
}

func (s *profileService) assembleProfile(ctx context.Context, viewerID string, user *models.User) (*dto.ProfileResponse, error) {
	favorites, err := s.userRepo.ListTopFavorites(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	ratings, err := s.ratingRepo.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	ratingMap := make(map[int64]int, len(ratings))
	for _, r := range ratings {
		ratingMap[r.ShowID] = r.Rating
	}

	watchlist, err := s.watchlistRepo.List(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	watchlistIDs := make([]int64, 0, len(watchlist))
	for _, item := range watchlist {
		watchlistIDs = append(watchlistIDs, item.ShowID)
	}

	lists, err := s.listService.GetListsByUser(ctx, viewerID, user.ID)
	if err != nil {
		return nil, err
	}

	favResponses := make([]dto.TopFavoriteResponse, 0, len(favorites))
	for i := range favorites {
		favResponses = append(favResponses, dto.FromModelToTopFavoriteResponse(&favorites[i]))
	}

	return &dto.ProfileResponse{
		ID:              user.ID,
		Username:        user.Username,
		Role:            user.Role,
		AvatarURL:       user.AvatarURL,
		Bio:             user.Bio,
		BackgroundTheme: user.BackgroundTheme,
		CreatedAt:       user.CreatedAt,
		TopFavorites:    favResponses,
		Ratings:         ratingMap,
		Watchlist:       watchlistIDs,
		Lists:           lists,
	}, nil
}

func (s *profileService) UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileDTO) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.AvatarURL != nil {
		user.AvatarURL = req.AvatarURL
	}
	if req.Bio != nil {
		user.Bio = req.Bio
	}
	if req.BackgroundTheme != nil {
		user.BackgroundTheme = req.BackgroundTheme
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *profileService) SetTopFavorites(ctx context.Context, userID string, favorites []dto.TopFavoriteDTO) ([]dto.TopFavoriteResponse, error) {
	seen := make(map[int64]bool, maxTopFavorites)
	rows := make([]models.TopFavorite, 0, maxTopFavorites)
	for _, fav := range favorites {
		if len(rows) == maxTopFavorites {
			break
		}
		if seen[fav.ShowID] {
			continue
		}
		seen[fav.ShowID] = true
		rows = append(rows, models.TopFavorite{
			UserID:    userID,
			ShowID:    fav.ShowID,
			Position:  len(rows) + 1,
			ShowName:  fav.ShowName,
			PosterURL: fav.PosterURL,
		})
	}

	if err := s.userRepo.ReplaceTopFavorites(ctx, userID, rows); err != nil {
		return nil, err
	}

	responses := make([]dto.TopFavoriteResponse, 0, len(rows))
	for i := range rows {
		responses = append(responses, dto.FromModelToTopFavoriteResponse(&rows[i]))
	}
	return responses, nil
}

func (s *profileService) ListMembers(ctx context.Context) ([]dto.MemberResponse, error) {
	users, err := s.userRepo.ListMembers(ctx, memberLimit)
	if err != nil {
		return nil, err
	}

	members := make([]dto.MemberResponse, 0, len(users))
	for i := range users {
		user := &users[i]
		ratingCount, err := s.ratingRepo.CountByUser(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		watchlistCount, err := s.watchlistRepo.CountByUser(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		members = append(members, dto.MemberResponse{
			ID:             user.ID,
			Username:       user.Username,
			AvatarURL:      user.AvatarURL,
			Bio:            user.Bio,
			CreatedAt:      user.CreatedAt,
			RatingCount:    ratingCount,
			WatchlistCount: watchlistCount,
		})
	}
	return members, nil
}
