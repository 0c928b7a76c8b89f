package service

import (
	"context"
	"errors"

	"showhub/internal/httpapi/dto"
	"showhub/internal/httpapi/models"
	"showhub/internal/httpapi/repository"

	"gorm.io/gorm"
)

const publicListLimit = 12

type ListService interface {
	CreateList(ctx context.Context, userID, username string, req *dto.CreateListDTO) (*dto.ListResponse, error)
	GetList(ctx context.Context, actorID, listID string) (*dto.ListResponse, error)
	GetListsByUser(ctx context.Context, actorID, ownerID string) ([]dto.ListResponse, error)
	GetPublicLists(ctx context.Context) ([]dto.ListResponse, error)
	DeleteList(ctx context.Context, actorID, listID string) error

	AddItem(ctx context.Context, actorID, listID string, req *dto.AddListItemDTO) error
	RemoveItem(ctx context.Context, actorID, listID string, showID int64) error

	ToggleLike(ctx context.Context, listID, userID string) (*dto.ToggleLikeResponse, error)
	AppendComment(ctx context.Context, listID string, user *models.User, content string) (*dto.ReplyResponse, error)
	DeleteComment(ctx context.Context, actorID, listID, commentID string) error
}

type listService struct {
	listRepo repository.ListRepository
}

func NewListService(listRepo repository.ListRepository) ListService {
	return &listService{listRepo: listRepo}
}

func (s *listService) CreateList(ctx context.Context, userID, username string, req *dto.CreateListDTO) (*dto.ListResponse, error) {
	list := &models.List{
		UserID:      userID,
		Username:    username,
		Name:        req.Name,
		Description: req.Description,
		IsPrivate:   req.IsPrivate,
	}
	if err := s.listRepo.Create(ctx, list); err != nil {
		return nil, err
	}
	return dto.FromModelToListResponse(list), nil
}

// GetList fetches one list. Private lists look like NotFound to anyone but
// the owner; their existence is not disclosed.
func (s *listService) GetList(ctx context.Context, actorID, listID string) (*dto.ListResponse, error) {
	list, err := s.listRepo.GetByID(ctx, listID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if list.IsPrivate && list.UserID != actorID {
		return nil, ErrNotFound
	}
	return dto.FromModelToListResponse(list), nil
}

// GetListsByUser returns a user's lists; private ones only for the owner.
func (s *listService) GetListsByUser(ctx context.Context, actorID, ownerID string) ([]dto.ListResponse, error) {
	lists, err := s.listRepo.ListByUser(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ListResponse, 0, len(lists))
	for i := range lists {
		if lists[i].IsPrivate && lists[i].UserID != actorID {
			continue
		}
		responses = append(responses, *dto.FromModelToListResponse(&lists[i]))
	}
	return responses, nil
}

func (s *listService) GetPublicLists(ctx context.Context) ([]dto.ListResponse, error) {
	lists, err := s.listRepo.ListPublic(ctx, publicListLimit)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ListResponse, 0, len(lists))
	for i := range lists {
		responses = append(responses, *dto.FromModelToListResponse(&lists[i]))
	}
	return responses, nil
}

func (s *listService) DeleteList(ctx context.Context, actorID, listID string) error {
	list, err := s.listRepo.GetByID(ctx, listID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil // already gone
		}
		return err
	}
	if list.UserID != actorID {
		return ErrForbidden
	}
	return s.listRepo.Delete(ctx, listID)
}

// AddItem appends a show to the list. Only the owner curates items; a show
// already on the list is left as-is.
func (s *listService) AddItem(ctx context.Context, actorID, listID string, req *dto.AddListItemDTO) error {
	list, err := s.listRepo.GetByID(ctx, listID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if list.UserID != actorID {
		return ErrForbidden
	}

	position, err := s.listRepo.NextPosition(ctx, listID)
	if err != nil {
		return err
	}

	item := &models.ListItem{
		ListID:    listID,
		ShowID:    req.ShowID,
		Position:  position,
		ShowName:  req.ShowName,
		PosterURL: req.PosterURL,
	}
	return s.listRepo.AddItem(ctx, item)
}

func (s *listService) RemoveItem(ctx context.Context, actorID, listID string, showID int64) error {
	list, err := s.listRepo.GetByID(ctx, listID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if list.UserID != actorID {
		return ErrForbidden
	}
	return s.listRepo.RemoveItem(ctx, listID, showID)
}

func (s *listService) ToggleLike(ctx context.Context, listID, userID string) (*dto.ToggleLikeResponse, error) {
	list, err := s.listRepo.GetByID(ctx, listID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if list.IsPrivate && list.UserID != userID {
		return nil, ErrNotFound
	}

	liked, err := s.listRepo.ToggleLike(ctx, listID, userID)
	if err != nil {
		return nil, err
	}

	likes, err := s.listRepo.ListLikes(ctx, listID)
	if err != nil {
		return nil, err
	}

	return &dto.ToggleLikeResponse{Liked: liked, LikeCount: len(likes)}, nil
}

func (s *listService) AppendComment(ctx context.Context, listID string, user *models.User, content string) (*dto.ReplyResponse, error) {
	list, err := s.listRepo.GetByID(ctx, listID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if list.IsPrivate && list.UserID != user.ID {
		return nil, ErrNotFound
	}

	comment := &models.ListComment{
		ListID:    listID,
		UserID:    user.ID,
		Username:  user.Username,
		AvatarURL: user.AvatarURL,
		Content:   content,
	}
	if err := s.listRepo.AppendComment(ctx, comment); err != nil {
		return nil, err
	}

	return &dto.ReplyResponse{
		ID:        comment.ID,
		UserID:    comment.UserID,
		Username:  comment.Username,
		AvatarURL: comment.AvatarURL,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	}, nil
}

// DeleteComment removes a comment by id, allowed for the comment author and
// the list owner. A missing comment is a no-op.
func (s *listService) DeleteComment(ctx context.Context, actorID, listID, commentID string) error {
	comment, err := s.listRepo.GetComment(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	list, err := s.listRepo.GetByID(ctx, listID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	if comment.UserID != actorID && list.UserID != actorID {
		return ErrForbidden
	}
	return s.listRepo.DeleteComment(ctx, listID, commentID)
}
