package service

import (
	"context"

	"showhub/internal/httpapi/models"
	"showhub/internal/httpapi/repository"
)

type SuggestionService interface {
	// Submit files a suggestion into the admin inbox. Any signed-in user may
	// submit.
	Submit(ctx context.Context, user *models.User, content string) (*models.Suggestion, error)
	// List returns the inbox, newest first. Admin only.
	List(ctx context.Context, actorRole string) ([]models.Suggestion, error)
	// Delete removes one suggestion. Admin only; absent ids are a no-op.
	Delete(ctx context.Context, actorRole, suggestionID string) error
}

type suggestionService struct {
	repo repository.SuggestionRepository
}

func NewSuggestionService(repo repository.SuggestionRepository) SuggestionService {
	return &suggestionService{repo: repo}
}

func (s *suggestionService) Submit(ctx context.Context, user *models.User, content string) (*models.Suggestion, error) {
	suggestion := &models.Suggestion{
		UserID:   user.ID,
		Username: user.Username,
		Content:  content,
	}
	if err := s.repo.Create(ctx, suggestion); err != nil {
		return nil, err
	}
	return suggestion, nil
}

func (s *suggestionService) List(ctx context.Context, actorRole string) ([]models.Suggestion, error) {
	if actorRole != "admin" {
		return nil, ErrForbidden
	}
	return s.repo.List(ctx)
}

func (s *suggestionService) Delete(ctx context.Context, actorRole, suggestionID string) error {
	if actorRole != "admin" {
		return ErrForbidden
	}
	return s.repo.Delete(ctx, suggestionID)
}
