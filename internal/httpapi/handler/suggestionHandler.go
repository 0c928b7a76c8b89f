package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"showhub/internal/httpapi/dto"
	"showhub/internal/httpapi/middleware"
	"showhub/internal/httpapi/repository"
	"showhub/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

type SuggestionHandler struct {
	svc   service.SuggestionService
	users repository.UserRepository
}

func NewSuggestionHandler(svc service.SuggestionService, users repository.UserRepository) *SuggestionHandler {
	return &SuggestionHandler{svc: svc, users: users}
}

func (h *SuggestionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/", h.Submit)
	rg.GET("/", middleware.RequireAdmin(), h.List)
	rg.DELETE("/:suggestion_id", middleware.RequireAdmin(), h.Delete)
}

// Submit files a suggestion into the admin inbox.
func (h *SuggestionHandler) Submit(c *gin.Context) {
	userID := c.GetString("userID")

	var req dto.SubmitSuggestionDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, err := h.users.FindByID(ctx, userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	suggestion, err := h.svc.Submit(ctx, user, req.Content)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, dto.FromModelToSuggestionResponse(suggestion))
}

// List returns the inbox, newest first. Admin only.
func (h *SuggestionHandler) List(c *gin.Context) {
	role := c.GetString("role")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	suggestions, err := h.svc.List(ctx, role)
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin only"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	responses := make([]dto.SuggestionResponse, 0, len(suggestions))
	for i := range suggestions {
		responses = append(responses, dto.FromModelToSuggestionResponse(&suggestions[i]))
	}

	c.JSON(http.StatusOK, gin.H{"suggestions": responses, "total": len(responses)})
}

func (h *SuggestionHandler) Delete(c *gin.Context) {
	role := c.GetString("role")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.Delete(ctx, role, c.Param("suggestion_id")); err != nil {
		if errors.Is(err, service.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin only"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "suggestion deleted"})
}
