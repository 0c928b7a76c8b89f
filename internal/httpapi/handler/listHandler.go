package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"showhub/internal/httpapi/dto"
	"showhub/internal/httpapi/repository"
	"showhub/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

type ListHandler struct {
	svc   service.ListService
	users repository.UserRepository
}

func NewListHandler(svc service.ListService, users repository.UserRepository) *ListHandler {
	return &ListHandler{svc: svc, users: users}
}

func (h *ListHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/", h.Create)
	rg.GET("/public", h.ListPublic)
	rg.GET("/user/:user_id", h.ListByUser)
	rg.GET("/:list_id", h.Get)
	rg.DELETE("/:list_id", h.Delete)
	rg.POST("/:list_id/items", h.AddItem)
	rg.DELETE("/:list_id/items/:show_id", h.RemoveItem)
	rg.POST("/:list_id/like", h.ToggleLike)
	rg.POST("/:list_id/comments", h.AppendComment)
	rg.DELETE("/:list_id/comments/:comment_id", h.DeleteComment)
}

func (h *ListHandler) Create(c *gin.Context) {
	userID := c.GetString("userID")
	username := c.GetString("username")

	var req dto.CreateListDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	list, err := h.svc.CreateList(ctx, userID, username, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, list)
}

// Get returns one list. Private lists are only visible to their owner; for
// anyone else they do not exist.
func (h *ListHandler) Get(c *gin.Context) {
	userID := c.GetString("userID")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	list, err := h.svc.GetList(ctx, userID, c.Param("list_id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "list not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *ListHandler) ListPublic(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	lists, err := h.svc.GetPublicLists(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"lists": lists, "total": len(lists)})
}

func (h *ListHandler) ListByUser(c *gin.Context) {
	userID := c.GetString("userID")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	lists, err := h.svc.GetListsByUser(ctx, userID, c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"lists": lists, "total": len(lists)})
}

func (h *ListHandler) Delete(c *gin.Context) {
	userID := c.GetString("userID")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.DeleteList(ctx, userID, c.Param("list_id")); err != nil {
		if errors.Is(err, service.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "not the list owner"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "list deleted"})
}

// AddItem appends a show to a list the caller owns. Re-adding a show is a
// no-op.
func (h *ListHandler) AddItem(c *gin.Context) {
	userID := c.GetString("userID")

	var req dto.AddListItemDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.AddItem(ctx, userID, c.Param("list_id"), &req); err != nil {
		h.writeListError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "show added to list"})
}

func (h *ListHandler) RemoveItem(c *gin.Context) {
	userID := c.GetString("userID")

	showID, err := strconv.ParseInt(c.Param("show_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid show_id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.RemoveItem(ctx, userID, c.Param("list_id"), showID); err != nil {
		h.writeListError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "show removed from list"})
}

func (h *ListHandler) ToggleLike(c *gin.Context) {
	userID := c.GetString("userID")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	result, err := h.svc.ToggleLike(ctx, c.Param("list_id"), userID)
	if err != nil {
		h.writeListError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *ListHandler) AppendComment(c *gin.Context) {
	userID := c.GetString("userID")

	var req dto.AppendReplyDTO
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

	comment, err := h.svc.AppendComment(ctx, c.Param("list_id"), user, req.Content)
	if err != nil {
		h.writeListError(c, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}

func (h *ListHandler) DeleteComment(c *gin.Context) {
	userID := c.GetString("userID")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	err := h.svc.DeleteComment(ctx, userID, c.Param("list_id"), c.Param("comment_id"))
	if err != nil {
		h.writeListError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "comment deleted"})
}

func (h *ListHandler) writeListError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "list not found"})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "not allowed"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
