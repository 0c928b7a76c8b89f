package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"showhub/internal/httpapi/dto"
	"showhub/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

type WatchlistHandler struct {
	svc service.WatchlistService
}

func NewWatchlistHandler(svc service.WatchlistService) *WatchlistHandler {
	return &WatchlistHandler{svc: svc}
}

func (h *WatchlistHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/", h.List)
	rg.POST("/", h.Add)
	rg.DELETE("/:show_id", h.Remove)
}

// Add puts a show on the user's watchlist. Re-adding is a no-op.
func (h *WatchlistHandler) Add(c *gin.Context) {
	userID := c.GetString("userID")

	var req dto.AddToWatchlistDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.Add(ctx, userID, req.ShowID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "show added to watchlist"})
}

func (h *WatchlistHandler) List(c *gin.Context) {
	userID := c.GetString("userID")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	items, err := h.svc.List(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	responses := make([]dto.WatchlistItemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, dto.WatchlistItemResponse{
			ShowID:  item.ShowID,
			AddedAt: item.AddedAt,
		})
	}

	c.JSON(http.StatusOK, dto.WatchlistResponse{Items: responses, Total: len(responses)})
}

// Remove drops a show from the watchlist. Absent shows are a no-op.
func (h *WatchlistHandler) Remove(c *gin.Context) {
	userID := c.GetString("userID")

	showID, err := strconv.ParseInt(c.Param("show_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid show_id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.Remove(ctx, userID, showID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "show removed from watchlist"})
}
