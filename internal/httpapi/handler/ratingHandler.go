package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"showhub/internal/httpapi/dto"
	"showhub/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

type RatingHandler struct {
	svc service.RatingService
}

func NewRatingHandler(svc service.RatingService) *RatingHandler {
	return &RatingHandler{svc: svc}
}

func (h *RatingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/", h.List)
	rg.GET("/:show_id", h.Get)
	rg.PUT("/:show_id", h.Set)
}

// List returns every rating the user has set, keyed by show id.
func (h *RatingHandler) List(c *gin.Context) {
	userID := c.GetString("userID")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	ratings, err := h.svc.GetRatings(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.RatingsResponse{Ratings: ratings})
}

func (h *RatingHandler) Get(c *gin.Context) {
	userID := c.GetString("userID")

	showID, err := strconv.ParseInt(c.Param("show_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid show_id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	rating, err := h.svc.GetRating(ctx, userID, showID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.RatingResponse{ShowID: showID, Rating: rating})
}

// Set stores the user's rating for a show. A rating of zero clears it.
func (h *RatingHandler) Set(c *gin.Context) {
	userID := c.GetString("userID")

	showID, err := strconv.ParseInt(c.Param("show_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid show_id"})
		return
	}

	var req dto.SetRatingDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.SetRating(ctx, userID, showID, *req.Rating); err != nil {
		if errors.Is(err, service.ErrInvalidRating) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "rating must be between 1 and 5, or 0 to clear"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.RatingResponse{ShowID: showID, Rating: *req.Rating})
}
