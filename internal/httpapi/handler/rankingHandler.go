package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"showhub/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

type RankingHandler struct {
	svc service.RankingService
}

func NewRankingHandler(svc service.RankingService) *RankingHandler {
	return &RankingHandler{svc: svc}
}

func (h *RankingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/community-favorites", h.CommunityFavorites)
	rg.GET("/most-watchlisted", h.MostWatchlisted)
}

// CommunityFavorites returns a page of the mean-rating ranking resolved to
// catalog shows.
func (h *RankingHandler) CommunityFavorites(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	result, err := h.svc.CommunityFavoriteShows(ctx, parsePage(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// MostWatchlisted returns a page of the watchlist-count ranking.
func (h *RankingHandler) MostWatchlisted(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	result, err := h.svc.MostWatchlistedShows(ctx, parsePage(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

func parsePage(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
