package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"showhub/internal/genrefilter"
	"showhub/internal/tmdb"

	"github.com/gin-gonic/gin"
)

// ShowHandler serves catalog reads straight from the metadata provider.
type ShowHandler struct {
	client *tmdb.Client
}

func NewShowHandler(client *tmdb.Client) *ShowHandler {
	return &ShowHandler{client: client}
}

func (h *ShowHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/search", h.Search)
	rg.GET("/discover", h.Discover)
	rg.GET("/trending", h.Trending)
	rg.GET("/top-rated", h.TopRated)
	rg.GET("/:show_id", h.Details)
}

func (h *ShowHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing query parameter q"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	shows, err := h.client.SearchShows(ctx, query)
	if err != nil {
		h.writeUpstreamError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"shows": shows, "total": len(shows)})
}

// Discover runs a filtered catalog query. Genre constraints arrive as the
// comma-joined with_genres / without_genres pair; an optional toggle_genre
// parameter advances that genre's chip one state before querying, so clients
// can hold the whole tri-state selection server-side.
func (h *ShowHandler) Discover(c *gin.Context) {
	selection := genrefilter.NewSelection(c.Query("with_genres"), c.Query("without_genres"))
	if toggled := c.Query("toggle_genre"); toggled != "" {
		selection.Toggle(toggled)
	}
	withGenres, withoutGenres := selection.Params()

	filters := tmdb.DiscoverFilters{
		WithGenres:       withGenres,
		WithoutGenres:    withoutGenres,
		FirstAirDateYear: c.Query("year"),
		Status:           c.Query("status"),
		Language:         c.Query("language"),
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	shows, err := h.client.DiscoverShows(ctx, parsePage(c), c.DefaultQuery("sort_by", "popularity.desc"), filters)
	if err != nil {
		h.writeUpstreamError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"shows":          shows,
		"total":          len(shows),
		"with_genres":    withGenres,
		"without_genres": withoutGenres,
	})
}

func (h *ShowHandler) Trending(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	shows, err := h.client.GetTrendingShows(ctx, parsePage(c))
	if err != nil {
		h.writeUpstreamError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"shows": shows, "total": len(shows)})
}

func (h *ShowHandler) TopRated(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	shows, err := h.client.GetTopRatedShows(ctx, parsePage(c))
	if err != nil {
		h.writeUpstreamError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"shows": shows, "total": len(shows)})
}

func (h *ShowHandler) Details(c *gin.Context) {
	showID, err := strconv.ParseInt(c.Param("show_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid show_id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	details, err := h.client.GetShowDetails(ctx, showID)
	if err != nil {
		h.writeUpstreamError(c, err)
		return
	}
	if details == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "show not found"})
		return
	}

	c.JSON(http.StatusOK, details)
}

func (h *ShowHandler) writeUpstreamError(c *gin.Context, err error) {
	if errors.Is(err, tmdb.ErrUpstreamUnavailable) {
		c.JSON(http.StatusBadGateway, gin.H{"error": "metadata provider unavailable"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
