package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"showhub/internal/httpapi/dto"
	"showhub/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	svc service.ProfileService
}

func NewProfileHandler(svc service.ProfileService) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

func (h *ProfileHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/me", h.Me)
	rg.PATCH("/me", h.Update)
	rg.PUT("/me/top-favorites", h.SetTopFavorites)
	rg.GET("/members", h.Members)
	rg.GET("/:user_id", h.Get)
}

func (h *ProfileHandler) Me(c *gin.Context) {
	userID := c.GetString("userID")
	h.writeProfile(c, userID, userID)
}

func (h *ProfileHandler) Get(c *gin.Context) {
	h.writeProfile(c, c.GetString("userID"), c.Param("user_id"))
}

func (h *ProfileHandler) writeProfile(c *gin.Context, viewerID, userID string) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	profile, err := h.svc.GetProfile(ctx, viewerID, userID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) Update(c *gin.Context) {
	userID := c.GetString("userID")

	var req dto.UpdateProfileDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, err := h.svc.UpdateProfile(ctx, userID, &req)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, user)
}

// SetTopFavorites replaces the caller's curated favorites. At most three are
// kept; duplicates collapse to their first occurrence.
func (h *ProfileHandler) SetTopFavorites(c *gin.Context) {
	userID := c.GetString("userID")

	var req dto.SetTopFavoritesDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	favorites, err := h.svc.SetTopFavorites(ctx, userID, req.Favorites)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"top_favorites": favorites})
}

func (h *ProfileHandler) Members(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	members, err := h.svc.ListMembers(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"members": members, "total": len(members)})
}
