package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"CourseHub/internal/models"
	"CourseHub/internal/service/favorite"
	"CourseHub/pkg/logger"
)

type FavoriteService interface {
	List(ctx context.Context, userID uuid.UUID) ([]models.Favorite, error)
	Toggle(ctx context.Context, userID, courseID uuid.UUID, origin models.Origin) (*favorite.ToggleResult, error)
}

type FavoriteHandler struct {
	FavoriteService FavoriteService
	log             logger.Log
}

func NewFavoriteHandler(l logger.Log, s FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{FavoriteService: s, log: l}
}

func (h *FavoriteHandler) List(c *gin.Context) {
	userID, ok := clientID(c)
	if !ok {
		return
	}
	favorites, err := h.FavoriteService.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, favorites)
}

type toggleFavoriteRequest struct {
	CourseID uuid.UUID `json:"course_id" binding:"required"`
	Origin   string    `json:"origin" binding:"required"`
}

type toggleFavoriteResponse struct {
	Removed  bool             `json:"removed"`
	Favorite *models.Favorite `json:"favorite,omitempty"`
}

func (h *FavoriteHandler) Toggle(c *gin.Context) {
	userID, ok := clientID(c)
	if !ok {
		return
	}
	var input toggleFavoriteRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	origin, err := models.ParseOrigin(input.Origin)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.FavoriteService.Toggle(c.Request.Context(), userID, input.CourseID, origin)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toggleFavoriteResponse{Removed: result.Removed, Favorite: result.Favorite})
}
