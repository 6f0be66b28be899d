package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"CourseHub/internal/models"
	"CourseHub/internal/service/profile"
	"CourseHub/pkg/logger"
)

type ProfileService interface {
	Identity(ctx context.Context, userID uuid.UUID) (*models.User, error)
	UpdateIdentity(ctx context.Context, userID uuid.UUID, upd profile.Update) (*models.User, error)
}

type ProfileHandler struct {
	ProfileService ProfileService
	log            logger.Log
}

func NewProfileHandler(l logger.Log, s ProfileService) *ProfileHandler {
	return &ProfileHandler{ProfileService: s, log: l}
}

func (h *ProfileHandler) Me(c *gin.Context) {
	userID, ok := clientID(c)
	if !ok {
		return
	}
	user, err := h.ProfileService.Identity(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

type updateProfileRequest struct {
	Name      *string `json:"name"`
	Email     *string `json:"email"`
	AvatarURL *string `json:"avatar_url"`
	Bio       *string `json:"bio"`
	Password  *string `json:"password"`
}

func (h *ProfileHandler) Update(c *gin.Context) {
	userID, ok := clientID(c)
	if !ok {
		return
	}
	var input updateProfileRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.ProfileService.UpdateIdentity(c.Request.Context(), userID, profile.Update{
		Name:      input.Name,
		Email:     input.Email,
		AvatarURL: input.AvatarURL,
		Bio:       input.Bio,
		Password:  input.Password,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
