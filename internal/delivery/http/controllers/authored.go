package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"CourseHub/internal/models"
	"CourseHub/internal/service/authored"
	"CourseHub/pkg/logger"
)

type AuthoredService interface {
	List(ctx context.Context, authorID uuid.UUID) ([]models.Course, error)
	Create(ctx context.Context, authorID uuid.UUID, draft authored.Draft) (*models.Course, error)
	Update(ctx context.Context, authorID, courseID uuid.UUID, draft authored.Draft) (*models.Course, error)
}

type AuthoredHandler struct {
	AuthoredService AuthoredService
	log             logger.Log
}

func NewAuthoredHandler(l logger.Log, s AuthoredService) *AuthoredHandler {
	return &AuthoredHandler{AuthoredService: s, log: l}
}

func (h *AuthoredHandler) List(c *gin.Context) {
	userID, ok := clientID(c)
	if !ok {
		return
	}
	courses, err := h.AuthoredService.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, courses)
}

type courseDraftRequest struct {
	Title       string                `json:"title" binding:"required"`
	Instructor  string                `json:"instructor"`
	Description string                `json:"description"`
	Price       float64               `json:"price"`
	Category    string                `json:"category"`
	ImageURL    string                `json:"image_url"`
	IsPublished bool                  `json:"is_published"`
	Modules     []models.CourseModule `json:"modules"`
}

func (r courseDraftRequest) draft() authored.Draft {
	return authored.Draft{
		Title:       r.Title,
		Instructor:  r.Instructor,
		Description: r.Description,
		Price:       r.Price,
		Category:    r.Category,
		ImageURL:    r.ImageURL,
		IsPublished: r.IsPublished,
		Modules:     r.Modules,
	}
}

func (h *AuthoredHandler) Create(c *gin.Context) {
	userID, ok := clientID(c)
	if !ok {
		return
	}
	var input courseDraftRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	course, err := h.AuthoredService.Create(c.Request.Context(), userID, input.draft())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, course)
}

func (h *AuthoredHandler) Update(c *gin.Context) {
	userID, ok := clientID(c)
	if !ok {
		return
	}
	courseID, err := uuid.Parse(c.Param("course_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course id"})
		return
	}
	var input courseDraftRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	course, err := h.AuthoredService.Update(c.Request.Context(), userID, courseID, input.draft())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, course)
}
