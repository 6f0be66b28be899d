package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"CourseHub/internal/models"
	"CourseHub/internal/service/enrollment"
	"CourseHub/pkg/logger"
)

type EnrollmentService interface {
	List(ctx context.Context, userID uuid.UUID) ([]models.Enrollment, error)
	Join(ctx context.Context, userID, courseID uuid.UUID, origin models.Origin) (*models.Enrollment, error)
	UpdateProgress(ctx context.Context, userID uuid.UUID, upd enrollment.ProgressUpdate) (*models.Enrollment, error)
}

type EnrollmentHandler struct {
	EnrollmentService EnrollmentService
	log               logger.Log
}

func NewEnrollmentHandler(l logger.Log, s EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{EnrollmentService: s, log: l}
}

func (h *EnrollmentHandler) List(c *gin.Context) {
	userID, ok := clientID(c)
	if !ok {
		return
	}
	enrollments, err := h.EnrollmentService.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, enrollments)
}

type joinCourseRequest struct {
	CourseID uuid.UUID `json:"course_id" binding:"required"`
	Origin   string    `json:"origin" binding:"required"`
}

func (h *EnrollmentHandler) Join(c *gin.Context) {
	userID, ok := clientID(c)
	if !ok {
		return
	}
	var input joinCourseRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	origin, err := models.ParseOrigin(input.Origin)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.EnrollmentService.Join(c.Request.Context(), userID, input.CourseID, origin)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

type progressUpdateRequest struct {
	EnrollmentID        uuid.UUID            `json:"enrollment_id" binding:"required"`
	CompletedContentIDs []string             `json:"completed_content_ids"`
	QuizAttempts        []models.QuizAttempt `json:"quiz_attempts"`
}

func (h *EnrollmentHandler) UpdateProgress(c *gin.Context) {
	userID, ok := clientID(c)
	if !ok {
		return
	}
	var input progressUpdateRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.EnrollmentService.UpdateProgress(c.Request.Context(), userID, enrollment.ProgressUpdate{
		EnrollmentID:        input.EnrollmentID,
		CompletedContentIDs: input.CompletedContentIDs,
		QuizAttempts:        input.QuizAttempts,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}
