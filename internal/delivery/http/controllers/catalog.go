package controllers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"CourseHub/internal/models"
	"CourseHub/internal/service/catalog"
	"CourseHub/pkg/logger"
)

type CatalogService interface {
	List(ctx context.Context, query string, page, limit int) (*catalog.Page, error)
	CourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error)
}

type CatalogHandler struct {
	CatalogService CatalogService
	log            logger.Log
}

func NewCatalogHandler(l logger.Log, s CatalogService) *CatalogHandler {
	return &CatalogHandler{CatalogService: s, log: l}
}

type courseListResponse struct {
	Items []models.Course `json:"items"`
	Total int             `json:"total"`
}

func (h *CatalogHandler) List(c *gin.Context) {
	query := c.Query("query")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	result, err := h.CatalogService.List(c.Request.Context(), query, page, limit)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, courseListResponse{Items: result.Items, Total: result.Total})
}

func (h *CatalogHandler) CourseByID(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("course_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course id"})
		return
	}
	course, err := h.CatalogService.CourseByID(c.Request.Context(), courseID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, course)
}
