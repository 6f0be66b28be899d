package controllers

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"CourseHub/pkg/logger"
)

type MediaService interface {
	Upload(ctx context.Context, userID uuid.UUID, filename string, reader io.Reader, size int64, contentType string) (string, error)
}

type MediaHandler struct {
	MediaService MediaService
	log          logger.Log
}

func NewMediaHandler(l logger.Log, s MediaService) *MediaHandler {
	return &MediaHandler{MediaService: s, log: l}
}

func (h *MediaHandler) Upload(c *gin.Context) {
	userID, ok := clientID(c)
	if !ok {
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer file.Close()

	url, err := h.MediaService.Upload(
		c.Request.Context(),
		userID,
		fileHeader.Filename,
		file,
		fileHeader.Size,
		fileHeader.Header.Get("Content-Type"),
	)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"url": url})
}
