package handlers

import (
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "endpage/internal/errors"
	"endpage/internal/models"
	"endpage/internal/services"
)

// UploadResponse reports a batch upload.
type UploadResponse struct {
	Message string         `json:"message"`
	Files   []models.Media `json:"files"`
	Errors  []string       `json:"errors"`
}

// MediaHandler handles media uploads
type MediaHandler struct {
	mediaService services.MediaServicer
}

// NewMediaHandler creates a new MediaHandler
func NewMediaHandler(mediaService services.MediaServicer) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

// Upload attaches files to a page
// @Summary     Upload media
// @Description Multipart field "files". Each file is checked on its own; accepted types are JPEG, PNG, GIF, MP4, MP3, OGG and WAV.
// @Tags        media
// @Accept      multipart/form-data
// @Produce     json
// @Security    BearerAuth
// @Param       uuid  path     string true "End page UUID or id"
// @Param       files formData file   true "Files"
// @Success     201 {object} UploadResponse "At least one file stored"
// @Failure     400 {object} ErrorResponse "No files field, or every file rejected"
// @Failure     403 {object} ErrorResponse "Not the owner nor an admin"
// @Failure     404 {object} ErrorResponse "End page not found"
// @Router      /end_pages/{uuid}/upload [post]
func (h *MediaHandler) Upload(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		respondWithError(c, err)
		return
	}

	files := formFiles(c)
	if files == nil {
		respondWithError(c, apperrors.ErrNoFiles)
		return
	}

	result, err := h.mediaService.Upload(c.Request.Context(), c.Param("uuid"), getViewer(c), files, c.ClientIP())
	if err != nil {
		respondWithError(c, err)
		return
	}

	if !result.Succeeded() {
		respondWithError(c, apperrors.WithDetails(apperrors.ErrUploadRejected, map[string]any{
			"message": apperrors.ErrUploadRejected.Message,
			"files":   result.Files,
			"errors":  result.Errors,
		}))
		return
	}

	c.JSON(http.StatusCreated, UploadResponse{
		Message: "Files uploaded successfully",
		Files:   result.Files,
		Errors:  result.Errors,
	})
}

// formFiles returns the uploaded "files" (or "files[]") parts, or nil when
// the request carries no such field.
func formFiles(c *gin.Context) []*multipart.FileHeader {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	for _, key := range []string{"files", "files[]"} {
		if files, ok := form.File[key]; ok && len(files) > 0 {
			return files
		}
	}
	return nil
}
