package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"endpage/internal/moderation"
)

// ContentScanner flags language in free text.
type ContentScanner interface {
	Scan(text string) []moderation.Warning
}

// ModerationHandler exposes the content scanner for form previews.
type ModerationHandler struct {
	scanner ContentScanner
}

// NewModerationHandler creates a new ModerationHandler
func NewModerationHandler(scanner ContentScanner) *ModerationHandler {
	return &ModerationHandler{scanner: scanner}
}

// ScanRequest is the text to check.
type ScanRequest struct {
	Text string `json:"text"`
}

// ScanResponse lists the warnings found in the text.
type ScanResponse struct {
	Warnings []moderation.Warning `json:"warnings"`
}

// Scan checks text without storing anything
// @Summary     Preview content warnings
// @Description Returns what creating a page with this content would flag. Nothing is stored and no attempt is spent.
// @Tags        moderation
// @Accept      json
// @Produce     json
// @Param       request body ScanRequest true "Text"
// @Success     200 {object} ScanResponse
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /moderation/scan [post]
func (h *ModerationHandler) Scan(c *gin.Context) {
	var req ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	c.JSON(http.StatusOK, ScanResponse{Warnings: h.scanner.Scan(req.Text)})
}
