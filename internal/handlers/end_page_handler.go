package handlers

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "endpage/internal/errors"
	"endpage/internal/models"
	"endpage/internal/moderation"
	"endpage/internal/pagination"
	"endpage/internal/services"
)

// EndPageHandler handles end page-related requests
type EndPageHandler struct {
	endPageService services.EndPageServicer
}

// NewEndPageHandler creates a new EndPageHandler
func NewEndPageHandler(endPageService services.EndPageServicer) *EndPageHandler {
	return &EndPageHandler{endPageService: endPageService}
}

// CreateEndPageRequest represents the request body for creating an end page
type CreateEndPageRequest struct {
	Title           string   `json:"title" binding:"required,max=255"`
	Content         string   `json:"content" binding:"required"`
	Tone            string   `json:"tone" binding:"required,tone"`
	IsPrivate       bool     `json:"is_private"`
	BackgroundType  *string  `json:"background_type" binding:"omitempty,background_type"`
	BackgroundValue *string  `json:"background_value" binding:"omitempty,max=255"`
	Emails          []string `json:"emails"`
}

// CreateEndPageResponse is the created page plus the moderation outcome.
type CreateEndPageResponse struct {
	*models.EndPage
	ContentWarnings []moderation.Warning `json:"content_warnings"`
	AttemptsLeft    *int                 `json:"attempts_left,omitempty"`
}

// RatingRequest carries a rating as a JSON number or a numeric string.
type RatingRequest struct {
	Rating json.RawMessage `json:"rating" swaggertype:"integer"`
}

// RatingSummary is the endPage part of a rating response.
type RatingSummary struct {
	ID            uint     `json:"id"`
	UUID          string   `json:"uuid"`
	TotalRating   int      `json:"totalRating"`
	NumberOfVotes int      `json:"numberOfVotes"`
	AverageRating *float64 `json:"averageRating"`
}

// RatingResponse is returned after a vote.
type RatingResponse struct {
	Message string        `json:"message"`
	EndPage RatingSummary `json:"endPage"`
}

// CreateEndPage handles the creation of a new end page
// @Summary     Create an end page
// @Description Content is scanned for flagged language. Each flagged submission costs the author one attempt; the last one deactivates the account and refuses the page.
// @Tags        end_pages
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateEndPageRequest true "End page"
// @Success     201 {object} CreateEndPageResponse
// @Failure     400 {object} ErrorResponse "Invalid input or tone"
// @Failure     401 {object} ErrorResponse "Unauthorized, deactivated or out of attempts"
// @Router      /end_pages [post]
func (h *EndPageHandler) CreateEndPage(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateEndPageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	in := services.CreateEndPageInput{
		Title:           req.Title,
		Content:         req.Content,
		Tone:            models.Tone(req.Tone),
		IsPrivate:       req.IsPrivate,
		BackgroundValue: req.BackgroundValue,
		Emails:          req.Emails,
		IPAddress:       c.ClientIP(),
	}
	if req.BackgroundType != nil {
		bt := models.BackgroundType(*req.BackgroundType)
		in.BackgroundType = &bt
	}

	result, err := h.endPageService.Create(c.Request.Context(), userID, in)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, CreateEndPageResponse{
		EndPage:         result.EndPage,
		ContentWarnings: result.ContentWarnings,
		AttemptsLeft:    result.AttemptsLeft,
	})
}

// ListEndPages returns public end pages, newest first
// @Summary     List public end pages
// @Tags        end_pages
// @Produce     json
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 30, max 100)"
// @Success     200 {object} pagination.PageResponse[models.EndPage]
// @Router      /end_pages [get]
func (h *EndPageHandler) ListEndPages(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.endPageService.ListPublic(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetEndPage returns one end page with its media and comments
// @Summary     Get an end page
// @Description Private pages need the owner's or an admin's token: anonymous callers get 401, others 403.
// @Tags        end_pages
// @Produce     json
// @Param       uuid path string true "End page UUID"
// @Success     200 {object} models.EndPage
// @Failure     400 {object} ErrorResponse "Malformed UUID"
// @Failure     401 {object} ErrorResponse "Private page, no token"
// @Failure     403 {object} ErrorResponse "Private page of someone else"
// @Failure     404 {object} ErrorResponse "End page not found"
// @Router      /end_pages/{uuid} [get]
func (h *EndPageHandler) GetEndPage(c *gin.Context) {
	page, err := h.endPageService.Get(c.Param("uuid"), getViewer(c))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// DeleteEndPage removes an end page with its comments and media
// @Summary     Delete an end page
// @Tags        end_pages
// @Security    BearerAuth
// @Param       uuid path string true "End page UUID"
// @Success     204 "Deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Not the owner nor an admin"
// @Failure     404 {object} ErrorResponse "End page not found"
// @Router      /end_pages/{uuid} [delete]
func (h *EndPageHandler) DeleteEndPage(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.endPageService.Delete(c.Request.Context(), c.Param("uuid"), getViewer(c), c.ClientIP()); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// AddRating records an anonymous vote
// @Summary     Rate an end page
// @Description Rating is 1 to 5, sent as a number or a numeric string; fractions are truncated.
// @Tags        end_pages
// @Accept      json
// @Produce     json
// @Param       uuid    path string        true "End page UUID"
// @Param       request body RatingRequest true "Rating"
// @Success     200 {object} RatingResponse
// @Failure     400 {object} ErrorResponse "Invalid rating or UUID"
// @Failure     404 {object} ErrorResponse "End page not found"
// @Failure     429 {object} ErrorResponse "Too many requests"
// @Router      /end_pages/{uuid}/rating [put]
func (h *EndPageHandler) AddRating(c *gin.Context) {
	var req RatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidRating, "Rating value is required and must be numeric"))
		return
	}

	value, ok := parseRating(req.Rating)
	if !ok {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidRating, "Rating value is required and must be numeric"))
		return
	}
	// Range is checked before truncation so 5.9 is refused, not counted as 5.
	if value < minRating || value > maxRating {
		respondWithError(c, apperrors.ErrInvalidRating)
		return
	}

	page, err := h.endPageService.AddRating(c.Param("uuid"), int(value))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, RatingResponse{
		Message: "Rating added successfully",
		EndPage: RatingSummary{
			ID:            page.ID,
			UUID:          page.UUID,
			TotalRating:   page.TotalRating,
			NumberOfVotes: page.NumberOfVotes,
			AverageRating: page.AverageRating,
		},
	})
}

const (
	minRating = 1
	maxRating = 5
)

// parseRating accepts 4, 4.7 or "4" and returns the numeric value.
func parseRating(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 {
		return 0, false
	}

	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return 0, false
	}

	var f float64
	switch v := value.(type) {
	case float64:
		f = v
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
