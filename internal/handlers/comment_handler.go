package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"endpage/internal/services"
)

// CommentHandler handles comment-related requests
type CommentHandler struct {
	commentService services.CommentServicer
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentService services.CommentServicer) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// CreateCommentRequest represents the request body for a comment. EndPage is
// a UUID or an IRI such as "/api/end_pages/<uuid>".
type CreateCommentRequest struct {
	Author  string `json:"author" binding:"required,max=255"`
	Text    string `json:"text" binding:"required"`
	EndPage string `json:"end_page" binding:"required"`
}

// CreateComment adds an anonymous comment to a page
// @Summary     Comment on an end page
// @Tags        comments
// @Accept      json
// @Produce     json
// @Param       request body CreateCommentRequest true "Comment"
// @Success     201 {object} models.Comment
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Private page, no token"
// @Failure     403 {object} ErrorResponse "Private page of someone else"
// @Failure     404 {object} ErrorResponse "End page not found"
// @Failure     429 {object} ErrorResponse "Too many requests"
// @Router      /comments [post]
func (h *CommentHandler) CreateComment(c *gin.Context) {
	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	comment, err := h.commentService.AddComment(req.EndPage, req.Author, req.Text, getViewer(c))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// ListComments returns a page's comments, newest first
// @Summary     List comments of an end page
// @Tags        comments
// @Produce     json
// @Param       uuid path string true "End page UUID or id"
// @Success     200 {array}  models.Comment
// @Failure     401 {object} ErrorResponse "Private page, no token"
// @Failure     403 {object} ErrorResponse "Private page of someone else"
// @Failure     404 {object} ErrorResponse "End page not found"
// @Router      /end_pages/{uuid}/comments [get]
func (h *CommentHandler) ListComments(c *gin.Context) {
	comments, err := h.commentService.ListComments(c.Param("uuid"), getViewer(c))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, comments)
}
