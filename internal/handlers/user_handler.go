package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "endpage/internal/errors"
	"endpage/internal/pagination"
	"endpage/internal/services"
)

// UserHandler serves the attempt counter and the user listings.
type UserHandler struct {
	userService    services.UserServicer
	endPageService services.EndPageServicer
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService services.UserServicer, endPageService services.EndPageServicer) *UserHandler {
	return &UserHandler{userService: userService, endPageService: endPageService}
}

// DecrementAttempt spends one of a user's attempts
// @Summary     Decrement attempts
// @Description Spend one attempt of the user. Reaching zero deactivates the account.
// @Tags        users
// @Produce     json
// @Security    BearerAuth
// @Param       userId path int true "User ID"
// @Success     200 {object} services.AttemptStatus
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Not the user nor an admin"
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /attempts/{userId} [put]
func (h *UserHandler) DecrementAttempt(c *gin.Context) {
	userID, err := parsePathID(c, "userId")
	if err != nil {
		respondWithError(c, err)
		return
	}

	viewer := getViewer(c)
	if viewer.IsAnonymous() {
		respondWithError(c, apperrors.ErrUnauthorized)
		return
	}
	if !viewer.CanManage(userID) {
		respondWithError(c, apperrors.ErrForbidden)
		return
	}

	status, err := h.userService.DecrementAttempt(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

// ListUsers returns every user, newest first
// @Summary     List users
// @Tags        users
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 30, max 100)"
// @Success     200 {object} pagination.PageResponse[models.User]
// @Failure     403 {object} ErrorResponse "Admin only"
// @Router      /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.userService.ListUsers(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListEndPages returns a user's pages, newest first
// @Summary     List a user's end pages
// @Description Private pages are included only for the user themselves or an admin.
// @Tags        users
// @Produce     json
// @Param       userId path int true "User ID"
// @Success     200 {array}  models.EndPage
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /users/{userId}/end_pages [get]
func (h *UserHandler) ListEndPages(c *gin.Context) {
	userID, err := parsePathID(c, "userId")
	if err != nil {
		respondWithError(c, err)
		return
	}

	pages, err := h.endPageService.ListByOwner(userID, getViewer(c))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, pages)
}
