package handlers

import (
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"endpage/internal/logger"
	"endpage/internal/models"
	"endpage/internal/pagination"
	"endpage/internal/services"
	"endpage/internal/validator"
)

// --- mock services ---

type mockUserService struct {
	registerFn         func(in services.RegisterInput) (*models.User, error)
	loginFn            func(email, password, ip string) (*models.User, error)
	getUserByIDFn      func(id uint) (*models.User, error)
	decrementAttemptFn func(userID uint) (*services.AttemptStatus, error)
	listUsersFn        func(page pagination.PageRequest) (*pagination.PageResponse[models.User], error)
}

var _ services.UserServicer = (*mockUserService)(nil)

func (m *mockUserService) Register(_ context.Context, in services.RegisterInput) (*models.User, error) {
	if m.registerFn != nil {
		return m.registerFn(in)
	}
	return &models.User{}, nil
}

func (m *mockUserService) Login(email, password, ip string) (*models.User, error) {
	if m.loginFn != nil {
		return m.loginFn(email, password, ip)
	}
	return &models.User{}, nil
}

func (m *mockUserService) GetUserByID(id uint) (*models.User, error) {
	if m.getUserByIDFn != nil {
		return m.getUserByIDFn(id)
	}
	return &models.User{}, nil
}

func (m *mockUserService) DecrementAttempt(userID uint) (*services.AttemptStatus, error) {
	if m.decrementAttemptFn != nil {
		return m.decrementAttemptFn(userID)
	}
	return &services.AttemptStatus{}, nil
}

func (m *mockUserService) ListUsers(page pagination.PageRequest) (*pagination.PageResponse[models.User], error) {
	if m.listUsersFn != nil {
		return m.listUsersFn(page)
	}
	resp := pagination.NewPageResponse[models.User](nil, page, 0)
	return &resp, nil
}

func (m *mockUserService) UpdateRoles(_ uint, _ []string) (*models.User, error) {
	return &models.User{}, nil
}

func (m *mockUserService) Reactivate(_ uint) (*models.User, error) {
	return &models.User{}, nil
}

type mockEndPageService struct {
	createFn      func(ownerID uint, in services.CreateEndPageInput) (*services.CreateEndPageResult, error)
	getFn         func(ref string, viewer services.Viewer) (*models.EndPage, error)
	getSharedFn   func(uuid string) (*models.EndPage, error)
	listPublicFn  func(page pagination.PageRequest) (*pagination.PageResponse[models.EndPage], error)
	listByOwnerFn func(userID uint, viewer services.Viewer) ([]models.EndPage, error)
	addRatingFn   func(uuid string, rating int) (*models.EndPage, error)
	deleteFn      func(uuid string, viewer services.Viewer) error
}

var _ services.EndPageServicer = (*mockEndPageService)(nil)

func (m *mockEndPageService) Create(_ context.Context, ownerID uint, in services.CreateEndPageInput) (*services.CreateEndPageResult, error) {
	if m.createFn != nil {
		return m.createFn(ownerID, in)
	}
	return &services.CreateEndPageResult{EndPage: &models.EndPage{}}, nil
}

func (m *mockEndPageService) Get(ref string, viewer services.Viewer) (*models.EndPage, error) {
	if m.getFn != nil {
		return m.getFn(ref, viewer)
	}
	return &models.EndPage{}, nil
}

func (m *mockEndPageService) GetShared(uuid string) (*models.EndPage, error) {
	if m.getSharedFn != nil {
		return m.getSharedFn(uuid)
	}
	return &models.EndPage{}, nil
}

func (m *mockEndPageService) ListPublic(page pagination.PageRequest) (*pagination.PageResponse[models.EndPage], error) {
	if m.listPublicFn != nil {
		return m.listPublicFn(page)
	}
	resp := pagination.NewPageResponse[models.EndPage](nil, page, 0)
	return &resp, nil
}

func (m *mockEndPageService) ListByOwner(userID uint, viewer services.Viewer) ([]models.EndPage, error) {
	if m.listByOwnerFn != nil {
		return m.listByOwnerFn(userID, viewer)
	}
	return []models.EndPage{}, nil
}

func (m *mockEndPageService) AddRating(uuid string, rating int) (*models.EndPage, error) {
	if m.addRatingFn != nil {
		return m.addRatingFn(uuid, rating)
	}
	return &models.EndPage{}, nil
}

func (m *mockEndPageService) Delete(_ context.Context, uuid string, viewer services.Viewer, _ string) error {
	if m.deleteFn != nil {
		return m.deleteFn(uuid, viewer)
	}
	return nil
}

type mockCommentService struct {
	addCommentFn   func(pageRef, author, text string, viewer services.Viewer) (*models.Comment, error)
	listCommentsFn func(pageRef string, viewer services.Viewer) ([]models.Comment, error)
}

var _ services.CommentServicer = (*mockCommentService)(nil)

func (m *mockCommentService) AddComment(pageRef, author, text string, viewer services.Viewer) (*models.Comment, error) {
	if m.addCommentFn != nil {
		return m.addCommentFn(pageRef, author, text, viewer)
	}
	return &models.Comment{}, nil
}

func (m *mockCommentService) ListComments(pageRef string, viewer services.Viewer) ([]models.Comment, error) {
	if m.listCommentsFn != nil {
		return m.listCommentsFn(pageRef, viewer)
	}
	return []models.Comment{}, nil
}

type mockMediaService struct {
	uploadFn func(pageRef string, viewer services.Viewer, files []*multipart.FileHeader) (*services.UploadResult, error)
}

var _ services.MediaServicer = (*mockMediaService)(nil)

func (m *mockMediaService) Upload(_ context.Context, pageRef string, viewer services.Viewer, files []*multipart.FileHeader, _ string) (*services.UploadResult, error) {
	if m.uploadFn != nil {
		return m.uploadFn(pageRef, viewer, files)
	}
	return &services.UploadResult{Files: []models.Media{{}}, Errors: []string{}}, nil
}

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// injectViewer stands in for the auth middleware.
func injectViewer(uid uint, roles ...string) gin.HandlerFunc {
	if len(roles) == 0 {
		roles = []string{models.RoleUser}
	}
	return func(c *gin.Context) {
		c.Set("userID", uid)
		c.Set("roles", roles)
		c.Next()
	}
}

func injectUserID(uid uint) gin.HandlerFunc {
	return injectViewer(uid)
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func parseJSONArray(t *testing.T, rec *httptest.ResponseRecorder) []interface{} {
	t.Helper()
	var result []interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON array: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}
