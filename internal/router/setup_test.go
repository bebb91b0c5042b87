package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"endpage/internal/logger"
	"endpage/internal/mailer"
	"endpage/internal/moderation"
	"endpage/internal/repository"
	"endpage/internal/services"
	"endpage/internal/storage"
	"endpage/internal/testutil"
	"endpage/internal/validator"
)

const appURL = "http://endpage.test"

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB        *gorm.DB
	Router    *gin.Engine
	Mail      *recordingSender
	UploadDir string
}

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// recordingSender keeps every message instead of delivering it.
type recordingSender struct {
	mu   sync.Mutex
	sent []mailer.Message
}

func (s *recordingSender) Send(_ context.Context, msg mailer.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, msg)
	return nil
}

// recipients lists the addresses of messages whose subject starts with prefix.
func (s *recordingSender) recipients(prefix string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for _, m := range s.sent {
		if strings.HasPrefix(m.Subject, prefix) {
			out = append(out, m.To)
		}
	}
	return out
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()
	return setupAppWithOptions(t, Options{})
}

func setupAppWithOptions(t *testing.T, opts Options) *testApp {
	t.Helper()

	db := testutil.SetupTestDB(t)
	store := repository.New(db)

	uploadDir := t.TempDir()
	files, err := storage.NewLocal(uploadDir)
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	sender := &recordingSender{}

	// Services
	auditService := services.NewAuditService(store)
	notifier := services.NewNotificationService(sender, appURL)
	endPageService := services.NewEndPageService(store, moderation.Default(), notifier, auditService, files, appURL+"/uploads")

	opts.UploadDir = uploadDir
	r := New(Services{
		Users:    services.NewUserService(store, auditService, notifier, 0),
		EndPages: endPageService,
		Comments: services.NewCommentService(store),
		Media:    services.NewMediaService(store, files, auditService, appURL+"/uploads", 1<<20),
		Scanner:  moderation.Default(),
	}, opts)

	return &testApp{DB: db, Router: r, Mail: sender, UploadDir: uploadDir}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

type upload struct {
	name string
	data []byte
}

// upload posts files as multipart field "files".
func (app *testApp) upload(t *testing.T, ref, token string, files ...upload) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for _, f := range files {
		part, err := w.CreateFormFile("files", f.name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := part.Write(f.data); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/end_pages/"+ref+"/upload", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func errorCode(result map[string]interface{}) string {
	errObj, _ := result["error"].(map[string]interface{})
	code, _ := errObj["code"].(string)
	return code
}

// registerUser registers a new user and returns the token and user ID.
func (app *testApp) registerUser(t *testing.T, email, password string) (token string, userID float64) {
	t.Helper()
	body := fmt.Sprintf(`{"firstname":"Test","lastname":"User","username":%q,"email":%q,"password":%q}`,
		strings.Split(email, "@")[0], email, password)
	rec := app.request("POST", "/api/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	return result["token"].(string), user["id"].(float64)
}

// loginUser logs in and returns the token.
func (app *testApp) loginUser(t *testing.T, email, password string) string {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	rec := app.request("POST", "/api/auth/login_check", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)["token"].(string)
}

// createPage creates a page and returns the response body.
func (app *testApp) createPage(t *testing.T, token, body string) map[string]interface{} {
	t.Helper()
	rec := app.request("POST", "/api/end_pages", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create page failed: %d %s", rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)
}

func parseJSONArray(t *testing.T, rec *httptest.ResponseRecorder) []interface{} {
	t.Helper()
	var result []interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON array: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}
