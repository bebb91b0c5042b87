package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"sync"
	"testing"

	"endpage/internal/logger"
	"endpage/internal/models"
	"endpage/internal/repository"
	"endpage/internal/storage"
	"endpage/internal/testutil"

	"gorm.io/gorm"
)

func init() {
	logger.Init("test")
}

func newTestStore(t *testing.T) (*gorm.DB, *repository.Store) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return db, repository.New(db)
}

// recordingNotifier captures notifications instead of sending them.
type recordingNotifier struct {
	mu       sync.Mutex
	welcomed []string
	pages    []*models.EndPage
}

var _ NotificationServicer = (*recordingNotifier)(nil)

func (n *recordingNotifier) SendWelcome(_ context.Context, user *models.User) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.welcomed = append(n.welcomed, user.Email)
}

func (n *recordingNotifier) NotifyEndPageCreated(_ context.Context, page *models.EndPage) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pages = append(n.pages, page)
}

// recordingAudit captures audit actions.
type recordingAudit struct {
	mu      sync.Mutex
	actions []string
}

var _ AuditServicer = (*recordingAudit)(nil)

func (a *recordingAudit) History(uint) ([]models.AuditLog, error) { return nil, nil }

func (a *recordingAudit) Log(_ uint, action, _ string, _ uint, _ string, _ map[string]any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.actions = append(a.actions, action)
}

func (a *recordingAudit) has(action string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, got := range a.actions {
		if got == action {
			return true
		}
	}
	return false
}

// memStorage keeps blobs in memory.
type memStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	failPut bool
}

var _ storage.Storage = (*memStorage)(nil)

func newMemStorage() *memStorage {
	return &memStorage{objects: map[string][]byte{}}
}

func (m *memStorage) Put(_ context.Context, name, _ string, body io.Reader, _ int64) error {
	if m.failPut {
		return errors.New("disk full")
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[name] = data
	return nil
}

func (m *memStorage) Delete(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, name)
	return nil
}

func (m *memStorage) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}

var (
	pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), bytes.Repeat([]byte{0}, 32)...)
	gifBytes = append([]byte("GIF89a"), bytes.Repeat([]byte{1}, 32)...)
)

type uploadFile struct {
	name string
	data []byte
}

// multipartFiles builds file headers the way an HTTP multipart parser would.
func multipartFiles(t *testing.T, files ...uploadFile) []*multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for _, f := range files {
		part, err := w.CreateFormFile("files", f.name)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write(f.data); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(32 << 20)
	if err != nil {
		t.Fatalf("read multipart form: %v", err)
	}
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["files"]
}
