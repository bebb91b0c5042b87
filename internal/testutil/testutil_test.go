package testutil_test

import (
	"testing"

	"endpage/internal/errors"
	"endpage/internal/models"
	"endpage/internal/testutil"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)

	// Verify all tables exist by doing a simple count query on each model.
	var count int64
	for _, table := range []string{"users", "end_pages", "media", "comments", "audit_logs"} {
		if err := db.Table(table).Count(&count).Error; err != nil {
			t.Errorf("table %q should exist after migration: %v", table, err)
		}
	}
}

func TestSetupTestDBIsolated(t *testing.T) {
	first := testutil.SetupTestDB(t)
	testutil.CreateTestUser(t, first)

	second := testutil.SetupTestDB(t)
	var count int64
	second.Model(&models.User{}).Count(&count)
	if count != 0 {
		t.Errorf("expected a fresh database, found %d users", count)
	}
}

func TestFixtures(t *testing.T) {
	db := testutil.SetupTestDB(t)

	user := testutil.CreateTestUser(t, db)
	if user.ID == 0 {
		t.Fatal("user should have a non-zero ID")
	}
	if user.CountAttempt != models.MaxAttempts {
		t.Errorf("expected %d attempts, got %d", models.MaxAttempts, user.CountAttempt)
	}

	admin := testutil.CreateTestAdmin(t, db)
	if !admin.IsAdmin() {
		t.Error("admin fixture should hold ROLE_ADMIN")
	}

	page := testutil.CreateTestPrivateEndPage(t, db, user.ID)
	if page.UUID == "" {
		t.Fatal("end page should get a UUID on create")
	}
	if !page.IsPrivate || !page.IsOwnedBy(user.ID) {
		t.Errorf("unexpected page state: private=%v owner=%v", page.IsPrivate, page.UserID)
	}

	comment := testutil.CreateTestComment(t, db, page.ID, "farewell")
	if comment.EndPageID != page.ID {
		t.Errorf("expected comment on page %d, got %d", page.ID, comment.EndPageID)
	}

	media := testutil.CreateTestMedia(t, db, page.ID)
	if media.Kind != models.MediaImage {
		t.Errorf("expected image kind, got %s", media.Kind)
	}
}

func TestAssertAppError(t *testing.T) {
	err := errors.WithMessage(errors.ErrEndPageNotFound, "custom message")
	testutil.AssertAppError(t, err, "END_PAGE_NOT_FOUND")
}

func TestAssertAppErrorDetail(t *testing.T) {
	err := errors.WithDetails(errors.ErrInvalidCredentials, map[string]any{"attempts_left": 2})
	testutil.AssertAppErrorDetail(t, err, "attempts_left", 2)
}

func TestAssertNoError(t *testing.T) {
	testutil.AssertNoError(t, nil)
}
