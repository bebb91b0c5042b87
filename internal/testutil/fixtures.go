package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"endpage/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TestPassword is the plain-text password of every fixture user. It clears
// the default entropy threshold.
const TestPassword = "Sup3r-Secret!"

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates an active user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	return createUser(t, db, email, models.RoleUser)
}

// CreateTestAdmin creates a user holding ROLE_ADMIN.
func CreateTestAdmin(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("admin%d@test.com", nextID())
	return createUser(t, db, email, models.RoleUser, models.RoleAdmin)
}

func createUser(t *testing.T, db *gorm.DB, email string, roles ...string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	n := nextID()
	user := &models.User{
		Firstname:    "Test",
		Lastname:     fmt.Sprintf("User%d", n),
		Username:     fmt.Sprintf("tester%d", n),
		Email:        email,
		Password:     string(hash),
		IsActive:     true,
		CountAttempt: models.MaxAttempts,
		Roles:        datatypes.JSONSlice[string](roles),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestEndPage creates a public page owned by ownerID.
func CreateTestEndPage(t *testing.T, db *gorm.DB, ownerID uint) *models.EndPage {
	t.Helper()
	return createEndPage(t, db, ownerID, false)
}

// CreateTestPrivateEndPage creates a private page owned by ownerID.
func CreateTestPrivateEndPage(t *testing.T, db *gorm.DB, ownerID uint) *models.EndPage {
	t.Helper()
	return createEndPage(t, db, ownerID, true)
}

func createEndPage(t *testing.T, db *gorm.DB, ownerID uint, private bool) *models.EndPage {
	t.Helper()

	owner := ownerID
	page := &models.EndPage{
		UserID:    &owner,
		Title:     fmt.Sprintf("Goodbye #%d", nextID()),
		Content:   "So long, and thanks for all the fish.",
		Tone:      models.ToneClassy,
		IsPrivate: private,
		Emails:    datatypes.JSONSlice[string]{},
	}
	if err := db.Create(page).Error; err != nil {
		t.Fatalf("failed to create test end page: %v", err)
	}
	return page
}

// CreateTestComment adds a comment to a page.
func CreateTestComment(t *testing.T, db *gorm.DB, endPageID uint, text string) *models.Comment {
	t.Helper()

	comment := &models.Comment{
		EndPageID: endPageID,
		Author:    "anonymous",
		Text:      text,
	}
	if err := db.Create(comment).Error; err != nil {
		t.Fatalf("failed to create test comment: %v", err)
	}
	return comment
}

// CreateTestMedia records an image attached to a page. No file is written.
func CreateTestMedia(t *testing.T, db *gorm.DB, endPageID uint) *models.Media {
	t.Helper()

	media := &models.Media{
		EndPageID:        endPageID,
		Kind:             models.MediaImage,
		MediaType:        "image/png",
		Filename:         fmt.Sprintf("fixture-%d.png", nextID()),
		OriginalFilename: "photo.png",
		FileSize:         128,
	}
	if err := db.Create(media).Error; err != nil {
		t.Fatalf("failed to create test media: %v", err)
	}
	return media
}
