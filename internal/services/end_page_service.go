package services

import (
	"context"
	"path"
	"strconv"
	"strings"
	"unicode/utf8"

	"gorm.io/datatypes"

	apperrors "endpage/internal/errors"
	"endpage/internal/logger"
	"endpage/internal/models"
	"endpage/internal/moderation"
	"endpage/internal/pagination"
	"endpage/internal/repository"
	"endpage/internal/storage"
	"endpage/internal/validator"
)

const maxTitleLength = 255

// endPageService handles the end page lifecycle.
type endPageService struct {
	store        *repository.Store
	scanner      *moderation.Scanner
	notifier     NotificationServicer
	audit        AuditServicer
	files        storage.Storage
	mediaBaseURL string
}

// NewEndPageService creates a new EndPageServicer.
func NewEndPageService(
	store *repository.Store,
	scanner *moderation.Scanner,
	notifier NotificationServicer,
	audit AuditServicer,
	files storage.Storage,
	mediaBaseURL string,
) EndPageServicer {
	return &endPageService{
		store:        store,
		scanner:      scanner,
		notifier:     notifier,
		audit:        audit,
		files:        files,
		mediaBaseURL: mediaBaseURL,
	}
}

// Create validates and persists a page for ownerID.
//
// The content is scanned for flagged language first. Any warning costs the
// owner one attempt; if that was their last one the account is deactivated
// and the page is refused. Otherwise the page is stored and every valid
// recipient is notified.
func (s *endPageService) Create(ctx context.Context, ownerID uint, in CreateEndPageInput) (*CreateEndPageResult, error) {
	page, err := s.buildPage(ownerID, in)
	if err != nil {
		return nil, err
	}

	warnings := s.scanner.Scan(page.Content)

	var (
		owner     *models.User
		penalised bool
	)
	err = s.store.Transaction(func(tx *repository.Store) error {
		found, err := tx.Users().FindByID(ownerID)
		if err != nil {
			return err
		}
		owner = found
		if !owner.IsActive {
			return apperrors.WithDetails(apperrors.ErrAccountDeactivated, map[string]any{"is_active": false})
		}

		if len(warnings) > 0 {
			owner.DecrementAttempt()
			penalised = true
			if err := tx.Users().Save(owner); err != nil {
				return err
			}
			if !owner.HasAttemptsLeft() {
				// Keep the penalty, refuse the page.
				return nil
			}
		}
		return tx.EndPages().Create(page)
	})
	if err != nil {
		return nil, err
	}

	if penalised {
		s.audit.Log(owner.ID, models.AuditContentWarningPenalty, "user", owner.ID, in.IPAddress, map[string]any{
			"warnings":      len(warnings),
			"attempts_left": owner.CountAttempt,
		})
		if !owner.HasAttemptsLeft() {
			s.audit.Log(owner.ID, models.AuditAccountDeactivated, "user", owner.ID, in.IPAddress, nil)
			return nil, apperrors.WithDetails(apperrors.ErrAttemptsExhausted, map[string]any{
				"attempts_left":    0,
				"is_active":        false,
				"content_warnings": warnings,
			})
		}
	}

	s.audit.Log(ownerID, models.AuditCreateEndPage, "end_page", page.ID, in.IPAddress, map[string]any{
		"uuid":       page.UUID,
		"is_private": page.IsPrivate,
		"recipients": len(page.Emails),
	})
	s.notifier.NotifyEndPageCreated(ctx, page)

	result := &CreateEndPageResult{EndPage: page, ContentWarnings: warnings}
	if penalised {
		left := owner.CountAttempt
		result.AttemptsLeft = &left
	}
	return result, nil
}

func (s *endPageService) buildPage(ownerID uint, in CreateEndPageInput) (*models.EndPage, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" || strings.TrimSpace(in.Content) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "title and content are required")
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "title must be at most 255 characters")
	}
	if !in.Tone.IsValid() {
		return nil, apperrors.ErrInvalidTone
	}

	var bgType *models.BackgroundType
	var bgValue *string
	if in.BackgroundType != nil && *in.BackgroundType != "" {
		if !in.BackgroundType.IsValid() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unsupported background type")
		}
		bgType = in.BackgroundType
		if in.BackgroundValue != nil {
			v := strings.TrimSpace(*in.BackgroundValue)
			if *bgType == models.BackgroundColor && !validator.IsHexColor(v) {
				return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "color backgrounds need a #rgb or #rrggbb value")
			}
			bgValue = &v
		}
	}

	owner := ownerID
	return &models.EndPage{
		UserID:          &owner,
		Title:           title,
		Content:         in.Content,
		Tone:            in.Tone,
		BackgroundType:  bgType,
		BackgroundValue: bgValue,
		IsPrivate:       in.IsPrivate,
		Emails:          datatypes.JSONSlice[string](cleanEmails(in.Emails)),
	}, nil
}

// cleanEmails drops malformed and repeated addresses, keeping first-seen order.
func cleanEmails(emails []string) []string {
	out := []string{}
	seen := make(map[string]bool, len(emails))
	for _, e := range emails {
		e = strings.TrimSpace(e)
		key := strings.ToLower(e)
		if seen[key] || !validator.IsEmail(e) {
			continue
		}
		seen[key] = true
		out = append(out, e)
	}
	return out
}

// Get returns a page with its media and comments, applying the privacy rule.
func (s *endPageService) Get(ref string, viewer Viewer) (*models.EndPage, error) {
	page, err := s.store.EndPages().FindByUUIDWithRelations(ref)
	if err != nil {
		return nil, err
	}
	if err := checkVisible(page, viewer); err != nil {
		return nil, err
	}
	for i := range page.Medias {
		page.Medias[i].ResolveURL(s.mediaBaseURL)
	}
	return page, nil
}

// GetShared returns a public page for the share view. Private pages are
// reported as missing.
func (s *endPageService) GetShared(uuid string) (*models.EndPage, error) {
	page, err := s.store.EndPages().FindByUUIDWithRelations(uuid)
	if err != nil {
		return nil, err
	}
	if page.IsPrivate {
		return nil, apperrors.ErrEndPageNotFound
	}
	for i := range page.Medias {
		page.Medias[i].ResolveURL(s.mediaBaseURL)
	}
	return page, nil
}

// ListPublic returns public pages, newest first.
func (s *endPageService) ListPublic(page pagination.PageRequest) (*pagination.PageResponse[models.EndPage], error) {
	page.Defaults()

	pages, total, err := s.store.EndPages().ListPublic(page)
	if err != nil {
		return nil, err
	}
	resp := pagination.NewPageResponse(pages, page, total)
	return &resp, nil
}

// ListByOwner returns userID's pages. Private ones are included for the
// owner and for admins.
func (s *endPageService) ListByOwner(userID uint, viewer Viewer) ([]models.EndPage, error) {
	if _, err := s.store.Users().FindByID(userID); err != nil {
		return nil, err
	}
	return s.store.EndPages().ListByOwner(userID, viewer.CanManage(userID))
}

// AddRating records one vote of 1 to 5 stars and returns the updated page.
func (s *endPageService) AddRating(uuid string, rating int) (*models.EndPage, error) {
	if rating < 1 || rating > 5 {
		return nil, apperrors.ErrInvalidRating
	}
	page, err := s.store.EndPages().FindByUUID(uuid)
	if err != nil {
		return nil, err
	}
	if err := s.store.EndPages().AddRating(page.ID, rating); err != nil {
		return nil, err
	}
	return s.store.EndPages().FindByID(page.ID)
}

// Delete removes a page, its comments and media, then the stored files.
// Only the owner or an admin may delete.
func (s *endPageService) Delete(ctx context.Context, uuid string, viewer Viewer, ipAddress string) error {
	page, err := s.store.EndPages().FindByUUID(uuid)
	if err != nil {
		return err
	}
	if err := checkManage(page, viewer); err != nil {
		return err
	}

	var medias []models.Media
	err = s.store.Transaction(func(tx *repository.Store) error {
		found, err := tx.Medias().ListByEndPage(page.ID)
		if err != nil {
			return err
		}
		medias = found
		return tx.EndPages().Delete(page.ID)
	})
	if err != nil {
		return err
	}

	for _, m := range medias {
		if err := s.files.Delete(ctx, m.Filename); err != nil {
			logger.Get().Warnw("failed to delete media file", "error", err, "filename", m.Filename, "end_page_id", page.ID)
		}
	}

	s.audit.Log(viewer.UserID, models.AuditDeleteEndPage, "end_page", page.ID, ipAddress, map[string]any{
		"uuid":  page.UUID,
		"media": len(medias),
	})
	return nil
}

// findPage resolves a page reference: a surrogate id, a UUID, or an IRI
// such as "/api/end_pages/<uuid>".
func findPage(store *repository.Store, ref string) (*models.EndPage, error) {
	ref = strings.TrimSpace(ref)
	if strings.Contains(ref, "/") {
		ref = path.Base(ref)
	}
	if id, err := strconv.ParseUint(ref, 10, 64); err == nil {
		return store.EndPages().FindByID(uint(id))
	}
	return store.EndPages().FindByUUID(ref)
}

// checkVisible applies the privacy rule: private pages need an authenticated
// caller who owns the page or is an admin.
func checkVisible(page *models.EndPage, viewer Viewer) error {
	if !page.IsPrivate {
		return nil
	}
	return checkManage(page, viewer)
}

func checkManage(page *models.EndPage, viewer Viewer) error {
	if viewer.IsAnonymous() {
		return apperrors.ErrUnauthorized
	}
	if page.IsOwnedBy(viewer.UserID) || viewer.IsAdmin() {
		return nil
	}
	return apperrors.ErrForbidden
}
