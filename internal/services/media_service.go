package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"

	"github.com/gabriel-vasile/mimetype"

	apperrors "endpage/internal/errors"
	"endpage/internal/logger"
	"endpage/internal/models"
	"endpage/internal/repository"
	"endpage/internal/storage"
	"endpage/internal/uuid"
)

// mediaService validates and stores uploaded files.
type mediaService struct {
	store        *repository.Store
	files        storage.Storage
	audit        AuditServicer
	mediaBaseURL string
	maxBytes     int64
}

// NewMediaService creates a new MediaServicer. maxBytes caps a single file;
// 0 means no cap.
func NewMediaService(store *repository.Store, files storage.Storage, audit AuditServicer, mediaBaseURL string, maxBytes int64) MediaServicer {
	return &mediaService{
		store:        store,
		files:        files,
		audit:        audit,
		mediaBaseURL: mediaBaseURL,
		maxBytes:     maxBytes,
	}
}

// errFileRejected marks per-file validation failures.
var errFileRejected = errors.New("file rejected")

// Upload stores every acceptable file and reports the rest. The batch is not
// atomic: each file succeeds or fails on its own.
func (s *mediaService) Upload(ctx context.Context, pageRef string, viewer Viewer, files []*multipart.FileHeader, ipAddress string) (*UploadResult, error) {
	page, err := findPage(s.store, pageRef)
	if err != nil {
		return nil, err
	}
	if err := checkManage(page, viewer); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, apperrors.ErrNoFiles
	}

	result := &UploadResult{Files: []models.Media{}, Errors: []string{}}
	for _, fh := range files {
		media, err := s.storeFile(ctx, page.ID, fh)
		if err != nil {
			if !errors.Is(err, errFileRejected) {
				logger.Get().Errorw("failed to store media file", "error", err, "filename", fh.Filename, "end_page_id", page.ID)
			}
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %s", fh.Filename, reason(err)))
			continue
		}
		result.Files = append(result.Files, *media)
	}

	if result.Succeeded() {
		s.audit.Log(viewer.UserID, models.AuditUploadMedia, "end_page", page.ID, ipAddress, map[string]any{
			"stored":   len(result.Files),
			"rejected": len(result.Errors),
		})
	}
	return result, nil
}

func (s *mediaService) storeFile(ctx context.Context, endPageID uint, fh *multipart.FileHeader) (*models.Media, error) {
	if fh.Size <= 0 {
		return nil, fmt.Errorf("%w: Could not determine file size", errFileRejected)
	}
	if s.maxBytes > 0 && fh.Size > s.maxBytes {
		return nil, fmt.Errorf("%w: File exceeds the %d MB limit", errFileRejected, s.maxBytes>>20)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: Temporary file is not readable", errFileRejected)
	}
	defer f.Close()

	mediaType, err := detectMediaType(f, fh.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}

	name := uuid.Filename(fh.Filename)
	if err := s.files.Put(ctx, name, mediaType, f, fh.Size); err != nil {
		return nil, err
	}

	media := &models.Media{
		EndPageID:        endPageID,
		Kind:             models.KindFromMediaType(mediaType),
		MediaType:        mediaType,
		Filename:         name,
		OriginalFilename: fh.Filename,
		FileSize:         fh.Size,
	}
	if err := s.store.Medias().Create(media); err != nil {
		if delErr := s.files.Delete(ctx, name); delErr != nil {
			logger.Get().Warnw("failed to remove orphaned media file", "error", delErr, "filename", name)
		}
		return nil, err
	}
	media.ResolveURL(s.mediaBaseURL)
	return media, nil
}

// detectMediaType sniffs the file content and maps it onto the allow-list.
// The client-declared type is only consulted when sniffing is inconclusive.
// f is rewound before returning.
func detectMediaType(f multipart.File, declared string) (string, error) {
	mtype, err := mimetype.DetectReader(f)
	if err != nil {
		return "", fmt.Errorf("%w: Temporary file is not readable", errFileRejected)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("%w: Temporary file is not readable", errFileRejected)
	}

	for _, allowed := range models.AllowedMediaTypes {
		if mtype.Is(allowed) {
			return allowed, nil
		}
	}

	detected := mtype.String()
	if mtype.Is("application/octet-stream") && declared != "" {
		if parsed, _, err := mime.ParseMediaType(declared); err == nil {
			for _, allowed := range models.AllowedMediaTypes {
				if parsed == allowed {
					return allowed, nil
				}
			}
			detected = parsed
		}
	}
	if base, _, err := mime.ParseMediaType(detected); err == nil {
		detected = base
	}
	return "", fmt.Errorf("%w: File type %s is not allowed", errFileRejected, detected)
}

// reason extracts the client-facing part of a per-file error.
func reason(err error) string {
	if errors.Is(err, errFileRejected) {
		msg := err.Error()
		prefix := errFileRejected.Error() + ": "
		if len(msg) > len(prefix) {
			return msg[len(prefix):]
		}
		return msg
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "File could not be stored"
}
