package services

import (
	"context"
	"errors"
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"towerup-backend/internal/storage"
)

const (
	MaxAttachments     = 5
	MaxAttachmentBytes = 10 << 20
)

var (
	ErrStorageUnavailable = errors.New("file storage is not configured")
	ErrTooManyAttachments = fmt.Errorf("at most %d files can be attached", MaxAttachments)
	ErrAttachmentTooLarge = fmt.Errorf("each file must be at most %d MB", MaxAttachmentBytes>>20)
	ErrEmptyAttachment    = errors.New("attached file is empty")
)

type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// StoredFile is an object that has been written to storage.
type StoredFile struct {
	Path      string
	PublicURL string
}

// StorageService writes admin media and submission attachments to the
// configured object storage backend.
type StorageService struct {
	objects storage.ObjectStorage
	log     *zap.Logger
}

// NewStorageService accepts a nil backend; every upload then fails with
// ErrStorageUnavailable.
func NewStorageService(objects storage.ObjectStorage, log *zap.Logger) *StorageService {
	return &StorageService{objects: objects, log: log.Named("storage")}
}

func (s *StorageService) Available() bool {
	return s != nil && s.objects != nil
}

// UploadMedia stores an admin upload under folder with a generated name.
func (s *StorageService) UploadMedia(ctx context.Context, folder string, file Attachment) (*StoredFile, error) {
	if !s.Available() {
		return nil, ErrStorageUnavailable
	}
	if err := checkAttachment(file); err != nil {
		return nil, err
	}
	key := storage.ObjectKey(folder, file.Filename)
	url, err := s.objects.Upload(ctx, key, contentTypeOf(file), file.Data)
	if err != nil {
		return nil, err
	}
	return &StoredFile{Path: key, PublicURL: url}, nil
}

// UploadAttachments stores files as applications/<kind>/<owner>/<name> and
// returns their public URLs. On failure, files already written are removed.
func (s *StorageService) UploadAttachments(ctx context.Context, kind string, owner uuid.UUID, files []Attachment) ([]string, error) {
	if len(files) == 0 {
		return []string{}, nil
	}
	if !s.Available() {
		return nil, ErrStorageUnavailable
	}
	if len(files) > MaxAttachments {
		return nil, ErrTooManyAttachments
	}
	for _, f := range files {
		if err := checkAttachment(f); err != nil {
			return nil, err
		}
	}

	var (
		keys = make([]string, 0, len(files))
		urls = make([]string, 0, len(files))
	)
	for i, f := range files {
		key := fmt.Sprintf("%s%d-%s", attachmentPrefix(kind, owner), i+1, sanitizeFilename(f.Filename))
		url, err := s.objects.Upload(ctx, key, contentTypeOf(f), f.Data)
		if err != nil {
			s.Remove(ctx, keys)
			return nil, fmt.Errorf("failed to store attachment %q: %w", f.Filename, err)
		}
		keys = append(keys, key)
		urls = append(urls, url)
	}
	return urls, nil
}

// Remove deletes objects best effort.
func (s *StorageService) Remove(ctx context.Context, keys []string) {
	if !s.Available() {
		return
	}
	for _, key := range keys {
		if err := s.objects.Delete(ctx, key); err != nil {
			s.log.Warn("failed to remove stored file", zap.String("path", key), zap.Error(err))
		}
	}
}

// RemoveOwner deletes every attachment stored for one submission.
func (s *StorageService) RemoveOwner(ctx context.Context, kind string, owner uuid.UUID) {
	if !s.Available() {
		return
	}
	prefix := attachmentPrefix(kind, owner)
	if err := s.objects.DeletePrefix(ctx, prefix); err != nil {
		s.log.Warn("failed to remove attachments", zap.String("prefix", prefix), zap.Error(err))
	}
}

func attachmentPrefix(kind string, owner uuid.UUID) string {
	return fmt.Sprintf("applications/%s/%s/", kind, owner)
}

func checkAttachment(f Attachment) error {
	if len(f.Data) == 0 {
		return ErrEmptyAttachment
	}
	if len(f.Data) > MaxAttachmentBytes {
		return ErrAttachmentTooLarge
	}
	return nil
}

func contentTypeOf(f Attachment) string {
	if f.ContentType != "" {
		return f.ContentType
	}
	return "application/octet-stream"
}

var unsafeFilenameChars = regexp.MustCompile(`[^\p{L}\p{N}._-]+`)

func sanitizeFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, `\`, "/"))
	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")
	if name == "" {
		return "file"
	}
	return name
}
