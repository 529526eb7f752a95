package storage

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
)

// ObjectStorage stores uploaded media and submission attachments.
type ObjectStorage interface {
	Upload(ctx context.Context, key, contentType string, data []byte) (publicURL string, err error)
	Delete(ctx context.Context, key string) error
	// DeletePrefix removes every object whose key starts with prefix.
	DeletePrefix(ctx context.Context, prefix string) error
	PublicURL(key string) string
}

// ObjectKey builds "<folder>/<uuid><ext>" so uploaded names never collide and
// never carry user-controlled path segments.
func ObjectKey(folder, filename string) string {
	folder = strings.Trim(path.Clean("/"+folder), "/")
	if folder == "" || folder == "." {
		folder = "uploads"
	}
	ext := strings.ToLower(path.Ext(path.Base(filename)))
	return fmt.Sprintf("%s/%s%s", folder, uuid.NewString(), ext)
}
