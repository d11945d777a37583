// Package storage persists uploaded sticker images.
package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ImageStore saves image bytes under a name and returns the reference
// stored on the sticker row (a file name or an object URL).
type ImageStore interface {
	Save(ctx context.Context, name string, r io.Reader, contentType string) (string, error)
	Remove(ctx context.Context, ref string) error
}

const maxExtLen = 10

// ObjectName builds a collision-resistant name: upload time in
// milliseconds, a random suffix, and the original extension.
func ObjectName(original string, now time.Time) string {
	return fmt.Sprintf("%d-%s%s", now.UnixMilli(), uuid.NewString()[:8], cleanExt(original))
}

func cleanExt(original string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(original)))
	if len(ext) < 2 || len(ext) > maxExtLen {
		return ""
	}
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return ext
}
