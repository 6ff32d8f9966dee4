package media

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store keeps uploaded video bytes and hands back the reference saved as a
// video's fileUrl.
type Store interface {
	Save(key string, body io.Reader) (string, error)
	Remove(key string) error
}

// NewKey builds a unique object key that keeps the upload's extension.
func NewKey(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return uuid.New().String() + ext
}
