package media

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
)

// FSStore writes media under a local directory that is served at urlPrefix.
type FSStore struct {
	baseDir   string
	urlPrefix string
}

var _ Store = (*FSStore)(nil)

func NewFSStore(baseDir, urlPrefix string) *FSStore {
	return &FSStore{baseDir: baseDir, urlPrefix: urlPrefix}
}

func (fs *FSStore) Dir() string {
	return fs.baseDir
}

func (fs *FSStore) Save(key string, body io.Reader) (string, error) {
	if err := os.MkdirAll(fs.baseDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	out, err := os.Create(filepath.Join(fs.baseDir, filepath.Base(key)))
	if err != nil {
		return "", fmt.Errorf("failed to create media file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, body); err != nil {
		return "", fmt.Errorf("failed to write media file: %w", err)
	}
	return path.Join(fs.urlPrefix, filepath.Base(key)), nil
}

func (fs *FSStore) Remove(key string) error {
	err := os.Remove(filepath.Join(fs.baseDir, filepath.Base(key)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove media file: %w", err)
	}
	return nil
}
