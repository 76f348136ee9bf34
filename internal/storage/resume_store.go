package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// URLPrefix is the public path resumes are served under.
const URLPrefix = "/uploads/"

// DiskStore keeps uploaded resumes as flat files in a single directory.
// Writes are not transactional with the candidate row; a crash between the
// two leaves an orphan, which callers compensate for with best-effort
// deletes.
type DiskStore struct {
	dir string
}

// NewDiskStore ensures dir exists and returns a store rooted there.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

func (s *DiskStore) Dir() string { return s.dir }

// Save streams src into a freshly named file and returns its public URL.
// The name is timestamp + random suffix; collisions are not checked, only
// made astronomically unlikely.
func (s *DiskStore) Save(src io.Reader) (string, error) {
	name := fmt.Sprintf("resume-%d-%s.pdf", time.Now().UnixMilli(), uuid.NewString())

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create resume file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("write resume file: %w", err)
	}
	return URLPrefix + name, nil
}

// Delete removes the file a public URL points at. An already-missing file
// is not an error.
func (s *DiskStore) Delete(resumeURL string) error {
	name := strings.TrimPrefix(resumeURL, URLPrefix)
	// Refuse anything that could escape the upload directory.
	if name == "" || name != filepath.Base(name) {
		return fmt.Errorf("invalid resume url: %q", resumeURL)
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
