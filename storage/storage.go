package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Local writes uploads to Dir and serves them under URLPrefix.
type Local struct {
	Dir       string
	URLPrefix string
}

func NewLocal(dir, urlPrefix string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &Local{Dir: dir, URLPrefix: strings.TrimRight(urlPrefix, "/")}, nil
}

// Save stores file as "<parts...>_<uuid><ext>" and returns its public URL.
func (s *Local) Save(file *multipart.FileHeader, parts ...string) (string, error) {
	name := FileName(filepath.Ext(file.Filename), parts...)

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload %q: %w", file.Filename, err)
	}
	defer src.Close()

	dst, err := os.OpenFile(filepath.Join(s.Dir, name), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create %q: %w", name, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return "", fmt.Errorf("failed to write %q: %w", name, err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("failed to write %q: %w", name, err)
	}

	return path.Join(s.URLPrefix, name), nil
}

func FileName(ext string, parts ...string) string {
	cleaned := make([]string, 0, len(parts)+1)
	for _, p := range parts {
		if p = strings.Trim(unsafeChars.ReplaceAllString(p, "-"), "-."); p != "" {
			cleaned = append(cleaned, p)
		}
	}
	cleaned = append(cleaned, uuid.NewString())
	return strings.Join(cleaned, "_") + strings.ToLower(unsafeChars.ReplaceAllString(ext, ""))
}
