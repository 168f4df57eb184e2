package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Buckets accepted for uploads.
var Buckets = map[string]bool{
	"products":        true,
	"categories":      true,
	"banners":         true,
	"payment-methods": true,
}

// imageExtensions excludes svg: uploads are served from the API origin and
// an svg can carry script.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
}

// PublicPrefix is where the upload directory is served.
const PublicPrefix = "/uploads"

// Local stores uploads on disk under Dir/<bucket>/.
type Local struct {
	Dir     string
	BaseURL string
}

func NewLocal(dir, baseURL string) *Local {
	return &Local{Dir: dir, BaseURL: strings.TrimSuffix(baseURL, "/")}
}

// Extension returns the lower-cased extension of filename when it is an
// accepted image type.
func Extension(filename string) (string, bool) {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext, imageExtensions[ext]
}

// Path returns the destination for name in bucket, creating the bucket
// directory when needed.
func (l *Local) Path(bucket, name string) (string, error) {
	dir := filepath.Join(l.Dir, bucket)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	return filepath.Join(dir, name), nil
}

// URL is the public address of a stored object.
func (l *Local) URL(bucket, name string) string {
	return l.BaseURL + PublicPrefix + "/" + bucket + "/" + name
}
