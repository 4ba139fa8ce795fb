package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"backend-trailpack/internal/db"

	"github.com/google/uuid"
)

var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrInvalidHikeID   = errors.New("invalid hike id")
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

type Service struct {
	db        db.Querier
	uploadDir string
	baseURL   string
}

func NewService(db db.Querier, uploadDir, baseURL string) *Service {
	return &Service{db: db, uploadDir: uploadDir, baseURL: baseURL}
}

// Save writes an uploaded image under <uploadDir>/<hikeID>/ and records it,
// returning the public URL. The stored name is prefixed with a timestamp so
// repeated uploads of the same file never collide.
func (s *Service) Save(ctx context.Context, userID, hikeID, filename string, src io.Reader) (string, error) {
	// hikeID becomes a path segment under uploadDir, so it must never carry
	// separators or dots that could walk out of the tree
	if !validHikeID(hikeID) {
		return "", ErrInvalidHikeID
	}

	name := sanitizeName(filename)
	ext := strings.ToLower(filepath.Ext(name))
	if !allowedExtensions[ext] {
		return "", ErrUnsupportedType
	}

	dir := filepath.Join(s.uploadDir, hikeID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	stored := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), name)
	dst, err := os.Create(filepath.Join(dir, stored))
	if err != nil {
		return "", err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	url := s.baseURL + "/files/" + hikeID + "/" + stored
	_, err = s.db.Exec(ctx, `
		INSERT INTO storage_objects (id, user_id, hike_id, url, kind)
		VALUES ($1,$2,$3,$4,$5)
	`, uuid.NewString(), userID, hikeID, url, "photo")
	if err != nil {
		return "", err
	}
	return url, nil
}

// ListObjects returns the recorded upload URLs for a hike, newest first.
func (s *Service) ListObjects(ctx context.Context, userID, hikeID string) ([]string, error) {
	rows, err := s.db.Query(ctx, `
		SELECT url FROM storage_objects
		WHERE user_id=$1 AND hike_id=$2
		ORDER BY created_at DESC
	`, userID, hikeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var urls []string
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}

// Dir exposes the upload root so the server can mount it for static serving.
func (s *Service) Dir() string {
	return s.uploadDir
}

func validHikeID(id string) bool {
	if id == "" {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-' || r == '_':
		default:
			return false
		}
	}
	return true
}

func sanitizeName(filename string) string {
	name := filepath.Base(filename)
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_':
			return r
		}
		return -1
	}, name)
	if name == "" || name == "." {
		name = "upload"
	}
	return name
}
