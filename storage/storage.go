// Package storage keeps uploaded files on local disk and hands out the
// public URLs they are served under.
package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Store saves uploads under dir and addresses them below baseURL/uploads.
type Store struct {
	dir     string
	baseURL string
	log     *logrus.Logger
}

// New creates the upload directory if needed and returns a Store.
func New(dir, baseURL string, log *logrus.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &Store{dir: dir, baseURL: strings.TrimRight(baseURL, "/"), log: log}, nil
}

// Upload describes a stored file.
type Upload struct {
	URL      string
	MimeType string
}

// Save writes the multipart file under a random name and returns its
// public URL and MIME type.
func (s *Store) Save(fh *multipart.FileHeader) (*Upload, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	name := uuid.New().String() + filepath.Ext(fh.Filename)
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return nil, err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return nil, err
	}

	mimeType := fh.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	return &Upload{
		URL:      fmt.Sprintf("%s/uploads/%s", s.baseURL, name),
		MimeType: mimeType,
	}, nil
}

// Remove deletes the file behind a URL previously returned by Save. It is
// best-effort: failures are logged, never propagated, so replacing a file
// can't fail because the old one wouldn't go away.
func (s *Store) Remove(url string) {
	prefix := s.baseURL + "/uploads/"
	if !strings.HasPrefix(url, prefix) {
		return
	}
	name := filepath.Base(strings.TrimPrefix(url, prefix))
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		s.log.WithError(err).WithField("file", name).Warn("failed to remove old upload")
	}
}

// Dir returns the directory uploads live in, for static serving.
func (s *Store) Dir() string {
	return s.dir
}
