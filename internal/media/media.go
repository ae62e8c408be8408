// Package media stores uploaded menu images on local disk or S3.
package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"strings"

	"github.com/google/uuid"
)

const (
	Folder      = "restaurant-menu"
	MaxFileSize = 5 << 20
	MaxFiles    = 5
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

var (
	ErrNotImage         = errors.New("only image files are allowed")
	ErrUnsupportedImage = errors.New("allowed formats are jpg, jpeg, png and webp")
	ErrTooLarge         = errors.New("file exceeds the 5MB limit")
	ErrInvalidPublicID  = errors.New("invalid public id")
)

type Object struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
	Format   string `json:"format"`
	Size     int64  `json:"size"`
}

// Store writes and removes objects addressed by public id.
type Store interface {
	Put(ctx context.Context, publicID, contentType string, body io.ReadSeeker, size int64) (string, error)
	Delete(ctx context.Context, publicID string) error
}

type Uploader struct {
	store Store
}

func NewUploader(store Store) *Uploader {
	return &Uploader{store: store}
}

func (u *Uploader) Upload(ctx context.Context, fh *multipart.FileHeader) (*Object, error) {
	if fh.Size > MaxFileSize {
		return nil, ErrTooLarge
	}

	ext := strings.ToLower(path.Ext(fh.Filename))
	if !allowedExtensions[ext] {
		return nil, ErrUnsupportedImage
	}

	if ct := fh.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") {
		return nil, ErrNotImage
	}

	file, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer file.Close()

	contentType, err := sniff(file)
	if err != nil {
		return nil, err
	}

	publicID := Folder + "/" + uuid.NewString()
	url, err := u.store.Put(ctx, publicID, contentType, file, fh.Size)
	if err != nil {
		return nil, fmt.Errorf("failed to store image: %w", err)
	}

	return &Object{
		URL:      url,
		PublicID: publicID,
		Format:   strings.TrimPrefix(ext, "."),
		Size:     fh.Size,
	}, nil
}

// Delete removes an image given either its URL or its public id.
func (u *Uploader) Delete(ctx context.Context, urlOrID string) error {
	publicID := ExtractPublicID(urlOrID)
	if publicID == "" || strings.Contains(publicID, "..") {
		return ErrInvalidPublicID
	}
	return u.store.Delete(ctx, publicID)
}

func sniff(file io.ReadSeeker) (string, error) {
	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("failed to rewind upload: %w", err)
	}

	contentType := http.DetectContentType(head[:n])
	if !strings.HasPrefix(contentType, "image/") {
		return "", ErrNotImage
	}
	return contentType, nil
}

// ExtractPublicID returns the public id of a stored image URL. URLs under the
// restaurant-menu folder keep the folder prefix.
func ExtractPublicID(url string) string {
	if url == "" {
		return ""
	}

	parts := strings.Split(url, "/")
	filename := parts[len(parts)-1]
	publicID, _, _ := strings.Cut(filename, ".")

	for _, p := range parts {
		if p == Folder {
			return Folder + "/" + publicID
		}
	}
	return publicID
}
