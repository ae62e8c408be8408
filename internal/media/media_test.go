package media

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"

	"github.com/Zyntrix-company/Qruzine/internal/domain"
)

// pngHeader is enough for content sniffing to report image/png.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func fileHeader(t *testing.T, filename, contentType string, data []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="image"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	if err != nil {
		t.Fatal(err)
	}
	_, _ = part.Write(data)
	_ = mw.Close()

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if err := req.ParseMultipartForm(MaxFileSize); err != nil {
		t.Fatal(err)
	}
	return req.MultipartForm.File["image"][0]
}

func TestExtractPublicID(t *testing.T) {
	tests := []struct {
		url, want string
	}{
		{"https://res.cloudinary.com/demo/image/upload/v1/restaurant-menu/abc123.jpg", "restaurant-menu/abc123"},
		{"http://localhost:5000/uploads/restaurant-menu/3f2a", "restaurant-menu/3f2a"},
		{"https://cdn.example.com/logo.png", "logo"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			if got := ExtractPublicID(tt.url); got != tt.want {
				t.Errorf("ExtractPublicID() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUploaderLocal(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, "http://localhost:5000/")
	if err != nil {
		t.Fatal(err)
	}
	u := NewUploader(store)
	ctx := context.Background()

	obj, err := u.Upload(ctx, fileHeader(t, "dish.PNG", "image/png", pngHeader))
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if obj.Format != "png" || ExtractPublicID(obj.URL) != obj.PublicID {
		t.Errorf("object = %+v", obj)
	}
	if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(obj.PublicID))); err != nil {
		t.Errorf("stored file missing: %v", err)
	}

	if err := u.Delete(ctx, obj.URL); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := u.Delete(ctx, obj.PublicID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Delete() twice error = %v, want ErrNotFound", err)
	}
}

func TestUploaderRejects(t *testing.T) {
	store, _ := NewLocalStore(t.TempDir(), "")
	u := NewUploader(store)

	tests := []struct {
		name     string
		filename string
		ct       string
		data     []byte
		want     error
	}{
		{"gif extension", "a.gif", "image/gif", pngHeader, ErrUnsupportedImage},
		{"declared text", "a.png", "text/plain", pngHeader, ErrNotImage},
		{"sniffed text", "a.png", "image/png", []byte("hello world"), ErrNotImage},
		{"too large", "a.png", "image/png", append(pngHeader, make([]byte, MaxFileSize)...), ErrTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := u.Upload(context.Background(), fileHeader(t, tt.filename, tt.ct, tt.data))
			if !errors.Is(err, tt.want) {
				t.Errorf("Upload() error = %v, want %v", err, tt.want)
			}
		})
	}

	if err := u.Delete(context.Background(), ".."); !errors.Is(err, ErrInvalidPublicID) {
		t.Errorf("Delete() traversal error = %v", err)
	}
}
