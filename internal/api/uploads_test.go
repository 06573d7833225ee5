package api

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type stubFile struct {
	*bytes.Reader
}

func (stubFile) Close() error { return nil }

type unseekableFile struct {
	stubFile
}

func (unseekableFile) Seek(offset int64, whence int) (int64, error) {
	return 0, errors.New("stream does not support seeking")
}

func TestUploadToLocalRewindFailure(t *testing.T) {
	h := NewHandler(nil, nil)

	_, err := h.uploadToLocal("uploads/test.png", unseekableFile{stubFile{bytes.NewReader([]byte("img"))}})
	if err == nil {
		t.Fatal("expected error when the upload cannot be rewound")
	}
	if !strings.Contains(err.Error(), "rewind") {
		t.Errorf("expected rewind error, got: %v", err)
	}
}

func TestUploadToLocalWritesFileAndURL(t *testing.T) {
	dir := t.TempDir()
	oldWd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(oldWd)
	t.Setenv("SERVICE_BASE_URL", "")

	h := NewHandler(nil, nil)
	content := []byte("img-bytes")

	url, err := h.uploadToLocal("uploads/pic.png", stubFile{bytes.NewReader(content)})
	if err != nil {
		t.Fatalf("uploadToLocal failed: %v", err)
	}
	if url != "http://localhost:8080/uploads/pic.png" {
		t.Errorf("unexpected URL: %s", url)
	}

	written, err := os.ReadFile(filepath.Join(dir, "uploads", "pic.png"))
	if err != nil {
		t.Fatalf("stored file not readable: %v", err)
	}
	if !bytes.Equal(written, content) {
		t.Errorf("stored file content mismatch: got %q", written)
	}
}

func TestIsValidImageType(t *testing.T) {
	valid := []string{"image/jpeg", "image/jpg", "image/png", "image/webp"}
	for _, ct := range valid {
		if !isValidImageType(ct) {
			t.Errorf("expected %s to be accepted", ct)
		}
	}
	invalid := []string{"image/gif", "application/pdf", "text/html", ""}
	for _, ct := range invalid {
		if isValidImageType(ct) {
			t.Errorf("expected %s to be rejected", ct)
		}
	}
}
