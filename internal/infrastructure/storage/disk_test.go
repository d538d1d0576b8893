package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDiskStorePut(t *testing.T) {
	dir := t.TempDir()
	s := NewDiskStore(dir, "/uploads")

	loc, err := s.Put(context.Background(), "photos/photo_1.jpg", "image/jpeg", strings.NewReader("jpeg-bytes"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if loc != "/uploads/photos/photo_1.jpg" {
		t.Fatalf("location = %q", loc)
	}
	b, err := os.ReadFile(filepath.Join(dir, "photos", "photo_1.jpg"))
	if err != nil || string(b) != "jpeg-bytes" {
		t.Fatalf("stored = %q, %v", b, err)
	}
}

func TestPublicURL(t *testing.T) {
	if got := PublicURL("bkt", "photos/a.png"); got != "https://storage.googleapis.com/bkt/photos/a.png" {
		t.Fatalf("PublicURL = %q", got)
	}
}
