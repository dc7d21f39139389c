package store

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/paperclip/format"
)

func writeSource(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write source: %v", err)
	}
	return path
}

func TestDirStore_PutOpenRemove(t *testing.T) {
	s, err := NewDirStore(filepath.Join(t.TempDir(), "attachments"))
	if err != nil {
		t.Fatalf("NewDirStore failed: %v", err)
	}

	ctx := context.Background()
	src := writeSource(t, "report_100.0_200.0_10.0_20.0.pdf", "%PDF-1.4 fake content")

	att, err := s.Put(ctx, src, filepath.Base(src))
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	if att.Ref == "" {
		t.Error("expected a non-empty ref")
	}
	if att.Name != "report_100.0_200.0_10.0_20.0.pdf" {
		t.Errorf("Name = %q", att.Name)
	}
	if att.Kind != format.PDF {
		t.Errorf("Kind = %v, want PDF", att.Kind)
	}
	if att.Size != int64(len("%PDF-1.4 fake content")) {
		t.Errorf("Size = %d", att.Size)
	}

	// Put consumes the source file.
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Error("source file should be gone after Put")
	}

	rc, err := s.Open(ctx, att.Ref)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	content, err := io.ReadAll(rc)
	rc.Close()
	if err != nil {
		t.Fatalf("failed to read attachment: %v", err)
	}
	if string(content) != "%PDF-1.4 fake content" {
		t.Errorf("content = %q", content)
	}

	if err := s.Remove(ctx, att.Ref); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, err := s.Open(ctx, att.Ref); !errors.Is(err, ErrNotFound) {
		t.Errorf("Open after Remove = %v, want ErrNotFound", err)
	}
}

func TestDirStore_NormalizesNames(t *testing.T) {
	s, err := NewDirStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	// "café.png" with a decomposed (NFD) e-acute, as macOS hands it over.
	decomposed := "café.png"
	src := writeSource(t, "x.png", "fake png")

	att, err := s.Put(context.Background(), src, decomposed)
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	want := norm.NFC.String(decomposed)
	if att.Name != want {
		t.Errorf("Name = %q, want NFC %q", att.Name, want)
	}
	if att.Name == decomposed {
		t.Error("name was not normalized")
	}
}

func TestDirStore_OpenUnknownRef(t *testing.T) {
	s, err := NewDirStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := s.Open(context.Background(), "no-such-ref"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Open = %v, want ErrNotFound", err)
	}
	if err := s.Remove(context.Background(), "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Remove = %v, want ErrNotFound", err)
	}
}

func TestDirStore_PutMissingSource(t *testing.T) {
	s, err := NewDirStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := s.Put(context.Background(), "/no/such/file.pdf", "file.pdf"); err == nil {
		t.Fatal("expected error for missing source")
	}
}

func TestNewDirStore_EmptyRoot(t *testing.T) {
	if _, err := NewDirStore(""); err == nil {
		t.Fatal("expected error for empty root")
	}
}
