package store

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/paperclip/format"
)

// DirStore keeps attachments in a managed directory tree laid out as
// <root>/<ref[:2]>/<ref>/<name>. The two-character fan-out keeps any one
// directory from growing unboundedly.
type DirStore struct {
	root string
}

// NewDirStore creates (if needed) and opens a managed directory tree
// rooted at root.
func NewDirStore(root string) (*DirStore, error) {
	if root == "" {
		return nil, fmt.Errorf("store: root directory is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("store: failed to create root: %w", err)
	}
	return &DirStore{root: root}, nil
}

// Root returns the root directory of the store.
func (s *DirStore) Root() string {
	return s.root
}

// Put moves the file at srcPath into the tree under name. The name is
// normalized to NFC; macOS drag sources hand over NFD names, and a stored
// name must compare equal to the same name typed into a document.
func (s *DirStore) Put(ctx context.Context, srcPath, name string) (Attachment, error) {
	if err := ctx.Err(); err != nil {
		return Attachment{}, err
	}

	name = norm.NFC.String(filepath.Base(name))
	if name == "" || name == "." {
		return Attachment{}, fmt.Errorf("store: invalid attachment name %q", name)
	}

	ref := uuid.NewString()
	dir := filepath.Join(s.root, ref[:2], ref)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Attachment{}, fmt.Errorf("store: failed to create attachment directory: %w", err)
	}

	dst := filepath.Join(dir, name)
	if err := moveFile(srcPath, dst); err != nil {
		os.RemoveAll(dir)
		return Attachment{}, err
	}

	info, err := os.Stat(dst)
	if err != nil {
		return Attachment{}, fmt.Errorf("store: failed to stat stored file: %w", err)
	}

	return Attachment{
		Ref:      ref,
		Name:     name,
		Kind:     format.Detect(name),
		Size:     info.Size(),
		StoredAt: time.Now().UTC(),
	}, nil
}

// Open returns the content of the attachment stored under ref.
func (s *DirStore) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := s.path(ref)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("store: failed to open attachment: %w", err)
	}
	return f, nil
}

// Remove deletes the attachment stored under ref.
func (s *DirStore) Remove(ctx context.Context, ref string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := s.path(ref); err != nil {
		return err
	}

	if err := os.RemoveAll(filepath.Join(s.root, ref[:2], ref)); err != nil {
		return fmt.Errorf("store: failed to remove attachment: %w", err)
	}
	// Drop the fan-out directory too if this was its last attachment.
	os.Remove(filepath.Join(s.root, ref[:2]))
	return nil
}

// path locates the single stored file for ref.
func (s *DirStore) path(ref string) (string, error) {
	if len(ref) < 2 {
		return "", fmt.Errorf("store: %q: %w", ref, ErrNotFound)
	}

	dir := filepath.Join(s.root, ref[:2], ref)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("store: %q: %w", ref, ErrNotFound)
	}

	for _, e := range entries {
		if !e.IsDir() {
			return filepath.Join(dir, e.Name()), nil
		}
	}
	return "", fmt.Errorf("store: %q: %w", ref, ErrNotFound)
}

// moveFile renames src to dst, falling back to copy-and-delete when the
// two paths are on different filesystems.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("store: failed to open source: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("store: failed to create destination: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return fmt.Errorf("store: failed to copy: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("store: failed to finish copy: %w", err)
	}

	return os.Remove(src)
}
