// Package store relocates finished attachments into managed storage and
// hands back references for later lookup.
//
// The pipeline computes an attachment's final name (with any embedded
// geometry metadata); a Store performs the actual move. Two
// implementations are provided: DirStore keeps attachments in a local
// managed directory tree, S3Store uploads them to S3-compatible object
// storage.
package store

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/tsawler/paperclip/format"
)

// ErrNotFound is returned when no attachment exists under a reference.
var ErrNotFound = errors.New("store: attachment not found")

// Attachment is the stored record for one attached file.
type Attachment struct {
	// Ref uniquely identifies the attachment within its store.
	Ref string `json:"ref"`
	// Name is the stored filename, including any metadata suffix.
	Name string `json:"name"`
	// Kind is the attachment's file kind.
	Kind format.Kind `json:"kind"`
	// Size is the stored size in bytes.
	Size int64 `json:"size"`
	// AltText is optional recognized text for image attachments.
	AltText string `json:"alt_text,omitempty"`
	// StoredAt records when the attachment entered the store.
	StoredAt time.Time `json:"stored_at"`
}

// Store moves files into managed storage. Put consumes the source file:
// on success the file lives under the store and the original path is
// gone.
type Store interface {
	// Put moves the file at srcPath into the store under name and
	// returns the stored attachment record.
	Put(ctx context.Context, srcPath, name string) (Attachment, error)

	// Open returns the content of the attachment stored under ref.
	Open(ctx context.Context, ref string) (io.ReadCloser, error)

	// Remove deletes the attachment stored under ref.
	Remove(ctx context.Context, ref string) error
}
