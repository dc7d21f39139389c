package format

import (
	"bytes"
	"testing"
)

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{PDF, "PDF"},
		{PNG, "PNG"},
		{TIFF, "TIFF"},
		{Unknown, "Unknown"},
		{Kind(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestKind_Extension(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{PDF, ".pdf"},
		{PNG, ".png"},
		{TIFF, ".tiff"},
		{Unknown, ""},
	}

	for _, tt := range tests {
		if got := tt.kind.Extension(); got != tt.want {
			t.Errorf("Kind(%d).Extension() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		filename string
		want     Kind
	}{
		{"document.pdf", PDF},
		{"document.PDF", PDF},
		{"shot.png", PNG},
		{"shot@2x.png", PNG},
		{"clip.tiff", TIFF},
		{"clip.tif", TIFF},
		{"notes.txt", Unknown},
		{"noextension", Unknown},
		{"", Unknown},
	}

	for _, tt := range tests {
		if got := Detect(tt.filename); got != tt.want {
			t.Errorf("Detect(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestDetectFromMagic(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Kind
	}{
		{"pdf", []byte("%PDF-1.7\n"), PDF},
		{"png", []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0x00}, PNG},
		{"tiff little-endian", []byte{'I', 'I', 0x2A, 0x00, 0x08, 0x00, 0x00, 0x00}, TIFF},
		{"tiff big-endian", []byte{'M', 'M', 0x00, 0x2A, 0x00, 0x00, 0x00, 0x08}, TIFF},
		{"text", []byte("hello world"), Unknown},
		{"short", []byte{0x89}, Unknown},
		{"empty", nil, Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFromMagic(tt.data); got != tt.want {
				t.Errorf("DetectFromMagic() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetectFromReader(t *testing.T) {
	kind, err := DetectFromReader(bytes.NewReader([]byte("%PDF-1.4 trailing data")))
	if err != nil {
		t.Fatalf("DetectFromReader failed: %v", err)
	}
	if kind != PDF {
		t.Errorf("DetectFromReader() = %v, want PDF", kind)
	}

	kind, err = DetectFromReader(bytes.NewReader(nil))
	if err != nil {
		t.Fatalf("DetectFromReader on empty input failed: %v", err)
	}
	if kind != Unknown {
		t.Errorf("DetectFromReader(empty) = %v, want Unknown", kind)
	}
}

func TestIsImage(t *testing.T) {
	if !PNG.IsImage() || !TIFF.IsImage() {
		t.Error("PNG and TIFF should be images")
	}
	if PDF.IsImage() || Unknown.IsImage() {
		t.Error("PDF and Unknown should not be images")
	}
}
