package resolver

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestResolve_ScaleOverridesWidth(t *testing.T) {
	got := Resolve("pic_100.0_200.0_10.0_20.0.pdf", Properties{KeyWidth: 50})

	want := Properties{
		KeyBackground: "white",
		KeyScale:      0.5,
		KeyCrop:       CropValues{Width: 50, Height: 100, X: 5, Y: 10},
	}

	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("Resolve() mismatch (-want +got):\n%s", d)
	}
}

func TestResolve_CropWithoutWidth(t *testing.T) {
	got := Resolve("pic_100.0_200.0_10.0_20.0.pdf", nil)

	want := Properties{
		KeyBackground: "white",
		KeyCrop:       CropValues{Width: 100, Height: 200, X: 10, Y: 20},
	}

	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("Resolve() mismatch (-want +got):\n%s", d)
	}
}

func TestResolve_HighDensityDefaultScale(t *testing.T) {
	got := Resolve("shot@2x.png", Properties{})

	want := Properties{
		KeyBackground: "white",
		KeyScale:      0.5,
	}

	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("Resolve() mismatch (-want +got):\n%s", d)
	}
}

func TestResolve_HighDensityExplicitWidthWins(t *testing.T) {
	got := Resolve("shot@2x.png", Properties{KeyWidth: 300})

	// An explicit width suppresses the derived half scale.
	want := Properties{
		KeyBackground: "white",
		KeyWidth:      300,
	}

	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("Resolve() mismatch (-want +got):\n%s", d)
	}
}

func TestResolve_PlainAttachment(t *testing.T) {
	got := Resolve("notes.pdf", nil)

	want := Properties{KeyBackground: "white"}

	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("Resolve() mismatch (-want +got):\n%s", d)
	}
}

func TestResolve_NilWidthRemoved(t *testing.T) {
	got := Resolve("shot.png", Properties{KeyWidth: nil})

	if _, ok := got[KeyWidth]; ok {
		t.Error("nil width should be removed from the result")
	}
}

func TestResolve_NilWidthIsNotExplicit(t *testing.T) {
	got := Resolve("shot@2x.png", Properties{KeyWidth: nil})

	if got[KeyScale] != 0.5 {
		t.Errorf("scale = %v, want 0.5 (nil width is not an explicit width)", got[KeyScale])
	}
}

func TestResolve_PassthroughHints(t *testing.T) {
	got := Resolve("notes.pdf", Properties{"align": "center"})

	if got["align"] != "center" {
		t.Errorf("unrecognized hints should pass through, got %v", got["align"])
	}
}

func TestResolve_DoesNotMutateRequested(t *testing.T) {
	requested := Properties{KeyWidth: 50}
	Resolve("pic_100.0_200.0_10.0_20.0.pdf", requested)

	if d := cmp.Diff(Properties{KeyWidth: 50}, requested); d != "" {
		t.Errorf("requested properties mutated (-want +got):\n%s", d)
	}
}

func TestResolve_TiesToEven(t *testing.T) {
	// Width 25 over crop width 100 gives scale 0.25; 10 * 0.25 = 2.5
	// rounds to 2, and 30 * 0.25 = 7.5 rounds to 8.
	got := Resolve("pic_100.0_200.0_10.0_30.0.pdf", Properties{KeyWidth: 25})

	crop, ok := got[KeyCrop].(CropValues)
	if !ok {
		t.Fatalf("missing crop in %v", got)
	}

	want := CropValues{Width: 25, Height: 50, X: 2, Y: 8}
	if crop != want {
		t.Errorf("crop = %+v, want %+v", crop, want)
	}
}

func TestResolve_FloatWidth(t *testing.T) {
	got := Resolve("pic_100.0_200.0_10.0_20.0.pdf", Properties{KeyWidth: 50.0})

	if got[KeyScale] != 0.5 {
		t.Errorf("scale = %v, want 0.5", got[KeyScale])
	}
	if _, ok := got[KeyWidth]; ok {
		t.Error("width should be removed once scale is derived")
	}
}
