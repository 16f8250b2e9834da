package render

import (
	"context"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/ironsheep/allcolors/internal/colorspace"
	"github.com/ironsheep/allcolors/internal/config"
	"github.com/ironsheep/allcolors/internal/evaluator"
	"github.com/ironsheep/allcolors/internal/sink"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Bits = 2
	cfg.Strict = true
	cfg.OutputDir = t.TempDir()
	return cfg
}

func TestRender_WritesNamedPNG(t *testing.T) {
	cfg := testConfig(t)

	report, err := Render(context.Background(), Request{Name: "sunrise", Config: cfg})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	want := filepath.Join(cfg.OutputDir, "sunrise.png")
	if report.Path != want {
		t.Errorf("Path: got %q, want %q", report.Path, want)
	}
	if report.Width != 8 || report.Height != 8 || report.Colors != 64 {
		t.Errorf("size: got %dx%d with %d colors", report.Width, report.Height, report.Colors)
	}
	if report.Seed != config.SeedFromString("sunrise") {
		t.Errorf("Seed: got %d, want the name-derived seed", report.Seed)
	}
	if report.Evaluator != evaluator.Default || report.RunID == "" {
		t.Errorf("metadata: got %+v", report)
	}

	f, err := os.Open(report.Path)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	seen := make(map[colorspace.Color]bool)
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			seen[colorspace.FromColor(img.At(x, y))] = true
		}
	}
	if len(seen) != 64 {
		t.Errorf("decoded image has %d distinct colors, want 64", len(seen))
	}
}

func TestRender_SameNameSameImage(t *testing.T) {
	cfg := testConfig(t)
	a, err := Render(context.Background(), Request{Name: "again", Config: cfg})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	b, err := Render(context.Background(), Request{Name: "again", Config: cfg})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if a.RunID == b.RunID {
		t.Error("each render should get its own run id")
	}
	for _, px := range a.Canvas.Placed() {
		if a.Canvas.Packed(px) != b.Canvas.Packed(px) {
			t.Fatalf("renders differ at %v", px)
		}
	}
}

func TestRender_SeedOverride(t *testing.T) {
	cfg := testConfig(t)
	seed := int64(77)

	report, err := Render(context.Background(), Request{Name: "fixed", Seed: &seed, Config: cfg})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if report.Seed != 77 {
		t.Errorf("Seed: got %d, want 77", report.Seed)
	}
}

func TestRender_FormatAndScale(t *testing.T) {
	cfg := testConfig(t)
	cfg.Format = sink.BMP
	cfg.Scale = 2

	report, err := Render(context.Background(), Request{Name: "scaled", Config: cfg})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if filepath.Ext(report.Path) != ".bmp" {
		t.Errorf("Path: got %q, want .bmp", report.Path)
	}
	if _, err := os.Stat(report.Path); err != nil {
		t.Errorf("output missing: %v", err)
	}
}

func TestRender_Invalid(t *testing.T) {
	cfg := testConfig(t)

	for _, name := range []string{"", "  ", "a/b", `a\b`, "..", "~x", "~"} {
		if _, err := Render(context.Background(), Request{Name: name, Config: cfg}); !errors.Is(err, ErrInvalidName) {
			t.Errorf("name %q: got %v, want ErrInvalidName", name, err)
		}
	}

	bad := cfg
	bad.Evaluator = "avg-nothing"
	if _, err := Render(context.Background(), Request{Name: "x", Config: bad}); !errors.Is(err, evaluator.ErrUnknownEvaluator) {
		t.Errorf("got %v, want ErrUnknownEvaluator", err)
	}

	bad = cfg
	bad.Bits = 0
	if _, err := Render(context.Background(), Request{Name: "x", Config: bad}); !errors.Is(err, colorspace.ErrInvalidBitDepth) {
		t.Errorf("got %v, want ErrInvalidBitDepth", err)
	}
}

func TestRender_TildeNameRejectedBeforePlacement(t *testing.T) {
	cfg := config.Default()
	cfg.Bits = 8
	cfg.OutputDir = "."

	// a full 8-bit run would take minutes; the name must fail first
	_, err := Render(context.Background(), Request{Name: "~x", Config: cfg})
	if !errors.Is(err, ErrInvalidName) {
		t.Fatalf("got %v, want ErrInvalidName", err)
	}
	if _, err := os.Stat("~x.png"); !os.IsNotExist(err) {
		t.Errorf("unexpected output file: %v", err)
	}
}

func TestRender_TildeInsideName(t *testing.T) {
	cfg := testConfig(t)

	report, err := Render(context.Background(), Request{Name: "a~b", Config: cfg})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if filepath.Base(report.Path) != "a~b.png" {
		t.Errorf("Path: got %q", report.Path)
	}
}

func TestRender_LossyFormatWarnsOnce(t *testing.T) {
	cfg := testConfig(t)
	cfg.Format = sink.JPEG
	hook := test.NewGlobal()
	defer hook.Reset()

	if _, err := Render(context.Background(), Request{Name: "lossy", Config: cfg}); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	warnings := 0
	for _, e := range hook.AllEntries() {
		if e.Level == log.WarnLevel {
			warnings++
		}
	}
	if warnings != 1 {
		t.Errorf("got %d warnings, want 1", warnings)
	}
}

func TestRender_Cancelled(t *testing.T) {
	cfg := testConfig(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Render(ctx, Request{Name: "stopped", Config: cfg}); !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
	if _, err := os.Stat(filepath.Join(cfg.OutputDir, "stopped.png")); !os.IsNotExist(err) {
		t.Error("a cancelled render should not write a file")
	}
}
