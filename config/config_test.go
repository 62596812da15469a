package config

import (
	"errors"
	"flag"
	"strings"
	"testing"

	"golang.org/x/image/math/f64"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.WindowWidth != 1280 || cfg.WindowHeight != 720 {
		t.Fatalf("unexpected window size %dx%d", cfg.WindowWidth, cfg.WindowHeight)
	}
	if cfg.Correction != CorrectScreen {
		t.Fatalf("expected screen correction, got %s", cfg.Correction)
	}
	if got := cfg.WorldOffsetVec(); got != (f64.Vec3{0, 1.5, 0}) {
		t.Fatalf("unexpected world offset %v", got)
	}
	if !cfg.UsePool || !cfg.Watch {
		t.Fatalf("expected pool and watch enabled by default")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("UIPROJECTOR_OBJECTS", "12")
	t.Setenv("UIPROJECTOR_CORRECTION", "Script")
	t.Setenv("UIPROJECTOR_SCREEN_OFFSET", "4,-8")
	t.Setenv("UIPROJECTOR_SAFE_INSETS", "10,20,30,40")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Objects != 12 {
		t.Fatalf("expected 12 objects, got %d", cfg.Objects)
	}
	if cfg.Correction != CorrectScript {
		t.Fatalf("expected script correction, got %s", cfg.Correction)
	}
	if got := cfg.ScreenOffsetVec(); got != (f64.Vec2{4, -8}) {
		t.Fatalf("unexpected screen offset %v", got)
	}
	safe := cfg.SafeArea()
	if safe.Top != 10 || safe.Bottom != 20 || safe.Left != 30 || safe.Right != 40 {
		t.Fatalf("unexpected safe insets %+v", safe)
	}
}

func TestLoadErrors(t *testing.T) {
	cases := []struct {
		name  string
		key   string
		value string
	}{
		{"bad_int", "UIPROJECTOR_OBJECTS", "many"},
		{"bad_correction", "UIPROJECTOR_CORRECTION", "bounce"},
		{"short_offset", "UIPROJECTOR_WORLD_OFFSET", "1,2"},
		{"negative_radius", "UIPROJECTOR_RADIUS", "-1"},
		{"zero_width", "UIPROJECTOR_WINDOW_WIDTH", "0"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Setenv(c.key, c.value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", c.key, c.value)
			}
		})
	}
}

func TestValidateWrapsErrInvalid(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg.SafeInsets = nil
	if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestFlagsOverrideEnv(t *testing.T) {
	t.Setenv("UIPROJECTOR_OBJECTS", "12")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	fs := flag.NewFlagSet("sandbox", flag.ContinueOnError)
	cfg.RegisterFlags(fs)
	if err := fs.Parse([]string{"-correct", "safe", "-pool=false"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Objects != 12 {
		t.Fatalf("env value should survive as flag default, got %d", cfg.Objects)
	}
	if cfg.Correction != CorrectSafe || cfg.UsePool {
		t.Fatalf("flags not applied: %+v", cfg)
	}

	fs = flag.NewFlagSet("sandbox", flag.ContinueOnError)
	fs.SetOutput(&strings.Builder{})
	cfg.RegisterFlags(fs)
	if err := fs.Parse([]string{"-correct", "wobble"}); err == nil {
		t.Fatalf("expected invalid correction flag to fail")
	}
}
