package gifbuild_test

import (
	"errors"
	"testing"

	"gifify/internal/gifbuild"
)

func TestValidateDistinguishesParameters(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*gifbuild.Request)
		want   error
	}{
		{"no input", func(r *gifbuild.Request) { r.Input = "" }, gifbuild.ErrNoInput},
		{"no output", func(r *gifbuild.Request) { r.Output = "" }, gifbuild.ErrNoOutput},
		{"zero fps", func(r *gifbuild.Request) { r.FPS = 0 }, gifbuild.ErrFPSRange},
		{"negative fps", func(r *gifbuild.Request) { r.FPS = -1 }, gifbuild.ErrFPSRange},
		{"colors too low", func(r *gifbuild.Request) { r.Colors = 1 }, gifbuild.ErrColorsRange},
		{"colors too high", func(r *gifbuild.Request) { r.Colors = 257 }, gifbuild.ErrColorsRange},
		{"bad dither", func(r *gifbuild.Request) { r.Dither = "ordered" }, gifbuild.ErrDitherUnknown},
		{"negative loop", func(r *gifbuild.Request) { r.Loop = -1 }, gifbuild.ErrLoopRange},
		{"duration and to", func(r *gifbuild.Request) { r.Duration = "3"; r.To = "8" }, gifbuild.ErrTrimConflict},
		{"lossy too high", func(r *gifbuild.Request) { r.Lossy = 500 }, gifbuild.ErrLossyRange},
		{"lossy negative", func(r *gifbuild.Request) { r.Lossy = -2 }, gifbuild.ErrLossyRange},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(&req)
			if err := req.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestValidateAcceptsPatternWithoutInput(t *testing.T) {
	req := validRequest()
	req.Input = ""
	req.Pattern = "frames/*.png"
	if err := req.Validate(); err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
}

func TestValidateAcceptsStartWithDuration(t *testing.T) {
	req := validRequest()
	req.Start = "5"
	req.Duration = "3"
	if err := req.Validate(); err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
}

func TestParseDither(t *testing.T) {
	for _, name := range gifbuild.DitherModes() {
		if _, err := gifbuild.ParseDither(name); err != nil {
			t.Fatalf("ParseDither(%q) returned error: %v", name, err)
		}
	}
	if _, err := gifbuild.ParseDither("SIERRA2_4A"); err != nil {
		t.Fatalf("expected case-insensitive parse, got %v", err)
	}
	if _, err := gifbuild.ParseDither("atkinson"); !errors.Is(err, gifbuild.ErrDitherUnknown) {
		t.Fatalf("expected ErrDitherUnknown, got %v", err)
	}
}
