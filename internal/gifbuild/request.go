package gifbuild

import (
	"errors"
	"strings"
)

// Dither identifies a paletteuse dithering algorithm.
type Dither string

// Recognized dither modes. Sierra2_4a is the quality default; None disables
// dithering entirely.
const (
	DitherSierra2_4a     Dither = "sierra2_4a"
	DitherBayer          Dither = "bayer"
	DitherFloydSteinberg Dither = "floyd_steinberg"
	DitherNone           Dither = "none"
)

// LossyUnset marks the lossy level as not provided.
const LossyUnset = -1

// Validation failures, one sentinel per parameter so callers can report the
// exact knob that was wrong.
var (
	ErrNoInput       = errors.New("input path or image pattern required")
	ErrNoOutput      = errors.New("output path required")
	ErrFPSRange      = errors.New("fps must be positive")
	ErrColorsRange   = errors.New("colors must be between 2 and 256")
	ErrDitherUnknown = errors.New("unknown dither mode")
	ErrLoopRange     = errors.New("loop count must be zero (infinite) or positive")
	ErrTrimConflict  = errors.New("duration and end time are mutually exclusive")
	ErrLossyRange    = errors.New("lossy level must be between 0 and 200")
)

// Request describes a single conversion. It lives only for the duration of
// one call; there is no persistent state behind it.
type Request struct {
	// Input is a video file path. Empty when Pattern is set.
	Input string
	// Pattern is an image-sequence source, either a glob ("frames/*.png")
	// or a printf-style template ("frame%04d.png").
	Pattern string
	// Output is the destination GIF path.
	Output string

	FPS      float64
	MaxWidth int // <= 0 means no width limit
	Colors   int
	Dither   Dither
	// Loop is the gif muxer loop count: 0 repeats forever, a positive
	// value repeats that exact number of times.
	Loop int

	// Start, Duration, and To trim the input. Duration and To must not
	// both be set.
	Start    string
	Duration string
	To       string

	Optimize  bool
	Lossy     int // LossyUnset when not requested
	Overwrite bool
}

// ParseDither maps a user-supplied mode name onto a known Dither value.
func ParseDither(value string) (Dither, error) {
	switch Dither(strings.ToLower(strings.TrimSpace(value))) {
	case DitherSierra2_4a:
		return DitherSierra2_4a, nil
	case DitherBayer:
		return DitherBayer, nil
	case DitherFloydSteinberg:
		return DitherFloydSteinberg, nil
	case DitherNone:
		return DitherNone, nil
	}
	return "", ErrDitherUnknown
}

// DitherModes lists the accepted dither mode names for help text.
func DitherModes() []string {
	return []string{
		string(DitherSierra2_4a),
		string(DitherBayer),
		string(DitherFloydSteinberg),
		string(DitherNone),
	}
}

// Validate rejects invalid parameters before any command is built. Each
// failure maps to one of the package sentinels.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Input) == "" && strings.TrimSpace(r.Pattern) == "" {
		return ErrNoInput
	}
	if strings.TrimSpace(r.Output) == "" {
		return ErrNoOutput
	}
	if r.FPS <= 0 {
		return ErrFPSRange
	}
	if r.Colors < 2 || r.Colors > 256 {
		return ErrColorsRange
	}
	if _, err := ParseDither(string(r.Dither)); err != nil {
		return err
	}
	if r.Loop < 0 {
		return ErrLoopRange
	}
	if strings.TrimSpace(r.Duration) != "" && strings.TrimSpace(r.To) != "" {
		return ErrTrimConflict
	}
	if r.Lossy != LossyUnset && (r.Lossy < 0 || r.Lossy > 200) {
		return ErrLossyRange
	}
	return nil
}
