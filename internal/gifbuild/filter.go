package gifbuild

import (
	"fmt"
	"strings"
)

// BuildFilter assembles the single-pass ffmpeg filter graph: fps resampling,
// optional width-bounded scaling, then split into palettegen and paletteuse
// branches. Resampling always precedes scaling so the palette is computed
// from the frames that actually reach the output.
func BuildFilter(fps float64, maxWidth, colors int, dither Dither) string {
	parts := []string{fmt.Sprintf("fps=%s", formatFPS(fps))}

	// min(iw,W) keeps the scale filter from ever upscaling past the
	// source width. Height follows at -1 to preserve aspect.
	if maxWidth > 0 {
		parts = append(parts, fmt.Sprintf("scale='min(iw,%d)':-1:flags=lanczos", maxWidth))
	}

	palettegen := fmt.Sprintf("[s0]palettegen=stats_mode=diff:max_colors=%d[p]", colors)
	paletteuse := fmt.Sprintf("[s1][p]paletteuse=%s", ditherOption(dither))

	return fmt.Sprintf("%s,split[s0][s1];%s;%s", strings.Join(parts, ","), palettegen, paletteuse)
}

func ditherOption(dither Dither) string {
	switch dither {
	case DitherNone:
		return "dither=none"
	case DitherBayer:
		// bayer_scale=5 is the light-weight pattern size.
		return "dither=bayer:bayer_scale=5"
	case DitherFloydSteinberg:
		return "dither=floyd_steinberg"
	default:
		return "dither=sierra2_4a"
	}
}

// formatFPS renders the rate without a trailing ".0" so whole rates read as
// integers in the graph.
func formatFPS(fps float64) string {
	formatted := strings.TrimRight(fmt.Sprintf("%.3f", fps), "0")
	return strings.TrimRight(formatted, ".")
}
