package gifbuild

import (
	"fmt"
	"strings"
)

// Command builds the ffmpeg argument list for the request, with the output
// redirected to outputPath (usually a scratch file that is moved into place
// after the optional optimization pass). The binary name itself is not
// included.
func Command(req Request, outputPath string) ([]string, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	args := []string{"-hide_banner"}
	if req.Overwrite {
		args = append(args, "-y")
	} else {
		args = append(args, "-n")
	}

	// Trim options go before -i so the same window feeds both the
	// palettegen and paletteuse branches of the graph.
	args = appendTrim(args, req)
	args = appendInput(args, req)

	args = append(args,
		"-vf", BuildFilter(req.FPS, req.MaxWidth, req.Colors, req.Dither),
		"-loop", fmt.Sprintf("%d", req.Loop),
		outputPath,
	)
	return args, nil
}

func appendTrim(args []string, req Request) []string {
	if start := strings.TrimSpace(req.Start); start != "" {
		args = append(args, "-ss", start)
	}
	if duration := strings.TrimSpace(req.Duration); duration != "" {
		args = append(args, "-t", duration)
	}
	if to := strings.TrimSpace(req.To); to != "" {
		args = append(args, "-to", to)
	}
	return args
}

func appendInput(args []string, req Request) []string {
	if pattern := strings.TrimSpace(req.Pattern); pattern != "" {
		if IsGlobPattern(pattern) {
			return append(args, "-pattern_type", "glob", "-i", pattern)
		}
		// printf-style template such as frame%04d.png
		return append(args, "-i", pattern)
	}
	return append(args, "-i", req.Input)
}

// IsGlobPattern reports whether the image-sequence pattern uses shell glob
// metacharacters rather than a printf template.
func IsGlobPattern(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[")
}

// OptimizeCommand builds the gifsicle argument list for the high-effort
// re-compression pass from inputPath to outputPath.
func OptimizeCommand(lossy int, inputPath, outputPath string) []string {
	args := make([]string, 0, 5)
	if lossy != LossyUnset {
		args = append(args, fmt.Sprintf("--lossy=%d", lossy))
	}
	return append(args, "-O3", inputPath, "-o", outputPath)
}
