package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"gifify/internal/config"
)

// Requirement defines an external binary gifify relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Requirements returns the tool set for the given configuration. ffmpeg is
// the only hard requirement; gifsicle and ffprobe unlock the optimization
// pass and source inspection.
func Requirements(cfg *config.Config) []Requirement {
	tools := config.Default().Tools
	if cfg != nil {
		tools = cfg.Tools
	}
	return []Requirement{
		{
			Name:        "ffmpeg",
			Command:     tools.FFmpeg,
			Description: "video decoding, filtering, and GIF encoding",
		},
		{
			Name:        "gifsicle",
			Command:     tools.Gifsicle,
			Description: "optional lossy GIF re-compression (--optimize)",
			Optional:    true,
		},
		{
			Name:        "ffprobe",
			Command:     tools.FFprobe,
			Description: "source dimensions and duration reporting",
			Optional:    true,
		},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}

// Check runs CheckBinaries for the configuration's tool set.
func Check(cfg *config.Config) []Status {
	return CheckBinaries(Requirements(cfg))
}

// MissingRequired returns an error naming the first required binary that is
// unavailable, or nil when every hard requirement resolves.
func MissingRequired(statuses []Status) error {
	for _, status := range statuses {
		if status.Optional || status.Available {
			continue
		}
		return fmt.Errorf("required tool %s unavailable: %s", status.Name, status.Detail)
	}
	return nil
}
