package deps_test

import (
	"runtime"
	"strings"
	"testing"

	"gifify/internal/deps"
)

func TestCheckBinariesReportsMissing(t *testing.T) {
	statuses := deps.CheckBinaries([]deps.Requirement{
		{Name: "ffmpeg", Command: "definitely-not-a-real-binary-name"},
	})
	if len(statuses) != 1 {
		t.Fatalf("expected one status, got %d", len(statuses))
	}
	if statuses[0].Available {
		t.Fatal("expected binary to be unavailable")
	}
	if !strings.Contains(statuses[0].Detail, "not found") {
		t.Fatalf("unexpected detail: %q", statuses[0].Detail)
	}
}

func TestCheckBinariesFindsShell(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("sh lookup not applicable on windows")
	}
	statuses := deps.CheckBinaries([]deps.Requirement{
		{Name: "shell", Command: "sh"},
	})
	if !statuses[0].Available {
		t.Fatalf("expected sh to be available: %+v", statuses[0])
	}
}

func TestCheckBinariesEmptyCommand(t *testing.T) {
	statuses := deps.CheckBinaries([]deps.Requirement{{Name: "ffmpeg"}})
	if statuses[0].Available || statuses[0].Detail != "command not configured" {
		t.Fatalf("unexpected status: %+v", statuses[0])
	}
}

func TestRequirementsMarkOnlyFFmpegRequired(t *testing.T) {
	required := 0
	for _, req := range deps.Requirements(nil) {
		if !req.Optional {
			required++
			if req.Name != "ffmpeg" {
				t.Fatalf("unexpected required tool %q", req.Name)
			}
		}
	}
	if required != 1 {
		t.Fatalf("expected exactly one required tool, got %d", required)
	}
}

func TestMissingRequired(t *testing.T) {
	statuses := []deps.Status{
		{Name: "gifsicle", Optional: true, Available: false, Detail: "binary not found"},
		{Name: "ffmpeg", Available: false, Detail: `binary "ffmpeg" not found`},
	}
	err := deps.MissingRequired(statuses)
	if err == nil || !strings.Contains(err.Error(), "ffmpeg") {
		t.Fatalf("expected ffmpeg error, got %v", err)
	}

	statuses[1].Available = true
	if err := deps.MissingRequired(statuses); err != nil {
		t.Fatalf("expected nil when required tools resolve, got %v", err)
	}
}
