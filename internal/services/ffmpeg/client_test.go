package ffmpeg_test

import (
	"context"
	"errors"
	"slices"
	"testing"

	"gifify/internal/services/ffmpeg"
)

type stubExecutor struct {
	lines []string
	err   error
	calls int
	args  [][]string
}

func (s *stubExecutor) Run(ctx context.Context, binary string, args []string, onLine func(string)) error {
	s.calls++
	s.args = append(s.args, append([]string(nil), args...))
	if onLine != nil {
		for _, line := range s.lines {
			onLine(line)
		}
	}
	return s.err
}

func TestNewRequiresBinary(t *testing.T) {
	if _, err := ffmpeg.New("  "); err == nil {
		t.Fatal("expected error for empty binary")
	}
}

func TestRunForwardsArgsAndLines(t *testing.T) {
	exec := &stubExecutor{lines: []string{"frame=  10", "frame=  20"}}
	client, err := ffmpeg.New("ffmpeg", ffmpeg.WithExecutor(exec))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	var seen []string
	args := []string{"-hide_banner", "-i", "clip.mp4", "out.gif"}
	if err := client.Run(context.Background(), args, func(line string) {
		seen = append(seen, line)
	}); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if exec.calls != 1 || !slices.Equal(exec.args[0], args) {
		t.Fatalf("unexpected invocation: calls=%d args=%v", exec.calls, exec.args)
	}
	if len(seen) != 2 {
		t.Fatalf("expected forwarded output lines, got %v", seen)
	}
}

func TestRunWrapsExecutorError(t *testing.T) {
	client, err := ffmpeg.New("ffmpeg", ffmpeg.WithExecutor(&stubExecutor{err: errors.New("exit status 1")}))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	err = client.Run(context.Background(), []string{"-i", "in"}, nil)
	if err == nil {
		t.Fatal("expected error from executor")
	}
}

func TestRunRejectsEmptyArgs(t *testing.T) {
	client, err := ffmpeg.New("ffmpeg", ffmpeg.WithExecutor(&stubExecutor{}))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := client.Run(context.Background(), nil, nil); err == nil {
		t.Fatal("expected error for empty args")
	}
}

func TestExitCodeWithoutExitError(t *testing.T) {
	if code := ffmpeg.ExitCode(errors.New("plain")); code != -1 {
		t.Fatalf("expected -1 for non-exit errors, got %d", code)
	}
	if code := ffmpeg.ExitCode(nil); code != -1 {
		t.Fatalf("expected -1 for nil, got %d", code)
	}
}
