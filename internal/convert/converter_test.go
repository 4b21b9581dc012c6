package convert_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gifify/internal/config"
	"gifify/internal/convert"
	"gifify/internal/gifbuild"
	"gifify/internal/history"
	"gifify/internal/services/ffmpeg"
	"gifify/internal/services/gifsicle"
)

// fileCreatingExecutor pretends to be the external tool by writing the
// output path named in the argument list.
type fileCreatingExecutor struct {
	err   error
	calls [][]string
}

func (f *fileCreatingExecutor) Run(ctx context.Context, binary string, args []string, onLine func(string)) error {
	f.calls = append(f.calls, append([]string(nil), args...))
	if f.err != nil {
		return f.err
	}
	output := args[len(args)-1]
	for i, arg := range args {
		if arg == "-o" && i+1 < len(args) {
			output = args[i+1]
		}
	}
	return os.WriteFile(output, []byte("GIF89a"), 0o644)
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Paths.WorkDir = filepath.Join(dir, "work")
	cfg.Paths.LogDir = filepath.Join(dir, "logs")
	return &cfg
}

func testRequest(t *testing.T, dir string) gifbuild.Request {
	t.Helper()
	input := filepath.Join(dir, "clip.mp4")
	if err := os.WriteFile(input, []byte("fake video"), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	return gifbuild.Request{
		Input:    input,
		Output:   filepath.Join(dir, "clip.gif"),
		FPS:      12,
		MaxWidth: 480,
		Colors:   256,
		Dither:   gifbuild.DitherSierra2_4a,
		Lossy:    gifbuild.LossyUnset,
	}
}

func newConverter(t *testing.T, cfg *config.Config, opts ...convert.Option) *convert.Converter {
	t.Helper()
	conv, err := convert.New(cfg, nil, opts...)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return conv
}

func ffmpegStub(t *testing.T, exec ffmpeg.Executor) *ffmpeg.Client {
	t.Helper()
	client, err := ffmpeg.New("ffmpeg", ffmpeg.WithExecutor(exec))
	if err != nil {
		t.Fatalf("ffmpeg.New returned error: %v", err)
	}
	return client
}

func gifsicleStub(t *testing.T, exec gifsicle.Executor) *gifsicle.Client {
	t.Helper()
	client, err := gifsicle.New("gifsicle", gifsicle.WithExecutor(exec))
	if err != nil {
		t.Fatalf("gifsicle.New returned error: %v", err)
	}
	return client
}

func TestConvertProducesOutput(t *testing.T) {
	cfg := testConfig(t)
	req := testRequest(t, t.TempDir())
	exec := &fileCreatingExecutor{}
	conv := newConverter(t, cfg,
		convert.WithFFmpegClient(ffmpegStub(t, exec)),
		convert.WithGifsicleClient(nil))

	result, err := conv.Convert(context.Background(), req)
	if err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}
	if result.Output != req.Output {
		t.Fatalf("unexpected output path: %q", result.Output)
	}
	if _, err := os.Stat(req.Output); err != nil {
		t.Fatalf("expected output file: %v", err)
	}
	if result.OutputBytes == 0 {
		t.Fatal("expected non-zero output size")
	}
	if len(exec.calls) != 1 {
		t.Fatalf("expected one ffmpeg invocation, got %d", len(exec.calls))
	}
	// Scratch space must be clean afterwards.
	entries, err := os.ReadDir(cfg.Paths.WorkDir)
	if err != nil {
		t.Fatalf("read work dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty work dir, found %d entries", len(entries))
	}
}

func TestConvertRejectsMissingInputBeforeSpawning(t *testing.T) {
	cfg := testConfig(t)
	req := testRequest(t, t.TempDir())
	req.Input = filepath.Join(t.TempDir(), "missing.mp4")
	exec := &fileCreatingExecutor{}
	conv := newConverter(t, cfg,
		convert.WithFFmpegClient(ffmpegStub(t, exec)),
		convert.WithGifsicleClient(nil))

	_, err := conv.Convert(context.Background(), req)
	if err == nil {
		t.Fatal("expected error for missing input")
	}
	if len(exec.calls) != 0 {
		t.Fatal("no external process should run for a missing input")
	}
}

func TestConvertRejectsInvalidParametersBeforeSpawning(t *testing.T) {
	cfg := testConfig(t)
	req := testRequest(t, t.TempDir())
	req.Colors = 1
	exec := &fileCreatingExecutor{}
	conv := newConverter(t, cfg,
		convert.WithFFmpegClient(ffmpegStub(t, exec)),
		convert.WithGifsicleClient(nil))

	if _, err := conv.Convert(context.Background(), req); !errors.Is(err, gifbuild.ErrColorsRange) {
		t.Fatalf("expected ErrColorsRange, got %v", err)
	}
	if len(exec.calls) != 0 {
		t.Fatal("no external process should run for invalid parameters")
	}
}

func TestConvertRefusesExistingOutputWithoutOverwrite(t *testing.T) {
	cfg := testConfig(t)
	req := testRequest(t, t.TempDir())
	if err := os.WriteFile(req.Output, []byte("old"), 0o644); err != nil {
		t.Fatalf("write existing output: %v", err)
	}
	conv := newConverter(t, cfg,
		convert.WithFFmpegClient(ffmpegStub(t, &fileCreatingExecutor{})),
		convert.WithGifsicleClient(nil))

	if _, err := conv.Convert(context.Background(), req); err == nil {
		t.Fatal("expected error for existing output")
	}

	req.Overwrite = true
	if _, err := conv.Convert(context.Background(), req); err != nil {
		t.Fatalf("Convert with overwrite returned error: %v", err)
	}
}

func TestConvertRunsGifsiclePass(t *testing.T) {
	cfg := testConfig(t)
	req := testRequest(t, t.TempDir())
	req.Optimize = true
	req.Lossy = 80
	ffmpegExec := &fileCreatingExecutor{}
	gifsicleExec := &fileCreatingExecutor{}
	conv := newConverter(t, cfg,
		convert.WithFFmpegClient(ffmpegStub(t, ffmpegExec)),
		convert.WithGifsicleClient(gifsicleStub(t, gifsicleExec)))

	result, err := conv.Convert(context.Background(), req)
	if err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}
	if !result.Optimized || result.OptimizeSkipped {
		t.Fatalf("expected optimized result, got %+v", result)
	}
	if len(gifsicleExec.calls) != 1 {
		t.Fatalf("expected one gifsicle invocation, got %d", len(gifsicleExec.calls))
	}
	if gifsicleExec.calls[0][0] != "--lossy=80" {
		t.Fatalf("expected lossy flag, got %v", gifsicleExec.calls[0])
	}
	if _, err := os.Stat(req.Output); err != nil {
		t.Fatalf("expected final output: %v", err)
	}
}

func TestConvertSkipsOptimizeWhenGifsicleMissing(t *testing.T) {
	cfg := testConfig(t)
	req := testRequest(t, t.TempDir())
	req.Optimize = true
	conv := newConverter(t, cfg,
		convert.WithFFmpegClient(ffmpegStub(t, &fileCreatingExecutor{})),
		convert.WithGifsicleClient(nil))

	result, err := conv.Convert(context.Background(), req)
	if err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}
	if result.Optimized || !result.OptimizeSkipped {
		t.Fatalf("expected skipped optimization, got %+v", result)
	}
	if _, err := os.Stat(req.Output); err != nil {
		t.Fatalf("expected unoptimized output: %v", err)
	}
}

func TestConvertPropagatesFFmpegFailure(t *testing.T) {
	cfg := testConfig(t)
	req := testRequest(t, t.TempDir())
	conv := newConverter(t, cfg,
		convert.WithFFmpegClient(ffmpegStub(t, &fileCreatingExecutor{err: errors.New("exit status 1")})),
		convert.WithGifsicleClient(nil))

	if _, err := conv.Convert(context.Background(), req); err == nil {
		t.Fatal("expected ffmpeg failure to propagate")
	}
	if _, err := os.Stat(req.Output); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("no output should exist after failure, got err=%v", err)
	}
}

func TestConvertRecordsHistory(t *testing.T) {
	cfg := testConfig(t)
	store, err := history.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("history.Open returned error: %v", err)
	}
	defer store.Close()

	req := testRequest(t, t.TempDir())
	conv := newConverter(t, cfg,
		convert.WithFFmpegClient(ffmpegStub(t, &fileCreatingExecutor{})),
		convert.WithGifsicleClient(nil),
		convert.WithHistory(store))

	if _, err := conv.Convert(context.Background(), req); err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}
	items, err := store.List(context.Background(), 10)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(items) != 1 || items[0].Source != req.Input {
		t.Fatalf("unexpected history: %+v", items)
	}
}

func TestDefaultOutputPath(t *testing.T) {
	if got := convert.DefaultOutputPath("/tmp/clip.mp4"); got != "/tmp/clip.gif" {
		t.Fatalf("unexpected default output: %q", got)
	}
	if got := convert.DefaultOutputPath("noext"); got != "noext.gif" {
		t.Fatalf("unexpected default output: %q", got)
	}
}
