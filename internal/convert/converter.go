package convert

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"gifify/internal/config"
	"gifify/internal/fileutil"
	"gifify/internal/gifbuild"
	"gifify/internal/history"
	"gifify/internal/logging"
	"gifify/internal/services/ffmpeg"
	"gifify/internal/services/gifsicle"
)

// Result summarizes one finished conversion.
type Result struct {
	Output          string
	OutputBytes     int64
	Elapsed         time.Duration
	Optimized       bool
	OptimizeSkipped bool
}

// Option configures the converter.
type Option func(*Converter)

// WithFFmpegClient injects a prepared ffmpeg client (primarily for tests).
func WithFFmpegClient(client *ffmpeg.Client) Option {
	return func(c *Converter) {
		if client != nil {
			c.ffmpeg = client
		}
	}
}

// WithGifsicleClient injects a prepared gifsicle client.
func WithGifsicleClient(client *gifsicle.Client) Option {
	return func(c *Converter) {
		c.gifsicle = client
		c.gifsicleSet = true
	}
}

// WithHistory attaches a conversion history store.
func WithHistory(store *history.Store) Option {
	return func(c *Converter) {
		c.store = store
	}
}

// Converter runs the full pipeline: build the ffmpeg command, execute it,
// optionally re-compress with gifsicle, then move the result into place.
type Converter struct {
	cfg         *config.Config
	logger      *slog.Logger
	ffmpeg      *ffmpeg.Client
	gifsicle    *gifsicle.Client
	gifsicleSet bool
	store       *history.Store
}

// New constructs a converter from configuration. The gifsicle client is only
// wired when the binary resolves; its absence downgrades --optimize to a
// warning.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) (*Converter, error) {
	if cfg == nil {
		return nil, errors.New("config required")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	c := &Converter{cfg: cfg, logger: logger}
	for _, opt := range opts {
		opt(c)
	}

	if c.ffmpeg == nil {
		client, err := ffmpeg.New(cfg.Tools.FFmpeg)
		if err != nil {
			return nil, err
		}
		c.ffmpeg = client
	}
	if !c.gifsicleSet {
		if _, err := exec.LookPath(cfg.Tools.Gifsicle); err == nil {
			client, err := gifsicle.New(cfg.Tools.Gifsicle)
			if err != nil {
				return nil, err
			}
			c.gifsicle = client
		}
	}
	return c, nil
}

// DefaultOutputPath derives the output GIF path from a video input path.
func DefaultOutputPath(input string) string {
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + ".gif"
}

// Convert runs one conversion request to completion.
func (c *Converter) Convert(ctx context.Context, req gifbuild.Request) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{}, err
	}

	if input := strings.TrimSpace(req.Input); input != "" {
		if _, err := os.Stat(input); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return Result{}, fmt.Errorf("input file not found: %s", input)
			}
			return Result{}, fmt.Errorf("inspect input %s: %w", input, err)
		}
	}

	if !req.Overwrite {
		if _, err := os.Stat(req.Output); err == nil {
			return Result{}, fmt.Errorf("output already exists: %s (pass --overwrite to replace)", req.Output)
		}
	}

	if err := os.MkdirAll(c.cfg.Paths.WorkDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("ensure work directory: %w", err)
	}
	scratch := filepath.Join(c.cfg.Paths.WorkDir, "gifify-"+uuid.NewString()+".gif")
	defer func() {
		_ = os.Remove(scratch)
	}()

	args, err := gifbuild.Command(req, scratch)
	if err != nil {
		return Result{}, err
	}

	started := time.Now()
	c.logger.Debug("running ffmpeg",
		logging.String("binary", c.ffmpeg.Binary()),
		logging.String("args", strings.Join(args, " ")))
	if err := c.ffmpeg.Run(ctx, args, c.toolOutput("ffmpeg")); err != nil {
		return Result{}, err
	}

	result := Result{Output: req.Output}
	final := scratch
	if req.Optimize {
		switch {
		case c.gifsicle == nil:
			c.logger.Warn("gifsicle not found; skipping optimization",
				logging.String("binary", c.cfg.Tools.Gifsicle))
			result.OptimizeSkipped = true
		default:
			optimized := scratch + ".opt.gif"
			defer func() {
				_ = os.Remove(optimized)
			}()
			if err := c.gifsicle.Optimize(ctx, scratch, optimized, req.Lossy, c.toolOutput("gifsicle")); err != nil {
				return Result{}, err
			}
			final = optimized
			result.Optimized = true
		}
	}

	if err := fileutil.MoveFile(final, req.Output); err != nil {
		return Result{}, err
	}
	result.Elapsed = time.Since(started)
	if info, err := os.Stat(req.Output); err == nil {
		result.OutputBytes = info.Size()
	}

	c.record(ctx, req, result)
	c.logger.Info("conversion complete",
		logging.String("output", result.Output),
		logging.Int64("bytes", result.OutputBytes),
		logging.Bool("optimized", result.Optimized),
		logging.Duration("elapsed", result.Elapsed))
	return result, nil
}

func (c *Converter) record(ctx context.Context, req gifbuild.Request, result Result) {
	if c.store == nil {
		return
	}
	source := req.Input
	if source == "" {
		source = req.Pattern
	}
	if _, err := c.store.Record(ctx, history.Conversion{
		Source:      source,
		OutputPath:  result.Output,
		OutputBytes: result.OutputBytes,
		Params:      req,
		Elapsed:     result.Elapsed,
		Optimized:   result.Optimized,
	}); err != nil {
		c.logger.Warn("record conversion history", logging.Error(err))
	}
}

func (c *Converter) toolOutput(tool string) func(string) {
	return func(line string) {
		line = strings.TrimSpace(line)
		if line == "" {
			return
		}
		c.logger.Debug(line, logging.String("tool", tool))
	}
}
