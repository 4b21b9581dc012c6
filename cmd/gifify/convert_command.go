package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"gifify/internal/config"
	"gifify/internal/convert"
	"gifify/internal/deps"
	"gifify/internal/gifbuild"
	"gifify/internal/history"
)

type convertFlags struct {
	output      string
	fps         float64
	maxWidth    int
	colors      int
	dither      string
	loop        int
	start       string
	duration    string
	to          string
	pattern     string
	optimize    bool
	lossy       int
	noOverwrite bool
	verbose     bool
}

func newConvertCommand(ctx *commandContext) *cobra.Command {
	flags := &convertFlags{}

	cmd := &cobra.Command{
		Use:   "convert [input...]",
		Short: "Convert video files or an image sequence to animated GIFs",
		Long: `Convert video files or an image sequence to animated GIFs.

ffmpeg does all the decoding, scaling, palette work, and GIF encoding in one
pass; with --optimize the result is additionally re-compressed by gifsicle.`,
		Example: `  gifify convert clip.mp4
  gifify convert clip.mp4 -o out.gif --fps 10 --max-width 320
  gifify convert clip.mp4 --start 5 --duration 3
  gifify convert --pattern 'frames/*.png' -o out.gif
  gifify convert clip.mp4 --optimize --lossy 80`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, ctx, flags, args)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output GIF path (default: input name with .gif)")
	cmd.Flags().Float64Var(&flags.fps, "fps", 0, "Output frame rate")
	cmd.Flags().IntVar(&flags.maxWidth, "max-width", 0, "Maximum output width; 0 keeps the source width")
	cmd.Flags().IntVar(&flags.colors, "colors", 0, "Palette size (2-256)")
	cmd.Flags().StringVar(&flags.dither, "dither", "", "Dither mode: "+strings.Join(gifbuild.DitherModes(), ", "))
	cmd.Flags().IntVar(&flags.loop, "loop", 0, "Loop count; 0 loops forever")
	cmd.Flags().StringVar(&flags.start, "start", "", "Start time (seconds or HH:MM:SS.mmm)")
	cmd.Flags().StringVar(&flags.duration, "duration", "", "Clip duration (seconds or HH:MM:SS.mmm)")
	cmd.Flags().StringVar(&flags.to, "to", "", "End time; mutually exclusive with --duration")
	cmd.Flags().StringVar(&flags.pattern, "pattern", "", "Image-sequence source: glob ('frames/*.png') or printf ('frame%04d.png')")
	cmd.Flags().BoolVar(&flags.optimize, "optimize", false, "Re-compress the result with gifsicle -O3")
	cmd.Flags().IntVar(&flags.lossy, "lossy", gifbuild.LossyUnset, "gifsicle lossy level (0-200); implies --optimize")
	cmd.Flags().BoolVar(&flags.noOverwrite, "no-overwrite", false, "Fail instead of replacing an existing output")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "Log the executed commands and tool output")

	return cmd
}

func runConvert(cmd *cobra.Command, ctx *commandContext, flags *convertFlags, args []string) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	if len(args) == 0 && strings.TrimSpace(flags.pattern) == "" {
		return fmt.Errorf("provide an input file or --pattern")
	}
	if len(args) > 1 && flags.output != "" {
		return fmt.Errorf("--output cannot be combined with multiple inputs")
	}
	if strings.TrimSpace(flags.pattern) != "" {
		if len(args) > 0 {
			return fmt.Errorf("--pattern cannot be combined with input files")
		}
		if flags.output == "" {
			return fmt.Errorf("--output is required with --pattern")
		}
	}

	if err := deps.MissingRequired(deps.Check(cfg)); err != nil {
		return err
	}

	logger, err := ctx.logger(flags.verbose)
	if err != nil {
		return err
	}

	opts := []convert.Option{}
	if cfg.History.Enabled {
		store, err := history.Open(cfg.HistoryDBPath())
		if err != nil {
			logger.Warn("conversion history unavailable", "error", err)
		} else {
			defer store.Close()
			opts = append(opts, convert.WithHistory(store))
		}
	}

	converter, err := convert.New(cfg, logger, opts...)
	if err != nil {
		return err
	}

	base := requestFromFlags(cmd, cfg, flags)
	out := cmd.OutOrStdout()

	if strings.TrimSpace(flags.pattern) != "" {
		req := base
		req.Pattern = flags.pattern
		req.Output = flags.output
		result, err := converter.Convert(cmd.Context(), req)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Wrote %s (%s)\n", result.Output, formatBytes(result.OutputBytes))
		return nil
	}

	failures := 0
	for _, input := range args {
		req := base
		req.Input = input
		req.Output = flags.output
		if req.Output == "" {
			req.Output = convert.DefaultOutputPath(input)
		}
		result, err := converter.Convert(cmd.Context(), req)
		if err != nil {
			failures++
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", input, err)
			continue
		}
		note := ""
		if result.OptimizeSkipped {
			note = " (optimization skipped: gifsicle not found)"
		}
		fmt.Fprintf(out, "Wrote %s (%s)%s\n", result.Output, formatBytes(result.OutputBytes), note)
	}
	if failures > 0 {
		return fmt.Errorf("%d of %d conversions failed", failures, len(args))
	}
	return nil
}

// requestFromFlags starts from the configured defaults and overlays only the
// flags the user actually set.
func requestFromFlags(cmd *cobra.Command, cfg *config.Config, flags *convertFlags) gifbuild.Request {
	req := gifbuild.Request{
		FPS:       cfg.Defaults.FPS,
		MaxWidth:  cfg.Defaults.MaxWidth,
		Colors:    cfg.Defaults.Colors,
		Dither:    gifbuild.Dither(cfg.Defaults.Dither),
		Loop:      cfg.Defaults.Loop,
		Lossy:     gifbuild.LossyUnset,
		Overwrite: !flags.noOverwrite,
	}

	set := cmd.Flags().Changed
	if set("fps") {
		req.FPS = flags.fps
	}
	if set("max-width") {
		req.MaxWidth = flags.maxWidth
	}
	if set("colors") {
		req.Colors = flags.colors
	}
	if set("dither") {
		req.Dither = gifbuild.Dither(strings.ToLower(strings.TrimSpace(flags.dither)))
	}
	if set("loop") {
		req.Loop = flags.loop
	}
	req.Start = flags.start
	req.Duration = flags.duration
	req.To = flags.to
	req.Optimize = flags.optimize
	if set("lossy") {
		req.Lossy = flags.lossy
		req.Optimize = true
	}
	return req
}

func formatBytes(size int64) string {
	switch {
	case size >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(size)/(1<<20))
	case size >= 1<<10:
		return fmt.Sprintf("%.1f KiB", float64(size)/(1<<10))
	default:
		return fmt.Sprintf("%d B", size)
	}
}
