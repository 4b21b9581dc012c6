package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"gifify/internal/media/ffprobe"
)

func newProbeCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "probe <input>",
		Short: "Inspect a source file with ffprobe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			result, err := ffprobe.Inspect(cmd.Context(), cfg.Tools.FFprobe, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				return writeProbeJSON(out, result)
			}

			rows := [][]string{
				{"File", result.Format.Filename},
				{"Container", result.Format.FormatName},
				{"Duration", formatSeconds(result.DurationSeconds())},
				{"Size", formatBytes(result.SizeBytes())},
			}
			if stream, ok := result.VideoStream(); ok {
				rows = append(rows,
					[]string{"Video codec", stream.CodecName},
					[]string{"Dimensions", fmt.Sprintf("%dx%d", stream.Width, stream.Height)},
					[]string{"Frame rate", fmt.Sprintf("%.3f fps", result.FrameRate())},
				)
			} else {
				rows = append(rows, []string{"Video codec", "none"})
			}

			fmt.Fprintln(out, renderTable([]string{"Field", "Value"}, rows, []columnAlignment{alignLeft, alignLeft}))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the raw ffprobe result as JSON")
	return cmd
}

func writeProbeJSON(out io.Writer, result ffprobe.Result) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func formatSeconds(seconds float64) string {
	if seconds <= 0 {
		return "unknown"
	}
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.3f", seconds), "0"), ".") + "s"
}
