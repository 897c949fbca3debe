package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/mbtiboard/internal/present"
	"github.com/KaramelBytes/mbtiboard/internal/utils"
)

// renderView formats a view as text (styled terminal), markdown, or json.
func renderView(v present.View, format string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text":
		return present.Terminal(v, cfg.ChartWidth, present.DefaultStyles()), nil
	case "markdown", "md":
		return present.Markdown(v), nil
	case "json":
		b, err := utils.PrettyJSON(v)
		if err != nil {
			return "", err
		}
		return string(b), nil
	default:
		return "", fmt.Errorf("unsupported --format: %s (use text|markdown|json)", format)
	}
}

// emit writes content to outPath when set, otherwise to the command's stdout.
func emit(cmd *cobra.Command, outPath, what, content string) error {
	if outPath == "" {
		out := cmd.OutOrStdout()
		fmt.Fprint(out, content)
		if !strings.HasSuffix(content, "\n") {
			fmt.Fprintln(out)
		}
		return nil
	}
	if err := utils.SafeWriteFile(outPath, []byte(content)); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s to %s\n", what, outPath)
	return nil
}
