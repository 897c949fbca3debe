package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/mbtiboard/internal/analysis"
	"github.com/KaramelBytes/mbtiboard/internal/utils"
)

var (
	sumOutput     string
	sumFormat     string
	sumSampleRows int
	sumOutliers   bool
	sumOutlierThr float64
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Summarize the dataset: per-type statistics, outliers, and suspicious rows",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opt := analysis.DefaultOptions()
		opt.SampleRows = cfg.SampleRows
		opt.SumTolerance = cfg.SumTolerance
		if sumSampleRows > 0 {
			opt.SampleRows = sumSampleRows
		}
		if cmd.Flags().Changed("outliers") {
			opt.Outliers = sumOutliers
		}
		if sumOutlierThr > 0 {
			opt.OutlierThreshold = sumOutlierThr
		}
		s, err := openSession()
		if err != nil {
			return err
		}
		rep := s.Summary(opt)
		var out string
		switch strings.ToLower(sumFormat) {
		case "", "markdown", "md":
			out = rep.Markdown()
		case "json":
			b, err := utils.PrettyJSON(rep)
			if err != nil {
				return err
			}
			out = string(b)
		default:
			return fmt.Errorf("unsupported --format: %s (use markdown|json)", sumFormat)
		}
		return emit(cmd, sumOutput, "summary", out)
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	summaryCmd.Flags().StringVarP(&sumOutput, "output", "o", "", "optional path to write the summary")
	summaryCmd.Flags().StringVarP(&sumFormat, "format", "f", "markdown", "output format: markdown|json")
	summaryCmd.Flags().IntVar(&sumSampleRows, "sample-rows", 0, "number of sample rows to include (default from config sample_rows)")
	summaryCmd.Flags().BoolVar(&sumOutliers, "outliers", true, "compute robust outlier counts (MAD)")
	summaryCmd.Flags().Float64Var(&sumOutlierThr, "outlier-threshold", 3.5, "robust |z| threshold for outliers (MAD-based)")
}
