package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/mbtiboard/internal/dataset"
	"github.com/KaramelBytes/mbtiboard/internal/present"
	"github.com/KaramelBytes/mbtiboard/internal/utils"
)

var (
	previewRows   int
	previewFormat string
)

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List the 16 MBTI type labels",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, l := range dataset.Labels() {
			fmt.Fprintln(cmd.OutOrStdout(), l)
		}
		return nil
	},
}

var countriesCmd = &cobra.Command{
	Use:   "countries",
	Short: "List the countries in the dataset, sorted by name",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		for _, c := range s.Countries() {
			fmt.Fprintln(cmd.OutOrStdout(), c)
		}
		return nil
	},
}

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Show the first rows of the dataset",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		n := cfg.SampleRows
		if cmd.Flags().Changed("rows") {
			n = previewRows
		}
		if n <= 0 {
			return fmt.Errorf("--rows must be positive, got %d", n)
		}
		s, err := openSession()
		if err != nil {
			return err
		}
		rows := s.Preview(n)
		switch strings.ToLower(previewFormat) {
		case "", "text":
			headers := append([]string{dataset.CountryColumn}, dataset.Labels()...)
			cells := make([][]string, len(rows))
			for i, r := range rows {
				line := make([]string, 0, len(headers))
				line = append(line, r.Country)
				for _, v := range r.Ratios {
					line = append(line, strconv.FormatFloat(v, 'f', 4, 64))
				}
				cells[i] = line
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d of %d rows)\n", s.Source, len(rows), s.Table.Len())
			fmt.Fprintln(cmd.OutOrStdout(), present.RenderTable(headers, cells, present.DefaultStyles()))
			return nil
		case "json":
			out := make([]map[string]any, len(rows))
			for i, r := range rows {
				m := map[string]any{dataset.CountryColumn: r.Country}
				for _, t := range dataset.AllTypes() {
					m[t.String()] = r.Ratio(t)
				}
				out[i] = m
			}
			b, err := utils.PrettyJSON(out)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(b)
			return err
		default:
			return fmt.Errorf("unsupported --format: %s (use text|json)", previewFormat)
		}
	},
}

func init() {
	rootCmd.AddCommand(typesCmd)
	rootCmd.AddCommand(countriesCmd)
	rootCmd.AddCommand(previewCmd)
	previewCmd.Flags().IntVar(&previewRows, "rows", 0, "number of rows to show (default from config sample_rows)")
	previewCmd.Flags().StringVarP(&previewFormat, "format", "f", "text", "output format: text|json")
}
