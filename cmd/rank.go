package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/mbtiboard/internal/dataset"
	"github.com/KaramelBytes/mbtiboard/internal/present"
	"github.com/KaramelBytes/mbtiboard/internal/query"
)

var (
	rankTop    int
	rankOrder  string
	rankFormat string
	rankOutput string
)

var rankCmd = &cobra.Command{
	Use:   "rank <TYPE>",
	Short: "Show the countries with the highest ratio for one MBTI type",
	Example: `  mbtiboard rank INFJ
  mbtiboard rank ENTP --top 5 --order asc
  mbtiboard rank ISTJ --format markdown -o istj.md`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		typ, err := dataset.ParseType(args[0])
		if err != nil {
			return fmt.Errorf("%w (valid types: see 'mbtiboard types')", err)
		}
		order, err := query.ParseOrder(rankOrder)
		if err != nil {
			return err
		}
		n := cfg.TopN
		if cmd.Flags().Changed("top") {
			n = rankTop
		}
		s, err := openSession()
		if err != nil {
			return err
		}
		entries, err := s.Rank(typ.String(), n, order)
		if err != nil {
			return err
		}
		out, err := renderView(present.RankView(typ, entries), rankFormat)
		if err != nil {
			return err
		}
		return emit(cmd, rankOutput, "rank view", out)
	},
}

func init() {
	rootCmd.AddCommand(rankCmd)
	rankCmd.Flags().IntVarP(&rankTop, "top", "n", 0, "number of countries to show (default from config top_n)")
	rankCmd.Flags().StringVar(&rankOrder, "order", "desc", "table order of the selected countries: desc|asc")
	rankCmd.Flags().StringVarP(&rankFormat, "format", "f", "text", "output format: text|markdown|json")
	rankCmd.Flags().StringVarP(&rankOutput, "output", "o", "", "write the view to this file instead of stdout")
}
