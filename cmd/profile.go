package cmd

import (
	"github.com/spf13/cobra"

	"github.com/KaramelBytes/mbtiboard/internal/present"
)

var (
	profAsc    bool
	profFormat string
	profOutput string
)

var profileCmd = &cobra.Command{
	Use:   "profile <COUNTRY>",
	Short: "Show how one country's population splits across the 16 types",
	Example: `  mbtiboard profile Germany
  mbtiboard profile "United States" --asc --format json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		desc := cfg.SortDescending
		if cmd.Flags().Changed("asc") {
			desc = !profAsc
		}
		s, err := openSession()
		if err != nil {
			return err
		}
		entries, err := s.Profile(args[0], desc)
		if err != nil {
			return err
		}
		out, err := renderView(present.ProfileView(args[0], entries), profFormat)
		if err != nil {
			return err
		}
		return emit(cmd, profOutput, "profile view", out)
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.Flags().BoolVar(&profAsc, "asc", false, "sort types by ratio ascending (default from config sort_descending)")
	profileCmd.Flags().StringVarP(&profFormat, "format", "f", "text", "output format: text|markdown|json")
	profileCmd.Flags().StringVarP(&profOutput, "output", "o", "", "write the view to this file instead of stdout")
}
