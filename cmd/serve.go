package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/mbtiboard/internal/analysis"
	"github.com/KaramelBytes/mbtiboard/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard views as a JSON API",
	Long: `Loads the dataset once and serves it read-only:
  GET /api/types
  GET /api/countries
  GET /api/preview?limit=5
  GET /api/rank/:type?limit=10&order=desc
  GET /api/profile/:country?sort=desc
  GET /api/summary`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := cfg.ListenAddr
		if cmd.Flags().Changed("addr") && serveAddr != "" {
			addr = serveAddr
		}
		s, err := openSession()
		if err != nil {
			return err
		}
		opt := analysis.DefaultOptions()
		opt.SampleRows = cfg.SampleRows
		opt.SumTolerance = cfg.SumTolerance
		h := server.NewHandler(s, server.Options{DefaultTop: cfg.TopN, Summary: opt}, logger)
		e := server.New(h)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Serving %d countries from %s on %s\n", s.Table.Len(), s.Source, addr)
		if err := server.Run(ctx, e, addr); err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		_ = logger.Sync()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config listen_addr)")
}
