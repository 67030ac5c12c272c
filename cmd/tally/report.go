package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/registrar-tools/tally/internal/audit"
	"github.com/registrar-tools/tally/internal/config"
	"github.com/registrar-tools/tally/internal/groups"
	"github.com/registrar-tools/tally/internal/records"
	"github.com/registrar-tools/tally/internal/render"
	"github.com/registrar-tools/tally/pkg/archive"
	"github.com/registrar-tools/tally/pkg/database"
)

var (
	reportSeed   uint64
	reportDryRun bool
	reportOutDir string
)

var reportCmd = &cobra.Command{
	Use:   "report <collection>",
	Short: "Sample a collection and render its audit report",
	Args:  cobra.ExactArgs(1),
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().Uint64Var(&reportSeed, "seed", 0, "fixed randomness seed for reproducible sampling")
	reportCmd.Flags().BoolVar(&reportDryRun, "dry-run", false, "render the report but skip group persistence")
	reportCmd.Flags().StringVarP(&reportOutDir, "out", "o", ".", "directory for the rendered report")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := newLogger()
	ctx := cmd.Context()

	db, err := database.Connect(ctx, &cfg.Database, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	rt := &audit.Runtime{
		Config:   cfg,
		Records:  records.New(db, logger, cfg.Audit.DetailBatchSize),
		Renderer: render.NewPDF(cfg.Report, logger),
		Groups:   groups.New(db, logger),
		Logger:   logger,
	}

	if cfg.Archive.Enabled {
		store, err := archive.New(&cfg.Archive, logger)
		if err != nil {
			return err
		}
		rt.Archive = store
	}

	req := audit.Request{
		Collection: args[0],
		DryRun:     reportDryRun,
		OutputDir:  reportOutDir,
	}
	if cmd.Flags().Changed("seed") {
		seed := reportSeed
		req.Seed = &seed
	}

	result, err := rt.Run(ctx, req)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), result.ArtifactPath)
	return nil
}
