package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/registrar-tools/tally/internal/config"
	"github.com/registrar-tools/tally/internal/duplicates"
	"github.com/registrar-tools/tally/internal/records"
	"github.com/registrar-tools/tally/pkg/database"
)

var (
	dupThreshold int
	dupFields    []string
)

var duplicatesCmd = &cobra.Command{
	Use:   "duplicates <collection>",
	Short: "Find records sharing a field combination",
	Args:  cobra.ExactArgs(1),
	RunE:  runDuplicates,
}

func init() {
	duplicatesCmd.Flags().IntVarP(&dupThreshold, "threshold", "t", 2, "minimum occurrence count to report")
	duplicatesCmd.Flags().StringSliceVarP(&dupFields, "fields", "f", nil, "fields forming the duplicate key (default CodePrefix,CodeNumber,CodeSuffix)")
	rootCmd.AddCommand(duplicatesCmd)
}

func runDuplicates(cmd *cobra.Command, args []string) error {
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

	collection := args[0]
	if err := records.New(db, logger, 0).ValidateCollection(ctx, collection); err != nil {
		return err
	}

	fields := dupFields
	if len(fields) == 0 {
		fields = duplicates.DefaultFields
	}

	entries, err := duplicates.New(db, logger).Find(ctx, collection, fields, dupThreshold)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tCount\n", strings.Join(fields, "\t"))
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%d\n", strings.Join(e.Values, "\t"), e.Count)
	}
	return w.Flush()
}
