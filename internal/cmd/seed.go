package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/charmbracelet/vscroll/internal/source"
	"github.com/spf13/cobra"
)

// seedBatch bounds how many records are generated and written at once.
const seedBatch = 10_000

func init() {
	rootCmd.AddCommand(seedCmd)
	addSourceFlags(seedCmd)
	seedCmd.Flags().IntP("count", "n", 1000, "Number of records to add")
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate a SQLite or Pebble store with generated records",
	Long: `Append generated records to a SQLite database file or a Pebble database
directory so it can be browsed with --source sqlite or --source pebble.
Seeding an existing store appends after the last record.`,
	Example: `
# Seed 100k rows into a SQLite file
vscroll seed --source sqlite --path records.db --count 100000

# Seed a Pebble directory
vscroll seed -s pebble -p records -n 5000
  `,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setupConfig(cmd)
		if err != nil {
			return err
		}
		count, _ := cmd.Flags().GetInt("count")
		return runSeed(cmd.Context(), cmd.OutOrStdout(), source.Kind(cfg.Source.Kind), cfg.Source.Path, count)
	},
}

func runSeed(ctx context.Context, w io.Writer, kind source.Kind, path string, count int) error {
	if count <= 0 {
		return fmt.Errorf("count must be positive, got %d", count)
	}
	if path == "" {
		return fmt.Errorf("seeding requires --path")
	}

	seeder, err := source.OpenSeeder(ctx, kind, path)
	if err != nil {
		return err
	}
	defer seeder.Close()

	written, err := seedRecords(ctx, seeder, count, seedBatch)
	if err != nil {
		return fmt.Errorf("failed to seed %s: %w", path, err)
	}
	fmt.Fprintf(w, "Seeded %d records into %s store %s (%d total)\n", written, kind, path, seeder.Count())
	return nil
}

// seedRecords appends count generated records in batches. Numbering
// continues from the records already stored.
func seedRecords(ctx context.Context, seeder source.Seeder, count, batch int) (int, error) {
	gen := source.NewGeneratorFrom(seeder.Count(), int64(count))
	written := 0
	for written < count {
		records, err := gen.LoadMore(ctx, min(batch, count-written))
		if err != nil {
			return written, err
		}
		bodies := make([]string, len(records))
		for i, r := range records {
			bodies[i] = r.Body
		}
		if err := seeder.Append(ctx, bodies); err != nil {
			return written, err
		}
		written += len(records)
		slog.Debug("Seeded batch", "written", written, "total", seeder.Count())
	}
	return written, nil
}
