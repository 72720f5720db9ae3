package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/vscroll/internal/scroller"
	"github.com/charmbracelet/vscroll/internal/source"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export records",
	Long: `Page through a source the same way the list does and print every record.
The generated source needs --limit, and the file source is not supported
since it never ends.`,
	Example: `
# Export a SQLite store as JSON
vscroll export --source sqlite --path records.db --format json

# Print 20 generated rows as a markdown table
vscroll export --limit 20 -f markdown
  `,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setupConfig(cmd)
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("format")
		if !validFormat(format) {
			return fmt.Errorf("unsupported format: %s", format)
		}
		switch source.Kind(cfg.Source.Kind) {
		case source.KindFile:
			return fmt.Errorf("export does not support the file source")
		case source.KindGenerator:
			if cfg.Source.Limit == 0 {
				return fmt.Errorf("exporting generated records requires --limit")
			}
		}

		ctx := cmd.Context()
		src, err := openSource(ctx, cfg)
		if err != nil {
			return err
		}
		defer src.Close()

		records, err := collectRecords(ctx, src, cfg.List.PageSize)
		if err != nil {
			return err
		}
		return formatOutput(cmd.OutOrStdout(), records, format)
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	addSourceFlags(exportCmd)
	exportCmd.Flags().StringP("format", "f", "text", "Output format (text, json, yaml, markdown)")
}

// collectRecords loads pages until the loader returns a short page.
func collectRecords(ctx context.Context, loader scroller.Loader[source.Record], pageSize int) ([]source.Record, error) {
	if pageSize <= 0 {
		pageSize = scroller.DefaultPageSize
	}
	var records []source.Record
	for {
		page, err := loader.LoadMore(ctx, pageSize)
		if err != nil {
			return nil, fmt.Errorf("failed to load records: %w", err)
		}
		records = append(records, page...)
		if len(page) < pageSize {
			return records, nil
		}
	}
}

func validFormat(format string) bool {
	switch strings.ToLower(format) {
	case "json", "yaml", "markdown", "md", "text":
		return true
	}
	return false
}

func formatOutput(w io.Writer, records []source.Record, format string) error {
	switch strings.ToLower(format) {
	case "json":
		return formatJSON(w, records)
	case "yaml":
		return formatYAML(w, records)
	case "markdown", "md":
		return formatMarkdown(w, records)
	case "text":
		return formatText(w, records)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func formatJSON(w io.Writer, records []source.Record) error {
	if records == nil {
		records = []source.Record{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}

func formatYAML(w io.Writer, records []source.Record) error {
	data, err := yaml.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	fmt.Fprint(w, string(data))
	return nil
}

func formatMarkdown(w io.Writer, records []source.Record) error {
	fmt.Fprintln(w, "# Records")
	fmt.Fprintln(w)

	if len(records) == 0 {
		fmt.Fprintln(w, "No records found.")
		return nil
	}

	fmt.Fprintln(w, "| Seq | Created | Body |")
	fmt.Fprintln(w, "| ---: | --- | --- |")
	for _, r := range records {
		body := strings.ReplaceAll(r.Body, "|", `\|`)
		fmt.Fprintf(w, "| %d | %s | %s |\n", r.Seq, formatTimestamp(r), body)
	}
	return nil
}

func formatText(w io.Writer, records []source.Record) error {
	if len(records) == 0 {
		fmt.Fprintln(w, "No records found.")
		return nil
	}

	render := renderRecord(1)
	for _, r := range records {
		fmt.Fprintln(w, render(r))
	}
	return nil
}

func formatTimestamp(r source.Record) string {
	if r.CreatedAt.IsZero() {
		return "-"
	}
	return r.CreatedAt.Format("2006-01-02 15:04:05")
}
