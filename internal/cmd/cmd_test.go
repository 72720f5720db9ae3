package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/vscroll/internal/config"
	"github.com/charmbracelet/vscroll/internal/scroller"
	"github.com/charmbracelet/vscroll/internal/source"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func TestRenderRecord(t *testing.T) {
	t.Parallel()

	r := source.Record{
		Seq:       42,
		Body:      "hello\nworld",
		CreatedAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	one := renderRecord(1)(r)
	require.Equal(t, "     42  hello world", one)

	three := strings.Split(renderRecord(3)(r), "\n")
	require.Len(t, three, 3)
	require.Equal(t, one, three[0])
	require.Contains(t, three[1], "2025-01-02 03:04:05")
	require.Empty(t, three[2])
}

func TestSeedAndExport(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tests := []struct {
		kind source.Kind
		path string
	}{
		{source.KindSQLite, "records.db"},
		{source.KindPebble, "records"},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			t.Parallel()
			path := filepath.Join(t.TempDir(), tt.path)

			var out bytes.Buffer
			require.NoError(t, runSeed(ctx, &out, tt.kind, path, 120))
			require.Contains(t, out.String(), "Seeded 120 records")

			src, err := source.Open(ctx, source.Options{Kind: tt.kind, Path: path})
			require.NoError(t, err)
			t.Cleanup(func() { src.Close() })

			records, err := collectRecords(ctx, src, 50)
			require.NoError(t, err)
			require.Len(t, records, 120)
			require.Equal(t, int64(119), records[119].Seq)
			require.True(t, strings.HasPrefix(records[0].Body, "row 0 "))

			var buf bytes.Buffer
			require.NoError(t, formatOutput(&buf, records, "json"))
			var decoded []source.Record
			require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
			require.Len(t, decoded, 120)
		})
	}
}

func TestSeedContinuesNumbering(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tests := []struct {
		kind source.Kind
		path string
	}{
		{source.KindSQLite, "records.db"},
		{source.KindPebble, "records"},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			t.Parallel()
			path := filepath.Join(t.TempDir(), tt.path)

			seeder, err := source.OpenSeeder(ctx, tt.kind, path)
			require.NoError(t, err)
			written, err := seedRecords(ctx, seeder, 40, 7)
			require.NoError(t, err)
			require.Equal(t, 40, written)
			require.Equal(t, int64(40), seeder.Count())
			require.NoError(t, seeder.Close())

			var out bytes.Buffer
			require.NoError(t, runSeed(ctx, &out, tt.kind, path, 25))
			require.Contains(t, out.String(), "Seeded 25 records")
			require.Contains(t, out.String(), "(65 total)")

			src, err := source.Open(ctx, source.Options{Kind: tt.kind, Path: path})
			require.NoError(t, err)
			t.Cleanup(func() { src.Close() })

			records, err := collectRecords(ctx, src, 50)
			require.NoError(t, err)
			require.Len(t, records, 65)
			for i, r := range records {
				require.True(t, strings.HasPrefix(r.Body, fmt.Sprintf("row %d ", i)), "record %d has body %q", i, r.Body)
			}
		})
	}
}

func TestPrintDirs(t *testing.T) {
	t.Parallel()

	cwd := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(cwd, "vscroll.json"), []byte("{}"), 0o644))
	cfg, err := config.Load(cwd, false)
	require.NoError(t, err)

	var out bytes.Buffer
	printDirs(&out, cwd, cfg)
	got := out.String()
	require.Contains(t, got, "Config files:\n")
	require.Contains(t, got, "  * "+filepath.Join(cwd, "vscroll.json")+"\n")
	require.Contains(t, got, "    "+filepath.Join(cwd, ".vscroll.json")+"\n")
	require.Contains(t, got, "Data directory: "+cfg.DataDir()+"\n")
	require.Contains(t, got, "Log file:       "+filepath.Join(cfg.DataDir(), "logs", "vscroll.log"))
}

func TestFormatOutput(t *testing.T) {
	t.Parallel()

	records := []source.Record{
		{Seq: 0, Body: "a|b"},
		{Seq: 1, Body: "second", CreatedAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)},
	}
	render := func(format string, records []source.Record) string {
		var buf bytes.Buffer
		require.NoError(t, formatOutput(&buf, records, format))
		return buf.String()
	}

	md := render("markdown", records)
	require.Contains(t, md, "# Records")
	require.Contains(t, md, `| 0 | - | a\|b |`)
	require.Contains(t, md, "| 1 | 2025-01-02 03:04:05 | second |")

	yml := render("yaml", records)
	require.Contains(t, yml, "seq: 1")
	require.Contains(t, yml, "body: second")

	text := render("TEXT", records)
	require.Equal(t, "      0  a|b\n      1  second\n", text)

	require.Contains(t, render("text", nil), "No records found.")
	require.Equal(t, "[]\n", render("json", nil))

	require.Error(t, formatOutput(io.Discard, records, "xml"))
	require.False(t, validFormat("xml"))
	require.True(t, validFormat("md"))
}

func TestSeedErrors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()
	require.Error(t, runSeed(ctx, io.Discard, source.KindSQLite, filepath.Join(dir, "x.db"), 0))
	require.Error(t, runSeed(ctx, io.Discard, source.KindSQLite, "", 10))
	require.Error(t, runSeed(ctx, io.Discard, source.KindGenerator, filepath.Join(dir, "x"), 10))
}

func TestApplyFlags(t *testing.T) {
	t.Parallel()

	cmd := &cobra.Command{Use: "test"}
	addSourceFlags(cmd)
	addListFlags(cmd)
	require.NoError(t, cmd.ParseFlags([]string{
		"--source", "SQLite",
		"--path", "records.db",
		"--page-size", "7",
		"--buffer", "0",
		"--height", "50%",
		"--no-mouse",
	}))

	cfg := config.Defaults()
	require.NoError(t, applyFlags(cmd, cfg))
	require.Equal(t, "sqlite", cfg.Source.Kind)
	require.Equal(t, "records.db", cfg.Source.Path)
	require.Equal(t, 7, cfg.List.PageSize)
	require.Zero(t, cfg.List.Buffer)
	require.Equal(t, "50%", cfg.List.Height)
	require.False(t, cfg.TUI.Mouse)
	require.Equal(t, 1, cfg.List.RowHeight, "unset flags keep the config value")
	require.Equal(t, 40, cfg.List.Threshold)
}

func TestBuildList(t *testing.T) {
	t.Parallel()

	cfg := config.Defaults()
	cfg.List.Buffer = 2
	cfg.List.RowHeight = 2

	src := source.NewGenerator(0)
	l, err := buildList(context.Background(), cfg, src, 41, 21)
	require.NoError(t, err)

	st := l.Stats()
	require.Equal(t, 50, st.Loaded)
	require.Zero(t, st.Top)
	// A 20 line viewport shows 10 rows of 2 lines, plus the buffer.
	require.Equal(t, 13, st.Materialized)
	require.Equal(t, 37, st.Bottom)

	cfg.List.RowHeight = 0
	_, err = buildList(context.Background(), cfg, src, 41, 21)
	require.Error(t, err)

	// A JSON config decodes "height": 1e30 as a float64.
	cfg.List.RowHeight = 1
	cfg.List.Height = 1e30
	_, err = buildList(context.Background(), cfg, src, 41, 21)
	require.True(t, scroller.IsConfigError(err), "got %v", err)
}

func TestParseValue(t *testing.T) {
	t.Parallel()

	require.Equal(t, float64(80), parseValue("80"))
	require.Equal(t, true, parseValue("true"))
	require.Equal(t, "sqlite", parseValue("sqlite"))
	require.Equal(t, "50%", parseValue("50%"))
	require.Equal(t, `{"a":1}`, parseValue(`{"a":1}`))
}
