package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/vscroll/internal/config"
	"github.com/charmbracelet/vscroll/internal/log"
	"github.com/charmbracelet/vscroll/internal/scroller"
	"github.com/charmbracelet/vscroll/internal/source"
	"github.com/charmbracelet/vscroll/internal/tui"
	"github.com/charmbracelet/vscroll/internal/tui/list"
	"github.com/charmbracelet/vscroll/internal/tui/styles"
	"github.com/charmbracelet/vscroll/internal/version"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.PersistentFlags().StringP("cwd", "c", "", "Current working directory")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Debug")

	addSourceFlags(rootCmd)
	addListFlags(rootCmd)
}

var rootCmd = &cobra.Command{
	Use:   "vscroll",
	Short: "Scroll through very long lists in the terminal",
	Long: `vscroll renders a virtualized list: only the rows near the viewport are
kept on screen, the rest is represented by padding, and more records are
paged in from the source as you approach the end.`,
	Example: `
# Scroll an endless generated list
vscroll

# Follow a growing log file
vscroll --source file --path /var/log/app.log

# Browse a seeded SQLite database with three line rows
vscroll seed --source sqlite --path records.db --count 100000
vscroll --source sqlite --path records.db --row-height 3
  `,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setupConfig(cmd)
		if err != nil {
			return err
		}
		return runList(cmd.Context(), cfg)
	},
}

// Execute runs the root command.
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(version.Version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}

func addSourceFlags(cmd *cobra.Command) {
	kinds := make([]string, len(source.Kinds))
	for i, k := range source.Kinds {
		kinds[i] = string(k)
	}
	cmd.Flags().StringP("source", "s", "", "Record source ("+strings.Join(kinds, ", ")+")")
	cmd.Flags().StringP("path", "p", "", "File, database file or database directory of the source")
	cmd.Flags().Int64("limit", 0, "Stop the generated source after this many records")
}

func addListFlags(cmd *cobra.Command) {
	cmd.Flags().String("height", "", "List height in lines, or a percentage of the terminal (e.g. 100%)")
	cmd.Flags().Int("row-height", 0, "Lines per row")
	cmd.Flags().Int("page-size", 0, "Records loaded per page")
	cmd.Flags().Int("buffer", 0, "Rows kept rendered beyond each edge of the viewport")
	cmd.Flags().Int("threshold", 0, "Distance from the end, in lines, that triggers loading")
	cmd.Flags().Int("throttle", 0, "Scroll handling interval in milliseconds")
	cmd.Flags().String("theme", "", "Color theme (dark, light)")
	cmd.Flags().Bool("no-mouse", false, "Ignore the mouse wheel")
}

// setupConfig loads the configuration, applies flags that were set on the
// command line and starts logging.
func setupConfig(cmd *cobra.Command) (*config.Config, error) {
	debug, _ := cmd.Flags().GetBool("debug")
	cwd, err := resolveCwd(cmd)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Init(cwd, debug)
	if err != nil {
		return nil, err
	}
	if err := applyFlags(cmd, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Setup(cfg.LogFile(), cfg.Options.Debug)
	slog.Info("Starting vscroll", "version", version.Version, "cwd", cwd, "source", cfg.Source.Kind)
	return cfg, nil
}

func resolveCwd(cmd *cobra.Command) (string, error) {
	cwd, _ := cmd.Flags().GetString("cwd")
	if cwd != "" {
		if err := os.Chdir(cwd); err != nil {
			return "", fmt.Errorf("failed to change directory: %v", err)
		}
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current working directory: %v", err)
	}
	return cwd, nil
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("source") {
		kind, _ := flags.GetString("source")
		cfg.Source.Kind = strings.ToLower(kind)
	}
	if flags.Changed("path") {
		cfg.Source.Path, _ = flags.GetString("path")
	}
	if flags.Changed("limit") {
		cfg.Source.Limit, _ = flags.GetInt64("limit")
	}
	if flags.Changed("height") {
		cfg.List.Height, _ = flags.GetString("height")
	}
	ints := map[string]*int{
		"row-height": &cfg.List.RowHeight,
		"page-size":  &cfg.List.PageSize,
		"buffer":     &cfg.List.Buffer,
		"threshold":  &cfg.List.Threshold,
		"throttle":   &cfg.List.ThrottleMS,
	}
	for name, dst := range ints {
		if !flags.Changed(name) {
			continue
		}
		v, err := flags.GetInt(name)
		if err != nil {
			return err
		}
		*dst = v
	}
	if flags.Changed("theme") {
		cfg.TUI.Theme, _ = flags.GetString("theme")
	}
	if flags.Changed("no-mouse") {
		noMouse, _ := flags.GetBool("no-mouse")
		cfg.TUI.Mouse = !noMouse
	}
	return nil
}

func openSource(ctx context.Context, cfg *config.Config) (source.Source, error) {
	src, err := source.Open(ctx, source.Options{
		Kind:      source.Kind(cfg.Source.Kind),
		Path:      cfg.Source.Path,
		Limit:     cfg.Source.Limit,
		FromStart: cfg.Source.FromStart,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s source: %w", cfg.Source.Kind, err)
	}
	return src, nil
}

// terminalSize returns the size of the terminal the program will take
// over, falling back to 80x24 when stdout is not a terminal.
func terminalSize() (int, int) {
	w, h, err := term.GetSize(os.Stdout.Fd())
	if err != nil || w <= 0 || h <= 0 {
		return 80, 24
	}
	return w, h
}

// buildList wires a scroller over src into a pane of the given terminal
// size. One column goes to the scrollbar and one line to the status bar.
func buildList(ctx context.Context, cfg *config.Config, src source.Source, width, height int) (*list.Model[source.Record], error) {
	pane := list.NewPane(tui.MainPane)
	pane.SetSize(max(0, width-1), max(0, height-1))

	s, err := scroller.New(ctx, scroller.Config[source.Record]{
		Element:    scroller.Selector("#" + tui.MainPane),
		Height:     cfg.List.Height,
		RowHeight:  cfg.List.RowHeight,
		RenderItem: renderRecord(cfg.List.RowHeight),
		Loader:     src,
	},
		scroller.WithResolver(list.NewRegistry(pane)),
		scroller.WithPageSize(cfg.List.PageSize),
		scroller.WithBuffer(cfg.List.Buffer),
		scroller.WithThreshold(cfg.List.Threshold),
		scroller.WithLogger(slog.Default()),
	)
	if err != nil {
		return nil, err
	}

	opts := []list.ListOption{list.WithThrottle(cfg.Throttle())}
	if cfg.TUI.Mouse {
		opts = append(opts, list.WithEnableMouse())
	}
	return list.New(ctx, s, pane, opts...), nil
}

func runList(ctx context.Context, cfg *config.Config) error {
	styles.SetTheme(cfg.TUI.Theme)

	src, err := openSource(ctx, cfg)
	if err != nil {
		return err
	}
	defer src.Close()

	width, height := terminalSize()
	l, err := buildList(ctx, cfg, src, width, height)
	if err != nil {
		if scroller.IsConfigError(err) {
			return fmt.Errorf("invalid list settings: %w", err)
		}
		return err
	}

	title := cfg.Source.Kind
	if cfg.Source.Path != "" {
		title += " " + cfg.Source.Path
	}
	if err := tui.Run(ctx, tui.New(l, title)); err != nil {
		slog.Error("List stopped", "error", err)
		return err
	}
	return nil
}
