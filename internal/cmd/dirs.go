package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/vscroll/internal/config"
	"github.com/spf13/cobra"
)

var dirsCmd = &cobra.Command{
	Use:   "dirs",
	Short: "Print the config files and data directory vscroll uses",
	Long: `Print the config files vscroll merges, lowest precedence first, and the
project data directory that holds logs and seeded stores.`,
	Example: `
# Print the config chain and data directory
vscroll dirs

# Print only the user config directory
vscroll dirs --config

# Print only the project data directory
vscroll dirs --data
  `,
	RunE: func(cmd *cobra.Command, args []string) error {
		configOnly, _ := cmd.Flags().GetBool("config")
		dataOnly, _ := cmd.Flags().GetBool("data")

		if configOnly && dataOnly {
			return fmt.Errorf("cannot specify both --config and --data flags")
		}

		debug, _ := cmd.Flags().GetBool("debug")
		cwd, err := resolveCwd(cmd)
		if err != nil {
			return err
		}
		cfg, err := config.Load(cwd, debug)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		switch {
		case configOnly:
			fmt.Fprintln(out, filepath.Dir(config.GlobalConfig()))
		case dataOnly:
			fmt.Fprintln(out, cfg.DataDir())
		default:
			printDirs(out, cwd, cfg)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dirsCmd)
	dirsCmd.Flags().Bool("config", false, "Print only the user config directory")
	dirsCmd.Flags().Bool("data", false, "Print only the project data directory")
}

// printDirs writes the config chain, marking files that exist, followed by
// the data directory and the log file inside it.
func printDirs(w io.Writer, cwd string, cfg *config.Config) {
	fmt.Fprintln(w, "Config files:")
	for _, path := range config.ConfigPaths(cwd) {
		mark := " "
		if _, err := os.Stat(path); err == nil {
			mark = "*"
		}
		fmt.Fprintf(w, "  %s %s\n", mark, path)
	}
	fmt.Fprintf(w, "Data directory: %s\n", cfg.DataDir())
	fmt.Fprintf(w, "Log file:       %s\n", cfg.LogFile())
}
