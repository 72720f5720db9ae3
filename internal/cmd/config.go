package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/vscroll/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change the configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long:  `Print the configuration after merging config files and VSCROLL_* environment variables.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		debug, _ := cmd.Flags().GetBool("debug")
		cwd, err := resolveCwd(cmd)
		if err != nil {
			return err
		}
		cfg, err := config.Load(cwd, debug)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), cfg.String())
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Persist a configuration field",
	Long: `Write a dotted key to the user config file. Values that parse as JSON
(numbers, booleans) are stored as such, anything else as a string.`,
	Example: `
# Load bigger pages
vscroll config set list.page_size 200

# Default to a SQLite store
vscroll config set source.kind sqlite
vscroll config set source.path ~/records.db
  `,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], parseValue(args[1])
		if err := config.SetGlobalField(key, value); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s to %v in %s\n", key, value, config.GlobalConfigData())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

func parseValue(raw string) any {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err == nil {
		switch v.(type) {
		case float64, bool:
			return v
		}
	}
	return raw
}
