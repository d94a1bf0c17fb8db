package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/teranos/shapegen/cmd/shapegen/commands"
	"github.com/teranos/shapegen/errors"
	"github.com/teranos/shapegen/logger"
)

var rootCmd = &cobra.Command{
	Use:   "shapegen",
	Short: "shapegen - generate classes from service shape models",
	Long: `shapegen - generate classes from service shape models.

shapegen reads a service model (the "shapes" and "operations" tables of a
JSON or YAML document), orders every shape after the shapes it depends on,
and emits one class per structure shape that is not an operation's input
or output.

Available commands:
  generate - Generate shapes (check, watch)
  graph    - Inspect the shape dependency graph
  am       - Manage shapegen configuration ("I am")
  version  - Show version information

Examples:
  shapegen generate                          # Generate with the configured defaults
  shapegen generate --lang all -o out/       # Every language into out/
  shapegen generate check                    # Fail when generated files are stale
  shapegen graph --shape Tag                 # Dependency tree of one shape
  shapegen am show --sources                 # Effective configuration`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		jsonLogs, _ := cmd.Flags().GetBool("log-json")

		// Config can turn JSON logs on too; a broken config is reported by the command itself
		if !jsonLogs && !cmd.Flags().Changed("log-json") {
			if cfg, err := commands.LoadConfig(cmd); err == nil {
				jsonLogs = cfg.Log.JSON
			}
		}

		if err := logger.Initialize(jsonLogs, verbosity); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger.Debugw("Logger initialized", "verbosity", logger.LevelName(verbosity))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Cleanup()
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	rootCmd.PersistentFlags().String("config", "", "Read configuration from this file only (skips the config cascade)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Structured JSON logs and progress on stderr")

	rootCmd.AddCommand(commands.GenerateCmd)
	rootCmd.AddCommand(commands.GraphCmd)
	rootCmd.AddCommand(commands.AmCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		for _, hint := range errors.GetAllHints(err) {
			fmt.Fprintf(os.Stderr, "Hint: %s\n", hint)
		}
		os.Exit(1)
	}
}
