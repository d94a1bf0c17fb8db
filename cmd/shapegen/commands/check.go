package commands

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/teranos/shapegen/errors"
	"github.com/teranos/shapegen/typegen"
)

// GenerateCheckCmd checks if generated files are up to date
var GenerateCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check if generated files are up to date",
	Long: `Check if the generated files match the current service model.

This command generates every configured language in memory and compares
the output with the files in the output directory. Nothing is written.

Exit codes:
  0 - Generated files are up to date
  1 - Generated files are missing or out of date (diff shown), or an error occurred

Examples:
  shapegen generate check                    # Check configured output
  shapegen generate check --lang all         # Check every language`,
	RunE: runGenerateCheck,
}

func runGenerateCheck(cmd *cobra.Command, args []string) error {
	cfg, err := LoadConfig(cmd)
	if err != nil {
		return err
	}

	results, err := generateAll(cfg, typegen.NopEmitter{})
	if err != nil {
		return err
	}

	stale, err := checkResults(cmd.OutOrStdout(), cfg.Generate.OutputDir, results)
	if err != nil {
		return err
	}
	if stale > 0 {
		return errors.WithHint(
			errors.Newf("%d generated file(s) out of date", stale),
			"run 'shapegen generate' to update")
	}
	return nil
}

// checkResults compares each result with its file in dir, prints a report
// to w and returns how many files are missing or differ.
func checkResults(w io.Writer, dir string, results []*typegen.Result) (int, error) {
	stale := 0
	for _, res := range results {
		path := filepath.Join(dir, res.FileName)
		cmp, err := typegen.Compare(path, res.Output)
		if err != nil {
			return 0, err
		}

		switch {
		case cmp.UpToDate:
			fmt.Fprintf(w, "%s %s is up to date\n", pterm.Green("✓"), path)
		case cmp.Missing:
			stale++
			fmt.Fprintf(w, "%s %s is missing (%d lines would be written)\n", pterm.Red("✗"), path, cmp.Added)
		default:
			stale++
			fmt.Fprintf(w, "%s %s is out of date (+%d -%d)\n", pterm.Red("✗"), path, cmp.Added, cmp.Removed)
			fmt.Fprint(w, cmp.Diff)
		}
	}
	return stale, nil
}
