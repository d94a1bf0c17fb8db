package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/teranos/shapegen/am"
	"github.com/teranos/shapegen/logger"
	"github.com/teranos/shapegen/typegen"
)

// GenerateWatchCmd regenerates whenever an input file changes
var GenerateWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate whenever the service model changes",
	Long: `Generate once, then regenerate on every change to the service model,
the templates file, the license file or the project config.

Every regeneration is a full run: configuration is reloaded and the graph,
order and filter are rebuilt from scratch. A failed run is reported and
the previous output is left untouched.
Runs never overlap: changes saved during a run trigger one more run once
it finishes.

Stop with Ctrl-C.

Examples:
  shapegen generate watch
  shapegen generate watch --schema models/service-2.json --lang all`,
	RunE: runGenerateWatch,
}

func runGenerateWatch(cmd *cobra.Command, args []string) error {
	cfg, err := LoadConfig(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	regenerate := func() error {
		am.Reset()
		current, err := LoadConfig(cmd)
		if err != nil {
			return err
		}
		start := time.Now()
		progress := newProgress(cmd, false)
		results, err := generateAll(current, progress)
		if err != nil {
			return err
		}
		paths, err := writeResults(current.Generate.OutputDir, results, progress)
		if err != nil {
			return err
		}
		progress.EmitComplete(summarize(results, paths, time.Since(start)))
		return nil
	}

	if err := regenerate(); err != nil {
		logger.Errorw("Initial generation failed", logger.FieldError, err)
	}

	configPath, _ := cmd.Flags().GetString("config")
	watcher, err := typegen.NewSchemaWatcher(regenerate, watchedFiles(cfg, configPath)...)
	if err != nil {
		return err
	}
	defer watcher.Stop()

	pterm.Info.Printf("Watching %s (Ctrl-C to stop)\n", cfg.Generate.Schema)
	return watcher.Run(ctx)
}

// watchedFiles lists every input of a generation run. configPath is the
// --config file; without one the project config (if any) is watched.
func watchedFiles(cfg *am.Config, configPath string) []string {
	if configPath == "" {
		configPath = am.FindProjectConfig()
	}
	return []string{
		cfg.Generate.Schema,
		cfg.Generate.TemplatesFile,
		cfg.Generate.LicenseFile,
		configPath,
	}
}
