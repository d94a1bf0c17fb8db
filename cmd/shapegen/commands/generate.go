package commands

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/teranos/shapegen/am"
	"github.com/teranos/shapegen/errors"
	"github.com/teranos/shapegen/logger"
	"github.com/teranos/shapegen/typegen"
)

// GenerateCmd represents the generate command
var GenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate classes from a service model",
	Long: `Generate one class per structure shape of a service model.

Shapes are emitted in dependency order: every class appears after the
classes it references. Shapes used as an operation's input or output are
skipped. List and map shapes never get a class of their own; members that
reference them are typed by their element shapes.

Output goes to <output_dir>/<file_name>.<ext>. Every language is generated
in memory first; nothing is written when any step fails.

Examples:
  shapegen generate                                  # Use configured defaults
  shapegen generate --schema service-2.json          # Another model
  shapegen generate --lang all --output build/       # Python, Markdown and Rust
  shapegen generate --stdout --lang markdown         # Print instead of writing`,
	RunE: runGenerate,
}

func init() {
	addGenerateFlags(GenerateCmd, true)
	GenerateCmd.Flags().Bool("stdout", false, "Print generated output instead of writing files")

	GenerateCmd.AddCommand(GenerateCheckCmd)
	GenerateCmd.AddCommand(GenerateWatchCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := LoadConfig(cmd)
	if err != nil {
		return err
	}
	toStdout, _ := cmd.Flags().GetBool("stdout")

	progress := newProgress(cmd, toStdout)
	start := time.Now()

	results, err := generateAll(cfg, progress)
	if err != nil {
		return err
	}

	if toStdout {
		for _, res := range results {
			fmt.Fprint(cmd.OutOrStdout(), res.Output)
		}
		return nil
	}

	paths, err := writeResults(cfg.Generate.OutputDir, results, progress)
	if err != nil {
		return err
	}

	progress.EmitComplete(summarize(results, paths, time.Since(start)))
	return nil
}

// newProgress picks the emitter for cmd's output mode. quiet keeps stdout
// free for generated text.
func newProgress(cmd *cobra.Command, quiet bool) typegen.ProgressEmitter {
	if logger.JSONOutput {
		return typegen.NewJSONEmitter(cmd.ErrOrStderr())
	}
	if quiet {
		return typegen.NopEmitter{}
	}
	verbosity, _ := cmd.Flags().GetCount("verbose")
	return typegen.NewCLIEmitter(verbosity)
}

// generateAll runs the pipeline once per configured language. The model is
// shared; each run builds its own graph, order and filter.
func generateAll(cfg *am.Config, progress typegen.ProgressEmitter) ([]*typegen.Result, error) {
	model, err := loadModel(cfg)
	if err != nil {
		return nil, err
	}

	var results []*typegen.Result
	for _, lang := range am.Languages(cfg.Generate.Lang) {
		gen, err := buildGenerator(lang, cfg.Generate)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to set up %s generator", lang)
		}

		res, err := typegen.Generate(model, gen, typegen.Options{
			AllowCycles: cfg.Generate.AllowCycles,
			FileBase:    cfg.Generate.FileName,
			Progress:    progress,
		})
		if err != nil {
			return nil, errors.Wrapf(err, "failed to generate %s", lang)
		}
		results = append(results, res)
	}
	return results, nil
}

// writeResults writes every result into dir and returns the written paths.
// Every file is staged before any is replaced.
func writeResults(dir string, results []*typegen.Result, progress typegen.ProgressEmitter) ([]string, error) {
	progress.EmitStage(typegen.StageWrite, fmt.Sprintf("writing to %s", dir))

	files := make([]typegen.OutputFile, 0, len(results))
	for _, res := range results {
		files = append(files, typegen.OutputFile{Name: res.FileName, Content: res.Output})
	}

	paths, err := typegen.WriteFiles(dir, files)
	if err != nil {
		progress.EmitError(typegen.StageWrite, err)
		return nil, err
	}

	for i, res := range results {
		logger.Infow("Wrote generated file",
			logger.FieldFile, paths[i],
			logger.FieldLang, res.Language,
			logger.FieldCount, res.ClassCount())
	}
	return paths, nil
}

func summarize(results []*typegen.Result, paths []string, elapsed time.Duration) map[string]interface{} {
	classes := 0
	for _, res := range results {
		classes += res.ClassCount()
	}
	summary := map[string]interface{}{
		"classes":     classes,
		"duration_ms": elapsed.Milliseconds(),
	}
	if len(results) > 0 {
		summary["shapes"] = len(results[0].Order)
		summary["excluded"] = len(results[0].Excluded)
	}
	for i, path := range paths {
		summary["file_"+results[i].Language] = filepath.ToSlash(path)
	}
	return summary
}
