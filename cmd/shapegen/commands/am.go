package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"github.com/teranos/shapegen/am"
	"github.com/teranos/shapegen/errors"
	"gopkg.in/yaml.v3"
)

// AmCmd represents the am (configuration) command
var AmCmd = &cobra.Command{
	Use:   "am",
	Short: "Manage shapegen configuration",
	Long: `am - Manage shapegen configuration ("I am")

Display and manage shapegen configuration settings.

Configuration sources (in order of precedence):
1. Command line flags
2. Environment variables (SHAPEGEN_* prefix, e.g. SHAPEGEN_GENERATE_LANG)
3. Project config (./shapegen.toml, searched upwards)
4. User config (~/.shapegen/config.toml)
5. System config (/etc/shapegen/config.toml)
6. Default values

--config reads one file on top of the defaults and skips 2-5.

Examples:
  shapegen am show                    # Show current configuration
  shapegen am show --format json      # Show configuration in JSON format
  shapegen am show --sources          # Show where each value comes from
  shapegen am get generate.lang       # Get specific config value
  shapegen am validate                # Validate current configuration
  shapegen am init                    # Write ./shapegen.toml with current values`,
}

var amShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  "Display the effective shapegen configuration from all sources",
	RunE:  runAmShow,
}

var amGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a specific configuration value",
	Long:  "Get a specific configuration value using dot notation (e.g., generate.lang, log.json)",
	Args:  cobra.ExactArgs(1),
	RunE:  runAmGet,
}

var amValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate current configuration",
	Long:  "Validate that the effective shapegen configuration is usable for generation",
	RunE:  runAmValidate,
}

var amInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a project config file",
	Long: `Write ./shapegen.toml containing the effective configuration.

An existing file is left alone unless --force is given; with --force the
old file is kept as shapegen.toml.back1 (up to three backups rotate).`,
	RunE: runAmInit,
}

func init() {
	amShowCmd.Flags().String("format", "toml", "Output format: toml, json, yaml")
	amShowCmd.Flags().Bool("sources", false, "List every key with the source that set it")
	amInitCmd.Flags().Bool("force", false, "Replace an existing shapegen.toml")

	AmCmd.AddCommand(amShowCmd)
	AmCmd.AddCommand(amGetCmd)
	AmCmd.AddCommand(amValidateCmd)
	AmCmd.AddCommand(amInitCmd)
}

func runAmShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadUnvalidated(cmd)
	if err != nil {
		return err
	}

	if sources, _ := cmd.Flags().GetBool("sources"); sources {
		writeSources(cmd.OutOrStdout(), am.GetConfigIntrospection())
		return nil
	}

	format, _ := cmd.Flags().GetString("format")
	return writeConfig(cmd.OutOrStdout(), cfg, format)
}

// loadUnvalidated loads the configuration the way LoadConfig does, minus
// flag overrides and validation, so broken settings can still be shown.
func loadUnvalidated(cmd *cobra.Command) (*am.Config, error) {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		return am.LoadFromFile(path)
	}
	cfg, err := am.Load()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load config")
	}
	return cfg, nil
}

// writeConfig marshals cfg to w in the given format
func writeConfig(w io.Writer, cfg *am.Config, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return errors.Wrap(err, "failed to marshal config to JSON")
		}
		fmt.Fprintln(w, string(data))

	case "yaml":
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return errors.Wrap(err, "failed to marshal config to YAML")
		}
		fmt.Fprintf(w, "# shapegen configuration\n%s", string(data))

	case "toml":
		data, err := toml.Marshal(cfg)
		if err != nil {
			return errors.Wrap(err, "failed to marshal config to TOML")
		}
		fmt.Fprintf(w, "# shapegen configuration\n%s", string(data))

	default:
		return errors.Newf("unsupported format: %s (supported: toml, json, yaml)", format)
	}
	return nil
}

func writeSources(w io.Writer, intro *am.ConfigIntrospection) {
	for _, s := range intro.Settings {
		value := fmt.Sprintf("%v", s.Value)
		// Truncate long values
		if len(value) > 50 {
			value = value[:47] + "..."
		}
		fmt.Fprintf(w, "%-24s = %-30s [%s] %s\n", s.Key, value, s.Source, s.SourcePath)
	}
}

func runAmGet(cmd *cobra.Command, args []string) error {
	key := args[0]

	v := am.GetViper()
	if !v.IsSet(key) {
		return errors.Newf("configuration key %q not found", key)
	}

	fmt.Fprintln(cmd.OutOrStdout(), v.Get(key))
	return nil
}

func runAmValidate(cmd *cobra.Command, args []string) error {
	if _, err := LoadConfig(cmd); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "✓ Configuration is valid")
	return nil
}

func runAmInit(cmd *cobra.Command, args []string) error {
	cfg, err := loadUnvalidated(cmd)
	if err != nil {
		return err
	}
	force, _ := cmd.Flags().GetBool("force")

	dir, err := os.Getwd()
	if err != nil {
		return errors.Wrap(err, "failed to get working directory")
	}

	path, err := am.WriteProjectConfig(dir, cfg, force)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s\n", path)
	return nil
}
