package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-runner/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print, describe or check the runner config",
	Long: `Work with runner config files.

Config lookup order: --config, ~/.arcade/configs/runner.yaml,
./configs/runner.yaml, then the built-in defaults. A file only needs the
keys it changes.

Examples:
  runner config default > ~/.arcade/configs/runner.yaml
  runner config schema > runner.schema.json
  runner config validate ./my-runner.yaml`,
}

var configDefaultCmd = &cobra.Command{
	Use:   "default",
	Short: "Print the built-in config",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		_, _ = cmd.OutOrStdout().Write(config.DefaultYAML())
	},
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the config",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		schema, err := config.Schema()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(schema))
		return nil
	},
}

var configValidateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Load a config and check it",
	Long: `Load the config the way play does and report whether it is usable.
Without a path the --config flag and the usual lookup order apply.`,
	Args: cobra.MaximumNArgs(1),
	Run:  runConfigValidate,
}

func init() {
	configCmd.AddCommand(configDefaultCmd)
	configCmd.AddCommand(configSchemaCmd)
	configCmd.AddCommand(configValidateCmd)
}

func runConfigValidate(_ *cobra.Command, args []string) {
	path := flagConfig
	if len(args) > 0 {
		path = args[0]
	}

	cfg, err := config.LoadRunner(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if preset := config.ParsePreset(flagDifficulty); preset != "" {
		config.ApplyRunnerPreset(&cfg, preset)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	source := path
	if source == "" {
		source = "default lookup"
	}
	fmt.Printf("Config OK (%s): %d templates, %d obstacles, pool of %d\n",
		source, len(cfg.Templates), len(cfg.Obstacles.Set), cfg.Pool.Size)
}
