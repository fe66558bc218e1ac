package cli

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/roach88/kxo/internal/config"
)

// NewConfigCommand creates the config command.
func NewConfigCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Load the config file (or defaults), validate it against the schema and
print the result as YAML, or as JSON with --format json.

Example:
  kxo config
  kxo config --config ./tournament.yaml --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfig(rootOpts, cmd)
		},
	}
	return cmd
}

func runConfig(opts *RootOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:  opts.Format,
		Writer:  cmd.OutOrStdout(),
		Verbose: opts.Verbose,
	}

	cfg, err := config.LoadOptional(opts.Config)
	if err != nil {
		_ = formatter.Error(ErrCodeConfig, "invalid config", err.Error())
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}

	if opts.Format == "json" {
		return formatter.Success(cfg)
	}

	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return WrapExitError(ExitFailure, "failed to encode config", err)
	}
	return enc.Close()
}
