// Package main provides the CLI entrypoint for smdiagram.
//
// smdiagram reads FHIR StructureMap documents (JSON or YAML) and:
//   - renders data-flow, overview and rule outline diagrams (render)
//   - reports validation and flow analysis diagnostics (check)
//   - prints the rule tree of one map (tree)
package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"smdiagram/internal/config"
	"smdiagram/internal/definition"
)

// app carries what every subcommand needs once the root command has set up.
type app struct {
	cfg      *config.Config
	log      zerolog.Logger
	resolver definition.Resolver
}

func newRootCmd() *cobra.Command {
	a := &app{log: zerolog.Nop()}

	root := &cobra.Command{
		Use:               "smdiagram",
		Short:             "Render diagrams of FHIR StructureMaps",
		Long:              `smdiagram renders PlantUML data-flow and overview diagrams of FHIR StructureMap documents`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().String("config", "", "configuration file (default ./"+config.DefaultFile+" when present)")
	root.PersistentFlags().String("env-file", config.DefaultEnvFile, "dotenv file with SMDIAGRAM_* variables")
	root.PersistentFlags().String("definitions", "", "directory of StructureDefinition documents")
	root.PersistentFlags().String("log-level", "", "log level (trace|debug|info|warn|error|disabled)")
	root.PersistentFlags().Bool("core-fallback", true, "synthesize base FHIR types missing from --definitions")

	root.AddCommand(newRenderCmd(a), newCheckCmd(a), newTreeCmd(a))

	return root
}

// setup loads the configuration, applies flag overrides and builds the
// logger and definition resolver.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	flags := cmd.Root().PersistentFlags()

	path, err := flags.GetString("config")
	if err != nil {
		return err
	}

	envFile, err := flags.GetString("env-file")
	if err != nil {
		return err
	}

	cfg, err := config.Load(path, envFile)
	if err != nil {
		return err
	}

	if flags.Changed("definitions") {
		cfg.Definitions, _ = flags.GetString("definitions")
	}

	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}

	if flags.Changed("core-fallback") {
		cfg.CoreFallback, _ = flags.GetBool("core-fallback")
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	a.log = zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), NoColor: color.NoColor}).
		Level(cfg.Level()).
		With().
		Timestamp().
		Logger()

	a.resolver, err = newResolver(cfg, a.log)

	return err
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
