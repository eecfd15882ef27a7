package main

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/funvibe/godel/internal/config"
	"github.com/funvibe/godel/internal/errors"
	"github.com/funvibe/godel/internal/logger"
	"github.com/funvibe/godel/pkg/godel"
)

// errFailed is returned after diagnostics were already printed.
var errFailed = errors.New("formulas failed")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintln(os.Stderr, pterm.Red("error: ")+err.Error())
			for _, hint := range errors.GetAllHints(err) {
				fmt.Fprintln(os.Stderr, pterm.Yellow("hint: ")+hint)
			}
		}
		os.Exit(1)
	}
}

// app is the state shared by all commands, filled in before any of them runs.
type app struct {
	v          *viper.Viper
	configPath string
	engine     *godel.Engine
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.NewViper()}

	root := &cobra.Command{
		Use:   "godel",
		Short: "Parse and type-check higher-order modal logic formulas",
		Long: `godel parses formulas of a typed higher-order modal logic and checks
their types against a hierarchy of entity types and symbol signatures.

Formulas are given as arguments, read from .gdl files (one formula per line),
or read from standard input.

Examples:
  godel parse "forall ?x. Human(?x) implies Mortal(?x)"
  godel check --ontology people.yaml axioms.gdl
  godel types --yaml`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "settings file (yaml, toml or json)")
	flags.String("ontology", "", "YAML file of types and signatures to load")
	flags.String("log-level", "warn", "log level: debug, info, warn, error")
	flags.Bool("json-logs", false, "write logs as JSON")
	flags.String("color", "auto", "colored output: auto, always, never")
	for key, flag := range map[string]string{
		"ontology":  "ontology",
		"log_level": "log-level",
		"json_logs": "json-logs",
		"color":     "color",
	} {
		_ = a.v.BindPFlag(key, flags.Lookup(flag))
	}

	root.AddCommand(newParseCmd(a), newCheckCmd(a), newTypesCmd(a))
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	s, err := config.LoadSettings(a.v, a.configPath)
	if err != nil {
		return err
	}

	if err := logger.Initialize(s.JSONLogs, s.LogLevel); err != nil {
		return errors.Wrap(err, "initializing logger")
	}
	configureColor(s.Color, cmd.OutOrStdout())

	a.engine = godel.New()
	if s.Ontology != "" {
		if err := a.engine.LoadOntology(s.Ontology); err != nil {
			return err
		}
	}
	logger.Named("cli").Debugw("ready",
		logger.FieldOperation, cmd.Name(),
		logger.FieldPath, s.Ontology)
	return nil
}
