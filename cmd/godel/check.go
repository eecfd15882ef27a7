package main

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/funvibe/godel/internal/logger"
	"github.com/funvibe/godel/pkg/godel"
)

func newCheckCmd(a *app) *cobra.Command {
	var expect string
	cmd := &cobra.Command{
		Use:   "check [formula | file.gdl]...",
		Short: "Infer and check the types of formulas",
		Long: `Check each formula and print its inferred type. Definitions that
check are registered, so later formulas in the same run may use the
defined symbol. With --expect every formula must have a subtype of the
given type.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var expected godel.Type
			if expect != "" {
				t, err := a.engine.ParseType(expect)
				if err != nil {
					return err
				}
				expected = t
			}
			formulas, err := readFormulas(args, cmd.InOrStdin())
			if err != nil {
				return err
			}

			log := logger.Named("cli")
			failed := 0
			for _, f := range formulas {
				r := a.engine.Analyze(f.text, f.path, expected)
				if !r.OK() {
					failed++
					printDiagnostics(cmd.ErrOrStderr(), f, r.Diagnostics)
					continue
				}
				if def, ok := r.Node.(*godel.Definition); ok {
					if err := a.engine.Register(def); err != nil {
						return err
					}
					log.Debugw("definition registered",
						logger.FieldSymbol, def.Symbol,
						logger.FieldSession, r.Session)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s : %s\n", pterm.Green("ok"), godel.Format(r.Node), r.Type)
			}
			if failed > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "%d of %d formulas failed\n", failed, len(formulas))
				return errFailed
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&expect, "expect", "", "type every formula must have, e.g. Boolean")
	return cmd
}
