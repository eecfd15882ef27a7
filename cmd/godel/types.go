package main

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/funvibe/godel/internal/errors"
	"github.com/funvibe/godel/internal/ontology"
)

func newTypesCmd(a *app) *cobra.Command {
	var asYAML bool
	cmd := &cobra.Command{
		Use:   "types",
		Short: "List registered types and signatures",
		Long: `List every registered type with its direct supertypes, then every
symbol signature. With --yaml the user-defined part is printed as an
ontology file that --ontology accepts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ts := a.engine.Types()
			out := cmd.OutOrStdout()
			if asYAML {
				data, err := ontology.Export(ts).Marshal()
				if err != nil {
					return errors.Wrap(err, "exporting ontology")
				}
				_, err = out.Write(data)
				return err
			}

			fmt.Fprintln(out, pterm.Bold.Sprint("types"))
			for _, name := range ts.TypeNames() {
				t, _ := ts.LookupType(name)
				line := "  " + t.String()
				if supers := ts.DirectSupertypes(t); len(supers) > 0 {
					names := make([]string, len(supers))
					for i, s := range supers {
						names[i] = s.String()
					}
					line += " <: " + strings.Join(names, ", ")
				}
				fmt.Fprintln(out, line)
			}

			syms := ts.Symbols()
			if len(syms) == 0 {
				return nil
			}
			fmt.Fprintln(out, pterm.Bold.Sprint("signatures"))
			for _, sym := range syms {
				sig, _ := ts.Signature(sym)
				fmt.Fprintf(out, "  %s : %s\n", sym, sig)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "print as an ontology YAML file")
	return cmd
}
