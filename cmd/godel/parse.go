package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/funvibe/godel/internal/prettyprinter"
)

func newParseCmd(a *app) *cobra.Command {
	var (
		tree     bool
		metadata bool
		width    int
	)
	cmd := &cobra.Command{
		Use:   "parse [formula | file.gdl]...",
		Short: "Parse formulas and print them in canonical form",
		Long: `Parse each formula and print it back in canonical form, broken over
several lines when it does not fit the line width. With --tree the typed
syntax tree is printed instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			formulas, err := readFormulas(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			code := prettyprinter.NewCodePrinterWithWidth(width)
			dump := prettyprinter.NewTreePrinter().WithMetadata(metadata)

			failed := false
			for _, f := range formulas {
				r := a.engine.ParseSource(f.text, f.path)
				if !r.OK() {
					failed = true
					printDiagnostics(cmd.ErrOrStderr(), f, r.Diagnostics)
				}
				if r.Node == nil {
					continue
				}
				if tree {
					fmt.Fprint(cmd.OutOrStdout(), dump.Print(r.Node))
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), code.Print(r.Node))
				}
			}
			if failed {
				return errFailed
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&tree, "tree", false, "print the typed syntax tree")
	cmd.Flags().BoolVar(&metadata, "metadata", false, "include node metadata in --tree output")
	cmd.Flags().IntVar(&width, "width", 80, "line width for canonical output")
	return cmd
}
