package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"

	"github.com/funvibe/godel/pkg/godel"
)

// configureColor applies the color mode. In auto mode color is used only
// when stdout is a terminal and NO_COLOR is unset.
func configureColor(mode string, out io.Writer) {
	switch mode {
	case "never":
		pterm.DisableColor()
	case "always":
		pterm.EnableColor()
	default:
		if isTerminal(out) && os.Getenv("NO_COLOR") == "" {
			pterm.EnableColor()
		} else {
			pterm.DisableColor()
		}
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// location renders path:line:col for a diagnostic in f.
func location(f formula, d *godel.Diagnostic) string {
	var parts []string
	if f.path != "" {
		parts = append(parts, f.path)
	}
	switch {
	case d.Pos.IsValid() && f.line > 0:
		parts = append(parts, fmt.Sprintf("%d:%d", f.line, d.Pos.Column))
	case d.Pos.IsValid():
		parts = append(parts, d.Pos.String())
	case f.line > 0:
		parts = append(parts, fmt.Sprint(f.line))
	}
	return strings.Join(parts, ":")
}

// printDiagnostics writes each diagnostic with its location and, when the
// position is known, the offending source line with a caret under it.
func printDiagnostics(w io.Writer, f formula, diags godel.Diagnostics) {
	for _, d := range diags {
		if loc := location(f, d); loc != "" {
			fmt.Fprint(w, pterm.Gray(loc+": "))
		}
		fmt.Fprintf(w, "%s %s", pterm.Red(string(d.Code)), d.Message)
		if d.Node != nil && !d.Pos.IsValid() {
			fmt.Fprintf(w, " in %s", d.Node)
		}
		fmt.Fprintln(w)

		if !d.Pos.IsValid() {
			continue
		}
		lines := strings.Split(f.text, "\n")
		if d.Pos.Line > len(lines) {
			continue
		}
		src := lines[d.Pos.Line-1]
		fmt.Fprintf(w, "    %s\n", src)
		fmt.Fprintf(w, "    %s%s\n", caretPadding(src, d.Pos.Column), pterm.Yellow("^"))
	}
}

// caretPadding keeps tabs so the caret lines up under column col (in runes).
func caretPadding(src string, col int) string {
	var b strings.Builder
	for i, r := range []rune(src) {
		if i >= col-1 {
			break
		}
		if r == '\t' {
			b.WriteRune('\t')
		} else {
			b.WriteRune(' ')
		}
	}
	return b.String()
}
