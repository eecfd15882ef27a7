package main

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/funvibe/godel/internal/config"
	"github.com/funvibe/godel/internal/errors"
)

// formula is one unit of input: a command-line argument, or one line of a
// source file or of standard input.
type formula struct {
	text string
	path string
	line int
}

// readFormulas collects the formulas named by args. Arguments with a source
// file extension are read as files, anything else is a formula itself. With
// no arguments the formulas come from stdin.
func readFormulas(args []string, stdin io.Reader) ([]formula, error) {
	if len(args) == 0 {
		return scanFormulas(stdin, "<stdin>")
	}
	var out []formula
	for _, arg := range args {
		if !isSourceFile(arg) {
			out = append(out, formula{text: arg})
			continue
		}
		f, err := os.Open(arg)
		if err != nil {
			return nil, errors.Wrapf(err, "reading %s", arg)
		}
		lines, err := scanFormulas(f, arg)
		f.Close()
		if err != nil {
			return nil, err
		}
		out = append(out, lines...)
	}
	return out, nil
}

func isSourceFile(arg string) bool {
	return slices.Contains(config.SourceFileExtensions, filepath.Ext(arg))
}

// scanFormulas reads one formula per line, skipping blank lines and // comments.
func scanFormulas(r io.Reader, path string) ([]formula, error) {
	var out []formula
	sc := bufio.NewScanner(r)
	for n := 1; sc.Scan(); n++ {
		text := sc.Text()
		if trimmed := strings.TrimSpace(text); trimmed == "" || strings.HasPrefix(trimmed, "//") {
			continue
		}
		out = append(out, formula{text: text, path: path, line: n})
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return out, nil
}
