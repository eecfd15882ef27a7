package prettyprinter

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/funvibe/godel/internal/ast"
)

// --- Code Printer (output is formula source) ---

// CodePrinter lays a formula out over several lines once it no longer fits
// the line width. The output parses back to the same tree.
type CodePrinter struct {
	buf       bytes.Buffer
	indent    int
	lineWidth int // max line width (0 = unlimited)
	column    int // current column position
}

func NewCodePrinter() *CodePrinter {
	return &CodePrinter{lineWidth: 80}
}

func NewCodePrinterWithWidth(width int) *CodePrinter {
	return &CodePrinter{lineWidth: width}
}

func (p *CodePrinter) SetLineWidth(width int) {
	p.lineWidth = width
}

// Print renders n. The printer can be reused.
func (p *CodePrinter) Print(n ast.Node) string {
	p.buf.Reset()
	p.indent = 0
	p.column = 0
	p.print(n, false)
	return p.buf.String()
}

func (p *CodePrinter) write(s string) {
	p.buf.WriteString(s)
	p.column += utf8.RuneCountInString(s)
}

func (p *CodePrinter) newline() {
	p.buf.WriteByte('\n')
	p.buf.WriteString(strings.Repeat("    ", p.indent))
	p.column = p.indent * 4
}

func (p *CodePrinter) fits(s string) bool {
	return p.lineWidth <= 0 || p.column+utf8.RuneCountInString(s) <= p.lineWidth
}

// print writes n flat when it fits and breaks it at its outermost structure
// otherwise. nested marks operand position, where binary connectives and
// binders need parentheses.
func (p *CodePrinter) print(n ast.Node, nested bool) {
	parens := nested && ast.NeedsParens(n)
	flat := ast.Format(n)
	if parens {
		flat = "(" + flat + ")"
	}
	if p.fits(flat) {
		p.write(flat)
		return
	}

	if parens {
		p.write("(")
		defer p.write(")")
	}

	switch n := n.(type) {
	case *ast.Connective:
		if n.Kind == ast.Not && len(n.Operands) == 1 {
			p.write("not ")
			p.print(n.Operands[0], true)
			return
		}
		p.indent++
		for i, op := range n.Operands {
			if i > 0 {
				p.newline()
				p.write(n.Kind.Keyword() + " ")
			}
			p.print(op, true)
		}
		p.indent--

	case *ast.Quantifier:
		p.binder(n.Kind.Keyword(), n.Vars, n.Scope)

	case *ast.Lambda:
		p.binder("lambda", n.Vars, n.Body)

	case *ast.ModalOp:
		p.write(ast.FormatModalPrefix(n) + " ")
		p.print(n.Proposition, true)

	case *ast.Application:
		p.print(n.Operator, true)
		p.write("(")
		p.indent++
		for i, arg := range n.Args {
			p.newline()
			p.print(arg, false)
			if i < len(n.Args)-1 {
				p.write(",")
			}
		}
		p.indent--
		p.newline()
		p.write(")")

	case *ast.Definition:
		p.write("define " + n.Symbol + " : ")
		if n.SymbolType != nil {
			p.write(n.SymbolType.String())
		}
		p.write(" :=")
		p.indent++
		p.newline()
		p.print(n.Body, false)
		p.indent--

	default:
		// leaves have no break points
		p.write(ast.Format(n))
	}
}

func (p *CodePrinter) binder(keyword string, vars []*ast.Variable, body ast.Node) {
	p.write(ast.FormatBinder(keyword, vars))
	p.indent++
	p.newline()
	p.print(body, false)
	p.indent--
}
