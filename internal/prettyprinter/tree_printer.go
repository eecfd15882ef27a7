package prettyprinter

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/funvibe/godel/internal/ast"
	"github.com/funvibe/godel/internal/typesystem"
)

// --- Tree Printer (one node per line with its type) ---

// TreePrinter dumps a typed tree for debugging:
//
//	Quantifier forall : Boolean
//	  Variable ?x#1 : Entity
//	  Application : Boolean
//	    Constant Human : (Entity) -> Boolean
//	    Variable ?x#1 : Entity
type TreePrinter struct {
	buf      bytes.Buffer
	depth    int
	metadata bool
}

func NewTreePrinter() *TreePrinter {
	return &TreePrinter{}
}

// WithMetadata makes the printer list node metadata after each line.
func (p *TreePrinter) WithMetadata(show bool) *TreePrinter {
	p.metadata = show
	return p
}

func (p *TreePrinter) Print(n ast.Node) string {
	p.buf.Reset()
	p.depth = 0
	if n == nil {
		return "<nil>\n"
	}
	n.Accept(p)
	return p.buf.String()
}

func (p *TreePrinter) line(n ast.Node, format string, args ...any) {
	p.buf.WriteString(strings.Repeat("  ", p.depth))
	fmt.Fprintf(&p.buf, format, args...)
	p.buf.WriteString(" : " + typeName(n.Type()))
	if p.metadata {
		meta := n.Metadata()
		for _, k := range meta.Keys() {
			v, _ := meta.Get(k)
			fmt.Fprintf(&p.buf, " %s=%v", k, v)
		}
	}
	p.buf.WriteByte('\n')
}

func (p *TreePrinter) children(nodes ...ast.Node) {
	p.depth++
	for _, c := range nodes {
		if c == nil {
			p.buf.WriteString(strings.Repeat("  ", p.depth) + "<nil>\n")
			continue
		}
		c.Accept(p)
	}
	p.depth--
}

func (p *TreePrinter) VisitConstant(n *ast.Constant) {
	if n.Value != nil {
		p.line(n, "Constant %s = %#v", n.Name, n.Value)
		return
	}
	p.line(n, "Constant %s", n.Name)
}

func (p *TreePrinter) VisitVariable(n *ast.Variable) {
	p.line(n, "Variable %s", n.Ref())
}

func (p *TreePrinter) VisitApplication(n *ast.Application) {
	p.line(n, "Application")
	p.children(n.Children()...)
}

func (p *TreePrinter) VisitQuantifier(n *ast.Quantifier) {
	p.line(n, "Quantifier %s", n.Kind.Keyword())
	p.children(n.Children()...)
}

func (p *TreePrinter) VisitConnective(n *ast.Connective) {
	p.line(n, "Connective %s", n.Kind.Keyword())
	p.children(n.Operands...)
}

func (p *TreePrinter) VisitModalOp(n *ast.ModalOp) {
	p.line(n, "ModalOp %s", ast.FormatModalPrefix(n))
	p.children(n.Proposition)
}

func (p *TreePrinter) VisitLambda(n *ast.Lambda) {
	p.line(n, "Lambda")
	p.children(n.Children()...)
}

func (p *TreePrinter) VisitDefinition(n *ast.Definition) {
	p.line(n, "Definition %s", n.Symbol)
	p.children(n.Body)
}

func typeName(t typesystem.Type) string {
	if t == nil {
		return "?"
	}
	return t.String()
}
