// Package ontology loads type hierarchies and symbol signatures from YAML.
//
// An ontology file declares atomic types with their supertypes, parametric
// type constructors, symbol signatures and extra subtype facts:
//
//	types:
//	  - name: Human
//	    supertypes: [Agent]
//	parametric:
//	  - name: List
//	    params: [T]
//	signatures:
//	  - symbol: Mortal
//	    type: (Entity) -> Boolean
//	subtypes:
//	  - sub: List[Human]
//	    super: List[Entity]
//
// Type definitions may appear in any order; they are registered so that every
// supertype exists before its subtypes.
package ontology

import (
	"os"
	"slices"

	"github.com/hashicorp/go-set/v3"
	"gopkg.in/yaml.v3"

	"github.com/funvibe/godel/internal/config"
	"github.com/funvibe/godel/internal/errors"
	"github.com/funvibe/godel/internal/logger"
	"github.com/funvibe/godel/internal/parser"
	"github.com/funvibe/godel/internal/symbols"
	"github.com/funvibe/godel/internal/typesystem"
)

// Ontology is the decoded content of an ontology file.
type Ontology struct {
	Types      []TypeDef       `yaml:"types"`
	Parametric []ParametricDef `yaml:"parametric,omitempty"`
	Signatures []SignatureDef  `yaml:"signatures,omitempty"`
	Subtypes   []SubtypeDef    `yaml:"subtypes,omitempty"`

	path string
}

// TypeDef declares an atomic type.
type TypeDef struct {
	Name       string   `yaml:"name"`
	Supertypes []string `yaml:"supertypes,omitempty"`
}

// ParametricDef declares a type constructor such as List['T].
type ParametricDef struct {
	Name   string   `yaml:"name"`
	Params []string `yaml:"params"`
}

// SignatureDef gives a symbol its type, written in annotation syntax.
type SignatureDef struct {
	Symbol string `yaml:"symbol"`
	Type   string `yaml:"type"`
}

// SubtypeDef declares an additional subtype fact between two types, written
// in annotation syntax.
type SubtypeDef struct {
	Sub   string `yaml:"sub"`
	Super string `yaml:"super"`
}

// Load reads and parses an ontology file.
func Load(path string) (*Ontology, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading ontology %s", path)
	}
	return Parse(data, path)
}

// Parse decodes ontology content. The path is used only in error messages.
func Parse(data []byte, path string) (*Ontology, error) {
	var o Ontology
	if err := yaml.Unmarshal(data, &o); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	o.path = path
	if err := o.validate(); err != nil {
		return nil, err
	}
	return &o, nil
}

// validate checks what can be checked without a type system.
func (o *Ontology) validate() error {
	if len(o.Types)+len(o.Parametric)+len(o.Signatures)+len(o.Subtypes) == 0 {
		return errors.Newf("%s: ontology is empty", o.path)
	}

	names := set.New[string](len(o.Types) + len(o.Parametric))
	for i, t := range o.Types {
		if t.Name == "" {
			return errors.Newf("%s: types[%d]: name is required", o.path, i)
		}
		if !names.Insert(t.Name) {
			return errors.Wrapf(errors.ErrDuplicateType, "%s: types[%d]: %s declared twice", o.path, i, t.Name)
		}
		if slices.Contains(t.Supertypes, t.Name) {
			return errors.Wrapf(errors.ErrCyclicHierarchy, "%s: types[%d]: %s is its own supertype", o.path, i, t.Name)
		}
	}
	for i, p := range o.Parametric {
		if p.Name == "" {
			return errors.Newf("%s: parametric[%d]: name is required", o.path, i)
		}
		if len(p.Params) == 0 {
			return errors.WithHintf(
				errors.Newf("%s: parametric[%d]: %s has no parameters", o.path, i, p.Name),
				"declare %s under types instead", p.Name)
		}
		if !names.Insert(p.Name) {
			return errors.Wrapf(errors.ErrDuplicateType, "%s: parametric[%d]: %s declared twice", o.path, i, p.Name)
		}
	}

	seen := set.New[string](len(o.Signatures))
	for i, s := range o.Signatures {
		if s.Symbol == "" || s.Type == "" {
			return errors.Newf("%s: signatures[%d]: symbol and type are required", o.path, i)
		}
		if !seen.Insert(s.Symbol) {
			return errors.Wrapf(errors.ErrDuplicateSignature, "%s: signatures[%d]: %s declared twice", o.path, i, s.Symbol)
		}
	}
	for i, s := range o.Subtypes {
		if s.Sub == "" || s.Super == "" {
			return errors.Newf("%s: subtypes[%d]: sub and super are required", o.path, i)
		}
	}
	return nil
}

// ordered returns the atomic type definitions so that each comes after every
// supertype declared in the same file. Supertypes declared elsewhere are left
// for the type system to resolve.
func (o *Ontology) ordered() ([]TypeDef, error) {
	byName := make(map[string]TypeDef, len(o.Types))
	for _, t := range o.Types {
		byName[t.Name] = t
	}

	out := make([]TypeDef, 0, len(o.Types))
	done := set.New[string](len(o.Types))
	visiting := set.New[string](0)

	var visit func(t TypeDef) error
	visit = func(t TypeDef) error {
		if done.Contains(t.Name) {
			return nil
		}
		if !visiting.Insert(t.Name) {
			return errors.Wrapf(errors.ErrCyclicHierarchy, "%s: type %s is its own ancestor", o.path, t.Name)
		}
		for _, super := range t.Supertypes {
			if dep, ok := byName[super]; ok {
				if err := visit(dep); err != nil {
					return err
				}
			}
		}
		visiting.Remove(t.Name)
		done.Insert(t.Name)
		out = append(out, t)
		return nil
	}

	for _, t := range o.Types {
		if err := visit(t); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Apply registers the ontology with ts. Registration stops at the first
// error; definitions made before it stay registered.
func (o *Ontology) Apply(ts *symbols.TypeSystem) error {
	types, err := o.ordered()
	if err != nil {
		return err
	}

	for _, p := range o.Parametric {
		if _, err := ts.DefineParametricType(p.Name, p.Params...); err != nil {
			return errors.Wrapf(err, "%s: parametric type %s", o.path, p.Name)
		}
	}
	for _, t := range types {
		if _, err := ts.DefineAtomicType(t.Name, t.Supertypes...); err != nil {
			return errors.Wrapf(err, "%s: type %s", o.path, t.Name)
		}
	}

	p := parser.New(ts)
	for _, s := range o.Signatures {
		t, err := parseType(p, s.Type)
		if err != nil {
			return errors.Wrapf(err, "%s: signature of %s", o.path, s.Symbol)
		}
		if err := ts.DefineSignature(s.Symbol, t); err != nil {
			return errors.Wrapf(err, "%s: signature of %s", o.path, s.Symbol)
		}
	}
	for _, s := range o.Subtypes {
		sub, err := parseType(p, s.Sub)
		if err != nil {
			return errors.Wrapf(err, "%s: subtype %s", o.path, s.Sub)
		}
		super, err := parseType(p, s.Super)
		if err != nil {
			return errors.Wrapf(err, "%s: supertype %s", o.path, s.Super)
		}
		if err := ts.DeclareSubtype(sub, super); err != nil {
			return errors.Wrapf(err, "%s: %s <: %s", o.path, s.Sub, s.Super)
		}
	}

	logger.Named("ontology").Debugw("ontology loaded",
		logger.FieldPath, o.path,
		"types", len(o.Types)+len(o.Parametric),
		"signatures", len(o.Signatures),
		"subtypes", len(o.Subtypes))
	return nil
}

func parseType(p *parser.Parser, text string) (typesystem.Type, error) {
	t, errs, err := p.ParseType(text)
	if err != nil {
		return nil, err
	}
	if err := errs.Err(); err != nil {
		return nil, errors.Wrapf(err, "type %q", text)
	}
	return t, nil
}

// LoadInto reads path and registers its content with ts.
func LoadInto(ts *symbols.TypeSystem, path string) error {
	o, err := Load(path)
	if err != nil {
		return err
	}
	return o.Apply(ts)
}

// Export describes everything registered in ts beyond the built-in types,
// in a form Apply accepts.
func Export(ts *symbols.TypeSystem) *Ontology {
	bootstrap := make(map[string]*set.Set[string], len(config.BuiltinTypes))
	for _, b := range config.BuiltinTypes {
		bootstrap[b.Name] = set.From(b.Supertypes)
	}

	o := &Ontology{path: "export"}
	for _, name := range ts.TypeNames() {
		t, _ := ts.LookupType(name)
		switch t := t.(type) {
		case typesystem.TCtor:
			params := make([]string, len(t.Params))
			for i, p := range t.Params {
				params[i] = p.Name
			}
			o.Parametric = append(o.Parametric, ParametricDef{Name: name, Params: params})
		case typesystem.TAtom:
			if _, builtin := bootstrap[name]; builtin {
				continue
			}
			def := TypeDef{Name: name}
			for _, super := range ts.DirectSupertypes(t) {
				if atom, ok := super.(typesystem.TAtom); ok {
					def.Supertypes = append(def.Supertypes, atom.Name)
				}
			}
			o.Types = append(o.Types, def)
		}
	}

	for _, sym := range ts.Symbols() {
		sig, _ := ts.Signature(sym)
		o.Signatures = append(o.Signatures, SignatureDef{Symbol: sym, Type: sig.String()})
	}

	for _, sub := range ts.HierarchyTypes() {
		for _, super := range ts.DirectSupertypes(sub) {
			if covered(sub, super, bootstrap) {
				continue
			}
			o.Subtypes = append(o.Subtypes, SubtypeDef{Sub: sub.String(), Super: super.String()})
		}
	}
	return o
}

// covered reports whether the edge sub <: super is already implied by a type
// definition or the bootstrap hierarchy.
func covered(sub, super typesystem.Type, bootstrap map[string]*set.Set[string]) bool {
	subAtom, ok := sub.(typesystem.TAtom)
	if !ok {
		return false
	}
	if _, ok := super.(typesystem.TAtom); !ok {
		return false
	}
	supers, builtin := bootstrap[subAtom.Name]
	return !builtin || supers.Contains(super.String())
}

// Marshal renders the ontology as YAML.
func (o *Ontology) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(o)
	if err != nil {
		return nil, errors.Wrap(err, "encoding ontology")
	}
	return data, nil
}
