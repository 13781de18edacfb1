package scan

import (
	"fmt"
	"reflect"
	"sort"
)

// Root is the nonterminal every grammar starts from.
const Root = "root"

// Definitions map a nonterminal name to its right-hand side.
//
// A right-hand side is a single element or a sequence ([]interface{} or Rule) of elements. An
// element is a symbol name (string or Symbol), an operator from Star, Plus, Opt or Alt, or an
// already canonical Element.
type Definitions map[string]interface{}

// Grammar is a canonical, validated rule set.
//
// A Grammar is immutable once constructed and safe to share between parsers. The FIRST-set cache
// is filled lazily and never touches the rules.
type Grammar struct {
	rules     map[Symbol]Rule
	synthetic map[Symbol]bool
	first     *firstCache
}

// NewGrammar canonicalises, validates and rewrites a rule set into a Grammar.
func NewGrammar(defs Definitions) (g *Grammar, err error) {
	defer recoverToError(&err)
	if len(defs) == 0 {
		configf("", "empty rule set")
	}
	if _, ok := defs[Root]; !ok {
		configf("", "no %q rule", Root)
	}
	g = &Grammar{
		rules:     map[Symbol]Rule{},
		synthetic: map[Symbol]bool{},
	}
	for _, lhs := range sortedNames(defs) {
		g.rules[Symbol(lhs)] = canonicalise(lhs, defs[lhs])
	}
	g.validate()
	g.rewrite()
	g.checkLeftRecursion()
	g.first = newFirstCache(g)
	return g, nil
}

// MustGrammar is NewGrammar that panics on error.
func MustGrammar(defs Definitions) *Grammar {
	g, err := NewGrammar(defs)
	if err != nil {
		panic(err)
	}
	return g
}

func sortedNames(defs Definitions) []string {
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// An rhsElement is a definition-surface element that has not yet been checked.
type rhsElement = interface{}

// Wraps a bare element into a one element sequence and converts each element to its typed form.
// Multi-operand operators become *multi placeholders, resolved by rewrite.
func canonicalise(lhs string, rhs interface{}) Rule {
	defer decorate(lhs)
	var seq []rhsElement
	switch rhs := rhs.(type) {
	case nil:
		configf("", "right-hand side is unset")
	case []interface{}:
		seq = rhs
	case Rule:
		for _, e := range rhs {
			seq = append(seq, e)
		}
	case []string:
		for _, s := range rhs {
			seq = append(seq, s)
		}
	default:
		seq = []rhsElement{rhs}
	}
	out := make(Rule, 0, len(seq))
	for i, e := range seq {
		out = append(out, canonicalElement(i, e))
	}
	return out
}

func canonicalElement(position int, e rhsElement) Element {
	switch e := e.(type) {
	case nil:
		configf("", "element %d is unset", position)
	case string:
		if e == "" {
			configf("", "element %d is an empty symbol", position)
		}
		return Symbol(e)
	case Symbol:
		if e == "" {
			configf("", "element %d is an empty symbol", position)
		}
		return e
	case *Node:
		if e == nil {
			configf("", "element %d is unset", position)
		}
		return canonicalNode(position, e)
	case Node:
		return canonicalNode(position, &e)
	case *ZeroOrMore, *OneOrMore, *Optional, *Alternation:
		if reflect.ValueOf(e).IsNil() {
			configf("", "element %d is unset", position)
		}
		el := e.(Element)
		for _, o := range operands(el) {
			if o == "" {
				configf("", "%s at element %d has an empty operand", el, position)
			}
		}
		if alt, ok := el.(*Alternation); ok && len(alt.Operands) == 0 {
			configf("", "ALT at element %d has no operands", position)
		}
		return el
	case []interface{}, Rule:
		configf("", "element %d is a nested sequence; name it as a nonterminal instead", position)
	}
	configf("", "element %d has unsupported type %T", position, e)
	return nil
}

// A multi-operand STAR, PLUS or OPT, awaiting rewrite into a synthetic rule.
type multi struct {
	kind     Kind
	operands []Symbol
}

func (m *multi) String() string { return fmt.Sprintf("%s(%s)", m.kind, quoteAll(m.operands)) }
func (*multi) element()         {}

func canonicalNode(position int, n *Node) Element {
	if len(n.Operands) == 0 {
		configf("", "%s at element %d has no operands", n.Kind, position)
	}
	ops := make([]Symbol, 0, len(n.Operands))
	for _, o := range n.Operands {
		switch o := o.(type) {
		case string:
			ops = append(ops, Symbol(o))
		case Symbol:
			ops = append(ops, o)
		case nil:
			configf("", "%s at element %d has an unset operand", n.Kind, position)
		default:
			configf("", "%s at element %d has a composite operand %T; name it as a nonterminal instead", n.Kind, position, o)
		}
	}
	for _, o := range ops {
		if o == "" {
			configf("", "%s at element %d has an empty operand", n.Kind, position)
		}
	}
	switch n.Kind {
	case KindAlt:
		return &Alternation{Operands: ops}
	case KindStar, KindPlus, KindOpt:
		if len(ops) > 1 {
			return &multi{kind: n.Kind, operands: ops}
		}
		return quantify(n.Kind, ops[0])
	}
	configf("", "element %d has unknown operator kind %s", position, n.Kind)
	return nil
}

func quantify(kind Kind, operand Symbol) Element {
	switch kind {
	case KindStar:
		return &ZeroOrMore{Operand: operand}
	case KindPlus:
		return &OneOrMore{Operand: operand}
	case KindOpt:
		return &Optional{Operand: operand}
	}
	panic(&EngineCoverageError{Element: kind})
}

// Every nonterminal must derive a non-empty sequence.
func (g *Grammar) validate() {
	for lhs, rule := range g.rules {
		if len(rule) == 0 {
			configf(string(lhs), "right-hand side is an empty sequence")
		}
	}
}

// Replaces every multi-operand STAR, PLUS and OPT with a single reference to a synthetic rule
// holding the operand sequence. Synthetic names are "lhs@position", suffixed with "~n" from a
// counter local to this build on collision.
func (g *Grammar) rewrite() {
	counter := 0
	for _, lhs := range g.sortedNonterminals() {
		rule := g.rules[lhs]
		for i, e := range rule {
			m, ok := e.(*multi)
			if !ok {
				continue
			}
			name := Symbol(fmt.Sprintf("%s@%d", lhs, i))
			for _, taken := g.rules[name]; taken; _, taken = g.rules[name] {
				counter++
				name = Symbol(fmt.Sprintf("%s@%d~%d", lhs, i, counter))
			}
			seq := make(Rule, 0, len(m.operands))
			for _, o := range m.operands {
				seq = append(seq, o)
			}
			g.rules[name] = seq
			g.synthetic[name] = true
			rule[i] = quantify(m.kind, name)
		}
	}
}

func (g *Grammar) sortedNonterminals() []Symbol {
	out := make([]Symbol, 0, len(g.rules))
	for lhs := range g.rules {
		out = append(out, lhs)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Rhs returns the right-hand side of a nonterminal.
func (g *Grammar) Rhs(nonterminal string) (Rule, bool) {
	rule, ok := g.rules[Symbol(nonterminal)]
	return rule, ok
}

// IsNonterminal returns true if the symbol has a rule.
func (g *Grammar) IsNonterminal(symbol string) bool {
	_, ok := g.rules[Symbol(symbol)]
	return ok
}

// Nonterminals returns every rule left-hand side, including synthetic ones, sorted.
func (g *Grammar) Nonterminals() []string {
	out := make([]string, 0, len(g.rules))
	for _, lhs := range g.sortedNonterminals() {
		out = append(out, string(lhs))
	}
	return out
}

// Terminals returns every symbol referenced by a rule that has no rule of its own, sorted.
func (g *Grammar) Terminals() []string {
	seen := map[Symbol]bool{}
	out := []string{}
	for _, rule := range g.rules {
		for _, e := range rule {
			for _, s := range operands(e) {
				if !seen[s] && !g.IsNonterminal(string(s)) {
					seen[s] = true
					out = append(out, string(s))
				}
			}
		}
	}
	sort.Strings(out)
	return out
}

// Synthetic returns true if the nonterminal was manufactured by EBNF rewriting.
func (g *Grammar) Synthetic(nonterminal string) bool {
	return g.synthetic[Symbol(nonterminal)]
}

// Rules returns a copy of the canonical rule set, suitable for passing back to NewGrammar.
func (g *Grammar) Rules() Definitions {
	out := Definitions{}
	for lhs, rule := range g.rules {
		out[string(lhs)] = append(Rule(nil), rule...)
	}
	return out
}
