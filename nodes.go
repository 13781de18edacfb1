package scan

import (
	"fmt"
	"strings"
)

// Kind of an EBNF operator.
type Kind int

// EBNF operator kinds.
const (
	KindStar Kind = iota + 1 // zero or more
	KindPlus                 // one or more
	KindOpt                  // zero or one
	KindAlt                  // one of
)

func (k Kind) String() string {
	switch k {
	case KindStar:
		return "STAR"
	case KindPlus:
		return "PLUS"
	case KindOpt:
		return "OPT"
	case KindAlt:
		return "ALT"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Node is an EBNF operator as written in a rule definition: a kind and its ordered operands.
//
// Operands are symbol names (string or Symbol). Anything else is rejected by NewGrammar.
type Node struct {
	Kind     Kind
	Operands []interface{}
}

// Star matches its operands zero or more times.
func Star(operands ...interface{}) *Node { return &Node{Kind: KindStar, Operands: operands} }

// Plus matches its operands one or more times.
func Plus(operands ...interface{}) *Node { return &Node{Kind: KindPlus, Operands: operands} }

// Opt matches its operands zero or one time.
func Opt(operands ...interface{}) *Node { return &Node{Kind: KindOpt, Operands: operands} }

// Alt matches exactly one of its operands, tried in order.
func Alt(operands ...interface{}) *Node { return &Node{Kind: KindAlt, Operands: operands} }

// Seq is a convenience for writing a rule sequence.
func Seq(elements ...interface{}) []interface{} { return elements }

// An Element is one canonical right-hand-side position.
//
// The set of elements is closed: Symbol, *ZeroOrMore, *OneOrMore, *Optional and *Alternation.
type Element interface {
	String() string
	element()
}

// Symbol is a terminal or nonterminal name. It is a nonterminal iff the grammar has a rule for it.
type Symbol string

func (s Symbol) String() string { return string(s) }
func (Symbol) element()         {}

// ZeroOrMore is a STAR position.
type ZeroOrMore struct{ Operand Symbol }

func (z *ZeroOrMore) String() string { return fmt.Sprintf("STAR(%s)", z.Operand) }
func (*ZeroOrMore) element()         {}

// OneOrMore is a PLUS position.
type OneOrMore struct{ Operand Symbol }

func (o *OneOrMore) String() string { return fmt.Sprintf("PLUS(%s)", o.Operand) }
func (*OneOrMore) element()         {}

// Optional is an OPT position.
type Optional struct{ Operand Symbol }

func (o *Optional) String() string { return fmt.Sprintf("OPT(%s)", o.Operand) }
func (*Optional) element()         {}

// Alternation is an ALT position. Operands are alternatives, not a sequence, so they are kept
// as a list of flat symbols.
type Alternation struct{ Operands []Symbol }

func (a *Alternation) String() string {
	out := make([]string, 0, len(a.Operands))
	for _, o := range a.Operands {
		out = append(out, string(o))
	}
	return fmt.Sprintf("ALT(%s)", strings.Join(out, ", "))
}
func (*Alternation) element() {}

// Rule is one nonterminal's right-hand side.
type Rule []Element

func (r Rule) String() string {
	out := make([]string, 0, len(r))
	for _, e := range r {
		out = append(out, e.String())
	}
	return "[" + strings.Join(out, ", ") + "]"
}

// Operands of an element, in order.
func operands(e Element) []Symbol {
	switch e := e.(type) {
	case Symbol:
		return []Symbol{e}
	case *ZeroOrMore:
		return []Symbol{e.Operand}
	case *OneOrMore:
		return []Symbol{e.Operand}
	case *Optional:
		return []Symbol{e.Operand}
	case *Alternation:
		return e.Operands
	}
	panic(&EngineCoverageError{Element: e})
}

// nullable reports whether an element may match without consuming input, not counting
// nullable nonterminals.
func nullable(e Element) bool {
	switch e.(type) {
	case *ZeroOrMore, *Optional:
		return true
	}
	return false
}
