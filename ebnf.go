package scan

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/exp/ebnf"
)

// String returns the grammar in golang.org/x/exp/ebnf syntax.
//
// Nonterminals are rendered as capitalised identifiers, terminals as quoted tokens. The root
// production comes first, followed by the rest in the order they are reached from it.
func (g *Grammar) String() string {
	names := g.ebnfNames()
	out := []string{}
	for _, lhs := range g.productionOrder() {
		out = append(out, g.ebnfProduction(lhs, names))
	}
	return strings.Join(out, "\n")
}

// Verify checks the grammar's EBNF rendering with golang.org/x/exp/ebnf, which rejects rules that
// can not be reached from root.
func (g *Grammar) Verify() error {
	names := g.ebnfNames()
	grammar, err := ebnf.Parse(Root, strings.NewReader(g.String()))
	if err != nil {
		return &ConfigurationError{Message: err.Error()}
	}
	if err := ebnf.Verify(grammar, names[Root]); err != nil {
		return &ConfigurationError{Message: err.Error()}
	}
	return nil
}

func (g *Grammar) production(lhs Symbol) string {
	return g.ebnfProduction(lhs, g.ebnfNames())
}

func (g *Grammar) ebnfProduction(lhs Symbol, names map[Symbol]string) string {
	terms := make([]string, 0, len(g.rules[lhs]))
	for _, e := range g.rules[lhs] {
		terms = append(terms, g.ebnfElement(e, names))
	}
	return fmt.Sprintf("%s = %s .", names[lhs], strings.Join(terms, " "))
}

func (g *Grammar) ebnfElement(e Element, names map[Symbol]string) string {
	switch e := e.(type) {
	case Symbol:
		if name, ok := names[e]; ok {
			return name
		}
		return strconv.Quote(string(e))
	case *ZeroOrMore:
		return "{ " + g.ebnfElement(e.Operand, names) + " }"
	case *OneOrMore:
		operand := g.ebnfElement(e.Operand, names)
		return operand + " { " + operand + " }"
	case *Optional:
		return "[ " + g.ebnfElement(e.Operand, names) + " ]"
	case *Alternation:
		out := make([]string, 0, len(e.Operands))
		for _, o := range e.Operands {
			out = append(out, g.ebnfElement(o, names))
		}
		return "( " + strings.Join(out, " | ") + " )"
	}
	panic(&EngineCoverageError{Element: e})
}

func (g *Grammar) productionOrder() []Symbol {
	seen := map[Symbol]bool{}
	order := []Symbol{}
	queue := []Symbol{Root}
	seen[Root] = true
	for len(queue) > 0 {
		lhs := queue[0]
		queue = queue[1:]
		order = append(order, lhs)
		for _, e := range g.rules[lhs] {
			for _, s := range operands(e) {
				if _, ok := g.rules[s]; ok && !seen[s] {
					seen[s] = true
					queue = append(queue, s)
				}
			}
		}
	}
	for _, lhs := range g.sortedNonterminals() {
		if !seen[lhs] {
			order = append(order, lhs)
		}
	}
	return order
}

// EBNF identifiers for every nonterminal, unique and non-lexical (upper case initial).
func (g *Grammar) ebnfNames() map[Symbol]string {
	names := map[Symbol]string{}
	taken := map[string]bool{}
	for _, lhs := range g.sortedNonterminals() {
		base := identifier(string(lhs))
		name := base
		for i := 2; taken[name]; i++ {
			name = fmt.Sprintf("%s_%d", base, i)
		}
		taken[name] = true
		names[lhs] = name
	}
	return names
}

func identifier(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	id := b.String()
	first, size := utf8.DecodeRuneInString(id)
	if upper := unicode.ToUpper(first); unicode.IsUpper(upper) {
		return string(upper) + id[size:]
	}
	return "N" + id
}
