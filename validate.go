package scan

import (
	"strings"
)

// The parser enters nonterminals eagerly, depth first, so a rule that can reach itself without
// consuming a token would push frames forever.
func (g *Grammar) checkLeftRecursion() {
	empty := g.nullableNonterminals()
	const (
		unvisited = iota
		active
		done
	)
	state := map[Symbol]int{}
	var path []Symbol
	var walk func(lhs Symbol)
	walk = func(lhs Symbol) {
		switch state[lhs] {
		case active:
			start := 0
			for i, s := range path {
				if s == lhs {
					start = i
				}
			}
			g.leftRecursion(path[start:])
		case done:
			return
		}
		state[lhs] = active
		path = append(path, lhs)
		for _, s := range g.leftmost(lhs, empty) {
			walk(s)
		}
		path = path[:len(path)-1]
		state[lhs] = done
	}
	for _, lhs := range g.sortedNonterminals() {
		walk(lhs)
	}
}

func (g *Grammar) leftRecursion(cycle []Symbol) {
	lines := []string{}
	for _, lhs := range cycle {
		lines = append(lines, "  "+g.production(lhs))
	}
	configf("", "left recursion detected on\n\n%s", strings.Join(lines, "\n"))
}

// Nonterminals that can be entered before a token is consumed in lhs.
func (g *Grammar) leftmost(lhs Symbol, empty map[Symbol]bool) []Symbol {
	out := []Symbol{}
	for _, e := range g.rules[lhs] {
		for _, s := range operands(e) {
			if g.IsNonterminal(string(s)) {
				out = append(out, s)
			}
		}
		if !g.elementNullable(e, empty) {
			break
		}
	}
	return out
}

func (g *Grammar) elementNullable(e Element, empty map[Symbol]bool) bool {
	if nullable(e) {
		return true
	}
	for _, s := range operands(e) {
		if empty[s] {
			return true
		}
	}
	return false
}

// Fixpoint over the rules: a nonterminal derives empty if every element of its rule can.
func (g *Grammar) nullableNonterminals() map[Symbol]bool {
	empty := map[Symbol]bool{}
	for changed := true; changed; {
		changed = false
	next:
		for lhs, rule := range g.rules {
			if empty[lhs] {
				continue
			}
			for _, e := range rule {
				if !g.elementNullable(e, empty) {
					continue next
				}
			}
			empty[lhs] = true
			changed = true
		}
	}
	return empty
}
