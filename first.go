package scan

import (
	"sort"
	"sync"
)

type firstCache struct {
	lock  sync.Mutex
	g     *Grammar
	sets  map[Symbol]map[string]bool
	inUse map[Symbol]bool
}

func newFirstCache(g *Grammar) *firstCache {
	return &firstCache{g: g, sets: map[Symbol]map[string]bool{}, inUse: map[Symbol]bool{}}
}

// First returns the terminals that can begin a derivation of symbol, sorted.
//
// A terminal's FIRST set is itself. For a nonterminal only the head element of its rule is
// inspected: a quantified head contributes its operand's FIRST set and the elements after it are
// not considered, even though the head may match nothing.
func (g *Grammar) First(symbol string) []string {
	set := g.first.get(Symbol(symbol))
	out := make([]string, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// IsFirst returns true if terminal is in the FIRST set of nonterminal.
func (g *Grammar) IsFirst(terminal, nonterminal string) bool {
	return g.first.get(Symbol(nonterminal))[terminal]
}

func (f *firstCache) get(symbol Symbol) map[string]bool {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.of(symbol)
}

func (f *firstCache) of(symbol Symbol) map[string]bool {
	if set, ok := f.sets[symbol]; ok {
		return set
	}
	rule, ok := f.g.rules[symbol]
	if !ok {
		set := map[string]bool{string(symbol): true}
		f.sets[symbol] = set
		return set
	}
	if f.inUse[symbol] {
		return map[string]bool{}
	}
	f.inUse[symbol] = true
	defer delete(f.inUse, symbol)
	set := map[string]bool{}
	for _, o := range operands(rule[0]) {
		for t := range f.of(o) {
			set[t] = true
		}
	}
	f.sets[symbol] = set
	return set
}
