package scan

import (
	"fmt"
	"sort"

	"github.com/oyamist/oya-scan-sub000/token"
)

// An Option to modify the behaviour of the Parser.
type Option func(p *Parser) error

// ActionFunc is a semantic action, invoked when a frame for nonterminal reduces.
//
// children are ordered by rule position: a terminal position holds the token.Token, a
// nonterminal position holds that nonterminal's action result, a STAR or PLUS position holds a
// []interface{} of per-repetition results, and an unmatched OPT position holds nil. The return
// value is handed to the parent frame.
type ActionFunc func(nonterminal string, children []interface{}) interface{}

// Action registers the semantic action for a nonterminal.
//
// Nonterminals without an action reduce to their children unchanged.
func Action(nonterminal string, action ActionFunc) Option {
	return func(p *Parser) error {
		if !p.grammar.IsNonterminal(nonterminal) {
			return fmt.Errorf("unknown nonterminal %q", nonterminal)
		}
		p.actions[Symbol(nonterminal)] = action
		return nil
	}
}

// Actions registers semantic actions for several nonterminals.
func Actions(actions map[string]ActionFunc) Option {
	return func(p *Parser) error {
		for _, name := range sortedActionNames(actions) {
			if err := Action(name, actions[name])(p); err != nil {
				return err
			}
		}
		return nil
	}
}

func sortedActionNames(actions map[string]ActionFunc) []string {
	names := make([]string, 0, len(actions))
	for name := range actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// OnShift adds an observer called whenever a token is shifted into a frame.
func OnShift(hook func(t token.Token)) Option {
	return func(p *Parser) error {
		p.onShift = append(p.onShift, hook)
		return nil
	}
}

// OnReject adds an observer called whenever a token is rejected and discarded.
func OnReject(hook func(t token.Token)) Option {
	return func(p *Parser) error {
		p.onReject = append(p.onReject, hook)
		return nil
	}
}

// OnReduce adds an observer called after each reduction's semantic action.
func OnReduce(hook func(nonterminal string, children []interface{})) Option {
	return func(p *Parser) error {
		p.onReduce = append(p.onReduce, hook)
		return nil
	}
}

// UsePrediction orders alternation trials by FIRST set: operands whose FIRST set holds the
// lookahead tag are tried before the others.
//
// FIRST sets only look at the head of a rule, so prediction is a hint, not a filter.
func UsePrediction() Option {
	return func(p *Parser) error {
		p.predict = true
		return nil
	}
}
