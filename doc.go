// Package scan incrementally recognises a context-free grammar written with EBNF shorthand,
// firing semantic actions bottom-up as subtrees complete, without ever buffering the input.
//
// A rule set maps each nonterminal to a sequence of symbols and operators:
//
//	g, err := scan.NewGrammar(scan.Definitions{
//		"root":   scan.Seq("number", "enter"),
//		"number": scan.Seq("digit", scan.Star("digit")),
//	})
//
// The operators are:
//
//   - `Star(a, ...)` Match 0 or more times.
//   - `Plus(a, ...)` Match 1 or more times.
//   - `Opt(a, ...)` Match 0 or 1 times.
//   - `Alt(a, b, ...)` Match one of the alternatives, tried in order.
//
// Star, Plus and Opt over several operands match them as a group: the group is rewritten into a
// synthetic nonterminal named after the rule and position it appeared in. Operands must be plain
// symbols; nested groups have to be named as nonterminals.
//
// A Parser is then driven by an external producer, one token per call:
//
//	p, err := scan.NewParser(g, scan.Action("number", evalNumber))
//	for _, t := range tokens {
//		if !p.Observe(t) {
//			// t was rejected and discarded; the parse continues
//		}
//	}
//	value, ok := p.Result()
//
// The parser uses one token of lookahead. Repetitions, options and alternations are resolved
// by speculatively descending into their operands on a copy of the parse stack; only a
// descent that shifts the token is committed, so semantic actions never see abandoned branches.
package scan
