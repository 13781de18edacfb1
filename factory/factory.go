// Package factory builds arithmetic grammar fragments (numbers, parenthesised expressions,
// operator chains) under a configurable naming scheme and assembles them into a scan.Grammar.
//
// Each fragment builder is idempotent and adds the fragments it depends on as it needs them:
//
//	g, err := factory.BuildGrammar(factory.Expression, factory.WithNames(factory.Terse))
package factory

import (
	scan "github.com/oyamist/oya-scan-sub000"
)

// Flavor selects grammar extensions.
type Flavor int

const (
	// Plain arithmetic.
	Plain Flavor = iota
	// Calculator adds the delta operator: a delta key followed by plus or minus acts as one
	// compound additive operator.
	Calculator
)

func (f Flavor) String() string {
	switch f {
	case Plain:
		return "plain"
	case Calculator:
		return "calculator"
	}
	return "unknown"
}

// A Fragment adds itself (and its dependencies) to a Factory and returns its symbol.
type Fragment func(f *Factory) string

// Fragments, for use as the root of BuildGrammar.
var (
	Number          Fragment = (*Factory).AddNumber
	SignedNumber    Fragment = (*Factory).AddSignedNumber
	ParenExpression Fragment = (*Factory).AddParenExpression
	Factor          Fragment = (*Factory).AddFactor
	Term            Fragment = (*Factory).AddTerm
	Expression      Fragment = (*Factory).AddExpression
)

// Factory accumulates a rule template.
type Factory struct {
	names  Names
	flavor Flavor
	rules  scan.Definitions
}

// New creates a Factory with an empty template.
func New(options ...Option) (*Factory, error) {
	f := &Factory{names: Verbose, rules: scan.Definitions{}}
	for _, option := range options {
		if err := option(f); err != nil {
			return nil, err
		}
	}
	if err := f.names.validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// BuildGrammar creates a Factory and builds a grammar rooted at root.
func BuildGrammar(root Fragment, options ...Option) (*scan.Grammar, error) {
	f, err := New(options...)
	if err != nil {
		return nil, err
	}
	return f.Build(root)
}

// Names used by the factory.
func (f *Factory) Names() Names { return f.names }

// Flavor of the factory.
func (f *Factory) Flavor() Flavor { return f.flavor }

// Template returns a copy of the rules defined so far.
func (f *Factory) Template() scan.Definitions {
	out := scan.Definitions{}
	for k, v := range f.rules {
		out[k] = v
	}
	return out
}

// Build replaces the template with root and its dependencies and returns the finished grammar,
// whose root rule is [root, enter].
func (f *Factory) Build(root Fragment) (*scan.Grammar, error) {
	f.rules = scan.Definitions{}
	symbol := root(f)
	f.rules[scan.Root] = scan.Seq(symbol, f.names.Enter)
	g, err := scan.NewGrammar(f.rules)
	if err != nil {
		return nil, err
	}
	if err := g.Verify(); err != nil {
		return nil, err
	}
	return g, nil
}

// Define a rule unless the template already has one. Returns false if it was already there.
func (f *Factory) define(lhs string, rhs ...interface{}) bool {
	if _, ok := f.rules[lhs]; ok {
		return false
	}
	f.rules[lhs] = scan.Seq(rhs...)
	return true
}

// AddDigit returns the digit terminal. Digits are scanned as tokens, so there is no rule.
func (f *Factory) AddDigit() string {
	return f.names.Digit
}

// AddNumber defines number: [digit, STAR(digit)].
func (f *Factory) AddNumber() string {
	n := f.names
	digit := f.AddDigit()
	f.define(n.Number, digit, scan.Star(digit))
	return n.Number
}

// AddSignedNumber defines signed-number: [OPT(minus), number].
func (f *Factory) AddSignedNumber() string {
	n := f.names
	if f.define(n.SignedNumber, scan.Opt(n.Minus), n.Number) {
		f.AddNumber()
	}
	return n.SignedNumber
}

// AddParenExpression defines paren-expression: [lparen, expression, rparen].
func (f *Factory) AddParenExpression() string {
	n := f.names
	if f.define(n.ParenExpression, n.LParen, n.Expression, n.RParen) {
		f.AddExpression()
	}
	return n.ParenExpression
}

// AddFactor defines factor: [ALT(signed-number, paren-expression)].
func (f *Factory) AddFactor() string {
	n := f.names
	if f.define(n.Factor, scan.Alt(n.SignedNumber, n.ParenExpression)) {
		f.AddSignedNumber()
		f.AddParenExpression()
	}
	return n.Factor
}

// AddMulOperator defines mul-operator: [ALT(multiply, divide)].
func (f *Factory) AddMulOperator() string {
	n := f.names
	f.define(n.MulOperator, scan.Alt(n.Multiply, n.Divide))
	return n.MulOperator
}

// AddTerm defines term: [factor, STAR(mul-operator, factor)].
func (f *Factory) AddTerm() string {
	n := f.names
	if f.define(n.Term, n.Factor, scan.Star(n.MulOperator, n.Factor)) {
		f.AddFactor()
		f.AddMulOperator()
	}
	return n.Term
}

// AddDeltaOperator defines delta-operator: [delta, ALT(plus, minus)].
func (f *Factory) AddDeltaOperator() string {
	n := f.names
	f.define(n.DeltaOperator, n.Delta, scan.Alt(n.Plus, n.Minus))
	return n.DeltaOperator
}

// AddAddOperator defines add-operator: [ALT(plus, minus)], or with the Calculator flavor
// [ALT(plus, minus, delta-operator)].
func (f *Factory) AddAddOperator() string {
	n := f.names
	if f.flavor != Calculator {
		f.define(n.AddOperator, scan.Alt(n.Plus, n.Minus))
		return n.AddOperator
	}
	if f.define(n.AddOperator, scan.Alt(n.Plus, n.Minus, n.DeltaOperator)) {
		f.AddDeltaOperator()
	}
	return n.AddOperator
}

// AddExpression defines expression: [term, STAR(add-operator, term)].
func (f *Factory) AddExpression() string {
	n := f.names
	if f.define(n.Expression, n.Term, scan.Star(n.AddOperator, n.Term)) {
		f.AddTerm()
		f.AddAddOperator()
	}
	return n.Expression
}
