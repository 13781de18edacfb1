package scan

import (
	"fmt"
	"io"

	"github.com/oyamist/oya-scan-sub000/token"
)

// A Parser incrementally recognises a Grammar, one observed token at a time.
//
// A Parser is not safe for concurrent use. Parsers built from the same Grammar are independent.
type Parser struct {
	grammar  *Grammar
	actions  map[Symbol]ActionFunc
	onShift  []func(token.Token)
	onReject []func(token.Token)
	onReduce []func(string, []interface{})
	trace    io.Writer
	predict  bool

	stack     []*frame
	lookahead *token.Queue
	result    interface{}
	done      bool
	rejected  *RejectError
}

// NewParser creates a Parser for g.
func NewParser(g *Grammar, options ...Option) (*Parser, error) {
	if g == nil {
		return nil, &ConfigurationError{Message: "nil grammar"}
	}
	p := &Parser{
		grammar:   g,
		actions:   map[Symbol]ActionFunc{},
		lookahead: token.NewQueue(token.DefaultLookahead),
	}
	for _, option := range options {
		if err := option(p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// MustParser is NewParser that panics on error.
func MustParser(g *Grammar, options ...Option) *Parser {
	p, err := NewParser(g, options...)
	if err != nil {
		panic(err)
	}
	return p
}

// Grammar the parser recognises.
func (p *Parser) Grammar() *Grammar { return p.grammar }

// Observe feeds one token to the parser and reports whether it was accepted.
//
// An accepted token is shifted into the innermost frame and every frame it completes is
// reduced. A rejected token is reported to the reject hooks and discarded; the parse state is
// left exactly as it was, so parsing continues with the next token.
func (p *Parser) Observe(t token.Token) bool {
	if err := p.lookahead.Push(t); err != nil {
		p.reject(t)
		return false
	}
	trial := &machine{p: p, stack: cloneStack(p.stack), lookahead: p.lookahead.Clone()}
	if trial.run() != shifted {
		p.reject(t)
		p.lookahead.Drop()
		return false
	}
	if len(p.stack) == 0 {
		p.result, p.done = nil, false
	}
	commit := &machine{p: p, stack: p.stack, lookahead: p.lookahead, tape: trial.tape, live: true}
	if commit.run() != shifted {
		panic(fmt.Sprintf("scan: committed parse of %s diverged from its trial", t))
	}
	commit.reduceCompleted()
	p.stack = commit.stack
	p.rejected = nil
	return true
}

// ObserveAll feeds tokens in order and returns the number accepted.
func (p *Parser) ObserveAll(tokens ...token.Token) int {
	accepted := 0
	for _, t := range tokens {
		if p.Observe(t) {
			accepted++
		}
	}
	return accepted
}

func (p *Parser) reject(t token.Token) {
	expected := Root
	if len(p.stack) > 0 {
		expected = p.stack[len(p.stack)-1].element().String()
	}
	p.rejected = &RejectError{Token: t, Expected: expected}
	p.traceReject(len(p.stack), p.rejected)
	for _, hook := range p.onReject {
		hook(t)
	}
}

// LastReject returns the rejection of the most recent token, or nil if it was accepted.
func (p *Parser) LastReject() *RejectError { return p.rejected }

// Result returns the value root reduced to, once it has.
//
// The result is kept until a token starting the next parse is accepted.
func (p *Parser) Result() (interface{}, bool) { return p.result, p.done }

// Done returns true once root has reduced, until the next parse starts.
func (p *Parser) Done() bool { return p.done }

// Reset the parser for a new parse.
func (p *Parser) Reset() {
	p.stack = nil
	p.lookahead.Reset()
	p.result = nil
	p.done = false
	p.rejected = nil
}

// Depth is the number of active frames.
func (p *Parser) Depth() int { return len(p.stack) }

// Frames returns a snapshot of the active frames, innermost first.
func (p *Parser) Frames() []Frame {
	out := make([]Frame, 0, len(p.stack))
	for i := len(p.stack) - 1; i >= 0; i-- {
		f := p.stack[i]
		out = append(out, Frame{Lhs: string(f.lhs), Position: f.pos, Length: len(f.rule)})
	}
	return out
}

func (p *Parser) action(f *frame, depth int) interface{} {
	var result interface{} = f.slots
	if action, ok := p.actions[f.lhs]; ok {
		result = action(string(f.lhs), f.slots)
	}
	p.traceReduce(depth, f.lhs, result)
	for _, hook := range p.onReduce {
		hook(string(f.lhs), f.slots)
	}
	return result
}
