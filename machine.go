package scan

import (
	"fmt"

	"github.com/oyamist/oya-scan-sub000/token"
)

type outcome int

const (
	// No element could take the lookahead token.
	failed outcome = iota
	// The lookahead token was shifted.
	shifted
	// The top frame is complete and must be reduced by the caller.
	completed
	// The top frame moved past an element without consuming; keep stepping.
	advanced
)

// machine runs the step/shift/reduce algorithm over a stack.
//
// Every observation runs twice. The trial runs on a copy of the stack with hooks muted and
// writes each speculative choice to the tape: 1 or 0 for entering or skipping a repetition or
// option, the operand index for an alternation. If the trial shifts the token, the live run
// replays the tape on the real stack so that actions fire once per committed reduction and
// never for abandoned speculation.
type machine struct {
	p         *Parser
	stack     []*frame
	lookahead *token.Queue
	tape      []int
	cursor    int
	live      bool
}

func (m *machine) g() *Grammar { return m.p.grammar }

func (m *machine) top() *frame { return m.stack[len(m.stack)-1] }

func (m *machine) push(lhs Symbol) {
	rule, _ := m.g().Rhs(string(lhs))
	m.stack = append(m.stack, newFrame(lhs, rule))
}

func (m *machine) nonterminal(s Symbol) bool { return m.g().IsNonterminal(string(s)) }

func (m *machine) match(s Symbol) bool {
	t, ok := m.lookahead.Peek()
	return ok && t.Tag == string(s)
}

// Drive the stack until the lookahead token is shifted or can't be.
func (m *machine) run() outcome {
	fresh := false
	if len(m.stack) == 0 {
		m.push(Root)
		fresh = true
	}
	for {
		switch m.step() {
		case shifted:
			return shifted
		case failed:
			return failed
		case completed:
			// A root that completes without consuming would restart forever.
			if fresh && len(m.stack) == 1 {
				return failed
			}
			m.reduce()
			if len(m.stack) == 0 {
				m.push(Root)
				fresh = true
			}
		}
	}
}

// Step the top frame. Returns shifted, failed or completed.
func (m *machine) step() outcome {
	for {
		f := m.top()
		if f.complete() {
			return completed
		}
		var r outcome
		switch e := f.element().(type) {
		case Symbol:
			r = m.symbol(e)
		case *ZeroOrMore:
			r = m.repeat(f, e.Operand, 0)
		case *OneOrMore:
			r = m.repeat(f, e.Operand, 1)
		case *Optional:
			r = m.optional(f, e.Operand)
		case *Alternation:
			r = m.alternate(e)
		default:
			panic(&EngineCoverageError{Rule: string(f.lhs), Element: e})
		}
		if r != advanced {
			return r
		}
	}
}

func (m *machine) symbol(s Symbol) outcome {
	if m.nonterminal(s) {
		return m.enter(s)
	}
	if !m.match(s) {
		return failed
	}
	m.shift()
	return shifted
}

// Push a frame for a nonterminal and step into it.
func (m *machine) enter(s Symbol) outcome {
	m.push(s)
	switch r := m.step(); r {
	case completed:
		m.reduce()
		return advanced
	default:
		return r
	}
}

func (m *machine) repeat(f *frame, operand Symbol, min int) outcome {
	count := f.repetitions()
	if !m.nonterminal(operand) {
		if m.match(operand) {
			m.shift()
			return shifted
		}
	} else if r := m.speculate(operand, count < min); r != failed {
		return r
	}
	if count < min {
		return failed
	}
	f.pos++
	return advanced
}

func (m *machine) optional(f *frame, operand Symbol) outcome {
	if !m.nonterminal(operand) {
		if m.match(operand) {
			m.shift()
			return shifted
		}
	} else if r := m.speculate(operand, true); r != failed {
		return r
	}
	f.slots[f.pos] = nil
	f.pos++
	return advanced
}

// Tentatively enter operand. On failure the speculative frames are popped and failed returned.
// A body that matches nothing is only kept when acceptEmpty is set.
func (m *machine) speculate(operand Symbol, acceptEmpty bool) outcome {
	if m.live {
		if m.decision() == 0 {
			return failed
		}
		return m.replay(operand)
	}
	depth, mark := len(m.stack), len(m.tape)
	m.tape = append(m.tape, 1)
	m.push(operand)
	switch m.step() {
	case shifted:
		return shifted
	case completed:
		if acceptEmpty {
			m.reduce()
			return advanced
		}
	}
	m.stack = m.stack[:depth]
	m.tape = append(m.tape[:mark], 0)
	return failed
}

// Try each operand of an alternation in order, optionally reordered by prediction.
func (m *machine) alternate(e *Alternation) outcome {
	if m.live {
		operand := e.Operands[m.decision()]
		if !m.nonterminal(operand) {
			m.shift()
			return shifted
		}
		return m.replay(operand)
	}
	mark := len(m.tape)
	m.tape = append(m.tape, 0)
	for _, i := range m.order(e) {
		operand := e.Operands[i]
		m.tape = m.tape[:mark+1]
		m.tape[mark] = i
		if !m.nonterminal(operand) {
			if m.match(operand) {
				m.shift()
				return shifted
			}
			continue
		}
		depth := len(m.stack)
		if r := m.enter(operand); r != failed {
			return r
		}
		m.stack = m.stack[:depth]
	}
	m.tape = m.tape[:mark]
	return failed
}

func (m *machine) order(e *Alternation) []int {
	out := make([]int, 0, len(e.Operands))
	t, ok := m.lookahead.Peek()
	if !m.p.predict || !ok {
		for i := range e.Operands {
			out = append(out, i)
		}
		return out
	}
	var rest []int
	for i, o := range e.Operands {
		if m.g().IsFirst(t.Tag, string(o)) {
			out = append(out, i)
		} else {
			rest = append(rest, i)
		}
	}
	return append(out, rest...)
}

func (m *machine) replay(operand Symbol) outcome {
	r := m.enter(operand)
	if r == failed {
		panic(fmt.Sprintf("scan: replay of %s failed in %s", operand, m.top().lhs))
	}
	return r
}

func (m *machine) decision() int {
	if m.cursor >= len(m.tape) {
		panic("scan: replay ran past its trial")
	}
	d := m.tape[m.cursor]
	m.cursor++
	return d
}

func (m *machine) shift() {
	t, _ := m.lookahead.Next()
	f := m.top()
	if m.live {
		m.p.traceShift(len(m.stack), f.lhs, t)
		for _, hook := range m.p.onShift {
			hook(t)
		}
	}
	f.put(t)
}

// Pop the top frame and hand its result to the parent, or record it as the parse result.
func (m *machine) reduce() {
	f := m.top()
	m.stack = m.stack[:len(m.stack)-1]
	var result interface{}
	if m.live {
		result = m.p.action(f, len(m.stack))
	}
	if len(m.stack) == 0 {
		if m.live {
			m.p.result = result
			m.p.done = true
		}
		return
	}
	m.top().put(result)
}

// Reduce every frame completed by the last shift.
func (m *machine) reduceCompleted() {
	for len(m.stack) > 0 && m.top().complete() {
		m.reduce()
	}
}
