package scan

// One nonterminal's in-progress match.
type frame struct {
	lhs  Symbol
	rule Rule
	pos  int
	// One slot per rule position. Repetition slots hold a []interface{} of per-repetition results.
	slots []interface{}
	// Set on trial copies, which share accumulators with the live frame and count repetitions in
	// pending instead of appending to them.
	shared  bool
	pending []int
}

func newFrame(lhs Symbol, rule Rule) *frame {
	f := &frame{lhs: lhs, rule: rule, slots: make([]interface{}, len(rule))}
	for i, e := range rule {
		switch e.(type) {
		case *ZeroOrMore, *OneOrMore:
			f.slots[i] = []interface{}{}
		}
	}
	return f
}

func (f *frame) complete() bool { return f.pos == len(f.rule) }

func (f *frame) element() Element { return f.rule[f.pos] }

func (f *frame) repetitions() int {
	n := len(f.slots[f.pos].([]interface{}))
	if f.pending != nil {
		n += f.pending[f.pos]
	}
	return n
}

// Store a shifted token or child result at the current position. Repetitions accumulate and keep
// their position; everything else advances.
func (f *frame) put(value interface{}) {
	switch f.rule[f.pos].(type) {
	case *ZeroOrMore, *OneOrMore:
		if f.shared {
			if f.pending == nil {
				f.pending = make([]int, len(f.rule))
			}
			f.pending[f.pos]++
			return
		}
		f.slots[f.pos] = append(f.slots[f.pos].([]interface{}), value)
	default:
		f.slots[f.pos] = value
		f.pos++
	}
}

// A trial copy of the frame. Slots are copied, accumulators are not.
func (f *frame) clone() *frame {
	out := &frame{lhs: f.lhs, rule: f.rule, pos: f.pos, shared: true}
	out.slots = append(make([]interface{}, 0, len(f.slots)), f.slots...)
	if f.pending != nil {
		out.pending = append([]int(nil), f.pending...)
	}
	return out
}

func cloneStack(stack []*frame) []*frame {
	out := make([]*frame, len(stack))
	for i, f := range stack {
		out[i] = f.clone()
	}
	return out
}

// Frame is a snapshot of one active frame.
type Frame struct {
	Lhs      string
	Position int
	// Length of the frame's rule. The frame reduces when Position reaches it.
	Length int
}
