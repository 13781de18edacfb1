package token

import "fmt"

// DefaultLookahead is the capacity of a Queue created with a non-positive limit.
const DefaultLookahead = 1

// Queue is a bounded FIFO of lookahead tokens.
//
// The parser pushes one token per observation and either consumes or drops it, so in practice
// the queue holds zero or one token between calls.
type Queue struct {
	limit  int
	tokens []Token
}

// NewQueue creates a Queue holding at most limit tokens.
func NewQueue(limit int) *Queue {
	if limit <= 0 {
		limit = DefaultLookahead
	}
	return &Queue{limit: limit, tokens: make([]Token, 0, limit)}
}

// Push appends a token, failing if the queue is full.
func (q *Queue) Push(t Token) error {
	if len(q.tokens) >= q.limit {
		return fmt.Errorf("lookahead full (%d tokens), cannot queue %s", q.limit, t)
	}
	q.tokens = append(q.tokens, t)
	return nil
}

// Peek returns the head of the queue.
func (q *Queue) Peek() (Token, bool) {
	if len(q.tokens) == 0 {
		return Token{}, false
	}
	return q.tokens[0], true
}

// Next removes and returns the head of the queue.
func (q *Queue) Next() (Token, bool) {
	t, ok := q.Peek()
	if ok {
		q.tokens = q.tokens[1:]
	}
	return t, ok
}

// Drop discards the head of the queue, if any.
func (q *Queue) Drop() {
	q.Next()
}

// Len is the number of queued tokens.
func (q *Queue) Len() int { return len(q.tokens) }

// Limit is the capacity of the queue.
func (q *Queue) Limit() int { return q.limit }

// Reset empties the queue.
func (q *Queue) Reset() {
	q.tokens = q.tokens[:0]
}

// Clone creates an independent copy of the queue.
func (q *Queue) Clone() *Queue {
	clone := &Queue{limit: q.limit, tokens: make([]Token, len(q.tokens), q.limit)}
	copy(clone.tokens, q.tokens)
	return clone
}
