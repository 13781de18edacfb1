// Package token holds the unit of input observed by the parser and the bounded lookahead queue
// it is buffered in.
package token

import "fmt"

// A Token is produced externally and matched against terminal symbols by its Tag.
type Token struct {
	// Tag is the terminal symbol this token matches.
	Tag string
	// Value is opaque to the parser and handed to semantic actions untouched.
	Value interface{}
}

// New creates a Token.
func New(tag string, value interface{}) Token {
	return Token{Tag: tag, Value: value}
}

// Is returns true if the token matches the terminal symbol.
func (t Token) Is(tag string) bool {
	return t.Tag == tag
}

func (t Token) String() string {
	if t.Value == nil {
		return t.Tag
	}
	return fmt.Sprintf("%s(%v)", t.Tag, t.Value)
}

func (t Token) GoString() string {
	return fmt.Sprintf("Token{%q, %#v}", t.Tag, t.Value)
}

// Tags extracts the tags of tokens.
func Tags(tokens ...Token) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, t.Tag)
	}
	return out
}
