package scan

import (
	"fmt"
	"strings"

	"github.com/alecthomas/repr"

	"github.com/oyamist/oya-scan-sub000/token"
)

// ConfigurationError is returned when a rule set can not be turned into a Grammar.
//
// It is only ever produced while constructing a Grammar or a Parser, never mid-parse.
type ConfigurationError struct {
	// Rule the error was found in, if any.
	Rule    string
	Message string
}

func (c *ConfigurationError) Error() string {
	if c.Rule == "" {
		return c.Message
	}
	return c.Rule + ": " + c.Message
}

// RejectError describes a token that the parser could not shift.
//
// Rejection is recoverable: the token is discarded and parsing continues with the next token.
type RejectError struct {
	Token token.Token
	// Expected is the element the innermost frame was waiting on.
	Expected string
}

func (r *RejectError) Error() string {
	var expected string
	if r.Expected != "" {
		expected = fmt.Sprintf(" (expected %s)", r.Expected)
	}
	return fmt.Sprintf("unexpected %q token %s%s", r.Token.Tag, repr.String(r.Token.Value), expected)
}

// EngineCoverageError is raised (as a panic) when the step dispatcher meets an element it
// has no matcher for. It signals a defect in the engine rather than bad input.
type EngineCoverageError struct {
	Rule    string
	Element interface{}
}

func (e *EngineCoverageError) Error() string {
	return fmt.Sprintf("%s: no matcher for element %T %s", e.Rule, e.Element, repr.String(e.Element))
}

func configf(rule string, format string, args ...interface{}) {
	panic(&ConfigurationError{Rule: rule, Message: fmt.Sprintf(format, args...)})
}

// Decorate a ConfigurationError with the rule it occurred in.
func decorate(rule string) {
	if msg := recover(); msg != nil {
		if cerr, ok := msg.(*ConfigurationError); ok && cerr.Rule == "" {
			cerr.Rule = rule
			panic(cerr)
		}
		panic(msg)
	}
}

func recoverToError(err *error) {
	if msg := recover(); msg != nil {
		switch msg := msg.(type) {
		case *ConfigurationError:
			*err = msg
		default:
			panic(msg)
		}
	}
}

func quoteAll(symbols []Symbol) string {
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		out = append(out, fmt.Sprintf("%q", string(s)))
	}
	return strings.Join(out, ", ")
}
