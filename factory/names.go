package factory

import (
	"fmt"
	"reflect"

	scan "github.com/oyamist/oya-scan-sub000"
)

// Names spells every symbol a fragment uses.
//
// Terminal names are the token tags the producer must emit.
type Names struct {
	// Terminals.
	Digit    string
	Plus     string
	Minus    string
	Multiply string
	Divide   string
	LParen   string
	RParen   string
	Enter    string
	Delta    string

	// Nonterminals.
	Number          string
	SignedNumber    string
	ParenExpression string
	Factor          string
	MulOperator     string
	Term            string
	AddOperator     string
	DeltaOperator   string
	Expression      string
}

// Verbose names, matching the tags a scanner emits for calculator keys.
var Verbose = Names{
	Digit:    "digit",
	Plus:     "plus",
	Minus:    "minus",
	Multiply: "multiply",
	Divide:   "divide",
	LParen:   "lpar",
	RParen:   "rpar",
	Enter:    "enter",
	Delta:    "delta",

	Number:          "number",
	SignedNumber:    "signed_number",
	ParenExpression: "paren_expression",
	Factor:          "factor",
	MulOperator:     "mul_operator",
	Term:            "term",
	AddOperator:     "add_operator",
	DeltaOperator:   "delta_operator",
	Expression:      "expression",
}

// Terse names.
var Terse = Names{
	Digit:    "d",
	Plus:     "+",
	Minus:    "-",
	Multiply: "*",
	Divide:   "/",
	LParen:   "(",
	RParen:   ")",
	Enter:    "=",
	Delta:    "Δ",

	Number:          "N",
	SignedNumber:    "SN",
	ParenExpression: "P",
	Factor:          "F",
	MulOperator:     "MO",
	Term:            "T",
	AddOperator:     "AO",
	DeltaOperator:   "DO",
	Expression:      "E",
}

// All names in field order.
func (n Names) All() []string {
	v := reflect.ValueOf(n)
	out := make([]string, 0, v.NumField())
	for i := 0; i < v.NumField(); i++ {
		out = append(out, v.Field(i).String())
	}
	return out
}

func (n Names) validate() error {
	seen := map[string]string{}
	t := reflect.TypeOf(n)
	for i, name := range n.All() {
		field := t.Field(i).Name
		switch {
		case name == "":
			return fmt.Errorf("%s: empty symbol", field)
		case name == scan.Root:
			return fmt.Errorf("%s: %q is reserved", field, scan.Root)
		}
		if other, ok := seen[name]; ok {
			return fmt.Errorf("%s: symbol %q already used by %s", field, name, other)
		}
		seen[name] = field
	}
	return nil
}
