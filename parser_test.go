package scan_test

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	scan "github.com/oyamist/oya-scan-sub000"
	"github.com/oyamist/oya-scan-sub000/token"
)

func mustTestParser(t *testing.T, defs scan.Definitions, options ...scan.Option) *scan.Parser {
	t.Helper()
	g, err := scan.NewGrammar(defs)
	require.NoError(t, err)
	p, err := scan.NewParser(g, options...)
	require.NoError(t, err)
	return p
}

func tok(tag string, value ...interface{}) token.Token {
	if len(value) == 0 {
		return token.New(tag, nil)
	}
	return token.New(tag, value[0])
}

var digitsGrammar = scan.Definitions{
	"root":   scan.Seq("digits", "end"),
	"digits": scan.Seq("digit", scan.Star("digit")),
}

func digitsValue(_ string, children []interface{}) interface{} {
	s := children[0].(token.Token).Value.(string)
	for _, d := range children[1].([]interface{}) {
		s += d.(token.Token).Value.(string)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		panic(err)
	}
	return n
}

func first(_ string, children []interface{}) interface{} { return children[0] }

func TestParseDigits(t *testing.T) {
	roots := 0
	p := mustTestParser(t, digitsGrammar,
		scan.Action("digits", digitsValue),
		scan.Action("root", first),
		scan.OnReduce(func(nonterminal string, children []interface{}) {
			if nonterminal == scan.Root {
				roots++
			}
		}))
	for _, d := range []string{"1", "2", "3"} {
		require.True(t, p.Observe(tok("digit", d)), d)
	}
	require.False(t, p.Done())
	require.True(t, p.Observe(tok("end")))
	require.Equal(t, 1, roots)
	result, ok := p.Result()
	require.True(t, ok)
	require.Equal(t, 123, result)
	require.Equal(t, 0, p.Depth())
}

func TestParseDefaultActionPassesChildren(t *testing.T) {
	p := mustTestParser(t, digitsGrammar)
	one, two, end := tok("digit", "1"), tok("digit", "2"), tok("end")
	require.Equal(t, 3, p.ObserveAll(one, two, end))
	result, ok := p.Result()
	require.True(t, ok)
	require.Equal(t, []interface{}{
		[]interface{}{one, []interface{}{two}},
		end,
	}, result)
}

func TestStarRepetitions(t *testing.T) {
	for n := 0; n < 5; n++ {
		t.Run(strconv.Itoa(n), func(t *testing.T) {
			items := -1
			p := mustTestParser(t, scan.Definitions{
				"root": scan.Seq("list", "end"),
				"list": scan.Seq("open", scan.Star("item"), "close"),
				"item": scan.Seq("x", scan.Opt("comma")),
			}, scan.Action("list", func(_ string, children []interface{}) interface{} {
				items = len(children[1].([]interface{}))
				return nil
			}))
			require.True(t, p.Observe(tok("open")))
			for i := 0; i < n; i++ {
				require.True(t, p.Observe(tok("x")))
				require.True(t, p.Observe(tok("comma")))
			}
			require.True(t, p.Observe(tok("close")))
			require.True(t, p.Observe(tok("end")))
			require.True(t, p.Done())
			require.Equal(t, n, items)
		})
	}
}

func TestRejectLeavesStateUnchanged(t *testing.T) {
	var rejected []token.Token
	p := mustTestParser(t, digitsGrammar,
		scan.Action("digits", digitsValue),
		scan.Action("root", first),
		scan.OnReject(func(t token.Token) { rejected = append(rejected, t) }))
	require.True(t, p.Observe(tok("digit", "1")))
	before := p.Frames()
	plus := tok("plus", "+")
	require.False(t, p.Observe(plus))
	require.Equal(t, []token.Token{plus}, rejected)
	require.Equal(t, before, p.Frames())
	require.EqualError(t, p.LastReject(), `unexpected "plus" token "+" (expected STAR(digit))`)

	// Parsing continues after the discarded token.
	require.True(t, p.Observe(tok("digit", "2")))
	require.Nil(t, p.LastReject())
	require.True(t, p.Observe(tok("end")))
	result, _ := p.Result()
	require.Equal(t, 12, result)
}

func TestRejectBeforeFirstToken(t *testing.T) {
	rejects := 0
	p := mustTestParser(t, digitsGrammar, scan.OnReject(func(token.Token) { rejects++ }))
	require.False(t, p.Observe(tok("end", ".")))
	require.Equal(t, 1, rejects)
	require.Equal(t, 0, p.Depth())
	require.EqualError(t, p.LastReject(), `unexpected "end" token "." (expected root)`)
}

func TestParseRestartsAfterRoot(t *testing.T) {
	p := mustTestParser(t, digitsGrammar, scan.Action("digits", digitsValue), scan.Action("root", first))
	p.ObserveAll(tok("digit", "4"), tok("end"))
	result, _ := p.Result()
	require.Equal(t, 4, result)

	p.ObserveAll(tok("digit", "5"), tok("digit", "6"), tok("end"))
	result, _ = p.Result()
	require.Equal(t, 56, result)

	require.True(t, p.Observe(tok("digit", "7")))
	require.Equal(t, 2, p.Depth())
	require.False(t, p.Done())
	_, ok := p.Result()
	require.False(t, ok)
	p.Reset()
	require.Equal(t, 0, p.Depth())
	require.False(t, p.Done())
	_, ok = p.Result()
	require.False(t, ok)
}

func TestFrames(t *testing.T) {
	p := mustTestParser(t, digitsGrammar)
	require.Empty(t, p.Frames())
	require.True(t, p.Observe(tok("digit", "1")))
	require.Equal(t, []scan.Frame{
		{Lhs: "digits", Position: 1, Length: 2},
		{Lhs: "root", Position: 0, Length: 2},
	}, p.Frames())
}

func TestPlus(t *testing.T) {
	defs := scan.Definitions{
		"root": scan.Seq("ones", "end"),
		"ones": scan.Seq(scan.Plus("one")),
	}
	p := mustTestParser(t, defs)
	require.False(t, p.Observe(tok("end")))
	require.True(t, p.Observe(tok("one")))
	require.True(t, p.Observe(tok("one")))
	require.True(t, p.Observe(tok("end")))
	require.True(t, p.Done())
}

func TestPlusOverNonterminal(t *testing.T) {
	count := 0
	p := mustTestParser(t, scan.Definitions{
		"root":  scan.Seq("items", "end"),
		"items": scan.Seq(scan.Plus("key", "value")),
	}, scan.Action("items", func(_ string, children []interface{}) interface{} {
		count = len(children[0].([]interface{}))
		return nil
	}))
	require.False(t, p.Observe(tok("end")))
	require.False(t, p.Observe(tok("value")))
	for i := 0; i < 3; i++ {
		require.True(t, p.Observe(tok("key")))
		require.True(t, p.Observe(tok("value")))
	}
	require.True(t, p.Observe(tok("end")))
	require.Equal(t, 3, count)
}

func TestOptional(t *testing.T) {
	var sign interface{} = "unset"
	defs := scan.Definitions{
		"root":   scan.Seq("signed", "end"),
		"signed": scan.Seq(scan.Opt("minus"), "digit"),
	}
	p := mustTestParser(t, defs, scan.Action("signed", func(_ string, children []interface{}) interface{} {
		sign = children[0]
		return nil
	}))
	require.Equal(t, 2, p.ObserveAll(tok("digit", "1"), tok("end")))
	require.Nil(t, sign)

	minus := tok("minus", "-")
	require.Equal(t, 3, p.ObserveAll(minus, tok("digit", "1"), tok("end")))
	require.Equal(t, minus, sign)

	require.Equal(t, 3, p.ObserveAll(minus, minus, tok("digit", "1"), tok("end")))
}

func TestOptionalGroup(t *testing.T) {
	var group interface{}
	p := mustTestParser(t, scan.Definitions{
		"root":   scan.Seq("number", "end"),
		"number": scan.Seq("digit", scan.Opt("dot", "digit")),
	}, scan.Action("number", func(_ string, children []interface{}) interface{} {
		group = children[1]
		return nil
	}))
	dot, two := tok("dot"), tok("digit", "2")
	require.Equal(t, 4, p.ObserveAll(tok("digit", "1"), dot, two, tok("end")))
	require.Equal(t, []interface{}{dot, two}, group)
}

func TestAlternation(t *testing.T) {
	var chosen []string
	p := mustTestParser(t, scan.Definitions{
		"root":  scan.Seq(scan.Alt("word", "pair", "x"), "end"),
		"word":  scan.Seq("w"),
		"pair":  scan.Seq("p", "q"),
		"other": scan.Seq("z"),
	}, scan.OnReduce(func(nonterminal string, _ []interface{}) {
		chosen = append(chosen, nonterminal)
	}))
	require.Equal(t, 3, p.ObserveAll(tok("p"), tok("q"), tok("end")))
	require.Equal(t, []string{"pair", "root"}, chosen)

	chosen = nil
	require.Equal(t, 2, p.ObserveAll(tok("x"), tok("end")))
	require.Equal(t, []string{"root"}, chosen)

	require.False(t, p.Observe(tok("z")))
}

// One token of lookahead: once an alternative shifts, the others are not revisited.
func TestAlternationCommitsOnShift(t *testing.T) {
	p := mustTestParser(t, scan.Definitions{
		"root": scan.Seq(scan.Alt("a", "b"), "end"),
		"a":    scan.Seq("x", "y"),
		"b":    scan.Seq("x", "z"),
	})
	require.True(t, p.Observe(tok("x")))
	require.False(t, p.Observe(tok("z")))
	require.True(t, p.Observe(tok("y")))
	require.True(t, p.Observe(tok("end")))
}

func TestAlternationPrediction(t *testing.T) {
	defs := scan.Definitions{
		"root":  scan.Seq(scan.Alt("maybe", "word"), "end"),
		"maybe": scan.Seq(scan.Star("x")),
		"word":  scan.Seq("w"),
	}
	// In order, "maybe" matches nothing and is kept, leaving "w" unmatched.
	p := mustTestParser(t, defs)
	require.False(t, p.Observe(tok("w")))

	p = mustTestParser(t, defs, scan.UsePrediction())
	require.True(t, p.Observe(tok("w")))
	require.True(t, p.Observe(tok("end")))
	require.True(t, p.Done())

	p = mustTestParser(t, defs, scan.UsePrediction())
	require.Equal(t, 3, p.ObserveAll(tok("x"), tok("x"), tok("end")))
}

func TestSpeculationDoesNotFireActions(t *testing.T) {
	var reduced []string
	var shifted []string
	p := mustTestParser(t, scan.Definitions{
		"root":   scan.Seq("expr", "end"),
		"expr":   scan.Seq("digit", scan.Star("op", "digit")),
		"op":     scan.Seq(scan.Alt("plusop", "minusop")),
		"plusop": scan.Seq("plus"),
		// Enters a nullable rule before failing.
		"minusop": scan.Seq("sign", "minus"),
		"sign":    scan.Seq(scan.Star("tilde")),
	},
		scan.OnReduce(func(nonterminal string, _ []interface{}) { reduced = append(reduced, nonterminal) }),
		scan.OnShift(func(t token.Token) { shifted = append(shifted, t.Tag) }))
	require.Equal(t, 5, p.ObserveAll(tok("digit"), tok("minus"), tok("digit"), tok("plus"), tok("digit")))
	require.Equal(t, []string{"sign", "minusop", "op", "expr@1", "plusop", "op", "expr@1"}, reduced)
	require.True(t, p.Observe(tok("end")))
	require.Equal(t, []string{"digit", "minus", "digit", "plus", "digit", "end"}, shifted)
	require.Equal(t, []string{"sign", "minusop", "op", "expr@1", "plusop", "op", "expr@1", "expr", "root"}, reduced)
}

func TestActionUnknownNonterminal(t *testing.T) {
	g := scan.MustGrammar(digitsGrammar)
	_, err := scan.NewParser(g, scan.Action("nope", first))
	require.EqualError(t, err, `unknown nonterminal "nope"`)
	_, err = scan.NewParser(g, scan.Actions(map[string]scan.ActionFunc{"digits": digitsValue, "zz": first}))
	require.EqualError(t, err, `unknown nonterminal "zz"`)
	_, err = scan.NewParser(nil)
	require.EqualError(t, err, "nil grammar")
}

func TestTrace(t *testing.T) {
	w := &strings.Builder{}
	p := mustTestParser(t, digitsGrammar, scan.Trace(w),
		scan.Action("digits", digitsValue), scan.Action("root", first))
	p.ObserveAll(tok("digit", "4"), tok("x", "x"), tok("digit", "2"), tok("end", "."))
	lines := strings.Split(strings.TrimRight(w.String(), "\n"), "\n")
	assert.Equal(t, []string{
		`    shift digits "4"`,
		`    reject unexpected "x" token "x" (expected STAR(digit))`,
		`    shift digits "2"`,
		`  reduce digits = 42`,
		`  shift root "."`,
		`reduce root = 42`,
	}, lines)
}

func TestLongRepetition(t *testing.T) {
	const n = 20000
	count := 0
	p := mustTestParser(t, scan.Definitions{
		"root": scan.Seq(scan.Star("stmt"), "end"),
		"stmt": scan.Seq("x"),
	}, scan.Action("root", func(_ string, children []interface{}) interface{} {
		count = len(children[0].([]interface{}))
		return nil
	}))
	for i := 0; i < n; i++ {
		require.True(t, p.Observe(tok("x")))
	}
	require.Equal(t, 1, p.Depth())
	require.True(t, p.Observe(tok("end")))
	require.Equal(t, n, count)
}
