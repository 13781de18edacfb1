package scan

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/repr"

	"github.com/oyamist/oya-scan-sub000/token"
)

// Trace the parse to "w".
//
// Each committed shift, reduction and rejection is written on its own line, indented by stack
// depth.
func Trace(w io.Writer) Option {
	return func(p *Parser) error {
		p.trace = w
		return nil
	}
}

func (p *Parser) tracef(depth int, format string, args ...interface{}) {
	if p.trace == nil {
		return
	}
	fmt.Fprintf(p.trace, "%s%s\n", strings.Repeat("  ", depth), fmt.Sprintf(format, args...))
}

func (p *Parser) traceShift(depth int, lhs Symbol, t token.Token) {
	p.tracef(depth, "shift %s %s", lhs, repr.String(t.Value))
}

func (p *Parser) traceReduce(depth int, lhs Symbol, result interface{}) {
	p.tracef(depth, "reduce %s = %s", lhs, repr.String(result))
}

func (p *Parser) traceReject(depth int, err *RejectError) {
	p.tracef(depth, "reject %s", err)
}
