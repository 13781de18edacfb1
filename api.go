package scan

import (
	"github.com/oyamist/oya-scan-sub000/token"
)

// Observer is the interface token producers push into, one token per call.
type Observer interface {
	// Observe a token, returning false if it was rejected.
	Observe(t token.Token) bool
}

var _ Observer = &Parser{}
