// 11 Mar 2023
// Package freq holds the position frequency tables that all the
// diversity calculations start from. A sample is a named table of
// per-position symbol counts over one fixed alphabet.

package freq

import (
	"math"

	"github.com/qsabio/qsa/pkg/freq/common"
)

// We only accept ascii characters, so anything bigger than this is
// not a valid symbol.
const MaxSym uint8 = 127

const badMap = math.MaxUint8 // marks a symbol as not in the alphabet

// Alphabet is the fixed, run-wide set of symbols that counts are
// tallied over. The mapping array takes us from a character to its
// row in a frequency table.
type Alphabet struct {
	syms    []byte
	mapping [MaxSym]uint8
}

// NewAlphabet builds an alphabet from a string of symbols. The order
// of the symbols fixes the row order in every frequency table built
// over the alphabet.
func NewAlphabet(syms string) *Alphabet {
	a := &Alphabet{syms: []byte(syms)}
	for i := range a.mapping {
		a.mapping[i] = badMap // trap unknown symbols later
	}
	for i, c := range a.syms {
		a.mapping[c] = uint8(i)
	}
	return a
}

// The alphabets one meets in practice. DNA is the default.
var (
	DNA    = NewAlphabet("ACGT")
	DNAN   = NewAlphabet("ACGTN")
	DNAGap = NewAlphabet("ACGTN" + string(common.GapChar))
)

// Len returns the number of symbols.
func (a *Alphabet) Len() int { return len(a.syms) }

// Index returns the row for symbol c, or -1 if c is not in the
// alphabet.
func (a *Alphabet) Index(c byte) int {
	if c >= byte(MaxSym) {
		return -1
	}
	if m := a.mapping[c]; m != badMap {
		return int(m)
	}
	return -1
}

// Syms returns the symbols in row order. Callers must not write to
// the returned slice.
func (a *Alphabet) Syms() []byte { return a.syms }

func (a *Alphabet) String() string { return string(a.syms) }
