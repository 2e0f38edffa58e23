// 11 Mar 2023

package freq

import (
	"fmt"

	"github.com/andrew-torda/matrix"
	"github.com/qsabio/qsa/pkg/freq/common"
)

// Sample is one sequencing sample: a name and the count of each
// alphabet symbol at each aligned position. Counts live in a float32
// matrix whose rows are symbols and whose columns are positions. The
// inaccuracy from storing counts as floats is no problem, since they
// are only ever turned into fractions.
// Once a sample has been sealed it must not be written to again.
type Sample struct {
	name    string
	alpha   *Alphabet
	counts  *matrix.FMatrix2d
	covered []bool
	sealed  bool
}

// NewSample gives an empty table for npos positions over alpha.
func NewSample(name string, alpha *Alphabet, npos int) *Sample {
	return &Sample{
		name:   name,
		alpha:  alpha,
		counts: matrix.NewFMatrix2d(alpha.Len(), npos),
	}
}

// Name returns the sample identifier.
func (s *Sample) Name() string { return s.name }

// Alphabet returns the alphabet the counts are tallied over.
func (s *Sample) Alphabet() *Alphabet { return s.alpha }

// NPos returns the number of positions, covered or not.
func (s *Sample) NPos() int {
	_, ncol := s.counts.Size()
	return ncol
}

// Add tallies one observation of symbol c at position pos. Symbols
// outside the alphabet are quietly dropped and reported by the false
// return, so a caller can count them if it cares.
func (s *Sample) Add(c byte, pos int) bool {
	irow := s.alpha.Index(c)
	if irow < 0 {
		return false
	}
	s.counts.Mat[irow][pos] += 1
	return true
}

// SetCounts replaces the whole column at pos. It is for readers which
// get a position at a time, such as the PFM csv reader.
func (s *Sample) SetCounts(pos int, counts []float32) error {
	if len(counts) != s.alpha.Len() {
		return fmt.Errorf("position %d: got %d counts, alphabet has %d symbols: %w",
			pos, len(counts), s.alpha.Len(), common.ErrInvalidInput)
	}
	for irow, v := range counts {
		s.counts.Mat[irow][pos] = v
	}
	return nil
}

// Counts copies the counts at position pos into buf and returns it.
// A nil buf means allocate.
func (s *Sample) Counts(pos int, buf []float32) []float32 {
	if buf == nil {
		buf = make([]float32, s.alpha.Len())
	}
	for irow := range s.counts.Mat {
		buf[irow] = s.counts.Mat[irow][pos]
	}
	return buf
}

// total observations at one position
func (s *Sample) total(pos int) float32 {
	var t float32
	for irow := range s.counts.Mat {
		t += s.counts.Mat[irow][pos]
	}
	return t
}

// Seal checks the counts and fixes the per-position coverage flags.
// A negative count is an error. A column whose total is zero is
// marked not covered, so it never reaches the entropy calculation.
// After sealing, the counts must not change.
func (s *Sample) Seal() error {
	ncol := s.NPos()
	s.covered = make([]bool, ncol)
	for icol := 0; icol < ncol; icol++ {
		for irow := range s.counts.Mat {
			if s.counts.Mat[irow][icol] < 0 {
				return fmt.Errorf(
					"sample %s, position %d, symbol %c: negative count: %w",
					s.name, icol, s.alpha.syms[irow], common.ErrInvalidInput)
			}
		}
		s.covered[icol] = s.total(icol) > 0
	}
	s.sealed = true
	return nil
}

// Covered says whether position pos has any observations. Only valid
// after Seal.
func (s *Sample) Covered(pos int) bool { return s.covered[pos] }

// NCovered returns the number of covered positions.
func (s *Sample) NCovered() (n int) {
	for _, c := range s.covered {
		if c {
			n++
		}
	}
	return n
}

// PFM returns the underlying counts. Callers treat it as read-only.
func (s *Sample) PFM() *matrix.FMatrix2d { return s.counts }
