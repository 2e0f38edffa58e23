// 12 Mar 2023
// Per-position Shannon entropy and efficiency. Everything here is a
// pure function of the counts it is handed. The config (alphabet and
// log base) is threaded in explicitly, never ambient, so one process
// can run DNA with base 2 next to an alphabet with gaps and the log
// base the number of symbols.

package entropy

import (
	"fmt"
	"math"

	"github.com/qsabio/qsa/pkg/freq"
	"github.com/qsabio/qsa/pkg/freq/common"
)

// Config fixes the alphabet and the base of the logarithms for a
// whole run. The same base goes into the entropy and into its
// normalising maximum, otherwise efficiency is nonsense.
type Config struct {
	Alpha   *freq.Alphabet
	LogBase float64
}

// DefaultConfig is plain DNA with logs base 2, so entropy runs from
// 0 to 2 bits.
func DefaultConfig() *Config {
	return &Config{Alpha: freq.DNA, LogBase: 2}
}

// HMax returns the largest entropy the alphabet allows, which is hit
// when all symbols are equally represented.
func (cfg *Config) HMax() float64 {
	return math.Log(float64(cfg.Alpha.Len())) / math.Log(cfg.LogBase)
}

// Pos turns the counts at one position into entropy and efficiency.
// The counts must be non-negative with a positive total. Positions
// without coverage must be filtered before they get here. Absent
// symbols contribute nothing (0 log 0 is taken as 0), so they never
// trigger a domain error.
func Pos(cfg *Config, counts []float32) (h, eff float32, err error) {
	if len(counts) != cfg.Alpha.Len() {
		return 0, 0, fmt.Errorf("entropy: %d counts over a %d symbol alphabet: %w",
			len(counts), cfg.Alpha.Len(), common.ErrInvalidInput)
	}
	var total float64
	for _, c := range counts {
		if c < 0 {
			return 0, 0, fmt.Errorf("entropy: negative count %g: %w",
				c, common.ErrInvalidInput)
		}
		total += float64(c)
	}
	if total == 0 {
		return 0, 0, fmt.Errorf("entropy: position without coverage: %w",
			common.ErrInvalidInput)
	}

	logfac := 1.0 / math.Log(cfg.LogBase) // to change base of logs
	var sum float64
	for _, c := range counts {
		if c == 0 {
			continue
		}
		f := float64(c) / total
		sum += f * math.Log(f) * logfac
	}
	h = float32(math.Abs(sum)) // -0 would look silly on output
	eff = float32(float64(h) / cfg.HMax())
	return h, eff, nil
}

// Table is the per-position entropy profile of one sample. Entries
// for uncovered positions are left at zero and flagged in Covered, so
// a consumer can tell "monomorphic" from "never seen".
type Table struct {
	Entropy    []float32
	Efficiency []float32
	Covered    []bool
}

// Profile computes the entropy table for a sealed sample. The sample
// must have been tallied over the config's alphabet.
func Profile(cfg *Config, s *freq.Sample) (*Table, error) {
	if s.Alphabet().String() != cfg.Alpha.String() {
		return nil, fmt.Errorf("sample %s tallied over %q, run uses %q: %w",
			s.Name(), s.Alphabet(), cfg.Alpha, common.ErrInvalidInput)
	}
	ncol := s.NPos()
	t := &Table{
		Entropy:    make([]float32, ncol),
		Efficiency: make([]float32, ncol),
		Covered:    make([]bool, ncol),
	}
	buf := make([]float32, cfg.Alpha.Len())
	for icol := 0; icol < ncol; icol++ {
		if !s.Covered(icol) {
			continue
		}
		h, eff, err := Pos(cfg, s.Counts(icol, buf))
		if err != nil {
			return nil, fmt.Errorf("sample %s position %d: %w", s.Name(), icol, err)
		}
		t.Entropy[icol] = h
		t.Efficiency[icol] = eff
		t.Covered[icol] = true
	}
	return t, nil
}

// CoveredEntropies returns just the entropies of covered positions,
// the form the diversity aggregation wants.
func (t *Table) CoveredEntropies() []float32 {
	out := make([]float32, 0, len(t.Entropy))
	for i, h := range t.Entropy {
		if t.Covered[i] {
			out = append(out, h)
		}
	}
	return out
}
