// 12 Mar 2023
// Relative coverage and the edge trimming the original pileups need.
// Read depth falls away at the ends of the amplified region, so the
// positions there are not trusted. We cut from both ends until the
// relative coverage first climbs over a threshold, and leave the
// interior alone.

package freq

import (
	"fmt"

	"github.com/qsabio/qsa/pkg/freq/common"
)

// Coverage returns the per-position totals divided by the largest
// total, so the best covered position scores 1.
func (s *Sample) Coverage() []float32 {
	ncol := s.NPos()
	cov := make([]float32, ncol)
	var max float32
	for icol := 0; icol < ncol; icol++ {
		cov[icol] = s.total(icol)
		if cov[icol] > max {
			max = cov[icol]
		}
	}
	if max == 0 {
		return cov
	}
	for icol := range cov {
		cov[icol] /= max
	}
	return cov
}

// Trim returns a new, sealed sample holding only the columns from the
// first to the last position whose relative coverage exceeds
// threshold. A threshold of zero keeps everything. If no position
// clears the threshold there is nothing left to analyse and we fail
// with ErrInsufficientData.
func (s *Sample) Trim(threshold float64) (*Sample, error) {
	if threshold <= 0 {
		if !s.sealed {
			if err := s.Seal(); err != nil {
				return nil, err
			}
		}
		return s, nil
	}
	cov := s.Coverage()
	left, right := -1, -1
	for i, c := range cov {
		if float64(c) > threshold {
			if left < 0 {
				left = i
			}
			right = i
		}
	}
	if left < 0 {
		return nil, fmt.Errorf("sample %s: no position with coverage above %.2f: %w",
			s.name, threshold, common.ErrInsufficientData)
	}

	t := NewSample(s.name, s.alpha, right-left+1)
	for icol := left; icol <= right; icol++ {
		for irow := range s.counts.Mat {
			t.counts.Mat[irow][icol-left] = s.counts.Mat[irow][icol]
		}
	}
	if err := t.Seal(); err != nil {
		return nil, err
	}
	return t, nil
}
