// 13 Mar 2023
// Package diversity reduces entropy profiles to the two scalars the
// quasispecies people compare: α-diversity within a sample and
// β-diversity between samples.

package diversity

import (
	"fmt"

	"github.com/qsabio/qsa/pkg/freq/common"
)

// Alpha reduces the entropies of a sample's covered positions to one
// scalar, the mean. Dividing by the number of covered positions is
// the whole point: it makes samples of different lengths directly
// comparable. Uncovered positions must not be in the slice. They are
// excluded from the sum and the divisor, not counted as zero.
func Alpha(entropies []float32) (float64, error) {
	if len(entropies) == 0 {
		return 0, fmt.Errorf("alpha diversity of a sample with no covered positions: %w",
			common.ErrInsufficientData)
	}
	var sum float64
	for _, h := range entropies {
		sum += float64(h)
	}
	return sum / float64(len(entropies)), nil
}
