// 13 Mar 2023

package diversity

import (
	"fmt"

	"github.com/andrew-torda/matrix"
	"github.com/qsabio/qsa/pkg/freq/common"
)

// BetaOpts holds the one knob the pairwise comparison has. The
// default (absolute differences) is what feeds the graph, since an
// undirected graph wants symmetric, non-negative weights. Signed
// keeps the raw αi−αj in case directionality ever matters; such a
// matrix is antisymmetric and must not be fed to BuildGraph by way
// of anything that assumes weights are non-negative.
type BetaOpts struct {
	Signed bool
}

// BetaMatrix is the dense pairwise divergence table. The diagonal is
// always zero and, unless built signed, entry (i,j) equals (j,i).
type BetaMatrix struct {
	names  []string
	mat    *matrix.FMatrix2d
	signed bool
}

// Beta builds the full matrix from precomputed α values, one per
// name. Nothing is re-derived from raw frequencies here; each cell
// is one subtraction. Fewer than two samples is an error, since
// there is nothing to compare.
func Beta(names []string, alphas []float64, opts *BetaOpts) (*BetaMatrix, error) {
	if len(names) != len(alphas) {
		return nil, fmt.Errorf("beta: %d names for %d alpha values: %w",
			len(names), len(alphas), common.ErrInvalidInput)
	}
	if len(names) < 2 {
		return nil, fmt.Errorf("beta: need at least 2 samples, got %d: %w",
			len(names), common.ErrInsufficientData)
	}
	if opts == nil {
		opts = &BetaOpts{}
	}
	n := len(names)
	b := &BetaMatrix{
		names:  append([]string(nil), names...),
		mat:    matrix.NewFMatrix2d(n, n),
		signed: opts.Signed,
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			d := alphas[i] - alphas[j]
			if !opts.Signed && d < 0 {
				d = -d
			}
			b.mat.Mat[i][j] = float32(d)
		}
	}
	return b, nil
}

// N returns the number of samples.
func (b *BetaMatrix) N() int { return len(b.names) }

// Name returns the identifier of sample i.
func (b *BetaMatrix) Name(i int) string { return b.names[i] }

// Names returns the sample identifiers in matrix order.
func (b *BetaMatrix) Names() []string { return b.names }

// At returns entry (i, j).
func (b *BetaMatrix) At(i, j int) float32 { return b.mat.Mat[i][j] }

// Signed says whether the matrix holds signed differences.
func (b *BetaMatrix) Signed() bool { return b.signed }
