// 22 Mar 2023
// The csv outputs of a run. Everything downstream (R, gnuplot,
// spreadsheets) eats these, so the headers are quoted the way excel
// likes and the numbers kept plain.

package qsa

import (
	"fmt"
	"io"
	"os"

	"github.com/qsabio/qsa/pkg/diversity"
	"github.com/qsabio/qsa/pkg/entropy"
)

// warnExists checks if a filename exists and prints a warning
// if we will trash a file. It does not return an error.
func warnExists(fname string) {
	if _, err := os.Stat(fname); err == nil {
		fmt.Fprintln(os.Stderr, "Warning, trashing old version of", fname)
	}
}

// create opens fname for writing after the overwrite warning.
func create(fname string) (io.WriteCloser, error) {
	warnExists(fname)
	fp, err := os.Create(fname)
	if err != nil {
		return nil, fmt.Errorf("output file %v: %w", fname, err)
	}
	return fp, nil
}

// writeEntropyTable writes the per-position entropy profile. Rows for
// positions without coverage keep their number but have empty value
// fields, so the numbering still lines up with the reference.
func writeEntropyTable(fname string, tbl *entropy.Table, offset int) error {
	fp, err := create(fname)
	if err != nil {
		return err
	}
	defer fp.Close()
	fmt.Fprintln(fp, `"pos","entropy","efficiency"`)
	for i := range tbl.Entropy {
		if tbl.Covered[i] {
			fmt.Fprintf(fp, "%d,%.4f,%.4f\n", i+1+offset, tbl.Entropy[i], tbl.Efficiency[i])
		} else {
			fmt.Fprintf(fp, "%d,,\n", i+1+offset)
		}
	}
	return nil
}

// writeAlpha writes one α value per sample.
func writeAlpha(fname string, names []string, alphas []float64) error {
	fp, err := create(fname)
	if err != nil {
		return err
	}
	defer fp.Close()
	fmt.Fprintln(fp, `"sample","alpha"`)
	for i, name := range names {
		fmt.Fprintf(fp, "%q,%.4f\n", name, alphas[i])
	}
	return nil
}

// writeBeta writes the dense β matrix keyed by sample names both
// ways.
func writeBeta(fname string, b *diversity.BetaMatrix) error {
	fp, err := create(fname)
	if err != nil {
		return err
	}
	defer fp.Close()
	fmt.Fprint(fp, `"sample"`)
	for _, name := range b.Names() {
		fmt.Fprintf(fp, ",%q", name)
	}
	fmt.Fprintln(fp)
	for i := 0; i < b.N(); i++ {
		fmt.Fprintf(fp, "%q", b.Name(i))
		for j := 0; j < b.N(); j++ {
			fmt.Fprintf(fp, ",%.4f", b.At(i, j))
		}
		fmt.Fprintln(fp)
	}
	return nil
}

// writeGraph writes the graph as an edge list.
func writeGraph(fname string, g *diversity.Graph) error {
	fp, err := create(fname)
	if err != nil {
		return err
	}
	defer fp.Close()
	fmt.Fprintln(fp, `"a","b","weight"`)
	for _, e := range g.Edges {
		fmt.Fprintf(fp, "%q,%q,%.4f\n", e.A, e.B, e.Weight)
	}
	return nil
}
