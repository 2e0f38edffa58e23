// 15 Mar 2023

package diversity_test

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	. "github.com/qsabio/qsa/pkg/diversity"
	"github.com/qsabio/qsa/pkg/entropy"
	"github.com/qsabio/qsa/pkg/freq"
	"github.com/qsabio/qsa/pkg/freq/common"
)

const eps = 1e-6

func approxEqual(x, y float64) bool { return math.Abs(x-y) < eps }

func TestAlpha(t *testing.T) {
	a, err := Alpha([]float32{0, 1})
	if err != nil {
		t.Fatal(err)
	}
	if !approxEqual(a, 0.5) {
		t.Fatal("alpha of {0, 1} got", a, "want 0.5")
	}

	// Zero covered positions is undefined, not zero.
	if _, err := Alpha(nil); !errors.Is(err, common.ErrInsufficientData) {
		t.Fatal("alpha of nothing got", err, "want ErrInsufficientData")
	}
}

// TestAlphaScaleInvariant: multiplying every count by the same
// constant changes no frequencies, so no entropy, so no alpha.
func TestAlphaScaleInvariant(t *testing.T) {
	cfg := entropy.DefaultConfig()
	counts := [][]float32{
		{10, 2, 0, 1}, {3, 3, 0, 0}, {5, 0, 0, 0},
	}
	alphaOf := func(scale float32) float64 {
		s := freq.NewSample("tst", freq.DNA, len(counts))
		for i, c := range counts {
			row := make([]float32, len(c))
			for j, v := range c {
				row[j] = v * scale
			}
			s.SetCounts(i, row)
		}
		if err := s.Seal(); err != nil {
			t.Fatal(err)
		}
		tbl, err := entropy.Profile(cfg, s)
		if err != nil {
			t.Fatal(err)
		}
		a, err := Alpha(tbl.CoveredEntropies())
		if err != nil {
			t.Fatal(err)
		}
		return a
	}
	if a1, a7 := alphaOf(1), alphaOf(7); !approxEqual(a1, a7) {
		t.Fatal("alpha not scale invariant:", a1, "vs", a7)
	}
}

func TestBeta(t *testing.T) {
	names := []string{"X", "Y", "Z"}
	alphas := []float64{0.5, 0.8, 0.8}
	b, err := Beta(names, alphas, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !approxEqual(float64(b.At(0, 1)), 0.3) {
		t.Fatal("beta(X,Y) got", b.At(0, 1), "want 0.3")
	}
	for i := 0; i < b.N(); i++ {
		if b.At(i, i) != 0 {
			t.Fatal("diagonal entry", i, "is", b.At(i, i))
		}
		for j := 0; j < b.N(); j++ {
			if b.At(i, j) != b.At(j, i) {
				t.Fatalf("asymmetry at (%d,%d)", i, j)
			}
			if b.At(i, j) < 0 {
				t.Fatalf("negative weight at (%d,%d)", i, j)
			}
		}
	}
}

func TestBetaSigned(t *testing.T) {
	b, err := Beta([]string{"X", "Y"}, []float64{0.5, 0.8}, &BetaOpts{Signed: true})
	if err != nil {
		t.Fatal(err)
	}
	if !approxEqual(float64(b.At(0, 1)), -0.3) || !approxEqual(float64(b.At(1, 0)), 0.3) {
		t.Fatal("signed beta got", b.At(0, 1), b.At(1, 0))
	}
}

func TestBetaErrors(t *testing.T) {
	if _, err := Beta([]string{"X"}, []float64{0.5}, nil); !errors.Is(err, common.ErrInsufficientData) {
		t.Fatal("one sample got", err, "want ErrInsufficientData")
	}
	if _, err := Beta([]string{"X", "Y"}, []float64{0.5}, nil); !errors.Is(err, common.ErrInvalidInput) {
		t.Fatal("mismatched lengths got", err, "want ErrInvalidInput")
	}
}

func TestGraph(t *testing.T) {
	names := []string{"a", "b", "c", "d"}
	alphas := []float64{0.1, 0.4, 0.2, 0.9}
	b, err := Beta(names, alphas, nil)
	if err != nil {
		t.Fatal(err)
	}
	g := BuildGraph(b)

	n := len(names)
	if len(g.Edges) != n*(n-1)/2 {
		t.Fatal("edges got", len(g.Edges), "want", n*(n-1)/2)
	}
	if d := cmp.Diff(names, g.Nodes); d != "" {
		t.Fatal("nodes:", d)
	}
	seen := make(map[[2]string]bool)
	ndx := func(name string) int {
		for i, s := range names {
			if s == name {
				return i
			}
		}
		t.Fatal("edge names an unknown node", name)
		return -1
	}
	for _, e := range g.Edges {
		if e.A == e.B {
			t.Fatal("self edge on", e.A)
		}
		if seen[[2]string{e.A, e.B}] || seen[[2]string{e.B, e.A}] {
			t.Fatal("duplicate edge", e.A, e.B)
		}
		seen[[2]string{e.A, e.B}] = true
		if want := b.At(ndx(e.A), ndx(e.B)); e.Weight != want {
			t.Fatalf("edge %s-%s weight %g want %g", e.A, e.B, e.Weight, want)
		}
		if e.Weight < 0 {
			t.Fatal("negative edge weight on", e.A, e.B)
		}
	}
}

// The worked example: two covered positions with entropies 0 and 1
// give alpha 0.5, against a sample at 0.8 the single edge is 0.3.
func TestWorkedExample(t *testing.T) {
	aX, err := Alpha([]float32{0, 1})
	if err != nil {
		t.Fatal(err)
	}
	aY, err := Alpha([]float32{0.8})
	if err != nil {
		t.Fatal(err)
	}
	b, err := Beta([]string{"X", "Y"}, []float64{aX, aY}, nil)
	if err != nil {
		t.Fatal(err)
	}
	g := BuildGraph(b)
	if len(g.Edges) != 1 {
		t.Fatal("want exactly one edge, got", len(g.Edges))
	}
	if e := g.Edges[0]; e.A != "X" || e.B != "Y" || !approxEqual(float64(e.Weight), 0.3) {
		t.Fatal("edge got", e)
	}
}
