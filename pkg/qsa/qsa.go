// 21 Mar 2023
// Package qsa is the analysis pipeline: frequency tables in, entropy
// profiles, α values, the β matrix and its graph out. The cmd front
// end only parses flags and calls Mymain.

package qsa

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang/freetype/truetype"

	"github.com/qsabio/qsa/pkg/diversity"
	"github.com/qsabio/qsa/pkg/entropy"
	"github.com/qsabio/qsa/pkg/freq"
	"github.com/qsabio/qsa/pkg/plot"
)

// CmdFlag collects everything the command line can set.
type CmdFlag struct {
	Start       int     // skip reads starting before this
	End         int     // skip reads ending after this
	Threshold   float64 // relative coverage needed at the region edges
	NoChecks    bool    // skip the same-reference check
	OutDir      string  // where all output lands
	GapsAreChar bool    // gap and N are valid symbols
	LogBase     float64 // base for the entropy logarithms
	Signed      bool    // write signed instead of absolute beta values
	Plot        bool    // also draw png plots
	FontPath    string  // ttf for plot labels
	Offset      int     // add this to position numbering on output
	Time        bool    // do we want to print out run time ?
}

// alphabet picks the run alphabet from the flags.
func (flags *CmdFlag) alphabet() *freq.Alphabet {
	if flags.GapsAreChar {
		return freq.DNAGap
	}
	return freq.DNA
}

// perSample writes one sample's table outputs and, if asked, its
// efficiency plot. It returns the entropy profile for aggregation.
func perSample(s *freq.Sample, cfg *entropy.Config, flags *CmdFlag,
	font *truetype.Font) (*entropy.Table, error) {

	tbl, err := entropy.Profile(cfg, s)
	if err != nil {
		return nil, err
	}
	out := func(suffix string) string {
		return filepath.Join(flags.OutDir, s.Name()+suffix)
	}
	if err := freq.WritePFMFile(out(".csv"), s); err != nil {
		return nil, err
	}
	if err := writeEntropyTable(out("-entropy.csv"), tbl, flags.Offset); err != nil {
		return nil, err
	}
	if flags.Plot {
		fp, err := create(out("-efficiency.png"))
		if err != nil {
			return nil, err
		}
		defer fp.Close()
		st := &plot.Style{Font: font}
		if err := plot.Line(fp, tbl.Efficiency, "efficiency", st); err != nil {
			return nil, fmt.Errorf("plotting %s: %w", s.Name(), err)
		}
	}
	return tbl, nil
}

// Mymain is the main function for a whole analysis run.
func Mymain(flags *CmdFlag, args []string) error {
	if flags.Time {
		startTime := time.Now()
		end := func() { // Wrapping in a closure is helpful. Gives the right time.
			fmt.Println("finished after", time.Since(startTime).Milliseconds(), "ms")
		}
		defer end()
	}
	if flags.LogBase <= 1 {
		flags.LogBase = 2
	}
	cfg := &entropy.Config{Alpha: flags.alphabet(), LogBase: flags.LogBase}

	var font *truetype.Font
	if flags.Plot && flags.FontPath != "" {
		var err error
		if font, err = plot.LoadFont(flags.FontPath); err != nil {
			return err
		}
	}

	samples, err := ingest(args, cfg.Alpha, flags)
	if err != nil {
		return fmt.Errorf("fail reading samples: %w", err)
	}
	if err := os.MkdirAll(flags.OutDir, 0777); err != nil {
		return fmt.Errorf("output directory: %w", err)
	}

	// Per-sample entropy, then the α values. If any sample's α is
	// undefined the whole pairwise stage is off; we do not put out a
	// β matrix computed from the survivors behind the caller's back.
	names := make([]string, len(samples))
	alphas := make([]float64, len(samples))
	for i, s := range samples {
		tbl, err := perSample(s, cfg, flags, font)
		if err != nil {
			return err
		}
		if alphas[i], err = diversity.Alpha(tbl.CoveredEntropies()); err != nil {
			return fmt.Errorf("sample %s: %w", s.Name(), err)
		}
		names[i] = s.Name()
	}

	if err := writeAlpha(filepath.Join(flags.OutDir, "alpha-diversity.csv"),
		names, alphas); err != nil {
		return err
	}
	if flags.Plot {
		fp, err := create(filepath.Join(flags.OutDir, "alpha-diversity.png"))
		if err != nil {
			return err
		}
		defer fp.Close()
		v32 := make([]float32, len(alphas))
		for i, a := range alphas {
			v32[i] = float32(a)
		}
		if err := plot.Bars(fp, names, v32, "alpha-diversity", &plot.Style{Font: font}); err != nil {
			return err
		}
	}

	beta, err := diversity.Beta(names, alphas, &diversity.BetaOpts{Signed: flags.Signed})
	if err != nil {
		return err
	}
	if err := writeBeta(filepath.Join(flags.OutDir, "beta-diversity.csv"), beta); err != nil {
		return err
	}

	// The graph always gets the symmetric, non-negative form, even
	// when the matrix on disk is signed.
	gsrc := beta
	if flags.Signed {
		if gsrc, err = diversity.Beta(names, alphas, nil); err != nil {
			return err
		}
	}
	return writeGraph(filepath.Join(flags.OutDir, "beta-graph.csv"),
		diversity.BuildGraph(gsrc))
}
