// 25 Mar 2023
// Analyse quasispecies samples: per-position entropy, alpha and beta
// diversity, and the divergence graph between samples.

package main

import (
	"flag"
	"fmt"
	"os"
	"path"

	. "github.com/qsabio/qsa/pkg/freq/common"
	"github.com/qsabio/qsa/pkg/qsa"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage:", path.Base(os.Args[0]), "[flags] file_or_dir...")
	long := `Inputs are BAM files, position frequency csv files or aligned fasta
files, or directories containing them, in any mixture. You need at
least two samples for the beta diversity outputs.
All output lands in the output directory (-o).`
	fmt.Fprintln(os.Stderr, long)
	flag.PrintDefaults()
}

func main() {
	flags := qsa.CmdFlag{
		Threshold: 0.65,
		OutDir:    "qsaout",
		LogBase:   2,
	}
	qsa.EnvDefaults(&flags)

	flag.IntVar(&flags.Start, "s", flags.Start, "discard reads starting before this position")
	flag.IntVar(&flags.End, "e", flags.End, "discard reads ending after this position, 0 for no limit")
	flag.Float64Var(&flags.Threshold, "t", flags.Threshold, "relative coverage needed at region edges, 0 disables")
	flag.BoolVar(&flags.NoChecks, "n", flags.NoChecks, "skip the same-reference check across files")
	flag.StringVar(&flags.OutDir, "o", flags.OutDir, "output directory, created if missing")
	flag.BoolVar(&flags.GapsAreChar, "g", flags.GapsAreChar, "gap and N are valid symbols")
	flag.Float64Var(&flags.LogBase, "b", flags.LogBase, "base for entropy logarithms")
	flag.BoolVar(&flags.Signed, "signed", flags.Signed, "write signed instead of absolute beta values")
	flag.BoolVar(&flags.Plot, "p", flags.Plot, "draw png plots as well as csv files")
	flag.StringVar(&flags.FontPath, "font", flags.FontPath, "ttf font for plot labels")
	flag.IntVar(&flags.Offset, "f", flags.Offset, "offset for numbering output, renumbering sites")
	flag.BoolVar(&flags.Time, "time", flags.Time, "print out timing information")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		os.Exit(ExitUsageError)
	}

	if err := qsa.Mymain(&flags, flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitFailure)
	}
	os.Exit(ExitSuccess)
}
