// 25 Mar 2023

/*
Qsa analyses quasispecies virus samples. Each input file becomes one
sample: a table of nucleotide counts per aligned position. From that
it calculates per-position Shannon entropy and efficiency (entropy
normalised by its maximum, so it runs from 0 to 1), one α-diversity
value per sample (mean entropy over covered positions, so samples of
different lengths compare directly), the β-diversity matrix (pairwise
differences of α) and the complete weighted graph over samples that
the matrix defines.

Inputs can be BAM files of mapped reads, position frequency csv files
as written by an earlier run, or aligned fasta files, and directories
containing any of these. Positions with no observations are excluded
from the averages, not counted as zero. Low coverage at the ends of
the amplified region is cut at a relative coverage threshold.

Usage:

	qsa [flags] file_or_dir...

The flags are:

	-s start
		Discard reads starting before this reference position.
	-e end
		Discard reads ending after this reference position.
	-t threshold
		Relative coverage needed before the region edges are trusted.
		The default is 0.65. Use 0 to keep everything.
	-n
		Skip the check that all BAM files were mapped against the same
		reference.
	-o dir
		Output directory, default qsaout, created if missing.
	-g
		Treat gap and N as valid symbols. This changes the alphabet and
		with it the normalising maximum of the efficiency.
	-b base
		Base for the entropy logarithms, default 2.
	-signed
		Write signed alpha differences in the beta matrix instead of
		absolute values. The graph output stays absolute either way.
	-p
		Draw png plots (per-sample efficiency, alpha bars) as well as
		the csv files.
	-font file.ttf
		Font for plot labels. Without it plots are drawn unlabelled.
	-f offset
		Add this to the position numbering on output.
	-time
		Print the run time when done.

Defaults may also come from QSA_* environment variables or a .env
file in the working directory: QSA_OUT_DIR, QSA_THRESHOLD,
QSA_LOG_BASE, QSA_FONT, QSA_PLOTS.

Outputs per run: <sample>.csv (the frequency table), <sample>-entropy.csv,
alpha-diversity.csv, beta-diversity.csv, beta-graph.csv (edge list),
and with -p the png plots.
*/
package main
