// 22 Mar 2023
// Getting samples in. The command line takes files and directories in
// any mixture; directories are expanded to the analysable files in
// them, and each file is dispatched on its extension.

package qsa

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/qsabio/qsa/pkg/bamfreq"
	"github.com/qsabio/qsa/pkg/fastafreq"
	"github.com/qsabio/qsa/pkg/freq"
	"github.com/qsabio/qsa/pkg/freq/common"
)

// the extensions we know how to ingest, lowercased
func known(ext string) bool {
	switch ext {
	case ".bam", ".csv", ".fa", ".fasta", ".mfa":
		return true
	}
	return false
}

// expandDir returns the analysable files directly inside dir.
func expandDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("input directory: %w", err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if known(strings.ToLower(filepath.Ext(e.Name()))) {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	return files, nil
}

// gatherPaths flattens the command line arguments to a list of files.
func gatherPaths(args []string) ([]string, error) {
	var files []string
	for _, a := range args {
		fi, err := os.Stat(a)
		if err != nil {
			return nil, fmt.Errorf("input: %w", err)
		}
		if fi.IsDir() {
			inside, err := expandDir(a)
			if err != nil {
				return nil, err
			}
			files = append(files, inside...)
		} else {
			files = append(files, a)
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no input files: %w", common.ErrInsufficientData)
	}
	return files, nil
}

// ingestOne reads one file into a trimmed, sealed sample. BAM files
// additionally report their reference name for the consistency check.
func ingestOne(fname string, alpha *freq.Alphabet, flags *CmdFlag) (*bamfreq.Result, error) {
	switch strings.ToLower(filepath.Ext(fname)) {
	case ".bam":
		return bamfreq.ReadFile(fname, &bamfreq.Options{
			Start:     flags.Start,
			End:       flags.End,
			Threshold: flags.Threshold,
			Alpha:     alpha,
		})
	case ".csv":
		s, err := freq.ReadPFMFile(fname)
		if err != nil {
			return nil, err
		}
		if s, err = s.Trim(flags.Threshold); err != nil {
			return nil, err
		}
		return &bamfreq.Result{Sample: s}, nil
	case ".fa", ".fasta", ".mfa":
		s, err := fastafreq.ReadFile(fname, alpha)
		if err != nil {
			return nil, err
		}
		if s, err = s.Trim(flags.Threshold); err != nil {
			return nil, err
		}
		return &bamfreq.Result{Sample: s}, nil
	}
	return nil, fmt.Errorf("%s: do not know how to read this: %w",
		fname, common.ErrInvalidInput)
}

// ingest reads all inputs and runs the reference check unless it was
// switched off.
func ingest(args []string, alpha *freq.Alphabet, flags *CmdFlag) ([]*freq.Sample, error) {
	files, err := gatherPaths(args)
	if err != nil {
		return nil, err
	}
	results := make([]*bamfreq.Result, 0, len(files))
	for _, f := range files {
		r, err := ingestOne(f, alpha, flags)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	if !flags.NoChecks {
		if err := bamfreq.CheckRefs(results); err != nil {
			return nil, err
		}
	}
	samples := make([]*freq.Sample, len(results))
	for i, r := range results {
		samples[i] = r.Sample
	}
	return samples, nil
}
