// 18 Mar 2023
// Package fastafreq tallies a multiple alignment of reads in fasta
// format into a position frequency table. It is the way in for data
// that never saw a mapper, or that somebody has already aligned and
// curated by hand.

package fastafreq

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/qsabio/qsa/pkg/freq"
	"github.com/qsabio/qsa/pkg/freq/common"
)

const cmmtChar = '>'

// readAligned pulls the sequences out of a fasta stream. Comments are
// thrown away, whitespace inside sequences is removed, case is
// folded to upper. All sequences must have the same length, since
// they are columns of one alignment.
func readAligned(rdr io.Reader, name string) ([][]byte, error) {
	var seqs [][]byte
	var cur []byte
	inSeq := false

	scn := bufio.NewScanner(rdr)
	scn.Buffer(make([]byte, 64*1024), 1024*1024)
	for scn.Scan() {
		line := bytes.TrimSpace(scn.Bytes())
		if len(line) == 0 {
			continue
		}
		if line[0] == cmmtChar {
			if inSeq {
				seqs = append(seqs, cur)
				cur = nil
			}
			inSeq = true
			continue
		}
		if !inSeq {
			return nil, fmt.Errorf("fasta %s: sequence before first comment: %w",
				name, common.ErrInvalidInput)
		}
		cur = append(cur, bytes.ToUpper(line)...)
	}
	if err := scn.Err(); err != nil {
		return nil, fmt.Errorf("fasta %s: %w", name, err)
	}
	if inSeq {
		seqs = append(seqs, cur)
	}
	if len(seqs) == 0 {
		return nil, fmt.Errorf("fasta %s: no sequences found: %w",
			name, common.ErrInsufficientData)
	}
	for i, s := range seqs {
		if len(s) == 0 {
			return nil, fmt.Errorf("fasta %s: zero length sequence %d: %w",
				name, i+1, common.ErrInvalidInput)
		}
		if len(s) != len(seqs[0]) {
			return nil, fmt.Errorf(
				"fasta %s: sequence %d has length %d, first has %d, not an alignment: %w",
				name, i+1, len(s), len(seqs[0]), common.ErrInvalidInput)
		}
	}
	return seqs, nil
}

// ReadFrom tallies an aligned fasta stream into a sealed sample. A
// nil alphabet means plain DNA, in which case gaps and N quietly
// disappear from the tallies rather than being counted as symbols.
func ReadFrom(rdr io.Reader, name string, alpha *freq.Alphabet) (*freq.Sample, error) {
	seqs, err := readAligned(rdr, name)
	if err != nil {
		return nil, err
	}
	if alpha == nil {
		alpha = freq.DNA
	}
	s := freq.NewSample(name, alpha, len(seqs[0]))
	for _, ss := range seqs {
		for i, c := range ss {
			if c == 'U' {
				c = 'T'
			}
			s.Add(c, i)
		}
	}
	if err := s.Seal(); err != nil {
		return nil, err
	}
	return s, nil
}

// ReadFile tallies an aligned fasta file. The sample takes its name
// from the file name.
func ReadFile(fname string, alpha *freq.Alphabet) (*freq.Sample, error) {
	fp, err := os.Open(fname)
	if err != nil {
		return nil, fmt.Errorf("fasta file: %w", err)
	}
	defer fp.Close()
	base := filepath.Base(fname)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return ReadFrom(fp, name, alpha)
}
