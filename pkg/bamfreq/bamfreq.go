// 16 Mar 2023
// Package bamfreq turns a BAM file of aligned reads into a position
// frequency table. Analysis never touches alignment files directly;
// this is the collaborator that feeds it.
// Reads are taken as laid down by the mapper, from the record's
// alignment start. Soft clips and indels shift later bases, which is
// the same simplification the pileup tools in this niche make for
// deeply covered amplicons.

package bamfreq

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/biogo/hts/bam"
	"github.com/biogo/hts/sam"

	"github.com/qsabio/qsa/pkg/freq"
	"github.com/qsabio/qsa/pkg/freq/common"
)

// Options steers the ingestion. Zero Start and End means take the
// reference length from the BAM header. Threshold is the relative
// coverage below which leading and trailing positions are cut; zero
// disables the trim. Checks makes sure every file was mapped against
// the same reference.
type Options struct {
	Start, End int
	Threshold  float64
	Checks     bool
	Alpha      *freq.Alphabet
}

// Result is one ingested sample plus the reference name from the BAM
// header, kept for the cross-file consistency check. RefName is empty
// when the file has no reference in its header.
type Result struct {
	Sample  *freq.Sample
	RefName string
}

// AddRecord tallies one read into the table. The table covers
// reference positions [start, start+NPos). Reads which are unmapped
// or stick out of the window are dropped, matching the range
// selection flags of the command line. Returns whether the read was
// used.
func AddRecord(s *freq.Sample, start int, rec *sam.Record) bool {
	if rec.Flags&sam.Unmapped != 0 {
		return false
	}
	seq := rec.Seq.Expand()
	rs, re := rec.Pos, rec.Pos+len(seq)
	if rs < start || re > start+s.NPos() {
		return false
	}
	for i, c := range seq {
		if c == 'U' || c == 'u' { // RNA mappings happen
			c = 'T'
		}
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		s.Add(c, rs-start+i) // symbols off the alphabet (N etc) just drop
	}
	return true
}

// ReadFrom ingests one BAM stream. It exists so tests can feed an
// in-memory BAM; ReadFile is the wrapper everyone else uses.
func ReadFrom(r io.Reader, name string, opts *Options) (*Result, error) {
	br, err := bam.NewReader(r, 0)
	if err != nil {
		return nil, fmt.Errorf("bam %s: %v: %w", name, err, common.ErrInvalidInput)
	}
	defer br.Close()

	var refName string
	start, end := opts.Start, opts.End
	if refs := br.Header().Refs(); len(refs) > 0 {
		refName = refs[0].Name()
		if end <= start {
			start, end = 0, refs[0].Len()
		}
	}
	if end <= start {
		return nil, fmt.Errorf("bam %s: no reference in header, give an explicit range: %w",
			name, common.ErrInsufficientData)
	}

	alpha := opts.Alpha
	if alpha == nil {
		alpha = freq.DNA
	}
	s := freq.NewSample(name, alpha, end-start)
	for {
		rec, err := br.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("bam %s: %v: %w", name, err, common.ErrInvalidInput)
		}
		AddRecord(s, start, rec)
	}

	s, err = s.Trim(opts.Threshold)
	if err != nil {
		return nil, err
	}
	return &Result{Sample: s, RefName: refName}, nil
}

// ReadFile ingests one BAM file. The sample takes its name from the
// file name.
func ReadFile(fname string, opts *Options) (*Result, error) {
	fp, err := os.Open(fname)
	if err != nil {
		return nil, fmt.Errorf("bam file: %w", err)
	}
	defer fp.Close()
	base := filepath.Base(fname)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return ReadFrom(fp, name, opts)
}

// CheckRefs makes sure all results were mapped against the same
// reference. Files without a header reference are let through, since
// there is nothing to compare.
func CheckRefs(results []*Result) error {
	var want string
	for _, r := range results {
		if r.RefName == "" {
			continue
		}
		if want == "" {
			want = r.RefName
			continue
		}
		if r.RefName != want {
			return fmt.Errorf("sample %s mapped against %q, others against %q: %w",
				r.Sample.Name(), r.RefName, want, common.ErrInvalidInput)
		}
	}
	return nil
}
