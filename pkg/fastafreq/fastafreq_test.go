// 18 Mar 2023

package fastafreq_test

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	. "github.com/qsabio/qsa/pkg/fastafreq"
	"github.com/qsabio/qsa/pkg/freq"
	"github.com/qsabio/qsa/pkg/freq/common"
)

var seqstring string = `>s1
ACGT
> s2
ACGA
> s3
acgt`

func TestTally(t *testing.T) {
	s, err := ReadFrom(strings.NewReader(seqstring), "tst", nil)
	if err != nil {
		t.Fatal("reading simple seqs", err)
	}
	if s.NPos() != 4 {
		t.Fatal("positions got", s.NPos(), "want 4")
	}
	if d := cmp.Diff([]float32{3, 0, 0, 0}, s.Counts(0, nil)); d != "" {
		t.Fatal("column 0:", d)
	}
	if d := cmp.Diff([]float32{1, 0, 0, 2}, s.Counts(3, nil)); d != "" {
		t.Fatal("column 3:", d)
	}
}

// Gaps vanish with the plain alphabet but count with the gappy one.
func TestGapHandling(t *testing.T) {
	in := ">a\nA-\n>b\nAG\n"
	s, err := ReadFrom(strings.NewReader(in), "tst", nil)
	if err != nil {
		t.Fatal(err)
	}
	var total float32
	for _, v := range s.Counts(1, nil) {
		total += v
	}
	if total != 1 {
		t.Fatal("gap should be dropped with plain DNA, column total", total)
	}

	s, err = ReadFrom(strings.NewReader(in), "tst", freq.DNAGap)
	if err != nil {
		t.Fatal(err)
	}
	if s.Counts(1, nil)[freq.DNAGap.Index('-')] != 1 {
		t.Fatal("gap not tallied with the gap alphabet")
	}
}

func TestUBecomesT(t *testing.T) {
	s, err := ReadFrom(strings.NewReader(">a\nUU\n"), "tst", nil)
	if err != nil {
		t.Fatal(err)
	}
	if s.Counts(0, nil)[freq.DNA.Index('T')] != 1 {
		t.Fatal("U was not folded to T")
	}
}

func TestBadInput(t *testing.T) {
	bad := []struct {
		name, in string
		kind     error
	}{
		{"empty", "", common.ErrInsufficientData},
		{"ragged", ">a\nACG\n>b\nAC\n", common.ErrInvalidInput},
		{"no comment", "ACGT\n", common.ErrInvalidInput},
		{"empty seq", ">a\n>b\nAC\n", common.ErrInvalidInput},
	}
	for _, b := range bad {
		if _, err := ReadFrom(strings.NewReader(b.in), b.name, nil); !errors.Is(err, b.kind) {
			t.Fatalf("%s: got %v, want %v", b.name, err, b.kind)
		}
	}
}

func TestReadFile(t *testing.T) {
	fname, err := common.WrtTemp(seqstring)
	if err != nil {
		t.Fatal("fail writing test file")
	}
	defer os.Remove(fname)
	s, err := ReadFile(fname, nil)
	if err != nil {
		t.Fatal(err)
	}
	if s.NPos() != 4 {
		t.Fatal("positions got", s.NPos(), "want 4")
	}
}
