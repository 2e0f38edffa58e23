// 17 Mar 2023

package bamfreq_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/biogo/hts/bam"
	"github.com/biogo/hts/sam"
	"github.com/google/go-cmp/cmp"

	. "github.com/qsabio/qsa/pkg/bamfreq"
	"github.com/qsabio/qsa/pkg/freq"
	"github.com/qsabio/qsa/pkg/freq/common"
)

const refLen = 10

func mkRef(t *testing.T, name string) *sam.Reference {
	ref, err := sam.NewReference(name, "", "", refLen, nil, nil)
	if err != nil {
		t.Fatal("making reference", err)
	}
	// A reference only gets a valid ID once it is owned by a header,
	// and sam.NewRecord refuses references with no ID.
	if _, err := sam.NewHeader(nil, []*sam.Reference{ref}); err != nil {
		t.Fatal("registering reference", err)
	}
	return ref
}

func mkRec(t *testing.T, ref *sam.Reference, pos int, seq string) *sam.Record {
	qual := make([]byte, len(seq))
	for i := range qual {
		qual[i] = 40
	}
	cig := []sam.CigarOp{sam.NewCigarOp(sam.CigarMatch, len(seq))}
	rec, err := sam.NewRecord("read", ref, nil, pos, -1, 0, 50, cig, []byte(seq), qual, nil)
	if err != nil {
		t.Fatal("making record", err)
	}
	return rec
}

func TestAddRecord(t *testing.T) {
	ref := mkRef(t, "ref1")
	s := freq.NewSample("tst", freq.DNA, refLen)

	if !AddRecord(s, 0, mkRec(t, ref, 2, "ACGU")) {
		t.Fatal("in-window read was dropped")
	}
	if AddRecord(s, 0, mkRec(t, ref, 8, "ACGT")) {
		t.Fatal("read hanging over the window end was tallied")
	}
	unmapped := mkRec(t, ref, 2, "ACGT")
	unmapped.Flags |= sam.Unmapped
	if AddRecord(s, 0, unmapped) {
		t.Fatal("unmapped read was tallied")
	}

	if err := s.Seal(); err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff([]float32{1, 0, 0, 0}, s.Counts(2, nil)); d != "" {
		t.Fatal("counts at 2:", d)
	}
	// the U must land in the T row
	if d := cmp.Diff([]float32{0, 0, 0, 1}, s.Counts(5, nil)); d != "" {
		t.Fatal("counts at 5:", d)
	}
	if s.Covered(0) || s.Covered(6) {
		t.Fatal("positions outside the read marked covered")
	}
}

// mkBam writes records against one reference into an in-memory BAM.
func mkBam(t *testing.T, ref *sam.Reference, recs []*sam.Record) *bytes.Buffer {
	// mkRef's header already owns ref, so give this header its own copy.
	h, err := sam.NewHeader(nil, []*sam.Reference{ref.Clone()})
	if err != nil {
		t.Fatal("making header", err)
	}
	var buf bytes.Buffer
	bw, err := bam.NewWriter(&buf, h, 1)
	if err != nil {
		t.Fatal("making writer", err)
	}
	for _, r := range recs {
		if err := bw.Write(r); err != nil {
			t.Fatal("writing record", err)
		}
	}
	if err := bw.Close(); err != nil {
		t.Fatal("closing writer", err)
	}
	return &buf
}

func TestReadFrom(t *testing.T) {
	ref := mkRef(t, "ref1")
	buf := mkBam(t, ref, []*sam.Record{
		mkRec(t, ref, 2, "ACGT"),
		mkRec(t, ref, 2, "ACGT"),
		mkRec(t, ref, 3, "CGTA"),
	})

	r, err := ReadFrom(buf, "s1", &Options{})
	if err != nil {
		t.Fatal(err)
	}
	if r.RefName != "ref1" {
		t.Fatal("reference name got", r.RefName)
	}
	s := r.Sample
	if s.NPos() != refLen {
		t.Fatal("window from header got", s.NPos(), "want", refLen)
	}
	if d := cmp.Diff([]float32{2, 0, 0, 0}, s.Counts(2, nil)); d != "" {
		t.Fatal("counts at 2:", d)
	}
	if d := cmp.Diff([]float32{0, 3, 0, 0}, s.Counts(3, nil)); d != "" {
		t.Fatal("counts at 3:", d)
	}
}

func TestReadFromTrims(t *testing.T) {
	ref := mkRef(t, "ref1")
	recs := []*sam.Record{mkRec(t, ref, 2, "ACGT")}
	for i := 0; i < 9; i++ { // depth 10 in the middle two columns
		recs = append(recs, mkRec(t, ref, 4, "GT"))
	}
	buf := mkBam(t, ref, recs)

	r, err := ReadFrom(buf, "s1", &Options{Threshold: 0.65})
	if err != nil {
		t.Fatal(err)
	}
	if r.Sample.NPos() != 2 {
		t.Fatal("trimmed width got", r.Sample.NPos(), "want 2")
	}
}

func TestReadFromRange(t *testing.T) {
	ref := mkRef(t, "ref1")
	buf := mkBam(t, ref, []*sam.Record{
		mkRec(t, ref, 2, "ACGT"), // inside [2, 6)
		mkRec(t, ref, 5, "ACGT"), // sticks out, dropped
	})
	r, err := ReadFrom(buf, "s1", &Options{Start: 2, End: 6})
	if err != nil {
		t.Fatal(err)
	}
	s := r.Sample
	if s.NPos() != 4 {
		t.Fatal("window got", s.NPos(), "want 4")
	}
	if d := cmp.Diff([]float32{1, 0, 0, 0}, s.Counts(0, nil)); d != "" {
		t.Fatal("counts at window start:", d)
	}
	if s.Covered(3) != true {
		t.Fatal("window end should be covered by the first read")
	}
}

func TestCheckRefs(t *testing.T) {
	mk := func(name, refname string) *Result {
		s := freq.NewSample(name, freq.DNA, 1)
		return &Result{Sample: s, RefName: refname}
	}
	ok := []*Result{mk("a", "ref1"), mk("b", ""), mk("c", "ref1")}
	if err := CheckRefs(ok); err != nil {
		t.Fatal("matching references rejected:", err)
	}
	bad := []*Result{mk("a", "ref1"), mk("b", "ref2")}
	if err := CheckRefs(bad); !errors.Is(err, common.ErrInvalidInput) {
		t.Fatal("mismatched references got", err)
	}
}

func TestRangeFromHeader(t *testing.T) {
	// A range ending at or before its start means take the window
	// from the header reference.
	ref := mkRef(t, "ref1")
	buf := mkBam(t, ref, []*sam.Record{mkRec(t, ref, 2, "ACGT")})
	if _, err := ReadFrom(buf, "s1", &Options{Start: 5, End: 5}); err != nil {
		t.Fatal("range from header should have been used:", err)
	}
}
