// 14 Mar 2023
// Reading and writing position frequency matrices as csv files.
// The layout is the transpose of what we keep in memory: one header
// line naming the symbols, then one line of counts per position. It
// is what spreadsheet people expect and what the plotting scripts
// already eat.
// Reading uses mmap. The files can be long for deep sequencing runs
// and we only ever walk them once.

package freq

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/edsrzf/mmap-go"
	"github.com/qsabio/qsa/pkg/freq/common"
)

// WritePFM writes the counts of a sample to an open writer.
func WritePFM(fp io.Writer, s *Sample) error {
	parts := make([]string, s.alpha.Len())
	for i, c := range s.alpha.Syms() {
		parts[i] = `"` + string(c) + `"`
	}
	if _, err := fmt.Fprintln(fp, strings.Join(parts, ",")); err != nil {
		return err
	}
	ncol := s.NPos()
	buf := make([]float32, s.alpha.Len())
	for icol := 0; icol < ncol; icol++ {
		s.Counts(icol, buf)
		for i, v := range buf {
			if i > 0 {
				fmt.Fprint(fp, ",")
			}
			fmt.Fprintf(fp, "%g", v)
		}
		if _, err := fmt.Fprintln(fp); err != nil {
			return err
		}
	}
	return nil
}

// WritePFMFile writes the counts of a sample to a named file.
func WritePFMFile(fname string, s *Sample) error {
	fp, err := os.Create(fname)
	if err != nil {
		return fmt.Errorf("pfm output file %v: %w", fname, err)
	}
	defer fp.Close()
	return WritePFM(fp, s)
}

// unquote strips the quotes a spreadsheet may have put around a
// header field.
func unquote(b []byte) []byte {
	return bytes.Trim(bytes.TrimSpace(b), `"`)
}

// parsePFM does the work for ReadPFMFile on an in-memory byte slice.
func parsePFM(name string, buf []byte) (*Sample, error) {
	lines := bytes.Split(buf, []byte{'\n'})
	// Drop trailing blank lines, keep interior ones as errors.
	for len(lines) > 0 && len(bytes.TrimSpace(lines[len(lines)-1])) == 0 {
		lines = lines[:len(lines)-1]
	}
	if len(lines) < 2 {
		return nil, fmt.Errorf("pfm %s: no counts after the header: %w",
			name, common.ErrInsufficientData)
	}

	// The header fixes the alphabet, so files carrying an N or gap
	// column work without being told.
	var syms []byte
	for _, f := range bytes.Split(lines[0], []byte{','}) {
		f = unquote(f)
		if len(f) != 1 {
			return nil, fmt.Errorf("pfm %s: header field %q is not one symbol: %w",
				name, f, common.ErrInvalidInput)
		}
		syms = append(syms, f[0])
	}
	alpha := NewAlphabet(string(syms))

	s := NewSample(name, alpha, len(lines)-1)
	row := make([]float32, alpha.Len())
	for i, line := range lines[1:] {
		fields := bytes.Split(line, []byte{','})
		if len(fields) != alpha.Len() {
			return nil, fmt.Errorf("pfm %s line %d: got %d fields, want %d: %w",
				name, i+2, len(fields), alpha.Len(), common.ErrInvalidInput)
		}
		for j, f := range fields {
			v, err := strconv.ParseFloat(string(bytes.TrimSpace(f)), 32)
			if err != nil {
				return nil, fmt.Errorf("pfm %s line %d: %v: %w",
					name, i+2, err, common.ErrInvalidInput)
			}
			row[j] = float32(v)
		}
		if err := s.SetCounts(i, row); err != nil {
			return nil, err
		}
	}
	if err := s.Seal(); err != nil {
		return nil, err
	}
	return s, nil
}

// ReadPFMFile reads a position frequency matrix written by WritePFM.
// The sample takes its name from the file name.
func ReadPFMFile(fname string) (*Sample, error) {
	fp, err := os.Open(fname)
	if err != nil {
		return nil, fmt.Errorf("pfm file: %w", err)
	}
	defer fp.Close()
	mm, err := mmap.Map(fp, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("mapping %v: %w", fname, err)
	}
	defer mm.Unmap()

	base := filepath.Base(fname)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return parsePFM(name, mm)
}
