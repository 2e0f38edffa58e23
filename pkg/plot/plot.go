// 20 Mar 2023
// Package plot draws the two pictures people actually look at: the
// efficiency profile along the genome and the α-diversity bars. It
// renders straight to png. Axis text needs a ttf font; without one
// the plots are drawn unlabelled rather than failing, since the font
// is a nicety and the numbers are all in the csv files anyway.

package plot

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
)

// The sample palette. Same order every run, so a sample keeps its
// colour between the bar plot and anything drawn later.
var palette = []color.RGBA{
	{0xe6, 0x19, 0x4b, 0xff}, {0x3c, 0xb4, 0x4b, 0xff}, {0xff, 0xe1, 0x19, 0xff},
	{0x43, 0x63, 0xd8, 0xff}, {0xf5, 0x82, 0x31, 0xff}, {0x91, 0x1e, 0xb4, 0xff},
	{0x46, 0xf0, 0xf0, 0xff}, {0xf0, 0x32, 0xe6, 0xff}, {0xbc, 0xf6, 0x0c, 0xff},
	{0xfa, 0xbe, 0xbe, 0xff}, {0x00, 0x80, 0x80, 0xff}, {0xe6, 0xbe, 0xff, 0xff},
	{0x9a, 0x63, 0x24, 0xff}, {0xff, 0xfa, 0xc8, 0xff}, {0x80, 0x00, 0x00, 0xff},
	{0xaa, 0xff, 0xc3, 0xff}, {0x80, 0x80, 0x00, 0xff}, {0xff, 0xd8, 0xb1, 0xff},
	{0x00, 0x00, 0x75, 0xff}, {0x80, 0x80, 0x80, 0xff}, {0x00, 0x00, 0x00, 0xff},
}

var (
	cAxis = color.RGBA{0x30, 0x30, 0x30, 0xff}
	cGrid = color.RGBA{0xd0, 0xd0, 0xd0, 0xff}
	cLine = color.RGBA{0xe6, 0x19, 0x4b, 0xff} // the "r" of the old scripts
)

// Style is the little that can be configured. Zero width or height
// picks the defaults.
type Style struct {
	W, H int
	Font *truetype.Font
}

func (st *Style) size() (int, int) {
	w, h := 1000, 500
	if st != nil && st.W > 0 {
		w = st.W
	}
	if st != nil && st.H > 0 {
		h = st.H
	}
	return w, h
}

// LoadFont reads a ttf file for axis text.
func LoadFont(fname string) (*truetype.Font, error) {
	b, err := os.ReadFile(fname)
	if err != nil {
		return nil, fmt.Errorf("font file: %w", err)
	}
	f, err := freetype.ParseFont(b)
	if err != nil {
		return nil, fmt.Errorf("font file %v: %w", fname, err)
	}
	return f, nil
}

// margins around the plot area, in pixels
const (
	mLeft, mRight = 50, 15
	mTop, mBottom = 15, 35
)

// text draws s with its baseline at (x, y), quietly doing nothing
// without a font.
func text(img *image.RGBA, ft *truetype.Font, s string, x, y int) {
	if ft == nil {
		return
	}
	c := freetype.NewContext()
	c.SetDPI(72)
	c.SetFont(ft)
	c.SetFontSize(12)
	c.SetClip(img.Bounds())
	c.SetDst(img)
	c.SetSrc(image.NewUniform(cAxis))
	c.DrawString(s, freetype.Pt(x, y)) // errors here are not worth failing a run over
}

func hline(img *image.RGBA, x0, x1, y int, c color.RGBA) {
	for x := x0; x <= x1; x++ {
		img.SetRGBA(x, y, c)
	}
}

func vline(img *image.RGBA, x, y0, y1 int, c color.RGBA) {
	for y := y0; y <= y1; y++ {
		img.SetRGBA(x, y, c)
	}
}

// seg draws a steep-friendly segment between two points. Our curves
// have one sample per x step, so walking the longer axis is enough.
func seg(img *image.RGBA, x0, y0, x1, y1 int, c color.RGBA) {
	dx, dy := x1-x0, y1-y0
	steps := dx
	if dy < 0 && -dy > steps {
		steps = -dy
	} else if dy > steps {
		steps = dy
	}
	if steps == 0 {
		img.SetRGBA(x0, y0, c)
		return
	}
	for i := 0; i <= steps; i++ {
		x := x0 + dx*i/steps
		y := y0 + dy*i/steps
		img.SetRGBA(x, y, c)
	}
}

// frame fills the background and draws the axes and horizontal grid
// for a plot whose y axis runs 0..ymax. It returns the mapping from
// (fraction along x, value) to pixels.
func frame(img *image.RGBA, ft *truetype.Font, ymax float64, ylabel string) func(fx, v float64) (int, int) {
	b := img.Bounds()
	draw.Draw(img, b, image.NewUniform(color.White), image.Point{}, draw.Src)

	x0, x1 := mLeft, b.Dx()-mRight
	y0, y1 := b.Dy()-mBottom, mTop
	hline(img, x0, x1, y0, cAxis)
	vline(img, x0, y1, y0, cAxis)

	for i := 1; i <= 4; i++ { // gridlines at quarters, dashed
		y := y0 + i*(y1-y0)/4
		for x := x0 + 1; x <= x1; x += 6 {
			hline(img, x, min(x+2, x1), y, cGrid)
		}
		text(img, ft, fmt.Sprintf("%.2f", ymax*float64(i)/4), 8, y+4)
	}
	text(img, ft, "0.00", 8, y0+4)
	text(img, ft, ylabel, mLeft, 12)

	return func(fx, v float64) (int, int) {
		x := x0 + int(fx*float64(x1-x0))
		y := y0 - int(v/ymax*float64(y0-y1))
		return x, y
	}
}

func ymax(vals []float32) float64 {
	m := 1.0 // entropy style plots want 0..1 even when the data is flat
	for _, v := range vals {
		if float64(v) > m {
			m = float64(v)
		}
	}
	return m
}

// Line plots vals against position, one step per value.
func Line(w io.Writer, vals []float32, ylabel string, st *Style) error {
	if len(vals) == 0 {
		return fmt.Errorf("nothing to plot")
	}
	wd, ht := st.size()
	img := image.NewRGBA(image.Rect(0, 0, wd, ht))
	var ft *truetype.Font
	if st != nil {
		ft = st.Font
	}
	toPx := frame(img, ft, ymax(vals), ylabel)

	px, py := toPx(0, float64(vals[0]))
	for i := 1; i < len(vals); i++ {
		x, y := toPx(float64(i)/float64(len(vals)-1), float64(vals[i]))
		seg(img, px, py, x, y, cLine)
		px, py = x, y
	}
	text(img, ft, "position", wd/2, ht-10)
	return png.Encode(w, img)
}

// Bars plots one bar per label, coloured from the palette.
func Bars(w io.Writer, labels []string, vals []float32, ylabel string, st *Style) error {
	if len(vals) == 0 || len(labels) != len(vals) {
		return fmt.Errorf("bars: %d labels for %d values", len(labels), len(vals))
	}
	wd, ht := st.size()
	img := image.NewRGBA(image.Rect(0, 0, wd, ht))
	var ft *truetype.Font
	if st != nil {
		ft = st.Font
	}
	toPx := frame(img, ft, ymax(vals), ylabel)

	n := len(vals)
	for i, v := range vals {
		xl, _ := toPx((float64(i)+0.15)/float64(n), 0)
		xr, _ := toPx((float64(i)+0.85)/float64(n), 0)
		_, yt := toPx(0, float64(v))
		_, yb := toPx(0, 0)
		c := palette[i%len(palette)]
		for x := xl; x <= xr; x++ {
			vline(img, x, yt, yb-1, c)
		}
		text(img, ft, labels[i], (xl+xr)/2-4*len(labels[i])/2, ht-10)
	}
	return png.Encode(w, img)
}
