package main

import (
	"image"
	"image/color"
	"image/draw"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/iafilius/featureflux/cmd/featureplot/uihelpers"
	"github.com/iafilius/featureflux/src/analysis"
)

// colorbar geometry inside the strip, in pixels
const (
	barOffsetX = 12
	barWidth   = 18
	barTop     = 48
	barBottom  = 40 // distance from the image bottom
	tickLen    = 4
)

var (
	inkColor    = color.RGBA{R: 51, G: 51, B: 51, A: 255}
	paperColor  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	outlineSize = 1
)

// barRect returns the colour bar rectangle for an image of size w x h whose chart occupies
// the left w-strip pixels.
func barRect(w, h, strip int) image.Rectangle {
	x0 := w - strip + barOffsetX
	return image.Rect(x0, barTop, x0+barWidth, h-barBottom)
}

// barValueAt maps a pixel row inside the bar to a mean distance: Max at the top, Min at the bottom.
func barValueAt(sc *analysis.Scale, bar image.Rectangle, y int) float64 {
	span := bar.Dy() - 1
	if span <= 0 {
		return sc.Max
	}
	frac := float64(y-bar.Min.Y) / float64(span)
	return sc.Max - frac*(sc.Max-sc.Min)
}

// barRowOf is the inverse of barValueAt, rounded to the nearest row.
func barRowOf(sc *analysis.Scale, bar image.Rectangle, d float64) int {
	span := float64(bar.Dy() - 1)
	return bar.Min.Y + int((sc.Max-d)/(sc.Max-sc.Min)*span+0.5)
}

// attachColorbar widens the chart image by strip pixels and paints a vertical colour bar
// with tick labels and a rotated caption. Each row uses sc.Color, the same mapping the
// feature lines use.
func attachColorbar(chartImg image.Image, sc *analysis.Scale, label string, strip int) *image.RGBA {
	cb := chartImg.Bounds()
	w, h := cb.Dx()+strip, cb.Dy()
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(out, out.Bounds(), image.NewUniform(paperColor), image.Point{}, draw.Src)
	draw.Draw(out, image.Rect(0, 0, cb.Dx(), cb.Dy()), chartImg, cb.Min, draw.Src)

	bar := barRect(w, h, strip)
	for y := bar.Min.Y; y < bar.Max.Y; y++ {
		c := drawingColor(sc.Color(barValueAt(sc, bar, y)))
		row := image.Rect(bar.Min.X, y, bar.Max.X, y+1)
		draw.Draw(out, row, image.NewUniform(color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}), image.Point{}, draw.Src)
	}
	strokeRect(out, bar.Inset(-outlineSize), inkColor)

	face := basicfont.Face7x13
	ascent := face.Metrics().Ascent.Ceil()
	for _, v := range uihelpers.BuildNumericTicks(sc.Min, sc.Max, 6) {
		if v < sc.Min-1e-9 || v > sc.Max+1e-9 {
			continue
		}
		y := barRowOf(sc, bar, v)
		draw.Draw(out, image.Rect(bar.Max.X, y, bar.Max.X+tickLen, y+1), image.NewUniform(inkColor), image.Point{}, draw.Src)
		drawText(out, uihelpers.FormatNumericTick(v), bar.Max.X+tickLen+3, y+ascent/2, inkColor)
	}

	if strings.TrimSpace(label) != "" {
		txt := renderText(label, inkColor)
		rot := rotateCCW(txt)
		rb := rot.Bounds()
		x := w - rb.Dx() - 6
		y := bar.Min.Y + (bar.Dy()-rb.Dy())/2
		if y < 0 {
			y = 0
		}
		draw.Draw(out, image.Rect(x, y, x+rb.Dx(), y+rb.Dy()), rot, rb.Min, draw.Over)
	}
	return out
}

func strokeRect(dst draw.Image, r image.Rectangle, c color.Color) {
	u := image.NewUniform(c)
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), u, image.Point{}, draw.Src)
}

// drawText draws text with its baseline at (x, y).
func drawText(dst draw.Image, text string, x, y int, c color.Color) {
	dr := &font.Drawer{Dst: dst, Src: image.NewUniform(c), Face: basicfont.Face7x13, Dot: fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)}}
	dr.DrawString(text)
}

// renderText draws text on a transparent image sized to fit it.
func renderText(text string, c color.Color) *image.RGBA {
	face := basicfont.Face7x13
	dr := &font.Drawer{Face: face}
	tw := dr.MeasureString(text).Ceil()
	m := face.Metrics()
	th := m.Ascent.Ceil() + m.Descent.Ceil()
	img := image.NewRGBA(image.Rect(0, 0, tw, th))
	drawText(img, text, 0, m.Ascent.Ceil(), c)
	return img
}

// rotateCCW rotates src 90 degrees counter-clockwise so text reads bottom to top.
func rotateCCW(src *image.RGBA) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dy(), b.Dx()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			dst.Set(y, b.Dx()-1-x, src.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return dst
}
