package qr

import (
	"bytes"
	"fmt"
	"html"
	"image/color"
	"strconv"
	"strings"
)

// svgPath records path commands in SVG syntax.
type svgPath struct {
	b strings.Builder
}

func (p *svgPath) cmd(c byte, xs ...float64) {
	p.b.WriteByte(c)
	for _, x := range xs {
		p.b.WriteByte(' ')
		p.b.WriteString(strconv.FormatFloat(x, 'f', -1, 64))
	}
}

func (p *svgPath) MoveTo(x, y float64)                    { p.cmd('M', x, y) }
func (p *svgPath) LineTo(x, y float64)                    { p.cmd('L', x, y) }
func (p *svgPath) QuadraticTo(x1, y1, x2, y2 float64)     { p.cmd('Q', x1, y1, x2, y2) }
func (p *svgPath) CubicTo(x1, y1, x2, y2, x3, y3 float64) { p.cmd('C', x1, y1, x2, y2, x3, y3) }
func (p *svgPath) ClosePath()                             { p.cmd('Z') }
func (p *svgPath) String() string                         { return p.b.String() }

const dotGradientID = "dot-color"

func writeSVG(buf *bytes.Buffer, opts Options, l *layout) {
	size := opts.Size
	fmt.Fprintf(buf, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" width="%d" height="%d" viewBox="0 0 %d %d">
`, size, size, size, size)

	dotFill := ""
	switch f := opts.Dots.Fill.(type) {
	case Solid:
		dotFill = fillAttrs(f.Color)
	case Gradient:
		buf.WriteString("<defs>\n")
		writeGradient(buf, f, l)
		buf.WriteString("</defs>\n")
		dotFill = fmt.Sprintf(`fill="url(#%s)"`, dotGradientID)
	}

	if !isTransparent(opts.Background.Color) {
		fmt.Fprintf(buf, "<rect x=\"0\" y=\"0\" width=\"%d\" height=\"%d\" %s/>\n", size, size, fillAttrs(opts.Background.Color))
	}

	dots := &svgPath{}
	l.addDots(dots, opts.Dots.Type)
	if d := dots.String(); d != "" {
		fmt.Fprintf(buf, "<path d=\"%s\" %s/>\n", d, dotFill)
	}

	squares := &svgPath{}
	l.addCornerSquares(squares, opts.CornersSquare.Type)
	fmt.Fprintf(buf, "<path d=\"%s\" fill-rule=\"evenodd\" %s/>\n", squares.String(), fillAttrs(opts.CornersSquare.Color))

	centres := &svgPath{}
	l.addCornerDots(centres, opts.CornersDot.Type)
	fmt.Fprintf(buf, "<path d=\"%s\" %s/>\n", centres.String(), fillAttrs(opts.CornersDot.Color))

	if l.logo != nil {
		r := l.logoRect
		fmt.Fprintf(buf, "<image href=\"%s\" x=\"%d\" y=\"%d\" width=\"%d\" height=\"%d\" preserveAspectRatio=\"xMidYMid meet\"/>\n",
			html.EscapeString(opts.Image), r.Min.X, r.Min.Y, r.Dx(), r.Dy())
	}

	buf.WriteString("</svg>\n")
}

func writeGradient(buf *bytes.Buffer, g Gradient, l *layout) {
	if g.Type == GradientRadial {
		cx, cy, r := l.center()
		fmt.Fprintf(buf, "<radialGradient id=\"%s\" gradientUnits=\"userSpaceOnUse\" cx=\"%g\" cy=\"%g\" r=\"%g\">\n", dotGradientID, cx, cy, r)
	} else {
		x0, y0, x1, y1 := l.gradientLine(g.Rotation)
		fmt.Fprintf(buf, "<linearGradient id=\"%s\" gradientUnits=\"userSpaceOnUse\" x1=\"%g\" y1=\"%g\" x2=\"%g\" y2=\"%g\">\n", dotGradientID, x0, y0, x1, y1)
	}
	for _, s := range g.Stops {
		hex, opacity := svgColor(s.Color)
		fmt.Fprintf(buf, "<stop offset=\"%g\" stop-color=\"%s\" stop-opacity=\"%g\"/>\n", s.Offset, hex, opacity)
	}
	if g.Type == GradientRadial {
		buf.WriteString("</radialGradient>\n")
	} else {
		buf.WriteString("</linearGradient>\n")
	}
}

func fillAttrs(c color.Color) string {
	hex, opacity := svgColor(c)
	if opacity >= 1 {
		return fmt.Sprintf(`fill="%s"`, hex)
	}
	return fmt.Sprintf(`fill="%s" fill-opacity="%g"`, hex, opacity)
}
