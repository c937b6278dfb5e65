// Package svg is a small document model for the SVG card: typed elements
// that write themselves with every attribute and text value escaped.
package svg

import (
	"bytes"
	"encoding/xml"
	"io"
	"strconv"
	"strings"
)

const namespace = "http://www.w3.org/2000/svg"

type Element interface {
	writeTo(w *writer)
}

type Document struct {
	Width    float64
	Height   float64
	Children []Element
}

func (d *Document) Add(els ...Element) {
	d.Children = append(d.Children, els...)
}

// WriteTo serializes the document. It implements io.WriterTo.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	sw := &writer{}
	sw.open("svg", false,
		attr{"xmlns", namespace},
		attr{"width", Num(d.Width)},
		attr{"height", Num(d.Height)},
	)
	sw.depth++
	for _, c := range d.Children {
		c.writeTo(sw)
	}
	sw.depth--
	sw.line("</svg>")

	n, err := w.Write(sw.buf.Bytes())
	return int64(n), err
}

// Bytes returns the serialized document.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := d.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Style holds raw CSS. Only '&' and '<' are escaped so line breaks survive.
type Style struct {
	CSS string
}

var cssEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;")

func (s Style) writeTo(w *writer) {
	w.indent()
	w.buf.WriteString("<style>")
	_, _ = cssEscaper.WriteString(&w.buf, s.CSS)
	w.buf.WriteString("</style>\n")
}

type Text struct {
	X, Y    float64
	Class   string
	Content string
}

func (t Text) writeTo(w *writer) {
	w.indent()
	w.start("text", attr{"x", Num(t.X)}, attr{"y", Num(t.Y)}, attr{"class", t.Class})
	w.buf.WriteByte('>')
	w.text(t.Content)
	w.buf.WriteString("</text>\n")
}

type Circle struct {
	CX, CY, R float64
	Fill      string
}

func (c Circle) writeTo(w *writer) {
	w.open("circle", true,
		attr{"cx", Num(c.CX)},
		attr{"cy", Num(c.CY)},
		attr{"r", Num(c.R)},
		attr{"fill", c.Fill},
	)
}

type Path struct {
	D    string
	Fill string
}

func (p Path) writeTo(w *writer) {
	w.open("path", true, attr{"d", p.D}, attr{"fill", p.Fill})
}

type Group struct {
	Class    string
	Children []Element
}

func (g Group) writeTo(w *writer) {
	w.open("g", false, attr{"class", g.Class})
	w.depth++
	for _, c := range g.Children {
		c.writeTo(w)
	}
	w.depth--
	w.line("</g>")
}

type Comment string

func (c Comment) writeTo(w *writer) {
	w.indent()
	w.buf.WriteString("<!-- ")
	w.text(string(c))
	w.buf.WriteString(" -->\n")
}

// Num formats a coordinate without trailing zeros.
func Num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

type attr struct {
	name, value string
}

type writer struct {
	buf   bytes.Buffer
	depth int
}

func (w *writer) indent() {
	for range w.depth {
		w.buf.WriteString("  ")
	}
}

func (w *writer) line(s string) {
	w.indent()
	w.buf.WriteString(s)
	w.buf.WriteByte('\n')
}

// start writes "<name a=..." and skips attributes with an empty value.
func (w *writer) start(name string, attrs ...attr) {
	w.buf.WriteByte('<')
	w.buf.WriteString(name)
	for _, a := range attrs {
		if a.value == "" {
			continue
		}
		w.buf.WriteByte(' ')
		w.buf.WriteString(a.name)
		w.buf.WriteString(`="`)
		w.text(a.value)
		w.buf.WriteByte('"')
	}
}

func (w *writer) open(name string, selfClose bool, attrs ...attr) {
	w.indent()
	w.start(name, attrs...)
	if selfClose {
		w.buf.WriteString(" />\n")
		return
	}
	w.buf.WriteString(">\n")
}

func (w *writer) text(s string) {
	// bytes.Buffer writes never fail
	_ = xml.EscapeText(&w.buf, []byte(s))
}
