// Package colladaxml adapts the standard XML decoder into the event stream
// consumed by the element parser: start, text, and end events with line and
// column positions, whitespace-trimmed and coalesced character data, and
// comments, processing instructions, and directives already removed.
package colladaxml

import (
	"encoding/xml"
	"io"
	"strings"

	"github.com/jacoelho/collada/errors"
)

// Kind identifies the kind of streaming XML event.
type Kind uint8

const (
	// StartElement is an element-open event carrying attributes.
	StartElement Kind = iota
	// EndElement is an element-close event.
	EndElement
	// CharData is a non-whitespace text event.
	CharData
)

// Attr is a decoded attribute. Namespace declarations are not reported.
type Attr struct {
	Name  string
	Value string
}

// Event is a single streaming XML event.
type Event struct {
	Kind   Kind
	Name   string // element local name; empty for CharData
	Attrs  []Attr
	Text   string // trimmed character data; empty unless CharData
	Line   int
	Column int
}

// Attr returns the value of the named attribute and whether it is present.
func (e *Event) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Reader turns a raw XML stream into parser events.
type Reader struct {
	dec    *xml.Decoder
	src    *positionReader
	queued *Event
}

// NewReader creates a Reader over r.
func NewReader(r io.Reader) *Reader {
	src := &positionReader{r: r, lineStarts: []int64{0}}
	return &Reader{dec: xml.NewDecoder(src), src: src}
}

// Next returns the next event. Whitespace-only character data is skipped,
// adjacent character data is coalesced, and io.EOF is returned at end of
// input. Malformed markup is reported as a positioned syntax error.
func (r *Reader) Next() (Event, error) {
	if r.queued != nil {
		ev := *r.queued
		r.queued = nil
		return ev, nil
	}

	var text strings.Builder
	var textLine, textCol int

	for {
		offset := r.dec.InputOffset()
		tok, err := r.dec.Token()
		if err != nil {
			if err == io.EOF {
				return Event{}, io.EOF
			}
			line, col := r.src.pos(r.dec.InputOffset())
			return Event{}, &errors.Error{
				Code:    errors.ErrSyntax,
				Message: err.Error(),
				Line:    line,
				Column:  col,
			}
		}

		switch t := tok.(type) {
		case xml.StartElement:
			ev := r.startEvent(t, offset)
			if flushed, ok := r.flushText(&text, textLine, textCol); ok {
				r.queued = &ev
				return flushed, nil
			}
			return ev, nil

		case xml.EndElement:
			line, col := r.src.pos(offset)
			ev := Event{Kind: EndElement, Name: t.Name.Local, Line: line, Column: col}
			if flushed, ok := r.flushText(&text, textLine, textCol); ok {
				r.queued = &ev
				return flushed, nil
			}
			return ev, nil

		case xml.CharData:
			if text.Len() == 0 {
				textLine, textCol = r.src.pos(offset)
			}
			text.Write(t)

		case xml.Comment, xml.ProcInst, xml.Directive:
			// XML declarations, DOCTYPE, and comments carry no document data.
		}
	}
}

// Position returns the line and column of the reader's current input offset.
func (r *Reader) Position() (line, column int) {
	return r.src.pos(r.dec.InputOffset())
}

func (r *Reader) startEvent(t xml.StartElement, offset int64) Event {
	line, col := r.src.pos(offset)
	ev := Event{Kind: StartElement, Name: t.Name.Local, Line: line, Column: col}
	for _, a := range t.Attr {
		if a.Name.Space == "xmlns" {
			continue
		}
		ev.Attrs = append(ev.Attrs, Attr{Name: a.Name.Local, Value: a.Value})
	}
	return ev
}

func (r *Reader) flushText(text *strings.Builder, line, col int) (Event, bool) {
	trimmed := strings.TrimSpace(text.String())
	text.Reset()
	if trimmed == "" {
		return Event{}, false
	}
	return Event{Kind: CharData, Text: trimmed, Line: line, Column: col}, true
}

// positionReader records line start offsets as bytes flow to the decoder so
// byte offsets can be mapped back to line and column positions.
type positionReader struct {
	r          io.Reader
	lineStarts []int64
	read       int64
}

func (p *positionReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	for i := range n {
		if b[i] == '\n' {
			p.lineStarts = append(p.lineStarts, p.read+int64(i)+1)
		}
	}
	p.read += int64(n)
	return n, err
}

// pos maps a byte offset to a 1-based line and column.
func (p *positionReader) pos(offset int64) (line, column int) {
	lo, hi := 0, len(p.lineStarts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if p.lineStarts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo + 1, int(offset-p.lineStarts[lo]) + 1
}
