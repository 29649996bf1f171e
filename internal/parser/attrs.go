package parser

import (
	"strconv"

	"github.com/jacoelho/collada/errors"
	"github.com/jacoelho/collada/internal/schema"
	colladaxml "github.com/jacoelho/collada/internal/xml"
)

// Attrs holds the decoded attributes of one element occurrence. Values are
// validated against the schema definition; absent optional attributes fall
// back to their schema defaults.
type Attrs struct {
	def    *schema.Element
	values map[string]string
	line   int
	column int
}

func decodeAttrs(def *schema.Element, start colladaxml.Event) (*Attrs, error) {
	a := &Attrs{def: def, line: start.Line, column: start.Column}

	for _, attr := range start.Attrs {
		if def.Attr(attr.Name) == nil {
			return nil, &errors.Error{
				Code:     errors.ErrUnexpectedAttribute,
				Message:  "attribute is not allowed",
				Element:  def.Name,
				Expected: def.AttrNames(),
				Actual:   attr.Name,
				Line:     start.Line,
				Column:   start.Column,
			}
		}
		if a.values == nil {
			a.values = make(map[string]string, len(start.Attrs))
		}
		a.values[attr.Name] = attr.Value
	}

	for i := range def.Attrs {
		decl := &def.Attrs[i]
		if decl.Required {
			if _, ok := a.values[decl.Name]; !ok {
				return nil, &errors.Error{
					Code:    errors.ErrMissingAttribute,
					Message: "missing required attribute " + strconv.Quote(decl.Name),
					Element: def.Name,
					Line:    start.Line,
					Column:  start.Column,
				}
			}
		}
	}

	return a, nil
}

// Has reports whether the attribute was written in the document.
func (a *Attrs) Has(name string) bool {
	_, ok := a.values[name]
	return ok
}

// String returns the attribute value, the schema default when absent, or "".
func (a *Attrs) String(name string) string {
	if v, ok := a.values[name]; ok {
		return v
	}
	if decl := a.def.Attr(name); decl != nil {
		return decl.Default
	}
	return ""
}

// Uint decodes a non-negative integer attribute. Absent values without a
// schema default decode to zero.
func (a *Attrs) Uint(name string) (int, error) {
	v := a.String(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.ParseUint(v, 10, 63)
	if err != nil {
		return 0, a.invalid(name, v)
	}
	return int(n), nil
}

// Int decodes a signed integer attribute. Absent values without a schema
// default decode to zero.
func (a *Attrs) Int(name string) (int, error) {
	v := a.String(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, a.invalid(name, v)
	}
	return n, nil
}

// UintPtr decodes a non-negative integer attribute, distinguishing absence
// from zero.
func (a *Attrs) UintPtr(name string) (*int, error) {
	if !a.Has(name) {
		return nil, nil
	}
	n, err := a.Uint(name)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// Float decodes a floating-point attribute. Absent values without a schema
// default decode to zero.
func (a *Attrs) Float(name string) (float64, error) {
	v := a.String(name)
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, a.invalid(name, v)
	}
	return f, nil
}

// Invalid reports the attribute's current value as invalid, for values whose
// decoding lives outside the engine, such as enum tokens.
func (a *Attrs) Invalid(name string) error {
	return a.invalid(name, a.String(name))
}

func (a *Attrs) invalid(name, value string) *errors.Error {
	return &errors.Error{
		Code:    errors.ErrInvalidAttribute,
		Message: "invalid value for attribute " + strconv.Quote(name),
		Element: a.def.Name,
		Actual:  value,
		Line:    a.line,
		Column:  a.column,
	}
}
