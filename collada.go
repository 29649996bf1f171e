// Package collada parses COLLADA documents without knowing the schema
// version ahead of time.
//
// COLLADA has two incompatible schema generations: 1.4 (versions 1.4.0 and
// 1.4.1, which share one vocabulary) and 1.5.0. Documents of the two
// generations are represented by the v14 and v15 packages; this package
// reads the root element, detects the version, and hands the document to
// the matching package. Callers that know the version can use v14.Parse or
// v15.Parse directly.
package collada

import (
	"io"
	"strings"

	"github.com/jacoelho/collada/errors"
	"github.com/jacoelho/collada/internal/parser"
	colladaxml "github.com/jacoelho/collada/internal/xml"
	"github.com/jacoelho/collada/v14"
	"github.com/jacoelho/collada/v15"
)

// Version identifies the schema generation of a parsed document.
type Version uint8

const (
	// V14 is a 1.4.0 or 1.4.1 document.
	V14 Version = iota
	// V15 is a 1.5.0 document.
	V15
)

func (v Version) String() string {
	switch v {
	case V14:
		return "1.4"
	case V15:
		return "1.5"
	}
	return "unknown"
}

// Document is a parsed COLLADA document of either schema generation.
// Exactly one of Doc14 and Doc15 is set, according to Version.
type Document struct {
	Version Version
	Doc14   *v14.Collada
	Doc15   *v15.Collada

	// Unresolved lists the references that could not be resolved against
	// the document's identifiers. Unresolved references do not fail the
	// parse; the affected Ref values keep their URI text and nil targets.
	Unresolved errors.List
}

// Parse reads a COLLADA document, detecting the schema version from the
// root element.
func Parse(r io.Reader) (*Document, error) {
	xr := colladaxml.NewReader(r)
	start, err := parser.DocumentStart(xr)
	if err != nil {
		return nil, err
	}

	version, ok := start.Attr("version")
	if !ok {
		return nil, &errors.Error{
			Code:    errors.ErrMissingAttribute,
			Message: `missing required attribute "version"`,
			Element: "COLLADA",
			Line:    start.Line,
			Column:  start.Column,
		}
	}
	switch version {
	case "1.4.0", "1.4.1":
		doc, unresolved, err := v14.ParseRoot(xr, start)
		if err != nil {
			return nil, err
		}
		return &Document{Version: V14, Doc14: doc, Unresolved: unresolved}, nil
	case "1.5.0":
		doc, unresolved, err := v15.ParseRoot(xr, start)
		if err != nil {
			return nil, err
		}
		return &Document{Version: V15, Doc15: doc, Unresolved: unresolved}, nil
	default:
		return nil, &errors.Error{
			Code:    errors.ErrUnsupportedVersion,
			Message: "version is not a supported COLLADA release",
			Element: "COLLADA",
			Actual:  version,
			Line:    start.Line,
			Column:  start.Column,
		}
	}
}

// ParseString reads a COLLADA document from a string.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}
