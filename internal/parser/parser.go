// Package parser implements the recursive-descent element parser shared by
// both COLLADA schema versions. The version packages supply the schema
// registry and per-element handlers; the engine enforces attribute and
// child-slot rules, registers identifiers, records references, and runs the
// post-parse resolution pass.
package parser

import (
	"fmt"
	"io"

	"github.com/jacoelho/collada/errors"
	"github.com/jacoelho/collada/internal/schema"
	colladaxml "github.com/jacoelho/collada/internal/xml"
)

// Parser drives one document parse. It owns the identifier index and the
// pending reference list until resolution completes.
type Parser struct {
	r   *colladaxml.Reader
	reg *schema.Registry
	idx *Index

	refs      []*pendingRef
	scopes    []ScopeID
	nextScope ScopeID
}

// New creates a parser over an event reader using the given registry. The
// document scope is open from the start.
func New(r *colladaxml.Reader, reg *schema.Registry) *Parser {
	p := &Parser{r: r, reg: reg, idx: NewIndex()}
	p.pushScope()
	return p
}

// Index returns the identifier index populated during the parse.
func (p *Parser) Index() *Index {
	return p.idx
}

// Def returns the registry entry for key. A missing entry is a programming
// error in the version package's tables and panics.
func (p *Parser) Def(key string) *schema.Element {
	def, ok := p.reg.Lookup(key)
	if !ok {
		panic(fmt.Sprintf("parser: no schema definition %q in version %s", key, p.reg.Version()))
	}
	return def
}

// DocumentStart reads past the prolog to the root start element and checks
// that the root is <COLLADA>.
func DocumentStart(r *colladaxml.Reader) (colladaxml.Event, error) {
	ev, err := r.Next()
	if err == io.EOF {
		return colladaxml.Event{}, &errors.Error{
			Code:    errors.ErrSyntax,
			Message: "document has no root element",
			Line:    1,
			Column:  1,
		}
	}
	if err != nil {
		return colladaxml.Event{}, err
	}
	if ev.Kind != colladaxml.StartElement || ev.Name != "COLLADA" {
		return colladaxml.Event{}, &errors.Error{
			Code:    errors.ErrUnexpectedRoot,
			Message: "document root must be <COLLADA>",
			Actual:  ev.Name,
			Line:    ev.Line,
			Column:  ev.Column,
		}
	}
	return ev, nil
}

func (p *Parser) next() (colladaxml.Event, error) {
	ev, err := p.r.Next()
	if err == io.EOF {
		line, col := p.r.Position()
		return colladaxml.Event{}, &errors.Error{
			Code:    errors.ErrSyntax,
			Message: "unexpected end of document",
			Line:    line,
			Column:  col,
		}
	}
	return ev, err
}

func (p *Parser) pushScope() ScopeID {
	id := p.nextScope
	p.nextScope++
	p.scopes = append(p.scopes, id)
	return id
}

func (p *Parser) popScope() {
	p.scopes = p.scopes[:len(p.scopes)-1]
}

func (p *Parser) currentScope() ScopeID {
	return p.scopes[len(p.scopes)-1]
}

func (p *Parser) scopePath() []ScopeID {
	path := make([]ScopeID, len(p.scopes))
	copy(path, p.scopes)
	return path
}
