package parser

import (
	"github.com/jacoelho/collada/common"
	"github.com/jacoelho/collada/errors"
	"github.com/jacoelho/collada/internal/schema"
	colladaxml "github.com/jacoelho/collada/internal/xml"
)

// ChildFunc parses one occurrence of a child slot. The start event for the
// child has already been consumed.
type ChildFunc func(start colladaxml.Event) error

// State tracks the parse of a single element occurrence from its start
// event to its close, including any identifier scope it opens.
type State struct {
	p     *Parser
	def   *schema.Element
	attrs *Attrs
	start colladaxml.Event
	scope ScopeID
	ext   []*common.Fragment
}

// Open begins parsing the element whose start event was just consumed,
// decoding its attributes against the registry entry for key and opening a
// scope if the kind is scope-forming.
func (p *Parser) Open(key string, start colladaxml.Event) (*State, error) {
	def := p.Def(key)
	attrs, err := decodeAttrs(def, start)
	if err != nil {
		return nil, err
	}
	s := &State{p: p, def: def, attrs: attrs, start: start, scope: NoScope}
	if def.Scoped {
		s.scope = p.pushScope()
	}
	return s, nil
}

// Attrs returns the element's decoded attributes.
func (s *State) Attrs() *Attrs {
	return s.attrs
}

// Extensions returns the opaque fragments collected from unrecognized
// children of an extensible element.
func (s *State) Extensions() []*common.Fragment {
	return s.ext
}

// Children consumes the element's children against its ordered child slots.
// Handlers are given in slot order, one per slot; a handler runs once per
// occurrence that fills its slot. The element's end event is consumed.
func (s *State) Children(handlers ...ChildFunc) error {
	if len(handlers) != len(s.def.Children) {
		panic("parser: handler count does not match child slots for <" + s.def.Name + ">")
	}

	cur := 0
	encountered := false

consume:
	for {
		ev, err := s.p.next()
		if err != nil {
			return err
		}

		switch ev.Kind {
		case colladaxml.EndElement:
			break consume

		case colladaxml.CharData:
			return &errors.Error{
				Code:    errors.ErrUnexpectedText,
				Message: "element may not contain text data",
				Element: s.def.Name,
				Line:    ev.Line,
				Column:  ev.Column,
			}

		case colladaxml.StartElement:
			// Scan forward from the cursor without committing: the cursor
			// moves only when a slot matches, so unknown children routed to
			// extensions do not consume slot positions.
			for i, enc := cur, encountered; i < len(handlers); i++ {
				slot := &s.def.Children[i]
				if slot.Matches(ev.Name) {
					if err := handlers[i](ev); err != nil {
						return err
					}
					if slot.Occurs.Repeats() {
						cur, encountered = i, true
					} else {
						cur, encountered = i+1, false
					}
					continue consume
				}
				if slot.Occurs == schema.Required || (slot.Occurs == schema.OneOrMore && !enc) {
					break
				}
				enc = false
			}

			if s.def.Extensible && !s.def.AllowsChild(ev.Name) {
				frag, err := s.p.Fragment(ev)
				if err != nil {
					return err
				}
				s.ext = append(s.ext, frag)
				continue
			}

			return &errors.Error{
				Code:     errors.ErrUnexpectedChild,
				Message:  "child element is not allowed here",
				Element:  s.def.Name,
				Expected: s.def.ChildNames(),
				Actual:   ev.Name,
				Line:     ev.Line,
				Column:   ev.Column,
			}
		}
	}

	for i := cur; i < len(s.def.Children); i++ {
		slot := &s.def.Children[i]
		satisfied := i == cur && encountered
		if slot.Occurs.Requires() && !satisfied {
			return &errors.Error{
				Code:     errors.ErrMissingChild,
				Message:  "missing required child element",
				Element:  s.def.Name,
				Expected: slot.Names,
				Line:     s.start.Line,
				Column:   s.start.Column,
			}
		}
	}
	return nil
}

// Close finishes the element, closing its scope and registering any global
// or scope-local identifier it declares for node. Duplicate global
// identifiers fail immediately.
func (s *State) Close(node any) error {
	if s.scope != NoScope {
		s.p.popScope()
	}

	if s.def.ID != "" {
		if id := s.attrs.String(s.def.ID); id != "" {
			if err := s.p.idx.RegisterGlobal(id, s.def.Name, node, s.scope); err != nil {
				return &errors.Error{
					Code:    errors.ErrDuplicateID,
					Message: err.Error(),
					Element: s.def.Name,
					Line:    s.start.Line,
					Column:  s.start.Column,
				}
			}
		}
	}

	if s.def.SID != "" {
		if sid := s.attrs.String(s.def.SID); sid != "" {
			if err := s.p.idx.RegisterLocal(s.p.currentScope(), sid, s.def.Name, node, s.scope); err != nil {
				return &errors.Error{
					Code:    errors.ErrDuplicateSID,
					Message: err.Error(),
					Element: s.def.Name,
					Line:    s.start.Line,
					Column:  s.start.Column,
				}
			}
		}
	}
	return nil
}

// Fragment consumes the element whose start event was just consumed as an
// opaque fragment, preserving its attributes, text, and subtree verbatim.
func (p *Parser) Fragment(start colladaxml.Event) (*common.Fragment, error) {
	frag := &common.Fragment{Name: start.Name}
	for _, a := range start.Attrs {
		frag.Attrs = append(frag.Attrs, common.Attr{Name: a.Name, Value: a.Value})
	}

	for {
		ev, err := p.next()
		if err != nil {
			return nil, err
		}
		switch ev.Kind {
		case colladaxml.EndElement:
			return frag, nil
		case colladaxml.CharData:
			if frag.Text != "" {
				frag.Text += " "
			}
			frag.Text += ev.Text
		case colladaxml.StartElement:
			child, err := p.Fragment(ev)
			if err != nil {
				return nil, err
			}
			frag.Children = append(frag.Children, child)
		}
	}
}

// Technique consumes a <technique> element, validating its attributes
// against the registry and preserving its contents as opaque fragments.
func (p *Parser) Technique(start colladaxml.Event) (*common.Technique, error) {
	def := p.Def("technique")
	attrs, err := decodeAttrs(def, start)
	if err != nil {
		return nil, err
	}

	tech := &common.Technique{
		Profile: attrs.String("profile"),
		XMLNS:   attrs.String("xmlns"),
	}
	for {
		ev, err := p.next()
		if err != nil {
			return nil, err
		}
		switch ev.Kind {
		case colladaxml.EndElement:
			return tech, nil
		case colladaxml.CharData:
			tech.Data = append(tech.Data, &common.Fragment{Text: ev.Text})
		case colladaxml.StartElement:
			frag, err := p.Fragment(ev)
			if err != nil {
				return nil, err
			}
			tech.Data = append(tech.Data, frag)
		}
	}
}
