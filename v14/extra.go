package v14

import (
	"github.com/jacoelho/collada/common"
	"github.com/jacoelho/collada/internal/parser"
	"github.com/jacoelho/collada/internal/schema"
	colladaxml "github.com/jacoelho/collada/internal/xml"
)

func extraDefs() []*schema.Element {
	return []*schema.Element{
		{
			Name:  "extra",
			Attrs: []schema.Attr{{Name: "id"}, {Name: "name"}, {Name: "type"}},
			ID:    "id",
			Children: []schema.Child{
				{Names: []string{"asset"}, Occurs: schema.Optional},
				{Names: []string{"technique"}, Occurs: schema.OneOrMore},
			},
		},
		{
			Name:  "technique",
			Attrs: []schema.Attr{{Name: "profile", Required: true}, {Name: "xmlns"}},
			Text:  schema.TextRaw,
		},
	}
}

// Extra carries arbitrary vendor information about its parent element. The
// payload is kept as opaque techniques; at least one is always present.
type Extra struct {
	ID   string
	Name string
	// Type is a vendor hint about what the information represents.
	Type string

	Asset      *Asset
	Techniques []*common.Technique
}

func parseExtra(p *parser.Parser, start colladaxml.Event) (*Extra, error) {
	s, err := p.Open("extra", start)
	if err != nil {
		return nil, err
	}

	e := &Extra{
		ID:   s.Attrs().String("id"),
		Name: s.Attrs().String("name"),
		Type: s.Attrs().String("type"),
	}
	err = s.Children(
		assetSlot(p, &e.Asset),
		techniqueSlot(p, &e.Techniques),
	)
	if err != nil {
		return nil, err
	}
	if err := s.Close(e); err != nil {
		return nil, err
	}
	return e, nil
}
