package v14

import (
	"github.com/jacoelho/collada/common"
	"github.com/jacoelho/collada/internal/parser"
	"github.com/jacoelho/collada/internal/schema"
	colladaxml "github.com/jacoelho/collada/internal/xml"
)

func effectDefs() []*schema.Element {
	return []*schema.Element{
		{
			Name:       "effect",
			Attrs:      []schema.Attr{{Name: "id", Required: true}, {Name: "name"}},
			ID:         "id",
			Scoped:     true,
			Extensible: true,
			Children: []schema.Child{
				{Names: []string{"asset"}, Occurs: schema.Optional},
				{Names: []string{"extra"}, Occurs: schema.ZeroOrMore},
			},
		},
	}
}

// Effect describes a rendering effect. The profiles and parameter
// declarations are rendering-system specific and kept opaque; only the
// identity and metadata are modeled.
type Effect struct {
	ID   string
	Name string

	Asset *Asset
	// Content holds the annotations, parameters, and profiles verbatim.
	Content []*common.Fragment
	Extras  []*Extra
}

func parseEffect(p *parser.Parser, start colladaxml.Event) (*Effect, error) {
	s, err := p.Open("effect", start)
	if err != nil {
		return nil, err
	}

	e := &Effect{ID: s.Attrs().String("id"), Name: s.Attrs().String("name")}
	err = s.Children(
		assetSlot(p, &e.Asset),
		extraSlot(p, &e.Extras),
	)
	if err != nil {
		return nil, err
	}
	e.Content = s.Extensions()
	if err := s.Close(e); err != nil {
		return nil, err
	}
	return e, nil
}
