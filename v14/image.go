package v14

import (
	"github.com/jacoelho/collada/internal/parser"
	"github.com/jacoelho/collada/internal/schema"
	colladaxml "github.com/jacoelho/collada/internal/xml"
)

func imageDefs() []*schema.Element {
	return []*schema.Element{
		{
			Name: "image",
			Attrs: []schema.Attr{
				{Name: "id"}, {Name: "name"}, {Name: "format"},
				{Name: "height"}, {Name: "width"}, {Name: "depth", Default: "1"},
			},
			ID: "id",
			Children: []schema.Child{
				{Names: []string{"asset"}, Occurs: schema.Optional},
				{Names: []string{"data", "init_from"}, Occurs: schema.Optional},
				{Names: []string{"extra"}, Occurs: schema.ZeroOrMore},
			},
		},
		schema.TextLeaf("data", schema.TextRaw),
		schema.TextLeaf("init_from", schema.TextAnyURI),
	}
}

// Image declares a texture image, either by URI or as inline hex data.
type Image struct {
	ID     string
	Name   string
	Format string
	Height int
	Width  int
	// Depth is the image depth for volumetric textures; the schema default
	// is 1.
	Depth int

	Asset *Asset
	// InitFrom is the image URI; empty when the image data is inline.
	InitFrom string
	// Data is the undecoded hex text of an inline image.
	Data string

	Extras []*Extra
}

func parseImage(p *parser.Parser, start colladaxml.Event) (*Image, error) {
	s, err := p.Open("image", start)
	if err != nil {
		return nil, err
	}

	img := &Image{
		ID:     s.Attrs().String("id"),
		Name:   s.Attrs().String("name"),
		Format: s.Attrs().String("format"),
	}
	if img.Height, err = s.Attrs().Uint("height"); err != nil {
		return nil, err
	}
	if img.Width, err = s.Attrs().Uint("width"); err != nil {
		return nil, err
	}
	if img.Depth, err = s.Attrs().Uint("depth"); err != nil {
		return nil, err
	}

	err = s.Children(
		assetSlot(p, &img.Asset),
		func(st colladaxml.Event) error {
			key := "init_from"
			if st.Name == "data" {
				key = "data"
			}
			is, err := p.Open(key, st)
			if err != nil {
				return err
			}
			text, err := is.Text()
			if err != nil {
				return err
			}
			if key == "data" {
				img.Data = text
			} else {
				img.InitFrom = text
			}
			return is.Close(nil)
		},
		extraSlot(p, &img.Extras),
	)
	if err != nil {
		return nil, err
	}
	if err := s.Close(img); err != nil {
		return nil, err
	}
	return img, nil
}
