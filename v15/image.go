package v15

import (
	"github.com/jacoelho/collada/common"
	"github.com/jacoelho/collada/internal/parser"
	"github.com/jacoelho/collada/internal/schema"
	colladaxml "github.com/jacoelho/collada/internal/xml"
)

func imageDefs() []*schema.Element {
	return []*schema.Element{
		{
			Name:  "image",
			Attrs: []schema.Attr{{Name: "id"}, {Name: "sid"}, {Name: "name"}},
			ID:    "id",
			SID:   "sid",
			Children: []schema.Child{
				{Names: []string{"asset"}, Occurs: schema.Optional},
				{Names: []string{"renderable"}, Occurs: schema.Optional},
				{Names: []string{"init_from", "create_2d", "create_3d", "create_cube"}, Occurs: schema.Optional},
				{Names: []string{"extra"}, Occurs: schema.ZeroOrMore},
			},
		},
		{
			Name:  "renderable",
			Attrs: []schema.Attr{{Name: "share", Default: "false"}},
		},
		{
			Name:  "init_from",
			Attrs: []schema.Attr{{Name: "mips_generate", Default: "true"}},
			Children: []schema.Child{
				{Names: []string{"ref", "hex"}, Occurs: schema.Optional},
			},
		},
		schema.TextLeaf("ref", schema.TextAnyURI),
		{
			Name:  "hex",
			Attrs: []schema.Attr{{Name: "format", Required: true}},
			Text:  schema.TextRaw,
		},
		{Name: "create_2d", Extensible: true},
		{Name: "create_3d", Extensible: true},
		{Name: "create_cube", Extensible: true},
	}
}

// Image declares a texture image. The pixel data comes from an external URI,
// inline hex text, or an opaque create_* surface description.
type Image struct {
	ID   string
	SID  string
	Name string

	Asset *Asset
	// Renderable marks the image as a render target; Shareable further
	// allows several render passes to target it at once.
	Renderable bool
	Shareable  bool

	InitFrom *ImageSource
	// Create holds the undecoded children of a create_2d, create_3d, or
	// create_cube description.
	Create []*common.Fragment
	// CreateKind names which create_* element was present, or is empty.
	CreateKind string

	Extras []*Extra
}

// ImageSource initializes an image either by reference or inline.
type ImageSource struct {
	// MipsGenerate asks the runtime to derive the mip pyramid from the
	// loaded data; the schema default is true.
	MipsGenerate bool
	// Ref is the image URI; empty when the data is inline.
	Ref string
	// HexFormat and Hex carry inline image data in the named format. Hex
	// text is kept undecoded.
	HexFormat string
	Hex       string
}

func parseImage(p *parser.Parser, start colladaxml.Event) (*Image, error) {
	s, err := p.Open("image", start)
	if err != nil {
		return nil, err
	}

	img := &Image{
		ID:   s.Attrs().String("id"),
		SID:  s.Attrs().String("sid"),
		Name: s.Attrs().String("name"),
	}

	err = s.Children(
		assetSlot(p, &img.Asset),
		func(st colladaxml.Event) error {
			return parseRenderable(p, st, img)
		},
		func(st colladaxml.Event) error {
			return parseImageSource(p, st, img)
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

func parseRenderable(p *parser.Parser, start colladaxml.Event, img *Image) error {
	s, err := p.Open("renderable", start)
	if err != nil {
		return err
	}
	img.Renderable = true
	switch share := s.Attrs().String("share"); share {
	case "true", "1":
		img.Shareable = true
	case "false", "0":
	default:
		return s.Attrs().Invalid("share")
	}
	if err := s.Empty(); err != nil {
		return err
	}
	return s.Close(nil)
}

func parseImageSource(p *parser.Parser, start colladaxml.Event, img *Image) error {
	if start.Name != "init_from" {
		s, err := p.Open(start.Name, start)
		if err != nil {
			return err
		}
		if err := s.Children(); err != nil {
			return err
		}
		img.CreateKind = start.Name
		img.Create = s.Extensions()
		return s.Close(nil)
	}

	s, err := p.Open("init_from", start)
	if err != nil {
		return err
	}
	src := &ImageSource{MipsGenerate: true}
	switch mips := s.Attrs().String("mips_generate"); mips {
	case "true", "1":
	case "false", "0":
		src.MipsGenerate = false
	default:
		return s.Attrs().Invalid("mips_generate")
	}
	err = s.Children(
		func(st colladaxml.Event) error {
			if st.Name == "ref" {
				return parseImageRef(p, st, src)
			}
			return parseImageHex(p, st, src)
		},
	)
	if err != nil {
		return err
	}
	img.InitFrom = src
	return s.Close(nil)
}

func parseImageRef(p *parser.Parser, start colladaxml.Event, src *ImageSource) error {
	s, err := p.Open("ref", start)
	if err != nil {
		return err
	}
	text, err := s.Text()
	if err != nil {
		return err
	}
	src.Ref = text
	return s.Close(nil)
}

func parseImageHex(p *parser.Parser, start colladaxml.Event, src *ImageSource) error {
	s, err := p.Open("hex", start)
	if err != nil {
		return err
	}
	src.HexFormat = s.Attrs().String("format")
	text, err := s.Text()
	if err != nil {
		return err
	}
	src.Hex = text
	return s.Close(nil)
}
