package v14

import (
	"github.com/jacoelho/collada/common"
	"github.com/jacoelho/collada/internal/parser"
	"github.com/jacoelho/collada/internal/schema"
	colladaxml "github.com/jacoelho/collada/internal/xml"
)

func assetDefs() []*schema.Element {
	return []*schema.Element{
		{
			Name: "asset",
			Children: []schema.Child{
				{Names: []string{"contributor"}, Occurs: schema.ZeroOrMore},
				{Names: []string{"created"}, Occurs: schema.Required},
				{Names: []string{"keywords"}, Occurs: schema.Optional},
				{Names: []string{"modified"}, Occurs: schema.Required},
				{Names: []string{"revision"}, Occurs: schema.Optional},
				{Names: []string{"subject"}, Occurs: schema.Optional},
				{Names: []string{"title"}, Occurs: schema.Optional},
				{Names: []string{"unit"}, Occurs: schema.OptionalDefault},
				{Names: []string{"up_axis"}, Occurs: schema.OptionalDefault},
			},
		},
		{
			Name: "contributor",
			Children: []schema.Child{
				{Names: []string{"author"}, Occurs: schema.Optional},
				{Names: []string{"authoring_tool"}, Occurs: schema.Optional},
				{Names: []string{"comments"}, Occurs: schema.Optional},
				{Names: []string{"copyright"}, Occurs: schema.Optional},
				{Names: []string{"source_data"}, Occurs: schema.Optional},
			},
		},
		schema.TextLeaf("created", schema.TextDateTime),
		schema.TextLeaf("modified", schema.TextDateTime),
		schema.TextLeaf("keywords", schema.TextString),
		schema.TextLeaf("revision", schema.TextString),
		schema.TextLeaf("subject", schema.TextString),
		schema.TextLeaf("title", schema.TextString),
		schema.TextLeaf("author", schema.TextString),
		schema.TextLeaf("authoring_tool", schema.TextString),
		schema.TextLeaf("comments", schema.TextString),
		schema.TextLeaf("copyright", schema.TextString),
		schema.TextLeaf("source_data", schema.TextAnyURI),
		{
			Name:  "unit",
			Attrs: []schema.Attr{{Name: "meter", Default: "1.0"}, {Name: "name", Default: "meter"}},
		},
		schema.TextLeaf("up_axis", schema.TextEnum),
	}
}

// Asset is the metadata block carried by the document and by most library
// elements. Unit and UpAxis always hold a value: the schema defaults of one
// meter and Y-up apply when the children are absent.
type Asset struct {
	Contributors []*Contributor
	Created      common.DateTime
	Keywords     string
	Modified     common.DateTime
	Revision     string
	Subject      string
	Title        string
	Unit         common.Unit
	UpAxis       common.UpAxis
}

// Contributor identifies one author of the parent asset.
type Contributor struct {
	Author        string
	AuthoringTool string
	Comments      string
	Copyright     string
	SourceData    string
}

func parseAsset(p *parser.Parser, start colladaxml.Event) (*Asset, error) {
	s, err := p.Open("asset", start)
	if err != nil {
		return nil, err
	}

	a := &Asset{Unit: common.DefaultUnit(), UpAxis: common.UpY}
	err = s.Children(
		func(st colladaxml.Event) error {
			c, err := parseContributor(p, st)
			if err != nil {
				return err
			}
			a.Contributors = append(a.Contributors, c)
			return nil
		},
		dateTimeSlot(p, "created", &a.Created),
		textSlot(p, "keywords", &a.Keywords),
		dateTimeSlot(p, "modified", &a.Modified),
		textSlot(p, "revision", &a.Revision),
		textSlot(p, "subject", &a.Subject),
		textSlot(p, "title", &a.Title),
		func(st colladaxml.Event) error {
			u, err := parseUnit(p, st)
			a.Unit = u
			return err
		},
		func(st colladaxml.Event) error {
			ax, err := parseUpAxis(p, st)
			a.UpAxis = ax
			return err
		},
	)
	if err != nil {
		return nil, err
	}
	if err := s.Close(a); err != nil {
		return nil, err
	}
	return a, nil
}

func parseContributor(p *parser.Parser, start colladaxml.Event) (*Contributor, error) {
	s, err := p.Open("contributor", start)
	if err != nil {
		return nil, err
	}

	c := &Contributor{}
	err = s.Children(
		textSlot(p, "author", &c.Author),
		textSlot(p, "authoring_tool", &c.AuthoringTool),
		textSlot(p, "comments", &c.Comments),
		textSlot(p, "copyright", &c.Copyright),
		textSlot(p, "source_data", &c.SourceData),
	)
	if err != nil {
		return nil, err
	}
	if err := s.Close(c); err != nil {
		return nil, err
	}
	return c, nil
}

func dateTimeSlot(p *parser.Parser, key string, out *common.DateTime) parser.ChildFunc {
	return func(st colladaxml.Event) error {
		s, err := p.Open(key, st)
		if err != nil {
			return err
		}
		dt, err := s.TextDateTime()
		if err != nil {
			return err
		}
		*out = dt
		return s.Close(nil)
	}
}

func parseUnit(p *parser.Parser, start colladaxml.Event) (common.Unit, error) {
	s, err := p.Open("unit", start)
	if err != nil {
		return common.Unit{}, err
	}
	meter, err := s.Attrs().Float("meter")
	if err != nil {
		return common.Unit{}, err
	}
	u := common.Unit{Meter: meter, Name: s.Attrs().String("name")}
	if err := s.Empty(); err != nil {
		return common.Unit{}, err
	}
	return u, s.Close(nil)
}

func parseUpAxis(p *parser.Parser, start colladaxml.Event) (common.UpAxis, error) {
	s, err := p.Open("up_axis", start)
	if err != nil {
		return common.UpY, err
	}
	text, err := s.RequiredText()
	if err != nil {
		return common.UpY, err
	}
	axis, err := common.ParseUpAxis(text)
	if err != nil {
		return common.UpY, s.InvalidText(text)
	}
	if err := s.Close(nil); err != nil {
		return common.UpY, err
	}
	return axis, nil
}
