package v14

import (
	"github.com/jacoelho/collada/common"
	"github.com/jacoelho/collada/internal/parser"
	"github.com/jacoelho/collada/internal/schema"
	colladaxml "github.com/jacoelho/collada/internal/xml"
)

func materialDefs() []*schema.Element {
	return []*schema.Element{
		{
			Name:  "material",
			Attrs: []schema.Attr{{Name: "id"}, {Name: "name"}},
			ID:    "id",
			Children: []schema.Child{
				{Names: []string{"asset"}, Occurs: schema.Optional},
				{Names: []string{"instance_effect"}, Occurs: schema.Required},
				{Names: []string{"extra"}, Occurs: schema.ZeroOrMore},
			},
		},
		{
			Name:  "instance_effect",
			Attrs: []schema.Attr{{Name: "url", Required: true}, {Name: "sid"}, {Name: "name"}},
			SID:   "sid",
			Children: []schema.Child{
				{Names: []string{"technique_hint"}, Occurs: schema.ZeroOrMore},
				{Names: []string{"setparam"}, Occurs: schema.ZeroOrMore},
				{Names: []string{"extra"}, Occurs: schema.ZeroOrMore},
			},
		},
		{
			Name:  "technique_hint",
			Attrs: []schema.Attr{{Name: "platform"}, {Name: "ref", Required: true}, {Name: "profile"}},
		},
		{
			Name:       "setparam",
			Attrs:      []schema.Attr{{Name: "ref", Required: true}},
			Extensible: true,
		},
	}
}

// Material instantiates an effect to describe one appearance.
type Material struct {
	ID   string
	Name string

	Asset          *Asset
	InstanceEffect *InstanceEffect
	Extras         []*Extra
}

// InstanceEffect instantiates an effect, optionally fixing technique hints
// and overriding effect parameters.
type InstanceEffect struct {
	URL  common.Ref
	SID  string
	Name string

	TechniqueHints []*TechniqueHint
	SetParams      []*SetParam
	Extras         []*Extra
}

// TechniqueHint names the effect technique to use on a platform.
type TechniqueHint struct {
	Platform string
	Ref      string
	Profile  string
}

// SetParam overrides one effect parameter; the value is kept opaque.
type SetParam struct {
	Ref   string
	Value []*common.Fragment
}

func parseMaterial(p *parser.Parser, start colladaxml.Event) (*Material, error) {
	s, err := p.Open("material", start)
	if err != nil {
		return nil, err
	}

	m := &Material{ID: s.Attrs().String("id"), Name: s.Attrs().String("name")}
	err = s.Children(
		assetSlot(p, &m.Asset),
		func(st colladaxml.Event) error {
			ie, err := parseInstanceEffect(p, st)
			m.InstanceEffect = ie
			return err
		},
		extraSlot(p, &m.Extras),
	)
	if err != nil {
		return nil, err
	}
	if err := s.Close(m); err != nil {
		return nil, err
	}
	return m, nil
}

func parseInstanceEffect(p *parser.Parser, start colladaxml.Event) (*InstanceEffect, error) {
	s, err := p.Open("instance_effect", start)
	if err != nil {
		return nil, err
	}

	ie := &InstanceEffect{
		URL:  common.NewRef(s.Attrs().String("url")),
		SID:  s.Attrs().String("sid"),
		Name: s.Attrs().String("name"),
	}
	s.RecordRef(&ie.URL, "effect")

	err = s.Children(
		func(st colladaxml.Event) error {
			ts, err := p.Open("technique_hint", st)
			if err != nil {
				return err
			}
			hint := &TechniqueHint{
				Platform: ts.Attrs().String("platform"),
				Ref:      ts.Attrs().String("ref"),
				Profile:  ts.Attrs().String("profile"),
			}
			if err := ts.Empty(); err != nil {
				return err
			}
			ie.TechniqueHints = append(ie.TechniqueHints, hint)
			return ts.Close(hint)
		},
		func(st colladaxml.Event) error {
			sps, err := p.Open("setparam", st)
			if err != nil {
				return err
			}
			sp := &SetParam{Ref: sps.Attrs().String("ref")}
			if err := sps.Children(); err != nil {
				return err
			}
			sp.Value = sps.Extensions()
			ie.SetParams = append(ie.SetParams, sp)
			return sps.Close(sp)
		},
		extraSlot(p, &ie.Extras),
	)
	if err != nil {
		return nil, err
	}
	if err := s.Close(ie); err != nil {
		return nil, err
	}
	return ie, nil
}
