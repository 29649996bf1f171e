package v15

import (
	"github.com/jacoelho/collada/common"
	"github.com/jacoelho/collada/internal/parser"
	"github.com/jacoelho/collada/internal/schema"
	colladaxml "github.com/jacoelho/collada/internal/xml"
)

func animationDefs() []*schema.Element {
	return []*schema.Element{
		{
			Name:   "animation",
			Attrs:  []schema.Attr{{Name: "id"}, {Name: "name"}},
			ID:     "id",
			Scoped: true,
			Children: []schema.Child{
				{Names: []string{"asset"}, Occurs: schema.Optional},
				{Names: []string{"animation"}, Occurs: schema.ZeroOrMore},
				{Names: []string{"source"}, Occurs: schema.ZeroOrMore},
				{Names: []string{"sampler"}, Occurs: schema.ZeroOrMore},
				{Names: []string{"channel"}, Occurs: schema.ZeroOrMore},
				{Names: []string{"extra"}, Occurs: schema.ZeroOrMore},
			},
		},
		{
			Name:  "sampler",
			Attrs: []schema.Attr{{Name: "id"}},
			ID:    "id",
			Children: []schema.Child{
				{Names: []string{"input"}, Occurs: schema.OneOrMore},
			},
		},
		{
			Name:  "channel",
			Attrs: []schema.Attr{{Name: "source", Required: true}, {Name: "target", Required: true}},
		},
		{
			Name:       "animation_clip",
			Attrs:      []schema.Attr{{Name: "id"}, {Name: "name"}, {Name: "start", Default: "0.0"}, {Name: "end"}},
			ID:         "id",
			Extensible: true,
			Children: []schema.Child{
				{Names: []string{"asset"}, Occurs: schema.Optional},
				{Names: []string{"extra"}, Occurs: schema.ZeroOrMore},
			},
		},
	}
}

// Animation groups the sources, samplers, and channels that animate values
// elsewhere in the document. Animations nest to form named groupings.
type Animation struct {
	ID   string
	Name string

	Asset      *Asset
	Animations []*Animation
	Sources    []*Source
	Samplers   []*Sampler
	Channels   []*Channel
	Extras     []*Extra
}

// Sampler interpolates animation curve data from its inputs.
type Sampler struct {
	ID     string
	Inputs []*Input
}

// Channel connects a sampler's output to the value it animates. The target
// is a scoped identifier path such as "node-id/trans.X".
type Channel struct {
	Source common.Ref
	Target common.Ref
}

// AnimationClip names a playback interval over animations; the instances
// are kept opaque.
type AnimationClip struct {
	ID    string
	Name  string
	Start float64
	End   float64

	Asset     *Asset
	Instances []*common.Fragment
	Extras    []*Extra
}

func parseAnimation(p *parser.Parser, start colladaxml.Event) (*Animation, error) {
	s, err := p.Open("animation", start)
	if err != nil {
		return nil, err
	}

	a := &Animation{ID: s.Attrs().String("id"), Name: s.Attrs().String("name")}
	err = s.Children(
		assetSlot(p, &a.Asset),
		func(st colladaxml.Event) error {
			child, err := parseAnimation(p, st)
			if err != nil {
				return err
			}
			a.Animations = append(a.Animations, child)
			return nil
		},
		func(st colladaxml.Event) error {
			src, err := parseSource(p, st)
			if err != nil {
				return err
			}
			a.Sources = append(a.Sources, src)
			return nil
		},
		func(st colladaxml.Event) error {
			sam, err := parseSampler(p, st)
			if err != nil {
				return err
			}
			a.Samplers = append(a.Samplers, sam)
			return nil
		},
		func(st colladaxml.Event) error {
			ch, err := parseChannel(p, st)
			if err != nil {
				return err
			}
			a.Channels = append(a.Channels, ch)
			return nil
		},
		extraSlot(p, &a.Extras),
	)
	if err != nil {
		return nil, err
	}
	if err := s.Close(a); err != nil {
		return nil, err
	}
	return a, nil
}

func parseSampler(p *parser.Parser, start colladaxml.Event) (*Sampler, error) {
	s, err := p.Open("sampler", start)
	if err != nil {
		return nil, err
	}

	sam := &Sampler{ID: s.Attrs().String("id")}
	err = s.Children(inputSlot(p, &sam.Inputs))
	if err != nil {
		return nil, err
	}
	if err := s.Close(sam); err != nil {
		return nil, err
	}
	return sam, nil
}

func parseChannel(p *parser.Parser, start colladaxml.Event) (*Channel, error) {
	s, err := p.Open("channel", start)
	if err != nil {
		return nil, err
	}

	ch := &Channel{
		Source: common.NewRef(s.Attrs().String("source")),
		Target: common.NewRef(s.Attrs().String("target")),
	}
	s.RecordRef(&ch.Source, "sampler")
	// The target names any animatable value; its kind cannot be known in
	// advance.
	s.RecordRef(&ch.Target)

	if err := s.Empty(); err != nil {
		return nil, err
	}
	if err := s.Close(ch); err != nil {
		return nil, err
	}
	return ch, nil
}

func parseAnimationClip(p *parser.Parser, start colladaxml.Event) (*AnimationClip, error) {
	s, err := p.Open("animation_clip", start)
	if err != nil {
		return nil, err
	}

	clip := &AnimationClip{ID: s.Attrs().String("id"), Name: s.Attrs().String("name")}
	if clip.Start, err = s.Attrs().Float("start"); err != nil {
		return nil, err
	}
	if clip.End, err = s.Attrs().Float("end"); err != nil {
		return nil, err
	}

	err = s.Children(
		assetSlot(p, &clip.Asset),
		extraSlot(p, &clip.Extras),
	)
	if err != nil {
		return nil, err
	}
	clip.Instances = s.Extensions()
	if err := s.Close(clip); err != nil {
		return nil, err
	}
	return clip, nil
}
