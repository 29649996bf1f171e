package v15

import (
	"github.com/jacoelho/collada/common"
	"github.com/jacoelho/collada/internal/parser"
	"github.com/jacoelho/collada/internal/schema"
	colladaxml "github.com/jacoelho/collada/internal/xml"
)

func cameraDefs() []*schema.Element {
	sidFloat := func(name string) *schema.Element {
		return &schema.Element{
			Name:  name,
			Attrs: []schema.Attr{{Name: "sid"}},
			Text:  schema.TextFloat,
			SID:   "sid",
		}
	}

	return []*schema.Element{
		{
			Name:   "camera",
			Attrs:  []schema.Attr{{Name: "id"}, {Name: "name"}},
			ID:     "id",
			Scoped: true,
			Children: []schema.Child{
				{Names: []string{"asset"}, Occurs: schema.Optional},
				{Names: []string{"optics"}, Occurs: schema.Required},
				{Names: []string{"imager"}, Occurs: schema.Optional},
				{Names: []string{"extra"}, Occurs: schema.ZeroOrMore},
			},
		},
		{
			Name: "optics",
			Children: []schema.Child{
				{Names: []string{"technique_common"}, Occurs: schema.Required},
				{Names: []string{"technique"}, Occurs: schema.ZeroOrMore},
				{Names: []string{"extra"}, Occurs: schema.ZeroOrMore},
			},
		},
		{
			Name: "technique_common",
			Key:  "optics_technique_common",
			Children: []schema.Child{
				{Names: []string{"orthographic", "perspective"}, Occurs: schema.Required},
			},
		},
		{
			Name: "perspective",
			Children: []schema.Child{
				{Names: []string{"xfov"}, Occurs: schema.Optional},
				{Names: []string{"yfov"}, Occurs: schema.Optional},
				{Names: []string{"aspect_ratio"}, Occurs: schema.Optional},
				{Names: []string{"znear"}, Occurs: schema.Required},
				{Names: []string{"zfar"}, Occurs: schema.Required},
			},
		},
		{
			Name: "orthographic",
			Children: []schema.Child{
				{Names: []string{"xmag"}, Occurs: schema.Optional},
				{Names: []string{"ymag"}, Occurs: schema.Optional},
				{Names: []string{"aspect_ratio"}, Occurs: schema.Optional},
				{Names: []string{"znear"}, Occurs: schema.Required},
				{Names: []string{"zfar"}, Occurs: schema.Required},
			},
		},
		{
			Name:       "imager",
			Extensible: true,
		},
		sidFloat("xfov"),
		sidFloat("yfov"),
		sidFloat("xmag"),
		sidFloat("ymag"),
		sidFloat("aspect_ratio"),
		sidFloat("znear"),
		sidFloat("zfar"),
	}
}

// Camera declares a viewpoint: its optics and, rarely, an imager.
type Camera struct {
	ID   string
	Name string

	Asset  *Asset
	Optics *Optics
	// Imager describes film and lens response; kept opaque.
	Imager []*common.Fragment
	Extras []*Extra
}

// Optics holds the camera projection. Exactly one of Perspective or
// Orthographic is set.
type Optics struct {
	Perspective  *Perspective
	Orthographic *Orthographic
	Techniques   []*common.Technique
	Extras       []*Extra
}

// SIDFloat is a float value with an optional scoped identifier, the target
// form used by animation channels.
type SIDFloat struct {
	SID   string
	Value float64
}

// Perspective is a perspective projection. At least one of XFov and YFov is
// expected; a missing aspect ratio derives from the viewport.
type Perspective struct {
	XFov        *SIDFloat
	YFov        *SIDFloat
	AspectRatio *SIDFloat
	ZNear       *SIDFloat
	ZFar        *SIDFloat
}

// Orthographic is an orthographic projection.
type Orthographic struct {
	XMag        *SIDFloat
	YMag        *SIDFloat
	AspectRatio *SIDFloat
	ZNear       *SIDFloat
	ZFar        *SIDFloat
}

func parseCamera(p *parser.Parser, start colladaxml.Event) (*Camera, error) {
	s, err := p.Open("camera", start)
	if err != nil {
		return nil, err
	}

	c := &Camera{ID: s.Attrs().String("id"), Name: s.Attrs().String("name")}
	err = s.Children(
		assetSlot(p, &c.Asset),
		func(st colladaxml.Event) error {
			o, err := parseOptics(p, st)
			c.Optics = o
			return err
		},
		func(st colladaxml.Event) error {
			is, err := p.Open("imager", st)
			if err != nil {
				return err
			}
			if err := is.Children(); err != nil {
				return err
			}
			c.Imager = is.Extensions()
			return is.Close(nil)
		},
		extraSlot(p, &c.Extras),
	)
	if err != nil {
		return nil, err
	}
	if err := s.Close(c); err != nil {
		return nil, err
	}
	return c, nil
}

func parseOptics(p *parser.Parser, start colladaxml.Event) (*Optics, error) {
	s, err := p.Open("optics", start)
	if err != nil {
		return nil, err
	}

	o := &Optics{}
	err = s.Children(
		func(st colladaxml.Event) error {
			ts, err := p.Open("optics_technique_common", st)
			if err != nil {
				return err
			}
			err = ts.Children(func(st colladaxml.Event) error {
				if st.Name == "orthographic" {
					ortho, err := parseOrthographic(p, st)
					o.Orthographic = ortho
					return err
				}
				persp, err := parsePerspective(p, st)
				o.Perspective = persp
				return err
			})
			if err != nil {
				return err
			}
			return ts.Close(nil)
		},
		techniqueSlot(p, &o.Techniques),
		extraSlot(p, &o.Extras),
	)
	if err != nil {
		return nil, err
	}
	if err := s.Close(o); err != nil {
		return nil, err
	}
	return o, nil
}

func parsePerspective(p *parser.Parser, start colladaxml.Event) (*Perspective, error) {
	s, err := p.Open("perspective", start)
	if err != nil {
		return nil, err
	}

	persp := &Perspective{}
	err = s.Children(
		sidFloatPtrSlot(p, "xfov", &persp.XFov),
		sidFloatPtrSlot(p, "yfov", &persp.YFov),
		sidFloatPtrSlot(p, "aspect_ratio", &persp.AspectRatio),
		sidFloatPtrSlot(p, "znear", &persp.ZNear),
		sidFloatPtrSlot(p, "zfar", &persp.ZFar),
	)
	if err != nil {
		return nil, err
	}
	if err := s.Close(persp); err != nil {
		return nil, err
	}
	return persp, nil
}

func parseOrthographic(p *parser.Parser, start colladaxml.Event) (*Orthographic, error) {
	s, err := p.Open("orthographic", start)
	if err != nil {
		return nil, err
	}

	ortho := &Orthographic{}
	err = s.Children(
		sidFloatPtrSlot(p, "xmag", &ortho.XMag),
		sidFloatPtrSlot(p, "ymag", &ortho.YMag),
		sidFloatPtrSlot(p, "aspect_ratio", &ortho.AspectRatio),
		sidFloatPtrSlot(p, "znear", &ortho.ZNear),
		sidFloatPtrSlot(p, "zfar", &ortho.ZFar),
	)
	if err != nil {
		return nil, err
	}
	if err := s.Close(ortho); err != nil {
		return nil, err
	}
	return ortho, nil
}

func parseSIDFloat(p *parser.Parser, key string, start colladaxml.Event) (*SIDFloat, error) {
	s, err := p.Open(key, start)
	if err != nil {
		return nil, err
	}
	v := &SIDFloat{SID: s.Attrs().String("sid")}
	if v.Value, err = s.TextFloat(); err != nil {
		return nil, err
	}
	if err := s.Close(v); err != nil {
		return nil, err
	}
	return v, nil
}

func sidFloatPtrSlot(p *parser.Parser, key string, out **SIDFloat) parser.ChildFunc {
	return func(st colladaxml.Event) error {
		v, err := parseSIDFloat(p, key, st)
		*out = v
		return err
	}
}
