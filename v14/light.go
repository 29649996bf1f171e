package v14

import (
	"github.com/jacoelho/collada/common"
	"github.com/jacoelho/collada/internal/parser"
	"github.com/jacoelho/collada/internal/schema"
	colladaxml "github.com/jacoelho/collada/internal/xml"
)

func lightDefs() []*schema.Element {
	attenuated := func(name string, extra ...string) *schema.Element {
		children := []schema.Child{
			{Names: []string{"color"}, Occurs: schema.Required},
			{Names: []string{"constant_attenuation"}, Occurs: schema.OptionalDefault},
			{Names: []string{"linear_attenuation"}, Occurs: schema.OptionalDefault},
			{Names: []string{"quadratic_attenuation"}, Occurs: schema.OptionalDefault},
		}
		for _, n := range extra {
			children = append(children, schema.Child{Names: []string{n}, Occurs: schema.OptionalDefault})
		}
		return &schema.Element{Name: name, Children: children}
	}
	sidFloatDefault := func(name string) *schema.Element {
		return &schema.Element{
			Name:  name,
			Attrs: []schema.Attr{{Name: "sid"}},
			Text:  schema.TextFloat,
			SID:   "sid",
		}
	}

	return []*schema.Element{
		{
			Name:   "light",
			Attrs:  []schema.Attr{{Name: "id"}, {Name: "name"}},
			ID:     "id",
			Scoped: true,
			Children: []schema.Child{
				{Names: []string{"asset"}, Occurs: schema.Optional},
				{Names: []string{"technique_common"}, Occurs: schema.Required},
				{Names: []string{"technique"}, Occurs: schema.ZeroOrMore},
				{Names: []string{"extra"}, Occurs: schema.ZeroOrMore},
			},
		},
		{
			Name: "technique_common",
			Key:  "light_technique_common",
			Children: []schema.Child{
				{Names: []string{"ambient", "directional", "point", "spot"}, Occurs: schema.Required},
			},
		},
		{
			Name: "ambient",
			Key:  "light_ambient",
			Children: []schema.Child{
				{Names: []string{"color"}, Occurs: schema.Required},
			},
		},
		{
			Name: "directional",
			Children: []schema.Child{
				{Names: []string{"color"}, Occurs: schema.Required},
			},
		},
		attenuated("point"),
		attenuated("spot", "falloff_angle", "falloff_exponent"),
		{
			Name:  "color",
			Attrs: []schema.Attr{{Name: "sid"}},
			Text:  schema.TextFloatList,
			SID:   "sid",
		},
		sidFloatDefault("constant_attenuation"),
		sidFloatDefault("linear_attenuation"),
		sidFloatDefault("quadratic_attenuation"),
		sidFloatDefault("falloff_angle"),
		sidFloatDefault("falloff_exponent"),
	}
}

// Light declares a light source. Exactly one of Ambient, Directional,
// Point, or Spot is set.
type Light struct {
	ID   string
	Name string

	Asset       *Asset
	Ambient     *AmbientLight
	Directional *DirectionalLight
	Point       *PointLight
	Spot        *SpotLight
	Techniques  []*common.Technique
	Extras      []*Extra
}

// Color is an RGB color with an optional scoped identifier.
type Color struct {
	SID string
	RGB []float64
}

// AmbientLight lights all surfaces evenly.
type AmbientLight struct {
	Color Color
}

// DirectionalLight shines along the negative Z axis of its node.
type DirectionalLight struct {
	Color Color
}

// PointLight radiates from its node origin, attenuated by distance. Absent
// attenuation children default to constant 1, linear 0, quadratic 0.
type PointLight struct {
	Color                Color
	ConstantAttenuation  SIDFloat
	LinearAttenuation    SIDFloat
	QuadraticAttenuation SIDFloat
}

// SpotLight is a point light restricted to a cone. The falloff angle
// defaults to 180 degrees, making it equivalent to a point light.
type SpotLight struct {
	Color                Color
	ConstantAttenuation  SIDFloat
	LinearAttenuation    SIDFloat
	QuadraticAttenuation SIDFloat
	FalloffAngle         SIDFloat
	FalloffExponent      SIDFloat
}

func parseLight(p *parser.Parser, start colladaxml.Event) (*Light, error) {
	s, err := p.Open("light", start)
	if err != nil {
		return nil, err
	}

	l := &Light{ID: s.Attrs().String("id"), Name: s.Attrs().String("name")}
	err = s.Children(
		assetSlot(p, &l.Asset),
		func(st colladaxml.Event) error {
			ts, err := p.Open("light_technique_common", st)
			if err != nil {
				return err
			}
			err = ts.Children(func(st colladaxml.Event) error {
				return parseLightKind(p, st, l)
			})
			if err != nil {
				return err
			}
			return ts.Close(nil)
		},
		techniqueSlot(p, &l.Techniques),
		extraSlot(p, &l.Extras),
	)
	if err != nil {
		return nil, err
	}
	if err := s.Close(l); err != nil {
		return nil, err
	}
	return l, nil
}

func parseLightKind(p *parser.Parser, start colladaxml.Event, l *Light) error {
	switch start.Name {
	case "ambient":
		s, err := p.Open("light_ambient", start)
		if err != nil {
			return err
		}
		amb := &AmbientLight{}
		if err := s.Children(colorSlot(p, &amb.Color)); err != nil {
			return err
		}
		l.Ambient = amb
		return s.Close(amb)

	case "directional":
		s, err := p.Open("directional", start)
		if err != nil {
			return err
		}
		dir := &DirectionalLight{}
		if err := s.Children(colorSlot(p, &dir.Color)); err != nil {
			return err
		}
		l.Directional = dir
		return s.Close(dir)

	case "point":
		s, err := p.Open("point", start)
		if err != nil {
			return err
		}
		pt := &PointLight{ConstantAttenuation: SIDFloat{Value: 1}}
		err = s.Children(
			colorSlot(p, &pt.Color),
			sidFloatValueSlot(p, "constant_attenuation", &pt.ConstantAttenuation),
			sidFloatValueSlot(p, "linear_attenuation", &pt.LinearAttenuation),
			sidFloatValueSlot(p, "quadratic_attenuation", &pt.QuadraticAttenuation),
		)
		if err != nil {
			return err
		}
		l.Point = pt
		return s.Close(pt)

	default: // spot
		s, err := p.Open("spot", start)
		if err != nil {
			return err
		}
		sp := &SpotLight{
			ConstantAttenuation: SIDFloat{Value: 1},
			FalloffAngle:        SIDFloat{Value: 180},
		}
		err = s.Children(
			colorSlot(p, &sp.Color),
			sidFloatValueSlot(p, "constant_attenuation", &sp.ConstantAttenuation),
			sidFloatValueSlot(p, "linear_attenuation", &sp.LinearAttenuation),
			sidFloatValueSlot(p, "quadratic_attenuation", &sp.QuadraticAttenuation),
			sidFloatValueSlot(p, "falloff_angle", &sp.FalloffAngle),
			sidFloatValueSlot(p, "falloff_exponent", &sp.FalloffExponent),
		)
		if err != nil {
			return err
		}
		l.Spot = sp
		return s.Close(sp)
	}
}

func colorSlot(p *parser.Parser, out *Color) parser.ChildFunc {
	return func(st colladaxml.Event) error {
		s, err := p.Open("color", st)
		if err != nil {
			return err
		}
		out.SID = s.Attrs().String("sid")
		if out.RGB, err = s.FloatList(); err != nil {
			return err
		}
		return s.Close(out)
	}
}

func sidFloatValueSlot(p *parser.Parser, key string, out *SIDFloat) parser.ChildFunc {
	return func(st colladaxml.Event) error {
		s, err := p.Open(key, st)
		if err != nil {
			return err
		}
		out.SID = s.Attrs().String("sid")
		if out.Value, err = s.TextFloat(); err != nil {
			return err
		}
		return s.Close(out)
	}
}
