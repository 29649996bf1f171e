package v15

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
				{Names: []string{"coverage"}, Occurs: schema.Optional},
				{Names: []string{"created"}, Occurs: schema.Required},
				{Names: []string{"keywords"}, Occurs: schema.Optional},
				{Names: []string{"modified"}, Occurs: schema.Required},
				{Names: []string{"revision"}, Occurs: schema.Optional},
				{Names: []string{"subject"}, Occurs: schema.Optional},
				{Names: []string{"title"}, Occurs: schema.Optional},
				{Names: []string{"unit"}, Occurs: schema.OptionalDefault},
				{Names: []string{"up_axis"}, Occurs: schema.OptionalDefault},
				{Names: []string{"extra"}, Occurs: schema.ZeroOrMore},
			},
		},
		{
			Name: "contributor",
			Children: []schema.Child{
				{Names: []string{"author"}, Occurs: schema.Optional},
				{Names: []string{"author_email"}, Occurs: schema.Optional},
				{Names: []string{"author_website"}, Occurs: schema.Optional},
				{Names: []string{"authoring_tool"}, Occurs: schema.Optional},
				{Names: []string{"comments"}, Occurs: schema.Optional},
				{Names: []string{"copyright"}, Occurs: schema.Optional},
				{Names: []string{"source_data"}, Occurs: schema.Optional},
			},
		},
		{
			Name: "coverage",
			Children: []schema.Child{
				{Names: []string{"geographic_location"}, Occurs: schema.Optional},
			},
		},
		{
			Name: "geographic_location",
			Children: []schema.Child{
				{Names: []string{"longitude"}, Occurs: schema.Required},
				{Names: []string{"latitude"}, Occurs: schema.Required},
				{Names: []string{"altitude"}, Occurs: schema.Required},
			},
		},
		schema.TextLeaf("longitude", schema.TextFloat),
		schema.TextLeaf("latitude", schema.TextFloat),
		{
			Name:  "altitude",
			Attrs: []schema.Attr{{Name: "mode", Required: true}},
			Text:  schema.TextFloat,
		},
		schema.TextLeaf("created", schema.TextDateTime),
		schema.TextLeaf("modified", schema.TextDateTime),
		schema.TextLeaf("keywords", schema.TextString),
		schema.TextLeaf("revision", schema.TextString),
		schema.TextLeaf("subject", schema.TextString),
		schema.TextLeaf("title", schema.TextString),
		schema.TextLeaf("author", schema.TextString),
		schema.TextLeaf("author_email", schema.TextString),
		schema.TextLeaf("author_website", schema.TextAnyURI),
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
	Coverage     *Coverage
	Created      common.DateTime
	Keywords     string
	Modified     common.DateTime
	Revision     string
	Subject      string
	Title        string
	Unit         common.Unit
	UpAxis       common.UpAxis
	Extras       []*Extra
}

// Contributor identifies one author of the parent asset.
type Contributor struct {
	Author        string
	AuthorEmail   string
	AuthorWebsite string
	AuthoringTool string
	Comments      string
	Copyright     string
	SourceData    string
}

// Coverage situates the asset geographically.
type Coverage struct {
	GeographicLocation *GeographicLocation
}

// GeographicLocation is a point on the earth in the WGS 84 coordinate frame.
type GeographicLocation struct {
	Longitude float64
	Latitude  float64
	Altitude  Altitude
}

// AltitudeMode states how an altitude value is anchored.
type AltitudeMode uint8

const (
	// Absolute measures the altitude from sea level.
	Absolute AltitudeMode = iota
	// RelativeToGround measures the altitude from the ground at the
	// location's longitude and latitude.
	RelativeToGround
)

// Altitude is a height in meters, anchored according to Mode.
type Altitude struct {
	Mode  AltitudeMode
	Value float64
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
		func(st colladaxml.Event) error {
			cov, err := parseCoverage(p, st)
			a.Coverage = cov
			return err
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

func parseContributor(p *parser.Parser, start colladaxml.Event) (*Contributor, error) {
	s, err := p.Open("contributor", start)
	if err != nil {
		return nil, err
	}

	c := &Contributor{}
	err = s.Children(
		textSlot(p, "author", &c.Author),
		textSlot(p, "author_email", &c.AuthorEmail),
		textSlot(p, "author_website", &c.AuthorWebsite),
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

func parseCoverage(p *parser.Parser, start colladaxml.Event) (*Coverage, error) {
	s, err := p.Open("coverage", start)
	if err != nil {
		return nil, err
	}
	cov := &Coverage{}
	err = s.Children(
		func(st colladaxml.Event) error {
			loc, err := parseGeographicLocation(p, st)
			cov.GeographicLocation = loc
			return err
		},
	)
	if err != nil {
		return nil, err
	}
	if err := s.Close(cov); err != nil {
		return nil, err
	}
	return cov, nil
}

func parseGeographicLocation(p *parser.Parser, start colladaxml.Event) (*GeographicLocation, error) {
	s, err := p.Open("geographic_location", start)
	if err != nil {
		return nil, err
	}
	loc := &GeographicLocation{}
	err = s.Children(
		floatSlot(p, "longitude", &loc.Longitude),
		floatSlot(p, "latitude", &loc.Latitude),
		func(st colladaxml.Event) error {
			alt, err := parseAltitude(p, st)
			if err != nil {
				return err
			}
			loc.Altitude = alt
			return nil
		},
	)
	if err != nil {
		return nil, err
	}
	if err := s.Close(loc); err != nil {
		return nil, err
	}
	return loc, nil
}

func parseAltitude(p *parser.Parser, start colladaxml.Event) (Altitude, error) {
	s, err := p.Open("altitude", start)
	if err != nil {
		return Altitude{}, err
	}
	alt := Altitude{}
	switch mode := s.Attrs().String("mode"); mode {
	case "absolute":
		alt.Mode = Absolute
	case "relativeToGround":
		alt.Mode = RelativeToGround
	default:
		return Altitude{}, s.Attrs().Invalid("mode")
	}
	v, err := s.TextFloat()
	if err != nil {
		return Altitude{}, err
	}
	alt.Value = v
	return alt, s.Close(nil)
}

func floatSlot(p *parser.Parser, key string, out *float64) parser.ChildFunc {
	return func(st colladaxml.Event) error {
		s, err := p.Open(key, st)
		if err != nil {
			return err
		}
		v, err := s.TextFloat()
		if err != nil {
			return err
		}
		*out = v
		return s.Close(nil)
	}
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
