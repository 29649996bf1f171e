package v15

import (
	"github.com/jacoelho/collada/common"
	"github.com/jacoelho/collada/internal/parser"
	"github.com/jacoelho/collada/internal/schema"
	colladaxml "github.com/jacoelho/collada/internal/xml"
)

func sourceDefs() []*schema.Element {
	arrayAttrs := func(extra ...schema.Attr) []schema.Attr {
		attrs := []schema.Attr{
			{Name: "count", Required: true},
			{Name: "id"},
			{Name: "name"},
		}
		return append(attrs, extra...)
	}

	return []*schema.Element{
		{
			Name:   "source",
			Attrs:  []schema.Attr{{Name: "id", Required: true}, {Name: "name"}},
			ID:     "id",
			Scoped: true,
			Children: []schema.Child{
				{Names: []string{"asset"}, Occurs: schema.Optional},
				{Names: []string{
					"IDREF_array", "Name_array", "bool_array", "float_array", "int_array",
				}, Occurs: schema.Optional},
				{Names: []string{"technique_common"}, Occurs: schema.Optional},
				{Names: []string{"technique"}, Occurs: schema.ZeroOrMore},
			},
		},
		{
			Name: "float_array",
			Attrs: arrayAttrs(
				schema.Attr{Name: "digits", Default: "6"},
				schema.Attr{Name: "magnitude", Default: "38"},
			),
			Text: schema.TextFloatList,
			ID:   "id",
		},
		{
			Name: "int_array",
			Attrs: arrayAttrs(
				schema.Attr{Name: "minInclusive", Default: "-2147483648"},
				schema.Attr{Name: "maxInclusive", Default: "2147483647"},
			),
			Text: schema.TextIntList,
			ID:   "id",
		},
		{
			Name:  "bool_array",
			Attrs: arrayAttrs(),
			Text:  schema.TextBoolList,
			ID:    "id",
		},
		{
			Name:  "Name_array",
			Attrs: arrayAttrs(),
			Text:  schema.TextNameList,
			ID:    "id",
		},
		{
			Name:  "IDREF_array",
			Attrs: arrayAttrs(),
			Text:  schema.TextNameList,
			ID:    "id",
		},
		{
			Name: "technique_common",
			Key:  "source_technique_common",
			Children: []schema.Child{
				{Names: []string{"accessor"}, Occurs: schema.Required},
			},
		},
		{
			Name: "accessor",
			Attrs: []schema.Attr{
				{Name: "count", Required: true},
				{Name: "offset", Default: "0"},
				{Name: "source", Required: true},
				{Name: "stride", Default: "1"},
			},
			Children: []schema.Child{
				{Names: []string{"param"}, Occurs: schema.ZeroOrMore},
			},
		},
		{
			Name:  "param",
			Attrs: []schema.Attr{{Name: "name"}, {Name: "sid"}, {Name: "type", Required: true}, {Name: "semantic"}},
			SID:   "sid",
		},
	}
}

// Source holds one stream of raw data and the accessor describing how to
// read it. Exactly one of the array fields is set when the source carries
// inline data.
type Source struct {
	ID   string
	Name string

	Asset      *Asset
	IDREFArray *IDREFArray
	NameArray  *NameArray
	BoolArray  *BoolArray
	FloatArray *FloatArray
	IntArray   *IntArray

	Accessor   *Accessor
	Techniques []*common.Technique
}

// FloatArray is inline floating-point data.
type FloatArray struct {
	Count int
	ID    string
	Name  string
	// Digits and Magnitude bound the significant figures and exponent of
	// the values; the schema defaults are 6 and 38.
	Digits    int
	Magnitude int

	Data []float64
}

// IntArray is inline integer data.
type IntArray struct {
	Count int
	ID    string
	Name  string
	Min   int
	Max   int

	Data []int
}

// BoolArray is inline boolean data.
type BoolArray struct {
	Count int
	ID    string
	Name  string

	Data []bool
}

// NameArray is inline name token data.
type NameArray struct {
	Count int
	ID    string
	Name  string

	Data []string
}

// IDREFArray is inline data referencing identified elements by id.
type IDREFArray struct {
	Count int
	ID    string
	Name  string

	Data []string
}

// Accessor describes how to read structured values out of a data array.
type Accessor struct {
	Count int
	// Offset is the index of the first value; the schema default is 0.
	Offset int
	Source common.Ref
	// Stride is the number of array values per element; the schema default
	// is 1.
	Stride int

	Params []*Param
}

// Param declares the name and type of one value within an accessor stride.
// A param without a name is present in the data but not accessed.
type Param struct {
	Name     string
	SID      string
	Type     string
	Semantic string
}

func parseSource(p *parser.Parser, start colladaxml.Event) (*Source, error) {
	s, err := p.Open("source", start)
	if err != nil {
		return nil, err
	}

	src := &Source{ID: s.Attrs().String("id"), Name: s.Attrs().String("name")}
	err = s.Children(
		assetSlot(p, &src.Asset),
		func(st colladaxml.Event) error {
			return parseArray(p, st, src)
		},
		func(st colladaxml.Event) error {
			ts, err := p.Open("source_technique_common", st)
			if err != nil {
				return err
			}
			err = ts.Children(func(st colladaxml.Event) error {
				acc, err := parseAccessor(p, st)
				src.Accessor = acc
				return err
			})
			if err != nil {
				return err
			}
			return ts.Close(nil)
		},
		techniqueSlot(p, &src.Techniques),
	)
	if err != nil {
		return nil, err
	}
	if err := s.Close(src); err != nil {
		return nil, err
	}
	return src, nil
}

func parseArray(p *parser.Parser, start colladaxml.Event, src *Source) error {
	s, err := p.Open(start.Name, start)
	if err != nil {
		return err
	}

	count, err := s.Attrs().Uint("count")
	if err != nil {
		return err
	}
	id := s.Attrs().String("id")
	name := s.Attrs().String("name")

	switch start.Name {
	case "float_array":
		arr := &FloatArray{Count: count, ID: id, Name: name}
		if arr.Digits, err = s.Attrs().Uint("digits"); err != nil {
			return err
		}
		if arr.Magnitude, err = s.Attrs().Uint("magnitude"); err != nil {
			return err
		}
		if arr.Data, err = s.FloatList(); err != nil {
			return err
		}
		src.FloatArray = arr
		return s.Close(arr)

	case "int_array":
		arr := &IntArray{Count: count, ID: id, Name: name}
		if arr.Min, err = s.Attrs().Int("minInclusive"); err != nil {
			return err
		}
		if arr.Max, err = s.Attrs().Int("maxInclusive"); err != nil {
			return err
		}
		if arr.Data, err = s.IntList(); err != nil {
			return err
		}
		src.IntArray = arr
		return s.Close(arr)

	case "bool_array":
		arr := &BoolArray{Count: count, ID: id, Name: name}
		if arr.Data, err = s.BoolList(); err != nil {
			return err
		}
		src.BoolArray = arr
		return s.Close(arr)

	case "Name_array":
		arr := &NameArray{Count: count, ID: id, Name: name}
		if arr.Data, err = s.NameList(); err != nil {
			return err
		}
		src.NameArray = arr
		return s.Close(arr)

	default:
		arr := &IDREFArray{Count: count, ID: id, Name: name}
		if arr.Data, err = s.NameList(); err != nil {
			return err
		}
		src.IDREFArray = arr
		return s.Close(arr)
	}
}

func parseAccessor(p *parser.Parser, start colladaxml.Event) (*Accessor, error) {
	s, err := p.Open("accessor", start)
	if err != nil {
		return nil, err
	}

	acc := &Accessor{Source: common.NewRef(s.Attrs().String("source"))}
	if acc.Count, err = s.Attrs().Uint("count"); err != nil {
		return nil, err
	}
	if acc.Offset, err = s.Attrs().Uint("offset"); err != nil {
		return nil, err
	}
	if acc.Stride, err = s.Attrs().Uint("stride"); err != nil {
		return nil, err
	}
	s.RecordRef(&acc.Source,
		"float_array", "int_array", "bool_array", "Name_array", "IDREF_array")

	err = s.Children(func(st colladaxml.Event) error {
		param, err := parseParam(p, st)
		if err != nil {
			return err
		}
		acc.Params = append(acc.Params, param)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := s.Close(acc); err != nil {
		return nil, err
	}
	return acc, nil
}

func parseParam(p *parser.Parser, start colladaxml.Event) (*Param, error) {
	s, err := p.Open("param", start)
	if err != nil {
		return nil, err
	}
	param := &Param{
		Name:     s.Attrs().String("name"),
		SID:      s.Attrs().String("sid"),
		Type:     s.Attrs().String("type"),
		Semantic: s.Attrs().String("semantic"),
	}
	if err := s.Empty(); err != nil {
		return nil, err
	}
	if err := s.Close(param); err != nil {
		return nil, err
	}
	return param, nil
}
