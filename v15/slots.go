package v15

import (
	"github.com/jacoelho/collada/common"
	"github.com/jacoelho/collada/internal/parser"
	colladaxml "github.com/jacoelho/collada/internal/xml"
)

// Slot helpers shared by the parse functions: each builds a ChildFunc that
// parses one occurrence and stores it.

func assetSlot(p *parser.Parser, out **Asset) parser.ChildFunc {
	return func(st colladaxml.Event) error {
		a, err := parseAsset(p, st)
		*out = a
		return err
	}
}

func extraSlot(p *parser.Parser, out *[]*Extra) parser.ChildFunc {
	return func(st colladaxml.Event) error {
		e, err := parseExtra(p, st)
		if err != nil {
			return err
		}
		*out = append(*out, e)
		return nil
	}
}

func techniqueSlot(p *parser.Parser, out *[]*common.Technique) parser.ChildFunc {
	return func(st colladaxml.Event) error {
		t, err := p.Technique(st)
		if err != nil {
			return err
		}
		*out = append(*out, t)
		return nil
	}
}

// textSlot parses a text-only child element into a string.
func textSlot(p *parser.Parser, key string, out *string) parser.ChildFunc {
	return func(st colladaxml.Event) error {
		s, err := p.Open(key, st)
		if err != nil {
			return err
		}
		text, err := s.Text()
		if err != nil {
			return err
		}
		*out = text
		return s.Close(nil)
	}
}

// inputSlot parses one unshared <input> child.
func inputSlot(p *parser.Parser, out *[]*Input) parser.ChildFunc {
	return func(st colladaxml.Event) error {
		in, err := parseInput(p, st)
		if err != nil {
			return err
		}
		*out = append(*out, in)
		return nil
	}
}

// sharedInputSlot parses one shared <input> child carrying an offset.
func sharedInputSlot(p *parser.Parser, out *[]*SharedInput) parser.ChildFunc {
	return func(st colladaxml.Event) error {
		in, err := parseSharedInput(p, st)
		if err != nil {
			return err
		}
		*out = append(*out, in)
		return nil
	}
}
