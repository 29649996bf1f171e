package parser

import (
	"strconv"
	"strings"

	"github.com/jacoelho/collada/common"
	"github.com/jacoelho/collada/errors"
	colladaxml "github.com/jacoelho/collada/internal/xml"
)

// text consumes the element's content up to its end event and returns the
// accumulated character data. Child elements are structural errors.
func (s *State) text() (string, colladaxml.Event, error) {
	var b strings.Builder
	var at colladaxml.Event

	for {
		ev, err := s.p.next()
		if err != nil {
			return "", at, err
		}
		switch ev.Kind {
		case colladaxml.EndElement:
			return b.String(), at, nil
		case colladaxml.CharData:
			if b.Len() == 0 {
				at = ev
			} else {
				b.WriteByte(' ')
			}
			b.WriteString(ev.Text)
		case colladaxml.StartElement:
			return "", at, &errors.Error{
				Code:    errors.ErrUnexpectedChild,
				Message: "element may only contain text data",
				Element: s.def.Name,
				Actual:  ev.Name,
				Line:    ev.Line,
				Column:  ev.Column,
			}
		}
	}
}

// Text consumes optional text content, returning "" for an empty element.
func (s *State) Text() (string, error) {
	text, _, err := s.text()
	return text, err
}

// RequiredText consumes text content, failing if the element is empty.
func (s *State) RequiredText() (string, error) {
	text, _, err := s.text()
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", s.missingValue()
	}
	return text, nil
}

// Empty consumes the end event of an element that holds no content.
func (s *State) Empty() error {
	text, at, err := s.text()
	if err != nil {
		return err
	}
	if text != "" {
		return &errors.Error{
			Code:    errors.ErrUnexpectedText,
			Message: "element may not contain text data",
			Element: s.def.Name,
			Line:    at.Line,
			Column:  at.Column,
		}
	}
	return nil
}

// TextFloat consumes required text content as a floating-point value.
func (s *State) TextFloat() (float64, error) {
	text, at, err := s.text()
	if err != nil {
		return 0, err
	}
	if text == "" {
		return 0, s.missingValue()
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, s.invalidValue(text, at)
	}
	return f, nil
}

// TextDateTime consumes required text content as an ISO 8601 timestamp.
func (s *State) TextDateTime() (common.DateTime, error) {
	text, at, err := s.text()
	if err != nil {
		return common.DateTime{}, err
	}
	if text == "" {
		return common.DateTime{}, s.missingValue()
	}
	dt, err := common.ParseDateTime(text)
	if err != nil {
		return common.DateTime{}, s.invalidValue(text, at)
	}
	return dt, nil
}

// FloatList consumes text content as whitespace-delimited floats.
func (s *State) FloatList() ([]float64, error) {
	text, at, err := s.text()
	if err != nil {
		return nil, err
	}
	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return nil, nil
	}
	out := make([]float64, len(tokens))
	for i, tok := range tokens {
		f, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, s.invalidToken(i, tok, at)
		}
		out[i] = f
	}
	return out, nil
}

// IntList consumes text content as whitespace-delimited integers.
func (s *State) IntList() ([]int, error) {
	text, at, err := s.text()
	if err != nil {
		return nil, err
	}
	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return nil, nil
	}
	out := make([]int, len(tokens))
	for i, tok := range tokens {
		n, err := strconv.Atoi(tok)
		if err != nil {
			return nil, s.invalidToken(i, tok, at)
		}
		out[i] = n
	}
	return out, nil
}

// UintList consumes text content as whitespace-delimited non-negative
// integers, the index form used by vertex and primitive data.
func (s *State) UintList() ([]int, error) {
	text, at, err := s.text()
	if err != nil {
		return nil, err
	}
	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return nil, nil
	}
	out := make([]int, len(tokens))
	for i, tok := range tokens {
		n, err := strconv.ParseUint(tok, 10, 63)
		if err != nil {
			return nil, s.invalidToken(i, tok, at)
		}
		out[i] = int(n)
	}
	return out, nil
}

// BoolList consumes text content as whitespace-delimited booleans.
func (s *State) BoolList() ([]bool, error) {
	text, at, err := s.text()
	if err != nil {
		return nil, err
	}
	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return nil, nil
	}
	out := make([]bool, len(tokens))
	for i, tok := range tokens {
		switch tok {
		case "true", "1":
			out[i] = true
		case "false", "0":
			out[i] = false
		default:
			return nil, s.invalidToken(i, tok, at)
		}
	}
	return out, nil
}

// NameList consumes text content as whitespace-delimited name tokens.
func (s *State) NameList() ([]string, error) {
	text, _, err := s.text()
	if err != nil {
		return nil, err
	}
	return strings.Fields(text), nil
}

// InvalidText reports already-consumed text content as invalid, for values
// whose decoding lives outside the engine, such as enum tokens.
func (s *State) InvalidText(value string) error {
	return s.invalidValue(value, colladaxml.Event{})
}

func (s *State) missingValue() *errors.Error {
	return &errors.Error{
		Code:    errors.ErrMissingValue,
		Message: "element is missing required text data",
		Element: s.def.Name,
		Line:    s.start.Line,
		Column:  s.start.Column,
	}
}

func (s *State) invalidValue(value string, at colladaxml.Event) *errors.Error {
	line, col := at.Line, at.Column
	if line == 0 {
		line, col = s.start.Line, s.start.Column
	}
	return &errors.Error{
		Code:    errors.ErrInvalidValue,
		Message: "invalid text data",
		Element: s.def.Name,
		Actual:  value,
		Line:    line,
		Column:  col,
	}
}

func (s *State) invalidToken(index int, token string, at colladaxml.Event) *errors.Error {
	line, col := at.Line, at.Column
	if line == 0 {
		line, col = s.start.Line, s.start.Column
	}
	return &errors.Error{
		Code:    errors.ErrInvalidValue,
		Message: "invalid token " + strconv.Itoa(index) + " in array data",
		Element: s.def.Name,
		Actual:  token,
		Line:    line,
		Column:  col,
	}
}
