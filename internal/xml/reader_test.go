package colladaxml

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacoelho/collada/errors"
)

func readAll(t *testing.T, doc string) []Event {
	t.Helper()

	r := NewReader(strings.NewReader(doc))
	var events []Event
	for {
		ev, err := r.Next()
		if err == io.EOF {
			return events
		}
		require.NoError(t, err)
		events = append(events, ev)
	}
}

func TestReaderEvents(t *testing.T) {
	doc := `<?xml version="1.0" encoding="utf-8"?>
<root version="1.4.1">
    <child name="a">text</child>
    <empty/>
</root>`

	events := readAll(t, doc)
	require.Len(t, events, 7)

	assert.Equal(t, StartElement, events[0].Kind)
	assert.Equal(t, "root", events[0].Name)
	v, ok := events[0].Attr("version")
	require.True(t, ok)
	assert.Equal(t, "1.4.1", v)
	assert.Equal(t, 2, events[0].Line)
	assert.Equal(t, 1, events[0].Column)

	assert.Equal(t, StartElement, events[1].Kind)
	assert.Equal(t, "child", events[1].Name)
	assert.Equal(t, 3, events[1].Line)
	assert.Equal(t, 5, events[1].Column)

	assert.Equal(t, CharData, events[2].Kind)
	assert.Equal(t, "text", events[2].Text)

	assert.Equal(t, EndElement, events[3].Kind)
	assert.Equal(t, "child", events[3].Name)

	assert.Equal(t, StartElement, events[4].Kind)
	assert.Equal(t, "empty", events[4].Name)
	assert.Equal(t, EndElement, events[5].Kind)
	assert.Equal(t, EndElement, events[6].Kind)
	assert.Equal(t, "root", events[6].Name)
}

func TestReaderSkipsDoctypeAndComments(t *testing.T) {
	doc := `<?xml version="1.0"?>
<!DOCTYPE note SYSTEM "Note.dtd">
<!-- a comment -->
<root><!-- inner --></root>`

	events := readAll(t, doc)
	require.Len(t, events, 2)
	assert.Equal(t, "root", events[0].Name)
	assert.Equal(t, EndElement, events[1].Kind)
}

func TestReaderTrimsWhitespace(t *testing.T) {
	doc := "<root>\n   <value>   7.5   </value>\n</root>"

	events := readAll(t, doc)
	require.Len(t, events, 5)
	assert.Equal(t, CharData, events[2].Kind)
	assert.Equal(t, "7.5", events[2].Text)
}

func TestReaderMissingAttrLookup(t *testing.T) {
	events := readAll(t, `<root a="1"/>`)
	_, ok := events[0].Attr("b")
	assert.False(t, ok)
}

func TestReaderSyntaxError(t *testing.T) {
	r := NewReader(strings.NewReader("<root><unbalanced></root>"))

	var err error
	for err == nil {
		_, err = r.Next()
	}
	require.NotEqual(t, io.EOF, err)

	perr, ok := errors.AsError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrSyntax, perr.Code)
	assert.Greater(t, perr.Line, 0)
}

func TestReaderDropsNamespaceDeclarations(t *testing.T) {
	events := readAll(t, `<root xmlns:x="http://example.com" a="1"/>`)
	require.Len(t, events, 2)
	require.Len(t, events[0].Attrs, 1)
	assert.Equal(t, "a", events[0].Attrs[0].Name)
}
