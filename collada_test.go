package collada

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacoelho/collada/errors"
)

func document(version string) string {
	return `<?xml version="1.0" encoding="utf-8"?>
	<COLLADA version="` + version + `">
		<asset>
			<created>2017-02-07T20:44:30Z</created>
			<modified>2017-02-07T20:44:30Z</modified>
		</asset>
	</COLLADA>`
}

func TestVersionDispatch(t *testing.T) {
	tests := []struct {
		name    string
		version string
		want    Version
	}{
		{name: "1.4.0 routes to v14", version: "1.4.0", want: V14},
		{name: "1.4.1 routes to v14", version: "1.4.1", want: V14},
		{name: "1.5.0 routes to v15", version: "1.5.0", want: V15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ParseString(document(tt.version))
			require.NoError(t, err)

			assert.Equal(t, tt.want, doc.Version)
			switch tt.want {
			case V14:
				require.NotNil(t, doc.Doc14)
				assert.Nil(t, doc.Doc15)
				assert.Equal(t, tt.version, doc.Doc14.Version)
			case V15:
				require.NotNil(t, doc.Doc15)
				assert.Nil(t, doc.Doc14)
				assert.Equal(t, tt.version, doc.Doc15.Version)
			}
		})
	}
}

func TestUnsupportedVersion(t *testing.T) {
	for _, version := range []string{"9.9.9", "1.3.1", "2.0"} {
		t.Run(version, func(t *testing.T) {
			_, err := ParseString(document(version))
			require.Error(t, err)
			e, ok := errors.AsError(err)
			require.True(t, ok)
			assert.Equal(t, errors.ErrUnsupportedVersion, e.Code)
			assert.Equal(t, version, e.Actual)
		})
	}
}

func TestMissingVersion(t *testing.T) {
	doc := `<COLLADA>
		<asset>
			<created>2017-02-07T20:44:30Z</created>
			<modified>2017-02-07T20:44:30Z</modified>
		</asset>
	</COLLADA>`

	_, err := ParseString(doc)
	require.Error(t, err)
	e, ok := errors.AsError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrMissingAttribute, e.Code)
	assert.Equal(t, "COLLADA", e.Element)
}

func TestWrongRoot(t *testing.T) {
	_, err := ParseString(`<scene version="1.4.1"></scene>`)
	require.Error(t, err)
	e, ok := errors.AsError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrUnexpectedRoot, e.Code)
	assert.Equal(t, "scene", e.Actual)
}

func TestEmptyDocument(t *testing.T) {
	_, err := Parse(strings.NewReader(""))
	require.Error(t, err)
	e, ok := errors.AsError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrSyntax, e.Code)
}

func TestUnresolvedReferencesSurface(t *testing.T) {
	doc := `<COLLADA version="1.4.1">
		<asset>
			<created>2017-02-07T20:44:30Z</created>
			<modified>2017-02-07T20:44:30Z</modified>
		</asset>
		<library_visual_scenes>
			<visual_scene id="Scene">
				<node id="Cube">
					<instance_geometry url="#missing"/>
				</node>
			</visual_scene>
		</library_visual_scenes>
	</COLLADA>`

	parsed, err := ParseString(doc)
	require.NoError(t, err)
	require.Len(t, parsed.Unresolved, 1)
	assert.Equal(t, errors.ErrUnresolvedReference, parsed.Unresolved[0].Code)
}
