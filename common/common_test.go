package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateTime(t *testing.T) {
	tests := []struct {
		name  string
		input string
		naive bool
		str   string
	}{
		{name: "utc", input: "2017-02-07T20:44:30Z", naive: false, str: "2017-02-07T20:44:30Z"},
		{name: "offset", input: "2017-02-07T20:44:30+02:00", naive: false, str: "2017-02-07T20:44:30+02:00"},
		{name: "naive", input: "2017-02-07T20:44:30", naive: true, str: "2017-02-07T20:44:30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDateTime(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.naive, got.Naive)
			assert.Equal(t, tt.str, got.String())
		})
	}
}

func TestParseDateTimeInvalid(t *testing.T) {
	_, err := ParseDateTime("last tuesday")
	assert.Error(t, err)
}

func TestDateTimeEqual(t *testing.T) {
	utc, err := ParseDateTime("2017-02-07T20:44:30Z")
	require.NoError(t, err)
	naive, err := ParseDateTime("2017-02-07T20:44:30")
	require.NoError(t, err)

	assert.True(t, utc.Equal(utc))
	assert.False(t, utc.Equal(naive))
}

func TestParseUpAxis(t *testing.T) {
	for _, tok := range []string{"X_UP", "Y_UP", "Z_UP"} {
		axis, err := ParseUpAxis(tok)
		require.NoError(t, err)
		assert.Equal(t, tok, axis.String())
	}

	_, err := ParseUpAxis("W_UP")
	assert.Error(t, err)
}

func TestDefaultUnit(t *testing.T) {
	assert.Equal(t, Unit{Meter: 1.0, Name: "meter"}, DefaultUnit())
}

func TestRef(t *testing.T) {
	local := NewRef("#box-mesh")
	assert.False(t, local.External())
	assert.Equal(t, "box-mesh", local.Fragment())
	assert.False(t, local.Resolved())

	external := NewRef("other.dae#box-mesh")
	assert.True(t, external.External())
}

func TestFragmentLookups(t *testing.T) {
	frag := &Fragment{
		Name:  "profile",
		Attrs: []Attr{{Name: "platform", Value: "PC"}},
		Children: []*Fragment{
			{Name: "shader", Text: "phong"},
		},
	}

	v, ok := frag.Attr("platform")
	require.True(t, ok)
	assert.Equal(t, "PC", v)

	_, ok = frag.Attr("missing")
	assert.False(t, ok)

	require.NotNil(t, frag.Find("shader"))
	assert.Nil(t, frag.Find("sampler"))
}
