package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOccurs(t *testing.T) {
	tests := []struct {
		name     string
		occurs   Occurs
		repeats  bool
		requires bool
	}{
		{name: "required", occurs: Required, repeats: false, requires: true},
		{name: "optional", occurs: Optional, repeats: false, requires: false},
		{name: "optional default", occurs: OptionalDefault, repeats: false, requires: false},
		{name: "zero or more", occurs: ZeroOrMore, repeats: true, requires: false},
		{name: "one or more", occurs: OneOrMore, repeats: true, requires: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.repeats, tt.occurs.Repeats())
			assert.Equal(t, tt.requires, tt.occurs.Requires())
		})
	}
}

func TestElementLookups(t *testing.T) {
	def := &Element{
		Name: "geometry",
		Attrs: []Attr{
			{Name: "id"},
			{Name: "name"},
		},
		Children: []Child{
			{Names: []string{"asset"}, Occurs: Optional},
			{Names: []string{"convex_mesh", "mesh", "spline"}, Occurs: Required},
			{Names: []string{"extra"}, Occurs: ZeroOrMore},
		},
		ID: "id",
	}

	assert.Equal(t, "geometry", def.RegistryKey())
	assert.NotNil(t, def.Attr("id"))
	assert.Nil(t, def.Attr("sid"))
	assert.Equal(t, []string{"id", "name"}, def.AttrNames())
	assert.Equal(t, []string{"asset", "convex_mesh", "mesh", "spline", "extra"}, def.ChildNames())
	assert.True(t, def.AllowsChild("mesh"))
	assert.False(t, def.AllowsChild("camera"))
	assert.True(t, def.Children[1].Matches("spline"))
	assert.False(t, def.Children[1].Matches("extra"))
}

func TestRegistryKeyOverride(t *testing.T) {
	def := &Element{Name: "input", Key: "input_shared"}
	assert.Equal(t, "input_shared", def.RegistryKey())
}

func TestNewRegistry(t *testing.T) {
	reg := NewRegistry("1.4.1",
		&Element{Name: "asset"},
		TextLeaf("created", TextDateTime),
	)

	assert.Equal(t, "1.4.1", reg.Version())
	assert.Equal(t, 2, reg.Len())

	def, ok := reg.Lookup("created")
	require.True(t, ok)
	assert.Equal(t, TextDateTime, def.Text)

	_, ok = reg.Lookup("missing")
	assert.False(t, ok)
}

func TestNewRegistryDuplicatePanics(t *testing.T) {
	assert.Panics(t, func() {
		NewRegistry("1.4.1", &Element{Name: "asset"}, &Element{Name: "asset"})
	})
}
