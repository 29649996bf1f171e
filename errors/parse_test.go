package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "code and message only",
			err:  New(ErrSyntax, "", "unexpected EOF"),
			want: "[syntax-error] unexpected EOF",
		},
		{
			name: "with element",
			err:  New(ErrMissingChild, "COLLADA", "missing required child"),
			want: "[missing-child] missing required child in <COLLADA>",
		},
		{
			name: "with position",
			err: &Error{
				Code:    ErrInvalidValue,
				Message: "bad float",
				Element: "float_array",
				Line:    3,
				Column:  14,
			},
			want: "[invalid-value] bad float in <float_array> at line 3, column 14",
		},
		{
			name: "with expected and actual",
			err: &Error{
				Code:     ErrReferenceKindMismatch,
				Message:  `reference "#box" resolved to the wrong element kind`,
				Expected: []string{"geometry"},
				Actual:   "camera",
			},
			want: `[reference-kind-mismatch] reference "#box" resolved to the wrong element kind (expected: geometry) (actual: camera)`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestListError(t *testing.T) {
	assert.Equal(t, "no errors", List{}.Error())

	one := List{New(ErrUnresolvedReference, "", `no element with id "missing"`)}
	assert.Equal(t, `[unresolved-reference] no element with id "missing"`, one.Error())

	two := append(one, New(ErrUnresolvedReference, "", `no element with id "other"`))
	assert.Equal(t, `[unresolved-reference] no element with id "missing" (and 1 more)`, two.Error())
}

func TestAsError(t *testing.T) {
	base := New(ErrDuplicateID, "geometry", `duplicate id "dup"`)
	wrapped := fmt.Errorf("parse: %w", base)

	got, ok := AsError(wrapped)
	require.True(t, ok)
	assert.Equal(t, ErrDuplicateID, got.Code)

	_, ok = AsError(fmt.Errorf("plain"))
	assert.False(t, ok)

	_, ok = AsError(nil)
	assert.False(t, ok)
}

func TestAsList(t *testing.T) {
	list := List{New(ErrUnresolvedReference, "", "missing")}
	wrapped := fmt.Errorf("resolve: %w", error(list))

	got, ok := AsList(wrapped)
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, ErrUnresolvedReference, got[0].Code)

	_, ok = AsList(nil)
	assert.False(t, ok)
}
