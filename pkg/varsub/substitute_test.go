package varsub_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/251207-go-pkg-varsub/pkg/varsub"
)

const foxInput = "The quick brown ${fox} jumps ${over} the lazy ${dog}"

func TestSubstitute(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		vars    *varsub.Store
		markers varsub.Markers
		mode    varsub.Mode
		want    string
	}{
		{
			name:    "all variables",
			input:   foxInput,
			vars:    varsub.NewStore("fox", "fox", "over", "over", "dog", "dog"),
			markers: varsub.DefaultMarkers(),
			mode:    varsub.Strict,
			want:    "The quick brown fox jumps over the lazy dog",
		},
		{
			name:    "single variable",
			input:   foxInput,
			vars:    varsub.NewStore("over", "over"),
			markers: varsub.DefaultMarkers(),
			mode:    varsub.Simple,
			want:    "The quick brown ${fox} jumps over the lazy ${dog}",
		},
		{
			name:    "mismatched markers",
			input:   foxInput,
			vars:    varsub.NewStore("fox", "fox", "over", "over", "dog", "dog"),
			markers: varsub.NewMarkers("&[", "]"),
			mode:    varsub.Strict,
			want:    foxInput,
		},
		{
			name:    "empty store",
			input:   foxInput,
			vars:    varsub.NewStore(),
			markers: varsub.DefaultMarkers(),
			mode:    varsub.Simple,
			want:    foxInput,
		},
		{
			name:    "nil store",
			input:   "plain",
			markers: varsub.DefaultMarkers(),
			mode:    varsub.Strict,
			want:    "plain",
		},
		{
			name:    "multiple occurrences",
			input:   "The quick brown ${fox} jumps ${over} the lazy ${fox}",
			vars:    varsub.NewStore("fox", "fox"),
			markers: varsub.DefaultMarkers(),
			mode:    varsub.Simple,
			want:    "The quick brown fox jumps ${over} the lazy fox",
		},
		{
			name:    "no matching names",
			input:   foxInput,
			vars:    varsub.NewStore("foxxxx", "fox", "overxxx", "over", "dogxxx", "dog"),
			markers: varsub.DefaultMarkers(),
			mode:    varsub.SimpleWithLogging,
			want:    foxInput,
		},
		{
			name:    "values are not substituted again",
			input:   "${a}",
			vars:    varsub.NewStore("a", "${HOME}"),
			markers: varsub.DefaultMarkers(),
			mode:    varsub.Simple,
			want:    "${HOME}",
		},
		{
			name:    "inserted values are not rewritten by later variables",
			input:   "${a}",
			vars:    varsub.NewStore("a", "${b}", "b", "x"),
			markers: varsub.DefaultMarkers(),
			mode:    varsub.Simple,
			want:    "${b}",
		},
		{
			name:    "result does not depend on store order",
			input:   "${a}",
			vars:    varsub.NewStore("b", "x", "a", "${b}"),
			markers: varsub.DefaultMarkers(),
			mode:    varsub.Simple,
			want:    "${b}",
		},
		{
			name:    "name without value is left untouched",
			input:   "${a}-${b}",
			vars:    varsub.NewStore("b", "x", "a"),
			markers: varsub.DefaultMarkers(),
			mode:    varsub.Simple,
			want:    "${a}-x",
		},
		{
			name:    "custom markers",
			input:   "<id>%{adapter.id}%</id>",
			vars:    varsub.NewStore("adapter.id", "MyAdapterID"),
			markers: varsub.NewMarkers("%{", "}%"),
			mode:    varsub.StrictWithLogging,
			want:    "<id>MyAdapterID</id>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := varsub.Substitute(tt.input, tt.vars, tt.markers, tt.mode)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSubstitute_StrictUnresolved(t *testing.T) {
	for _, mode := range []varsub.Mode{varsub.Strict, varsub.StrictWithLogging} {
		t.Run(mode.String(), func(t *testing.T) {
			got, err := varsub.Substitute(foxInput, varsub.NewStore("fox", "fox", "dog", "dog"), varsub.DefaultMarkers(), mode)
			require.ErrorIs(t, err, varsub.ErrUnresolved)
			assert.Empty(t, got, "no partial output on failure")

			var unresolved *varsub.UnresolvedError
			require.ErrorAs(t, err, &unresolved)
			assert.Equal(t, "${over}", unresolved.Token)
			assert.Contains(t, err.Error(), "${over}")
		})
	}
}

func TestSubstitute_LenientUnresolved(t *testing.T) {
	for _, mode := range []varsub.Mode{varsub.Simple, varsub.SimpleWithLogging} {
		t.Run(mode.String(), func(t *testing.T) {
			got, err := varsub.Substitute("${missing}", varsub.NewStore(), varsub.DefaultMarkers(), mode)
			require.NoError(t, err)
			assert.Equal(t, "${missing}", got)
		})
	}
}

func TestSubstitute_Suggestion(t *testing.T) {
	_, err := varsub.Substitute("${ovr}", varsub.NewStore("fox", "fox", "over", "over"), varsub.DefaultMarkers(), varsub.Strict)

	var unresolved *varsub.UnresolvedError
	require.ErrorAs(t, err, &unresolved)
	assert.Equal(t, "${over}", unresolved.Suggestion)
	assert.Contains(t, err.Error(), "did you mean ${over}?")
}

func TestSubstitute_EmptyPlaceholder(t *testing.T) {
	got, err := varsub.Substitute("a ${} b", varsub.NewStore("x", "y"), varsub.DefaultMarkers(), varsub.Simple)
	require.NoError(t, err)
	assert.Equal(t, "a ${} b", got)

	_, err = varsub.Substitute("a ${} b", varsub.NewStore("x", "y"), varsub.DefaultMarkers(), varsub.Strict)
	require.ErrorIs(t, err, varsub.ErrUnresolved)

	var unresolved *varsub.UnresolvedError
	require.ErrorAs(t, err, &unresolved)
	assert.Equal(t, "${}", unresolved.Token)
	assert.Empty(t, unresolved.Suggestion)
}
