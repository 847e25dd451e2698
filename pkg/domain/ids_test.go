package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "simbahan/pkg/domain-errors"
)

func TestParseParishID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    ParishID
		wantErr bool
	}{
		{name: "simple slug", input: "p1", want: "p1"},
		{name: "hyphenated", input: "santo-nino", want: "santo-nino"},
		{name: "uppercase is normalized", input: "Baclayon", want: "baclayon"},
		{name: "surrounding whitespace trimmed", input: "  loboc  ", want: "loboc"},
		{name: "empty", input: "", wantErr: true},
		{name: "spaces inside", input: "santo nino", wantErr: true},
		{name: "leading hyphen", input: "-p1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseParishID(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRole(t *testing.T) {
	for _, role := range []string{"chancery_office", "museum_researcher", "parish_secretary", "public"} {
		r, err := ParseRole(role)
		require.NoError(t, err)
		assert.True(t, r.IsValid())
	}

	_, err := ParseRole("bishop")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))

	_, err = ParseRole("")
	require.Error(t, err)
}

func TestActorIDRoundTrip(t *testing.T) {
	id := NewActorID()
	require.False(t, id.IsNil())

	parsed, err := ParseActorID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	_, err = ParseActorID("not-a-uuid")
	require.Error(t, err)
}
