package template

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	got, err := Default([]string{"id", "name"})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"id\": null,\n  \"name\": null\n}", got)
}

func TestDefaultKeepsDeclarationOrder(t *testing.T) {
	got, err := Default([]string{"zeta", "alpha", "mid"})
	require.NoError(t, err)

	dec := json.NewDecoder(strings.NewReader(got))
	var keys []string
	_, err = dec.Token() // {
	require.NoError(t, err)
	for dec.More() {
		tok, err := dec.Token()
		require.NoError(t, err)
		keys = append(keys, tok.(string))
		val, err := dec.Token()
		require.NoError(t, err)
		assert.Nil(t, val)
	}
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, keys)
}

func TestDefaultNoParams(t *testing.T) {
	got, err := Default(nil)
	require.NoError(t, err)
	assert.Equal(t, Empty, got)
}

func TestDefaultEscapesNames(t *testing.T) {
	got, err := Default([]string{`we"ird`})
	require.NoError(t, err)
	assert.NoError(t, Validate(got))
	assert.Contains(t, got, `"we\"ird": null`)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{`{}`, false},
		{`{"id": 5}`, false},
		{`[1, 2]`, false},
		{`{"id": }`, true},
		{``, true},
		{`{{`, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := Validate(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidJSON)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
