package analyzer

import (
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePosition(t *testing.T) {
	tests := []struct {
		input   string
		want    Position
		wantErr bool
	}{
		{"main.go:10:5", Position{File: "main.go", Line: 10, Column: 5}, false},
		{"main.go:10", Position{File: "main.go", Line: 10, Column: 1}, false},
		{"/abs/dir/x.go:1:1", Position{File: "/abs/dir/x.go", Line: 1, Column: 1}, false},
		{`C:\src\x.go:3:4`, Position{File: `C:\src\x.go`, Line: 3, Column: 4}, false},
		{"main.go", Position{}, true},
		{"main.go:abc", Position{}, true},
		{":10:5", Position{}, true},
		{"main.go:0:1", Position{}, true},
		{"main.go:1:0", Position{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePosition(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPositionString(t *testing.T) {
	assert.Equal(t, "a.go:3:7", Position{File: "a.go", Line: 3, Column: 7}.String())
}

func TestOffsetClampsColumn(t *testing.T) {
	fset := token.NewFileSet()
	src := "ab\ncdef\n"
	f := fset.AddFile("x.go", -1, len(src))
	f.SetLinesForContent([]byte(src))

	p, err := offset(f, 1, 50)
	require.NoError(t, err)
	assert.Equal(t, 2, f.Offset(p), "clamped to the newline ending line 1")

	p, err = offset(f, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, 5, f.Offset(p))

	_, err = offset(f, 9, 1)
	assert.Error(t, err)
}
