package analyzer

import (
	"fmt"
	"go/token"
	"strconv"
	"strings"
)

// Position is a cursor location: a file plus 1-based line and byte column.
type Position struct {
	File   string
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// ParsePosition parses "file:line:col" or "file:line". A missing column means
// column 1. The file part may itself contain colons.
func ParsePosition(s string) (Position, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		return Position{}, fmt.Errorf("invalid position %q: want file:line[:col]", s)
	}

	nums := []int{}
	// Peel up to two trailing numeric segments.
	for len(parts) > 1 && len(nums) < 2 {
		n, err := strconv.Atoi(parts[len(parts)-1])
		if err != nil {
			break
		}
		nums = append([]int{n}, nums...)
		parts = parts[:len(parts)-1]
	}
	if len(nums) == 0 {
		return Position{}, fmt.Errorf("invalid position %q: missing line number", s)
	}

	pos := Position{File: strings.Join(parts, ":"), Line: nums[0], Column: 1}
	if len(nums) == 2 {
		pos.Column = nums[1]
	}
	if pos.File == "" {
		return Position{}, fmt.Errorf("invalid position %q: missing file", s)
	}
	if pos.Line < 1 || pos.Column < 1 {
		return Position{}, fmt.Errorf("invalid position %q: line and column are 1-based", s)
	}
	return pos, nil
}

// offset converts a line/column into a token.Pos within f. Columns past the
// end of a line are clamped to the line end.
func offset(f *token.File, line, col int) (token.Pos, error) {
	if line < 1 || line > f.LineCount() {
		return token.NoPos, fmt.Errorf("line %d out of range (file has %d lines)", line, f.LineCount())
	}
	start := f.LineStart(line)
	end := token.Pos(f.Base() + f.Size())
	if line < f.LineCount() {
		end = f.LineStart(line+1) - 1
	}
	p := start + token.Pos(col-1)
	if p > end {
		p = end
	}
	return p, nil
}
