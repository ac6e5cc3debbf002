// Package template builds the JSON argument text presented to the user
// before an invocation.
package template

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Empty is the request body sent for members without parameters.
const Empty = "{}"

const indent = "  "

// ErrInvalidJSON is returned by Validate for malformed argument text.
var ErrInvalidJSON = errors.New("argument text is not valid JSON")

// Default returns a pretty-printed JSON object whose keys are the parameter
// names in declaration order, each mapped to null.
func Default(paramNames []string) (string, error) {
	if len(paramNames) == 0 {
		return Empty, nil
	}

	var compact bytes.Buffer
	compact.WriteByte('{')
	for i, name := range paramNames {
		if i > 0 {
			compact.WriteByte(',')
		}
		k, err := json.Marshal(name)
		if err != nil {
			return "", fmt.Errorf("encoding parameter %q: %w", name, err)
		}
		compact.Write(k)
		compact.WriteString(":null")
	}
	compact.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", indent); err != nil {
		return "", err
	}
	return out.String(), nil
}

// Validate reports whether text is a well-formed JSON document.
func Validate(text string) error {
	if !json.Valid([]byte(text)) {
		return ErrInvalidJSON
	}
	return nil
}
