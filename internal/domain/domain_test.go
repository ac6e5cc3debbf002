package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- CallSite.Key tests ---

func TestCallSiteKey(t *testing.T) {
	tests := []struct {
		name string
		site CallSite
		want string
	}{
		{
			name: "two params",
			site: CallSite{QualifiedTypeName: "com.A", MemberName: "foo", ParameterTypeNames: []string{"int", "java.lang.String"}},
			want: "com.A#foo#int,java.lang.String",
		},
		{
			name: "one param",
			site: CallSite{QualifiedTypeName: "com.A", MemberName: "foo", ParameterTypeNames: []string{"int"}},
			want: "com.A#foo#int",
		},
		{
			name: "no params",
			site: CallSite{QualifiedTypeName: "example.com/svc.Handler", MemberName: "Ping"},
			want: "example.com/svc.Handler#Ping#",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.site.Key())
		})
	}
}

func TestCallSiteKeyEquality(t *testing.T) {
	s1 := CallSite{QualifiedTypeName: "com.A", MemberName: "foo", ParameterTypeNames: []string{"int"}, ParameterNames: []string{"id"}}
	s2 := CallSite{QualifiedTypeName: "com.A", MemberName: "foo", ParameterTypeNames: []string{"int"}, ParameterNames: []string{"other"}}
	assert.Equal(t, s1.Key(), s2.Key(), "parameter names must not affect the key")

	base := CallSite{QualifiedTypeName: "com.A", MemberName: "foo", ParameterTypeNames: []string{"int", "long"}}
	variants := []CallSite{
		{QualifiedTypeName: "com.B", MemberName: "foo", ParameterTypeNames: []string{"int", "long"}},
		{QualifiedTypeName: "com.A", MemberName: "bar", ParameterTypeNames: []string{"int", "long"}},
		{QualifiedTypeName: "com.A", MemberName: "foo", ParameterTypeNames: []string{"long", "int"}},
		{QualifiedTypeName: "com.A", MemberName: "foo", ParameterTypeNames: []string{"int"}},
		{QualifiedTypeName: "com.A", MemberName: "foo"},
	}
	for _, v := range variants {
		assert.NotEqual(t, base.Key(), v.Key(), "key should differ for %s", v)
	}
}

func TestCallSiteHasParameters(t *testing.T) {
	assert.False(t, CallSite{}.HasParameters())
	assert.True(t, CallSite{ParameterTypeNames: []string{"int"}}.HasParameters())
}

func TestCallSiteString(t *testing.T) {
	s := CallSite{QualifiedTypeName: "pkg.T", MemberName: "Do", ParameterTypeNames: []string{"int", "string"}}
	assert.Equal(t, "pkg.T.Do(int, string)", s.String())
}

// --- InvocationRequest tests ---

func TestRequestFromCallSite(t *testing.T) {
	s := CallSite{QualifiedTypeName: "com.A", MemberName: "foo", ParameterTypeNames: []string{"int"}}
	req := s.Request(`{"id": 5}`)

	assert.Equal(t, `{"id": 5}`, req.Content)
	assert.Equal(t, "foo", req.MethodName)
	assert.Equal(t, "com.A", req.ClassName)
	assert.Equal(t, []string{"int"}, req.ParameterTypes)

	// The request owns its slice.
	req.ParameterTypes[0] = "long"
	assert.Equal(t, "int", s.ParameterTypeNames[0])
}

func TestRequestJSONShape(t *testing.T) {
	req := CallSite{QualifiedTypeName: "com.A", MemberName: "ping"}.Request("{}")

	data, err := json.Marshal(req)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "{}", raw["content"])
	assert.Equal(t, "ping", raw["methodName"])
	assert.Equal(t, "com.A", raw["className"])
	assert.Equal(t, []any{}, raw["parameterTypes"], "empty parameter list must encode as an array")
}
