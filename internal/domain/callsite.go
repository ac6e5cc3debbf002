package domain

import "strings"

// Separators used when deriving a signature key. Neither may appear inside a
// type, member or parameter type name.
const (
	keySep   = "#"
	paramSep = ","
)

// CallSite identifies the invocable member the cursor currently targets.
type CallSite struct {
	QualifiedTypeName  string   `json:"className"`
	MemberName         string   `json:"methodName"`
	ParameterTypeNames []string `json:"parameterTypes"`
	// ParameterNames is used to generate the default argument template. It does
	// not participate in Key.
	ParameterNames []string `json:"parameterNames,omitempty"`
}

// Key returns the signature key used to cache argument templates.
//
//	com.A#foo#int,java.lang.String
func (c CallSite) Key() string {
	return c.QualifiedTypeName + keySep + c.MemberName + keySep + strings.Join(c.ParameterTypeNames, paramSep)
}

// HasParameters reports whether the member takes any arguments.
func (c CallSite) HasParameters() bool {
	return len(c.ParameterTypeNames) > 0
}

// String returns a human-readable form of the call site.
func (c CallSite) String() string {
	return c.QualifiedTypeName + "." + c.MemberName + "(" + strings.Join(c.ParameterTypeNames, ", ") + ")"
}

// Request builds the invocation request for this call site with the given
// JSON argument text.
func (c CallSite) Request(content string) InvocationRequest {
	types := make([]string, len(c.ParameterTypeNames))
	copy(types, c.ParameterTypeNames)
	return InvocationRequest{
		Content:        content,
		MethodName:     c.MemberName,
		ClassName:      c.QualifiedTypeName,
		ParameterTypes: types,
	}
}
