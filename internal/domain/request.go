package domain

// InvocationRequest is the envelope posted to the any_door runtime server.
// It is built fresh for every invocation and never cached.
type InvocationRequest struct {
	Content        string   `json:"content"` // raw JSON argument text
	MethodName     string   `json:"methodName"`
	ClassName      string   `json:"className"`
	ParameterTypes []string `json:"parameterTypes"`
}
