package dto

// ErrorResponse is the body of every non-2xx response. Kind, Field and Gate
// are filled for refused workflow transitions.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
	Field string `json:"field,omitempty"`
	Gate  string `json:"gate,omitempty"`
}
