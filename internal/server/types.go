package server

// ValidationResponse is the response for validate endpoints
type ValidationResponse struct {
	Valid  bool     `json:"valid"`
	Kind   string   `json:"kind,omitempty"`
	Total  string   `json:"total,omitempty"`
	Errors []string `json:"errors,omitempty"`
}

// ErrorResponse is the standard error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
