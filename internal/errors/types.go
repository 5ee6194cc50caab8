package errors

// represents a standardized error response
type ErrorResponse struct {
	Error string `json:"error"`          // user-facing message
	Code  string `json:"code,omitempty"` // machine-readable code (e.g., "bad_request")
}

type ErrorInfo struct {
	category  string
	sanitized string
}
