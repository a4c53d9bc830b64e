package errors

const (
	HttpInternalError         = "internal_error"
	HttpInvalidJsonError      = "invalid_json"
	HttpInvalidFilterError    = "invalid_filter"
	HttpPayloadTooLargeError  = "payload_too_large"
	HttpUnknownDimensionError = "unknown_dimension"
	HttpUnknownPanelError     = "unknown_panel"
	HttpSessionNotFoundError  = "session_not_found"
)

// ErrorResponse is the error response body for dashboard and session errors.
type ErrorResponse struct {
	ErrorType string      `json:"error_type"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
}
