package types

type SuccessEnvelope struct {
	Data any `json:"data"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error     APIError `json:"error"`
	RequestID string   `json:"request_id,omitempty"`
}

// IssueDTO is the wire shape of a single validation error or warning.
type IssueDTO struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationResultDTO is the wire shape shared by every validator endpoint.
type ValidationResultDTO struct {
	IsValid  bool       `json:"is_valid"`
	Errors   []IssueDTO `json:"errors"`
	Warnings []IssueDTO `json:"warnings"`
}
