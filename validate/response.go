package validate

// FailureResponse is the body of a 422 response to a resource submission:
// a human-readable summary plus the field-keyed error map.
type FailureResponse struct {
	// a summary of the failure
	Message string `json:"message"`
	// all recorded violations, keyed by dotted field path
	Errors Errors `json:"errors"`
}

// NewFailureResponse wraps recorded violations in the standard envelope.
func NewFailureResponse(errs Errors) FailureResponse {
	return FailureResponse{
		Message: "The given data was invalid.",
		Errors:  errs,
	}
}
