package ingest

import "errors"

// ValidationError rejects an input file before any persistence connection is
// acquired: missing file or size over the configured ceiling.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation: " + e.Reason
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
