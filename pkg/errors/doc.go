// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// The version engine reports its recoverable failures with the
// FORMAT_MISMATCH, UNKNOWN_ROLE, LABEL_MISMATCH and DIRECTIVE_EXHAUSTED
// codes. Callers can test for them anywhere in a wrap chain:
//
//	if errors.IsCode(err, errors.ErrCodeLabelMismatch) {
//	    // the prerelease track did not match
//	}
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeInvalidRequest,
//	    "failed to load increment options",
//	    cause,
//	    map[string]any{
//	        "source": "cm://release/calver",
//	    },
//	)
package errors
