package errors

import "errors"

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument is a generic sentinel for invalid input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrMalformedPayload marks an upstream payload whose required structure
	// is absent. Raised only at the ingestion boundary; inside the
	// aggregation pipeline malformed records are skipped and counted instead.
	ErrMalformedPayload = errors.New("malformed payload")
)
