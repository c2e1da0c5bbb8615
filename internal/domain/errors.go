package domain

import "errors"

var (
	// ErrEmployeeNotFound is returned when a name does not resolve in the directory.
	ErrEmployeeNotFound = errors.New("employee not found")
	// ErrSourceUnavailable is returned when the record source cannot be read.
	ErrSourceUnavailable = errors.New("employee source unavailable")
	// ErrMalformedData is returned when the record source violates the schema.
	ErrMalformedData = errors.New("malformed employee data")
)
