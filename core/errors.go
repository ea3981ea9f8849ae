package core

import "errors"

var (
	// ErrMissingIdentifier is returned for records with neither a bibcode nor a scix_id.
	ErrMissingIdentifier = errors.New("record has neither bibcode nor scix_id")

	// ErrInvalidPayload is returned when an inbound message is not a JSON object.
	ErrInvalidPayload = errors.New("invalid record payload")
)
