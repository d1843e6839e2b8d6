// errors/candidate_errors.go
package errors

import "errors"

var (
	ErrCandidateNotFound  = errors.New("candidate not found")
	ErrInvalidCandidateID = errors.New("invalid candidate ID")
	ErrInvalidRequesterID = errors.New("invalid requester ID")
	ErrUnknownDataType    = errors.New("unknown data type")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrRateLimitExceeded  = errors.New("rate limit exceeded")
	ErrDataFetchFailed    = errors.New("data fetch failed")
)
