package cloudwatch

import (
	"errors"
	"fmt"

	"github.com/aws/smithy-go"
)

var (
	// ErrSequenceTokenMismatch means the held sequence token went stale,
	// usually because another writer appended to the same stream.
	ErrSequenceTokenMismatch = errors.New("sequence token mismatch")

	// ErrThrottled means the service rate-limited the call. No backoff is
	// attempted; the run aborts.
	ErrThrottled = errors.New("throttled by cloudwatch logs")

	// ErrInvalidOrder means a batch's events are not in non-decreasing
	// timestamp order.
	ErrInvalidOrder = errors.New("log events out of chronological order")

	// ErrAuthentication means the supplied credentials were rejected or missing.
	ErrAuthentication = errors.New("authentication failed")
)

// DestinationError means the service rejected creating the log group or
// stream for a reason other than "already exists".
type DestinationError struct {
	Kind string // "log group" or "log stream"
	Name string
	Err  error
}

func (e *DestinationError) Error() string {
	return fmt.Sprintf("failed to create %s %q: %s", e.Kind, e.Name, e.Err)
}

func (e *DestinationError) Unwrap() error {
	return e.Err
}

func (e *DestinationError) Is(target error) bool {
	_, ok := target.(*DestinationError)
	return ok
}

var authErrorCodes = map[string]bool{
	"AccessDeniedException":       true,
	"UnrecognizedClientException": true,
	"InvalidClientTokenId":        true,
	"SignatureDoesNotMatch":       true,
	"MissingAuthenticationToken":  true,
	"ExpiredTokenException":       true,
}

// mapAPIError translates service-level failures the spec cares about into
// the package's sentinel errors. Anything else passes through unchanged.
func mapAPIError(err error) error {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return err
	}
	switch {
	case apiErr.ErrorCode() == "ThrottlingException":
		return fmt.Errorf("%w: %v", ErrThrottled, err)
	case authErrorCodes[apiErr.ErrorCode()]:
		return fmt.Errorf("%w: %v", ErrAuthentication, err)
	}
	return err
}
