package insurer

import "fmt"

// AuthError is raised when the token exchange fails or credentials are
// missing. It is fatal for the current request and never retried.
type AuthError struct {
	Status int
	Body   string
}

func (e *AuthError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("insurer auth error: %s", e.Body)
	}
	return fmt.Sprintf("insurer auth error: status=%d body=%s", e.Status, e.Body)
}

// UpstreamError is raised when the insurer rejects a quotation request after
// the bounded fallback sequence has been exhausted, or fails outright.
// Status and Body refer to the original failure, not the last probe.
type UpstreamError struct {
	Status int
	Body   string
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("insurer upstream error: %v", e.Err)
	}
	return fmt.Sprintf("insurer upstream error: status=%d body=%s", e.Status, e.Body)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
