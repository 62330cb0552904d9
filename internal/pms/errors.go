package pms

import "fmt"

// maxDiagnosticBody bounds how much upstream HTML is attached to an error.
const maxDiagnosticBody = 500

// TransportError is a network-level failure talking to the PMS. It is never
// retried automatically; the failing operation is named for diagnostics.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("pms: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// AuthError is a failed login handshake. Body carries the first part of the
// upstream response so markup changes can be diagnosed from logs. The PMS
// gives no way to tell wrong credentials apart from a changed login page, so
// neither do we.
type AuthError struct {
	Status int
	Body   string
	Err    error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("pms: login failed: %v", e.Err)
	}
	return fmt.Sprintf("pms: login failed with status %d", e.Status)
}

func (e *AuthError) Unwrap() error { return e.Err }

func truncateBody(s string) string {
	if len(s) > maxDiagnosticBody {
		return s[:maxDiagnosticBody]
	}
	return s
}
