package poleemploi

import "fmt"

// AuthError reports a failed client credentials grant: either the
// authentication endpoint rejected the credentials or its response did not
// carry the expected fields. It is never retried by this package.
type AuthError struct {
	StatusCode int
	Message    string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication failed (status %d): %s", e.StatusCode, e.Message)
}

// APIError reports a non-success HTTP status from the search or referentiel
// endpoints, carrying the status code and the remote message when one was
// present in the body.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Message)
}

// ParseError reports a malformed response: an undecodable JSON body or a
// Content-Range header that does not match the documented format.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parsing response: %s: %v", e.Reason, e.Err)
	}
	return "parsing response: " + e.Reason
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// UnknownReferentielError reports a referentiel name outside the recognized
// set. It is raised before any network call is made.
type UnknownReferentielError struct {
	Name string
}

func (e *UnknownReferentielError) Error() string {
	return fmt.Sprintf("unknown referentiel %q", e.Name)
}
