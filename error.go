// Package hatemp holds the surface shared by every layer of the pipeline:
// the classified error kinds a temperature retrieval can fail with.
package hatemp

import "fmt"

// Err classifies every failure the pipeline can produce. Wrap a kind with
// With or Withf to add context; the result still matches the kind under
// errors.Is no matter how many more layers wrap it.
type Err int

const (
	// ErrClientConstruction the hub client couldn't be built from the supplied base url and token
	ErrClientConstruction Err = iota + 1
	// ErrHTTPStatus the hub responded with a non-2xx status
	ErrHTTPStatus
	// ErrTransport network failure, timeout, or an undecodable response body
	ErrTransport
	// ErrMissingState direct-state mode but the entity reported no state value
	ErrMissingState
	// ErrMissingAttributes attribute mode but the entity has no attributes
	ErrMissingAttributes
	// ErrMissingField attribute mode but the named field is absent
	ErrMissingField
	// ErrNonStringField the named field is present but not a string
	ErrNonStringField
	// ErrParse the candidate string is not a valid floating-point literal
	ErrParse
)

func (e Err) Error() string {
	switch e {
	case ErrClientConstruction:
		return "client construction failed"
	case ErrHTTPStatus:
		return "unexpected http status"
	case ErrTransport:
		return "transport failure"
	case ErrMissingState:
		return "missing state"
	case ErrMissingAttributes:
		return "missing attributes"
	case ErrMissingField:
		return "missing attribute field"
	case ErrNonStringField:
		return "attribute field is not a string"
	case ErrParse:
		return "parse failure"
	}
	return fmt.Sprintf("error code %d", int(e))
}

func (e Err) With(args ...any) error {
	return fmt.Errorf("%w: %s", e, fmt.Sprint(args...))
}

func (e Err) Withf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", e, fmt.Sprintf(format, args...))
}
