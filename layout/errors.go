package layout

import (
	"errors"
	"fmt"
)

// Kind classifies every failure the engine can report.
type Kind string

const (
	// KindMalformedDate: a date that does not parse; shown verbatim.
	KindMalformedDate Kind = "MALFORMED_DATE"
	// KindImageDecode: the photo could not be decoded; the slot is skipped.
	KindImageDecode Kind = "IMAGE_DECODE_FAILURE"
	// KindUnknownTemplate: the template id is not registered; the default is used.
	KindUnknownTemplate Kind = "UNKNOWN_TEMPLATE"
	// KindSerialization: the artifact could not be produced. The only fatal kind.
	KindSerialization Kind = "SERIALIZATION_FAILURE"
)

// Error is a typed engine error with an optional cause.
type Error struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As.
func (e *Error) Unwrap() error { return e.Cause }

// NewError creates an Error with a formatted message.
func NewError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WrapError creates an Error around cause.
func WrapError(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// IsKind reports whether err carries an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// KindOf extracts the kind from an error chain, or "" for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// AsSerialization converts any error into a SerializationFailure, keeping an
// existing one untouched.
func AsSerialization(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	if IsKind(err, KindSerialization) {
		return err
	}
	return WrapError(KindSerialization, err, format, args...)
}
