package citation

import (
	"fmt"
	"strings"
)

// ErrorKind enumerates the ways a citation request can be rejected.
type ErrorKind string

const (
	// KindMissingRequiredField means one or more required fields were blank.
	KindMissingRequiredField ErrorKind = "missing_required_field"

	// KindUnparsableDate means a date field was present but not a valid
	// YYYY-MM-DD calendar date.
	KindUnparsableDate ErrorKind = "unparsable_date"
)

// Sentinels for errors.Is. A *ValidationError matches the sentinel of the same kind.
var (
	ErrMissingRequiredField = &ValidationError{Kind: KindMissingRequiredField}
	ErrUnparsableDate       = &ValidationError{Kind: KindUnparsableDate}
)

// ValidationError reports why Build refused to produce a citation.
type ValidationError struct {
	Kind   ErrorKind
	Source SourceType
	Fields []string
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case KindMissingRequiredField:
		return fmt.Sprintf("missing required %s field(s): %s", e.Source, strings.Join(e.Fields, ", "))
	case KindUnparsableDate:
		return fmt.Sprintf("unparsable date in field(s): %s (expected YYYY-MM-DD)", strings.Join(e.Fields, ", "))
	default:
		return fmt.Sprintf("invalid citation fields: %s", strings.Join(e.Fields, ", "))
	}
}

// Is matches any *ValidationError with the same Kind.
func (e *ValidationError) Is(target error) bool {
	other, ok := target.(*ValidationError)
	return ok && other.Kind == e.Kind
}

// HasField reports whether name is among the offending fields.
func (e *ValidationError) HasField(name string) bool {
	for _, field := range e.Fields {
		if field == name {
			return true
		}
	}
	return false
}
