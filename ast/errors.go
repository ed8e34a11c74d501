package ast

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the validation error kinds named in spec.md §7/§8.
var (
	// ErrWrongDataServicesNumber indicates a document did not declare
	// exactly one DataServices element.
	ErrWrongDataServicesNumber = errors.New("csdl: wrong number of DataServices elements")
	// ErrTooManyKeys indicates an entity type declared more than one Key.
	ErrTooManyKeys = errors.New("csdl: entity type has more than one Key")
	// ErrTooManyReturnTypes indicates an action declared more than one
	// ReturnType.
	ErrTooManyReturnTypes = errors.New("csdl: action has more than one ReturnType")
	// ErrDuplicateName indicates two declarations in the same schema
	// share a local name.
	ErrDuplicateName = errors.New("csdl: duplicate declaration name")
)

// ValidationError is the leaf error for a structural violation found while
// deserializing the schema XML.
type ValidationError struct {
	Kind error // one of the sentinels above
	Msg  string
}

func (e *ValidationError) Error() string {
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Msg)
}

func (e *ValidationError) Unwrap() error { return e.Kind }

// ContextError wraps an inner error with the name of the enclosing element,
// so that a chain of ContextErrors reads as a human-readable path:
// "Schema(A.v1): EntityType(Widget): Property(owner): ...". Each level
// of §4.1's deserialization and §4.4's compilation wraps its failures this
// way; never format a context string by hand elsewhere.
type ContextError struct {
	// Context names the kind of enclosing element, e.g. "Schema",
	// "EntityType", "Property", "Singleton", "TypeDefinition".
	Context string
	// Name is the identifying name of that element (namespace, type
	// name, property name, ...).
	Name  string
	Cause error
}

func (e *ContextError) Error() string {
	return fmt.Sprintf("%s(%s): %s", e.Context, e.Name, e.Cause)
}

func (e *ContextError) Unwrap() error { return e.Cause }

// Wrap builds a ContextError, or returns nil if cause is nil.
func Wrap(context, name string, cause error) error {
	if cause == nil {
		return nil
	}
	return &ContextError{Context: context, Name: name, Cause: cause}
}

// Chain renders an error built from nested ContextErrors as one line per
// level, outermost first, matching spec.md §7's "first line names the
// phase, subsequent indented lines name the nested contexts, and the final
// line is the terminal cause."
func Chain(err error) string {
	var lines []string
	for err != nil {
		if ce, ok := err.(*ContextError); ok {
			lines = append(lines, fmt.Sprintf("%s(%s)", ce.Context, ce.Name))
			err = ce.Cause
			continue
		}
		lines = append(lines, err.Error())
		err = errors.Unwrap(err)
	}
	var b strings.Builder
	for i, l := range lines {
		if i > 0 {
			b.WriteByte('\n')
			b.WriteString(strings.Repeat("  ", i))
		}
		b.WriteString(l)
	}
	return b.String()
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
