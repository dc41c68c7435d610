package registry

import (
	"fmt"
	"strings"
)

// CompileError is returned when a configured pattern is not a valid regular
// expression.
type CompileError struct {
	Name    string
	Pattern string
	Err     error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compile type %q (pattern %q): %v", e.Name, e.Pattern, e.Err)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

// UndefinedTypeError is returned when an expected type name has no
// registry entry.
type UndefinedTypeError struct {
	Name string
}

func (e *UndefinedTypeError) Error() string {
	return fmt.Sprintf("the type %s is not defined", e.Name)
}

func trimName(name string) string {
	return strings.TrimSpace(name)
}
