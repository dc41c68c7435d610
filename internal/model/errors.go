package model

import (
	"errors"
	"fmt"
)

var (
	// ErrThreadCount is returned when fewer than one worker is requested.
	ErrThreadCount = errors.New("the thread count must be bigger than 0")
	// ErrColumnCountMismatch is matched by every *ColumnCountError.
	ErrColumnCountMismatch = errors.New("the given number of types does not match the number of columns")
)

// ColumnCountError reports an expected-type list whose length differs from
// the document's column count.
type ColumnCountError struct {
	Expected int
	Actual   int
}

func (e *ColumnCountError) Error() string {
	return fmt.Sprintf("%v: %d types for %d columns", ErrColumnCountMismatch, e.Expected, e.Actual)
}

// Is makes errors.Is(err, ErrColumnCountMismatch) hold.
func (e *ColumnCountError) Is(target error) bool {
	return target == ErrColumnCountMismatch
}
