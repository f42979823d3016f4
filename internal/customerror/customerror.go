package customerror

import (
	"errors"
	"fmt"
)

var (
	ErrIO           = errors.New("i/o failure")
	ErrRunExists    = errors.New("run is already registered")
	ErrUnauthorized = errors.New("api key is not valid")
	ErrNoRegistry   = errors.New("run registry is not configured")
)

// IOError reports a failed filesystem operation on Path.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

func (e *IOError) Is(target error) bool {
	return target == ErrIO
}
