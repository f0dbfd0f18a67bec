package errors

import (
	"fmt"
	"path"
	"runtime"
)

// WrapPathErr prefixes err with the caller's file:line so that a wrapped
// chain reads as a call path.
func WrapPathErr(err error) error {
	if err == nil {
		return nil
	}

	_, file, line, ok := runtime.Caller(1)
	if !ok {
		return err
	}

	return fmt.Errorf("%s:%d: %w", path.Base(file), line, err)
}
