package logger

import (
	"errors"
	"fmt"
	"os"
)

// ErrAppNameIsEmpty is returned if no application name was passed to Init.
var ErrAppNameIsEmpty = errors.New("logger app name can not be empty")

// ErrorHandler implements a custom error handler.
func ErrorHandler(err error) {
	_, _ = fmt.Fprintf(os.Stderr, "zerolog: could not write event: %v\n", err)
}
