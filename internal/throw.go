package internal

import "github.com/pkg/errors"

// Validating a mask walks nested loops over offset pairs, and threading an
// error out of each of them would bury the checks. Instead the checks panic
// with a thrown error, and the public constructors recover to convert it
// back to an error.

type thrown struct {
	err error
}

// Throwf panics with an error wrapping cause, annotated with the message.
func Throwf(cause error, format string, args ...interface{}) {
	panic(thrown{errors.Wrapf(cause, format, args...)})
}

// HandlePanicRecover converts a value returned by recover() into an error.
// Panics that were not raised by Throwf are re-raised.
func HandlePanicRecover(r interface{}) error {
	if r != nil {
		if t, ok := r.(thrown); ok {
			return t.err
		}
		panic(r)
	}
	return nil
}
