package transport

import (
	"errors"
	"fmt"
)

// Failure kinds reported by Transmit. Use errors.Is to test for them.
var (
	ErrPortUnavailable           = errors.New("serial port unavailable")
	ErrConfigurationFailed       = errors.New("serial port configuration failed")
	ErrCustomBaudRateUnsupported = errors.New("custom baud rate unsupported")
	ErrWriteFailed               = errors.New("serial write failed")
)

// Error describes the step of a transmission that failed. It unwraps to both
// its Kind and the underlying OS error.
type Error struct {
	Kind error
	Port string
	Err  error
}

func newError(kind error, port string, err error) *Error {
	return &Error{Kind: kind, Port: port, Err: err}
}

func (e *Error) Error() string {
	if e.Port == "" {
		return fmt.Sprintf("%v: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%v (%s): %v", e.Kind, e.Port, e.Err)
}

func (e *Error) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// openFailure attaches the port name to an opener error, defaulting the kind
// to ErrPortUnavailable when the opener did not classify it.
func openFailure(port string, err error) *Error {
	var te *Error
	if errors.As(err, &te) {
		return newError(te.Kind, port, te.Err)
	}
	return newError(ErrPortUnavailable, port, err)
}
