//go:build noserial

package transport

import "errors"

var errNoSerial = errors.New("serial port support not available in this build")

func detect() Capability {
	return Capability{
		Name: "noserial",
		Open: func(string, int) (Port, error) {
			return nil, &Error{Kind: ErrPortUnavailable, Err: errNoSerial}
		},
		Rate: DirectRate{},
	}
}
