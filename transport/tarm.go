//go:build linux

package transport

import (
	"errors"
	"io/fs"

	"github.com/tarm/serial"
)

// tarmOpener opens the port raw 8N1 at one of the rates in the termios speed
// table. Failing to open the device file is reported separately from failing
// to configure it.
func tarmOpener(name string, baud int) (Port, error) {
	p, err := serial.OpenPort(&serial.Config{Name: name, Baud: baud})
	if err != nil {
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return nil, &Error{Kind: ErrPortUnavailable, Err: err}
		}
		return nil, &Error{Kind: ErrConfigurationFailed, Err: err}
	}
	return p, nil
}
