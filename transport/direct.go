package transport

import (
	"errors"
	"fmt"

	"go.bug.st/serial"
)

// DirectRate sets the rate through the port's own mode API. It works where
// the OS accepts any integer rate, such as the Windows DCB.
type DirectRate struct{}

type modeSetter interface {
	SetMode(mode *serial.Mode) error
}

func (DirectRate) ProgramRate(_ string, p Port, baud int) error {
	ms, ok := p.(modeSetter)
	if !ok {
		return fmt.Errorf("port %T cannot change its mode", p)
	}
	if err := ms.SetMode(frameMode(baud)); err != nil {
		return fmt.Errorf("failed to set %d baud: %w", baud, err)
	}
	return nil
}

// frameMode is 8N1, the only framing the controller speaks.
func frameMode(baud int) *serial.Mode {
	return &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
}

func bugstOpener(name string, baud int) (Port, error) {
	p, err := serial.Open(name, frameMode(baud))
	if err != nil {
		return nil, &Error{Kind: classifyPortError(err), Err: err}
	}
	return p, nil
}

func classifyPortError(err error) error {
	var pe *serial.PortError
	if !errors.As(err, &pe) {
		return ErrPortUnavailable
	}
	switch pe.Code() {
	case serial.InvalidSpeed,
		serial.InvalidDataBits,
		serial.InvalidParity,
		serial.InvalidStopBits,
		serial.InvalidTimeoutValue,
		serial.FunctionNotImplemented:
		return ErrConfigurationFailed
	default:
		return ErrPortUnavailable
	}
}
