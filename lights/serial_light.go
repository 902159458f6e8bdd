package lights

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Transmitter sends a raw frame to a named serial port.
type Transmitter interface {
	Transmit(ctx context.Context, port string, frame []byte, verbose bool) error
}

// SerialLight implements Light interface for the mini PC's serial LED controller
type SerialLight struct {
	port    string
	verbose bool
	tx      Transmitter
}

// NewSerialLight creates a new SerialLight instance
func NewSerialLight(port string, tx Transmitter, verbose bool) *SerialLight {
	return &SerialLight{
		port:    port,
		verbose: verbose,
		tx:      tx,
	}
}

// Port returns the serial port the light is attached to.
func (l *SerialLight) Port() string {
	return l.port
}

func (l *SerialLight) Set(ctx context.Context, cmd Command) error {
	frame, err := cmd.Frame()
	if err != nil {
		return err
	}

	log.Debug().Str("port", l.port).Stringer("frame", frame).Msg("sending command packet")

	if err := l.tx.Transmit(ctx, l.port, frame.Bytes(), l.verbose); err != nil {
		return fmt.Errorf("failed to send command: %w", err)
	}
	return nil
}
