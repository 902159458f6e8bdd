// Package transport sends command frames to the LED controller over a serial
// link running at a rate outside the standard termios speed table.
package transport

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	// StandardBaudRate is only used to get the port into a configured state
	// before the real rate is programmed.
	StandardBaudRate = 9600
	// TargetBaudRate is the rate the LED controller listens at.
	TargetBaudRate = 10000
	// InterByteDelay is the gap the controller needs between bytes.
	InterByteDelay = 5 * time.Millisecond
)

// Port is an open serial session.
type Port interface {
	io.Writer
	Close() error
}

// Opener opens the named port and configures it at a standard baud rate.
// Errors should be *Error values so the failing step can be told apart.
type Opener func(name string, baud int) (Port, error)

// RateProgrammer switches an already open port to an arbitrary baud rate.
type RateProgrammer interface {
	ProgramRate(name string, p Port, baud int) error
}

// Capability pairs the port primitive of a platform with the way that
// platform reaches a non-standard rate.
type Capability struct {
	Name string
	Open Opener
	Rate RateProgrammer
}

// Detect returns the capability for the platform this binary was built for.
func Detect() Capability {
	return detect()
}

// Driver transmits frames one byte at a time.
type Driver struct {
	capability Capability
	clock      clockwork.Clock
	logger     zerolog.Logger
	delay      time.Duration
}

// Option configures a Driver.
type Option func(*Driver)

// WithCapability replaces the detected platform capability.
func WithCapability(c Capability) Option {
	return func(d *Driver) {
		d.capability = c
	}
}

// WithClock sets the clock used for the inter-byte delay.
func WithClock(c clockwork.Clock) Option {
	return func(d *Driver) {
		d.clock = c
	}
}

// WithLogger sets the logger used for diagnostics and verbose byte output.
func WithLogger(l zerolog.Logger) Option {
	return func(d *Driver) {
		d.logger = l
	}
}

// WithInterByteDelay overrides InterByteDelay.
func WithInterByteDelay(delay time.Duration) Option {
	return func(d *Driver) {
		d.delay = delay
	}
}

// NewDriver creates a Driver using the detected platform capability and the
// real clock unless overridden.
func NewDriver(opts ...Option) *Driver {
	d := &Driver{
		capability: Detect(),
		clock:      clockwork.NewRealClock(),
		logger:     log.Logger,
		delay:      InterByteDelay,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Capability returns the capability the driver was configured with.
func (d *Driver) Capability() Capability {
	return d.capability
}

// Transmit opens port, programs TargetBaudRate and writes frame byte by byte
// with the inter-byte delay between writes. The port is closed on every
// return path. When verbose is set each byte is logged in hex as it is sent.
//
// A deadline on ctx aborts the transmission between steps; bytes already
// written stay written. If ctx is done before the port is opened the context
// error is returned as is.
func (d *Driver) Transmit(ctx context.Context, port string, frame []byte, verbose bool) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("transmit to %s: %w", port, err)
	}

	d.logger.Debug().
		Str("port", port).
		Str("capability", d.capability.Name).
		Int("baud", StandardBaudRate).
		Msg("opening serial port")

	p, err := d.capability.Open(port, StandardBaudRate)
	if err != nil {
		return openFailure(port, err)
	}
	defer func() {
		if err := p.Close(); err != nil {
			d.logger.Warn().Err(err).Str("port", port).Msg("error closing serial port")
		}
	}()

	if err := d.capability.Rate.ProgramRate(port, p, TargetBaudRate); err != nil {
		return newError(ErrCustomBaudRateUnsupported, port, err)
	}
	d.logger.Debug().Int("baud", TargetBaudRate).Msg("baud rate programmed")

	for i, b := range frame {
		if i > 0 {
			if err := d.wait(ctx); err != nil {
				return newError(ErrWriteFailed, port, fmt.Errorf("aborted before byte %d of %d: %w", i+1, len(frame), err))
			}
		}

		n, err := p.Write([]byte{b})
		if err == nil && n != 1 {
			err = io.ErrShortWrite
		}
		if err != nil {
			return newError(ErrWriteFailed, port, fmt.Errorf("byte %d of %d: %w", i+1, len(frame), err))
		}

		if verbose {
			d.logger.Info().Int("index", i).Hex("byte", []byte{b}).Msg("sent")
		}
	}

	return nil
}

func (d *Driver) wait(ctx context.Context) error {
	t := d.clock.NewTimer(d.delay)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.Chan():
		return nil
	}
}
