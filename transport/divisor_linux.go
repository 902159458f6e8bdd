//go:build linux && !ppc64 && !ppc64le

package transport

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// cibaudShift is IBSHIFT from linux/termbits.h: the input speed bits sit
// this far above the output speed bits in c_cflag.
const cibaudShift = 16

// DivisorRate programs an exact rate through the termios2 BOTHER interface,
// for tty drivers whose standard speed table lacks it.
type DivisorRate struct{}

type fdPort interface {
	Fd() uintptr
}

func (DivisorRate) ProgramRate(name string, p Port, baud int) error {
	if fp, ok := p.(fdPort); ok {
		return setDivisor(int(fp.Fd()), uint32(baud))
	}

	// termios belongs to the tty, not the descriptor, so a second
	// descriptor on the same device reaches the port p writes to.
	fd, err := unix.Open(name, unix.O_RDWR|unix.O_NOCTTY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
	if err != nil {
		return fmt.Errorf("failed to open control descriptor: %w", err)
	}
	defer unix.Close(fd)

	return setDivisor(fd, uint32(baud))
}

func setDivisor(fd int, baud uint32) error {
	t, err := unix.IoctlGetTermios(fd, unix.TCGETS2)
	if err != nil {
		return fmt.Errorf("TCGETS2: %w", err)
	}

	applyDivisor(t, baud)

	if err := unix.IoctlSetTermios(fd, unix.TCSETS2, t); err != nil {
		return fmt.Errorf("TCSETS2: %w", err)
	}

	got, err := unix.IoctlGetTermios(fd, unix.TCGETS2)
	if err != nil {
		return fmt.Errorf("TCGETS2: %w", err)
	}
	if got.Ispeed != baud || got.Ospeed != baud {
		return fmt.Errorf("driver set %d/%d baud instead of %d", got.Ispeed, got.Ospeed, baud)
	}
	return nil
}

// applyDivisor replaces the speed table selection with an explicit rate on
// both the input and output side.
func applyDivisor(t *unix.Termios, baud uint32) {
	t.Cflag &^= unix.CBAUD | unix.CBAUD<<cibaudShift
	t.Cflag |= unix.BOTHER | unix.BOTHER<<cibaudShift
	t.Ispeed = baud
	t.Ospeed = baud
}
