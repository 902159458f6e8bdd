package lights

import (
	"fmt"
	"strings"
)

// FrameSize is the length of every command frame on the wire.
const FrameSize = 5

// Frame is a complete command: begin marker, mode, brightness, speed and
// checksum, in that order.
type Frame [FrameSize]byte

// Encode looks up the byte codes for a command and appends the checksum.
func Encode(mode Mode, brightness, speed Level) (Frame, error) {
	m, ok := modeBytes[mode]
	if !ok {
		return Frame{}, fmt.Errorf("%w: no code for mode %q", ErrInvalidArgument, mode)
	}
	b, ok := brightnessBytes[brightness]
	if !ok {
		return Frame{}, fmt.Errorf("%w: no code for brightness %d", ErrInvalidArgument, brightness)
	}
	s, ok := speedBytes[speed]
	if !ok {
		return Frame{}, fmt.Errorf("%w: no code for speed %d", ErrInvalidArgument, speed)
	}

	return Frame{beginByte, m, b, s, Checksum(beginByte, m, b, s)}, nil
}

// Checksum returns the 8-bit wraparound sum of data.
func Checksum(data ...byte) byte {
	var sum byte
	for _, b := range data {
		sum += b
	}
	return sum
}

// Bytes returns the frame as a slice in transmission order.
func (f Frame) Bytes() []byte {
	return f[:]
}

// Valid reports whether the frame starts with the begin marker and carries a
// matching checksum.
func (f Frame) Valid() bool {
	return f[0] == beginByte && f[FrameSize-1] == Checksum(f[:FrameSize-1]...)
}

func (f Frame) String() string {
	parts := make([]string, len(f))
	for i, b := range f {
		parts[i] = fmt.Sprintf("%02X", b)
	}
	return strings.Join(parts, " ")
}
