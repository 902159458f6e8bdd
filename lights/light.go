package lights

import (
	"context"
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidArgument is returned when a mode or level has no byte code.
var ErrInvalidArgument = errors.New("invalid argument")

// Mode selects the lighting animation.
type Mode string

const (
	ModeOff       Mode = "off"
	ModeAuto      Mode = "auto"
	ModeRainbow   Mode = "rainbow"
	ModeBreathing Mode = "breathing"
	ModeCycle     Mode = "cycle"
)

// Modes lists every supported mode in the order shown to users.
var Modes = []Mode{ModeOff, ModeAuto, ModeRainbow, ModeBreathing, ModeCycle}

// Level is a brightness or speed setting from 1 (dimmest/slowest) to 5.
type Level int

const (
	MinLevel     Level = 1
	MaxLevel     Level = 5
	DefaultLevel Level = 3
)

// Command is one lighting setting to apply.
type Command struct {
	Mode       Mode
	Brightness Level
	Speed      Level
}

// Frame encodes the command.
func (c Command) Frame() (Frame, error) {
	return Encode(c.Mode, c.Brightness, c.Speed)
}

func (c Command) String() string {
	return fmt.Sprintf("Mode: %s, Brightness: %d, Speed: %d", c.Mode, c.Brightness, c.Speed)
}

// Light defines the interface for devices that can apply a Command
type Light interface {
	Set(ctx context.Context, cmd Command) error
}

// ParseMode converts a user supplied mode name.
func ParseMode(s string) (Mode, error) {
	m := Mode(s)
	if _, ok := modeBytes[m]; !ok {
		return "", fmt.Errorf("%w: unknown mode %q", ErrInvalidArgument, s)
	}
	return m, nil
}

// ParseLevel converts "1" through "5" into a Level.
func ParseLevel(s string) (Level, error) {
	n, err := strconv.Atoi(s)
	if err != nil || Level(n) < MinLevel || Level(n) > MaxLevel {
		return 0, fmt.Errorf("%w: level %q must be between %d and %d", ErrInvalidArgument, s, MinLevel, MaxLevel)
	}
	return Level(n), nil
}
