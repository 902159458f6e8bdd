package lights

// Frame marker and byte codes understood by the LED controller.
const (
	beginByte byte = 0xfa

	cmdModeRainbow   byte = 0x01
	cmdModeBreathing byte = 0x02
	cmdModeCycle     byte = 0x03
	cmdModeOff       byte = 0x04
	cmdModeAuto      byte = 0x05
)

var modeBytes = map[Mode]byte{
	ModeOff:       cmdModeOff,
	ModeAuto:      cmdModeAuto,
	ModeRainbow:   cmdModeRainbow,
	ModeBreathing: cmdModeBreathing,
	ModeCycle:     cmdModeCycle,
}

// The controller uses inverted logic: level 5 is the brightest (or fastest)
// and is sent as 0x01.
var brightnessBytes = map[Level]byte{
	5: 0x01,
	4: 0x02,
	3: 0x03,
	2: 0x04,
	1: 0x05,
}

var speedBytes = map[Level]byte{
	5: 0x01,
	4: 0x02,
	3: 0x03,
	2: 0x04,
	1: 0x05,
}
