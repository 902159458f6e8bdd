package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"t9-led/config"
	"t9-led/lights"
	"t9-led/transport"
)

// set by the build script
var version = "dev"

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

var errMissingMode = errors.New("missing mode")

type options struct {
	mode       string
	brightness string
	speed      string
	serialPort string
	configPath string
	timeout    time.Duration
	verbose    bool
	dryRun     bool
}

type app struct {
	fs       afero.Fs
	stdout   io.Writer
	stderr   io.Writer
	newLight func(port string, verbose bool) lights.Light
}

func newSerialLight(port string, verbose bool) lights.Light {
	return lights.NewSerialLight(port, transport.NewDriver(), verbose)
}

func usage(w io.Writer, fs *flag.FlagSet) {
	modes := make([]string, len(lights.Modes))
	for i, m := range lights.Modes {
		modes[i] = string(m)
	}
	fmt.Fprintf(w, "Usage: %s <mode> [--brightness <value>] [--speed <value>] [--serial-port <port>] [-v]\n", fs.Name())
	fmt.Fprintf(w, "Control the LED lights on a T9 Plus mini PC (version %s).\n\n", version)
	fmt.Fprintf(w, "Modes: %s\n\n", strings.Join(modes, ", "))
	fs.PrintDefaults()
}

// parseArgs accepts flags on either side of the mode.
func parseArgs(args []string, stderr io.Writer) (options, error) {
	var o options

	fs := flag.NewFlagSet("t9-led", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.brightness, "brightness", "", "LED brightness, 1 (dimmest) to 5 (brightest) (default 3)")
	fs.StringVar(&o.speed, "speed", "", "LED animation speed, 1 (slowest) to 5 (fastest) (default 3)")
	fs.StringVar(&o.serialPort, "serial-port", "", fmt.Sprintf("serial port to use (default %s)", config.DefaultSerialPort()))
	fs.StringVar(&o.configPath, "config", "", "path to config file (default $"+config.CfgEnv+" or user config dir)")
	fs.DurationVar(&o.timeout, "timeout", 0, fmt.Sprintf("overall deadline for sending the command (default %s)", config.DefaultTimeout))
	fs.BoolVar(&o.verbose, "verbose", false, "show each byte being sent")
	fs.BoolVar(&o.verbose, "v", false, "shorthand for --verbose")
	fs.BoolVar(&o.dryRun, "dry-run", false, "print the command packet without opening the serial port")
	fs.Usage = func() { usage(stderr, fs) }

	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return o, errMissingMode
	}
	o.mode = fs.Arg(0)

	if err := fs.Parse(fs.Args()[1:]); err != nil {
		return o, err
	}
	if fs.NArg() > 0 {
		fs.Usage()
		return o, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	return o, nil
}

func setupLogging(out io.Writer, debug bool) {
	noColor := true
	if f, ok := out.(*os.File); ok {
		noColor = !isatty.IsTerminal(f.Fd())
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:          out,
		NoColor:      noColor,
		PartsExclude: []string{zerolog.TimestampFieldName},
	})

	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// resolve merges flags over config values and parses the command.
func resolve(o options, vals config.Values) (lights.Command, string, time.Duration, error) {
	mode, err := lights.ParseMode(o.mode)
	if err != nil {
		return lights.Command{}, "", 0, err
	}

	brightness := o.brightness
	if brightness == "" {
		brightness = fmt.Sprint(vals.Brightness)
	}
	b, err := lights.ParseLevel(brightness)
	if err != nil {
		return lights.Command{}, "", 0, fmt.Errorf("invalid brightness: %w", err)
	}

	speed := o.speed
	if speed == "" {
		speed = fmt.Sprint(vals.Speed)
	}
	s, err := lights.ParseLevel(speed)
	if err != nil {
		return lights.Command{}, "", 0, fmt.Errorf("invalid speed: %w", err)
	}

	port := vals.SerialPort
	if o.serialPort != "" {
		port = o.serialPort
	}

	timeout := vals.TimeoutDuration()
	if o.timeout > 0 {
		timeout = o.timeout
	}

	return lights.Command{Mode: mode, Brightness: b, Speed: s}, port, timeout, nil
}

func (a *app) run(ctx context.Context, args []string) int {
	o, err := parseArgs(args, a.stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	} else if err != nil {
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
		return exitUsage
	}

	setupLogging(a.stdout, false)

	vals, err := config.Load(a.fs, config.Path(o.configPath))
	if err != nil {
		log.Error().Err(err).Msg("could not load config")
		return exitError
	}
	setupLogging(a.stdout, vals.DebugLogging)

	cmd, port, timeout, err := resolve(o, vals)
	if err != nil {
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
		return exitUsage
	}

	log.Info().Msg(cmd.String())

	if o.dryRun {
		frame, err := cmd.Frame()
		if err != nil {
			log.Error().Err(err).Msg("could not encode command")
			return exitError
		}
		log.Info().Msgf("Command packet: %s", frame)
		return exitOK
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	log.Info().Msgf("Connecting to %s at %d baud...", port, transport.TargetBaudRate)
	if err := a.newLight(port, o.verbose).Set(ctx, cmd); err != nil {
		ev := log.Error().Err(err).Str("port", port)
		var te *transport.Error
		if errors.As(err, &te) {
			ev = ev.Str("kind", te.Kind.Error())
		}
		ev.Msg("could not send command")

		if errors.Is(err, transport.ErrPortUnavailable) {
			log.Info().Msg("Please ensure the device is connected and you have selected the correct port.")
		}
		return exitError
	}

	log.Info().Msg("Command sent successfully.")
	return exitOK
}

func main() {
	a := &app{
		fs:       afero.NewOsFs(),
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		newLight: newSerialLight,
	}
	os.Exit(a.run(context.Background(), os.Args[1:]))
}
