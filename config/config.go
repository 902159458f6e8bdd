package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

const (
	CfgEnv  = "T9LED_CONFIG"
	CfgFile = "config.toml"
	AppDir  = "t9-led"

	DefaultLevel   = 3
	DefaultTimeout = 5 * time.Second
)

type Values struct {
	SerialPort   string `toml:"serial_port" validate:"required"`
	Timeout      string `toml:"timeout" validate:"required,duration"`
	Brightness   int    `toml:"brightness" validate:"min=1,max=5"`
	Speed        int    `toml:"speed" validate:"min=1,max=5"`
	DebugLogging bool   `toml:"debug_logging"`
}

// DefaultSerialPort is where the LED controller usually shows up.
func DefaultSerialPort() string {
	if runtime.GOOS == "windows" {
		return "COM3"
	}
	return "/dev/ttyUSB0"
}

func Defaults() Values {
	return Values{
		SerialPort: DefaultSerialPort(),
		Timeout:    DefaultTimeout.String(),
		Brightness: DefaultLevel,
		Speed:      DefaultLevel,
	}
}

// TimeoutDuration returns the transmit deadline. Values must have been
// validated first.
func (v Values) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(v.Timeout)
	if err != nil {
		return DefaultTimeout
	}
	return d
}

// Path picks the config file location: an explicit path wins, then the
// environment, then the user config directory. An empty result means no
// config file is used.
func Path(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if p := os.Getenv(CfgEnv); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		log.Debug().Err(err).Msg("no user config directory")
		return ""
	}
	return filepath.Join(dir, AppDir, CfgFile)
}

// Load reads path from fs on top of the defaults. A missing file is not an
// error.
func Load(fsys afero.Fs, path string) (Values, error) {
	vals := Defaults()
	if path == "" {
		return vals, nil
	}

	data, err := afero.ReadFile(fsys, path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Debug().Str("path", path).Msg("config file not found, using defaults")
		return vals, nil
	} else if err != nil {
		return Values{}, fmt.Errorf("failed to read config file: %w", err)
	}

	log.Debug().Str("path", path).Msg("loading config file")
	if err := toml.Unmarshal(data, &vals); err != nil {
		return Values{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	vals.sanitize()
	if err := vals.Validate(); err != nil {
		return Values{}, err
	}

	return vals, nil
}

func (v *Values) sanitize() {
	v.SerialPort = strings.TrimSpace(v.SerialPort)
	v.Timeout = strings.TrimSpace(v.Timeout)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("duration", validateDuration)
	return v
}

func validateDuration(fl validator.FieldLevel) bool {
	d, err := time.ParseDuration(fl.Field().String())
	return err == nil && d > 0
}

// Validate checks the values and reports every offending field.
func (v Values) Validate() error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("validation failed: %w", err)
	}

	fields := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(fields, ", "))
}
