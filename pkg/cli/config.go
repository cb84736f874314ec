package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/Fepozopo/colorogram/pkg/histogram"
)

// Mode selects which renderer produces the output image.
type Mode string

const (
	ModeHistogram Mode = "histogram"
	ModeWaveform  Mode = "waveform"
)

// ParseMode accepts histogram/hist and waveform/scope.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "histogram", "hist", "":
		return ModeHistogram, nil
	case "waveform", "scope":
		return ModeWaveform, nil
	default:
		return "", fmt.Errorf("unknown mode %q (want histogram or waveform)", s)
	}
}

// DefaultScale is the normalization each mode uses unless overridden.
func (m Mode) DefaultScale() histogram.Scale {
	if m == ModeWaveform {
		return histogram.Logarithmic
	}
	return histogram.Linear
}

// envFlags maps environment variables to the flags they provide
// defaults for.
var envFlags = []struct {
	env  string
	flag string
}{
	{"COLOROGRAM_MODE", "mode"},
	{"COLOROGRAM_SCALE", "scale"},
	{"COLOROGRAM_WIDTH", "width"},
	{"COLOROGRAM_HEIGHT", "height"},
	{"COLOROGRAM_WORKERS", "workers"},
	{"COLOROGRAM_PREVIEW", "preview"},
	{"COLOROGRAM_LOG_LEVEL", "log-level"},
	{"COLOROGRAM_LOG_FILE", "log-file"},
}

// LoadDotEnv loads KEY=VALUE pairs from path into the process environment
// without overriding variables that are already set. A missing file is
// not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// applyEnv sets every flag the user did not pass explicitly from its
// environment variable, if present.
func applyEnv(flags *pflag.FlagSet, getenv func(string) string) error {
	if getenv == nil {
		getenv = os.Getenv
	}
	for _, ef := range envFlags {
		f := flags.Lookup(ef.flag)
		if f == nil || f.Changed {
			continue
		}
		v := strings.TrimSpace(getenv(ef.env))
		if v == "" {
			continue
		}
		if err := flags.Set(ef.flag, v); err != nil {
			return fmt.Errorf("invalid %s=%q: %w", ef.env, v, err)
		}
	}
	return nil
}
