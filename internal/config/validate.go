package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/voltlab/gpumon/internal/errors"
	"github.com/voltlab/gpumon/internal/telemetry"
)

// MinInterval is the fastest poll cadence we allow. Sampling backends shell
// out or hit sysfs, so anything faster just burns CPU for stale numbers.
const MinInterval = 100 * time.Millisecond

// validColorModes are the accepted values for the color setting.
var validColorModes = map[string]bool{
	"auto":   true,
	"always": true,
	"never":  true,
}

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New(errors.ErrConfig,
			"Config is nil",
			"This is unexpected - try reloading the configuration.")
	}

	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but gpumon only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Grab the latest gpumon release")
	}

	if cfg.Interval < MinInterval {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Refresh interval %s is too fast", cfg.Interval),
			fmt.Sprintf("Use %s or slower.", MinInterval))
	}

	if err := validateBackend(cfg.Backend); err != nil {
		return err
	}

	if !validColorModes[cfg.Color] {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown color mode '%s'", cfg.Color),
			"Use 'auto', 'always', or 'never'.")
	}

	return nil
}

// validateBackend checks that the backend name is one gpumon knows about.
func validateBackend(name string) error {
	if name == "" {
		return nil
	}
	for _, b := range telemetry.Backends() {
		if strings.EqualFold(name, b) {
			return nil
		}
	}
	return errors.New(errors.ErrConfig,
		fmt.Sprintf("Unknown telemetry backend '%s'", name),
		"Use one of: "+strings.Join(telemetry.Backends(), ", "))
}
