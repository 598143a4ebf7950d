package cli

import (
	"fmt"
	"time"

	"github.com/voltlab/gpumon/internal/config"
	"github.com/voltlab/gpumon/internal/errors"
)

// applyFlags layers command-line flags over the loaded config.
// Precedence: flag > config file > default. The merged result is
// validated so a bad flag gets the same error surface as a bad file.
func applyFlags(cfg *config.Config, intervalFlag, backendFlag string) (*config.Config, error) {
	merged := *cfg

	if intervalFlag != "" {
		parsed, err := ParseInterval(intervalFlag)
		if err != nil {
			return nil, err
		}
		merged.Interval = parsed
	}

	if backendFlag != "" {
		merged.Backend = backendFlag
	}

	if err := config.Validate(&merged); err != nil {
		return nil, err
	}

	return &merged, nil
}

// ParseInterval parses a refresh interval string into a duration.
func ParseInterval(flag string) (time.Duration, error) {
	duration, err := time.ParseDuration(flag)
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("'%s' doesn't look like a valid interval", flag),
			"Try something like 500ms, 1s, or 2s.")
	}
	return duration, nil
}
