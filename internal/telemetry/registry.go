package telemetry

import (
	"fmt"
	"strings"

	"github.com/voltlab/gpumon/internal/errors"
	"github.com/voltlab/gpumon/internal/logger"
)

// Backend names accepted by New.
const (
	BackendMock   = "mock"
	BackendNvidia = "nvidia"
	BackendAMD    = "amd"
	BackendAuto   = "auto"
)

// Backends lists the selectable backend names in probe order.
func Backends() []string {
	return []string{BackendMock, BackendNvidia, BackendAMD, BackendAuto}
}

// New builds the sampler for the requested backend name. With BackendAuto the
// hardware backends are probed in order and the first usable one wins; when
// none detects hardware the mock generator is used so the dashboard always
// has something to show.
func New(name string, log logger.Logger) (Sampler, error) {
	if log == nil {
		log = logger.Default()
	}

	switch strings.ToLower(strings.TrimSpace(name)) {
	case BackendMock, "":
		return NewMock(), nil

	case BackendNvidia:
		return NewNvidia(log), nil

	case BackendAMD:
		return NewAMD("", log), nil

	case BackendAuto:
		probes := []Backend{
			NewNvidia(log),
			NewAMD("", log),
		}
		for _, b := range probes {
			if b.Detect() {
				log.Debug("auto-selected %s backend", b.Name())
				return b, nil
			}
		}
		log.Debug("no hardware backend detected, falling back to mock")
		return NewMock(), nil

	default:
		return nil, errors.New(errors.ErrSampler,
			fmt.Sprintf("Unknown telemetry backend '%s'", name),
			"Use one of: "+strings.Join(Backends(), ", "))
	}
}
