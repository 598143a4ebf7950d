// Package dashboard renders live telemetry samples as a Bubble Tea TUI:
// styled per-device text blocks plus utilization and VRAM gauges.
package dashboard

import "fmt"

// Tier is the severity classification of a single metric reading.
// TierUnknown applies exactly when the reading is absent.
type Tier int

const (
	TierUnknown Tier = iota
	TierNormal
	TierWarning
	TierCritical
)

// String returns a human-readable tier label.
func (t Tier) String() string {
	switch t {
	case TierNormal:
		return "normal"
	case TierWarning:
		return "warning"
	case TierCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// Severity thresholds, one set per metric family. These live here and
// nowhere else so the classification policy stays centralized.
const (
	TempWarningC      = 80.0
	TempCriticalC     = 90.0
	JunctionWarningC  = 95.0
	JunctionCriticalC = 105.0
	MemTempWarningC   = 85.0
	MemTempCriticalC  = 95.0
	PowerWarningW     = 220.0
	PowerCriticalW    = 300.0
	RatioWarning      = 0.75
	RatioCritical     = 0.90
)

// classify applies warning/critical thresholds to an optional reading.
func classify(v *float64, warning, critical float64) Tier {
	if v == nil {
		return TierUnknown
	}
	switch {
	case *v >= critical:
		return TierCritical
	case *v >= warning:
		return TierWarning
	default:
		return TierNormal
	}
}

// TempTier classifies a general (edge) temperature in °C.
func TempTier(v *float64) Tier {
	return classify(v, TempWarningC, TempCriticalC)
}

// JunctionTier classifies a junction/hotspot temperature in °C.
func JunctionTier(v *float64) Tier {
	return classify(v, JunctionWarningC, JunctionCriticalC)
}

// MemTempTier classifies a memory temperature in °C.
func MemTempTier(v *float64) Tier {
	return classify(v, MemTempWarningC, MemTempCriticalC)
}

// PowerTier classifies a power draw in watts.
func PowerTier(v *float64) Tier {
	return classify(v, PowerWarningW, PowerCriticalW)
}

// RatioTier classifies a gauge fill ratio. Both gauges share this policy.
// The input is expected to already be clamped to [0,1].
func RatioTier(ratio float64) Tier {
	switch {
	case ratio >= RatioCritical:
		return TierCritical
	case ratio >= RatioWarning:
		return TierWarning
	default:
		return TierNormal
	}
}

// VRAMRatio derives a gauge fill ratio from the used/total pair. Missing
// halves or a zero total yield 0 rather than an error: a gauge cannot render
// "unknown" as a fill level, so absence becomes an empty bar while the label
// still shows the placeholder. Sensor glitches where used exceeds total
// clamp to a full bar.
func VRAMRatio(used, total *uint64) float64 {
	if used == nil || total == nil || *total == 0 {
		return 0
	}
	return clampRatio(float64(*used) / float64(*total))
}

// PctRatio derives a gauge fill ratio from an optional percentage.
func PctRatio(pct *float64) float64 {
	if pct == nil {
		return 0
	}
	p := *pct
	if p < 0 {
		p = 0
	}
	if p > 100 {
		p = 100
	}
	return p / 100
}

func clampRatio(r float64) float64 {
	if r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}

// Placeholder is the fixed text shown for any absent reading.
const Placeholder = "--"

// FormatValue renders an optional numeric reading with the given fmt verb
// (unit suffixes included, e.g. "%.1f°C"), or the placeholder when absent.
// Every optional value not backing a gauge goes through this one function.
func FormatValue[N float64 | uint64](v *N, verb string) string {
	if v == nil {
		return Placeholder
	}
	return fmt.Sprintf(verb, *v)
}

// FormatVRAMPair renders the used/total VRAM pair. Three phrasings depending
// on which half is present: both, used only, or placeholder-only.
func FormatVRAMPair(used, total *uint64) string {
	switch {
	case used != nil && total != nil:
		return fmt.Sprintf("%d / %d MB", *used, *total)
	case used != nil:
		return fmt.Sprintf("%d MB / ? MB", *used)
	default:
		return Placeholder
	}
}
