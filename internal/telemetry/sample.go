// Package telemetry defines the device sample data model and the sampling
// backends that produce it. A sample field that could not be read is nil,
// never zero; the dashboard renders nil as a placeholder.
package telemetry

import "time"

// DeviceSample is an immutable snapshot of one device's readings at a point
// in time. Every numeric field is optional: nil means "sensor unavailable".
type DeviceSample struct {
	Name           string
	TempC          *float64
	JunctionTempC  *float64
	MemTempC       *float64
	UtilizationPct *float64
	VRAMUsedMB     *uint64
	VRAMTotalMB    *uint64
	PowerW         *float64
	FanRPM         *uint64
	CoreClockMHz   *uint64
	MemClockMHz    *uint64
	Timestamp      time.Time
}

// Float64 returns a pointer to v. Convenience for building samples.
func Float64(v float64) *float64 { return &v }

// Uint64 returns a pointer to v. Convenience for building samples.
func Uint64(v uint64) *uint64 { return &v }
