package telemetry

// Sampler produces one ordered set of device samples per tick. Implementations
// must be deterministic with respect to counter (the Timestamp field excepted)
// and must never fail: a backend translates sensor-read errors into nil fields,
// so the rest of the pipeline never handles sampling errors.
type Sampler interface {
	// Name identifies the backend (e.g., "mock", "nvidia", "amd").
	Name() string

	// Sample returns the current readings for every visible device.
	// An empty slice is a valid result (no devices detected).
	Sample(counter uint64) []DeviceSample
}

// Backend is a Sampler that can probe whether its hardware or tooling is
// actually present on this machine. Used by auto-selection.
type Backend interface {
	Sampler

	// Detect reports whether this backend has something to sample here.
	Detect() bool
}
