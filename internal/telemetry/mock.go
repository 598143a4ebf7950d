package telemetry

import "time"

// MockSampler generates plausible, bounded synthetic telemetry derived
// entirely from the tick counter. Given the same counter it always returns
// the same values, which keeps the dashboard testable without hardware.
type MockSampler struct{}

// NewMock returns the synthetic telemetry generator.
func NewMock() *MockSampler {
	return &MockSampler{}
}

// Name implements Sampler.
func (s *MockSampler) Name() string { return "mock" }

// Detect implements Backend. The mock is always available.
func (s *MockSampler) Detect() bool { return true }

// Sample implements Sampler. Two devices are emitted: a discrete card with a
// full sensor set and a smaller card that lacks junction, memory-temperature,
// and power sensors, so placeholder rendering is exercised continuously.
func (s *MockSampler) Sample(counter uint64) []DeviceSample {
	now := time.Now()

	primary := DeviceSample{
		Name:           "Radeon RX 7900 XTX (simulated)",
		TempC:          Float64(45 + float64(counter%10)),
		JunctionTempC:  Float64(57 + float64((counter*3)%15)),
		MemTempC:       Float64(52 + float64((counter*2)%9)),
		UtilizationPct: Float64(float64((counter * 7) % 100)),
		VRAMUsedMB:     Uint64(1200 + (counter*37)%800),
		VRAMTotalMB:    Uint64(16384),
		PowerW:         Float64(180 + float64((counter*11)%130)),
		FanRPM:         Uint64(1500 + (counter%10)*120),
		CoreClockMHz:   Uint64(1800 + counter%200),
		MemClockMHz:    Uint64(875 + (counter%4)*125),
		Timestamp:      now,
	}

	// Secondary device simulating sparse sensor coverage.
	secondary := DeviceSample{
		Name:           "Radeon 780M iGPU (simulated)",
		TempC:          Float64(40 + float64((counter*5)%12)),
		UtilizationPct: Float64(float64((counter * 13) % 100)),
		VRAMUsedMB:     Uint64(300 + (counter*17)%200),
		VRAMTotalMB:    Uint64(2048),
		CoreClockMHz:   Uint64(1100 + counter%300),
		Timestamp:      now,
	}

	return []DeviceSample{primary, secondary}
}
