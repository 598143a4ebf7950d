package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/voltlab/gpumon/internal/telemetry"
)

func TestTempTier(t *testing.T) {
	tests := []struct {
		name string
		temp *float64
		want Tier
	}{
		{"absent is unknown never critical", nil, TierUnknown},
		{"cool", telemetry.Float64(45), TierNormal},
		{"just below warning", telemetry.Float64(79.9), TierNormal},
		{"at warning threshold", telemetry.Float64(80), TierWarning},
		{"just below critical", telemetry.Float64(89.9), TierWarning},
		{"at critical threshold", telemetry.Float64(90), TierCritical},
		{"far above critical", telemetry.Float64(110), TierCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TempTier(tt.temp))
		})
	}
}

func TestJunctionTier(t *testing.T) {
	tests := []struct {
		name string
		temp *float64
		want Tier
	}{
		{"absent", nil, TierUnknown},
		{"normal", telemetry.Float64(90), TierNormal},
		{"warning at 95", telemetry.Float64(95), TierWarning},
		{"critical at 105", telemetry.Float64(105), TierCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, JunctionTier(tt.temp))
		})
	}
}

func TestMemTempTier(t *testing.T) {
	tests := []struct {
		name string
		temp *float64
		want Tier
	}{
		{"absent", nil, TierUnknown},
		{"normal", telemetry.Float64(80), TierNormal},
		{"warning at 85", telemetry.Float64(85), TierWarning},
		{"critical at 95", telemetry.Float64(95), TierCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MemTempTier(tt.temp))
		})
	}
}

func TestPowerTier(t *testing.T) {
	tests := []struct {
		name  string
		watts *float64
		want  Tier
	}{
		{"absent", nil, TierUnknown},
		{"idle draw", telemetry.Float64(40), TierNormal},
		{"warning at 220", telemetry.Float64(220), TierWarning},
		{"critical at 300", telemetry.Float64(300), TierCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PowerTier(tt.watts))
		})
	}
}

func TestRatioTier(t *testing.T) {
	tests := []struct {
		name  string
		ratio float64
		want  Tier
	}{
		{"empty", 0, TierNormal},
		{"just below warning", 0.749, TierNormal},
		{"warning at 0.75", 0.75, TierWarning},
		{"just below critical", 0.899, TierWarning},
		{"critical at 0.90", 0.90, TierCritical},
		{"full", 1.0, TierCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RatioTier(tt.ratio))
		})
	}
}

func TestVRAMRatio(t *testing.T) {
	tests := []struct {
		name  string
		used  *uint64
		total *uint64
		want  float64
	}{
		{"both absent", nil, nil, 0},
		{"used absent", nil, telemetry.Uint64(16384), 0},
		{"total absent", telemetry.Uint64(1000), nil, 0},
		{"zero total", telemetry.Uint64(1000), telemetry.Uint64(0), 0},
		{"half full", telemetry.Uint64(8192), telemetry.Uint64(16384), 0.5},
		{"sensor glitch used exceeds total clamps to full", telemetry.Uint64(20000), telemetry.Uint64(16384), 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VRAMRatio(tt.used, tt.total)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 1.0)
		})
	}
}

func TestPctRatio(t *testing.T) {
	tests := []struct {
		name string
		pct  *float64
		want float64
	}{
		{"absent", nil, 0},
		{"zero", telemetry.Float64(0), 0},
		{"half", telemetry.Float64(50), 0.5},
		{"over 100 clamps", telemetry.Float64(150), 1.0},
		{"negative clamps", telemetry.Float64(-20), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PctRatio(tt.pct)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 1.0)
		})
	}
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, Placeholder, FormatValue[float64](nil, "%.1f°C"))
	assert.Equal(t, Placeholder, FormatValue[uint64](nil, "%d RPM"))
	assert.Equal(t, "72.5°C", FormatValue(telemetry.Float64(72.5), "%.1f°C"))
	assert.Equal(t, "1780 RPM", FormatValue(telemetry.Uint64(1780), "%d RPM"))

	// Formatting is idempotent: the same input always yields the same string.
	v := telemetry.Float64(33.3)
	assert.Equal(t, FormatValue(v, "%.1f%%"), FormatValue(v, "%.1f%%"))
}

func TestFormatVRAMPair(t *testing.T) {
	tests := []struct {
		name  string
		used  *uint64
		total *uint64
		want  string
	}{
		{"both present", telemetry.Uint64(1536), telemetry.Uint64(16384), "1536 / 16384 MB"},
		{"used only", telemetry.Uint64(1536), nil, "1536 MB / ? MB"},
		{"neither", nil, nil, Placeholder},
		{"total only renders placeholder", nil, telemetry.Uint64(16384), Placeholder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatVRAMPair(tt.used, tt.total))
		})
	}
}

func TestTierString(t *testing.T) {
	assert.Equal(t, "unknown", TierUnknown.String())
	assert.Equal(t, "normal", TierNormal.String())
	assert.Equal(t, "warning", TierWarning.String())
	assert.Equal(t, "critical", TierCritical.String())
}
