package telemetry

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voltlab/gpumon/internal/logger"
)

func TestParseSMIOutput(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name   string
		output string
		want   int // expected device count
		check  func(t *testing.T, samples []DeviceSample)
	}{
		{
			name:   "single device with all fields",
			output: "NVIDIA GeForce RTX 3080, 65, 72, 45, 2048, 10240, 220.5, 1710, 9501",
			want:   1,
			check: func(t *testing.T, samples []DeviceSample) {
				s := samples[0]
				assert.Equal(t, "NVIDIA GeForce RTX 3080", s.Name)
				require.NotNil(t, s.TempC)
				assert.Equal(t, 65.0, *s.TempC)
				require.NotNil(t, s.MemTempC)
				assert.Equal(t, 72.0, *s.MemTempC)
				require.NotNil(t, s.UtilizationPct)
				assert.Equal(t, 45.0, *s.UtilizationPct)
				require.NotNil(t, s.VRAMUsedMB)
				assert.Equal(t, uint64(2048), *s.VRAMUsedMB)
				require.NotNil(t, s.VRAMTotalMB)
				assert.Equal(t, uint64(10240), *s.VRAMTotalMB)
				require.NotNil(t, s.PowerW)
				assert.Equal(t, 220.5, *s.PowerW)
				require.NotNil(t, s.CoreClockMHz)
				assert.Equal(t, uint64(1710), *s.CoreClockMHz)
				require.NotNil(t, s.MemClockMHz)
				assert.Equal(t, uint64(9501), *s.MemClockMHz)
				// nvidia-smi reports fan as a percentage, so RPM stays unset.
				assert.Nil(t, s.FanRPM)
				assert.Nil(t, s.JunctionTempC)
			},
		},
		{
			name:   "N/A sensors become nil not zero",
			output: "Tesla T4, 58, [N/A], 12, 512, 16384, [N/A], 585, [N/A]",
			want:   1,
			check: func(t *testing.T, samples []DeviceSample) {
				s := samples[0]
				assert.Nil(t, s.MemTempC)
				assert.Nil(t, s.PowerW)
				assert.Nil(t, s.MemClockMHz)
				require.NotNil(t, s.TempC)
				assert.Equal(t, 58.0, *s.TempC)
			},
		},
		{
			name: "two devices one per line",
			output: "NVIDIA A100, 40, 48, 90, 30000, 40960, 280, 1410, 1215\n" +
				"NVIDIA A100, 42, 50, 85, 28000, 40960, 270, 1410, 1215",
			want: 2,
			check: func(t *testing.T, samples []DeviceSample) {
				require.NotNil(t, samples[1].TempC)
				assert.Equal(t, 42.0, *samples[1].TempC)
			},
		},
		{
			name:   "empty output",
			output: "",
			want:   0,
		},
		{
			name:   "no devices prose",
			output: "No devices were found",
			want:   0,
		},
		{
			name:   "driver error prose",
			output: "NVIDIA-SMI has failed because it couldn't communicate with the NVIDIA driver",
			want:   0,
		},
		{
			name:   "insufficient columns skipped",
			output: "GeForce GTX 1060, 55, 60",
			want:   0,
		},
		{
			name:   "unparseable numbers become nil",
			output: "Quadro P2000, abc, 60, xyz, 1024, 5120, 75, 1480, 3504",
			want:   1,
			check: func(t *testing.T, samples []DeviceSample) {
				assert.Nil(t, samples[0].TempC)
				assert.Nil(t, samples[0].UtilizationPct)
				require.NotNil(t, samples[0].VRAMUsedMB)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			samples := parseSMIOutput(tt.output, now)
			require.Len(t, samples, tt.want)
			if tt.check != nil {
				tt.check(t, samples)
			}
		})
	}
}

func TestNvidiaSampler_CommandFailureYieldsEmpty(t *testing.T) {
	s := NewNvidia(logger.Noop())
	s.runSMI = func() (string, error) {
		return "", errors.New("exec: \"nvidia-smi\": executable file not found in $PATH")
	}

	// A failed run is absorbed, never propagated.
	assert.Empty(t, s.Sample(3))
}

func TestNvidiaSampler_UsesParsedOutput(t *testing.T) {
	s := NewNvidia(logger.Noop())
	s.runSMI = func() (string, error) {
		return "NVIDIA GeForce RTX 4090, 50, 55, 33, 4096, 24564, 180, 2520, 10501", nil
	}

	samples := s.Sample(0)
	require.Len(t, samples, 1)
	assert.Equal(t, "NVIDIA GeForce RTX 4090", samples[0].Name)
	assert.False(t, samples[0].Timestamp.IsZero())
}
