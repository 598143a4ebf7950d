package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voltlab/gpumon/internal/config"
	"github.com/voltlab/gpumon/internal/errors"
)

func TestParseInterval(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Duration
		wantErr bool
	}{
		{
			name:  "milliseconds",
			input: "500ms",
			want:  500 * time.Millisecond,
		},
		{
			name:  "seconds",
			input: "2s",
			want:  2 * time.Second,
		},
		{
			name:  "compound duration",
			input: "1m30s",
			want:  90 * time.Second,
		},
		{
			name:    "bare number",
			input:   "500",
			wantErr: true,
		},
		{
			name:    "garbage",
			input:   "fast",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseInterval(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsCode(err, errors.ErrConfig))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name         string
		intervalFlag string
		backendFlag  string
		wantInterval time.Duration
		wantBackend  string
		wantErr      string
	}{
		{
			name:         "no flags keeps config values",
			wantInterval: 500 * time.Millisecond,
			wantBackend:  "auto",
		},
		{
			name:         "interval flag overrides config",
			intervalFlag: "2s",
			wantInterval: 2 * time.Second,
			wantBackend:  "auto",
		},
		{
			name:         "backend flag overrides config",
			backendFlag:  "mock",
			wantInterval: 500 * time.Millisecond,
			wantBackend:  "mock",
		},
		{
			name:         "both flags override",
			intervalFlag: "1s",
			backendFlag:  "nvidia",
			wantInterval: time.Second,
			wantBackend:  "nvidia",
		},
		{
			name:         "unparseable interval",
			intervalFlag: "soon",
			wantErr:      "valid interval",
		},
		{
			name:         "interval below minimum",
			intervalFlag: "10ms",
			wantErr:      "too fast",
		},
		{
			name:        "unknown backend",
			backendFlag: "cuda",
			wantErr:     "Unknown telemetry backend",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			merged, err := applyFlags(cfg, tt.intervalFlag, tt.backendFlag)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantInterval, merged.Interval)
			assert.Equal(t, tt.wantBackend, merged.Backend)

			// The input config is never mutated.
			assert.Equal(t, 500*time.Millisecond, cfg.Interval)
			assert.Equal(t, "auto", cfg.Backend)
		})
	}
}
