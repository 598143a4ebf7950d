package telemetry

import (
	"bufio"
	"context"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/voltlab/gpumon/internal/logger"
)

// smiQueryFields are the columns requested from nvidia-smi, in order.
// fan.speed is reported as a percentage by nvidia-smi, not RPM, so it is
// deliberately not queried; the fan field stays nil on this backend.
const smiQueryFields = "name,temperature.gpu,temperature.memory,utilization.gpu," +
	"memory.used,memory.total,power.draw,clocks.sm,clocks.mem"

// smiTimeout bounds each nvidia-smi invocation so a wedged driver cannot
// stall the render loop for more than one tick.
const smiTimeout = 400 * time.Millisecond

// NvidiaSampler reads telemetry by shelling out to nvidia-smi.
type NvidiaSampler struct {
	log logger.Logger

	// runSMI is swappable for tests.
	runSMI func() (string, error)
}

// NewNvidia returns a sampler backed by the nvidia-smi CLI.
func NewNvidia(log logger.Logger) *NvidiaSampler {
	if log == nil {
		log = logger.Default()
	}
	s := &NvidiaSampler{log: log}
	s.runSMI = s.execSMI
	return s
}

// Name implements Sampler.
func (s *NvidiaSampler) Name() string { return "nvidia" }

// Detect implements Backend: the backend is usable when nvidia-smi is on PATH.
func (s *NvidiaSampler) Detect() bool {
	_, err := exec.LookPath("nvidia-smi")
	return err == nil
}

// Sample implements Sampler. A failed or garbled nvidia-smi run yields an
// empty device list, never an error; unparseable columns yield nil fields.
func (s *NvidiaSampler) Sample(counter uint64) []DeviceSample {
	out, err := s.runSMI()
	if err != nil {
		s.log.Debug("nvidia-smi failed on tick %d: %v", counter, err)
		return nil
	}
	return parseSMIOutput(out, time.Now())
}

func (s *NvidiaSampler) execSMI() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), smiTimeout)
	defer cancel()
	out, err := exec.CommandContext(ctx, "nvidia-smi",
		"--query-gpu="+smiQueryFields,
		"--format=csv,noheader,nounits").CombinedOutput()
	if ctx.Err() == context.DeadlineExceeded {
		return "", ctx.Err()
	}
	return string(out), err
}

// parseSMIOutput converts nvidia-smi CSV output into device samples, one per
// line. Lines with too few columns are skipped; "[N/A]" and unparseable
// values become nil fields.
func parseSMIOutput(out string, ts time.Time) []DeviceSample {
	out = strings.TrimSpace(out)
	if out == "" {
		return nil
	}

	// nvidia-smi prints prose instead of CSV when no device is present.
	lower := strings.ToLower(out)
	if strings.Contains(lower, "no devices") ||
		strings.Contains(lower, "not found") ||
		strings.Contains(lower, "failed") ||
		strings.Contains(lower, "error") {
		return nil
	}

	var samples []DeviceSample
	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		fields := strings.Split(sc.Text(), ",")
		if len(fields) < 9 {
			continue
		}

		sample := DeviceSample{
			Name:      strings.TrimSpace(fields[0]),
			Timestamp: ts,
		}
		if sample.Name == "" {
			continue
		}

		sample.TempC = smiFloat(fields[1])
		sample.MemTempC = smiFloat(fields[2])
		sample.UtilizationPct = smiFloat(fields[3])
		sample.VRAMUsedMB = smiUint(fields[4])
		sample.VRAMTotalMB = smiUint(fields[5])
		sample.PowerW = smiFloat(fields[6])
		sample.CoreClockMHz = smiUint(fields[7])
		sample.MemClockMHz = smiUint(fields[8])

		samples = append(samples, sample)
	}
	return samples
}

// smiFloat parses one nvidia-smi CSV column as a float, nil on "[N/A]" or junk.
func smiFloat(field string) *float64 {
	field = strings.TrimSpace(field)
	if field == "" || field == "[N/A]" {
		return nil
	}
	v, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return nil
	}
	return &v
}

// smiUint parses one nvidia-smi CSV column as an unsigned integer.
func smiUint(field string) *uint64 {
	field = strings.TrimSpace(field)
	if field == "" || field == "[N/A]" {
		return nil
	}
	v, err := strconv.ParseUint(field, 10, 64)
	if err != nil {
		return nil
	}
	return &v
}
