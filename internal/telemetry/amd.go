package telemetry

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/voltlab/gpumon/internal/logger"
)

// amdgpu sysfs file names, relative to class/drm/cardN/device.
const (
	amdBusyFile      = "gpu_busy_percent"
	amdVRAMUsedFile  = "mem_info_vram_used"
	amdVRAMTotalFile = "mem_info_vram_total"
)

// amdgpu hwmon channels: temp1 is edge, temp2 junction/hotspot, temp3 memory.
const (
	amdHwmonEdgeFile     = "temp1_input"
	amdHwmonJunctionFile = "temp2_input"
	amdHwmonMemFile      = "temp3_input"
	amdHwmonFanFile      = "fan1_input"
	amdHwmonPowerAvg     = "power1_average"
	amdHwmonPowerInput   = "power1_input"
	amdHwmonCoreClkFile  = "freq1_input"
	amdHwmonMemClkFile   = "freq2_input"
)

// AMDSampler reads amdgpu telemetry from sysfs. Unreadable files become nil
// fields; a missing card directory means the device list shrinks, never an
// error.
type AMDSampler struct {
	sysfsRoot string
	log       logger.Logger
}

// NewAMD returns a sampler reading from the amdgpu driver under sysfsRoot
// (normally "/sys"; tests point it at a fixture directory).
func NewAMD(sysfsRoot string, log logger.Logger) *AMDSampler {
	if sysfsRoot == "" {
		sysfsRoot = "/sys"
	}
	if log == nil {
		log = logger.Default()
	}
	return &AMDSampler{sysfsRoot: sysfsRoot, log: log}
}

// Name implements Sampler.
func (s *AMDSampler) Name() string { return "amd" }

// Detect implements Backend: usable when at least one card exposes the
// amdgpu busy counter.
func (s *AMDSampler) Detect() bool {
	return len(s.cardDirs()) > 0
}

// Sample implements Sampler.
func (s *AMDSampler) Sample(counter uint64) []DeviceSample {
	dirs := s.cardDirs()
	if len(dirs) == 0 {
		s.log.Debug("no amdgpu cards visible on tick %d", counter)
		return nil
	}

	now := time.Now()
	samples := make([]DeviceSample, 0, len(dirs))
	for _, dir := range dirs {
		samples = append(samples, s.readCard(dir, now))
	}
	return samples
}

// cardDirs returns the device directories of cards driven by amdgpu,
// ordered by card index.
func (s *AMDSampler) cardDirs() []string {
	pattern := filepath.Join(s.sysfsRoot, "class/drm/card*/device")
	matches, _ := filepath.Glob(pattern)

	var dirs []string
	for _, dir := range matches {
		if _, err := os.Stat(filepath.Join(dir, amdBusyFile)); err == nil {
			dirs = append(dirs, dir)
		}
	}
	sort.Strings(dirs)
	return dirs
}

func (s *AMDSampler) readCard(deviceDir string, ts time.Time) DeviceSample {
	card := filepath.Base(filepath.Dir(deviceDir))
	sample := DeviceSample{
		Name:      "amdgpu " + card,
		Timestamp: ts,
	}

	sample.UtilizationPct = readSysfsFloat(filepath.Join(deviceDir, amdBusyFile), 1)
	sample.VRAMUsedMB = readSysfsBytesAsMB(filepath.Join(deviceDir, amdVRAMUsedFile))
	sample.VRAMTotalMB = readSysfsBytesAsMB(filepath.Join(deviceDir, amdVRAMTotalFile))

	hwmon := detectHwmon(deviceDir)
	if hwmon == "" {
		return sample
	}

	// Temperatures are in millidegrees, power in microwatts, clocks in Hz.
	sample.TempC = readSysfsFloat(filepath.Join(hwmon, amdHwmonEdgeFile), 1000)
	sample.JunctionTempC = readSysfsFloat(filepath.Join(hwmon, amdHwmonJunctionFile), 1000)
	sample.MemTempC = readSysfsFloat(filepath.Join(hwmon, amdHwmonMemFile), 1000)
	sample.FanRPM = readSysfsUint(filepath.Join(hwmon, amdHwmonFanFile), 1)
	sample.PowerW = readSysfsFloat(filepath.Join(hwmon, amdHwmonPowerAvg), 1_000_000)
	if sample.PowerW == nil {
		sample.PowerW = readSysfsFloat(filepath.Join(hwmon, amdHwmonPowerInput), 1_000_000)
	}
	sample.CoreClockMHz = readSysfsUint(filepath.Join(hwmon, amdHwmonCoreClkFile), 1_000_000)
	sample.MemClockMHz = readSysfsUint(filepath.Join(hwmon, amdHwmonMemClkFile), 1_000_000)

	return sample
}

// detectHwmon finds the hwmon directory under a card's device directory.
func detectHwmon(deviceDir string) string {
	matches, _ := filepath.Glob(filepath.Join(deviceDir, "hwmon", "hwmon*"))
	if len(matches) == 0 {
		return ""
	}
	sort.Strings(matches)
	return matches[0]
}

// readSysfsFloat reads a numeric sysfs file and divides by divisor.
func readSysfsFloat(path string, divisor float64) *float64 {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(string(raw)), 64)
	if err != nil {
		return nil
	}
	v /= divisor
	return &v
}

// readSysfsUint reads a numeric sysfs file and divides by divisor.
func readSysfsUint(path string, divisor uint64) *uint64 {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	v, err := strconv.ParseUint(strings.TrimSpace(string(raw)), 10, 64)
	if err != nil {
		return nil
	}
	v /= divisor
	return &v
}

// readSysfsBytesAsMB reads a byte count and converts it to mebibytes.
func readSysfsBytesAsMB(path string) *uint64 {
	v := readSysfsUint(path, 1)
	if v == nil {
		return nil
	}
	mb := *v / (1024 * 1024)
	return &mb
}
