package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/voltlab/gpumon/internal/telemetry"
)

// Fixed row budgets for the vertical split.
const (
	headerRows = 3
	footerRows = 3
	gaugeRows  = 3
)

// render produces the full frame: header (3 rows), body panel (flexible),
// footer (3 rows). It is a pure function of model state and total: any
// combination of absent fields or an empty device list still renders.
func (m Model) render() string {
	width := m.width
	if width < 40 {
		width = 40
	}

	header := m.renderHeader(width)
	body := m.renderBody(width)
	footer := m.renderFooter(width)

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m Model) renderHeader(width int) string {
	title := TitleStyle.Render("gpumon")
	subtitle := LabelStyle.Render(" · live GPU telemetry · press q or esc to quit")
	return HeaderStyle.Width(width - 2).Render(title + subtitle)
}

// renderBody draws the bordered panel: device text region on top, the two
// gauges below. Only the first device feeds the gauges.
func (m Model) renderBody(width int) string {
	innerWidth := width - 4 // panel border + padding

	textRegion := m.renderDevices(innerWidth)

	var focus *telemetry.DeviceSample
	if len(m.metrics) > 0 {
		focus = &m.metrics[0]
	}

	utilGauge := m.renderUtilGauge(focus, innerWidth)
	vramGauge := m.renderVRAMGauge(focus, innerWidth)

	// Pad the text region so the gauges sit at the bottom of the panel.
	textBudget := m.height - headerRows - footerRows - 2 - 2*gaugeRows
	if textBudget > 0 {
		textRegion = fitLines(textRegion, textBudget)
	}

	content := lipgloss.JoinVertical(lipgloss.Left, textRegion, utilGauge, vramGauge)
	return PanelStyle.Width(width - 2).Render(content)
}

// renderDevices emits one text block per device, blank-line separated.
// An empty sample set renders as an empty region, never an error.
func (m Model) renderDevices(width int) string {
	if len(m.metrics) == 0 {
		return ""
	}

	blocks := make([]string, 0, len(m.metrics))
	for i, sample := range m.metrics {
		blocks = append(blocks, renderDeviceBlock(i, sample))
	}
	return strings.Join(blocks, "\n\n")
}

// renderDeviceBlock formats one device's readings: styled temperature and
// power lines, unstyled clocks and fan lines, all placeholder-aware.
func renderDeviceBlock(index int, s telemetry.DeviceSample) string {
	lines := []string{
		DeviceNameStyle.Render(fmt.Sprintf("Device %d: %s", index, s.Name)),
		metricLine("Temp:", FormatValue(s.TempC, "%.1f°C"), TempTier(s.TempC)),
		metricLine("Junction:", FormatValue(s.JunctionTempC, "%.1f°C"), JunctionTier(s.JunctionTempC)),
		metricLine("Mem Temp:", FormatValue(s.MemTempC, "%.1f°C"), MemTempTier(s.MemTempC)),
		metricLine("Power:", FormatValue(s.PowerW, "%.1f W"), PowerTier(s.PowerW)),
		plainLine("Clocks:", FormatValue(s.CoreClockMHz, "%d MHz")+" core / "+
			FormatValue(s.MemClockMHz, "%d MHz")+" mem"),
		plainLine("Fan:", FormatValue(s.FanRPM, "%d RPM")),
	}
	return strings.Join(lines, "\n")
}

// metricLine renders a label plus a value styled by its severity tier.
func metricLine(label, value string, tier Tier) string {
	return "  " + LabelStyle.Render(fmt.Sprintf("%-10s", label)) + TierStyle(tier).Render(value)
}

// plainLine renders a label plus an unstyled value.
func plainLine(label, value string) string {
	return "  " + LabelStyle.Render(fmt.Sprintf("%-10s", label)) + value
}

func (m Model) renderUtilGauge(focus *telemetry.DeviceSample, width int) string {
	var util *float64
	if focus != nil {
		util = focus.UtilizationPct
	}
	return renderGauge("Util", PctRatio(util), FormatValue(util, "%.1f%%"), width)
}

func (m Model) renderVRAMGauge(focus *telemetry.DeviceSample, width int) string {
	var used, total *uint64
	if focus != nil {
		used, total = focus.VRAMUsedMB, focus.VRAMTotalMB
	}
	return renderGauge("VRAM", VRAMRatio(used, total), FormatVRAMPair(used, total), width)
}

// renderGauge draws one 3-row bordered gauge. Fill ratio and border color
// both come from the shared ratio classifier; the label text shows the
// placeholder for absent data even though the fill defaults to empty.
func renderGauge(title string, ratio float64, label string, width int) string {
	tier := RatioTier(ratio)

	inner := width - 4 // gauge border + padding
	if inner < 10 {
		inner = 10
	}

	head := LabelStyle.Render(fmt.Sprintf("%-5s", title))
	barWidth := inner - lipgloss.Width(head) - lipgloss.Width(label) - 1
	if barWidth < 1 {
		barWidth = 1
	}

	content := head + GaugeBar(barWidth, ratio, tier) + " " + label
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(TierColor(tier)).
		Padding(0, 1).
		Width(width - 2)
	return box.Render(content)
}

// renderFooter shows the counter of the displayed sample, the backend
// annotation, and the key hints.
func (m Model) renderFooter(width int) string {
	parts := []string{fmt.Sprintf("tick %d", m.frame)}

	backend := m.sampler.Name()
	if backend == telemetry.BackendMock {
		parts = append(parts, "backend mock (simulated data)")
	} else {
		parts = append(parts, "backend "+backend)
	}

	parts = append(parts, m.help.View(m.keys))
	return FooterStyle.Width(width - 2).Render(strings.Join(parts, " · "))
}

// fitLines pads or trims a block of text to exactly n lines.
func fitLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		lines = lines[:n]
	}
	for len(lines) < n {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
