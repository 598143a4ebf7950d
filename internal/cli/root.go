package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/voltlab/gpumon/internal/config"
	"github.com/voltlab/gpumon/internal/dashboard"
	"github.com/voltlab/gpumon/internal/errors"
	"github.com/voltlab/gpumon/internal/logger"
	"github.com/voltlab/gpumon/internal/telemetry"
)

// Root command flags
var (
	intervalFlag     string
	backendFlag      string
	configFlag       string
	listBackendsFlag bool
)

// rootCmd runs the dashboard. Subcommands handle everything else.
var rootCmd = &cobra.Command{
	Use:   "gpumon",
	Short: "Live GPU telemetry dashboard for your terminal",
	Long: `gpumon polls GPU hardware metrics at a fixed interval and renders them
as a full-screen terminal dashboard with color-coded readings and gauges.

Backends: nvidia (nvidia-smi), amd (amdgpu sysfs), mock (simulated data).
With --backend auto the hardware backends are probed in order and the
first usable one wins, falling back to simulated data.

Keyboard shortcuts:
  q / Esc / Ctrl+C  Quit

Examples:
  gpumon
  gpumon --interval 1s
  gpumon --backend nvidia
  gpumon --config ./gpumon.yaml`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if listBackendsFlag {
			for _, b := range telemetry.Backends() {
				cmd.Println(b)
			}
			return nil
		}
		return dashboardCommand(configFlag, intervalFlag, backendFlag)
	},
}

// dashboardCommand resolves options, guards the terminal, and runs the TUI.
func dashboardCommand(configPath, intervalFlag, backendFlag string) error {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return err
	}

	cfg, err = applyFlags(cfg, intervalFlag, backendFlag)
	if err != nil {
		return err
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New(errors.ErrTerm,
			"Stdout is not a terminal",
			"gpumon renders a full-screen dashboard and cannot write to a pipe or file.")
	}

	log := logger.Default()
	sampler, err := telemetry.New(cfg.Backend, log)
	if err != nil {
		return err
	}

	model := dashboard.NewModel(sampler, cfg.Interval, log)

	// The program owns raw mode and the alternate screen; Bubble Tea
	// restores the terminal on every exit path, including panics.
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrTerm,
			"Dashboard terminated unexpectedly",
			"Check terminal compatibility, e.g. TERM=xterm-256color.")
	}

	return nil
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&intervalFlag, "interval", "i", "", "refresh interval (e.g., 500ms, 1s, 2s)")
	rootCmd.Flags().StringVarP(&backendFlag, "backend", "b", "", "telemetry backend: auto, mock, nvidia, amd")
	rootCmd.Flags().StringVarP(&configFlag, "config", "c", "", "path to config file")
	rootCmd.Flags().BoolVar(&listBackendsFlag, "list-backends", false, "list available telemetry backends and exit")
}
