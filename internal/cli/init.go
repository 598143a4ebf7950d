package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/voltlab/gpumon/internal/config"
	"github.com/voltlab/gpumon/internal/errors"
)

var initForce bool

// initCmd creates a new .gpumon.yaml configuration
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .gpumon.yaml configuration",
	Long: `Initialize a new gpumon configuration file.

Creates a .gpumon.yaml file in the current directory, walking you
through backend and refresh interval selection with interactive prompts.

Examples:
  gpumon init
  gpumon init --force`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return initCommand(initForce)
	},
}

// InitOptions holds options for the init command.
type InitOptions struct {
	Overwrite      bool // Overwrite existing config without asking
	NonInteractive bool // Skip prompts, use defaults
}

// Init creates a new .gpumon.yaml configuration file.
func Init(opts InitOptions) error {
	configPath := filepath.Join(".", config.ConfigFileName)

	// Check for existing config
	if _, err := os.Stat(configPath); err == nil && !opts.Overwrite {
		var overwrite bool

		if opts.NonInteractive {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Config file already exists: %s", configPath),
				"Use --force to overwrite")
		}

		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", config.ConfigFileName)).
					Value(&overwrite),
			),
		)

		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}

		if !overwrite {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	cfg := config.DefaultConfig()

	if !opts.NonInteractive {
		intervalStr := cfg.Interval.String()

		form := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Telemetry backend").
					Description("auto probes nvidia then amd, falling back to simulated data").
					Options(
						huh.NewOption("auto (detect hardware)", "auto"),
						huh.NewOption("nvidia (nvidia-smi)", "nvidia"),
						huh.NewOption("amd (amdgpu sysfs)", "amd"),
						huh.NewOption("mock (simulated data)", "mock"),
					).
					Value(&cfg.Backend),
			),
			huh.NewGroup(
				huh.NewInput().
					Title("Refresh interval").
					Description("How often to poll the hardware").
					Placeholder("500ms").
					Value(&intervalStr).
					Validate(func(s string) error {
						d, err := time.ParseDuration(s)
						if err != nil {
							return fmt.Errorf("not a valid duration, try 500ms or 1s")
						}
						if d < config.MinInterval {
							return fmt.Errorf("minimum interval is %s", config.MinInterval)
						}
						return nil
					}),
			),
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Color output").
					Options(
						huh.NewOption("auto (disable when piped)", "auto"),
						huh.NewOption("always", "always"),
						huh.NewOption("never", "never"),
					).
					Value(&cfg.Color),
			),
		)

		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Check terminal compatibility or edit .gpumon.yaml by hand")
		}

		// Validated by the form, so a parse failure here cannot happen.
		cfg.Interval, _ = time.ParseDuration(intervalStr)
	}

	if err := WriteConfig(configPath, cfg); err != nil {
		return err
	}

	fmt.Printf("Created %s\n\n", configPath)
	fmt.Println("Next steps:")
	fmt.Println("  gpumon                   - Start the dashboard")
	fmt.Println("  gpumon --list-backends   - Show available backends")

	return nil
}

// WriteConfig marshals the config to YAML and writes it with a header comment.
// The interval is written as a duration string, not nanoseconds.
func WriteConfig(path string, cfg *config.Config) error {
	out := struct {
		Version  int    `yaml:"version"`
		Interval string `yaml:"interval"`
		Backend  string `yaml:"backend"`
		Color    string `yaml:"color"`
	}{cfg.Version, cfg.Interval.String(), cfg.Backend, cfg.Color}

	data, err := yaml.Marshal(out)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to generate config",
			"This shouldn't happen - please report this bug")
	}

	header := `# gpumon configuration
# Run 'gpumon' to start the dashboard
# See 'gpumon --help' for flags that override these values

`
	content := header + string(data)

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Failed to write config file: %s", path),
			"Check directory permissions")
	}

	return nil
}

// initCommand is the implementation called by the cobra command.
func initCommand(force bool) error {
	return Init(InitOptions{Overwrite: force})
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite existing config")
	rootCmd.AddCommand(initCmd)
}
