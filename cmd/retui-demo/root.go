package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/lixenwraith/retui/app"
	"github.com/lixenwraith/retui/config"
	"github.com/lixenwraith/retui/terminal"
)

// flagValues holds command line overrides, applied only when the flag was set
type flagValues struct {
	configPath string
	demo       time.Duration
	logFile    string
	logLevel   string
	color      string
	noSIGINT   bool
	title      string
}

func newRootCmd() *cobra.Command {
	var fv flagValues

	cmd := &cobra.Command{
		Use:   "retui-demo",
		Short: "Interactive demo of the retui layout core",
		Long: `retui-demo opens a pane with a text box, two buttons and a floating badge.
Click the buttons or press Tab to move focus and Space to press; Escape quits.`,
		Example: `  # Quit automatically after five seconds
  retui-demo --demo 5s

  # Force 256 colors and log at debug level
  retui-demo --color 256 --log-level debug`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd.Flags(), fv)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	bindFlags(cmd.Flags(), &fv)
	return cmd
}

func bindFlags(flags *pflag.FlagSet, fv *flagValues) {
	flags.StringVarP(&fv.configPath, "config", "c", "", "Path to a TOML config file")
	flags.DurationVar(&fv.demo, "demo", 0, "Quit after this long, e.g. 10s")
	flags.StringVar(&fv.logFile, "log-file", config.DefaultLogFile, `Log file path, "" discards logs`)
	flags.StringVar(&fv.logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flags.StringVar(&fv.color, "color", "auto", "Color mode: auto, truecolor, 256")
	flags.BoolVar(&fv.noSIGINT, "no-sigint", false, "Do not stop on SIGINT")
	flags.StringVar(&fv.title, "title", "", "Window title")
}

// loadConfig reads the config file and applies the flags the user set
func loadConfig(flags *pflag.FlagSet, fv flagValues) (*config.Config, error) {
	cfg, err := config.Load(fv.configPath)
	if err != nil {
		return nil, err
	}

	if flags.Changed("demo") {
		cfg.Demo.Duration = fv.demo
	}
	if flags.Changed("log-file") {
		cfg.LogFile = fv.logFile
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = fv.logLevel
	}
	if flags.Changed("color") {
		cfg.ColorMode = fv.color
	}
	if flags.Changed("no-sigint") {
		cfg.HandleSIGINT = !fv.noSIGINT
	}
	if flags.Changed("title") {
		cfg.Title = fv.title
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "flags")
	}
	return cfg, nil
}

func run(ctx context.Context, cfg *config.Config) error {
	level, _ := cfg.SlogLevel()
	logFile, err := setupLogging(cfg.LogFile, level)
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}

	colorMode, _ := cfg.Color()
	mouseMode, _ := cfg.MouseMode()
	quitKeys, _ := cfg.QuitVirtualKeys()

	console := terminal.New(colorMode)
	if err := console.Init(); err != nil {
		return errors.Wrap(err, "initialize terminal")
	}
	defer console.Fini()
	console.SetEscapeTimeout(cfg.EscapeTimeout.Duration)

	if err := console.SetMouseMode(mouseMode); err != nil {
		slog.Warn("mouse mode not applied", "error", err)
	}

	a := app.New(console,
		app.WithLogger(slog.Default()),
		app.WithTitle(cfg.Title),
		app.WithTheme(cfg.Theme.TUI()),
		app.WithReadTimeout(cfg.ReadTimeout.Duration),
		app.WithDemo(cfg.Demo.Duration),
		app.WithSIGINT(cfg.HandleSIGINT),
		app.WithQuitKeys(quitKeys...),
	)

	d := newDemo(cfg.Theme.TUI(), a.Stop)
	a.AddWidget(d.pane)
	a.Focus(d.count)

	slog.Info("starting", "title", cfg.Title, "color", colorMode.String(), "demo", cfg.Demo.Duration)
	if err := a.Run(ctx); err != nil {
		slog.Error("loop ended with error", "error", err)
		return err
	}
	return nil
}
