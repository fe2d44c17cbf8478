// Package main provides the Grünerator shell entry point. Without a webview
// it hosts the windows in memory; the UI attaches over the control socket.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/gruenerator/shell/internal/cli/ctl"
	"github.com/gruenerator/shell/internal/config"
	"github.com/gruenerator/shell/internal/instance"
	"github.com/gruenerator/shell/internal/logging"
	"github.com/gruenerator/shell/internal/shell"
	"github.com/gruenerator/shell/internal/tray"
	"github.com/gruenerator/shell/internal/updater"
	"github.com/gruenerator/shell/internal/version"
	"github.com/gruenerator/shell/internal/window"
	"github.com/gruenerator/shell/internal/window/memwin"
)

type rootOptions struct {
	configFile string
	minimized  bool
	noTray     bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "gruenerator-shell [url]...",
		Short: "Grünerator desktop shell",
		Long: `Grünerator desktop shell runs the window lifecycle, menu, tray, deep links
and update checks of the Grünerator desktop app.

A second launch hands its arguments to the running instance and exits.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, os.Args[1:])
		},
	}

	root.PersistentFlags().StringVarP(&opts.configFile, "config", "c", defaultConfigPath(), "config file path")
	root.Flags().BoolVar(&opts.minimized, "minimized", false, "start with the main window hidden")
	root.Flags().BoolVar(&opts.noTray, "no-tray", false, "do not create a tray icon")

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.Full())
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.DefaultShellConfig()
			if err := config.LoadAndValidate(opts.configFile, &cfg); err != nil {
				return fmt.Errorf("configuration invalid: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Configuration is valid")
			return nil
		},
	})

	root.AddCommand(newConfigCmd(opts))

	root.AddCommand(&cobra.Command{
		Use:   "open-url <url>",
		Short: "Open a deep link in the running instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return forward(cmd, opts, args)
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "activate",
		Short: "Bring the running instance to front",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return forward(cmd, opts, nil)
		},
	})

	root.AddCommand(ctl.NewCommands(func() (string, string, error) {
		cfg, err := config.LoadOrDefault(opts.configFile)
		if err != nil {
			return "", "", err
		}
		socket, err := cfg.SocketPath()
		return socket, cfg.API.Token, err
	}))

	return root
}

func newConfigCmd(opts *rootOptions) *cobra.Command {
	var output string
	var force bool

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management commands",
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a commented configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				output = opts.configFile
			}
			if !force {
				if _, err := os.Stat(output); err == nil {
					return fmt.Errorf("file %s already exists (use --force to overwrite)", output)
				}
			}
			if err := os.MkdirAll(filepath.Dir(output), 0700); err != nil {
				return fmt.Errorf("create config directory: %w", err)
			}
			if err := os.WriteFile(output, []byte(config.DefaultShellConfigTemplate), 0600); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Generated configuration: %s\n", output)
			return nil
		},
	}
	initCmd.Flags().StringVarP(&output, "output", "o", "", "output file path (default: --config)")
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite existing file")

	setCmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one setting, e.g. startup.splash_timeout 5s",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Set(opts.configFile, args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", args[0], args[1])
			return nil
		},
	}

	configCmd.AddCommand(initCmd, setCmd)
	return configCmd
}

// forward sends an activation to the running instance the way a second
// launch does.
func forward(cmd *cobra.Command, opts *rootOptions, args []string) error {
	cfg, err := config.LoadOrDefault(opts.configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	socket, err := cfg.SocketPath()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Instance.ForwardTimeout.Duration())
	defer cancel()

	cwd, _ := os.Getwd()
	if err := instance.NewSocketForwarder(socket).Forward(ctx, instance.NewActivation(args, cwd)); err != nil {
		return fmt.Errorf("no running instance reachable at %s: %w", socket, err)
	}
	return nil
}

func run(ctx context.Context, opts *rootOptions, argv []string) error {
	cfg, err := config.LoadOrDefault(opts.configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := logging.Setup(cfg.Logging); err != nil {
		return fmt.Errorf("setup logging: %w", err)
	}
	defer logging.Close()

	launch, primary, err := shell.Prepare(ctx, cfg, argv)
	if err != nil {
		return err
	}
	if !primary {
		logging.Info("handed launch to running instance")
		return nil
	}
	defer launch.Release()

	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var current atomic.Pointer[tray.Tray]

	windows := memwin.NewRegistry(
		memwin.New(window.Splash, true),
		memwin.New(window.Main, false),
	)
	sh, err := shell.New(shell.Options{
		Config:    cfg,
		Windows:   windows,
		Minimized: opts.minimized,
		Exit:      exitNow(launch.Release, os.Exit),
		OnUpdateAvailable: func(updater.Result) {
			if t := current.Load(); t != nil {
				t.SetStatus(tray.StatusUpdateAvailable)
			}
		},
	})
	if err != nil {
		return fmt.Errorf("create shell: %w", err)
	}

	if err := sh.Start(ctx, launch.SocketPath); err != nil {
		return fmt.Errorf("start shell: %w", err)
	}
	sh.OpenURLs(launch.URLs)

	if _, err := os.Stat(opts.configFile); err == nil {
		w, err := config.NewWatcher(opts.configFile, sh.ApplyConfig)
		if err != nil {
			logging.Warn("config watcher unavailable", "error", err)
		} else {
			defer w.Close()
		}
	}

	if cfg.Tray.Enabled && !opts.noTray {
		t := tray.New(tray.Config{
			Title:      cfg.App.Name,
			Tooltip:    cfg.Tray.Tooltip,
			Labels:     tray.DefaultLabels(),
			Controller: sh.TrayController(),
		})
		current.Store(t)
		// The tray loop owns the main thread until ctx ends.
		t.Run(ctx)
	} else {
		<-ctx.Done()
	}

	logging.Info("shutting down")
	stopCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	return sh.Stop(stopCtx)
}

// exitNow is the tray quit path. It skips window and server teardown: the
// instance lock is released and the process ends. A stale control socket is
// removed by the next primary's Listen.
func exitNow(release func(), exit func(code int)) func(code int) {
	return func(code int) {
		release()
		exit(code)
	}
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "shell.yaml"
	}
	return filepath.Join(dir, config.DefaultShellConfig().App.Identifier, "shell.yaml")
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
