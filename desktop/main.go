// Package main is the entry point of the Grünerator desktop app. It hosts
// the web UI in a Wails webview and runs the shell core around it.
package main

import (
	"context"
	"embed"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/mac"
	"github.com/wailsapp/wails/v2/pkg/options/windows"

	"github.com/gruenerator/shell/internal/config"
	"github.com/gruenerator/shell/internal/logging"
	"github.com/gruenerator/shell/internal/shell"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("gruenerator", flag.ContinueOnError)
	configFile := fs.String("config", defaultConfigPath(), "config file path")
	minimized := fs.Bool("minimized", false, "start with the main window hidden")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.LoadOrDefault(*configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := logging.Setup(cfg.Logging); err != nil {
		return fmt.Errorf("setup logging: %w", err)
	}
	defer logging.Close()

	launch, primary, err := shell.Prepare(context.Background(), cfg, args)
	if err != nil {
		return err
	}
	if !primary {
		return nil
	}

	app, err := NewApp(cfg, launch, *minimized)
	if err != nil {
		launch.Release()
		return err
	}

	return wails.Run(&options.App{
		Title:     cfg.App.Name,
		Width:     1280,
		Height:    800,
		MinWidth:  800,
		MinHeight: 600,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		BackgroundColour: &options.RGBA{R: 255, G: 255, B: 255, A: 255},
		Menu:             buildMenu(app.shell.MenuTree(), app.dispatchMenu, app.quit),
		OnStartup:        app.startup,
		OnDomReady:       app.domReady,
		OnShutdown:       app.shutdown,
		Bind: []interface{}{
			app,
		},
		// The startup sequencer shows the window once the UI is ready.
		StartHidden: true,
		Debug: options.Debug{
			OpenInspectorOnStartup: cfg.Startup.Devtools,
		},
		Windows: &windows.Options{
			Theme: windows.SystemDefault,
		},
		Mac: &mac.Options{
			TitleBar:  mac.TitleBarDefault(),
			OnUrlOpen: app.openURL,
		},
	})
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "shell.yaml"
	}
	return filepath.Join(dir, config.DefaultShellConfig().App.Identifier, "shell.yaml")
}
