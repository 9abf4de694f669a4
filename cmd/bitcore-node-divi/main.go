package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/divi-project/bitcore-node-divi/internal/application"
	"github.com/divi-project/bitcore-node-divi/internal/config"
	"github.com/divi-project/bitcore-node-divi/internal/logging"
)

const (
	exitOK       = 0
	exitError    = 1
	exitNotFound = 2
)

var newLogger = logging.New

func main() {
	kingpinApp := kingpin.New("bitcore-node-divi", "Divi node operator tool - locates the bitcore-node-divi.json configuration")
	settingsFile := kingpinApp.Flag("settings", "Path to YAML settings file for this tool").String()
	output := kingpinApp.Flag("output", "Output format: json or yaml").String()
	logLevel := kingpinApp.Flag("log-level", "Log level: debug, info, warn or error").String()
	var homeFallbackSet bool
	homeFallback := kingpinApp.Flag("home-fallback", "Check the home data directory when no project config is found").IsSetByUser(&homeFallbackSet).Bool()
	homeDir := kingpinApp.Flag("home-dir", "Home data directory used by --home-fallback").String()

	findCmd := kingpinApp.Command("find-config", "Search the directory and its parents for bitcore-node-divi.json").Default()
	startDir := findCmd.Arg("dir", "Directory to start the search from (defaults to the working directory)").String()

	command := kingpin.MustParse(kingpinApp.Parse(os.Args[1:]))

	overrides := &config.CLIOverrides{
		SettingsFile: *settingsFile,
		StartDir:     startDir,
		Output:       output,
		LogLevel:     logLevel,
		HomeDir:      homeDir,
	}
	if homeFallbackSet {
		overrides.HomeFallback = homeFallback
	}

	switch command {
	case findCmd.FullCommand():
		os.Exit(findConfig(overrides, os.Stdout, os.Stderr))
	}
}

func findConfig(overrides *config.CLIOverrides, stdout, stderr io.Writer) int {
	cfg, err := config.Load(overrides)
	if err != nil {
		fmt.Fprintf(stderr, "failed to load configuration: %v\n", err)
		return exitError
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(stderr, "failed to initialize logger: %v\n", err)
		return exitError
	}
	defer func() {
		_ = logger.Sync()
	}()

	app, err := application.New(cfg, logger, stdout)
	if err != nil {
		logger.Error("failed to initialize application", zap.Error(err))
		return exitError
	}

	if err := app.Run(); err != nil {
		if errors.Is(err, application.ErrConfigNotFound) {
			fmt.Fprintf(stderr, "%v\n", err)
			fmt.Fprintln(stderr, "Create bitcore-node-divi.json in your project directory, or pass --home-fallback to use the home data directory.")
			return exitNotFound
		}
		logger.Error("failed to locate configuration", zap.Error(err))
		return exitError
	}
	return exitOK
}
