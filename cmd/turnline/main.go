package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"turnline/internal/app"
	"turnline/internal/applog"
	"turnline/internal/config"
	"turnline/internal/history"
	"turnline/internal/keyboard"
	"turnline/internal/output"
	"turnline/internal/registry"
	"turnline/internal/screen"
	"turnline/internal/transcript"
)

func main() {
	os.Exit(run())
}

func run() int {
	options, rest := extractOptions(os.Args[1:])

	var (
		header       string
		prompt       string
		skipWelcome  bool
		configPath   string
		cwd          string
		logLevel     string
		replay       string
		commandsPath string
	)
	fs := flag.NewFlagSet("turnline", flag.ExitOnError)
	fs.StringVar(&header, "header", "", "Header text shown above the input box")
	fs.StringVar(&prompt, "prompt", "", "Prompt label shown to the left of the cursor")
	fs.BoolVar(&skipWelcome, "skip-welcome", false, "Skip the first-run welcome banner")
	fs.StringVar(&configPath, "config", "", "Path to config JSON/JSONC")
	fs.StringVar(&cwd, "cwd", "", "Working directory override")
	fs.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (default warn)")
	fs.StringVar(&replay, "replay", "", "Dump the most recent transcript entries to stderr and exit (any non-empty value)")
	fs.StringVar(&commandsPath, "commands", "", "Path to a JSON file overriding/extending the slash-command registry")
	fs.Parse(rest)

	cfg := config.Load(configPath)
	if strings.TrimSpace(cwd) != "" {
		if err := os.Chdir(cwd); err != nil {
			fmt.Fprintf(os.Stderr, "resolve cwd failed: %v\n", err)
			return app.ExitTerminalUnavailable
		}
	}

	level := resolveLogLevel(logLevel)
	logger := applog.New(os.Stderr, level)

	base := strings.TrimSpace(cfg.StorageBaseDir)
	if base == "" {
		base = defaultStorageBaseDir()
	}
	tr, err := transcript.Open(filepath.Join(base, "transcript.db"))
	if err != nil {
		logger.ErrorErr("open transcript failed, continuing without one", err)
		tr = nil
	}
	defer tr.Close()

	if replay != "" {
		return runReplay(tr, logger)
	}

	hist := history.Open(filepath.Join(base, "history"), cfg.HistoryMaxEntries)

	reg, err := registry.Load(commandsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load command registry failed: %v\n", err)
		return app.ExitTerminalUnavailable
	}

	sc, err := screen.New(os.Stderr, true)
	if err != nil {
		fmt.Fprintln(os.Stderr, "terminal unavailable")
		return app.ExitTerminalUnavailable
	}
	kb, err := keyboard.NewReader()
	if err != nil {
		fmt.Fprintln(os.Stderr, "terminal unavailable")
		return app.ExitTerminalUnavailable
	}
	defer kb.Close()

	a := app.New(cfg, logger, sc, kb, hist, tr, reg, os.Stdout, os.Stderr).
		WithHeader(header).
		WithPrompt(prompt).
		WithOptions(options).
		WithSkipWelcome(skipWelcome)
	return a.Run()
}

func runReplay(tr *transcript.Log, logger *applog.Logger) int {
	entries, err := tr.Recent(1000)
	if err != nil {
		logger.ErrorErr("replay query failed", err)
		return 1
	}
	for _, e := range entries {
		output.WriteUILine(os.Stderr, fmt.Sprintf("[%s] %s", e.Timestamp.Format("15:04:05"), e.Text))
	}
	return 0
}

// extractOptions splits "--options <a> <b> ..." out of args before the
// remainder is handed to the flag package: flag's single-value StringVar
// has no native way to consume a variable-length run of positional
// values, so this scans for the flag and takes every following argument
// up to the next one that looks like a flag.
func extractOptions(args []string) (options []string, rest []string) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg != "--options" && arg != "-options" {
			rest = append(rest, arg)
			continue
		}
		i++
		for i < len(args) && !strings.HasPrefix(args[i], "-") {
			options = append(options, args[i])
			i++
		}
		i--
	}
	return options, rest
}

func resolveLogLevel(flagValue string) applog.Level {
	v := strings.TrimSpace(flagValue)
	if v == "" {
		v = strings.TrimSpace(os.Getenv("TURNLINE_LOG_LEVEL"))
	}
	switch strings.ToLower(v) {
	case "debug":
		return applog.LevelDebug
	case "info":
		return applog.LevelInfo
	case "error":
		return applog.LevelError
	default:
		return applog.LevelWarn
	}
}

func defaultStorageBaseDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".turnline"
	}
	return filepath.Join(home, ".turnline")
}
