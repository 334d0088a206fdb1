package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"github.com/csheth/quoteoftheday/internal/config"
	"github.com/csheth/quoteoftheday/internal/logger"
	"github.com/csheth/quoteoftheday/internal/quote"
	"github.com/csheth/quoteoftheday/internal/tui"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	baseURL := flag.String("base-url", "", "quote API root (overrides api.base_url)")
	uploadText := flag.String("upload", "", "upload this quote text while showing the quote of the day")
	env := flag.String("env", "", "logger environment: local, dev or prod (overrides env)")
	logFile := flag.String("log-file", "", "write logs to this file (overrides log.file)")
	timeout := flag.Duration("timeout", 0, "per-request timeout (overrides api.timeout)")
	noAltScreen := flag.Bool("no-alt-screen", false, "disable the alternate screen buffer")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Println("failed to load config:", err)
		os.Exit(1)
	}
	if *baseURL != "" {
		cfg.API.BaseURL = *baseURL
	}
	if *env != "" {
		cfg.Env = *env
	}
	if *logFile != "" {
		cfg.Log.File = *logFile
	}
	if *timeout > 0 {
		cfg.API.Timeout = *timeout
	}

	// The terminal belongs to the program, so logs only go to a file.
	log := zap.NewNop()
	if cfg.Log.File != "" {
		log, err = logger.New(cfg.Env, cfg.Log.File)
		if err != nil {
			fmt.Println("failed to init logger:", err)
			os.Exit(1)
		}
	}
	defer func() { _ = log.Sync() }()

	client, err := quote.New(quote.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
		Logger:  log,
	})
	if err != nil {
		fmt.Println("failed to init quote client:", err)
		os.Exit(1)
	}

	appConfig := tui.Config{
		Source: client,
		Logger: log,
	}
	if *uploadText != "" {
		appConfig.Sink = client
		appConfig.Draft = quote.TextDraft(*uploadText)
	}

	opts := []tea.ProgramOption{}
	// The alternate screen only makes sense on a real terminal.
	if !*noAltScreen && isatty.IsTerminal(os.Stdout.Fd()) {
		opts = append(opts, tea.WithAltScreen())
	}
	program := tea.NewProgram(tui.New(appConfig), opts...)

	log.Info("starting", zap.String("base_url", client.BaseURL()), zap.Bool("upload", appConfig.Draft != nil))
	if _, err := program.Run(); err != nil {
		log.Error("program error", zap.Error(err))
		fmt.Println("program error:", err)
		os.Exit(1)
	}
}
