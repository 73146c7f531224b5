package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/nguyentantai21042004/meeting-secretary/internal/backend"
	"github.com/nguyentantai21042004/meeting-secretary/internal/config"
	"github.com/nguyentantai21042004/meeting-secretary/internal/controller"
	"github.com/nguyentantai21042004/meeting-secretary/internal/export"
	"github.com/nguyentantai21042004/meeting-secretary/internal/logger"
	"github.com/nguyentantai21042004/meeting-secretary/internal/processor"
	"github.com/nguyentantai21042004/meeting-secretary/internal/tui"
	"github.com/nguyentantai21042004/meeting-secretary/internal/watcher"
	"github.com/nguyentantai21042004/meeting-secretary/pkg/executor"
)

const usage = `usage: secretary [-config FILE] <command>

commands:
  start                       start recording on the backend
  stop                        stop recording and show the saved audio path
  run [-export F]             transcribe (and summarize) the last recording
  run-file [-export F] FILE   upload FILE for transcription
  tui                         interactive terminal UI
  watch                       upload every new recording dropped into the inbox

Flags go before FILE.
`

// errRendered means the failure was already shown as the status line.
var errRendered = errors.New("action failed")

func main() {
	configPath := flag.String("config", "config.yaml", "Configuration file path")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, flag.Arg(0), flag.Args()[1:]); err != nil {
		if !errors.Is(err, context.Canceled) && !errors.Is(err, errRendered) {
			fmt.Fprintln(os.Stderr, controller.StatusText(err))
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, command string, args []string) error {
	// The TUI owns the terminal, so its logs go to a file or nowhere.
	var log logger.Logger
	switch {
	case cfg.Logging.File != "":
		l, closer, err := logger.NewFile(cfg.Logging.Level, cfg.Logging.File)
		if err != nil {
			return err
		}
		defer closer.Close()
		log = l
	case command == "tui":
		log = logger.NewWithOutput(cfg.Logging.Level, io.Discard)
	case command == "watch":
		log = logger.NewWithOutput(cfg.Logging.Level, os.Stderr)
	default:
		log = logger.NewWithOutput(cliLogLevel(cfg.Logging.Level), os.Stderr)
	}

	client, err := backend.New(cfg.Backend.BaseURL, time.Duration(cfg.Backend.TimeoutSeconds)*time.Second, log)
	if err != nil {
		return fmt.Errorf("create backend client: %w", err)
	}

	switch command {
	case "start", "stop", "run", "run-file":
		return runOnce(ctx, cfg, client, log, command, args)
	case "tui":
		regions := controller.NewRegions()
		ctrl := controller.New(client, regions, log, controller.Options{Summarize: cfg.Backend.Summarize})
		return tui.Run(ctx, ctrl, regions, cfg.Backend.Summarize)
	case "watch":
		return runWatch(ctx, cfg, client, log)
	default:
		return fmt.Errorf("unknown command: %s", command)
	}
}

// cliLogLevel keeps one-shot commands quiet on stderr, where the status lines go.
// Only an explicit debug or error level is honored.
func cliLogLevel(level string) string {
	switch strings.ToLower(level) {
	case "debug", "error":
		return strings.ToLower(level)
	default:
		return "warn"
	}
}

// parseOnceArgs reads the flags of a one-shot command and its FILE operand.
// Anything left after the operand is rejected instead of silently dropped.
func parseOnceArgs(command string, args []string) (file, exportPath string, err error) {
	fs := flag.NewFlagSet(command, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	exportFlag := fs.String("export", "", "Write transcript and summary to this .docx file")
	if err := fs.Parse(args); err != nil {
		return "", "", fmt.Errorf("%s: %w", command, err)
	}

	want := 0
	if command == "run-file" {
		want = 1
	}
	if fs.NArg() > want {
		return "", "", fmt.Errorf("%s: unexpected arguments %q (flags go before FILE)", command, fs.Args()[want:])
	}
	if *exportFlag != "" && command != "run" && command != "run-file" {
		return "", "", fmt.Errorf("%s: -export is only valid for run and run-file", command)
	}
	return fs.Arg(0), *exportFlag, nil
}

// runOnce performs a single controller action and prints the resulting regions.
func runOnce(ctx context.Context, cfg *config.Config, client backend.Client, log logger.Logger, command string, args []string) error {
	file, exportPath, err := parseOnceArgs(command, args)
	if err != nil {
		return err
	}

	regions := controller.NewRegions()
	regions.OnChange(func(region controller.Region, text string) {
		if region == controller.RegionStatus {
			fmt.Fprintln(os.Stderr, text)
		}
	})

	ctrl := controller.New(client, regions, log, controller.Options{Summarize: cfg.Backend.Summarize})

	switch command {
	case "start":
		err = ctrl.Start(ctx)
	case "stop":
		err = ctrl.Stop(ctx)
	case "run":
		err = ctrl.Run(ctx)
	case "run-file":
		err = ctrl.RunFile(ctx, file)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", errRendered, err)
	}

	snap := regions.Snapshot()
	if snap.Summary != "" {
		fmt.Printf("== Summary ==\n%s\n\n== Transcript ==\n", strings.TrimSpace(snap.Summary))
	}
	if snap.Transcript != "" {
		fmt.Println(snap.Transcript)
	}

	if exportPath != "" {
		title := strings.TrimSuffix(filepath.Base(exportPath), filepath.Ext(exportPath))
		doc := export.Document{Title: title, Transcript: snap.Transcript, Summary: snap.Summary}
		if err := export.WriteDocx(doc, exportPath); err != nil {
			return fmt.Errorf("export: %w", err)
		}
		log.Info(ctx, "Exported %s", exportPath)
	}
	return nil
}

// runWatch uploads every new recording that lands in the inbox until ctx is done.
func runWatch(ctx context.Context, cfg *config.Config, client backend.Client, log logger.Logger) error {
	if err := ensureDirectories(cfg); err != nil {
		return err
	}

	proc := processor.New(cfg, client, executor.New(), log)

	w, err := watcher.New(cfg.Paths.Inbox, proc.Process, processor.IsMedia, log, cfg.Performance.MaxConcurrent)
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Stop()

	log.Info(ctx, "Backend: %s", cfg.Backend.BaseURL)
	log.Info(ctx, "Inbox: %s -> Output: %s", cfg.Paths.Inbox, cfg.Paths.Output)
	log.Info(ctx, "Press Ctrl+C to stop")

	err = w.Start(ctx)
	if errors.Is(err, context.Canceled) {
		log.Info(ctx, "Watcher stopped")
		return nil
	}
	return err
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Inbox,
		cfg.Paths.Output,
		cfg.Paths.Archived,
		cfg.Paths.Temp,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
