package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"ticketgrid/internal/auditlog"
	"ticketgrid/internal/config"
	"ticketgrid/internal/domain"
	"ticketgrid/internal/eventbus"
	"ticketgrid/internal/ui"
	"ticketgrid/internal/ui/handlers"
)

// options holds the command line flags
type options struct {
	configPath string
	interval   time.Duration
	columns    int
	hex        bool
	prepend    bool
	auditDB    string
	logFile    string
	dumpHead   bool
}

func newFlagSet(o *options) *pflag.FlagSet {
	fs := pflag.NewFlagSet("ticketgrid", pflag.ContinueOnError)
	fs.StringVarP(&o.configPath, "config", "c", "", "config file (default: user config dir)")
	fs.DurationVar(&o.interval, "interval", 0, "time between minted tickets")
	fs.IntVar(&o.columns, "columns", 0, "tickets per grid row")
	fs.BoolVar(&o.hex, "hex", false, "render uids in hex")
	fs.BoolVar(&o.prepend, "prepend", false, "insert new tickets at the front")
	fs.StringVar(&o.auditDB, "audit-db", "", "sqlite file for the ticket log, or :memory:")
	fs.StringVar(&o.logFile, "log-file", "", "diagnostic log file")
	fs.BoolVar(&o.dumpHead, "dump-head", false, "print the latest logged ticket and exit")
	return fs
}

// applyOverrides copies the flags the user set onto cfg
func applyOverrides(cfg *config.Config, fs *pflag.FlagSet, o options) error {
	if fs.Changed("interval") {
		cfg.Feed.Interval = config.Duration{Duration: o.interval}
	}
	if fs.Changed("columns") {
		cfg.Feed.Columns = o.columns
	}
	if fs.Changed("hex") {
		cfg.Feed.UIDFormat = domain.UIDDecimal
		if o.hex {
			cfg.Feed.UIDFormat = domain.UIDHex
		}
	}
	if fs.Changed("prepend") {
		cfg.Feed.Insert = domain.InsertAppend
		if o.prepend {
			cfg.Feed.Insert = domain.InsertPrepend
		}
	}
	if fs.Changed("audit-db") {
		cfg.Audit.Enabled = true
		cfg.Audit.Path = o.auditDB
	}
	if fs.Changed("log-file") {
		cfg.Log.File = o.logFile
	}
	return cfg.Validate()
}

// loadOrCreateConfig loads the config file, writing the defaults when it does not exist yet
func loadOrCreateConfig(svc config.ConfigService) (*config.Config, error) {
	if _, err := os.Stat(svc.Path()); errors.Is(err, os.ErrNotExist) {
		cfg := config.DefaultConfig()
		if err := svc.Save(cfg); err != nil {
			// not fatal, the defaults still work
			slog.Warn("could not write default config", "path", svc.Path(), "err", err)
		}
		return cfg, nil
	}
	return svc.Load()
}

// setupLogging points slog at the log file. The terminal belongs to the UI.
func setupLogging(path, level string) (io.Closer, error) {
	lvl, err := config.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("could not open log file: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: lvl})))
	return f, nil
}

// dumpHead prints the most recently logged ticket
func dumpHead(ctx context.Context, path string, w io.Writer) error {
	if path == auditlog.MemoryPath {
		return errors.New("--dump-head needs a file-backed audit log")
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("audit log %s: %w", path, err)
	}

	l, err := auditlog.Open(path)
	if err != nil {
		return err
	}
	defer l.Close()

	e, err := l.Head(ctx)
	if errors.Is(err, auditlog.ErrEmpty) {
		fmt.Fprintln(w, "no tickets logged")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%d %s %s\n", e.Seq, e.Timestamp, e.Data)
	return nil
}

func run(args []string) error {
	var o options
	fs := newFlagSet(&o)
	if err := fs.Parse(args); err != nil {
		return err
	}

	bus := eventbus.New()
	defer bus.Close()

	// subscribed before config load so ConfigLoaded and ConfigSaved are kept
	journal := eventbus.NewJournal(bus)
	defer journal.Close()

	configSvc := config.NewConfigServiceWithBus(o.configPath, bus)
	cfg, err := loadOrCreateConfig(configSvc)
	if err != nil {
		return err
	}
	if err := applyOverrides(cfg, fs, o); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	if o.dumpHead {
		return dumpHead(context.Background(), cfg.Audit.Path, os.Stdout)
	}

	logCloser, err := setupLogging(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer logCloser.Close()
	journal.Attach(slog.Default())
	slog.Info("starting", "config", configSvc.Path(), "interval", cfg.Feed.Interval.String(),
		"columns", cfg.Feed.Columns, "insert", cfg.Feed.Insert)

	var modelOpts []ui.Option
	if cfg.Audit.Enabled {
		auditLog, err := auditlog.Open(cfg.Audit.Path)
		if err != nil {
			return err
		}
		defer auditLog.Close()

		next, err := auditLog.NextSeq(context.Background())
		if err != nil {
			return err
		}
		recorder := auditlog.NewRecorder(auditLog, bus)
		// closed before the log so writes in flight finish first
		defer recorder.Close()
		slog.Info("audit log open", "path", auditLog.Path(), "run", recorder.RunID(), "first_seq", next)
		modelOpts = append(modelOpts, ui.WithFirstSeq(next), ui.WithRecorder(recorder))
	}

	model, err := ui.NewModel(bus, cfg, modelOpts...)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	for _, t := range handlers.Forwarded() {
		unsubscribe := bus.Subscribe(t, func(e eventbus.DomainEvent) {
			p.Send(ui.EventMsg{Event: e})
		})
		defer unsubscribe()
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	slog.Info("UI exited normally")
	return nil
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "ticketgrid: %v\n", err)
		os.Exit(1)
	}
}
