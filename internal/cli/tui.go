package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"hackerstories/internal/config"
	"hackerstories/internal/eventbus"
	"hackerstories/internal/fetch"
	"hackerstories/internal/query"
	"hackerstories/internal/store"
	"hackerstories/internal/ui"
)

// forwardedEvents reach the UI as status messages
var forwardedEvents = []eventbus.EventType{
	eventbus.EventError,
	eventbus.EventFetchDropped,
	eventbus.EventFetchFailed,
}

func runTUI(cmd *cobra.Command, v *viper.Viper, version, initialTerm string) error {
	cs, cfg, err := loadConfig(cmd, v)
	if err != nil {
		return err
	}
	if created, err := config.EnsureFile(cs); err != nil {
		fmt.Fprintf(os.Stderr, "Could not write default config: %v\n", err)
	} else if created {
		fmt.Fprintf(os.Stderr, "Created config file: %s\n", cs.Path())
	}

	logger, logCloser := openLog(cfg)
	defer logCloser.Close()
	logger.Info("starting", "version", version, "config", cs.Path(), "store", cfg.Store.Backend)

	// Create context for graceful shutdown
	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	kv, err := store.Open(cfg.Store.Backend, cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Store.Backend, err)
	}
	defer kv.Close()

	bus := eventbus.New(logger)
	defer bus.Close()
	defer eventbus.LogEvents(bus, logger)()

	orch, err := fetch.New(fetch.Options{
		Fetcher:     newSearchClient(cfg, version, logger),
		Term:        store.NewSemiPersistent(kv, cfg.Store.Key, cfg.Store.DefaultTerm, logger),
		Builder:     query.New(cfg.API.BaseURL),
		Bus:         bus,
		Logger:      logger,
		RecentLimit: cfg.UI.RecentLimit,
		InitialTerm: initialTerm,
	})
	if err != nil {
		return err
	}

	model := ui.NewModel(ctx, orch, ui.Options{Logger: logger})

	var programOpts []tea.ProgramOption
	if cfg.UI.AltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	programOpts = append(programOpts, tea.WithContext(ctx))
	p := tea.NewProgram(model, programOpts...)
	model.SetProgram(p)

	// Set up event forwarding to UI
	eventChan := make(chan eventbus.DomainEvent, 100)
	for _, eventType := range forwardedEvents {
		unsubscribe := bus.Subscribe(eventType, func(e eventbus.DomainEvent) {
			select {
			case eventChan <- e:
			default:
				logger.Warn("event channel full, dropping event", "event", e.Type())
			}
		})
		defer unsubscribe()
	}
	go func() {
		for {
			select {
			case event := <-eventChan:
				p.Send(ui.EventMsg{Event: event})
			case <-ctx.Done():
				return
			}
		}
	}()

	_, err = p.Run()
	interrupted := ctx.Err() != nil
	cancel()
	// A signal stops the program through ctx; that is a normal exit
	if err != nil && !(interrupted && errors.Is(err, tea.ErrProgramKilled)) {
		return fmt.Errorf("error running program: %w", err)
	}
	logger.Info("exiting")
	return nil
}
