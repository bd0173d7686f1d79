// Package container provides dependency injection for the pfma application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"fmt"

	"fjacquet/pfma/internal/analytics"
	"fjacquet/pfma/internal/config"
	"fjacquet/pfma/internal/entry"
	"fjacquet/pfma/internal/kvstore"
	"fjacquet/pfma/internal/logging"
	"fjacquet/pfma/internal/models"
	"fjacquet/pfma/internal/report"
	"fjacquet/pfma/internal/store"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation: all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger logging.Logger
	config *config.Config

	kv        kvstore.Store
	ledger    *store.LedgerStore
	shortcuts *store.ShortcutStore
	engine    *analytics.Engine
	generator *report.Generator
	submitter *entry.Submitter

	unsubscribe func()
}

// NewContainer creates and wires all application dependencies using a
// logger built from the configuration.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	return NewContainerWithLogger(cfg, logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format))
}

// NewContainerWithLogger wires the dependencies around an existing logger.
func NewContainerWithLogger(cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}

	kv, err := kvstore.Open(cfg.StorageOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage: %w", cfg.Storage.Backend, err)
	}

	ledger := store.NewLedgerStore(kv, logger)
	unsubscribe := ledger.Subscribe(func(snap models.Snapshot) {
		logger.Debug("Ledger changed",
			logging.F("transactions", len(snap.Transactions)),
			logging.F("categories", len(snap.Categories)))
	})

	loc := cfg.Location()
	c := &Container{
		logger:      logger,
		config:      cfg,
		kv:          kv,
		ledger:      ledger,
		shortcuts:   store.NewShortcutStore(kv, logger),
		engine:      analytics.NewEngine(analytics.WithLocation(loc)),
		submitter:   entry.NewSubmitter(ledger, logger),
		unsubscribe: unsubscribe,
		generator: report.NewGenerator(report.Options{
			CurrencySymbol: cfg.Display.CurrencySymbol,
			Location:       loc,
			Delimiter:      cfg.Delimiter(),
		}, logger),
	}

	logger.Debug("Container initialized successfully",
		logging.F(logging.FieldBackend, cfg.Storage.Backend),
		logging.F(logging.FieldPath, cfg.Storage.Directory))

	return c, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetLedger returns the ledger store.
func (c *Container) GetLedger() *store.LedgerStore {
	return c.ledger
}

// GetShortcuts returns the money shortcut store.
func (c *Container) GetShortcuts() *store.ShortcutStore {
	return c.shortcuts
}

// GetEngine returns the analytics engine.
func (c *Container) GetEngine() *analytics.Engine {
	return c.engine
}

// GetGenerator returns the report generator.
func (c *Container) GetGenerator() *report.Generator {
	return c.generator
}

// GetSubmitter returns the expense form submitter.
func (c *Container) GetSubmitter() *entry.Submitter {
	return c.submitter
}

// Close detaches the ledger subscriber and releases the storage backend.
func (c *Container) Close() error {
	if c.unsubscribe != nil {
		c.unsubscribe()
	}
	if err := c.kv.Close(); err != nil {
		return fmt.Errorf("failed to close storage: %w", err)
	}
	c.logger.Debug("Container closed")
	return nil
}
