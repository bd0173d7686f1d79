// Package cmdtest holds helpers shared by the command tests.
package cmdtest

import (
	"testing"

	"github.com/stretchr/testify/require"

	"fjacquet/pfma/cmd/root"
	"fjacquet/pfma/internal/config"
	"fjacquet/pfma/internal/container"
	"fjacquet/pfma/internal/logging"
)

// Config returns a valid configuration on the memory backend.
func Config() *config.Config {
	cfg := &config.Config{}
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.Storage.Backend = "memory"
	cfg.Display.CurrencySymbol = "₹"
	cfg.Display.Timezone = "UTC"
	cfg.Analytics.DefaultWindow = "all"
	cfg.CSV.Delimiter = ","
	return cfg
}

// NewContainer installs an in-memory container for the duration of t.
func NewContainer(t *testing.T) *container.Container {
	t.Helper()
	return NewContainerWithConfig(t, Config())
}

// NewContainerWithConfig installs a container built from cfg for the
// duration of t.
func NewContainerWithConfig(t *testing.T, cfg *config.Config) *container.Container {
	t.Helper()
	c, err := container.NewContainerWithLogger(cfg, logging.NewMockLogger())
	require.NoError(t, err)
	root.SetContainer(c)
	t.Cleanup(func() {
		root.SetContainer(nil)
		_ = c.Close()
	})
	return c
}

// WithFormat sets the global --format value for the duration of t.
func WithFormat(t *testing.T, format string) {
	t.Helper()
	original := root.Flags.Format
	root.Flags.Format = format
	t.Cleanup(func() { root.Flags.Format = original })
}
