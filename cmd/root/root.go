// Package root contains the root command for the application
package root

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"fjacquet/pfma/internal/config"
	"fjacquet/pfma/internal/container"
	"fjacquet/pfma/internal/logging"
	"fjacquet/pfma/internal/validation"
)

// GlobalFlags holds the persistent flags shared by every command
type GlobalFlags struct {
	ConfigFile string
	LogLevel   string
	LogFormat  string
	Backend    string
	DataDir    string
	Format     string
}

// ErrNoContainer is returned when a command runs before the container was built.
var ErrNoContainer = errors.New("application container is not initialized")

var (
	// Log is the shared logger instance for commands
	Log *logrus.Logger = logging.GetLogger()

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "pfma",
		Short: "A personal finance CLI to record expenses and chart where the money goes.",
		Long: `pfma is a personal expense ledger for the terminal.
It records expenses against typed categories, keeps money shortcuts for
quick entry and charts spending by category, top categories or month.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: initContainer,
	}

	// Flags accessible to all commands
	Flags = GlobalFlags{}

	appContainer  *container.Container
	ownsContainer bool
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVar(&Flags.ConfigFile, "config", "", "Config file (default $HOME/.pfma/config.yaml)")
	Cmd.PersistentFlags().StringVar(&Flags.LogLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	Cmd.PersistentFlags().StringVar(&Flags.LogFormat, "log-format", "", "Log format (text or json)")
	Cmd.PersistentFlags().StringVar(&Flags.Backend, "backend", "", "Storage backend (file, sqlite or memory)")
	Cmd.PersistentFlags().StringVar(&Flags.DataDir, "data-dir", "", "Directory holding the ledger data")
	Cmd.PersistentFlags().StringVar(&Flags.Format, "format", "text", "Output format (text, json, yaml or csv)")
}

// SetContainer installs a prebuilt container. Commands run against it
// instead of one built from configuration; the caller keeps ownership.
func SetContainer(c *container.Container) {
	appContainer = c
	ownsContainer = false
}

// Close releases the container built from configuration. It must run after
// Execute returns, whether or not the command failed, since cobra skips
// post-run hooks on error. A container installed with SetContainer is left
// to its caller.
func Close() {
	if !ownsContainer || appContainer == nil {
		return
	}
	if err := appContainer.Close(); err != nil {
		Log.Warnf("Failed to close storage: %v", err)
	}
	appContainer = nil
	ownsContainer = false
}

// GetContainer returns the container for the running command.
func GetContainer() (*container.Container, error) {
	if appContainer == nil {
		return nil, ErrNoContainer
	}
	return appContainer, nil
}

// OutputFormat returns the validated --format value.
func OutputFormat() (string, error) {
	format := Flags.Format
	if format == "" {
		format = "text"
	}
	if err := validation.IsValidOutputFormat(format); err != nil {
		return "", err
	}
	return format, nil
}

func initContainer(cmd *cobra.Command, args []string) error {
	if appContainer != nil {
		return nil
	}

	cfg, err := config.InitializeConfig(Flags.ConfigFile, cmd.Flags())
	if err != nil {
		return err
	}

	Log = config.ConfigureLoggingFromConfig(cfg)
	logger := logging.NewLogrusAdapterFromLogger(Log)
	config.LoadEnv(logger)

	c, err := container.NewContainerWithLogger(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	appContainer = c
	ownsContainer = true
	return nil
}
