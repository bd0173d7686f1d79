package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"fjacquet/pfma/cmd/add"
	"fjacquet/pfma/cmd/calc"
	"fjacquet/pfma/cmd/categories"
	"fjacquet/pfma/cmd/charts"
	"fjacquet/pfma/cmd/export"
	"fjacquet/pfma/cmd/reset"
	"fjacquet/pfma/cmd/root"
	"fjacquet/pfma/cmd/shortcuts"
	"fjacquet/pfma/cmd/summary"
	"fjacquet/pfma/cmd/transactions"
	"fjacquet/pfma/internal/config"
	"fjacquet/pfma/internal/fileutils"
	"fjacquet/pfma/internal/logging"
)

func init() {
	// 1. Load environment variables silently first (no logging yet)
	loadEnvSilently()

	// 2. Set the level every logger starts with until the config is read
	logging.SetAllLogLevels(configureLogLevelDirectly())

	// 3. Initialize root command
	root.Init()

	// 4. Add all subcommands
	root.Cmd.AddCommand(add.Cmd)
	root.Cmd.AddCommand(transactions.Cmd)
	root.Cmd.AddCommand(categories.Cmd)
	root.Cmd.AddCommand(charts.Cmd)
	root.Cmd.AddCommand(summary.Cmd)
	root.Cmd.AddCommand(shortcuts.Cmd)
	root.Cmd.AddCommand(calc.Cmd)
	root.Cmd.AddCommand(export.Cmd)
	root.Cmd.AddCommand(reset.Cmd)
}

// loadEnvSilently loads environment variables without logging anything
func loadEnvSilently() {
	for _, envFile := range []string{".env", filepath.Join("..", ".env")} {
		if fileutils.FileExists(envFile) {
			_ = godotenv.Load(envFile)
			return
		}
	}
}

// configureLogLevelDirectly reads PFMA_LOG_LEVEL and applies it to the
// global logrus logger before any logging happens.
func configureLogLevelDirectly() logrus.Level {
	logLevel := logging.ParseLevel(strings.ToLower(config.GetEnv(config.EnvPrefix+"_LOG_LEVEL", "info")))
	logrus.SetLevel(logLevel)
	return logLevel
}

func main() {
	err := root.Cmd.Execute()
	// os.Exit skips deferred calls, so storage is closed explicitly first.
	root.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
