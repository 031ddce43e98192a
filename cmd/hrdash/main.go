package main

import (
	"fmt"
	"os"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/config"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/handler/cli"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config:", err)
		os.Exit(cli.ExitCommandError)
	}

	log := logger.New(os.Stderr, logger.Options{
		Level:   cfg.App.LogLevel,
		Format:  cfg.App.LogFormat,
		App:     "hrdash",
		Version: cfg.App.Version,
		Env:     cfg.App.Env,
	})

	app, err := cli.NewApp(cli.OptionsFromConfig(cfg, log))
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error starting dashboard:", err)
		os.Exit(cli.ExitFailure)
	}

	err = cli.NewRootCommand(app).Execute()
	app.Close()
	os.Exit(cli.GetExitCode(err))
}
