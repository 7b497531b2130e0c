package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/log"
	"github.com/honeycombio/otel-config-go/otelconfig"
	"github.com/urfave/cli/v2"

	"github.com/classkit/repogate"
	"github.com/classkit/repogate/exitcodes"
	"github.com/classkit/repogate/flags"
	"github.com/classkit/repogate/service"
)

var (
	Version   = "v0.1.0"
	GitCommit = ""
	GitDate   = ""
)

func main() {
	app := cli.NewApp()
	app.Version = fmt.Sprintf("%s-%s-%s", Version, GitCommit, GitDate)
	app.Name = "repogate"
	app.Usage = "Repository Verification Harness"
	app.Description = "repogate runs an ordered list of checks against a repository and its build toolchain"
	app.Flags = flags.Flags
	app.Action = run
	app.ExitErrHandler = func(c *cli.Context, err error) {
		var exitErr cli.ExitCoder
		if errors.As(err, &exitErr) {
			cli.HandleExitCoder(exitErr)
		} else if err != nil {
			if repogate.IsRuntimeError(err) {
				cli.HandleExitCoder(cli.Exit(err.Error(), exitcodes.RuntimeErr))
			} else if repogate.IsCheckFailureError(err) {
				// The summary has already been printed; exit quietly with 1.
				cli.HandleExitCoder(cli.Exit("", exitcodes.CheckFailure))
			} else {
				cli.HandleExitCoder(cli.Exit(err.Error(), exitcodes.CheckFailure))
			}
		}
	}

	// Start telemetry
	shutdown, err := otelconfig.ConfigureOpenTelemetry(
		otelconfig.WithServiceName(app.Name),
		otelconfig.WithServiceVersion(app.Version),
	)
	if err != nil {
		log.Crit("Failed to setup open telemetry", "message", err)
	}
	defer shutdown()

	// Start health and metrics servers
	ctx := context.Background()
	svc := service.New()
	svc.Start(ctx)
	defer svc.Shutdown()

	if err := app.RunContext(ctx, os.Args); err != nil {
		os.Exit(exitcodes.RuntimeErr)
	}
}

func run(ctx *cli.Context) error {
	logger := newLogger(ctx.String(flags.LogLevel.Name))
	log.SetDefault(logger)

	cfg, err := repogate.NewConfig(ctx, logger)
	if err != nil {
		return repogate.NewRuntimeError(fmt.Errorf("failed to create config: %w", err))
	}
	logger.Debug("Config", "config", cfg)

	harness, err := repogate.New(cfg)
	if err != nil {
		return repogate.NewRuntimeError(fmt.Errorf("failed to create harness: %w", err))
	}

	return harness.Run(ctx.Context)
}

func newLogger(level string) log.Logger {
	lvl, err := log.LvlFromString(strings.ToLower(level))
	if err != nil {
		lvl = log.LvlInfo
	}
	return log.NewLogger(log.NewTerminalHandlerWithLevel(os.Stderr, log.FromLegacyLevel(int(lvl)), true))
}
