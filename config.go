package repogate

import (
	"fmt"
	"path/filepath"

	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"

	"github.com/classkit/repogate/flags"
)

// Config holds the application configuration
type Config struct {
	WorkDir     string // Directory checks and builds execute in
	CheckConfig string // Path to the YAML check list
	LogDir      string // Directory to store transcripts; empty disables capture
	MakeBinary  string // Binary used by make checks
	EchoOutput  bool   // Echo subprocess output to the console
	Log         log.Logger
}

// NewConfig creates a new Config from cli context
func NewConfig(ctx *cli.Context, log log.Logger) (*Config, error) {
	if err := flags.CheckRequired(ctx); err != nil {
		return nil, fmt.Errorf("missing required flags: %w", err)
	}

	checkConfig := ctx.String(flags.CheckConfig.Name)
	absCheckConfig, err := filepath.Abs(checkConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path for check config '%s': %w", checkConfig, err)
	}

	workDir := ctx.String(flags.WorkDir.Name)
	absWorkDir, err := filepath.Abs(workDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path for work directory '%s': %w", workDir, err)
	}

	logDir := ctx.String(flags.LogDir.Name)
	if logDir != "" {
		logDir, err = filepath.Abs(logDir)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve absolute path for log directory '%s': %w", logDir, err)
		}
	}

	return &Config{
		WorkDir:     absWorkDir,
		CheckConfig: absCheckConfig,
		LogDir:      logDir,
		MakeBinary:  ctx.String(flags.MakeBinary.Name),
		EchoOutput:  !ctx.Bool(flags.Quiet.Name),
		Log:         log,
	}, nil
}
