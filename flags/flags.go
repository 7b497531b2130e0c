package flags

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

const EnvVarPrefix = "REPOGATE"

func prefixEnvVars(name string) []string {
	return []string{EnvVarPrefix + "_" + name}
}

var (
	WorkDir = &cli.StringFlag{
		Name:    "workdir",
		Value:   ".",
		EnvVars: prefixEnvVars("WORKDIR"),
		Usage:   "Directory in which checks and build commands execute",
	}
	CheckConfig = &cli.StringFlag{
		Name:     "checks",
		Value:    "",
		Required: true,
		EnvVars:  prefixEnvVars("CHECKS"),
		Usage:    "Path to the check list file (eg. 'checks.yaml')",
	}
	LogDir = &cli.StringFlag{
		Name:    "logdir",
		Value:   "logs",
		EnvVars: prefixEnvVars("LOGDIR"),
		Usage:   "Directory to store check transcripts; empty disables capture",
	}
	MakeBinary = &cli.StringFlag{
		Name:    "make-binary",
		Value:   "make",
		EnvVars: prefixEnvVars("MAKE_BINARY"),
		Usage:   "Path to the make binary used by build checks",
	}
	Quiet = &cli.BoolFlag{
		Name:    "quiet",
		Value:   false,
		EnvVars: prefixEnvVars("QUIET"),
		Usage:   "Do not echo subprocess output to the console",
	}
	LogLevel = &cli.StringFlag{
		Name:    "log-level",
		Value:   "info",
		EnvVars: prefixEnvVars("LOG_LEVEL"),
		Usage:   "Log level (debug, info, warn, error)",
	}
)

var requiredFlags = []cli.Flag{
	CheckConfig,
}

var optionalFlags = []cli.Flag{
	WorkDir,
	LogDir,
	MakeBinary,
	Quiet,
	LogLevel,
}

var Flags []cli.Flag

func init() {
	Flags = append(requiredFlags, optionalFlags...)
}

func CheckRequired(ctx *cli.Context) error {
	for _, f := range requiredFlags {
		if !ctx.IsSet(f.Names()[0]) {
			return fmt.Errorf("flag %s is required", f.Names()[0])
		}
	}
	return nil
}
