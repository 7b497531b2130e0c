// Package registry loads the YAML check list for an assignment and builds
// the ordered set of checks the suite will run.
package registry

import (
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/log"
	"gopkg.in/yaml.v3"

	"github.com/classkit/repogate/checks"
	"github.com/classkit/repogate/types"
)

// Check type identifiers accepted in the YAML check list.
const (
	TypeFileExists      = "file_exists"
	TypeMake            = "make"
	TypeUntracked       = "untracked"
	TypeIgnored         = "ignored"
	TypeUncommitted     = "uncommitted"
	TypeMaxTrackedFiles = "max_tracked_files"
	TypeCommitLog       = "commit_log"
)

// Config contains registry configuration
type Config struct {
	Log             log.Logger
	CheckConfigFile string
	MakeBinary      string // Binary used by make checks; defaults to "make"
}

// Registry holds the ordered checks built from a check list file.
// Definition order is execution order and is preserved.
type Registry struct {
	config Config
	checks []checks.Check
}

// NewRegistry loads the check list and builds the checks.
func NewRegistry(cfg Config) (*Registry, error) {
	if cfg.CheckConfigFile == "" {
		return nil, fmt.Errorf("check config file is required")
	}
	if cfg.Log == nil {
		cfg.Log = log.New()
		cfg.Log.Error("No logger provided, using default")
	}

	r := &Registry{config: cfg}

	def, err := loadConfig(cfg.CheckConfigFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load check config: %w", err)
	}
	built, err := r.buildChecks(def)
	if err != nil {
		return nil, fmt.Errorf("failed to build checks: %w", err)
	}
	r.checks = built

	cfg.Log.Debug("Registry loaded", "len(checks)", len(r.checks))
	return r, nil
}

// Checks returns the checks in definition order.
func (r *Registry) Checks() []checks.Check {
	return r.checks
}

// GetConfig returns the registry configuration
func (r *Registry) GetConfig() Config {
	return r.config
}

// loadConfig reads and parses a check list file
func loadConfig(path string) (*types.SuiteDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var def types.SuiteDefinition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return &def, nil
}

// buildChecks converts definitions into checks. The abort_on_error default
// is false for every check type; a definition must opt in explicitly.
func (r *Registry) buildChecks(def *types.SuiteDefinition) ([]checks.Check, error) {
	if len(def.Checks) == 0 {
		return nil, fmt.Errorf("no checks defined")
	}

	built := make([]checks.Check, 0, len(def.Checks))
	for i, d := range def.Checks {
		c, err := r.buildCheck(d)
		if err != nil {
			return nil, fmt.Errorf("check %d (%s): %w", i, d.Type, err)
		}
		built = append(built, c)
	}
	return built, nil
}

func (r *Registry) buildCheck(d types.CheckDefinition) (checks.Check, error) {
	switch d.Type {
	case TypeFileExists:
		if len(d.Files) == 0 {
			return nil, fmt.Errorf("files list is required")
		}
		return checks.NewFileExists(d.Files, d.AbortOnError), nil
	case TypeMake:
		if d.Rule == "" {
			return nil, fmt.Errorf("rule is required")
		}
		return checks.NewMakeRule(d.Rule, r.config.MakeBinary, d.Transcript, d.AbortOnError), nil
	case TypeUntracked:
		return checks.NewUntracked(d.AbortOnError), nil
	case TypeIgnored:
		return checks.NewIgnored(d.Path, d.AbortOnError), nil
	case TypeUncommitted:
		return checks.NewUncommitted(d.AbortOnError), nil
	case TypeMaxTrackedFiles:
		if d.MaxFiles <= 0 {
			return nil, fmt.Errorf("max_files must be positive")
		}
		return checks.NewMaxTrackedFiles(d.Path, d.MaxFiles, d.AbortOnError), nil
	case TypeCommitLog:
		return checks.NewCommitLog(d.Path, d.AbortOnError), nil
	default:
		return nil, fmt.Errorf("unknown check type %q", d.Type)
	}
}
