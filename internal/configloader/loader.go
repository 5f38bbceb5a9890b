// Package configloader resolves the effective configuration. It discovers
// user and project files, applies environment overrides and CLI flags, and
// validates the result.
package configloader

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/gomdblocks/pkg/config"
	"github.com/yaklabco/gomdblocks/pkg/fsutil"
)

// configFilePermissions is the file mode for configuration files.
const configFilePermissions = 0o644

// ConfigHeader starts every generated configuration file.
const ConfigHeader = `# gomdblocks configuration
# Values left out fall back to the built-in defaults.`

// ErrConfigExists is returned when writing over an existing file without force.
var ErrConfigExists = errors.New("config file already exists")

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to the current working directory if empty.
	WorkingDir string

	// ExplicitPath is a config file path from the --config flag.
	ExplicitPath string

	// IgnoreUserConfig skips the user-level configuration.
	IgnoreUserConfig bool

	// IgnoreProjectConfig skips the project-level configuration.
	IgnoreProjectConfig bool

	// IgnoreEnv skips GOMDBLOCKS_* environment variables.
	IgnoreEnv bool

	// CLIConfig contains values from CLI flags. These take highest precedence.
	CLIConfig *config.Config
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were loaded, in order.
	LoadedFrom []string
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (GOMDBLOCKS_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.gomdblocks.yml upward search)
//  5. User config ($XDG_CONFIG_HOME/gomdblocks/config.yaml)
//  6. Defaults
//
// The configuration is validated after each source is applied, so an error
// names the source that made it invalid.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	cfg := config.NewConfig()

	files := []struct {
		path string
		skip bool
	}{
		{paths.User, opts.IgnoreUserConfig},
		{paths.Project, opts.IgnoreProjectConfig},
		{paths.Explicit, false},
	}
	for _, file := range files {
		if file.path == "" || file.skip {
			continue
		}
		fileCfg, err := loadConfigFile(ctx, file.path)
		if err != nil {
			return nil, err
		}
		cfg = merge(cfg, fileCfg)
		if err := validate(cfg, file.path); err != nil {
			return nil, err
		}
		result.LoadedFrom = append(result.LoadedFrom, file.path)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
		if err := validate(cfg, "environment"); err != nil {
			return nil, err
		}
	}

	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
		if err := validate(cfg, "flags"); err != nil {
			return nil, err
		}
	}

	result.Config = cfg
	return result, nil
}

// loadConfigFile loads a configuration from a YAML file.
// Unknown keys are rejected so typos do not pass silently.
func loadConfigFile(ctx context.Context, path string) (*config.Config, error) {
	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	cfg := &config.Config{}
	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, &ValidationError{FilePath: path, Message: err.Error()}
	}

	return cfg, nil
}

// WriteConfig writes cfg as a commented YAML file. An existing file is
// kept unless force is set.
func WriteConfig(ctx context.Context, cfg *config.Config, path string, force bool) error {
	if !force && fileExists(path) {
		return fmt.Errorf("%w: %s", ErrConfigExists, path)
	}

	content, err := cfg.ToYAMLWithHeader(ConfigHeader)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := fsutil.WriteAtomic(ctx, path, content, configFilePermissions); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Confirm writes prompt to out and reads a yes/no answer from in.
// An empty answer selects def.
func Confirm(prompt string, def bool, in io.Reader, out io.Writer) (bool, error) {
	choices := " [y/N] "
	if def {
		choices = " [Y/n] "
	}
	if _, err := io.WriteString(out, prompt+choices); err != nil {
		return false, fmt.Errorf("write prompt: %w", err)
	}

	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read response: %w", err)
	}

	switch strings.TrimSpace(strings.ToLower(response)) {
	case "":
		return def, nil
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// IsInteractive returns true if stdin is a terminal.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
