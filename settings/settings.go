// Package settings loads host configuration for Python worker sessions
// from a file and converts it into worker options.
//
// Hosts typically keep a small per-workspace file (TOML, YAML, or JSON)
// describing which interpreter to use and how to build the module search
// path. Load parses it, WithDefaults fills the gaps, and SessionOptions
// hands the result to the worker package:
//
//	cfg, err := settings.Load("pybridge.toml")
//	if err != nil { ... }
//	session := worker.NewSession(cfg.SessionOptions()...)
//
// Watch re-reads the file when it changes, so hosts can apply settings
// edits to the next session they start without restarting themselves.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/mwagner82/pybridge/worker"
)

// Settings holds host configuration for a worker session.
type Settings struct {
	// PythonPath is the interpreter to spawn.
	// Default: "python3".
	PythonPath string `toml:"python_path" yaml:"python_path" json:"python_path"`

	// WorkerScript is the worker program the interpreter runs.
	// Required.
	WorkerScript string `toml:"worker_script" yaml:"worker_script" json:"worker_script"`

	// Args are extra arguments passed after the worker script.
	Args []string `toml:"args" yaml:"args" json:"args,omitempty"`

	// WorkspaceRoot is the worker's working directory and the base that
	// relative search-path entries resolve against. Default: the
	// directory containing the settings file.
	WorkspaceRoot string `toml:"workspace_root" yaml:"workspace_root" json:"workspace_root"`

	// BundledPath is the directory the host ships the worker's helper
	// modules in.
	BundledPath string `toml:"bundled_path" yaml:"bundled_path" json:"bundled_path"`

	// ExtraSearchPaths are additional module search-path entries.
	// Relative entries resolve against WorkspaceRoot.
	ExtraSearchPaths []string `toml:"extra_search_paths" yaml:"extra_search_paths" json:"extra_search_paths,omitempty"`

	// CaptureMainLocals controls whether run commands capture local
	// variables from the executed module's main scope.
	CaptureMainLocals bool `toml:"capture_main_locals" yaml:"capture_main_locals" json:"capture_main_locals"`

	// Env provides additional environment variables for the worker.
	Env map[string]string `toml:"env" yaml:"env" json:"env,omitempty"`
}

// Load reads and parses a settings file, choosing the format from the
// file extension (.toml, .yaml, .yml, or .json). Defaults are applied;
// Validate is left to the caller so partial files can still be
// inspected.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var s Settings
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if err := toml.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported settings format %q (want .toml, .yaml, .yml, or .json)", ext)
	}

	s.withDefaults(filepath.Dir(path))
	return &s, nil
}

// withDefaults fills unset fields. dir is the directory the settings
// file came from.
func (s *Settings) withDefaults(dir string) {
	if s.PythonPath == "" {
		s.PythonPath = "python3"
	}
	if s.WorkspaceRoot == "" {
		s.WorkspaceRoot = dir
	}
}

// Validate checks that the settings can start a session.
func (s *Settings) Validate() error {
	if s.PythonPath == "" {
		return fmt.Errorf("python_path is required")
	}
	if s.WorkerScript == "" {
		return fmt.Errorf("worker_script is required")
	}
	return nil
}

// SessionOptions converts the settings into worker options.
func (s *Settings) SessionOptions() []worker.Option {
	opts := []worker.Option{
		worker.WithPythonPath(s.PythonPath),
		worker.WithWorkerScript(s.WorkerScript),
		worker.WithWorkspaceRoot(s.WorkspaceRoot),
		worker.WithBundledPath(s.BundledPath),
		worker.WithExtraSearchPaths(s.ExtraSearchPaths),
		worker.WithCaptureMainLocals(s.CaptureMainLocals),
	}
	if len(s.Args) > 0 {
		opts = append(opts, worker.WithArgs(s.Args...))
	}
	if len(s.Env) > 0 {
		opts = append(opts, worker.WithEnv(s.Env))
	}
	return opts
}
