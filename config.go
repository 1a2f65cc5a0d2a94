package funcmcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"gopkg.in/yaml.v3"
)

// StdioConfig customizes how a stdio server process is launched:
// environment variables, working directory, and extra arguments
// appended to the command line.
type StdioConfig struct {
	Name string            `json:"name,omitempty" yaml:"name,omitempty"`
	Env  map[string]string `json:"env,omitempty" yaml:"env,omitempty"`
	Cwd  string            `json:"cwd,omitempty" yaml:"cwd,omitempty"`
	Args []string          `json:"args,omitempty" yaml:"args,omitempty"`

	// LogFile, when set, receives the server's stderr.
	LogFile string `json:"logFile,omitempty" yaml:"logFile,omitempty"`
}

// apply rewrites a command line so the child process runs with the
// configured environment and working directory. env(1) carries both
// since the process is spawned by the transport layer.
func (c *StdioConfig) apply(command string, args []string) (string, []string) {
	if c == nil {
		return command, args
	}
	args = append(append([]string(nil), args...), c.Args...)
	if len(c.Env) > 0 || c.Cwd != "" {
		wrapped := make([]string, 0, len(c.Env)+len(args)+3)
		if c.Cwd != "" {
			wrapped = append(wrapped, "-C", c.Cwd)
		}
		for _, key := range sortedEnvKeys(c.Env) {
			wrapped = append(wrapped, key+"="+c.Env[key])
		}
		wrapped = append(wrapped, command)
		wrapped = append(wrapped, args...)
		command, args = "env", wrapped
	}
	if c.LogFile != "" {
		// Args never contain whitespace (command lines are split on
		// fields before reaching here), so plain joining is safe.
		script := strings.Join(append([]string{command}, args...), " ") + " 2>>" + c.LogFile
		command, args = "sh", []string{"-c", script}
	}
	return command, args
}

func sortedEnvKeys(env map[string]string) []string {
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// configDir returns the directory stdio configs are persisted under.
func configDir() string {
	if dir := os.Getenv("FUNCMCP_CONFIG_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return path.Join(home, ".config", "funcmcp", "configs")
}

// SaveStdioConfig persists cfg under its Name for later LoadStdioConfig
// calls. Configs are stored as JSON files in the user config directory.
func SaveStdioConfig(ctx context.Context, cfg *StdioConfig) error {
	if cfg == nil || cfg.Name == "" {
		return &ConfigError{Reason: "stdio config requires a name"}
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return &ConfigError{Reason: "cannot encode stdio config", Err: err}
	}
	fs := afs.New()
	url := path.Join(configDir(), cfg.Name+".json")
	if err := fs.Upload(ctx, url, file.DefaultFileOsMode, strings.NewReader(string(data))); err != nil {
		return &ConfigError{Reason: fmt.Sprintf("cannot write stdio config %q", cfg.Name), Err: err}
	}
	return nil
}

// LoadStdioConfig loads a previously saved config by name. A .yaml or
// .yml file with the same stem is accepted as a fallback.
func LoadStdioConfig(ctx context.Context, name string) (*StdioConfig, error) {
	if name == "" {
		return nil, &ConfigError{Reason: "stdio config name is empty"}
	}
	fs := afs.New()
	dir := configDir()
	for _, ext := range []string{".json", ".yaml", ".yml"} {
		url := path.Join(dir, name+ext)
		ok, _ := fs.Exists(ctx, url)
		if !ok {
			continue
		}
		data, err := fs.DownloadWithURL(ctx, url)
		if err != nil {
			return nil, &ConfigError{Reason: fmt.Sprintf("cannot read stdio config %q", name), Err: err}
		}
		cfg := &StdioConfig{}
		if ext == ".json" {
			err = json.Unmarshal(data, cfg)
		} else {
			err = yaml.Unmarshal(data, cfg)
		}
		if err != nil {
			return nil, &ConfigError{Reason: fmt.Sprintf("cannot decode stdio config %q", name), Err: err}
		}
		if cfg.Name == "" {
			cfg.Name = name
		}
		return cfg, nil
	}
	return nil, &ConfigError{Reason: fmt.Sprintf("stdio config %q not found", name)}
}
