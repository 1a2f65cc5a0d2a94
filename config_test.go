package funcmcp

import (
	"context"
	"os"
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStdioConfigApply(t *testing.T) {
	cfg := &StdioConfig{
		Env:  map[string]string{"API_KEY": "secret", "DEBUG": "1"},
		Cwd:  "/srv/app",
		Args: []string{"--verbose"},
	}

	command, args := cfg.apply("python", []string{"server.py"})

	assert.Equal(t, "env", command)
	assert.Equal(t, []string{"-C", "/srv/app", "API_KEY=secret", "DEBUG=1", "python", "server.py", "--verbose"}, args)
}

func TestStdioConfigApplyPassthrough(t *testing.T) {
	command, args := (*StdioConfig)(nil).apply("npx", []string{"server"})
	assert.Equal(t, "npx", command)
	assert.Equal(t, []string{"server"}, args)

	command, args = (&StdioConfig{Args: []string{"--flag"}}).apply("npx", []string{"server"})
	assert.Equal(t, "npx", command)
	assert.Equal(t, []string{"server", "--flag"}, args)
}

func TestStdioConfigApplyLogFile(t *testing.T) {
	cfg := &StdioConfig{LogFile: "/var/log/mcp.log"}

	command, args := cfg.apply("python", []string{"server.py"})

	assert.Equal(t, "sh", command)
	assert.Equal(t, []string{"-c", "python server.py 2>>/var/log/mcp.log"}, args)
}

func TestStdioConfigSaveLoad(t *testing.T) {
	t.Setenv("FUNCMCP_CONFIG_DIR", t.TempDir())
	ctx := context.Background()

	cfg := &StdioConfig{
		Name: "weather",
		Env:  map[string]string{"API_KEY": "secret"},
		Cwd:  "/srv/weather",
	}
	require.NoError(t, SaveStdioConfig(ctx, cfg))

	loaded, err := LoadStdioConfig(ctx, "weather")
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadStdioConfigYAMLFallback(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("FUNCMCP_CONFIG_DIR", dir)

	payload := "env:\n  API_KEY: secret\ncwd: /srv/app\n"
	require.NoError(t, os.WriteFile(path.Join(dir, "legacy.yaml"), []byte(payload), 0o644))

	cfg, err := LoadStdioConfig(context.Background(), "legacy")
	require.NoError(t, err)
	assert.Equal(t, "legacy", cfg.Name)
	assert.Equal(t, "secret", cfg.Env["API_KEY"])
	assert.Equal(t, "/srv/app", cfg.Cwd)
}

func TestLoadStdioConfigMissing(t *testing.T) {
	t.Setenv("FUNCMCP_CONFIG_DIR", t.TempDir())

	_, err := LoadStdioConfig(context.Background(), "nope")

	var cerr *ConfigError
	require.ErrorAs(t, err, &cerr)
}

func TestSaveStdioConfigRequiresName(t *testing.T) {
	err := SaveStdioConfig(context.Background(), &StdioConfig{})

	var cerr *ConfigError
	require.ErrorAs(t, err, &cerr)
}
