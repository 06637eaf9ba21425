package settings

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwagner82/pybridge/worker"
)

func writeSettings(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Formats(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "toml",
			file: "pybridge.toml",
			content: `python_path = "/opt/python3.12/bin/python3"
worker_script = "/ext/python/worker.py"
extra_search_paths = ["lib", "/abs/x"]
capture_main_locals = true

[env]
PYTHONUNBUFFERED = "1"
`,
		},
		{
			name: "yaml",
			file: "pybridge.yaml",
			content: `python_path: /opt/python3.12/bin/python3
worker_script: /ext/python/worker.py
extra_search_paths: [lib, /abs/x]
capture_main_locals: true
env:
  PYTHONUNBUFFERED: "1"
`,
		},
		{
			name: "yml extension",
			file: "pybridge.yml",
			content: `python_path: /opt/python3.12/bin/python3
worker_script: /ext/python/worker.py
extra_search_paths: [lib, /abs/x]
capture_main_locals: true
env:
  PYTHONUNBUFFERED: "1"
`,
		},
		{
			name: "json",
			file: "pybridge.json",
			content: `{
  "python_path": "/opt/python3.12/bin/python3",
  "worker_script": "/ext/python/worker.py",
  "extra_search_paths": ["lib", "/abs/x"],
  "capture_main_locals": true,
  "env": {"PYTHONUNBUFFERED": "1"}
}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeSettings(t, tt.file, tt.content)

			s, err := Load(path)
			require.NoError(t, err)
			require.NoError(t, s.Validate())

			assert.Equal(t, "/opt/python3.12/bin/python3", s.PythonPath)
			assert.Equal(t, "/ext/python/worker.py", s.WorkerScript)
			assert.Equal(t, []string{"lib", "/abs/x"}, s.ExtraSearchPaths)
			assert.True(t, s.CaptureMainLocals)
			assert.Equal(t, map[string]string{"PYTHONUNBUFFERED": "1"}, s.Env)
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	path := writeSettings(t, "pybridge.toml", `worker_script = "/ext/python/worker.py"`)

	s, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "python3", s.PythonPath)
	assert.Equal(t, filepath.Dir(path), s.WorkspaceRoot,
		"workspace root defaults to the settings file's directory")
	assert.False(t, s.CaptureMainLocals)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
		assert.Error(t, err)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := writeSettings(t, "pybridge.ini", "worker_script=/w.py")
		_, err := Load(path)
		assert.ErrorContains(t, err, "unsupported settings format")
	})

	t.Run("malformed toml", func(t *testing.T) {
		path := writeSettings(t, "pybridge.toml", `worker_script = [broken`)
		_, err := Load(path)
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	s := &Settings{PythonPath: "python3"}
	assert.ErrorContains(t, s.Validate(), "worker_script")

	s.WorkerScript = "/ext/python/worker.py"
	assert.NoError(t, s.Validate())
}

func TestSessionOptions(t *testing.T) {
	path := writeSettings(t, "pybridge.toml", `python_path = "/bin/sh"
worker_script = "/ext/python/worker.py"
workspace_root = "/ws"
bundled_path = "/ext/python"
extra_search_paths = ["lib"]
capture_main_locals = true
`)

	s, err := Load(path)
	require.NoError(t, err)

	// The options must produce a working session; command shape tests
	// live in the worker package, so a constructed facade is enough.
	session := worker.NewSession(s.SessionOptions()...)
	require.NotNil(t, session)
	assert.False(t, session.IsRunning())
}

func TestWatch_DeliversUpdates(t *testing.T) {
	path := writeSettings(t, "pybridge.toml", `worker_script = "/v1.py"`)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := Watch(ctx, path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte(`worker_script = "/v2.py"`), 0o644))

	select {
	case s := <-ch:
		assert.Equal(t, "/v2.py", s.WorkerScript)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for settings update")
	}
}

func TestWatch_SkipsMalformedIntermediate(t *testing.T) {
	path := writeSettings(t, "pybridge.toml", `worker_script = "/v1.py"`)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := Watch(ctx, path)
	require.NoError(t, err)

	// Editors save in steps; a half-written file must not surface.
	require.NoError(t, os.WriteFile(path, []byte(`worker_script = [`), 0o644))
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte(`worker_script = "/v2.py"`), 0o644))

	select {
	case s := <-ch:
		assert.Equal(t, "/v2.py", s.WorkerScript)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for settings update")
	}
}

func TestWatch_RejectsBadInitialFile(t *testing.T) {
	path := writeSettings(t, "pybridge.toml", `worker_script = [broken`)

	_, err := Watch(context.Background(), path)
	assert.Error(t, err)
}

func TestWatch_ClosesOnCancel(t *testing.T) {
	path := writeSettings(t, "pybridge.toml", `worker_script = "/v1.py"`)

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := Watch(ctx, path)
	require.NoError(t, err)

	cancel()

	select {
	case _, ok := <-ch:
		assert.False(t, ok, "channel should close after cancel")
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for channel close")
	}
}
