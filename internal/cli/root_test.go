package cli

import (
	"bytes"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskapi/internal/server"
	"taskapi/internal/store"
)

func startServer(t *testing.T) (string, *store.Store) {
	t.Helper()
	st := store.New()
	ts := httptest.NewServer(server.New(st, server.Options{}).Handler())
	t.Cleanup(ts.Close)
	return ts.URL, st
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "taskapi", cmd.Use)
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	for _, name := range []string{"serve", "list", "add", "export"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	cfg := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, cfg)
	assert.Equal(t, "c", cfg.Shorthand)

	verbose := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verbose)
	assert.Equal(t, "false", verbose.DefValue)
}

func TestServeFlags(t *testing.T) {
	cmd := NewRootCommand()
	serve, _, err := cmd.Find([]string{"serve"})
	require.NoError(t, err)

	addr := serve.Flags().Lookup("addr")
	require.NotNil(t, addr)
	assert.Equal(t, ":8080", addr.DefValue)
}

func TestServeRejectsBadConfig(t *testing.T) {
	_, err := run(t, "serve", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read config")
}

func TestAddAndList(t *testing.T) {
	url, st := startServer(t)

	out, err := run(t, "add", "--server", url, `{"id":1,"title":"Study Flask"}`)
	require.NoError(t, err)
	assert.Equal(t, `{"id":1,"title":"Study Flask"}`, strings.TrimSpace(out))
	assert.Equal(t, 1, st.Len())

	out, err = run(t, "list", "-s", url)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1,"title":"Study Flask"}]`, out)
}

func TestAddRejectsInvalidJSON(t *testing.T) {
	url, st := startServer(t)
	_, err := run(t, "add", "--server", url, `{oops`)
	assert.Error(t, err)
	assert.Equal(t, 0, st.Len())
}

func TestExportToFile(t *testing.T) {
	url, _ := startServer(t)
	_, err := run(t, "add", "-s", url, `{"id":1,"title":"Study Flask"}`)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "tasks.csv")
	out, err := run(t, "export", "-s", url, "--format", "csv", "--out", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported -> "+path)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(b), "index,id,title,task\n1,1,Study Flask,"))
}

func TestExportToStdout(t *testing.T) {
	url, _ := startServer(t)
	out, err := run(t, "export", "-s", url)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", out)
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	url, _ := startServer(t)
	_, err := run(t, "export", "-s", url, "-f", "xml")
	assert.ErrorContains(t, err, "invalid format")
}

func TestBaseURL(t *testing.T) {
	cases := map[string]string{
		":8080":          "http://localhost:8080",
		"0.0.0.0:9000":   "http://localhost:9000",
		"[::]:9000":      "http://localhost:9000",
		"127.0.0.1:7000": "http://127.0.0.1:7000",
		"[::1]:7000":     "http://[::1]:7000",
	}
	for addr, want := range cases {
		assert.Equal(t, want, baseURL(addr), addr)
	}
}

func TestListUsesConfigAddr(t *testing.T) {
	t.Setenv("TASKAPI_ADDR", "")
	t.Setenv("TASKAPI_LOG_LEVEL", "")
	url, _ := startServer(t)
	_, err := run(t, "add", "-s", url, `{"id":1}`)
	require.NoError(t, err)

	cfgPath := filepath.Join(t.TempDir(), "taskapi.yaml")
	addr := strings.TrimPrefix(url, "http://")
	require.NoError(t, os.WriteFile(cfgPath, []byte("addr: \""+addr+"\"\n"), 0o644))

	out, err := run(t, "list", "--config", cfgPath)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1}]`, out)
}

func TestClientCommandsRejectBadConfig(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.yaml")
	for _, args := range [][]string{
		{"list", "--config", missing},
		{"add", "--config", missing, `{"id":1}`},
		{"export", "--config", missing},
	} {
		_, err := run(t, args...)
		assert.ErrorContains(t, err, "read config", args[0])
	}
}
