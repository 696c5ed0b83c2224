//go:build integration

package integration

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mortalnow/dan-s-bullshit/internal/adapters/auth"
	"github.com/mortalnow/dan-s-bullshit/internal/adapters/storage"
	"github.com/mortalnow/dan-s-bullshit/internal/domain"
	"github.com/mortalnow/dan-s-bullshit/internal/platform/config"
	"github.com/mortalnow/dan-s-bullshit/internal/ports"
)

// writeConfigDir populates a configs/ directory in dir with the given
// file contents, keyed by file name.
func writeConfigDir(t *testing.T, dir string, files map[string]string) {
	t.Helper()

	configDir := filepath.Join(dir, "configs")
	require.NoError(t, os.MkdirAll(configDir, 0o755))

	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(configDir, name), []byte(content), 0o600))
	}
}

// TestConfig_LoadPrecedence loads real YAML files from disk and
// verifies the documented layering: defaults, then base file, then
// profile file, then environment.
func TestConfig_LoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	writeConfigDir(t, dir, map[string]string{
		"base.yaml": `
server:
  port: 9090
auth:
  admin_password: from-base-file
log:
  level: info
`,
		"test.yaml": `
app:
  environment: test
auth:
  admin_password: from-profile-file
log:
  level: debug
`,
	})
	t.Chdir(dir)
	t.Setenv("APP_AUTH__ADMIN_PASSWORD", "from-environment")

	cfg, err := config.Load("test")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host, "untouched keys keep their defaults")
	assert.Equal(t, 9090, cfg.Server.Port, "base file overrides defaults")
	assert.Equal(t, "debug", cfg.Log.Level, "profile file overrides base")
	assert.Equal(t, "test", cfg.App.Environment)
	assert.Equal(t, "from-environment", cfg.Auth.AdminPassword, "environment overrides both files")

	assert.NoError(t, cfg.Validate())
}

// TestConfig_DefaultsRefuseToServe verifies that a bare default load
// fails validation: password mode without a password must not start.
func TestConfig_DefaultsRefuseToServe(t *testing.T) {
	t.Chdir(t.TempDir()) // no configs/ directory at all

	cfg, err := config.Load("")
	require.NoError(t, err, "loading without files is fine")

	assert.Equal(t, config.AuthModePassword, cfg.Auth.Mode)
	assert.Equal(t, config.DefaultServerPort, cfg.Server.Port)

	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "admin_password")
}

// TestConfig_LocalStoreComposition drives the whole chain from
// environment variables to a working database: load config, build the
// store through the factory, and exercise it.
func TestConfig_LocalStoreComposition(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "quotes.db")

	t.Chdir(t.TempDir())
	t.Setenv("APP_AUTH__ADMIN_PASSWORD", "integration-secret")
	t.Setenv("APP_STORE__LOCAL__PATH", dbPath)

	cfg, err := config.Load("")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	require.Equal(t, config.StoreBackendLocal, cfg.Store.Backend)

	store, closeStore, err := storage.New(cfg, discardLogger())
	require.NoError(t, err)
	defer func() { assert.NoError(t, closeStore()) }()

	ctx := context.Background()
	require.NoError(t, store.Ping(ctx))

	content := "Config built this store and Dan broke it in."
	created, err := store.Create(ctx, ports.NewQuote{
		Content:     content,
		ContentHash: domain.ContentHash(content),
	})
	require.NoError(t, err)

	fetched, err := store.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, content, fetched.Content)

	_, err = os.Stat(dbPath)
	assert.NoError(t, err, "database lands at the configured path")
}

// TestConfig_CloudStoreComposition verifies that cloud backend settings
// flow from the environment through the factory into the HTTP client:
// base URL, app ID path segment, and the API key credential.
func TestConfig_CloudStoreComposition(t *testing.T) {
	var (
		receivedPath string
		receivedAuth string
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedPath = r.URL.Path
		receivedAuth = r.Header.Get("Authorization")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"documents": []}`))
	}))
	defer server.Close()

	t.Chdir(t.TempDir())
	t.Setenv("APP_AUTH__ADMIN_PASSWORD", "integration-secret")
	t.Setenv("APP_STORE__BACKEND", "cloud")
	t.Setenv("APP_STORE__CLOUD__BASE_URL", server.URL)
	t.Setenv("APP_STORE__CLOUD__APP_ID", "app-from-env")
	t.Setenv("APP_STORE__CLOUD__API_KEY", "key-from-env")

	cfg, err := config.Load("")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	store, closeStore, err := storage.New(cfg, discardLogger())
	require.NoError(t, err)
	defer func() { assert.NoError(t, closeStore()) }()

	require.NoError(t, store.Ping(context.Background()))

	assert.True(t, strings.HasPrefix(receivedPath, "/v1/apps/app-from-env/"), "app ID reaches the request path, got %s", receivedPath)
	assert.Equal(t, "Bearer key-from-env", receivedAuth)
}

// TestConfig_AuthComposition verifies a configured password gate end to
// end: mint a session with the configured password, then authenticate
// with the resulting token.
func TestConfig_AuthComposition(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("APP_AUTH__ADMIN_PASSWORD", "configured-password")

	cfg, err := config.Load("")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	ctx := context.Background()

	authn, sessions, err := auth.New(ctx, cfg.Auth)
	require.NoError(t, err)
	require.NotNil(t, sessions, "password mode issues sessions")

	_, err = sessions.Login(ctx, "wrong-password")
	require.Error(t, err)
	assert.True(t, domain.IsUnauthorized(err))

	token, err := sessions.Login(ctx, "configured-password")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	identity, err := authn.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "local-admin", identity.Subject)
	assert.Equal(t, domain.AuthMethodPassword, identity.Method)
}
