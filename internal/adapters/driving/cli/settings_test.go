package cli

import (
	"bytes"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/modsettings/internal/core/domain"
	"github.com/custodia-labs/modsettings/internal/core/services"
	"github.com/custodia-labs/modsettings/internal/logger"
)

func executeCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

func seedSettings(t *testing.T, scope, content string) {
	t.Helper()
	require.NoError(t, settingsStore.Save(content, scope, ""))
}

// Path Tests

func TestPathCmd_Use(t *testing.T) {
	assert.Equal(t, "path", pathCmd.Use)
}

func TestPathCmd_PrintsResolvedPath(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := executeCmd(t, "path", "--module", "Awake")

	require.NoError(t, err)
	assert.Contains(t, out, testPath("Awake"))
	assert.Empty(t, testFS.Files(), "path must not touch the file system")
}

func TestPathCmd_RootScope(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := executeCmd(t, "path")

	require.NoError(t, err)
	assert.Contains(t, out, testPath(""))
}

func TestPathCmd_StoreNotConfigured(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	SetServices(nil, nil)

	_, err := executeCmd(t, "path")

	assert.ErrorIs(t, err, errStoreNotConfigured)
}

// Exists Tests

func TestExistsCmd_ReportsPresence(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := executeCmd(t, "exists", "-m", "Awake")
	require.NoError(t, err)
	assert.Contains(t, out, "false")

	seedSettings(t, "Awake", `{"mode":"passive"}`)

	out, err = executeCmd(t, "exists", "-m", "Awake")
	require.NoError(t, err)
	assert.Contains(t, out, "true")
}

// Show Tests

func TestShowCmd_Use(t *testing.T) {
	assert.Equal(t, "show", showCmd.Use)
}

func TestShowCmd_CreatesMissingFile(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := executeCmd(t, "show", "-m", "Awake")

	require.NoError(t, err)
	assert.Contains(t, out, "{}")
	assert.True(t, testFS.FileExists(testPath("Awake")))
}

func TestShowCmd_JSON(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	seedSettings(t, "Awake", `{"mode":"passive"}`)

	out, err := executeCmd(t, "show", "-m", "Awake")

	require.NoError(t, err)
	assert.Contains(t, out, `{"mode":"passive"}`)
}

func TestShowCmd_TOML(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	seedSettings(t, "Awake", `{"mode":"passive"}`)

	out, err := executeCmd(t, "show", "-m", "Awake", "--format", "toml")

	require.NoError(t, err)
	assert.Contains(t, out, "mode = 'passive'")
}

func TestShowCmd_UnknownFormat(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := executeCmd(t, "show", "--format", "yaml")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestShowCmd_NulPaddedFile(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	seedSettings(t, "Awake", "{\"mode\":\"timed\"}\x00\x00\x00")

	out, err := executeCmd(t, "show", "-m", "Awake")

	require.NoError(t, err)
	assert.Contains(t, out, `{"mode":"timed"}`)
}

func TestShowCmd_UndecodableFile(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	seedSettings(t, "Awake", "not json")

	_, err := executeCmd(t, "show", "-m", "Awake")

	var decodeErr *domain.DeserializationError
	assert.ErrorAs(t, err, &decodeErr)
}

// Set Tests

func TestSetCmd_Use(t *testing.T) {
	assert.Equal(t, "set [key] [value]", setCmd.Use)
}

func TestSetCmd_RequiresTwoArgs(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := executeCmd(t, "set", "only-key")

	assert.Error(t, err)
}

func TestSetCmd_WritesValue(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	seedSettings(t, "Awake", `{"mode":"passive"}`)

	out, err := executeCmd(t, "set", "-m", "Awake", "keep_display_on", "false")

	require.NoError(t, err)
	assert.Contains(t, out, "Set keep_display_on")

	doc, err := services.Load[domain.Document](settingsStore, "Awake", "")
	require.NoError(t, err)
	assert.Equal(t, false, (*doc)["keep_display_on"])
	assert.Equal(t, "passive", (*doc)["mode"])
}

func TestSetCmd_CreatesFileForNewModule(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := executeCmd(t, "set", "-m", "FancyZones", "zone_spacing", "16")

	require.NoError(t, err)
	content, err := testFS.ReadAllText(testPath("FancyZones"))
	require.NoError(t, err)
	assert.Contains(t, content, `"zone_spacing": 16`)
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected any
	}{
		{name: "Number", input: "42", expected: float64(42)},
		{name: "Boolean", input: "true", expected: true},
		{name: "Quoted string", input: `"passive"`, expected: "passive"},
		{name: "Bare string", input: "passive", expected: "passive"},
		{name: "Array", input: "[1,2]", expected: []any{float64(1), float64(2)}},
		{name: "Object", input: `{"a":"b"}`, expected: map[string]any{"a": "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseValue(tt.input))
		})
	}
}

// Delete Tests

func TestDeleteCmd_RemovesModuleFolder(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	seedSettings(t, "Awake", `{}`)
	seedSettings(t, "FancyZones", `{}`)

	out, err := executeCmd(t, "delete", "-m", "Awake")

	require.NoError(t, err)
	assert.Contains(t, out, "Deleted settings for module Awake")
	assert.False(t, testFS.FileExists(testPath("Awake")))
	assert.True(t, testFS.FileExists(testPath("FancyZones")))
}

func TestDeleteCmd_RootScopeRequiresForce(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	seedSettings(t, "Awake", `{}`)

	_, err := executeCmd(t, "delete")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.True(t, testFS.FileExists(testPath("Awake")))
}

func TestDeleteCmd_RootScopeWithForce(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	seedSettings(t, "", `{}`)
	seedSettings(t, "Awake", `{}`)

	out, err := executeCmd(t, "delete", "--force")

	require.NoError(t, err)
	assert.Contains(t, out, "Deleted settings for module "+domain.RootModuleName)
	assert.Empty(t, testFS.Files())
}

// Watch Tests

func TestWatchCmd_PrintsChanges(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	testWatcher.changes = []domain.SettingsChange{
		{Path: testPath("Awake"), Type: domain.ChangeUpdated, At: at},
		{Path: testPath("Awake"), Type: domain.ChangeDeleted, At: at},
	}

	out, err := executeCmd(t, "watch", "-m", "Awake")

	require.NoError(t, err)
	assert.Contains(t, out, "Watching "+testPath("Awake"))
	assert.Contains(t, out, domain.ChangeUpdated.String())
	assert.Contains(t, out, domain.ChangeDeleted.String())
	assert.Equal(t, []string{testPath("Awake")}, testWatcher.watched)
	assert.True(t, testFS.FileExists(testPath("Awake")), "watch materialises the file first")
}

func TestWatchCmd_NoWatcher(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	resolver := services.NewPathResolver(domain.DefaultNamespace, func() string { return testRoot })
	SetServices(services.NewSettingsStore(resolver, testFS, logger.ErrorLogger{}, nil), testPrefs)

	_, err := executeCmd(t, "watch")

	assert.ErrorIs(t, err, domain.ErrWatcherUnavailable)
	assert.Contains(t, err.Error(), "does not support watching")
}

// Verbose Tests

func TestVerboseFlag_LogsLifecycle(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	logs := new(bytes.Buffer)
	logger.SetOutput(logs)
	defer logger.SetOutput(os.Stderr)

	_, err := executeCmd(t, "set", "--verbose", "-m", "Awake", "mode", "timed")
	require.NoError(t, err)

	_, err = executeCmd(t, "show", "--verbose", "-m", "Awake")
	require.NoError(t, err)

	assert.Contains(t, logs.String(), "saved mode for module Awake")
	assert.Contains(t, logs.String(), "loaded 1 keys for module Awake")
}

func TestVerboseFlag_WatchPrintsSection(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	logs := new(bytes.Buffer)
	logger.SetOutput(logs)
	defer logger.SetOutput(os.Stderr)

	_, err := executeCmd(t, "watch", "--verbose", "-m", "Awake")

	require.NoError(t, err)
	assert.Contains(t, logs.String(), "=== watch Awake ===")
}

func TestQuietByDefault(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	logs := new(bytes.Buffer)
	logger.SetOutput(logs)
	defer logger.SetOutput(os.Stderr)

	_, err := executeCmd(t, "set", "-m", "Awake", "mode", "timed")

	require.NoError(t, err)
	assert.Empty(t, logs.String())
}
