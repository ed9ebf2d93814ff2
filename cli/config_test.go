package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"shiftclock_backend/middleware"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func settingsCommand() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Flags().String("server", "", "")
	cmd.Flags().String("token", "", "")
	cmd.Flags().String("timezone", "", "")
	cmd.Flags().String("config", "", "")
	return cmd
}

func mockEnv(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func writeConfigFile(t *testing.T, homeDir, content string) {
	t.Helper()
	path := ConfigPath(homeDir)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestLoadSettingsDefaults(t *testing.T) {
	s, err := loadSettings(settingsCommand(), t.TempDir(), mockEnv(nil))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", s.Server)
	assert.Equal(t, "Local", s.Timezone)
	assert.Empty(t, s.Token)
}

func TestLoadSettingsPrecedence(t *testing.T) {
	homeDir := t.TempDir()
	writeConfigFile(t, homeDir, "server: http://file:1\ntoken: file-token\ntimezone: Europe/Tallinn\n")

	s, err := loadSettings(settingsCommand(), homeDir, mockEnv(nil))
	require.NoError(t, err)
	assert.Equal(t, Settings{Server: "http://file:1", Token: "file-token", Timezone: "Europe/Tallinn"}, s)

	env := mockEnv(map[string]string{EnvServer: "http://env:2/", EnvToken: "env-token"})
	s, err = loadSettings(settingsCommand(), homeDir, env)
	require.NoError(t, err)
	assert.Equal(t, "http://env:2", s.Server)
	assert.Equal(t, "env-token", s.Token)
	assert.Equal(t, "Europe/Tallinn", s.Timezone)

	cmd := settingsCommand()
	require.NoError(t, cmd.Flags().Set("server", "http://flag:3"))
	require.NoError(t, cmd.Flags().Set("timezone", "UTC"))
	s, err = loadSettings(cmd, homeDir, env)
	require.NoError(t, err)
	assert.Equal(t, "http://flag:3", s.Server)
	assert.Equal(t, "env-token", s.Token)
	assert.Equal(t, "UTC", s.Timezone)
}

func TestLoadSettingsExplicitConfigPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, WriteSettings(path, Settings{Server: "http://custom:9"}))

	cmd := settingsCommand()
	require.NoError(t, cmd.Flags().Set("config", path))
	s, err := loadSettings(cmd, t.TempDir(), mockEnv(nil))
	require.NoError(t, err)
	assert.Equal(t, "http://custom:9", s.Server)
}

func TestLoadSettingsRejectsBadYAML(t *testing.T) {
	homeDir := t.TempDir()
	writeConfigFile(t, homeDir, "server: [unterminated\n")

	_, err := loadSettings(settingsCommand(), homeDir, mockEnv(nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: parse")
}

func TestSettingsEmployeeID(t *testing.T) {
	token, err := middleware.GenerateToken([]byte("any"), 12, time.Hour)
	require.NoError(t, err)

	id, err := Settings{Token: token}.EmployeeID()
	require.NoError(t, err)
	assert.Equal(t, 12, id)

	_, err = Settings{}.EmployeeID()
	assert.ErrorContains(t, err, EnvToken)

	_, err = Settings{Token: "not.a.token"}.EmployeeID()
	assert.Error(t, err)

	zero, err := middleware.GenerateToken([]byte("any"), 0, time.Hour)
	require.NoError(t, err)
	_, err = Settings{Token: zero}.EmployeeID()
	assert.Error(t, err)
}

func TestSettingsLocation(t *testing.T) {
	loc, err := Settings{Timezone: "UTC"}.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)

	_, err = Settings{Timezone: "Mars/Olympus"}.Location()
	assert.Error(t, err)
}

func TestRunToken(t *testing.T) {
	cmd, out := testCommand()
	require.NoError(t, runToken(cmd, "s3cret", "1h", 5, ""))

	claims, err := middleware.ParseToken([]byte("s3cret"), strings.TrimSpace(out.String()))
	require.NoError(t, err)
	assert.Equal(t, 5, claims.EmployeeID)
}

func TestRunTokenSavesToConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shiftclock", "config.yaml")
	require.NoError(t, WriteSettings(path, Settings{Server: "http://keep:1"}))

	cmd, out := testCommand()
	require.NoError(t, runToken(cmd, "s3cret", "1h", 5, path))
	assert.Contains(t, out.String(), "Token saved to")

	s, err := readSettingsFile(path)
	require.NoError(t, err)
	assert.Equal(t, "http://keep:1", s.Server)
	id, err := s.EmployeeID()
	require.NoError(t, err)
	assert.Equal(t, 5, id)
}

func TestRunTokenValidation(t *testing.T) {
	tests := []struct {
		name     string
		secret   string
		ttl      string
		employee int
	}{
		{"no secret", "", "1h", 5},
		{"no employee", "s", "1h", 0},
		{"bad ttl", "s", "soon", 5},
		{"negative ttl", "s", "-1h", 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, _ := testCommand()
			assert.Error(t, runToken(cmd, tt.secret, tt.ttl, tt.employee, ""))
		})
	}
}
