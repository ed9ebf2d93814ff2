package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"shiftclock_backend/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const defaultServer = "http://localhost:8080"

// Environment variables read by the client.
const (
	EnvServer   = "SHIFTCLOCK_SERVER"
	EnvToken    = "SHIFTCLOCK_TOKEN"
	EnvTimezone = "SHIFTCLOCK_TIMEZONE"
)

// Settings is the client configuration. Values come from the config file,
// then the environment, then command-line flags, each overriding the last.
type Settings struct {
	Server   string `yaml:"server"`
	Token    string `yaml:"token"`
	Timezone string `yaml:"timezone"`
}

// ConfigPath returns the location of the client config file under homeDir.
func ConfigPath(homeDir string) string {
	return filepath.Join(homeDir, ".config", "shiftclock", "config.yaml")
}

func readSettingsFile(path string) (Settings, error) {
	var s Settings
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return s, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return s, nil
}

// WriteSettings saves s to path, creating parent directories.
func WriteSettings(path string, s Settings) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func loadSettings(cmd *cobra.Command, homeDir string, getenv func(string) string) (Settings, error) {
	path := ConfigPath(homeDir)
	if flagPath, _ := cmd.Flags().GetString("config"); flagPath != "" {
		path = flagPath
	}
	s, err := readSettingsFile(path)
	if err != nil {
		return s, err
	}

	if v := getenv(EnvServer); v != "" {
		s.Server = v
	}
	if v := getenv(EnvToken); v != "" {
		s.Token = v
	}
	if v := getenv(EnvTimezone); v != "" {
		s.Timezone = v
	}

	for name, dst := range map[string]*string{"server": &s.Server, "token": &s.Token, "timezone": &s.Timezone} {
		if cmd.Flags().Changed(name) {
			*dst, _ = cmd.Flags().GetString(name)
		}
	}

	if s.Server == "" {
		s.Server = defaultServer
	}
	if s.Timezone == "" {
		s.Timezone = "Local"
	}
	s.Server = strings.TrimRight(s.Server, "/")
	return s, nil
}

// Location resolves the configured timezone.
func (s Settings) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", s.Timezone, err)
	}
	return loc, nil
}

// EmployeeID reads the employee from the token without verifying its
// signature; the server does that on every request.
func (s Settings) EmployeeID() (int, error) {
	if s.Token == "" {
		return 0, fmt.Errorf("no token configured: set %s or pass --token", EnvToken)
	}
	claims := &models.Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(s.Token, claims); err != nil {
		return 0, fmt.Errorf("malformed token: %w", err)
	}
	if claims.EmployeeID <= 0 {
		return 0, fmt.Errorf("token does not identify an employee")
	}
	return claims.EmployeeID, nil
}
