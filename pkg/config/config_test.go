package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type sampleConfig struct {
	Name string `yaml:"name"`
	Port int    `yaml:"port"`
}

type validatedConfig struct {
	Port int `yaml:"port"`
}

var errBadPort = errors.New("port must be positive")

func (c *validatedConfig) Validate() error {
	if c.Port <= 0 {
		return errBadPort
	}
	return nil
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("TEST_APP_NAME", "skyroute")
	path := writeConfig(t, "name: ${TEST_APP_NAME}\nport: 8080\n")

	var cfg sampleConfig
	if err := Load(path, &cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Name != "skyroute" || cfg.Port != 8080 {
		t.Errorf("cfg = %+v, want name skyroute, port 8080", cfg)
	}
}

func TestLoadRunsValidator(t *testing.T) {
	path := writeConfig(t, "port: -1\n")

	var cfg validatedConfig
	err := Load(path, &cfg)
	if !errors.Is(err, errBadPort) {
		t.Fatalf("err = %v, want validation failure", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	var cfg sampleConfig
	err := Load(filepath.Join(t.TempDir(), "nope.yaml"), &cfg)
	if err == nil || !strings.Contains(err.Error(), "failed to read config file") {
		t.Fatalf("err = %v, want read failure", err)
	}
}
