package config

import (
	"os"
	"testing"
)

func TestLoad(t *testing.T) {
	// Create temporary config file
	content := `
server:
  port: 9000
  host: "127.0.0.1"

database:
  host: "testdb"
  port: 5432
  user: "testuser"
  password: "testpass"
  dbname: "vidtube_test"

auth:
  accessTokenSecret: "access-secret"
  refreshTokenSecret: "refresh-secret"
  accessTokenTTL: "5m"
`

	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	// Load config
	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	// Verify loaded values
	if cfg.Server.Port != 9000 {
		t.Errorf("Expected port 9000, got %d", cfg.Server.Port)
	}

	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Expected host 127.0.0.1, got %s", cfg.Server.Host)
	}

	if cfg.Database.DBName != "vidtube_test" {
		t.Errorf("Expected database name vidtube_test, got %s", cfg.Database.DBName)
	}

	if cfg.Auth.AccessTokenTTL.Minutes() != 5 {
		t.Errorf("Expected access token TTL 5m, got %v", cfg.Auth.AccessTokenTTL)
	}

	// Defaults should fill unset sections
	if cfg.Redis.Port != 6379 {
		t.Errorf("Expected default redis port 6379, got %d", cfg.Redis.Port)
	}
	if cfg.Cache.StatsTTL.Seconds() != 60 {
		t.Errorf("Expected default stats TTL 60s, got %v", cfg.Cache.StatsTTL)
	}
}

func TestLoadMissingSecrets(t *testing.T) {
	content := `
server:
  port: 9000
`
	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(tmpfile.Name()); err == nil {
		t.Error("Expected error when token secrets are missing")
	}
}

func TestLoadNonExistentFile(t *testing.T) {
	_, err := Load("nonexistent.yaml")
	if err == nil {
		t.Error("Expected error when loading nonexistent file")
	}
}
