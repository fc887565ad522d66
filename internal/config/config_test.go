package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "uscalendar.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"DATA_DIR", "SQLITE_PATH", "ALPACA_API_KEY", "ALPACA_API_SECRET",
		"ALPACA_BASE_URL", "LOG_LEVEL", "LOG_FORMAT", "HTTP_PORT", "GRPC_PORT",
		"APCA_API_KEY_ID", "APCA_API_SECRET_KEY",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
storage:
  data_dir: "/tmp/uscalendar/data"
  sqlite_path: "/tmp/uscalendar/uscalendar.db"
server:
  host: "127.0.0.1"
  port: 8181
  grpc_port: 9191
alpaca:
  api_key: "test-key"
  api_secret: "test-secret"
  base_url: "https://api.alpaca.markets"
  rate_limit_per_min: 30
logging:
  level: "debug"
  format: "text"
schedule:
  refresh_cron: "@daily"
  years_ahead: 3
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	// -- Storage --
	if cfg.Storage.DataDir != "/tmp/uscalendar/data" {
		t.Errorf("Storage.DataDir = %q, want %q", cfg.Storage.DataDir, "/tmp/uscalendar/data")
	}
	if cfg.Storage.SQLitePath != "/tmp/uscalendar/uscalendar.db" {
		t.Errorf("Storage.SQLitePath = %q, want %q", cfg.Storage.SQLitePath, "/tmp/uscalendar/uscalendar.db")
	}

	// -- Server --
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, "127.0.0.1")
	}
	if cfg.Server.Port != 8181 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 8181)
	}
	if cfg.Server.GRPCPort != 9191 {
		t.Errorf("Server.GRPCPort = %d, want %d", cfg.Server.GRPCPort, 9191)
	}

	// -- Alpaca --
	if cfg.Alpaca.APIKey != "test-key" {
		t.Errorf("Alpaca.APIKey = %q, want %q", cfg.Alpaca.APIKey, "test-key")
	}
	if cfg.Alpaca.RateLimitPerMin != 30 {
		t.Errorf("Alpaca.RateLimitPerMin = %d, want %d", cfg.Alpaca.RateLimitPerMin, 30)
	}

	// -- Logging --
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("Logging.Format = %q, want %q", cfg.Logging.Format, "text")
	}

	// -- Schedule --
	if cfg.Schedule.RefreshCron != "@daily" {
		t.Errorf("Schedule.RefreshCron = %q, want %q", cfg.Schedule.RefreshCron, "@daily")
	}
	if cfg.Schedule.YearsAhead != 3 {
		t.Errorf("Schedule.YearsAhead = %d, want %d", cfg.Schedule.YearsAhead, 3)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	def := Default()
	if *cfg != *def {
		t.Errorf("Load() of missing file = %+v, want defaults %+v", cfg, def)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
server:
  port: 7000
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != 7000 {
		t.Errorf("Server.Port = %d, want 7000", cfg.Server.Port)
	}
	if cfg.Server.GRPCPort != 9090 {
		t.Errorf("Server.GRPCPort = %d, want default 9090", cfg.Server.GRPCPort)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q, want default json", cfg.Logging.Format)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "server: [unterminated")
	if _, err := Load(path); err == nil {
		t.Error("Load() should fail on invalid YAML")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
alpaca:
  api_key: "yaml-key"
  api_secret: "yaml-secret"
storage:
  data_dir: "/original/data"
server:
  port: 8080
`)

	t.Setenv("ALPACA_API_KEY", "env-key")
	t.Setenv("DATA_DIR", "/env/data")
	t.Setenv("HTTP_PORT", "8088")
	t.Setenv("GRPC_PORT", "not-a-number")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.Alpaca.APIKey != "env-key" {
		t.Errorf("Alpaca.APIKey = %q, want %q (env override)", cfg.Alpaca.APIKey, "env-key")
	}
	// api_secret should remain from YAML since no env override was set.
	if cfg.Alpaca.APISecret != "yaml-secret" {
		t.Errorf("Alpaca.APISecret = %q, want %q (from YAML)", cfg.Alpaca.APISecret, "yaml-secret")
	}
	if cfg.Storage.DataDir != "/env/data" {
		t.Errorf("Storage.DataDir = %q, want %q (env override)", cfg.Storage.DataDir, "/env/data")
	}
	if cfg.Server.Port != 8088 {
		t.Errorf("Server.Port = %d, want 8088 (env override)", cfg.Server.Port)
	}
	if cfg.Server.GRPCPort != 9090 {
		t.Errorf("Server.GRPCPort = %d, want 9090 (invalid env ignored)", cfg.Server.GRPCPort)
	}
}

func TestCanonicalAlpacaEnvWins(t *testing.T) {
	clearEnv(t)
	t.Setenv("ALPACA_API_KEY", "env-key")
	t.Setenv("APCA_API_KEY_ID", "apca-key")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Alpaca.APIKey != "apca-key" {
		t.Errorf("Alpaca.APIKey = %q, want %q", cfg.Alpaca.APIKey, "apca-key")
	}
}

func TestPath(t *testing.T) {
	t.Setenv("USCALENDAR_CONFIG", "")
	if got := Path(); got != "config/uscalendar.yaml" {
		t.Errorf("Path() = %q, want default", got)
	}
	t.Setenv("USCALENDAR_CONFIG", "/etc/uscal.yaml")
	if got := Path(); got != "/etc/uscal.yaml" {
		t.Errorf("Path() = %q, want %q", got, "/etc/uscal.yaml")
	}
}
