package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Server.Port != "8080" {
		t.Errorf("default port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Store.Driver != "mongo" {
		t.Errorf("default store driver = %q, want mongo", cfg.Store.Driver)
	}
	if cfg.LLM.Provider != "ollama" {
		t.Errorf("default llm provider = %q, want ollama", cfg.LLM.Provider)
	}
	if cfg.LLM.Temperature != 0.3 || cfg.LLM.TopK != 50 || cfg.LLM.TopP != 0.95 {
		t.Errorf("default sampling options = %v/%v/%v", cfg.LLM.Temperature, cfg.LLM.TopK, cfg.LLM.TopP)
	}
	if cfg.Report.WindowDays != 7 {
		t.Errorf("default window = %d, want 7", cfg.Report.WindowDays)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config must validate, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default",
			mutate:  func(*Config) {},
			wantErr: false,
		},
		{
			name: "mongo without uri",
			mutate: func(c *Config) {
				c.Store.URI = ""
			},
			wantErr: true,
		},
		{
			name: "mongo without database",
			mutate: func(c *Config) {
				c.Store.Database = ""
			},
			wantErr: true,
		},
		{
			name: "sqlite without dsn",
			mutate: func(c *Config) {
				c.Store.Driver = "sqlite"
				c.Store.DSN = ""
			},
			wantErr: true,
		},
		{
			name: "sqlite with dsn",
			mutate: func(c *Config) {
				c.Store.Driver = "sqlite"
				c.Store.DSN = "internlens.db"
			},
			wantErr: false,
		},
		{
			name: "unknown driver",
			mutate: func(c *Config) {
				c.Store.Driver = "cassandra"
			},
			wantErr: true,
		},
		{
			name: "zero window days",
			mutate: func(c *Config) {
				c.Report.WindowDays = 0
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://db.internal:27017")
	t.Setenv("MONGODB_DB_NAME", "logbooks")
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("LLM_API_KEY", "sk-test")
	t.Setenv("LLM_TIMEOUT_SECONDS", "30")
	t.Setenv("SERVER_PORT", "9090")

	cfg := DefaultConfig()
	cfg.overrideFromEnv()

	if cfg.Store.URI != "mongodb://db.internal:27017" {
		t.Errorf("store uri = %q", cfg.Store.URI)
	}
	if cfg.Store.Database != "logbooks" {
		t.Errorf("store database = %q", cfg.Store.Database)
	}
	if cfg.LLM.Provider != "openai" || cfg.LLM.APIKey != "sk-test" {
		t.Errorf("llm config = %q/%q", cfg.LLM.Provider, cfg.LLM.APIKey)
	}
	if cfg.LLM.TimeoutSeconds != 30 {
		t.Errorf("llm timeout = %d, want 30", cfg.LLM.TimeoutSeconds)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("server port = %q, want 9090", cfg.Server.Port)
	}
}

func TestEnvOverrideInvalidTimeoutIgnored(t *testing.T) {
	t.Setenv("LLM_TIMEOUT_SECONDS", "not-a-number")

	cfg := DefaultConfig()
	cfg.overrideFromEnv()

	if cfg.LLM.TimeoutSeconds != 90 {
		t.Errorf("llm timeout = %d, want default 90 for unparseable override", cfg.LLM.TimeoutSeconds)
	}
}

func TestParseRedisURL(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		addr     string
		password string
		db       int
	}{
		{
			name: "host and port only",
			url:  "redis://localhost:6379",
			addr: "localhost:6379",
		},
		{
			name:     "with password and db",
			url:      "redis://:secret@redis.internal:6380/2",
			addr:     "redis.internal:6380",
			password: "secret",
			db:       2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.parseRedisURL(tt.url)
			if cfg.Redis.Addr != tt.addr {
				t.Errorf("addr = %q, want %q", cfg.Redis.Addr, tt.addr)
			}
			if cfg.Redis.Password != tt.password {
				t.Errorf("password = %q, want %q", cfg.Redis.Password, tt.password)
			}
			if cfg.Redis.DB != tt.db {
				t.Errorf("db = %d, want %d", cfg.Redis.DB, tt.db)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	data := []byte(`
server:
  port: "8888"
store:
  driver: sqlite
  dsn: internlens.db
llm:
  provider: anthropic
  model: claude-sonnet-4-20250514
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != "8888" {
		t.Errorf("port = %q, want 8888", cfg.Server.Port)
	}
	if cfg.Store.Driver != "sqlite" || cfg.Store.DSN != "internlens.db" {
		t.Errorf("store = %+v", cfg.Store)
	}
	if cfg.LLM.Provider != "anthropic" {
		t.Errorf("llm provider = %q", cfg.LLM.Provider)
	}
	// Unspecified fields keep their defaults.
	if cfg.LLM.Temperature != 0.3 {
		t.Errorf("temperature = %v, want default 0.3", cfg.LLM.Temperature)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Store.Driver != "mongo" {
		t.Errorf("driver = %q, want mongo default", cfg.Store.Driver)
	}
}
