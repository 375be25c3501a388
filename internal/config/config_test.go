package config

import (
	"testing"
)

func TestValidate_InvalidDriver(t *testing.T) {
	cfg := Config{
		Database:     DatabaseConfig{Driver: "postgres", Addrs: []string{"localhost:5432"}},
		Registration: RegistrationConfig{OnError: "abort", Collisions: "override"},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for unknown driver")
	}

	expected := `database.driver must be "redis", "valkey" or "memory", got "postgres"`
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestValidate_MissingAddrs(t *testing.T) {
	for _, driver := range []string{"redis", "valkey"} {
		t.Run(driver, func(t *testing.T) {
			cfg := Config{Database: DatabaseConfig{Driver: driver}}
			cfg.ApplyDefaults()

			if err := cfg.Validate(); err == nil {
				t.Fatalf("expected error for missing %s addrs", driver)
			}
		})
	}
}

func TestValidate_MemoryNeedsNoAddrs(t *testing.T) {
	cfg := Config{Database: DatabaseConfig{Driver: "memory"}}
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_Policies(t *testing.T) {
	tests := []struct {
		name       string
		onError    string
		collisions string
		wantErr    bool
	}{
		{"abort override", "abort", "override", false},
		{"skip reject", "skip", "reject", false},
		{"bad on_error", "retry", "override", true},
		{"bad collisions", "abort", "merge", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{
				Database:     DatabaseConfig{Driver: "memory"},
				Registration: RegistrationConfig{OnError: tt.onError, Collisions: tt.collisions},
			}
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_NegativeDB(t *testing.T) {
	cfg := Config{Database: DatabaseConfig{Driver: "memory", DB: -1}}
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative db")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.Database.Driver != "redis" {
		t.Errorf("expected Driver=redis, got %q", cfg.Database.Driver)
	}
	if cfg.Database.ReadinessTimeout != 10 {
		t.Errorf("expected ReadinessTimeout=10, got %d", cfg.Database.ReadinessTimeout)
	}
	if cfg.Registration.OnError != "abort" {
		t.Errorf("expected OnError=abort, got %q", cfg.Registration.OnError)
	}
	if cfg.Registration.Collisions != "override" {
		t.Errorf("expected Collisions=override, got %q", cfg.Registration.Collisions)
	}
	if cfg.Registration.TimeoutSec != 30 {
		t.Errorf("expected TimeoutSec=30, got %d", cfg.Registration.TimeoutSec)
	}
	if cfg.Storage.KeyPrefix != "" {
		t.Errorf("expected empty KeyPrefix, got %q", cfg.Storage.KeyPrefix)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		Database:     DatabaseConfig{Driver: "valkey", ReadinessTimeout: 15},
		Registration: RegistrationConfig{OnError: "skip", Collisions: "reject", TimeoutSec: 5},
		Storage:      StorageConfig{KeyPrefix: "forum:"},
	}
	cfg.ApplyDefaults()

	if cfg.Database.Driver != "valkey" {
		t.Errorf("expected Driver=valkey, got %q", cfg.Database.Driver)
	}
	if cfg.Database.ReadinessTimeout != 15 {
		t.Errorf("expected ReadinessTimeout=15, got %d", cfg.Database.ReadinessTimeout)
	}
	if cfg.Registration.OnError != "skip" || cfg.Registration.Collisions != "reject" {
		t.Errorf("unexpected registration config: %+v", cfg.Registration)
	}
	if cfg.Registration.TimeoutSec != 5 {
		t.Errorf("expected TimeoutSec=5, got %d", cfg.Registration.TimeoutSec)
	}
	if cfg.Storage.KeyPrefix != "forum:" {
		t.Errorf("expected KeyPrefix='forum:', got %q", cfg.Storage.KeyPrefix)
	}
}

func TestParse_Fields(t *testing.T) {
	data := []byte(`
database:
  driver: memory
fields:
  - name: priority
    klass: topic
    type: integer
    serializers: [topic_view, topic_list_item]
  - name: notes
    klass: post
    type: json
    serializers: []
`)

	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(cfg.Fields))
	}
	if cfg.Fields[0]["name"] != "priority" {
		t.Errorf("unexpected first field: %v", cfg.Fields[0])
	}
	targets, ok := cfg.Fields[0]["serializers"].([]any)
	if !ok || len(targets) != 2 {
		t.Errorf("unexpected serializers: %#v", cfg.Fields[0]["serializers"])
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	if _, err := Parse([]byte("database: [")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("CF_TEST_ADDR", "cache:6379")

	got := string(expandEnvVars([]byte("a: ${CF_TEST_ADDR}\nb: ${CF_TEST_MISSING:-fallback}\nc: ${CF_TEST_MISSING}")))
	want := "a: cache:6379\nb: fallback\nc: "
	if got != want {
		t.Errorf("expandEnvVars() = %q, want %q", got, want)
	}
}
