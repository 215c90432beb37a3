package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	return path
}

const minimalConfig = `
jwt:
  secret: "test-secret"
`

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfigFile(t, minimalConfig))
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Server.Port = %q, want default 8080", cfg.Server.Port)
	}
	if cfg.Database.DBName != "campusgate" {
		t.Errorf("Database.DBName = %q, want default campusgate", cfg.Database.DBName)
	}
	if cfg.Redis.RateLimitPerMin != 300 {
		t.Errorf("Redis.RateLimitPerMin = %d, want default 300", cfg.Redis.RateLimitPerMin)
	}
	if len(cfg.Grading.Cuts) == 0 {
		t.Error("Grading default cut table is empty")
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("RATE_LIMIT_PER_MIN", "60")

	cfg, err := LoadConfig(writeConfigFile(t, minimalConfig))
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("Server.Port = %q, want env override 9090", cfg.Server.Port)
	}
	if cfg.Database.Host != "db.internal" {
		t.Errorf("Database.Host = %q, want env override", cfg.Database.Host)
	}
	if cfg.Redis.RateLimitPerMin != 60 {
		t.Errorf("Redis.RateLimitPerMin = %d, want env override 60", cfg.Redis.RateLimitPerMin)
	}
}

func TestLoadConfigRequiresJWTSecret(t *testing.T) {
	if _, err := LoadConfig(writeConfigFile(t, "server:\n  port: \"8080\"\n")); err == nil {
		t.Fatal("LoadConfig accepted a configuration without a JWT secret")
	}
}

func TestGradingValidate(t *testing.T) {
	tests := []struct {
		name    string
		cuts    []GradeCut
		wantErr bool
	}{
		{"default table", DefaultGrading().Cuts, false},
		{"empty table", nil, true},
		{"empty grade", []GradeCut{{Grade: "", MinPercent: 0}}, true},
		{"cut above 100", []GradeCut{{Grade: "A", MinPercent: 110}, {Grade: "F", MinPercent: 0}}, true},
		{"not descending", []GradeCut{{Grade: "A", MinPercent: 50}, {Grade: "B", MinPercent: 80}, {Grade: "F", MinPercent: 0}}, true},
		{"duplicate cut", []GradeCut{{Grade: "A", MinPercent: 50}, {Grade: "B", MinPercent: 50}, {Grade: "F", MinPercent: 0}}, true},
		{"missing zero cut", []GradeCut{{Grade: "A", MinPercent: 50}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := GradingConfig{Cuts: tt.cuts}.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr = %t", err, tt.wantErr)
			}
		})
	}
}

func TestSettingsReload(t *testing.T) {
	path := writeConfigFile(t, minimalConfig+`
grading:
  cuts:
    - { grade: "PASS", min_percent: 40 }
    - { grade: "FAIL", min_percent: 0 }
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	settings := NewSettings(path, cfg.Grading)
	if got := len(settings.Grading().Cuts); got != 2 {
		t.Fatalf("initial table has %d cuts, want 2", got)
	}

	// Replace the file with the default table and reload.
	if err := os.WriteFile(path, []byte(minimalConfig), 0o644); err != nil {
		t.Fatalf("rewriting config: %v", err)
	}
	reloaded, err := settings.Reload()
	if err != nil {
		t.Fatalf("Reload returned error: %v", err)
	}
	if len(reloaded.Cuts) != len(DefaultGrading().Cuts) {
		t.Errorf("reloaded table has %d cuts, want the default table", len(reloaded.Cuts))
	}
}

func TestSettingsReloadKeepsOldTableOnError(t *testing.T) {
	path := writeConfigFile(t, minimalConfig)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	settings := NewSettings(path, cfg.Grading)
	before := settings.Grading()

	// Break the file: a non-descending table must not validate.
	broken := minimalConfig + `
grading:
  cuts:
    - { grade: "A", min_percent: 10 }
    - { grade: "B", min_percent: 90 }
`
	if err := os.WriteFile(path, []byte(broken), 0o644); err != nil {
		t.Fatalf("rewriting config: %v", err)
	}

	if _, err := settings.Reload(); err == nil {
		t.Fatal("Reload accepted an invalid grading table")
	}
	if got := settings.Grading(); len(got.Cuts) != len(before.Cuts) {
		t.Error("failed reload replaced the active table")
	}
}
