package config

import (
	"context"
	"errors"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestLoad_NotFound(t *testing.T) {
	l := NewLoader(newMockFS())
	_, err := l.Load(context.Background(), "/cfg/config.yaml")
	if !errors.Is(err, ErrConfigNotFound) {
		t.Fatalf("expected ErrConfigNotFound, got %v", err)
	}
}

func TestLoad_AppliesDefaults(t *testing.T) {
	mfs := newMockFS()
	mfs.Files["/cfg/config.yaml"] = []byte("repositories: [/work/repo]\n")

	cfg, err := NewLoader(mfs).Load(context.Background(), "/cfg/config.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.WorkHours.Start != "09:00" || cfg.WorkHours.End != "18:00" {
		t.Errorf("work hours defaults not applied: %+v", cfg.WorkHours)
	}
	if cfg.CommitFrequency.MinPerDay != 3 || cfg.CommitFrequency.MaxPerDay != 8 {
		t.Errorf("frequency defaults not applied: %+v", cfg.CommitFrequency)
	}
	if cfg.Message.Provider != ProviderTemplate {
		t.Errorf("expected template provider default, got %q", cfg.Message.Provider)
	}
	if len(cfg.Repositories) != 1 || cfg.Repositories[0] != "/work/repo" {
		t.Errorf("repositories lost: %v", cfg.Repositories)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	mfs := newMockFS()
	mfs.Files["/cfg/config.yaml"] = []byte("repositories: []\n")

	getenv := func(key string) string {
		if key == "PACER_GEMINI_KEY" {
			return "secret-key"
		}
		return ""
	}

	cfg, err := NewLoaderWithEnv(mfs, getenv).Load(context.Background(), "/cfg/config.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(cfg.GeminiAPIKey) != "secret-key" {
		t.Error("env override not applied")
	}
	if cfg.GeminiAPIKey.String() != "[REDACTED]" {
		t.Error("secret not redacted when printed")
	}
}

func TestLoad_ValidationJoinsErrors(t *testing.T) {
	mfs := newMockFS()
	mfs.Files["/cfg/config.yaml"] = []byte(`
repositories: [relative/path]
work_hours:
  start: "9am"
  end: "18:00"
commit_frequency:
  min_per_day: 5
  max_per_day: 2
file_extensions: ["py"]
message:
  provider: carrier-pigeon
`)

	_, err := NewLoader(mfs).Load(context.Background(), "/cfg/config.yaml")
	if err == nil {
		t.Fatal("expected validation errors")
	}

	for _, want := range []string{
		"must be absolute",
		"not a valid HH:MM",
		"max_per_day",
		"must start with a dot",
		"carrier-pigeon",
	} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("joined error missing %q:\n%v", want, err)
		}
	}
}

func TestSave_RoundTrip(t *testing.T) {
	mfs := newMockFS()
	l := NewLoader(mfs)
	ctx := context.Background()

	cfg := Default()
	cfg.Repositories = []string{"/work/repo"}

	if err := l.Save(ctx, "/cfg/config.yaml", cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loaded, err := l.Load(ctx, "/cfg/config.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(loaded.Repositories) != 1 || loaded.Repositories[0] != "/work/repo" {
		t.Errorf("round trip lost repositories: %v", loaded.Repositories)
	}
	if loaded.LineChanges != cfg.LineChanges {
		t.Errorf("round trip changed line_changes: %+v vs %+v", loaded.LineChanges, cfg.LineChanges)
	}
}

func TestSave_NeverPersistsSecret(t *testing.T) {
	mfs := newMockFS()
	cfg := Default()
	cfg.GeminiAPIKey = "super-secret"

	if err := NewLoader(mfs).Save(context.Background(), "/cfg/config.yaml", cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(string(mfs.Files["/cfg/config.yaml"]), "super-secret") {
		t.Error("API key leaked into the config file")
	}
}

func TestDefaultPath(t *testing.T) {
	l := NewLoader(newMockFS())
	path, err := l.DefaultPath()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != "/home/test/.config/pacer/config.yaml" {
		t.Errorf("unexpected default path %q", path)
	}
}

func TestDefaultYAML_ParsesAndValidates(t *testing.T) {
	cfg := Default()
	if err := yaml.Unmarshal([]byte(DefaultYAML), cfg); err != nil {
		t.Fatalf("default template does not parse: %v", err)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("default template does not validate: %v", err)
	}
}
