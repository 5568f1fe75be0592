package course

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df-mc/gauntlet/course/coursedb"
	"github.com/pelletier/go-toml"
)

func TestParseSeedMode(t *testing.T) {
	tests := map[string]SeedMode{"": SeedDay, "day": SeedDay, " Week ": SeedWeek, "FIXED": SeedFixed, "phrase": SeedPhrase}
	for in, want := range tests {
		got, err := ParseSeedMode(in)
		if err != nil || got != want {
			t.Fatalf("%q: expected %v, got %v (%v)", in, want, got, err)
		}
	}
	if _, err := ParseSeedMode("hourly"); err == nil {
		t.Fatalf("expected an error for an unknown seed mode")
	}
}

func TestLoadConfigCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	c, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if c != DefaultConfig() {
		t.Fatalf("expected default config, got %+v", c)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected config file to be written: %v", err)
	}
	var stored UserConfig
	if err := toml.Unmarshal(data, &stored); err != nil {
		t.Fatalf("decode written config: %v", err)
	}
	if stored.Storage.Folder != "courses" {
		t.Fatalf("expected folder courses, got %q", stored.Storage.Folder)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	c := DefaultConfig()
	c.Level.Blocks = 12
	data, _ := toml.Marshal(c)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("GAUNTLET_LEVEL_SEED_MODE", "fixed")
	t.Setenv("GAUNTLET_LEVEL_SEED", "99")

	c, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if c.Level.Blocks != 12 || c.Level.SeedMode != "fixed" || c.Level.Seed != 99 {
		t.Fatalf("expected file and env values to be merged, got %+v", c.Level)
	}
}

func TestApplyEnvError(t *testing.T) {
	t.Setenv("GAUNTLET_LEVEL_BLOCKS", "many")
	c := DefaultConfig()
	err := c.ApplyEnv()
	if err == nil || !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env error, got %v", err)
	}
}

func TestUserConfigConfig(t *testing.T) {
	uc := DefaultConfig()
	uc.Storage.Folder = t.TempDir()
	uc.Storage.Compression = "best"
	conf, err := uc.Config(discard)
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	db, ok := conf.Provider.(*coursedb.DB)
	if !ok {
		t.Fatalf("expected a course database provider, got %T", conf.Provider)
	}
	_ = db.Close()
	if conf.SeedMode != SeedDay || conf.Registry.Len() != 10 {
		t.Fatalf("expected day seeding over the default registry, got %v with %d operations", conf.SeedMode, conf.Registry.Len())
	}

	uc.Storage.SaveData = false
	if conf, _ := uc.Config(discard); conf.Provider != nil {
		t.Fatalf("expected no provider without saving, got %T", conf.Provider)
	}
	uc.Storage.SaveData = true
	uc.Storage.Compression = "extreme"
	if _, err := uc.Config(discard); err == nil {
		t.Fatalf("expected an error for an unknown compression level")
	}
	uc.Level.SeedMode = "hourly"
	if _, err := uc.Config(discard); err == nil {
		t.Fatalf("expected an error for an unknown seed mode")
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	uc := DefaultConfig()
	uc.Log.Format = "json"
	uc.Log.Level = "warn"
	log, err := uc.Logger(&buf)
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	log.Info("hidden")
	log.Warn("shown")
	if out := buf.String(); strings.Contains(out, "hidden") || !strings.Contains(out, `"msg":"shown"`) {
		t.Fatalf("expected only the warning as JSON, got %q", out)
	}
	uc.Log.Format = "xml"
	if _, err := uc.Logger(&buf); err == nil {
		t.Fatalf("expected an error for an unknown format")
	}
}
