package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Data.AssetRoot != "M64_Levels" {
		t.Errorf("expected asset root M64_Levels, got %s", cfg.Data.AssetRoot)
	}
	if cfg.Data.KeyTable != "transparent.txt" {
		t.Errorf("expected key table transparent.txt, got %s", cfg.Data.KeyTable)
	}
	if cfg.Data.TextureFormat != "png" {
		t.Errorf("expected texture format png, got %s", cfg.Data.TextureFormat)
	}
	if len(cfg.Convert.SourceExts) != 1 || cfg.Convert.SourceExts[0] != ".bmp" {
		t.Errorf("expected source exts [.bmp], got %v", cfg.Convert.SourceExts)
	}
	if cfg.Convert.Force {
		t.Error("expected force to be false by default")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
data:
  asset_root: /games/m64/levels
  key_table: /games/m64/transparent.txt
  levels_file: extra_levels.yaml
  texture_format: webp

convert:
  source_exts: [".bmp", ".tga"]
  force: true

logging:
  level: "debug"
  log_file: "import.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Data.AssetRoot != "/games/m64/levels" {
		t.Errorf("unexpected asset root %s", cfg.Data.AssetRoot)
	}
	if cfg.Data.KeyTable != "/games/m64/transparent.txt" {
		t.Errorf("unexpected key table %s", cfg.Data.KeyTable)
	}
	if cfg.Data.LevelsFile != "extra_levels.yaml" {
		t.Errorf("unexpected levels file %s", cfg.Data.LevelsFile)
	}
	if cfg.Data.TextureFormat != "webp" {
		t.Errorf("unexpected texture format %s", cfg.Data.TextureFormat)
	}
	if len(cfg.Convert.SourceExts) != 2 || cfg.Convert.SourceExts[1] != ".tga" {
		t.Errorf("unexpected source exts %v", cfg.Convert.SourceExts)
	}
	if !cfg.Convert.Force {
		t.Error("expected force to be true")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "import.log" {
		t.Errorf("expected log file 'import.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
data:
  asset_root: [unterminated
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"webp", func(c *Config) { c.Data.TextureFormat = "webp" }, false},
		{"jpeg", func(c *Config) { c.Data.TextureFormat = "jpeg" }, true},
		{"no asset root", func(c *Config) { c.Data.AssetRoot = "" }, true},
		{"no source exts", func(c *Config) { c.Convert.SourceExts = nil }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if err := os.WriteFile("config.yaml", []byte("data:\n  asset_root: levels\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "assets and keys flags",
			setup: func() { *flagAssets = "/data/levels"; *flagKeys = "/data/keys.txt" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Data.AssetRoot != "/data/levels" {
					t.Errorf("unexpected asset root %s", cfg.Data.AssetRoot)
				}
				if cfg.Data.KeyTable != "/data/keys.txt" {
					t.Errorf("unexpected key table %s", cfg.Data.KeyTable)
				}
			},
			teardown: func() { *flagAssets = ""; *flagKeys = "" },
		},
		{
			name:  "format and force flags",
			setup: func() { *flagFormat = "webp"; *flagForce = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Data.TextureFormat != "webp" {
					t.Errorf("unexpected format %s", cfg.Data.TextureFormat)
				}
				if !cfg.Convert.Force {
					t.Error("expected force to be set")
				}
			},
			teardown: func() { *flagFormat = ""; *flagForce = false },
		},
		{
			name:  "levels flag",
			setup: func() { *flagLevels = "more.yaml" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Data.LevelsFile != "more.yaml" {
					t.Errorf("unexpected levels file %s", cfg.Data.LevelsFile)
				}
			},
			teardown: func() { *flagLevels = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)

			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
data:
  asset_root: from-file
  key_table: keys-from-file.txt
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagAssets = "from-flag"
	defer func() {
		*flagConfig = ""
		*flagAssets = ""
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Data.AssetRoot != "from-flag" {
		t.Errorf("expected asset root from flag, got %s", cfg.Data.AssetRoot)
	}
	if cfg.Data.KeyTable != "keys-from-file.txt" {
		t.Errorf("expected key table from file, got %s", cfg.Data.KeyTable)
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Data.TextureFormat = "webp"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if loaded.Data.TextureFormat != "webp" {
		t.Errorf("expected webp after reload, got %s", loaded.Data.TextureFormat)
	}
}

func TestSave(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME only applies on linux")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg := Default()
	cfg.Data.KeyTable = "keys/transparent.txt"
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	path := findConfigFile()
	if path != filepath.Join(ConfigDir(), "config.yaml") {
		t.Fatalf("saved config not found in config dir, got %q", path)
	}
	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if loaded.Data.KeyTable != "keys/transparent.txt" {
		t.Errorf("expected saved key table, got %s", loaded.Data.KeyTable)
	}
}
