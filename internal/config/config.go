// Package config handles tool configuration loading and management.
package config

// Config holds all importer and converter settings.
type Config struct {
	Data    DataConfig    `yaml:"data"`
	Convert ConvertConfig `yaml:"convert"`
	Logging LoggingConfig `yaml:"logging"`
}

// DataConfig holds level data locations.
type DataConfig struct {
	AssetRoot     string `yaml:"asset_root"`     // One directory per level asset id
	KeyTable      string `yaml:"key_table"`      // Transparency key table
	LevelsFile    string `yaml:"levels_file"`    // Optional extra level definitions (YAML)
	TextureFormat string `yaml:"texture_format"` // Converted texture format: png or webp
}

// ConvertConfig holds texture converter settings.
type ConvertConfig struct {
	SourceExts []string `yaml:"source_exts"` // Raw bitmap extensions to convert
	Force      bool     `yaml:"force"`       // Convert even if the tree is marked converted
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Data: DataConfig{
			AssetRoot:     "M64_Levels",
			KeyTable:      "transparent.txt",
			LevelsFile:    "",
			TextureFormat: "png",
		},
		Convert: ConvertConfig{
			SourceExts: []string{".bmp"},
			Force:      false,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
