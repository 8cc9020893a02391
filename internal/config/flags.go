package config

import "flag"

var (
	flagConfig = flag.String("config", "", "Path to config file")
	flagDebug  = flag.Bool("debug", false, "Enable debug logging")
	flagAssets = flag.String("assets", "", "Level asset root directory")
	flagKeys   = flag.String("keys", "", "Transparency key table file")
	flagLevels = flag.String("levels", "", "Extra level definitions file (YAML)")
	flagFormat = flag.String("format", "", "Converted texture format (png or webp)")
	flagForce  = flag.Bool("force", false, "Convert textures even if already converted")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the non-flag command-line arguments.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagAssets != "" {
		cfg.Data.AssetRoot = *flagAssets
	}
	if *flagKeys != "" {
		cfg.Data.KeyTable = *flagKeys
	}
	if *flagLevels != "" {
		cfg.Data.LevelsFile = *flagLevels
	}
	if *flagFormat != "" {
		cfg.Data.TextureFormat = *flagFormat
	}
	if *flagForce {
		cfg.Convert.Force = true
	}
}
