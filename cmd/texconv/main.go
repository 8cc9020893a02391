// texconv converts raw level bitmaps into alpha-capable textures.
//
// Usage:
//
//	texconv [-config file] [-assets dir] [-keys file] [-format png|webp] [-force] [root]
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/m64vr/internal/config"
	"github.com/Faultbox/m64vr/internal/convert"
	"github.com/Faultbox/m64vr/internal/logger"
	"github.com/Faultbox/m64vr/pkg/formats"
)

func main() {
	os.Exit(run())
}

func run() int {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		return 1
	}
	if args := config.Args(); len(args) > 0 {
		cfg.Data.AssetRoot = args[0]
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		return 1
	}
	defer logger.Sync()

	keys, err := formats.LoadKeyTable(cfg.Data.KeyTable)
	if err != nil {
		logger.Error("loading key table", zap.Error(err))
		return 1
	}
	logger.Info("key table loaded", zap.String("path", cfg.Data.KeyTable), zap.Int("entries", keys.Len()))

	report, err := convert.Run(convert.Options{
		Root:       cfg.Data.AssetRoot,
		Keys:       keys,
		Format:     cfg.Data.TextureFormat,
		SourceExts: cfg.Convert.SourceExts,
		Force:      cfg.Convert.Force,
	})
	if err != nil {
		logger.Error("conversion failed", zap.Error(err))
		return 1
	}

	if report.Skipped {
		fmt.Printf("%s: already converted (%d textures), use -force to rerun\n", cfg.Data.AssetRoot, report.Converted)
		return 0
	}
	fmt.Printf("%s: converted %d textures (%d keyed) to %s\n",
		cfg.Data.AssetRoot, report.Converted, report.Keyed, cfg.Data.TextureFormat)
	return 0
}
