// Package convert turns raw level bitmaps into alpha-capable images, keying
// out one colour per texture as listed in the transparency key table.
package convert

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"go.uber.org/zap"
	"golang.org/x/image/bmp"

	"github.com/Faultbox/m64vr/internal/engine/texture"
	"github.com/Faultbox/m64vr/internal/logger"
	"github.com/Faultbox/m64vr/pkg/formats"
)

// Output formats.
const (
	FormatPNG  = "png"
	FormatWebP = "webp"
)

// ConversionError reports a source image that could not be converted.
type ConversionError struct {
	Path string
	Err  error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("convert %s: %v", e.Path, e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }

// Options configures a batch run.
type Options struct {
	Root       string
	Keys       *formats.KeyTable
	Format     string   // FormatPNG or FormatWebP, default png
	SourceExts []string // default [".bmp"]
	Force      bool     // run even if the root is already converted
}

// Report is the result of a batch run.
type Report struct {
	Status    Status
	Skipped   bool // already converted, nothing was done
	Converted int
	Keyed     int
	Outputs   []string
}

type decodeFunc func(io.Reader) (image.Image, error)

var decoders = map[string]decodeFunc{
	".bmp": bmp.Decode,
	".tga": tga.Decode,
}

// Run converts every source bitmap under opts.Root. A root already converted
// to the same format with the same key table is skipped unless opts.Force is
// set. The first failure aborts the batch, records Failed in the manifest and
// is returned.
func Run(opts Options) (*Report, error) {
	if opts.Format == "" {
		opts.Format = FormatPNG
	}
	if len(opts.SourceExts) == 0 {
		opts.SourceExts = []string{".bmp"}
	}
	if opts.Format != FormatPNG && opts.Format != FormatWebP {
		return nil, fmt.Errorf("unsupported output format %q", opts.Format)
	}
	for _, ext := range opts.SourceExts {
		if _, ok := decoders[strings.ToLower(ext)]; !ok {
			return nil, fmt.Errorf("unsupported source extension %q", ext)
		}
	}

	prev, err := ReadManifest(opts.Root)
	if err != nil {
		return nil, err
	}
	digest := opts.Keys.Digest()
	if prev.Status == Converted && prev.Format == opts.Format && prev.Keys == digest && !opts.Force {
		logger.Info("textures already converted",
			zap.String("root", opts.Root),
			zap.String("format", opts.Format),
			zap.Int("converted", prev.Converted))
		return &Report{Status: Converted, Skipped: true, Converted: prev.Converted, Keyed: prev.Keyed}, nil
	}

	m := &Manifest{Format: opts.Format, Keys: digest, Started: time.Now().UTC()}
	report := &Report{}

	walkErr := filepath.WalkDir(opts.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !hasExt(path, opts.SourceExts) {
			return nil
		}

		out, keyed, err := convertFile(path, opts)
		if err != nil {
			return err
		}
		report.Converted++
		if keyed {
			report.Keyed++
		}
		report.Outputs = append(report.Outputs, out)
		return nil
	})

	m.Finished = time.Now().UTC()
	m.Converted = report.Converted
	m.Keyed = report.Keyed

	if walkErr != nil {
		m.Status = Failed
		m.Error = walkErr.Error()
		report.Status = Failed
		if err := writeManifest(opts.Root, m); err != nil {
			logger.Warn("cannot record failed conversion", zap.Error(err))
		}
		logger.Error("texture conversion failed",
			zap.String("root", opts.Root),
			zap.Int("converted", report.Converted),
			zap.Error(walkErr))
		return report, walkErr
	}

	m.Status = Converted
	report.Status = Converted
	if err := writeManifest(opts.Root, m); err != nil {
		return report, err
	}

	logger.Info("texture conversion complete",
		zap.String("root", opts.Root),
		zap.String("format", opts.Format),
		zap.Int("converted", report.Converted),
		zap.Int("keyed", report.Keyed),
		zap.Duration("elapsed", m.Finished.Sub(m.Started)))

	return report, nil
}

// convertFile converts one source bitmap and returns the output path and
// whether a key colour applied.
func convertFile(path string, opts Options) (string, bool, error) {
	ext := filepath.Ext(path)
	decode := decoders[strings.ToLower(ext)]

	f, err := os.Open(path)
	if err != nil {
		return "", false, &ConversionError{Path: path, Err: err}
	}
	img, err := decode(f)
	f.Close()
	if err != nil {
		return "", false, &ConversionError{Path: path, Err: fmt.Errorf("decoding: %w", err)}
	}

	var key *formats.KeyColor
	if k, ok := lookupKey(opts.Keys, path); ok {
		key = &k
	}
	out := texture.ApplyColorKey(img, key)

	outPath := strings.TrimSuffix(path, ext) + "." + opts.Format
	if err := writeImage(outPath, opts.Format, out); err != nil {
		return "", false, &ConversionError{Path: path, Err: err}
	}

	logger.Debug("converted texture",
		zap.String("source", path),
		zap.String("output", outPath),
		zap.Bool("keyed", key != nil))

	return outPath, key != nil, nil
}

// lookupKey derives the level/material key from the parent directory and the
// file stem. Paths that do not name two numeric ids have no key.
func lookupKey(keys *formats.KeyTable, path string) (formats.KeyColor, bool) {
	composite := filepath.Base(filepath.Dir(path)) + "/" + filepath.Base(path)
	k, err := formats.ParseAssetKey(composite)
	if err != nil {
		return formats.KeyColor{}, false
	}
	return keys.Lookup(k.Level, k.Material)
}

func writeImage(path, format string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	switch format {
	case FormatWebP:
		err = nativewebp.Encode(f, img, nil)
	default:
		err = png.Encode(f, img)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("encoding %s: %w", format, err)
	}
	return nil
}

func hasExt(path string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return slices.ContainsFunc(exts, func(e string) bool {
		return strings.ToLower(e) == ext
	})
}
