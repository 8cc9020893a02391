package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"

	"go.uber.org/zap"
	"golang.org/x/image/webp"

	"github.com/Faultbox/m64vr/internal/assets"
	"github.com/Faultbox/m64vr/internal/logger"
	"github.com/Faultbox/m64vr/pkg/formats"
)

// Shader is the material variant used to render a texture.
type Shader int

const (
	ShaderOpaque Shader = iota
	// ShaderTransparent is the alpha-tested cutout variant.
	ShaderTransparent
)

func (s Shader) String() string {
	switch s {
	case ShaderOpaque:
		return "opaque"
	case ShaderTransparent:
		return "transparent"
	default:
		return fmt.Sprintf("Shader(%d)", int(s))
	}
}

// Material is a loaded texture and its shader variant.
type Material struct {
	ID     int
	Name   string
	Image  *image.NRGBA
	Shader Shader
}

// decoders maps texture extensions to decoders. image.Decode is not usable
// here: the TGA decoder registers an empty magic that matches any input.
var decoders = map[string]func(io.Reader) (image.Image, error){
	"png":  png.Decode,
	"webp": webp.Decode,
}

// Loader resolves material textures for level assets.
type Loader struct {
	assets *assets.Manager
	keys   *formats.KeyTable
}

// NewLoader creates a texture loader. keys may be nil, in which case every
// material is opaque.
func NewLoader(mgr *assets.Manager, keys *formats.KeyTable) *Loader {
	return &Loader{assets: mgr, keys: keys}
}

// Load reads and decodes the texture for a material of a level asset.
func (l *Loader) Load(asset, material int) (*Material, error) {
	data, err := l.assets.ReadTexture(asset, material)
	if err != nil {
		return nil, err
	}

	name := l.assets.TexturePath(asset, material)
	format := l.assets.TextureExt()
	decode, ok := decoders[format]
	if !ok {
		return nil, fmt.Errorf("decoding texture %s: unsupported format %q", name, format)
	}
	img, err := decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding texture %s: %w", name, err)
	}

	shader := ShaderOpaque
	if _, ok := l.keys.Lookup(asset, material); ok {
		shader = ShaderTransparent
	}

	nrgba := ToNRGBA(img)
	alpha := HasTransparency(nrgba)
	if shader == ShaderTransparent && !alpha {
		logger.Warn("keyed texture has no transparent pixels, was it converted?",
			zap.String("path", name))
	}

	logger.Debug("texture loaded",
		zap.String("path", name),
		zap.String("format", format),
		zap.Int("width", img.Bounds().Dx()),
		zap.Int("height", img.Bounds().Dy()),
		zap.Bool("alpha", alpha),
		zap.Stringer("shader", shader))

	return &Material{
		ID:     material,
		Name:   name,
		Image:  nrgba,
		Shader: shader,
	}, nil
}
