// Package scene loads a selected level into meshes and materials.
package scene

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/m64vr/internal/assets"
	"github.com/Faultbox/m64vr/internal/engine/model"
	"github.com/Faultbox/m64vr/internal/engine/texture"
	"github.com/Faultbox/m64vr/internal/levels"
	"github.com/Faultbox/m64vr/internal/logger"
	"github.com/Faultbox/m64vr/pkg/formats"
	"github.com/Faultbox/m64vr/pkg/math"
)

// Scene is a loaded level.
type Scene struct {
	Name      string
	Viewpoint math.Vec3
	Indoor    bool
	Main      *model.Mesh
	// Link is the linked area mesh, nil when the level has none.
	Link *model.Mesh
}

// Loader imports levels from an asset tree.
type Loader struct {
	assets   *assets.Manager
	textures *texture.Loader
}

// NewLoader creates a level loader.
func NewLoader(mgr *assets.Manager, textures *texture.Loader) *Loader {
	return &Loader{assets: mgr, textures: textures}
}

// Load imports the level described by def. Nothing is returned unless every
// mesh and texture of the level loads.
func (l *Loader) Load(def *levels.LevelDef) (*Scene, error) {
	start := time.Now()

	filter, err := def.Filter()
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", def.Name, err)
	}
	main, err := l.loadMesh(def.Asset, filter, def.EffectiveScale())
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", def.Name, err)
	}

	s := &Scene{
		Name:      def.Name,
		Viewpoint: def.Viewpoint,
		Indoor:    def.Indoor,
		Main:      main,
	}

	if def.Link != nil {
		linkFilter, err := def.LinkFilter()
		if err != nil {
			return nil, fmt.Errorf("level %s link: %w", def.Name, err)
		}
		s.Link, err = l.loadMesh(def.Link.Asset, linkFilter, def.EffectiveScale())
		if err != nil {
			return nil, fmt.Errorf("level %s link: %w", def.Name, err)
		}
	}

	logger.Info("level loaded",
		zap.String("level", def.Name),
		zap.Int("asset", def.Asset),
		zap.Int("submeshes", len(main.Submeshes)),
		zap.Bool("linked", s.Link != nil),
		zap.Duration("elapsed", time.Since(start)))

	return s, nil
}

func (l *Loader) loadMesh(asset int, filter levels.MaterialFilter, scale float32) (*model.Mesh, error) {
	f, err := l.assets.OpenModel(asset)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	obj, err := formats.ParseOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", assets.ModelPath(asset), err)
	}
	logger.Debug("parsed model",
		zap.String("path", assets.ModelPath(asset)),
		zap.Int("vertices", len(obj.Vertices)),
		zap.Int("texcoords", len(obj.TexCoords)),
		zap.Int("groups", len(obj.Groups)),
		zap.Int("emptyGroups", obj.DroppedGroups))

	return model.BuildMesh(obj, model.BuildOptions{
		Exclude: filter,
		Materials: func(id int) (*texture.Material, error) {
			return l.textures.Load(asset, id)
		},
		Scale: scale,
	})
}
