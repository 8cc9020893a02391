package model

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/m64vr/internal/logger"
	"github.com/Faultbox/m64vr/pkg/formats"
	"github.com/Faultbox/m64vr/pkg/math"
)

// Build errors.
var (
	ErrIndexOutOfRange = errors.New("face index out of range")
	ErrNoMaterials     = errors.New("no material loader")
)

// BuildMesh creates a mesh from parsed OBJ data. Groups are visited in file
// order; excluded groups are dropped, and every kept triangle (a, b, c) gets
// a mirrored twin (a+n, c+n, b+n) over the doubled vertex buffer. Any
// material error aborts the build.
func BuildMesh(obj *formats.OBJ, opts BuildOptions) (*Mesh, error) {
	if opts.Materials == nil {
		return nil, ErrNoMaterials
	}

	n := uint32(len(obj.Vertices))
	if len(obj.TexCoords) != len(obj.Vertices) {
		logger.Warn("vertex and texture coordinate counts differ",
			zap.Int("vertices", len(obj.Vertices)),
			zap.Int("texcoords", len(obj.TexCoords)))
	}

	cache := newMaterialCache(opts.Materials)
	var submeshes []Submesh

	for i := range obj.Groups {
		group := &obj.Groups[i]
		if opts.Exclude != nil && opts.Exclude.Excludes(group.Material) {
			continue
		}
		if len(group.Indices) == 0 {
			continue
		}

		for _, idx := range group.Indices {
			if idx >= n {
				return nil, fmt.Errorf("%w: material %d (line %d) references vertex %d of %d",
					ErrIndexOutOfRange, group.Material, group.Line, idx+1, n)
			}
		}

		mat, err := cache.Get(group.Material)
		if err != nil {
			return nil, fmt.Errorf("loading material %d: %w", group.Material, err)
		}

		submeshes = append(submeshes, Submesh{
			Material: mat,
			Indices:  mirrorIndices(group.Indices, n),
		})
	}

	scale := opts.Scale
	if scale == 0 {
		scale = 1
	}

	mesh := &Mesh{
		Vertices:  doubleVertices(obj.Vertices, scale),
		UVs:       doubleUVs(obj.TexCoords),
		Submeshes: submeshes,
		Bounds:    calcBounds(obj.Vertices, scale),
	}

	hits, misses := cache.Stats()
	logger.Debug("mesh built",
		zap.Int("groups", len(obj.Groups)),
		zap.Int("submeshes", len(submeshes)),
		zap.Int("vertices", len(mesh.Vertices)),
		zap.Int("triangles", mesh.TotalTriangles()),
		zap.Int("materialHits", hits),
		zap.Int("materialMisses", misses))

	return mesh, nil
}

// mirrorIndices returns the group's triangles followed by their back faces.
func mirrorIndices(indices []uint32, n uint32) []uint32 {
	out := make([]uint32, 0, len(indices)*2)
	out = append(out, indices...)
	for t := 0; t+2 < len(indices); t += 3 {
		a, b, c := indices[t], indices[t+1], indices[t+2]
		out = append(out, a+n, c+n, b+n)
	}
	return out
}

func doubleVertices(src []math.Vec3, scale float32) []math.Vec3 {
	n := len(src)
	out := make([]math.Vec3, n*2)
	for i, v := range src {
		s := v.Scale(scale)
		out[i] = s
		out[i+n] = s
	}
	return out
}

func doubleUVs(src []math.Vec2) []math.Vec2 {
	out := make([]math.Vec2, 0, len(src)*2)
	out = append(out, src...)
	return append(out, src...)
}

func calcBounds(src []math.Vec3, scale float32) Bounds {
	if len(src) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: src[0].Scale(scale), Max: src[0].Scale(scale)}
	for _, v := range src[1:] {
		s := v.Scale(scale)
		b.Min = b.Min.Min(s)
		b.Max = b.Max.Max(s)
	}
	return b
}
