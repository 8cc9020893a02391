// Package model assembles parsed level geometry into a renderable mesh.
package model

import (
	"github.com/Faultbox/m64vr/internal/engine/texture"
	"github.com/Faultbox/m64vr/pkg/math"
)

// Mesh holds the assembled level geometry. Vertices and UVs are doubled for
// back faces: entries [n, 2n) mirror entries [0, n).
type Mesh struct {
	Vertices  []math.Vec3
	UVs       []math.Vec2
	Submeshes []Submesh
	Bounds    Bounds
}

// Submesh is one textured triangle list.
type Submesh struct {
	Material *texture.Material
	Indices  []uint32
}

// TriangleCount returns the number of triangles, mirrored ones included.
func (s *Submesh) TriangleCount() int {
	return len(s.Indices) / 3
}

// Bounds holds the axis-aligned bounding box of the mesh.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Size returns the extent of the box along each axis.
func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// Center returns the midpoint of the box.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Excluder reports whether a material id is left out of the mesh.
type Excluder interface {
	Excludes(id int) bool
}

// MaterialFunc resolves a material id to a loaded material.
type MaterialFunc func(id int) (*texture.Material, error)

// BuildOptions contains options for mesh building.
type BuildOptions struct {
	// Exclude drops whole face groups by material id. Nil keeps everything.
	Exclude Excluder
	// Materials loads the texture of a kept group. Required.
	Materials MaterialFunc
	// Scale is applied uniformly to every vertex. Zero means 1.
	Scale float32
}

// TotalTriangles sums triangle counts over all submeshes.
func (m *Mesh) TotalTriangles() int {
	n := 0
	for i := range m.Submeshes {
		n += m.Submeshes[i].TriangleCount()
	}
	return n
}
