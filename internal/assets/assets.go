// Package assets resolves level files inside one or more asset roots.
//
// The layout is one directory per level asset id holding model.obj and one
// image per material id:
//
//	M64_Levels/26/model.obj
//	M64_Levels/26/1.png
//	M64_Levels/26/1.bmp   (raw bitmap, input of the texture converter)
package assets

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"strconv"
)

// ModelFile is the geometry file name inside each asset directory.
const ModelFile = "model.obj"

// ResourceNotFoundError reports a model or texture file missing from every root.
type ResourceNotFoundError struct {
	Path string
	Err  error
}

func (e *ResourceNotFoundError) Error() string {
	return fmt.Sprintf("resource not found: %s", e.Path)
}

func (e *ResourceNotFoundError) Unwrap() error { return e.Err }

// Manager handles asset lookup across roots. Roots are searched in reverse
// order (last added = highest priority), so an override directory can shadow
// individual textures of the extracted tree.
type Manager struct {
	roots      []fs.FS
	textureExt string
}

// NewManager creates a manager that reads textures with the given extension
// ("png" or "webp").
func NewManager(textureExt string) *Manager {
	if textureExt == "" {
		textureExt = "png"
	}
	return &Manager{textureExt: textureExt}
}

// AddDir adds a directory root.
func (m *Manager) AddDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("opening asset root %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("opening asset root %s: not a directory", dir)
	}
	m.AddFS(os.DirFS(dir))
	return nil
}

// AddFS adds an arbitrary filesystem root.
func (m *Manager) AddFS(fsys fs.FS) {
	m.roots = append(m.roots, fsys)
}

// TextureExt returns the extension of converted textures.
func (m *Manager) TextureExt() string {
	return m.textureExt
}

// ModelPath returns the slash-separated path of a level's model file.
func ModelPath(asset int) string {
	return path.Join(strconv.Itoa(asset), ModelFile)
}

// TexturePath returns the slash-separated path of a material texture.
func (m *Manager) TexturePath(asset, material int) string {
	return path.Join(strconv.Itoa(asset), strconv.Itoa(material)+"."+m.textureExt)
}

// OpenModel opens a level's model file for streaming.
func (m *Manager) OpenModel(asset int) (io.ReadCloser, error) {
	return m.open(ModelPath(asset))
}

// ReadTexture reads a converted texture file.
func (m *Manager) ReadTexture(asset, material int) ([]byte, error) {
	f, err := m.open(m.TexturePath(asset, material))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", m.TexturePath(asset, material), err)
	}
	return data, nil
}

func (m *Manager) open(name string) (fs.File, error) {
	for i := len(m.roots) - 1; i >= 0; i-- {
		f, err := m.roots[i].Open(name)
		if err == nil {
			return f, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("opening %s: %w", name, err)
		}
	}
	return nil, &ResourceNotFoundError{Path: name, Err: fs.ErrNotExist}
}
