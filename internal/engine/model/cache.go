package model

import "github.com/Faultbox/m64vr/internal/engine/texture"

// materialCache loads each material id at most once per build.
type materialCache struct {
	load   MaterialFunc
	items  map[int]*texture.Material
	hits   int
	misses int
}

func newMaterialCache(load MaterialFunc) *materialCache {
	return &materialCache{
		load:  load,
		items: make(map[int]*texture.Material),
	}
}

// Get returns the material for id, loading it on first use.
func (c *materialCache) Get(id int) (*texture.Material, error) {
	if m, ok := c.items[id]; ok {
		c.hits++
		return m, nil
	}
	c.misses++

	m, err := c.load(id)
	if err != nil {
		return nil, err
	}
	c.items[id] = m
	return m, nil
}

// Stats returns cache statistics.
func (c *materialCache) Stats() (hits, misses int) {
	return c.hits, c.misses
}
