// Package levels holds the level definition registry: which asset directory a
// level lives in, where the viewer starts, and which materials are hidden.
package levels

import (
	"errors"
	"fmt"
	"os"

	"github.com/Faultbox/m64vr/pkg/formats"
	"github.com/Faultbox/m64vr/pkg/math"
	"gopkg.in/yaml.v3"
)

// LinkedArea is a secondary geometry region shown together with a level,
// with its own asset directory and exclusion rules.
type LinkedArea struct {
	Asset   int      `yaml:"asset"`
	Exclude []string `yaml:"exclude"`
}

// LevelDef describes one selectable level.
type LevelDef struct {
	Name      string      `yaml:"name"`
	Asset     int         `yaml:"asset"`     // Asset directory id
	Viewpoint math.Vec3   `yaml:"viewpoint"` // Initial viewer position
	Scale     float32     `yaml:"scale"`     // Uniform scale, 0 means 1
	Indoor    bool        `yaml:"indoor"`    // Consumers disable the sun
	Exclude   []string    `yaml:"exclude"`   // Material exclusion rules
	Link      *LinkedArea `yaml:"link,omitempty"`
}

// Filter compiles the level's exclusion rules.
func (d *LevelDef) Filter() (MaterialFilter, error) {
	return CompileFilter(d.Exclude)
}

// LinkFilter compiles the linked area's exclusion rules. It returns a nil
// filter when the level has no linked area.
func (d *LevelDef) LinkFilter() (MaterialFilter, error) {
	if d.Link == nil {
		return nil, nil
	}
	return CompileFilter(d.Link.Exclude)
}

// EffectiveScale returns Scale, treating the zero value as 1.
func (d *LevelDef) EffectiveScale() float32 {
	if d.Scale == 0 {
		return 1
	}
	return d.Scale
}

// validate checks the definition's rules once, at registration time.
func (d *LevelDef) validate() error {
	if d.Name == "" {
		return &formats.ConfigError{Text: fmt.Sprintf("asset %d", d.Asset), Err: fmt.Errorf("%w: level without name", formats.ErrMissingField)}
	}
	if _, err := d.Filter(); err != nil {
		return withSource(err, d.Name)
	}
	if _, err := d.LinkFilter(); err != nil {
		return withSource(err, d.Name+" (link)")
	}
	return nil
}

func withSource(err error, source string) error {
	var cerr *formats.ConfigError
	if errors.As(err, &cerr) {
		c := *cerr
		c.Source = source
		return &c
	}
	return fmt.Errorf("%s: %w", source, err)
}

// Registry maps level names to definitions. It is read-only once built.
type Registry struct {
	defs  map[string]*LevelDef
	order []string
}

// NewRegistry validates defs and returns a registry listing them in the given
// order. A later definition with an existing name replaces the earlier one.
func NewRegistry(defs ...LevelDef) (*Registry, error) {
	r := &Registry{defs: make(map[string]*LevelDef)}
	if err := r.add(defs); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Registry) add(defs []LevelDef) error {
	for i := range defs {
		d := defs[i]
		if err := d.validate(); err != nil {
			return err
		}
		if d.Scale == 0 {
			d.Scale = 1
		}
		if _, exists := r.defs[d.Name]; !exists {
			r.order = append(r.order, d.Name)
		}
		r.defs[d.Name] = &d
	}
	return nil
}

// Merge returns a new registry with other's definitions layered over r's.
func (r *Registry) Merge(other *Registry) *Registry {
	merged := &Registry{defs: make(map[string]*LevelDef, len(r.defs))}
	for _, src := range []*Registry{r, other} {
		for _, name := range src.order {
			if _, exists := merged.defs[name]; !exists {
				merged.order = append(merged.order, name)
			}
			merged.defs[name] = src.defs[name]
		}
	}
	return merged
}

// Lookup returns the definition for a level name.
func (r *Registry) Lookup(name string) (*LevelDef, bool) {
	d, ok := r.defs[name]
	return d, ok
}

// Names returns level names in definition order, the order menus show them.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Len returns the number of levels.
func (r *Registry) Len() int {
	return len(r.order)
}

// levelsFile is the YAML schema of an extra level definitions file.
type levelsFile struct {
	Levels []LevelDef `yaml:"levels"`
}

// LoadFile reads level definitions from a YAML file.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading levels file: %w", err)
	}

	var file levelsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, &formats.ConfigError{Source: path, Text: "levels", Err: err}
	}

	r, err := NewRegistry(file.Levels...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}
