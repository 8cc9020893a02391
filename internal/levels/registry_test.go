package levels

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Faultbox/m64vr/pkg/formats"
	"github.com/Faultbox/m64vr/pkg/math"
)

func TestBuiltin(t *testing.T) {
	r := Builtin()

	if r.Len() != 9 {
		t.Errorf("expected 9 builtin levels, got %d", r.Len())
	}

	names := r.Names()
	if names[0] != "Castle Exterior" {
		t.Errorf("expected Castle Exterior first, got %s", names[0])
	}

	def, ok := r.Lookup("Castle Exterior")
	if !ok {
		t.Fatal("Castle Exterior not found")
	}
	if def.Asset != 26 {
		t.Errorf("expected asset 26, got %d", def.Asset)
	}
	if def.Viewpoint != (math.Vec3{X: 17.5, Y: 2.7, Z: 39.1}) {
		t.Errorf("unexpected viewpoint %v", def.Viewpoint)
	}
	if def.Scale != 1 {
		t.Errorf("expected default scale 1, got %f", def.Scale)
	}

	f, err := def.Filter()
	if err != nil {
		t.Fatalf("Filter failed: %v", err)
	}
	for _, id := range []int{2, 5, 18, 23, 34, 36, 43} {
		if !f.Excludes(id) {
			t.Errorf("expected material %d excluded", id)
		}
	}
	for _, id := range []int{1, 3, 35, 44} {
		if f.Excludes(id) {
			t.Errorf("expected material %d kept", id)
		}
	}
}

func TestBuiltin_LinkedArea(t *testing.T) {
	def, ok := Builtin().Lookup("Wet-Dry World")
	if !ok {
		t.Fatal("Wet-Dry World not found")
	}
	if !def.Indoor {
		t.Error("expected Wet-Dry World to be indoor")
	}
	if def.Link == nil || def.Link.Asset != 18 {
		t.Fatalf("expected linked area 18, got %+v", def.Link)
	}

	lf, err := def.LinkFilter()
	if err != nil {
		t.Fatalf("LinkFilter failed: %v", err)
	}
	if !lf.Excludes(17) || lf.Excludes(19) {
		t.Error("linked area rules not applied")
	}

	tiny, _ := Builtin().Lookup("Tiny-Huge Island (Tiny)")
	if tiny.EffectiveScale() != 0.25 {
		t.Errorf("expected scale 0.25, got %f", tiny.EffectiveScale())
	}
	castle, _ := Builtin().Lookup("Castle Exterior")
	if lf, err := castle.LinkFilter(); err != nil || lf != nil {
		t.Errorf("expected nil link filter, got %v, %v", lf, err)
	}
}

func TestNewRegistry_Invalid(t *testing.T) {
	_, err := NewRegistry(LevelDef{Name: "Broken", Asset: 1, Exclude: []string{"4", "7-x"}})
	if !errors.Is(err, formats.ErrInvalidNumber) {
		t.Fatalf("expected invalid number, got %v", err)
	}
	if !strings.Contains(err.Error(), "Broken") {
		t.Errorf("error should name the level: %v", err)
	}

	_, err = NewRegistry(LevelDef{Name: "BadLink", Asset: 1, Link: &LinkedArea{Asset: 2, Exclude: []string{"3-1"}}})
	if !errors.Is(err, formats.ErrInvalidRange) {
		t.Errorf("expected invalid range, got %v", err)
	}

	_, err = NewRegistry(LevelDef{Asset: 3})
	if !errors.Is(err, formats.ErrMissingField) {
		t.Errorf("expected missing name error, got %v", err)
	}
}

func TestNewRegistry_Replace(t *testing.T) {
	r, err := NewRegistry(
		LevelDef{Name: "A", Asset: 1},
		LevelDef{Name: "B", Asset: 2},
		LevelDef{Name: "A", Asset: 3},
	)
	if err != nil {
		t.Fatalf("NewRegistry failed: %v", err)
	}
	if r.Len() != 2 {
		t.Errorf("expected 2 levels, got %d", r.Len())
	}
	if d, _ := r.Lookup("A"); d.Asset != 3 {
		t.Errorf("expected replaced asset 3, got %d", d.Asset)
	}
	if names := r.Names(); names[0] != "A" || names[1] != "B" {
		t.Errorf("unexpected order %v", names)
	}
}

func TestMerge(t *testing.T) {
	base, _ := NewRegistry(LevelDef{Name: "A", Asset: 1}, LevelDef{Name: "B", Asset: 2})
	extra, _ := NewRegistry(LevelDef{Name: "B", Asset: 20}, LevelDef{Name: "C", Asset: 3})

	m := base.Merge(extra)
	if m.Len() != 3 {
		t.Fatalf("expected 3 levels, got %d", m.Len())
	}
	if d, _ := m.Lookup("B"); d.Asset != 20 {
		t.Errorf("expected override asset 20, got %d", d.Asset)
	}
	if names := m.Names(); strings.Join(names, ",") != "A,B,C" {
		t.Errorf("unexpected order %v", names)
	}
	// Merge must not modify its inputs.
	if d, _ := base.Lookup("B"); d.Asset != 2 {
		t.Errorf("base registry modified: %d", d.Asset)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "levels.yaml")
	content := `
levels:
  - name: Hazy Maze Cave
    asset: 10
    viewpoint: {x: 73.27, y: 21.61, z: 74.48}
    indoor: true
    exclude: ["38-62"]
  - name: Tall, Tall Mountain
    asset: 46
    scale: 0.5
    exclude: ["6-11", "13-17"]
    link:
      asset: 47
      exclude: ["1"]
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write levels file: %v", err)
	}

	r, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if r.Len() != 2 {
		t.Fatalf("expected 2 levels, got %d", r.Len())
	}

	hmc, _ := r.Lookup("Hazy Maze Cave")
	if hmc.Asset != 10 || !hmc.Indoor || hmc.Scale != 1 {
		t.Errorf("unexpected definition %+v", hmc)
	}
	if hmc.Viewpoint.Y != 21.61 {
		t.Errorf("unexpected viewpoint %v", hmc.Viewpoint)
	}

	ttm, _ := r.Lookup("Tall, Tall Mountain")
	if ttm.Scale != 0.5 || ttm.Link == nil || ttm.Link.Asset != 47 {
		t.Errorf("unexpected definition %+v", ttm)
	}
}

func TestLoadFile_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadFile(filepath.Join(dir, "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}

	bad := filepath.Join(dir, "bad.yaml")
	os.WriteFile(bad, []byte("levels:\n  - name: X\n    asset: 1\n    exclude: [\"1-\"]\n"), 0644)
	if _, err := LoadFile(bad); !errors.Is(err, formats.ErrInvalidNumber) {
		t.Errorf("expected invalid number, got %v", err)
	}

	malformed := filepath.Join(dir, "malformed.yaml")
	os.WriteFile(malformed, []byte("levels: [\n"), 0644)
	var cerr *formats.ConfigError
	if _, err := LoadFile(malformed); !errors.As(err, &cerr) {
		t.Errorf("expected *formats.ConfigError, got %v", err)
	}
}
