package formats

import (
	"bufio"
	"cmp"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path"
	"slices"
	"strconv"
	"strings"

	"github.com/Faultbox/m64vr/pkg/encoding"
)

// AssetKey identifies one texture: the level asset directory and the material
// id inside it.
type AssetKey struct {
	Level    int
	Material int
}

// String returns the canonical "level/material" form.
func (k AssetKey) String() string {
	return fmt.Sprintf("%d/%d", k.Level, k.Material)
}

// KeyColor is the RGB value treated as transparent for one texture.
type KeyColor struct {
	R, G, B uint8
}

// Matches reports whether an RGB triple equals the key exactly.
func (c KeyColor) Matches(r, g, b uint8) bool {
	return c.R == r && c.G == g && c.B == b
}

// KeyTable maps textures to their transparency key colours. It is built once
// and only read afterwards. A nil *KeyTable behaves as an empty table.
type KeyTable struct {
	entries map[AssetKey]KeyColor
}

// ParseAssetKey parses a composite key. Accepted forms are "26/5", "26\5.bmp"
// and the same with any file extension or letter case.
func ParseAssetKey(s string) (AssetKey, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.ReplaceAll(key, "\\", "/")
	key = strings.TrimSuffix(key, path.Ext(key))

	parts := strings.Split(key, "/")
	if len(parts) != 2 {
		return AssetKey{}, fmt.Errorf("%w: key %q is not level/material", ErrInvalidRecord, s)
	}

	level, err := strconv.Atoi(parts[0])
	if err != nil {
		return AssetKey{}, fmt.Errorf("%w: level %q", ErrInvalidNumber, parts[0])
	}
	material, err := strconv.Atoi(parts[1])
	if err != nil {
		return AssetKey{}, fmt.Errorf("%w: material %q", ErrInvalidNumber, parts[1])
	}
	return AssetKey{Level: level, Material: material}, nil
}

// ParseKeyTable reads "key,R,G,B" records, one per line. Blank lines are
// skipped. A later record for the same key replaces the earlier one.
func ParseKeyTable(r io.Reader, source string) (*KeyTable, error) {
	t := &KeyTable{entries: make(map[AssetKey]KeyColor)}

	sc := bufio.NewScanner(encoding.NewTextReader(r))
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		key, c, err := parseKeyRecord(line)
		if err != nil {
			return nil, &ConfigError{Source: source, Line: lineNo, Text: line, Err: err}
		}
		t.entries[key] = c
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading key table %s: %w", source, err)
	}

	return t, nil
}

func parseKeyRecord(line string) (AssetKey, KeyColor, error) {
	fields := strings.Split(line, ",")
	if len(fields) != 4 {
		return AssetKey{}, KeyColor{}, fmt.Errorf("%w: want 4 fields, got %d", ErrInvalidRecord, len(fields))
	}

	key, err := ParseAssetKey(fields[0])
	if err != nil {
		return AssetKey{}, KeyColor{}, err
	}

	var rgb [3]uint8
	for i, f := range fields[1:] {
		v, err := strconv.ParseUint(strings.TrimSpace(f), 10, 8)
		if err != nil {
			return AssetKey{}, KeyColor{}, fmt.Errorf("%w: channel %q", ErrInvalidNumber, f)
		}
		rgb[i] = uint8(v)
	}

	return key, KeyColor{R: rgb[0], G: rgb[1], B: rgb[2]}, nil
}

// LoadKeyTable reads a key table file from disk. A missing or unreadable
// file is a ConfigError.
func LoadKeyTable(filename string) (*KeyTable, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, &ConfigError{Source: filename, Text: "key table", Err: err}
	}
	defer f.Close()

	return ParseKeyTable(f, filename)
}

// Lookup returns the key colour for a texture, if it has one.
func (t *KeyTable) Lookup(level, material int) (KeyColor, bool) {
	if t == nil {
		return KeyColor{}, false
	}
	c, ok := t.entries[AssetKey{Level: level, Material: material}]
	return c, ok
}

// Len returns the number of entries.
func (t *KeyTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Digest returns a hex SHA-256 over the sorted entries. Tables with the same
// entries have the same digest regardless of record order or duplicates.
func (t *KeyTable) Digest() string {
	var keys []AssetKey
	if t != nil {
		for k := range t.entries {
			keys = append(keys, k)
		}
	}
	slices.SortFunc(keys, func(a, b AssetKey) int {
		if c := cmp.Compare(a.Level, b.Level); c != 0 {
			return c
		}
		return cmp.Compare(a.Material, b.Material)
	})

	h := sha256.New()
	for _, k := range keys {
		c := t.entries[k]
		fmt.Fprintf(h, "%d/%d,%d,%d,%d\n", k.Level, k.Material, c.R, c.G, c.B)
	}
	return hex.EncodeToString(h.Sum(nil))
}
