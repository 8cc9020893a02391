package formats

import (
	"bufio"
	"fmt"
	"io"
	gomath "math"
	"strconv"
	"strings"

	"github.com/Faultbox/m64vr/pkg/encoding"
	"github.com/Faultbox/m64vr/pkg/math"
)

// Line prefixes understood by ParseOBJ. Everything else is ignored.
const (
	objMaterialPrefix = "usemtl mat"
	objVertexPrefix   = "v "
	objTexCoordPrefix = "vt "
	objFacePrefix     = "f "
)

// maxOBJLine bounds a single line; level exports stay far below it.
const maxOBJLine = 1 << 20

// OBJFaceGroup holds the faces of one material group in file order.
type OBJFaceGroup struct {
	Material int      // material id from "usemtl mat<id>"
	Line     int      // line of the usemtl statement
	Indices  []uint32 // zero-based vertex indices, three per triangle
}

// TriangleCount returns the number of triangles in the group.
func (g *OBJFaceGroup) TriangleCount() int {
	return len(g.Indices) / 3
}

// OBJ is a parsed level model. Face indices address Vertices directly; the
// vertex pool is shared by all groups and never renumbered.
type OBJ struct {
	Vertices  []math.Vec3
	TexCoords []math.Vec2
	Groups    []OBJFaceGroup
	// DroppedGroups counts usemtl groups that received no faces.
	DroppedGroups int
}

// objParser holds the state of one ParseOBJ call.
type objParser struct {
	obj     *OBJ
	current *OBJFaceGroup
	line    int
}

// ParseOBJ reads the restricted OBJ dialect written by the level extractor:
// "usemtl mat<id>" opens a group, "v" and "vt" append to the global pools,
// and "f" appends indices to the open group. A group that receives no faces
// before the next usemtl, or before EOF, is dropped.
func ParseOBJ(r io.Reader) (*OBJ, error) {
	p := &objParser{obj: &OBJ{}}

	sc := bufio.NewScanner(encoding.NewTextReader(r))
	sc.Buffer(make([]byte, 0, 64*1024), maxOBJLine)

	for sc.Scan() {
		p.line++
		if err := p.parseLine(strings.TrimSpace(sc.Text())); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading model: %w", err)
	}

	p.closeGroup()

	for i := range p.obj.Groups {
		g := &p.obj.Groups[i]
		if len(g.Indices)%3 != 0 {
			return nil, &ParseError{
				Line: g.Line,
				Text: fmt.Sprintf("usemtl mat%d", g.Material),
				Err:  fmt.Errorf("%w: %d indices", ErrIncompleteTriangle, len(g.Indices)),
			}
		}
	}

	return p.obj, nil
}

func (p *objParser) parseLine(line string) error {
	switch {
	case strings.HasPrefix(line, objMaterialPrefix):
		return p.parseMaterial(line)
	case strings.HasPrefix(line, objVertexPrefix):
		return p.parseVertex(line)
	case strings.HasPrefix(line, objTexCoordPrefix):
		return p.parseTexCoord(line)
	case strings.HasPrefix(line, objFacePrefix):
		return p.parseFace(line)
	}
	return nil
}

func (p *objParser) parseMaterial(line string) error {
	id, err := strconv.Atoi(strings.TrimSpace(line[len(objMaterialPrefix):]))
	if err != nil {
		return p.errorf(line, "%w: material id", ErrInvalidNumber)
	}

	p.closeGroup()
	p.obj.Groups = append(p.obj.Groups, OBJFaceGroup{Material: id, Line: p.line})
	p.current = &p.obj.Groups[len(p.obj.Groups)-1]
	return nil
}

// closeGroup drops the open group if it never received a face.
func (p *objParser) closeGroup() {
	if p.current == nil {
		return
	}
	if len(p.current.Indices) == 0 {
		p.obj.Groups = p.obj.Groups[:len(p.obj.Groups)-1]
		p.obj.DroppedGroups++
	}
	p.current = nil
}

func (p *objParser) parseVertex(line string) error {
	f, err := p.floats(line, objVertexPrefix, 3)
	if err != nil {
		return err
	}
	p.obj.Vertices = append(p.obj.Vertices, math.Vec3{X: f[0], Y: f[1], Z: f[2]})
	return nil
}

func (p *objParser) parseTexCoord(line string) error {
	f, err := p.floats(line, objTexCoordPrefix, 2)
	if err != nil {
		return err
	}
	p.obj.TexCoords = append(p.obj.TexCoords, math.Vec2{X: f[0], Y: f[1]})
	return nil
}

func (p *objParser) parseFace(line string) error {
	if p.current == nil {
		return p.errorf(line, "%w", ErrFaceOutsideGroup)
	}

	for _, tok := range strings.Fields(line[len(objFacePrefix):]) {
		field, _, _ := strings.Cut(tok, "/")
		idx, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			return p.errorf(line, "%w: face index %q", ErrInvalidNumber, tok)
		}
		if idx < 1 || idx > gomath.MaxUint32 {
			return p.errorf(line, "%w: %d", ErrBadIndex, idx)
		}
		p.current.Indices = append(p.current.Indices, uint32(idx-1))
	}
	return nil
}

// floats parses at least n float fields after prefix. Extra fields, such as
// the optional w of a vertex, are ignored.
func (p *objParser) floats(line, prefix string, n int) ([]float32, error) {
	fields := strings.Fields(line[len(prefix):])
	if len(fields) < n {
		return nil, p.errorf(line, "%w: want %d values, got %d", ErrMissingField, n, len(fields))
	}

	out := make([]float32, n)
	for i := range n {
		v, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, p.errorf(line, "%w: %q", ErrInvalidNumber, fields[i])
		}
		out[i] = float32(v)
	}
	return out, nil
}

func (p *objParser) errorf(line, format string, args ...any) error {
	return &ParseError{Line: p.line, Text: line, Err: fmt.Errorf(format, args...)}
}
