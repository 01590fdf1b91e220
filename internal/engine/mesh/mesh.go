package mesh

import (
	"fmt"
	gomath "math"
	"os"
)

// Mesh holds parallel vertex arrays ready for upload.
// Positions and Normals have 3 values per vertex, Colors 4.
type Mesh struct {
	Positions  []float32
	Normals    []float32
	Colors     []float32
	Indices    []uint32
	IndexCount int32
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions) / 3
}

// Color is an RGBA color.
type Color [4]float32

// Part colors.
var (
	ColorTerrain   = Color{1.0, 1.0, 1.0, 1.0}
	ColorBody      = Color{0.3, 0.3, 0.3, 1.0}
	ColorDoor      = Color{0.1, 0.1, 0.3, 1.0}
	ColorMainRotor = Color{0.3, 0.1, 0.1, 1.0}
	ColorTailRotor = Color{0.1, 0.3, 0.1, 1.0}
)

type vertexKey struct {
	position int
	normal   int
	face     int // only set when the normal is synthesized
}

// FromObject flattens an OBJ object to a single-index triangle mesh.
// Polygons are fan-triangulated. Corners without a normal get the face normal.
func FromObject(o *OBJ, obj *Object, color Color) *Mesh {
	m := &Mesh{}
	seen := make(map[vertexKey]uint32)

	for fi, face := range obj.Faces {
		faceNormal := flatNormal(o, face)

		corner := func(c Corner) uint32 {
			key := vertexKey{position: c.Position, normal: c.Normal}
			if c.Normal < 0 {
				key.face = fi
			}
			if idx, ok := seen[key]; ok {
				return idx
			}

			idx := uint32(m.VertexCount())
			p := o.Positions[c.Position]
			n := faceNormal
			if c.Normal >= 0 {
				n = o.Normals[c.Normal]
			}
			m.Positions = append(m.Positions, p[0], p[1], p[2])
			m.Normals = append(m.Normals, n[0], n[1], n[2])
			m.Colors = append(m.Colors, color[0], color[1], color[2], color[3])
			seen[key] = idx
			return idx
		}

		first := corner(face[0])
		for i := 1; i+1 < len(face); i++ {
			m.Indices = append(m.Indices, first, corner(face[i]), corner(face[i+1]))
		}
	}

	m.IndexCount = int32(len(m.Indices))
	return m
}

// flatNormal computes the normal of the first triangle of a face.
func flatNormal(o *OBJ, face []Corner) [3]float32 {
	a := o.Positions[face[0].Position]
	b := o.Positions[face[1].Position]
	c := o.Positions[face[2].Position]

	e1 := [3]float32{b[0] - a[0], b[1] - a[1], b[2] - a[2]}
	e2 := [3]float32{c[0] - a[0], c[1] - a[1], c[2] - a[2]}
	n := [3]float32{
		e1[1]*e2[2] - e1[2]*e2[1],
		e1[2]*e2[0] - e1[0]*e2[2],
		e1[0]*e2[1] - e1[1]*e2[0],
	}

	l := float32(gomath.Sqrt(float64(n[0]*n[0] + n[1]*n[1] + n[2]*n[2])))
	if l < 1e-6 {
		return [3]float32{0, 1, 0}
	}
	return [3]float32{n[0] / l, n[1] / l, n[2] / l}
}

// ReadFile parses the OBJ file at path.
func ReadFile(path string) (*OBJ, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	o, err := ReadOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return o, nil
}

// LoadTerrain loads a terrain model. All objects in the file are merged.
func LoadTerrain(path string) (*Mesh, error) {
	o, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(o.Objects) == 0 {
		return nil, fmt.Errorf("%s: no faces", path)
	}

	merged := &Object{Name: "terrain"}
	for _, obj := range o.Objects {
		merged.Faces = append(merged.Faces, obj.Faces...)
	}
	return FromObject(o, merged, ColorTerrain), nil
}

// Helicopter object names in the model file.
const (
	PartBody      = "Body_body"
	PartDoor      = "Door_door"
	PartMainRotor = "Main_Rotor_main_rotor"
	PartTailRotor = "Tail_Rotor_tail_rotor"
)

// Helicopter holds the separately animated parts of the helicopter model.
type Helicopter struct {
	Body      *Mesh
	Door      *Mesh
	MainRotor *Mesh
	TailRotor *Mesh
}

// LoadHelicopter loads the helicopter model and splits it into parts.
func LoadHelicopter(path string) (*Helicopter, error) {
	o, err := ReadFile(path)
	if err != nil {
		return nil, err
	}

	part := func(name string, color Color) (*Mesh, error) {
		obj := o.Object(name)
		if obj == nil {
			return nil, fmt.Errorf("%s: missing object %q", path, name)
		}
		return FromObject(o, obj, color), nil
	}

	h := &Helicopter{}
	if h.Body, err = part(PartBody, ColorBody); err != nil {
		return nil, err
	}
	if h.Door, err = part(PartDoor, ColorDoor); err != nil {
		return nil, err
	}
	if h.MainRotor, err = part(PartMainRotor, ColorMainRotor); err != nil {
		return nil, err
	}
	if h.TailRotor, err = part(PartTailRotor, ColorTailRotor); err != nil {
		return nil, err
	}
	return h, nil
}
