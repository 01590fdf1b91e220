// Package gpu describes GPU-resident mesh resources and the fixed vertex
// attribute layout shared with the shader program.
package gpu

import "fmt"

// Vertex attribute slots. The shader binds to these locations explicitly;
// slots 2-4 are left unused.
const (
	AttribPosition uint32 = 0
	AttribColor    uint32 = 1
	AttribNormal   uint32 = 5
)

// Components per vertex for each attribute.
const (
	PositionComponents = 3
	ColorComponents    = 4
	NormalComponents   = 3
)

// Mesh is a handle to an uploaded vertex array.
// The zero value has no geometry and is never drawn.
type Mesh struct {
	VAO          uint32
	ElementCount int32
}

// Drawable reports whether the mesh has any indices to draw.
func (m Mesh) Drawable() bool {
	return m.ElementCount > 0
}

func (m Mesh) String() string {
	return fmt.Sprintf("vao=%d elements=%d", m.VAO, m.ElementCount)
}

// LayoutError describes a violation of the mesh array contract.
type LayoutError struct {
	Array string
	Got   int
	Want  int
}

func (e *LayoutError) Error() string {
	return fmt.Sprintf("mesh layout: %s has %d values, want %d", e.Array, e.Got, e.Want)
}

// IndexError describes an index that points past the last vertex.
type IndexError struct {
	Position int
	Index    uint32
	Vertices int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("mesh layout: index %d at position %d out of range [0, %d)", e.Index, e.Position, e.Vertices)
}

// VertexCount returns the number of vertices described by a position array.
func VertexCount(positions []float32) int {
	return len(positions) / PositionComponents
}

// ValidateArrays checks the four parallel arrays against each other and
// returns the first violation found.
func ValidateArrays(positions []float32, indices []uint32, colors, normals []float32) error {
	if len(positions)%PositionComponents != 0 {
		return &LayoutError{
			Array: "positions",
			Got:   len(positions),
			Want:  (len(positions) / PositionComponents) * PositionComponents,
		}
	}
	n := VertexCount(positions)
	if len(colors) != n*ColorComponents {
		return &LayoutError{Array: "colors", Got: len(colors), Want: n * ColorComponents}
	}
	if len(normals) != n*NormalComponents {
		return &LayoutError{Array: "normals", Got: len(normals), Want: n * NormalComponents}
	}
	for i, idx := range indices {
		if int(idx) >= n {
			return &IndexError{Position: i, Index: idx, Vertices: n}
		}
	}
	return nil
}

// CheckArrays panics if the arrays violate the upload contract.
// Mismatched arrays are a load-time programming error.
func CheckArrays(positions []float32, indices []uint32, colors, normals []float32) {
	if err := ValidateArrays(positions, indices, colors, normals); err != nil {
		panic(err)
	}
}
