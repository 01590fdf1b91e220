package mesh

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/heliscene/internal/engine/gpu"
)

const quadOBJ = `# unit quad
o Quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vn 0 0 1
f 1//1 2//1 3//1 4//1
`

const helicopterOBJ = `
v 0 0 0
v 1 0 0
v 0 1 0
v 0 0 1
vt 0 0
vn 0 0 1
vn 1 0 0
o Body_body
f 1/1/1 2/1/1 3/1/1
o Door_door
f 1 2 4
o Main_Rotor_main_rotor
f -4//2 -3//2 -1//2
o Tail_Rotor_tail_rotor
f 2 3 4
`

func TestReadOBJ(t *testing.T) {
	o, err := ReadOBJ(strings.NewReader(quadOBJ))
	require.NoError(t, err)

	assert.Len(t, o.Positions, 4)
	assert.Len(t, o.Normals, 1)
	require.Len(t, o.Objects, 1)
	assert.Equal(t, "Quad", o.Objects[0].Name)
	require.Len(t, o.Objects[0].Faces, 1)
	assert.Equal(t, []Corner{{0, 0}, {1, 0}, {2, 0}, {3, 0}}, o.Objects[0].Faces[0])
}

func TestReadOBJGroupAfterObject(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 0 1 0\no Body\ng body\nf 1 2 3\ng door\nf 1 2 3\n"
	o, err := ReadOBJ(strings.NewReader(src))
	require.NoError(t, err)

	require.Len(t, o.Objects, 2)
	assert.Equal(t, "Body_body", o.Objects[0].Name)
	assert.Equal(t, "door", o.Objects[1].Name)
}

func TestReadOBJErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"short vertex", "v 1 2\n"},
		{"bad float", "v 1 x 3\n"},
		{"two corner face", "v 0 0 0\nv 1 0 0\nf 1 2\n"},
		{"index past end", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 4\n"},
		{"zero index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n"},
		{"bad normal", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1//1 2//1 3//1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadOBJ(strings.NewReader(tt.src))
			assert.Error(t, err)
		})
	}
}

func TestFromObjectTriangulates(t *testing.T) {
	o, err := ReadOBJ(strings.NewReader(quadOBJ))
	require.NoError(t, err)

	m := FromObject(o, o.Objects[0], ColorDoor)

	assert.Equal(t, 4, m.VertexCount())
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, m.Indices)
	assert.Equal(t, int32(6), m.IndexCount)
	assert.Len(t, m.Colors, 16)
	assert.Equal(t, []float32{0.1, 0.1, 0.3, 1.0}, m.Colors[:4])
	assert.Equal(t, []float32{0, 0, 1}, m.Normals[:3])

	// The arrays satisfy the GPU upload contract.
	assert.NoError(t, gpu.ValidateArrays(m.Positions, m.Indices, m.Colors, m.Normals))
}

func TestFromObjectSynthesizesNormals(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nv 0 0 1\nf 1 2 3\nf 1 4 2\n"
	o, err := ReadOBJ(strings.NewReader(src))
	require.NoError(t, err)

	m := FromObject(o, o.Objects[0], ColorTerrain)

	// Shared positions get one vertex per face, each with its face normal.
	assert.Equal(t, 6, m.VertexCount())
	assert.Equal(t, []float32{0, 0, 1}, m.Normals[0:3])
	assert.Equal(t, []float32{0, 1, 0}, m.Normals[9:12])
	assert.NoError(t, gpu.ValidateArrays(m.Positions, m.Indices, m.Colors, m.Normals))
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestLoadHelicopter(t *testing.T) {
	path := writeTemp(t, "helicopter.obj", helicopterOBJ)

	h, err := LoadHelicopter(path)
	require.NoError(t, err)

	for name, part := range map[string]*Mesh{
		"body": h.Body, "door": h.Door, "main": h.MainRotor, "tail": h.TailRotor,
	} {
		assert.Equal(t, int32(3), part.IndexCount, name)
		assert.NoError(t, gpu.ValidateArrays(part.Positions, part.Indices, part.Colors, part.Normals), name)
	}
	assert.Equal(t, []float32{1, 0, 0}, h.MainRotor.Normals[:3])
	assert.Equal(t, []float32{0.1, 0.3, 0.1, 1.0}, h.TailRotor.Colors[:4])
}

func TestLoadHelicopterMissingPart(t *testing.T) {
	path := writeTemp(t, "broken.obj", "v 0 0 0\nv 1 0 0\nv 0 1 0\no Body_body\nf 1 2 3\n")

	_, err := LoadHelicopter(path)
	assert.ErrorContains(t, err, PartDoor)
}

func TestLoadTerrainMergesObjects(t *testing.T) {
	path := writeTemp(t, "terrain.obj", helicopterOBJ)

	m, err := LoadTerrain(path)
	require.NoError(t, err)
	assert.Equal(t, int32(12), m.IndexCount)
	assert.Equal(t, []float32{1, 1, 1, 1}, m.Colors[:4])
}

func TestLoadMissingFile(t *testing.T) {
	_, err := LoadTerrain(filepath.Join(t.TempDir(), "nope.obj"))
	assert.Error(t, err)
}
