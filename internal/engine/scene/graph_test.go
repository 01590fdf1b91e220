package scene

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/heliscene/internal/engine/gpu"
)

const eps = 1e-5

type recordedDraw struct {
	mesh gpu.Mesh
	mvp  mgl32.Mat4
}

// recorder is a Drawer that remembers every call.
type recorder struct {
	draws []recordedDraw
}

func (r *recorder) DrawMesh(m gpu.Mesh, mvp mgl32.Mat4) {
	r.draws = append(r.draws, recordedDraw{mesh: m, mvp: mvp})
}

func (r *recorder) vaos() []uint32 {
	out := make([]uint32, len(r.draws))
	for i, d := range r.draws {
		out[i] = d.mesh.VAO
	}
	return out
}

func assertMat(t *testing.T, want, got mgl32.Mat4) {
	t.Helper()
	assert.Truef(t, want.ApproxEqualThreshold(got, eps), "matrix mismatch\nwant %v\ngot  %v", want, got)
}

func TestNewNodes(t *testing.T) {
	g := NewGraph()
	empty := g.NewEmpty()
	mesh := g.NewWithResource(gpu.Mesh{VAO: 7, ElementCount: 36})

	assert.Equal(t, 2, g.Len())
	assert.NotEqual(t, Nil, empty)
	assert.False(t, g.Resource(empty).Drawable())
	assert.Equal(t, int32(36), g.Resource(mesh).ElementCount)
	assertMat(t, mgl32.Ident4(), g.World(empty))
	assert.Empty(t, g.Children(empty))
	assert.Equal(t, Nil, g.Parent(mesh))
}

func TestAddChild(t *testing.T) {
	g := NewGraph()
	root := g.NewEmpty()
	a := g.NewEmpty()
	b := g.NewEmpty()
	c := g.NewEmpty()

	require.NoError(t, g.AddChild(root, a))
	require.NoError(t, g.AddChild(a, b))
	require.NoError(t, g.AddChild(root, c))

	assert.Equal(t, []NodeID{a, c}, g.Children(root))
	assert.Equal(t, root, g.Parent(a))
	assert.Equal(t, a, g.Parent(b))

	tests := []struct {
		name          string
		parent, child NodeID
		want          error
	}{
		{"self", a, a, ErrCycle},
		{"ancestor", b, root, ErrCycle},
		{"grandparent", b, a, ErrCycle},
		{"second parent", c, b, ErrHasParent},
		{"nil parent", Nil, a, ErrUnknownNode},
		{"out of range", root, NodeID(99), ErrUnknownNode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, g.AddChild(tt.parent, tt.child), tt.want)
		})
	}

	// Rejected links leave the topology untouched.
	assert.Equal(t, []NodeID{a, c}, g.Children(root))
	assert.Equal(t, []NodeID{b}, g.Children(a))
	assert.Empty(t, g.Children(b))
}

func TestChildrenReturnsCopy(t *testing.T) {
	g := NewGraph()
	root := g.NewEmpty()
	a := g.NewEmpty()
	g.MustAddChild(root, a)

	c := g.Children(root)
	c[0] = Nil
	assert.Equal(t, []NodeID{a}, g.Children(root))
}

func TestUnknownNodePanics(t *testing.T) {
	g := NewGraph()
	assert.Panics(t, func() { g.SetPosition(NodeID(3), mgl32.Vec3{}) })
	assert.Panics(t, func() { g.World(Nil) })
	assert.Panics(t, func() { g.MustAddChild(Nil, Nil) })
}

func TestRotateAccumulates(t *testing.T) {
	g := NewGraph()
	n := g.NewEmpty()
	g.SetRotation(n, mgl32.Vec3{0.1, 0, 0})
	g.Rotate(n, mgl32.Vec3{0.2, 0.5, 0})
	assert.InDelta(t, 0.3, g.Rotation(n).X(), eps)
	assert.InDelta(t, 0.5, g.Rotation(n).Y(), eps)
}

func TestPrint(t *testing.T) {
	g := NewGraph()
	root := g.NewEmpty()
	body := g.NewWithResource(gpu.Mesh{VAO: 2, ElementCount: 9})
	g.SetName(root, "root")
	g.SetName(body, "body")
	g.SetPosition(body, mgl32.Vec3{1, 2, 3})
	g.MustAddChild(root, body)
	g.Propagate(root, mgl32.Ident4())

	before := g.World(body)
	out := g.Dump(root)

	assert.Contains(t, out, "Node root {")
	assert.Contains(t, out, "  Node body {")
	assert.Contains(t, out, "vao=2 elements=9")
	assert.Contains(t, out, "[1.00, 2.00, 3.00]")
	assert.Equal(t, 2, strings.Count(out, "}\n"))
	assert.Equal(t, before, g.World(body))

	unnamed := g.NewEmpty()
	assert.Contains(t, g.Dump(unnamed), "Node #3 {")
}
