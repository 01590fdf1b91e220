package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/heliscene/internal/engine/gpu"
)

// Drawer issues the draw call for one mesh with its final clip-space matrix.
type Drawer interface {
	DrawMesh(m gpu.Mesh, mvp mgl32.Mat4)
}

// LocalTransform returns the node transform relative to its parent:
// move the pivot to the origin, rotate X then Y then Z, move the pivot
// back, then translate by the local position.
func (g *Graph) LocalTransform(id NodeID) mgl32.Mat4 {
	n := g.at(id)
	ref := n.reference

	m := mgl32.Translate3D(-ref.X(), -ref.Y(), -ref.Z())
	m = mgl32.HomogRotate3DX(n.rotation.X()).Mul4(m)
	m = mgl32.HomogRotate3DY(n.rotation.Y()).Mul4(m)
	m = mgl32.HomogRotate3DZ(n.rotation.Z()).Mul4(m)
	m = mgl32.Translate3D(ref.X(), ref.Y(), ref.Z()).Mul4(m)
	m = mgl32.Translate3D(n.position.X(), n.position.Y(), n.position.Z()).Mul4(m)
	return m
}

// Propagate recomputes world transforms for root and all its descendants.
// soFar is the transform of root's parent space, usually the identity.
func (g *Graph) Propagate(root NodeID, soFar mgl32.Mat4) {
	world := soFar.Mul4(g.LocalTransform(root))
	n := g.at(root)
	n.world = world
	for _, c := range n.children {
		g.Propagate(c, world)
	}
}

// Render draws root and its descendants in pre-order using the world
// transforms from the last Propagate. Nodes without geometry are skipped.
// It returns the number of draw calls issued.
func (g *Graph) Render(root NodeID, viewProjection mgl32.Mat4, d Drawer) int {
	n := g.at(root)
	draws := 0
	if n.mesh.Drawable() {
		d.DrawMesh(n.mesh, viewProjection.Mul4(n.world))
		draws++
	}
	for _, c := range n.children {
		draws += g.Render(c, viewProjection, d)
	}
	return draws
}
