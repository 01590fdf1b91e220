// Package scene implements the scene graph: an arena of nodes with local
// transforms, world transform propagation and draw traversal.
package scene

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/heliscene/internal/engine/gpu"
)

// NodeID identifies a node in a Graph.
type NodeID int

// Nil represents an invalid NodeID. Roots have Nil as parent.
const Nil NodeID = 0

// Errors returned by AddChild.
var (
	ErrUnknownNode = errors.New("scene: unknown node")
	ErrCycle       = errors.New("scene: child is an ancestor of parent")
	ErrHasParent   = errors.New("scene: child already has a parent")
)

type node struct {
	name      string
	position  mgl32.Vec3
	rotation  mgl32.Vec3 // Euler angles in radians, applied X then Y then Z
	reference mgl32.Vec3 // pivot for rotation
	mesh      gpu.Mesh
	world     mgl32.Mat4
	parent    NodeID
	children  []NodeID
}

// Graph owns every node. Nodes are only mutated through Graph methods
// and are never removed.
type Graph struct {
	// nodes[0] is a placeholder so that the zero NodeID stays invalid.
	nodes []node
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{nodes: make([]node, 1, 16)}
}

// Len returns the number of nodes in the graph.
func (g *Graph) Len() int {
	return len(g.nodes) - 1
}

// NewEmpty adds a grouping node with no geometry.
func (g *Graph) NewEmpty() NodeID {
	return g.NewWithResource(gpu.Mesh{})
}

// NewWithResource adds a node drawing the given mesh.
func (g *Graph) NewWithResource(m gpu.Mesh) NodeID {
	g.nodes = append(g.nodes, node{
		mesh:  m,
		world: mgl32.Ident4(),
	})
	return NodeID(len(g.nodes) - 1)
}

// AddChild appends child to the children of parent.
// It refuses links that would create a cycle or give child a second parent.
func (g *Graph) AddChild(parent, child NodeID) error {
	if !g.valid(parent) || !g.valid(child) {
		return ErrUnknownNode
	}
	for id := parent; id != Nil; id = g.nodes[id].parent {
		if id == child {
			return ErrCycle
		}
	}
	if g.nodes[child].parent != Nil {
		return ErrHasParent
	}
	g.nodes[child].parent = parent
	g.nodes[parent].children = append(g.nodes[parent].children, child)
	return nil
}

// MustAddChild is like AddChild but panics on error.
func (g *Graph) MustAddChild(parent, child NodeID) {
	if err := g.AddChild(parent, child); err != nil {
		panic(err)
	}
}

func (g *Graph) valid(id NodeID) bool {
	return id > Nil && int(id) < len(g.nodes)
}

func (g *Graph) at(id NodeID) *node {
	if !g.valid(id) {
		panic(ErrUnknownNode)
	}
	return &g.nodes[id]
}

// SetName sets a label used by Print.
func (g *Graph) SetName(id NodeID, name string) { g.at(id).name = name }

// SetPosition sets the local position.
func (g *Graph) SetPosition(id NodeID, p mgl32.Vec3) { g.at(id).position = p }

// SetRotation sets the local Euler rotation in radians.
func (g *Graph) SetRotation(id NodeID, r mgl32.Vec3) { g.at(id).rotation = r }

// SetReferencePoint sets the pivot the rotation is applied around.
func (g *Graph) SetReferencePoint(id NodeID, p mgl32.Vec3) { g.at(id).reference = p }

// Rotate adds delta to the local rotation.
func (g *Graph) Rotate(id NodeID, delta mgl32.Vec3) {
	n := g.at(id)
	n.rotation = n.rotation.Add(delta)
}

// Name returns the node label.
func (g *Graph) Name(id NodeID) string { return g.at(id).name }

// Position returns the local position.
func (g *Graph) Position(id NodeID) mgl32.Vec3 { return g.at(id).position }

// Rotation returns the local Euler rotation.
func (g *Graph) Rotation(id NodeID) mgl32.Vec3 { return g.at(id).rotation }

// ReferencePoint returns the rotation pivot.
func (g *Graph) ReferencePoint(id NodeID) mgl32.Vec3 { return g.at(id).reference }

// Resource returns the mesh drawn by the node.
func (g *Graph) Resource(id NodeID) gpu.Mesh { return g.at(id).mesh }

// World returns the world transform computed by the last Propagate.
func (g *Graph) World(id NodeID) mgl32.Mat4 { return g.at(id).world }

// Parent returns the parent of id, or Nil for a root.
func (g *Graph) Parent(id NodeID) NodeID { return g.at(id).parent }

// Children returns a copy of the child list in traversal order.
func (g *Graph) Children(id NodeID) []NodeID {
	c := g.at(id).children
	out := make([]NodeID, len(c))
	copy(out, c)
	return out
}
