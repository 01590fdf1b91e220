package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/heliscene/internal/engine/gpu"
	"github.com/Faultbox/heliscene/internal/engine/mesh"
	"github.com/Faultbox/heliscene/internal/engine/scene"
)

// Uploader turns CPU-side vertex arrays into a GPU mesh handle.
type Uploader interface {
	UploadMesh(positions []float32, indices []uint32, colors, normals []float32) gpu.Mesh
}

// Placement of the helicopter in the terrain's frame.
var (
	bodyPosition       = mgl32.Vec3{0, 0, -40}
	bodyRotation       = mgl32.Vec3{0, 3.0, 0}
	tailRotorReference = mgl32.Vec3{0.35, 2.3, 10.4}
)

// HelicopterScene names the nodes of the demo scene.
type HelicopterScene struct {
	Graph     *scene.Graph
	Root      scene.NodeID
	Terrain   scene.NodeID
	Body      scene.NodeID
	Door      scene.NodeID
	MainRotor scene.NodeID
	TailRotor scene.NodeID
}

func upload(up Uploader, m *mesh.Mesh) gpu.Mesh {
	return up.UploadMesh(m.Positions, m.Indices, m.Colors, m.Normals)
}

// BuildHelicopterScene uploads the meshes and links
// root -> terrain -> body -> {door, main rotor, tail rotor}.
func BuildHelicopterScene(up Uploader, terrain *mesh.Mesh, heli *mesh.Helicopter) *HelicopterScene {
	g := scene.NewGraph()
	s := &HelicopterScene{
		Graph:     g,
		Root:      g.NewEmpty(),
		Terrain:   g.NewWithResource(upload(up, terrain)),
		Body:      g.NewWithResource(upload(up, heli.Body)),
		Door:      g.NewWithResource(upload(up, heli.Door)),
		MainRotor: g.NewWithResource(upload(up, heli.MainRotor)),
		TailRotor: g.NewWithResource(upload(up, heli.TailRotor)),
	}

	g.SetName(s.Root, "root")
	g.SetName(s.Terrain, "terrain")
	g.SetName(s.Body, "body")
	g.SetName(s.Door, "door")
	g.SetName(s.MainRotor, "main rotor")
	g.SetName(s.TailRotor, "tail rotor")

	g.MustAddChild(s.Root, s.Terrain)
	g.MustAddChild(s.Terrain, s.Body)
	g.MustAddChild(s.Body, s.Door)
	g.MustAddChild(s.Body, s.MainRotor)
	g.MustAddChild(s.Body, s.TailRotor)

	g.SetPosition(s.Body, bodyPosition)
	g.SetRotation(s.Body, bodyRotation)
	g.SetReferencePoint(s.TailRotor, tailRotorReference)

	return s
}

// SpinRotors advances the rotors by dt seconds. The main rotor turns
// about Y, the tail rotor about X around its hub.
// Angles are kept in [0, 2pi).
func (s *HelicopterScene) SpinRotors(dt, mainSpeed, tailSpeed float32) {
	s.Graph.Rotate(s.MainRotor, mgl32.Vec3{0, dt * mainSpeed, 0})
	s.Graph.Rotate(s.TailRotor, mgl32.Vec3{dt * tailSpeed, 0, 0})
	s.Graph.SetRotation(s.MainRotor, wrapAngles(s.Graph.Rotation(s.MainRotor)))
	s.Graph.SetRotation(s.TailRotor, wrapAngles(s.Graph.Rotation(s.TailRotor)))
}

func wrapAngles(v mgl32.Vec3) mgl32.Vec3 {
	for i := range v {
		a := math.Mod(float64(v[i]), 2*math.Pi)
		if a < 0 {
			a += 2 * math.Pi
		}
		v[i] = float32(a)
	}
	return v
}
