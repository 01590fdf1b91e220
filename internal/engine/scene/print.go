package scene

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// Print writes a readable dump of the subtree rooted at id.
// It does not modify the graph.
func (g *Graph) Print(w io.Writer, id NodeID) error {
	return g.print(w, id, 0)
}

// Dump returns the Print output as a string.
func (g *Graph) Dump(id NodeID) string {
	var sb strings.Builder
	_ = g.Print(&sb, id)
	return sb.String()
}

func (g *Graph) print(w io.Writer, id NodeID, depth int) error {
	n := g.at(id)
	pad := strings.Repeat("  ", depth)

	name := n.name
	if name == "" {
		name = fmt.Sprintf("#%d", id)
	}

	m := n.world
	_, err := fmt.Fprintf(w,
		"%sNode %s {\n"+
			"%s  Mesh:      %s\n"+
			"%s  Children:  %d\n"+
			"%s  Position:  %s\n"+
			"%s  Rotation:  %s\n"+
			"%s  Reference: %s\n"+
			"%s  World:\n"+
			"%s    %8.2f %8.2f %8.2f %8.2f\n"+
			"%s    %8.2f %8.2f %8.2f %8.2f\n"+
			"%s    %8.2f %8.2f %8.2f %8.2f\n"+
			"%s    %8.2f %8.2f %8.2f %8.2f\n",
		pad, name,
		pad, n.mesh,
		pad, len(n.children),
		pad, vec(n.position),
		pad, vec(n.rotation),
		pad, vec(n.reference),
		pad,
		pad, m.At(0, 0), m.At(0, 1), m.At(0, 2), m.At(0, 3),
		pad, m.At(1, 0), m.At(1, 1), m.At(1, 2), m.At(1, 3),
		pad, m.At(2, 0), m.At(2, 1), m.At(2, 2), m.At(2, 3),
		pad, m.At(3, 0), m.At(3, 1), m.At(3, 2), m.At(3, 3),
	)
	if err != nil {
		return err
	}

	for _, c := range n.children {
		if err := g.print(w, c, depth+1); err != nil {
			return err
		}
	}

	_, err = fmt.Fprintf(w, "%s}\n", pad)
	return err
}

func vec(v mgl32.Vec3) string {
	return fmt.Sprintf("[%.2f, %.2f, %.2f]", v.X(), v.Y(), v.Z())
}
