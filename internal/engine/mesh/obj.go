// Package mesh reads Wavefront OBJ files into the parallel vertex arrays
// uploaded to the GPU.
package mesh

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Object is one named part of an OBJ file.
// Faces index into the file-global position and normal lists.
type Object struct {
	Name  string
	Faces [][]Corner
}

// Corner is one face vertex. Indices are zero-based; Normal is -1 when absent.
type Corner struct {
	Position int
	Normal   int
}

// OBJ holds the parsed contents of an OBJ file.
type OBJ struct {
	Positions [][3]float32
	Normals   [][3]float32
	Objects   []*Object
}

// Object returns the object with the given name, or nil.
func (o *OBJ) Object(name string) *Object {
	for _, obj := range o.Objects {
		if obj.Name == name {
			return obj
		}
	}
	return nil
}

// ReadOBJ parses positions, normals and polygonal faces.
// Texture coordinates, materials and smoothing groups are ignored.
func ReadOBJ(r io.Reader) (*OBJ, error) {
	obj := &OBJ{}
	var current *Object

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)

	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "v":
			v, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: vertex: %w", line, err)
			}
			obj.Positions = append(obj.Positions, v)

		case "vn":
			v, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: normal: %w", line, err)
			}
			obj.Normals = append(obj.Normals, v)

		case "o", "g":
			name := strings.Join(fields[1:], " ")
			// A "g" directly after "o" names the same part.
			if current != nil && len(current.Faces) == 0 {
				current.Name = joinName(current.Name, name, fields[0])
				continue
			}
			current = &Object{Name: name}
			obj.Objects = append(obj.Objects, current)

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face needs at least 3 vertices", line)
			}
			face := make([]Corner, 0, len(fields)-1)
			for _, f := range fields[1:] {
				c, err := parseCorner(f, len(obj.Positions), len(obj.Normals))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", line, err)
				}
				face = append(face, c)
			}
			if current == nil {
				current = &Object{Name: "default"}
				obj.Objects = append(obj.Objects, current)
			}
			current.Faces = append(current.Faces, face)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return obj, nil
}

func joinName(prev, name, kind string) string {
	if prev == "" || kind == "o" {
		return name
	}
	return prev + "_" + name
}

func parseVec3(fields []string) ([3]float32, error) {
	var v [3]float32
	if len(fields) < 3 {
		return v, fmt.Errorf("expected 3 components, got %d", len(fields))
	}
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return v, err
		}
		v[i] = float32(f)
	}
	return v, nil
}

// parseCorner parses "v", "v/t", "v//n" or "v/t/n".
func parseCorner(s string, numPositions, numNormals int) (Corner, error) {
	parts := strings.Split(s, "/")
	c := Corner{Normal: -1}

	p, err := resolveIndex(parts[0], numPositions)
	if err != nil {
		return c, fmt.Errorf("face vertex %q: %w", s, err)
	}
	c.Position = p

	if len(parts) == 3 && parts[2] != "" {
		n, err := resolveIndex(parts[2], numNormals)
		if err != nil {
			return c, fmt.Errorf("face normal %q: %w", s, err)
		}
		c.Normal = n
	}
	return c, nil
}

// resolveIndex converts a one-based or negative relative OBJ index.
func resolveIndex(s string, count int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	switch {
	case i > 0 && i <= count:
		return i - 1, nil
	case i < 0 && -i <= count:
		return count + i, nil
	}
	return 0, fmt.Errorf("index %d out of range (have %d)", i, count)
}
