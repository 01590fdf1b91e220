package renderer

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/heliscene/internal/engine/gpu"
)

const floatSize = 4

type meshBuffers struct {
	position, color, normal, index uint32
}

// UploadMesh copies the four parallel arrays into GPU buffers and returns
// the vertex array handle. It panics if the arrays do not line up.
// The currently bound vertex array is not preserved.
func (r *Renderer) UploadMesh(positions []float32, indices []uint32, colors, normals []float32) gpu.Mesh {
	gpu.CheckArrays(positions, indices, colors, normals)
	if len(indices) == 0 {
		return gpu.Mesh{}
	}

	var vao uint32
	var bufs meshBuffers

	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)

	bufs.position = arrayBuffer(positions, gpu.AttribPosition, gpu.PositionComponents)
	bufs.color = arrayBuffer(colors, gpu.AttribColor, gpu.ColorComponents)
	bufs.normal = arrayBuffer(normals, gpu.AttribNormal, gpu.NormalComponents)

	gl.GenBuffers(1, &bufs.index)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, bufs.index)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, unsafe.Pointer(&indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	m := gpu.Mesh{VAO: vao, ElementCount: int32(len(indices))}
	r.meshes[vao] = bufs

	r.log.Debug("mesh uploaded",
		zap.Uint32("vao", vao),
		zap.Int("vertices", gpu.VertexCount(positions)),
		zap.Int32("elements", m.ElementCount),
	)
	return m
}

// arrayBuffer uploads one tightly packed float attribute.
func arrayBuffer(data []float32, slot uint32, components int32) uint32 {
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*floatSize, unsafe.Pointer(&data[0]), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(slot, components, gl.FLOAT, false, components*floatSize, 0)
	gl.EnableVertexAttribArray(slot)
	return vbo
}

// DeleteMesh releases the vertex array and its buffers.
func (r *Renderer) DeleteMesh(m gpu.Mesh) {
	bufs, ok := r.meshes[m.VAO]
	if !ok {
		return
	}
	ids := []uint32{bufs.position, bufs.color, bufs.normal, bufs.index}
	gl.DeleteBuffers(int32(len(ids)), &ids[0])
	gl.DeleteVertexArrays(1, &m.VAO)
	delete(r.meshes, m.VAO)
}
