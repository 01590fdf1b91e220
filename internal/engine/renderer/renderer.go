// Package renderer provides OpenGL rendering functionality.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/heliscene/internal/engine/gpu"
	"github.com/Faultbox/heliscene/internal/engine/shader"
	"github.com/Faultbox/heliscene/internal/logger"
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	ClearColor [4]float32
}

// Renderer owns the OpenGL state of the render thread.
// All methods must be called from the thread holding the GL context.
type Renderer struct {
	config Config
	log    *zap.Logger

	program        *shader.Program
	locTransform   int32
	meshes         map[uint32]meshBuffers
	drawsThisFrame int
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER the OpenGL context is current on this thread!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		log:    logger.Named("renderer"),
		meshes: make(map[uint32]meshBuffers),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.log.Info("OpenGL initialized",
		zap.String("vendor", gl.GoStr(gl.GetString(gl.VENDOR))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.MULTISAMPLE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	c := cfg.ClearColor
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	return r, nil
}

// UseProgram activates the program used for every draw call.
func (r *Renderer) UseProgram(p *shader.Program) {
	r.program = p
	p.Activate()
	r.locTransform = shader.MustGetUniform(p.ID, shader.TransformationUniform)
	r.log.Debug("shader program active",
		zap.Uint32("program", p.ID),
		zap.Int32("transformation", r.locTransform),
	)
}

// Close releases every uploaded mesh and the active program.
func (r *Renderer) Close() {
	r.log.Info("closing renderer", zap.Int("meshes", len(r.meshes)))
	for vao := range r.meshes {
		r.DeleteMesh(gpu.Mesh{VAO: vao})
	}
	if r.program != nil {
		r.program.Delete()
	}
}

// Size returns the current viewport size.
func (r *Renderer) Size() (int, int) {
	return r.config.Width, r.config.Height
}

// Aspect returns the viewport width/height ratio.
func (r *Renderer) Aspect() float32 {
	if r.config.Height == 0 {
		return 1
	}
	return float32(r.config.Width) / float32(r.config.Height)
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	r.drawsThisFrame = 0
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// End finishes the current frame and returns the number of draw calls.
func (r *Renderer) End() int {
	gl.BindVertexArray(0)
	return r.drawsThisFrame
}

// DrawMesh uploads mvp to the transformation uniform and draws the mesh
// as an indexed triangle list.
func (r *Renderer) DrawMesh(m gpu.Mesh, mvp mgl32.Mat4) {
	gl.BindVertexArray(m.VAO)
	gl.UniformMatrix4fv(r.locTransform, 1, false, &mvp[0])
	gl.DrawElements(gl.TRIANGLES, m.ElementCount, gl.UNSIGNED_INT, nil)
	r.drawsThisFrame++
}

// ReadPixels reads the back buffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() []byte {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels
}
