// Package shader provides OpenGL shader compilation utilities.
package shader

import (
	"fmt"
	"os"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/heliscene/internal/engine/shader/shaders"
)

// TransformationUniform is the name of the per-draw matrix uniform.
const TransformationUniform = "transformation"

// Program is a linked shader program.
type Program struct {
	ID uint32
}

// NewDefault links the embedded vertex and fragment shaders.
func NewDefault() (*Program, error) {
	id, err := CompileProgram(shaders.SimpleVertexShader, shaders.SimpleFragmentShader)
	if err != nil {
		return nil, err
	}
	return &Program{ID: id}, nil
}

// LoadFiles compiles and links shaders read from disk.
func LoadFiles(vertexPath, fragmentPath string) (*Program, error) {
	vert, err := os.ReadFile(vertexPath)
	if err != nil {
		return nil, fmt.Errorf("reading vertex shader: %w", err)
	}
	frag, err := os.ReadFile(fragmentPath)
	if err != nil {
		return nil, fmt.Errorf("reading fragment shader: %w", err)
	}

	id, err := CompileProgram(string(vert), string(frag))
	if err != nil {
		return nil, err
	}
	return &Program{ID: id}, nil
}

// Activate makes the program current.
func (p *Program) Activate() {
	gl.UseProgram(p.ID)
}

// Delete releases the program.
func (p *Program) Delete() {
	if p.ID != 0 {
		gl.DeleteProgram(p.ID)
		p.ID = 0
	}
}

// CompileProgram compiles vertex and fragment shaders and links them into a program.
// Returns the program ID or an error if compilation/linking fails.
func CompileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vertShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER, "vertex")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertShader)

	fragShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER, "fragment")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fragShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertShader)
	gl.AttachShader(program, fragShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetProgramInfoLog(program, logLen, nil, &log[0])
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link: %s", string(log))
	}

	return program, nil
}

// compileShader compiles a single shader of the given type.
func compileShader(source string, shaderType uint32, name string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetShaderInfoLog(shader, logLen, nil, &log[0])
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s shader: %s", name, string(log))
	}

	return shader, nil
}

// GetUniform returns the uniform location for the given name.
// Returns -1 if the uniform is not found or inactive.
func GetUniform(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

// MustGetUniform returns the uniform location for the given name.
// Panics if the uniform is not found (useful for required uniforms).
func MustGetUniform(program uint32, name string) int32 {
	loc := GetUniform(program, name)
	if loc < 0 {
		panic(fmt.Sprintf("uniform %q not found in program %d", name, program))
	}
	return loc
}
