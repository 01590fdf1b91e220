// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// SimpleVertexShader transforms positions by the "transformation" uniform
// and passes color and normal through.
//
//go:embed simple.vert
var SimpleVertexShader string

// SimpleFragmentShader outputs the interpolated vertex color.
//
//go:embed simple.frag
var SimpleFragmentShader string
