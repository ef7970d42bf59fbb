package renderer

import _ "embed"

// roadVertexShader transforms coloured vertices by the view-projection matrix.
//
//go:embed shaders/road.vert
var roadVertexShader string

//go:embed shaders/road.frag
var roadFragmentShader string
