package shader

// GLSL 330 needs at least an OpenGL 3.3 core context.
const (
	MinGLMajor = 3
	MinGLMinor = 3
)

// ────────────────────────────────── Desktop GL ──────────────────────────────────

const vertexShaderSource = `#version 330
layout(location=0) in vec4 position;
layout(location=1) in vec4 color0;
out vec4 color;
void main() {
    gl_Position = position;
    color = color0;
}
`

const fragmentShaderSource = `#version 330
in vec4 color;
out vec4 frag_color;
void main() {
    frag_color = color;
}
`

// ────────────────────────────────── Public API ─────────────────────────────────

// Attribute locations shared by both stages' layouts.
const (
	PositionLocation = 0
	ColorLocation    = 1
)

func GetVertexShader() string {
	return vertexShaderSource
}

func GetFragmentShader() string {
	return fragmentShaderSource
}
