package shader

// ────────────────────────────────── Desktop GL ──────────────────────────────────

const passThroughVertexGL = `#version 330 core
layout (location = 0) in vec3 aPos;
void main() {
    gl_Position = vec4(aPos, 1.0);
}
`

const texturedVertexGL = `#version 330 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec2 aTexCoord;
out vec2 TexCoord;
void main() {
    gl_Position = vec4(aPos, 1.0);
    TexCoord = aTexCoord;
}
`

const constantFragmentGL = `#version 330 core
out vec4 FragColor;
void main() {
    FragColor = vec4(1.0, 0.5, 0.2, 1.0);
}
`

const uniformFragmentGL = `#version 330 core
out vec4 FragColor;
uniform vec4 ourColor;
void main() {
    FragColor = ourColor;
}
`

const textureFragmentGL = `#version 330 core
in vec2 TexCoord;
out vec4 FragColor;
uniform sampler2D uTexture;
uniform float uTime;
void main() {
    vec2 uv = TexCoord + vec2(0.05 * sin(uTime), 0.0);
    FragColor = texture(uTexture, uv);
}
`

// ───────────────────────────────────── WGSL ────────────────────────────────────

const triangleWGSL = `@vertex
fn vs_main(@location(0) position: vec3<f32>) -> @builtin(position) vec4<f32> {
    return vec4<f32>(position, 1.0);
}

@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return vec4<f32>(0.2, 0.6, 1.0, 1.0);
}
`

// ────────────────────────────────── Public API ─────────────────────────────────

// PassThroughVertex outputs the input position unchanged.
func PassThroughVertex() Source { return VertexSource(passThroughVertexGL) }

// TexturedVertex passes position through and forwards texture coordinates.
func TexturedVertex() Source { return VertexSource(texturedVertexGL) }

// ConstantFragment writes the fixed color (1.0, 0.5, 0.2, 1.0).
func ConstantFragment() Source { return FragmentSource(constantFragmentGL) }

// UniformFragment writes the ourColor uniform.
func UniformFragment() Source { return FragmentSource(uniformFragmentGL) }

// TextureFragment samples uTexture, scrolled slightly by uTime.
func TextureFragment() Source { return FragmentSource(textureFragmentGL) }

// TriangleWGSL returns the WGSL triangle module as the given stage. Both
// stages share the same text and differ only in entry point.
func TriangleWGSL(stage Stage) Source {
	entry := "vs_main"
	if stage == Fragment {
		entry = "fs_main"
	}
	return Source{Stage: stage, Language: WGSL, Text: triangleWGSL, EntryPoint: entry}
}
