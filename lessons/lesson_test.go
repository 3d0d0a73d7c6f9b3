package lessons

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/richinsley/golearngl/geometry"
	"github.com/richinsley/golearngl/graphics/glstub"
	"github.com/richinsley/golearngl/shader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	l, err := Lookup("clear")
	require.NoError(t, err)
	assert.Equal(t, "OpenGL Testing", l.Title)
	assert.Equal(t, 800, l.Width)
	assert.Equal(t, 600, l.Height)
	assert.InDelta(t, 121.0/255.0, l.ClearColor[0], 1e-6)
	assert.InDelta(t, 175.0/255.0, l.ClearColor[1], 1e-6)
	assert.InDelta(t, 199.0/255.0, l.ClearColor[2], 1e-6)
	assert.False(t, l.HasProgram())

	_, err = Lookup("nope")
	require.ErrorIs(t, err, ErrUnknownLesson)
	assert.Contains(t, err.Error(), "nope")
}

func TestLookupReturnsCopy(t *testing.T) {
	a, err := Lookup("texture")
	require.NoError(t, err)
	a.Texture.Checkerboard = 99

	b, err := Lookup("texture")
	require.NoError(t, err)
	assert.Equal(t, 8, b.Texture.Checkerboard)
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"clear", "indexed", "texture", "triangle", "uniform", "wgsl"}, Names())
}

// Every built-in GLSL lesson must link against the same checks a driver
// would run.
func TestBuiltinsLink(t *testing.T) {
	for _, name := range Names() {
		l, err := Lookup(name)
		require.NoError(t, err)
		if !l.HasProgram() {
			continue
		}
		vertex, fragment, err := l.Sources()
		require.NoError(t, err, name)
		if vertex.Language != shader.GLSL {
			continue
		}

		gl := glstub.New()
		p, err := shader.New(gl, vertex, fragment)
		require.NoError(t, err, name)
		p.Dispose()
	}
}

func TestWGSLSources(t *testing.T) {
	l, err := Lookup("wgsl")
	require.NoError(t, err)
	vertex, fragment, err := l.Sources()
	require.NoError(t, err)
	assert.Equal(t, shader.WGSL, vertex.Language)
	assert.Equal(t, "vs_main", vertex.EntryPoint)
	assert.Equal(t, shader.Fragment, fragment.Stage)
	assert.Equal(t, "fs_main", fragment.EntryPoint)
}

func TestPulseColor(t *testing.T) {
	assert.InDelta(t, 0.5, PulseColor(0)[1], 1e-6)
	assert.InDelta(t, 1.0, PulseColor(1.5707963)[1], 1e-6)
	assert.InDelta(t, 0.0, PulseColor(-1.5707963)[1], 1e-6)

	c := PulseColor(12.3)
	assert.Zero(t, c[0])
	assert.Zero(t, c[2])
	assert.Equal(t, float32(1), c[3])
}

const lessonYAML = `
title: Scrolling checkerboard
clear_color: [0.1, 0.1, 0.1, 1]
vertex:
  path: shaders/quad.vert
fragment:
  path: /abs/quad.frag
geometry: textured-quad
texture:
  path: board.png
  sampler:
    filter: mipmap
    wrap: clamp
    vflip: true
uniforms:
  uScale: [2]
  uOffset: [0.5, 0.25]
pulse: uPulse
`

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scroll.yaml")
	require.NoError(t, os.WriteFile(path, []byte(lessonYAML), 0o644))

	l, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "scroll", l.Name)
	assert.Equal(t, "Scrolling checkerboard", l.Title)
	assert.Equal(t, DefaultWidth, l.Width)
	assert.Equal(t, DefaultHeight, l.Height)
	assert.Equal(t, [4]float32{0.1, 0.1, 0.1, 1}, l.ClearColor)
	assert.Equal(t, filepath.Join(dir, "shaders", "quad.vert"), l.Vertex.Path)
	assert.Equal(t, "/abs/quad.frag", l.Fragment.Path)
	assert.Equal(t, geometry.KindTexturedQuad, l.Geometry)
	require.NotNil(t, l.Texture)
	assert.Equal(t, filepath.Join(dir, "board.png"), l.Texture.Path)
	assert.Equal(t, "mipmap", l.Texture.Sampler.Filter)
	assert.True(t, l.Texture.Sampler.VFlip)
	assert.Equal(t, []float32{0.5, 0.25}, l.Uniforms["uOffset"])
	assert.Equal(t, "uPulse", l.Pulse)
	assert.Equal(t, []string{filepath.Join(dir, "shaders", "quad.vert"), "/abs/quad.frag"}, l.ShaderPaths())
}

func TestLoadDefaultsGeometry(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tri.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: tri\nvertex:\n  code: x\nfragment:\n  code: y\n"), 0o644))

	l, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "tri", l.Name)
	assert.Equal(t, geometry.KindTriangle, l.Geometry)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(filepath.Join(dir, "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("clear_color: red\n"), 0o644))
	_, err = Load(bad)
	require.Error(t, err)
}

func TestShaderSpecSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tri.wgsl")
	require.NoError(t, os.WriteFile(path, []byte("@vertex fn vs_main() {}"), 0o644))

	src, err := ShaderSpec{Path: path}.Source(shader.Vertex)
	require.NoError(t, err)
	assert.Equal(t, shader.WGSL, src.Language)
	assert.Equal(t, path, src.Path)

	src, err = ShaderSpec{Code: "void main() {}", Language: "GLSL"}.Source(shader.Fragment)
	require.NoError(t, err)
	assert.Equal(t, shader.GLSL, src.Language)
	assert.Equal(t, shader.Fragment, src.Stage)

	_, err = ShaderSpec{}.Source(shader.Vertex)
	require.Error(t, err)
	_, err = ShaderSpec{Code: "x", Language: "hlsl"}.Source(shader.Vertex)
	require.Error(t, err)
}
