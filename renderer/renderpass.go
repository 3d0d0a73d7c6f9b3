package renderer

import (
	"sort"

	"github.com/richinsley/golearngl/graphics"
	"github.com/richinsley/golearngl/lessons"
)

// textureUnit is the unit the lesson texture is bound to.
const textureUnit = 0

// RenderFrame clears the bound framebuffer to the lesson color and, when
// the lesson has a program, draws its geometry with the per-frame uniforms
// for time t seconds.
func (r *Renderer) RenderFrame(scene *Scene, t float64, width, height int) {
	r.gl.Viewport(0, 0, int32(width), int32(height))
	c := scene.Lesson.ClearColor
	r.gl.ClearColor(c[0], c[1], c[2], c[3])
	r.gl.Clear(graphics.ColorBufferBit)

	if scene.program == nil {
		return
	}
	scene.program.Activate()
	r.updateUniforms(scene, t, width, height)
	if scene.texture != nil {
		scene.texture.Bind(textureUnit)
	}
	scene.mesh.Draw()
}

func (r *Renderer) updateUniforms(scene *Scene, t float64, width, height int) {
	p := scene.program
	p.SetUniform("uTime", float32(t))
	p.SetUniform("uResolution", [2]float32{float32(width), float32(height)})

	// Fixed values are set in name order so every frame issues the same
	// calls.
	names := make([]string, 0, len(scene.Lesson.Uniforms))
	for name := range scene.Lesson.Uniforms {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		p.SetUniform(name, scene.Lesson.Uniforms[name])
	}

	if scene.Lesson.Pulse != "" {
		p.SetUniform(scene.Lesson.Pulse, lessons.PulseColor(t))
	}
	if scene.texture != nil {
		p.SetUniform("uTexture", int32(textureUnit))
	}
}
