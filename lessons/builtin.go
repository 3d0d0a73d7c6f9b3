package lessons

import (
	"fmt"
	"sort"

	"github.com/richinsley/golearngl/geometry"
	"github.com/richinsley/golearngl/shader"
)

const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

// clearColor is the background of the first lesson, (121, 175, 199) / 255.
var clearColor = [4]float32{121.0 / 255.0, 175.0 / 255.0, 199.0 / 255.0, 1.0}

var darkSlate = [4]float32{0.2, 0.3, 0.3, 1.0}

func glsl(src shader.Source) ShaderSpec {
	return ShaderSpec{Code: src.Text, Language: "glsl"}
}

func wgsl(stage shader.Stage) ShaderSpec {
	src := shader.TriangleWGSL(stage)
	entry := "vs_main"
	if stage == shader.Fragment {
		entry = "fs_main"
	}
	return ShaderSpec{Code: src.Text, Language: "wgsl", EntryPoint: entry}
}

func builtins() map[string]*Lesson {
	all := []*Lesson{
		{
			Name:       "clear",
			Title:      "OpenGL Testing",
			ClearColor: clearColor,
		},
		{
			Name:       "triangle",
			Title:      "Hello Triangle",
			ClearColor: darkSlate,
			Vertex:     glsl(shader.PassThroughVertex()),
			Fragment:   glsl(shader.ConstantFragment()),
			Geometry:   geometry.KindTriangle,
		},
		{
			Name:       "indexed",
			Title:      "Hello Rectangle",
			ClearColor: darkSlate,
			Vertex:     glsl(shader.PassThroughVertex()),
			Fragment:   glsl(shader.ConstantFragment()),
			Geometry:   geometry.KindIndexedQuad,
		},
		{
			Name:       "uniform",
			Title:      "Uniforms",
			ClearColor: darkSlate,
			Vertex:     glsl(shader.PassThroughVertex()),
			Fragment:   glsl(shader.UniformFragment()),
			Geometry:   geometry.KindTriangle,
			Pulse:      "ourColor",
		},
		{
			Name:       "texture",
			Title:      "Textures",
			ClearColor: darkSlate,
			Vertex:     glsl(shader.TexturedVertex()),
			Fragment:   glsl(shader.TextureFragment()),
			Geometry:   geometry.KindTexturedQuad,
			Texture: &TextureSpec{
				Checkerboard: 8,
			},
		},
		{
			Name:       "wgsl",
			Title:      "Hello Triangle (WGSL)",
			ClearColor: darkSlate,
			Vertex:     wgsl(shader.Vertex),
			Fragment:   wgsl(shader.Fragment),
			Geometry:   geometry.KindTriangle,
		},
	}

	m := make(map[string]*Lesson, len(all))
	for _, l := range all {
		l.Width, l.Height = DefaultWidth, DefaultHeight
		if l.Texture != nil {
			l.Texture.Sampler.Filter = "nearest"
			l.Texture.Sampler.Wrap = "repeat"
		}
		m[l.Name] = l
	}
	return m
}

// Lookup returns a fresh copy of the built-in lesson called name.
func Lookup(name string) (*Lesson, error) {
	l, ok := builtins()[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownLesson, name)
	}
	return l, nil
}

// Names lists the built-in lessons in alphabetical order.
func Names() []string {
	b := builtins()
	names := make([]string, 0, len(b))
	for name := range b {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
