package renderer

import (
	"fmt"
	"image/color"
	"log"

	"github.com/richinsley/golearngl/geometry"
	"github.com/richinsley/golearngl/inputs"
	"github.com/richinsley/golearngl/lessons"
	"github.com/richinsley/golearngl/shader"
	xlate "github.com/richinsley/golearngl/translator"
)

const checkerboardSize = 256

var (
	checkerLight = color.RGBA{230, 230, 230, 255}
	checkerDark  = color.RGBA{40, 40, 40, 255}
)

// Scene holds the GPU resources of one lesson.
type Scene struct {
	Title  string
	Lesson *lessons.Lesson

	program *shader.Program
	mesh    *geometry.Mesh
	texture *inputs.Texture
}

// Program returns the linked program, or nil for a clear-only lesson.
func (s *Scene) Program() *shader.Program { return s.program }

// Destroy releases all OpenGL resources used by the scene. It is safe to
// call more than once.
func (s *Scene) Destroy() {
	if s == nil {
		return
	}
	if s.program == nil && s.mesh == nil && s.texture == nil {
		return
	}
	log.Printf("Destroying scene: %s", s.Title)

	if s.texture != nil {
		s.texture.Destroy()
		s.texture = nil
	}
	if s.mesh != nil {
		s.mesh.Destroy()
		s.mesh = nil
	}
	if s.program != nil {
		s.program.Dispose()
		s.program = nil
	}
}

// LoadScene builds the program, geometry and texture of lesson. Anything
// created before a failure is released.
func (r *Renderer) LoadScene(lesson *lessons.Lesson) (*Scene, error) {
	if err := checkUniforms(lesson.Uniforms); err != nil {
		return nil, err
	}

	scene := &Scene{
		Title:  lesson.Title,
		Lesson: lesson,
	}
	if !lesson.HasProgram() {
		r.scenes = append(r.scenes, scene)
		log.Printf("Successfully loaded scene: %s", scene.Title)
		return scene, nil
	}

	var err error
	scene.program, err = r.buildProgram(lesson)
	if err != nil {
		return nil, err
	}

	scene.mesh, err = geometry.Build(r.gl, lesson.Geometry)
	if err != nil {
		scene.Destroy() // cleanup on failure
		return nil, fmt.Errorf("failed to create geometry: %w", err)
	}

	if lesson.Texture != nil {
		scene.texture, err = r.loadTexture(lesson.Texture)
		if err != nil {
			scene.Destroy() // cleanup on failure
			return nil, err
		}
		res, s := scene.texture.Resolution(), scene.texture.Sampler()
		log.Printf("Texture %vx%v (filter %q, wrap %q, vflip %v)", res[0], res[1], s.Filter, s.Wrap, s.VFlip)
	}

	r.scenes = append(r.scenes, scene)
	log.Printf("Successfully loaded scene: %s", scene.Title)
	return scene, nil
}

// Reload rebuilds the program of scene from its sources. The previous
// program stays in place when the rebuild fails.
func (r *Renderer) Reload(scene *Scene) error {
	if !scene.Lesson.HasProgram() {
		return nil
	}
	program, err := r.buildProgram(scene.Lesson)
	if err != nil {
		return err
	}
	if scene.program != nil {
		scene.program.Dispose()
	}
	scene.program = program
	return nil
}

func (r *Renderer) buildProgram(lesson *lessons.Lesson) (*shader.Program, error) {
	vertex, fragment, err := lesson.Sources()
	if err != nil {
		return nil, fmt.Errorf("failed to read shaders: %w", err)
	}
	vertex, err = xlate.Prepare(vertex)
	if err != nil {
		return nil, fmt.Errorf("vertex shader translation failed: %w", err)
	}
	fragment, err = xlate.Prepare(fragment)
	if err != nil {
		return nil, fmt.Errorf("fragment shader translation failed: %w", err)
	}
	program, err := shader.New(r.gl, vertex, fragment)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}
	return program, nil
}

func (r *Renderer) loadTexture(spec *lessons.TextureSpec) (*inputs.Texture, error) {
	if spec.Path != "" {
		img, err := inputs.LoadImage(spec.Path)
		if err != nil {
			return nil, err
		}
		return inputs.NewTexture(r.gl, img, spec.Sampler)
	}
	cells := spec.Checkerboard
	if cells <= 0 {
		cells = 8
	}
	img := inputs.Checkerboard(checkerboardSize, cells, checkerLight, checkerDark)
	return inputs.NewTexture(r.gl, img, spec.Sampler)
}

// checkUniforms rejects fixed uniform values with no GLSL type of their
// length.
func checkUniforms(uniforms map[string][]float32) error {
	for name, v := range uniforms {
		switch len(v) {
		case 1, 2, 3, 4, 9, 16:
		default:
			return fmt.Errorf("uniform %q: %d values do not form a float, vector or matrix", name, len(v))
		}
	}
	return nil
}
