package lessons

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chewxy/math32"
	"github.com/richinsley/golearngl/geometry"
	"github.com/richinsley/golearngl/inputs"
	"github.com/richinsley/golearngl/shader"
	"gopkg.in/yaml.v3"
)

// ErrUnknownLesson is returned by Lookup for a name with no built-in lesson.
var ErrUnknownLesson = errors.New("unknown lesson")

// Lesson describes one self-contained demo: what to clear to, which shaders
// and geometry to draw, and which uniforms to feed them.
type Lesson struct {
	Name   string `yaml:"name"`
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`

	ClearColor [4]float32 `yaml:"clear_color"`

	// A lesson with neither stage only clears the screen.
	Vertex   ShaderSpec    `yaml:"vertex"`
	Fragment ShaderSpec    `yaml:"fragment"`
	Geometry geometry.Kind `yaml:"geometry"`

	Texture *TextureSpec `yaml:"texture"`

	// Uniforms are set once per frame with fixed values. One to four values
	// map to float..vec4, 9 to mat3 and 16 to mat4.
	Uniforms map[string][]float32 `yaml:"uniforms"`

	// Pulse names a vec4 uniform that receives a green color oscillating
	// with time.
	Pulse string `yaml:"pulse"`
}

// ShaderSpec locates the text of one stage, either inline or in a file.
type ShaderSpec struct {
	Path       string `yaml:"path"`
	Code       string `yaml:"code"`
	Language   string `yaml:"language"` // glsl (default) or wgsl
	EntryPoint string `yaml:"entry_point"`
}

// TextureSpec is an image file or a generated checkerboard.
type TextureSpec struct {
	Path         string         `yaml:"path"`
	Checkerboard int            `yaml:"checkerboard"` // cells per side
	Sampler      inputs.Sampler `yaml:"sampler"`
}

// HasProgram reports whether the lesson draws anything.
func (l *Lesson) HasProgram() bool {
	return !l.Vertex.empty() || !l.Fragment.empty()
}

// Sources reads both stages of the lesson.
func (l *Lesson) Sources() (vertex, fragment shader.Source, err error) {
	vertex, err = l.Vertex.Source(shader.Vertex)
	if err != nil {
		return shader.Source{}, shader.Source{}, err
	}
	fragment, err = l.Fragment.Source(shader.Fragment)
	if err != nil {
		return shader.Source{}, shader.Source{}, err
	}
	return vertex, fragment, nil
}

// ShaderPaths returns the files the lesson reads its stages from.
func (l *Lesson) ShaderPaths() []string {
	var paths []string
	for _, s := range []ShaderSpec{l.Vertex, l.Fragment} {
		if s.Path != "" {
			paths = append(paths, s.Path)
		}
	}
	return paths
}

func (s ShaderSpec) empty() bool {
	return s.Path == "" && s.Code == ""
}

// Source returns the stage text, reading it from disk when Path is set.
func (s ShaderSpec) Source(stage shader.Stage) (shader.Source, error) {
	var src shader.Source
	switch {
	case s.Path != "":
		var err error
		src, err = shader.LoadSource(s.Path, stage)
		if err != nil {
			return shader.Source{}, err
		}
	case s.Code != "":
		src = shader.Source{Stage: stage, Text: s.Code}
	default:
		return shader.Source{}, fmt.Errorf("no %s shader given", stage)
	}

	switch strings.ToLower(s.Language) {
	case "":
	case "glsl":
		src.Language = shader.GLSL
	case "wgsl":
		src.Language = shader.WGSL
	default:
		return shader.Source{}, fmt.Errorf("%s shader: unknown language %q", stage, s.Language)
	}
	src.EntryPoint = s.EntryPoint
	return src, nil
}

// PulseColor is the green pulse of the uniform lesson at time t seconds.
func PulseColor(t float64) [4]float32 {
	green := math32.Sin(float32(t))/2.0 + 0.5
	return [4]float32{0.0, green, 0.0, 1.0}
}

// Load reads a lesson from a YAML file. Relative shader and texture paths
// are resolved against the directory holding the file.
func Load(path string) (*Lesson, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading lesson file: %w", err)
	}

	var l Lesson
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("parsing lesson file %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	l.Vertex.Path = resolve(dir, l.Vertex.Path)
	l.Fragment.Path = resolve(dir, l.Fragment.Path)
	if l.Texture != nil {
		l.Texture.Path = resolve(dir, l.Texture.Path)
	}

	// Apply defaults
	if l.Name == "" {
		l.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if l.Title == "" {
		l.Title = l.Name
	}
	if l.Width <= 0 {
		l.Width = DefaultWidth
	}
	if l.Height <= 0 {
		l.Height = DefaultHeight
	}
	if l.HasProgram() && l.Geometry == "" {
		l.Geometry = geometry.KindTriangle
	}
	return &l, nil
}

func resolve(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
