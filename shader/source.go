package shader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/richinsley/golearngl/graphics"
)

// Stage identifies one programmable stage of the pipeline.
type Stage int

const (
	Vertex Stage = iota
	Fragment
)

func (s Stage) String() string {
	switch s {
	case Vertex:
		return "vertex"
	case Fragment:
		return "fragment"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// GLType returns the GL shader type enum for the stage.
func (s Stage) GLType() uint32 {
	if s == Fragment {
		return graphics.FragmentShader
	}
	return graphics.VertexShader
}

// Language is the shading language a Source is written in.
type Language int

const (
	GLSL Language = iota
	WGSL
)

// Source is the text of a single stage. It is read once and dropped after
// the stage is compiled.
type Source struct {
	Stage    Stage
	Language Language
	Text     string

	// Path is the file the text was read from, if any. Used in diagnostics.
	Path string

	// EntryPoint selects the function to compile when the text holds more
	// than one stage (WGSL).
	EntryPoint string

	// Uniforms maps uniform names as written by the author to the names in
	// Text, for sources that were rewritten by a translator.
	Uniforms map[string]string
}

// VertexSource wraps GLSL text as a vertex stage.
func VertexSource(text string) Source {
	return Source{Stage: Vertex, Language: GLSL, Text: text}
}

// FragmentSource wraps GLSL text as a fragment stage.
func FragmentSource(text string) Source {
	return Source{Stage: Fragment, Language: GLSL, Text: text}
}

// LoadSource reads a stage from disk. Files ending in .wgsl are marked as
// WGSL and must be translated before compiling.
func LoadSource(path string, stage Stage) (Source, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Source{}, fmt.Errorf("load %s shader %q: %w", stage, path, err)
	}
	src := Source{
		Stage: stage,
		Text:  string(b),
		Path:  path,
	}
	if strings.EqualFold(filepath.Ext(path), ".wgsl") {
		src.Language = WGSL
	}
	return src, nil
}

// Version returns the argument of the first #version directive, e.g.
// "330 core" or "300 es". It returns "" when there is none.
func (s Source) Version() string {
	for _, line := range strings.Split(s.Text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		if rest, ok := strings.CutPrefix(line, "#version"); ok {
			return strings.Join(strings.Fields(rest), " ")
		}
		return ""
	}
	return ""
}

// IsES reports whether the source declares a GLSL ES version.
func (s Source) IsES() bool {
	return strings.HasSuffix(s.Version(), " es")
}
