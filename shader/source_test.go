package shader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSource(t *testing.T) {
	dir := t.TempDir()
	glslPath := filepath.Join(dir, "triangle.vert")
	require.NoError(t, os.WriteFile(glslPath, []byte(passThroughVertexGL), 0o644))
	wgslPath := filepath.Join(dir, "triangle.WGSL")
	require.NoError(t, os.WriteFile(wgslPath, []byte(triangleWGSL), 0o644))

	src, err := LoadSource(glslPath, Vertex)
	require.NoError(t, err)
	assert.Equal(t, Vertex, src.Stage)
	assert.Equal(t, GLSL, src.Language)
	assert.Equal(t, glslPath, src.Path)
	assert.Equal(t, passThroughVertexGL, src.Text)

	src, err = LoadSource(wgslPath, Fragment)
	require.NoError(t, err)
	assert.Equal(t, WGSL, src.Language)

	_, err = LoadSource(filepath.Join(dir, "missing.frag"), Fragment)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fragment")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSourceVersion(t *testing.T) {
	tests := []struct {
		text string
		want string
		es   bool
	}{
		{passThroughVertexGL, "330 core", false},
		{"\n// comment\n#version   300   es\nvoid main() {}", "300 es", true},
		{"void main() {}\n#version 330", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		src := FragmentSource(tt.text)
		assert.Equal(t, tt.want, src.Version())
		assert.Equal(t, tt.es, src.IsES())
	}
}

func TestStageString(t *testing.T) {
	assert.Equal(t, "vertex", Vertex.String())
	assert.Equal(t, "fragment", Fragment.String())
	assert.Equal(t, "Stage(7)", Stage(7).String())
}
