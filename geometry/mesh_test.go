package geometry

import (
	"testing"

	"github.com/richinsley/golearngl/graphics"
	"github.com/richinsley/golearngl/graphics/glstub"
	"github.com/richinsley/golearngl/shader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildShapes(t *testing.T) {
	tests := []struct {
		kind    Kind
		count   int32
		indexed bool
		buffers int
	}{
		{KindTriangle, 3, false, 1},
		{"", 3, false, 1},
		{KindQuad, 6, false, 1},
		{KindIndexedQuad, 6, true, 2},
		{KindTexturedQuad, 6, true, 2},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			gl := glstub.New()
			m, err := Build(gl, tt.kind)
			require.NoError(t, err)

			assert.Equal(t, tt.count, m.Count())
			assert.Equal(t, tt.indexed, m.Indexed())
			assert.Equal(t, glstub.Counts{Buffers: tt.buffers, VertexArrays: 1}, gl.Live())
			assert.Equal(t, uint32(graphics.NoError), gl.GetError())

			m.Destroy()
			assert.Zero(t, gl.Live().Total())
		})
	}
}

func TestBuildUnknown(t *testing.T) {
	gl := glstub.New()
	_, err := Build(gl, "dodecahedron")
	require.Error(t, err)
	assert.Zero(t, gl.Created.Total())
}

func TestNewUploadsData(t *testing.T) {
	gl := glstub.New()
	m, err := TexturedQuad(gl)
	require.NoError(t, err)
	defer m.Destroy()

	assert.Equal(t, 4*5*4, gl.BufferSize(m.vbo))
	assert.Equal(t, 6*4, gl.BufferSize(m.ebo))
}

func TestNewRejectsLayoutMismatch(t *testing.T) {
	gl := glstub.New()
	_, err := New(gl, []float32{0, 0, 0, 1}, nil, Attribute{Index: 0, Size: 3})
	require.Error(t, err)

	_, err = New(gl, nil, nil, Attribute{Index: 0, Size: 3})
	require.Error(t, err)
	assert.Zero(t, gl.Created.Total())
}

func TestNewRejectsEmptyIndices(t *testing.T) {
	gl := glstub.New()
	_, err := New(gl, []float32{0, 0, 0, 1, 0, 0, 0, 1, 0}, []uint32{}, Attribute{Index: 0, Size: 3})
	require.Error(t, err)
	assert.Zero(t, gl.Created.Total())
}

func TestNewAllocationFailure(t *testing.T) {
	gl := glstub.New()
	gl.FailCreate = true

	m, err := IndexedQuad(gl)
	require.ErrorIs(t, err, ErrAllocation)
	assert.Nil(t, m)
	assert.Zero(t, gl.Live().Total())
}

func TestDraw(t *testing.T) {
	gl := glstub.New()
	p, err := shader.New(gl, shader.PassThroughVertex(), shader.ConstantFragment())
	require.NoError(t, err)
	defer p.Dispose()

	tri, err := Triangle(gl)
	require.NoError(t, err)
	defer tri.Destroy()
	quad, err := IndexedQuad(gl)
	require.NoError(t, err)
	defer quad.Destroy()

	p.Activate()
	tri.Draw()
	quad.Draw()

	require.Len(t, gl.Draws, 2)
	assert.Equal(t, glstub.Draw{Program: p.Handle(), VertexArray: tri.vao, Mode: graphics.Triangles, Count: 3}, gl.Draws[0])
	assert.Equal(t, glstub.Draw{Program: p.Handle(), VertexArray: quad.vao, Mode: graphics.Triangles, Count: 6, Indexed: true}, gl.Draws[1])
}

func TestDestroyIsIdempotent(t *testing.T) {
	gl := glstub.New()
	m, err := Quad(gl)
	require.NoError(t, err)

	m.Destroy()
	m.Destroy()
	assert.Zero(t, gl.Live().Total())
	assert.Zero(t, gl.DoubleDeletes)
	assert.Panics(t, m.Draw)
}
