package geometry

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/richinsley/golearngl/graphics"
)

// ErrAllocation is returned when the driver refuses to hand out a buffer or
// vertex array name.
var ErrAllocation = errors.New("gpu refused buffer allocation")

// Attribute describes one float vertex attribute. Attributes are packed in
// the order given; stride and offsets are derived from their sizes.
type Attribute struct {
	Index uint32
	Size  int32
}

// Mesh owns a vertex array and the buffers bound to it.
type Mesh struct {
	gl      graphics.GL
	vao     uint32
	vbo     uint32
	ebo     uint32
	count   int32
	indexed bool
}

// New uploads vertices (and indices, when non-nil) and records layout in a
// fresh vertex array. A non-nil but empty index list is an error. Every name created is released if any allocation
// fails.
func New(gl graphics.GL, vertices []float32, indices []uint32, layout ...Attribute) (*Mesh, error) {
	if len(vertices) == 0 {
		return nil, fmt.Errorf("mesh has no vertices")
	}
	if indices != nil && len(indices) == 0 {
		return nil, fmt.Errorf("mesh has an empty index list")
	}
	var floats int32
	for _, a := range layout {
		floats += a.Size
	}
	if floats == 0 || len(vertices)%int(floats) != 0 {
		return nil, fmt.Errorf("vertex data of %d floats does not match a layout of %d floats per vertex", len(vertices), floats)
	}

	m := &Mesh{gl: gl}
	ok := false
	defer func() {
		if !ok {
			m.Destroy()
		}
	}()

	gl.GenVertexArrays(1, &m.vao)
	if m.vao == 0 {
		return nil, fmt.Errorf("vertex array: %w", ErrAllocation)
	}
	gl.GenBuffers(1, &m.vbo)
	if m.vbo == 0 {
		return nil, fmt.Errorf("vertex buffer: %w", ErrAllocation)
	}
	if len(indices) > 0 {
		gl.GenBuffers(1, &m.ebo)
		if m.ebo == 0 {
			return nil, fmt.Errorf("element buffer: %w", ErrAllocation)
		}
	}

	gl.BindVertexArray(m.vao)
	gl.BindBuffer(graphics.ArrayBuffer, m.vbo)
	gl.BufferData(graphics.ArrayBuffer, len(vertices)*4, unsafe.Pointer(&vertices[0]), graphics.StaticDraw)

	if len(indices) > 0 {
		gl.BindBuffer(graphics.ElementArrayBuffer, m.ebo)
		gl.BufferData(graphics.ElementArrayBuffer, len(indices)*4, unsafe.Pointer(&indices[0]), graphics.StaticDraw)
		m.count = int32(len(indices))
		m.indexed = true
	} else {
		m.count = int32(len(vertices)) / floats
	}

	stride := floats * 4
	offset := 0
	for _, a := range layout {
		gl.VertexAttribPointer(a.Index, a.Size, graphics.Float, false, stride, offset)
		gl.EnableVertexAttribArray(a.Index)
		offset += int(a.Size) * 4
	}

	// The element buffer binding is part of the VAO state, so unbind the VAO
	// first.
	gl.BindVertexArray(0)
	gl.BindBuffer(graphics.ArrayBuffer, 0)

	ok = true
	return m, nil
}

// Count is the number of vertices (or indices) Draw submits.
func (m *Mesh) Count() int32 { return m.count }

// Indexed reports whether the mesh draws through an element buffer.
func (m *Mesh) Indexed() bool { return m.indexed }

// Draw binds the vertex array and submits its triangles.
func (m *Mesh) Draw() {
	if m.vao == 0 {
		panic("geometry: draw of destroyed mesh")
	}
	m.gl.BindVertexArray(m.vao)
	if m.indexed {
		m.gl.DrawElements(graphics.Triangles, m.count, graphics.UnsignedInt, 0)
	} else {
		m.gl.DrawArrays(graphics.Triangles, 0, m.count)
	}
	m.gl.BindVertexArray(0)
}

// Destroy releases the vertex array and its buffers. Calling it again is a
// no-op.
func (m *Mesh) Destroy() {
	if m.ebo != 0 {
		m.gl.DeleteBuffers(1, &m.ebo)
		m.ebo = 0
	}
	if m.vbo != 0 {
		m.gl.DeleteBuffers(1, &m.vbo)
		m.vbo = 0
	}
	if m.vao != 0 {
		m.gl.DeleteVertexArrays(1, &m.vao)
		m.vao = 0
	}
}
