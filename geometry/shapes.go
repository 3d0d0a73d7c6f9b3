package geometry

import (
	"fmt"

	"github.com/richinsley/golearngl/graphics"
)

// Kind names a built-in shape.
type Kind string

const (
	KindTriangle     Kind = "triangle"
	KindQuad         Kind = "quad"
	KindIndexedQuad  Kind = "indexed-quad"
	KindTexturedQuad Kind = "textured-quad"
)

var position = Attribute{Index: 0, Size: 3}
var texCoord = Attribute{Index: 1, Size: 2}

// Triangle is the classic three-vertex triangle in normalized device
// coordinates.
func Triangle(gl graphics.GL) (*Mesh, error) {
	vertices := []float32{
		-0.5, -0.5, 0.0,
		0.5, -0.5, 0.0,
		0.0, 0.5, 0.0,
	}
	return New(gl, vertices, nil, position)
}

// Quad covers the whole viewport with two non-indexed triangles.
func Quad(gl graphics.GL) (*Mesh, error) {
	vertices := []float32{
		-1.0, -1.0, 0.0,
		1.0, -1.0, 0.0,
		-1.0, 1.0, 0.0,
		-1.0, 1.0, 0.0,
		1.0, -1.0, 0.0,
		1.0, 1.0, 0.0,
	}
	return New(gl, vertices, nil, position)
}

// IndexedQuad is a rectangle of four shared vertices and six indices.
func IndexedQuad(gl graphics.GL) (*Mesh, error) {
	vertices := []float32{
		0.5, 0.5, 0.0,   // top right
		0.5, -0.5, 0.0,  // bottom right
		-0.5, -0.5, 0.0, // bottom left
		-0.5, 0.5, 0.0,  // top left
	}
	indices := []uint32{
		0, 1, 3,
		1, 2, 3,
	}
	return New(gl, vertices, indices, position)
}

// TexturedQuad is IndexedQuad with texture coordinates at location 1.
func TexturedQuad(gl graphics.GL) (*Mesh, error) {
	vertices := []float32{
		// positions     // texture coords
		0.5, 0.5, 0.0, 1.0, 1.0,
		0.5, -0.5, 0.0, 1.0, 0.0,
		-0.5, -0.5, 0.0, 0.0, 0.0,
		-0.5, 0.5, 0.0, 0.0, 1.0,
	}
	indices := []uint32{
		0, 1, 3,
		1, 2, 3,
	}
	return New(gl, vertices, indices, position, texCoord)
}

// Build creates the shape named by kind. An empty kind means a triangle.
func Build(gl graphics.GL, kind Kind) (*Mesh, error) {
	switch kind {
	case KindTriangle, "":
		return Triangle(gl)
	case KindQuad:
		return Quad(gl)
	case KindIndexedQuad:
		return IndexedQuad(gl)
	case KindTexturedQuad:
		return TexturedQuad(gl)
	default:
		return nil, fmt.Errorf("unknown geometry %q", kind)
	}
}
