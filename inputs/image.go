// inputs/image.go
package inputs

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"log"
	"unsafe"

	"github.com/richinsley/golearngl/graphics"
)

// ErrAllocation is returned when the driver refuses a texture name.
var ErrAllocation = errors.New("gpu refused texture allocation")

// Sampler holds the texture sampling settings of an image input.
type Sampler struct {
	Filter string `yaml:"filter"` // nearest, linear or mipmap
	Wrap   string `yaml:"wrap"`   // repeat or clamp
	VFlip  bool   `yaml:"vflip"`
	SRGB   bool   `yaml:"srgb"`
}

// Texture is a static 2D image uploaded to the GPU.
type Texture struct {
	gl         graphics.GL
	textureID  uint32
	resolution [3]float32
	sampler    Sampler
}

// vflip vertically flips the provided RGBA image. GL expects the first row
// of texel data to be the bottom of the image.
func vflip(src *image.RGBA) *image.RGBA {
	bounds := src.Bounds()
	flipped := image.NewRGBA(bounds)
	height := bounds.Dy()

	// This is faster than calling At/Set for each pixel
	rowSize := bounds.Dx() * 4 // 4 bytes per pixel (RGBA)
	for y := 0; y < height; y++ {
		srcRow := src.Pix[((height-1)-y)*src.Stride:]
		dstRow := flipped.Pix[y*flipped.Stride:]
		copy(dstRow, srcRow[:rowSize])
	}
	return flipped
}

// NewTexture creates and initializes a new OpenGL texture from an image.
func NewTexture(gl graphics.GL, img image.Image, sampler Sampler) (*Texture, error) {
	if img == nil {
		return nil, fmt.Errorf("input image is nil")
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("input image is empty")
	}

	// Convert source image to RGBA for consistency.
	rgba := image.NewRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)

	if sampler.VFlip {
		rgba = vflip(rgba)
	}

	width := int32(rgba.Rect.Size().X)
	height := int32(rgba.Rect.Size().Y)

	var textureID uint32
	gl.GenTextures(1, &textureID)
	if textureID == 0 {
		return nil, fmt.Errorf("texture %dx%d: %w", width, height, ErrAllocation)
	}
	gl.BindTexture(graphics.Texture2D, textureID)

	var internalFormat int32 = graphics.RGBA8
	if sampler.SRGB {
		// The GPU linearizes colors when sampling an sRGB texture.
		internalFormat = graphics.SRGB8Alpha8
		log.Printf("Texture %d: Using sRGB texture format (srgb=true)", textureID)
	}

	gl.TexParameteri(graphics.Texture2D, graphics.TextureWrapS, getWrapMode(sampler.Wrap))
	gl.TexParameteri(graphics.Texture2D, graphics.TextureWrapT, getWrapMode(sampler.Wrap))

	minFilter, magFilter := getFilterMode(sampler.Filter)
	gl.TexParameteri(graphics.Texture2D, graphics.TextureMinFilter, minFilter)
	gl.TexParameteri(graphics.Texture2D, graphics.TextureMagFilter, magFilter)

	// Rows are tightly packed regardless of width.
	gl.PixelStorei(graphics.UnpackAlignment, 1)
	gl.TexImage2D(
		graphics.Texture2D,
		0,
		internalFormat,
		width,
		height,
		0,
		graphics.RGBA,
		graphics.UnsignedByte,
		unsafe.Pointer(&rgba.Pix[0]),
	)

	if sampler.Filter == "mipmap" {
		gl.GenerateMipmap(graphics.Texture2D)
	}

	gl.BindTexture(graphics.Texture2D, 0) // Unbind texture

	return &Texture{
		gl:        gl,
		textureID: textureID,
		resolution: [3]float32{
			float32(width),
			float32(height),
			1.0,
		},
		sampler: sampler,
	}, nil
}

// Bind makes the texture current on texture unit unit.
func (t *Texture) Bind(unit uint32) {
	t.gl.ActiveTexture(graphics.Texture0 + unit)
	t.gl.BindTexture(graphics.Texture2D, t.textureID)
}

// Sampler returns the settings the texture was created with.
func (t *Texture) Sampler() Sampler {
	return t.sampler
}

func (t *Texture) GetTextureID() uint32 {
	return t.textureID
}

// Resolution returns width, height and depth (always 1) as a vec3.
func (t *Texture) Resolution() [3]float32 {
	return t.resolution
}

// Destroy deletes the texture. Calling it again is a no-op.
func (t *Texture) Destroy() {
	if t.textureID == 0 {
		return
	}
	t.gl.DeleteTextures(1, &t.textureID)
	t.textureID = 0
}
