package renderer

import (
	"fmt"
	"log"
	"unsafe"

	"github.com/richinsley/golearngl/graphics"
)

// Offscreen is a framebuffer with a single color texture, RGBA8 or
// RGBA32F.
type Offscreen struct {
	gl        graphics.GL
	fbo       uint32
	textureID uint32
	width     int
	height    int
}

// NewOffscreen creates a complete width x height framebuffer with an RGBA8
// color attachment, the layout recording feeds to the encoder.
func NewOffscreen(gl graphics.GL, width, height int) (*Offscreen, error) {
	return newOffscreen(gl, width, height, false)
}

// NewFloatOffscreen creates a framebuffer with an RGBA32F color attachment.
// Colors read back from it are not quantized.
func NewFloatOffscreen(gl graphics.GL, width, height int) (*Offscreen, error) {
	return newOffscreen(gl, width, height, true)
}

func newOffscreen(gl graphics.GL, width, height int, float bool) (*Offscreen, error) {
	or := &Offscreen{
		gl:     gl,
		width:  width,
		height: height,
	}
	internalFormat, xtype, name := int32(graphics.RGBA8), uint32(graphics.UnsignedByte), "RGBA8"
	if float {
		internalFormat, xtype, name = graphics.RGBA32F, graphics.Float, "RGBA32F"
	}

	gl.GenFramebuffers(1, &or.fbo)
	if or.fbo == 0 {
		return nil, fmt.Errorf("gpu refused framebuffer allocation")
	}
	gl.BindFramebuffer(graphics.Framebuffer, or.fbo)
	gl.GenTextures(1, &or.textureID)
	if or.textureID == 0 {
		or.Destroy()
		return nil, fmt.Errorf("gpu refused texture allocation")
	}
	gl.BindTexture(graphics.Texture2D, or.textureID)
	gl.TexImage2D(graphics.Texture2D, 0, internalFormat, int32(width), int32(height), 0, graphics.RGBA, xtype, nil)
	gl.TexParameteri(graphics.Texture2D, graphics.TextureMinFilter, graphics.Linear)
	gl.TexParameteri(graphics.Texture2D, graphics.TextureMagFilter, graphics.Linear)
	gl.FramebufferTexture2D(graphics.Framebuffer, graphics.ColorAttachment0, graphics.Texture2D, or.textureID, 0)
	gl.BindTexture(graphics.Texture2D, 0)

	if gl.CheckFramebufferStatus(graphics.Framebuffer) != graphics.FramebufferComplete {
		gl.BindFramebuffer(graphics.Framebuffer, 0)
		or.Destroy()
		return nil, fmt.Errorf("offscreen fbo is not complete")
	}
	gl.BindFramebuffer(graphics.Framebuffer, 0)
	log.Printf("Offscreen FBO: %dx%d %s", width, height, name)
	return or, nil
}

// Bind directs drawing into the framebuffer.
func (or *Offscreen) Bind() {
	or.gl.BindFramebuffer(graphics.Framebuffer, or.fbo)
}

// Unbind restores the default framebuffer.
func (or *Offscreen) Unbind() {
	or.gl.BindFramebuffer(graphics.Framebuffer, 0)
}

// Size returns the framebuffer dimensions.
func (or *Offscreen) Size() (int, int) {
	return or.width, or.height
}

// ReadPixels returns the color attachment as tightly packed RGBA8, bottom
// row first.
func (or *Offscreen) ReadPixels() []byte {
	pixels := make([]byte, or.width*or.height*4)
	or.gl.BindFramebuffer(graphics.ReadFramebuffer, or.fbo)
	or.gl.PixelStorei(graphics.PackAlignment, 1)
	or.gl.ReadPixels(0, 0, int32(or.width), int32(or.height), graphics.RGBA, graphics.UnsignedByte, unsafe.Pointer(&pixels[0]))
	or.gl.BindFramebuffer(graphics.ReadFramebuffer, 0)
	return pixels
}

// ReadPixelsFloat returns the color attachment as RGBA float32 values,
// bottom row first.
func (or *Offscreen) ReadPixelsFloat() []float32 {
	pixels := make([]float32, or.width*or.height*4)
	or.gl.BindFramebuffer(graphics.ReadFramebuffer, or.fbo)
	or.gl.PixelStorei(graphics.PackAlignment, 4)
	or.gl.ReadPixels(0, 0, int32(or.width), int32(or.height), graphics.RGBA, graphics.Float, unsafe.Pointer(&pixels[0]))
	or.gl.BindFramebuffer(graphics.ReadFramebuffer, 0)
	return pixels
}

// Destroy deletes the framebuffer and its texture. Calling it again is a
// no-op.
func (or *Offscreen) Destroy() {
	if or.fbo != 0 {
		or.gl.DeleteFramebuffers(1, &or.fbo)
		or.fbo = 0
	}
	if or.textureID != 0 {
		or.gl.DeleteTextures(1, &or.textureID)
		or.textureID = 0
	}
}
