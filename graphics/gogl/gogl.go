// Package gogl implements graphics.GL on top of the go-gl OpenGL 4.1 core
// bindings.
package gogl

import (
	"fmt"
	"strings"
	"sync"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/golearngl/graphics"
)

var (
	glInitOnce sync.Once
	glInitErr  error

	// loadProcs loads the function pointers; replaced in tests.
	loadProcs = gl.Init
)

// GL forwards every call to the go-gl bindings.
type GL struct{}

var _ graphics.GL = (*GL)(nil)

// New loads the OpenGL function pointers for the current context. A context
// must be current on the calling thread. The pointers are loaded only once
// per process; a failed load is reported by every later call.
func New() (*GL, error) {
	glInitOnce.Do(func() {
		glInitErr = loadProcs()
	})
	if glInitErr != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", glInitErr)
	}
	return &GL{}, nil
}

// Version returns the GL_VERSION string of the current context.
func (*GL) Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

func (*GL) ClearColor(r, g, b, a float32)      { gl.ClearColor(r, g, b, a) }
func (*GL) Clear(mask uint32)                  { gl.Clear(mask) }
func (*GL) Viewport(x, y, width, height int32) { gl.Viewport(x, y, width, height) }
func (*GL) Enable(cap uint32)                  { gl.Enable(cap) }
func (*GL) GetError() uint32                   { return gl.GetError() }

func (*GL) CreateShader(xtype uint32) uint32 { return gl.CreateShader(xtype) }

func (*GL) ShaderSource(shader uint32, source string) {
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
}

func (*GL) CompileShader(shader uint32) { gl.CompileShader(shader) }

func (*GL) GetShaderiv(shader uint32, pname uint32, params *int32) {
	gl.GetShaderiv(shader, pname, params)
}

func (*GL) GetShaderInfoLog(shader uint32) string {
	var logLength int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
	if logLength <= 0 {
		return ""
	}
	logText := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logText))
	return strings.TrimRight(logText, "\x00")
}

func (*GL) DeleteShader(shader uint32) { gl.DeleteShader(shader) }

func (*GL) CreateProgram() uint32               { return gl.CreateProgram() }
func (*GL) AttachShader(program, shader uint32) { gl.AttachShader(program, shader) }
func (*GL) DetachShader(program, shader uint32) { gl.DetachShader(program, shader) }
func (*GL) LinkProgram(program uint32)          { gl.LinkProgram(program) }
func (*GL) UseProgram(program uint32)           { gl.UseProgram(program) }
func (*GL) DeleteProgram(program uint32)        { gl.DeleteProgram(program) }

func (*GL) GetProgramiv(program uint32, pname uint32, params *int32) {
	gl.GetProgramiv(program, pname, params)
}

func (*GL) GetProgramInfoLog(program uint32) string {
	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
	if logLength <= 0 {
		return ""
	}
	logText := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(program, logLength, nil, gl.Str(logText))
	return strings.TrimRight(logText, "\x00")
}

func (*GL) GetUniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (*GL) Uniform1f(location int32, v0 float32)             { gl.Uniform1f(location, v0) }
func (*GL) Uniform2f(location int32, v0, v1 float32)         { gl.Uniform2f(location, v0, v1) }
func (*GL) Uniform3f(location int32, v0, v1, v2 float32)     { gl.Uniform3f(location, v0, v1, v2) }
func (*GL) Uniform4f(location int32, v0, v1, v2, v3 float32) { gl.Uniform4f(location, v0, v1, v2, v3) }
func (*GL) Uniform1i(location int32, v0 int32)               { gl.Uniform1i(location, v0) }
func (*GL) Uniform2i(location int32, v0, v1 int32)           { gl.Uniform2i(location, v0, v1) }
func (*GL) Uniform3i(location int32, v0, v1, v2 int32)       { gl.Uniform3i(location, v0, v1, v2) }
func (*GL) Uniform4i(location int32, v0, v1, v2, v3 int32)   { gl.Uniform4i(location, v0, v1, v2, v3) }
func (*GL) Uniform1ui(location int32, v0 uint32)             { gl.Uniform1ui(location, v0) }

func (*GL) UniformMatrix3fv(location int32, count int32, transpose bool, value *float32) {
	gl.UniformMatrix3fv(location, count, transpose, value)
}

func (*GL) UniformMatrix4fv(location int32, count int32, transpose bool, value *float32) {
	gl.UniformMatrix4fv(location, count, transpose, value)
}

func (*GL) GenBuffers(n int32, buffers *uint32)    { gl.GenBuffers(n, buffers) }
func (*GL) DeleteBuffers(n int32, buffers *uint32) { gl.DeleteBuffers(n, buffers) }
func (*GL) BindBuffer(target, buffer uint32)       { gl.BindBuffer(target, buffer) }

func (*GL) BufferData(target uint32, size int, data unsafe.Pointer, usage uint32) {
	gl.BufferData(target, size, data, usage)
}

func (*GL) GenVertexArrays(n int32, arrays *uint32)    { gl.GenVertexArrays(n, arrays) }
func (*GL) DeleteVertexArrays(n int32, arrays *uint32) { gl.DeleteVertexArrays(n, arrays) }
func (*GL) BindVertexArray(array uint32)               { gl.BindVertexArray(array) }

func (*GL) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int) {
	gl.VertexAttribPointer(index, size, xtype, normalized, stride, gl.PtrOffset(offset))
}

func (*GL) EnableVertexAttribArray(index uint32) { gl.EnableVertexAttribArray(index) }

func (*GL) GenTextures(n int32, textures *uint32)    { gl.GenTextures(n, textures) }
func (*GL) DeleteTextures(n int32, textures *uint32) { gl.DeleteTextures(n, textures) }
func (*GL) BindTexture(target, texture uint32)       { gl.BindTexture(target, texture) }
func (*GL) ActiveTexture(texture uint32)             { gl.ActiveTexture(texture) }
func (*GL) GenerateMipmap(target uint32)             { gl.GenerateMipmap(target) }
func (*GL) PixelStorei(pname uint32, param int32)    { gl.PixelStorei(pname, param) }

func (*GL) TexImage2D(target uint32, level, internalformat, width, height, border int32, format, xtype uint32, pixels unsafe.Pointer) {
	gl.TexImage2D(target, level, internalformat, width, height, border, format, xtype, pixels)
}

func (*GL) TexParameteri(target, pname uint32, param int32) {
	gl.TexParameteri(target, pname, param)
}

func (*GL) GenFramebuffers(n int32, framebuffers *uint32)    { gl.GenFramebuffers(n, framebuffers) }
func (*GL) DeleteFramebuffers(n int32, framebuffers *uint32) { gl.DeleteFramebuffers(n, framebuffers) }
func (*GL) BindFramebuffer(target, framebuffer uint32)       { gl.BindFramebuffer(target, framebuffer) }
func (*GL) CheckFramebufferStatus(target uint32) uint32      { return gl.CheckFramebufferStatus(target) }

func (*GL) FramebufferTexture2D(target, attachment, textarget, texture uint32, level int32) {
	gl.FramebufferTexture2D(target, attachment, textarget, texture, level)
}

func (*GL) ReadPixels(x, y, width, height int32, format, xtype uint32, pixels unsafe.Pointer) {
	gl.ReadPixels(x, y, width, height, format, xtype, pixels)
}

func (*GL) DrawArrays(mode uint32, first, count int32) { gl.DrawArrays(mode, first, count) }

func (*GL) DrawElements(mode uint32, count int32, xtype uint32, offset int) {
	gl.DrawElements(mode, count, xtype, gl.PtrOffset(offset))
}
