package graphics

import "unsafe"

// GL enum values used by this module. They match the values in the OpenGL
// registry so any binding can pass them straight through.
const (
	False = 0
	True  = 1

	NoError     = 0
	OutOfMemory = 0x0505

	ColorBufferBit = 0x00004000
	DepthBufferBit = 0x00000100
	DepthTest      = 0x0B71

	Triangles = 0x0004

	UnsignedByte = 0x1401
	UnsignedInt  = 0x1405
	Float        = 0x1406

	ArrayBuffer        = 0x8892
	ElementArrayBuffer = 0x8893
	StaticDraw         = 0x88E4

	VertexShader   = 0x8B31
	FragmentShader = 0x8B30
	CompileStatus  = 0x8B81
	LinkStatus     = 0x8B82
	InfoLogLength  = 0x8B84

	Texture2D          = 0x0DE1
	Texture0           = 0x84C0
	TextureWrapS       = 0x2802
	TextureWrapT       = 0x2803
	TextureMinFilter   = 0x2801
	TextureMagFilter   = 0x2800
	Nearest            = 0x2600
	Linear             = 0x2601
	LinearMipmapLinear = 0x2703
	Repeat             = 0x2901
	ClampToEdge        = 0x812F
	RGBA               = 0x1908
	RGBA8              = 0x8058
	RGBA32F            = 0x8814
	SRGB8Alpha8        = 0x8C43
	PackAlignment      = 0x0D05
	UnpackAlignment    = 0x0CF5

	Framebuffer         = 0x8D40
	ReadFramebuffer     = 0x8CA8
	ColorAttachment0    = 0x8CE0
	FramebufferComplete = 0x8CD5
)

// GL is the subset of OpenGL entry points the module issues. Every method
// operates on the context that is current on the calling thread.
type GL interface {
	ClearColor(r, g, b, a float32)
	Clear(mask uint32)
	Viewport(x, y, width, height int32)
	Enable(cap uint32)
	GetError() uint32

	// Shader objects
	CreateShader(xtype uint32) uint32
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	GetShaderiv(shader uint32, pname uint32, params *int32)
	GetShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)

	// Program objects
	CreateProgram() uint32
	AttachShader(program, shader uint32)
	DetachShader(program, shader uint32)
	LinkProgram(program uint32)
	GetProgramiv(program uint32, pname uint32, params *int32)
	GetProgramInfoLog(program uint32) string
	UseProgram(program uint32)
	DeleteProgram(program uint32)

	// Uniforms apply to the program bound by UseProgram. A location of -1 is
	// silently ignored.
	GetUniformLocation(program uint32, name string) int32
	Uniform1f(location int32, v0 float32)
	Uniform2f(location int32, v0, v1 float32)
	Uniform3f(location int32, v0, v1, v2 float32)
	Uniform4f(location int32, v0, v1, v2, v3 float32)
	Uniform1i(location int32, v0 int32)
	Uniform2i(location int32, v0, v1 int32)
	Uniform3i(location int32, v0, v1, v2 int32)
	Uniform4i(location int32, v0, v1, v2, v3 int32)
	Uniform1ui(location int32, v0 uint32)
	UniformMatrix3fv(location int32, count int32, transpose bool, value *float32)
	UniformMatrix4fv(location int32, count int32, transpose bool, value *float32)

	// Buffers and vertex arrays
	GenBuffers(n int32, buffers *uint32)
	DeleteBuffers(n int32, buffers *uint32)
	BindBuffer(target, buffer uint32)
	BufferData(target uint32, size int, data unsafe.Pointer, usage uint32)
	GenVertexArrays(n int32, arrays *uint32)
	DeleteVertexArrays(n int32, arrays *uint32)
	BindVertexArray(array uint32)
	VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int)
	EnableVertexAttribArray(index uint32)

	// Textures
	GenTextures(n int32, textures *uint32)
	DeleteTextures(n int32, textures *uint32)
	BindTexture(target, texture uint32)
	ActiveTexture(texture uint32)
	TexImage2D(target uint32, level, internalformat, width, height, border int32, format, xtype uint32, pixels unsafe.Pointer)
	TexParameteri(target, pname uint32, param int32)
	GenerateMipmap(target uint32)
	PixelStorei(pname uint32, param int32)

	// Framebuffers
	GenFramebuffers(n int32, framebuffers *uint32)
	DeleteFramebuffers(n int32, framebuffers *uint32)
	BindFramebuffer(target, framebuffer uint32)
	FramebufferTexture2D(target, attachment, textarget, texture uint32, level int32)
	CheckFramebufferStatus(target uint32) uint32
	ReadPixels(x, y, width, height int32, format, xtype uint32, pixels unsafe.Pointer)

	// Drawing
	DrawArrays(mode uint32, first, count int32)
	DrawElements(mode uint32, count int32, xtype uint32, offset int)
}
