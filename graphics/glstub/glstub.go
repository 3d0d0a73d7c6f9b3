// Package glstub is an in-memory stand-in for the GPU. It counts every
// object it hands out, records uniform writes and draw calls, and performs
// just enough source checking to fail compilation and linking the way a
// driver would for common mistakes. It is meant for tests.
package glstub

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unsafe"

	"github.com/richinsley/golearngl/graphics"
)

const invalidOperation = 0x0502

// Counts is a per-kind tally of GL objects.
type Counts struct {
	Shaders      int
	Programs     int
	Buffers      int
	VertexArrays int
	Textures     int
	Framebuffers int
}

// Total sums every kind.
func (c Counts) Total() int {
	return c.Shaders + c.Programs + c.Buffers + c.VertexArrays + c.Textures + c.Framebuffers
}

// Draw records one draw call.
type Draw struct {
	Program     uint32
	VertexArray uint32
	Framebuffer uint32
	Mode        uint32
	Count       int32
	Indexed     bool
}

type shaderObject struct {
	xtype    uint32
	source   string
	compiled bool
	log      string
}

type programObject struct {
	attached  []uint32
	linked    bool
	log       string
	locations map[string]int32
	values    map[int32][]float32
}

// GL implements graphics.GL without a GPU.
type GL struct {
	// FailCreate makes every Create*/Gen* call return 0 until cleared.
	FailCreate bool

	// CompileCheck replaces the built-in source checks. A non-empty return
	// fails compilation with that text as the info log.
	CompileCheck func(xtype uint32, source string) string

	// Created counts every object ever handed out.
	Created Counts

	// DoubleDeletes counts deletes of names that were already deleted.
	DoubleDeletes int

	// UniformWrites counts every Uniform* call that reached a program.
	UniformWrites int

	Draws []Draw

	next    uint32
	deleted map[uint32]bool

	shaders      map[uint32]*shaderObject
	programs     map[uint32]*programObject
	buffers      map[uint32]int
	arrays       map[uint32]bool
	textures     map[uint32][2]int32
	framebuffers map[uint32]bool

	current      uint32
	boundArray   uint32
	boundBuffers map[uint32]uint32
	boundTexture uint32
	boundFBO     uint32
	clearColor   [4]float32
	viewport     [4]int32
	errs         []uint32
}

var _ graphics.GL = (*GL)(nil)

// New returns an empty stub.
func New() *GL {
	return &GL{
		deleted:      make(map[uint32]bool),
		shaders:      make(map[uint32]*shaderObject),
		programs:     make(map[uint32]*programObject),
		buffers:      make(map[uint32]int),
		arrays:       make(map[uint32]bool),
		textures:     make(map[uint32][2]int32),
		framebuffers: make(map[uint32]bool),
		boundBuffers: make(map[uint32]uint32),
	}
}

// Live counts the objects that have been created and not yet deleted.
func (g *GL) Live() Counts {
	return Counts{
		Shaders:      len(g.shaders),
		Programs:     len(g.programs),
		Buffers:      len(g.buffers),
		VertexArrays: len(g.arrays),
		Textures:     len(g.textures),
		Framebuffers: len(g.framebuffers),
	}
}

// CurrentProgram returns the program bound by UseProgram.
func (g *GL) CurrentProgram() uint32 { return g.current }

// ClearColorValue returns the last color passed to ClearColor.
func (g *GL) ClearColorValue() [4]float32 { return g.clearColor }

// ViewportValue returns the last viewport rectangle.
func (g *GL) ViewportValue() [4]int32 { return g.viewport }

// Uniform returns the last value written to a uniform of program. Integer
// uniforms are reported as float32.
func (g *GL) Uniform(program uint32, name string) ([]float32, bool) {
	p, ok := g.programs[program]
	if !ok {
		return nil, false
	}
	loc, ok := p.locations[name]
	if !ok {
		return nil, false
	}
	v, ok := p.values[loc]
	return v, ok
}

// Uniforms returns every active uniform name of program.
func (g *GL) Uniforms(program uint32) []string {
	p, ok := g.programs[program]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(p.locations))
	for name := range p.locations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (g *GL) newName(kind *int) uint32 {
	if g.FailCreate {
		return 0
	}
	g.next++
	*kind++
	return g.next
}

func (g *GL) markDeleted(name uint32) {
	if g.deleted[name] {
		g.DoubleDeletes++
	}
	g.deleted[name] = true
}

func (g *GL) ClearColor(r, gr, b, a float32) { g.clearColor = [4]float32{r, gr, b, a} }
func (g *GL) Clear(mask uint32)              {}
func (g *GL) Enable(cap uint32)              {}

func (g *GL) Viewport(x, y, width, height int32) {
	g.viewport = [4]int32{x, y, width, height}
}

func (g *GL) GetError() uint32 {
	if len(g.errs) == 0 {
		return graphics.NoError
	}
	e := g.errs[0]
	g.errs = g.errs[1:]
	return e
}

// ─────────────────────────────────── Shaders ───────────────────────────────────

func (g *GL) CreateShader(xtype uint32) uint32 {
	name := g.newName(&g.Created.Shaders)
	if name != 0 {
		g.shaders[name] = &shaderObject{xtype: xtype}
	}
	return name
}

func (g *GL) ShaderSource(shader uint32, source string) {
	if s, ok := g.shaders[shader]; ok {
		s.source = source
	}
}

func (g *GL) CompileShader(shader uint32) {
	s, ok := g.shaders[shader]
	if !ok {
		g.errs = append(g.errs, invalidOperation)
		return
	}
	check := checkSource
	if g.CompileCheck != nil {
		check = g.CompileCheck
	}
	s.log = check(s.xtype, s.source)
	s.compiled = s.log == ""
}

func (g *GL) GetShaderiv(shader uint32, pname uint32, params *int32) {
	s, ok := g.shaders[shader]
	if !ok {
		return
	}
	switch pname {
	case graphics.CompileStatus:
		*params = graphics.False
		if s.compiled {
			*params = graphics.True
		}
	case graphics.InfoLogLength:
		*params = int32(len(s.log))
	}
}

func (g *GL) GetShaderInfoLog(shader uint32) string {
	if s, ok := g.shaders[shader]; ok {
		return s.log
	}
	return ""
}

func (g *GL) DeleteShader(shader uint32) {
	if shader == 0 {
		return
	}
	g.markDeleted(shader)
	delete(g.shaders, shader)
}

// ─────────────────────────────────── Programs ──────────────────────────────────

func (g *GL) CreateProgram() uint32 {
	name := g.newName(&g.Created.Programs)
	if name != 0 {
		g.programs[name] = &programObject{
			locations: make(map[string]int32),
			values:    make(map[int32][]float32),
		}
	}
	return name
}

func (g *GL) AttachShader(program, shader uint32) {
	p, ok := g.programs[program]
	if !ok {
		g.errs = append(g.errs, invalidOperation)
		return
	}
	if _, ok := g.shaders[shader]; !ok {
		g.errs = append(g.errs, invalidOperation)
		return
	}
	p.attached = append(p.attached, shader)
}

func (g *GL) DetachShader(program, shader uint32) {
	p, ok := g.programs[program]
	if !ok {
		return
	}
	for i, s := range p.attached {
		if s == shader {
			p.attached = append(p.attached[:i], p.attached[i+1:]...)
			return
		}
	}
}

func (g *GL) LinkProgram(program uint32) {
	p, ok := g.programs[program]
	if !ok {
		g.errs = append(g.errs, invalidOperation)
		return
	}
	var vertex, fragment *shaderObject
	for _, name := range p.attached {
		s := g.shaders[name]
		if !s.compiled {
			p.linked, p.log = false, "error: attached shader is not compiled"
			return
		}
		switch s.xtype {
		case graphics.VertexShader:
			vertex = s
		case graphics.FragmentShader:
			fragment = s
		}
	}
	if vertex == nil || fragment == nil {
		p.linked, p.log = false, "error: program needs a vertex and a fragment shader"
		return
	}
	if msg := checkInterface(vertex.source, fragment.source); msg != "" {
		p.linked, p.log = false, msg
		return
	}
	p.linked, p.log = true, ""
	p.locations = assignLocations(vertex.source, fragment.source)
}

func (g *GL) GetProgramiv(program uint32, pname uint32, params *int32) {
	p, ok := g.programs[program]
	if !ok {
		return
	}
	switch pname {
	case graphics.LinkStatus:
		*params = graphics.False
		if p.linked {
			*params = graphics.True
		}
	case graphics.InfoLogLength:
		*params = int32(len(p.log))
	}
}

func (g *GL) GetProgramInfoLog(program uint32) string {
	if p, ok := g.programs[program]; ok {
		return p.log
	}
	return ""
}

func (g *GL) UseProgram(program uint32) {
	if program != 0 {
		if p, ok := g.programs[program]; !ok || !p.linked {
			g.errs = append(g.errs, invalidOperation)
			return
		}
	}
	g.current = program
}

func (g *GL) DeleteProgram(program uint32) {
	if program == 0 {
		return
	}
	g.markDeleted(program)
	delete(g.programs, program)
	if g.current == program {
		g.current = 0
	}
}

// ─────────────────────────────────── Uniforms ──────────────────────────────────

func (g *GL) GetUniformLocation(program uint32, name string) int32 {
	p, ok := g.programs[program]
	if !ok || !p.linked {
		g.errs = append(g.errs, invalidOperation)
		return -1
	}
	if loc, ok := p.locations[name]; ok {
		return loc
	}
	return -1
}

func (g *GL) setUniform(location int32, v ...float32) {
	if location < 0 {
		return
	}
	p, ok := g.programs[g.current]
	if !ok {
		g.errs = append(g.errs, invalidOperation)
		return
	}
	p.values[location] = v
	g.UniformWrites++
}

func (g *GL) Uniform1f(location int32, v0 float32)         { g.setUniform(location, v0) }
func (g *GL) Uniform2f(location int32, v0, v1 float32)     { g.setUniform(location, v0, v1) }
func (g *GL) Uniform3f(location int32, v0, v1, v2 float32) { g.setUniform(location, v0, v1, v2) }
func (g *GL) Uniform1i(location int32, v0 int32)           { g.setUniform(location, float32(v0)) }
func (g *GL) Uniform1ui(location int32, v0 uint32)         { g.setUniform(location, float32(v0)) }

func (g *GL) Uniform4f(location int32, v0, v1, v2, v3 float32) {
	g.setUniform(location, v0, v1, v2, v3)
}

func (g *GL) Uniform2i(location int32, v0, v1 int32) {
	g.setUniform(location, float32(v0), float32(v1))
}

func (g *GL) Uniform3i(location int32, v0, v1, v2 int32) {
	g.setUniform(location, float32(v0), float32(v1), float32(v2))
}

func (g *GL) Uniform4i(location int32, v0, v1, v2, v3 int32) {
	g.setUniform(location, float32(v0), float32(v1), float32(v2), float32(v3))
}

func (g *GL) UniformMatrix3fv(location int32, count int32, transpose bool, value *float32) {
	g.setUniform(location, append([]float32(nil), unsafe.Slice(value, 9*int(count))...)...)
}

func (g *GL) UniformMatrix4fv(location int32, count int32, transpose bool, value *float32) {
	g.setUniform(location, append([]float32(nil), unsafe.Slice(value, 16*int(count))...)...)
}

// ──────────────────────────── Buffers & vertex arrays ──────────────────────────

func (g *GL) GenBuffers(n int32, buffers *uint32) {
	names := unsafe.Slice(buffers, n)
	for i := range names {
		names[i] = g.newName(&g.Created.Buffers)
		if names[i] != 0 {
			g.buffers[names[i]] = 0
		}
	}
}

func (g *GL) DeleteBuffers(n int32, buffers *uint32) {
	for _, name := range unsafe.Slice(buffers, n) {
		if name == 0 {
			continue
		}
		g.markDeleted(name)
		delete(g.buffers, name)
	}
}

func (g *GL) BindBuffer(target, buffer uint32) { g.boundBuffers[target] = buffer }

// BufferSize returns the size last uploaded to buffer.
func (g *GL) BufferSize(buffer uint32) int { return g.buffers[buffer] }

func (g *GL) BufferData(target uint32, size int, data unsafe.Pointer, usage uint32) {
	name := g.boundBuffers[target]
	if _, ok := g.buffers[name]; !ok {
		g.errs = append(g.errs, invalidOperation)
		return
	}
	g.buffers[name] = size
}

func (g *GL) GenVertexArrays(n int32, arrays *uint32) {
	names := unsafe.Slice(arrays, n)
	for i := range names {
		names[i] = g.newName(&g.Created.VertexArrays)
		if names[i] != 0 {
			g.arrays[names[i]] = true
		}
	}
}

func (g *GL) DeleteVertexArrays(n int32, arrays *uint32) {
	for _, name := range unsafe.Slice(arrays, n) {
		if name == 0 {
			continue
		}
		g.markDeleted(name)
		delete(g.arrays, name)
	}
}

func (g *GL) BindVertexArray(array uint32) { g.boundArray = array }

func (g *GL) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int) {
	if g.boundArray == 0 {
		g.errs = append(g.errs, invalidOperation)
	}
}

func (g *GL) EnableVertexAttribArray(index uint32) {}

// ─────────────────────────────────── Textures ──────────────────────────────────

func (g *GL) GenTextures(n int32, textures *uint32) {
	names := unsafe.Slice(textures, n)
	for i := range names {
		names[i] = g.newName(&g.Created.Textures)
		if names[i] != 0 {
			g.textures[names[i]] = [2]int32{}
		}
	}
}

func (g *GL) DeleteTextures(n int32, textures *uint32) {
	for _, name := range unsafe.Slice(textures, n) {
		if name == 0 {
			continue
		}
		g.markDeleted(name)
		delete(g.textures, name)
	}
}

func (g *GL) BindTexture(target, texture uint32)    { g.boundTexture = texture }
func (g *GL) ActiveTexture(texture uint32)          {}
func (g *GL) GenerateMipmap(target uint32)          {}
func (g *GL) PixelStorei(pname uint32, param int32) {}

// TextureSize returns the dimensions last specified for texture.
func (g *GL) TextureSize(texture uint32) (int32, int32) {
	s := g.textures[texture]
	return s[0], s[1]
}

func (g *GL) TexImage2D(target uint32, level, internalformat, width, height, border int32, format, xtype uint32, pixels unsafe.Pointer) {
	if _, ok := g.textures[g.boundTexture]; !ok {
		g.errs = append(g.errs, invalidOperation)
		return
	}
	if level == 0 {
		g.textures[g.boundTexture] = [2]int32{width, height}
	}
}

func (g *GL) TexParameteri(target, pname uint32, param int32) {}

// ───────────────────────────────── Framebuffers ────────────────────────────────

func (g *GL) GenFramebuffers(n int32, framebuffers *uint32) {
	names := unsafe.Slice(framebuffers, n)
	for i := range names {
		names[i] = g.newName(&g.Created.Framebuffers)
		if names[i] != 0 {
			g.framebuffers[names[i]] = true
		}
	}
}

func (g *GL) DeleteFramebuffers(n int32, framebuffers *uint32) {
	for _, name := range unsafe.Slice(framebuffers, n) {
		if name == 0 {
			continue
		}
		g.markDeleted(name)
		delete(g.framebuffers, name)
		if g.boundFBO == name {
			g.boundFBO = 0
		}
	}
}

func (g *GL) BindFramebuffer(target, framebuffer uint32) { g.boundFBO = framebuffer }

func (g *GL) FramebufferTexture2D(target, attachment, textarget, texture uint32, level int32) {}

func (g *GL) CheckFramebufferStatus(target uint32) uint32 {
	if g.framebuffers[g.boundFBO] {
		return graphics.FramebufferComplete
	}
	return 0
}

// ReadPixels fills RGBA pixels, bytes or floats, with the current clear
// color.
func (g *GL) ReadPixels(x, y, width, height int32, format, xtype uint32, pixels unsafe.Pointer) {
	if format != graphics.RGBA {
		g.errs = append(g.errs, invalidOperation)
		return
	}
	switch xtype {
	case graphics.UnsignedByte:
	case graphics.Float:
		buf := unsafe.Slice((*float32)(pixels), int(width)*int(height)*4)
		for i := range buf {
			buf[i] = clamp01(g.clearColor[i%4])
		}
		return
	default:
		g.errs = append(g.errs, invalidOperation)
		return
	}
	buf := unsafe.Slice((*byte)(pixels), int(width)*int(height)*4)
	var px [4]byte
	for i, c := range g.clearColor {
		px[i] = byte(clamp01(c)*255 + 0.5)
	}
	for i := 0; i < len(buf); i += 4 {
		copy(buf[i:i+4], px[:])
	}
}

// ─────────────────────────────────── Drawing ───────────────────────────────────

func (g *GL) DrawArrays(mode uint32, first, count int32) {
	g.draw(mode, count, false)
}

func (g *GL) DrawElements(mode uint32, count int32, xtype uint32, offset int) {
	g.draw(mode, count, true)
}

func (g *GL) draw(mode uint32, count int32, indexed bool) {
	if g.current == 0 || g.boundArray == 0 {
		g.errs = append(g.errs, invalidOperation)
		return
	}
	g.Draws = append(g.Draws, Draw{
		Program:     g.current,
		VertexArray: g.boundArray,
		Framebuffer: g.boundFBO,
		Mode:        mode,
		Count:       count,
		Indexed:     indexed,
	})
}

// ─────────────────────────────── Source checking ───────────────────────────────

var (
	mainRe    = regexp.MustCompile(`\bvoid\s+main\s*\(\s*(void)?\s*\)`)
	varyingRe = regexp.MustCompile(`(?m)^\s*(?:layout\s*\([^)]*\)\s*)?(?:(?:flat|smooth|noperspective)\s+)?(in|out)\s+(\w+)\s+(\w+)\s*;`)
	uniformRe = regexp.MustCompile(`(?m)^\s*(?:layout\s*\([^)]*\)\s*)?uniform\s+(?:(?:lowp|mediump|highp)\s+)?(\w+)\s+(\w+)\s*(?:\[\s*(\d+)\s*\])?\s*;`)
)

// checkSource accepts text with a leading #version directive, balanced
// braces and parentheses, and a main function.
func checkSource(_ uint32, source string) string {
	if !strings.HasPrefix(strings.TrimSpace(source), "#version") {
		return "0:1(1): error: #version directive required"
	}
	var stack []rune
	line := 1
	for _, r := range source {
		switch r {
		case '\n':
			line++
		case '{', '(':
			stack = append(stack, r)
		case '}', ')':
			open := '{'
			if r == ')' {
				open = '('
			}
			if len(stack) == 0 || stack[len(stack)-1] != open {
				return fmt.Sprintf("0:%d(1): error: syntax error, unexpected '%c'", line, r)
			}
			stack = stack[:len(stack)-1]
		}
	}
	if len(stack) != 0 {
		return fmt.Sprintf("0:%d(1): error: syntax error, unexpected end of file", line)
	}
	if !mainRe.MatchString(source) {
		return "0:1(1): error: no definition of main()"
	}
	return ""
}

// checkInterface requires every fragment input to be written by the vertex
// stage with the same type.
func checkInterface(vertex, fragment string) string {
	outs := make(map[string]string)
	for _, m := range varyingRe.FindAllStringSubmatch(vertex, -1) {
		if m[1] == "out" {
			outs[m[3]] = m[2]
		}
	}
	for _, m := range varyingRe.FindAllStringSubmatch(fragment, -1) {
		if m[1] != "in" {
			continue
		}
		typ, ok := outs[m[3]]
		if !ok {
			return fmt.Sprintf("error: fragment shader input '%s' is not written by the vertex shader", m[3])
		}
		if typ != m[2] {
			return fmt.Sprintf("error: '%s' declared as %s in the vertex shader and %s in the fragment shader", m[3], typ, m[2])
		}
	}
	return ""
}

// assignLocations numbers the uniforms of both stages in name order. An
// array of n elements takes n consecutive locations; its bare name and
// name[0] both resolve to the first.
func assignLocations(sources ...string) map[string]int32 {
	sizes := make(map[string]int)
	for _, src := range sources {
		for _, m := range uniformRe.FindAllStringSubmatch(src, -1) {
			n := 1
			if m[3] != "" {
				n, _ = strconv.Atoi(m[3])
			}
			sizes[m[2]] = n
		}
	}
	names := make([]string, 0, len(sizes))
	for name := range sizes {
		names = append(names, name)
	}
	sort.Strings(names)

	locations := make(map[string]int32)
	var next int32
	for _, name := range names {
		locations[name] = next
		if n := sizes[name]; n > 1 {
			for i := 0; i < n; i++ {
				locations[fmt.Sprintf("%s[%d]", name, i)] = next + int32(i)
			}
		}
		next += int32(sizes[name])
	}
	return locations
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
