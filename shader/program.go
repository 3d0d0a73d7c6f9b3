package shader

import (
	"fmt"

	"github.com/richinsley/golearngl/graphics"
)

// Program is a linked vertex+fragment pipeline. A Program returned by New is
// always linked; there is no partially built state.
//
// All methods must be called on the thread that owns the GL context.
type Program struct {
	gl        graphics.GL
	handle    uint32
	names     map[string]string
	locations map[string]int32
}

// New compiles both stages and links them. Every GL object created on the
// way is released before New returns, on success and on failure; only the
// linked program survives.
func New(gl graphics.GL, vertex, fragment Source) (*Program, error) {
	if vertex.Stage != Vertex {
		return nil, fmt.Errorf("%w: %s source passed as vertex stage", ErrStageMismatch, vertex.Stage)
	}
	if fragment.Stage != Fragment {
		return nil, fmt.Errorf("%w: %s source passed as fragment stage", ErrStageMismatch, fragment.Stage)
	}

	vertexShader, err := compileShader(gl, vertex)
	if err != nil {
		return nil, err
	}
	defer gl.DeleteShader(vertexShader)

	fragmentShader, err := compileShader(gl, fragment)
	if err != nil {
		return nil, err
	}
	defer gl.DeleteShader(fragmentShader)

	program := gl.CreateProgram()
	if program == 0 {
		return nil, &ResourceExhaustedError{Resource: "program"}
	}
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)
	gl.DetachShader(program, vertexShader)
	gl.DetachShader(program, fragmentShader)

	var status int32
	gl.GetProgramiv(program, graphics.LinkStatus, &status)
	if status == graphics.False {
		logText := gl.GetProgramInfoLog(program)
		gl.DeleteProgram(program)
		return nil, &LinkError{Log: logText}
	}

	p := &Program{
		gl:        gl,
		handle:    program,
		locations: make(map[string]int32),
	}
	for _, src := range []Source{vertex, fragment} {
		for name, mapped := range src.Uniforms {
			if p.names == nil {
				p.names = make(map[string]string)
			}
			p.names[name] = mapped
		}
	}
	return p, nil
}

func compileShader(gl graphics.GL, src Source) (uint32, error) {
	if src.Language != GLSL {
		return 0, &CompileError{Stage: src.Stage, Path: src.Path, Log: "source is not GLSL; translate it first"}
	}
	shader := gl.CreateShader(src.Stage.GLType())
	if shader == 0 {
		return 0, &ResourceExhaustedError{Resource: src.Stage.String() + " shader"}
	}
	gl.ShaderSource(shader, src.Text)
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, graphics.CompileStatus, &status)
	if status == graphics.False {
		logText := gl.GetShaderInfoLog(shader)
		gl.DeleteShader(shader)
		return 0, &CompileError{Stage: src.Stage, Path: src.Path, Log: logText}
	}
	return shader, nil
}

// Handle returns the GL program name, or 0 once disposed.
func (p *Program) Handle() uint32 {
	return p.handle
}

// Activate makes p the program used by subsequent draw calls.
func (p *Program) Activate() {
	p.mustBeLive()
	p.gl.UseProgram(p.handle)
}

// Location returns the cached location of a uniform, looking it up on first
// use. Names the program does not have resolve to -1.
func (p *Program) Location(name string) int32 {
	p.mustBeLive()
	if loc, ok := p.locations[name]; ok {
		return loc
	}
	lookup := name
	if mapped, ok := p.names[name]; ok {
		lookup = mapped
	}
	loc := p.gl.GetUniformLocation(p.handle, lookup)
	p.locations[name] = loc
	return loc
}

// SetUniform writes value to the named uniform of p, which must be the
// active program. Unknown or optimized-out names are ignored. The Go type of
// value selects the GL call; whether it matches the declared GLSL type is
// left to the driver.
func (p *Program) SetUniform(name string, value any) {
	loc := p.Location(name)
	if loc < 0 {
		return
	}
	gl := p.gl
	switch v := value.(type) {
	case float32:
		gl.Uniform1f(loc, v)
	case float64:
		gl.Uniform1f(loc, float32(v))
	case int:
		gl.Uniform1i(loc, int32(v))
	case int32:
		gl.Uniform1i(loc, v)
	case uint32:
		gl.Uniform1ui(loc, v)
	case bool:
		var i int32
		if v {
			i = 1
		}
		gl.Uniform1i(loc, i)
	case [2]float32:
		gl.Uniform2f(loc, v[0], v[1])
	case [3]float32:
		gl.Uniform3f(loc, v[0], v[1], v[2])
	case [4]float32:
		gl.Uniform4f(loc, v[0], v[1], v[2], v[3])
	case [2]int32:
		gl.Uniform2i(loc, v[0], v[1])
	case [3]int32:
		gl.Uniform3i(loc, v[0], v[1], v[2])
	case [4]int32:
		gl.Uniform4i(loc, v[0], v[1], v[2], v[3])
	case [9]float32:
		gl.UniformMatrix3fv(loc, 1, false, &v[0])
	case [16]float32:
		gl.UniformMatrix4fv(loc, 1, false, &v[0])
	case []float32:
		switch len(v) {
		case 1:
			gl.Uniform1f(loc, v[0])
		case 2:
			gl.Uniform2f(loc, v[0], v[1])
		case 3:
			gl.Uniform3f(loc, v[0], v[1], v[2])
		case 4:
			gl.Uniform4f(loc, v[0], v[1], v[2], v[3])
		case 9:
			gl.UniformMatrix3fv(loc, 1, false, &v[0])
		case 16:
			gl.UniformMatrix4fv(loc, 1, false, &v[0])
		default:
			panic(fmt.Sprintf("shader: uniform %q: unsupported float slice length %d", name, len(v)))
		}
	default:
		panic(fmt.Sprintf("shader: uniform %q: unsupported value type %T", name, value))
	}
}

// Dispose deletes the GL program. Calling it again does nothing.
func (p *Program) Dispose() {
	if p.handle == 0 {
		return
	}
	p.gl.DeleteProgram(p.handle)
	p.handle = 0
	p.locations = nil
}

func (p *Program) mustBeLive() {
	if p.handle == 0 {
		panic("shader: use of disposed program")
	}
}
