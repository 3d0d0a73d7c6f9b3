package translator

import (
	"context"
	"fmt"
	"sync"

	"github.com/richinsley/golearngl/shader"
	gst "github.com/richinsley/goshadertranslator"
)

var (
	translator     *gst.ShaderTranslator
	translatorErr  error
	translatorOnce sync.Once
)

// GetTranslator returns the process-wide GLSL ES translator, creating it on
// first use. Startup loads a WebAssembly module, so it is deferred until a
// source actually needs it.
func GetTranslator() (*gst.ShaderTranslator, error) {
	translatorOnce.Do(func() {
		ctx := context.Background()
		translator, translatorErr = gst.NewShaderTranslator(ctx)
	})
	return translator, translatorErr
}

// Prepare returns src rewritten as desktop GLSL the current context can
// compile. WGSL goes through naga, GLSL ES through the ANGLE translator, and
// anything else is returned unchanged.
func Prepare(src shader.Source) (shader.Source, error) {
	switch {
	case src.Language == shader.WGSL:
		return FromWGSL(src)
	case src.IsES():
		return FromES(src)
	default:
		return src, nil
	}
}

// FromES translates a WebGL2 (GLSL ES 3.00) stage to GLSL 330 core. The
// translator renames uniforms; the returned source carries the mapping so
// Program.SetUniform keeps accepting the original names.
func FromES(src shader.Source) (shader.Source, error) {
	t, err := GetTranslator()
	if err != nil {
		return shader.Source{}, fmt.Errorf("failed to start shader translator: %w", err)
	}
	out, err := t.TranslateShader(src.Text, src.Stage.String(), gst.ShaderSpecWebGL2, gst.OutputFormatGLSL330)
	if err != nil {
		return shader.Source{}, fmt.Errorf("%s shader translation failed: %w", src.Stage, err)
	}

	res := src
	res.Language = shader.GLSL
	res.Text = out.Code
	res.Uniforms = make(map[string]string, len(out.Variables))
	for name, v := range out.Variables {
		res.Uniforms[name] = v.MappedName
	}
	return res, nil
}
