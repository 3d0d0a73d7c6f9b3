package translator

import (
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/glsl"
	"github.com/gogpu/naga/ir"
	"github.com/richinsley/golearngl/shader"
)

// FromWGSL compiles one entry point of a WGSL module to GLSL 330 core. When
// src.EntryPoint is empty the wgpu convention is used: vs_main for the
// vertex stage and fs_main for the fragment stage.
func FromWGSL(src shader.Source) (shader.Source, error) {
	entry := src.EntryPoint
	if entry == "" {
		entry = "vs_main"
		if src.Stage == shader.Fragment {
			entry = "fs_main"
		}
	}

	ast, err := naga.Parse(src.Text)
	if err != nil {
		return shader.Source{}, &shader.CompileError{Stage: src.Stage, Path: src.Path, Log: err.Error()}
	}
	module, err := naga.LowerWithSource(ast, src.Text)
	if err != nil {
		return shader.Source{}, &shader.CompileError{Stage: src.Stage, Path: src.Path, Log: err.Error()}
	}
	if err := checkEntryPoint(module, entry, src.Stage); err != nil {
		return shader.Source{}, &shader.CompileError{Stage: src.Stage, Path: src.Path, Log: err.Error()}
	}

	code, _, err := glsl.Compile(module, glsl.Options{
		LangVersion:        glsl.Version330,
		EntryPoint:         entry,
		ForceHighPrecision: true,
	})
	if err != nil {
		return shader.Source{}, fmt.Errorf("%s shader: wgsl to glsl: %w", src.Stage, err)
	}

	return shader.Source{
		Stage:    src.Stage,
		Language: shader.GLSL,
		Text:     code,
		Path:     src.Path,
	}, nil
}

func checkEntryPoint(module *ir.Module, name string, stage shader.Stage) error {
	want := ir.StageVertex
	if stage == shader.Fragment {
		want = ir.StageFragment
	}
	for _, ep := range module.EntryPoints {
		if ep.Name != name {
			continue
		}
		if ep.Stage != want {
			return fmt.Errorf("entry point %q is not a %s entry point", name, stage)
		}
		return nil
	}
	return fmt.Errorf("entry point %q not found", name)
}
