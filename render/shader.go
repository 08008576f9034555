// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"
)

//go:embed shaders/crop.wgsl
var cropShaderSource string

// Names the crop pass looks up in its shader.
const (
	ParamTexture  = "source_tex"
	ParamSampler  = "source_sampler"
	ParamUniforms = "crop"
	ParamAddVal   = "add_val"
	ParamMulVal   = "mul_val"
)

// Binding is a resource slot in a shader.
type Binding struct {
	Group, Binding uint32
}

// CropShader is a compiled crop shader with its parameters resolved.
type CropShader struct {
	// Source is the WGSL text.
	Source string

	// SPIRV is the compiled module as little-endian words.
	SPIRV []uint32

	// Texture, Sampler and Uniforms locate the three resources.
	Texture, Sampler, Uniforms Binding

	// AddValOffset and MulValOffset are byte offsets of the two vectors
	// inside the uniform block of UniformSize bytes.
	AddValOffset, MulValOffset uint32
	UniformSize                uint32
}

var defaultCropShader = sync.OnceValues(func() (*CropShader, error) {
	return CompileCropShader(cropShaderSource)
})

// DefaultCropShader returns the built-in crop shader. It is compiled once.
func DefaultCropShader() (*CropShader, error) {
	return defaultCropShader()
}

// CompileCropShader parses WGSL source, resolves the crop parameters and
// compiles it to SPIR-V.
//
// The source must declare a sampled texture named source_tex, a sampler
// named source_sampler and a uniform struct named crop with vec2<f32>
// members add_val and mul_val. A missing one yields ErrMissingParam; any
// parse, validation or code generation failure yields ErrShaderCompile.
func CompileCropShader(source string) (*CropShader, error) {
	ast, err := naga.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrShaderCompile, err)
	}
	module, err := naga.LowerWithSource(ast, source)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrShaderCompile, err)
	}

	cs := &CropShader{Source: source}
	if err := cs.resolve(module); err != nil {
		return nil, err
	}

	spirv, err := naga.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrShaderCompile, err)
	}
	cs.SPIRV = spirvWords(spirv)

	Logger().Debug("render: crop shader compiled",
		"spirv_words", len(cs.SPIRV),
		"uniform_size", cs.UniformSize)
	return cs, nil
}

func (cs *CropShader) resolve(m *ir.Module) error {
	tex, err := findGlobal(m, ParamTexture)
	if err != nil {
		return err
	}
	if _, ok := m.Types[tex.Type].Inner.(ir.ImageType); !ok {
		return fmt.Errorf("%w: %s is not a texture", ErrMissingParam, ParamTexture)
	}
	cs.Texture = Binding{Group: tex.Binding.Group, Binding: tex.Binding.Binding}

	smp, err := findGlobal(m, ParamSampler)
	if err != nil {
		return err
	}
	if _, ok := m.Types[smp.Type].Inner.(ir.SamplerType); !ok {
		return fmt.Errorf("%w: %s is not a sampler", ErrMissingParam, ParamSampler)
	}
	cs.Sampler = Binding{Group: smp.Binding.Group, Binding: smp.Binding.Binding}

	uni, err := findGlobal(m, ParamUniforms)
	if err != nil {
		return err
	}
	if uni.Space != ir.SpaceUniform {
		return fmt.Errorf("%w: %s is not a uniform", ErrMissingParam, ParamUniforms)
	}
	st, ok := m.Types[uni.Type].Inner.(ir.StructType)
	if !ok {
		return fmt.Errorf("%w: %s is not a struct", ErrMissingParam, ParamUniforms)
	}
	cs.Uniforms = Binding{Group: uni.Binding.Group, Binding: uni.Binding.Binding}
	cs.UniformSize = st.Span

	if cs.AddValOffset, err = findVec2Member(m, st, ParamAddVal); err != nil {
		return err
	}
	if cs.MulValOffset, err = findVec2Member(m, st, ParamMulVal); err != nil {
		return err
	}
	return nil
}

func findGlobal(m *ir.Module, name string) (ir.GlobalVariable, error) {
	for _, g := range m.GlobalVariables {
		if g.Name != name {
			continue
		}
		if g.Binding == nil || int(g.Type) >= len(m.Types) {
			return ir.GlobalVariable{}, fmt.Errorf("%w: %s has no binding", ErrMissingParam, name)
		}
		return g, nil
	}
	return ir.GlobalVariable{}, fmt.Errorf("%w: %s", ErrMissingParam, name)
}

func findVec2Member(m *ir.Module, st ir.StructType, name string) (uint32, error) {
	for _, mem := range st.Members {
		if mem.Name != name {
			continue
		}
		if int(mem.Type) < len(m.Types) {
			if v, ok := m.Types[mem.Type].Inner.(ir.VectorType); ok &&
				v.Size == ir.Vec2 && v.Scalar.Kind == ir.ScalarFloat && v.Scalar.Width == 4 {
				return mem.Offset, nil
			}
		}
		return 0, fmt.Errorf("%w: %s.%s is not vec2<f32>", ErrMissingParam, ParamUniforms, name)
	}
	return 0, fmt.Errorf("%w: %s.%s", ErrMissingParam, ParamUniforms, name)
}

// spirvWords converts SPIR-V bytes to little-endian 32-bit words.
func spirvWords(b []byte) []uint32 {
	words := make([]uint32, len(b)/4)
	for i := range words {
		words[i] = uint32(b[i*4]) |
			uint32(b[i*4+1])<<8 |
			uint32(b[i*4+2])<<16 |
			uint32(b[i*4+3])<<24
	}
	return words
}
