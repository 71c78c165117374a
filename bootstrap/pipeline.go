package bootstrap

import (
	"encoding/binary"
	"os"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"

	"github.com/vkngwrapper/rendercontext/gfx"
)

// EntryPoint is the entry point name of both shader stages.
const EntryPoint = "main"

// LoadBytecode reads a compiled shader from path.
func LoadBytecode(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fail(ErrBytecodeReadFailed, err, "read shader %s", path)
	}
	return b, nil
}

// LoadShaderPair reads the vertex and fragment bytecode. Only the two file
// reads run concurrently; it makes no backend calls.
func LoadShaderPair(vertexPath, fragmentPath string) (vertex, fragment []byte, err error) {
	var g errgroup.Group
	g.Go(func() error {
		var err error
		vertex, err = LoadBytecode(vertexPath)
		return err
	})
	g.Go(func() error {
		var err error
		fragment, err = LoadBytecode(fragmentPath)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return vertex, fragment, nil
}

// BytecodeWords reinterprets little-endian SPIR-V bytes as 32-bit words.
func BytecodeWords(b []byte) ([]uint32, error) {
	if len(b) == 0 || len(b)%4 != 0 {
		return nil, errors.Newf("bytecode size %d is not a positive multiple of 4", len(b))
	}
	words := make([]uint32, len(b)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(b[i*4:])
	}
	return words, nil
}

// Pipeline owns a graphics pipeline.
type Pipeline struct {
	Handle gfx.Pipeline

	device gfx.Device
	valid  bool
}

// BuildMinimalPipeline wraps the vertex and fragment bytecode in shader
// modules, assembles a two-stage pipeline rendering to colorFormat and
// releases the modules again.
func BuildMinimalPipeline(dc *DeviceContext, vertex, fragment []byte, colorFormat gfx.Format) (*Pipeline, error) {
	vertShader, err := createShaderModule(dc.Device, vertex, gfx.StageVertex)
	if err != nil {
		return nil, err
	}
	defer dc.Device.DestroyShaderModule(vertShader)

	fragShader, err := createShaderModule(dc.Device, fragment, gfx.StageFragment)
	if err != nil {
		return nil, err
	}
	defer dc.Device.DestroyShaderModule(fragShader)

	handle, err := dc.Device.CreateGraphicsPipeline(gfx.GraphicsPipelineCreateInfo{
		Stages: []gfx.PipelineShaderStage{
			{Stage: gfx.StageVertex, Module: vertShader, EntryPoint: EntryPoint},
			{Stage: gfx.StageFragment, Module: fragShader, EntryPoint: EntryPoint},
		},
		ColorFormat: colorFormat,
	})
	if err != nil {
		return nil, fail(ErrPipelineCreationFailed, err, "create graphics pipeline")
	}

	return &Pipeline{Handle: handle, device: dc.Device, valid: true}, nil
}

func createShaderModule(device gfx.Device, bytecode []byte, stage gfx.ShaderStage) (gfx.ShaderModule, error) {
	code, err := BytecodeWords(bytecode)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "%s shader", stage), ErrShaderModuleCreationFailed)
	}
	module, err := device.CreateShaderModule(code)
	if err != nil {
		return nil, fail(ErrShaderModuleCreationFailed, err, "create %s shader module", stage)
	}
	return module, nil
}

// Destroy destroys the pipeline. Calling it again does nothing.
func (p *Pipeline) Destroy() {
	if p == nil || !p.valid {
		return
	}
	p.device.DestroyPipeline(p.Handle)
	p.Handle = nil
	p.valid = false
}
