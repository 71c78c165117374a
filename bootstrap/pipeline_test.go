package bootstrap

import (
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"

	"github.com/vkngwrapper/rendercontext/gfx"
	"github.com/vkngwrapper/rendercontext/gfx/gfxtest"
)

func TestBytecodeWords(t *testing.T) {
	words, err := BytecodeWords(spirv)
	if err != nil {
		t.Fatalf("BytecodeWords: %v", err)
	}
	checkEqual(t, "words", words, []uint32{0x07230203, 0x00010000})

	for _, b := range [][]byte{nil, {1, 2, 3}, {1, 2, 3, 4, 5}} {
		if _, err := BytecodeWords(b); err == nil {
			t.Fatalf("BytecodeWords(%v): want error", b)
		}
	}
}

func TestLoadShaderPair(t *testing.T) {
	vert, frag := writeShaders(t)
	v, f, err := LoadShaderPair(vert, frag)
	if err != nil {
		t.Fatalf("LoadShaderPair: %v", err)
	}
	checkEqual(t, "vertex", v, spirv)
	checkEqual(t, "fragment", f, spirv)

	_, _, err = LoadShaderPair(vert, filepath.Join(t.TempDir(), "missing.spv"))
	if !errors.Is(err, ErrBytecodeReadFailed) {
		t.Fatalf("LoadShaderPair with a missing file: have %v, want ErrBytecodeReadFailed", err)
	}
}

func TestBuildMinimalPipeline(t *testing.T) {
	a := gfxtest.NewAdapter("gpu")
	l, _, dc := newDevice(t, a, QueueFamilyAssignment{intp(0), intp(0)})

	p, err := BuildMinimalPipeline(dc, spirv, spirv, gfx.FormatB8G8R8A8SRGB)
	if err != nil {
		t.Fatalf("BuildMinimalPipeline: %v", err)
	}

	info := a.Device.Pipeline
	if len(info.Stages) != 2 {
		t.Fatalf("pipeline has %d stages, want 2", len(info.Stages))
	}
	for i, stage := range []gfx.ShaderStage{gfx.StageVertex, gfx.StageFragment} {
		if info.Stages[i].Stage != stage || info.Stages[i].EntryPoint != "main" {
			t.Fatalf("stage %d: have %v %q, want %v main", i, info.Stages[i].Stage, info.Stages[i].EntryPoint, stage)
		}
	}
	if info.ColorFormat != gfx.FormatB8G8R8A8SRGB {
		t.Fatalf("color format: have %v", info.ColorFormat)
	}

	// Modules are gone as soon as the pipeline exists.
	checkEqual(t, "journal", l.Journal.Entries()[len(l.Journal.Entries())-5:], []string{
		"create shader-module#1",
		"create shader-module#2",
		"create pipeline#1",
		"destroy shader-module#2",
		"destroy shader-module#1",
	})

	p.Destroy()
	p.Destroy()
	checkEqual(t, "pipeline destroys", l.Journal.Filter("destroy pipeline"), []string{"destroy pipeline#1"})
}

func TestBuildMinimalPipelineFailures(t *testing.T) {
	a := gfxtest.NewAdapter("gpu")
	l, _, dc := newDevice(t, a, QueueFamilyAssignment{intp(0), intp(0)})

	_, err := BuildMinimalPipeline(dc, spirv, spirv[:6], gfx.FormatB8G8R8A8SRGB)
	if !errors.Is(err, ErrShaderModuleCreationFailed) {
		t.Fatalf("truncated fragment shader: have %v, want ErrShaderModuleCreationFailed", err)
	}
	// The vertex module made before the failure is released.
	checkEqual(t, "destroys", l.Journal.Filter("destroy"), []string{"destroy shader-module#1"})

	a.ShaderModuleErr = errors.New("invalid shader")
	if _, err := BuildMinimalPipeline(dc, spirv, spirv, gfx.FormatB8G8R8A8SRGB); !errors.Is(err, ErrShaderModuleCreationFailed) {
		t.Fatalf("backend rejecting module: have %v, want ErrShaderModuleCreationFailed", err)
	}

	a.ShaderModuleErr = nil
	a.PipelineErr = errors.New("out of device memory")
	if _, err := BuildMinimalPipeline(dc, spirv, spirv, gfx.FormatB8G8R8A8SRGB); !errors.Is(err, ErrPipelineCreationFailed) {
		t.Fatalf("backend rejecting pipeline: have %v, want ErrPipelineCreationFailed", err)
	}
	if live := l.Journal.Live(); len(live) != 3 {
		// instance, surface and device
		t.Fatalf("live handles after failures: %v", live)
	}
}
