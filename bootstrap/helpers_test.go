package bootstrap

import (
	"io"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"golang.org/x/exp/slog"

	"github.com/vkngwrapper/rendercontext/gfx"
	"github.com/vkngwrapper/rendercontext/gfx/gfxtest"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// spirv is a two-word blob: the SPIR-V magic number and a version word.
var spirv = []byte{0x03, 0x02, 0x23, 0x07, 0x00, 0x00, 0x01, 0x00}

func writeShaders(t *testing.T) (vert, frag string) {
	t.Helper()
	dir := t.TempDir()
	vert = filepath.Join(dir, "vert.spv")
	frag = filepath.Join(dir, "frag.spv")
	for _, p := range []string{vert, frag} {
		if err := os.WriteFile(p, spirv, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return vert, frag
}

func intp(i int) *int { return &i }

func testOptions(t *testing.T) Options {
	opts := DefaultOptions()
	opts.VertexShaderPath, opts.FragmentShaderPath = writeShaders(t)
	opts.Logger = discardLogger()
	return opts
}

// newInstance creates an instance and a surface on l without going through
// a Context.
func newInstance(t *testing.T, l *gfxtest.Loader) (*gfxtest.Instance, gfx.Surface) {
	t.Helper()
	inst, err := l.CreateInstance(gfx.InstanceCreateInfo{})
	if err != nil {
		t.Fatal(err)
	}
	ti := inst.(*gfxtest.Instance)
	return ti, ti.NewSurface()
}

func checkEqual(t *testing.T, what string, got, want interface{}) {
	t.Helper()
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("%s:\nhave %v\nwant %v", what, got, want)
	}
}
