package bootstrap

import (
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"

	"github.com/vkngwrapper/rendercontext/gfx"
	"github.com/vkngwrapper/rendercontext/gfx/gfxtest"
)

func newContext(t *testing.T, a *gfxtest.Adapter) (*gfxtest.Loader, *gfxtest.Window, *Context) {
	t.Helper()
	l := gfxtest.NewLoader(a)
	w := gfxtest.NewWindow(l)
	return l, w, New(l, w, testOptions(t))
}

func TestContextLifecycle(t *testing.T) {
	l, _, c := newContext(t, gfxtest.NewAdapter("gpu"))

	if err := c.Init(); err != nil {
		t.Fatalf("Init: %+v", err)
	}
	checkEqual(t, "creates", l.Journal.Filter("create "), []string{
		"create instance#1",
		"create debug-messenger#1",
		"create surface#1",
		"create device#1",
		"create swapchain#1",
		"create image-view#1",
		"create image-view#2",
		"create image-view#3",
		"create shader-module#1",
		"create shader-module#2",
		"create pipeline#1",
	})
	// Only FIFO is offered, so the mailbox preference falls back.
	if c.Configuration.PresentMode != gfx.PresentModeFIFO {
		t.Fatalf("present mode: have %v", c.Configuration.PresentMode)
	}

	c.Teardown()
	want := []string{
		"destroy shader-module#2",
		"destroy shader-module#1",
		"destroy pipeline#1",
		"destroy image-view#3",
		"destroy image-view#2",
		"destroy image-view#1",
		"destroy swapchain#1",
		"destroy device#1",
		"destroy debug-messenger#1",
		"destroy surface#1",
		"destroy instance#1",
		"destroy window",
	}
	checkEqual(t, "destroys", l.Journal.Filter("destroy "), want)

	c.Teardown()
	checkEqual(t, "destroys after second teardown", l.Journal.Filter("destroy "), want)
	if invalid := l.Journal.Filter("destroy-invalid"); len(invalid) != 0 {
		t.Fatalf("destroyed handles that were not live: %v", invalid)
	}
}

func TestContextWithoutValidation(t *testing.T) {
	a := gfxtest.NewAdapter("gpu")
	l, _, c := newContext(t, a)
	l.Layers = nil
	c.opts.Validation = false

	if err := c.Init(); err != nil {
		t.Fatalf("Init: %+v", err)
	}
	defer c.Teardown()
	if got := l.Journal.Filter("create debug-messenger"); len(got) != 0 {
		t.Fatalf("messenger created with validation off: %v", got)
	}
	if a.DeviceInfo.EnabledLayers != nil {
		t.Fatalf("device layers with validation off: %v", a.DeviceInfo.EnabledLayers)
	}
}

func TestContextInitFailureCleansUp(t *testing.T) {
	for _, x := range []struct {
		name  string
		setup func(*gfxtest.Loader, *gfxtest.Window, *gfxtest.Adapter, *Options)
		kind  error
	}{
		{
			name: "surface",
			setup: func(_ *gfxtest.Loader, w *gfxtest.Window, _ *gfxtest.Adapter, _ *Options) {
				w.SurfaceErr = errors.New("no display")
			},
			kind: ErrSurfaceCreationFailed,
		},
		{
			name:  "no suitable adapter",
			setup: func(_ *gfxtest.Loader, _ *gfxtest.Window, a *gfxtest.Adapter, _ *Options) { a.DeviceExtensions = nil },
			kind:  ErrNoSuitableAdapter,
		},
		{
			name: "swap chain",
			setup: func(_ *gfxtest.Loader, _ *gfxtest.Window, a *gfxtest.Adapter, _ *Options) {
				a.SwapchainErr = errors.New("surface lost")
			},
			kind: ErrSwapChainCreationFailed,
		},
		{
			name: "bytecode",
			setup: func(_ *gfxtest.Loader, _ *gfxtest.Window, _ *gfxtest.Adapter, o *Options) {
				o.FragmentShaderPath = filepath.Join(filepath.Dir(o.FragmentShaderPath), "missing.spv")
			},
			kind: ErrBytecodeReadFailed,
		},
		{
			name: "pipeline",
			setup: func(_ *gfxtest.Loader, _ *gfxtest.Window, a *gfxtest.Adapter, _ *Options) {
				a.PipelineErr = errors.New("out of memory")
			},
			kind: ErrPipelineCreationFailed,
		},
	} {
		t.Run(x.name, func(t *testing.T) {
			a := gfxtest.NewAdapter("gpu")
			l, w, c := newContext(t, a)
			x.setup(l, w, a, &c.opts)

			err := c.Init()
			if !errors.Is(err, x.kind) {
				t.Fatalf("Init: have %v, want %v", err, x.kind)
			}
			c.Teardown()
			if live := l.Journal.Live(); len(live) != 0 {
				t.Fatalf("live after teardown: %v", live)
			}
			if invalid := l.Journal.Filter("destroy-invalid"); len(invalid) != 0 {
				t.Fatalf("destroyed handles that were not live: %v", invalid)
			}
			if got := l.Journal.Filter("destroy window"); len(got) != 1 {
				t.Fatalf("window destroyed %d times", len(got))
			}
		})
	}
}

func TestContextRebuildSwapChain(t *testing.T) {
	a := gfxtest.NewAdapter("gpu")
	l, w, c := newContext(t, a)
	if err := c.Init(); err != nil {
		t.Fatalf("Init: %+v", err)
	}
	defer c.Teardown()

	// A minimized window has nothing to present to.
	w.Width, w.Height = 0, 0
	if err := c.RebuildSwapChain(); err != nil {
		t.Fatalf("RebuildSwapChain on empty drawable: %v", err)
	}
	if len(a.Device.Swapchains) != 1 {
		t.Fatalf("swap chain rebuilt for an empty drawable")
	}

	w.Width, w.Height = 1024, 768
	a.Capabilities.CurrentExtent = gfx.Extent2D{Width: 1024, Height: 768}
	if err := c.RebuildSwapChain(); err != nil {
		t.Fatalf("RebuildSwapChain: %v", err)
	}
	info := a.Device.Swapchains[1]
	if info.OldSwapchain == nil || info.ImageExtent != a.Capabilities.CurrentExtent {
		t.Fatalf("replacement chain: old %v extent %v", info.OldSwapchain, info.ImageExtent)
	}
	if got := l.Journal.Filter("wait idle"); len(got) != 1 {
		t.Fatalf("device not idled before rebuild: %v", l.Journal.Entries())
	}
	if got := l.Journal.Filter("create pipeline"); len(got) != 1 {
		t.Fatalf("pipeline rebuilt with an unchanged format: %v", got)
	}

	a.Formats = []gfx.SurfaceFormat{bgraUNorm}
	if err := c.RebuildSwapChain(); err != nil {
		t.Fatalf("RebuildSwapChain after format change: %v", err)
	}
	checkEqual(t, "pipelines", l.Journal.Filter("create pipeline"), []string{"create pipeline#1", "create pipeline#2"})
	if a.Device.Pipeline.ColorFormat != gfx.FormatB8G8R8A8UNorm {
		t.Fatalf("rebuilt pipeline format: have %v", a.Device.Pipeline.ColorFormat)
	}
}

func TestContextRebuildEmptySurfaceLists(t *testing.T) {
	a := gfxtest.NewAdapter("gpu")
	l, _, c := newContext(t, a)
	if err := c.Init(); err != nil {
		t.Fatalf("Init: %+v", err)
	}
	defer c.Teardown()

	formats, modes := a.Formats, a.PresentModes
	a.Formats = nil
	if err := c.RebuildSwapChain(); !errors.Is(err, ErrSwapChainCreationFailed) {
		t.Fatalf("RebuildSwapChain with no formats: have %v", err)
	}
	a.Formats, a.PresentModes = formats, nil
	if err := c.RebuildSwapChain(); !errors.Is(err, ErrSwapChainCreationFailed) {
		t.Fatalf("RebuildSwapChain with no present modes: have %v", err)
	}
	a.PresentModes = modes

	if len(a.Device.Swapchains) != 1 {
		t.Fatalf("swap chain created from empty surface lists: %d", len(a.Device.Swapchains))
	}
	if got := l.Journal.Filter("create pipeline"); len(got) != 1 {
		t.Fatalf("pipeline rebuilt after failed rebuild: %v", got)
	}
}

func TestContextRebuildBeforeInit(t *testing.T) {
	_, _, c := newContext(t, gfxtest.NewAdapter("gpu"))
	if err := c.RebuildSwapChain(); err == nil {
		t.Fatal("RebuildSwapChain before Init: want error")
	}
	c.Teardown()
}

func TestKind(t *testing.T) {
	if Kind(nil) != "" || Kind(errors.New("unrelated")) != "" {
		t.Fatal("Kind named an error that carries no kind")
	}
	err := errors.Wrap(fail(ErrDeviceCreationFailed, errors.New("lost"), "create device"), "init device")
	if Kind(err) != "DeviceCreationFailed" {
		t.Fatalf("Kind: have %q", Kind(err))
	}
}
