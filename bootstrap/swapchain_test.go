package bootstrap

import (
	"testing"

	"github.com/cockroachdb/errors"

	"github.com/vkngwrapper/rendercontext/gfx"
	"github.com/vkngwrapper/rendercontext/gfx/gfxtest"
)

func newDevice(t *testing.T, a *gfxtest.Adapter, assignment QueueFamilyAssignment) (*gfxtest.Loader, gfx.Surface, *DeviceContext) {
	t.Helper()
	l := gfxtest.NewLoader(a)
	_, surface := newInstance(t, l)
	dc, err := CreateDevice(a, assignment, []string{SwapchainExtension}, nil)
	if err != nil {
		t.Fatal(err)
	}
	return l, surface, dc
}

var testConfig = SurfaceConfiguration{
	Format:       bgraSRGB,
	PresentMode:  gfx.PresentModeFIFO,
	Extent:       gfx.Extent2D{Width: 800, Height: 600},
	ImageCount:   3,
	PreTransform: gfx.TransformIdentity,
}

func TestCreateSwapChain(t *testing.T) {
	a := gfxtest.NewAdapter("gpu")
	a.ExtraImages = 2
	l, surface, dc := newDevice(t, a, QueueFamilyAssignment{intp(0), intp(0)})

	sc, err := CreateSwapChain(dc, surface, testConfig)
	if err != nil {
		t.Fatalf("CreateSwapChain: %v", err)
	}

	info := a.Device.Swapchains[0]
	checkEqual(t, "create info", info, gfx.SwapchainCreateInfo{
		Surface:         surface,
		MinImageCount:   3,
		ImageFormat:     gfx.FormatB8G8R8A8SRGB,
		ImageColorSpace: gfx.ColorSpaceSRGBNonlinear,
		ImageExtent:     gfx.Extent2D{Width: 800, Height: 600},
		SharingMode:     gfx.SharingModeExclusive,
		PreTransform:    gfx.TransformIdentity,
		PresentMode:     gfx.PresentModeFIFO,
	})

	// Views follow the images the chain really has, not the requested count.
	if len(sc.Images) != 5 || len(sc.Views) != 5 {
		t.Fatalf("swap chain has %d images and %d views, want 5 and 5", len(sc.Images), len(sc.Views))
	}

	sc.Destroy()
	sc.Destroy()
	checkEqual(t, "destroys", l.Journal.Filter("destroy"), []string{
		"destroy image-view#5",
		"destroy image-view#4",
		"destroy image-view#3",
		"destroy image-view#2",
		"destroy image-view#1",
		"destroy swapchain#1",
	})
}

func TestCreateSwapChainConcurrent(t *testing.T) {
	a := gfxtest.NewAdapter("gpu")
	a.Families = []gfx.QueueFamilyProperties{gfxtest.Graphics, gfxtest.Transfer, gfxtest.Compute}
	a.PresentFamilies = []int{2}
	_, surface, dc := newDevice(t, a, QueueFamilyAssignment{intp(0), intp(2)})

	if _, err := CreateSwapChain(dc, surface, testConfig); err != nil {
		t.Fatalf("CreateSwapChain: %v", err)
	}
	info := a.Device.Swapchains[0]
	if info.SharingMode != gfx.SharingModeConcurrent {
		t.Fatalf("sharing mode: have %v, want CONCURRENT", info.SharingMode)
	}
	checkEqual(t, "queue family indices", info.QueueFamilyIndices, []int{0, 2})
}

func TestCreateSwapChainFailure(t *testing.T) {
	a := gfxtest.NewAdapter("gpu")
	a.SwapchainErr = errors.New("native window in use")
	l, surface, dc := newDevice(t, a, QueueFamilyAssignment{intp(0), intp(0)})

	_, err := CreateSwapChain(dc, surface, testConfig)
	if !errors.Is(err, ErrSwapChainCreationFailed) {
		t.Fatalf("CreateSwapChain: have %v, want ErrSwapChainCreationFailed", err)
	}
	if got := l.Journal.Filter("destroy"); len(got) != 0 {
		t.Fatalf("failed creation destroyed %v", got)
	}
}

func TestCreateSwapChainImageViewFailure(t *testing.T) {
	a := gfxtest.NewAdapter("gpu")
	a.ImageViewErr = errors.New("out of host memory")
	a.ImageViewErrAt = 2
	l, surface, dc := newDevice(t, a, QueueFamilyAssignment{intp(0), intp(0)})

	_, err := CreateSwapChain(dc, surface, testConfig)
	if !errors.Is(err, ErrImageViewCreationFailed) {
		t.Fatalf("CreateSwapChain: have %v, want ErrImageViewCreationFailed", err)
	}
	// The views made so far and the chain are released.
	checkEqual(t, "destroys", l.Journal.Filter("destroy"), []string{
		"destroy image-view#2",
		"destroy image-view#1",
		"destroy swapchain#1",
	})
}

func TestRecreateSwapChain(t *testing.T) {
	a := gfxtest.NewAdapter("gpu")
	l, surface, dc := newDevice(t, a, QueueFamilyAssignment{intp(0), intp(0)})

	old, err := CreateSwapChain(dc, surface, testConfig)
	if err != nil {
		t.Fatal(err)
	}
	cfg := testConfig
	cfg.Extent = gfx.Extent2D{Width: 1920, Height: 1080}
	sc, err := RecreateSwapChain(dc, surface, cfg, old)
	if err != nil {
		t.Fatalf("RecreateSwapChain: %v", err)
	}

	if a.Device.Swapchains[1].OldSwapchain == nil {
		t.Fatal("replacement chain was not given the old chain")
	}
	if sc.Config.Extent != cfg.Extent {
		t.Fatalf("replacement extent: have %v, want %v", sc.Config.Extent, cfg.Extent)
	}
	checkEqual(t, "destroys", l.Journal.Filter("destroy"), []string{
		"destroy image-view#3",
		"destroy image-view#2",
		"destroy image-view#1",
		"destroy swapchain#1",
	})
}
