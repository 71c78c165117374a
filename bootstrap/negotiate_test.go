package bootstrap

import (
	"testing"

	"github.com/vkngwrapper/rendercontext/gfx"
)

var (
	bgraSRGB  = gfx.SurfaceFormat{Format: gfx.FormatB8G8R8A8SRGB, ColorSpace: gfx.ColorSpaceSRGBNonlinear}
	bgraUNorm = gfx.SurfaceFormat{Format: gfx.FormatB8G8R8A8UNorm, ColorSpace: gfx.ColorSpaceSRGBNonlinear}
	rgbaSRGB  = gfx.SurfaceFormat{Format: gfx.FormatR8G8B8A8SRGB, ColorSpace: gfx.ColorSpaceSRGBNonlinear}
	bgraP3    = gfx.SurfaceFormat{Format: gfx.FormatB8G8R8A8SRGB, ColorSpace: gfx.ColorSpaceDisplayP3Nonlinear}
)

func TestChooseSurfaceFormat(t *testing.T) {
	for _, x := range [...]struct {
		available []gfx.SurfaceFormat
		want      gfx.SurfaceFormat
	}{
		{[]gfx.SurfaceFormat{bgraSRGB}, bgraSRGB},
		{[]gfx.SurfaceFormat{bgraUNorm, bgraSRGB}, bgraSRGB},
		{[]gfx.SurfaceFormat{bgraUNorm, rgbaSRGB, bgraP3, bgraSRGB}, bgraSRGB},
		{[]gfx.SurfaceFormat{bgraSRGB, bgraUNorm, rgbaSRGB}, bgraSRGB},
		// Same format in another color space does not match.
		{[]gfx.SurfaceFormat{bgraP3, rgbaSRGB}, bgraP3},
		{[]gfx.SurfaceFormat{bgraUNorm, rgbaSRGB, bgraP3}, bgraUNorm},
		{nil, gfx.SurfaceFormat{}},
	} {
		if got := ChooseSurfaceFormat(x.available, bgraSRGB); got != x.want {
			t.Fatalf("ChooseSurfaceFormat(%v): have %v, want %v", x.available, got, x.want)
		}
	}
}

func TestChoosePresentMode(t *testing.T) {
	for _, x := range [...]struct {
		available []gfx.PresentMode
		preferred gfx.PresentMode
		want      gfx.PresentMode
	}{
		{[]gfx.PresentMode{gfx.PresentModeFIFO, gfx.PresentModeMailbox}, gfx.PresentModeMailbox, gfx.PresentModeMailbox},
		{[]gfx.PresentMode{gfx.PresentModeMailbox}, gfx.PresentModeMailbox, gfx.PresentModeMailbox},
		{[]gfx.PresentMode{gfx.PresentModeFIFO, gfx.PresentModeImmediate}, gfx.PresentModeMailbox, gfx.PresentModeFIFO},
		{[]gfx.PresentMode{gfx.PresentModeImmediate}, gfx.PresentModeMailbox, gfx.PresentModeFIFO},
		{[]gfx.PresentMode{gfx.PresentModeFIFO, gfx.PresentModeImmediate}, gfx.PresentModeImmediate, gfx.PresentModeImmediate},
	} {
		if got := ChoosePresentMode(x.available, x.preferred); got != x.want {
			t.Fatalf("ChoosePresentMode(%v, %v): have %v, want %v", x.available, x.preferred, got, x.want)
		}
	}
}

func TestChooseExtent(t *testing.T) {
	undefined := gfx.Extent2D{Width: gfx.ExtentUndefined, Height: gfx.ExtentUndefined}
	caps := gfx.SurfaceCapabilities{
		CurrentExtent:  undefined,
		MinImageExtent: gfx.Extent2D{Width: 1, Height: 1},
		MaxImageExtent: gfx.Extent2D{Width: 4096, Height: 4096},
	}
	for _, x := range [...]struct {
		current  gfx.Extent2D
		fallback gfx.Extent2D
		want     gfx.Extent2D
	}{
		{undefined, gfx.Extent2D{Width: 8000, Height: 600}, gfx.Extent2D{Width: 4096, Height: 600}},
		{undefined, gfx.Extent2D{Width: 0, Height: 0}, gfx.Extent2D{Width: 1, Height: 1}},
		{undefined, gfx.Extent2D{Width: 800, Height: 9000}, gfx.Extent2D{Width: 800, Height: 4096}},
		{gfx.Extent2D{Width: 1024, Height: 768}, gfx.Extent2D{Width: 8000, Height: 600}, gfx.Extent2D{Width: 1024, Height: 768}},
	} {
		caps.CurrentExtent = x.current
		if got := ChooseExtent(caps, x.fallback); got != x.want {
			t.Fatalf("ChooseExtent(%v, %v): have %v, want %v", x.current, x.fallback, got, x.want)
		}
	}
}

func TestChooseImageCount(t *testing.T) {
	for _, x := range [...]struct {
		min, max, want int
	}{
		{2, 4, 3},
		{3, 3, 3},
		{2, 0, 3},
		{1, 0, 2},
		{4, 16, 5},
	} {
		caps := gfx.SurfaceCapabilities{MinImageCount: x.min, MaxImageCount: x.max}
		if got := ChooseImageCount(caps); got != x.want {
			t.Fatalf("ChooseImageCount(min=%d, max=%d): have %d, want %d", x.min, x.max, got, x.want)
		}
	}
}

func TestResolveSharing(t *testing.T) {
	mode, families := ResolveSharing(QueueFamilyAssignment{GraphicsFamily: intp(0), PresentFamily: intp(0)})
	if mode != gfx.SharingModeExclusive || families != nil {
		t.Fatalf("shared family: have %v %v, want EXCLUSIVE []", mode, families)
	}

	mode, families = ResolveSharing(QueueFamilyAssignment{GraphicsFamily: intp(0), PresentFamily: intp(2)})
	if mode != gfx.SharingModeConcurrent {
		t.Fatalf("distinct families: have %v, want CONCURRENT", mode)
	}
	checkEqual(t, "family indices", families, []int{0, 2})
}

func TestNegotiateSurfaceConfiguration(t *testing.T) {
	caps := AdapterCapabilities{
		Surface: gfx.SurfaceCapabilities{
			MinImageCount:    2,
			MaxImageCount:    4,
			CurrentExtent:    gfx.Extent2D{Width: gfx.ExtentUndefined, Height: gfx.ExtentUndefined},
			MinImageExtent:   gfx.Extent2D{Width: 1, Height: 1},
			MaxImageExtent:   gfx.Extent2D{Width: 4096, Height: 4096},
			CurrentTransform: gfx.TransformRotate90,
		},
		Formats:      []gfx.SurfaceFormat{bgraUNorm, bgraSRGB},
		PresentModes: []gfx.PresentMode{gfx.PresentModeFIFO, gfx.PresentModeMailbox},
	}
	fallback := gfx.Extent2D{Width: 8000, Height: 600}

	cfg := NegotiateSurfaceConfiguration(caps, bgraSRGB, gfx.PresentModeMailbox, fallback)
	want := SurfaceConfiguration{
		Format:       bgraSRGB,
		PresentMode:  gfx.PresentModeMailbox,
		Extent:       gfx.Extent2D{Width: 4096, Height: 600},
		ImageCount:   3,
		PreTransform: gfx.TransformRotate90,
	}
	if cfg != want {
		t.Fatalf("NegotiateSurfaceConfiguration:\nhave %+v\nwant %+v", cfg, want)
	}

	if again := NegotiateSurfaceConfiguration(caps, bgraSRGB, gfx.PresentModeMailbox, fallback); again != cfg {
		t.Fatalf("NegotiateSurfaceConfiguration is not stable:\nfirst  %+v\nsecond %+v", cfg, again)
	}
}
