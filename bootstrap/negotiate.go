package bootstrap

import "github.com/vkngwrapper/rendercontext/gfx"

// SurfaceConfiguration is the negotiated shape of a swap chain.
type SurfaceConfiguration struct {
	Format       gfx.SurfaceFormat
	PresentMode  gfx.PresentMode
	Extent       gfx.Extent2D
	ImageCount   int
	PreTransform gfx.SurfaceTransform
}

// NegotiateSurfaceConfiguration picks the swap-chain format, present mode,
// extent and image count for caps. It is a pure function of its inputs.
// caps must carry at least one format; SelectAdapter guarantees it.
func NegotiateSurfaceConfiguration(caps AdapterCapabilities, preferredFormat gfx.SurfaceFormat, preferredPresentMode gfx.PresentMode, fallbackExtent gfx.Extent2D) SurfaceConfiguration {
	return SurfaceConfiguration{
		Format:       ChooseSurfaceFormat(caps.Formats, preferredFormat),
		PresentMode:  ChoosePresentMode(caps.PresentModes, preferredPresentMode),
		Extent:       ChooseExtent(caps.Surface, fallbackExtent),
		ImageCount:   ChooseImageCount(caps.Surface),
		PreTransform: caps.Surface.CurrentTransform,
	}
}

// ChooseSurfaceFormat returns the entry equal to preferred, or the first
// entry when there is none.
func ChooseSurfaceFormat(available []gfx.SurfaceFormat, preferred gfx.SurfaceFormat) gfx.SurfaceFormat {
	for _, format := range available {
		if format == preferred {
			return format
		}
	}
	if len(available) == 0 {
		return gfx.SurfaceFormat{}
	}
	return available[0]
}

// ChoosePresentMode returns preferred when supported and FIFO otherwise.
// FIFO support is required of every implementation.
func ChoosePresentMode(available []gfx.PresentMode, preferred gfx.PresentMode) gfx.PresentMode {
	for _, mode := range available {
		if mode == preferred {
			return mode
		}
	}
	return gfx.PresentModeFIFO
}

// ChooseExtent uses the surface's current extent when it has one and
// otherwise clamps fallback into the supported range.
func ChooseExtent(caps gfx.SurfaceCapabilities, fallback gfx.Extent2D) gfx.Extent2D {
	if caps.CurrentExtent.Defined() {
		return caps.CurrentExtent
	}
	return gfx.Extent2D{
		Width:  clamp(fallback.Width, caps.MinImageExtent.Width, caps.MaxImageExtent.Width),
		Height: clamp(fallback.Height, caps.MinImageExtent.Height, caps.MaxImageExtent.Height),
	}
}

// ChooseImageCount asks for one image more than the minimum, bounded by the
// maximum when there is one.
func ChooseImageCount(caps gfx.SurfaceCapabilities) int {
	count := caps.MinImageCount + 1
	if caps.MaxImageCount > 0 && count > caps.MaxImageCount {
		count = caps.MaxImageCount
	}
	return count
}

// ResolveSharing returns how swap-chain images are shared between the
// assigned families: concurrently across both when they differ, exclusively
// with no family list when they coincide.
func ResolveSharing(assignment QueueFamilyAssignment) (gfx.SharingMode, []int) {
	if !assignment.IsComplete() || assignment.Shared() {
		return gfx.SharingModeExclusive, nil
	}
	return gfx.SharingModeConcurrent, []int{*assignment.GraphicsFamily, *assignment.PresentFamily}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		v = lo
	}
	if v > hi {
		v = hi
	}
	return v
}
