// Package gfx defines the backend-neutral vocabulary used to bootstrap a
// rendering context: enumerations mirroring the Vulkan values they stand for,
// opaque handles, and the Loader/Instance/Adapter/Device interfaces that a
// backend implements.
package gfx

import "fmt"

// Format is a pixel format. Values match VkFormat.
type Format int32

const (
	FormatUndefined          Format = 0
	FormatR8G8B8A8UNorm      Format = 37
	FormatR8G8B8A8SRGB       Format = 43
	FormatB8G8R8A8UNorm      Format = 44
	FormatB8G8R8A8SRGB       Format = 50
	FormatA2B10G10R10UNorm   Format = 64
	FormatR16G16B16A16SFloat Format = 97
)

var formatNames = map[Format]string{
	FormatUndefined:          "UNDEFINED",
	FormatR8G8B8A8UNorm:      "R8G8B8A8_UNORM",
	FormatR8G8B8A8SRGB:       "R8G8B8A8_SRGB",
	FormatB8G8R8A8UNorm:      "B8G8R8A8_UNORM",
	FormatB8G8R8A8SRGB:       "B8G8R8A8_SRGB",
	FormatA2B10G10R10UNorm:   "A2B10G10R10_UNORM_PACK32",
	FormatR16G16B16A16SFloat: "R16G16B16A16_SFLOAT",
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Format(%d)", int32(f))
}

// ParseFormat returns the Format named by s, as printed by Format.String.
func ParseFormat(s string) (Format, bool) {
	for f, name := range formatNames {
		if name == s {
			return f, true
		}
	}
	return FormatUndefined, false
}

// ColorSpace is a presentation color space. Values match VkColorSpaceKHR.
type ColorSpace int32

const (
	ColorSpaceSRGBNonlinear      ColorSpace = 0
	ColorSpaceDisplayP3Nonlinear ColorSpace = 1000104001
	ColorSpaceExtendedSRGBLinear ColorSpace = 1000104002
	ColorSpaceHDR10ST2084        ColorSpace = 1000104008
)

var colorSpaceNames = map[ColorSpace]string{
	ColorSpaceSRGBNonlinear:      "SRGB_NONLINEAR",
	ColorSpaceDisplayP3Nonlinear: "DISPLAY_P3_NONLINEAR",
	ColorSpaceExtendedSRGBLinear: "EXTENDED_SRGB_LINEAR",
	ColorSpaceHDR10ST2084:        "HDR10_ST2084",
}

func (c ColorSpace) String() string {
	if name, ok := colorSpaceNames[c]; ok {
		return name
	}
	return fmt.Sprintf("ColorSpace(%d)", int32(c))
}

// ParseColorSpace returns the ColorSpace named by s.
func ParseColorSpace(s string) (ColorSpace, bool) {
	for c, name := range colorSpaceNames {
		if name == s {
			return c, true
		}
	}
	return ColorSpaceSRGBNonlinear, false
}

// PresentMode is a presentation mode. Values match VkPresentModeKHR.
type PresentMode int32

const (
	PresentModeImmediate   PresentMode = 0
	PresentModeMailbox     PresentMode = 1
	PresentModeFIFO        PresentMode = 2
	PresentModeFIFORelaxed PresentMode = 3
)

var presentModeNames = map[PresentMode]string{
	PresentModeImmediate:   "IMMEDIATE",
	PresentModeMailbox:     "MAILBOX",
	PresentModeFIFO:        "FIFO",
	PresentModeFIFORelaxed: "FIFO_RELAXED",
}

func (m PresentMode) String() string {
	if name, ok := presentModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("PresentMode(%d)", int32(m))
}

// ParsePresentMode returns the PresentMode named by s.
func ParsePresentMode(s string) (PresentMode, bool) {
	for m, name := range presentModeNames {
		if name == s {
			return m, true
		}
	}
	return PresentModeFIFO, false
}

// SurfaceFormat pairs a pixel format with the color space it is presented in.
type SurfaceFormat struct {
	Format     Format
	ColorSpace ColorSpace
}

func (f SurfaceFormat) String() string {
	return f.Format.String() + "/" + f.ColorSpace.String()
}

// SharingMode tells whether swap-chain images are owned by one queue family
// at a time or shared between several. Values match VkSharingMode.
type SharingMode int32

const (
	SharingModeExclusive  SharingMode = 0
	SharingModeConcurrent SharingMode = 1
)

func (m SharingMode) String() string {
	if m == SharingModeConcurrent {
		return "CONCURRENT"
	}
	return "EXCLUSIVE"
}

// QueueFlags describe the capabilities of a queue family. Values match
// VkQueueFlagBits.
type QueueFlags uint32

const (
	QueueGraphics QueueFlags = 1 << iota
	QueueCompute
	QueueTransfer
	QueueSparseBinding
)

// SurfaceTransform is a bitmask of VkSurfaceTransformFlagBitsKHR.
type SurfaceTransform uint32

const (
	TransformIdentity  SurfaceTransform = 0x1
	TransformRotate90  SurfaceTransform = 0x2
	TransformRotate180 SurfaceTransform = 0x4
	TransformRotate270 SurfaceTransform = 0x8
)

// ExtentUndefined is the value a surface reports for its current extent when
// the extent is decided by the swap chain rather than by the window.
const ExtentUndefined = -1

// Extent2D is a size in pixels.
type Extent2D struct {
	Width  int
	Height int
}

// Defined reports whether e is a real size rather than the "any size" value
// some surfaces report.
func (e Extent2D) Defined() bool {
	return e.Width != ExtentUndefined && e.Height != ExtentUndefined
}

func (e Extent2D) String() string {
	if !e.Defined() {
		return "undefined"
	}
	return fmt.Sprintf("%dx%d", e.Width, e.Height)
}

// SurfaceCapabilities are the limits a surface imposes on swap chains built
// for it on a given adapter.
type SurfaceCapabilities struct {
	MinImageCount int
	// MaxImageCount of 0 means there is no upper bound.
	MaxImageCount int

	CurrentExtent  Extent2D
	MinImageExtent Extent2D
	MaxImageExtent Extent2D

	SupportedTransforms SurfaceTransform
	CurrentTransform    SurfaceTransform
}

// QueueFamilyProperties describes one queue family of an adapter.
type QueueFamilyProperties struct {
	Flags      QueueFlags
	QueueCount int
}

// AdapterType classifies a physical device.
type AdapterType int32

const (
	AdapterTypeOther AdapterType = iota
	AdapterTypeIntegrated
	AdapterTypeDiscrete
	AdapterTypeVirtual
	AdapterTypeCPU
)

func (t AdapterType) String() string {
	switch t {
	case AdapterTypeIntegrated:
		return "integrated"
	case AdapterTypeDiscrete:
		return "discrete"
	case AdapterTypeVirtual:
		return "virtual"
	case AdapterTypeCPU:
		return "cpu"
	}
	return "other"
}

// AdapterInfo identifies an adapter in diagnostics.
type AdapterInfo struct {
	Name string
	Type AdapterType
}
