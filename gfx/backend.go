package gfx

// Opaque handles. A backend hands these out and only accepts back the values
// it created itself.
type (
	Surface        interface{}
	Queue          interface{}
	Swapchain      interface{}
	Image          interface{}
	ImageView      interface{}
	ShaderModule   interface{}
	Pipeline       interface{}
	DebugMessenger interface{}
)

// Version is a packed API version, as built by MakeVersion.
type Version uint32

// MakeVersion packs major.minor.patch the way Vulkan does.
func MakeVersion(major, minor, patch uint32) Version {
	return Version(major<<22 | minor<<12 | patch)
}

// InstanceCreateInfo describes the instance to create.
type InstanceCreateInfo struct {
	ApplicationName    string
	ApplicationVersion Version
	EngineName         string

	EnabledExtensions []string
	EnabledLayers     []string

	// EnumeratePortability asks the loader to also report portability
	// (non-conformant) implementations.
	EnumeratePortability bool

	// Debug, when non-nil, is chained into instance creation so that messages
	// produced while creating and destroying the instance reach the sink.
	Debug *DebugMessengerCreateInfo
}

// Loader exposes the entry points available before an instance exists.
type Loader interface {
	AvailableLayers() ([]string, error)
	AvailableExtensions() ([]string, error)
	CreateInstance(info InstanceCreateInfo) (Instance, error)
}

// Instance is a live API instance. It is the root of every other object.
type Instance interface {
	Adapters() ([]Adapter, error)

	CreateDebugMessenger(info DebugMessengerCreateInfo) (DebugMessenger, error)
	DestroyDebugMessenger(messenger DebugMessenger)

	DestroySurface(surface Surface)
	Destroy()
}

// Adapter is an enumerated physical device. Adapters are not allocated by
// the caller and are never destroyed.
type Adapter interface {
	Info() AdapterInfo

	QueueFamilies() []QueueFamilyProperties
	Extensions() ([]string, error)

	SurfaceSupport(surface Surface, family int) (bool, error)
	SurfaceCapabilities(surface Surface) (SurfaceCapabilities, error)
	SurfaceFormats(surface Surface) ([]SurfaceFormat, error)
	SurfacePresentModes(surface Surface) ([]PresentMode, error)

	CreateDevice(info DeviceCreateInfo) (Device, error)
}

// DeviceQueueCreateInfo requests queues from one family.
type DeviceQueueCreateInfo struct {
	QueueFamilyIndex int
	QueuePriorities  []float32
}

// DeviceCreateInfo describes the logical device to create.
type DeviceCreateInfo struct {
	QueueCreateInfos  []DeviceQueueCreateInfo
	EnabledExtensions []string
	// EnabledLayers is ignored by current loaders but still passed through
	// for older implementations.
	EnabledLayers []string
}

// SwapchainCreateInfo describes a swap chain.
type SwapchainCreateInfo struct {
	Surface Surface

	MinImageCount   int
	ImageFormat     Format
	ImageColorSpace ColorSpace
	ImageExtent     Extent2D

	SharingMode        SharingMode
	QueueFamilyIndices []int

	PreTransform SurfaceTransform
	PresentMode  PresentMode

	// OldSwapchain is the chain being replaced, or nil.
	OldSwapchain Swapchain
}

// ImageViewCreateInfo describes a 2D color view over a single mip level and
// array layer with identity swizzle.
type ImageViewCreateInfo struct {
	Image  Image
	Format Format
}

// ShaderStage identifies a programmable pipeline stage.
type ShaderStage uint32

const (
	StageVertex   ShaderStage = 0x1
	StageFragment ShaderStage = 0x10
)

func (s ShaderStage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	}
	return "unknown"
}

// PipelineShaderStage binds a shader module to a stage.
type PipelineShaderStage struct {
	Stage      ShaderStage
	Module     ShaderModule
	EntryPoint string
}

// GraphicsPipelineCreateInfo describes the minimal pipeline: the shader
// stages and the format of the single color attachment it renders to.
type GraphicsPipelineCreateInfo struct {
	Stages      []PipelineShaderStage
	ColorFormat Format
}

// Device is a logical device.
type Device interface {
	Queue(family, index int) Queue

	CreateSwapchain(info SwapchainCreateInfo) (Swapchain, error)
	SwapchainImages(swapchain Swapchain) ([]Image, error)
	DestroySwapchain(swapchain Swapchain)

	CreateImageView(info ImageViewCreateInfo) (ImageView, error)
	DestroyImageView(view ImageView)

	CreateShaderModule(code []uint32) (ShaderModule, error)
	DestroyShaderModule(module ShaderModule)

	CreateGraphicsPipeline(info GraphicsPipelineCreateInfo) (Pipeline, error)
	DestroyPipeline(pipeline Pipeline)

	WaitIdle() error
	Destroy()
}
