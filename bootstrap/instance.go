package bootstrap

import (
	"github.com/cockroachdb/errors"

	"github.com/vkngwrapper/rendercontext/gfx"
)

// Well-known layer and extension names.
const (
	KhronosValidationLayer          = "VK_LAYER_KHRONOS_validation"
	DebugUtilsExtension             = "VK_EXT_debug_utils"
	PortabilityEnumerationExtension = "VK_KHR_portability_enumeration"
	PortabilitySubsetExtension      = "VK_KHR_portability_subset"
	SwapchainExtension              = "VK_KHR_swapchain"
)

// InstanceOptions configures CreateInstance.
type InstanceOptions struct {
	ApplicationName    string
	ApplicationVersion gfx.Version

	// WindowExtensions are the platform extensions the window needs.
	WindowExtensions []string

	// Validation installs the debug messenger and requests ValidationLayers
	// and the debug-utils extension. Without it none of the three happen.
	Validation       bool
	ValidationLayers []string
	Sink             gfx.DebugSink
}

// CheckValidationLayers fails with ErrValidationLayerUnavailable unless the
// loader advertises every layer in layers.
func CheckValidationLayers(loader gfx.Loader, layers []string) error {
	available, err := QueryInstanceLayers(loader)
	if err != nil {
		return errors.Mark(err, ErrValidationLayerUnavailable)
	}
	if missing := available.Missing(layers); len(missing) > 0 {
		return errors.Wrapf(ErrValidationLayerUnavailable, "layers %v not found, install the Vulkan SDK", missing)
	}
	return nil
}

// DebugMessengerInfo is the messenger configuration used both for the
// instance-creation chain and for the standalone messenger.
func DebugMessengerInfo(sink gfx.DebugSink) gfx.DebugMessengerCreateInfo {
	return gfx.DebugMessengerCreateInfo{
		Severities: gfx.SeverityVerbose | gfx.SeverityWarning | gfx.SeverityError,
		Categories: gfx.CategoryGeneral | gfx.CategoryValidation | gfx.CategoryPerformance,
		Sink:       sink,
	}
}

// CreateInstance creates the API instance with the window's extensions,
// plus validation support when requested.
func CreateInstance(loader gfx.Loader, opts InstanceOptions) (gfx.Instance, error) {
	available, err := QueryInstanceExtensions(loader)
	if err != nil {
		return nil, errors.Mark(err, ErrInstanceCreationFailed)
	}

	if missing := available.Missing(opts.WindowExtensions); len(missing) > 0 {
		return nil, errors.Mark(errors.Newf("window extensions %v not available", missing), ErrInstanceCreationFailed)
	}

	info := gfx.InstanceCreateInfo{
		ApplicationName:    opts.ApplicationName,
		ApplicationVersion: opts.ApplicationVersion,
		EngineName:         "No Engine",
		EnabledExtensions:  append([]string(nil), opts.WindowExtensions...),
	}

	if opts.Validation {
		if err := CheckValidationLayers(loader, opts.ValidationLayers); err != nil {
			return nil, err
		}
		info.EnabledExtensions = append(info.EnabledExtensions, DebugUtilsExtension)
		info.EnabledLayers = append(info.EnabledLayers, opts.ValidationLayers...)
		debug := DebugMessengerInfo(opts.Sink)
		info.Debug = &debug
	}

	if available.Has(PortabilityEnumerationExtension) {
		info.EnabledExtensions = append(info.EnabledExtensions, PortabilityEnumerationExtension)
		info.EnumeratePortability = true
	}

	instance, err := loader.CreateInstance(info)
	if err != nil {
		return nil, fail(ErrInstanceCreationFailed, err, "create instance")
	}
	return instance, nil
}

// SetupDebugMessenger installs a messenger delivering to sink. It does
// nothing and returns nil when validation is off.
func SetupDebugMessenger(instance gfx.Instance, validation bool, sink gfx.DebugSink) (gfx.DebugMessenger, error) {
	if !validation {
		return nil, nil
	}
	messenger, err := instance.CreateDebugMessenger(DebugMessengerInfo(sink))
	if err != nil {
		return nil, fail(ErrDebugMessengerSetupFailed, err, "create debug messenger")
	}
	return messenger, nil
}

// deviceExtensions returns required plus the portability subset extension
// when the adapter advertises it.
func deviceExtensions(caps AdapterCapabilities, required []string) []string {
	extensions := append([]string(nil), required...)
	if caps.Extensions.Has(PortabilitySubsetExtension) {
		extensions = append(extensions, PortabilitySubsetExtension)
	}
	return extensions
}
