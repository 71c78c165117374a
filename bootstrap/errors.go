package bootstrap

import "github.com/cockroachdb/errors"

// Every failure returned by this package is marked with exactly one of these
// kinds. Use errors.Is to test for them and Kind to name them.
var (
	ErrNoAdapterAvailable         = errors.New("no adapter available")
	ErrNoSuitableAdapter          = errors.New("no suitable adapter")
	ErrValidationLayerUnavailable = errors.New("validation layer unavailable")
	ErrInstanceCreationFailed     = errors.New("instance creation failed")
	ErrDebugMessengerSetupFailed  = errors.New("debug messenger setup failed")
	ErrSurfaceCreationFailed      = errors.New("surface creation failed")
	ErrDeviceCreationFailed       = errors.New("device creation failed")
	ErrSwapChainCreationFailed    = errors.New("swap chain creation failed")
	ErrImageViewCreationFailed    = errors.New("image view creation failed")
	ErrBytecodeReadFailed         = errors.New("bytecode read failed")
	ErrShaderModuleCreationFailed = errors.New("shader module creation failed")
	ErrPipelineCreationFailed     = errors.New("pipeline creation failed")
)

var kinds = []struct {
	err  error
	name string
}{
	{ErrNoAdapterAvailable, "NoAdapterAvailable"},
	{ErrNoSuitableAdapter, "NoSuitableAdapter"},
	{ErrValidationLayerUnavailable, "ValidationLayerUnavailable"},
	{ErrInstanceCreationFailed, "InstanceCreationFailed"},
	{ErrDebugMessengerSetupFailed, "DebugMessengerSetupFailed"},
	{ErrSurfaceCreationFailed, "SurfaceCreationFailed"},
	{ErrDeviceCreationFailed, "DeviceCreationFailed"},
	{ErrSwapChainCreationFailed, "SwapChainCreationFailed"},
	{ErrImageViewCreationFailed, "ImageViewCreationFailed"},
	{ErrBytecodeReadFailed, "BytecodeReadFailed"},
	{ErrShaderModuleCreationFailed, "ShaderModuleCreationFailed"},
	{ErrPipelineCreationFailed, "PipelineCreationFailed"},
}

// Kind returns the name of the error kind err is marked with, or "" if err
// did not come from this package.
func Kind(err error) string {
	if err == nil {
		return ""
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.name
		}
	}
	return ""
}

// fail wraps a backend error with the failing step and marks it with kind.
func fail(kind, cause error, format string, args ...interface{}) error {
	return errors.Mark(errors.Wrapf(cause, format, args...), kind)
}
