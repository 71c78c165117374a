package bootstrap

import (
	"github.com/cockroachdb/errors"

	"github.com/vkngwrapper/rendercontext/gfx"
)

// DeviceContext owns a logical device and the queues taken from it.
type DeviceContext struct {
	Adapter    gfx.Adapter
	Assignment QueueFamilyAssignment
	Device     gfx.Device

	// GraphicsQueue and PresentQueue are the same queue when the families
	// coincide. They are only usable while the device is alive.
	GraphicsQueue gfx.Queue
	PresentQueue  gfx.Queue

	valid bool
}

// QueueCreateInfos builds one request per distinct family in assignment,
// each for a single queue at priority 1.
func QueueCreateInfos(assignment QueueFamilyAssignment) []gfx.DeviceQueueCreateInfo {
	var infos []gfx.DeviceQueueCreateInfo
	for _, family := range assignment.UniqueFamilies() {
		infos = append(infos, gfx.DeviceQueueCreateInfo{
			QueueFamilyIndex: family,
			QueuePriorities:  []float32{1.0},
		})
	}
	return infos
}

// CreateDevice creates the logical device for adapter with the assigned
// queue families and requiredExtensions. validationLayers may be nil.
func CreateDevice(adapter gfx.Adapter, assignment QueueFamilyAssignment, requiredExtensions, validationLayers []string) (*DeviceContext, error) {
	if !assignment.Valid(len(adapter.QueueFamilies())) {
		return nil, errors.Mark(errors.Newf("invalid queue family assignment %s", assignment), ErrDeviceCreationFailed)
	}

	device, err := adapter.CreateDevice(gfx.DeviceCreateInfo{
		QueueCreateInfos:  QueueCreateInfos(assignment),
		EnabledExtensions: requiredExtensions,
		EnabledLayers:     validationLayers,
	})
	if err != nil {
		return nil, fail(ErrDeviceCreationFailed, err, "create device on %s", adapter.Info().Name)
	}

	dc := &DeviceContext{
		Adapter:    adapter,
		Assignment: assignment,
		Device:     device,
		valid:      true,
	}

	queues := make(map[int]gfx.Queue)
	for _, family := range assignment.UniqueFamilies() {
		queues[family] = device.Queue(family, 0)
	}
	dc.GraphicsQueue = queues[*assignment.GraphicsFamily]
	dc.PresentQueue = queues[*assignment.PresentFamily]

	return dc, nil
}

// Destroy destroys the logical device. Calling it again does nothing.
func (dc *DeviceContext) Destroy() {
	if dc == nil || !dc.valid {
		return
	}
	dc.Device.Destroy()
	dc.valid = false
	dc.Device = nil
	dc.GraphicsQueue = nil
	dc.PresentQueue = nil
}
