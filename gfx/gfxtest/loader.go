package gfxtest

import "github.com/vkngwrapper/rendercontext/gfx"

var (
	_ gfx.Loader   = (*Loader)(nil)
	_ gfx.Instance = (*Instance)(nil)
	_ gfx.Adapter  = (*Adapter)(nil)
	_ gfx.Device   = (*Device)(nil)
)

// Loader is a scripted gfx.Loader.
type Loader struct {
	Layers     []string
	Extensions []string
	Adapters   []*Adapter

	// AdaptersErr is returned by Instance.Adapters.
	AdaptersErr error
	// InstanceErr makes CreateInstance fail.
	InstanceErr error
	// MessengerErr makes CreateDebugMessenger fail.
	MessengerErr error

	Journal *Journal

	// InstanceInfo is the info passed to the last CreateInstance call.
	InstanceInfo gfx.InstanceCreateInfo

	ids counter
}

// NewLoader returns a loader exposing adapters, sharing one journal.
func NewLoader(adapters ...*Adapter) *Loader {
	l := &Loader{
		Journal:    &Journal{},
		Adapters:   adapters,
		Layers:     []string{"VK_LAYER_KHRONOS_validation"},
		Extensions: []string{"VK_KHR_surface", "VK_EXT_debug_utils"},
	}
	return l
}

func (l *Loader) AvailableLayers() ([]string, error) { return l.Layers, nil }

func (l *Loader) AvailableExtensions() ([]string, error) { return l.Extensions, nil }

func (l *Loader) CreateInstance(info gfx.InstanceCreateInfo) (gfx.Instance, error) {
	l.InstanceInfo = info
	if l.InstanceErr != nil {
		return nil, resultErr("vkCreateInstance", l.InstanceErr)
	}
	h := l.ids.handle("instance")
	l.Journal.create(h)
	for _, a := range l.Adapters {
		a.loader = l
	}
	return &Instance{Handle: h, loader: l}, nil
}

// Instance is the gfx.Instance created by Loader.
type Instance struct {
	Handle
	loader *Loader

	// Messenger is the info passed to the last CreateDebugMessenger call.
	Messenger gfx.DebugMessengerCreateInfo
}

func (i *Instance) Adapters() ([]gfx.Adapter, error) {
	if i.loader.AdaptersErr != nil {
		return nil, resultErr("vkEnumeratePhysicalDevices", i.loader.AdaptersErr)
	}
	out := make([]gfx.Adapter, 0, len(i.loader.Adapters))
	for _, a := range i.loader.Adapters {
		out = append(out, a)
	}
	return out, nil
}

func (i *Instance) CreateDebugMessenger(info gfx.DebugMessengerCreateInfo) (gfx.DebugMessenger, error) {
	i.Messenger = info
	if i.loader.MessengerErr != nil {
		return nil, resultErr("vkCreateDebugUtilsMessengerEXT", i.loader.MessengerErr)
	}
	h := i.loader.ids.handle("debug-messenger")
	i.loader.Journal.create(h)
	return h, nil
}

func (i *Instance) DestroyDebugMessenger(messenger gfx.DebugMessenger) {
	i.loader.Journal.destroy(messenger.(Handle))
}

func (i *Instance) DestroySurface(surface gfx.Surface) {
	i.loader.Journal.destroy(surface.(Handle))
}

func (i *Instance) Destroy() {
	i.loader.Journal.destroy(i.Handle)
}

// NewSurface creates a surface handle owned by this instance.
func (i *Instance) NewSurface() gfx.Surface {
	h := i.loader.ids.handle("surface")
	i.loader.Journal.create(h)
	return h
}
