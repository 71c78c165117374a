package bootstrap

import (
	"sort"

	"github.com/cockroachdb/errors"

	"github.com/vkngwrapper/rendercontext/gfx"
)

// NameSet is a set of layer or extension names.
type NameSet map[string]struct{}

func newNameSet(names []string) NameSet {
	set := make(NameSet, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}

func (s NameSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Missing returns the names not in s, in the order given.
func (s NameSet) Missing(names []string) []string {
	var missing []string
	for _, name := range names {
		if !s.Has(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// Sorted returns the names in s in lexical order.
func (s NameSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for name := range s {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// QueueFamilyDescriptor is what the selection needs to know about one queue
// family.
type QueueFamilyDescriptor struct {
	Index            int
	SupportsGraphics bool
	SupportsPresent  bool
}

// AdapterCapabilities is a snapshot of everything an adapter exposes for a
// given surface. It is not updated after it is taken.
type AdapterCapabilities struct {
	Info          gfx.AdapterInfo
	QueueFamilies []QueueFamilyDescriptor
	Extensions    NameSet
	Surface       gfx.SurfaceCapabilities
	Formats       []gfx.SurfaceFormat
	PresentModes  []gfx.PresentMode
}

// QueryInstanceLayers returns the layers the loader advertises.
func QueryInstanceLayers(loader gfx.Loader) (NameSet, error) {
	layers, err := loader.AvailableLayers()
	if err != nil {
		return nil, errors.Wrap(err, "enumerate instance layers")
	}
	return newNameSet(layers), nil
}

// QueryInstanceExtensions returns the instance extensions the loader
// advertises.
func QueryInstanceExtensions(loader gfx.Loader) (NameSet, error) {
	extensions, err := loader.AvailableExtensions()
	if err != nil {
		return nil, errors.Wrap(err, "enumerate instance extensions")
	}
	return newNameSet(extensions), nil
}

// QueryDeviceExtensions returns the device extensions adapter advertises.
func QueryDeviceExtensions(adapter gfx.Adapter) (NameSet, error) {
	extensions, err := adapter.Extensions()
	if err != nil {
		return nil, errors.Wrapf(err, "enumerate device extensions of %s", adapter.Info().Name)
	}
	return newNameSet(extensions), nil
}

// EnumerateAdapters lists the adapters of instance, failing with
// ErrNoAdapterAvailable when there are none.
func EnumerateAdapters(instance gfx.Instance) ([]gfx.Adapter, error) {
	adapters, err := instance.Adapters()
	if err != nil {
		return nil, fail(ErrNoAdapterAvailable, err, "enumerate adapters")
	}
	if len(adapters) == 0 {
		return nil, errors.WithStack(ErrNoAdapterAvailable)
	}
	return adapters, nil
}

// QueryAdapterCapabilities takes the capability snapshot of adapter for
// surface. It only reads from the backend.
func QueryAdapterCapabilities(adapter gfx.Adapter, surface gfx.Surface) (AdapterCapabilities, error) {
	caps := AdapterCapabilities{Info: adapter.Info()}

	families := adapter.QueueFamilies()
	caps.QueueFamilies = make([]QueueFamilyDescriptor, len(families))
	for i, family := range families {
		present, err := adapter.SurfaceSupport(surface, i)
		if err != nil {
			return AdapterCapabilities{}, errors.Wrapf(err, "query present support of family %d", i)
		}
		caps.QueueFamilies[i] = QueueFamilyDescriptor{
			Index:            i,
			SupportsGraphics: family.Flags&gfx.QueueGraphics != 0,
			SupportsPresent:  present,
		}
	}

	var err error
	caps.Extensions, err = QueryDeviceExtensions(adapter)
	if err != nil {
		return AdapterCapabilities{}, err
	}

	caps.Surface, err = adapter.SurfaceCapabilities(surface)
	if err != nil {
		return AdapterCapabilities{}, errors.Wrap(err, "query surface capabilities")
	}

	formats, err := adapter.SurfaceFormats(surface)
	if err != nil {
		return AdapterCapabilities{}, errors.Wrap(err, "query surface formats")
	}
	caps.Formats = append([]gfx.SurfaceFormat(nil), formats...)

	modes, err := adapter.SurfacePresentModes(surface)
	if err != nil {
		return AdapterCapabilities{}, errors.Wrap(err, "query present modes")
	}
	caps.PresentModes = append([]gfx.PresentMode(nil), modes...)

	return caps, nil
}
