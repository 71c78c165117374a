package bootstrap

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"golang.org/x/exp/slog"

	"github.com/vkngwrapper/rendercontext/gfx"
)

// QueueFamilyAssignment names the queue families used for rendering and for
// presentation. Both are nil until resolved and may point at the same family.
type QueueFamilyAssignment struct {
	GraphicsFamily *int
	PresentFamily  *int
}

// IsComplete reports whether both families have been found.
func (a QueueFamilyAssignment) IsComplete() bool {
	return a.GraphicsFamily != nil && a.PresentFamily != nil
}

// Valid reports whether the assignment is complete and both families exist
// among familyCount families.
func (a QueueFamilyAssignment) Valid(familyCount int) bool {
	if !a.IsComplete() {
		return false
	}
	g, p := *a.GraphicsFamily, *a.PresentFamily
	return g >= 0 && g < familyCount && p >= 0 && p < familyCount
}

// Shared reports whether graphics and presentation use the same family.
func (a QueueFamilyAssignment) Shared() bool {
	return a.IsComplete() && *a.GraphicsFamily == *a.PresentFamily
}

// UniqueFamilies returns the distinct family indices, graphics first.
func (a QueueFamilyAssignment) UniqueFamilies() []int {
	if !a.IsComplete() {
		return nil
	}
	families := []int{*a.GraphicsFamily}
	if *a.PresentFamily != *a.GraphicsFamily {
		families = append(families, *a.PresentFamily)
	}
	return families
}

func (a QueueFamilyAssignment) String() string {
	show := func(i *int) string {
		if i == nil {
			return "-"
		}
		return fmt.Sprint(*i)
	}
	return fmt.Sprintf("graphics=%s present=%s", show(a.GraphicsFamily), show(a.PresentFamily))
}

// FindQueueFamilies scans families in ascending index order and records the
// first graphics family and the first present family, stopping once both
// are known.
func FindQueueFamilies(families []QueueFamilyDescriptor) QueueFamilyAssignment {
	var a QueueFamilyAssignment
	for _, family := range families {
		if a.GraphicsFamily == nil && family.SupportsGraphics {
			idx := family.Index
			a.GraphicsFamily = &idx
		}
		if a.PresentFamily == nil && family.SupportsPresent {
			idx := family.Index
			a.PresentFamily = &idx
		}
		if a.IsComplete() {
			break
		}
	}
	return a
}

// Suitable reports whether an adapter with these capabilities can render and
// present with the required device extensions. When it cannot, reason says
// why.
func (c AdapterCapabilities) Suitable(requiredExtensions []string) (ok bool, reason string) {
	assignment := FindQueueFamilies(c.QueueFamilies)
	if assignment.GraphicsFamily == nil {
		return false, "no graphics queue family"
	}
	if assignment.PresentFamily == nil {
		return false, "no queue family can present to the surface"
	}
	if missing := c.Extensions.Missing(requiredExtensions); len(missing) > 0 {
		return false, fmt.Sprintf("missing device extensions %v", missing)
	}
	if len(c.Formats) == 0 {
		return false, "surface reports no formats"
	}
	if len(c.PresentModes) == 0 {
		return false, "surface reports no present modes"
	}
	return true, ""
}

// Selection is the outcome of SelectAdapter.
type Selection struct {
	Adapter      gfx.Adapter
	Assignment   QueueFamilyAssignment
	Capabilities AdapterCapabilities
}

// SelectAdapter picks the first adapter, in enumeration order, that is
// suitable for surface and advertises requiredExtensions. Its capability
// snapshot is returned with it so later steps do not query again.
func SelectAdapter(instance gfx.Instance, surface gfx.Surface, requiredExtensions []string, logger *slog.Logger) (Selection, error) {
	logger = loggerOrDefault(logger)

	adapters, err := EnumerateAdapters(instance)
	if err != nil {
		return Selection{}, err
	}

	for i, adapter := range adapters {
		info := adapter.Info()
		caps, err := QueryAdapterCapabilities(adapter, surface)
		if err != nil {
			logger.Warn("could not query adapter capabilities",
				slog.Int("adapter", i), slog.String("name", info.Name), slog.Any("error", err))
			continue
		}

		ok, reason := caps.Suitable(requiredExtensions)
		if !ok {
			logger.Debug("adapter rejected",
				slog.Int("adapter", i), slog.String("name", info.Name), slog.String("reason", reason))
			continue
		}

		assignment := FindQueueFamilies(caps.QueueFamilies)
		logger.Info("selected adapter",
			slog.Int("adapter", i),
			slog.String("name", info.Name),
			slog.String("type", info.Type.String()),
			slog.Int("graphicsFamily", *assignment.GraphicsFamily),
			slog.Int("presentFamily", *assignment.PresentFamily))

		return Selection{Adapter: adapter, Assignment: assignment, Capabilities: caps}, nil
	}

	return Selection{}, errors.Wrapf(ErrNoSuitableAdapter, "none of %d adapters qualified", len(adapters))
}
