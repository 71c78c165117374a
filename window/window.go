// Package window defines what the bootstrap needs from the windowing system.
package window

import "github.com/vkngwrapper/rendercontext/gfx"

// Window is a native window that can be presented to.
type Window interface {
	// RequiredInstanceExtensions lists the platform instance extensions needed
	// to create a surface for this window.
	RequiredInstanceExtensions() []string

	// CreateSurface creates a presentation surface for the window. The
	// surface is destroyed through instance.DestroySurface.
	CreateSurface(instance gfx.Instance) (gfx.Surface, error)

	// DrawableSize is the current drawable size in pixels.
	DrawableSize() (width, height int)

	Destroy()
}
