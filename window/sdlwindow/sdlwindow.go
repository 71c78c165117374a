// Package sdlwindow provides a window.Window backed by SDL2.
package sdlwindow

import (
	"github.com/cockroachdb/errors"
	"github.com/veandco/go-sdl2/sdl"
	vkng_sdl2 "github.com/vkngwrapper/integrations/sdl2/v3"

	"github.com/vkngwrapper/rendercontext/gfx"
	"github.com/vkngwrapper/rendercontext/gfx/vkng"
	"github.com/vkngwrapper/rendercontext/window"
)

var _ window.Window = (*Window)(nil)

// Options describe the window to open.
type Options struct {
	Title     string
	Width     int
	Height    int
	Resizable bool
}

// Window is an SDL window created with Vulkan support.
type Window struct {
	sdl *sdl.Window
}

// Init initializes the SDL video subsystem. Call Quit when done.
func Init() error {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return errors.Wrap(err, "initialize sdl video")
	}
	return nil
}

// Quit shuts SDL down.
func Quit() {
	sdl.Quit()
}

// Open creates the window. SDL must be initialized.
func Open(opts Options) (*Window, error) {
	flags := uint32(sdl.WINDOW_SHOWN | sdl.WINDOW_VULKAN)
	if opts.Resizable {
		flags |= sdl.WINDOW_RESIZABLE
	}
	w, err := sdl.CreateWindow(opts.Title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(opts.Width), int32(opts.Height), flags)
	if err != nil {
		return nil, errors.Wrapf(err, "create %dx%d window", opts.Width, opts.Height)
	}
	return &Window{sdl: w}, nil
}

// Loader returns a gfx loader resolving Vulkan through SDL, so the same
// library SDL created the window for is used.
func Loader() (*vkng.Loader, error) {
	return vkng.NewLoaderFromProcAddr(sdl.VulkanGetVkGetInstanceProcAddr())
}

// SDL exposes the underlying window.
func (w *Window) SDL() *sdl.Window { return w.sdl }

func (w *Window) RequiredInstanceExtensions() []string {
	return w.sdl.VulkanGetInstanceExtensions()
}

// CreateSurface needs an instance from the vkng backend.
func (w *Window) CreateSurface(instance gfx.Instance) (gfx.Surface, error) {
	inst, ok := instance.(*vkng.Instance)
	if !ok {
		return nil, errors.Newf("sdlwindow: cannot create a surface for %T", instance)
	}
	surface, err := vkng_sdl2.CreateSurface(inst.Driver().Instance(), inst.SurfaceExtension(), w.sdl)
	if err != nil {
		return nil, errors.Wrap(err, "SDL_Vulkan_CreateSurface")
	}
	return surface, nil
}

func (w *Window) DrawableSize() (int, int) {
	if w.sdl.GetFlags()&sdl.WINDOW_MINIMIZED != 0 {
		return 0, 0
	}
	width, height := w.sdl.VulkanGetDrawableSize()
	return int(width), int(height)
}

func (w *Window) Destroy() {
	w.sdl.Destroy()
}
