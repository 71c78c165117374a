package gfxtest

import (
	"github.com/cockroachdb/errors"

	"github.com/vkngwrapper/rendercontext/gfx"
	"github.com/vkngwrapper/rendercontext/window"
)

var _ window.Window = (*Window)(nil)

// Window is a scripted window collaborator.
type Window struct {
	Extensions    []string
	Width, Height int
	// SurfaceErr makes CreateSurface fail.
	SurfaceErr error

	journal *Journal
}

// NewWindow returns an 800x600 window recording to the loader's journal.
func NewWindow(l *Loader) *Window {
	return &Window{
		Extensions: []string{"VK_KHR_surface"},
		Width:      800,
		Height:     600,
		journal:    l.Journal,
	}
}

func (w *Window) RequiredInstanceExtensions() []string { return w.Extensions }

func (w *Window) CreateSurface(instance gfx.Instance) (gfx.Surface, error) {
	if w.SurfaceErr != nil {
		return nil, resultErr("SDL_Vulkan_CreateSurface", w.SurfaceErr)
	}
	inst, ok := instance.(*Instance)
	if !ok {
		return nil, errors.New("gfxtest: foreign instance")
	}
	return inst.NewSurface(), nil
}

func (w *Window) DrawableSize() (int, int) { return w.Width, w.Height }

func (w *Window) Destroy() {
	w.journal.record("destroy window")
}
