package bootstrap

import (
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/loov/hrtime"
	"golang.org/x/exp/slog"

	"github.com/vkngwrapper/rendercontext/gfx"
	"github.com/vkngwrapper/rendercontext/window"
)

// Options configures a Context.
type Options struct {
	ApplicationName    string
	ApplicationVersion gfx.Version

	Validation       bool
	ValidationLayers []string

	// DeviceExtensions must all be supported by the selected adapter.
	DeviceExtensions []string

	PreferredFormat      gfx.SurfaceFormat
	PreferredPresentMode gfx.PresentMode

	VertexShaderPath   string
	FragmentShaderPath string

	Logger *slog.Logger
}

// DefaultOptions returns options requesting the swapchain extension, an
// sRGB BGRA surface and mailbox presentation with validation on.
func DefaultOptions() Options {
	return Options{
		ApplicationName:    "rendercontext",
		ApplicationVersion: gfx.MakeVersion(0, 1, 0),
		Validation:         true,
		ValidationLayers:   []string{KhronosValidationLayer},
		DeviceExtensions:   []string{SwapchainExtension},
		PreferredFormat: gfx.SurfaceFormat{
			Format:     gfx.FormatB8G8R8A8SRGB,
			ColorSpace: gfx.ColorSpaceSRGBNonlinear,
		},
		PreferredPresentMode: gfx.PresentModeMailbox,
		VertexShaderPath:     "shaders/vert.spv",
		FragmentShaderPath:   "shaders/frag.spv",
	}
}

// owned tracks whether a handle was successfully created, so teardown never
// destroys something that does not exist.
type owned[T any] struct {
	v  T
	ok bool
}

func (o *owned[T]) set(v T) {
	o.v, o.ok = v, true
}

func (o *owned[T]) release(destroy func(T)) {
	if !o.ok {
		return
	}
	destroy(o.v)
	var zero T
	o.v, o.ok = zero, false
}

// Context runs the whole initialization sequence and owns everything it
// creates, the window included.
type Context struct {
	opts    Options
	logger  *slog.Logger
	session uuid.UUID

	loader gfx.Loader

	window    owned[window.Window]
	instance  owned[gfx.Instance]
	messenger owned[gfx.DebugMessenger]
	surface   owned[gfx.Surface]

	Selection     Selection
	Configuration SurfaceConfiguration
	Device        *DeviceContext
	SwapChain     *SwapChain
	Pipeline      *Pipeline
}

// New returns a Context that will initialize on loader and present to win.
// The Context takes ownership of win.
func New(loader gfx.Loader, win window.Window, opts Options) *Context {
	session := uuid.New()
	c := &Context{
		opts:    opts,
		session: session,
		loader:  loader,
		logger:  loggerOrDefault(opts.Logger).With(slog.String("session", session.String())),
	}
	c.window.set(win)
	return c
}

// Session identifies this context in log records.
func (c *Context) Session() uuid.UUID { return c.session }

// Instance returns the instance, or nil before it is created.
func (c *Context) Instance() gfx.Instance { return c.instance.v }

// Surface returns the surface, or nil before it is created.
func (c *Context) Surface() gfx.Surface { return c.surface.v }

type step struct {
	name string
	run  func() error
}

// Init creates, in order, the instance, the debug messenger, the surface,
// then selects an adapter and creates the device, the swap chain with its
// views and the pipeline. It stops at the first failure; Teardown releases
// whatever was created until then.
func (c *Context) Init() error {
	steps := []step{
		{"instance", c.createInstance},
		{"debug messenger", c.setupDebugMessenger},
		{"surface", c.createSurface},
		{"adapter", c.selectAdapter},
		{"device", c.createDevice},
		{"swap chain", c.createSwapChain},
		{"pipeline", c.createPipeline},
	}

	total := hrtime.Now()
	for _, s := range steps {
		start := hrtime.Now()
		if err := s.run(); err != nil {
			c.logger.Error("initialization failed",
				slog.String("step", s.name),
				slog.String("kind", Kind(err)),
				slog.Any("error", err))
			return errors.Wrapf(err, "init %s", s.name)
		}
		c.logger.Debug("initialized", slog.String("step", s.name), slog.Duration("took", hrtime.Since(start)))
	}
	c.logger.Info("render context ready",
		slog.String("adapter", c.Selection.Capabilities.Info.Name),
		slog.String("format", c.Configuration.Format.String()),
		slog.String("presentMode", c.Configuration.PresentMode.String()),
		slog.String("extent", c.Configuration.Extent.String()),
		slog.Int("images", len(c.SwapChain.Images)),
		slog.Duration("took", hrtime.Since(total)))
	return nil
}

func (c *Context) createInstance() error {
	instance, err := CreateInstance(c.loader, InstanceOptions{
		ApplicationName:    c.opts.ApplicationName,
		ApplicationVersion: c.opts.ApplicationVersion,
		WindowExtensions:   c.window.v.RequiredInstanceExtensions(),
		Validation:         c.opts.Validation,
		ValidationLayers:   c.opts.ValidationLayers,
		Sink:               LogSink{Logger: c.logger},
	})
	if err != nil {
		return err
	}
	c.instance.set(instance)
	return nil
}

func (c *Context) setupDebugMessenger() error {
	messenger, err := SetupDebugMessenger(c.instance.v, c.opts.Validation, LogSink{Logger: c.logger})
	if err != nil {
		return err
	}
	if messenger != nil {
		c.messenger.set(messenger)
	}
	return nil
}

func (c *Context) createSurface() error {
	surface, err := c.window.v.CreateSurface(c.instance.v)
	if err != nil {
		return fail(ErrSurfaceCreationFailed, err, "create window surface")
	}
	c.surface.set(surface)
	return nil
}

func (c *Context) selectAdapter() error {
	selection, err := SelectAdapter(c.instance.v, c.surface.v, c.opts.DeviceExtensions, c.logger)
	if err != nil {
		return err
	}
	c.Selection = selection
	return nil
}

func (c *Context) createDevice() error {
	var layers []string
	if c.opts.Validation {
		layers = c.opts.ValidationLayers
	}
	dc, err := CreateDevice(c.Selection.Adapter, c.Selection.Assignment,
		deviceExtensions(c.Selection.Capabilities, c.opts.DeviceExtensions), layers)
	if err != nil {
		return err
	}
	c.Device = dc
	return nil
}

func (c *Context) drawableExtent() gfx.Extent2D {
	w, h := c.window.v.DrawableSize()
	return gfx.Extent2D{Width: w, Height: h}
}

func (c *Context) createSwapChain() error {
	c.Configuration = NegotiateSurfaceConfiguration(c.Selection.Capabilities,
		c.opts.PreferredFormat, c.opts.PreferredPresentMode, c.drawableExtent())

	sc, err := CreateSwapChain(c.Device, c.surface.v, c.Configuration)
	if err != nil {
		return err
	}
	c.SwapChain = sc
	return nil
}

func (c *Context) createPipeline() error {
	vertex, fragment, err := LoadShaderPair(c.opts.VertexShaderPath, c.opts.FragmentShaderPath)
	if err != nil {
		return err
	}
	p, err := BuildMinimalPipeline(c.Device, vertex, fragment, c.Configuration.Format.Format)
	if err != nil {
		return err
	}
	c.Pipeline = p
	return nil
}

// RebuildSwapChain replaces the swap chain after the surface changed, for
// instance on resize. It does nothing while the drawable is empty. The
// pipeline is rebuilt as well when the negotiated format changed.
func (c *Context) RebuildSwapChain() error {
	if c.Device == nil || c.SwapChain == nil {
		return errors.New("rebuild swap chain: context is not initialized")
	}
	extent := c.drawableExtent()
	if extent.Width == 0 || extent.Height == 0 {
		return nil
	}

	err := c.Device.Device.WaitIdle()
	if err != nil {
		return errors.Wrap(err, "wait for device idle")
	}

	// The window may have moved to another output, so the surface is asked
	// again. Adapter-level results stay as selected.
	caps := c.Selection.Capabilities
	if caps.Surface, err = c.Selection.Adapter.SurfaceCapabilities(c.surface.v); err != nil {
		return fail(ErrSwapChainCreationFailed, err, "query surface capabilities")
	}
	if caps.Formats, err = c.Selection.Adapter.SurfaceFormats(c.surface.v); err != nil {
		return fail(ErrSwapChainCreationFailed, err, "query surface formats")
	}
	if caps.PresentModes, err = c.Selection.Adapter.SurfacePresentModes(c.surface.v); err != nil {
		return fail(ErrSwapChainCreationFailed, err, "query present modes")
	}
	if len(caps.Formats) == 0 {
		return errors.Mark(errors.New("surface reports no formats"), ErrSwapChainCreationFailed)
	}
	if len(caps.PresentModes) == 0 {
		return errors.Mark(errors.New("surface reports no present modes"), ErrSwapChainCreationFailed)
	}

	cfg := NegotiateSurfaceConfiguration(caps, c.opts.PreferredFormat, c.opts.PreferredPresentMode, extent)
	sc, err := RecreateSwapChain(c.Device, c.surface.v, cfg, c.SwapChain)
	if err != nil {
		return err
	}
	formatChanged := cfg.Format.Format != c.Configuration.Format.Format
	c.SwapChain = sc
	c.Configuration = cfg
	c.Selection.Capabilities = caps
	c.logger.Info("swap chain rebuilt", slog.String("extent", cfg.Extent.String()), slog.Int("images", len(sc.Images)))

	if formatChanged {
		c.Pipeline.Destroy()
		c.Pipeline = nil
		return c.createPipeline()
	}
	return nil
}

// Teardown destroys everything in reverse creation order: pipeline, image
// views, swap chain, device, debug messenger, surface, instance, window.
// Resources that were never created are skipped, so it is safe after a
// failed Init and safe to call twice.
func (c *Context) Teardown() {
	c.Pipeline.Destroy()
	c.Pipeline = nil

	c.SwapChain.Destroy()
	c.SwapChain = nil

	c.Device.Destroy()
	c.Device = nil

	c.messenger.release(func(m gfx.DebugMessenger) {
		c.instance.v.DestroyDebugMessenger(m)
	})
	c.surface.release(func(s gfx.Surface) {
		c.instance.v.DestroySurface(s)
	})
	c.instance.release(func(i gfx.Instance) {
		i.Destroy()
	})
	c.window.release(func(w window.Window) {
		w.Destroy()
	})
	c.logger.Debug("render context torn down")
}
