// Command rendercontext opens a window, brings up a complete Vulkan render
// context for it and tears everything down again. With --hold the window
// stays open, and the swap chain follows resizes, until it is closed.
package main

import (
	"log"
	"os"
	"runtime"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/veandco/go-sdl2/sdl"
	"golang.org/x/exp/slog"

	"github.com/vkngwrapper/rendercontext/bootstrap"
	"github.com/vkngwrapper/rendercontext/config"
	"github.com/vkngwrapper/rendercontext/window/sdlwindow"
)

func newRootCommand() *cobra.Command {
	var (
		configFile string
		envFile    string
		verbose    bool
	)
	v := config.New()

	cmd := &cobra.Command{
		Use:           "rendercontext",
		Short:         "Bring up a Vulkan render context for an SDL window",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadDotEnv(envFile); err != nil {
				return err
			}
			cfg, err := config.Load(v, configFile)
			if err != nil {
				return err
			}

			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
			slog.SetDefault(logger)

			return run(cfg, logger)
		},
	}

	cmd.Flags().StringVar(&configFile, "config", "", "config file (yaml, toml or json)")
	cmd.Flags().StringVar(&envFile, "env-file", ".env", "file of RENDERCONTEXT_* variables to load")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log every initialization step")
	if err := config.RegisterFlags(v, cmd.Flags()); err != nil {
		panic(err)
	}
	return cmd
}

func run(cfg config.Config, logger *slog.Logger) error {
	if err := sdlwindow.Init(); err != nil {
		return err
	}
	defer sdlwindow.Quit()

	win, err := sdlwindow.Open(sdlwindow.Options{
		Title:     cfg.AppName,
		Width:     cfg.Width,
		Height:    cfg.Height,
		Resizable: cfg.Hold,
	})
	if err != nil {
		return err
	}

	loader, err := sdlwindow.Loader()
	if err != nil {
		win.Destroy()
		return err
	}

	opts := cfg.Options()
	opts.Logger = logger
	rc := bootstrap.New(loader, win, opts)
	defer rc.Teardown()

	if err := rc.Init(); err != nil {
		return err
	}

	if !cfg.Hold {
		return nil
	}
	return hold(rc, logger)
}

// hold pumps window events until the window is closed, rebuilding the swap
// chain whenever the drawable changes size.
func hold(rc *bootstrap.Context, logger *slog.Logger) error {
	for {
		switch e := sdl.WaitEvent().(type) {
		case *sdl.QuitEvent:
			return nil
		case *sdl.WindowEvent:
			switch e.Event {
			case sdl.WINDOWEVENT_RESIZED, sdl.WINDOWEVENT_RESTORED:
				if err := rc.RebuildSwapChain(); err != nil {
					return errors.Wrap(err, "rebuild swap chain")
				}
			case sdl.WINDOWEVENT_MINIMIZED:
				logger.Debug("window minimized")
			}
		}
	}
}

func main() {
	runtime.LockOSThread()

	if err := newRootCommand().Execute(); err != nil {
		log.Fatalf("%+v\n", err)
	}
}
