package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
	"github.com/vkngwrapper/hello-triangle/internal/config"
	"github.com/vkngwrapper/hello-triangle/internal/render"
	"github.com/vkngwrapper/hello-triangle/internal/window"
)

//go:generate glslc ../../shaders/tri.vert -o ../../shaders/tri.vert.spv
//go:generate glslc ../../shaders/tri.frag -o ../../shaders/tri.frag.spv

func init() {
	// SDL and the Vulkan present path must stay on the main thread
	runtime.LockOSThread()

	flag.StringVar(&args.envFile, "env", "", "Optional .env file with TRIANGLE_* settings")
}

var args struct {
	envFile string
}

type HelloTriangleApplication struct {
	cfg config.Config
	log *logrus.Logger
}

func (app *HelloTriangleApplication) Run(ctx context.Context) (err error) {
	win, err := window.New(app.cfg.Window.Title, app.cfg.Window.Width, app.cfg.Window.Height, app.log)
	if err != nil {
		return err
	}
	defer win.Destroy()

	loader, err := win.Loader()
	if err != nil {
		return err
	}

	rc, err := render.NewContext(loader, win, app.options(), app.log)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.CombineErrors(err, rc.Destroy())
	}()

	info := rc.DeviceInfo()
	app.log.WithFields(logrus.Fields{
		"device": info.Name,
		"extent": rc.SwapchainConfig().Extent,
	}).Info("drawing")

	return rc.Run(ctx)
}

func (app *HelloTriangleApplication) options() render.Options {
	opts := render.Options{
		ApplicationName:    app.cfg.Window.Title,
		Validation:         app.cfg.Renderer.Validation,
		RequirePortability: app.cfg.Renderer.RequirePortability,
		Shaders:            os.DirFS(app.cfg.Renderer.AssetDir),
		ClearColor:         app.cfg.Renderer.ClearColor,
		StatsInterval:      app.cfg.Renderer.StatsInterval,
	}
	if opts.Validation {
		opts.ValidationLayers = []string{app.cfg.Renderer.ValidationLayer}
	}
	return opts
}

func main() {
	flag.Parse()

	var envFiles []string
	if args.envFile != "" {
		envFiles = append(envFiles, args.envFile)
	}

	cfg, err := config.Load(envFiles...)
	if err != nil {
		logrus.Fatalf("%+v", err)
	}
	log := cfg.Log.Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &HelloTriangleApplication{cfg: cfg, log: log}
	if err := app.Run(ctx); err != nil {
		entry := log.WithError(err)
		if kind, ok := render.KindOf(err); ok {
			entry = entry.WithField("kind", kind.String())
		}
		log.Debugf("%+v", err)
		stop()
		entry.Fatal("triangle failed")
	}
}
