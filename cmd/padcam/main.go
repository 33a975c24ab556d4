package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/soar/padcam/controls"
	"github.com/soar/padcam/events"
	"github.com/soar/padcam/gamepad"
	"github.com/soar/padcam/gamepad/ebitenpad"
	"github.com/soar/padcam/gamepad/sdlpad"
	"github.com/soar/padcam/internal/config"
	"github.com/soar/padcam/internal/hub"
	"github.com/soar/padcam/internal/runner"
	"github.com/soar/padcam/internal/server"
	"github.com/soar/padcam/internal/tray"
	"github.com/soar/padcam/internal/window"
	"github.com/soar/padcam/orbit"
)

// SDL and ebiten both want the main thread.
func init() {
	runtime.LockOSThread()
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "padcam:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := config.Flags()
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := config.Load(fs)
	if err != nil {
		return err
	}

	log, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer log.Sync()

	zap.ReplaceGlobals(log)

	if file := cfg.File(); file != "" {
		log.Info("config loaded", zap.String("file", file))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	params := make(chan controls.Params, 1)
	changes := make(chan gamepad.State, 16)
	evs := make(chan events.Event, 64)

	h := hub.NewHub(log)
	go h.Run(ctx)

	broadcaster := hub.NewBroadcaster(h, changes, evs)
	go broadcaster.Run(ctx)

	srv := server.New(log, h, broadcaster, params, cfg.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", zap.Error(err))
			cancel()
		}
	}()

	url := viewerURL(cfg.Addr)
	log.Info("padcam started", zap.String("viewer", url), zap.String("backend", cfg.Backend))

	cfg.Watch(log, func(p controls.Params) {
		select {
		case params <- p:
		default:
			log.Warn("params reload dropped, previous update still pending")
		}
	})

	if cfg.Tray && runtime.GOOS == "windows" {
		t := tray.New(log, url, tray.ShutdownFunc(cancel))
		go t.Run(tray.GetIcon())
		defer t.Quit()
	} else {
		log.Info("press Ctrl+C to exit")
	}

	a := &app{
		log:     log,
		cfg:     cfg,
		camera:  orbit.New(),
		params:  params,
		changes: changes,
		events:  evs,
	}

	switch cfg.Backend {
	case config.BackendEbiten:
		err = a.runEbiten(ctx)
	default:
		err = a.runSDL(ctx)
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("HTTP server shutdown error", zap.Error(err))
	}

	log.Info("padcam stopped")
	return err
}

// app wires a gamepad backend to the camera and the viewer feed.
type app struct {
	log     *zap.Logger
	cfg     *config.Config
	camera  *orbit.Controls
	params  chan controls.Params
	changes chan gamepad.State
	events  chan events.Event
}

func (a *app) runSDL(ctx context.Context) error {
	src, err := sdlpad.Open(a.log)
	if err != nil {
		return err
	}
	defer src.Close()

	c, err := a.newControls(src)
	if err != nil {
		return err
	}
	defer c.Dispose()

	a.newRunner(src, c).Run(ctx, a.cfg.TickInterval())
	return nil
}

func (a *app) runEbiten(ctx context.Context) error {
	src := ebitenpad.New(a.log)

	c, err := a.newControls(src)
	if err != nil {
		return err
	}
	defer c.Dispose()

	g := window.New(ctx, a.newRunner(src, c), c, a.camera)
	return errors.Wrap(window.Run(g, a.cfg.TPS), "window")
}

func (a *app) newControls(src gamepad.Source) (*controls.Controls, error) {
	opts := []controls.Option{
		controls.WithParams(a.cfg.Params),
		controls.WithLogger(a.log),
	}
	if a.cfg.Gamepad >= 0 {
		opts = append(opts, controls.WithGamepadIndex(a.cfg.Gamepad))
	}
	c := controls.New(a.camera, src, opts...)

	if _, err := runner.Forward(a.log, c.Events(), a.events); err != nil {
		c.Dispose()
		return nil, err
	}
	return c, nil
}

func (a *app) newRunner(src runner.Source, c *controls.Controls) *runner.Runner {
	return runner.New(src, c,
		runner.WithParams(a.params),
		runner.WithChanges(a.changes),
		runner.WithLogger(a.log),
	)
}

func newLogger(cfg config.LogConfig) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, errors.Wrap(err, "log level")
	}

	zc := zap.NewProductionConfig()
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = level
	return zc.Build()
}

func viewerURL(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "http://" + addr
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port)
}
