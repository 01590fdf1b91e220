// Package game wires the window, the render thread and the helicopter
// scene into the viewer's main loop.
package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/heliscene/internal/config"
	"github.com/Faultbox/heliscene/internal/engine/debug"
	"github.com/Faultbox/heliscene/internal/engine/input"
	"github.com/Faultbox/heliscene/internal/engine/window"
	"github.com/Faultbox/heliscene/internal/logger"
)

// eventWait bounds how long the event loop blocks before it rechecks the
// render thread's health.
const eventWait = 50 * time.Millisecond

// Game is the main viewer instance.
type Game struct {
	config *config.Config
	log    *zap.Logger

	window *window.Window
	input  *input.Bridge
	health *Health
	shots  *debug.ScreenshotCapture

	width  int
	height int
}

// New creates the window. GPU state is created later on the render thread.
func New(cfg *config.Config) (*Game, error) {
	g := &Game{
		config: cfg,
		log:    logger.Named("game"),
		input:  input.NewBridge(),
		health: &Health{},
		shots:  debug.NewScreenshotCapture(cfg.Debug.ScreenshotDir, "heliscene", cfg.Debug.ScreenshotFormat),
	}

	g.log.Info("initializing",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.Bool("fullscreen", cfg.Graphics.Fullscreen),
	)

	var err error
	g.window, err = window.New(window.Config{
		Title:      "Helicopter Scene",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
		GrabMouse:  cfg.Camera.GrabMouse,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	g.width, g.height = g.window.DrawableSize()

	return g, nil
}

// Run starts the render thread and pumps platform events on the calling
// (main) thread until the user quits or the render thread dies.
func (g *Game) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return g.renderThread(ctx)
	})

	supervised := make(chan struct{})
	go func() {
		defer close(supervised)
		supervise(group, g.health, g.log)
	}()

	g.log.Info("starting event loop")
	for g.health.Healthy() {
		if g.window.PumpEvents(g.input, eventWait) {
			g.log.Info("quit requested")
			break
		}
	}

	cancel()
	<-supervised

	if err := g.health.Err(); err != nil {
		return fmt.Errorf("render thread: %w", err)
	}
	return nil
}

// supervise blocks until the render group finishes and records any
// failure other than a requested shutdown.
func supervise(group *errgroup.Group, health *Health, log *zap.Logger) {
	err := group.Wait()
	if err == nil || errors.Is(err, context.Canceled) {
		log.Debug("render thread stopped")
		return
	}
	log.Error("render thread died", zap.Error(err))
	health.MarkFailed(err)
}

// Close releases the window. Run must have returned.
func (g *Game) Close() {
	g.log.Info("closing")
	if g.window != nil {
		g.window.Close()
	}
}
