package game

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/heliscene/internal/engine/camera"
	"github.com/Faultbox/heliscene/internal/engine/input"
	"github.com/Faultbox/heliscene/internal/engine/mesh"
	"github.com/Faultbox/heliscene/internal/engine/renderer"
	"github.com/Faultbox/heliscene/internal/engine/shader"
)

// renderThread owns the GL context for its whole life. Panics from
// contract violations are turned into errors so the supervisor sees them.
func (g *Game) renderThread(ctx context.Context) (err error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	if err := g.window.MakeCurrent(); err != nil {
		return err
	}
	defer g.window.ReleaseCurrent()

	gfx := g.config.Graphics
	r, err := renderer.New(renderer.Config{
		Width:      g.width,
		Height:     g.height,
		ClearColor: gfx.ClearColor,
	})
	if err != nil {
		return err
	}
	defer r.Close()

	program, err := g.loadProgram()
	if err != nil {
		return err
	}
	r.UseProgram(program)

	heli, err := g.loadScene(r)
	if err != nil {
		return err
	}

	cam := g.newCamera()
	return g.frameLoop(ctx, r, heli, cam)
}

func (g *Game) loadProgram() (*shader.Program, error) {
	s := g.config.Shaders
	if s.Vertex == "" {
		return shader.NewDefault()
	}
	g.log.Info("loading shaders", zap.String("vertex", s.Vertex), zap.String("fragment", s.Fragment))
	return shader.LoadFiles(s.Vertex, s.Fragment)
}

func (g *Game) loadScene(up Uploader) (*HelicopterScene, error) {
	sc := g.config.Scene

	terrain, err := mesh.LoadTerrain(sc.TerrainPath)
	if err != nil {
		return nil, fmt.Errorf("loading terrain: %w", err)
	}
	heli, err := mesh.LoadHelicopter(sc.HelicopterPath)
	if err != nil {
		return nil, fmt.Errorf("loading helicopter: %w", err)
	}

	s := BuildHelicopterScene(up, terrain, heli)
	g.log.Info("scene loaded",
		zap.Int("nodes", s.Graph.Len()),
		zap.Int("terrain_vertices", terrain.VertexCount()),
	)

	if sc.PrintGraph {
		if err := s.Graph.Print(os.Stdout, s.Root); err != nil {
			g.log.Warn("failed to print scene graph", zap.Error(err))
		}
	}
	return s, nil
}

func (g *Game) newCamera() *camera.FreeFly {
	c := camera.NewFreeFly()
	cc := g.config.Camera
	c.Position = cc.Start
	c.MoveSpeed = cc.MoveSpeed
	c.TurnSpeed = cc.TurnSpeed
	c.MouseSensitivity = cc.MouseSensitivity
	c.FovY = g.config.Graphics.FovY
	c.Near = g.config.Graphics.Near
	c.Far = g.config.Graphics.Far
	return c
}

func (g *Game) frameLoop(ctx context.Context, r *renderer.Renderer, s *HelicopterScene, cam *camera.FreeFly) error {
	sc := g.config.Scene

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := lastTime
	screenshotHeld := false

	g.log.Info("starting render loop")
	for {
		select {
		case <-ctx.Done():
			g.log.Info("render loop stopped")
			return nil
		default:
		}

		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		// 1. Input and animation
		snap := g.input.Sample()
		cam.Update(snap, dt)
		s.SpinRotors(dt, sc.MainRotorSpeed, sc.TailRotorSpeed)

		// 2. Transforms for the whole tree before any draw
		s.Graph.Propagate(s.Root, mgl32.Ident4())

		// 3. Draw
		r.Begin()
		s.Graph.Render(s.Root, cam.ViewProjection(r.Aspect()), r)
		draws := r.End()

		// 4. Screenshot on key press, not while held
		pressed := snap.Pressed(input.KeyF12)
		if pressed && !screenshotHeld {
			g.screenshot(r)
		}
		screenshotHeld = pressed

		// 5. Present
		g.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			g.log.Debug("fps",
				zap.Int("count", frameCount),
				zap.Int("draws", draws),
				zap.String("dt", fmt.Sprintf("%.2fms", dt*1000)),
			)
			frameCount = 0
			fpsTimer = time.Now()
		}
	}
}

func (g *Game) screenshot(r *renderer.Renderer) {
	w, h := r.Size()
	path, err := g.shots.CaptureFromPixels(r.ReadPixels(), w, h)
	if err != nil {
		g.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	g.log.Info("screenshot saved", zap.String("path", path))
}
