// Package window runs the controls inside an ebiten game loop and prints the
// camera pose and gamepad state on screen.
package window

import (
	"context"
	"fmt"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/soar/padcam/controls"
	"github.com/soar/padcam/internal/runner"
)

// Camera is the pose shown on screen.
type Camera interface {
	Position() r3.Vector
	TargetEnd() r3.Vector
	Radius() float64
}

// Game implements ebiten.Game. The runner is stepped from Update, so the
// gamepad is read on ebiten's update goroutine.
type Game struct {
	ctx      context.Context
	runner   *runner.Runner
	controls *controls.Controls
	camera   Camera
	moved    bool
}

func New(ctx context.Context, r *runner.Runner, c *controls.Controls, camera Camera) *Game {
	return &Game{
		ctx:      ctx,
		runner:   r,
		controls: c,
		camera:   camera,
	}
}

// Run opens the window and blocks until it is closed or ctx is done.
func Run(g *Game, tps int) error {
	ebiten.SetWindowTitle("padcam")
	ebiten.SetWindowSize(480, 320)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(tps)
	return ebiten.RunGame(g)
}

func (g *Game) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}
	g.moved = g.runner.Step(1 / float64(ebiten.TPS()))
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	ebitenutil.DebugPrint(screen, g.status())
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

func (g *Game) status() string {
	var b strings.Builder

	if index, ok := g.controls.GamepadIndex(); ok {
		fmt.Fprintf(&b, "gamepad %d\n", index)
	} else {
		b.WriteString("no gamepad\n")
	}

	pos, target := g.camera.Position(), g.camera.TargetEnd()
	fmt.Fprintf(&b, "camera %6.2f %6.2f %6.2f\n", pos.X, pos.Y, pos.Z)
	fmt.Fprintf(&b, "target %6.2f %6.2f %6.2f\n", target.X, target.Y, target.Z)
	fmt.Fprintf(&b, "radius %6.2f\n", g.camera.Radius())
	if g.moved {
		b.WriteString("moving\n")
	}

	s := g.controls.State()
	fmt.Fprintf(&b, "\nL %5.2f %5.2f  R %5.2f %5.2f\n",
		s.Sticks.Left.Position.X, s.Sticks.Left.Position.Y,
		s.Sticks.Right.Position.X, s.Sticks.Right.Position.Y)
	fmt.Fprintf(&b, "LT %4.2f  RT %4.2f\n", s.Triggers.Left, s.Triggers.Right)
	return b.String()
}
