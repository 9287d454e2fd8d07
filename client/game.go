package client

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// frameDelta is the fixed timestep handed to the loop; ebiten ticks at 60
// per second by default.
const frameDelta = 1.0 / 60.0

// mousePointerID is the synthetic pointer used for the desktop mouse so the
// same zone tracker serves both input sources. Real touch ids are small
// non-negative integers, so a large sentinel cannot collide.
const mousePointerID = 1 << 30

// Game adapts the client loop to ebiten: it feeds each tick's touch set into
// the zone tracker, advances the loop, and draws the debug overlay that
// stands in for the real voxel renderer.
type Game struct {
	loop    *Loop
	tracker *ZoneTracker
	cam     *Camera
	ch      *SyncChannel
	metrics *Metrics

	width, height int

	touchIDs  []ebiten.TouchID
	mouseDown bool
}

func NewGame(loop *Loop, tracker *ZoneTracker, cam *Camera, ch *SyncChannel, m *Metrics) *Game {
	return &Game{
		loop:    loop,
		tracker: tracker,
		cam:     cam,
		ch:      ch,
		metrics: m,
	}
}

func (g *Game) Update() error {
	g.pollTouches()
	g.pollMouse()
	g.loop.Advance(frameDelta)
	return nil
}

// pollTouches translates ebiten's per-tick touch snapshot into the zone
// tracker's down/drag/up event stream.
func (g *Game) pollTouches() {
	g.touchIDs = inpututil.AppendJustPressedTouchIDs(g.touchIDs[:0])
	for _, id := range g.touchIDs {
		x, y := ebiten.TouchPosition(id)
		g.tracker.TouchDown(int(id), float64(x), float64(y))
	}

	g.touchIDs = ebiten.AppendTouchIDs(g.touchIDs[:0])
	for _, id := range g.touchIDs {
		x, y := ebiten.TouchPosition(id)
		g.tracker.TouchDragged(int(id), float64(x), float64(y))
	}

	g.touchIDs = inpututil.AppendJustReleasedTouchIDs(g.touchIDs[:0])
	for _, id := range g.touchIDs {
		g.tracker.TouchUp(int(id))
	}
}

// pollMouse lets desktop builds drive the zones with the left mouse button.
func (g *Game) pollMouse() {
	x, y := ebiten.CursorPosition()
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		g.mouseDown = true
		g.tracker.TouchDown(mousePointerID, float64(x), float64(y))
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		g.mouseDown = false
		g.tracker.TouchUp(mousePointerID)
	case g.mouseDown:
		g.tracker.TouchDragged(mousePointerID, float64(x), float64(y))
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	drawZone := func(z *Zone, col color.NRGBA) {
		if !z.active() {
			return
		}
		vector.DrawFilledCircle(screen, float32(z.startX), float32(z.startY), 28, color.NRGBA{64, 64, 64, 120}, true)
		vector.DrawFilledCircle(screen, float32(z.curX), float32(z.curY), 12, col, true)
	}
	drawZone(&g.tracker.move, color.NRGBA{0, 200, 80, 200})
	drawZone(&g.tracker.look, color.NRGBA{80, 160, 255, 200})

	dirX, dirY, dirZ := g.cam.Direction()
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"pos (%.1f, %.1f, %.1f)\nyaw %.1f pitch %.1f\ndir (%.2f, %.2f, %.2f)\nnet %s sent %d recv %d",
		g.cam.X, g.cam.Y, g.cam.Z,
		g.cam.Yaw, g.cam.Pitch,
		dirX, dirY, dirZ,
		g.ch.State(), g.metrics.Sent(), g.metrics.Received()))
}

// Layout feeds the zone split point; the midpoint moves with the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	g.tracker.SetWidth(float64(outsideWidth))
	return outsideWidth, outsideHeight
}
