package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rs/zerolog/log"
)

// CursorLock captures or releases the mouse. While released, gameplay input
// is ignored and held controls are dropped so nothing keeps moving.
func (g *Game) CursorLock(locked bool) {
	g.cursorLocked = locked

	if locked {
		g.Actions.Enable()
	} else {
		g.Actions.Disable()
		if g.Controller != nil {
			g.Controller.Input.Reset()
		}
		if g.Gun != nil {
			g.Gun.Input.Reset()
			// the aim release is lost with the disabled map
			g.Gun.SetAiming(false)
		}
	}

	if g.Source != nil {
		g.Source.CenterPointer = locked
		g.Source.Reset()
	}

	if rl.IsWindowReady() {
		if locked {
			rl.DisableCursor()
		} else {
			rl.EnableCursor()
		}
	}
	log.Debug().Bool("locked", locked).Msg("cursor")
}

func (g *Game) CursorLocked() bool {
	return g.cursorLocked
}
