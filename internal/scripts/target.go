package scripts

import (
	"fpsrig/internal/components"
	"fpsrig/internal/engine"

	"github.com/rs/zerolog/log"
)

func init() {
	engine.RegisterScript("Target", targetFactory, targetSerializer)
}

// Target is a shooting-range target. It counts hits, flashes its mesh and,
// with a positive Health, removes itself after that many hits.
type Target struct {
	engine.BaseComponent
	Health    int
	FlashTime float32

	Hits int
}

func (t *Target) OnHit() {
	t.Hits++
	g := t.GetGameObject()
	if g == nil {
		return
	}

	if mr := engine.GetComponent[*components.MeshRenderer](g); mr != nil {
		mr.Flash(t.FlashTime)
	}
	log.Debug().Str("target", g.Name).Int("hits", t.Hits).Msg("target hit")

	if w := t.World(); w != nil && t.Health > 0 && t.Hits >= t.Health {
		w.Destroy(g)
	}
}

func targetFactory(props map[string]any) engine.Component {
	return &Target{
		Health:    engine.PropInt(props, "health", 0),
		FlashTime: engine.PropFloat(props, "flashTime", 0.1),
	}
}

func targetSerializer(c engine.Component) map[string]any {
	t, ok := c.(*Target)
	if !ok {
		return nil
	}
	return map[string]any{
		"health":    t.Health,
		"flashTime": t.FlashTime,
	}
}
