package game

import (
	"context"
	"fmt"
	"time"

	"fpsrig/internal/components"
	"fpsrig/internal/config"
	"fpsrig/internal/engine"
	"fpsrig/internal/input"
	"fpsrig/internal/logging"
	"fpsrig/internal/metrics"
	"fpsrig/internal/scripts"
	"fpsrig/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rs/zerolog/log"
)

type Game struct {
	World    *world.World
	Actions  *input.ActionMap
	Source   *input.RaylibSource
	Renderer *world.Renderer
	HUD      *HUD

	Player       *engine.GameObject
	Controller   *scripts.PlayerController
	Gun          *scripts.GunController
	MainCamera   *components.Camera
	WeaponCamera *components.Camera

	cfg          config.Config
	configCh     chan config.Config
	cursorToggle input.Control
	cursorLocked bool
}

// New loads the configured scene and starts it. No window is needed until
// Run, so the simulation can be driven headless with Tick.
func New(cfg config.Config) (*Game, error) {
	toggle, err := input.ParseControl(cfg.Window.CursorToggle)
	if err != nil {
		return nil, fmt.Errorf("game: cursor toggle: %w", err)
	}
	if err := cfg.Input.Validate(); err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	actions := input.NewActionMap()
	actions.Enable()

	g := &Game{
		World:        world.New(actions),
		Actions:      actions,
		Renderer:     world.NewRenderer(),
		cfg:          cfg,
		configCh:     make(chan config.Config, 1),
		cursorToggle: toggle,
	}

	if err := g.World.LoadScene(cfg.Scene); err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	g.findPlayer()
	if g.Player == nil {
		return nil, fmt.Errorf("game: scene %s has no PlayerController", cfg.Scene)
	}

	// tunables from the config override the level's script props
	full := g.Gun != nil && g.Gun.Magazine() == g.Gun.MaxMagazine
	g.applyTunables(cfg)
	if full {
		g.Gun.SetMagazine(g.Gun.MaxMagazine)
	}
	g.World.Start()

	if g.Gun != nil {
		g.MainCamera = g.Gun.MainCamera
		g.WeaponCamera = g.Gun.WeaponCamera
	}
	if g.MainCamera == nil {
		g.MainCamera = findMainCamera(g.World.Scene)
	}
	g.HUD = NewHUD(g.Gun)

	log.Info().
		Str("scene", cfg.Scene).
		Str("player", g.Player.Name).
		Bool("gun", g.Gun != nil).
		Msg("game ready")
	return g, nil
}

func (g *Game) findPlayer() {
	for _, obj := range g.World.Scene.GameObjects {
		if pc := engine.GetComponent[*scripts.PlayerController](obj); pc != nil {
			g.Player = obj
			g.Controller = pc
			g.Gun = engine.GetComponent[*scripts.GunController](obj)
			return
		}
	}
}

func findMainCamera(scene *engine.Scene) *components.Camera {
	for _, obj := range scene.GameObjects {
		if cam := engine.GetComponent[*components.Camera](obj); cam != nil && cam.IsMain {
			return cam
		}
	}
	return nil
}

// Run opens the window and plays until it is closed or ctx is cancelled.
func (g *Game) Run(ctx context.Context) error {
	flags := uint32(rl.FlagWindowHighdpi | rl.FlagMsaa4xHint | rl.FlagWindowResizable)
	if g.cfg.Window.Fullscreen {
		flags |= rl.FlagFullscreenMode
	}
	rl.SetConfigFlags(flags)
	rl.InitWindow(int32(g.cfg.Window.Width), int32(g.cfg.Window.Height), g.cfg.Window.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(g.cfg.Window.TargetFPS))

	src, err := input.NewRaylibSource(g.Actions, g.cfg.Input)
	if err != nil {
		return fmt.Errorf("game: %w", err)
	}
	g.Source = src
	g.HUD.Load()

	g.CursorLock(true)
	defer g.World.Stop()

	for !rl.WindowShouldClose() {
		if ctx.Err() != nil {
			log.Info().Msg("shutting down")
			break
		}
		g.frame()
	}
	return nil
}

func (g *Game) frame() {
	if isPressed(g.cursorToggle) {
		g.CursorLock(!g.cursorLocked)
	}

	w, h := float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight())
	for _, cam := range []*components.Camera{g.MainCamera, g.WeaponCamera} {
		if cam != nil {
			cam.Width, cam.Height = w, h
		}
	}

	g.Source.Poll()
	g.Tick(rl.GetFrameTime())
	g.Draw()
}

// Tick applies any pending config change, dispatches queued input and
// advances the world by deltaTime seconds.
func (g *Game) Tick(deltaTime float32) {
	start := time.Now()

	select {
	case cfg := <-g.configCh:
		if err := g.ApplyConfig(cfg); err != nil {
			log.Error().Err(err).Msg("config change rejected")
		}
	default:
	}

	g.Actions.Flush()
	g.World.Update(deltaTime)
	g.HUD.Update(deltaTime)

	metrics.ObserveTick(time.Since(start))
}

func (g *Game) Draw() {
	rl.BeginDrawing()
	g.Renderer.Draw(g.World.Scene.GameObjects, g.MainCamera, g.WeaponCamera)
	g.HUD.Draw(g.MainCamera, g.Renderer)
	rl.EndDrawing()
}

// QueueConfig hands a reloaded config to the game loop. It is safe to call
// from any goroutine; only the newest pending config is kept.
func (g *Game) QueueConfig(cfg config.Config) {
	select {
	case g.configCh <- cfg:
		return
	default:
	}
	select {
	case <-g.configCh:
	default:
	}
	select {
	case g.configCh <- cfg:
	default:
	}
}

// ApplyConfig retunes the running game. Invalid bindings leave everything
// unchanged.
func (g *Game) ApplyConfig(cfg config.Config) error {
	toggle, err := input.ParseControl(cfg.Window.CursorToggle)
	if err != nil {
		return fmt.Errorf("game: cursor toggle: %w", err)
	}
	if err := cfg.Input.Validate(); err != nil {
		return fmt.Errorf("game: %w", err)
	}
	if g.Source != nil {
		if err := g.Source.Rebind(cfg.Input); err != nil {
			return fmt.Errorf("game: %w", err)
		}
	}
	g.cursorToggle = toggle

	logging.SetLevel(cfg.Log.Level)
	g.applyTunables(cfg)
	if rl.IsWindowReady() && cfg.Window.TargetFPS != g.cfg.Window.TargetFPS {
		rl.SetTargetFPS(int32(cfg.Window.TargetFPS))
	}
	if cfg.Scene != g.cfg.Scene {
		log.Warn().Str("scene", cfg.Scene).Msg("scene changes apply on restart")
	}

	g.cfg = cfg
	log.Info().Msg("config applied")
	return nil
}

func (g *Game) applyTunables(cfg config.Config) {
	if g.Controller != nil {
		engine.ApplyScriptProperties(g.Controller, cfg.Player.Props())
	}
	if g.Gun != nil {
		engine.ApplyScriptProperties(g.Gun, cfg.Gun.Props())
	}
}

// Config returns the config currently in effect.
func (g *Game) Config() config.Config {
	return g.cfg
}

func isPressed(c input.Control) bool {
	if c.IsMouse {
		return rl.IsMouseButtonPressed(c.Button)
	}
	return rl.IsKeyPressed(c.Key)
}
