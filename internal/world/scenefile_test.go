package world

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fpsrig/internal/components"
	"fpsrig/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type sceneProbe struct {
	engine.BaseComponent
	Speed float32
	Tag   string
}

func init() {
	engine.RegisterScript("sceneProbe",
		func(props map[string]any) engine.Component {
			return &sceneProbe{
				Speed: engine.PropFloat(props, "speed", 1),
				Tag:   engine.PropString(props, "tag", ""),
			}
		},
		func(c engine.Component) map[string]any {
			p, ok := c.(*sceneProbe)
			if !ok {
				return nil
			}
			return map[string]any{"speed": p.Speed, "tag": p.Tag}
		})
}

const testScene = `
objects:
  - name: Floor
    layer: 1
    position: [0, -0.5, 0]
    components:
      - type: BoxCollider
        size: [50, 1, 50]
      - type: MeshRenderer
        mesh: cube
        size: [50, 1, 50]
        color: DarkGray
  - name: Player
    tags: [player]
    position: [0, 0.9, 0]
    rotation: [0, -90, 0]
    components:
      - type: CharacterController
        height: 1.6
        collisionLayers: [0, 1]
      - type: Script
        name: sceneProbe
        props:
          speed: 2.5
          tag: hello
    children:
      - name: LookPivot
        position: [0, 0.7, 0]
        components:
          - type: Camera
            fov: 60
            main: true
        children:
          - name: WeaponCamera
            components:
              - type: Camera
                enabled: false
          - name: GunModel
            position: [0.5, -0.2, 0.3]
            components:
              - type: MeshRenderer
                mesh: cube
                size: [0.1, 0.1, 0.5]
                color: "#202020"
                overlay: true
  - name: Ball
    active: false
    layer: 3
    scale: [2, 2, 2]
    components:
      - type: SphereCollider
        radius: 0.5
`

func writeScene(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "level.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write scene: %v", err)
	}
	return path
}

func TestLoadScene(t *testing.T) {
	w := New(nil)
	if err := w.LoadScene(writeScene(t, testScene)); err != nil {
		t.Fatalf("LoadScene failed: %v", err)
	}

	if got := len(w.Scene.GameObjects); got != 6 {
		t.Fatalf("Expected 6 objects including children, got %d", got)
	}
	if got := len(w.GetCollidableObjects()); got != 2 {
		t.Errorf("Expected 2 collidables, got %d", got)
	}

	floor := w.Scene.FindByName("Floor")
	if floor.Layer != 1 || floor.Transform.Scale != (rl.Vector3{X: 1, Y: 1, Z: 1}) {
		t.Errorf("Floor layer/scale wrong: %d %v", floor.Layer, floor.Transform.Scale)
	}

	player := w.Scene.FindByName("Player")
	if !player.HasTag("player") || player.Transform.Rotation.Y != -90 {
		t.Error("Player tags or rotation not loaded")
	}
	cc := engine.GetComponent[*components.CharacterController](player)
	if cc == nil || cc.Height != 1.6 || cc.Radius != 0.4 {
		t.Fatal("CharacterController not loaded with defaults for unset fields")
	}
	if cc.CollisionMask != engine.LayerBit(0)|engine.LayerBit(1) {
		t.Errorf("Expected collision mask 0b11, got %b", cc.CollisionMask)
	}
	probe := engine.GetComponent[*sceneProbe](player)
	if probe == nil || probe.Speed != 2.5 || probe.Tag != "hello" {
		t.Error("Script props not applied")
	}

	pivot := w.Scene.FindByName("LookPivot")
	if pivot.Parent != player {
		t.Error("LookPivot should be a child of Player")
	}
	if cam := engine.GetComponent[*components.Camera](pivot); cam == nil || !cam.IsMain {
		t.Error("Main camera not loaded")
	}
	weaponCam := engine.GetComponent[*components.Camera](w.Scene.FindByName("WeaponCamera"))
	if weaponCam == nil || weaponCam.Enabled {
		t.Error("Weapon camera should load disabled")
	}

	gun := engine.GetComponent[*components.MeshRenderer](w.Scene.FindByName("GunModel"))
	if gun == nil || !gun.Overlay {
		t.Fatal("Gun model should be an overlay mesh")
	}
	if gun.Color != (rl.Color{R: 0x20, G: 0x20, B: 0x20, A: 0xff}) {
		t.Errorf("Hex color not parsed, got %v", gun.Color)
	}

	ball := w.Scene.FindByName("Ball")
	if ball.Active {
		t.Error("Ball should load inactive")
	}
	if ball.Transform.Scale.X != 2 {
		t.Errorf("Expected scale 2, got %f", ball.Transform.Scale.X)
	}
}

func TestLoadSceneErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"unknown component", "objects:\n  - name: A\n    components:\n      - type: Light\n", `unknown component type "Light"`},
		{"unknown script", "objects:\n  - name: A\n    components:\n      - type: Script\n        name: Nope\n", `unknown script "Nope"`},
		{"bad color", "objects:\n  - name: A\n    components:\n      - type: MeshRenderer\n        color: Teal\n", `unknown color "Teal"`},
		{"unknown field", "objects:\n  - name: A\n    colour: red\n", "colour"},
		{"short vector", "objects:\n  - name: A\n    position: [1, 2]\n", "scene: parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := New(nil)
			err := w.LoadScene(writeScene(t, tt.body))
			if err == nil {
				t.Fatal("Expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error containing %q, got %v", tt.want, err)
			}
			if len(w.Scene.GameObjects) != 0 {
				t.Error("A failed load should add nothing")
			}
		})
	}
}

func TestLoadSceneMissingFile(t *testing.T) {
	w := New(nil)
	err := w.LoadScene(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil || !strings.HasPrefix(err.Error(), "scene: read") {
		t.Errorf("Expected a read error, got %v", err)
	}
}

func TestSaveSceneRoundTrip(t *testing.T) {
	w := New(nil)
	if err := w.LoadScene(writeScene(t, testScene)); err != nil {
		t.Fatalf("LoadScene failed: %v", err)
	}

	out := filepath.Join(t.TempDir(), "saved.yaml")
	if err := w.SaveScene(out); err != nil {
		t.Fatalf("SaveScene failed: %v", err)
	}

	w2 := New(nil)
	if err := w2.LoadScene(out); err != nil {
		t.Fatalf("Reloading saved scene failed: %v", err)
	}

	if len(w2.Scene.GameObjects) != len(w.Scene.GameObjects) {
		t.Fatalf("Expected %d objects, got %d", len(w.Scene.GameObjects), len(w2.Scene.GameObjects))
	}
	for i, g := range w.Scene.GameObjects {
		g2 := w2.Scene.GameObjects[i]
		if g.Name != g2.Name || g.Layer != g2.Layer || g.Active != g2.Active {
			t.Errorf("Object %d differs: %s/%s", i, g.Name, g2.Name)
		}
		if len(g.Components()) != len(g2.Components()) {
			t.Errorf("%s: expected %d components, got %d", g.Name, len(g.Components()), len(g2.Components()))
		}
	}

	probe := engine.GetComponent[*sceneProbe](w2.Scene.FindByName("Player"))
	if probe == nil || probe.Speed != 2.5 {
		t.Error("Script props should survive a save")
	}
	weaponCam := engine.GetComponent[*components.Camera](w2.Scene.FindByName("WeaponCamera"))
	if weaponCam.Enabled {
		t.Error("Disabled camera should stay disabled")
	}
}
