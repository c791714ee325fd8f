package world

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"fpsrig/internal/components"
	"fpsrig/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// --- YAML types ---

type SceneFile struct {
	Objects []ObjectDef `yaml:"objects"`
}

type ObjectDef struct {
	Name       string      `yaml:"name"`
	Tags       []string    `yaml:"tags,omitempty"`
	Layer      int         `yaml:"layer,omitempty"`
	Active     *bool       `yaml:"active,omitempty"`
	Position   [3]float32  `yaml:"position,flow"`
	Rotation   [3]float32  `yaml:"rotation,flow"`
	Scale      [3]float32  `yaml:"scale,flow"`
	Components []yaml.Node `yaml:"components,omitempty"`
	Children   []ObjectDef `yaml:"children,omitempty"`
}

type componentHeader struct {
	Type string `yaml:"type"`
}

type meshRendererDef struct {
	Type    string     `yaml:"type"`
	Mesh    string     `yaml:"mesh"`
	Size    [3]float32 `yaml:"size,flow"`
	Color   string     `yaml:"color"`
	Overlay bool       `yaml:"overlay,omitempty"`
}

type boxColliderDef struct {
	Type   string     `yaml:"type"`
	Size   [3]float32 `yaml:"size,flow"`
	Offset [3]float32 `yaml:"offset,flow,omitempty"`
}

type sphereColliderDef struct {
	Type   string     `yaml:"type"`
	Radius float32    `yaml:"radius"`
	Offset [3]float32 `yaml:"offset,flow,omitempty"`
}

type characterControllerDef struct {
	Type            string  `yaml:"type"`
	Height          float32 `yaml:"height,omitempty"`
	Radius          float32 `yaml:"radius,omitempty"`
	StepHeight      float32 `yaml:"stepHeight,omitempty"`
	CollisionLayers []int   `yaml:"collisionLayers,flow,omitempty"`
}

type cameraDef struct {
	Type    string  `yaml:"type"`
	FOV     float32 `yaml:"fov,omitempty"`
	Near    float32 `yaml:"near,omitempty"`
	Far     float32 `yaml:"far,omitempty"`
	Main    bool    `yaml:"main,omitempty"`
	Enabled *bool   `yaml:"enabled,omitempty"`
}

type scriptDef struct {
	Type  string         `yaml:"type"`
	Name  string         `yaml:"name"`
	Props map[string]any `yaml:"props,omitempty"`
}

// --- Color mapping ---

var colorByName = map[string]rl.Color{
	"Red":       rl.Red,
	"Blue":      rl.Blue,
	"Green":     rl.Green,
	"Purple":    rl.Purple,
	"Orange":    rl.Orange,
	"Yellow":    rl.Yellow,
	"Pink":      rl.Pink,
	"SkyBlue":   rl.SkyBlue,
	"Lime":      rl.Lime,
	"Magenta":   rl.Magenta,
	"White":     rl.White,
	"LightGray": rl.LightGray,
	"Gray":      rl.Gray,
	"DarkGray":  rl.DarkGray,
	"Black":     rl.Black,
	"Brown":     rl.Brown,
	"Beige":     rl.Beige,
	"Maroon":    rl.Maroon,
	"Gold":      rl.Gold,
}

var nameByColor map[rl.Color]string

func init() {
	nameByColor = make(map[rl.Color]string, len(colorByName))
	for name, c := range colorByName {
		nameByColor[c] = name
	}
}

// lookupColor accepts a palette name or #rrggbb / #rrggbbaa.
func lookupColor(name string) (rl.Color, error) {
	if name == "" {
		return rl.White, nil
	}
	if c, ok := colorByName[name]; ok {
		return c, nil
	}
	hex, ok := strings.CutPrefix(name, "#")
	if !ok || (len(hex) != 6 && len(hex) != 8) {
		return rl.Color{}, fmt.Errorf("unknown color %q", name)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return rl.Color{}, fmt.Errorf("bad color %q: %w", name, err)
	}
	return rl.NewColor(uint8(v>>24), uint8(v>>16), uint8(v>>8), uint8(v)), nil
}

func lookupColorName(c rl.Color) string {
	if name, ok := nameByColor[c]; ok {
		return name
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

func vec3(v [3]float32) rl.Vector3 {
	return rl.Vector3{X: v[0], Y: v[1], Z: v[2]}
}

func arr3(v rl.Vector3) [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}

// --- Loading ---

// ParseScene decodes a level file. Unknown keys are rejected.
func ParseScene(data []byte) (*SceneFile, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var sf SceneFile
	if err := dec.Decode(&sf); err != nil {
		return nil, fmt.Errorf("scene: parse: %w", err)
	}
	return &sf, nil
}

// Build instantiates the object trees described by sf.
func (sf *SceneFile) Build() ([]*engine.GameObject, error) {
	roots := make([]*engine.GameObject, 0, len(sf.Objects))
	for i := range sf.Objects {
		g, err := buildObject(&sf.Objects[i])
		if err != nil {
			return nil, err
		}
		roots = append(roots, g)
	}
	return roots, nil
}

// LoadScene reads a level file and adds its objects to the world.
func (w *World) LoadScene(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("scene: read %s: %w", path, err)
	}
	sf, err := ParseScene(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	roots, err := sf.Build()
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	for _, g := range roots {
		w.AddObject(g)
	}
	log.Info().Str("path", path).Int("objects", len(w.Scene.GameObjects)).Msg("scene loaded")
	return nil
}

func buildObject(def *ObjectDef) (*engine.GameObject, error) {
	g := engine.NewGameObject(def.Name)
	g.Tags = def.Tags
	g.Layer = def.Layer
	g.Transform.Position = vec3(def.Position)
	g.Transform.Rotation = vec3(def.Rotation)

	// Default scale to 1 if zero
	if def.Scale != [3]float32{} {
		g.Transform.Scale = vec3(def.Scale)
	}
	if def.Active != nil {
		g.Active = *def.Active
	}

	for i := range def.Components {
		c, err := buildComponent(&def.Components[i])
		if err != nil {
			return nil, fmt.Errorf("scene: object %q: %w", def.Name, err)
		}
		g.AddComponent(c)
	}

	for i := range def.Children {
		child, err := buildObject(&def.Children[i])
		if err != nil {
			return nil, err
		}
		g.AddChild(child)
	}
	return g, nil
}

func buildComponent(node *yaml.Node) (engine.Component, error) {
	var header componentHeader
	if err := node.Decode(&header); err != nil {
		return nil, fmt.Errorf("component: %w", err)
	}

	switch header.Type {
	case "MeshRenderer":
		var def meshRendererDef
		if err := node.Decode(&def); err != nil {
			return nil, fmt.Errorf("MeshRenderer: %w", err)
		}
		color, err := lookupColor(def.Color)
		if err != nil {
			return nil, fmt.Errorf("MeshRenderer: %w", err)
		}
		m := components.NewMeshRenderer(components.ParseMeshType(def.Mesh), color, vec3(def.Size))
		m.Overlay = def.Overlay
		return m, nil

	case "BoxCollider":
		var def boxColliderDef
		if err := node.Decode(&def); err != nil {
			return nil, fmt.Errorf("BoxCollider: %w", err)
		}
		col := components.NewBoxCollider(vec3(def.Size))
		col.Offset = vec3(def.Offset)
		return col, nil

	case "SphereCollider":
		var def sphereColliderDef
		if err := node.Decode(&def); err != nil {
			return nil, fmt.Errorf("SphereCollider: %w", err)
		}
		col := components.NewSphereCollider(def.Radius)
		col.Offset = vec3(def.Offset)
		return col, nil

	case "CharacterController":
		var def characterControllerDef
		if err := node.Decode(&def); err != nil {
			return nil, fmt.Errorf("CharacterController: %w", err)
		}
		cc := components.NewCharacterController()
		if def.Height > 0 {
			cc.Height = def.Height
		}
		if def.Radius > 0 {
			cc.Radius = def.Radius
		}
		if def.StepHeight > 0 {
			cc.StepHeight = def.StepHeight
		}
		if len(def.CollisionLayers) > 0 {
			cc.CollisionMask = 0
			for _, l := range def.CollisionLayers {
				cc.CollisionMask |= engine.LayerBit(l)
			}
		}
		return cc, nil

	case "Camera":
		var def cameraDef
		if err := node.Decode(&def); err != nil {
			return nil, fmt.Errorf("Camera: %w", err)
		}
		cam := components.NewCamera()
		if def.FOV > 0 {
			cam.FOV = def.FOV
		}
		if def.Near > 0 {
			cam.Near = def.Near
		}
		if def.Far > 0 {
			cam.Far = def.Far
		}
		cam.IsMain = def.Main
		if def.Enabled != nil {
			cam.Enabled = *def.Enabled
		}
		return cam, nil

	case "Script":
		var def scriptDef
		if err := node.Decode(&def); err != nil {
			return nil, fmt.Errorf("Script: %w", err)
		}
		comp := engine.CreateScript(def.Name, def.Props)
		if comp == nil {
			return nil, fmt.Errorf("unknown script %q", def.Name)
		}
		return comp, nil
	}

	return nil, fmt.Errorf("unknown component type %q (line %d)", header.Type, node.Line)
}

// --- Saving ---

// SaveScene writes the world's root objects and their children.
func (w *World) SaveScene(path string) error {
	var sf SceneFile
	for _, g := range w.Scene.GameObjects {
		if g.Parent != nil {
			continue
		}
		def, err := objectDef(g)
		if err != nil {
			return err
		}
		sf.Objects = append(sf.Objects, def)
	}

	data, err := yaml.Marshal(&sf)
	if err != nil {
		return fmt.Errorf("scene: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("scene: write %s: %w", path, err)
	}
	return nil
}

func objectDef(g *engine.GameObject) (ObjectDef, error) {
	def := ObjectDef{
		Name:     g.Name,
		Tags:     g.Tags,
		Layer:    g.Layer,
		Position: arr3(g.Transform.Position),
		Rotation: arr3(g.Transform.Rotation),
		Scale:    arr3(g.Transform.Scale),
	}
	if !g.Active {
		inactive := false
		def.Active = &inactive
	}

	for _, c := range g.Components() {
		v := serializeComponent(c)
		if v == nil {
			continue
		}
		var node yaml.Node
		if err := node.Encode(v); err != nil {
			return ObjectDef{}, fmt.Errorf("scene: encode %q: %w", g.Name, err)
		}
		def.Components = append(def.Components, node)
	}

	for _, child := range g.Children {
		cd, err := objectDef(child)
		if err != nil {
			return ObjectDef{}, err
		}
		def.Children = append(def.Children, cd)
	}
	return def, nil
}

func serializeComponent(c engine.Component) any {
	switch comp := c.(type) {
	case *components.MeshRenderer:
		return meshRendererDef{
			Type:    "MeshRenderer",
			Mesh:    meshName(comp.MeshType),
			Size:    arr3(comp.Size),
			Color:   lookupColorName(comp.Color),
			Overlay: comp.Overlay,
		}
	case *components.BoxCollider:
		return boxColliderDef{Type: "BoxCollider", Size: arr3(comp.Size), Offset: arr3(comp.Offset)}
	case *components.SphereCollider:
		return sphereColliderDef{Type: "SphereCollider", Radius: comp.Radius, Offset: arr3(comp.Offset)}
	case *components.CharacterController:
		return characterControllerDef{
			Type:            "CharacterController",
			Height:          comp.Height,
			Radius:          comp.Radius,
			StepHeight:      comp.StepHeight,
			CollisionLayers: comp.CollisionMask.Layers(),
		}
	case *components.Camera:
		enabled := comp.Enabled
		return cameraDef{
			Type:    "Camera",
			FOV:     comp.FOV,
			Near:    comp.Near,
			Far:     comp.Far,
			Main:    comp.IsMain,
			Enabled: &enabled,
		}
	}
	// Try script registry
	if name, props, ok := engine.SerializeScript(c); ok {
		return scriptDef{Type: "Script", Name: name, Props: props}
	}
	return nil
}

func meshName(t components.MeshType) string {
	switch t {
	case components.MeshSphere:
		return "sphere"
	case components.MeshPlane:
		return "plane"
	}
	return "cube"
}
