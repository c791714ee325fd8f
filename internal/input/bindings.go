package input

import (
	"fmt"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Bindings maps actions to device controls by name, e.g. "W", "Space",
// "LeftShift", "MouseLeft".
type Bindings struct {
	Forward string `mapstructure:"forward" yaml:"forward"`
	Back    string `mapstructure:"back" yaml:"back"`
	Left    string `mapstructure:"left" yaml:"left"`
	Right   string `mapstructure:"right" yaml:"right"`
	Jump    string `mapstructure:"jump" yaml:"jump"`
	Sprint  string `mapstructure:"sprint" yaml:"sprint"`
	Aim     string `mapstructure:"aim" yaml:"aim"`
	Fire    string `mapstructure:"fire" yaml:"fire"`
	Reload  string `mapstructure:"reload" yaml:"reload"`
}

// DefaultBindings is the WASD + mouse layout.
func DefaultBindings() Bindings {
	return Bindings{
		Forward: "W",
		Back:    "S",
		Left:    "A",
		Right:   "D",
		Jump:    "Space",
		Sprint:  "LeftShift",
		Aim:     "MouseRight",
		Fire:    "MouseLeft",
		Reload:  "R",
	}
}

// Control is a single key or mouse button.
type Control struct {
	Name    string
	Key     int32
	Button  rl.MouseButton
	IsMouse bool
}

var namedKeys = map[string]int32{
	"space":        rl.KeySpace,
	"leftshift":    rl.KeyLeftShift,
	"rightshift":   rl.KeyRightShift,
	"leftcontrol":  rl.KeyLeftControl,
	"rightcontrol": rl.KeyRightControl,
	"leftalt":      rl.KeyLeftAlt,
	"tab":          rl.KeyTab,
	"enter":        rl.KeyEnter,
	"escape":       rl.KeyEscape,
	"backspace":    rl.KeyBackspace,
	"up":           rl.KeyUp,
	"down":         rl.KeyDown,
	"left":         rl.KeyLeft,
	"right":        rl.KeyRight,
}

var namedButtons = map[string]rl.MouseButton{
	"mouseleft":   rl.MouseButtonLeft,
	"mouseright":  rl.MouseButtonRight,
	"mousemiddle": rl.MouseButtonMiddle,
}

// ParseControl resolves a control name. Letters, digits and F1-F12 are
// accepted in addition to the named keys.
func ParseControl(name string) (Control, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return Control{}, fmt.Errorf("empty control name")
	}
	if b, ok := namedButtons[n]; ok {
		return Control{Name: name, Button: b, IsMouse: true}, nil
	}
	if k, ok := namedKeys[n]; ok {
		return Control{Name: name, Key: k}, nil
	}
	if len(n) == 1 {
		c := n[0]
		switch {
		case c >= 'a' && c <= 'z':
			return Control{Name: name, Key: rl.KeyA + int32(c-'a')}, nil
		case c >= '0' && c <= '9':
			return Control{Name: name, Key: rl.KeyZero + int32(c-'0')}, nil
		}
	}
	var f int
	if _, err := fmt.Sscanf(n, "f%d", &f); err == nil && f >= 1 && f <= 12 {
		return Control{Name: name, Key: rl.KeyF1 + int32(f-1)}, nil
	}
	return Control{}, fmt.Errorf("unknown control %q", name)
}

type resolvedBindings struct {
	forward, back, left, right Control
	jump, sprint, aim          Control
	fire, reload               Control
}

func (b Bindings) resolve() (resolvedBindings, error) {
	var r resolvedBindings
	fields := []struct {
		name string
		dst  *Control
	}{
		{b.Forward, &r.forward},
		{b.Back, &r.back},
		{b.Left, &r.left},
		{b.Right, &r.right},
		{b.Jump, &r.jump},
		{b.Sprint, &r.sprint},
		{b.Aim, &r.aim},
		{b.Fire, &r.fire},
		{b.Reload, &r.reload},
	}
	for _, f := range fields {
		c, err := ParseControl(f.name)
		if err != nil {
			return resolvedBindings{}, fmt.Errorf("bindings: %w", err)
		}
		*f.dst = c
	}
	return r, nil
}

// Validate reports the first control name that cannot be resolved.
func (b Bindings) Validate() error {
	_, err := b.resolve()
	return err
}
