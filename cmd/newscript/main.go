package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

const scriptsDir = "internal/scripts"

const tmpl = `package scripts

import "fpsrig/internal/engine"

func init() {
	engine.RegisterScriptWithApplier("{{.Name}}", {{.Lower}}Factory, {{.Lower}}Serializer, {{.Lower}}Applier)
}

type {{.Name}} struct {
	engine.BaseComponent
	Speed float32
}

func (s *{{.Name}}) Update(deltaTime float32) {
	g := s.GetGameObject()
	if g == nil {
		return
	}
}

func {{.Lower}}Factory(props map[string]any) engine.Component {
	return &{{.Name}}{
		Speed: engine.PropFloat(props, "speed", 1),
	}
}

func {{.Lower}}Serializer(c engine.Component) map[string]any {
	s, ok := c.(*{{.Name}})
	if !ok {
		return nil
	}
	return map[string]any{
		"speed": s.Speed,
	}
}

func {{.Lower}}Applier(c engine.Component, propName string, value any) bool {
	s, ok := c.(*{{.Name}})
	if !ok {
		return false
	}
	switch propName {
	case "speed":
		v, ok := engine.ValueFloat(value)
		if ok {
			s.Speed = v
		}
		return ok
	}
	return false
}
`

const sceneSnippet = `      - type: Script
        name: {{.Name}}
        props:
          speed: 1.0
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: go run ./cmd/newscript <ScriptName>\n")
		fmt.Fprintf(os.Stderr, "Example: go run ./cmd/newscript TargetSpawner\n")
		os.Exit(1)
	}

	name := os.Args[1]
	filename, content, err := render(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	outPath := filepath.Join(scriptsDir, filename)

	if _, err := os.Stat(outPath); err == nil {
		fmt.Fprintf(os.Stderr, "Error: %s already exists\n", outPath)
		os.Exit(1)
	}

	if err := os.WriteFile(outPath, []byte(content), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Created %s\n", outPath)
	fmt.Printf("Script %q registered. Add it to an object in a level file:\n\n", name)
	fmt.Print(fill(sceneSnippet, name))
}

// render returns the file name and source for a new script.
func render(name string) (string, string, error) {
	if name == "" || !unicode.IsUpper(rune(name[0])) {
		return "", "", fmt.Errorf("script name must start with an uppercase letter")
	}
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return "", "", fmt.Errorf("script name %q must be a Go identifier", name)
		}
	}
	return toSnakeCase(name) + ".go", fill(tmpl, name), nil
}

func fill(text, name string) string {
	lower := string(unicode.ToLower(rune(name[0]))) + name[1:]
	text = strings.ReplaceAll(text, "{{.Name}}", name)
	return strings.ReplaceAll(text, "{{.Lower}}", lower)
}

func toSnakeCase(s string) string {
	var result []rune
	for i, r := range s {
		if unicode.IsUpper(r) && i > 0 {
			result = append(result, '_')
		}
		result = append(result, unicode.ToLower(r))
	}
	return string(result)
}
