package engine

import (
	"fmt"
	"slices"
)

// ScriptFactory creates a Component from scene-file props.
type ScriptFactory func(props map[string]any) Component

// ScriptSerializer converts a Component back to props.
type ScriptSerializer func(c Component) map[string]any

// ScriptApplier applies a single property value to a script component.
// Returns true if the property was applied successfully.
type ScriptApplier func(c Component, propName string, value any) bool

type scriptEntry struct {
	factory    ScriptFactory
	serializer ScriptSerializer
	applier    ScriptApplier
}

var scriptRegistry = map[string]scriptEntry{}

// RegisterScript registers a named script with a factory and optional serializer.
func RegisterScript(name string, factory ScriptFactory, serializer ScriptSerializer) {
	RegisterScriptWithApplier(name, factory, serializer, nil)
}

// RegisterScriptWithApplier registers a script with factory, serializer, and property applier.
// The applier is what config hot-reload uses to retune live components.
func RegisterScriptWithApplier(name string, factory ScriptFactory, serializer ScriptSerializer, applier ScriptApplier) {
	if _, exists := scriptRegistry[name]; exists {
		panic(fmt.Sprintf("script %q already registered", name))
	}
	scriptRegistry[name] = scriptEntry{factory: factory, serializer: serializer, applier: applier}
}

// CreateScript looks up a registered script by name and creates it with the given props.
func CreateScript(name string, props map[string]any) Component {
	entry, ok := scriptRegistry[name]
	if !ok {
		return nil
	}
	if props == nil {
		props = map[string]any{}
	}
	return entry.factory(props)
}

// SerializeScript tries to serialize a component by checking all registered scripts.
// Returns (name, props, true) if found, ("", nil, false) otherwise.
func SerializeScript(c Component) (string, map[string]any, bool) {
	for name, entry := range scriptRegistry {
		if entry.serializer == nil {
			continue
		}
		props := entry.serializer(c)
		if props != nil {
			return name, props, true
		}
	}
	return "", nil, false
}

// GetRegisteredScripts returns a sorted list of all registered script names.
func GetRegisteredScripts() []string {
	names := make([]string, 0, len(scriptRegistry))
	for name := range scriptRegistry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ApplyScriptProperty applies a property value to a script component.
// Returns true if the property was applied successfully.
func ApplyScriptProperty(c Component, propName string, value any) bool {
	for _, entry := range scriptRegistry {
		if entry.applier == nil {
			continue
		}
		if entry.applier(c, propName, value) {
			return true
		}
	}
	return false
}

// ApplyScriptProperties applies every entry in props and returns how many
// were accepted.
func ApplyScriptProperties(c Component, props map[string]any) int {
	applied := 0
	for name, value := range props {
		if ApplyScriptProperty(c, name, value) {
			applied++
		}
	}
	return applied
}

// PropFloat reads a numeric prop, accepting the int and float kinds that
// JSON and YAML decoders produce.
func PropFloat(props map[string]any, key string, fallback float32) float32 {
	v, ok := props[key]
	if !ok {
		return fallback
	}
	if f, ok := toFloat(v); ok {
		return f
	}
	return fallback
}

// PropInt is PropFloat for integer props.
func PropInt(props map[string]any, key string, fallback int) int {
	v, ok := props[key]
	if !ok {
		return fallback
	}
	if f, ok := toFloat(v); ok {
		return int(f)
	}
	return fallback
}

// PropBool reads a boolean prop.
func PropBool(props map[string]any, key string, fallback bool) bool {
	if v, ok := props[key].(bool); ok {
		return v
	}
	return fallback
}

// PropVector3 reads a three-element list prop.
func PropVector3(props map[string]any, key string, fallback [3]float32) [3]float32 {
	list, ok := props[key].([]any)
	if !ok || len(list) != 3 {
		return fallback
	}
	var out [3]float32
	for i, v := range list {
		f, ok := toFloat(v)
		if !ok {
			return fallback
		}
		out[i] = f
	}
	return out
}

// PropString reads a string prop.
func PropString(props map[string]any, key string, fallback string) string {
	if v, ok := props[key].(string); ok {
		return v
	}
	return fallback
}

// PropLayerMask reads either a single layer index or a list of indices.
func PropLayerMask(props map[string]any, key string, fallback LayerMask) LayerMask {
	switch v := props[key].(type) {
	case []any:
		var mask LayerMask
		for _, item := range v {
			f, ok := toFloat(item)
			if !ok {
				return fallback
			}
			mask |= LayerBit(int(f))
		}
		return mask
	case []int:
		var mask LayerMask
		for _, layer := range v {
			mask |= LayerBit(layer)
		}
		return mask
	case nil:
		return fallback
	default:
		if f, ok := toFloat(v); ok {
			return LayerBit(int(f))
		}
	}
	return fallback
}

// ValueFloat converts a single applier value.
func ValueFloat(v any) (float32, bool) {
	return toFloat(v)
}

func toFloat(v any) (float32, bool) {
	switch n := v.(type) {
	case float64:
		return float32(n), true
	case float32:
		return n, true
	case int:
		return float32(n), true
	case int64:
		return float32(n), true
	case uint64:
		return float32(n), true
	}
	return 0, false
}
