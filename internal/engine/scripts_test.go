package engine

import "testing"

// Mock script for testing
type MockScript struct {
	BaseComponent
	Speed  float32
	Health int
}

func mockFactory(props map[string]any) Component {
	script := &MockScript{}
	if v, ok := props["speed"].(float64); ok {
		script.Speed = float32(v)
	}
	if v, ok := props["health"].(float64); ok {
		script.Health = int(v)
	}
	return script
}

func mockSerializer(c Component) map[string]any {
	s, ok := c.(*MockScript)
	if !ok {
		return nil
	}
	return map[string]any{
		"speed":  s.Speed,
		"health": s.Health,
	}
}

func mockApplier(c Component, propName string, value any) bool {
	s, ok := c.(*MockScript)
	if !ok {
		return false
	}
	switch propName {
	case "speed":
		if v, ok := value.(float64); ok {
			s.Speed = float32(v)
			return true
		}
	case "health":
		if v, ok := value.(float64); ok {
			s.Health = int(v)
			return true
		}
	}
	return false
}

func TestRegisterScript(t *testing.T) {
	// Clear registry for clean test
	scriptRegistry = map[string]scriptEntry{}

	RegisterScript("MockScript", mockFactory, mockSerializer)

	if _, exists := scriptRegistry["MockScript"]; !exists {
		t.Error("Script not registered")
	}
}

func TestRegisterScriptDuplicate(t *testing.T) {
	// Clear registry for clean test
	scriptRegistry = map[string]scriptEntry{}

	RegisterScript("Duplicate", mockFactory, mockSerializer)

	// Should panic on duplicate registration
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic on duplicate registration")
		}
	}()

	RegisterScript("Duplicate", mockFactory, mockSerializer)
}

func TestCreateScript(t *testing.T) {
	// Clear registry for clean test
	scriptRegistry = map[string]scriptEntry{}

	RegisterScript("MockScript", mockFactory, mockSerializer)

	props := map[string]any{
		"speed":  float64(10.5),
		"health": float64(100),
	}

	component := CreateScript("MockScript", props)
	if component == nil {
		t.Fatal("CreateScript returned nil")
	}

	script, ok := component.(*MockScript)
	if !ok {
		t.Fatal("CreateScript didn't return MockScript")
	}

	if script.Speed != 10.5 {
		t.Errorf("Expected Speed 10.5, got %f", script.Speed)
	}

	if script.Health != 100 {
		t.Errorf("Expected Health 100, got %d", script.Health)
	}
}

func TestCreateScriptNotFound(t *testing.T) {
	// Clear registry for clean test
	scriptRegistry = map[string]scriptEntry{}

	component := CreateScript("DoesNotExist", nil)
	if component != nil {
		t.Error("CreateScript should return nil for non-existent script")
	}
}

func TestSerializeScript(t *testing.T) {
	// Clear registry for clean test
	scriptRegistry = map[string]scriptEntry{}

	RegisterScript("MockScript", mockFactory, mockSerializer)

	script := &MockScript{
		Speed:  15.0,
		Health: 200,
	}

	name, props, ok := SerializeScript(script)
	if !ok {
		t.Fatal("SerializeScript failed")
	}

	if name != "MockScript" {
		t.Errorf("Expected name 'MockScript', got '%s'", name)
	}

	if props["speed"] != float32(15.0) {
		t.Errorf("Expected speed 15.0, got %v", props["speed"])
	}

	if props["health"] != 200 {
		t.Errorf("Expected health 200, got %v", props["health"])
	}
}

func TestGetRegisteredScripts(t *testing.T) {
	// Clear registry for clean test
	scriptRegistry = map[string]scriptEntry{}

	RegisterScript("ScriptA", mockFactory, mockSerializer)
	RegisterScript("ScriptB", mockFactory, mockSerializer)
	RegisterScript("ScriptC", mockFactory, mockSerializer)

	scripts := GetRegisteredScripts()

	if len(scripts) != 3 {
		t.Errorf("Expected 3 scripts, got %d", len(scripts))
	}

	// Verify sorted order
	if scripts[0] != "ScriptA" || scripts[1] != "ScriptB" || scripts[2] != "ScriptC" {
		t.Errorf("Scripts not in sorted order: %v", scripts)
	}
}

func TestApplyScriptProperty(t *testing.T) {
	// Clear registry for clean test
	scriptRegistry = map[string]scriptEntry{}

	RegisterScriptWithApplier("MockScript", mockFactory, mockSerializer, mockApplier)

	script := &MockScript{Speed: 5.0, Health: 50}

	// Apply speed property
	ok := ApplyScriptProperty(script, "speed", float64(20.0))
	if !ok {
		t.Error("ApplyScriptProperty should return true for valid property")
	}

	if script.Speed != 20.0 {
		t.Errorf("Expected Speed 20.0 after apply, got %f", script.Speed)
	}

	// Apply health property
	ok = ApplyScriptProperty(script, "health", float64(150))
	if !ok {
		t.Error("ApplyScriptProperty should return true for valid property")
	}

	if script.Health != 150 {
		t.Errorf("Expected Health 150 after apply, got %d", script.Health)
	}

	// Try invalid property
	ok = ApplyScriptProperty(script, "nonexistent", float64(99))
	if ok {
		t.Error("ApplyScriptProperty should return false for invalid property")
	}
}

func TestApplyScriptProperties(t *testing.T) {
	scriptRegistry = map[string]scriptEntry{}

	RegisterScriptWithApplier("MockScript", mockFactory, mockSerializer, mockApplier)

	script := &MockScript{}
	applied := ApplyScriptProperties(script, map[string]any{
		"speed":   float64(3),
		"health":  float64(7),
		"unknown": float64(1),
	})

	if applied != 2 {
		t.Errorf("Expected 2 applied, got %d", applied)
	}
	if script.Speed != 3 || script.Health != 7 {
		t.Errorf("Unexpected values: speed %f health %d", script.Speed, script.Health)
	}
}

func TestPropHelpers(t *testing.T) {
	props := map[string]any{
		"f64":    float64(1.5),
		"int":    4,
		"bool":   true,
		"str":    "pivot",
		"vec":    []any{1, 2.5, float32(3)},
		"badvec": []any{1, "x", 3},
	}

	if v := PropFloat(props, "f64", 0); v != 1.5 {
		t.Errorf("PropFloat: expected 1.5, got %f", v)
	}
	if v := PropFloat(props, "int", 0); v != 4 {
		t.Errorf("PropFloat should accept ints, got %f", v)
	}
	if v := PropFloat(props, "str", 9); v != 9 {
		t.Errorf("PropFloat should fall back on strings, got %f", v)
	}
	if v := PropInt(props, "f64", 0); v != 1 {
		t.Errorf("PropInt: expected 1, got %d", v)
	}
	if !PropBool(props, "bool", false) || PropBool(props, "missing", false) {
		t.Error("PropBool mismatch")
	}
	if v := PropString(props, "str", ""); v != "pivot" {
		t.Errorf("PropString: expected pivot, got %q", v)
	}
	if v := PropVector3(props, "vec", [3]float32{}); v != [3]float32{1, 2.5, 3} {
		t.Errorf("PropVector3: got %v", v)
	}
	fallback := [3]float32{9, 9, 9}
	if v := PropVector3(props, "badvec", fallback); v != fallback {
		t.Errorf("PropVector3 should fall back on bad elements, got %v", v)
	}
}

func TestPropLayerMask(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  LayerMask
	}{
		{"list", []any{1, 3}, LayerBit(1) | LayerBit(3)},
		{"int slice", []int{0, 2}, LayerBit(0) | LayerBit(2)},
		{"single index", float64(5), LayerBit(5)},
		{"missing", nil, AllLayers},
		{"bad list", []any{"a"}, AllLayers},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			props := map[string]any{}
			if tt.value != nil {
				props["mask"] = tt.value
			}
			if got := PropLayerMask(props, "mask", AllLayers); got != tt.want {
				t.Errorf("Expected %b, got %b", tt.want, got)
			}
		})
	}
}

func TestLayerMaskRoundTrip(t *testing.T) {
	mask := LayerBit(1) | LayerBit(4) | LayerBit(31)
	layers := mask.Layers()
	if len(layers) != 3 || layers[0] != 1 || layers[1] != 4 || layers[2] != 31 {
		t.Fatalf("Unexpected layers %v", layers)
	}
	if got := PropLayerMask(map[string]any{"m": layers}, "m", 0); got != mask {
		t.Errorf("Expected %b after round trip, got %b", mask, got)
	}
	if LayerBit(-1) != 0 || LayerBit(32) != 0 {
		t.Error("Out of range layers should map to an empty mask")
	}
	if !AllLayers.Contains(17) || LayerBit(2).Contains(3) {
		t.Error("Contains mismatch")
	}
}
