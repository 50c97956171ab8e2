package fhir

import "testing"

func TestValueAccessors(t *testing.T) {
	m := map[string]interface{}{
		"name":    "texto",
		"number":  3.0,
		"nested":  map[string]interface{}{"inner": "v"},
		"list":    []interface{}{"a", map[string]interface{}{"k": "first"}, map[string]interface{}{"k": "second"}},
		"concept": map[string]interface{}{"text": "Dolor de cabeza"},
	}

	if got := Str(m, "name"); got != "texto" {
		t.Errorf("Str = %q", got)
	}
	if got := Str(m, "number"); got != "" {
		t.Errorf("Str on non-string = %q, want empty", got)
	}
	if got := Str(m, "missing"); got != "" {
		t.Errorf("Str on missing key = %q, want empty", got)
	}
	if got := Str(nil, "name"); got != "" {
		t.Errorf("Str on nil map = %q, want empty", got)
	}

	if got := Map(m, "nested"); got == nil || got["inner"] != "v" {
		t.Errorf("Map = %v", got)
	}
	if got := Map(m, "name"); got != nil {
		t.Errorf("Map on non-map = %v, want nil", got)
	}

	if got := Slice(m, "list"); len(got) != 3 {
		t.Errorf("Slice len = %d", len(got))
	}

	// FirstMap skips non-map elements.
	if got := FirstMap(m, "list"); got == nil || got["k"] != "first" {
		t.Errorf("FirstMap = %v", got)
	}
	if got := FirstMap(m, "missing"); got != nil {
		t.Errorf("FirstMap on missing key = %v", got)
	}

	if got := ConceptText(m, "concept"); got != "Dolor de cabeza" {
		t.Errorf("ConceptText = %q", got)
	}
	if got := ConceptText(m, "missing"); got != "" {
		t.Errorf("ConceptText on missing key = %q", got)
	}
}
