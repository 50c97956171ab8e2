package fhir

// Safe accessors for decoded FHIR JSON. Inbound documents come from other
// systems; a missing or wrong-typed field degrades to the zero value instead
// of failing the whole import.

// Str returns m[key] as a string, or "" when absent or not a string.
func Str(m map[string]interface{}, key string) string {
	s, _ := m[key].(string)
	return s
}

// Slice returns m[key] as a generic slice, or nil.
func Slice(m map[string]interface{}, key string) []interface{} {
	s, _ := m[key].([]interface{})
	return s
}

// Map returns m[key] as a map, or nil.
func Map(m map[string]interface{}, key string) map[string]interface{} {
	v, _ := m[key].(map[string]interface{})
	return v
}

// FirstMap returns the first element of the array at m[key] that is a map,
// or nil when the array is absent or empty.
func FirstMap(m map[string]interface{}, key string) map[string]interface{} {
	for _, v := range Slice(m, key) {
		if e, ok := v.(map[string]interface{}); ok {
			return e
		}
	}
	return nil
}

// ConceptText extracts the free text of a CodeableConcept at m[key].
func ConceptText(m map[string]interface{}, key string) string {
	return Str(Map(m, key), "text")
}
