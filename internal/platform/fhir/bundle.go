package fhir

import (
	"encoding/json"
)

// Bundle represents a FHIR Bundle resource.
type Bundle struct {
	ResourceType string        `json:"resourceType"`
	ID           string        `json:"id,omitempty"`
	Type         string        `json:"type"`
	Entry        []BundleEntry `json:"entry,omitempty"`
}

type BundleEntry struct {
	FullURL  string          `json:"fullUrl,omitempty"`
	Resource json.RawMessage `json:"resource,omitempty"`
}

// NewCollectionBundle creates a collection Bundle from pre-built entries.
// Entry order is preserved exactly as given: composers put the subject or
// primary resource first and downstream consumers rely on that.
func NewCollectionBundle(entries []BundleEntry) *Bundle {
	return &Bundle{
		ResourceType: "Bundle",
		Type:         "collection",
		Entry:        entries,
	}
}

// NewEntry wraps a resource into a Bundle entry with the synthetic locator
// "urn:uuid:<localID>". The localID reuses the deterministic resource id, so
// composing the same records twice yields byte-identical output.
func NewEntry(localID string, resource interface{}) BundleEntry {
	raw, _ := json.Marshal(resource)
	return BundleEntry{
		FullURL:  "urn:uuid:" + localID,
		Resource: raw,
	}
}

// DecodeBundle unmarshals raw JSON into a generic bundle shape for the
// inbound parsers. Entries whose resource is absent are kept as nil maps so
// positional iteration still works.
func DecodeBundle(data []byte) (map[string]interface{}, error) {
	var bundle map[string]interface{}
	if err := json.Unmarshal(data, &bundle); err != nil {
		return nil, err
	}
	return bundle, nil
}

// EntryResources extracts the resource maps from a decoded Bundle, in entry
// order. Malformed entries are skipped rather than reported: inbound data is
// parsed opportunistically.
func EntryResources(bundle map[string]interface{}) []map[string]interface{} {
	entries, ok := bundle["entry"].([]interface{})
	if !ok {
		return nil
	}
	var resources []map[string]interface{}
	for _, e := range entries {
		entry, ok := e.(map[string]interface{})
		if !ok {
			continue
		}
		if res, ok := entry["resource"].(map[string]interface{}); ok {
			resources = append(resources, res)
		}
	}
	return resources
}

// ResourceType returns the resourceType discriminator of a decoded resource,
// or "" when absent.
func ResourceType(resource map[string]interface{}) string {
	rt, _ := resource["resourceType"].(string)
	return rt
}
