package lysa

import "encoding/json"

// Renderer renders an assembled document to bytes.
type Renderer interface {
	Render(doc any) ([]byte, error)
}

// JSONRenderer emits two-space indented JSON, the layout the Lysa loader
// reads. Output is deterministic for a given document: property and child
// ordering is fixed at assembly time, never map iteration.
type JSONRenderer struct{}

// Render marshals the document.
func (JSONRenderer) Render(doc any) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}
