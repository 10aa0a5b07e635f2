package lysa

import (
	"bytes"
	"encoding/json"
)

// Properties is an ordered name/value mapping. Set overwrites in place so
// the first insertion fixes a key's position, matching the host tool's
// authoring-order semantics; marshaling emits a JSON object in that order.
type Properties []Property

// Set stores value under name, overwriting an existing entry in place.
func (p *Properties) Set(name, value string) {
	for i := range *p {
		if (*p)[i].Name == name {
			(*p)[i].Value = value
			return
		}
	}
	*p = append(*p, Property{Name: name, Value: value})
}

// Get returns the value stored under name.
func (p Properties) Get(name string) (string, bool) {
	for _, pr := range p {
		if pr.Name == name {
			return pr.Value, true
		}
	}
	return "", false
}

// MarshalJSON emits the mapping as a JSON object preserving insertion order.
func (p Properties) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, pr := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(pr.Name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(pr.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ChildRef is the mesh-proxy reference inserted between a mesh object and
// its children. ID must match a ResourceEntry id in the manifest for the
// loader to resolve it.
type ChildRef struct {
	ID        string          `json:"id"`
	Duplicate string          `json:"duplicate"`
	Children  []*NodeDocument `json:"children,omitempty"`
}

// NodeDocument is the per-object record in the scene document.
type NodeDocument struct {
	ID         string          `json:"id"`
	Class      string          `json:"class,omitempty"`
	Properties Properties      `json:"properties"`
	Child      *ChildRef       `json:"child,omitempty"`
	Children   []*NodeDocument `json:"children,omitempty"`
}

// EntryType enumerates resource manifest entry types.
type EntryType string

const (
	EntryNode     EntryType = "node"
	EntryMesh     EntryType = "mesh"
	EntryResource EntryType = "resource"
)

// ResourceEntry locates one entry of the resource manifest: either a
// resource URI (the self record) or a path inside the exported binary.
type ResourceEntry struct {
	ID       string    `json:"id"`
	Type     EntryType `json:"type"`
	Resource string    `json:"resource"`
	Path     string    `json:"path,omitempty"`
}

// SceneDocument is the top-level scene artifact: include URIs plus the
// root node documents.
type SceneDocument struct {
	Includes []string        `json:"includes"`
	Nodes    []*NodeDocument `json:"nodes"`
}

// ResourceManifest is the top-level resource artifact. The first entry is
// always the manifest's own resource record.
type ResourceManifest struct {
	Nodes []ResourceEntry `json:"nodes"`
}
