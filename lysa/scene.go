// Package lysa converts a host scene-graph snapshot into the JSON scene
// description and resource manifest consumed by the Lysa engine loader.
package lysa

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// ObjectKind enumerates the kinds of objects in the host hierarchy.
type ObjectKind int

const (
	KindGroup ObjectKind = iota // empty/grouping object
	KindMesh                    // carries mesh data exported to the binary bundle
	KindLight                   // carries light data
	KindOther                   // anything else (cameras, curves, ...)
)

func (k ObjectKind) String() string {
	switch k {
	case KindGroup:
		return "group"
	case KindMesh:
		return "mesh"
	case KindLight:
		return "light"
	case KindOther:
		return "other"
	default:
		return "unknown"
	}
}

// RotationMode selects which rotation channel of a Transform is authoritative.
type RotationMode int

const (
	RotationQuaternion RotationMode = iota
	RotationEuler
)

// Transform is the local transform of a SceneObject.
//
// Translation is the translation component of the object's local matrix;
// Location is the directly authored location channel. The two usually agree,
// but light nodes are exported from Location, matching the host tool.
type Transform struct {
	Translation mgl64.Vec3
	Location    mgl64.Vec3
	Rotation    mgl64.Quat
	Euler       mgl64.Vec3 // radians, x applied first
	Mode        RotationMode
	Scale       mgl64.Vec3
}

// LightKind enumerates the host light subtypes.
type LightKind int

const (
	LightPoint LightKind = iota
	LightSun
	LightSpot
)

func (k LightKind) String() string {
	switch k {
	case LightPoint:
		return "point"
	case LightSun:
		return "sun"
	case LightSpot:
		return "spot"
	default:
		return "unknown"
	}
}

// LightData holds the light sub-attributes of a light-kind SceneObject.
type LightData struct {
	Kind        LightKind
	Color       mgl64.Vec3 // RGB, 0-1
	Energy      float64
	CastShadows bool
	UseCutoff   bool    // a custom cutoff distance is set
	Cutoff      float64 // custom cutoff distance, meters
	SpotAngle   float64 // spot cone angle, radians
}

// Property is one authored name/value pair. Values are always strings; the
// engine loader parses them on its side.
type Property struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Metadata is the authored metadata bag attached to an object by the host
// tool's editing panel.
type Metadata struct {
	ClassName       string
	CustomClassName string
	Properties      []Property
}

// SceneObject is one node of the host scene graph. The export core treats
// the whole tree as a read-only snapshot and never mutates it.
type SceneObject struct {
	Name      string
	Kind      ObjectKind
	Transform Transform
	Visible   bool
	Children  []*SceneObject
	Light     *LightData
	Meta      *Metadata
}

// RotationQuat returns the object's rotation as a quaternion, converting
// from the Euler channel when that mode is active.
func (o *SceneObject) RotationQuat() mgl64.Quat {
	if o.Transform.Mode == RotationEuler {
		return eulerToQuat(o.Transform.Euler)
	}
	return o.Transform.Rotation
}

// ValidationDetail pinpoints one structural issue in a scene graph.
type ValidationDetail struct {
	Path    string
	Field   string
	Message string
}

// ValidationError aggregates all structural issues found in a scene graph.
type ValidationError struct {
	Issues  []string
	Details []ValidationDetail
}

func (e *ValidationError) Error() string {
	return "invalid scene graph: " + strings.Join(e.Issues, "; ")
}

// Validate checks the structural invariants the walker relies on: non-empty
// names, unique names among siblings, light data present exactly on light
// objects, and well-formed authored properties.
func Validate(roots []*SceneObject) error {
	v := &validator{}
	v.visitSiblings("", roots)
	if len(v.issues) > 0 {
		return &ValidationError{Issues: v.issues, Details: v.details}
	}
	return nil
}

type validator struct {
	issues  []string
	details []ValidationDetail
}

func (v *validator) add(path, field, message string) {
	where := path
	if where == "" {
		where = "(root)"
	}
	v.issues = append(v.issues, where+": "+message)
	v.details = append(v.details, ValidationDetail{Path: path, Field: field, Message: message})
}

func (v *validator) visitSiblings(parentPath string, objects []*SceneObject) {
	seen := make(map[string]struct{}, len(objects))
	for _, obj := range objects {
		path := obj.Name
		if parentPath != "" {
			path = parentPath + "/" + obj.Name
		}
		if obj.Name == "" {
			v.add(parentPath, "name", "object missing name")
		} else if _, dup := seen[obj.Name]; dup {
			v.add(parentPath, "name", fmt.Sprintf("duplicate sibling name %q", obj.Name))
		} else {
			seen[obj.Name] = struct{}{}
		}
		if obj.Kind == KindLight && obj.Light == nil {
			v.add(path, "light", "light object missing light data")
		}
		if obj.Kind != KindLight && obj.Light != nil {
			v.add(path, "light", "light data on non-light object")
		}
		if obj.Meta != nil {
			for i, p := range obj.Meta.Properties {
				if p.Name == "" {
					v.add(path, "properties", fmt.Sprintf("invalid custom property %d: empty name", i))
				}
			}
		}
		v.visitSiblings(path, obj.Children)
	}
}
