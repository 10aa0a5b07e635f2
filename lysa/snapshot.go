package lysa

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl64"
)

// Snapshot is the JSON hand-over format for scene graphs: the host tool
// dumps its object hierarchy once per export and this module reads it
// back. It is the file-based form of the read-only scene source.
type Snapshot struct {
	Objects []SnapshotObject `json:"objects"`
}

// SnapshotObject is the wire form of one SceneObject.
type SnapshotObject struct {
	Name     string    `json:"name"`
	Kind     string    `json:"kind"` // group | mesh | light | other
	Hidden   bool      `json:"hidden,omitempty"`
	Position []float64 `json:"position,omitempty"`
	// Location is the authored location channel; defaults to Position.
	Location []float64 `json:"location,omitempty"`
	// Rotation is a quaternion [x,y,z,w] or an XYZ Euler [x,y,z] in
	// radians; the length picks the mode.
	Rotation []float64 `json:"rotation,omitempty"`
	// Euler carries the Euler channel when Rotation is a quaternion;
	// lights always rotate from this channel.
	Euler       []float64        `json:"euler,omitempty"`
	Scale       []float64        `json:"scale,omitempty"`
	Light       *SnapshotLight   `json:"light,omitempty"`
	Class       string           `json:"class,omitempty"`
	CustomClass string           `json:"custom_class,omitempty"`
	Properties  []Property       `json:"properties,omitempty"`
	Children    []SnapshotObject `json:"children,omitempty"`
}

// SnapshotLight is the wire form of LightData.
type SnapshotLight struct {
	Type        string    `json:"type"` // point | sun | spot
	Color       []float64 `json:"color,omitempty"`
	Energy      float64   `json:"energy"`
	CastShadows bool      `json:"cast_shadows,omitempty"`
	// Range is the custom cutoff distance; nil means none set.
	Range     *float64 `json:"range,omitempty"`
	SpotAngle float64  `json:"spot_angle,omitempty"`
}

// LoadSnapshot reads a scene snapshot file and builds the object tree.
func LoadSnapshot(path string) ([]*SceneObject, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	roots, err := ParseSnapshot(data)
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", path, err)
	}
	return roots, nil
}

// ParseSnapshot decodes a snapshot and validates the resulting tree.
func ParseSnapshot(data []byte) ([]*SceneObject, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	roots := make([]*SceneObject, 0, len(snap.Objects))
	for i := range snap.Objects {
		obj, err := buildObject(&snap.Objects[i])
		if err != nil {
			return nil, err
		}
		roots = append(roots, obj)
	}
	if err := Validate(roots); err != nil {
		return nil, err
	}
	return roots, nil
}

func buildObject(so *SnapshotObject) (*SceneObject, error) {
	kind, err := parseKind(so.Kind)
	if err != nil {
		return nil, fmt.Errorf("object %q: %w", so.Name, err)
	}
	obj := &SceneObject{
		Name:    so.Name,
		Kind:    kind,
		Visible: !so.Hidden,
	}
	obj.Transform.Translation = vec3(so.Position, mgl64.Vec3{})
	obj.Transform.Location = vec3(so.Location, obj.Transform.Translation)
	obj.Transform.Scale = vec3(so.Scale, mgl64.Vec3{1, 1, 1})
	obj.Transform.Rotation = mgl64.QuatIdent()
	switch len(so.Rotation) {
	case 0:
	case 3:
		obj.Transform.Euler = mgl64.Vec3{so.Rotation[0], so.Rotation[1], so.Rotation[2]}
		obj.Transform.Mode = RotationEuler
	case 4:
		obj.Transform.Rotation = mgl64.Quat{
			W: so.Rotation[3],
			V: mgl64.Vec3{so.Rotation[0], so.Rotation[1], so.Rotation[2]},
		}
	default:
		return nil, fmt.Errorf("object %q: rotation needs 3 or 4 components, got %d", so.Name, len(so.Rotation))
	}
	if len(so.Euler) == 3 {
		obj.Transform.Euler = mgl64.Vec3{so.Euler[0], so.Euler[1], so.Euler[2]}
	}
	if so.Light != nil {
		light, err := buildLight(so.Light)
		if err != nil {
			return nil, fmt.Errorf("object %q: %w", so.Name, err)
		}
		obj.Light = light
	}
	if so.Class != "" || so.CustomClass != "" || len(so.Properties) > 0 {
		obj.Meta = &Metadata{
			ClassName:       so.Class,
			CustomClassName: so.CustomClass,
			Properties:      so.Properties,
		}
	}
	for i := range so.Children {
		child, err := buildObject(&so.Children[i])
		if err != nil {
			return nil, err
		}
		obj.Children = append(obj.Children, child)
	}
	return obj, nil
}

func buildLight(sl *SnapshotLight) (*LightData, error) {
	var kind LightKind
	switch sl.Type {
	case "point":
		kind = LightPoint
	case "sun":
		kind = LightSun
	case "spot":
		kind = LightSpot
	default:
		return nil, fmt.Errorf("unknown light type %q", sl.Type)
	}
	light := &LightData{
		Kind:        kind,
		Color:       vec3(sl.Color, mgl64.Vec3{1, 1, 1}),
		Energy:      sl.Energy,
		CastShadows: sl.CastShadows,
		SpotAngle:   sl.SpotAngle,
	}
	if sl.Range != nil {
		light.UseCutoff = true
		light.Cutoff = *sl.Range
	}
	return light, nil
}

func parseKind(s string) (ObjectKind, error) {
	switch s {
	case "group", "":
		return KindGroup, nil
	case "mesh":
		return KindMesh, nil
	case "light":
		return KindLight, nil
	case "other":
		return KindOther, nil
	default:
		return KindOther, fmt.Errorf("unknown object kind %q", s)
	}
}

func vec3(v []float64, def mgl64.Vec3) mgl64.Vec3 {
	if len(v) != 3 {
		return def
	}
	return mgl64.Vec3{v[0], v[1], v[2]}
}
