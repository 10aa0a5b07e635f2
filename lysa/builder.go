package lysa

import "github.com/go-gl/mathgl/mgl64"

// SceneBuilder provides a fluent API for constructing scene-graph
// snapshots in code, for host adapters and tests. Object-creating calls
// push onto the current parent; End pops back up.
type SceneBuilder struct {
	roots   []*SceneObject
	stack   []*SceneObject
	current *SceneObject
	err     error
}

// NewSceneBuilder creates an empty builder.
func NewSceneBuilder() *SceneBuilder {
	return &SceneBuilder{}
}

// Build returns the assembled roots, or the first construction error.
func (b *SceneBuilder) Build() ([]*SceneObject, error) {
	if b.err != nil {
		return nil, b.err
	}
	if err := Validate(b.roots); err != nil {
		return nil, err
	}
	return b.roots, nil
}

// Group begins a grouping object.
func (b *SceneBuilder) Group(name string) *SceneBuilder {
	return b.Object(name, KindGroup)
}

// Mesh begins a mesh object.
func (b *SceneBuilder) Mesh(name string) *SceneBuilder {
	return b.Object(name, KindMesh)
}

// Light begins a light object with the given light data.
func (b *SceneBuilder) Light(name string, data LightData) *SceneBuilder {
	b.Object(name, KindLight)
	if b.current != nil {
		d := data
		b.current.Light = &d
	}
	return b
}

// Object begins an object of an arbitrary kind.
func (b *SceneBuilder) Object(name string, kind ObjectKind) *SceneBuilder {
	obj := &SceneObject{
		Name:    name,
		Kind:    kind,
		Visible: true,
		Transform: Transform{
			Rotation: mgl64.QuatIdent(),
			Scale:    mgl64.Vec3{1, 1, 1},
		},
	}
	if b.current == nil {
		b.roots = append(b.roots, obj)
	} else {
		b.current.Children = append(b.current.Children, obj)
	}
	b.stack = append(b.stack, obj)
	b.current = obj
	return b
}

// End closes the current object and returns to its parent.
func (b *SceneBuilder) End() *SceneBuilder {
	if len(b.stack) > 0 {
		b.stack = b.stack[:len(b.stack)-1]
	}
	if len(b.stack) > 0 {
		b.current = b.stack[len(b.stack)-1]
	} else {
		b.current = nil
	}
	return b
}

// At sets both the local-matrix translation and the authored location of
// the current object.
func (b *SceneBuilder) At(x, y, z float64) *SceneBuilder {
	if b.current != nil {
		b.current.Transform.Translation = mgl64.Vec3{x, y, z}
		b.current.Transform.Location = mgl64.Vec3{x, y, z}
	}
	return b
}

// Translated overrides the local-matrix translation only, for objects
// whose matrix diverges from the authored location channel.
func (b *SceneBuilder) Translated(x, y, z float64) *SceneBuilder {
	if b.current != nil {
		b.current.Transform.Translation = mgl64.Vec3{x, y, z}
	}
	return b
}

// Rotated sets a quaternion rotation on the current object.
func (b *SceneBuilder) Rotated(q mgl64.Quat) *SceneBuilder {
	if b.current != nil {
		b.current.Transform.Rotation = q
		b.current.Transform.Mode = RotationQuaternion
	}
	return b
}

// Euler sets an XYZ Euler rotation (radians) on the current object and
// makes it the authoritative rotation channel.
func (b *SceneBuilder) Euler(x, y, z float64) *SceneBuilder {
	if b.current != nil {
		b.current.Transform.Euler = mgl64.Vec3{x, y, z}
		b.current.Transform.Mode = RotationEuler
	}
	return b
}

// Scaled sets the scale of the current object.
func (b *SceneBuilder) Scaled(x, y, z float64) *SceneBuilder {
	if b.current != nil {
		b.current.Transform.Scale = mgl64.Vec3{x, y, z}
	}
	return b
}

// Hidden marks the current object as hidden.
func (b *SceneBuilder) Hidden() *SceneBuilder {
	if b.current != nil {
		b.current.Visible = false
	}
	return b
}

// Class sets the authored class name of the current object.
func (b *SceneBuilder) Class(name string) *SceneBuilder {
	b.meta().ClassName = name
	return b
}

// ClassWithDefaults sets the class name and appends the host panel's
// convenience properties for it (physics bodies get shape and layer).
func (b *SceneBuilder) ClassWithDefaults(name string) *SceneBuilder {
	b.Class(name)
	for _, p := range ClassDefaultProperties(name) {
		b.Prop(p.Name, p.Value)
	}
	return b
}

// CustomClass sets the custom class name, which wins over Class.
func (b *SceneBuilder) CustomClass(name string) *SceneBuilder {
	b.meta().CustomClassName = name
	return b
}

// Prop appends an authored property to the current object.
func (b *SceneBuilder) Prop(name, value string) *SceneBuilder {
	if name == "" {
		if b.err == nil {
			obj := ""
			if b.current != nil {
				obj = b.current.Name
			}
			b.err = &InvalidPropertyError{Object: obj}
		}
		return b
	}
	m := b.meta()
	m.Properties = append(m.Properties, Property{Name: name, Value: value})
	return b
}

func (b *SceneBuilder) meta() *Metadata {
	if b.current == nil {
		return &Metadata{}
	}
	if b.current.Meta == nil {
		b.current.Meta = &Metadata{}
	}
	return b.current.Meta
}

// ClassDefaultProperties returns the properties the host panel auto-adds
// when a class is selected.
func ClassDefaultProperties(class string) []Property {
	switch class {
	case "StaticBody", "RigidBody":
		return []Property{
			{Name: "shape", Value: "MeshShape"},
			{Name: "layer", Value: "1"},
		}
	default:
		return nil
	}
}
