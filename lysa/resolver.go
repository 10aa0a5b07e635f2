package lysa

import "strings"

// SelfToken in an authored property value is replaced by the object's own
// name before export.
const SelfToken = "$$"

// classNameDefault is the host panel's default class selection; it means
// "let the engine pick" and is never emitted.
const classNameDefault = "Node"

// InvalidPropertyError reports a malformed authored property.
type InvalidPropertyError struct {
	Object string
	Name   string
}

func (e *InvalidPropertyError) Error() string {
	return "invalid custom property on " + e.Object + ": empty name"
}

// ResolveClass returns the class name for obj, or "" when the engine
// default applies. A custom class name wins over the class selection.
func ResolveClass(obj *SceneObject) string {
	if obj.Meta == nil {
		return ""
	}
	if obj.Meta.CustomClassName != "" {
		return obj.Meta.CustomClassName
	}
	if obj.Meta.ClassName != "" && obj.Meta.ClassName != classNameDefault {
		return obj.Meta.ClassName
	}
	return ""
}

// ResolveProperties builds the ordered property map for obj: authored
// properties first (with SelfToken expanded), then the transform keys.
// The transform keys are set last so they win if a user authored a
// property named "position", "rotation" or "scale".
func ResolveProperties(obj *SceneObject) (Properties, error) {
	var props Properties
	if obj.Meta != nil {
		for _, p := range obj.Meta.Properties {
			if p.Name == "" {
				return nil, &InvalidPropertyError{Object: obj.Name, Name: p.Name}
			}
			props.Set(p.Name, strings.ReplaceAll(p.Value, SelfToken, obj.Name))
		}
	}
	props.Set("position", ConvertVector(obj.Transform.Translation))
	props.Set("rotation", ConvertQuat(obj.RotationQuat()))
	props.Set("scale", ConvertScale(obj.Transform.Scale))
	if !obj.Visible {
		props.Set("visible", "false")
	}
	return props, nil
}

// resolveLight builds the class and property block for a light object.
// The block fully replaces the generic properties: lights carry no scale
// and their position comes from the authored location channel, not the
// local-matrix translation.
func resolveLight(obj *SceneObject) (string, Properties) {
	l := obj.Light
	var props Properties
	props.Set("color",
		formatFloat(l.Color.X())+","+formatFloat(l.Color.Y())+","+formatFloat(l.Color.Z())+","+
			formatFloat(l.Energy/lightEnergyDivisor))
	props.Set("position", ConvertVector(obj.Transform.Location))
	// Lights always rotate from the Euler channel in the host tool.
	props.Set("rotation", ConvertQuat(lightQuat(obj.Transform.Euler)))
	if l.CastShadows {
		props.Set("cast_shadows", "true")
	}
	var class string
	switch l.Kind {
	case LightPoint:
		class = "OmniLight"
		if l.UseCutoff {
			props.Set("range", formatFloat(l.Cutoff))
		}
	case LightSun:
		class = "DirectionalLight"
	case LightSpot:
		class = "SpotLight"
		props.Set("fov", formatFloat(l.SpotAngle))
	}
	return class, props
}
