package lysa

import (
	"strconv"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	// AppURI is the Lysa virtual filesystem scheme used for include and
	// resource references.
	AppURI = "app://"

	// ResourcesID names the shared resource record that every mesh entry in
	// a manifest points back at.
	ResourcesID = "resources"

	// lightEnergyDivisor rescales host light energy to Lysa units: a 10 W
	// host light renders at intensity 1.0. Calibrated against the Lysa
	// renderer, not derivable from either tool.
	lightEnergyDivisor = 10.0
)

// lightRotationFixDeg is composed with a light's Euler rotation before
// conversion; the two tools disagree on the rest direction of lights by a
// quarter turn about X.
const lightRotationFixDeg = -90.0

// formatFloat renders f at full round-trip precision; the engine loader
// splits on commas and parses components positionally.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// ConvertVector formats a position in engine axis order: x, z, -y.
func ConvertVector(v mgl64.Vec3) string {
	return formatFloat(v.X()) + "," + formatFloat(v.Z()) + "," + formatFloat(-v.Y())
}

// ConvertScale formats a scale in engine axis order: x, z, y. No sign flip;
// scales stay positive under the axis remap.
func ConvertScale(v mgl64.Vec3) string {
	return formatFloat(v.X()) + "," + formatFloat(v.Z()) + "," + formatFloat(v.Y())
}

// ConvertQuat formats a quaternion in engine axis order: x, z, -y, w.
func ConvertQuat(q mgl64.Quat) string {
	return formatFloat(q.X()) + "," + formatFloat(q.Z()) + "," + formatFloat(-q.Y()) + "," + formatFloat(q.W)
}

// eulerToQuat converts an XYZ-order Euler rotation (radians, x applied
// first) to a quaternion.
func eulerToQuat(e mgl64.Vec3) mgl64.Quat {
	qx := mgl64.QuatRotate(e.X(), mgl64.Vec3{1, 0, 0})
	qy := mgl64.QuatRotate(e.Y(), mgl64.Vec3{0, 1, 0})
	qz := mgl64.QuatRotate(e.Z(), mgl64.Vec3{0, 0, 1})
	return qz.Mul(qy).Mul(qx)
}

// lightQuat composes a light's Euler rotation with the fixed X correction.
func lightQuat(euler mgl64.Vec3) mgl64.Quat {
	fix := mgl64.QuatRotate(mgl64.DegToRad(lightRotationFixDeg), mgl64.Vec3{1, 0, 0})
	return eulerToQuat(euler).Mul(fix)
}
