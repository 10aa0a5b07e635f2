package lysa

import (
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func splitFloats(t *testing.T, s string) []float64 {
	t.Helper()
	parts := strings.Split(s, ",")
	out := make([]float64, len(parts))
	for i, p := range parts {
		f, err := strconv.ParseFloat(p, 64)
		if err != nil {
			t.Fatalf("component %d of %q: %v", i, s, err)
		}
		out[i] = f
	}
	return out
}

func closeTo(a, b float64) bool {
	return math.Abs(a-b) < 1e-12
}

func TestConvertVector(t *testing.T) {
	got := ConvertVector(mgl64.Vec3{1.5, -2.25, 3})
	if got != "1.5,3,2.25" {
		t.Fatalf("ConvertVector = %q, want %q", got, "1.5,3,2.25")
	}
}

func TestConvertVectorFullPrecision(t *testing.T) {
	v := mgl64.Vec3{0.1, 0.2, 0.30000000000000004}
	comps := splitFloats(t, ConvertVector(v))
	if len(comps) != 3 {
		t.Fatalf("expected 3 components, got %d", len(comps))
	}
	if comps[0] != v.X() || comps[1] != v.Z() || comps[2] != -v.Y() {
		t.Fatalf("components did not round-trip: %v", comps)
	}
}

func TestConvertScaleNoSignFlip(t *testing.T) {
	got := ConvertScale(mgl64.Vec3{2, 3, 4})
	if got != "2,4,3" {
		t.Fatalf("ConvertScale = %q, want %q", got, "2,4,3")
	}
}

func TestConvertQuat(t *testing.T) {
	q := mgl64.Quat{W: 4, V: mgl64.Vec3{1, 2, 3}}
	got := ConvertQuat(q)
	if got != "1,3,-2,4" {
		t.Fatalf("ConvertQuat = %q, want %q", got, "1,3,-2,4")
	}
}

func TestEulerToQuatSingleAxis(t *testing.T) {
	angle := math.Pi / 3
	got := eulerToQuat(mgl64.Vec3{angle, 0, 0})
	want := mgl64.QuatRotate(angle, mgl64.Vec3{1, 0, 0})
	if !closeTo(got.W, want.W) || !closeTo(got.X(), want.X()) ||
		!closeTo(got.Y(), want.Y()) || !closeTo(got.Z(), want.Z()) {
		t.Fatalf("eulerToQuat = %v, want %v", got, want)
	}
}

func TestEulerToQuatOrderXFirst(t *testing.T) {
	// x then z: the composed quaternion must be qz * qx, not qx * qz.
	got := eulerToQuat(mgl64.Vec3{math.Pi / 2, 0, math.Pi / 2})
	qx := mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{1, 0, 0})
	qz := mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 0, 1})
	want := qz.Mul(qx)
	if !closeTo(got.W, want.W) || !closeTo(got.X(), want.X()) ||
		!closeTo(got.Y(), want.Y()) || !closeTo(got.Z(), want.Z()) {
		t.Fatalf("eulerToQuat = %v, want %v", got, want)
	}
}

func TestLightQuatIdentityEuler(t *testing.T) {
	// A light with no authored rotation still gets the fixed X correction.
	comps := splitFloats(t, ConvertQuat(lightQuat(mgl64.Vec3{})))
	fix := mgl64.QuatRotate(mgl64.DegToRad(lightRotationFixDeg), mgl64.Vec3{1, 0, 0})
	want := []float64{fix.X(), fix.Z(), -fix.Y(), fix.W}
	for i := range want {
		if !closeTo(comps[i], want[i]) {
			t.Fatalf("component %d = %v, want %v", i, comps[i], want[i])
		}
	}
}
