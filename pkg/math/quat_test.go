package math

import (
	"math"
	"testing"
)

func TestQuatIdentity(t *testing.T) {
	q := QuatIdentity()
	if q.X != 0 || q.Y != 0 || q.Z != 0 || q.W != 1 {
		t.Errorf("Identity quaternion should be (0,0,0,1), got (%v,%v,%v,%v)", q.X, q.Y, q.Z, q.W)
	}
}

func TestQuatNormalize(t *testing.T) {
	q := Quat{X: 1, Y: 2, Z: 3, W: 4}
	n := q.Normalize()

	length := float32(math.Sqrt(float64(n.X*n.X + n.Y*n.Y + n.Z*n.Z + n.W*n.W)))
	if math.Abs(float64(length-1.0)) > 0.0001 {
		t.Errorf("Normalized quaternion length should be 1, got %v", length)
	}
}

func TestQuatSlerp(t *testing.T) {
	q1 := QuatIdentity()
	q2 := QuatFromAxisAngle(Vec3{X: 0, Y: 1, Z: 0}, float32(math.Pi/2))

	result0 := q1.Slerp(q2, 0)
	if math.Abs(float64(result0.W-q1.W)) > 0.001 {
		t.Errorf("Slerp at t=0 should equal q1")
	}

	result1 := q1.Slerp(q2, 1)
	if math.Abs(float64(result1.W-q2.W)) > 0.001 {
		t.Errorf("Slerp at t=1 should equal q2")
	}

	// Halfway through a 90 degree turn is 45 degrees.
	result5 := q1.Slerp(q2, 0.5)
	expectedW := float32(math.Cos(float64(math.Pi / 8)))
	if math.Abs(float64(result5.W-expectedW)) > 0.01 {
		t.Errorf("Slerp at t=0.5: expected W ~%v, got %v", expectedW, result5.W)
	}
}

func TestQuatToMat4(t *testing.T) {
	m := QuatIdentity().ToMat4()

	identity := Identity()
	for i := 0; i < 16; i++ {
		if math.Abs(float64(m[i]-identity[i])) > 0.0001 {
			t.Errorf("Identity quat should produce identity matrix, element %d: got %v, want %v", i, m[i], identity[i])
		}
	}
}

func TestQuatToMat4MatchesRotate(t *testing.T) {
	q := LookRotation(Vec3{1, 0, 1}, Up)
	p := Vec3{0.3, -2, 5}

	viaMat := q.ToMat4().TransformPoint(p)
	viaQuat := q.Rotate(p)
	if viaMat.Distance(viaQuat) > 0.0001 {
		t.Errorf("ToMat4 and Rotate disagree: %v vs %v", viaMat, viaQuat)
	}
}

func TestQuatFromAxisAngle(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{X: 0, Y: 1, Z: 0}, float32(math.Pi/2))

	expectedW := float32(math.Cos(math.Pi / 4))
	expectedY := float32(math.Sin(math.Pi / 4))

	if math.Abs(float64(q.W-expectedW)) > 0.001 {
		t.Errorf("QuatFromAxisAngle W: expected %v, got %v", expectedW, q.W)
	}
	if math.Abs(float64(q.Y-expectedY)) > 0.001 {
		t.Errorf("QuatFromAxisAngle Y: expected %v, got %v", expectedY, q.Y)
	}
}

func TestLookRotation(t *testing.T) {
	tests := []struct {
		name     string
		forward  Vec3
		wantFwd  Vec3
		wantLeft Vec3
	}{
		{"along +Z", Vec3{0, 0, 3}, Vec3{0, 0, 1}, Vec3{-1, 0, 0}},
		{"along +X", Vec3{2, 0, 0}, Vec3{1, 0, 0}, Vec3{0, 0, 1}},
		{"along -X", Vec3{-1, 0, 0}, Vec3{-1, 0, 0}, Vec3{0, 0, -1}},
		{"along -Z", Vec3{0, 0, -1}, Vec3{0, 0, -1}, Vec3{1, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := LookRotation(tt.forward, Up)
			if got := q.Rotate(Forward); got.Distance(tt.wantFwd) > 0.0001 {
				t.Errorf("forward axis: got %v, want %v", got, tt.wantFwd)
			}
			if got := q.Rotate(Left); got.Distance(tt.wantLeft) > 0.0001 {
				t.Errorf("left axis: got %v, want %v", got, tt.wantLeft)
			}
			if got := q.Rotate(Up); got.Distance(Up) > 0.0001 {
				t.Errorf("up axis: got %v, want %v", got, Up)
			}
		})
	}
}

func TestLookRotationDegenerate(t *testing.T) {
	if q := LookRotation(Vec3{}, Up); q != QuatIdentity() {
		t.Errorf("zero forward should give identity, got %v", q)
	}

	q := LookRotation(Vec3{0, 5, 0}, Up)
	if got := q.Rotate(Forward); got.Distance(Up) > 0.0001 {
		t.Errorf("forward parallel to up: forward axis got %v, want %v", got, Up)
	}
}

func TestEulerRoundTrip(t *testing.T) {
	angles := []Vec3{
		{0, 0, 0},
		{30, 0, 0},
		{0, 78, 0},
		{10, 200, 45},
		{350, 15, 3.45},
	}

	for _, a := range angles {
		got := QuatFromEuler(a).EulerAngles()
		for i, pair := range [][2]float32{{got.X, a.X}, {got.Y, a.Y}, {got.Z, a.Z}} {
			diff := math.Mod(float64(pair[0]-pair[1])+540, 360) - 180
			if math.Abs(diff) > 0.01 {
				t.Errorf("EulerAngles(%v) component %d: got %v", a, i, got)
			}
		}
	}
}

func TestQuatIsFinite(t *testing.T) {
	if !QuatIdentity().IsFinite() {
		t.Error("identity should be finite")
	}
	nan := float32(math.NaN())
	if (Quat{X: nan, W: 1}).IsFinite() {
		t.Error("NaN component should not be finite")
	}
}
