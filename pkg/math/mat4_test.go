package math

import (
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(Vec3{1, 2, 3})
	result := m.Mul(Identity())

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(Vec3{5, 10, 15})

	// Translation lives in column 4.
	if m[12] != 5 || m[13] != 10 || m[14] != 15 {
		t.Errorf("Translate: got (%f, %f, %f), want (5, 10, 15)", m[12], m[13], m[14])
	}
}

func TestTransformPoint(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
		p    Vec3
		want Vec3
	}{
		{"translate", Translate(Vec3{10, 20, 30}), Vec3{1, 2, 3}, Vec3{11, 22, 33}},
		{"scale", Scale(2), Vec3{1, 2, 3}, Vec3{2, 4, 6}},
		{"scale then translate", Translate(Vec3{1, 0, 0}).Mul(Scale(3)), Vec3{1, 1, 1}, Vec3{4, 3, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.TransformPoint(tt.p); got != tt.want {
				t.Errorf("TransformPoint: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPerspective(t *testing.T) {
	m := Perspective(float32(math.Pi/4), 1.0, 0.1, 100.0)

	if m[0] == 0 || m[5] == 0 {
		t.Error("Perspective should have non-zero elements")
	}
	if m[15] != 0 {
		t.Errorf("Perspective [15] should be 0, got %f", m[15])
	}
	if m[11] != -1 {
		t.Errorf("Perspective [11] should be -1, got %f", m[11])
	}
}

func TestLookAt(t *testing.T) {
	eye := Vec3{0, 0, 5}
	m := LookAt(eye, Vec3{}, Up)

	// The eye maps to the view-space origin.
	p := m.TransformPoint(eye)
	if abs(p.X) > 0.0001 || abs(p.Y) > 0.0001 || abs(p.Z) > 0.0001 {
		t.Errorf("LookAt eye should map to origin, got %v", p)
	}
	if m[15] != 1 {
		t.Errorf("LookAt [15] should be 1, got %f", m[15])
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func TestInverse(t *testing.T) {
	m := Perspective(0.9, 1.5, 0.1, 100).Mul(LookAt(Vec3{3, 4, 5}, Vec3{0, 1, 0}, Up))
	inv, ok := m.Inverse()
	if !ok {
		t.Fatal("view-projection should be invertible")
	}

	product := m.Mul(inv)
	want := Identity()
	for i := range product {
		if abs(product[i]-want[i]) > 1e-4 {
			t.Errorf("M * M^-1 element %d: got %f, want %f", i, product[i], want[i])
		}
	}

	p := Vec3{1, 2, 3}
	got := inv.TransformPoint(m.TransformPoint(p))
	if got.Distance(p) > 1e-3 {
		t.Errorf("round trip through the inverse: got %v, want %v", got, p)
	}

	if _, ok := (Mat4{}).Inverse(); ok {
		t.Error("zero matrix should be singular")
	}
}
