package math

import (
	"math"
	"testing"
)

func TestVec3Add(t *testing.T) {
	got := Vec3{1, 2, 3}.Add(Vec3{3, 4, 5})
	want := Vec3{4, 6, 8}
	if got != want {
		t.Errorf("Vec3.Add() = %v, want %v", got, want)
	}
}

func TestVec3Length(t *testing.T) {
	got := Vec3{3, 4, 0}.Length()
	if got != 5 {
		t.Errorf("Vec3.Length() = %v, want 5", got)
	}
}

func TestVec3Normalize(t *testing.T) {
	l := Vec3{3, 4, 12}.Normalize().Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Vec3.Normalize().Length() = %v, want ~1", l)
	}

	if got := (Vec3{1e-7, 0, 0}).Normalize(); got != (Vec3{}) {
		t.Errorf("tiny vector should normalize to zero, got %v", got)
	}
}

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Lerp(t *testing.T) {
	a := Vec3{0, 0, 0}
	b := Vec3{10, 20, 30}

	tests := []struct {
		t    float32
		want Vec3
	}{
		{0.5, Vec3{5, 10, 15}},
		{-1, a},
		{2, b},
	}
	for _, tt := range tests {
		if got := a.Lerp(b, tt.t); got.Distance(tt.want) > 0.001 {
			t.Errorf("Lerp(%v) = %v, want %v", tt.t, got, tt.want)
		}
	}
}

func TestVec3Angle(t *testing.T) {
	got := Vec3{1, 0, 0}.Angle(Vec3{0, 0, 2})
	if math.Abs(float64(got)-math.Pi/2) > 0.0001 {
		t.Errorf("Angle = %v, want pi/2", got)
	}
	if got := (Vec3{}).Angle(Vec3{1, 0, 0}); got != 0 {
		t.Errorf("Angle with zero vector = %v, want 0", got)
	}
}

func TestVec3IsFinite(t *testing.T) {
	inf := float32(math.Inf(1))
	nan := float32(math.NaN())

	tests := []struct {
		v    Vec3
		want bool
	}{
		{Vec3{1, 2, 3}, true},
		{Vec3{nan, 0, 0}, false},
		{Vec3{0, inf, 0}, false},
		{Vec3{0, 0, -inf}, false},
	}
	for _, tt := range tests {
		if got := tt.v.IsFinite(); got != tt.want {
			t.Errorf("IsFinite(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}
