package geometry

import (
	"math"
	"testing"

	"github.com/chewxy/math32"
)

func TestTriangleArea(t *testing.T) {
	// Right triangle with legs 3 and 4
	tri := NewTriangle(
		NewVec3(0, 0, 0),
		NewVec3(3, 0, 0),
		NewVec3(0, 4, 0),
	)

	area := tri.Area()
	expected := 6.0 // (3 * 4) / 2

	if math.Abs(area-expected) > 1e-6 {
		t.Errorf("Area failed: expected %v, got %v", expected, area)
	}
}

func TestTriangleSignedVolume(t *testing.T) {
	// Tetrahedron spanned by the origin and the three unit axis points
	tri := NewTriangle(
		NewVec3(1, 0, 0),
		NewVec3(0, 1, 0),
		NewVec3(0, 0, 1),
	)

	volume := tri.SignedVolume()
	expected := 1.0 / 6.0

	if math.Abs(volume-expected) > 1e-12 {
		t.Errorf("SignedVolume failed: expected %v, got %v", expected, volume)
	}

	// Reversing the winding flips the sign
	reversed := NewTriangle(tri.V3, tri.V2, tri.V1)
	if math.Abs(reversed.SignedVolume()+expected) > 1e-12 {
		t.Errorf("SignedVolume winding failed: got %v", reversed.SignedVolume())
	}
}

func TestTriangleIsValid(t *testing.T) {
	valid := NewTriangle(NewVec3(0, 0, 0), NewVec3(1, 0, 0), NewVec3(0, 1, 0))
	if !valid.IsValid() {
		t.Error("expected triangle to be valid")
	}

	duplicate := NewTriangle(NewVec3(0, 0, 0), NewVec3(0, 0, 0), NewVec3(0, 1, 0))
	if duplicate.IsValid() {
		t.Error("triangle with duplicate vertices should be invalid")
	}

	collinear := NewTriangle(NewVec3(0, 0, 0), NewVec3(1, 0, 0), NewVec3(2, 0, 0))
	if collinear.IsValid() {
		t.Error("collinear triangle should be invalid")
	}

	nan := NewTriangle(NewVec3(math32.NaN(), 0, 0), NewVec3(1, 0, 0), NewVec3(0, 1, 0))
	if nan.IsValid() {
		t.Error("triangle with NaN vertex should be invalid")
	}
}

func TestTriangleNormal(t *testing.T) {
	tri := NewTriangle(NewVec3(0, 0, 0), NewVec3(1, 0, 0), NewVec3(0, 1, 0))

	normal := tri.Normal()
	expected := NewVec3(0, 0, 1)

	if normal != expected {
		t.Errorf("Normal failed: expected %v, got %v", expected, normal)
	}
}
