package types

import "math"

// AABB3 is an axis-aligned bounding box in 3D space, stored as a
// lower/upper corner pair. An AABB3 is empty iff any component of Lower
// exceeds the matching component of Upper.
type AABB3 struct {
	Lower Vec3
	Upper Vec3
}

// EmptyAABB3 returns an AABB3 primed so that growing it with any point or
// box yields exactly that point or box.
func EmptyAABB3() AABB3 {
	return AABB3{
		Lower: Vec3{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32},
		Upper: Vec3{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32},
	}
}

// Empty reports whether any lower component exceeds the matching upper
// component, or either corner carries a NaN.
func (b AABB3) Empty() bool {
	for i := 0; i < 3; i++ {
		if !(b.Lower[i] <= b.Upper[i]) {
			return true
		}
	}
	return false
}

// Center returns 0.5*(lower+upper).
func (b AABB3) Center() Vec3 {
	return b.Lower.Add(b.Upper).Mul(0.5)
}

// Size returns upper-lower.
func (b AABB3) Size() Vec3 {
	return b.Upper.Sub(b.Lower)
}

// Union returns the smallest AABB3 enclosing both b and o.
func (b AABB3) Union(o AABB3) AABB3 {
	return AABB3{
		Lower: MinVec3(b.Lower, o.Lower),
		Upper: MaxVec3(b.Upper, o.Upper),
	}
}

// GrowPoint returns the smallest AABB3 enclosing b and p.
func (b AABB3) GrowPoint(p Vec3) AABB3 {
	return AABB3{
		Lower: MinVec3(b.Lower, p),
		Upper: MaxVec3(b.Upper, p),
	}
}

// AABB2 is the 2D analogue of AABB3, used by the 2D Morton key
// instantiation.
type AABB2 struct {
	Lower Vec2
	Upper Vec2
}

func EmptyAABB2() AABB2 {
	return AABB2{
		Lower: Vec2{math.MaxFloat32, math.MaxFloat32},
		Upper: Vec2{-math.MaxFloat32, -math.MaxFloat32},
	}
}

func (b AABB2) Empty() bool {
	for i := 0; i < 2; i++ {
		if !(b.Lower[i] <= b.Upper[i]) {
			return true
		}
	}
	return false
}

func (b AABB2) Center() Vec2 { return b.Lower.Add(b.Upper).Mul(0.5) }
func (b AABB2) Size() Vec2   { return b.Upper.Sub(b.Lower) }

func (b AABB2) Union(o AABB2) AABB2 {
	return AABB2{Lower: MinVec2(b.Lower, o.Lower), Upper: MaxVec2(b.Upper, o.Upper)}
}

func (b AABB2) GrowPoint(p Vec2) AABB2 {
	return AABB2{Lower: MinVec2(b.Lower, p), Upper: MaxVec2(b.Upper, p)}
}

// AABB4 is the 4D analogue of AABB3, used by the 4D Morton key
// instantiation.
type AABB4 struct {
	Lower Vec4
	Upper Vec4
}

func EmptyAABB4() AABB4 {
	return AABB4{
		Lower: Vec4{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32, math.MaxFloat32},
		Upper: Vec4{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32},
	}
}

func (b AABB4) Empty() bool {
	for i := 0; i < 4; i++ {
		if !(b.Lower[i] <= b.Upper[i]) {
			return true
		}
	}
	return false
}

func (b AABB4) Center() Vec4 { return b.Lower.Add(b.Upper).Mul(0.5) }
func (b AABB4) Size() Vec4   { return b.Upper.Sub(b.Lower) }

func (b AABB4) Union(o AABB4) AABB4 {
	return AABB4{Lower: MinVec4(b.Lower, o.Lower), Upper: MaxVec4(b.Upper, o.Upper)}
}

func (b AABB4) GrowPoint(p Vec4) AABB4 {
	return AABB4{Lower: MinVec4(b.Lower, p), Upper: MaxVec4(b.Upper, p)}
}
