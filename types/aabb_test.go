package types

import "testing"

func TestAABB3Empty(t *testing.T) {
	cases := []struct {
		name string
		box  AABB3
		want bool
	}{
		{"regular", AABB3{Lower: Vec3{0, 0, 0}, Upper: Vec3{1, 1, 1}}, false},
		{"degenerate point", AABB3{Lower: Vec3{1, 1, 1}, Upper: Vec3{1, 1, 1}}, false},
		{"inverted", AABB3{Lower: Vec3{1, 1, 1}, Upper: Vec3{0, 0, 0}}, true},
		{"empty sentinel", EmptyAABB3(), true},
	}

	for _, c := range cases {
		if got := c.box.Empty(); got != c.want {
			t.Errorf("%s: Empty() = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestAABB3CenterAndSize(t *testing.T) {
	box := AABB3{Lower: Vec3{-1, -2, -3}, Upper: Vec3{1, 2, 3}}

	center := box.Center()
	if center != (Vec3{0, 0, 0}) {
		t.Fatalf("Center() = %v, want {0 0 0}", center)
	}

	size := box.Size()
	if size != (Vec3{2, 4, 6}) {
		t.Fatalf("Size() = %v, want {2 4 6}", size)
	}
}

func TestAABB3GrowPointAccumulatesBounds(t *testing.T) {
	box := EmptyAABB3()
	box = box.GrowPoint(Vec3{1, 2, 3})
	box = box.GrowPoint(Vec3{-1, 5, 0})

	if box.Lower != (Vec3{-1, 2, 0}) {
		t.Fatalf("Lower = %v, want {-1 2 0}", box.Lower)
	}
	if box.Upper != (Vec3{1, 5, 3}) {
		t.Fatalf("Upper = %v, want {1 5 3}", box.Upper)
	}
}

func TestAABB3Union(t *testing.T) {
	a := AABB3{Lower: Vec3{0, 0, 0}, Upper: Vec3{1, 1, 1}}
	b := AABB3{Lower: Vec3{-1, 0, 2}, Upper: Vec3{0.5, 3, 2}}

	u := a.Union(b)
	if u.Lower != (Vec3{-1, 0, 0}) || u.Upper != (Vec3{1, 3, 2}) {
		t.Fatalf("Union() = %+v, unexpected bounds", u)
	}
}
