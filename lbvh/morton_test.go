package lbvh

import (
	"math"
	"testing"

	"github.com/achilleasa/lbvh/types"
)

func TestInterleave21RoundTrip(t *testing.T) {
	cases := []uint64{0, 1, 2, maxQuantized3, maxQuantized3 / 2, 0x155555, 0x0aaaaa}
	for _, x := range cases {
		got := Deinterleave21(Interleave21(x))
		if got != x {
			t.Errorf("Deinterleave21(Interleave21(%d)) = %d, want %d", x, got, x)
		}
	}
}

func TestInterleave21PlacesBitsOnMultiplesOfThree(t *testing.T) {
	for i := 0; i < 21; i++ {
		spread := Interleave21(1 << uint(i))
		want := uint64(1) << uint(3*i)
		if spread != want {
			t.Errorf("Interleave21(1<<%d) = %#x, want %#x", i, spread, want)
		}
	}
}

func TestDecodeMortonKey3(t *testing.T) {
	q := QuantizerParams3{Bias: types.Vec3{0, 0, 0}, Scale: types.Vec3{1, 1, 1}}
	key := q.Encode(types.Vec3{3, 5, 7})
	x, y, z := DecodeMortonKey3(key)
	if x != 3 || y != 5 || z != 7 {
		t.Fatalf("DecodeMortonKey3(Encode(3,5,7)) = (%d,%d,%d), want (3,5,7)", x, y, z)
	}
}

func TestQuantizerParams3ClampsToLatticeBounds(t *testing.T) {
	bounds := types.AABB3{Lower: types.Vec3{-1, -1, -1}, Upper: types.Vec3{1, 1, 1}}
	q := NewQuantizerParams3(bounds)

	below := q.Quantize(types.Vec3{-10, -10, -10})
	for i, v := range below {
		if v != 0 {
			t.Errorf("axis %d: expected clamp to 0, got %d", i, v)
		}
	}

	above := q.Quantize(types.Vec3{10, 10, 10})
	for i, v := range above {
		if v != maxQuantized3 {
			t.Errorf("axis %d: expected clamp to %d, got %d", i, maxQuantized3, v)
		}
	}
}

func TestQuantizerParams3CollapsedAxisProducesFiniteScale(t *testing.T) {
	bounds := types.AABB3{Lower: types.Vec3{5, 5, 5}, Upper: types.Vec3{5, 5, 5}}
	q := NewQuantizerParams3(bounds)
	for i, s := range q.Scale {
		if math.IsInf(float64(s), 0) || math.IsNaN(float64(s)) {
			t.Fatalf("axis %d: scale is not finite: %v", i, s)
		}
	}
}

func TestQuantizerOrderingMatchesMortonOrdering(t *testing.T) {
	bounds := types.AABB3{Lower: types.Vec3{0, 0, 0}, Upper: types.Vec3{8, 8, 8}}
	q := NewQuantizerParams3(bounds)

	a := q.Encode(types.Vec3{1, 1, 1})
	b := q.Encode(types.Vec3{1, 1, 1})
	if a != b {
		t.Fatalf("Encode is not deterministic: %d != %d", a, b)
	}

	lo := q.Encode(types.Vec3{0, 0, 0})
	hi := q.Encode(types.Vec3{7.9, 7.9, 7.9})
	if lo >= hi {
		t.Fatalf("expected lower corner to sort before upper corner, got %d >= %d", lo, hi)
	}
}

func TestCountBitsForMaxLeafSize(t *testing.T) {
	cases := []struct {
		maxLeafSize int
		wantBits    uint
	}{
		{1, 1},
		{2, 2},
		{3, 2},
		{4, 3},
		{7, 3},
		{8, 4},
	}
	for _, c := range cases {
		got := countBitsForMaxLeafSize(c.maxLeafSize)
		if got != c.wantBits {
			t.Errorf("countBitsForMaxLeafSize(%d) = %d, want %d", c.maxLeafSize, got, c.wantBits)
		}
	}
}

func TestNodePackUnpackRoundTrip(t *testing.T) {
	const countBits = 4
	n := packNode(123, 7, countBits)
	if got := n.Offset(countBits); got != 123 {
		t.Errorf("Offset() = %d, want 123", got)
	}
	if got := n.Count(countBits); got != 7 {
		t.Errorf("Count() = %d, want 7", got)
	}
	if !n.IsLeaf(countBits) {
		t.Error("expected leaf node")
	}

	internal := packNode(456, 0, countBits)
	if internal.IsLeaf(countBits) {
		t.Error("expected internal node")
	}
}
