package lbvh

import (
	"math"

	"github.com/achilleasa/lbvh/types"
)

// bitsPerAxis2 is the per-axis quantization width for the 2D Morton key
// instantiation: 32 bits per axis, the most precision a 64-bit key allows.
const bitsPerAxis2 = 32

const maxQuantized2 = (1 << bitsPerAxis2) - 1

// QuantizerParams2 is the 2D analogue of QuantizerParams3.
type QuantizerParams2 struct {
	Bias  types.Vec2
	Scale types.Vec2
}

func NewQuantizerParams2(centroidBounds types.AABB2) QuantizerParams2 {
	size := centroidBounds.Size()
	for i := 0; i < 2; i++ {
		if size[i] < quantizerScaleFloor {
			size[i] = quantizerScaleFloor
		}
	}
	return QuantizerParams2{
		Bias: centroidBounds.Lower,
		Scale: types.Vec2{
			float32(uint64(1) << bitsPerAxis2) / size[0],
			float32(uint64(1) << bitsPerAxis2) / size[1],
		},
	}
}

func (q QuantizerParams2) Quantize(p types.Vec2) [2]uint64 {
	var out [2]uint64
	for i := 0; i < 2; i++ {
		v := int64(math.Floor(float64((p[i] - q.Bias[i]) * q.Scale[i])))
		if v < 0 {
			v = 0
		} else if v > maxQuantized2 {
			v = maxQuantized2
		}
		out[i] = uint64(v)
	}
	return out
}

// Encode computes the 64-bit Morton key for a 2D point: bits 0,2,4,... hold
// x, bits 1,3,5,... hold y.
func (q QuantizerParams2) Encode(p types.Vec2) uint64 {
	c := q.Quantize(p)
	return interleaveN(c[1], bitsPerAxis2, 2)<<1 | interleaveN(c[0], bitsPerAxis2, 2)
}

// interleaveN spreads the low `bits` bits of x so that bit i of x lands on
// bit `stride`*i of the result. This is the generic, loop-based sibling of
// Interleave21 used by the 2D and 4D instantiations, which have no fixed
// shift/mask table the way the 21-bit/3D case does.
func interleaveN(x uint64, bits, stride int) uint64 {
	var out uint64
	for i := 0; i < bits; i++ {
		if x&(1<<i) != 0 {
			out |= 1 << (stride * i)
		}
	}
	return out
}

// deinterleaveN is the inverse of interleaveN.
func deinterleaveN(x uint64, bits, stride int) uint64 {
	var out uint64
	for i := 0; i < bits; i++ {
		if x&(1<<(stride*i)) != 0 {
			out |= 1 << i
		}
	}
	return out
}
