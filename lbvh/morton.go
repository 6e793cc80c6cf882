package lbvh

import (
	"math"

	"github.com/achilleasa/lbvh/types"
)

// bitsPerAxis3 is the per-axis quantization width for the 3D Morton key.
const bitsPerAxis3 = 21

// maxQuantized3 is the largest value a quantized 3D coordinate may hold
// after clamping: 2^21 - 1.
const maxQuantized3 = (1 << bitsPerAxis3) - 1

// QuantizerParams3 is the bias/scale pair derived from the centroid bounds
// that maps world-space centers onto the 21-bit-per-axis fixed point
// lattice.
type QuantizerParams3 struct {
	Bias  types.Vec3
	Scale types.Vec3
}

// quantizerScaleFloor is the minimum per-axis size used when deriving the
// scale, guaranteeing a finite scale when the centroid bounds collapse
// along an axis.
const quantizerScaleFloor = 1e-20

// NewQuantizerParams3 derives (bias, scale) from the centroid bounds of all
// non-empty primitives.
func NewQuantizerParams3(centroidBounds types.AABB3) QuantizerParams3 {
	size := centroidBounds.Size()
	for i := 0; i < 3; i++ {
		if size[i] < quantizerScaleFloor {
			size[i] = quantizerScaleFloor
		}
	}
	return QuantizerParams3{
		Bias: centroidBounds.Lower,
		Scale: types.Vec3{
			float32(1<<bitsPerAxis3) / size[0],
			float32(1<<bitsPerAxis3) / size[1],
			float32(1<<bitsPerAxis3) / size[2],
		},
	}
}

// Quantize maps a point to the 21-bit-per-axis integer lattice, clamping
// each axis to [0, 2^21-1].
func (q QuantizerParams3) Quantize(p types.Vec3) [3]uint32 {
	var out [3]uint32
	for i := 0; i < 3; i++ {
		v := int64(math.Floor(float64((p[i] - q.Bias[i]) * q.Scale[i])))
		if v < 0 {
			v = 0
		} else if v > maxQuantized3 {
			v = maxQuantized3
		}
		out[i] = uint32(v)
	}
	return out
}

// Encode computes the 63-bit Morton key (bit 63 unused) for point p, given
// the quantizer parameters derived from the build's centroid bounds.
func (q QuantizerParams3) Encode(p types.Vec3) uint64 {
	c := q.Quantize(p)
	return Interleave21(uint64(c[2]))<<2 | Interleave21(uint64(c[1]))<<1 | Interleave21(uint64(c[0]))
}

// Interleave21 spreads the low 21 bits of x so that bit i of x lands on
// bit 3*i of the result, leaving bits 3*i+1 and 3*i+2 free for the other
// two axes. Five shift/mask stages, each doubling the spread distance;
// this repository's quantizer round trip and interleave law tests check
// it directly.
func Interleave21(x uint64) uint64 {
	x = shiftBits(x, 0x00000000001f0000, 32)
	x = shiftBits(x, 0x000000000000ff00, 16)
	x = shiftBits(x, 0x00f00000f00000f0, 8)
	x = shiftBits(x, 0x000c00c00c00c00c, 4)
	x = shiftBits(x, 0x0082082082082082, 2)
	return x
}

func shiftBits(x, maskOfBitsToMove uint64, shift uint) uint64 {
	return ((x & maskOfBitsToMove) << shift) | (x &^ maskOfBitsToMove)
}

// Deinterleave21 is the inverse of Interleave21: it gathers bits
// 0,3,6,...,60 of x back into a contiguous 21-bit value. It exists
// primarily so the interleave law is directly testable; the build itself
// never needs to invert a key.
func Deinterleave21(x uint64) uint64 {
	var out uint64
	for i := 0; i < 21; i++ {
		if x&(1<<(3*i)) != 0 {
			out |= 1 << i
		}
	}
	return out
}

// DecodeMortonKey3 splits a 3D Morton key back into its three 21-bit lanes.
// Used only by tests validating the interleave law.
func DecodeMortonKey3(key uint64) (x, y, z uint64) {
	return Deinterleave21(key), Deinterleave21(key >> 1), Deinterleave21(key >> 2)
}
