package lbvh

import (
	"math"

	"github.com/achilleasa/lbvh/types"
)

// bitsPerAxis4 is the per-axis quantization width for the 4D Morton key
// instantiation: 16 bits per axis keeps the combined key within 64 bits.
const bitsPerAxis4 = 16

const maxQuantized4 = (1 << bitsPerAxis4) - 1

// QuantizerParams4 is the 4D analogue of QuantizerParams3.
type QuantizerParams4 struct {
	Bias  types.Vec4
	Scale types.Vec4
}

func NewQuantizerParams4(centroidBounds types.AABB4) QuantizerParams4 {
	size := centroidBounds.Size()
	for i := 0; i < 4; i++ {
		if size[i] < quantizerScaleFloor {
			size[i] = quantizerScaleFloor
		}
	}
	return QuantizerParams4{
		Bias: centroidBounds.Lower,
		Scale: types.Vec4{
			float32(uint64(1) << bitsPerAxis4) / size[0],
			float32(uint64(1) << bitsPerAxis4) / size[1],
			float32(uint64(1) << bitsPerAxis4) / size[2],
			float32(uint64(1) << bitsPerAxis4) / size[3],
		},
	}
}

func (q QuantizerParams4) Quantize(p types.Vec4) [4]uint64 {
	var out [4]uint64
	for i := 0; i < 4; i++ {
		v := int64(math.Floor(float64((p[i] - q.Bias[i]) * q.Scale[i])))
		if v < 0 {
			v = 0
		} else if v > maxQuantized4 {
			v = maxQuantized4
		}
		out[i] = uint64(v)
	}
	return out
}

// Encode computes the 64-bit Morton key for a 4D point: axis i occupies
// bits i, i+4, i+8, ...
func (q QuantizerParams4) Encode(p types.Vec4) uint64 {
	c := q.Quantize(p)
	var key uint64
	for axis := 0; axis < 4; axis++ {
		key |= interleaveN(c[axis], bitsPerAxis4, 4) << uint(axis)
	}
	return key
}
