package lbvh

import "github.com/achilleasa/lbvh/types"

// buildStateRecord mirrors the BuildState struct in lbvh/cl/lbvh.cl
// byte-for-byte (four-byte-aligned scalars and float arrays only, so no
// compiler padding differs between the OpenCL C and Go layouts). The host
// downloads this record at two suspension points: once after the key/primID
// producer has run, to learn numValidPrims, and once per BFS loop
// iteration, to learn the allocation counter.
type buildStateRecord struct {
	NumNodesAlloced int32
	NumValidPrims   int32
	CentBoundsLower [3]float32
	CentBoundsUpper [3]float32
	QuantizeBias    [3]float32
	QuantizeScale   [3]float32
}

const sizeofBuildState = 4 + 4 + 12 + 12 + 12 + 12

func (s buildStateRecord) centroidBounds() types.AABB3 {
	return types.AABB3{
		Lower: types.Vec3{s.CentBoundsLower[0], s.CentBoundsLower[1], s.CentBoundsLower[2]},
		Upper: types.Vec3{s.CentBoundsUpper[0], s.CentBoundsUpper[1], s.CentBoundsUpper[2]},
	}
}

func (s buildStateRecord) quantizer() QuantizerParams3 {
	return QuantizerParams3{
		Bias:  types.Vec3{s.QuantizeBias[0], s.QuantizeBias[1], s.QuantizeBias[2]},
		Scale: types.Vec3{s.QuantizeScale[0], s.QuantizeScale[1], s.QuantizeScale[2]},
	}
}
