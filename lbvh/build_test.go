package lbvh

import (
	"context"
	"testing"

	"github.com/achilleasa/lbvh/device"
	"github.com/achilleasa/lbvh/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createCpuTestDevice(t *testing.T) *device.Device {
	t.Helper()
	devList, err := device.SelectDevices(device.CpuDevice, "CPU")
	if err != nil {
		t.Skipf("no OpenCL CPU device available: %v", err)
	}
	if len(devList) == 0 {
		t.Skip("no OpenCL CPU device available")
	}
	t.Cleanup(devList[0].Close)
	return devList[0]
}

func pointBox(x, y, z float32) types.AABB3 {
	p := types.Vec3{x, y, z}
	return types.AABB3{Lower: p, Upper: p}
}

// leafPrimIDs collects the PrimIDs referenced by every leaf under node i,
// descending internal nodes recursively.
func leafPrimIDs(t *testing.T, bvh *BVH, nodeIdx int, out *[]uint32) {
	t.Helper()
	n := bvh.Nodes[nodeIdx]
	if bvh.IsLeaf(n) {
		offset := bvh.Offset(n)
		count := bvh.Count(n)
		for i := uint32(0); i < count; i++ {
			*out = append(*out, bvh.PrimIDs[offset+i])
		}
		return
	}
	left := bvh.Offset(n)
	leafPrimIDs(t, bvh, int(left), out)
	leafPrimIDs(t, bvh, int(left)+1, out)
}

func buildOnCpu(t *testing.T, boxes []types.AABB3, cfg BuildConfig) *BVH {
	t.Helper()
	dev := createCpuTestDevice(t)

	var bvh BVH
	err := Build(context.Background(), &bvh, boxes, cfg, dev, nil)
	require.NoError(t, err)
	return &bvh
}

func TestBuildSingleton(t *testing.T) {
	boxes := []types.AABB3{pointBox(1, 2, 3)}
	bvh := buildOnCpu(t, boxes, BuildConfig{})

	require.Equal(t, 1, bvh.NumNodes)
	require.Equal(t, 1, bvh.NumPrims)
	assert.True(t, bvh.IsLeaf(bvh.Nodes[0]))
	assert.EqualValues(t, 1, bvh.Count(bvh.Nodes[0]))
	assert.Equal(t, []uint32{0}, bvh.PrimIDs)
	assert.Equal(t, boxes[0], bvh.Bounds[0])
}

func TestBuildTwoWellSeparatedPoints(t *testing.T) {
	boxes := []types.AABB3{pointBox(0, 0, 0), pointBox(100, 100, 100)}
	bvh := buildOnCpu(t, boxes, BuildConfig{})

	var leaves []uint32
	leafPrimIDs(t, bvh, 0, &leaves)
	assert.ElementsMatch(t, []uint32{0, 1}, leaves)

	rootBounds := bvh.Bounds[0]
	assert.InDelta(t, 0, rootBounds.Lower[0], 1e-4)
	assert.InDelta(t, 100, rootBounds.Upper[0], 1e-4)
}

func TestBuildFiltersOutEmptyBoxes(t *testing.T) {
	boxes := []types.AABB3{
		pointBox(1, 1, 1),
		types.EmptyAABB3(),
		pointBox(2, 2, 2),
		types.EmptyAABB3(),
	}
	bvh := buildOnCpu(t, boxes, BuildConfig{})

	require.Equal(t, 2, bvh.NumPrims)
	var leaves []uint32
	leafPrimIDs(t, bvh, 0, &leaves)
	assert.ElementsMatch(t, []uint32{0, 2}, leaves)
}

func TestBuildAllPrimitivesEmpty(t *testing.T) {
	boxes := []types.AABB3{types.EmptyAABB3(), types.EmptyAABB3()}
	bvh := buildOnCpu(t, boxes, BuildConfig{})

	require.Equal(t, 1, bvh.NumNodes)
	require.Equal(t, 0, bvh.NumPrims)
	assert.True(t, bvh.IsLeaf(bvh.Nodes[0]))
	assert.EqualValues(t, 0, bvh.Count(bvh.Nodes[0]))
}

func TestBuildZeroPrimitives(t *testing.T) {
	bvh := buildOnCpu(t, nil, BuildConfig{})

	require.Equal(t, 1, bvh.NumNodes)
	require.Equal(t, 0, bvh.NumPrims)
}

func TestBuildAllIdenticalCentersCollapsesToSingleLeaf(t *testing.T) {
	boxes := make([]types.AABB3, 8)
	for i := range boxes {
		boxes[i] = pointBox(5, 5, 5)
	}
	bvh := buildOnCpu(t, boxes, BuildConfig{})

	require.Equal(t, 1, bvh.NumNodes, "identical centers can never be split by the Morton-key binary search")
	require.Equal(t, 8, bvh.NumPrims)
	assert.True(t, bvh.IsLeaf(bvh.Nodes[0]))
	assert.EqualValues(t, 8, bvh.Count(bvh.Nodes[0]))
}

func TestBuildRegularGrid(t *testing.T) {
	var boxes []types.AABB3
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			for z := 0; z < 4; z++ {
				boxes = append(boxes, pointBox(float32(x), float32(y), float32(z)))
			}
		}
	}
	bvh := buildOnCpu(t, boxes, BuildConfig{LeafThreshold: 1, MaxAllowedLeafSize: 1})

	require.Equal(t, len(boxes), bvh.NumPrims)

	var leaves []uint32
	leafPrimIDs(t, bvh, 0, &leaves)
	assert.Len(t, leaves, len(boxes))
	expected := make([]uint32, len(boxes))
	for i := range expected {
		expected[i] = uint32(i)
	}
	assert.ElementsMatch(t, expected, leaves)

	rootBounds := bvh.Bounds[0]
	assert.InDelta(t, 0, rootBounds.Lower[0], 1e-4)
	assert.InDelta(t, 3, rootBounds.Upper[0], 1e-4)
}

func TestBuildDegenerateAxis(t *testing.T) {
	var boxes []types.AABB3
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			boxes = append(boxes, pointBox(float32(x), float32(y), 0))
		}
	}
	bvh := buildOnCpu(t, boxes, BuildConfig{})

	require.Equal(t, len(boxes), bvh.NumPrims)
	for _, b := range bvh.Bounds {
		assert.InDelta(t, 0, b.Lower[2], 1e-4)
		assert.InDelta(t, 0, b.Upper[2], 1e-4)
	}
}

func TestBuildRespectsLeafThreshold(t *testing.T) {
	var boxes []types.AABB3
	for i := 0; i < 16; i++ {
		boxes = append(boxes, pointBox(float32(i), 0, 0))
	}
	bvh := buildOnCpu(t, boxes, BuildConfig{LeafThreshold: 4, MaxAllowedLeafSize: 4})

	for i := 0; i < bvh.NumNodes; i++ {
		n := bvh.Nodes[i]
		if bvh.IsLeaf(n) {
			assert.LessOrEqual(t, int(bvh.Count(n)), 4)
		}
	}
}

func TestBuildCancelledContext(t *testing.T) {
	dev := createCpuTestDevice(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var bvh BVH
	boxes := []types.AABB3{pointBox(0, 0, 0), pointBox(1, 1, 1)}
	err := Build(ctx, &bvh, boxes, BuildConfig{}, dev, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuildRejectsNilDevice(t *testing.T) {
	var bvh BVH
	err := Build(context.Background(), &bvh, nil, BuildConfig{}, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidDevice)
}
