package lbvh

import (
	"context"
	"path"
	"runtime"

	"github.com/achilleasa/lbvh/device"
	"github.com/achilleasa/lbvh/log"
	"github.com/achilleasa/lbvh/types"
)

const relativePathToKernelSource = "cl/lbvh.cl"

var logger = log.New("lbvh")

// Build constructs a linear BVH over boxes on dev, writing the result into
// out, using mem for every device allocation. A zero MemoryResource value
// is replaced with DeviceMemoryResource; sorting uses HostPairSorter and
// refitting uses BottomUpRefitter.
//
// boxes that are empty (some Lower component greater than the matching
// Upper component, or a NaN coordinate; see types.AABB3.Empty) are
// filtered out of the tree entirely; their original index never appears
// in the returned BVH.PrimIDs.
//
// ctx is checked between kernel dispatches (after each BFS level and each
// of the build-state suspension points); a cancelled context returns
// ctx.Err() and out is left in whatever partial state it was in.
func Build(ctx context.Context, out *BVH, boxes []types.AABB3, cfg BuildConfig, dev *device.Device, mem MemoryResource) error {
	if dev == nil {
		return ErrInvalidDevice
	}
	if out == nil {
		return ErrInvalidOutput
	}
	if mem == nil {
		mem = DeviceMemoryResource{}
	}
	sorter := PairSorter(HostPairSorter{})
	refitter := Refitter(BottomUpRefitter{})

	numPrims := len(boxes)
	effectiveMaxLeafSize := cfg.effectiveMaxLeafSize(numPrims)
	countBits := countBitsForMaxLeafSize(effectiveMaxLeafSize)

	logger.Debugf("starting build over %d primitives (device %s)", numPrims, dev.Name)

	if numPrims == 0 {
		*out = *emptyBVH(countBits)
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	_, thisFile, _, _ := runtime.Caller(0)
	kernelPath := path.Join(path.Dir(thisFile), relativePathToKernelSource)
	if err := dev.Init(kernelPath); err != nil {
		return err
	}

	kernels := make([]*device.Kernel, numKernels)
	defer func() {
		for _, k := range kernels {
			if k != nil {
				k.Release()
			}
		}
	}()
	for kt := kernelType(0); kt < numKernels; kt++ {
		k, err := dev.Kernel(kt.String())
		if err != nil {
			return err
		}
		kernels[kt] = k
	}

	// initNodes always writes a reserved slot at index 1 in addition to the
	// root at index 0, so the bound must hold at least 2 slots even for a
	// single surviving primitive; 2*numPrims is a safe upper bound on the
	// worst case of 2*numValidPrims-1 nodes (every leaf holding one prim).
	maxNodes := 2 * numPrims
	if maxNodes < 2 {
		maxNodes = 2
	}
	bs, err := newBufferSet(dev, mem, numPrims, maxNodes)
	if err != nil {
		return err
	}
	defer bs.Release(dev)

	if err := bs.Boxes.WriteBoxes(boxes, 0); err != nil {
		return err
	}

	leafThreshold := cfg.resolvedLeafThreshold(effectiveMaxLeafSize)

	numValidPrims, err := runBuildStatePass(kernels, bs, numPrims)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	logger.Debugf("%d of %d primitives survived empty-box filtering", numValidPrims, numPrims)
	if numValidPrims == 0 {
		*out = *emptyBVH(countBits)
		return nil
	}

	if err := sorter.Sort(dev, bs.Keys, bs.PrimIDs, numValidPrims); err != nil {
		return err
	}

	numNodes, err := runTreeBuild(ctx, kernels, bs, numValidPrims, leafThreshold, countBits, maxNodes)
	if err != nil {
		return err
	}
	logger.Noticef("build produced %d nodes for %d primitives", numNodes, numValidPrims)

	write := kernels[writeFinalNodesKernel]
	if err := write.SetArgs(bs.FinalNodes, bs.TempNodes, int32(numNodes), int32(countBits)); err != nil {
		return err
	}
	if _, err := write.Exec1D(0, numNodes, 0); err != nil {
		return err
	}

	finalNodes := make([]uint32, numNodes)
	if err := bs.FinalNodes.ReadUint32s(0, finalNodes); err != nil {
		return err
	}
	primIDs := make([]uint32, numValidPrims)
	if err := bs.PrimIDs.ReadUint32s(0, primIDs); err != nil {
		return err
	}

	bvh := BVH{
		Nodes:     make([]Node, numNodes),
		Bounds:    make([]types.AABB3, numNodes),
		PrimIDs:   primIDs,
		NumNodes:  numNodes,
		NumPrims:  numValidPrims,
		countBits: countBits,
	}
	for i, raw := range finalNodes {
		bvh.Nodes[i] = Node(raw)
	}

	if err := refitter.Refit(&bvh, boxes); err != nil {
		return err
	}

	*out = bvh
	return nil
}

// emptyBVH is the degenerate result when no primitive survives filtering:
// a single empty leaf at the root.
func emptyBVH(countBits uint) *BVH {
	return &BVH{
		Nodes:     []Node{packNode(0, 0, countBits)},
		Bounds:    []types.AABB3{types.EmptyAABB3()},
		PrimIDs:   nil,
		NumNodes:  1,
		NumPrims:  0,
		countBits: countBits,
	}
}

// runBuildStatePass clears the build state, reduces the centroid bounds of
// all non-empty primitives, derives the quantizer from them, and compacts
// out empty primitives while computing their Morton keys. It returns the
// number of primitives that survived filtering.
func runBuildStatePass(kernels []*device.Kernel, bs *bufferSet, numPrims int) (int, error) {
	clear := kernels[clearBuildStateKernel]
	if err := clear.SetArgs(bs.State, int32(numPrims)); err != nil {
		return 0, err
	}
	if _, err := clear.Exec1D(0, 1, 0); err != nil {
		return 0, err
	}

	fill := kernels[fillBuildStateKernel]
	if err := fill.SetArgs(bs.State, bs.Boxes, int32(numPrims)); err != nil {
		return 0, err
	}
	if _, err := fill.Exec1D(0, numPrims, 0); err != nil {
		return 0, err
	}

	finish := kernels[finishBuildStateKernel]
	if err := finish.SetArgs(bs.State); err != nil {
		return 0, err
	}
	if _, err := finish.Exec1D(0, 1, 0); err != nil {
		return 0, err
	}

	keysAndIDs := kernels[computeUnsortedKeysAndPrimIDsKernel]
	if err := keysAndIDs.SetArgs(bs.Keys, bs.PrimIDs, bs.State, bs.Boxes, int32(numPrims)); err != nil {
		return 0, err
	}
	if _, err := keysAndIDs.Exec1D(0, numPrims, 0); err != nil {
		return 0, err
	}

	state, err := readBuildState(bs.State)
	if err != nil {
		return 0, err
	}
	if state.NumValidPrims < 0 {
		return 0, ErrBuildAborted
	}
	return int(state.NumValidPrims), nil
}

// runTreeBuild expands the tree breadth-first, one level per createNodes
// dispatch, reading back the allocation counter after each level to learn
// the next level's node range. It stops once a dispatch allocates no new
// nodes and returns the final node count.
func runTreeBuild(ctx context.Context, kernels []*device.Kernel, bs *bufferSet, numValidPrims, leafThreshold int, countBits uint, maxNodes int) (int, error) {
	init := kernels[initNodesKernel]
	if err := init.SetArgs(bs.State, bs.TempNodes, int32(numValidPrims)); err != nil {
		return 0, err
	}
	if _, err := init.Exec1D(0, 1, 0); err != nil {
		return 0, err
	}

	create := kernels[createNodesKernel]
	begin, end := 0, 1
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		levelSize := end - begin
		if err := create.SetArgs(bs.State, int32(leafThreshold), bs.TempNodes, int32(begin), int32(end), bs.Keys); err != nil {
			return 0, err
		}
		if _, err := create.Exec1D(0, levelSize, 0); err != nil {
			return 0, err
		}

		state, err := readBuildState(bs.State)
		if err != nil {
			return 0, err
		}
		alloced := int(state.NumNodesAlloced)
		logger.Debugf("BFS level [%d,%d) allocated %d nodes total", begin, end, alloced)
		if alloced > maxNodes {
			return 0, ErrBuildAborted
		}
		if alloced <= end {
			return end, nil
		}
		begin, end = end, alloced
	}
}

// readBuildState downloads the current BuildState record from the device.
// device.Buffer.ReadData requires a slice argument, so the single record
// is read into a length-1 slice and unwrapped.
func readBuildState(buf *device.Buffer) (buildStateRecord, error) {
	out := make([]buildStateRecord, 1)
	if err := buf.ReadData(0, 0, int(sizeofBuildState), out); err != nil {
		return buildStateRecord{}, err
	}
	return out[0], nil
}
