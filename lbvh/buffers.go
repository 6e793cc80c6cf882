package lbvh

import "github.com/achilleasa/lbvh/device"

const (
	sizeofBox3      = 24 // two [3]float32 arrays, no padding
	sizeofMortonKey = 8  // uint64
	sizeofPrimID    = 4  // uint32
	sizeofTempNode  = 8  // two uint32
	sizeofFinalNode = 4  // uint32
)

// bufferSet holds every device allocation a single Build call needs.
type bufferSet struct {
	mem MemoryResource

	Boxes      *device.Buffer
	State      *device.Buffer
	Keys       *device.Buffer
	PrimIDs    *device.Buffer
	TempNodes  *device.Buffer
	FinalNodes *device.Buffer
}

// newBufferSet allocates every buffer sized for a build over numPrims
// primitives. maxNodes bounds the temp/final node arrays; the worst case
// (every leaf holding a single primitive) needs 2*numPrims-1 nodes, and
// Build passes 2*numPrims (at least 2) because initNodes also writes slot 1.
func newBufferSet(dev *device.Device, mem MemoryResource, numPrims, maxNodes int) (*bufferSet, error) {
	bs := &bufferSet{mem: mem}

	var err error
	if bs.Boxes, err = mem.Allocate(numPrims*sizeofBox3, dev); err != nil {
		bs.Release(dev)
		return nil, err
	}
	if bs.State, err = mem.Allocate(int(sizeofBuildState), dev); err != nil {
		bs.Release(dev)
		return nil, err
	}
	if bs.Keys, err = mem.Allocate(numPrims*sizeofMortonKey, dev); err != nil {
		bs.Release(dev)
		return nil, err
	}
	if bs.PrimIDs, err = mem.Allocate(numPrims*sizeofPrimID, dev); err != nil {
		bs.Release(dev)
		return nil, err
	}
	if bs.TempNodes, err = mem.Allocate(maxNodes*sizeofTempNode, dev); err != nil {
		bs.Release(dev)
		return nil, err
	}
	if bs.FinalNodes, err = mem.Allocate(maxNodes*sizeofFinalNode, dev); err != nil {
		bs.Release(dev)
		return nil, err
	}

	return bs, nil
}

// Release frees every allocated buffer via the owning MemoryResource.
func (bs *bufferSet) Release(dev *device.Device) {
	for _, buf := range []*device.Buffer{bs.Boxes, bs.State, bs.Keys, bs.PrimIDs, bs.TempNodes, bs.FinalNodes} {
		if buf != nil {
			bs.mem.Free(buf, dev)
		}
	}
}
