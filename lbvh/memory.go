package lbvh

import (
	"fmt"
	"sync/atomic"

	"github.com/achilleasa/gopencl/v1.2/cl"
	"github.com/achilleasa/lbvh/device"
)

// MemoryResource is the stream-ordered allocator collaborator that backs
// every buffer a build needs. Implementations must not block the host
// beyond the minimum needed to return an allocation.
type MemoryResource interface {
	Allocate(nbytes int, stream *device.Device) (*device.Buffer, error)
	Free(buf *device.Buffer, stream *device.Device)
}

// DeviceMemoryResource is the default MemoryResource: every allocation is
// a plain OpenCL read/write buffer on the device's command queue, and Free
// releases it immediately. A pooling resource could satisfy the same
// interface for builds that run back-to-back.
type DeviceMemoryResource struct{}

var bufferSeq uint64

func (DeviceMemoryResource) Allocate(nbytes int, stream *device.Device) (*device.Buffer, error) {
	name := fmt.Sprintf("lbvh-buffer-%d", atomic.AddUint64(&bufferSeq, 1))
	buf := stream.Buffer(name)
	if err := buf.Allocate(nbytes, cl.MEM_READ_WRITE); err != nil {
		return nil, err
	}
	return buf, nil
}

func (DeviceMemoryResource) Free(buf *device.Buffer, stream *device.Device) {
	buf.Release()
}
