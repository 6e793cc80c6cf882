package device

import (
	"fmt"
	"reflect"
	"unsafe"

	"github.com/achilleasa/gopencl/v1.2/cl"
	"github.com/achilleasa/lbvh/types"
)

type Buffer struct {
	// Handle to opencl buffer.
	bufHandle cl.Mem

	// Associated Device.
	device *Device

	// A name for identifying the buffer.
	name string

	// Allocated size.
	size int
}

// Get buffer size.
func (b *Buffer) Size() int {
	return b.size
}

// Allocate a buffer with the given size and flags.
func (b *Buffer) Allocate(size int, flags cl.MemFlags) error {
	var errPtr *int32

	// If the buffer is alreay allocated release it
	b.Release()

	b.bufHandle = cl.CreateBuffer(
		*b.device.ctx,
		flags,
		cl.MemFlags(size),
		nil,
		errPtr,
	)

	if errPtr != nil && cl.ErrorCode(*errPtr) != cl.SUCCESS {
		return fmt.Errorf("opencl device (%s): could not allocate buffer %s of size %d (errCode %d)", b.device.Name, b.name, size, cl.ErrorCode(*errPtr))
	}

	b.size = size

	return nil
}

// WriteData copies a slice to the device buffer. It backs the typed
// WriteBoxes/WriteMortonKeys/WriteUint32s helpers below. The
// behavior of this method is undefined if a non-slice argument is passed
// or the argument does not use contiguous memory. A byte offset may also
// be specified to adjust the actual data copied.
func (b *Buffer) WriteData(data interface{}, offset int) error {

	dataPtr, dataLen := getSliceData(data)

	if dataLen > b.size {
		return fmt.Errorf("opencl device(%s): insufficient buffer space (%d) in %s for copying data of length %d", b.device.Name, b.size, b.name, dataLen)
	}

	errCode := cl.EnqueueWriteBuffer(
		b.device.cmdQueue,
		b.bufHandle,
		cl.TRUE,
		uint64(offset),
		uint64(dataLen-offset),
		dataPtr,
		0,
		nil,
		nil,
	)

	if errCode != cl.SUCCESS {
		return fmt.Errorf("opencl device(%s): error copying host data to device buffer %s (errCode %d)", b.device.Name, b.name, errCode)
	}

	return nil
}

// ReadData copies device memory into the supplied slice. It backs the
// typed ReadMortonKeys/ReadUint32s helpers below, and is used directly
// only for the build-state record (see readBuildState in this module's
// caller), whose type this package can't name without an import cycle.
// The behavior of this method is undefined if a non-slice argument is
// passed or if the argument does not use contiguous memory.
//
// If size is <= 0 then ReadData will read the entire bufer. Both src and dst
// offsets are specified in bytes.
func (b *Buffer) ReadData(srcOffset, dstOffset, size int, hostBuffer interface{}) error {
	if size <= 0 {
		size = b.size
	}

	dataPtr, _ := getSliceData(hostBuffer)

	errCode := cl.EnqueueReadBuffer(
		b.device.cmdQueue,
		b.bufHandle,
		cl.TRUE,
		uint64(srcOffset),
		uint64(size),
		unsafe.Pointer(uintptr(dataPtr)+uintptr(dstOffset)),
		0,
		nil,
		nil,
	)

	if errCode != cl.SUCCESS {
		return fmt.Errorf("opencl device(%s): error copying device data from %s to host buffer (errCode %d)", b.device.Name, b.name, errCode)
	}

	return nil
}

// WriteBoxes uploads the input primitive boxes to the buffer backing a
// build's Boxes allocation.
func (b *Buffer) WriteBoxes(boxes []types.AABB3, offset int) error {
	return b.WriteData(boxes, offset)
}

// WriteMortonKeys uploads a full key buffer, used by PairSorter
// implementations to push a re-sorted key buffer back to the device.
func (b *Buffer) WriteMortonKeys(keys []uint64, offset int) error {
	return b.WriteData(keys, offset)
}

// ReadMortonKeys downloads len(out) keys starting at srcOffset bytes into
// out, used by PairSorter implementations to bring keys to the host for
// sorting.
func (b *Buffer) ReadMortonKeys(srcOffset int, out []uint64) error {
	return b.ReadData(srcOffset, 0, len(out)*8, out)
}

// WriteUint32s uploads primitive IDs or packed node words to the buffer.
func (b *Buffer) WriteUint32s(vals []uint32, offset int) error {
	return b.WriteData(vals, offset)
}

// ReadUint32s downloads len(out) uint32 words (primitive IDs or packed
// node words) starting at srcOffset bytes into out.
func (b *Buffer) ReadUint32s(srcOffset int, out []uint32) error {
	return b.ReadData(srcOffset, 0, len(out)*4, out)
}

// Release buffer.
func (b *Buffer) Release() {
	if b.bufHandle != nil {
		cl.ReleaseMemObject(b.bufHandle)
		b.bufHandle = nil
	}
}

// Get opencl buffer handle.
func (b *Buffer) Handle() cl.Mem {
	return b.bufHandle
}

// Given an interface{} containing a slice return a pointer to its data and its length.
func getSliceData(data interface{}) (unsafe.Pointer, int) {
	reflVal := reflect.ValueOf(data)

	if reflVal.Kind() != reflect.Slice {
		panic("getSliceData: this function only supports slices")
	}

	sliceElemCount := reflVal.Len()
	if sliceElemCount == 0 {
		panic("getSliceData: supplied slice object is empty")
	}

	return unsafe.Pointer(reflVal.Index(0).Addr().Pointer()),
		sliceElemCount * int(reflect.TypeOf(data).Elem().Size())
}
