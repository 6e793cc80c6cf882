package device

import (
	"testing"
	"unsafe"

	"github.com/achilleasa/gopencl/v1.2/cl"
)

func TestKernelExec1DWithAutoLocalWorkSize(t *testing.T) {
	dev, err := createCpuTestDevice()
	if err != nil {
		t.Fatal(err)
	}
	defer dev.Close()

	kernel, err := dev.Kernel("square")
	if err != nil {
		t.Fatal(err)
	}
	defer kernel.Release()

	dataSize := 32
	dataIn := make([]int32, dataSize)
	dataOut := make([]int32, dataSize)
	for i := 0; i < dataSize; i++ {
		dataIn[i] = int32(i)
	}

	bufIn := dev.Buffer("in")
	defer bufIn.Release()
	if err := bufIn.Allocate(dataSize*int(unsafe.Sizeof(dataIn[0])), cl.MEM_READ_WRITE); err != nil {
		t.Fatal(err)
	}
	if err := bufIn.WriteData(dataIn, 0); err != nil {
		t.Fatal(err)
	}

	bufOut := dev.Buffer("out")
	defer bufOut.Release()
	if err := bufOut.Allocate(dataSize*int(unsafe.Sizeof(dataOut[0])), cl.MEM_READ_WRITE); err != nil {
		t.Fatal(err)
	}

	var size uint32 = uint32(dataSize)
	err = kernel.SetArgs(
		bufIn,
		bufOut,
		size,
	)
	if err != nil {
		t.Fatal(err)
	}

	_, err = kernel.Exec1D(0, dataSize, 0)
	if err != nil {
		t.Fatal(err)
	}

	// Fetch and validate output
	bufOut.ReadData(0, 0, 0, dataOut)
	for i := 0; i < dataSize; i++ {
		expValue := dataIn[i] * dataIn[i]
		if dataOut[i] != expValue {
			t.Fatalf("[item %d] expected squared value of %d to be %d; got %d", i, dataIn[i], expValue, dataOut[i])
		}
	}
}

func TestKernelExec1D(t *testing.T) {
	dev, err := createCpuTestDevice()
	if err != nil {
		t.Fatal(err)
	}
	defer dev.Close()

	kernel, err := dev.Kernel("square")
	if err != nil {
		t.Fatal(err)
	}
	defer kernel.Release()

	dataSize := 32
	dataIn := make([]int32, dataSize)
	dataOut := make([]int32, dataSize)
	for i := 0; i < dataSize; i++ {
		dataIn[i] = int32(i)
	}

	bufIn := dev.Buffer("in")
	defer bufIn.Release()
	if err := bufIn.Allocate(dataSize*int(unsafe.Sizeof(dataIn[0])), cl.MEM_READ_WRITE); err != nil {
		t.Fatal(err)
	}
	if err := bufIn.WriteData(dataIn, 0); err != nil {
		t.Fatal(err)
	}

	bufOut := dev.Buffer("out")
	defer bufOut.Release()
	if err := bufOut.Allocate(dataSize*int(unsafe.Sizeof(dataOut[0])), cl.MEM_READ_WRITE); err != nil {
		t.Fatal(err)
	}

	var size uint32 = uint32(dataSize)
	err = kernel.SetArgs(
		bufIn,
		bufOut,
		size,
	)
	if err != nil {
		t.Fatal(err)
	}

	_, err = kernel.Exec1D(0, dataSize, 1)
	if err != nil {
		t.Fatal(err)
	}

	// Fetch and validate output
	bufOut.ReadData(0, 0, 0, dataOut)
	for i := 0; i < dataSize; i++ {
		expValue := dataIn[i] * dataIn[i]
		if dataOut[i] != expValue {
			t.Fatalf("[item %d] expected squared value of %d to be %d; got %d", i, dataIn[i], expValue, dataOut[i])
		}
	}
}
