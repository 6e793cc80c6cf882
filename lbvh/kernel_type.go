package lbvh

import "fmt"

type kernelType uint8

// The kernels that implement the build, loaded by name from lbvh/cl/lbvh.cl.
const (
	clearBuildStateKernel kernelType = iota
	fillBuildStateKernel
	finishBuildStateKernel
	computeUnsortedKeysAndPrimIDsKernel
	initNodesKernel
	createNodesKernel
	writeFinalNodesKernel
	numKernels
)

// String implements Stringer; maps a kernel type to its name in the CL
// source.
func (kt kernelType) String() string {
	switch kt {
	case clearBuildStateKernel:
		return "clearBuildState"
	case fillBuildStateKernel:
		return "fillBuildState"
	case finishBuildStateKernel:
		return "finishBuildState"
	case computeUnsortedKeysAndPrimIDsKernel:
		return "computeUnsortedKeysAndPrimIDs"
	case initNodesKernel:
		return "initNodes"
	case createNodesKernel:
		return "createNodes"
	case writeFinalNodesKernel:
		return "writeFinalNodes"
	default:
		panic(fmt.Sprintf("lbvh: unsupported kernel type: %d", kt))
	}
}
