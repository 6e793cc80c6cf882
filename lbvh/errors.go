package lbvh

import "errors"

var (
	ErrInvalidDevice = errors.New("lbvh: invalid device handle")
	ErrInvalidOutput = errors.New("lbvh: out must be a non-nil *BVH")
	ErrBuildAborted  = errors.New("lbvh: build aborted due to a device error")
)
