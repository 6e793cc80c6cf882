package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/achilleasa/lbvh/lbvh"
	"github.com/achilleasa/lbvh/device"
	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// findDevice returns the first opencl device whose name contains the
// requested substring, or the first available device of any type if no
// name filter was given.
func findDevice(name string) (*device.Device, error) {
	devList, err := device.SelectDevices(device.AllDevices, name)
	if err != nil {
		return nil, err
	}
	if len(devList) == 0 {
		return nil, fmt.Errorf("lbvhtool: no opencl device matches %q", name)
	}
	return devList[0], nil
}

// Build loads a scene file, builds a linear BVH on a chosen opencl device
// and prints the resulting tree statistics.
func Build(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("missing scene file argument")
	}

	runID := uuid.New().String()
	logger.Noticef("build %s: starting", runID)

	boxes, err := readBoxScene(ctx.Args().First())
	if err != nil {
		return err
	}

	dev, err := findDevice(ctx.String("device"))
	if err != nil {
		return err
	}
	logger.Noticef(`build %s: using device "%s"`, runID, dev.Name)
	defer dev.Close()

	cfg := lbvh.BuildConfig{
		LeafThreshold:      ctx.Int("leaf-threshold"),
		MaxAllowedLeafSize: ctx.Int("max-leaf-size"),
	}

	cctx := context.Background()
	if timeout := ctx.Duration("timeout"); timeout > 0 {
		var cancel context.CancelFunc
		cctx, cancel = context.WithTimeout(cctx, timeout)
		defer cancel()
	}

	start := time.Now()
	var bvh lbvh.BVH
	if err := lbvh.Build(cctx, &bvh, boxes, cfg, dev, nil); err != nil {
		return fmt.Errorf("build %s: %w", runID, err)
	}
	elapsed := time.Since(start)

	displayBuildStats(runID, &bvh, len(boxes), elapsed)
	return nil
}

// displayBuildStats renders a build-run summary as a table, mirroring the
// frame-statistics table printed after a render.
func displayBuildStats(runID string, bvh *lbvh.BVH, numInputPrims int, elapsed time.Duration) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Run", "Input prims", "Valid prims", "Nodes", "Leaves", "Max depth", "Build time"})
	leaves, maxDepth := treeShape(bvh)
	table.Append([]string{
		runID,
		fmt.Sprintf("%d", numInputPrims),
		fmt.Sprintf("%d", bvh.NumPrims),
		fmt.Sprintf("%d", bvh.NumNodes),
		fmt.Sprintf("%d", leaves),
		fmt.Sprintf("%d", maxDepth),
		fmt.Sprintf("%s", elapsed),
	})
	table.Render()

	logger.Noticef("build statistics\n%s", buf.String())
}

// treeShape walks the tree and returns the number of leaf nodes and the
// maximum root-to-leaf depth.
func treeShape(bvh *lbvh.BVH) (leaves, maxDepth int) {
	var walk func(nodeIdx, depth int)
	walk = func(nodeIdx, depth int) {
		if depth > maxDepth {
			maxDepth = depth
		}
		n := bvh.Nodes[nodeIdx]
		if bvh.IsLeaf(n) {
			leaves++
			return
		}
		left := int(bvh.Offset(n))
		walk(left, depth+1)
		walk(left+1, depth+1)
	}
	walk(0, 0)
	return leaves, maxDepth
}
