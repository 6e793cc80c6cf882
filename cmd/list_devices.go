package cmd

import (
	"bytes"
	"fmt"

	"github.com/achilleasa/lbvh/device"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// ListDevices prints every opencl platform and its CPU and GPU devices, along
// with its estimated GFlops speed, so a build run can pick a device by name.
func ListDevices(ctx *cli.Context) error {
	setupLogging(ctx)

	platforms, err := device.GetPlatformInfo()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Platform", "Device", "Type", "Speed (GFlops)"})
	for _, platform := range platforms {
		for _, d := range platform.Devices {
			table.Append([]string{
				platform.Name,
				d.Name,
				d.Type.String(),
				fmt.Sprintf("%d", d.Speed),
			})
		}
	}
	table.Render()

	logger.Noticef("available opencl devices\n%s", buf.String())
	return nil
}
