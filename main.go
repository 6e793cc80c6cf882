package main

import (
	"os"

	"github.com/achilleasa/lbvh/cmd"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "lbvhtool"
	app.Usage = "build a linear BVH over a point/AABB set using a GPU-parallel Morton-code builder"
	app.Version = "0.0.1"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "build",
			Usage:     "build a linear BVH over a scene file and print tree statistics",
			ArgsUsage: "scene_file.txt",
			Description: `
Read a text scene file containing one point (3 numbers) or AABB (6 numbers)
per line, build a linear BVH on an opencl device and print the resulting
tree statistics. Lines starting with "#" and blank lines are ignored.`,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "device",
					Value: "",
					Usage: "substring to match against available opencl device names; empty matches any device",
				},
				cli.IntFlag{
					Name:  "leaf-threshold",
					Value: 0,
					Usage: "largest primitive count a leaf may hold before splitting further (0 = split to singletons)",
				},
				cli.IntFlag{
					Name:  "max-leaf-size",
					Value: 0,
					Usage: "upper clamp on leaf size and the node layout's count field width (0 = no clamp)",
				},
				cli.DurationFlag{
					Name:  "timeout",
					Usage: "abort the build if it has not finished after this duration (0 = no timeout)",
				},
			},
			Action: cmd.Build,
		},
		{
			Name:   "devices",
			Usage:  "list available opencl devices",
			Action: cmd.ListDevices,
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		os.Exit(1)
	}
}
