// Package cli implements the groundstation command line.
package cli

import (
	"io"

	"github.com/urfave/cli/v2"
)

const (
	// Flags.
	configFlag   = "config"
	debugFlag    = "debug"
	bagFlag      = "bag"
	outFlag      = "out"
	steerOutFlag = "steer-out"
	realtimeFlag = "realtime"
	speedFlag    = "speed"
	everyDEMFlag = "every-dem"
)

var app = &cli.App{
	Name:            "groundstation",
	Usage:           "render rover telemetry into a ground station view",
	HideHelpCommand: true,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    configFlag,
			Aliases: []string{"c"},
			Usage:   "load configuration from `FILE`",
		},
		&cli.BoolFlag{
			Name:    debugFlag,
			Aliases: []string{"vvv"},
			Usage:   "enable debug logging",
		},
	},
	Commands: []*cli.Command{
		{
			Name:      "replay",
			Usage:     "replay a recorded bag through the ground station and save the resulting view",
			UsageText: "groundstation replay --bag <path> [--out <dir>]",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     bagFlag,
					Aliases:  []string{"b"},
					Usage:    "rosbag `FILE` to replay",
					Required: true,
				},
				&cli.StringFlag{
					Name:  outFlag,
					Usage: "`DIR` to write snapshots to",
					Value: ".",
				},
				&cli.StringFlag{
					Name:  steerOutFlag,
					Usage: "write steering commands as JSON lines to `FILE` instead of stdout",
				},
				&cli.BoolFlag{
					Name:  realtimeFlag,
					Usage: "wait out the recorded gaps between messages",
				},
				&cli.Float64Flag{
					Name:  speedFlag,
					Usage: "playback speed multiplier for --realtime",
					Value: 1,
				},
				&cli.BoolFlag{
					Name:  everyDEMFlag,
					Usage: "save a snapshot after every DEM instead of only at the end",
				},
			},
			Action: ReplayAction,
		},
		{
			Name:   "version",
			Usage:  "print version info for this program",
			Action: VersionAction,
		},
	},
}

// NewApp returns a new app with the CLI API, Writer set to out, and ErrWriter
// set to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	app.Writer = out
	app.ErrWriter = errOut
	return app
}
