// Package cli contains the robot2017 command line actions.
package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/TechnoJays/robot2017/autonomous"
	"github.com/TechnoJays/robot2017/logging"
	"github.com/TechnoJays/robot2017/robot"
)

const (
	// Global flags.
	flagConfig  = "config"
	flagOverlay = "overlay"
	flagDebug   = "debug"
	flagLogFile = "log-file"

	// Simulate flags.
	flagRoutine     = "routine"
	flagPosition    = "position"
	flagAutonomous  = "autonomous"
	flagTeleop      = "teleop"
	flagLeftStick   = "left-stick"
	flagRightStick  = "right-stick"
	flagRealtime    = "realtime"
	flagMetricsAddr = "metrics-addr"

	defaultConfigDir = "etc/configs"
)

// AutonomousPeriod is the length of the autonomous period of a match.
const AutonomousPeriod = 15 * time.Second

// NewApp returns the robot2017 command line application writing its
// reports to out.
func NewApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:   "robot2017",
		Usage:  "run the 2017 robot control program",
		Writer: out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagConfig,
				Aliases: []string{"c"},
				Value:   defaultConfigDir,
				Usage:   "read configuration files from `DIR`",
			},
			&cli.StringSliceFlag{
				Name:  flagOverlay,
				Usage: "override configuration keys with the files in `DIR`",
			},
			&cli.BoolFlag{
				Name:    flagDebug,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
			&cli.StringFlag{
				Name:  flagLogFile,
				Usage: "also write logs to the rotated JSON log `FILE`",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "check-config",
				Usage:  "read and validate the configuration",
				Action: CheckConfigAction,
			},
			{
				Name:   "routines",
				Usage:  "list the autonomous routines",
				Action: RoutinesAction,
			},
			{
				Name:  "simulate",
				Usage: "play a match against a simulated drivetrain",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  flagRoutine,
						Usage: "autonomous routine to run",
						Value: autonomous.DefaultName,
					},
					&cli.IntFlag{
						Name:  flagPosition,
						Usage: "starting position, 1 to 3",
						Value: 1,
					},
					&cli.DurationFlag{
						Name:  flagAutonomous,
						Usage: "length of the autonomous period",
						Value: AutonomousPeriod,
					},
					&cli.DurationFlag{
						Name:  flagTeleop,
						Usage: "length of the teleop period; zero skips teleop",
					},
					&cli.Float64Flag{
						Name:  flagLeftStick,
						Usage: "driver left stick position held during teleop",
					},
					&cli.Float64Flag{
						Name:  flagRightStick,
						Usage: "driver right stick position held during teleop",
					},
					&cli.BoolFlag{
						Name:  flagRealtime,
						Usage: "run on the wall clock instead of as fast as possible",
					},
					&cli.StringFlag{
						Name:  flagMetricsAddr,
						Usage: "serve the dashboard as prometheus metrics on `ADDR`",
					},
				},
				Action: SimulateAction,
			},
		},
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// loggerFrom builds the logger selected by the global flags. The closer
// releases the log file, if any.
func loggerFrom(c *cli.Context) (logging.Logger, io.Closer) {
	level := logging.INFO
	if c.Bool(flagDebug) {
		level = logging.DEBUG
	}
	if path := c.String(flagLogFile); path != "" {
		return logging.NewFileLogger("robot2017", level, path)
	}
	if level == logging.DEBUG {
		return logging.NewDebugLogger("robot2017"), nopCloser{}
	}
	return logging.NewLogger("robot2017"), nopCloser{}
}

func readConfig(c *cli.Context) (robot.Config, error) {
	return robot.ReadConfig(c.String(flagConfig), c.StringSlice(flagOverlay)...)
}

// CheckConfigAction reads the configuration and reports whether it is
// valid.
func CheckConfigAction(c *cli.Context) error {
	if _, err := readConfig(c); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "configuration in %s is valid\n", c.String(flagConfig))
	return nil
}

// RoutinesAction lists the autonomous routines, marking the default.
func RoutinesAction(c *cli.Context) error {
	cfg, err := readConfig(c)
	if err != nil {
		return err
	}
	chooser := autonomous.NewChooser(cfg.Autonomous, nil, nil)
	for _, name := range chooser.Options() {
		if name == chooser.SelectedName() {
			fmt.Fprintf(c.App.Writer, "%s (default)\n", name)
			continue
		}
		fmt.Fprintf(c.App.Writer, "%s\n", name)
	}
	return nil
}
