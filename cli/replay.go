package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"

	"go.viam.com/groundstation/config"
	"go.viam.com/groundstation/groundstation"
	"go.viam.com/groundstation/logging"
	"go.viam.com/groundstation/ros"
	"go.viam.com/groundstation/telemetry"
)

// ReplayAction replays a bag through a ground station and writes snapshots of the view.
func ReplayAction(c *cli.Context) (err error) {
	logger := newLogger(c)
	conf, err := loadConfig(c.String(configFlag), logger)
	if err != nil {
		return err
	}
	config.UpdateFileConfigDebug(conf.Debug)
	if conf.LogLevel != "" {
		level, err := logging.LevelFromString(conf.LogLevel)
		if err != nil {
			return err
		}
		logger.SetLevel(level)
	}

	outDir := c.String(outFlag)
	if err := os.MkdirAll(outDir, 0o750); err != nil {
		return errors.Wrap(err, "error creating snapshot directory")
	}

	steerOut := c.App.Writer
	if path := c.String(steerOutFlag); path != "" {
		//nolint:gosec
		f, createErr := os.Create(path)
		if createErr != nil {
			return errors.Wrap(createErr, "error creating steering output")
		}
		defer func() {
			err = multierr.Combine(err, f.Close())
		}()
		steerOut = f
	}

	runID := uuid.New().String()[:8]
	ctx := logging.WithRunID(c.Context, runID)
	if c.Bool(debugFlag) {
		ctx = logging.EnableDebugMode(ctx, "")
	}

	rb, err := ros.ReadBag(c.String(bagFlag))
	if err != nil {
		return err
	}
	streams, err := ros.CollectTopics(rb, ros.Topics(conf.TopicMap()), logger)
	if err != nil {
		return err
	}
	msgs, err := ros.MergeTopics(streams)
	if err != nil {
		return err
	}
	logger.Infow("replaying bag", "path", c.String(bagFlag), "messages", len(msgs), "run", runID)

	station, err := groundstation.New(conf, ros.NewSteeringWriter(steerOut, conf.SteeringFrame), clock.New(), logger)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Combine(err, station.Close())
	}()

	r := &replayer{station: station, outDir: outDir, runID: runID, everyDEM: c.Bool(everyDEMFlag)}
	opts := ros.ReplayOptions{Realtime: c.Bool(realtimeFlag), Speed: c.Float64(speedFlag)}
	accepted, err := ros.Replay(ctx, msgs, r.dispatch, opts, logger)
	if err != nil {
		return err
	}
	if r.err != nil {
		return r.err
	}

	final := ""
	if station.Ready() {
		final = r.snapshotPath("final")
		if err := station.SaveSnapshot(final); err != nil {
			return err
		}
	} else {
		logger.Warn("no DEM in bag, nothing to render")
	}
	printSummary(c.App.ErrWriter, accepted, len(msgs), r.saved, final)
	return nil
}

type replayer struct {
	station  *groundstation.Station
	outDir   string
	runID    string
	everyDEM bool

	dems  int
	saved int
	err   error
}

func (r *replayer) dispatch(ctx context.Context, ev telemetry.Event) error {
	if err := r.station.Dispatch(ctx, ev); err != nil {
		return err
	}
	if !r.everyDEM || ev.Kind() != telemetry.KindElevation {
		return nil
	}
	r.dems++
	if err := r.station.SaveSnapshot(r.snapshotPath(fmt.Sprintf("dem-%04d", r.dems))); err != nil {
		r.err = multierr.Append(r.err, err)
		return nil
	}
	r.saved++
	return nil
}

func (r *replayer) snapshotPath(suffix string) string {
	return filepath.Join(r.outDir, fmt.Sprintf("groundstation-%s-%s.png", r.runID, suffix))
}

func newLogger(c *cli.Context) logging.Logger {
	var logger logging.Logger
	if c.Bool(debugFlag) {
		logger = logging.NewDebugLogger("groundstation")
	} else {
		logger = logging.NewLogger("groundstation")
	}
	config.InitLoggingSettings(logger, c.Bool(debugFlag))
	return logger
}

// loadConfig reads path, or returns the defaults when no path is given.
func loadConfig(path string, logger logging.Logger) (*config.Config, error) {
	if path != "" {
		return config.Read(path, logger)
	}
	conf := &config.Config{}
	conf.ApplyDefaults()
	if err := conf.Validate("config"); err != nil {
		return nil, err
	}
	return conf, nil
}

func printSummary(w io.Writer, accepted, total, saved int, final string) {
	printf(w, "replayed %d of %d messages", accepted, total)
	if saved > 0 {
		printf(w, "saved %d DEM snapshots", saved)
	}
	if final != "" {
		printf(w, "final view written to %s", final)
	}
}
