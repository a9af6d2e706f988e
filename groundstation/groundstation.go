// Package groundstation wires inbound telemetry, the scene and steering together into the
// operator's ground station view.
package groundstation

import (
	"context"
	"image"
	"sync"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.viam.com/groundstation/config"
	"go.viam.com/groundstation/logging"
	"go.viam.com/groundstation/rimage"
	"go.viam.com/groundstation/scene"
	"go.viam.com/groundstation/services/steering"
	"go.viam.com/groundstation/telemetry"
	"go.viam.com/groundstation/utils"
)

// Status is what the operator panel shows next to the map.
type Status struct {
	X, Y, Z          float64
	Roll, Pitch, Yaw float64
	Fuel             float64
	GoalID           string
	GoalX, GoalY     float64
}

// Station owns the scene and routes telemetry to it. Handlers run on the goroutine calling Run
// or Dispatch; Status and Snapshot may be called from any goroutine.
type Station struct {
	logger     logging.Logger
	dispatcher *telemetry.Dispatcher
	canvas     *scene.Canvas
	scene      *scene.Controller
	steering   *steering.Service

	workers utils.StoppableWorkers
	runDone chan struct{}

	mu     sync.Mutex
	status Status
}

// New builds a station from conf. Steering commands go to publisher, which may be nil.
func New(conf *config.Config, publisher steering.Publisher, clk clock.Clock, logger logging.Logger) (*Station, error) {
	if conf == nil {
		return nil, errors.New("ground station needs a config")
	}
	opts, err := conf.SceneOptions()
	if err != nil {
		return nil, err
	}
	canvas := scene.NewCanvas(conf.Viewport.Width, conf.Viewport.Height)
	controller, err := scene.NewController(canvas, opts, logger.Sublogger("scene"))
	if err != nil {
		return nil, err
	}

	s := &Station{
		logger:     logger,
		dispatcher: telemetry.NewDispatcher(telemetry.DefaultQueueSize, logger.Sublogger("dispatcher")),
		canvas:     canvas,
		scene:      controller,
		steering:   steering.New(publisher, clk, logger.Sublogger("steering")),
		status:     Status{GoalID: steering.NoGoal},
	}
	s.steering.OnSteer(func(angle float64) {
		if err := s.sceneResult(scene.SteeringArrow, s.scene.HandleSteer(angle)); err != nil {
			s.logger.Warnw("could not draw steering arrow", "error", err)
		}
	})

	s.dispatcher.Subscribe(telemetry.KindElevation, s.handleElevation)
	s.dispatcher.Subscribe(telemetry.KindHazard, s.handleHazard)
	s.dispatcher.Subscribe(telemetry.KindRobotState, s.handleRobotState)
	s.dispatcher.Subscribe(telemetry.KindGoal, s.handleGoal)
	s.dispatcher.Subscribe(telemetry.KindJoy, s.handleJoy)
	return s, nil
}

// sceneResult turns a deferred overlay into a debug line rather than a dropped event.
func (s *Station) sceneResult(kind scene.OverlayKind, err error) error {
	if scene.IsMissingRasterError(err) {
		s.logger.Debugw("overlay waiting for first DEM", "overlay", kind)
		return nil
	}
	return err
}

func (s *Station) handleElevation(ctx context.Context, ev telemetry.Event) error {
	img, ok := ev.(telemetry.ElevationImage)
	if !ok {
		return utils.NewUnexpectedTypeError(telemetry.ElevationImage{}, ev)
	}
	grid, err := rimage.DecodeElevation(img.Width, img.Height, img.Encoding, img.Data)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scene.HandleElevation(grid)
}

func (s *Station) handleHazard(ctx context.Context, ev telemetry.Event) error {
	img, ok := ev.(telemetry.HazardImage)
	if !ok {
		return utils.NewUnexpectedTypeError(telemetry.HazardImage{}, ev)
	}
	grid, err := rimage.DecodeHazard(img.Width, img.Height, img.Encoding, img.Data)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sceneResult(scene.HazardOverlay, s.scene.HandleHazard(grid))
}

func (s *Station) handleRobotState(ctx context.Context, ev telemetry.Event) error {
	state, ok := ev.(telemetry.RobotState)
	if !ok || state.Pose == nil {
		return utils.NewUnexpectedTypeError(telemetry.RobotState{}, ev)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p := state.Pose.Point()
	ea := state.Pose.Orientation().EulerAngles()
	s.status.X, s.status.Y, s.status.Z = p.X, p.Y, p.Z
	s.status.Roll, s.status.Pitch, s.status.Yaw = ea.Roll, ea.Pitch, ea.Yaw
	s.status.Fuel = state.Fuel
	return s.sceneResult(scene.RobotMarker, s.scene.HandleRobotState(state.Pose))
}

func (s *Station) handleGoal(ctx context.Context, ev telemetry.Event) error {
	goal, ok := ev.(telemetry.NamedGoal)
	if !ok {
		return utils.NewUnexpectedTypeError(telemetry.NamedGoal{}, ev)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.status.GoalID, s.status.GoalX, s.status.GoalY = goal.ID, goal.X, goal.Y
	s.steering.HandleGoal(goal.ID, goal.X, goal.Y)
	return s.sceneResult(scene.GoalMarker, s.scene.HandleGoal(goal.ID, goal.X, goal.Y))
}

func (s *Station) handleJoy(ctx context.Context, ev telemetry.Event) error {
	joy, ok := ev.(telemetry.Joy)
	if !ok {
		return utils.NewUnexpectedTypeError(telemetry.Joy{}, ev)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.steering.HandleJoy(ctx, joy.Axes)
}

// Dispatch handles ev on the calling goroutine.
func (s *Station) Dispatch(ctx context.Context, ev telemetry.Event) error {
	return s.dispatcher.Dispatch(ctx, ev)
}

// Publish queues ev for Run.
func (s *Station) Publish(ctx context.Context, ev telemetry.Event) error {
	return s.dispatcher.Publish(ctx, ev)
}

// Run handles published events until ctx is done or the station is closed.
func (s *Station) Run(ctx context.Context) error {
	return s.dispatcher.Run(ctx)
}

// Status returns the operator panel values.
func (s *Station) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Ready reports whether a DEM has been drawn.
func (s *Station) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scene.Ready()
}

// LastSteering returns the most recent steering command sent downstream.
func (s *Station) LastSteering() (steering.Command, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.steering.LastCommand()
}

// Resize changes the output size and refits the scene.
func (s *Station) Resize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.canvas.SetViewport(width, height)
	s.scene.Resize()
}

// Snapshot renders the current view.
func (s *Station) Snapshot() *image.NRGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canvas.Render()
}

// SaveSnapshot renders the current view to a PNG file.
func (s *Station) SaveSnapshot(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canvas.SavePNG(path)
}

// SaveSettings hands the host's settings store to the scene.
func (s *Station) SaveSettings(store config.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scene.SaveSettings(store)
}

// RestoreSettings hands the host's settings store to the scene.
func (s *Station) RestoreSettings(store config.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scene.RestoreSettings(store)
}

// Start runs the dispatch loop in the background so events handed to Publish are handled
// without a caller driving Run.
func (s *Station) Start() {
	if s.workers != nil {
		return
	}
	s.runDone = make(chan struct{})
	s.workers = utils.NewStoppableWorkers(func(ctx context.Context) {
		defer close(s.runDone)
		if err := s.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			s.logger.Warnw("dispatch loop stopped", "error", err)
		}
	})
}

// Stats returns the dispatcher's handled and dropped event counts.
func (s *Station) Stats() (handled, dropped int64) {
	return s.dispatcher.Stats()
}

// Close stops the dispatcher, waits for queued events to be handled and tears the scene down.
func (s *Station) Close() error {
	err := s.dispatcher.Close()
	if s.workers != nil {
		<-s.runDone
		s.workers.Stop()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scene.Close()
	return multierr.Combine(err, s.logger.Sync())
}
