// Package steering turns joystick samples into steering commands for the downstream motion
// controller and for the scene's steering arrow.
package steering

import (
	"context"
	"math"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"go.viam.com/groundstation/input"
	"go.viam.com/groundstation/logging"
	"go.viam.com/groundstation/utils"
)

// NoGoal is the goal id carried before any goal has been received.
const NoGoal = "None"

// Command is a steering direction together with the goal it steers toward.
type Command struct {
	Angle  float64 // radians
	GoalID string
	Goal   r2.Point
	Time   time.Time
}

// Degrees returns the angle in degrees, as carried on the wire.
func (c Command) Degrees() float64 {
	return utils.RadToDeg(c.Angle)
}

// Publisher sends commands downstream.
type Publisher interface {
	PublishSteering(ctx context.Context, cmd Command) error
}

// Service derives steering commands from joystick input. It is meant to be driven from a single
// goroutine.
type Service struct {
	publisher Publisher
	clock     clock.Clock
	logger    logging.Logger

	joystick  input.Joystick
	goalID    string
	goal      r2.Point
	last      *Command
	listeners []func(angle float64)
}

// New returns a steering service publishing to publisher. A nil clock uses the wall clock.
func New(publisher Publisher, clk clock.Clock, logger logging.Logger) *Service {
	if clk == nil {
		clk = clock.New()
	}
	return &Service{
		publisher: publisher,
		clock:     clk,
		logger:    logger,
		goalID:    NoGoal,
	}
}

// AngleFromAxes returns the steering angle of a joystick sample, atan2(-axes[1], -axes[0]).
func AngleFromAxes(axes []float64) (float64, error) {
	if len(axes) < 2 {
		return 0, errors.Errorf("joystick sample needs at least 2 axes, got %d", len(axes))
	}
	return math.Atan2(-axes[1], -axes[0]), nil
}

// OnSteer registers f to be called with every new steering angle.
func (s *Service) OnSteer(f func(angle float64)) {
	s.listeners = append(s.listeners, f)
}

// HandleGoal records the goal carried by later commands. It does not publish.
func (s *Service) HandleGoal(id string, x, y float64) {
	s.goalID = id
	s.goal = r2.Point{X: x, Y: y}
}

// Goal returns the current goal id and position.
func (s *Service) Goal() (string, r2.Point) {
	return s.goalID, s.goal
}

// HandleJoy derives a steering angle from axes. When it differs from the last one the listeners
// are told and a command is published.
func (s *Service) HandleJoy(ctx context.Context, axes []float64) error {
	angle, err := AngleFromAxes(axes)
	if err != nil {
		return err
	}
	if s.last != nil && s.last.Angle == angle {
		return nil
	}

	cmd := Command{Angle: angle, GoalID: s.goalID, Goal: s.goal, Time: s.clock.Now()}
	s.last = &cmd
	for _, f := range s.listeners {
		f(angle)
	}
	if s.publisher == nil {
		return nil
	}
	if err := s.publisher.PublishSteering(ctx, cmd); err != nil {
		return errors.Wrap(err, "error publishing steering command")
	}
	s.logger.CDebugw(ctx, "published steering", "degrees", cmd.Degrees(), "goal", cmd.GoalID)
	return nil
}

// HandleInput folds a single control event into the joystick state and steers once both stick
// axes are known.
func (s *Service) HandleInput(ctx context.Context, ev input.Event) error {
	if !s.joystick.Apply(ev) {
		return nil
	}
	axes := s.joystick.Axes()
	if len(axes) < 2 {
		return nil
	}
	return s.HandleJoy(ctx, axes)
}

// LastCommand returns the most recent command and whether there is one.
func (s *Service) LastCommand() (Command, bool) {
	if s.last == nil {
		return Command{}, false
	}
	return *s.last, true
}
