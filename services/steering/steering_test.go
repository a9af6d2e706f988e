package steering

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"go.viam.com/test"

	"go.viam.com/groundstation/input"
	"go.viam.com/groundstation/logging"
)

type recordingPublisher struct {
	cmds []Command
	err  error
}

func (p *recordingPublisher) PublishSteering(ctx context.Context, cmd Command) error {
	if p.err != nil {
		return p.err
	}
	p.cmds = append(p.cmds, cmd)
	return nil
}

func TestAngleFromAxes(t *testing.T) {
	t.Run("stick left is straight ahead", func(t *testing.T) {
		angle, err := AngleFromAxes([]float64{-1, 0})
		test.That(t, err, test.ShouldBeNil)
		test.That(t, angle, test.ShouldAlmostEqual, 0)
	})

	t.Run("stick down", func(t *testing.T) {
		angle, err := AngleFromAxes([]float64{0, -1, 0.3})
		test.That(t, err, test.ShouldBeNil)
		test.That(t, angle, test.ShouldAlmostEqual, math.Pi/2)
	})

	t.Run("stick right", func(t *testing.T) {
		angle, err := AngleFromAxes([]float64{1, 0})
		test.That(t, err, test.ShouldBeNil)
		test.That(t, math.Abs(angle), test.ShouldAlmostEqual, math.Pi)
	})

	t.Run("too few axes", func(t *testing.T) {
		_, err := AngleFromAxes([]float64{1})
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, err.Error(), test.ShouldContainSubstring, "at least 2 axes")
	})
}

func TestHandleJoy(t *testing.T) {
	ctx := context.Background()
	pub := &recordingPublisher{}
	clk := clock.NewMock()
	clk.Set(time.Unix(1000, 0))
	svc := New(pub, clk, logging.NewTestLogger(t))

	var seen []float64
	svc.OnSteer(func(angle float64) { seen = append(seen, angle) })

	_, ok := svc.LastCommand()
	test.That(t, ok, test.ShouldBeFalse)
	id, goal := svc.Goal()
	test.That(t, id, test.ShouldEqual, NoGoal)
	test.That(t, goal, test.ShouldResemble, r2.Point{})

	test.That(t, svc.HandleJoy(ctx, []float64{0, -1}), test.ShouldBeNil)
	test.That(t, pub.cmds, test.ShouldHaveLength, 1)
	test.That(t, pub.cmds[0].GoalID, test.ShouldEqual, NoGoal)
	test.That(t, pub.cmds[0].Degrees(), test.ShouldAlmostEqual, 90)
	test.That(t, pub.cmds[0].Time, test.ShouldEqual, clk.Now())

	// same stick position again
	clk.Add(time.Second)
	test.That(t, svc.HandleJoy(ctx, []float64{0, -1}), test.ShouldBeNil)
	test.That(t, pub.cmds, test.ShouldHaveLength, 1)

	svc.HandleGoal("g7", 3, 4)
	test.That(t, svc.HandleJoy(ctx, []float64{-1, 0}), test.ShouldBeNil)
	test.That(t, pub.cmds, test.ShouldHaveLength, 2)
	test.That(t, pub.cmds[1].GoalID, test.ShouldEqual, "g7")
	test.That(t, pub.cmds[1].Goal, test.ShouldResemble, r2.Point{X: 3, Y: 4})
	test.That(t, pub.cmds[1].Time, test.ShouldEqual, time.Unix(1001, 0))

	test.That(t, seen, test.ShouldHaveLength, 2)
	last, ok := svc.LastCommand()
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, last, test.ShouldResemble, pub.cmds[1])

	test.That(t, svc.HandleJoy(ctx, nil), test.ShouldNotBeNil)
	test.That(t, pub.cmds, test.ShouldHaveLength, 2)
}

func TestHandleJoyPublishError(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("link down")}
	svc := New(pub, clock.NewMock(), logging.NewTestLogger(t))
	called := false
	svc.OnSteer(func(float64) { called = true })

	err := svc.HandleJoy(context.Background(), []float64{0.2, 0.2})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "link down")
	// the arrow still follows the stick
	test.That(t, called, test.ShouldBeTrue)

	noPub := New(nil, nil, logging.NewTestLogger(t))
	test.That(t, noPub.HandleJoy(context.Background(), []float64{0.2, 0.2}), test.ShouldBeNil)
}

func TestHandleInput(t *testing.T) {
	ctx := context.Background()
	pub := &recordingPublisher{}
	svc := New(pub, clock.NewMock(), logging.NewTestLogger(t))

	test.That(t, svc.HandleInput(ctx, input.Event{Event: input.PositionChangeAbs, Code: input.AbsoluteX, Value: -1}), test.ShouldBeNil)
	test.That(t, pub.cmds, test.ShouldBeEmpty)

	test.That(t, svc.HandleInput(ctx, input.Event{Event: input.PositionChangeAbs, Code: input.AbsoluteY, Value: -1}), test.ShouldBeNil)
	test.That(t, pub.cmds, test.ShouldHaveLength, 1)
	test.That(t, pub.cmds[0].Angle, test.ShouldAlmostEqual, math.Atan2(1, 1))

	test.That(t, svc.HandleInput(ctx, input.Event{Event: input.ButtonDown, Code: input.ButtonSouth, Value: 1}), test.ShouldBeNil)
	test.That(t, pub.cmds, test.ShouldHaveLength, 1)
}
