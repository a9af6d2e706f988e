package ros

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/golang/geo/r2"
	"go.viam.com/test"

	"go.viam.com/groundstation/services/steering"
)

func TestSteeringWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewSteeringWriter(&buf, "base_link")
	at := time.Unix(1700000000, 250)

	cmd := steering.Command{Angle: math.Pi / 2, GoalID: "g1", Goal: r2.Point{X: 3, Y: 4}, Time: at}
	test.That(t, w.PublishSteering(context.Background(), cmd), test.ShouldBeNil)
	test.That(t, w.PublishSteering(context.Background(), steering.Command{GoalID: steering.NoGoal}), test.ShouldBeNil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	test.That(t, lines, test.ShouldHaveLength, 2)

	var msg SteeringMessage
	test.That(t, json.Unmarshal([]byte(lines[0]), &msg), test.ShouldBeNil)
	test.That(t, msg.Steer, test.ShouldAlmostEqual, 90)
	test.That(t, msg.ID, test.ShouldEqual, "g1")
	test.That(t, msg.Goal, test.ShouldResemble, Point{X: 3, Y: 4})
	test.That(t, msg.Header.Seq, test.ShouldEqual, 1)
	test.That(t, msg.Header.FrameID, test.ShouldEqual, "base_link")
	test.That(t, msg.Header.Stamp, test.ShouldResemble, Time{Secs: 1700000000, Nsecs: 250})
	test.That(t, msg.Header.Stamp.Nanos(), test.ShouldEqual, at.UnixNano())

	test.That(t, json.Unmarshal([]byte(lines[1]), &msg), test.ShouldBeNil)
	test.That(t, msg.Header.Seq, test.ShouldEqual, 2)
	test.That(t, msg.ID, test.ShouldEqual, "None")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	test.That(t, w.PublishSteering(ctx, cmd), test.ShouldNotBeNil)
}
