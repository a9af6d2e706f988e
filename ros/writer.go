package ros

import (
	"context"
	"encoding/json"
	"io"
	"sync"

	"github.com/pkg/errors"

	"go.viam.com/groundstation/services/steering"
)

// SteeringWriter publishes steering commands as newline delimited SteeringMessage JSON.
type SteeringWriter struct {
	mu      sync.Mutex
	enc     *json.Encoder
	frameID string
	seq     int
}

// NewSteeringWriter returns a writer emitting to w with the given header frame id.
func NewSteeringWriter(w io.Writer, frameID string) *SteeringWriter {
	return &SteeringWriter{enc: json.NewEncoder(w), frameID: frameID}
}

// PublishSteering writes cmd, converting its angle to degrees.
func (sw *SteeringWriter) PublishSteering(ctx context.Context, cmd steering.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	sw.mu.Lock()
	defer sw.mu.Unlock()

	sw.seq++
	msg := SteeringMessage{
		Header: Header{Seq: sw.seq, Stamp: NewTime(cmd.Time), FrameID: sw.frameID},
		Steer:  cmd.Degrees(),
		ID:     cmd.GoalID,
		Goal:   Point{X: cmd.Goal.X, Y: cmd.Goal.Y},
	}
	if err := sw.enc.Encode(&msg); err != nil {
		return errors.Wrap(err, "error writing steering message")
	}
	return nil
}
