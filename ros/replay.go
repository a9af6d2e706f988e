package ros

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/edaniels/gobag/rosbag"
	"github.com/pkg/errors"

	"go.viam.com/groundstation/logging"
	"go.viam.com/groundstation/telemetry"
)

// Topics maps each event kind to the topic it is recorded on.
type Topics map[telemetry.Kind]string

// DefaultTopics are the topic names the vehicle publishes on.
var DefaultTopics = Topics{
	telemetry.KindElevation:  "dem",
	telemetry.KindHazard:     "hazmap",
	telemetry.KindRobotState: "state",
	telemetry.KindGoal:       "current_goal",
	telemetry.KindJoy:        "joy",
}

// kindOrder breaks timestamp ties so a DEM recorded with an overlay update is handled first.
var kindOrder = map[telemetry.Kind]int{
	telemetry.KindElevation:  0,
	telemetry.KindHazard:     1,
	telemetry.KindGoal:       2,
	telemetry.KindRobotState: 3,
	telemetry.KindJoy:        4,
}

// Stamped is one recorded message with its record time.
type Stamped struct {
	Kind  telemetry.Kind
	Nanos int64
	Raw   []byte
}

// CollectTopics reads the raw messages of every topic in topics. Topics with no messages are
// skipped.
func CollectTopics(rb *rosbag.RosBag, topics Topics, logger logging.Logger) (map[telemetry.Kind][][]byte, error) {
	names := make([]string, 0, len(topics))
	for _, topic := range topics {
		names = append(names, topic)
	}
	if err := parseTopics(rb, names); err != nil {
		return nil, err
	}

	streams := make(map[telemetry.Kind][][]byte, len(topics))
	for kind, topic := range topics {
		msgs := rb.TopicsAsJSON[topic]
		if msgs == nil {
			logger.Debugw("no messages recorded", "topic", topic)
			continue
		}
		lines, err := readLines(msgs)
		if err != nil {
			return nil, errors.Wrapf(err, "error reading topic %s", topic)
		}
		streams[kind] = lines
	}
	return streams, nil
}

// MergeTopics orders the messages of every stream by record time into one stream. Messages of a
// single stream keep their recorded order.
func MergeTopics(streams map[telemetry.Kind][][]byte) ([]Stamped, error) {
	var merged []Stamped
	for kind, msgs := range streams {
		for _, raw := range msgs {
			var m meta
			if err := json.Unmarshal(raw, &m); err != nil {
				return nil, errors.Wrapf(err, "error reading record time of %s message", kind)
			}
			merged = append(merged, Stamped{Kind: kind, Nanos: m.Meta.Nanos(), Raw: raw})
		}
	}
	sort.SliceStable(merged, func(i, j int) bool {
		if merged[i].Nanos != merged[j].Nanos {
			return merged[i].Nanos < merged[j].Nanos
		}
		return kindOrder[merged[i].Kind] < kindOrder[merged[j].Kind]
	})
	return merged, nil
}

// EventSink receives replayed events.
type EventSink func(ctx context.Context, ev telemetry.Event) error

// ReplayOptions controls the pace of a replay.
type ReplayOptions struct {
	// Realtime waits out the recorded gap between messages, scaled by Speed.
	Realtime bool
	Speed    float64
	Clock    clock.Clock
}

// Replay decodes msgs in order and hands each event to sink. A message that fails to decode, or
// that sink rejects, is logged and skipped. It returns how many events sink accepted.
func Replay(ctx context.Context, msgs []Stamped, sink EventSink, opts ReplayOptions, logger logging.Logger) (int, error) {
	clk := opts.Clock
	if clk == nil {
		clk = clock.New()
	}
	speed := opts.Speed
	if speed <= 0 {
		speed = 1
	}

	accepted := 0
	for i, msg := range msgs {
		if err := ctx.Err(); err != nil {
			return accepted, err
		}
		if opts.Realtime && i > 0 {
			if gap := time.Duration(float64(msg.Nanos-msgs[i-1].Nanos) / speed); gap > 0 {
				clk.Sleep(gap)
			}
		}

		ev, err := EventFromMessage(msg.Kind, msg.Raw)
		if err != nil {
			logger.Warnw("skipping unreadable message", "kind", msg.Kind, "error", err)
			continue
		}
		if err := sink(ctx, ev); err != nil {
			logger.Warnw("replayed event rejected", "kind", msg.Kind, "error", err)
			continue
		}
		accepted++
	}
	return accepted, nil
}
