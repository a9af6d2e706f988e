// Package ros reads recorded ground station telemetry from rosbags and converts ROS message
// shapes to and from ground station events.
package ros

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/edaniels/gobag/rosbag"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// ReadBag reads the contents of a rosbag into a gobag data structure.
func ReadBag(filename string) (rb *rosbag.RosBag, err error) {
	//nolint:gosec
	f, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open input file")
	}
	defer func() {
		err = multierr.Combine(err, f.Close())
	}()

	rb = rosbag.NewRosBag()
	if err := rb.Read(f); err != nil {
		return nil, errors.Wrapf(err, "unable to create ros bag")
	}
	return rb, nil
}

// parseTopics converts the messages of the given topics to JSON lines held by rb.
func parseTopics(rb *rosbag.RosBag, topics []string) error {
	wanted := make(map[string]bool, len(topics))
	for _, topic := range topics {
		wanted[topic] = true
	}
	if err := rb.ParseTopicsToJSON(
		"",
		func(int64) bool { return true },
		func(t string) bool { return wanted[t] },
		false,
	); err != nil {
		return errors.Wrapf(err, "error while parsing bag to JSON")
	}
	return nil
}

// RawMessagesForTopic returns every message of topic as one JSON document each.
func RawMessagesForTopic(rb *rosbag.RosBag, topic string) ([][]byte, error) {
	if err := parseTopics(rb, []string{topic}); err != nil {
		return nil, err
	}
	msgs := rb.TopicsAsJSON[topic]
	if msgs == nil {
		return nil, errors.Errorf("no messages for topic %s", topic)
	}
	return readLines(msgs)
}

// AllMessagesForTopic returns all messages for a specific topic in the ros bag.
func AllMessagesForTopic(rb *rosbag.RosBag, topic string) ([]map[string]interface{}, error) {
	raw, err := RawMessagesForTopic(rb, topic)
	if err != nil {
		return nil, err
	}

	all := make([]map[string]interface{}, 0, len(raw))
	for _, data := range raw {
		message := map[string]interface{}{}
		if err := json.Unmarshal(data, &message); err != nil {
			return nil, err
		}
		all = append(all, message)
	}
	return all, nil
}

type lineReader interface {
	ReadBytes(delim byte) ([]byte, error)
}

func readLines(r lineReader) ([][]byte, error) {
	var lines [][]byte
	for {
		data, err := r.ReadBytes('\n')
		if line := bytes.TrimSpace(data); len(line) > 0 {
			lines = append(lines, line)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return lines, nil
			}
			return nil, err
		}
	}
}
