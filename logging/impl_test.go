package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"testing"
	"time"

	"go.viam.com/test"
)

type gridSummary struct {
	Width  int
	Height int
	cells  []float64
}

// assertLogMatches will fuzzy match log lines. The timestamp only needs to parse and the line
// number only needs to be a number.
func assertLogMatches(t *testing.T, actual *bytes.Buffer, expected string) {
	t.Helper()

	output, err := actual.ReadString('\n')
	test.That(t, err, test.ShouldBeNil)

	actualParts := strings.Split(strings.TrimSuffix(output, "\n"), "\t")
	expectedParts := strings.Split(expected, "\t")
	test.That(t, len(actualParts), test.ShouldEqual, len(expectedParts))

	_, err = time.Parse(DefaultTimeFormatStr, actualParts[0])
	test.That(t, err, test.ShouldBeNil)
	test.That(t, actualParts[1], test.ShouldEqual, expectedParts[1])

	actualFilename, actualLineNumber, found := strings.Cut(actualParts[2], ":")
	test.That(t, found, test.ShouldBeTrue)
	expectedFilename, _, found := strings.Cut(expectedParts[2], ":")
	test.That(t, found, test.ShouldBeTrue)
	test.That(t, actualFilename, test.ShouldEqual, expectedFilename)
	_, err = strconv.Atoi(actualLineNumber)
	test.That(t, err, test.ShouldBeNil)

	test.That(t, actualParts[3], test.ShouldEqual, expectedParts[3])
	if len(actualParts) == 4 {
		return
	}

	expectedMap := make(map[string]any)
	test.That(t, json.Unmarshal([]byte(expectedParts[4]), &expectedMap), test.ShouldBeNil)
	actualMap := make(map[string]any)
	test.That(t, json.Unmarshal([]byte(actualParts[4]), &actualMap), test.ShouldBeNil)
	test.That(t, actualMap, test.ShouldResemble, expectedMap)
}

func newBufferLogger(level Level) (*impl, *bytes.Buffer) {
	notStdout := &bytes.Buffer{}
	return &impl{"", NewAtomicLevelAt(level), false, []Appender{NewWriterAppender(notStdout)}}, notStdout
}

func TestConsoleOutputFormat(t *testing.T) {
	logger, notStdout := newBufferLogger(DEBUG)

	logger.Info("dem committed")
	assertLogMatches(t, notStdout,
		`2023-10-30T09:12:09.459-0400	INFO	logging/impl_test.go:67	dem committed`)

	logger.Infof("raster %dx%d", 4, 4)
	assertLogMatches(t, notStdout,
		`2023-10-30T09:12:09.459-0400	INFO	logging/impl_test.go:71	raster 4x4`)

	logger.Warnw("dropping frame", "kind", "dem", "width", 4)
	assertLogMatches(t, notStdout,
		`2023-10-30T09:12:09.459-0400	WARN	logging/impl_test.go:75	dropping frame	{"kind":"dem","width":4}`)

	// Only public fields are serialized.
	logger.Debugw("grid", "summary", gridSummary{4, 4, []float64{0}})
	assertLogMatches(t, notStdout,
		`2023-10-30T09:12:09.459-0400	DEBUG	logging/impl_test.go:80	grid	{"summary":{"Width":4,"Height":4}}`)

	// A trailing key without a value is reported rather than dropped.
	logger.Infow("unpaired", "lonely")
	assertLogMatches(t, notStdout,
		`2023-10-30T09:12:09.459-0400	INFO	logging/impl_test.go:85	unpaired	{"lonely":"unpaired log key"}`)
}

func TestLevels(t *testing.T) {
	logger, notStdout := newBufferLogger(WARN)

	logger.Debug("hidden")
	logger.Info("hidden")
	test.That(t, notStdout.Len(), test.ShouldEqual, 0)

	logger.Error("shown")
	test.That(t, notStdout.String(), test.ShouldContainSubstring, "ERROR")

	notStdout.Reset()
	logger.SetLevel(DEBUG)
	test.That(t, logger.GetLevel(), test.ShouldEqual, DEBUG)
	logger.Debug("now shown")
	test.That(t, notStdout.String(), test.ShouldContainSubstring, "now shown")
}

func TestContextDebug(t *testing.T) {
	logger, notStdout := newBufferLogger(INFO)

	logger.CDebugf(context.Background(), "frame %d", 1)
	test.That(t, notStdout.Len(), test.ShouldEqual, 0)

	ctx := EnableDebugMode(context.Background(), "")
	test.That(t, IsDebugMode(ctx), test.ShouldBeTrue)
	test.That(t, DebugKey(ctx), test.ShouldNotBeEmpty)

	logger.CDebugf(ctx, "frame %d", 2)
	test.That(t, notStdout.String(), test.ShouldContainSubstring, "frame 2")
}

func TestRunIDContext(t *testing.T) {
	logger, logs := NewObservedTestLogger(t)
	logger.SetLevel(INFO)

	ctx := WithRunID(context.Background(), "a1b2c3d4")
	test.That(t, RunID(ctx), test.ShouldEqual, "a1b2c3d4")
	test.That(t, IsDebugMode(ctx), test.ShouldBeFalse)

	ctx = EnableDebugMode(ctx, "")
	test.That(t, DebugKey(ctx), test.ShouldEqual, "a1b2c3d4")

	logger.CDebugw(ctx, "published steering", "degrees", 90)
	entries := logs.FilterMessage("published steering").All()
	test.That(t, entries, test.ShouldHaveLength, 1)
	test.That(t, entries[0].ContextMap()["run"], test.ShouldEqual, "a1b2c3d4")
	test.That(t, RunID(context.Background()), test.ShouldBeEmpty)
}

func TestSublogger(t *testing.T) {
	logger, logs := NewObservedTestLogger(t)

	sub := logger.Sublogger("scene")
	sub.Infow("refit", "width", 10)
	sub.Sublogger("hazard").Info("rebuilt")

	all := logs.All()
	test.That(t, all, test.ShouldHaveLength, 2)
	test.That(t, all[0].LoggerName, test.ShouldEqual, "scene")
	test.That(t, all[0].ContextMap()["width"], test.ShouldEqual, int64(10))
	test.That(t, all[1].LoggerName, test.ShouldEqual, "scene.hazard")
	test.That(t, logs.FilterMessageSnippet("rebuilt").Len(), test.ShouldEqual, 1)
}

func TestAsZap(t *testing.T) {
	logger, logs := NewObservedTestLogger(t)
	logger.AsZap().Infow("through zap", "k", "v")
	test.That(t, logs.FilterMessage("through zap").Len(), test.ShouldEqual, 1)
	test.That(t, logger.Sync(), test.ShouldBeNil)
}

func TestLevelFromString(t *testing.T) {
	for str, expected := range map[string]Level{
		"debug": DEBUG,
		"INFO":  INFO,
		"Warn":  WARN,
		"error": ERROR,
	} {
		level, err := LevelFromString(str)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, level, test.ShouldEqual, expected)
	}

	_, err := LevelFromString("loud")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "unknown log level")
}
