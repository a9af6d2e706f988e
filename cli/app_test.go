package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"go.viam.com/test"

	"go.viam.com/groundstation/logging"
)

func TestReplayRequiresBag(t *testing.T) {
	var out, errOut bytes.Buffer
	err := NewApp(&out, &errOut).Run([]string{"groundstation", "replay"})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, bagFlag)
}

func TestReplayMissingBag(t *testing.T) {
	var out, errOut bytes.Buffer
	dir := t.TempDir()
	err := NewApp(&out, &errOut).Run([]string{
		"groundstation", "replay", "--bag", filepath.Join(dir, "missing.bag"), "--out", dir,
	})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "unable to open input file")
}

func TestLoadConfig(t *testing.T) {
	logger := logging.NewTestLogger(t)

	conf, err := loadConfig("", logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, conf.Topics.DEM, test.ShouldEqual, "dem")

	path := filepath.Join(t.TempDir(), "gs.json")
	test.That(t, os.WriteFile(path, []byte(`{"downsample": 2, "topics": {"dem": "/rover/dem"}}`), 0o600), test.ShouldBeNil)
	conf, err = loadConfig(path, logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, conf.Downsample, test.ShouldEqual, 2)
	test.That(t, conf.Topics.DEM, test.ShouldEqual, "/rover/dem")
	test.That(t, conf.ConfigFilePath, test.ShouldEqual, path)

	_, err = loadConfig(filepath.Join(t.TempDir(), "nope.json"), logger)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	printSummary(&buf, 3, 5, 0, "")
	test.That(t, buf.String(), test.ShouldEqual, "replayed 3 of 5 messages\n")

	buf.Reset()
	printSummary(&buf, 5, 5, 2, "out/final.png")
	test.That(t, buf.String(), test.ShouldContainSubstring, "saved 2 DEM snapshots")
	test.That(t, buf.String(), test.ShouldContainSubstring, "final view written to out/final.png")
}
