package config

import (
	"bytes"
	"encoding/json"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/a8m/envsubst"
	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"go.viam.com/groundstation/logging"
)

// AttributeMap is a convenience wrapper for pulling out typed information from a map.
type AttributeMap map[string]interface{}

// Read reads a config from the given file. Environment variables in the file are expanded. Files
// ending in .yaml or .yml are read as YAML, anything else as JSON.
func Read(filePath string, logger logging.Logger) (*Config, error) {
	buf, err := envsubst.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".yaml", ".yml":
		return FromYAMLReader(filePath, bytes.NewReader(buf), logger)
	default:
		return FromReader(filePath, bytes.NewReader(buf), logger)
	}
}

// FromReader reads a config from the given reader and specifies where, if applicable, the file
// the reader originated from. Defaults are applied before validation.
func FromReader(originalPath string, r io.Reader, logger logging.Logger) (*Config, error) {
	var attrs AttributeMap
	if err := json.NewDecoder(r).Decode(&attrs); err != nil {
		return nil, errors.Wrapf(err, "failed to decode Config from json")
	}
	return fromAttributes(originalPath, attrs, logger)
}

// FromYAMLReader is FromReader for YAML input.
func FromYAMLReader(originalPath string, r io.Reader, logger logging.Logger) (*Config, error) {
	var attrs AttributeMap
	if err := yaml.NewDecoder(r).Decode(&attrs); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrapf(err, "failed to decode Config from yaml")
	}
	return fromAttributes(originalPath, attrs, logger)
}

func fromAttributes(originalPath string, attrs AttributeMap, logger logging.Logger) (*Config, error) {
	conf, unused, err := decodeAttributes(attrs)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to process Config")
	}
	for _, key := range unused {
		logger.Warnw("ignoring unknown config field", "field", key, "file", originalPath)
	}
	conf.ConfigFilePath = originalPath
	conf.ApplyDefaults()
	if err := conf.Validate("config"); err != nil {
		return nil, err
	}
	return conf, nil
}

// decodeAttributes converts attrs into a Config, accepting loosely typed values such as numbers
// given as strings.
func decodeAttributes(attrs AttributeMap) (*Config, []string, error) {
	var conf Config
	var md mapstructure.Metadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           &conf,
		WeaklyTypedInput: true,
		Metadata:         &md,
	})
	if err != nil {
		return nil, nil, err
	}
	if err := decoder.Decode(attrs); err != nil {
		return nil, nil, err
	}
	sort.Strings(md.Unused)
	return &conf, md.Unused, nil
}
