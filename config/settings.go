package config

import (
	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
)

// Settings is the host application's opaque key value store for persisted view state.
type Settings map[string]interface{}

// Get returns the value stored under key.
func (s Settings) Get(key string) (interface{}, bool) {
	v, ok := s[key]
	return v, ok
}

// Set stores value under key.
func (s Settings) Set(key string, value interface{}) {
	s[key] = value
}

// Decode decodes the value stored under key into out.
func (s Settings) Decode(key string, out interface{}) error {
	v, ok := s[key]
	if !ok {
		return errors.Errorf("no setting %q", key)
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(v)
}
