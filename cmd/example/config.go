package main

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// fileConfig is the optional YAML file passed with --config:
//
//	token: xoxb-...
//	base_url: https://slack.com/api/
//	channel: C123
//	timeout: 10s
//
// Flags override the file; SLACK_TOKEN overrides its token.
type fileConfig struct {
	Token   string   `yaml:"token"`
	BaseURL string   `yaml:"base_url"`
	Channel string   `yaml:"channel"`
	Timeout duration `yaml:"timeout"`
}

// duration accepts time.ParseDuration strings in YAML.
type duration time.Duration

func (d *duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return errors.Wrapf(err, "line %d: invalid timeout", value.Line)
	}
	if parsed < 0 {
		return errors.Errorf("line %d: timeout cannot be negative", value.Line)
	}
	*d = duration(parsed)
	return nil
}

func loadFileConfig(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading config")
	}

	var config fileConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, errors.Wrapf(err, "parsing config %s", path)
	}
	return &config, nil
}
