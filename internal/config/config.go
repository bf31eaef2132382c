package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/romdo/go-debounce/v2"
	yaml "go.yaml.in/yaml/v3"
)

// DefaultWait is the wait duration used when none is configured.
const DefaultWait = 250 * time.Millisecond

// Policy is a debounce wait duration together with its options.
type Policy struct {
	Wait time.Duration
	debounce.Config
}

// Options returns the debounce options described by p.
func (p Policy) Options() []debounce.Option {
	return p.Config.Options()
}

// Validate checks that p can be used to construct a debouncer.
func (p Policy) Validate() error {
	return p.Config.Validate(p.Wait)
}

// Watch holds the settings of the watch command.
type Watch struct {
	Paths       []string
	MinInterval time.Duration
	Command     []string
}

// Settings is the parsed form of a policy file.
type Settings struct {
	Policy   Policy
	LogLevel string
	Watch    Watch
}

// Default returns the settings used when no policy file is given.
func Default() *Settings {
	return &Settings{
		Policy:   Policy{Wait: DefaultWait},
		LogLevel: "info",
	}
}

type fileSettings struct {
	Wait     string    `yaml:"wait"`
	Leading  bool      `yaml:"leading"`
	Trailing bool      `yaml:"trailing"`
	MaxWait  string    `yaml:"max_wait"`
	LogLevel string    `yaml:"log_level"`
	Watch    fileWatch `yaml:"watch"`
}

type fileWatch struct {
	Paths       []string `yaml:"paths"`
	MinInterval string   `yaml:"min_interval"`
	Command     []string `yaml:"command"`
}

// Load reads and parses the policy file at path.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return s, nil
}

// Parse parses a YAML policy document. Unknown keys are rejected.
func Parse(data []byte) (*Settings, error) {
	var raw fileSettings

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}

	s := Default()

	wait, err := ParseDurationOrDefault("wait", raw.Wait, DefaultWait)
	if err != nil {
		return nil, err
	}
	maxWait, err := ParseDurationField("max_wait", raw.MaxWait)
	if err != nil {
		return nil, err
	}
	minInterval, err := ParseDurationField(
		"watch.min_interval", raw.Watch.MinInterval,
	)
	if err != nil {
		return nil, err
	}

	s.Policy = Policy{
		Wait: wait,
		Config: debounce.Config{
			Leading:  raw.Leading,
			Trailing: raw.Trailing,
			MaxWait:  maxWait,
		},
	}
	if raw.LogLevel != "" {
		s.LogLevel = raw.LogLevel
	}
	s.Watch = Watch{
		Paths:       raw.Watch.Paths,
		MinInterval: minInterval,
		Command:     raw.Watch.Command,
	}

	if err := s.Policy.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}
