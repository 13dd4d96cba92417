package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/sortid"
)

// configFlags gathers generator configuration from an optional YAML file and
// command-line flags; flags win over file values.
type configFlags struct {
	configFile  string
	alphabet    string
	length      int
	start       string
	end         string
	granularity string
	rate        string
	logLevel    string
}

// fileConfig mirrors the YAML configuration file.
type fileConfig struct {
	Alphabet    string `yaml:"alphabet"`
	Length      int    `yaml:"length"`
	Start       string `yaml:"start"`
	End         string `yaml:"end"`
	Granularity string `yaml:"granularity"`
	Rate        string `yaml:"rate"`
}

func newConfigFlags() *configFlags {
	return &configFlags{}
}

func (c *configFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&c.configFile, "config", "", "path to a YAML configuration file")
	fs.StringVar(&c.alphabet, "alphabet", "", "identifier alphabet (default: url-safe base64 set)")
	fs.IntVar(&c.length, "length", 0, "total identifier length in symbols (default 32)")
	fs.StringVar(&c.start, "start", "", "epoch start, RFC 3339 (default 2024-01-01T00:00:00Z)")
	fs.StringVar(&c.end, "end", "", "epoch end, RFC 3339 (default: effectively unbounded)")
	fs.StringVar(&c.granularity, "granularity", "", "time bucket size: nanosecond..year (default microsecond)")
	fs.StringVar(&c.rate, "rate", "", "max sortable rate, e.g. 100_per_microsecond")
	fs.StringVar(&c.logLevel, "log-level", "info", "log level: trace, debug, info, warn, error")
}

// resolve merges file values under flag values into a sortid.Config.
func (c *configFlags) resolve() (sortid.Config, error) {
	var cfg sortid.Config

	if c.configFile != "" {
		raw, err := os.ReadFile(c.configFile)
		if err != nil {
			return cfg, fmt.Errorf("read config file: %w", err)
		}
		var fc fileConfig
		if err := yaml.Unmarshal(raw, &fc); err != nil {
			return cfg, fmt.Errorf("parse config file: %w", err)
		}
		cfg.Alphabet = fc.Alphabet
		cfg.TotalLength = fc.Length
		cfg.Granularity = sortid.Granularity(fc.Granularity)
		cfg.Rate = sortid.Rate(fc.Rate)
		if fc.Start != "" {
			t, err := time.Parse(time.RFC3339, fc.Start)
			if err != nil {
				return cfg, fmt.Errorf("parse start date: %w", err)
			}
			cfg.Start = t
		}
		if fc.End != "" {
			t, err := time.Parse(time.RFC3339, fc.End)
			if err != nil {
				return cfg, fmt.Errorf("parse end date: %w", err)
			}
			cfg.End = &t
		}
	}

	if c.alphabet != "" {
		cfg.Alphabet = c.alphabet
	}
	if c.length != 0 {
		cfg.TotalLength = c.length
	}
	if c.granularity != "" {
		cfg.Granularity = sortid.Granularity(c.granularity)
	}
	if c.rate != "" {
		cfg.Rate = sortid.Rate(c.rate)
	}
	if c.start != "" {
		t, err := time.Parse(time.RFC3339, c.start)
		if err != nil {
			return cfg, fmt.Errorf("parse --start: %w", err)
		}
		cfg.Start = t
	}
	if c.end != "" {
		t, err := time.Parse(time.RFC3339, c.end)
		if err != nil {
			return cfg, fmt.Errorf("parse --end: %w", err)
		}
		cfg.End = &t
	}
	return cfg, nil
}

func (c *configFlags) generator() (*sortid.Generator, error) {
	cfg, err := c.resolve()
	if err != nil {
		return nil, err
	}
	return sortid.New(cfg)
}
