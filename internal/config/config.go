package config

import (
	"fmt"
	"strings"
	"time"
)

type Config struct {
	Station     StationConfig     `yaml:"station"`
	Timing      TimingConfig      `yaml:"timing"`
	Paths       PathsConfig       `yaml:"paths"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
	Report      ReportConfig      `yaml:"report"`
}

type StationConfig struct {
	Pumps         int    `yaml:"pumps"`
	QueueCapacity int    `yaml:"queue_capacity"`
	Cars          int    `yaml:"cars"`
	Admission     string `yaml:"admission"`
}

type TimingConfig struct {
	ServiceMin   time.Duration `yaml:"service_min"`
	ServiceMax   time.Duration `yaml:"service_max"`
	ArrivalMin   time.Duration `yaml:"arrival_min"`
	ArrivalMax   time.Duration `yaml:"arrival_max"`
	PollInterval time.Duration `yaml:"poll_interval"`
}

type PathsConfig struct {
	Inbox    string `yaml:"inbox"`
	Archived string `yaml:"archived"`
	Reports  string `yaml:"reports"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

type ReportConfig struct {
	Docx        bool   `yaml:"docx"`
	PostCommand string `yaml:"post_command"`
}

// Scenario is a single run request dropped into the inbox
type Scenario struct {
	Name    string          `yaml:"name"`
	Station ScenarioStation `yaml:"station"`
	Timing  TimingConfig    `yaml:"timing"`
}

// ScenarioStation holds the station settings a scenario overrides. A nil
// field keeps the base config value; an explicit 0 is passed on.
type ScenarioStation struct {
	Pumps         *int   `yaml:"pumps"`
	QueueCapacity *int   `yaml:"queue_capacity"`
	Cars          *int   `yaml:"cars"`
	Admission     string `yaml:"admission"`
}

// Default returns the station settings used when a key is absent
func Default() Config {
	return Config{
		Station: StationConfig{
			Pumps:         3,
			QueueCapacity: 5,
			Cars:          10,
		},
	}
}

// Validate fills in defaults and rejects settings that cannot be repaired.
// Station sizes are taken as given: defaults for absent keys come from
// Default, and values outside [1,10] are left for the station to clamp.
func (c *Config) Validate() error {
	if c.Station.Cars < 0 {
		return fmt.Errorf("station.cars must not be negative")
	}
	admission := strings.ToLower(c.Station.Admission)
	switch admission {
	case "":
		c.Station.Admission = "block"
	case "block", "drop":
		c.Station.Admission = admission
	default:
		return fmt.Errorf("station.admission must be block or drop, got %q", c.Station.Admission)
	}
	if err := c.Timing.validate(); err != nil {
		return err
	}

	if c.Timing.ServiceMin == 0 && c.Timing.ServiceMax == 0 {
		c.Timing.ServiceMin = 2 * time.Second
		c.Timing.ServiceMax = 5 * time.Second
	}
	if c.Timing.ArrivalMin == 0 && c.Timing.ArrivalMax == 0 {
		c.Timing.ArrivalMin = 1 * time.Second
		c.Timing.ArrivalMax = 3 * time.Second
	}
	if c.Timing.PollInterval == 0 {
		c.Timing.PollInterval = time.Second
	}
	if c.Paths.Inbox == "" {
		c.Paths.Inbox = "data/inbox"
	}
	if c.Paths.Archived == "" {
		c.Paths.Archived = "data/archived"
	}
	if c.Paths.Reports == "" {
		c.Paths.Reports = "data/reports"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}

	return nil
}

func (t TimingConfig) validate() error {
	if t.ServiceMin < 0 || t.ServiceMax < 0 || t.ArrivalMin < 0 || t.ArrivalMax < 0 || t.PollInterval < 0 {
		return fmt.Errorf("timing durations must not be negative")
	}
	if t.ServiceMax < t.ServiceMin {
		return fmt.Errorf("timing.service_max (%s) is below timing.service_min (%s)", t.ServiceMax, t.ServiceMin)
	}
	if t.ArrivalMax < t.ArrivalMin {
		return fmt.Errorf("timing.arrival_max (%s) is below timing.arrival_min (%s)", t.ArrivalMax, t.ArrivalMin)
	}
	return nil
}

// Apply returns a copy of c with the scenario's settings on top. Zero
// timings keep the base values.
func (c Config) Apply(s Scenario) Config {
	if s.Station.Pumps != nil {
		c.Station.Pumps = *s.Station.Pumps
	}
	if s.Station.QueueCapacity != nil {
		c.Station.QueueCapacity = *s.Station.QueueCapacity
	}
	if s.Station.Cars != nil {
		c.Station.Cars = *s.Station.Cars
	}
	if s.Station.Admission != "" {
		c.Station.Admission = strings.ToLower(s.Station.Admission)
	}
	if s.Timing.ServiceMin != 0 || s.Timing.ServiceMax != 0 {
		c.Timing.ServiceMin = s.Timing.ServiceMin
		c.Timing.ServiceMax = s.Timing.ServiceMax
	}
	if s.Timing.ArrivalMin != 0 || s.Timing.ArrivalMax != 0 {
		c.Timing.ArrivalMin = s.Timing.ArrivalMin
		c.Timing.ArrivalMax = s.Timing.ArrivalMax
	}
	if s.Timing.PollInterval != 0 {
		c.Timing.PollInterval = s.Timing.PollInterval
	}
	return c
}
