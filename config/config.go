// Package config loads the board configuration: tick period and the tables
// each task runs from.
package config

import (
	"encoding/json"
	"fmt"
	"strconv"

	"superloop/apps/ledfade"
	"superloop/apps/melody"
	"superloop/apps/telemetry"
	"superloop/core"
)

// BoardConfig is the top-level configuration
type BoardConfig struct {
	Name         string          `json:"name"`
	TickPeriodUS uint32          `json:"tick_period_us"`
	Melody       MelodyConfig    `json:"melody"`
	LEDFade      LEDFadeConfig   `json:"led_fade"`
	Telemetry    TelemetryConfig `json:"telemetry"`
}

// MelodyConfig configures the melody task.
// Tones accept note names ("A5S", "NO") or Hz; durations and rests accept
// length names ("QN", "RT") or ms.
type MelodyConfig struct {
	Enabled   *bool       `json:"enabled,omitempty"`
	Buzzer    uint8       `json:"buzzer"`
	Tones     []NoteValue `json:"tones"`
	Durations []NoteValue `json:"durations"`
	Rests     []NoteValue `json:"rests"`
}

// LEDFadeConfig configures the LED animation task
type LEDFadeConfig struct {
	Enabled               *bool    `json:"enabled,omitempty"`
	LEDs                  []string `json:"leds"`
	Increasing            []bool   `json:"increasing"`
	Levels                []uint8  `json:"levels"`
	TimeBetweenDutyChange uint32   `json:"time_between_duty_change"`
}

// TelemetryConfig configures the status reporter
type TelemetryConfig struct {
	Enabled    *bool  `json:"enabled,omitempty"`
	IntervalMS uint32 `json:"interval_ms"`
}

// NoteValue is a table entry given either as a name or as a number
type NoteValue struct {
	Name  string
	Value uint16
}

// UnmarshalJSON accepts a JSON number or string
func (n *NoteValue) UnmarshalJSON(data []byte) error {
	var num uint16
	if err := json.Unmarshal(data, &num); err == nil {
		*n = NoteValue{Value: num}
		return nil
	}

	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("note value must be a name or a number: %s", data)
	}
	if v, err := strconv.ParseUint(name, 10, 16); err == nil {
		*n = NoteValue{Value: uint16(v)}
		return nil
	}
	*n = NoteValue{Name: name}
	return nil
}

// MarshalJSON writes the name when there is one
func (n NoteValue) MarshalJSON() ([]byte, error) {
	if n.Name != "" {
		return json.Marshal(n.Name)
	}
	return json.Marshal(n.Value)
}

// LoadConfig parses a JSON configuration and returns a BoardConfig.
// Unknown note, length or LED names are errors; mismatched table lengths are
// not, they are left for the task to reject at Initialize.
func LoadConfig(jsonData []byte) (*BoardConfig, error) {
	var cfg BoardConfig

	if err := json.Unmarshal(jsonData, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults fills in missing configuration values with sensible defaults
func applyDefaults(cfg *BoardConfig) {
	if cfg.Name == "" {
		cfg.Name = "superloop"
	}
	if cfg.TickPeriodUS == 0 {
		cfg.TickPeriodUS = core.TickPeriodUS
	}

	if cfg.Melody.Tones == nil && cfg.Melody.Durations == nil && cfg.Melody.Rests == nil {
		cfg.Melody.Tones = values(melody.DefaultTones)
		cfg.Melody.Durations = values(melody.DefaultDurations)
		cfg.Melody.Rests = values(melody.DefaultRests)
	}

	if cfg.LEDFade.LEDs == nil && cfg.LEDFade.Increasing == nil {
		def := ledfade.DefaultConfig()
		for _, led := range def.LEDs {
			cfg.LEDFade.LEDs = append(cfg.LEDFade.LEDs, led.String())
		}
		cfg.LEDFade.Increasing = def.Increasing
	}
	if cfg.LEDFade.Levels == nil {
		cfg.LEDFade.Levels = ledfade.DefaultLevels
	}
	if cfg.LEDFade.TimeBetweenDutyChange == 0 {
		cfg.LEDFade.TimeBetweenDutyChange = ledfade.TimeBetweenDutyChange
	}

	if cfg.Telemetry.IntervalMS == 0 {
		cfg.Telemetry.IntervalMS = telemetry.DefaultInterval
	}
}

// Default returns the built-in configuration
func Default() *BoardConfig {
	cfg := &BoardConfig{}
	applyDefaults(cfg)
	return cfg
}

// Validate checks that every name in the tables resolves
func (c *BoardConfig) Validate() error {
	if c.Melody.Buzzer > uint8(core.Buzzer2) {
		return fmt.Errorf("melody: unknown buzzer %d", c.Melody.Buzzer)
	}
	if _, err := resolve(c.Melody.Tones, melody.LookupNote); err != nil {
		return fmt.Errorf("melody tones: %w", err)
	}
	if _, err := resolve(c.Melody.Durations, melody.LookupLength); err != nil {
		return fmt.Errorf("melody durations: %w", err)
	}
	if _, err := resolve(c.Melody.Rests, melody.LookupLength); err != nil {
		return fmt.Errorf("melody rests: %w", err)
	}
	for _, name := range c.LEDFade.LEDs {
		if _, ok := core.ParseLEDChannel(name); !ok {
			return fmt.Errorf("led_fade: unknown LED %q", name)
		}
	}
	return nil
}

// MelodyEnabled reports whether the melody task should run (default on)
func (c *BoardConfig) MelodyEnabled() bool { return enabled(c.Melody.Enabled) }

// LEDFadeEnabled reports whether the LED task should run (default on)
func (c *BoardConfig) LEDFadeEnabled() bool { return enabled(c.LEDFade.Enabled) }

// TelemetryEnabled reports whether the reporter should run (default on)
func (c *BoardConfig) TelemetryEnabled() bool { return enabled(c.Telemetry.Enabled) }

// MelodyTask returns the melody task tables
func (c *BoardConfig) MelodyTask() melody.Config {
	tones, _ := resolve(c.Melody.Tones, melody.LookupNote)
	durations, _ := resolve(c.Melody.Durations, melody.LookupLength)
	rests, _ := resolve(c.Melody.Rests, melody.LookupLength)

	return melody.Config{
		Channel:   core.ToneChannel(c.Melody.Buzzer),
		Tones:     tones,
		Durations: durations,
		Rests:     rests,
	}
}

// LEDFadeTask returns the LED task tables
func (c *BoardConfig) LEDFadeTask() ledfade.Config {
	leds := make([]core.LEDChannel, 0, len(c.LEDFade.LEDs))
	for _, name := range c.LEDFade.LEDs {
		if ch, ok := core.ParseLEDChannel(name); ok {
			leds = append(leds, ch)
		}
	}

	return ledfade.Config{
		LEDs:                  leds,
		Increasing:            c.LEDFade.Increasing,
		Levels:                c.LEDFade.Levels,
		TimeBetweenDutyChange: c.LEDFade.TimeBetweenDutyChange,
	}
}

// TelemetryTask returns the reporter settings
func (c *BoardConfig) TelemetryTask() telemetry.Config {
	return telemetry.Config{Interval: c.Telemetry.IntervalMS}
}

func enabled(b *bool) bool {
	return b == nil || *b
}

func values(table []uint16) []NoteValue {
	out := make([]NoteValue, len(table))
	for i, v := range table {
		out[i] = NoteValue{Value: v}
	}
	return out
}

func resolve(table []NoteValue, lookup func(string) (uint16, bool)) ([]uint16, error) {
	out := make([]uint16, len(table))
	for i, n := range table {
		if n.Name == "" {
			out[i] = n.Value
			continue
		}
		v, ok := lookup(n.Name)
		if !ok {
			return nil, fmt.Errorf("entry %d: unknown name %q", i, n.Name)
		}
		out[i] = v
	}
	return out, nil
}
