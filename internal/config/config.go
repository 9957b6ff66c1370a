// Package config provides configuration structures and defaults for spectrel
package config

import (
	"fmt"
	"strings"
)

// Config represents the complete application configuration
type Config struct {
	Plot    PlotConfig    `mapstructure:"plot" yaml:"plot"`       // What to plot and how to colour it
	Display DisplayConfig `mapstructure:"display" yaml:"display"` // Terminal display settings
	Data    DataConfig    `mapstructure:"data" yaml:"data"`       // Where recordings live
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"` // Logging configuration
}

// PlotConfig contains the inputs of one spectrogram plot
type PlotConfig struct {
	File    string `mapstructure:"file" yaml:"file"`       // Recording to plot (.cf64)
	Width   int    `mapstructure:"width" yaml:"width"`     // Samples per spectrum
	Palette string `mapstructure:"palette" yaml:"palette"` // Colour palette name
}

// DisplayConfig contains terminal display parameters
type DisplayConfig struct {
	AltScreen bool `mapstructure:"alt_screen" yaml:"alt_screen"` // Draw in the terminal's alternate screen
	Status    bool `mapstructure:"status" yaml:"status"`         // Show a one-line status bar under the plot
}

// DataConfig contains recording storage parameters
type DataConfig struct {
	Dir string `mapstructure:"dir" yaml:"dir"` // Directory relative recording paths are resolved against
}

// LoggingConfig contains logging configuration parameters
type LoggingConfig struct {
	Level string `mapstructure:"level" yaml:"level"` // Log level (debug, info, warn, error)
	File  string `mapstructure:"file" yaml:"file"`   // Log file path, empty for stderr only
}

// DefaultConfig returns a configuration with sensible default values
func DefaultConfig() *Config {
	return &Config{
		Plot: PlotConfig{
			File:    "",         // Must be given
			Width:   0,          // Must be given
			Palette: "gnuplot2", // Black-blue-orange-white
		},
		Display: DisplayConfig{
			AltScreen: true,  // Full-screen plot
			Status:    false, // Plot without labels
		},
		Data: DataConfig{
			Dir: ".", // Present working directory
		},
		Logging: LoggingConfig{
			Level: "warn", // Keep the terminal clear for the plot
			File:  "",     // Log to stderr
		},
	}
}

// Validate checks the parameters the plot pipeline cannot run without
func (c *Config) Validate() error {
	if c.Plot.File == "" {
		return fmt.Errorf("recording file not specified: use -f <path>")
	}
	if c.Plot.Width <= 0 {
		return fmt.Errorf("invalid width: %d (samples per spectrum must be positive)", c.Plot.Width)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s (must be 'debug', 'info', 'warn', or 'error')", c.Logging.Level)
	}
	return nil
}
