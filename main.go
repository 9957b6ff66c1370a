// spectrel-plot - Spectrogram viewer for .cf64 recordings
// This program loads a recording of complex DFT amplitudes, arranges it as a
// time-frequency matrix with zero frequency centred, and draws the magnitude
// on a logarithmic colour scale in the terminal.
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"spectrel/internal/cf64"
	"spectrel/internal/config"
	"spectrel/internal/logging"
	"spectrel/internal/render"
	"spectrel/internal/spectrogram"
	"spectrel/internal/version"
	"spectrel/internal/viewer"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Command line flag variables
var (
	cfgFile     string // Configuration file path
	file        string // Recording to plot
	width       int    // Samples per spectrum
	palette     string // Colour palette
	dataDir     string // Directory for relative recording paths
	altScreen   bool   // Draw in the alternate screen
	showStatus  bool   // Show a status bar under the plot
	verbose     bool   // Enable verbose logging
	showVersion bool   // Print version and exit
)

// configErr holds a failure from initConfig, reported once the command runs
var configErr error

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "spectrel-plot -f <file.cf64> -w <width>",
	Short: "Plot the spectrogram stored in a .cf64 recording",
	Long: `spectrel-plot reads a recording of complex DFT amplitudes (little-endian
float64 real and imaginary parts, one spectrum after another), centres zero
frequency, and draws the magnitude on a logarithmic colour scale.

Press q or esc to close the plot.`,
	Example: `  spectrel-plot -f 2025-10-21T22:36:10Z_rtlsdr.cf64 -w 1024
  spectrel-plot -f recordings/2025-10-21T23:17:03Z_hackrf.cf64 -w 1024 --palette viridis`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if showVersion {
			fmt.Println(version.GetVersionInfo("spectrel-plot"))
			return
		}

		// A positional argument is accepted in place of -f
		if len(args) == 1 && !cmd.Flags().Changed("file") {
			viper.Set("plot.file", args[0])
		}

		if err := runPlot(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

// init initializes the CLI flags and configuration
func init() {
	cobra.OnInitialize(initConfig)

	defaults := config.DefaultConfig()

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./spectrel.yaml if present)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.Flags().StringVarP(&file, "file", "f", defaults.Plot.File, "recording to plot (.cf64)")
	rootCmd.Flags().IntVarP(&width, "width", "w", defaults.Plot.Width, "number of samples per spectrum")
	rootCmd.Flags().StringVarP(&palette, "palette", "p", defaults.Plot.Palette,
		"colour palette ("+strings.Join(render.PaletteNames(), ", ")+")")
	rootCmd.Flags().StringVarP(&dataDir, "data-dir", "d", defaults.Data.Dir, "directory relative recording paths are resolved against")
	rootCmd.Flags().BoolVar(&altScreen, "alt-screen", defaults.Display.AltScreen, "draw the plot in the terminal's alternate screen (true|false)")
	rootCmd.Flags().BoolVar(&showStatus, "status", defaults.Display.Status, "show file name, shape and magnitude range under the plot")
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "show version information")

	// Bind command line flags to viper configuration keys
	viper.BindPFlag("plot.file", rootCmd.Flags().Lookup("file"))
	viper.BindPFlag("plot.width", rootCmd.Flags().Lookup("width"))
	viper.BindPFlag("plot.palette", rootCmd.Flags().Lookup("palette"))
	viper.BindPFlag("data.dir", rootCmd.Flags().Lookup("data-dir"))
	viper.BindPFlag("display.alt_screen", rootCmd.Flags().Lookup("alt-screen"))
	viper.BindPFlag("display.status", rootCmd.Flags().Lookup("status"))
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.file", defaults.Logging.File)
}

// initConfig reads in config file and ENV variables if set
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("spectrel")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}

	// SPECTREL_PLOT_WIDTH overrides plot.width, and so on
	viper.SetEnvPrefix("spectrel")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// The receiver writes recordings under SPECTREL_DATA_DIR_PATH
	viper.BindEnv("data.dir", "SPECTREL_DATA_DIR_PATH")

	err := viper.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	switch {
	case err == nil:
		if verbose {
			fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
		}
	case errors.As(err, &notFound) && cfgFile == "":
		// No config file is fine
	default:
		configErr = fmt.Errorf("failed to read config file: %w", err)
	}
}

// runPlot is the main application logic
func runPlot() error {
	if configErr != nil {
		return configErr
	}

	// Load default configuration
	cfg := config.DefaultConfig()

	// Override with values from config file, environment and command line flags
	if err := viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	pal, err := render.PaletteByName(cfg.Plot.Palette)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Logging, verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer logging.Sync(logger)

	path := cf64.Resolve(cfg.Data.Dir, cfg.Plot.File)
	logger.Debug("plotting recording",
		zap.String("path", path),
		zap.Int("width", cfg.Plot.Width),
		zap.String("palette", pal.Name()))

	res, err := spectrogram.Build(path, cfg.Plot.Width, logger)
	if err != nil {
		return err
	}

	img, norm := render.Render(res.Magnitude, pal)
	if norm.Degenerate() {
		logger.Warn("recording has no non-zero magnitude, plot is uniform",
			zap.String("path", path))
	}

	return viewer.Run(viewer.New(img, statusLine(res, norm), cfg.Display.Status), cfg.Display.AltScreen)
}

// statusLine summarises the plot for the optional status bar
func statusLine(res *spectrogram.Result, norm render.LogNorm) string {
	bins, spectra := res.Dims()
	line := fmt.Sprintf("%s  %d bins x %d spectra", res.Path, bins, spectra)
	if name, err := cf64.ParseName(res.Path); err == nil {
		line = fmt.Sprintf("%s  %s  %s  %d bins x %d spectra",
			name.Device, name.Time.Format("2006-01-02 15:04:05Z"), res.Path, bins, spectra)
	}
	if norm.Degenerate() {
		return line + "  |z| = 0"
	}
	return line + fmt.Sprintf("  |z| %.3g..%.3g (%.1f dB)", norm.Min, norm.Max, norm.DynamicRange())
}

// main is the entry point of the application
func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
