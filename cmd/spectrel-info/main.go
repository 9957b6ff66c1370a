// spectrel-info - Utility to describe .cf64 spectrogram recordings
// This program reports the layout of a recording and, for a given spectrum
// width, the shape and magnitude statistics of the resulting spectrogram.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"spectrel/internal/cf64"
	"spectrel/internal/render"
	"spectrel/internal/spectrogram"
	"spectrel/internal/version"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var (
	width        int
	showStats    bool
	outputFormat string
	showVersion  bool
)

// Report is everything spectrel-info knows about one recording
type Report struct {
	File       FileSection        `json:"file"`
	Recording  *RecordingSection  `json:"recording,omitempty"`
	Layout     LayoutSection      `json:"layout"`
	Shape      *ShapeSection      `json:"spectrogram,omitempty"`
	Statistics *StatisticsSection `json:"statistics,omitempty"`
}

// FileSection describes the file on disk
type FileSection struct {
	Name     string    `json:"name"`
	Path     string    `json:"path"`
	Size     int64     `json:"size_bytes"`
	Modified time.Time `json:"modified"`
}

// RecordingSection holds the fields encoded in the file name
type RecordingSection struct {
	Device  string    `json:"device"`
	Started time.Time `json:"started"`
}

// LayoutSection describes the sample stream
type LayoutSection struct {
	Samples       int    `json:"samples"`
	DanglingBytes int    `json:"dangling_bytes"`
	Valid         bool   `json:"valid"`
	Problem       string `json:"problem,omitempty"`
}

// ShapeSection describes the spectrogram for the requested width
type ShapeSection struct {
	Width   int `json:"width"`
	Bins    int `json:"bins"`
	Spectra int `json:"spectra"`
	Dropped int `json:"dropped_samples"`
}

// StatisticsSection summarises the centred magnitude matrix
type StatisticsSection struct {
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	Mean         float64 `json:"mean"`
	Median       float64 `json:"median"`
	StdDev       float64 `json:"std_dev"`
	Zeros        int     `json:"zero_entries"`
	MinPositive  float64 `json:"min_positive"`
	DynamicRange float64 `json:"dynamic_range_db"`
	PeakBin      int     `json:"peak_bin"` // Offset from the centre row of the strongest mean bin
}

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "spectrel-info [file.cf64]",
	Short: "Describe .cf64 spectrogram recordings",
	Long: `spectrel-info reports the size and sample layout of a .cf64 recording and
the device and start time encoded in its name.

With --width it also reports the spectrogram shape and how many trailing
samples would be dropped; --stats adds magnitude statistics.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if showVersion {
			fmt.Println(version.GetVersionInfo("spectrel-info"))
			return
		}

		if len(args) == 0 {
			fmt.Fprintf(os.Stderr, "Error: filename required\n")
			cmd.Usage()
			os.Exit(1)
		}

		if err := describeFile(os.Stdout, args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "show version information")
	rootCmd.Flags().IntVarP(&width, "width", "w", 0, "samples per spectrum")
	rootCmd.Flags().BoolVar(&showStats, "stats", false, "show magnitude statistics (requires --width)")
	rootCmd.Flags().StringVarP(&outputFormat, "format", "f", "table", "output format (table, json)")
}

// describeFile builds the report for path and writes it in the selected format
func describeFile(w io.Writer, path string) error {
	if showStats && width <= 0 {
		return fmt.Errorf("--stats requires a positive --width")
	}

	report, err := buildReport(path, width, showStats)
	if err != nil {
		return err
	}

	switch outputFormat {
	case "table":
		printTable(w, report)
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(report); err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
	default:
		return fmt.Errorf("invalid output format: %s (must be 'table' or 'json')", outputFormat)
	}

	if !report.Layout.Valid {
		return errors.New(report.Layout.Problem)
	}
	return nil
}

// buildReport gathers the report; a width of zero skips the spectrogram
func buildReport(path string, width int, withStats bool) (*Report, error) {
	info, err := cf64.Stat(path)
	if err != nil {
		return nil, err
	}
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	report := &Report{
		File: FileSection{
			Name:     filepath.Base(path),
			Path:     path,
			Size:     info.Size,
			Modified: fi.ModTime(),
		},
		Layout: LayoutSection{
			Samples:       info.SampleCount,
			DanglingBytes: info.DanglingBytes,
			Valid:         info.DanglingBytes == 0,
		},
	}
	if !report.Layout.Valid {
		report.Layout.Problem = (&cf64.FormatError{Path: path, Size: info.Size}).Error()
	}

	if name, err := cf64.ParseName(path); err == nil {
		report.Recording = &RecordingSection{Device: name.Device, Started: name.Time}
	}

	if width <= 0 || !report.Layout.Valid {
		return report, nil
	}

	if width > info.SampleCount {
		return nil, &spectrogram.InvalidWidthError{Width: width, Length: info.SampleCount}
	}
	report.Shape = &ShapeSection{
		Width:   width,
		Bins:    width,
		Spectra: info.SampleCount / width,
		Dropped: spectrogram.Dropped(info.SampleCount, width),
	}

	if withStats {
		res, err := spectrogram.Build(path, width, nil)
		if err != nil {
			return nil, err
		}
		report.Statistics = magnitudeStatistics(res)
	}

	return report, nil
}

// magnitudeStatistics summarises the centred magnitude matrix
func magnitudeStatistics(res *spectrogram.Result) *StatisticsSection {
	bins, spectra := res.Dims()
	values := make([]float64, 0, bins*spectra)
	meanSpectrum := make([]float64, bins)
	zeros := 0
	for i := 0; i < bins; i++ {
		row := res.Magnitude.RawRowView(i)
		values = append(values, row...)
		meanSpectrum[i] = stat.Mean(row, nil)
		for _, v := range row {
			if v == 0 {
				zeros++
			}
		}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	norm := render.NewLogNorm(res.Magnitude)
	return &StatisticsSection{
		Min:          floats.Min(values),
		Max:          floats.Max(values),
		Mean:         stat.Mean(values, nil),
		Median:       stat.Quantile(0.5, stat.Empirical, sorted, nil),
		StdDev:       stat.PopStdDev(values, nil),
		Zeros:        zeros,
		MinPositive:  norm.Min,
		DynamicRange: norm.DynamicRange(),
		PeakBin:      floats.MaxIdx(meanSpectrum) - bins/2,
	}
}

// printTable writes the report in human readable form
func printTable(w io.Writer, r *Report) {
	fmt.Fprintf(w, "SPECTREL RECORDING %s\n\n", version.Version)

	fmt.Fprintf(w, "File Information:\n")
	fmt.Fprintf(w, "Name: %s\n", r.File.Name)
	fmt.Fprintf(w, "Size: %.2f MB (%d bytes)\n", float64(r.File.Size)/(1024*1024), r.File.Size)
	fmt.Fprintf(w, "Modified: %s\n\n", r.File.Modified.Format("2006-01-02 15:04:05"))

	if r.Recording != nil {
		fmt.Fprintf(w, "Recording:\n")
		fmt.Fprintf(w, "Device: %s\n", r.Recording.Device)
		fmt.Fprintf(w, "Started: %s\n\n", r.Recording.Started.Format(time.RFC3339))
	}

	fmt.Fprintf(w, "Sample Information:\n")
	fmt.Fprintf(w, "Total Samples: %d\n", r.Layout.Samples)
	fmt.Fprintf(w, "Sample Type: Complex128 (64-bit real + 64-bit imaginary, little-endian)\n")
	if r.Layout.Valid {
		fmt.Fprintf(w, "Layout: OK\n\n")
	} else {
		fmt.Fprintf(w, "Layout: INVALID (%d dangling bytes)\n\n", r.Layout.DanglingBytes)
	}

	if r.Shape != nil {
		fmt.Fprintf(w, "Spectrogram:\n")
		fmt.Fprintf(w, "Samples per Spectrum: %d\n", r.Shape.Width)
		fmt.Fprintf(w, "Shape: %d bins x %d spectra\n", r.Shape.Bins, r.Shape.Spectra)
		fmt.Fprintf(w, "Dropped Samples: %d\n\n", r.Shape.Dropped)
	}

	if s := r.Statistics; s != nil {
		fmt.Fprintf(w, "Magnitude Statistics:\n")
		fmt.Fprintf(w, "Min Magnitude: %12.6g\n", s.Min)
		fmt.Fprintf(w, "Max Magnitude: %12.6g\n", s.Max)
		fmt.Fprintf(w, "Mean Magnitude: %12.6g\n", s.Mean)
		fmt.Fprintf(w, "Median Magnitude: %12.6g\n", s.Median)
		fmt.Fprintf(w, "Std Deviation: %12.6g\n", s.StdDev)
		fmt.Fprintf(w, "Zero Entries: %12d\n", s.Zeros)
		if s.MinPositive == 0 {
			fmt.Fprintf(w, "Dynamic Range: n/a (no non-zero magnitude)\n")
		} else {
			fmt.Fprintf(w, "Dynamic Range: %12.2f dB\n", s.DynamicRange)
		}
		fmt.Fprintf(w, "Peak Bin (from centre): %+d\n\n", s.PeakBin)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
