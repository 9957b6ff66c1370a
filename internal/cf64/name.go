package cf64

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Extension is the file extension used for recordings.
const Extension = ".cf64"

// timeLayout is ISO 8601 in UTC with second resolution, e.g. 2025-10-21T22:36:10Z.
const timeLayout = "2006-01-02T15:04:05Z"

// Name holds the fields encoded in a recording's file name,
// <timestamp>_<device>.cf64.
type Name struct {
	Time   time.Time
	Device string
}

// NewName returns the name of a recording started at t by device.
func NewName(t time.Time, device string) Name {
	return Name{Time: t.UTC().Truncate(time.Second), Device: device}
}

// String formats the name as a file name.
func (n Name) String() string {
	return n.Time.UTC().Format(timeLayout) + "_" + n.Device + Extension
}

// ParseName extracts the timestamp and device from a recording path. The
// naming convention is not enforced by Decode; files that do not follow it are
// still readable.
func ParseName(path string) (Name, error) {
	base := filepath.Base(path)
	if !strings.HasSuffix(base, Extension) {
		return Name{}, fmt.Errorf("recording name %q: missing %s extension", base, Extension)
	}
	stem := strings.TrimSuffix(base, Extension)

	stamp, device, ok := strings.Cut(stem, "_")
	if !ok || device == "" {
		return Name{}, fmt.Errorf("recording name %q: expected <timestamp>_<device>%s", base, Extension)
	}

	t, err := time.Parse(timeLayout, stamp)
	if err != nil {
		return Name{}, fmt.Errorf("recording name %q: invalid timestamp: %w", base, err)
	}

	return Name{Time: t, Device: device}, nil
}

// Resolve locates a recording given on the command line. Absolute paths and
// relative paths that exist from the working directory are returned as is;
// anything else is looked up in the data directory dir.
func Resolve(dir, path string) string {
	if dir == "" || filepath.IsAbs(path) {
		return path
	}
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return filepath.Join(dir, path)
}
