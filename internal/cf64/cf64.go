// Package cf64 reads and writes .cf64 recordings: flat files of complex
// samples, each a little-endian float64 real part followed by a float64
// imaginary part, with no header.
package cf64

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
)

// SampleSize is the number of bytes used by one complex sample on disk.
const SampleSize = 16

// Info describes a recording on disk without loading its samples.
type Info struct {
	Path          string
	Size          int64 // File size in bytes
	SampleCount   int   // Whole samples in the file
	DanglingBytes int   // Bytes after the last whole sample
}

// Stat reads the size of a recording and reports how many samples it holds.
// Unlike Decode it does not fail on a dangling partial sample, so callers can
// describe a broken file before rejecting it.
func Stat(path string) (Info, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return Info{}, &FileAccessError{Path: path, Op: "stat", Err: err}
	}
	if fi.IsDir() {
		return Info{}, &FileAccessError{Path: path, Op: "stat", Err: errIsDirectory}
	}

	size := fi.Size()
	return Info{
		Path:          path,
		Size:          size,
		SampleCount:   int(size / SampleSize),
		DanglingBytes: int(size % SampleSize),
	}, nil
}

// Decode reads every sample in the recording at path, in file order.
func Decode(path string) ([]complex128, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &FileAccessError{Path: path, Op: "open", Err: err}
	}
	defer file.Close()

	fi, err := file.Stat()
	if err != nil {
		return nil, &FileAccessError{Path: path, Op: "stat", Err: err}
	}
	if fi.IsDir() {
		return nil, &FileAccessError{Path: path, Op: "read", Err: errIsDirectory}
	}
	if fi.Size()%SampleSize != 0 {
		return nil, &FormatError{Path: path, Size: fi.Size()}
	}

	raw := make([]byte, fi.Size())
	if _, err := io.ReadFull(file, raw); err != nil {
		return nil, &FileAccessError{Path: path, Op: "read", Err: err}
	}

	return decodeSamples(raw), nil
}

func decodeSamples(raw []byte) []complex128 {
	samples := make([]complex128, len(raw)/SampleSize)
	for i := range samples {
		off := i * SampleSize
		re := math.Float64frombits(binary.LittleEndian.Uint64(raw[off:]))
		im := math.Float64frombits(binary.LittleEndian.Uint64(raw[off+8:]))
		samples[i] = complex(re, im)
	}
	return samples
}

// Encode writes samples to w in the .cf64 layout.
func Encode(w io.Writer, samples []complex128) error {
	bw := bufio.NewWriter(w)
	var buf [SampleSize]byte
	for _, s := range samples {
		binary.LittleEndian.PutUint64(buf[:8], math.Float64bits(real(s)))
		binary.LittleEndian.PutUint64(buf[8:], math.Float64bits(imag(s)))
		if _, err := bw.Write(buf[:]); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteFile creates (or truncates) path and writes samples to it.
func WriteFile(path string, samples []complex128) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if err := Encode(file, samples); err != nil {
		return fmt.Errorf("failed to write samples: %w", err)
	}

	return file.Close()
}
