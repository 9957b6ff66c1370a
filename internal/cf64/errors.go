package cf64

import (
	"errors"
	"fmt"
)

var errIsDirectory = errors.New("is a directory")

// FileAccessError reports a recording that could not be opened or read.
type FileAccessError struct {
	Path string
	Op   string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("cannot %s recording %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error { return e.Err }

// FormatError reports a recording whose size is not a whole number of samples.
type FormatError struct {
	Path string
	Size int64
}

func (e *FormatError) Error() string {
	dangling := e.Size % SampleSize
	return fmt.Sprintf("invalid recording %s: size %d bytes is not a multiple of %d (%d dangling bytes, %d whole samples)",
		e.Path, e.Size, SampleSize, dangling, e.Size/SampleSize)
}
